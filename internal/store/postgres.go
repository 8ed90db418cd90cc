package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Amretha-Karthikeyan/job-hunt-app/internal/types"
)

// Postgres implements JobStore on a pgx connection pool.
type Postgres struct {
	pool *pgxpool.Pool
}

// Connect establishes a connection pool and ensures the jobs table exists.
func Connect(ctx context.Context, databaseURL string) (*Postgres, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	s := &Postgres{pool: pool}
	if err := s.migrate(ctx); err != nil {
		pool.Close()
		return nil, err
	}
	return s, nil
}

// Close closes the connection pool.
func (s *Postgres) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}

func (s *Postgres) migrate(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS jobs (
			id                  TEXT PRIMARY KEY,
			role                TEXT NOT NULL,
			company             TEXT NOT NULL DEFAULT '',
			url                 TEXT NOT NULL DEFAULT '',
			location            TEXT NOT NULL DEFAULT '',
			description         TEXT NOT NULL DEFAULT '',
			platform            TEXT NOT NULL,
			linkedin_id         TEXT NOT NULL DEFAULT '',
			posted_days_ago     INTEGER,
			status              TEXT NOT NULL DEFAULT 'saved',
			ai_score            INTEGER,
			ai_label            TEXT NOT NULL DEFAULT '',
			ai_reason           TEXT NOT NULL DEFAULT '',
			ai_priority         TEXT NOT NULL DEFAULT '',
			resume_pdf          BYTEA,
			resume_filename     TEXT NOT NULL DEFAULT '',
			cover_pdf           BYTEA,
			cover_filename      TEXT NOT NULL DEFAULT '',
			resume_variant      TEXT NOT NULL DEFAULT '',
			resume_generated_at TIMESTAMPTZ,
			created_at          TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at          TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`)
	if err != nil {
		return fmt.Errorf("create jobs table: %w", err)
	}
	return nil
}

// Upsert writes each record keyed by ID. Score and artifact fields use
// COALESCE-style preservation: an upsert carrying NULL/empty values never
// erases fields a previous run populated.
func (s *Postgres) Upsert(ctx context.Context, jobs []types.Job) error {
	for _, j := range jobs {
		_, err := s.pool.Exec(ctx, `
			INSERT INTO jobs (
				id, role, company, url, location, description, platform,
				linkedin_id, posted_days_ago, status,
				ai_score, ai_label, ai_reason, ai_priority,
				resume_pdf, resume_filename, cover_pdf, cover_filename,
				resume_variant, resume_generated_at, created_at, updated_at
			) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18,$19,$20,$21,$22)
			ON CONFLICT (id) DO UPDATE SET
				role = EXCLUDED.role,
				company = EXCLUDED.company,
				url = EXCLUDED.url,
				location = EXCLUDED.location,
				description = EXCLUDED.description,
				platform = EXCLUDED.platform,
				linkedin_id = EXCLUDED.linkedin_id,
				posted_days_ago = COALESCE(EXCLUDED.posted_days_ago, jobs.posted_days_ago),
				status = EXCLUDED.status,
				ai_score = COALESCE(EXCLUDED.ai_score, jobs.ai_score),
				ai_label = CASE WHEN EXCLUDED.ai_label = '' THEN jobs.ai_label ELSE EXCLUDED.ai_label END,
				ai_reason = CASE WHEN EXCLUDED.ai_reason = '' THEN jobs.ai_reason ELSE EXCLUDED.ai_reason END,
				ai_priority = CASE WHEN EXCLUDED.ai_priority = '' THEN jobs.ai_priority ELSE EXCLUDED.ai_priority END,
				resume_pdf = COALESCE(EXCLUDED.resume_pdf, jobs.resume_pdf),
				resume_filename = CASE WHEN EXCLUDED.resume_filename = '' THEN jobs.resume_filename ELSE EXCLUDED.resume_filename END,
				cover_pdf = COALESCE(EXCLUDED.cover_pdf, jobs.cover_pdf),
				cover_filename = CASE WHEN EXCLUDED.cover_filename = '' THEN jobs.cover_filename ELSE EXCLUDED.cover_filename END,
				resume_variant = CASE WHEN EXCLUDED.resume_variant = '' THEN jobs.resume_variant ELSE EXCLUDED.resume_variant END,
				resume_generated_at = COALESCE(EXCLUDED.resume_generated_at, jobs.resume_generated_at),
				updated_at = NOW()`,
			j.ID, j.Role, j.Company, j.URL, j.Location, j.Description, j.Platform,
			j.LinkedInID, j.PostedDaysAgo, j.Status,
			j.AIScore, j.AILabel, j.AIReason, j.AIPriority,
			nilIfEmpty(j.ResumePDF), j.ResumeFilename, nilIfEmpty(j.CoverPDF), j.CoverFilename,
			j.ResumeVariant, j.ResumeGeneratedAt, j.CreatedAt, j.UpdatedAt,
		)
		if err != nil {
			return fmt.Errorf("upsert job %s: %w", j.ID, err)
		}
	}
	return nil
}

func nilIfEmpty(b []byte) []byte {
	if len(b) == 0 {
		return nil
	}
	return b
}

const selectColumns = `
	id, role, company, url, location, description, platform,
	linkedin_id, posted_days_ago, status,
	ai_score, ai_label, ai_reason, ai_priority,
	resume_pdf, resume_filename, cover_pdf, cover_filename,
	resume_variant, resume_generated_at, created_at, updated_at`

func scanJob(row pgx.Row) (types.Job, error) {
	var j types.Job
	err := row.Scan(
		&j.ID, &j.Role, &j.Company, &j.URL, &j.Location, &j.Description, &j.Platform,
		&j.LinkedInID, &j.PostedDaysAgo, &j.Status,
		&j.AIScore, &j.AILabel, &j.AIReason, &j.AIPriority,
		&j.ResumePDF, &j.ResumeFilename, &j.CoverPDF, &j.CoverFilename,
		&j.ResumeVariant, &j.ResumeGeneratedAt, &j.CreatedAt, &j.UpdatedAt,
	)
	return j, err
}

// SelectAll returns every stored record, newest first.
func (s *Postgres) SelectAll(ctx context.Context) ([]types.Job, error) {
	rows, err := s.pool.Query(ctx, `SELECT `+selectColumns+` FROM jobs ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("select jobs: %w", err)
	}
	defer rows.Close()

	var jobs []types.Job
	for rows.Next() {
		j, err := scanJob(rows)
		if err != nil {
			return nil, fmt.Errorf("scan job: %w", err)
		}
		jobs = append(jobs, j)
	}
	return jobs, rows.Err()
}

// Get returns one record by ID, or nil when absent.
func (s *Postgres) Get(ctx context.Context, id string) (*types.Job, error) {
	j, err := scanJob(s.pool.QueryRow(ctx, `SELECT `+selectColumns+` FROM jobs WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get job %s: %w", id, err)
	}
	return &j, nil
}

// UpdateStatus changes a record's status field only.
func (s *Postgres) UpdateStatus(ctx context.Context, id, status string) error {
	tag, err := s.pool.Exec(ctx,
		`UPDATE jobs SET status = $1, updated_at = NOW() WHERE id = $2`, status, id)
	if err != nil {
		return fmt.Errorf("update status for %s: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("job %s not found", id)
	}
	return nil
}

// Delete removes a record. Deletion is a user-triggered administrative
// action; the pipeline never deletes.
func (s *Postgres) Delete(ctx context.Context, id string) error {
	_, err := s.pool.Exec(ctx, `DELETE FROM jobs WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete job %s: %w", id, err)
	}
	return nil
}
