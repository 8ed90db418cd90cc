// Package render turns LLM-drafted application documents into PDF artifacts
// with a headless browser.
package render

import (
	"context"
	"fmt"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/Amretha-Karthikeyan/job-hunt-app/internal/drafts"
	"github.com/Amretha-Karthikeyan/job-hunt-app/internal/llm"
	"github.com/Amretha-Karthikeyan/job-hunt-app/internal/types"
)

// RenderTimeout is the hard budget for one render call. A timeout is a soft
// failure for that record, never fatal to the run.
const RenderTimeout = 30 * time.Second

// Request describes the documents to produce for one job record.
type Request struct {
	Role        string
	Company     string
	Description string
	RoleType    string
}

// Result carries the rendered artifacts. VariantTag records which document
// strategy was used ("ai-featured" or "product-transition").
type Result struct {
	ResumePDF      []byte
	ResumeFilename string
	CoverPDF       []byte
	CoverFilename  string
	VariantTag     string
}

// Renderer produces application document artifacts for a job record.
type Renderer interface {
	Render(ctx context.Context, req Request, profile types.Profile) (*Result, error)
}

// PDFEngine converts an HTML document into PDF bytes. The chromedp engine is
// the production implementation.
type PDFEngine interface {
	HTMLToPDF(ctx context.Context, html string) ([]byte, error)
}

// DocumentRenderer drafts resume and cover letter text via the LLM, wraps
// them in a print stylesheet, and prints both to PDF.
type DocumentRenderer struct {
	drafter *drafts.Drafter
	engine  PDFEngine
}

// NewDocumentRenderer wires the drafter to a PDF engine.
func NewDocumentRenderer(client llm.Client, engine PDFEngine) *DocumentRenderer {
	return &DocumentRenderer{drafter: drafts.NewDrafter(client), engine: engine}
}

// Render implements Renderer. The whole call, both LLM drafts and both PDF
// prints included, runs under RenderTimeout.
func (r *DocumentRenderer) Render(ctx context.Context, req Request, profile types.Profile) (*Result, error) {
	ctx, cancel := context.WithTimeout(ctx, RenderTimeout)
	defer cancel()

	draftReq := drafts.Request{
		Role:     req.Role,
		Company:  req.Company,
		RoleType: req.RoleType,
		JD:       req.Description,
	}

	var resumeText, coverText string
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		text, _, err := r.drafter.TailorResume(gctx, draftReq, profile)
		resumeText = text
		return err
	})
	g.Go(func() error {
		text, err := r.drafter.CoverLetter(gctx, draftReq, profile)
		coverText = text
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("draft documents: %w", err)
	}

	resumePDF, err := r.engine.HTMLToPDF(ctx, documentHTML(profile.Name+" — Resume", resumeText))
	if err != nil {
		return nil, fmt.Errorf("print resume: %w", err)
	}
	coverPDF, err := r.engine.HTMLToPDF(ctx, documentHTML(profile.Name+" — Cover Letter", coverText))
	if err != nil {
		return nil, fmt.Errorf("print cover letter: %w", err)
	}

	variant := "product-transition"
	if drafts.IsAIRole(req.Description, req.RoleType) {
		variant = "ai-featured"
	}

	slug := filenameSlug(req.Company, req.Role)
	return &Result{
		ResumePDF:      resumePDF,
		ResumeFilename: fmt.Sprintf("resume-%s.pdf", slug),
		CoverPDF:       coverPDF,
		CoverFilename:  fmt.Sprintf("cover-%s.pdf", slug),
		VariantTag:     variant,
	}, nil
}

func filenameSlug(company, role string) string {
	s := strings.ToLower(strings.TrimSpace(company + "-" + role))
	var b strings.Builder
	lastDash := true
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z' || r >= '0' && r <= '9':
			b.WriteRune(r)
			lastDash = false
		default:
			if !lastDash {
				b.WriteByte('-')
				lastDash = true
			}
		}
	}
	return strings.Trim(b.String(), "-")
}
