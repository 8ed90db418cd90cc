package drafts

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/Amretha-Karthikeyan/job-hunt-app/internal/llm"
	"github.com/Amretha-Karthikeyan/job-hunt-app/internal/types"
)

// Kit bundles the three documents drafted in one full-kit call.
type Kit struct {
	Resume   string `json:"resume"`
	Cover    string `json:"cover"`
	Prep     string `json:"prep"`
	IsAIRole bool   `json:"is_ai_role"`
}

// Drafter generates application documents through the LLM client.
type Drafter struct {
	client llm.Client
}

// NewDrafter wraps an LLM client.
func NewDrafter(client llm.Client) *Drafter {
	return &Drafter{client: client}
}

// TailorResume drafts a full ATS-optimised resume for one job.
func (d *Drafter) TailorResume(ctx context.Context, req Request, p types.Profile) (string, bool, error) {
	text, err := d.client.GenerateContent(ctx, TailorResumePrompt(req, p), llm.TierStandard)
	if err != nil {
		return "", false, fmt.Errorf("tailor resume: %w", err)
	}
	return text, IsAIRole(req.JD, req.roleType()), nil
}

// CoverLetter drafts the 300-350 word cover letter.
func (d *Drafter) CoverLetter(ctx context.Context, req Request, p types.Profile) (string, error) {
	text, err := d.client.GenerateContent(ctx, CoverLetterPrompt(req, p), llm.TierStandard)
	if err != nil {
		return "", fmt.Errorf("cover letter: %w", err)
	}
	return text, nil
}

// InterviewPrep drafts the structured prep guide.
func (d *Drafter) InterviewPrep(ctx context.Context, req Request, p types.Profile) (string, error) {
	text, err := d.client.GenerateContent(ctx, InterviewPrepPrompt(req, p), llm.TierAdvanced)
	if err != nil {
		return "", fmt.Errorf("interview prep: %w", err)
	}
	return text, nil
}

// FollowUp drafts the short follow-up email.
func (d *Drafter) FollowUp(ctx context.Context, req Request, p types.Profile, daysSince int) (string, error) {
	text, err := d.client.GenerateContent(ctx, FollowUpPrompt(req, p, daysSince), llm.TierLite)
	if err != nil {
		return "", fmt.Errorf("follow-up: %w", err)
	}
	return text, nil
}

// SpeedAnswer drafts the 3-sentence "why this company" answer.
func (d *Drafter) SpeedAnswer(ctx context.Context, req Request, p types.Profile) (string, error) {
	text, err := d.client.GenerateContent(ctx, SpeedAnswerPrompt(req, p), llm.TierLite)
	if err != nil {
		return "", fmt.Errorf("speed answer: %w", err)
	}
	return text, nil
}

// Generic runs a caller-supplied prompt, optionally prefixed with a system
// prompt.
func (d *Drafter) Generic(ctx context.Context, system, prompt string) (string, error) {
	full := prompt
	if system != "" {
		full = system + "\n\n" + prompt
	}
	text, err := d.client.GenerateContent(ctx, full, llm.TierStandard)
	if err != nil {
		return "", fmt.Errorf("generic draft: %w", err)
	}
	return text, nil
}

// FullKit drafts resume, cover letter, and prep notes in parallel. All three
// calls must succeed; a single failure fails the kit.
func (d *Drafter) FullKit(ctx context.Context, req Request, p types.Profile) (*Kit, error) {
	kit := &Kit{IsAIRole: IsAIRole(req.JD, req.roleType())}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		text, err := d.client.GenerateContent(gctx, fullKitResumePrompt(req, p), llm.TierStandard)
		kit.Resume = text
		return err
	})
	g.Go(func() error {
		text, err := d.client.GenerateContent(gctx, fullKitCoverPrompt(req, p), llm.TierStandard)
		kit.Cover = text
		return err
	})
	g.Go(func() error {
		text, err := d.client.GenerateContent(gctx, fullKitPrepPrompt(req, p), llm.TierLite)
		kit.Prep = text
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("full kit: %w", err)
	}
	return kit, nil
}
