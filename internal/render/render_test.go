package render

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Amretha-Karthikeyan/job-hunt-app/internal/llm"
	"github.com/Amretha-Karthikeyan/job-hunt-app/internal/profile"
)

type stubLLM struct {
	err error
}

func (s *stubLLM) GenerateContent(_ context.Context, prompt string, _ llm.ModelTier) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	if strings.Contains(prompt, "cover letter") {
		return "Dear hiring manager,\n\nI build products.", nil
	}
	return "Amretha Karthikeyan\n\nProduct Owner", nil
}

func (s *stubLLM) GenerateJSON(context.Context, string, llm.ModelTier) (string, error) {
	return "", errors.New("not used")
}

func (s *stubLLM) Close() error { return nil }

type stubEngine struct {
	calls int
	err   error
}

func (s *stubEngine) HTMLToPDF(_ context.Context, html string) ([]byte, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	return []byte("%PDF-" + html[:20]), nil
}

func TestRender_ProducesBothArtifacts(t *testing.T) {
	engine := &stubEngine{}
	r := NewDocumentRenderer(&stubLLM{}, engine)

	res, err := r.Render(context.Background(), Request{
		Role: "Product Owner", Company: "Acme Fintech", RoleType: "Product Owner",
		Description: "Own the loan platform backlog.",
	}, profile.Default())
	require.NoError(t, err)

	assert.Equal(t, 2, engine.calls)
	assert.NotEmpty(t, res.ResumePDF)
	assert.NotEmpty(t, res.CoverPDF)
	assert.Equal(t, "resume-acme-fintech-product-owner.pdf", res.ResumeFilename)
	assert.Equal(t, "cover-acme-fintech-product-owner.pdf", res.CoverFilename)
	assert.Equal(t, "product-transition", res.VariantTag)
}

func TestRender_AIVariantTag(t *testing.T) {
	r := NewDocumentRenderer(&stubLLM{}, &stubEngine{})
	res, err := r.Render(context.Background(), Request{
		Role: "AI PM", Company: "Acme", RoleType: "AI Product Manager",
		Description: "Ship LLM features.",
	}, profile.Default())
	require.NoError(t, err)
	assert.Equal(t, "ai-featured", res.VariantTag)
}

func TestRender_DraftFailureIsReported(t *testing.T) {
	r := NewDocumentRenderer(&stubLLM{err: errors.New("rate limited")}, &stubEngine{})
	_, err := r.Render(context.Background(), Request{Role: "PM"}, profile.Default())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "draft documents")
}

func TestRender_EngineFailureIsReported(t *testing.T) {
	r := NewDocumentRenderer(&stubLLM{}, &stubEngine{err: errors.New("chrome not found")})
	_, err := r.Render(context.Background(), Request{Role: "PM"}, profile.Default())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "print resume")
}

func TestDocumentHTML_EscapesContent(t *testing.T) {
	out := documentHTML("T & T", "First <b>para</b>\n\nSecond para")
	assert.Contains(t, out, "T &amp; T")
	assert.Contains(t, out, "&lt;b&gt;para&lt;/b&gt;")
	assert.Equal(t, 2, strings.Count(out, "<p>"))
}

func TestFilenameSlug(t *testing.T) {
	assert.Equal(t, "acme-pte-ltd-senior-pm", filenameSlug("Acme Pte. Ltd.", "Senior PM"))
	assert.Equal(t, "product-owner", filenameSlug("", "Product Owner"))
}
