package drafts

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/Amretha-Karthikeyan/job-hunt-app/internal/scoring"
	"github.com/Amretha-Karthikeyan/job-hunt-app/internal/types"
)

// Request carries the job context every draft prompt needs.
type Request struct {
	Role     string
	Company  string
	RoleType string
	JD       string
}

func (r Request) company() string {
	if r.Company == "" {
		return "the company"
	}
	return r.Company
}

func (r Request) roleType() string {
	if r.RoleType == "" {
		return "Business Analyst"
	}
	return r.RoleType
}

func profileJSON(p types.Profile) string {
	b, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return p.Name
	}
	return string(b)
}

// TailorResumePrompt builds the full ATS-optimised resume rewrite prompt.
func TailorResumePrompt(req Request, p types.Profile) string {
	aiRole := IsAIRole(req.JD, req.roleType())

	var sb strings.Builder
	sb.WriteString("You are an expert resume writer helping candidates transition into in-house product roles.\n")
	sb.WriteString(scoring.ProductFraming())
	sb.WriteString("\n\n")
	fmt.Fprintf(&sb, "Rewrite the following candidate's resume to match the job description. Target role: %s.\n\n", req.roleType())
	fmt.Fprintf(&sb, "CANDIDATE PROFILE:\n%s\n\n", profileJSON(p))
	fmt.Fprintf(&sb, "JOB DESCRIPTION:\n%s\n\n", req.JD)
	if aiRole {
		fmt.Fprintf(&sb, "AI ROLE DETECTED: Prominently feature the AI Project section with the live URL: %s. Lead Skills with AI/LLM skills.\n\n", p.AIProjectURL)
	}
	sb.WriteString("Write a complete ATS-optimised resume with:\n")
	if aiRole {
		fmt.Fprintf(&sb, "- Header (name, contact, LinkedIn, %s)\n", p.AIProjectURL)
	} else {
		sb.WriteString("- Header (name, contact, LinkedIn)\n")
	}
	sb.WriteString("- Professional Summary (product-ownership framing, keyword-rich)\n")
	if aiRole {
		sb.WriteString("- AI & Innovation / Projects section (FIRST after summary for AI roles)\n")
	}
	sb.WriteString("- Core Skills\n")
	sb.WriteString("- Professional Experience (product language throughout, real metrics)\n")
	sb.WriteString("- Education & Certifications\n\n")
	sb.WriteString("Do not fabricate experience. Use product language, not consulting language.")
	return sb.String()
}

// CoverLetterPrompt builds the 300-350 word cover letter prompt.
func CoverLetterPrompt(req Request, p types.Profile) string {
	aiRole := IsAIRole(req.JD, req.roleType())

	var sb strings.Builder
	fmt.Fprintf(&sb, "Write a professional 300-350 word cover letter for %s applying to %s at %s.\n", p.Name, req.roleType(), req.company())
	sb.WriteString(scoring.ProductFraming())
	sb.WriteString("\n\nKEY ACHIEVEMENTS:\n")
	sb.WriteString("- At KPMG: drove ~5% business value through product scope decisions\n")
	sb.WriteString("- At KPMG: eliminated 30 man-days through automation feature\n")
	sb.WriteString("- SAFe 6.0 certified Product Owner/Product Manager\n")
	fmt.Fprintf(&sb, "- Personal AI Project: Built and deployed live Trade Analysis platform using Claude Opus 4.6 — %s\n\n", p.AIProjectURL)
	fmt.Fprintf(&sb, "JOB DESCRIPTION:\n%s\n\n", req.JD)
	if aiRole {
		fmt.Fprintf(&sb, "IMPORTANT — AI ROLE: Mention the live Trade Analysis platform (%s) as hard proof she ships AI products. Include the URL.\n\n", p.AIProjectURL)
	}
	sb.WriteString("Write a compelling cover letter that:\n")
	sb.WriteString("1. Opens with a confident hook about building products, not delivering services\n")
	sb.WriteString("2. Highlights KPMG metrics (5% value, 30 man-days)\n")
	if aiRole {
		sb.WriteString("3. Mentions live AI project with URL as key differentiator\n")
	} else {
		sb.WriteString("3. Bridges consulting delivery to product ownership\n")
	}
	fmt.Fprintf(&sb, "4. Shows genuine enthusiasm for %s\n", req.company())
	sb.WriteString("5. Ends with clear call to action\n\n")
	sb.WriteString("Exactly 300-350 words. No consulting jargon. Sound like a product person.")
	return sb.String()
}

// InterviewPrepPrompt builds the structured interview prep guide prompt.
func InterviewPrepPrompt(req Request, p types.Profile) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Generate a comprehensive interview prep guide for %s interviewing at %s for %s.\n", p.Name, req.company(), req.roleType())
	sb.WriteString(scoring.ProductFraming())
	sb.WriteString("\n\nCANDIDATE:\n")
	sb.WriteString("- KPMG Singapore (Feb 2021–Present): De-facto Product Owner for Loan IQ. Drove 5% business value, saved 30 man-days through automation, led sprint-to-SIT delivery\n")
	sb.WriteString("- J.P. Morgan (Oct 2023–Jan 2024): Portfolio KPI analysis, requirement gathering\n")
	sb.WriteString("- Amazon India (Mar 2018–Mar 2019): Power BI dashboards, data products\n")
	sb.WriteString("- SAFe 6.0 certified, Agile, JIRA, SQL, Tableau, Power BI\n")
	fmt.Fprintf(&sb, "- Built and deployed live AI Trade Analysis platform: %s\n", p.AIProjectURL)
	if req.JD != "" {
		fmt.Fprintf(&sb, "JD: %s\n", req.JD)
	}
	sb.WriteString("\nCreate prep with these EXACT sections:\n\n")
	sb.WriteString("## 5 Behavioral Questions with STAR Answers\n")
	sb.WriteString("For each: the question, then full STAR answer using her real experience with specific metrics.\n\n")
	fmt.Fprintf(&sb, "## 5 Technical Questions for %s\n", req.roleType())
	sb.WriteString("Questions with model answers specific to this role.\n\n")
	fmt.Fprintf(&sb, "## 3 Things to Research About %s\n", req.company())
	sb.WriteString("Specific actionable research areas.\n\n")
	sb.WriteString("## 5 Smart Questions to Ask the Interviewer\n")
	sb.WriteString("Product-minded questions that signal ownership thinking.\n\n")
	sb.WriteString("## Salary Negotiation Tip (Singapore Market)\n")
	sb.WriteString("Specific tip for SAFe-certified PO/BA with 5+ years in Singapore fintech.")
	return sb.String()
}

// FollowUpPrompt builds the short follow-up email prompt.
func FollowUpPrompt(req Request, p types.Profile, daysSince int) string {
	role := req.Role
	if role == "" {
		role = "the role"
	}
	return fmt.Sprintf(`Write a polite 3-line follow-up email from %s about her application for %s at %s, submitted %d days ago.
Include: subject line, brief message referencing the role, continued interest, offer to provide more info.
Under 80 words. Ready to copy-paste. Professional and confident.`, p.Name, role, req.company(), daysSince)
}

// SpeedAnswerPrompt builds the 3-sentence "why this company" answer prompt.
func SpeedAnswerPrompt(req Request, p types.Profile) string {
	role := req.Role
	if role == "" {
		role = "this role"
	}
	return fmt.Sprintf(`Write a genuine 3-sentence "Why do you want to work at %s?" answer for %s, a SAFe 6.0 PO/Lead BA transitioning from KPMG to an in-house %s role. Be specific to %s's product/market. Sound like a product person who wants to build. No consulting language.`,
		req.company(), p.Name, role, req.company())
}

// fullKitResumePrompt and friends are the compact single-line variants used
// when drafting all three documents in one shot.
func fullKitResumePrompt(req Request, p types.Profile) string {
	aiNote := ""
	if IsAIRole(req.JD, req.roleType()) {
		aiNote = fmt.Sprintf(" AI role: feature project %s prominently.", p.AIProjectURL)
	}
	return fmt.Sprintf("Write ATS-optimised resume for %s applying to %s at %s (%s). %s Profile: %s. JD: %s.%s",
		p.Name, req.Role, req.company(), req.roleType(), scoring.ProductFraming(), profileJSON(p), req.JD, aiNote)
}

func fullKitCoverPrompt(req Request, p types.Profile) string {
	aiNote := ""
	if IsAIRole(req.JD, req.roleType()) {
		aiNote = fmt.Sprintf(" Mention live AI project: %s.", p.AIProjectURL)
	}
	return fmt.Sprintf("Write 300-word cover letter for %s for %s at %s. Highlight: 5%% KPMG value, 30 man-days saved, SAFe 6.0.%s Product language, no consulting jargon.",
		p.Name, req.Role, req.company(), aiNote)
}

func fullKitPrepPrompt(req Request, p types.Profile) string {
	return fmt.Sprintf("Give top 5 interview questions for %s at %s with brief model answers for %s (KPMG PO, SAFe 6.0, AI project at %s). Be specific.",
		req.roleType(), req.company(), p.Name, p.AIProjectURL)
}
