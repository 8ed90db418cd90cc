package profile

import "github.com/Amretha-Karthikeyan/job-hunt-app/internal/types"

// Default returns the built-in candidate profile.
func Default() types.Profile {
	return types.Profile{
		Name:         "Amretha Karthikeyan",
		Address:      "#02-321 153 Gangsa Road, Singapore-670153",
		Mobile:       "+65-90256503",
		Email:        "amretha.ammu@gmail.com",
		LinkedIn:     "https://www.linkedin.com/in/amretha-nishanth-534b39101/",
		Headline:     "Product Owner | Lead BA | Fintech & Digital Products · Singapore",
		AIProjectURL: "https://stock-monitor-8ak6.onrender.com",
		Summary: "SAFe 6.0 certified Product Owner and Lead Business Analyst with 5+ years owning " +
			"product backlogs and driving digital product delivery in fintech and banking. " +
			"At KPMG Singapore, served as de-facto Product Owner for Loan IQ — a core banking " +
			"platform — leading cross-functional squads (engineering, UX, QA) to ship features " +
			"and deliver measurable business outcomes. Built and deployed a live AI-powered Trade " +
			"Analysis platform using Claude Opus 4.6. Seeking in-house product roles to own " +
			"roadmaps end-to-end, from discovery through to scale.",
		Skills: []string{
			"Tableau", "Power BI", "PSQL", "Python", "Agile", "JIRA", "Excel",
			"Microsoft Project", "Product Vision", "Roadmapping", "Business Analysis",
			"Risk Mitigation", "Change Management", "Budget Forecasting", "Variance Analysis",
			"KPI Tracking", "Dashboard Reporting", "SAFe 6.0", "API integrations",
			"Loan IQ", "SQL", "Stakeholder Management", "Generative AI", "LLM",
			"Claude API", "AI product development", "Prompt Engineering",
		},
		Certification: "Scaled Agile Framework 6.0 Product Owner/Product Management",
		Experience: []types.Experience{
			{
				Company: "KPMG, Singapore",
				Role:    "Lead Business Analyst – Functional Consultant – Loan IQ",
				Period:  "Feb 2021 – Present",
				Bullets: []string{
					"Served as de-facto Product Owner for Loan IQ core banking platform, owning the product backlog and driving sprint delivery for a cross-functional squad (engineering, UX, QA)",
					"Partnered with Enterprise Singapore on large-scale digital transformation projects",
					"Drove product scope decisions through impact analysis, generating ~5% additional business value",
					"Identified and delivered automation of interest computation workflow, eliminating 30 man-days of manual effort",
					"Owned and prioritised product backlog, ensuring alignment with business objectives and regulatory requirements",
					"Led sprint ceremonies (planning, reviews, retros, PI Planning) across multi-squad programme",
					"Managed 3rd party vendors, conducted go-live planning, and led data migrations from legacy systems",
					"Designed and executed end-to-end test scenarios on Loan IQ applications (M&A, Trade, WCL, FA)",
				},
				Achievements: []string{
					"Drove ~5% business value through product scope and change request impact analysis",
					"Eliminated 30 man-days of manual work through automated interest computation feature",
					"Led team through critical sprint-to-SIT transition, maintaining delivery timeline",
				},
			},
			{
				Company: "J.P. Morgan",
				Role:    "Asset Management Virtual Internship",
				Period:  "Oct 2023 – Jan 2024",
				Bullets: []string{
					"Gathered product requirements from trading/execution teams to build robust investor profiles",
					"Performed quantitative analysis of 5 stocks and recommended to 2 clients based on risk metrics",
					"Measured portfolio performance via KPIs: Annual Return, Portfolio Variance, Standard Deviation",
				},
			},
			{
				Company: "Amazon Inc, India",
				Role:    "Business Analyst",
				Period:  "Mar 2018 – Mar 2019",
				Bullets: []string{
					"Built real-time quality monitoring dashboards using Power BI from SQL Server and MS Excel",
					"Translated business requirements into functional and non-functional specifications",
					"Analysed and visualised operational data using Tableau and Power BI",
				},
			},
		},
		Education: []types.Education{
			{Degree: "Master of Science – Engineering Business Management", School: "Coventry University, UK", Period: "Jul 2019 – Nov 2020"},
			{Degree: "Bachelor of Engineering – Electronics & Communication", School: "Anna University, India", Period: "Jul 2012 – Jun 2016"},
		},
		Projects: []types.Project{
			{
				Title:  "AI-Powered Trade Analysis Platform",
				Type:   "Personal Project",
				Period: "2025",
				URL:    "https://stock-monitor-8ak6.onrender.com",
				Tech:   "Claude Opus 4.6 (Anthropic), Python, Flask, Render",
				Bullets: []string{
					"Designed and deployed a live AI-powered Trade Analysis platform using Claude Opus 4.6 — accessible at https://stock-monitor-8ak6.onrender.com",
					"Combined financial trade data and international trade flow analysis using generative AI",
					"Demonstrated end-to-end AI product development: problem definition, prompt engineering, LLM integration, Flask backend, and Render deployment",
					"Independently shipped a working AI product — demonstrating product ownership beyond theory",
				},
			},
		},
	}
}
