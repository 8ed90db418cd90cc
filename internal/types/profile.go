package types

// Experience is a single role on the candidate profile.
type Experience struct {
	Company      string   `json:"company"`
	Role         string   `json:"role"`
	Period       string   `json:"period"`
	Bullets      []string `json:"bullets"`
	Achievements []string `json:"achievements,omitempty"`
}

// Education is a degree entry on the candidate profile.
type Education struct {
	Degree string `json:"degree"`
	School string `json:"school"`
	Period string `json:"period"`
}

// Project is a personal or professional project on the candidate profile.
type Project struct {
	Title   string   `json:"title"`
	Type    string   `json:"type,omitempty"`
	Period  string   `json:"period,omitempty"`
	URL     string   `json:"url,omitempty"`
	Tech    string   `json:"tech,omitempty"`
	Bullets []string `json:"bullets,omitempty"`
}

// Profile is the candidate profile used to personalize every LLM prompt.
// The active profile is either the built-in default or a custom upload.
type Profile struct {
	Name          string       `json:"name"`
	Address       string       `json:"address,omitempty"`
	Mobile        string       `json:"mobile,omitempty"`
	Email         string       `json:"email,omitempty"`
	LinkedIn      string       `json:"linkedin,omitempty"`
	Headline      string       `json:"headline,omitempty"`
	Summary       string       `json:"summary,omitempty"`
	Skills        []string     `json:"skills,omitempty"`
	Certification string       `json:"certification,omitempty"`
	AIProjectURL  string       `json:"ai_project_url,omitempty"`
	Experience    []Experience `json:"experience,omitempty"`
	Education     []Education  `json:"education,omitempty"`
	Projects      []Project    `json:"projects,omitempty"`
}
