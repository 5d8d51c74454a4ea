package types

// SalaryForecast holds illustrative salary bands in LPA.
type SalaryForecast struct {
	Entry  float64 `json:"entry"`
	Mid    float64 `json:"mid"`
	Senior float64 `json:"senior"`
}

// DemandTrends holds demand metadata attached to a match.
type DemandTrends struct {
	CurrentIndex int      `json:"current_index"`
	Trend6M      string   `json:"trend_6m"`
	Regions      []string `json:"regions"`
}

// CareerMatch is one scored career recommendation.
type CareerMatch struct {
	Career         string         `json:"career"`
	MatchPercent   int            `json:"match_percent"`
	WhyMatch       []string       `json:"why_match"`
	Strengths      []string       `json:"strengths"`
	SkillGap       []string       `json:"skill_gap"`
	SalaryForecast SalaryForecast `json:"salary_forecast"`
	DemandTrends   DemandTrends   `json:"demand_trends"`
}

// PreviewSummary is the derived summary returned alongside matches.
type PreviewSummary struct {
	Language   string   `json:"language"`
	Overview   string   `json:"overview"`
	Highlights []string `json:"highlights"`
}

// AssessmentResult is the response body for an assessment run.
type AssessmentResult struct {
	Matches        []CareerMatch  `json:"matches"`
	PreviewSummary PreviewSummary `json:"preview_summary"`
}

// Roadmap describes a staged pathway toward a career.
type Roadmap struct {
	Career         string    `json:"career"`
	Summary        string    `json:"summary"`
	RequiredSkills []string  `json:"required_skills"`
	Stages         StageList `json:"roadmap"`
	Actions        []string  `json:"actions"`
}

// CareerTemplate is a persisted, curated override of the synthesized roadmap.
// Keyed by career name; upserts are last-write-wins.
type CareerTemplate struct {
	Career         string            `json:"career" validate:"required,min=1"`
	Summary        string            `json:"summary"`
	RequiredSkills []string          `json:"required_skills" validate:"required,min=1"`
	Stages         StageList         `json:"roadmap" validate:"required,min=1"`
	DefaultActions []string          `json:"default_actions" validate:"required"`
	Prompts        map[string]string `json:"prompts,omitempty"`
}
