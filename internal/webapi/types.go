package webapi

import "github.com/spboyer/cgpa/internal/models"

// HealthResponse is the health check response.
type HealthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version"`
}

// ErrorResponse is returned for errors. Problems lists schema violations
// when the request body did not match the transcript schema.
type ErrorResponse struct {
	Error    string   `json:"error"`
	Code     int      `json:"code"`
	Problems []string `json:"problems,omitempty"`
}

// BandInfo is one grade band of a policy.
type BandInfo struct {
	Threshold float64 `json:"threshold"`
	Label     string  `json:"label"`
	Points    float64 `json:"points"`
}

// PolicySummary is the API response for a policy in the list.
type PolicySummary struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Default     bool   `json:"default,omitempty"`
}

// PolicyDetail is the API response for a single policy with its bands.
type PolicyDetail struct {
	PolicySummary
	Bands []BandInfo        `json:"bands"`
	Floor models.GradePoint `json:"floor"`
}

// GradeRequest asks for the grade of a single subject. Credits defaults
// to 1 so a bare marks/total lookup still yields weighted points.
type GradeRequest struct {
	Name    string   `json:"name,omitempty"`
	Marks   float64  `json:"marks"`
	Total   float64  `json:"total"`
	Credits *float64 `json:"credits,omitempty"`
	Policy  string   `json:"policy,omitempty"`
}

// GradeResponse is the evaluated subject plus the policy that graded it.
type GradeResponse struct {
	models.SubjectResult
	Policy string `json:"policy"`
}
