package models

// SemesterSource records which constructor produced a SemesterRecord.
type SemesterSource string

const (
	// SourceComputed marks a GPA aggregated from subject grade points.
	SourceComputed SemesterSource = "computed"
	// SourceDirect marks a GPA entered directly by the user.
	SourceDirect SemesterSource = "direct"
)

// SemesterRecord is one completed semester in a transcript.
// GPA is kept at full precision; rounding happens at display time.
type SemesterRecord struct {
	Index       int            `json:"semester"`
	GPA         float64        `json:"gpa"`
	CreditHours float64        `json:"credit_hours"`
	Source      SemesterSource `json:"source"`
}

// SemesterResult is a semester together with the subjects it was built from.
// NoData is set when no subject contributed credit hours.
type SemesterResult struct {
	Record   SemesterRecord  `json:"record"`
	Subjects []SubjectResult `json:"subjects,omitempty"`
	NoData   bool            `json:"no_data,omitempty"`
	Error    string          `json:"error,omitempty"`
}

// Rejected counts the subjects that failed validation.
func (s SemesterResult) Rejected() int {
	n := 0
	for _, sub := range s.Subjects {
		if sub.Rejected {
			n++
		}
	}
	return n
}
