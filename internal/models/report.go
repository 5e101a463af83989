package models

// TrendPoint is the CGPA after a given semester.
type TrendPoint struct {
	Semester int     `json:"semester"`
	GPA      float64 `json:"gpa"`
	CGPA     float64 `json:"cgpa"`
}

// Report is the complete output of one transcript calculation.
type Report struct {
	Student          string           `json:"student,omitempty"`
	Policy           string           `json:"policy"`
	Semesters        []SemesterResult `json:"semesters"`
	CGPA             float64          `json:"cgpa"`
	TotalCreditHours float64          `json:"total_credit_hours"`
	NoData           bool             `json:"no_data,omitempty"`
	Trend            []TrendPoint     `json:"trend,omitempty"`
	Rejected         int              `json:"rejected,omitempty"`
}

// LastSemester returns the index of the latest semester that made it into
// the CGPA, or 0 when there is none.
func (r *Report) LastSemester() int {
	if len(r.Trend) == 0 {
		return 0
	}
	return r.Trend[len(r.Trend)-1].Semester
}
