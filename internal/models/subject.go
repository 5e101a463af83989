package models

import (
	"fmt"
	"math"
)

// Subject is one course as entered by the user.
type Subject struct {
	Name          string  `json:"name,omitempty" yaml:"name,omitempty" mapstructure:"name"`
	MarksObtained float64 `json:"marks" yaml:"marks" mapstructure:"marks"`
	TotalMarks    float64 `json:"total" yaml:"total" mapstructure:"total"`
	CreditHours   float64 `json:"credits" yaml:"credits" mapstructure:"credits"`
}

// Percentage returns marks obtained as a percentage of total marks.
// ok is false when TotalMarks is not positive.
func (s Subject) Percentage() (pct float64, ok bool) {
	if !(s.TotalMarks > 0) || math.IsInf(s.TotalMarks, 0) {
		return 0, false
	}
	return s.MarksObtained / s.TotalMarks * 100, true
}

// MarksString renders marks the way transcripts show them, e.g. "85/100".
func (s Subject) MarksString() string {
	return fmt.Sprintf("%s/%s", trimFloat(s.MarksObtained), trimFloat(s.TotalMarks))
}

// GradePoint is a letter grade paired with its numeric value on the 4.0 scale.
type GradePoint struct {
	Label string  `json:"label"`
	Value float64 `json:"value"`
}

// SubjectResult is the presentation record for one evaluated subject.
// Rejected entries keep their inputs and carry the validation error.
type SubjectResult struct {
	Name           string  `json:"name"`
	Marks          string  `json:"marks"`
	Percentage     string  `json:"percentage,omitempty"`
	Grade          string  `json:"grade,omitempty"`
	GradePoint     float64 `json:"grade_point"`
	CreditHours    float64 `json:"credit_hours"`
	WeightedPoints float64 `json:"weighted_points"`
	Rejected       bool    `json:"rejected,omitempty"`
	Error          string  `json:"error,omitempty"`
}

func trimFloat(v float64) string {
	if v == math.Trunc(v) && !math.IsInf(v, 0) {
		return fmt.Sprintf("%.0f", v)
	}
	return fmt.Sprintf("%g", v)
}
