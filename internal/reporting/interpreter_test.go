package reporting

import (
	"testing"

	"github.com/spboyer/cgpa/internal/models"
	"github.com/stretchr/testify/assert"
)

func TestInterpretCGPA(t *testing.T) {
	tests := []struct {
		name string
		cgpa float64
		want string
	}{
		{"perfect", 4.0, "Excellent (3.50 and above)"},
		{"excellent boundary", 3.5, "Excellent (3.50 and above)"},
		{"rounds up into excellent", 3.4999, "Excellent (3.50 and above)"},
		{"good high", 3.49, "Good (3.00-3.49)"},
		{"good low", 3.0, "Good (3.00-3.49)"},
		{"satisfactory", 2.5, "Satisfactory (2.00-2.99)"},
		{"satisfactory boundary", 2.0, "Satisfactory (2.00-2.99)"},
		{"below", 1.99, "Below 2.00"},
		{"zero", 0, "Below 2.00"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, InterpretCGPA(tt.cgpa))
		})
	}
}

func TestInterpretTrend(t *testing.T) {
	tests := []struct {
		name  string
		trend []models.TrendPoint
		want  string
	}{
		{"empty", nil, "Not enough semesters to show a trend."},
		{"single", []models.TrendPoint{{Semester: 1, GPA: 3}}, "Not enough semesters to show a trend."},
		{"improving", []models.TrendPoint{{Semester: 1, GPA: 3}, {Semester: 2, GPA: 3.5}}, "Improving: semester 2 GPA is 0.50 above semester 1."},
		{"declining", []models.TrendPoint{{Semester: 1, GPA: 3.5}, {Semester: 2, GPA: 3.25}}, "Declining: semester 2 GPA is 0.25 below semester 1."},
		{"steady", []models.TrendPoint{{Semester: 3, GPA: 3.001}, {Semester: 4, GPA: 2.999}}, "Steady: semester 4 GPA matches semester 3."},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, InterpretTrend(tt.trend))
		})
	}
}

func TestFormatSummaryReport(t *testing.T) {
	r := &models.Report{
		CGPA: 3.2,
		Trend: []models.TrendPoint{
			{Semester: 1, GPA: 3.6, CGPA: 3.6},
			{Semester: 2, GPA: 2.9, CGPA: 3.2},
		},
		Rejected: 2,
	}

	got := FormatSummaryReport(r)
	assert.Contains(t, got, "=== Interpretation ===")
	assert.Contains(t, got, "Standing:  Good (3.00-3.49)")
	assert.Contains(t, got, "Trend:     Declining")
	assert.Contains(t, got, "Best:      semester 1 (3.60)")
	assert.Contains(t, got, "Weakest:   semester 2 (2.90)")
	assert.Contains(t, got, "Spread:    2.90-3.60")
	assert.Contains(t, got, "(some variation)")
	assert.Contains(t, got, "Skipped:   2 invalid entries")
}

func TestFormatSummaryReport_NoData(t *testing.T) {
	got := FormatSummaryReport(&models.Report{NoData: true})
	assert.Contains(t, got, "Please calculate GPA for at least one semester first.")
	assert.NotContains(t, got, "Standing")
}
