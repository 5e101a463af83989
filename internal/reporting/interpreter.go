package reporting

import (
	"fmt"
	"strings"

	"github.com/spboyer/cgpa/internal/aggregate"
	"github.com/spboyer/cgpa/internal/metrics"
	"github.com/spboyer/cgpa/internal/models"
)

// InterpretCGPA returns a plain-language label for a grade point average.
func InterpretCGPA(cgpa float64) string {
	switch v := aggregate.Round2(cgpa); {
	case v >= 3.5:
		return "Excellent (3.50 and above)"
	case v >= 3.0:
		return "Good (3.00-3.49)"
	case v >= 2.0:
		return "Satisfactory (2.00-2.99)"
	default:
		return "Below 2.00"
	}
}

// InterpretTrend compares the last two semester GPAs.
func InterpretTrend(trend []models.TrendPoint) string {
	if len(trend) < 2 {
		return "Not enough semesters to show a trend."
	}
	prev, last := trend[len(trend)-2], trend[len(trend)-1]
	diff := aggregate.Round2(last.GPA) - aggregate.Round2(prev.GPA)
	switch {
	case diff > 0.005:
		return fmt.Sprintf("Improving: semester %d GPA is %.2f above semester %d.", last.Semester, diff, prev.Semester)
	case diff < -0.005:
		return fmt.Sprintf("Declining: semester %d GPA is %.2f below semester %d.", last.Semester, -diff, prev.Semester)
	default:
		return fmt.Sprintf("Steady: semester %d GPA matches semester %d.", last.Semester, prev.Semester)
	}
}

// FormatSummaryReport produces a short plain-language summary of a report.
func FormatSummaryReport(r *models.Report) string {
	var b strings.Builder

	b.WriteString("=== Interpretation ===\n\n")
	if r.NoData {
		b.WriteString("Please calculate GPA for at least one semester first.\n")
		return b.String()
	}

	b.WriteString(fmt.Sprintf("Standing:  %s\n", InterpretCGPA(r.CGPA)))
	b.WriteString(fmt.Sprintf("Trend:     %s\n", InterpretTrend(r.Trend)))

	var best, worst *models.TrendPoint
	for i := range r.Trend {
		p := &r.Trend[i]
		if best == nil || p.GPA > best.GPA {
			best = p
		}
		if worst == nil || p.GPA < worst.GPA {
			worst = p
		}
	}
	if len(r.Trend) > 1 {
		b.WriteString(fmt.Sprintf("Best:      semester %d (%.2f)\n", best.Semester, aggregate.Round2(best.GPA)))
		b.WriteString(fmt.Sprintf("Weakest:   semester %d (%.2f)\n", worst.Semester, aggregate.Round2(worst.GPA)))

		gpas := make([]float64, len(r.Trend))
		for i, p := range r.Trend {
			gpas[i] = p.GPA
		}
		lo, hi := metrics.Range(gpas)
		b.WriteString(fmt.Sprintf("Spread:    %.2f-%.2f, std dev %.2f (%s)\n",
			aggregate.Round2(lo), aggregate.Round2(hi), metrics.StdDev(gpas), metrics.Consistency(gpas)))
	}
	if r.Rejected > 0 {
		b.WriteString(fmt.Sprintf("Skipped:   %d invalid entr%s left out of the averages\n", r.Rejected, plural(r.Rejected, "y", "ies")))
	}
	return b.String()
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
