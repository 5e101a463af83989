// Package reporting renders calculation results for the terminal.
package reporting

import (
	"fmt"
	"io"
	"strings"

	"github.com/mattn/go-runewidth"
	"github.com/spboyer/cgpa/internal/aggregate"
	"github.com/spboyer/cgpa/internal/calculator"
	"github.com/spboyer/cgpa/internal/models"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// printer formats numbers with grouping separators, e.g. "1,234.5".
var printer = message.NewPrinter(language.English)

// Column widths (display columns) for the subject table.
const (
	colMarks   = 12
	colPct     = 11
	colGrade   = 6
	colPoints  = 7
	colCredits = 8

	minNameWidth = 7
	maxNameWidth = 28
)

// WriteTranscript prints every semester's subjects, its GPA and the CGPA.
func WriteTranscript(w io.Writer, r *models.Report) {
	title := "TRANSCRIPT"
	if r.Student != "" {
		title += ": " + r.Student
	}
	title += fmt.Sprintf(" (policy %s)", r.Policy)

	nameWidth := minNameWidth
	for _, s := range r.Semesters {
		for _, sub := range s.Subjects {
			if sw := runewidth.StringWidth(sub.Name); sw > nameWidth {
				nameWidth = sw
			}
		}
	}
	if nameWidth > maxNameWidth {
		nameWidth = maxNameWidth
	}
	totalWidth := nameWidth + colMarks + colPct + colGrade + colPoints + colCredits + 10 // 10 = 5 gaps × 2 spaces

	rule := strings.Repeat("═", totalWidth)
	fmt.Fprintf(w, "%s\n %s\n%s\n", rule, title, rule) //nolint:errcheck

	for _, s := range r.Semesters {
		fmt.Fprintf(w, "\nSemester %d", s.Record.Index) //nolint:errcheck
		if s.Record.Source == models.SourceDirect {
			fmt.Fprint(w, " (GPA entered directly)") //nolint:errcheck
		}
		fmt.Fprintln(w) //nolint:errcheck

		if len(s.Subjects) > 0 {
			fmt.Fprintf(w, "%s  %s  %s  %s  %s  %s\n", //nolint:errcheck
				padRight("Subject", nameWidth),
				padRight("Marks", colMarks),
				padRight("Percentage", colPct),
				padRight("Grade", colGrade),
				padRight("Points", colPoints),
				"Credits")
			fmt.Fprintf(w, "%s\n", strings.Repeat("─", totalWidth)) //nolint:errcheck
			for _, sub := range s.Subjects {
				writeSubject(w, sub, nameWidth)
			}
		}

		switch {
		case s.NoData:
			fmt.Fprintln(w, "  ⚠️  Please enter valid credit hours to calculate GPA.") //nolint:errcheck
		case s.Error != "":
			fmt.Fprintf(w, "  ❌ %s\n", s.Error) //nolint:errcheck
		default:
			fmt.Fprintf(w, "Semester %d GPA: %.2f (%s credit hours)\n", //nolint:errcheck
				s.Record.Index, aggregate.Round2(s.Record.GPA), credits(s.Record.CreditHours))
		}
	}

	fmt.Fprintf(w, "\n%s\n", strings.Repeat("─", totalWidth)) //nolint:errcheck
	WriteHeadline(w, r)
}

// WriteHeadline prints the single "Overall CGPA" line.
func WriteHeadline(w io.Writer, r *models.Report) {
	s := calculator.Summarize(r)
	if s.NoData {
		fmt.Fprintln(w, "Please calculate GPA for at least one semester first.") //nolint:errcheck
		return
	}
	fmt.Fprintf(w, "Overall CGPA after Semester %d: %.2f (%s credit hours)\n", //nolint:errcheck
		s.LastSemester, s.CGPA, credits(s.CreditHours))
}

func writeSubject(w io.Writer, sub models.SubjectResult, nameWidth int) {
	name := truncateName(sub.Name, nameWidth)
	if sub.Rejected {
		fmt.Fprintf(w, "%s  %s  ❌ %s\n", padRight(name, nameWidth), padRight(sub.Marks, colMarks), sub.Error) //nolint:errcheck
		return
	}
	fmt.Fprintf(w, "%s  %s  %s  %s  %s  %s\n", //nolint:errcheck
		padRight(name, nameWidth),
		padRight(sub.Marks, colMarks),
		padRight(sub.Percentage, colPct),
		padRight(sub.Grade, colGrade),
		padRight(fmt.Sprintf("%.2f", sub.GradePoint), colPoints),
		credits(sub.CreditHours))
}

// BatchRow is one line of a batch summary.
type BatchRow struct {
	File   string
	Report *models.Report
	Err    error
}

// WriteBatch prints one summary line per transcript file.
func WriteBatch(w io.Writer, rows []BatchRow) {
	nameWidth := minNameWidth
	for _, row := range rows {
		if sw := runewidth.StringWidth(row.File); sw > nameWidth {
			nameWidth = sw
		}
	}
	if nameWidth > maxNameWidth*2 {
		nameWidth = maxNameWidth * 2
	}
	const colStudent, colSems, colCGPA, colStatus = 20, 10, 8, 16
	totalWidth := nameWidth + colStudent + colSems + colCredits + colCGPA + colStatus + 10

	fmt.Fprintf(w, "%s  %s  %s  %s  %s  %s\n", //nolint:errcheck
		padRight("File", nameWidth),
		padRight("Student", colStudent),
		padRight("Semesters", colSems),
		padRight("Credits", colCredits),
		padRight("CGPA", colCGPA),
		"Status")
	fmt.Fprintf(w, "%s\n", strings.Repeat("─", totalWidth)) //nolint:errcheck

	for _, row := range rows {
		file := truncateName(row.File, nameWidth)
		if row.Err != nil {
			fmt.Fprintf(w, "%s  ❌ %v\n", padRight(file, nameWidth), row.Err) //nolint:errcheck
			continue
		}
		r := row.Report
		cgpa, status := fmt.Sprintf("%.2f", aggregate.Round2(r.CGPA)), "✅"
		switch {
		case r.NoData:
			cgpa, status = "-", "no data"
		case r.Rejected > 0:
			status = fmt.Sprintf("⚠️  %d rejected", r.Rejected)
		}
		fmt.Fprintf(w, "%s  %s  %s  %s  %s  %s\n", //nolint:errcheck
			padRight(file, nameWidth),
			padRight(truncateName(orDash(r.Student), colStudent), colStudent),
			padRight(fmt.Sprintf("%d", len(r.Trend)), colSems),
			padRight(credits(r.TotalCreditHours), colCredits),
			padRight(cgpa, colCGPA),
			status)
	}
}

func credits(v float64) string {
	if v == float64(int64(v)) {
		return printer.Sprintf("%d", int64(v))
	}
	return printer.Sprintf("%.1f", v)
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

// truncateName shortens a name to maxLen runes, replacing the last rune with "…" if needed.
func truncateName(name string, maxLen int) string {
	runes := []rune(name)
	if len(runes) <= maxLen {
		return name
	}
	return string(runes[:maxLen-1]) + "…"
}

// padRight pads s with spaces so its terminal display width reaches width.
func padRight(s string, width int) string {
	sw := runewidth.StringWidth(s)
	if sw >= width {
		return s
	}
	return s + strings.Repeat(" ", width-sw)
}
