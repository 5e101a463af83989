package export

import (
	"bytes"
	"fmt"
	"html"
	"io"
	"strings"

	"github.com/spboyer/cgpa/internal/models"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

// Markdown renders the report as a GitHub-flavoured markdown document.
func Markdown(r *models.Report) string {
	var b strings.Builder

	title := "Transcript"
	if r.Student != "" {
		title += ": " + r.Student
	}
	fmt.Fprintf(&b, "# %s\n\nGrading policy: **%s**\n\n", mdEscape(title), mdEscape(r.Policy))

	for _, s := range r.Semesters {
		fmt.Fprintf(&b, "## Semester %d\n\n", s.Record.Index)
		if len(s.Subjects) > 0 {
			b.WriteString("| Subject | Marks | Percentage | Grade | Grade Point | Credit Hours |\n")
			b.WriteString("|---|---|---|---|---|---|\n")
			for _, sub := range s.Subjects {
				if sub.Rejected {
					fmt.Fprintf(&b, "| %s | %s | | | rejected: %s | %s |\n",
						mdEscape(sub.Name), sub.Marks, mdEscape(sub.Error), fmtCredits(sub.CreditHours))
					continue
				}
				fmt.Fprintf(&b, "| %s | %s | %s | %s | %s | %s |\n",
					mdEscape(sub.Name), sub.Marks, sub.Percentage, sub.Grade, fmt2(sub.GradePoint), fmtCredits(sub.CreditHours))
			}
			b.WriteString("\n")
		}
		switch {
		case s.NoData:
			b.WriteString("_Please enter valid credit hours to calculate GPA._\n\n")
		case s.Error != "":
			fmt.Fprintf(&b, "_Rejected: %s_\n\n", mdEscape(s.Error))
		default:
			fmt.Fprintf(&b, "**Semester %d GPA: %s** (%s credit hours)\n\n", s.Record.Index, fmt2(s.Record.GPA), fmtCredits(s.Record.CreditHours))
		}
	}

	b.WriteString("## Overall\n\n")
	if r.NoData {
		b.WriteString("_Please calculate GPA for at least one semester first._\n")
		return b.String()
	}
	fmt.Fprintf(&b, "**Overall CGPA after Semester %d: %s** (%s credit hours)\n\n", r.LastSemester(), fmt2(r.CGPA), fmtCredits(r.TotalCreditHours))
	b.WriteString("| Semester | GPA | CGPA |\n|---|---|---|\n")
	for _, p := range r.Trend {
		fmt.Fprintf(&b, "| %d | %s | %s |\n", p.Semester, fmt2(p.GPA), fmt2(p.CGPA))
	}
	return b.String()
}

var markdown = goldmark.New(goldmark.WithExtensions(extension.Table))

// WriteHTML renders the markdown report to a standalone HTML page.
func WriteHTML(w io.Writer, r *models.Report) error {
	var body bytes.Buffer
	if err := markdown.Convert([]byte(Markdown(r)), &body); err != nil {
		return fmt.Errorf("rendering html: %w", err)
	}

	title := "Transcript"
	if r.Student != "" {
		title += " - " + r.Student
	}
	_, err := fmt.Fprintf(w, `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>%s</title>
<style>
body { font-family: sans-serif; max-width: 60rem; margin: 2rem auto; }
table { border-collapse: collapse; }
th, td { border: 1px solid #ccc; padding: 0.3rem 0.6rem; }
</style>
</head>
<body>
%s</body>
</html>
`, html.EscapeString(title), body.String())
	return err
}

func mdEscape(s string) string {
	return strings.NewReplacer("|", `\|`, "*", `\*`, "_", `\_`).Replace(s)
}
