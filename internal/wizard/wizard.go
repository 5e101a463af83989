// Package wizard collects a transcript interactively.
package wizard

import (
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/spboyer/cgpa/internal/gradetable"
	"github.com/spboyer/cgpa/internal/models"
	"golang.org/x/term"
)

// DefaultMaxSemesters caps how many semesters one session will ask for.
const DefaultMaxSemesters = 8

// Entry modes offered per semester.
const (
	ModeSubjects = "subjects"
	ModeGPA      = "gpa"
)

// Options tunes a wizard run.
type Options struct {
	Student      string
	MaxSemesters int
	// AllowOverMarks accepts marks obtained above the total marks.
	AllowOverMarks bool
}

type wizard struct {
	in             io.Reader
	out            io.Writer
	accessible     bool
	allowOverMarks bool
}

// RunTranscriptWizard asks for a student name, the number of semesters, and
// for each semester either its subjects or a GPA with credit hours.
func RunTranscriptWizard(in io.Reader, out io.Writer, opts Options) (*models.TranscriptDoc, error) {
	if opts.MaxSemesters <= 0 {
		opts.MaxSemesters = DefaultMaxSemesters
	}

	w := &wizard{in: in, out: out, allowOverMarks: opts.AllowOverMarks}
	// Use accessible mode for non-TTY input (e.g., tests, piped input).
	if f, ok := in.(*os.File); !ok || !term.IsTerminal(int(f.Fd())) {
		w.accessible = true
		// Each form reads through its own scanner; one byte at a time keeps
		// a form from swallowing lines meant for the next one.
		w.in = &byteReader{r: in}
	}

	student := opts.Student
	var countRaw string
	err := w.run(huh.NewGroup(
		huh.NewInput().
			Title("Student name").
			Description("Optional, used in report titles and export file names").
			Value(&student),
		huh.NewInput().
			Title("Number of semesters").
			Description(fmt.Sprintf("How many semesters to enter (1-%d)", opts.MaxSemesters)).
			Placeholder("2").
			Value(&countRaw).
			Validate(intInRange(1, opts.MaxSemesters)),
	))
	if err != nil {
		return nil, err
	}
	count, _ := strconv.Atoi(strings.TrimSpace(countRaw))

	doc := &models.TranscriptDoc{Student: strings.TrimSpace(student)}
	for i := 1; i <= count; i++ {
		sem, err := w.semester(i)
		if err != nil {
			return nil, err
		}
		doc.Semesters = append(doc.Semesters, sem)
	}
	return doc, nil
}

func (w *wizard) semester(index int) (models.SemesterDoc, error) {
	sem := models.SemesterDoc{Index: index}

	var mode string
	err := w.run(huh.NewGroup(
		huh.NewInput().
			Title(fmt.Sprintf("Semester %d entry", index)).
			Description("Type \"subjects\" to enter marks, or \"gpa\" to enter a known GPA").
			Placeholder(ModeSubjects).
			Value(&mode).
			Validate(func(s string) error {
				switch normalizeMode(s) {
				case ModeSubjects, ModeGPA:
					return nil
				}
				return fmt.Errorf("entry mode must be %q or %q", ModeSubjects, ModeGPA)
			}),
	))
	if err != nil {
		return sem, err
	}

	if normalizeMode(mode) == ModeGPA {
		var gpaRaw, creditsRaw string
		err := w.run(huh.NewGroup(
			huh.NewInput().
				Title(fmt.Sprintf("Semester %d GPA", index)).
				Value(&gpaRaw).
				Validate(floatInRange(0, gradetable.MaxPoints)),
			huh.NewInput().
				Title(fmt.Sprintf("Semester %d credit hours", index)).
				Value(&creditsRaw).
				Validate(positiveFloat),
		))
		if err != nil {
			return sem, err
		}
		gpa, credits := parseFloat(gpaRaw), parseFloat(creditsRaw)
		sem.GPA, sem.Credits = &gpa, &credits
		return sem, nil
	}

	var countRaw string
	err = w.run(huh.NewGroup(
		huh.NewInput().
			Title(fmt.Sprintf("Number of subjects in semester %d", index)).
			Value(&countRaw).
			Validate(intInRange(1, 20)),
	))
	if err != nil {
		return sem, err
	}
	count, _ := strconv.Atoi(strings.TrimSpace(countRaw))

	for j := 1; j <= count; j++ {
		sub, err := w.subject(index, j)
		if err != nil {
			return sem, err
		}
		sem.Subjects = append(sem.Subjects, sub)
	}
	return sem, nil
}

func (w *wizard) subject(semester, n int) (models.Subject, error) {
	var name, marksRaw, totalRaw, creditsRaw string
	prefix := fmt.Sprintf("Semester %d, subject %d", semester, n)

	err := w.run(huh.NewGroup(
		huh.NewInput().
			Title(prefix+" name").
			Placeholder(fmt.Sprintf("Subject %d", n)).
			Value(&name),
		huh.NewInput().
			Title(prefix+" marks obtained").
			Value(&marksRaw).
			Validate(nonNegativeFloat),
		huh.NewInput().
			Title(prefix+" total marks").
			Value(&totalRaw).
			Validate(func(s string) error {
				if err := positiveFloat(s); err != nil {
					return err
				}
				if !w.allowOverMarks && parseFloat(s) < parseFloat(marksRaw) {
					return fmt.Errorf("total marks must be at least the marks obtained")
				}
				return nil
			}),
		huh.NewInput().
			Title(prefix+" credit hours").
			Value(&creditsRaw).
			Validate(positiveFloat),
	))
	if err != nil {
		return models.Subject{}, err
	}

	name = strings.TrimSpace(name)
	if name == "" {
		name = fmt.Sprintf("Subject %d", n)
	}
	return models.Subject{
		Name:          name,
		MarksObtained: parseFloat(marksRaw),
		TotalMarks:    parseFloat(totalRaw),
		CreditHours:   parseFloat(creditsRaw),
	}, nil
}

func (w *wizard) run(group *huh.Group) error {
	form := huh.NewForm(group).
		WithInput(w.in).
		WithOutput(w.out).
		WithAccessible(w.accessible)

	if err := form.Run(); err != nil {
		return fmt.Errorf("wizard failed: %w", err)
	}
	return nil
}

func normalizeMode(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

func parseFloat(s string) float64 {
	v, _ := strconv.ParseFloat(strings.TrimSpace(s), 64)
	return v
}

// number parses s and accepts only finite values.
func number(s string) (float64, bool) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}

func intInRange(lo, hi int) func(string) error {
	return func(s string) error {
		n, err := strconv.Atoi(strings.TrimSpace(s))
		if err != nil || n < lo || n > hi {
			return fmt.Errorf("enter a whole number from %d to %d", lo, hi)
		}
		return nil
	}
}

func floatInRange(lo, hi float64) func(string) error {
	return func(s string) error {
		v, ok := number(s)
		if !ok || v < lo || v > hi {
			return fmt.Errorf("enter a number from %g to %g", lo, hi)
		}
		return nil
	}
}

func positiveFloat(s string) error {
	v, ok := number(s)
	if !ok || v <= 0 {
		return fmt.Errorf("enter a number greater than 0")
	}
	return nil
}

func nonNegativeFloat(s string) error {
	v, ok := number(s)
	if !ok || v < 0 {
		return fmt.Errorf("enter a number of at least 0")
	}
	return nil
}

type byteReader struct {
	r io.Reader
}

func (b *byteReader) Read(p []byte) (int, error) {
	if len(p) > 1 {
		p = p[:1]
	}
	return b.r.Read(p)
}
