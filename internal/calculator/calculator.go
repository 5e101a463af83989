// Package calculator turns subjects into grade points, semesters into GPAs
// and a sequence of semesters into a CGPA.
package calculator

import (
	"errors"
	"fmt"
	"log/slog"
	"math"

	"github.com/spboyer/cgpa/internal/aggregate"
	"github.com/spboyer/cgpa/internal/gradetable"
	"github.com/spboyer/cgpa/internal/models"
)

// Calculator applies one grading policy. It holds no per-transcript state
// and may be shared.
type Calculator struct {
	policy         *gradetable.Policy
	strict         bool
	allowOverMarks bool
	logger         *slog.Logger
}

// Option configures a Calculator.
type Option func(*Calculator)

// WithStrict makes any invalid entry fail the whole calculation and rejects
// percentages outside [0, 100].
func WithStrict(strict bool) Option {
	return func(c *Calculator) { c.strict = strict }
}

// WithAllowOverMarks permits marks obtained above total marks (bonus marks).
func WithAllowOverMarks(allow bool) Option {
	return func(c *Calculator) { c.allowOverMarks = allow }
}

// WithLogger sets the logger used to report rejected entries.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Calculator) { c.logger = logger }
}

// New returns a Calculator for policy.
func New(policy *gradetable.Policy, opts ...Option) *Calculator {
	c := &Calculator{policy: policy, logger: slog.Default()}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Policy returns the grading policy in use.
func (c *Calculator) Policy() *gradetable.Policy { return c.policy }

// EvaluateSubject validates a subject and maps it to a grade. On error the
// returned result still describes the entry and is flagged Rejected.
func (c *Calculator) EvaluateSubject(s models.Subject) (models.SubjectResult, error) {
	res := models.SubjectResult{
		Name:        s.Name,
		Marks:       s.MarksString(),
		CreditHours: finiteOrZero(s.CreditHours),
	}

	pct, err := c.validateSubject(s)
	if err != nil {
		res.Rejected = true
		res.Error = err.Error()
		return res, err
	}

	gp := c.policy.GradePointFor(pct)
	res.Percentage = fmt.Sprintf("%.2f%%", pct)
	res.Grade = gp.Label
	res.GradePoint = gp.Value
	res.WeightedPoints = gp.Value * s.CreditHours
	return res, nil
}

func (c *Calculator) validateSubject(s models.Subject) (float64, error) {
	fail := func(field string, v float64, reason string) (float64, error) {
		return 0, &InputError{Subject: s.Name, Field: field, Value: v, Reason: reason}
	}

	switch {
	case !finite(s.MarksObtained):
		return fail("marks", s.MarksObtained, "must be a finite number")
	case !finite(s.TotalMarks):
		return fail("total marks", s.TotalMarks, "must be a finite number")
	case !finite(s.CreditHours):
		return fail("credit hours", s.CreditHours, "must be a finite number")
	case s.TotalMarks <= 0:
		return fail("total marks", s.TotalMarks, "must be greater than zero")
	case s.MarksObtained < 0:
		return fail("marks", s.MarksObtained, "must not be negative")
	case s.CreditHours < 0:
		return fail("credit hours", s.CreditHours, "must not be negative")
	case s.MarksObtained > s.TotalMarks && !c.allowOverMarks:
		return fail("marks", s.MarksObtained, fmt.Sprintf("exceed total marks %g", s.TotalMarks))
	}

	pct, _ := s.Percentage()
	if c.strict && (pct < 0 || pct > 100) {
		return fail("percentage", pct, "outside [0, 100]")
	}
	return pct, nil
}

// SemesterFromSubjects evaluates subjects and aggregates the valid ones into
// a semester GPA. Invalid subjects are flagged in the result and left out of
// the average; in strict mode the first one aborts with its error. Subjects
// with zero credit hours are graded but carry no weight. When no valid
// subject carries credit hours the result is flagged NoData; that is not an
// error here, in strict mode either, but such a semester cannot join a
// Transcript.
func (c *Calculator) SemesterFromSubjects(index int, subjects []models.Subject) (models.SemesterResult, error) {
	res := models.SemesterResult{
		Record:   models.SemesterRecord{Index: index, Source: models.SourceComputed},
		Subjects: make([]models.SubjectResult, 0, len(subjects)),
	}
	if index < 1 {
		err := &InputError{Semester: index, Field: "semester index", Value: float64(index), Reason: "must be at least 1"}
		res.Error = err.Error()
		return res, err
	}

	pairs := make([]aggregate.Pair, 0, len(subjects))
	for i, s := range subjects {
		if s.Name == "" {
			s.Name = fmt.Sprintf("Subject %d", i+1)
		}
		sr, err := c.EvaluateSubject(s)
		if err != nil {
			var ie *InputError
			if errors.As(err, &ie) {
				ie.Semester = index
				sr.Error = ie.Error()
			}
			if c.strict {
				res.Subjects = append(res.Subjects, sr)
				res.Error = err.Error()
				return res, err
			}
			c.logger.Warn("subject rejected", "semester", index, "subject", s.Name, "error", err)
			res.Subjects = append(res.Subjects, sr)
			continue
		}
		res.Subjects = append(res.Subjects, sr)
		pairs = append(pairs, aggregate.Pair{Score: sr.GradePoint, Weight: sr.CreditHours})
	}

	avg := aggregate.WeightedAverage(pairs)
	res.Record.GPA = avg.Value
	res.Record.CreditHours = avg.Weight
	if avg.NoData() {
		res.NoData = true
		res.Record.CreditHours = 0
		res.Error = fmt.Sprintf("semester %d: no valid credit hours to calculate GPA", index)
	}
	return res, nil
}

// DirectSemester builds a SemesterRecord from a GPA the user already knows.
func (c *Calculator) DirectSemester(index int, gpa, credits float64) (models.SemesterRecord, error) {
	rec := models.SemesterRecord{Index: index, GPA: gpa, CreditHours: credits, Source: models.SourceDirect}
	if err := validateRecord(rec); err != nil {
		return models.SemesterRecord{}, err
	}
	return rec, nil
}

func validateRecord(rec models.SemesterRecord) error {
	fail := func(field string, v float64, reason string) error {
		return &InputError{Semester: rec.Index, Field: field, Value: v, Reason: reason}
	}
	switch {
	case rec.Index < 1:
		return fail("semester index", float64(rec.Index), "must be at least 1")
	case !finite(rec.GPA) || rec.GPA < 0 || rec.GPA > gradetable.MaxPoints:
		return fail("gpa", rec.GPA, fmt.Sprintf("must be within [0, %.1f]", gradetable.MaxPoints))
	case !finite(rec.CreditHours) || rec.CreditHours <= 0:
		return fail("credit hours", rec.CreditHours, "must be greater than zero")
	}
	return nil
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// finiteOrZero keeps NaN and Inf out of results, which must stay
// encodable as JSON. The rejected input is still named in the error text.
func finiteOrZero(v float64) float64 {
	if !finite(v) {
		return 0
	}
	return v
}
