package calculator

import (
	"errors"
	"io"
	"log/slog"
	"math"
	"testing"

	"github.com/spboyer/cgpa/internal/gradetable"
	"github.com/spboyer/cgpa/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const epsilon = 1e-9

func newTestCalculator(t *testing.T, policy string, opts ...Option) *Calculator {
	t.Helper()
	p, err := gradetable.NewRegistry().Lookup(policy)
	require.NoError(t, err)
	opts = append([]Option{WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))}, opts...)
	return New(p, opts...)
}

func TestEvaluateSubject_SingleA(t *testing.T) {
	c := newTestCalculator(t, gradetable.PolicyCUI)

	res, err := c.EvaluateSubject(models.Subject{Name: "Calculus", MarksObtained: 85, TotalMarks: 100, CreditHours: 3})
	require.NoError(t, err)
	assert.Equal(t, "A", res.Grade)
	assert.Equal(t, 4.0, res.GradePoint)
	assert.InDelta(t, 12.0, res.WeightedPoints, epsilon)
	assert.Equal(t, "85/100", res.Marks)
	assert.Equal(t, "85.00%", res.Percentage)
	assert.False(t, res.Rejected)
}

func TestEvaluateSubject_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		subject models.Subject
		strict  bool
		field   string
	}{
		{"zero total", models.Subject{MarksObtained: 10, TotalMarks: 0, CreditHours: 3}, false, "total marks"},
		{"negative total", models.Subject{MarksObtained: 10, TotalMarks: -5, CreditHours: 3}, false, "total marks"},
		{"negative marks", models.Subject{MarksObtained: -1, TotalMarks: 100, CreditHours: 3}, false, "marks"},
		{"negative credits", models.Subject{MarksObtained: 50, TotalMarks: 100, CreditHours: -1}, false, "credit hours"},
		{"infinite credits", models.Subject{MarksObtained: 50, TotalMarks: 100, CreditHours: math.Inf(1)}, false, "credit hours"},
		{"NaN marks", models.Subject{MarksObtained: math.NaN(), TotalMarks: 100, CreditHours: 3}, false, "marks"},
		{"infinite total", models.Subject{MarksObtained: 1, TotalMarks: math.Inf(1), CreditHours: 3}, false, "total marks"},
		{"over marks", models.Subject{MarksObtained: 110, TotalMarks: 100, CreditHours: 3}, false, "marks"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestCalculator(t, gradetable.PolicyCUI, WithStrict(tt.strict))
			res, err := c.EvaluateSubject(tt.subject)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrInvalidInput))

			var ie *InputError
			require.True(t, errors.As(err, &ie))
			assert.Equal(t, tt.field, ie.Field)

			assert.True(t, res.Rejected)
			assert.NotEmpty(t, res.Error)
			assert.Empty(t, res.Grade, "a rejected subject must not be silently graded")
		})
	}
}

func TestEvaluateSubject_OverMarks(t *testing.T) {
	c := newTestCalculator(t, gradetable.PolicyCUI, WithAllowOverMarks(true))
	res, err := c.EvaluateSubject(models.Subject{MarksObtained: 105, TotalMarks: 100, CreditHours: 3})
	require.NoError(t, err)
	assert.Equal(t, "A", res.Grade)
	assert.Equal(t, "105.00%", res.Percentage)

	strict := newTestCalculator(t, gradetable.PolicyCUI, WithAllowOverMarks(true), WithStrict(true))
	_, err = strict.EvaluateSubject(models.Subject{MarksObtained: 105, TotalMarks: 100, CreditHours: 3})
	require.Error(t, err)
	var ie *InputError
	require.True(t, errors.As(err, &ie))
	assert.Equal(t, "percentage", ie.Field)
}

func TestSemesterFromSubjects_TwoSubjects(t *testing.T) {
	subjects := []models.Subject{
		{MarksObtained: 90, TotalMarks: 100, CreditHours: 3},
		{MarksObtained: 60, TotalMarks: 100, CreditHours: 2},
	}

	// 60% is a C (2.00) on the standard scale: (4*3 + 2*2) / 5.
	res, err := newTestCalculator(t, gradetable.PolicyStandard).SemesterFromSubjects(1, subjects)
	require.NoError(t, err)
	require.Len(t, res.Subjects, 2)
	assert.Equal(t, 4.0, res.Subjects[0].GradePoint)
	assert.Equal(t, 2.0, res.Subjects[1].GradePoint)
	assert.InDelta(t, 3.2, res.Record.GPA, epsilon)
	assert.Equal(t, 5.0, res.Record.CreditHours)
	assert.Equal(t, models.SourceComputed, res.Record.Source)
	assert.Equal(t, "Subject 1", res.Subjects[0].Name)

	// On the CUI scale 60% is a C- (1.66).
	res, err = newTestCalculator(t, gradetable.PolicyCUI).SemesterFromSubjects(1, subjects)
	require.NoError(t, err)
	assert.Equal(t, "C-", res.Subjects[1].Grade)
	assert.InDelta(t, (12+1.66*2)/5, res.Record.GPA, epsilon)
}

func TestSemesterFromSubjects_RejectsOnlyBadSubject(t *testing.T) {
	c := newTestCalculator(t, gradetable.PolicyCUI)
	res, err := c.SemesterFromSubjects(2, []models.Subject{
		{Name: "Physics", MarksObtained: 85, TotalMarks: 100, CreditHours: 3},
		{Name: "Broken", MarksObtained: 40, TotalMarks: 0, CreditHours: 3},
		{Name: "Chemistry", MarksObtained: 71, TotalMarks: 100, CreditHours: 3},
	})
	require.NoError(t, err)
	require.Len(t, res.Subjects, 3)
	assert.False(t, res.Subjects[0].Rejected)
	assert.True(t, res.Subjects[1].Rejected)
	assert.Contains(t, res.Subjects[1].Error, "semester 2, Broken")
	assert.False(t, res.Subjects[2].Rejected)
	assert.Equal(t, 1, res.Rejected())

	assert.InDelta(t, 3.5, res.Record.GPA, epsilon)
	assert.Equal(t, 6.0, res.Record.CreditHours)
}

func TestSemesterFromSubjects_Strict(t *testing.T) {
	c := newTestCalculator(t, gradetable.PolicyCUI, WithStrict(true))
	_, err := c.SemesterFromSubjects(1, []models.Subject{
		{MarksObtained: 85, TotalMarks: 100, CreditHours: 3},
		{MarksObtained: 40, TotalMarks: 0, CreditHours: 3},
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidInput))
}

func TestSemesterFromSubjects_NoData(t *testing.T) {
	c := newTestCalculator(t, gradetable.PolicyCUI)

	res, err := c.SemesterFromSubjects(1, nil)
	require.NoError(t, err)
	assert.True(t, res.NoData)
	assert.Equal(t, 0.0, res.Record.GPA)

	res, err = c.SemesterFromSubjects(1, []models.Subject{{MarksObtained: 1, TotalMarks: 0, CreditHours: 3}})
	require.NoError(t, err)
	assert.True(t, res.NoData)
	assert.Equal(t, 1, res.Rejected())
}

func TestEvaluateSubject_NonFiniteNotEchoed(t *testing.T) {
	c := newTestCalculator(t, gradetable.PolicyCUI)
	res, err := c.EvaluateSubject(models.Subject{MarksObtained: 50, TotalMarks: 100, CreditHours: math.Inf(1)})
	require.Error(t, err)
	assert.True(t, res.Rejected)
	assert.Equal(t, 0.0, res.CreditHours)
	assert.Contains(t, res.Error, "+Inf")
}

func TestSemesterFromSubjects_ZeroCredits(t *testing.T) {
	for _, strict := range []bool{false, true} {
		c := newTestCalculator(t, gradetable.PolicyCUI, WithStrict(strict))
		res, err := c.SemesterFromSubjects(1, []models.Subject{
			{Name: "Lab", MarksObtained: 85, TotalMarks: 100, CreditHours: 0},
		})
		require.NoError(t, err, "strict=%v", strict)
		assert.True(t, res.NoData)
		assert.Equal(t, 0, res.Rejected())
		require.Len(t, res.Subjects, 1)
		assert.Equal(t, "A", res.Subjects[0].Grade)
		assert.Equal(t, 0.0, res.Subjects[0].WeightedPoints)
	}

	// A zero-credit subject is graded but does not move the average.
	res, err := newTestCalculator(t, gradetable.PolicyCUI).SemesterFromSubjects(1, []models.Subject{
		{Name: "Lab", MarksObtained: 40, TotalMarks: 100, CreditHours: 0},
		{Name: "Calculus", MarksObtained: 85, TotalMarks: 100, CreditHours: 3},
	})
	require.NoError(t, err)
	assert.Equal(t, 4.0, res.Record.GPA)
	assert.Equal(t, 3.0, res.Record.CreditHours)
}

func TestSemesterFromSubjects_BadIndex(t *testing.T) {
	_, err := newTestCalculator(t, gradetable.PolicyCUI).SemesterFromSubjects(0, nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidInput))
}

func TestDirectSemester(t *testing.T) {
	c := newTestCalculator(t, gradetable.PolicyCUI)

	rec, err := c.DirectSemester(1, 3.5, 15)
	require.NoError(t, err)
	assert.Equal(t, models.SemesterRecord{Index: 1, GPA: 3.5, CreditHours: 15, Source: models.SourceDirect}, rec)

	for _, tc := range []struct {
		index   int
		gpa     float64
		credits float64
	}{
		{0, 3.0, 15},
		{1, 4.1, 15},
		{1, -0.1, 15},
		{1, math.NaN(), 15},
		{1, 3.0, 0},
		{1, 3.0, -3},
	} {
		_, err := c.DirectSemester(tc.index, tc.gpa, tc.credits)
		require.Error(t, err, "%+v", tc)
		assert.True(t, errors.Is(err, ErrInvalidInput))
	}
}

func TestSemesterConstructors_Agree(t *testing.T) {
	c := newTestCalculator(t, gradetable.PolicyCUI)
	computed, err := c.SemesterFromSubjects(1, []models.Subject{
		{MarksObtained: 85, TotalMarks: 100, CreditHours: 3},
		{MarksObtained: 72, TotalMarks: 100, CreditHours: 3},
	})
	require.NoError(t, err)
	direct, err := c.DirectSemester(1, computed.Record.GPA, computed.Record.CreditHours)
	require.NoError(t, err)

	a, b := NewTranscript(), NewTranscript()
	require.NoError(t, a.AppendResult(computed))
	require.NoError(t, b.Append(direct))
	assert.Equal(t, a.CGPA(), b.CGPA())
}

func TestInputError_Message(t *testing.T) {
	err := &InputError{Semester: 3, Subject: "Maths", Field: "total marks", Value: 0, Reason: "must be greater than zero"}
	assert.Equal(t, "semester 3, Maths: total marks must be greater than zero (got 0)", err.Error())

	err = &InputError{Field: "gpa", Value: 5, Reason: "too high"}
	assert.Equal(t, "gpa too high (got 5)", err.Error())
}
