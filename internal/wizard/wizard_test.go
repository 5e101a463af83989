package wizard

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunTranscriptWizard_SubjectsAndGPA(t *testing.T) {
	input := strings.Join([]string{
		"Ayesha", "2",
		"subjects", "2",
		"Calculus", "85", "100", "3",
		"", "72", "100", "3",
		"gpa", "3.5", "15",
	}, "\n") + "\n"
	out := &bytes.Buffer{}

	doc, err := RunTranscriptWizard(strings.NewReader(input), out, Options{})
	require.NoError(t, err)

	assert.Equal(t, "Ayesha", doc.Student)
	require.Len(t, doc.Semesters, 2)

	first := doc.Semesters[0]
	assert.Equal(t, 1, first.Index)
	assert.False(t, first.IsDirect())
	require.Len(t, first.Subjects, 2)
	assert.Equal(t, "Calculus", first.Subjects[0].Name)
	assert.Equal(t, 85.0, first.Subjects[0].MarksObtained)
	assert.Equal(t, 100.0, first.Subjects[0].TotalMarks)
	assert.Equal(t, 3.0, first.Subjects[0].CreditHours)
	assert.Equal(t, "Subject 2", first.Subjects[1].Name)

	second := doc.Semesters[1]
	assert.Equal(t, 2, second.Index)
	require.True(t, second.IsDirect())
	assert.Equal(t, 3.5, *second.GPA)
	assert.Equal(t, 15.0, *second.Credits)
}

func TestRunTranscriptWizard_PrefilledStudent(t *testing.T) {
	input := "Bilal\n1\ngpa\n4\n18\n"

	doc, err := RunTranscriptWizard(strings.NewReader(input), &bytes.Buffer{}, Options{Student: "ignored"})
	require.NoError(t, err)
	assert.Equal(t, "Bilal", doc.Student)
	require.Len(t, doc.Semesters, 1)
	assert.Equal(t, 4.0, *doc.Semesters[0].GPA)
}

func TestRunTranscriptWizard_OverMarks(t *testing.T) {
	lines := func(total string) string {
		return strings.Join([]string{"", "1", "subjects", "1", "Lab", "110", total, "3"}, "\n") + "\n"
	}

	doc, err := RunTranscriptWizard(strings.NewReader(lines("100")), &bytes.Buffer{}, Options{AllowOverMarks: true})
	require.NoError(t, err)
	sub := doc.Semesters[0].Subjects[0]
	assert.Equal(t, 110.0, sub.MarksObtained)
	assert.Equal(t, 100.0, sub.TotalMarks)

	// Without the setting a total below the marks is asked for again.
	input := strings.Join([]string{"", "1", "subjects", "1", "Lab", "110", "100", "110", "3"}, "\n") + "\n"
	doc, err = RunTranscriptWizard(strings.NewReader(input), &bytes.Buffer{}, Options{})
	require.NoError(t, err)
	assert.Equal(t, 110.0, doc.Semesters[0].Subjects[0].TotalMarks)
}

func TestRunTranscriptWizard_UnexpectedEOF(t *testing.T) {
	input := "Ayesha\n2\nsubjects\n"

	_, err := RunTranscriptWizard(strings.NewReader(input), &bytes.Buffer{}, Options{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "wizard failed")
}

func TestValidators(t *testing.T) {
	tests := []struct {
		name  string
		check func(string) error
		ok    []string
		bad   []string
	}{
		{"semester count", intInRange(1, DefaultMaxSemesters), []string{"1", " 8 "}, []string{"0", "9", "two", "1.5"}},
		{"gpa", floatInRange(0, 4), []string{"0", "3.75", "4"}, []string{"-0.1", "4.01", "x", "NaN"}},
		{"credits", positiveFloat, []string{"3", "0.5"}, []string{"0", "-1", "", "Inf", "+Inf", "NaN"}},
		{"marks", nonNegativeFloat, []string{"0", "85.5"}, []string{"-1", "abc", "NaN", "Inf"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for _, s := range tt.ok {
				assert.NoError(t, tt.check(s), s)
			}
			for _, s := range tt.bad {
				assert.Error(t, tt.check(s), s)
			}
		})
	}
}

func TestNormalizeMode(t *testing.T) {
	assert.Equal(t, ModeGPA, normalizeMode(" GPA "))
	assert.Equal(t, ModeSubjects, normalizeMode("Subjects"))
}
