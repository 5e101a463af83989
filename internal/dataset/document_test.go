package dataset

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/spboyer/cgpa/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const transcriptYAML = `student: Ayesha
policy: standard
semesters:
  - index: 1
    subjects:
      - name: Calculus
        marks: 85
        total: 100
        credits: 3
  - gpa: 3.5
    credits: 15
`

func TestLoad_YAML(t *testing.T) {
	path := writeCSV(t, t.TempDir(), "t.yaml", transcriptYAML)
	doc, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "Ayesha", doc.Student)
	assert.Equal(t, "standard", doc.Policy)
	require.Len(t, doc.Semesters, 2)
	assert.Equal(t, models.Subject{Name: "Calculus", MarksObtained: 85, TotalMarks: 100, CreditHours: 3}, doc.Semesters[0].Subjects[0])
	assert.Equal(t, 0, doc.Semesters[1].Index)
	require.True(t, doc.Semesters[1].IsDirect())
	assert.Equal(t, 3.5, *doc.Semesters[1].GPA)
}

func TestLoad_JSON(t *testing.T) {
	path := writeCSV(t, t.TempDir(), "t.json", `{"semesters":[{"gpa":3.0,"credits":12}]}`)
	doc, err := Load(path)
	require.NoError(t, err)
	require.Len(t, doc.Semesters, 1)
	assert.Equal(t, 12.0, *doc.Semesters[0].Credits)
}

func TestLoad_TOML(t *testing.T) {
	path := writeCSV(t, t.TempDir(), "t.toml", `student = "Ayesha"

[[semesters]]
index = 1

[[semesters.subjects]]
name = "Calculus"
marks = 85
total = 100
credits = 3

[[semesters]]
gpa = 3.5
credits = 15
`)
	doc, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "Ayesha", doc.Student)
	require.Len(t, doc.Semesters, 2)
	assert.Equal(t, models.Subject{Name: "Calculus", MarksObtained: 85, TotalMarks: 100, CreditHours: 3}, doc.Semesters[0].Subjects[0])
	assert.Equal(t, 3.5, *doc.Semesters[1].GPA)
}

func TestLoad_TOMLSyntaxError(t *testing.T) {
	path := writeCSV(t, t.TempDir(), "t.toml", "student = \n")
	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parsing transcript")
}

func TestLoad_CSV(t *testing.T) {
	path := writeCSV(t, t.TempDir(), "t.CSV", "semester,gpa,credits\n1,3.5,15\n2,3.0,12\n")
	doc, err := Load(path)
	require.NoError(t, err)
	assert.Len(t, doc.Semesters, 2)
}

func TestLoad_SchemaError(t *testing.T) {
	path := writeCSV(t, t.TempDir(), "bad.yaml", "semesters:\n  - gpa: 3.0\n")
	_, err := Load(path)
	require.Error(t, err)

	var se *SchemaError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, path, se.Path)
	assert.NotEmpty(t, se.Problems)
}

func TestLoad_Missing(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
}

func TestSave_RoundTrip(t *testing.T) {
	gpa, credits := 3.25, 16.0
	doc := &models.TranscriptDoc{
		Student: "Bilal",
		Semesters: []models.SemesterDoc{
			{Index: 1, Subjects: []models.Subject{{Name: "OOP", MarksObtained: 77, TotalMarks: 100, CreditHours: 4}}},
			{Index: 2, GPA: &gpa, Credits: &credits},
		},
	}
	path := filepath.Join(t.TempDir(), "nested", "out.yaml")
	require.NoError(t, Save(path, doc))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, doc, loaded)
}
