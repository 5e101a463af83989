package validation

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validTranscriptYAML = `student: Ayesha
policy: cui
semesters:
  - index: 1
    subjects:
      - name: Calculus
        marks: 85
        total: 100
        credits: 3
      - marks: 60
        total: 100
        credits: 2
  - gpa: 3.5
    credits: 15
`

const validPolicyYAML = `name: strict
bands:
  - threshold: 90
    label: A
    points: 4
  - threshold: 50
    label: P
    points: 1
floor:
  label: F
  points: 0
`

func TestValidateTranscriptBytes_Valid(t *testing.T) {
	errs := ValidateTranscriptBytes([]byte(validTranscriptYAML))
	require.Empty(t, errs, "valid transcript should have no errors")
}

func TestValidateTranscriptBytes_JSON(t *testing.T) {
	doc := `{"semesters": [{"gpa": 3.2, "credits": 18}]}`
	require.Empty(t, ValidateTranscriptBytes([]byte(doc)))
}

func TestValidateTranscriptBytes_Invalid(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"missing semesters", "student: x\n"},
		{"subject missing total", "semesters:\n  - subjects:\n      - marks: 10\n        credits: 3\n"},
		{"gpa without credits", "semesters:\n  - gpa: 3.0\n"},
		{"both subjects and gpa", "semesters:\n  - gpa: 3.0\n    credits: 3\n    subjects: []\n"},
		{"unknown field", "semesters: []\nfoo: bar\n"},
		{"non-numeric marks", "semesters:\n  - subjects:\n      - marks: lots\n        total: 100\n        credits: 3\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errs := ValidateTranscriptBytes([]byte(tt.doc))
			assert.NotEmpty(t, errs)
		})
	}
}

func TestValidateTranscriptBytes_ParseError(t *testing.T) {
	errs := ValidateTranscriptBytes([]byte("semesters: [\n"))
	require.Len(t, errs, 1)
	assert.Contains(t, errs[0], "YAML parse error")
}

func TestValidateTranscriptBytes_Empty(t *testing.T) {
	errs := ValidateTranscriptBytes(nil)
	require.Len(t, errs, 1)
	assert.Contains(t, errs[0], "empty")
}

func TestValidatePolicyBytes(t *testing.T) {
	require.Empty(t, ValidatePolicyBytes([]byte(validPolicyYAML)))

	errs := ValidatePolicyBytes([]byte("name: x\nbands:\n  - threshold: 50\n    label: D\n    points: 5\n"))
	require.NotEmpty(t, errs)
	assert.Contains(t, errs[0], "/bands/0/points")
}

func TestValidateFile_DetectsKind(t *testing.T) {
	dir := t.TempDir()
	transcript := filepath.Join(dir, "t.yaml")
	policy := filepath.Join(dir, "p.yaml")
	require.NoError(t, os.WriteFile(transcript, []byte(validTranscriptYAML), 0o644))
	require.NoError(t, os.WriteFile(policy, []byte(validPolicyYAML), 0o644))

	kind, errs, err := ValidateFile(transcript)
	require.NoError(t, err)
	assert.Equal(t, KindTranscript, kind)
	assert.Empty(t, errs)

	kind, errs, err = ValidateFile(policy)
	require.NoError(t, err)
	assert.Equal(t, KindPolicy, kind)
	assert.Empty(t, errs)
}

func TestValidateFile_Missing(t *testing.T) {
	_, _, err := ValidateFile(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
}
