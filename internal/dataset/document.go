// Package dataset reads and writes transcript documents in YAML, JSON and
// CSV form.
package dataset

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"github.com/spboyer/cgpa/internal/models"
	"github.com/spboyer/cgpa/internal/validation"
	"gopkg.in/yaml.v3"
)

// SchemaError lists the schema violations found in a transcript document.
type SchemaError struct {
	Path     string
	Problems []string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("%s does not match the transcript schema:\n  %s", e.Path, strings.Join(e.Problems, "\n  "))
}

// Load reads a transcript from a .csv, .toml, .yaml, .yml or .json file.
func Load(path string) (*models.TranscriptDoc, error) {
	if strings.EqualFold(filepath.Ext(path), ".csv") {
		rows, err := LoadCSV(path)
		if err != nil {
			return nil, err
		}
		return TranscriptFromRows(rows)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading transcript: %w", err)
	}
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		if data, err = tomlToJSON(data); err != nil {
			return nil, err
		}
	}
	doc, err := Decode(data)
	if err != nil {
		if se, ok := err.(*SchemaError); ok {
			se.Path = path
		}
		return nil, err
	}
	return doc, nil
}

// Decode validates YAML or JSON bytes against the transcript schema and
// decodes them.
func Decode(data []byte) (*models.TranscriptDoc, error) {
	if problems := validation.ValidateTranscriptBytes(data); len(problems) > 0 {
		return nil, &SchemaError{Path: "transcript", Problems: problems}
	}

	var doc models.TranscriptDoc
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parsing transcript: %w", err)
	}
	return &doc, nil
}

// tomlToJSON re-encodes a TOML transcript as JSON so it goes through the
// same schema check and decoder as the other formats.
func tomlToJSON(data []byte) ([]byte, error) {
	var v map[string]any
	if err := toml.Unmarshal(data, &v); err != nil {
		return nil, fmt.Errorf("parsing transcript: %w", err)
	}
	out, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("parsing transcript: %w", err)
	}
	return out, nil
}

// Save writes doc as YAML, creating parent directories as needed.
func Save(path string, doc *models.TranscriptDoc) error {
	data, err := yaml.Marshal(doc)
	if err != nil {
		return fmt.Errorf("encoding transcript: %w", err)
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating %s: %w", dir, err)
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing transcript: %w", err)
	}
	return nil
}
