// Package gradetable maps a percentage to a letter grade and grade point
// using an ordered, validated threshold table.
package gradetable

import (
	"errors"
	"fmt"
	"math"

	"github.com/spboyer/cgpa/internal/models"
)

// MaxPoints is the top of the grade point scale.
const MaxPoints = 4.0

// ErrConfiguration is wrapped by every policy validation failure.
var ErrConfiguration = errors.New("invalid grading policy")

// ConfigurationError describes why a grading policy was rejected.
type ConfigurationError struct {
	Policy string
	Band   int // 0-based band index, -1 when the problem is not band-specific
	Reason string
}

func (e *ConfigurationError) Error() string {
	if e.Band < 0 {
		return fmt.Sprintf("grading policy %q: %s", e.Policy, e.Reason)
	}
	return fmt.Sprintf("grading policy %q: band %d: %s", e.Policy, e.Band+1, e.Reason)
}

func (e *ConfigurationError) Unwrap() error {
	return ErrConfiguration
}

// Band awards Label and Points to any percentage >= Threshold that no
// higher band has already claimed.
type Band struct {
	Threshold float64 `json:"threshold" yaml:"threshold" mapstructure:"threshold"`
	Label     string  `json:"label" yaml:"label" mapstructure:"label"`
	Points    float64 `json:"points" yaml:"points" mapstructure:"points"`
}

// Policy is an immutable grading scale. Bands are held highest threshold
// first; anything below the last band gets Floor.
type Policy struct {
	name        string
	description string
	bands       []Band
	floor       models.GradePoint
}

// NewPolicy validates bands and returns a Policy. Bands must already be in
// strictly descending threshold order; they are never reordered.
func NewPolicy(name, description string, bands []Band, floor models.GradePoint) (*Policy, error) {
	if name == "" {
		return nil, &ConfigurationError{Policy: name, Band: -1, Reason: "name is required"}
	}
	if len(bands) == 0 {
		return nil, &ConfigurationError{Policy: name, Band: -1, Reason: "at least one band is required"}
	}

	for i, b := range bands {
		if b.Label == "" {
			return nil, &ConfigurationError{Policy: name, Band: i, Reason: "label is required"}
		}
		if math.IsNaN(b.Threshold) || math.IsInf(b.Threshold, 0) {
			return nil, &ConfigurationError{Policy: name, Band: i, Reason: "threshold must be a finite number"}
		}
		if err := checkPoints(b.Points); err != "" {
			return nil, &ConfigurationError{Policy: name, Band: i, Reason: err}
		}
		if i == 0 {
			continue
		}
		prev := bands[i-1]
		if b.Threshold == prev.Threshold {
			return nil, &ConfigurationError{Policy: name, Band: i,
				Reason: fmt.Sprintf("threshold %g overlaps band %d", b.Threshold, i)}
		}
		if b.Threshold > prev.Threshold {
			return nil, &ConfigurationError{Policy: name, Band: i,
				Reason: fmt.Sprintf("threshold %g is above the previous band's %g; bands must be sorted highest first", b.Threshold, prev.Threshold)}
		}
		if b.Points > prev.Points {
			return nil, &ConfigurationError{Policy: name, Band: i,
				Reason: fmt.Sprintf("awards %.2f points, more than the higher band's %.2f", b.Points, prev.Points)}
		}
	}

	if floor.Label == "" {
		return nil, &ConfigurationError{Policy: name, Band: -1, Reason: "floor label is required"}
	}
	if err := checkPoints(floor.Value); err != "" {
		return nil, &ConfigurationError{Policy: name, Band: -1, Reason: "floor " + err}
	}
	if last := bands[len(bands)-1]; floor.Value > last.Points {
		return nil, &ConfigurationError{Policy: name, Band: -1,
			Reason: fmt.Sprintf("floor awards %.2f points, more than the lowest band's %.2f", floor.Value, last.Points)}
	}

	owned := make([]Band, len(bands))
	copy(owned, bands)
	return &Policy{name: name, description: description, bands: owned, floor: floor}, nil
}

func checkPoints(p float64) string {
	if math.IsNaN(p) || p < 0 || p > MaxPoints {
		return fmt.Sprintf("points %v outside [0, %.1f]", p, MaxPoints)
	}
	return ""
}

// Name returns the policy's registry name.
func (p *Policy) Name() string { return p.name }

// Description returns a human readable summary of the scale.
func (p *Policy) Description() string { return p.description }

// Floor returns the grade given below the lowest threshold.
func (p *Policy) Floor() models.GradePoint { return p.floor }

// Bands returns a copy of the bands, highest threshold first.
func (p *Policy) Bands() []Band {
	out := make([]Band, len(p.bands))
	copy(out, p.bands)
	return out
}

// GradePointFor returns the grade for a percentage. Lower bounds are
// inclusive, so exactly 85 falls into an "85 and above" band. NaN gets the
// floor grade; callers reject undefined percentages before getting here.
func (p *Policy) GradePointFor(percentage float64) models.GradePoint {
	for _, b := range p.bands {
		if percentage >= b.Threshold {
			return models.GradePoint{Label: b.Label, Value: b.Points}
		}
	}
	return p.floor
}
