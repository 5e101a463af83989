package calculator

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrInvalidInput is wrapped by every rejected subject or semester.
	ErrInvalidInput = errors.New("invalid input")

	// ErrNoData means there was no credit-hour weight to average over.
	ErrNoData = errors.New("insufficient data")
)

// InputError pinpoints the entry and field that failed validation.
type InputError struct {
	Semester int    // 0 when not known
	Subject  string // empty for semester-level errors
	Field    string
	Value    float64
	Reason   string
}

func (e *InputError) Error() string {
	var where []string
	if e.Semester > 0 {
		where = append(where, fmt.Sprintf("semester %d", e.Semester))
	}
	if e.Subject != "" {
		where = append(where, e.Subject)
	}
	msg := fmt.Sprintf("%s %s (got %g)", e.Field, e.Reason, e.Value)
	if len(where) == 0 {
		return msg
	}
	return strings.Join(where, ", ") + ": " + msg
}

func (e *InputError) Unwrap() error {
	return ErrInvalidInput
}
