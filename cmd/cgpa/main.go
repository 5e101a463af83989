package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spboyer/cgpa/internal/calculator"
	"github.com/spboyer/cgpa/internal/dataset"
)

// Exit codes for different failure modes
const (
	ExitSuccess     = 0 // Everything computed
	ExitInvalidData = 1 // Input data was rejected
	ExitError       = 2 // Configuration or runtime error
)

// InvalidDataError indicates that the command ran, but the transcript or
// policy it was given contained entries that had to be rejected.
type InvalidDataError struct {
	Message string
}

func (e *InvalidDataError) Error() string {
	return e.Message
}

func main() {
	if err := execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(exitCode(err))
	}
}

// exitCode maps an error returned by a command to the process exit code.
func exitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}

	var dataErr *InvalidDataError
	var schemaErr *dataset.SchemaError
	switch {
	case errors.As(err, &dataErr),
		errors.As(err, &schemaErr),
		errors.Is(err, calculator.ErrInvalidInput),
		errors.Is(err, calculator.ErrNoData):
		return ExitInvalidData
	}

	// All other errors are configuration/runtime errors
	return ExitError
}
