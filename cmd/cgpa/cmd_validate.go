package main

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/spboyer/cgpa/internal/calculator"
	"github.com/spboyer/cgpa/internal/dataset"
	"github.com/spboyer/cgpa/internal/gradetable"
	"github.com/spboyer/cgpa/internal/models"
	"github.com/spboyer/cgpa/internal/validation"
)

func newValidateCommand(opts *globalOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate <file>...",
		Short: "Check transcript and policy files without computing results",
		Long: `Check transcript and grading policy files.

YAML and JSON files are checked against the embedded JSON schemas; a document
with a "bands" key is treated as a grading policy. Policies are then checked
for overlapping or out-of-order bands. Transcripts (including CSV files) are
checked entry by entry, reporting every subject or semester that would be
rejected. CSV and TOML files are always read as transcripts.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			invalid := 0
			for _, path := range args {
				kind, problems, err := validateOne(opts, path)
				if err != nil {
					return err
				}
				if len(problems) == 0 {
					fmt.Fprintf(out, "✅ %s: valid %s\n", path, kind) //nolint:errcheck
					continue
				}
				invalid++
				printProblems(out, path, kind, problems)
			}
			if invalid > 0 {
				return &InvalidDataError{Message: fmt.Sprintf("%d of %d files are invalid", invalid, len(args))}
			}
			return nil
		},
	}
	return cmd
}

func validateOne(opts *globalOptions, path string) (validation.Kind, []string, error) {
	if ext := strings.ToLower(filepath.Ext(path)); ext == ".csv" || ext == ".toml" {
		doc, err := dataset.Load(path)
		if err != nil {
			return validation.KindTranscript, []string{err.Error()}, nil
		}
		problems, err := transcriptProblems(opts, doc)
		return validation.KindTranscript, problems, err
	}

	kind, problems, err := validation.ValidateFile(path)
	if err != nil || len(problems) > 0 {
		return kind, problems, err
	}

	if kind == validation.KindPolicy {
		if _, err := gradetable.LoadPolicyFile(path); err != nil {
			return kind, []string{err.Error()}, nil
		}
		return kind, nil, nil
	}

	doc, err := dataset.Load(path)
	if err != nil {
		return kind, []string{err.Error()}, nil
	}
	problems, err = transcriptProblems(opts, doc)
	return kind, problems, err
}

// transcriptProblems runs the document through a lenient calculator and
// collects every rejected entry.
func transcriptProblems(opts *globalOptions, doc *models.TranscriptDoc) ([]string, error) {
	p, err := opts.registry.Lookup(opts.policyName(doc.Policy))
	if err != nil {
		return []string{err.Error()}, nil
	}
	calc := calculator.New(p,
		calculator.WithAllowOverMarks(opts.overMarks()),
		calculator.WithLogger(opts.logger),
	)
	report, err := calc.Compute(*doc)
	if err != nil {
		return nil, err
	}

	var problems []string
	for _, s := range report.Semesters {
		for _, sub := range s.Subjects {
			if sub.Rejected {
				problems = append(problems, sub.Error)
			}
		}
		if s.Error != "" {
			problems = append(problems, s.Error)
		}
	}
	return problems, nil
}

func printProblems(w io.Writer, path string, kind validation.Kind, problems []string) {
	fmt.Fprintf(w, "❌ %s: invalid %s\n", path, kind) //nolint:errcheck
	for _, p := range problems {
		for _, line := range strings.Split(p, "\n") {
			fmt.Fprintf(w, "   %s\n", strings.TrimSpace(line)) //nolint:errcheck
		}
	}
}
