package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/spboyer/cgpa/internal/dataset"
	"github.com/spboyer/cgpa/internal/models"
	"github.com/spboyer/cgpa/internal/reporting"
)

func newCalcCommand(opts *globalOptions) *cobra.Command {
	var format string
	var summary bool
	var failOnRejected bool

	cmd := &cobra.Command{
		Use:   "calc <file>",
		Short: "Compute semester GPAs and the CGPA for a transcript file",
		Long: `Compute semester GPAs and the CGPA for a transcript file.

The file may be YAML, JSON, TOML or CSV. YAML, JSON and TOML files are checked
against the transcript schema before anything is computed. Invalid subjects are reported
and left out of the averages unless --strict is set.

CSV files use the header semester,subject,marks,total,credits for subject rows
and semester,gpa,credits for semesters entered as a GPA.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if format == "" {
				format = opts.cfg.Defaults.Format
			}
			report, err := computeFile(opts, args[0])
			if err != nil {
				return err
			}
			if err := writeReport(cmd.OutOrStdout(), report, format); err != nil {
				return err
			}
			if summary && format == "table" {
				fmt.Fprintf(cmd.OutOrStdout(), "\n%s", reporting.FormatSummaryReport(report)) //nolint:errcheck
			}
			return rejectedError(report, failOnRejected)
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "", "Output format: table or json (default from .cgpa.yaml)")
	cmd.Flags().BoolVar(&summary, "summary", false, "Add a plain-language interpretation after the table")
	cmd.Flags().BoolVar(&failOnRejected, "fail-on-rejected", false, "Exit with code 1 when any entry was rejected")

	return cmd
}

// computeFile loads a transcript file and runs it through a fresh calculator.
func computeFile(opts *globalOptions, path string) (*models.Report, error) {
	doc, err := dataset.Load(path)
	if err != nil {
		return nil, err
	}
	calc, err := opts.calculator(doc.Policy)
	if err != nil {
		return nil, err
	}
	report, err := calc.Compute(*doc)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return report, nil
}

func writeReport(w io.Writer, report *models.Report, format string) error {
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(report)
	case "table":
		reporting.WriteTranscript(w, report)
		return nil
	default:
		return fmt.Errorf("unsupported format %q: must be table or json", format)
	}
}

func rejectedError(report *models.Report, fail bool) error {
	if !fail || report.Rejected == 0 {
		return nil
	}
	if report.Rejected == 1 {
		return &InvalidDataError{Message: "1 entry was rejected"}
	}
	return &InvalidDataError{Message: fmt.Sprintf("%d entries were rejected", report.Rejected)}
}
