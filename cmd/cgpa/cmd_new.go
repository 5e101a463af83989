package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/spboyer/cgpa/internal/dataset"
	"github.com/spboyer/cgpa/internal/reporting"
	"github.com/spboyer/cgpa/internal/wizard"
)

const defaultTranscriptFile = "transcript.yaml"

func newNewCommand(opts *globalOptions) *cobra.Command {
	var student string
	var force bool

	cmd := &cobra.Command{
		Use:   "new [file]",
		Short: "Enter a transcript interactively and save it",
		Long: `Enter a transcript interactively and save it as YAML (default transcript.yaml).

For each semester you either enter every subject's marks, total marks and
credit hours, or a GPA you already know with its credit hours. The number of
semesters is capped by defaults.max_semesters in .cgpa.yaml (8 by default).

When stdin is not a terminal (CI, pipes) the prompts switch to plain
line-by-line input, so answers can be piped in.

The saved transcript is computed and printed once entry is complete.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := defaultTranscriptFile
			if len(args) == 1 {
				path = args[0]
			}
			if _, err := os.Stat(path); err == nil && !force {
				return fmt.Errorf("%s already exists (use --force to overwrite)", path)
			} else if err != nil && !errors.Is(err, os.ErrNotExist) {
				return fmt.Errorf("checking %s: %w", path, err)
			}

			doc, err := wizard.RunTranscriptWizard(cmd.InOrStdin(), cmd.OutOrStdout(), wizard.Options{
				Student:        student,
				MaxSemesters:   opts.cfg.Defaults.MaxSemesters,
				AllowOverMarks: opts.overMarks(),
			})
			if err != nil {
				return err
			}

			if err := dataset.Save(path, doc); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "\nSaved %s\n\n", path) //nolint:errcheck

			calc, err := opts.calculator(doc.Policy)
			if err != nil {
				return err
			}
			report, err := calc.Compute(*doc)
			if err != nil {
				return err
			}
			reporting.WriteTranscript(cmd.OutOrStdout(), report)
			return nil
		},
	}

	cmd.Flags().StringVar(&student, "student", "", "Pre-fill the student name")
	cmd.Flags().BoolVar(&force, "force", false, "Overwrite an existing file")

	return cmd
}
