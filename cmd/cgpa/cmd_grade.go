package main

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/spboyer/cgpa/internal/models"
)

func newGradeCommand(opts *globalOptions) *cobra.Command {
	var credits float64
	var format string

	cmd := &cobra.Command{
		Use:   "grade <marks> <total>",
		Short: "Look up the grade for one subject's marks",
		Long: `Look up the letter grade and grade point for marks obtained out of total marks.

Examples:
  cgpa grade 85 100
  cgpa grade 42 50 --credits 3 --policy standard
  cgpa grade 72 100 --format json`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			marks, err := strconv.ParseFloat(args[0], 64)
			if err != nil {
				return fmt.Errorf("marks %q is not a number", args[0])
			}
			total, err := strconv.ParseFloat(args[1], 64)
			if err != nil {
				return fmt.Errorf("total %q is not a number", args[1])
			}

			calc, err := opts.calculator("")
			if err != nil {
				return err
			}
			res, err := calc.EvaluateSubject(models.Subject{
				Name:          "Subject",
				MarksObtained: marks,
				TotalMarks:    total,
				CreditHours:   credits,
			})
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			switch format {
			case "json":
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(res)
			case "table":
				fmt.Fprintf(out, "%s = %s -> %s (%.2f grade points, policy %s)\n", //nolint:errcheck
					res.Marks, res.Percentage, res.Grade, res.GradePoint, calc.Policy().Name())
				if cmd.Flags().Changed("credits") {
					fmt.Fprintf(out, "Weighted points: %.2f over %g credit hours\n", res.WeightedPoints, credits) //nolint:errcheck
				}
				return nil
			default:
				return fmt.Errorf("unsupported format %q: must be table or json", format)
			}
		},
	}

	cmd.Flags().Float64VarP(&credits, "credits", "c", 1, "Credit hours of the subject")
	cmd.Flags().StringVarP(&format, "format", "f", "table", "Output format: table or json")

	return cmd
}
