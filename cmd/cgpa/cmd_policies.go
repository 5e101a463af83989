package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/spboyer/cgpa/internal/gradetable"
)

func newPoliciesCommand(opts *globalOptions) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "policies [name]",
		Short: "List grading policies or show one policy's bands",
		Long: `List the grading policies available to this project, or show the grade bands
of one policy.

Built-in policies are cui (the default) and standard. Custom policies come from
the policies section of .cgpa.yaml or from --policy-file.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			if len(args) == 0 {
				return listPolicies(out, opts, format)
			}
			p, err := opts.registry.Lookup(args[0])
			if err != nil {
				return err
			}
			return showPolicy(out, p, format)
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "table", "Output format: table or json")

	return cmd
}

type policyJSON struct {
	Name        string            `json:"name"`
	Description string            `json:"description,omitempty"`
	Default     bool              `json:"default,omitempty"`
	Bands       []gradetable.Band `json:"bands,omitempty"`
	Floor       *gradeJSON        `json:"floor,omitempty"`
}

type gradeJSON struct {
	Label  string  `json:"label"`
	Points float64 `json:"points"`
}

func listPolicies(w io.Writer, opts *globalOptions, format string) error {
	current := opts.policyName("")
	policies := opts.registry.Policies()

	switch format {
	case "json":
		out := make([]policyJSON, 0, len(policies))
		for _, p := range policies {
			out = append(out, policyJSON{Name: p.Name(), Description: p.Description(), Default: p.Name() == current})
		}
		return writeJSONTo(w, out)
	case "table":
		for _, p := range policies {
			marker := " "
			if p.Name() == current {
				marker = "*"
			}
			fmt.Fprintf(w, "%s %-12s %s\n", marker, p.Name(), p.Description()) //nolint:errcheck
		}
		return nil
	default:
		return fmt.Errorf("unsupported format %q: must be table or json", format)
	}
}

func showPolicy(w io.Writer, p *gradetable.Policy, format string) error {
	floor := p.Floor()

	switch format {
	case "json":
		return writeJSONTo(w, policyJSON{
			Name:        p.Name(),
			Description: p.Description(),
			Bands:       p.Bands(),
			Floor:       &gradeJSON{Label: floor.Label, Points: floor.Value},
		})
	case "table":
		fmt.Fprintf(w, "%s: %s\n\n%-12s %-6s %s\n%s\n", //nolint:errcheck
			p.Name(), p.Description(), "Percentage", "Grade", "Points", strings.Repeat("─", 28))
		upper := 100.0
		for _, b := range p.Bands() {
			fmt.Fprintf(w, "%-12s %-6s %.2f\n", bandRange(b.Threshold, upper), b.Label, b.Points) //nolint:errcheck
			upper = b.Threshold
		}
		fmt.Fprintf(w, "%-12s %-6s %.2f\n", fmt.Sprintf("< %g", upper), floor.Label, floor.Value) //nolint:errcheck
		return nil
	default:
		return fmt.Errorf("unsupported format %q: must be table or json", format)
	}
}

func bandRange(lo, hi float64) string {
	if hi >= 100 {
		return fmt.Sprintf(">= %g", lo)
	}
	return fmt.Sprintf("%g - <%g", lo, hi)
}

func writeJSONTo(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
