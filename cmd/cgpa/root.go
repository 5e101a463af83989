package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/spboyer/cgpa/internal/calculator"
	"github.com/spboyer/cgpa/internal/gradetable"
	"github.com/spboyer/cgpa/internal/projectconfig"
)

var version = "dev"

// globalOptions carries the persistent flags and the state loaded from
// them before any subcommand runs.
type globalOptions struct {
	debug          bool
	policy         string
	policyFile     string
	strict         bool
	allowOverMarks bool

	cfg      *projectconfig.ProjectConfig
	registry *gradetable.Registry
	logger   *slog.Logger

	cmd *cobra.Command
}

func newRootCommand() *cobra.Command {
	opts := &globalOptions{}

	cmd := &cobra.Command{
		Use:   "cgpa",
		Short: "cgpa - grade, GPA and CGPA calculator",
		Long: `cgpa maps subject marks to letter grades and grade points, aggregates them
into credit-weighted semester GPAs, and accumulates semesters into a CGPA.

Transcripts are read from YAML, JSON or CSV files, entered interactively with
"cgpa new", or posted to the HTTP API started by "cgpa serve".

Settings are read from .cgpa.yaml in the current directory or any parent;
command-line flags override them.`,
		Version:      version,
		SilenceUsage: true,
	}
	opts.cmd = cmd

	pf := cmd.PersistentFlags()
	pf.BoolVar(&opts.debug, "debug", false, "Enable debug logging")
	pf.StringVarP(&opts.policy, "policy", "p", "", "Grading policy name (default from .cgpa.yaml, else cui)")
	pf.StringVar(&opts.policyFile, "policy-file", "", "Load an extra grading policy from a YAML file")
	pf.BoolVar(&opts.strict, "strict", false, "Fail on the first invalid entry instead of skipping it")
	pf.BoolVar(&opts.allowOverMarks, "allow-over-marks", false, "Accept marks obtained above total marks")

	cmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		if opts.debug {
			slog.SetLogLoggerLevel(slog.LevelDebug)
		}
		return opts.load()
	}

	// Add subcommands
	cmd.AddCommand(newGradeCommand(opts))
	cmd.AddCommand(newCalcCommand(opts))
	cmd.AddCommand(newNewCommand(opts))
	cmd.AddCommand(newExportCommand(opts))
	cmd.AddCommand(newBatchCommand(opts))
	cmd.AddCommand(newPoliciesCommand(opts))
	cmd.AddCommand(newValidateCommand(opts))
	cmd.AddCommand(newServeCommand(opts))

	return cmd
}

// load reads .cgpa.yaml and builds the policy registry.
func (o *globalOptions) load() error {
	o.logger = slog.Default()

	wd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("getting working directory: %w", err)
	}
	cfg, err := projectconfig.Load(wd)
	if err != nil {
		return err
	}
	if cfg.Path != "" {
		o.logger.Debug("loaded project config", "path", cfg.Path)
	}
	o.cfg = cfg

	o.registry = gradetable.NewRegistry()
	if err := o.registry.RegisterAll(cfg.Policies); err != nil {
		return fmt.Errorf("policies in %s: %w", cfg.Path, err)
	}
	if o.policyFile != "" {
		p, err := gradetable.LoadPolicyFile(o.policyFile)
		if err != nil {
			return err
		}
		if err := o.registry.Register(p); err != nil {
			return err
		}
		o.logger.Debug("registered policy file", "path", o.policyFile, "policy", p.Name())
		// A policy file given on the command line is the one to use unless
		// --policy says otherwise.
		if o.policy == "" {
			o.policy = p.Name()
		}
	}
	return nil
}

// policyName picks the grading policy: --policy flag, then the document's
// own policy, then the config default.
func (o *globalOptions) policyName(docPolicy string) string {
	switch {
	case o.policy != "":
		return o.policy
	case docPolicy != "":
		return docPolicy
	case o.cfg.Defaults.Policy != "":
		return o.cfg.Defaults.Policy
	default:
		return gradetable.DefaultPolicy
	}
}

func (o *globalOptions) strictMode() bool {
	if o.cmd.PersistentFlags().Changed("strict") {
		return o.strict
	}
	return o.cfg.Defaults.Strict != nil && *o.cfg.Defaults.Strict
}

func (o *globalOptions) overMarks() bool {
	if o.cmd.PersistentFlags().Changed("allow-over-marks") {
		return o.allowOverMarks
	}
	return o.cfg.Defaults.AllowOverMarks != nil && *o.cfg.Defaults.AllowOverMarks
}

// calculator builds a Calculator for one transcript.
func (o *globalOptions) calculator(docPolicy string) (*calculator.Calculator, error) {
	name := o.policyName(docPolicy)
	p, err := o.registry.Lookup(name)
	if err != nil {
		return nil, err
	}
	o.logger.Debug("using grading policy", "policy", p.Name(), "strict", o.strictMode())
	return calculator.New(p,
		calculator.WithStrict(o.strictMode()),
		calculator.WithAllowOverMarks(o.overMarks()),
		calculator.WithLogger(o.logger),
	), nil
}

func execute() error {
	rootCmd := newRootCommand()
	return rootCmd.Execute()
}
