package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/spboyer/cgpa/internal/export"
	"github.com/spboyer/cgpa/internal/spinner"
	"github.com/spboyer/cgpa/internal/utils"
)

// newBlobUploader is swapped out in tests.
var newBlobUploader = func(accountURL, container string) (uploader, error) {
	u, err := export.NewBlobUploader(accountURL, container)
	if err != nil {
		return nil, err
	}
	return u, nil
}

type uploader interface {
	Upload(ctx context.Context, name string, data []byte) (string, error)
}

func newExportCommand(opts *globalOptions) *cobra.Command {
	var format string
	var output string
	var gzip bool
	var upload bool

	cmd := &cobra.Command{
		Use:   "export <file>",
		Short: "Export a computed transcript as CSV, JSON, Markdown, HTML or a PNG chart",
		Long: `Compute a transcript file and export the result.

Formats:
  csv    one row per subject, a GPA row per semester and a final CGPA row
  json   the full report
  md     markdown tables
  html   the markdown report rendered as a standalone page
  png    a line chart of semester GPA and running CGPA (needs 2+ semesters)

The file is written to export.dir from .cgpa.yaml (results/ by default) unless
--output is given; "--output -" writes to stdout. --gzip compresses the
output. --upload also stores it in the Azure Blob Storage container named by
export.account_url and export.container, authenticating with the default
Azure credential chain.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if format == "" {
				format = opts.cfg.Export.Format
			}
			f, err := export.ParseFormat(format)
			if err != nil {
				return err
			}
			compress := gzip
			if !cmd.Flags().Changed("gzip") && opts.cfg.Export.Compress != nil {
				compress = *opts.cfg.Export.Compress
			}

			report, err := computeFile(opts, args[0])
			if err != nil {
				return err
			}
			data, err := export.Bytes(report, f, compress)
			if err != nil {
				return err
			}
			name := export.FileName(report, f, compress)

			if output == "-" {
				_, err := cmd.OutOrStdout().Write(data)
				return err
			}
			path := output
			if path == "" {
				path = filepath.Join(exportDir(opts), name)
			}
			if dir := filepath.Dir(path); dir != "." {
				if err := os.MkdirAll(dir, 0o755); err != nil {
					return fmt.Errorf("creating %s: %w", dir, err)
				}
			}
			if err := os.WriteFile(path, data, 0o644); err != nil {
				return fmt.Errorf("writing export: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s (%d bytes)\n", path, len(data)) //nolint:errcheck

			if upload {
				up, err := newBlobUploader(opts.cfg.Export.AccountURL, opts.cfg.Export.Container)
				if err != nil {
					return err
				}
				stop := spinner.Start(cmd.ErrOrStderr(), "Uploading "+filepath.Base(path)+"...")
				url, err := up.Upload(cmd.Context(), filepath.Base(path), data)
				stop()
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Uploaded %s\n", url) //nolint:errcheck
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "", "Export format: csv, json, md, html or png (default from .cgpa.yaml)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Output path, or - for stdout")
	cmd.Flags().BoolVar(&gzip, "gzip", false, "Gzip the exported file")
	cmd.Flags().BoolVar(&upload, "upload", false, "Upload the export to Azure Blob Storage")

	return cmd
}

// exportDir resolves export.dir against the directory of the config file
// that set it, so exports land in the same place from any subdirectory.
func exportDir(opts *globalOptions) string {
	if opts.cfg.Path == "" {
		return opts.cfg.Export.Dir
	}
	return utils.ResolvePath(opts.cfg.Export.Dir, filepath.Dir(opts.cfg.Path))
}
