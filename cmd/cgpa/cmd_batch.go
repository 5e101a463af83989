package main

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/spboyer/cgpa/internal/reporting"
	"github.com/spboyer/cgpa/internal/spinner"
	"github.com/spboyer/cgpa/internal/utils"
)

func newBatchCommand(opts *globalOptions) *cobra.Command {
	var workers int
	var failOnRejected bool

	cmd := &cobra.Command{
		Use:   "batch <file|glob>...",
		Short: "Compute many transcript files in parallel",
		Long: `Compute many transcript files in parallel and print one summary row per file.

Each file gets its own transcript; files never share state. A file that cannot
be loaded or computed is reported in its row and does not stop the others.
Arguments may be glob patterns such as "transcripts/*.yaml". The command exits
with code 1 if any file failed.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if workers <= 0 {
				workers = runtime.NumCPU()
			}

			files, err := utils.ExpandGlobs(args, "")
			if err != nil {
				return &InvalidDataError{Message: err.Error()}
			}

			stop := spinner.Start(cmd.ErrOrStderr(), fmt.Sprintf("Computing %d files...", len(files)))
			rows := make([]reporting.BatchRow, len(files))
			var g errgroup.Group
			g.SetLimit(workers)
			for i, path := range files {
				g.Go(func() error {
					report, err := computeFile(opts, path)
					rows[i] = reporting.BatchRow{File: path, Report: report, Err: err}
					return nil
				})
			}
			_ = g.Wait()
			stop()

			reporting.WriteBatch(cmd.OutOrStdout(), rows)

			failed, rejected := 0, 0
			for _, row := range rows {
				if row.Err != nil {
					failed++
					opts.logger.Debug("batch file failed", "file", row.File, "error", row.Err)
					continue
				}
				rejected += row.Report.Rejected
			}
			switch {
			case failed > 0:
				return &InvalidDataError{Message: fmt.Sprintf("%d of %d files failed", failed, len(rows))}
			case failOnRejected && rejected > 0:
				return &InvalidDataError{Message: fmt.Sprintf("%d entries were rejected across %d files", rejected, len(rows))}
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&workers, "workers", "w", 0, "Parallel workers (default: number of CPUs)")
	cmd.Flags().BoolVar(&failOnRejected, "fail-on-rejected", false, "Exit with code 1 when any entry was rejected")

	return cmd
}
