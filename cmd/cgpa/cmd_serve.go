package main

import (
	"fmt"
	"log/slog"
	"net"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/spboyer/cgpa/internal/webserver"
)

func newServeCommand(opts *globalOptions) *cobra.Command {
	var port int
	var host string
	var allowRemote bool
	var corsOrigins []string
	var rateLimit float64

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP JSON API",
		Long: `Start an HTTP server exposing grading and CGPA calculation as a JSON API.

Endpoints:
  GET  /api/health           Health check
  GET  /api/policies         List grading policies
  GET  /api/policies/{name}  Show one policy's bands
  POST /api/grade            {"marks":85,"total":100} -> grade and grade point
  POST /api/transcript       Transcript document -> semester GPAs and CGPA

Query parameters ?policy=<name> and ?strict=true apply to the POST endpoints.
Every request is computed on its own; the server keeps no transcript state.

The server binds to loopback (127.0.0.1) by default. Use --allow-remote to
bind to another interface.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("port") {
				port = opts.cfg.Server.Port
			}
			if !cmd.Flags().Changed("rate-limit") && opts.cfg.Server.RateLimit != nil {
				rateLimit = *opts.cfg.Server.RateLimit
			}
			host = resolveHost(host, allowRemote, opts.logger)

			srv, err := webserver.New(webserver.Config{
				Host:           host,
				Port:           port,
				Policies:       opts.registry,
				DefaultPolicy:  opts.policyName(""),
				AllowOverMarks: opts.overMarks(),
				AllowedOrigins: corsOrigins,
				RateLimit:      rateLimit,
				Logger:         opts.logger,
			})
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			fmt.Fprintf(cmd.ErrOrStderr(), "cgpa API listening on http://%s\n", srv.Addr()) //nolint:errcheck
			return srv.ListenAndServe(ctx)
		},
	}

	cmd.Flags().IntVar(&port, "port", 3000, "Port to listen on (default from .cgpa.yaml)")
	cmd.Flags().StringVar(&host, "host", "127.0.0.1", "Interface to bind")
	cmd.Flags().BoolVar(&allowRemote, "allow-remote", false,
		"Allow binding to non-loopback addresses (WARNING: exposes the server to the network with no authentication)")
	cmd.Flags().StringSliceVar(&corsOrigins, "cors-origin", nil, "Origins allowed to call the API from a browser")
	cmd.Flags().Float64Var(&rateLimit, "rate-limit", 20, "Requests per second across all clients, 0 to disable (default from .cgpa.yaml)")

	return cmd
}

// resolveHost keeps the server on loopback unless --allow-remote is set.
func resolveHost(host string, allowRemote bool, logger *slog.Logger) string {
	if allowRemote {
		logger.Warn("HTTP server binding beyond loopback with no authentication", "host", host)
		return host
	}
	if ip := net.ParseIP(host); host == "localhost" || (ip != nil && ip.IsLoopback()) {
		return host
	}
	logger.Info("binding to loopback; pass --allow-remote to bind elsewhere", "requested", host)
	return "127.0.0.1"
}
