// internal/cli/serve.go
package cli

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/mwiater/langchain-mcp/internal/dispatch"
	"github.com/mwiater/langchain-mcp/internal/logging"
	"github.com/mwiater/langchain-mcp/internal/mcpserver"
	"github.com/mwiater/langchain-mcp/internal/telemetry"
	"github.com/spf13/cobra"
)

// newServeCmd implements 'serve', which speaks MCP over stdin/stdout until
// the client closes the stream or the process is interrupted.
func newServeCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the tool catalogue over stdio",
		Long:  `The 'serve' command runs the MCP server on stdin/stdout. Logs go to stderr and the configured log file; stdout carries protocol frames only.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return a.serve(ctx, cmd)
		},
	}
}

func (a *app) serve(ctx context.Context, cmd *cobra.Command) error {
	d, collector, err := a.newDispatcher()
	if err != nil {
		return err
	}
	if collector != nil {
		defer func() {
			summary, err := collector.Summary(context.Background())
			if err != nil {
				logging.LogEvent("metrics summary failed: %v", err)
			} else {
				logging.LogEvent("tool calls: %s", summary)
			}
			_ = collector.Shutdown(context.Background())
		}()
	}

	srv, err := a.newServer(d)
	if err != nil {
		return err
	}
	err = srv.Serve(ctx, cmd.InOrStdin(), cmd.OutOrStdout())
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

// newDispatcher builds the dispatcher, wired to a metrics collector when
// metrics are enabled.
func (a *app) newDispatcher() (*dispatch.Dispatcher, *telemetry.Collector, error) {
	if !a.cfg.Metrics {
		d, err := dispatch.NewDefault()
		return d, nil, err
	}
	collector := telemetry.NewCollector()
	recorder, err := telemetry.NewRecorder(collector.MeterProvider())
	if err != nil {
		return nil, nil, err
	}
	d, err := dispatch.NewDefault(dispatch.WithRecorder(recorder))
	if err != nil {
		return nil, nil, err
	}
	return d, collector, nil
}

func (a *app) newServer(d *dispatch.Dispatcher) (*mcpserver.Server, error) {
	framing, err := a.cfg.FramingMode()
	if err != nil {
		return nil, err
	}
	return mcpserver.New(d,
		mcpserver.WithInfo(mcpserver.Info{Name: a.cfg.ServerName, Version: a.cfg.ServerVersion}),
		mcpserver.WithFraming(framing),
	), nil
}
