// internal/cli/selftest.go
package cli

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/mwiater/langchain-mcp/internal/mcpclient"
	"github.com/spf13/cobra"
)

// newSelftestCmd implements 'selftest', which starts the server in-process
// and drives it through the client over a pipe: handshake, listing, every
// tool with its defaults, and an unknown tool.
func newSelftestCmd(a *app) *cobra.Command {
	var timeout time.Duration
	cmd := &cobra.Command{
		Use:   "selftest",
		Short: "Exercise every tool through an in-process server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
			defer cancel()
			return a.selftest(ctx, cmd.OutOrStdout())
		},
	}
	cmd.Flags().DurationVar(&timeout, "timeout", 30*time.Second, "overall time limit")
	return cmd
}

func (a *app) selftest(ctx context.Context, out io.Writer) error {
	d, collector, err := a.newDispatcher()
	if err != nil {
		return err
	}
	srv, err := a.newServer(d)
	if err != nil {
		return err
	}
	framing, err := a.cfg.FramingMode()
	if err != nil {
		return err
	}

	clientToServerR, clientToServerW := io.Pipe()
	serverToClientR, serverToClientW := io.Pipe()
	done := make(chan error, 1)
	go func() {
		done <- srv.Serve(ctx, clientToServerR, serverToClientW)
		_ = serverToClientW.Close()
	}()

	failures := 0
	check := func(label string, err error) {
		if err != nil {
			failures++
			fmt.Fprintf(out, "%s %s: %v\n", failedResult("FAIL"), label, err)
			return
		}
		fmt.Fprintf(out, "%s %s\n", passedResult("PASS"), label)
	}

	client := mcpclient.New(serverToClientR, clientToServerW, framing)

	info, err := client.Initialize(ctx)
	if err == nil && info.Name != a.cfg.ServerName {
		err = fmt.Errorf("server name %q, want %q", info.Name, a.cfg.ServerName)
	}
	check("initialize", err)

	listed, err := client.ListTools(ctx)
	defs := d.List()
	if err == nil && len(listed) != len(defs) {
		err = fmt.Errorf("listed %d tools, want %d", len(listed), len(defs))
	}
	check("tools/list", err)

	for _, def := range defs {
		text, isError, err := client.CallTool(ctx, def.Name, sampleArgs(def))
		switch {
		case err != nil:
		case isError:
			err = fmt.Errorf("tool error: %s", text)
		case text == "":
			err = fmt.Errorf("empty output")
		}
		check(toolName(def.Name), err)
	}

	text, isError, err := client.CallTool(ctx, "no_such_tool", nil)
	if err == nil && !isError {
		err = fmt.Errorf("expected an error result, got %q", text)
	}
	check("unknown tool is rejected", err)

	_ = clientToServerW.Close()
	_ = serverToClientR.Close()
	if err := <-done; err != nil {
		check("server shutdown", err)
	}

	if collector != nil {
		if summary, err := collector.Summary(context.Background()); err == nil {
			fmt.Fprintf(out, "%s\n", secondaryText("tool calls: "+summary))
		}
		_ = collector.Shutdown(context.Background())
	}

	if failures > 0 {
		return fmt.Errorf("selftest: %d check(s) failed", failures)
	}
	fmt.Fprintln(out, passedResult("selftest passed"))
	return nil
}
