// servers/mcp/main.go
// MCP server over stdio exposing the LangChain + Anthropic code generators.
// Hosts launch this binary directly; the langchain-mcp CLI offers the same
// server through 'serve' alongside its inspection commands.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/mwiater/langchain-mcp/internal/appconfig"
	"github.com/mwiater/langchain-mcp/internal/dispatch"
	"github.com/mwiater/langchain-mcp/internal/logging"
	"github.com/mwiater/langchain-mcp/internal/mcpserver"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdin, os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "mcp server: %v\n", err)
		os.Exit(1)
	}
}

// run parses flags, loads configuration and serves until stdin closes.
func run(ctx context.Context, args []string, stdin io.Reader, stdout io.Writer) error {
	fs := flag.NewFlagSet("mcp", flag.ContinueOnError)
	configPath := fs.String("config", "", "path to the config file")
	framing := fs.String("framing", "", "override framing: auto, content-length or ndjson")
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg, err := appconfig.Load(*configPath)
	if err != nil {
		return err
	}
	if *framing != "" {
		cfg.Framing = *framing
	}
	mode, err := cfg.FramingMode()
	if err != nil {
		return err
	}

	if err := logging.Init(cfg.LogFile); err != nil {
		return fmt.Errorf("init logging: %w", err)
	}
	defer logging.Close()
	logging.SetDebug(cfg.Debug)

	d, err := dispatch.NewDefault()
	if err != nil {
		return err
	}
	srv := mcpserver.New(d,
		mcpserver.WithInfo(mcpserver.Info{Name: cfg.ServerName, Version: cfg.ServerVersion}),
		mcpserver.WithFraming(mode),
	)
	if err := srv.Serve(ctx, stdin, stdout); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}
