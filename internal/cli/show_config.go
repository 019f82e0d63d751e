// internal/cli/show_config.go
package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// newShowConfigCmd implements 'show config', which prints the merged
// configuration so file, environment and flag precedence can be checked.
func newShowConfigCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Show config settings",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			out := cmd.OutOrStdout()
			if a.cfg.ConfigPath == "" {
				fmt.Fprintln(out, "No config file loaded (using defaults).")
			} else {
				fmt.Fprintf(out, "Config file: %s\n\n", a.cfg.ConfigPath)
			}

			logFile := a.cfg.LogFile
			if logFile == "" {
				logFile = "(stderr only)"
			}
			fmt.Fprintln(out, "Current configuration:")
			fmt.Fprintf(out, "  Server Name:    %s\n", a.cfg.ServerName)
			fmt.Fprintf(out, "  Server Version: %s\n", a.cfg.ServerVersion)
			fmt.Fprintf(out, "  Framing:        %s\n", a.cfg.Framing)
			fmt.Fprintf(out, "  Log File:       %s\n", logFile)
			fmt.Fprintf(out, "  Debug:          %v\n", a.cfg.Debug)
			fmt.Fprintf(out, "  Metrics:        %v\n", a.cfg.Metrics)
		},
	}
}
