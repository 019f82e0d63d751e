// internal/cli/root.go
package cli

import (
	"fmt"
	"os"

	"github.com/mwiater/langchain-mcp/internal/appconfig"
	"github.com/mwiater/langchain-mcp/internal/logging"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// app carries the state shared by every command of one invocation.
type app struct {
	v       *viper.Viper
	cfgFile string
	cfg     appconfig.Config
}

// Execute runs the command tree against os.Args and exits non-zero on
// failure.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

// NewRootCmd builds a fresh command tree with its own configuration state.
func NewRootCmd() *cobra.Command {
	a := &app{v: viper.New()}

	rootCmd := &cobra.Command{
		Use:          "langchain-mcp",
		Short:        "langchain-mcp serves LangChain and Anthropic code generators over MCP",
		Version:      versionString(),
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.load()
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			return logging.Close()
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVarP(&a.cfgFile, "config", "c", "", "config file (JSON or YAML)")
	flags.Bool("debug", false, "enable debug logging")
	flags.String("framing", "auto", "stdio framing: auto, content-length or ndjson")
	flags.String("log-file", "", "also write logs to this file")
	flags.Bool("metrics", false, "record tool call metrics and log a summary on exit")

	// Flags override environment, file and defaults.
	_ = a.v.BindPFlag("debug", flags.Lookup("debug"))
	_ = a.v.BindPFlag("framing", flags.Lookup("framing"))
	_ = a.v.BindPFlag("logFile", flags.Lookup("log-file"))
	_ = a.v.BindPFlag("metrics", flags.Lookup("metrics"))

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "Group commands for listing resources",
	}
	listCmd.AddCommand(newListToolsCmd(a), newListCommandsCmd(rootCmd))

	showCmd := &cobra.Command{
		Use:   "show",
		Short: "Group commands for displaying resources",
	}
	showCmd.AddCommand(newShowConfigCmd(a), newShowToolCmd(a))

	rootCmd.AddCommand(
		newServeCmd(a),
		listCmd,
		showCmd,
		newCallCmd(a),
		newBrowseCmd(a),
		newSelftestCmd(a),
	)
	return rootCmd
}

// load merges defaults, the config file, the environment and flags into
// a.cfg and configures logging from the result.
func (a *app) load() error {
	appconfig.SetDefaults(a.v)
	appconfig.BindEnv(a.v)
	if a.cfgFile != "" {
		a.v.SetConfigFile(a.cfgFile)
		if err := a.v.ReadInConfig(); err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
	}

	cfg, err := appconfig.FromViper(a.v)
	if err != nil {
		return err
	}
	a.cfg = cfg

	if err := logging.Init(cfg.LogFile); err != nil {
		return fmt.Errorf("init logging: %w", err)
	}
	logging.SetDebug(cfg.Debug)
	return nil
}
