// internal/cli/list_tools.go
package cli

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

// newListToolsCmd implements 'list tools'.
func newListToolsCmd(a *app) *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "tools",
		Short: "List the available code generation tools",
		Long:  `The 'tools' subcommand lists every tool in advertised order. With --json it prints the tools/list result instead.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			d, _, err := a.newDispatcher()
			if err != nil {
				return err
			}
			defs := d.List()
			out := cmd.OutOrStdout()

			if asJSON {
				data, err := json.MarshalIndent(map[string]any{"tools": defs}, "", "  ")
				if err != nil {
					return err
				}
				fmt.Fprintln(out, string(data))
				return nil
			}

			for _, def := range defs {
				fmt.Fprintf(out, "%s\n", toolName(def.Name))
				fmt.Fprintf(out, "    %s\n", def.Description)
				if required := def.InputSchema.RequiredNames(); len(required) > 0 {
					fmt.Fprintf(out, "    %s\n", secondaryText("required: "+strings.Join(required, ", ")))
				}
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the tools/list JSON result")
	return cmd
}
