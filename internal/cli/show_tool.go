// internal/cli/show_tool.go
package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

// newShowToolCmd implements 'show tool <name>', which prints one tool's
// descriptor with its input schema and defaults.
func newShowToolCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "tool <name>",
		Short: "Show one tool's description, input schema and defaults",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, _, err := a.newDispatcher()
			if err != nil {
				return err
			}
			for _, def := range d.List() {
				if def.Name != args[0] {
					continue
				}
				schema, err := json.MarshalIndent(def.InputSchema, "", "  ")
				if err != nil {
					return err
				}
				out := cmd.OutOrStdout()
				fmt.Fprintln(out, toolName(def.Name))
				fmt.Fprintf(out, "%s\n\n", def.Description)
				fmt.Fprintln(out, "Input schema:")
				fmt.Fprintln(out, string(schema))
				fmt.Fprintln(out)
				fmt.Fprintln(out, "Defaults:")
				for _, p := range def.InputSchema.Properties {
					if !p.HasDefault() {
						continue
					}
					value, err := json.Marshal(p.Default)
					if err != nil {
						return err
					}
					fmt.Fprintf(out, "  %s = %s\n", p.Name, value)
				}
				return nil
			}
			return fmt.Errorf("unknown tool %q", args[0])
		},
	}
}
