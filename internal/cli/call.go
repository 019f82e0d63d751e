// internal/cli/call.go
package cli

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/mwiater/langchain-mcp/internal/dispatch"
	"github.com/mwiater/langchain-mcp/internal/logging"
	"github.com/spf13/cobra"
)

// newCallCmd implements 'call', which invokes one tool in-process and
// prints the generated code.
func newCallCmd(a *app) *cobra.Command {
	var (
		argsJSON string
		argPairs []string
	)
	cmd := &cobra.Command{
		Use:   "call <tool>",
		Short: "Invoke a tool and print the generated code",
		Long: `The 'call' command dispatches one tool call without a transport.
Arguments come from --args (a JSON object) and repeated --arg key=value pairs;
pair values are decoded as JSON when possible and taken as strings otherwise.`,
		Example: `  langchain-mcp call create_rag_chain --arg retriever_k=6
  langchain-mcp call setup_supabase_vectorstore --args '{"project_name":"docs"}'`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			arguments, err := parseCallArgs(argsJSON, argPairs)
			if err != nil {
				return err
			}
			d, _, err := a.newDispatcher()
			if err != nil {
				return err
			}

			req := dispatch.Request{ToolName: args[0], Arguments: arguments}
			logging.LogDebug("call request: %s", logging.Dump(req))

			resp := d.Call(cmd.Context(), req)
			if resp.IsError {
				fmt.Fprintln(cmd.ErrOrStderr(), failedResult(resp.Content))
				return fmt.Errorf("tool %s failed", args[0])
			}
			fmt.Fprint(cmd.OutOrStdout(), resp.Content)
			if !strings.HasSuffix(resp.Content, "\n") {
				fmt.Fprintln(cmd.OutOrStdout())
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&argsJSON, "args", "", "tool arguments as a JSON object")
	cmd.Flags().StringArrayVar(&argPairs, "arg", nil, "tool argument as key=value (repeatable)")
	return cmd
}

// parseCallArgs merges a JSON object with key=value pairs; pairs win.
func parseCallArgs(argsJSON string, pairs []string) (map[string]any, error) {
	arguments := map[string]any{}
	if strings.TrimSpace(argsJSON) != "" {
		if err := json.Unmarshal([]byte(argsJSON), &arguments); err != nil {
			return nil, fmt.Errorf("--args must be a JSON object: %w", err)
		}
		if arguments == nil {
			arguments = map[string]any{}
		}
	}
	for _, pair := range pairs {
		key, raw, ok := strings.Cut(pair, "=")
		key = strings.TrimSpace(key)
		if !ok || key == "" {
			return nil, fmt.Errorf("--arg %q must have the form key=value", pair)
		}
		var value any
		if err := json.Unmarshal([]byte(raw), &value); err != nil {
			value = raw
		}
		arguments[key] = value
	}
	return arguments, nil
}
