// internal/cli/output.go
package cli

import (
	"github.com/fatih/color"
	"github.com/mwiater/langchain-mcp/mcp/tools"
)

var (
	toolName      = color.New(color.FgCyan, color.Bold).SprintFunc()
	passedResult  = color.New(color.FgGreen).SprintFunc()
	failedResult  = color.New(color.FgRed).SprintFunc()
	secondaryText = color.New(color.Faint).SprintFunc()
)

// sampleArgs returns the declared defaults of def plus a placeholder for
// every required parameter that has none, so the tool can be invoked
// without user input.
func sampleArgs(def tools.Definition) map[string]any {
	args := map[string]any(tools.DefaultArgs(def))
	for _, p := range def.InputSchema.Properties {
		if _, ok := args[p.Name]; ok || !p.Required {
			continue
		}
		args[p.Name] = placeholder(p)
	}
	return args
}

func placeholder(p tools.Param) any {
	allowed := p.AllowedValues()
	switch p.Type {
	case tools.TypeNumber:
		return float64(1)
	case tools.TypeBoolean:
		return true
	case tools.TypeArray:
		if len(allowed) > 0 {
			return []any{allowed[0]}
		}
		return []any{}
	default:
		if len(allowed) > 0 {
			return allowed[0]
		}
		return "example-" + p.Name
	}
}
