package dispatch

import (
	"fmt"
	"sort"
	"strings"

	"github.com/mwiater/langchain-mcp/mcp/tools"
	"github.com/xeipuuv/gojsonschema"
)

// resolve applies declared defaults to args and validates the result
// against the tool's schema. JSON null counts as absent. Parameters the
// schema does not declare are passed through untouched.
func resolve(e entry, args map[string]any) (tools.Args, error) {
	def := e.tool.Definition
	resolved := make(tools.Args, len(args))
	for k, v := range args {
		if v != nil {
			resolved[k] = v
		}
	}
	for _, p := range def.InputSchema.Properties {
		if _, ok := resolved[p.Name]; !ok && p.HasDefault() {
			resolved[p.Name] = p.Default
		}
	}

	result, err := e.schema.Validate(gojsonschema.NewGoLoader(map[string]any(resolved)))
	if err != nil {
		return nil, &ToolError{
			Kind:     KindInvalidParameterType,
			Tool:     def.Name,
			Param:    "arguments",
			Expected: "JSON object",
			Value:    err,
			Err:      err,
		}
	}
	if result.Valid() {
		return resolved, nil
	}

	errs := make([]*ToolError, 0, len(result.Errors()))
	for _, re := range result.Errors() {
		errs = append(errs, toToolError(def, re))
	}
	sort.SliceStable(errs, func(i, j int) bool {
		ri, rj := kindRank(errs[i].Kind), kindRank(errs[j].Kind)
		if ri != rj {
			return ri < rj
		}
		return errs[i].Param < errs[j].Param
	})
	return nil, errs[0]
}

// toToolError maps one gojsonschema result error onto the dispatch taxonomy.
func toToolError(def tools.Definition, re gojsonschema.ResultError) *ToolError {
	switch re.Type() {
	case "required":
		param, _ := re.Details()["property"].(string)
		return &ToolError{Kind: KindMissingRequiredParameter, Tool: def.Name, Param: param}
	case "enum":
		param := rootField(re.Field())
		te := &ToolError{Kind: KindInvalidEnumValue, Tool: def.Name, Param: param, Value: re.Value()}
		if p, ok := def.InputSchema.Lookup(param); ok {
			te.Allowed = p.AllowedValues()
		}
		return te
	default:
		param := rootField(re.Field())
		expected := fmt.Sprint(re.Details()["expected"])
		if p, ok := def.InputSchema.Lookup(param); ok && re.Type() != "invalid_type" {
			expected = p.Type
		}
		return &ToolError{
			Kind:     KindInvalidParameterType,
			Tool:     def.Name,
			Param:    re.Field(),
			Value:    re.Value(),
			Expected: expected,
		}
	}
}

// rootField turns "features.0" into "features".
func rootField(field string) string {
	root, _, _ := strings.Cut(field, ".")
	return root
}

func kindRank(k ErrorKind) int {
	switch k {
	case KindMissingRequiredParameter:
		return 0
	case KindInvalidEnumValue:
		return 1
	default:
		return 2
	}
}
