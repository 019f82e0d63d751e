package dispatch

import (
	"errors"
	"fmt"

	"github.com/mwiater/langchain-mcp/mcp/tools"
	"github.com/xeipuuv/gojsonschema"
)

// Registry is the read-only catalogue of tools, keyed by name and kept in
// advertisement order.
type Registry struct {
	order   []string
	entries map[string]entry
}

type entry struct {
	tool   tools.Tool
	schema *gojsonschema.Schema
}

// NewRegistry indexes the catalogue and compiles each input schema. Empty
// catalogues, duplicate names and uncompilable schemas are startup faults.
func NewRegistry(catalog []tools.Tool) (*Registry, error) {
	if len(catalog) == 0 {
		return nil, errors.New("tool catalogue is empty")
	}
	r := &Registry{entries: make(map[string]entry, len(catalog))}
	for _, t := range catalog {
		name := t.Definition.Name
		if name == "" {
			return nil, errors.New("tool with empty name")
		}
		if _, dup := r.entries[name]; dup {
			return nil, fmt.Errorf("duplicate tool name %q", name)
		}
		if t.Generate == nil {
			return nil, fmt.Errorf("tool %q has no generator", name)
		}
		schema, err := gojsonschema.NewSchema(gojsonschema.NewGoLoader(t.Definition.InputSchema.ValidationDocument()))
		if err != nil {
			return nil, fmt.Errorf("compile schema for %q: %w", name, err)
		}
		r.order = append(r.order, name)
		r.entries[name] = entry{tool: t, schema: schema}
	}
	return r, nil
}

// Definitions returns the tool descriptors in advertisement order.
func (r *Registry) Definitions() []tools.Definition {
	defs := make([]tools.Definition, 0, len(r.order))
	for _, name := range r.order {
		defs = append(defs, r.entries[name].tool.Definition)
	}
	return defs
}

// Lookup returns the tool registered under name.
func (r *Registry) Lookup(name string) (tools.Tool, bool) {
	e, ok := r.entries[name]
	return e.tool, ok
}

// Len reports the number of registered tools.
func (r *Registry) Len() int { return len(r.order) }
