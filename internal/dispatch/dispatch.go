// Package dispatch validates tool calls against their declared schemas and
// routes them to the bound generator.
package dispatch

import (
	"context"
	"errors"
	"fmt"

	"github.com/mwiater/langchain-mcp/internal/logging"
	"github.com/mwiater/langchain-mcp/internal/telemetry"
	"github.com/mwiater/langchain-mcp/mcp/tools"
)

// Request is one tool invocation.
type Request struct {
	ToolName  string         `json:"name"`
	Arguments map[string]any `json:"arguments"`
}

// Response carries generated code, or an error message when IsError is set.
type Response struct {
	Content string `json:"content"`
	IsError bool   `json:"isError"`
	// Err is the underlying *ToolError for in-process callers.
	Err error `json:"-"`
}

// Dispatcher is safe for concurrent use: the registry is read-only and
// generators are pure.
type Dispatcher struct {
	registry *Registry
	recorder *telemetry.Recorder
}

// Option configures a Dispatcher.
type Option func(*Dispatcher)

// WithRecorder records call metrics on r.
func WithRecorder(r *telemetry.Recorder) Option {
	return func(d *Dispatcher) { d.recorder = r }
}

// New returns a dispatcher over reg.
func New(reg *Registry, opts ...Option) *Dispatcher {
	d := &Dispatcher{registry: reg}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// NewDefault builds a dispatcher over the full tool catalogue.
func NewDefault(opts ...Option) (*Dispatcher, error) {
	reg, err := NewRegistry(tools.Catalog())
	if err != nil {
		return nil, err
	}
	return New(reg, opts...), nil
}

// List returns the advertised tool descriptors.
func (d *Dispatcher) List() []tools.Definition {
	return d.registry.Definitions()
}

// Resolve looks up the tool and returns its arguments with defaults
// applied and validated.
func (d *Dispatcher) Resolve(name string, args map[string]any) (tools.Tool, tools.Args, error) {
	e, ok := d.registry.entries[name]
	if !ok {
		return tools.Tool{}, nil, &ToolError{Kind: KindUnknownTool, Tool: name}
	}
	resolved, err := resolve(e, args)
	if err != nil {
		return tools.Tool{}, nil, err
	}
	return e.tool, resolved, nil
}

// Call validates the request and renders the tool's output. Failures are
// returned as a Response with IsError set; Call never panics.
func (d *Dispatcher) Call(ctx context.Context, req Request) Response {
	tool, args, err := d.Resolve(req.ToolName, req.Arguments)
	if err != nil {
		return d.fail(ctx, req.ToolName, err)
	}
	if logging.DebugEnabled() {
		logging.LogDebug("resolved arguments for %s:\n%s", req.ToolName, logging.Dump(map[string]any(args)))
	}

	out, err := generate(tool, args)
	if err != nil {
		return d.fail(ctx, req.ToolName, err)
	}
	d.recorder.RecordCall(ctx, req.ToolName, telemetry.OutcomeOK, len(out))
	return Response{Content: out}
}

func (d *Dispatcher) fail(ctx context.Context, tool string, err error) Response {
	outcome := string(KindGeneratorInternalError)
	var te *ToolError
	if errors.As(err, &te) {
		outcome = string(te.Kind)
	}
	logging.LogEvent("tool %s rejected: %v", tool, err)
	d.recorder.RecordCall(ctx, tool, outcome, 0)
	return Response{Content: err.Error(), IsError: true, Err: err}
}

// generate runs the generator, converting errors and panics into
// GeneratorInternalError.
func generate(tool tools.Tool, args tools.Args) (out string, err error) {
	name := tool.Definition.Name
	defer func() {
		if r := recover(); r != nil {
			out = ""
			err = &ToolError{Kind: KindGeneratorInternalError, Tool: name, Err: fmt.Errorf("panic: %v", r)}
		}
	}()
	out, err = tool.Generate(args)
	if err != nil {
		return "", &ToolError{Kind: KindGeneratorInternalError, Tool: name, Err: err}
	}
	return out, nil
}
