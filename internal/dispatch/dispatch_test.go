package dispatch

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/mwiater/langchain-mcp/internal/telemetry"
	"github.com/mwiater/langchain-mcp/mcp/tools"
)

func newDispatcher(t *testing.T, opts ...Option) *Dispatcher {
	t.Helper()
	d, err := NewDefault(opts...)
	if err != nil {
		t.Fatalf("NewDefault: %v", err)
	}
	return d
}

func call(d *Dispatcher, name string, args map[string]any) Response {
	return d.Call(context.Background(), Request{ToolName: name, Arguments: args})
}

func TestCallSupabaseDefaults(t *testing.T) {
	d := newDispatcher(t)
	resp := call(d, tools.SetupSupabaseVectorstoreName, map[string]any{"project_name": "demo"})
	if resp.IsError {
		t.Fatalf("unexpected error: %s", resp.Content)
	}
	for _, want := range []string{"documents", "text-embedding-004", "768"} {
		if !strings.Contains(resp.Content, want) {
			t.Errorf("expected %q in output", want)
		}
	}
}

func TestCallAppliesEveryDefaultVerbatim(t *testing.T) {
	d := newDispatcher(t)
	for _, def := range d.List() {
		args := map[string]any{}
		if def.Name == tools.SetupSupabaseVectorstoreName {
			args["project_name"] = "demo"
		}
		resp := call(d, def.Name, args)
		if resp.IsError {
			t.Fatalf("%s: unexpected error: %s", def.Name, resp.Content)
		}
		for _, p := range def.InputSchema.Properties {
			if !p.HasDefault() {
				continue
			}
			var want string
			switch v := p.Default.(type) {
			case float64:
				want = tools.FormatNumber(v)
			case bool:
				// booleans select template branches rather than being echoed
				continue
			default:
				want = v.(string)
			}
			if !strings.Contains(resp.Content, want) {
				t.Errorf("%s: default %s=%s not found in output", def.Name, p.Name, want)
			}
		}
	}
}

func TestCallNullArgumentUsesDefault(t *testing.T) {
	d := newDispatcher(t)
	resp := call(d, tools.CreateMultiQueryRetrieverName, map[string]any{"num_queries": nil})
	if resp.IsError {
		t.Fatalf("unexpected error: %s", resp.Content)
	}
	if !strings.Contains(resp.Content, "NUM_QUERIES = 3") {
		t.Fatalf("expected default num_queries")
	}
}

func TestCallUnknownTool(t *testing.T) {
	d := newDispatcher(t)
	resp := call(d, "does_not_exist", nil)
	if !resp.IsError {
		t.Fatalf("expected error response")
	}
	if !errors.Is(resp.Err, ErrUnknownTool) {
		t.Fatalf("expected UnknownTool, got %v", resp.Err)
	}
	if !strings.HasPrefix(resp.Content, "UnknownTool: ") {
		t.Fatalf("unexpected message %q", resp.Content)
	}
}

func TestCallMissingRequired(t *testing.T) {
	d := newDispatcher(t)
	resp := call(d, tools.SetupSupabaseVectorstoreName, map[string]any{"table_name": "x"})
	if !resp.IsError || !errors.Is(resp.Err, ErrMissingRequiredParameter) {
		t.Fatalf("expected MissingRequiredParameter, got %+v", resp)
	}
	var te *ToolError
	if !errors.As(resp.Err, &te) || te.Param != "project_name" {
		t.Fatalf("expected project_name in error, got %v", resp.Err)
	}
}

func TestCallRequiredWithDefaultIsNotMissing(t *testing.T) {
	d := newDispatcher(t)
	resp := call(d, tools.GenerateDocumentIngestionName, nil)
	if resp.IsError {
		t.Fatalf("source_type has a default, got error %s", resp.Content)
	}
}

func TestCallInvalidEnum(t *testing.T) {
	d := newDispatcher(t)
	cases := []struct {
		tool  string
		args  map[string]any
		param string
	}{
		{tools.SetupSupabaseVectorstoreName, map[string]any{"project_name": "p", "embedding_model": "ada-002"}, "embedding_model"},
		{tools.CreateRAGChainName, map[string]any{"vectorstore_type": "weaviate"}, "vectorstore_type"},
		{tools.CreateRAGChainName, map[string]any{"claude_model": "claude-2"}, "claude_model"},
		{tools.GenerateDocumentIngestionName, map[string]any{"source_type": "docx"}, "source_type"},
		{tools.CreateConversationalRAGName, map[string]any{"memory_type": "vector"}, "memory_type"},
		{tools.GeneratePackageSetupName, map[string]any{"features": []any{"pdf", "graphql"}}, "features"},
	}
	for _, tc := range cases {
		resp := call(d, tc.tool, tc.args)
		if !resp.IsError || !errors.Is(resp.Err, ErrInvalidEnumValue) {
			t.Fatalf("%s: expected InvalidEnumValue, got %+v", tc.tool, resp)
		}
		var te *ToolError
		if !errors.As(resp.Err, &te) || te.Param != tc.param || len(te.Allowed) == 0 {
			t.Fatalf("%s: unexpected error detail %+v", tc.tool, te)
		}
	}
}

func TestCallFreeStringIsNotEnumChecked(t *testing.T) {
	d := newDispatcher(t)
	resp := call(d, tools.CreateConversationalRAGName, map[string]any{"claude_model": "claude-custom"})
	if resp.IsError {
		t.Fatalf("conversational claude_model has no enum, got %s", resp.Content)
	}
	if !strings.Contains(resp.Content, `"claude-custom"`) {
		t.Fatalf("expected custom model in output")
	}
}

func TestCallInvalidType(t *testing.T) {
	d := newDispatcher(t)
	resp := call(d, tools.CreateRAGChainName, map[string]any{"retriever_k": "five"})
	if !resp.IsError || !errors.Is(resp.Err, ErrInvalidParameterType) {
		t.Fatalf("expected InvalidParameterType, got %+v", resp)
	}
}

func TestCallErrorPriority(t *testing.T) {
	d := newDispatcher(t)
	resp := call(d, tools.SetupSupabaseVectorstoreName, map[string]any{"embedding_model": "bad", "dimension": "wide"})
	if !errors.Is(resp.Err, ErrMissingRequiredParameter) {
		t.Fatalf("missing required should be reported first, got %v", resp.Err)
	}
}

func TestCallNegativeRetrieverK(t *testing.T) {
	d := newDispatcher(t)
	resp := call(d, tools.CreateRAGChainName, map[string]any{"retriever_k": float64(-1)})
	if resp.IsError {
		t.Fatalf("unexpected error: %s", resp.Content)
	}
	if !strings.Contains(resp.Content, "k: -1") {
		t.Fatalf("expected -1 rendered verbatim")
	}
}

func TestCallIdempotent(t *testing.T) {
	d := newDispatcher(t)
	args := map[string]any{"vectorstore_type": "chroma", "retriever_k": float64(8)}
	first := call(d, tools.CreateRAGChainName, args)
	second := call(d, tools.CreateRAGChainName, args)
	if first.IsError || first.Content != second.Content {
		t.Fatalf("expected identical output")
	}
}

func TestCallDoesNotMutateArguments(t *testing.T) {
	d := newDispatcher(t)
	args := map[string]any{"project_name": "demo"}
	call(d, tools.SetupSupabaseVectorstoreName, args)
	if len(args) != 1 {
		t.Fatalf("caller arguments were modified: %v", args)
	}
}

func TestBadCallDoesNotAffectNextCall(t *testing.T) {
	d := newDispatcher(t)
	call(d, "nope", nil)
	call(d, tools.SetupSupabaseVectorstoreName, nil)
	resp := call(d, tools.SetupHybridSearchName, nil)
	if resp.IsError {
		t.Fatalf("unexpected error after failed calls: %s", resp.Content)
	}
}

func TestGeneratorFailuresAreRecovered(t *testing.T) {
	reg, err := NewRegistry([]tools.Tool{
		{
			Definition: tools.Definition{Name: "panics"},
			Generate:   func(tools.Args) (string, error) { panic("boom") },
		},
		{
			Definition: tools.Definition{Name: "fails"},
			Generate:   func(tools.Args) (string, error) { return "", errors.New("bad template") },
		},
	})
	if err != nil {
		t.Fatalf("NewRegistry: %v", err)
	}
	d := New(reg)
	for _, name := range []string{"panics", "fails"} {
		resp := call(d, name, nil)
		if !resp.IsError || !errors.Is(resp.Err, ErrGeneratorInternalError) {
			t.Fatalf("%s: expected GeneratorInternalError, got %+v", name, resp)
		}
	}
}

func TestConcurrentCalls(t *testing.T) {
	d := newDispatcher(t)
	want := call(d, tools.SetupExtendedThinkingName, nil).Content
	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if got := call(d, tools.SetupExtendedThinkingName, nil).Content; got != want {
				t.Errorf("concurrent call produced different output")
			}
		}()
	}
	wg.Wait()
}

func TestCallRecordsMetrics(t *testing.T) {
	ctx := context.Background()
	collector := telemetry.NewCollector()
	t.Cleanup(func() { _ = collector.Shutdown(ctx) })
	rec, err := telemetry.NewRecorder(collector.MeterProvider())
	if err != nil {
		t.Fatalf("NewRecorder: %v", err)
	}
	d := newDispatcher(t, WithRecorder(rec))
	call(d, tools.SetupHybridSearchName, nil)
	call(d, "nope", nil)

	counts, err := collector.CallCounts(ctx)
	if err != nil {
		t.Fatalf("CallCounts: %v", err)
	}
	if counts["setup_hybrid_search/ok"] != 1 || counts["nope/UnknownTool"] != 1 {
		t.Fatalf("unexpected counts %v", counts)
	}
}
