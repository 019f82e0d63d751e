package tools

import (
	"strings"
	"testing"
)

func withDefaults(def Definition, overrides Args) Args {
	args := DefaultArgs(def)
	for k, v := range overrides {
		args[k] = v
	}
	return args
}

func mustContain(t *testing.T, out string, wants ...string) {
	t.Helper()
	for _, w := range wants {
		if !strings.Contains(out, w) {
			t.Errorf("output missing %q\n%s", w, out)
		}
	}
}

func TestGeneratorsRenderDefaults(t *testing.T) {
	cases := map[string]struct {
		overrides Args
		wants     []string
	}{
		SetupSupabaseVectorstoreName: {
			overrides: Args{"project_name": "demo"},
			wants:     []string{`"demo"`, "documents", "text-embedding-004", "vector(768)", "match_documents", "GoogleGenerativeAIEmbeddings"},
		},
		CreateRAGChainName: {
			wants: []string{"SupabaseVectorStore", "claude-sonnet-4-5-20250929", "asRetriever({ k: 5 })", "cache_control", "enable_caching=true"},
		},
		GenerateDocumentIngestionName: {
			wants: []string{"CHUNK_SIZE = 1000", "CHUNK_OVERLAP = 200", "text-embedding-004", `fromLanguage("markdown"`, `".md"`},
		},
		CreateConversationalRAGName: {
			wants: []string{"BufferMemory", "claude-sonnet-4-5-20250929"},
		},
		SetupHybridSearchName: {
			wants: []string{"VECTOR_WEIGHT = 0.7", "KEYWORD_WEIGHT = 0.3", "kw_match_documents"},
		},
		CreateMultiQueryRetrieverName: {
			wants: []string{"NUM_QUERIES = 3", "MultiQueryRetriever.fromLLM"},
		},
		SetupExtendedThinkingName: {
			wants: []string{"THINKING_BUDGET = 8000", "COMPLEXITY_THRESHOLD = 60", "maxTokens: 12096", `type: "enabled"`},
		},
		GeneratePackageSetupName: {
			wants: []string{`"@langchain/anthropic": "^0.3.0"`, "Features: core only", "ANTHROPIC_API_KEY"},
		},
	}
	for _, tool := range Catalog() {
		tc, ok := cases[tool.Definition.Name]
		if !ok {
			t.Fatalf("no test case for %s", tool.Definition.Name)
		}
		out, err := tool.Generate(withDefaults(tool.Definition, tc.overrides))
		if err != nil {
			t.Fatalf("%s: %v", tool.Definition.Name, err)
		}
		mustContain(t, out, tc.wants...)
		if strings.Contains(out, "<no value>") {
			t.Errorf("%s: unresolved template value\n%s", tool.Definition.Name, out)
		}
	}
}

func TestGeneratorsDeterministic(t *testing.T) {
	for _, tool := range Catalog() {
		args := withDefaults(tool.Definition, Args{"project_name": "demo", "features": []any{"pdf", "supabase"}})
		first, err := tool.Generate(args)
		if err != nil {
			t.Fatalf("%s: %v", tool.Definition.Name, err)
		}
		second, err := tool.Generate(args)
		if err != nil {
			t.Fatalf("%s: %v", tool.Definition.Name, err)
		}
		if first != second {
			t.Fatalf("%s: output differs between identical calls", tool.Definition.Name)
		}
	}
}

func TestVectorstoreOpenAIEmbeddings(t *testing.T) {
	out, err := SetupSupabaseVectorstore(withDefaults(SetupSupabaseVectorstoreDefinition(), Args{
		"project_name":    "acme",
		"table_name":      "kb_chunks",
		"embedding_model": "text-embedding-3-small",
		"dimension":       float64(1536),
	}))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	mustContain(t, out, "OpenAIEmbeddings", "@langchain/openai", "vector(1536)", "create table if not exists kb_chunks", "match_kb_chunks", "OPENAI_API_KEY")
}

func TestVectorstoreEscapesProjectName(t *testing.T) {
	out, err := SetupSupabaseVectorstore(withDefaults(SetupSupabaseVectorstoreDefinition(), Args{
		"project_name": "x\";process.exit(1);//\nnext",
		"table_name":   "docs; drop table users",
	}))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	mustContain(t, out, `const PROJECT_NAME = "x\";process.exit(1);//\nnext";`, "docs__drop_table_users")
	if strings.Contains(out, "docs; drop") {
		t.Fatalf("raw table name leaked into output")
	}
}

// TestVectorstoreTableNameAgrees checks that the migration and the
// TypeScript store address the same table for names that need cleaning.
func TestVectorstoreTableNameAgrees(t *testing.T) {
	tests := []struct {
		table string
		want  string
	}{
		{"documents", "documents"},
		{"Docs-2024", "docs_2024"},
		{"MyDocs", "mydocs"},
		{"2024 docs", "_2024_docs"},
	}
	for _, tt := range tests {
		t.Run(tt.table, func(t *testing.T) {
			out, err := SetupSupabaseVectorstore(withDefaults(SetupSupabaseVectorstoreDefinition(), Args{
				"project_name": "p",
				"table_name":   tt.table,
			}))
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			mustContain(t, out,
				"create table if not exists "+tt.want+" (",
				"create or replace function match_"+tt.want+" (",
				`const TABLE_NAME = "`+tt.want+`";`,
				`queryName: "match_`+tt.want+`",`,
			)
			if tt.table != tt.want && strings.Contains(out, `"`+tt.table+`"`) {
				t.Fatalf("raw table name %q reached the TypeScript module", tt.table)
			}
		})
	}
}

func TestRAGChainVectorStores(t *testing.T) {
	cases := map[string]string{
		"supabase":  "SupabaseVectorStore",
		"pinecone":  "PineconeStore.fromExistingIndex",
		"chroma":    "new Chroma(embeddings",
		"in-memory": "new MemoryVectorStore(embeddings)",
	}
	for store, want := range cases {
		out, err := CreateRAGChain(withDefaults(CreateRAGChainDefinition(), Args{"vectorstore_type": store}))
		if err != nil {
			t.Fatalf("%s: %v", store, err)
		}
		mustContain(t, out, want)
	}
}

func TestRAGChainNegativeKAndNoCaching(t *testing.T) {
	out, err := CreateRAGChain(withDefaults(CreateRAGChainDefinition(), Args{"retriever_k": -1, "enable_caching": false}))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	mustContain(t, out, "asRetriever({ k: -1 })", `["system", SYSTEM_PROMPT]`)
	if strings.Contains(out, "cache_control") {
		t.Fatalf("caching disabled but cache_control rendered")
	}
}

func TestIngestionLoaders(t *testing.T) {
	cases := map[string]string{
		"markdown": "TextLoader",
		"pdf":      "PDFLoader",
		"text":     "TextLoader",
		"json":     "JSONLoader",
		"csv":      "CSVLoader",
	}
	for source, loader := range cases {
		out, err := GenerateDocumentIngestion(withDefaults(GenerateDocumentIngestionDefinition(), Args{"source_type": source}))
		if err != nil {
			t.Fatalf("%s: %v", source, err)
		}
		mustContain(t, out, loader, documentLoaders[source].Extension)
		if source != "markdown" && strings.Contains(out, "fromLanguage") {
			t.Errorf("%s: unexpected markdown splitter", source)
		}
	}
	if _, err := GenerateDocumentIngestion(withDefaults(GenerateDocumentIngestionDefinition(), Args{"source_type": "docx"})); err == nil {
		t.Fatalf("expected error for unsupported source type")
	}
}

func TestConversationalMemoryTypes(t *testing.T) {
	for memory, class := range map[string]string{"buffer": "BufferMemory", "summary": "ConversationSummaryMemory", "buffer-window": "BufferWindowMemory"} {
		out, err := CreateConversationalRAG(withDefaults(CreateConversationalRAGDefinition(), Args{"memory_type": memory}))
		if err != nil {
			t.Fatalf("%s: %v", memory, err)
		}
		mustContain(t, out, "new "+class+"(")
	}
}

func TestHybridSearchWeightNote(t *testing.T) {
	out, err := SetupHybridSearch(Args{"vector_weight": 0.5, "keyword_weight": 0.6})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	mustContain(t, out, "= 1.1, not 1")

	out, err = SetupHybridSearch(DefaultArgs(SetupHybridSearchDefinition()))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if strings.Contains(out, "Note:") {
		t.Fatalf("default weights should not produce a note")
	}
}

func TestHybridSearchZeroWeights(t *testing.T) {
	for _, weights := range [][2]float64{{0, 0}, {0.4, -0.4}} {
		out, err := SetupHybridSearch(Args{"vector_weight": weights[0], "keyword_weight": weights[1]})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		mustContain(t, out,
			"= 0, so the weights cannot be normalized",
			"WEIGHT_SUM !== 0",
			"(vectorScore + keywordScore) / 2",
		)
		if strings.Contains(out, "not 1. Scores are divided by the sum") {
			t.Fatalf("zero sum should not claim scores are divided by it")
		}
	}
}

func TestPackageSetupFeatures(t *testing.T) {
	out, err := GeneratePackageSetup(Args{"features": []any{"caching", "supabase", "pdf", "supabase", "streaming", "csv"}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	mustContain(t, out,
		"Features: supabase, pdf, csv, streaming, caching",
		`"@supabase/supabase-js": "^2.45.0"`,
		`"pdf-parse": "^1.1.1"`,
		`"d3-dsv": "^2.0.0"`,
		"SUPABASE_URL=",
		"## Streaming",
		"## Prompt caching",
	)
	if strings.Count(out, `"@supabase/supabase-js"`) != 1 {
		t.Fatalf("duplicate feature should render once")
	}
}

// TestPackageSetupCoversEmbeddingProviders checks that every embeddings
// package the other generators can emit is installed by the core setup.
func TestPackageSetupCoversEmbeddingProviders(t *testing.T) {
	out, err := GeneratePackageSetup(Args{"features": []any{}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, model := range []string{"text-embedding-004", "text-embedding-3-small", "text-embedding-3-large"} {
		emb := embeddingsFor(model)
		mustContain(t, out, `"`+emb.Package+`": `, " "+emb.Package+"@", emb.EnvVar+"=")
	}
}
