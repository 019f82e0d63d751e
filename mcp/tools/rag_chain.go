package tools

// Claude model identifiers offered by the catalogue.
var claudeModels = []string{"claude-haiku-4-5-20251001", "claude-sonnet-4-5-20250929", "claude-opus-4-5-20250929"}

const defaultClaudeModel = "claude-sonnet-4-5-20250929"

// CreateRAGChainDefinition describes the RAG chain tool.
func CreateRAGChainDefinition() Definition {
	return Definition{
		Name:        CreateRAGChainName,
		Description: "Generate a complete RAG chain with LangChain and Anthropic Claude. Returns TypeScript implementation.",
		InputSchema: InputSchema{Properties: []Param{
			{
				Name:        "vectorstore_type",
				Type:        TypeString,
				Description: "Type of vector store",
				Enum:        []string{"supabase", "pinecone", "chroma", "in-memory"},
				Default:     "supabase",
			},
			{
				Name:        "claude_model",
				Type:        TypeString,
				Description: "Claude model to use",
				Enum:        claudeModels,
				Default:     defaultClaudeModel,
			},
			{
				Name:        "retriever_k",
				Type:        TypeNumber,
				Description: "Number of documents to retrieve",
				Default:     float64(5),
			},
			{
				Name:        "enable_caching",
				Type:        TypeBoolean,
				Description: "Enable prompt caching (90% cost savings)",
				Default:     true,
			},
		}},
	}
}

type ragChainData struct {
	VectorStore   string
	ClaudeModel   string
	RetrieverK    float64
	EnableCaching bool
	Embeddings    embeddings
}

// CreateRAGChain renders a retrieval chain over the selected vector store
// answered by Claude.
func CreateRAGChain(args Args) (string, error) {
	store, err := args.String("vectorstore_type")
	if err != nil {
		return "", err
	}
	model, err := args.String("claude_model")
	if err != nil {
		return "", err
	}
	k, err := args.Number("retriever_k")
	if err != nil {
		return "", err
	}
	caching, err := args.Bool("enable_caching")
	if err != nil {
		return "", err
	}
	return render("rag_chain.tmpl", ragChainData{
		VectorStore:   store,
		ClaudeModel:   model,
		RetrieverK:    k,
		EnableCaching: caching,
		Embeddings:    embeddingsFor("text-embedding-004"),
	})
}
