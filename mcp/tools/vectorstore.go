package tools

// SetupSupabaseVectorstoreDefinition describes the Supabase vector store tool.
func SetupSupabaseVectorstoreDefinition() Definition {
	return Definition{
		Name:        SetupSupabaseVectorstoreName,
		Description: "Generate code to set up Supabase as a vector store with LangChain. Returns TypeScript code ready to use.",
		InputSchema: InputSchema{Properties: []Param{
			{
				Name:        "project_name",
				Type:        TypeString,
				Description: "Name of the project",
				Required:    true,
			},
			{
				Name:        "table_name",
				Type:        TypeString,
				Description: "Name of the vector table in Supabase",
				Default:     "documents",
			},
			{
				Name:        "embedding_model",
				Type:        TypeString,
				Description: "Embedding model to use",
				Enum:        []string{"text-embedding-004", "text-embedding-3-small", "text-embedding-3-large"},
				Default:     "text-embedding-004",
			},
			{
				Name:        "dimension",
				Type:        TypeNumber,
				Description: "Vector dimension (768 for Gemini, 1536 for OpenAI)",
				Default:     float64(768),
			},
		}},
	}
}

// vectorstoreData.Table is the SQL-safe name shared by the migration and the
// store, so both sides address the same table.
type vectorstoreData struct {
	ProjectName string
	Table       string
	Dimension   float64
	Embeddings  embeddings
}

// SetupSupabaseVectorstore renders the SQL migration and TypeScript wiring
// for a Supabase-backed LangChain vector store.
func SetupSupabaseVectorstore(args Args) (string, error) {
	project, err := args.String("project_name")
	if err != nil {
		return "", err
	}
	table, err := args.String("table_name")
	if err != nil {
		return "", err
	}
	model, err := args.String("embedding_model")
	if err != nil {
		return "", err
	}
	dim, err := args.Number("dimension")
	if err != nil {
		return "", err
	}
	return render("supabase_vectorstore.tmpl", vectorstoreData{
		ProjectName: project,
		Table:       sqlIdent(table),
		Dimension:   dim,
		Embeddings:  embeddingsFor(model),
	})
}
