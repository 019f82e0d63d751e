package tools

// GenerateDocumentIngestionDefinition describes the ingestion pipeline tool.
func GenerateDocumentIngestionDefinition() Definition {
	return Definition{
		Name:        GenerateDocumentIngestionName,
		Description: "Generate code for ingesting documents into a vector store with chunking and embedding.",
		InputSchema: InputSchema{Properties: []Param{
			{
				Name:        "source_type",
				Type:        TypeString,
				Description: "Type of documents to ingest",
				Enum:        []string{"markdown", "pdf", "text", "json", "csv"},
				Default:     "markdown",
				Required:    true,
			},
			{
				Name:        "chunk_size",
				Type:        TypeNumber,
				Description: "Chunk size in characters",
				Default:     float64(1000),
			},
			{
				Name:        "chunk_overlap",
				Type:        TypeNumber,
				Description: "Overlap between chunks",
				Default:     float64(200),
			},
			{
				Name:        "embedding_model",
				Type:        TypeString,
				Description: "Embedding model",
				Default:     "text-embedding-004",
			},
		}},
	}
}

// documentLoader is the LangChain loader used for one source type.
type documentLoader struct {
	Class     string
	Import    string
	Extension string
	// Factory is the TypeScript expression building a loader for `path`.
	Factory string
}

var documentLoaders = map[string]documentLoader{
	"markdown": {
		Class:     "TextLoader",
		Import:    "langchain/document_loaders/fs/text",
		Extension: ".md",
		Factory:   "new TextLoader(path)",
	},
	"pdf": {
		Class:     "PDFLoader",
		Import:    "@langchain/community/document_loaders/fs/pdf",
		Extension: ".pdf",
		Factory:   "new PDFLoader(path, { splitPages: true })",
	},
	"text": {
		Class:     "TextLoader",
		Import:    "langchain/document_loaders/fs/text",
		Extension: ".txt",
		Factory:   "new TextLoader(path)",
	},
	"json": {
		Class:     "JSONLoader",
		Import:    "langchain/document_loaders/fs/json",
		Extension: ".json",
		Factory:   "new JSONLoader(path)",
	},
	"csv": {
		Class:     "CSVLoader",
		Import:    "@langchain/community/document_loaders/fs/csv",
		Extension: ".csv",
		Factory:   "new CSVLoader(path)",
	},
}

type ingestionData struct {
	SourceType   string
	Loader       documentLoader
	ChunkSize    float64
	ChunkOverlap float64
	Embeddings   embeddings
}

// GenerateDocumentIngestion renders a load → split → embed → store pipeline.
func GenerateDocumentIngestion(args Args) (string, error) {
	source, err := args.String("source_type")
	if err != nil {
		return "", err
	}
	size, err := args.Number("chunk_size")
	if err != nil {
		return "", err
	}
	overlap, err := args.Number("chunk_overlap")
	if err != nil {
		return "", err
	}
	model, err := args.String("embedding_model")
	if err != nil {
		return "", err
	}
	loader, ok := documentLoaders[source]
	if !ok {
		return "", errUnsupported("source_type", source)
	}
	return render("document_ingestion.tmpl", ingestionData{
		SourceType:   source,
		Loader:       loader,
		ChunkSize:    size,
		ChunkOverlap: overlap,
		Embeddings:   embeddingsFor(model),
	})
}
