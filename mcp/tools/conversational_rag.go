package tools

// CreateConversationalRAGDefinition describes the conversational RAG tool.
func CreateConversationalRAGDefinition() Definition {
	return Definition{
		Name:        CreateConversationalRAGName,
		Description: "Generate a conversational RAG system with memory that maintains context across multiple queries.",
		InputSchema: InputSchema{Properties: []Param{
			{
				Name:        "memory_type",
				Type:        TypeString,
				Description: "Type of conversation memory",
				Enum:        []string{"buffer", "summary", "buffer-window"},
				Default:     "buffer",
			},
			{
				Name:        "claude_model",
				Type:        TypeString,
				Description: "Claude model",
				Default:     defaultClaudeModel,
			},
		}},
	}
}

type memoryClass struct {
	Class string
	// Options is the object literal passed to the constructor.
	Options string
	Note    string
}

var memoryClasses = map[string]memoryClass{
	"buffer": {
		Class:   "BufferMemory",
		Options: `{ memoryKey: "chat_history", returnMessages: true, inputKey: "question", outputKey: "text" }`,
		Note:    "Keeps the full conversation history.",
	},
	"summary": {
		Class:   "ConversationSummaryMemory",
		Options: `{ llm, memoryKey: "chat_history", inputKey: "question", outputKey: "text" }`,
		Note:    "Condenses older turns into a running summary written by Claude.",
	},
	"buffer-window": {
		Class:   "BufferWindowMemory",
		Options: `{ k: 5, memoryKey: "chat_history", returnMessages: true, inputKey: "question", outputKey: "text" }`,
		Note:    "Keeps only the last 5 exchanges.",
	},
}

type conversationalData struct {
	MemoryType  string
	Memory      memoryClass
	ClaudeModel string
}

// CreateConversationalRAG renders a retrieval chain that carries chat
// history between questions.
func CreateConversationalRAG(args Args) (string, error) {
	memoryType, err := args.String("memory_type")
	if err != nil {
		return "", err
	}
	model, err := args.String("claude_model")
	if err != nil {
		return "", err
	}
	mem, ok := memoryClasses[memoryType]
	if !ok {
		return "", errUnsupported("memory_type", memoryType)
	}
	return render("conversational_rag.tmpl", conversationalData{
		MemoryType:  memoryType,
		Memory:      mem,
		ClaudeModel: model,
	})
}
