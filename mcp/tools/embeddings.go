package tools

import "strings"

// embeddings describes the LangChain embeddings class the generated code
// instantiates for a given model name.
type embeddings struct {
	Model   string
	Class   string
	Package string
	EnvVar  string
}

// embeddingsFor picks the provider from the model name. OpenAI models are
// recognised by prefix; everything else is treated as a Google model, which
// matches the text-embedding-004 default.
func embeddingsFor(model string) embeddings {
	if strings.HasPrefix(model, "text-embedding-3") || strings.HasPrefix(model, "text-embedding-ada") {
		return embeddings{
			Model:   model,
			Class:   "OpenAIEmbeddings",
			Package: "@langchain/openai",
			EnvVar:  "OPENAI_API_KEY",
		}
	}
	return embeddings{
		Model:   model,
		Class:   "GoogleGenerativeAIEmbeddings",
		Package: "@langchain/google-genai",
		EnvVar:  "GOOGLE_API_KEY",
	}
}
