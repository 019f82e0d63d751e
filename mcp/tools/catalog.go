package tools

// Catalog returns every tool the server offers, in the order they are
// advertised to callers.
func Catalog() []Tool {
	return []Tool{
		{Definition: SetupSupabaseVectorstoreDefinition(), Generate: SetupSupabaseVectorstore},
		{Definition: CreateRAGChainDefinition(), Generate: CreateRAGChain},
		{Definition: GenerateDocumentIngestionDefinition(), Generate: GenerateDocumentIngestion},
		{Definition: CreateConversationalRAGDefinition(), Generate: CreateConversationalRAG},
		{Definition: SetupHybridSearchDefinition(), Generate: SetupHybridSearch},
		{Definition: CreateMultiQueryRetrieverDefinition(), Generate: CreateMultiQueryRetriever},
		{Definition: SetupExtendedThinkingDefinition(), Generate: SetupExtendedThinking},
		{Definition: GeneratePackageSetupDefinition(), Generate: GeneratePackageSetup},
	}
}

// Definitions returns the descriptors of Catalog in order.
func Definitions() []Definition {
	catalog := Catalog()
	defs := make([]Definition, 0, len(catalog))
	for _, t := range catalog {
		defs = append(defs, t.Definition)
	}
	return defs
}

// DefaultArgs returns the declared defaults of a definition as arguments.
func DefaultArgs(def Definition) Args {
	args := Args{}
	for _, p := range def.InputSchema.Properties {
		if p.HasDefault() {
			args[p.Name] = p.Default
		}
	}
	return args
}
