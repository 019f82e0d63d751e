package tools

import (
	"bytes"
	"encoding/json"
)

// Definition describes the metadata the MCP server exposes for a tool.
type Definition struct {
	Name        string      `json:"name"`
	Description string      `json:"description"`
	InputSchema InputSchema `json:"inputSchema"`
}

// Generator renders source code text from resolved arguments.
type Generator func(Args) (string, error)

// Tool binds a Definition to the generator that serves it.
type Tool struct {
	Definition Definition
	Generate   Generator
}

// ContentPart represents a piece of data returned from a tool invocation.
type ContentPart struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

// Parameter types understood by the schema model.
const (
	TypeString  = "string"
	TypeNumber  = "number"
	TypeBoolean = "boolean"
	TypeArray   = "array"
)

// Param declares one tool parameter. Defaults and enums live here and
// nowhere else; generators receive arguments with defaults already applied.
type Param struct {
	Name        string
	Type        string
	Description string
	Default     any
	Enum        []string
	Items       *Items
	Required    bool
}

// Items describes the element type of an array parameter.
type Items struct {
	Type string   `json:"type"`
	Enum []string `json:"enum,omitempty"`
}

// HasDefault reports whether the parameter declares a default value.
func (p Param) HasDefault() bool { return p.Default != nil }

// AllowedValues returns the enum that constrains the parameter, looking
// through to the item enum for arrays.
func (p Param) AllowedValues() []string {
	if len(p.Enum) > 0 {
		return p.Enum
	}
	if p.Items != nil {
		return p.Items.Enum
	}
	return nil
}

// InputSchema is an object schema whose properties keep declaration order.
type InputSchema struct {
	Properties []Param
}

// Lookup returns the named parameter.
func (s InputSchema) Lookup(name string) (Param, bool) {
	for _, p := range s.Properties {
		if p.Name == name {
			return p, true
		}
	}
	return Param{}, false
}

// RequiredNames lists required parameters in declaration order. The result
// is never nil so it serializes as [].
func (s InputSchema) RequiredNames() []string {
	names := []string{}
	for _, p := range s.Properties {
		if p.Required {
			names = append(names, p.Name)
		}
	}
	return names
}

type propertyJSON struct {
	Type        string   `json:"type"`
	Description string   `json:"description,omitempty"`
	Items       *Items   `json:"items,omitempty"`
	Enum        []string `json:"enum,omitempty"`
	Default     any      `json:"default,omitempty"`
}

func (p Param) property() propertyJSON {
	return propertyJSON{
		Type:        p.Type,
		Description: p.Description,
		Items:       p.Items,
		Enum:        p.Enum,
		Default:     p.Default,
	}
}

// MarshalJSON writes the schema as a JSON Schema object, properties in
// declaration order.
func (s InputSchema) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString(`{"type":"object","properties":{`)
	for i, p := range s.Properties {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(p.Name)
		if err != nil {
			return nil, err
		}
		val, err := json.Marshal(p.property())
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteString(`},"required":`)
	req, err := json.Marshal(s.RequiredNames())
	if err != nil {
		return nil, err
	}
	buf.Write(req)
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// ValidationDocument returns the subset of the schema used for argument
// validation: types, enums and required names. Descriptions and defaults
// are left out since defaults are applied before validation.
func (s InputSchema) ValidationDocument() map[string]any {
	props := make(map[string]any, len(s.Properties))
	for _, p := range s.Properties {
		prop := map[string]any{"type": p.Type}
		if len(p.Enum) > 0 {
			prop["enum"] = stringsToAny(p.Enum)
		}
		if p.Items != nil {
			items := map[string]any{"type": p.Items.Type}
			if len(p.Items.Enum) > 0 {
				items["enum"] = stringsToAny(p.Items.Enum)
			}
			prop["items"] = items
		}
		props[p.Name] = prop
	}
	doc := map[string]any{
		"type":       "object",
		"properties": props,
	}
	if req := s.RequiredNames(); len(req) > 0 {
		doc["required"] = stringsToAny(req)
	}
	return doc
}

func stringsToAny(values []string) []any {
	out := make([]any, len(values))
	for i, v := range values {
		out[i] = v
	}
	return out
}

const (
	// SetupSupabaseVectorstoreName is the canonical name for the vector store setup tool.
	SetupSupabaseVectorstoreName = "setup_supabase_vectorstore"
	// CreateRAGChainName is the canonical name for the RAG chain tool.
	CreateRAGChainName = "create_rag_chain"
	// GenerateDocumentIngestionName is the canonical name for the ingestion pipeline tool.
	GenerateDocumentIngestionName = "generate_document_ingestion"
	// CreateConversationalRAGName is the canonical name for the conversational RAG tool.
	CreateConversationalRAGName = "create_conversational_rag"
	// SetupHybridSearchName is the canonical name for the hybrid search tool.
	SetupHybridSearchName = "setup_hybrid_search"
	// CreateMultiQueryRetrieverName is the canonical name for the multi-query retriever tool.
	CreateMultiQueryRetrieverName = "create_multi_query_retriever"
	// SetupExtendedThinkingName is the canonical name for the extended thinking tool.
	SetupExtendedThinkingName = "setup_extended_thinking"
	// GeneratePackageSetupName is the canonical name for the package setup tool.
	GeneratePackageSetupName = "generate_package_setup"
)
