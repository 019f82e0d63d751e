package tools

// CreateMultiQueryRetrieverDefinition describes the multi-query retriever tool.
func CreateMultiQueryRetrieverDefinition() Definition {
	return Definition{
		Name:        CreateMultiQueryRetrieverName,
		Description: "Generate a multi-query retriever that generates multiple search queries for better recall.",
		InputSchema: InputSchema{Properties: []Param{
			{
				Name:        "num_queries",
				Type:        TypeNumber,
				Description: "Number of query variations to generate",
				Default:     float64(3),
			},
		}},
	}
}

// CreateMultiQueryRetriever renders a retriever that asks Claude for query
// variations and unions the results.
func CreateMultiQueryRetriever(args Args) (string, error) {
	n, err := args.Number("num_queries")
	if err != nil {
		return "", err
	}
	return render("multi_query.tmpl", struct {
		NumQueries  float64
		ClaudeModel string
	}{NumQueries: n, ClaudeModel: defaultClaudeModel})
}
