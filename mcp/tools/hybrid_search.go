package tools

import "math"

// SetupHybridSearchDefinition describes the hybrid search tool.
func SetupHybridSearchDefinition() Definition {
	return Definition{
		Name:        SetupHybridSearchName,
		Description: "Generate hybrid search setup combining vector similarity and keyword search (BM25).",
		InputSchema: InputSchema{Properties: []Param{
			{
				Name:        "vector_weight",
				Type:        TypeNumber,
				Description: "Weight for vector search (0-1)",
				Default:     0.7,
			},
			{
				Name:        "keyword_weight",
				Type:        TypeNumber,
				Description: "Weight for keyword search (0-1)",
				Default:     0.3,
			},
		}},
	}
}

// hybridData.WeightSum is set when the weights do not add up to 1;
// ZeroSum marks the case where they cancel out entirely.
type hybridData struct {
	VectorWeight  float64
	KeywordWeight float64
	WeightSum     string
	ZeroSum       bool
}

// SetupHybridSearch renders a retriever blending pgvector similarity with
// Postgres full-text ranking.
func SetupHybridSearch(args Args) (string, error) {
	vw, err := args.Number("vector_weight")
	if err != nil {
		return "", err
	}
	kw, err := args.Number("keyword_weight")
	if err != nil {
		return "", err
	}
	data := hybridData{VectorWeight: vw, KeywordWeight: kw}
	if sum := vw + kw; math.Abs(sum-1) > 1e-9 {
		rounded := math.Round(sum*1e9) / 1e9
		data.WeightSum = FormatNumber(rounded)
		data.ZeroSum = rounded == 0
	}
	return render("hybrid_search.tmpl", data)
}
