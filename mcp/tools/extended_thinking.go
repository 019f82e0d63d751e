package tools

// responseTokenHeadroom is added to the thinking budget to size max_tokens,
// which must exceed budget_tokens.
const responseTokenHeadroom = 4096

// SetupExtendedThinkingDefinition describes the extended thinking tool.
func SetupExtendedThinkingDefinition() Definition {
	return Definition{
		Name:        SetupExtendedThinkingName,
		Description: "Generate code for extended thinking mode with Claude for complex reasoning tasks.",
		InputSchema: InputSchema{Properties: []Param{
			{
				Name:        "thinking_budget",
				Type:        TypeNumber,
				Description: "Token budget for thinking",
				Default:     float64(8000),
			},
			{
				Name:        "complexity_threshold",
				Type:        TypeNumber,
				Description: "Complexity score threshold to enable thinking (0-100)",
				Default:     float64(60),
			},
		}},
	}
}

type thinkingData struct {
	ThinkingBudget      float64
	MaxTokens           float64
	ComplexityThreshold float64
	ClaudeModel         string
}

// SetupExtendedThinking renders a router that enables Claude's extended
// thinking for queries scoring above the complexity threshold.
func SetupExtendedThinking(args Args) (string, error) {
	budget, err := args.Number("thinking_budget")
	if err != nil {
		return "", err
	}
	threshold, err := args.Number("complexity_threshold")
	if err != nil {
		return "", err
	}
	return render("extended_thinking.tmpl", thinkingData{
		ThinkingBudget:      budget,
		MaxTokens:           budget + responseTokenHeadroom,
		ComplexityThreshold: threshold,
		ClaudeModel:         defaultClaudeModel,
	})
}
