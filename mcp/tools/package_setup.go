package tools

import "slices"

// packageFeatures lists the optional features in their canonical order.
var packageFeatures = []string{"supabase", "pdf", "csv", "streaming", "caching"}

// GeneratePackageSetupDefinition describes the package setup tool.
func GeneratePackageSetupDefinition() Definition {
	return Definition{
		Name:        GeneratePackageSetupName,
		Description: "Generate package.json dependencies and setup instructions for LangChain with Anthropic.",
		InputSchema: InputSchema{Properties: []Param{
			{
				Name:        "features",
				Type:        TypeArray,
				Description: "Features to include",
				Items:       &Items{Type: TypeString, Enum: packageFeatures},
			},
		}},
	}
}

type dependency struct {
	Name    string
	Version string
}

var baseDependencies = []dependency{
	{"@langchain/anthropic", "^0.3.0"},
	{"@langchain/community", "^0.3.0"},
	{"@langchain/core", "^0.3.0"},
	{"@langchain/google-genai", "^0.1.0"},
	{"@langchain/openai", "^0.3.0"},
	{"@langchain/textsplitters", "^0.1.0"},
	{"dotenv", "^16.4.5"},
	{"langchain", "^0.3.0"},
}

var featureDependencies = map[string][]dependency{
	"supabase": {{"@supabase/supabase-js", "^2.45.0"}},
	"pdf":      {{"pdf-parse", "^1.1.1"}},
	"csv":      {{"d3-dsv", "^2.0.0"}},
}

type envVar struct {
	Name    string
	Example string
}

type packageData struct {
	Features     []string
	Dependencies []dependency
	Env          []envVar
	Streaming    bool
	Caching      bool
}

// GeneratePackageSetup renders package.json dependencies, the install
// command and environment variables for the selected features.
func GeneratePackageSetup(args Args) (string, error) {
	requested, err := args.Strings("features")
	if err != nil {
		return "", err
	}
	var features []string
	for _, f := range packageFeatures {
		if slices.Contains(requested, f) {
			features = append(features, f)
		}
	}

	deps := slices.Clone(baseDependencies)
	for _, f := range features {
		deps = append(deps, featureDependencies[f]...)
	}
	slices.SortFunc(deps, func(a, b dependency) int {
		switch {
		case a.Name < b.Name:
			return -1
		case a.Name > b.Name:
			return 1
		}
		return 0
	})

	env := []envVar{
		{"ANTHROPIC_API_KEY", "sk-ant-..."},
		{"GOOGLE_API_KEY", "your-google-api-key"},
		{"OPENAI_API_KEY", "sk-..."},
	}
	if slices.Contains(features, "supabase") {
		env = append(env,
			envVar{"SUPABASE_URL", "https://your-project.supabase.co"},
			envVar{"SUPABASE_SERVICE_ROLE_KEY", "your-service-role-key"},
		)
	}

	return render("package_setup.tmpl", packageData{
		Features:     features,
		Dependencies: deps,
		Env:          env,
		Streaming:    slices.Contains(features, "streaming"),
		Caching:      slices.Contains(features, "caching"),
	})
}
