package tools

import (
	"bytes"
	"embed"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
	"text/template"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

var templates = template.Must(
	template.New("tools").Funcs(template.FuncMap{
		"quote":   tsString,
		"comment": commentText,
		"num":     FormatNumber,
	}).ParseFS(templateFS, "templates/*.tmpl"),
)

// render executes the named template with data.
func render(name string, data any) (string, error) {
	var buf bytes.Buffer
	if err := templates.ExecuteTemplate(&buf, name, data); err != nil {
		return "", fmt.Errorf("render %s: %w", name, err)
	}
	return buf.String(), nil
}

// tsString renders s as a double-quoted TypeScript string literal.
func tsString(s string) string {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	_ = enc.Encode(s)
	return strings.TrimSuffix(buf.String(), "\n")
}

var nonIdent = regexp.MustCompile(`[^A-Za-z0-9_]`)

// sqlIdent reduces s to a safe unquoted SQL identifier.
func sqlIdent(s string) string {
	id := strings.ToLower(nonIdent.ReplaceAllString(s, "_"))
	if id == "" {
		return "_"
	}
	if id[0] >= '0' && id[0] <= '9' {
		id = "_" + id
	}
	return id
}

// commentText flattens s to a single line safe inside // and /* */ comments.
func commentText(s string) string {
	s = strings.NewReplacer("\r", " ", "\n", " ", "*/", "* /").Replace(s)
	return strings.TrimSpace(s)
}
