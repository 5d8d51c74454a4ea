// Package rendering produces the downloadable roadmap PDF. The roadmap is
// laid out as an HTML document and printed through headless Chrome.
package rendering

import (
	"bytes"
	"fmt"
	"html/template"

	"github.com/pathify/pathify-backend/internal/types"
)

// MaxSummaryLength caps the summary text rendered into the document.
const MaxSummaryLength = 600

var roadmapTemplate = template.Must(template.New("roadmap").Parse(`<!DOCTYPE html>
<html lang="{{.Language}}">
<head>
<meta charset="utf-8">
<title>{{.Career}} Roadmap</title>
<style>
  body { font-family: Helvetica, Arial, sans-serif; margin: 2cm; color: #000; }
  h1 { color: #244aff; font-size: 18pt; }
  h2 { color: #428f70; font-size: 13pt; margin-bottom: 0.2cm; }
  p.summary { font-size: 11pt; }
  ul { margin-top: 0; }
  li { font-size: 11pt; margin-bottom: 0.15cm; }
</style>
</head>
<body>
<h1>Pathify AI — {{.Career}} Roadmap ({{.LanguageName}})</h1>
<p class="summary">{{.Summary}}</p>
{{range .Stages}}
<h2>{{.Label}}</h2>
<ul>
{{range .Items}}  <li>{{.}}</li>
{{end}}</ul>
{{end}}
</body>
</html>
`))

type roadmapPage struct {
	Career       string
	Language     string
	LanguageName string
	Summary      string
	Stages       types.StageList
}

// RenderHTML builds the printable HTML document for a roadmap. Stages render
// in insertion order; the summary is truncated to MaxSummaryLength.
func RenderHTML(rm *types.Roadmap, language string) (string, error) {
	languageName := "English"
	if language == "hi" {
		languageName = "Hindi"
	}
	if language == "" {
		language = "en"
	}

	page := roadmapPage{
		Career:       rm.Career,
		Language:     language,
		LanguageName: languageName,
		Summary:      truncate(rm.Summary, MaxSummaryLength),
		Stages:       rm.Stages,
	}

	var buf bytes.Buffer
	if err := roadmapTemplate.Execute(&buf, page); err != nil {
		return "", fmt.Errorf("failed to render roadmap document: %w", err)
	}
	return buf.String(), nil
}

// truncate cuts a string to at most n characters without splitting runes.
func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
