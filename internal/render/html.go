package render

import (
	"bytes"
	"fmt"
	"html/template"
	"os"
)

const fragmentTemplate = `<div id="report-title-display" class="report-main-title">{{ .Title }} (generated by {{ .ModelID }})</div>
{{- with .Summary }}
<div id="report-summary" class="report-content">
  <h3>Key Summary</h3>
  {{- if .IntroParagraph }}
  <div class="intro-paragraph-container">{{ lines .IntroParagraph }}</div>
  {{- end }}
  {{- range $i, $item := .Items }}
  <h3><strong>{{ numbered $i $item.Subtitle }}</strong></h3>
  {{- if $item.Details }}
  <ul>
    {{- range $item.Details }}
    <li>{{ lines . }}</li>
    {{- end }}
  </ul>
  {{- end }}
  {{- end }}
  {{- with .BilingualAppend }}
  <div class="bilingual-append">
  <h3>{{ .Title }}</h3>
  {{- if .IntroParagraph }}
  <div class="intro-paragraph-container">{{ lines .IntroParagraph }}</div>
  {{- end }}
  {{- range $i, $item := .Items }}
  <h4><strong>{{ numbered $i $item.Subtitle }}</strong></h4>
  {{- if $item.Details }}
  <ul>
    {{- range $item.Details }}
    <li>{{ lines . }}</li>
    {{- end }}
  </ul>
  {{- end }}
  {{- end }}
  </div>
  {{- end }}
</div>
{{- end }}
{{- with .Transcript }}
<div id="report-transcript" class="report-content">
  <h3>Transcript</h3>
  {{- if .BilingualPrepend }}
  <p>{{ .BilingualPrepend }}</p>
  {{- end }}
  {{- range .Paragraphs }}
  {{- if .IsSpeakerLine }}
  <p><strong>{{ .Speaker }}:</strong> {{ lines .Content }}</p>
  {{- else }}
  <p>{{ lines .Content }}</p>
  {{- end }}
  {{- if .InsertBreakAfter }}
  <hr class="transcript-divider">
  {{- end }}
  {{- end }}
</div>
{{- end }}
`

const documentTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="UTF-8">
<meta name="viewport" content="width=device-width, initial-scale=1.0">
<title>{{ .Title }}</title>
<link rel="stylesheet" href="/static/style.css">
</head>
<body>
<div class="container content-wrapper">
<section class="card">
{{ .Body }}
</section>
</div>
</body>
</html>
`

var (
	fragmentTmpl = template.Must(template.New("fragment").Funcs(template.FuncMap{
		"numbered": numbered,
		"lines":    breakLines,
	}).Parse(fragmentTemplate))
	documentTmpl = template.Must(template.New("document").Parse(documentTemplate))
)

// breakLines escapes s and turns newlines into <br>.
func breakLines(s string) template.HTML {
	var buf bytes.Buffer
	for i, line := range splitLines(s) {
		if i > 0 {
			buf.WriteString("<br>")
		}
		template.HTMLEscape(&buf, []byte(line))
	}
	return template.HTML(buf.String())
}

// HTMLRenderer is the primary format. Its fragment doubles as the job's
// result preview.
type HTMLRenderer struct{}

func (HTMLRenderer) Format() string { return "html" }

// Fragment renders the report body without the page shell.
func (HTMLRenderer) Fragment(r *Report) (string, error) {
	var buf bytes.Buffer
	if err := fragmentTmpl.Execute(&buf, r); err != nil {
		return "", fmt.Errorf("render html fragment: %w", err)
	}
	return buf.String(), nil
}

func (h HTMLRenderer) Render(r *Report, path string) error {
	body, err := h.Fragment(r)
	if err != nil {
		return err
	}
	return h.writeDocument(r.Title, body, path)
}

func (HTMLRenderer) writeDocument(title, body, path string) error {
	var buf bytes.Buffer
	err := documentTmpl.Execute(&buf, struct {
		Title string
		Body  template.HTML
	}{Title: title, Body: template.HTML(body)})
	if err != nil {
		return fmt.Errorf("render html document: %w", err)
	}
	return os.WriteFile(path, buf.Bytes(), 0644)
}
