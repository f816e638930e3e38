package report

import (
	"text/template"

	"github.com/Masterminds/sprig/v3"
)

const documentTemplate = `
{{- define "document" -}}
= {{ .Title }}
:doctype: book
:toc:
:sectnums:
{{- range .Includes }}

include::{{ . }}[]
{{- end }}

== Test results
{{- range .Tables }}
{{ template "table" . }}
{{- end }}
{{- if .Matrices }}

== Compliance matrix
{{- range .Matrices }}
{{ template "matrix" . }}
{{- end }}
{{- end }}
{{ end -}}

{{- define "table" }}
=== {{ .Title }}

[cols="{{ .ColumnSpec }}",options="header,footer"]
|===
|{{ join " |" .Columns }}
{{- $showID := .ShowID }}
{{- range .Rows }}
{{ if $showID }}|{{ plain }}{{ if .Anchor }}[[{{ .Anchor }}]]{{ end }}{{ cell .ID }} {{ end }}|{{ plain }}{{ cell .Name }} |{{ verdict .Verdict }}
{{- end }}
{{ len .Columns }}+|{{ plain }}Tests: {{ .Tests }}, failures: {{ .Failures }}, skipped: {{ .Skipped }}
|===
{{- end }}

{{- define "matrix" }}
=== {{ .Title }}

[cols="3,2,1",options="header"]
|===
|Requirement |Test |Result
{{- range .Rows }}
{{ if gt .Span 0 }}.{{ .Span }}+|{{ plain }}{{ cell .Requirement }} {{ end }}|{{ plain }}{{ if .Anchor }}<<{{ .Anchor }},{{ cell .TestID }}>>{{ else }}{{ cell .TestID }}{{ end }} |{{ verdict .Verdict }}
{{- end }}
|===
{{- end }}
`

func newFuncMap() template.FuncMap {
	fm := sprig.TxtFuncMap()

	extra := map[string]any{
		"cell": EscapeCell,
		// Resets the cell background set by a previous result cell
		"plain": func() string {
			return "{set:cellbgcolor!}"
		},
		"verdict": func(v Verdict) string {
			return "{set:cellbgcolor:" + v.HexColor() + "}" + v.Label()
		},
	}

	for name, fn := range extra {
		fm[name] = fn
	}

	return fm
}

var templates = template.Must(template.New("report").Funcs(newFuncMap()).Parse(documentTemplate))
