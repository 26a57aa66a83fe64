package render

import (
	"html/template"
	"io"
	"strings"
)

const tableTemplate = `{{define "imsakiye-table"}}<div class="imsakiye-header">
<h2 id="location-title" contenteditable="true">{{.Title}}</h2>
</div>
<table class="imsakiye-table">
<thead><tr>{{range .Headers}}<th>{{.}}</th>{{end}}</tr></thead>
<tbody id="imsakiye-tbody">
{{- range .Rows}}
{{- if .Commemorative}}
<tr class="kadir-gecesi-row"><td colspan="8" class="kadir-gecesi-cell">` + CommemorativeText + `</td></tr>
{{- else}}
{{- $row := .Index}}
<tr data-row="{{$row}}">{{range $col, $c := .Cells}}<td{{if $c.Class}} class="{{$c.Class}}"{{end}} contenteditable="true" data-row="{{$row}}" data-col="{{$col}}">
{{- if $c.Edited}}{{$c.Edited}}{{else if $c.Bold}}<strong>{{$c.Text}}</strong>{{else}}{{$c.Text}}{{end -}}
</td>{{end}}</tr>
{{- end}}
{{- end}}
</tbody>
</table>
<div id="bayram-namazi-info">
<p id="bayram-tarih">{{.Festival.Date}}</p>
{{- if .Festival.PrayerVisible}}
<p class="bayram-namazi-text">Bayram Namazı: <span id="bayram-namazi-vakti">{{.Festival.PrayerTime}}</span></p>
{{- end}}
</div>{{end}}`

var tableTmpl = template.Must(template.New("table").Parse(tableTemplate))

// WriteHTML renders the table fragment. All data text is escaped; only
// sanitized edits are emitted as markup.
func WriteHTML(w io.Writer, t Table) error {
	return tableTmpl.ExecuteTemplate(w, "imsakiye-table", t)
}

// HTML renders the table fragment into a string.
func HTML(t Table) (template.HTML, error) {
	var b strings.Builder
	if err := WriteHTML(&b, t); err != nil {
		return "", err
	}
	return template.HTML(b.String()), nil
}
