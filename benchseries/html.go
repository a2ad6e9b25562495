// Copyright 2022 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package benchseries

import (
	"io"
	"math"

	"github.com/google/safehtml/template"

	"github.com/ViliamVadocz/tak-perft/benchunit"
)

const htmlText = `<table class="benchcompare">
<tr><th>benchmark{{range .Versions}}<th>{{.}}{{end}}{{range .Changes}}<th>{{.}}{{end}}
{{range .Rows -}}
<tr><td>{{.Benchmark}}{{range .Values}}<td>{{.}}{{end}}{{range .Changes -}}
{{if lt .Pct 0.0}}<td class="better">{{else if gt .Pct 0.0}}<td class="worse">{{else}}<td>{{end}}{{.Text}}
{{- end}}
{{end -}}
</table>
{{with .Note}}<p>{{.}}</p>
{{end}}`

var htmlTemplate = template.Must(template.New("table").Parse(htmlText))

type htmlTable struct {
	Versions []string
	Changes  []string
	Rows     []htmlRow
	Note     string
}

type htmlRow struct {
	Benchmark string
	Values    []string
	Changes   []htmlChange
}

type htmlChange struct {
	Pct  float64 // 0 if missing
	Text string
}

// ToHTML writes t to w as an HTML table with the same cells as
// ToText, including the geomean row and its note. Faster cells have
// class "better" and slower ones "worse".
func (t *Table) ToHTML(w io.Writer) error {
	ch := t.Changes()
	data := htmlTable{Versions: t.Versions}
	for i := 1; i < len(t.Versions); i++ {
		data.Changes = append(data.Changes, t.Versions[i]+" vs "+t.Versions[i-1])
	}
	for _, bench := range t.Benchmarks {
		data.Rows = append(data.Rows, newHTMLRow(bench, t.Row(bench), ch.Row(bench)))
	}
	if gm, changes, ok := t.geomeanRow(); ok {
		name := "geomean"
		if !t.complete() {
			name += "¹"
			data.Note = "¹ " + warnGeoMean
		}
		data.Rows = append(data.Rows, newHTMLRow(name, gm, changes))
	}
	return htmlTemplate.Execute(w, data)
}

func newHTMLRow(name string, vals, changes []float64) htmlRow {
	scaler := benchunit.CommonScale(present(vals))
	row := htmlRow{Benchmark: name}
	for _, v := range vals {
		row.Values = append(row.Values, formatCell(v, scaler.Format))
	}
	for _, c := range changes {
		hc := htmlChange{Text: formatCell(c, formatChange)}
		if !math.IsNaN(c) {
			hc.Pct = c
		}
		row.Changes = append(row.Changes, hc)
	}
	return row
}
