// Copyright 2022 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package benchseries

import (
	"fmt"
	"io"
	"math"

	"github.com/ViliamVadocz/tak-perft/benchunit"
	"github.com/ViliamVadocz/tak-perft/internal/texttab"
)

const missing = "-"

// warnGeoMean explains the geomean changes of a table whose versions
// have different benchmark sets.
const warnGeoMean = "benchmark set differs between versions; geomean changes compare only benchmarks present in both"

// ToText writes t to w as a fixed-width table. Each row shows a
// benchmark's time in every version, scaled to a unit common to the
// row, followed by the percent change for every version but the
// first. Missing cells print as "-". A geomean row ends the table if
// it has more than one benchmark, with a footnote if the versions do
// not all have the same benchmarks.
func (t *Table) ToText(w io.Writer) error {
	ch := t.Changes()
	sep := texttab.LeftMargin("  ")

	var tab texttab.Table
	tab.Row().Cell("benchmark")
	for _, v := range t.Versions {
		tab.Cell(v, sep)
	}
	for i := 1; i < len(t.Versions); i++ {
		tab.Cell(fmt.Sprintf("%s vs %s", t.Versions[i], t.Versions[i-1]), sep)
	}

	row := func(name string, vals, changes []float64) {
		tab.Row().Cell(name)
		scaler := benchunit.CommonScale(present(vals))
		for _, v := range vals {
			tab.Cell(formatCell(v, scaler.Format), sep, texttab.Right)
		}
		for _, c := range changes {
			tab.Cell(formatCell(c, formatChange), sep, texttab.Right)
		}
	}
	for _, bench := range t.Benchmarks {
		row(bench, t.Row(bench), ch.Row(bench))
	}

	var footnote string
	if gm, changes, ok := t.geomeanRow(); ok {
		name := "geomean"
		if !t.complete() {
			name += "¹"
			footnote = "¹ " + warnGeoMean + "\n"
		}
		row(name, gm, changes)
	}
	if err := tab.Format(w); err != nil {
		return err
	}
	_, err := io.WriteString(w, footnote)
	return err
}

// geomeanRow returns the geometric mean of each version and the
// geomean change between adjacent versions. It reports false if t
// has fewer than two benchmarks.
func (t *Table) geomeanRow() (gm, changes []float64, ok bool) {
	if len(t.Benchmarks) < 2 {
		return nil, nil, false
	}
	gm = make([]float64, len(t.Versions))
	for i, v := range t.Versions {
		if m, ok := t.GeoMean(v); ok {
			gm[i] = m
		} else {
			gm[i] = math.NaN()
		}
	}
	for i := 1; i < len(t.Versions); i++ {
		if c, ok := t.GeoMeanChange(t.Versions[i-1], t.Versions[i]); ok {
			changes = append(changes, c)
		} else {
			changes = append(changes, math.NaN())
		}
	}
	return gm, changes, true
}

func formatCell(v float64, format func(float64) string) string {
	if math.IsNaN(v) {
		return missing
	}
	return format(v)
}

func formatChange(pct float64) string {
	return fmt.Sprintf("%+.2f%%", pct)
}

// present returns the non-NaN values of vals.
func present(vals []float64) []float64 {
	var out []float64
	for _, v := range vals {
		if !math.IsNaN(v) {
			out = append(out, v)
		}
	}
	return out
}
