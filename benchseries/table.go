// Copyright 2022 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package benchseries aligns benchmark reports from a series of
// program versions into one table and renders comparisons of it.
//
// A Table has one row per benchmark and one column per version. Load
// builds a Table from a directory of report files; TimesPlot and
// ChangesPlot chart it, and ToText, ToCSV and ToHTML print it.
package benchseries

import (
	"math"

	"github.com/aclements/go-moremath/stats"
)

// A Table holds one duration, in seconds, per benchmark and version.
// A cell may be missing, which is distinct from a zero duration.
type Table struct {
	// Versions are the column labels, in series order.
	Versions []string
	// Benchmarks are the row labels, in order of first appearance.
	Benchmarks []string

	// cells maps benchmark, then version, to value.
	cells map[string]map[string]float64
}

// NewTable returns an empty table with the given version columns.
func NewTable(versions ...string) *Table {
	t := &Table{cells: make(map[string]map[string]float64)}
	for _, v := range versions {
		t.AddVersion(v)
	}
	return t
}

// AddVersion appends version as the last column of t, if t does not
// already have that column.
func (t *Table) AddVersion(version string) {
	for _, v := range t.Versions {
		if v == version {
			return
		}
	}
	t.Versions = append(t.Versions, version)
}

func (t *Table) addBenchmark(bench string) map[string]float64 {
	if t.cells == nil {
		t.cells = make(map[string]map[string]float64)
	}
	row, ok := t.cells[bench]
	if !ok {
		row = make(map[string]float64)
		t.cells[bench] = row
		t.Benchmarks = append(t.Benchmarks, bench)
	}
	return row
}

// Set sets the cell for bench and version to v, adding the row and
// column if necessary.
func (t *Table) Set(bench, version string, v float64) {
	t.AddVersion(version)
	t.addBenchmark(bench)[version] = v
}

// Get returns the cell for bench and version, and whether it is
// present.
func (t *Table) Get(bench, version string) (float64, bool) {
	v, ok := t.cells[bench][version]
	return v, ok
}

// Row returns the cells of bench in version order. Missing cells are
// NaN.
func (t *Table) Row(bench string) []float64 {
	row := make([]float64, len(t.Versions))
	for i, version := range t.Versions {
		if v, ok := t.Get(bench, version); ok {
			row[i] = v
		} else {
			row[i] = math.NaN()
		}
	}
	return row
}

// Changes returns a new table of the percent change of each cell
// relative to the cell of the preceding version:
//
//	(cur - prev) / prev * 100
//
// The result has one column for each version but the first. Its
// benchmarks are the same as t's. A change is missing if either cell
// is missing or the preceding value is zero.
func (t *Table) Changes() *Table {
	ch := &Table{cells: make(map[string]map[string]float64)}
	if len(t.Versions) > 1 {
		ch.Versions = append([]string(nil), t.Versions[1:]...)
	}
	for _, bench := range t.Benchmarks {
		row := ch.addBenchmark(bench)
		for i := 1; i < len(t.Versions); i++ {
			prev, ok1 := t.Get(bench, t.Versions[i-1])
			cur, ok2 := t.Get(bench, t.Versions[i])
			if !ok1 || !ok2 || prev == 0 {
				continue
			}
			row[t.Versions[i]] = (cur - prev) / prev * 100
		}
	}
	return ch
}

// GeoMean returns the geometric mean of the positive cells in the
// column for version. It reports false if there are none.
func (t *Table) GeoMean(version string) (float64, bool) {
	var xs []float64
	for _, bench := range t.Benchmarks {
		if v, ok := t.Get(bench, version); ok && v > 0 {
			xs = append(xs, v)
		}
	}
	if len(xs) == 0 {
		return 0, false
	}
	return stats.GeoMean(xs), true
}

// GeoMeanChange returns the percent change from version prev to
// version cur of the geometric mean, taken only over benchmarks with
// positive cells in both versions. It reports false if there are
// none.
func (t *Table) GeoMeanChange(prev, cur string) (float64, bool) {
	var ratios []float64
	for _, bench := range t.Benchmarks {
		a, ok1 := t.Get(bench, prev)
		b, ok2 := t.Get(bench, cur)
		if ok1 && ok2 && a > 0 && b > 0 {
			ratios = append(ratios, b/a)
		}
	}
	if len(ratios) == 0 {
		return 0, false
	}
	return (stats.GeoMean(ratios) - 1) * 100, true
}

// complete reports whether every benchmark has a cell in every
// version.
func (t *Table) complete() bool {
	for _, bench := range t.Benchmarks {
		if t.present(bench) != len(t.Versions) {
			return false
		}
	}
	return true
}

// present reports the number of cells present in the row for bench.
func (t *Table) present(bench string) int {
	return len(t.cells[bench])
}
