// Copyright 2022 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package benchfmt

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/ViliamVadocz/tak-perft/benchunit"
)

type column int

const (
	colBenchmark column = iota
	colRuns
	colTotalTime
	colTimePerRun
	colP75
	colP99
	colP995
	numColumns
)

// headerNames gives the report header name of each column. Columns
// gives the canonical name.
var headerNames = [numColumns]string{
	colBenchmark:  "benchmark",
	colRuns:       "runs",
	colTotalTime:  "total time",
	colTimePerRun: "time/run (avg ± σ)",
	colP75:        "p75",
	colP99:        "p99",
	colP995:       "p995",
}

// Parse reads a whole report from r and normalizes it. fileName is
// used in the returned Report and in error messages; it is purely
// diagnostic.
//
// Errors in the report's contents are returned as a *SyntaxError.
func Parse(r io.Reader, fileName string) (*Report, error) {
	if fileName == "" {
		fileName = "<unknown>"
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", fileName, err)
	}

	header, rows, err := Tokenize(string(data))
	var rep *Report
	if err == nil {
		rep, err = Normalize(header, rows)
	}
	if err != nil {
		var se *SyntaxError
		if errors.As(err, &se) {
			se.FileName = fileName
		}
		return nil, err
	}
	rep.FileName = fileName
	return rep, nil
}

// Normalize converts tokenized report rows into a Report. Header
// fields are matched by name, so their order does not matter, and
// unknown header fields are ignored. All required header fields are
// checked before any row is looked at.
//
// The "time/run (avg ± σ)" field is cut at "±" and only the average
// is kept. Every other timing field must be a single duration token.
func Normalize(header []string, rows []Record) (*Report, error) {
	idx, err := columnIndex(header)
	if err != nil {
		return nil, err
	}

	rep := &Report{Rows: make([]Row, 0, len(rows))}
	for _, rec := range rows {
		if len(rec.Fields) != len(header) {
			return nil, fieldCountError(rec.Line, len(header), len(rec.Fields))
		}
		row, err := normalizeRow(&idx, rec)
		if err != nil {
			return nil, err
		}
		rep.Rows = append(rep.Rows, row)
	}
	return rep, nil
}

// columnIndex returns the position in header of each column.
func columnIndex(header []string) (idx [numColumns]int, err error) {
	for c := range idx {
		idx[c] = -1
	}
	for i, name := range header {
		name = strings.TrimSpace(name)
		for c, want := range headerNames {
			if name == want && idx[c] < 0 {
				idx[c] = i
			}
		}
	}

	var missing []string
	for c, i := range idx {
		if i < 0 {
			missing = append(missing, strconv.Quote(headerNames[c]))
		}
	}
	if len(missing) > 0 {
		return idx, &SyntaxError{
			Msg: fmt.Sprintf("%v: missing required column %s", ErrSchema, strings.Join(missing, ", ")),
			Err: ErrSchema,
		}
	}
	return idx, nil
}

func normalizeRow(idx *[numColumns]int, rec Record) (Row, error) {
	field := func(c column) string {
		return strings.TrimSpace(rec.Fields[idx[c]])
	}
	row := Row{Benchmark: field(colBenchmark), Line: rec.Line}

	runs, err := strconv.ParseInt(field(colRuns), 10, 0)
	if err != nil || runs < 0 {
		return row, &SyntaxError{
			Line:  rec.Line,
			Field: headerNames[colRuns],
			Msg:   fmt.Sprintf("%v %q", ErrRuns, field(colRuns)),
			Err:   ErrRuns,
		}
	}
	row.Runs = int(runs)

	durations := [...]struct {
		c   column
		dst *float64
	}{
		{colTotalTime, &row.TotalTime},
		{colTimePerRun, &row.TimePerRun},
		{colP75, &row.P75},
		{colP99, &row.P99},
		{colP995, &row.P995},
	}
	for _, d := range durations {
		s := field(d.c)
		if d.c == colTimePerRun {
			s, _, _ = strings.Cut(s, "±")
		}
		v, err := benchunit.ParseDuration(s)
		if err != nil {
			return row, &SyntaxError{
				Line:  rec.Line,
				Field: headerNames[d.c],
				Msg:   err.Error(),
				Err:   err,
			}
		}
		*d.dst = v
	}
	return row, nil
}
