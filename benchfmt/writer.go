// Copyright 2022 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package benchfmt

import (
	"bytes"
	"fmt"
	"io"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/ViliamVadocz/tak-perft/benchunit"
	"github.com/ViliamVadocz/tak-perft/internal/texttab"
)

// A Writer writes reports in the layout read by Parse.
type Writer struct {
	w io.Writer
}

// NewWriter returns a writer that writes reports to w.
func NewWriter(w io.Writer) *Writer {
	return &Writer{w: w}
}

// Write writes rep as a complete report: a header, a separator line
// and one line per row. Durations are formatted with benchunit.Scale,
// so they read back with about four significant digits. The
// time/run field carries only the average.
func (w *Writer) Write(rep *Report) error {
	sep := texttab.LeftMargin("  ")
	var tab texttab.Table
	tab.Row()
	for c, name := range headerNames {
		if c == 0 {
			tab.Cell(name)
		} else {
			tab.Cell(name, sep)
		}
	}
	for _, row := range rep.Rows {
		if f := SplitFields(row.Benchmark); len(f) != 1 || strings.TrimSpace(row.Benchmark) == "" {
			return fmt.Errorf("benchmark name %q cannot be written as a single field", row.Benchmark)
		}
		tab.Row().Cell(row.Benchmark).Cell(strconv.Itoa(row.Runs), sep, texttab.Right)
		for _, v := range []float64{row.TotalTime, row.TimePerRun, row.P75, row.P99, row.P995} {
			tab.Cell(benchunit.Scale(v), sep, texttab.Right)
		}
	}

	var buf bytes.Buffer
	if err := tab.Format(&buf); err != nil {
		return err
	}
	header, body, _ := bytes.Cut(buf.Bytes(), []byte("\n"))

	var out bytes.Buffer
	out.Write(header)
	out.WriteByte('\n')
	out.WriteString(strings.Repeat("-", utf8.RuneCount(header)))
	out.WriteByte('\n')
	out.Write(body)
	_, err := w.w.Write(out.Bytes())
	return err
}
