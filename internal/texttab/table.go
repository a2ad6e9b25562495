// Copyright 2020 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package texttab lays out text tables for fixed-width fonts.
package texttab

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"
)

// Table does layout of text-based tables.
//
// Many of its methods return the Table so callers can easily chain
// them to build up many cells at once.
type Table struct {
	rows   [][]cell // rows[r][c]; a missing cell has !set
	curCol int
}

type cell struct {
	set        bool
	value      string
	leftMargin string
	right      bool
}

// A CellOption modifies a single cell.
type CellOption func(c *cell)

// LeftMargin sets the text printed before a cell. By default, every
// non-empty cell except those in the first column has a margin of one
// space. The margin of a column is as wide as the widest margin in
// that column.
func LeftMargin(x string) CellOption {
	return func(c *cell) {
		c.leftMargin = x
	}
}

// Right right-aligns a cell in its column. Cells are left-aligned
// by default.
var Right CellOption = func(c *cell) { c.right = true }

// Row starts a new row in table t.
func (t *Table) Row() *Table {
	t.rows = append(t.rows, nil)
	t.curCol = 0
	return t
}

// Cell adds a cell at the current row and column and advances to the
// next column.
func (t *Table) Cell(value string, opts ...CellOption) *Table {
	if len(t.rows) == 0 {
		t.Row()
	}
	r := &t.rows[len(t.rows)-1]
	for len(*r) <= t.curCol {
		*r = append(*r, cell{})
	}
	c := cell{set: true, value: value}
	if t.curCol > 0 && value != "" {
		c.leftMargin = " "
	}
	for _, o := range opts {
		o(&c)
	}
	(*r)[t.curCol] = c
	t.curCol++
	return t
}

// Format lays out table t and writes it to w. Cells that are empty
// and have a blank margin are not printed, so rows carry no trailing
// spaces.
func (t *Table) Format(w io.Writer) error {
	ncols := 0
	for _, r := range t.rows {
		if len(r) > ncols {
			ncols = len(r)
		}
	}

	// Margin and total width of each column.
	margins := make([]int, ncols)
	widths := make([]int, ncols)
	for _, r := range t.rows {
		for col, c := range r {
			if n := utf8.RuneCountInString(c.leftMargin); n > margins[col] {
				margins[col] = n
			}
		}
	}
	for _, r := range t.rows {
		for col, c := range r {
			if n := utf8.RuneCountInString(c.value) + margins[col]; n > widths[col] {
				widths[col] = n
			}
		}
	}

	var line strings.Builder
	for _, r := range t.rows {
		line.Reset()
		off, pos := 0, 0 // column start and printed width
		for col, c := range r {
			start := off
			off += widths[col]
			if !c.set || strings.TrimSpace(c.value) == "" && strings.TrimSpace(c.leftMargin) == "" {
				continue
			}
			fmt.Fprintf(&line, "%*s%*s", start-pos, "", margins[col], c.leftMargin)
			value := c.value
			if c.right {
				value = fmt.Sprintf("%*s", widths[col]-margins[col], value)
			}
			line.WriteString(value)
			pos = start + margins[col] + utf8.RuneCountInString(value)
		}
		line.WriteByte('\n')
		if _, err := io.WriteString(w, line.String()); err != nil {
			return err
		}
	}
	return nil
}
