// Copyright 2022 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package benchfmt

import (
	"fmt"
	"strings"
	"unicode"
)

// A Record is one data row of a report, split into fields.
type Record struct {
	Line   int // 1-based line number in the input
	Fields []string
}

// Tokenize splits the text of a report into its header fields and
// data rows. Empty lines are ignored everywhere. The first remaining
// line is the header, the second is a separator that is discarded
// without inspection, and the rest are data rows.
//
// Every data row must have exactly as many fields as the header;
// otherwise Tokenize returns a *SyntaxError matching ErrFieldCount.
func Tokenize(text string) (header []string, rows []Record, err error) {
	n := 0 // non-empty lines seen
	for i, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		n++
		switch n {
		case 1:
			header = SplitFields(line)
		case 2:
			// Separator.
		default:
			fields := SplitFields(line)
			if len(fields) != len(header) {
				return nil, nil, fieldCountError(i+1, len(header), len(fields))
			}
			rows = append(rows, Record{i + 1, fields})
		}
	}
	if header == nil {
		return nil, nil, &SyntaxError{Msg: fmt.Sprintf("%v: missing header line", ErrSchema), Err: ErrSchema}
	}
	return header, rows, nil
}

func fieldCountError(line, want, got int) *SyntaxError {
	return &SyntaxError{
		Line: line,
		Msg:  fmt.Sprintf("%v: header has %d fields, row has %d", ErrFieldCount, want, got),
		Err:  ErrFieldCount,
	}
}

// SplitFields splits line around each run of two or more whitespace
// characters. Single whitespace characters are part of a field.
// Leading or trailing runs produce an empty first or last field.
func SplitFields(line string) []string {
	var fields []string
	start := 0      // byte offset of the current field
	spaceStart := 0 // byte offset of the current whitespace run
	nSpace := 0     // length of the current whitespace run
	for i, r := range line {
		if unicode.IsSpace(r) {
			if nSpace == 0 {
				spaceStart = i
			}
			nSpace++
			continue
		}
		if nSpace >= 2 {
			fields = append(fields, line[start:spaceStart])
			start = i
		}
		nSpace = 0
	}
	if nSpace >= 2 {
		fields = append(fields, line[start:spaceStart])
		start = len(line)
	}
	return append(fields, line[start:])
}
