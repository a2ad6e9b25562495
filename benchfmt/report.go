// Copyright 2022 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package benchfmt reads and writes benchmark report files.
//
// A report is a whitespace-aligned text table produced by a benchmark
// harness for one version of a program:
//
//	benchmark  runs  total time  time/run (avg ± σ)  (min … max)        p75     p99     p995
//	-----------------------------------------------------------------------------------------
//	perft 5    100   4.488s      44.88ms ± 1.211ms   (42.9ms … 49.1ms)  45.5ms  49.1ms  49.1ms
//
// Fields are separated by runs of two or more whitespace characters.
// The first non-empty line is the header, the second is a decorative
// separator, and every following non-empty line is one benchmark.
//
// Tokenize splits report text into header and rows, Normalize maps
// those into a Report with durations in seconds, and Parse does both.
package benchfmt

import (
	"errors"
	"fmt"
)

// A Report is the normalized contents of one report file.
type Report struct {
	// FileName is the name the report was read from. It is purely
	// diagnostic.
	FileName string

	// Rows are the benchmarks of this report, in file order.
	// Benchmark names are expected, but not required, to be unique.
	Rows []Row
}

// A Row is one benchmark's statistics from a report. All durations
// are in seconds.
type Row struct {
	Benchmark  string
	Runs       int
	TotalTime  float64
	TimePerRun float64 // Average; the reported spread is not kept.
	P75        float64
	P99        float64
	P995       float64

	// Line is the 1-based line number of this row in its report.
	Line int
}

// Columns lists the canonical names of a normalized row's fields, in
// presentation order.
var Columns = []string{"benchmark", "runs", "total_time_s", "time_per_run_s", "p75_s", "p99_s", "p995_s"}

// Error kinds. A *SyntaxError matches one of these (or
// benchunit.ErrMalformedDuration) using errors.Is.
var (
	// ErrFieldCount means a data row does not have as many fields
	// as the header.
	ErrFieldCount = errors.New("field count mismatch")
	// ErrSchema means the header is missing or lacks a required
	// column.
	ErrSchema = errors.New("schema error")
	// ErrRuns means a run count is not a non-negative integer.
	ErrRuns = errors.New("invalid run count")
)

// A SyntaxError represents an error on a particular line of a report
// file. All errors are fatal for the file they occur in.
type SyntaxError struct {
	FileName string
	Line     int    // 1-based; 0 if the error is not tied to a line
	Field    string // Header name of the offending field, if any
	Msg      string
	Err      error // Error kind or underlying error
}

// Pos returns the position of the error as a file name and a 1-based
// line number within that file.
func (e *SyntaxError) Pos() (fileName string, line int) {
	return e.FileName, e.Line
}

func (e *SyntaxError) Error() string {
	fileName := e.FileName
	if fileName == "" {
		fileName = "<unknown>"
	}
	pos := fileName
	if e.Line > 0 {
		pos = fmt.Sprintf("%s:%d", fileName, e.Line)
	}
	if e.Field != "" {
		return fmt.Sprintf("%s: field %q: %s", pos, e.Field, e.Msg)
	}
	return fmt.Sprintf("%s: %s", pos, e.Msg)
}

func (e *SyntaxError) Unwrap() error {
	return e.Err
}
