// Copyright 2022 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package benchfmt

import (
	"bytes"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

func TestWriterRoundTrip(t *testing.T) {
	in := &Report{Rows: []Row{
		{Benchmark: "perft 5", Runs: 100, TotalTime: 4.488, TimePerRun: 0.04488, P75: 0.0455, P99: 0.0491, P995: 0.0491},
		{Benchmark: "perft 2", Runs: 7, TotalTime: 95.334, TimePerRun: 3.5e-8, P75: 1e-6, P99: 2.5e-3, P995: 0},
	}}
	var buf bytes.Buffer
	if err := NewWriter(&buf).Write(in); err != nil {
		t.Fatal(err)
	}
	out, err := Parse(&buf, "rt.bench")
	if err != nil {
		t.Fatalf("parsing written report: %v\n%s", err, buf.String())
	}
	// Durations are written with about four significant digits.
	opts := []cmp.Option{
		cmpopts.EquateApprox(1e-3, 0),
		cmpopts.IgnoreFields(Row{}, "Line"),
	}
	if diff := cmp.Diff(in.Rows, out.Rows, opts...); diff != "" {
		t.Errorf("rows differ (-want +got):\n%s", diff)
	}
}

func TestWriterLayout(t *testing.T) {
	var buf bytes.Buffer
	err := NewWriter(&buf).Write(&Report{Rows: []Row{{Benchmark: "a", Runs: 1, TotalTime: 1, TimePerRun: 1, P75: 1, P99: 1, P995: 1}}})
	if err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
	if len(lines) != 3 {
		t.Fatalf("want 3 lines, got %d:\n%s", len(lines), buf.String())
	}
	if got := SplitFields(lines[0]); len(got) != int(numColumns) {
		t.Errorf("want %d header fields, got %q", numColumns, got)
	}
	if strings.Trim(lines[1], "-") != "" {
		t.Errorf("want dashed separator, got %q", lines[1])
	}
}

func TestWriterBadName(t *testing.T) {
	for _, name := range []string{"", "  ", "a  b", "a\t\tb"} {
		var buf bytes.Buffer
		err := NewWriter(&buf).Write(&Report{Rows: []Row{{Benchmark: name}}})
		if err == nil {
			t.Errorf("for name %q, want error, got success", name)
		}
	}
}
