// Copyright 2022 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package benchfmt

import (
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/ViliamVadocz/tak-perft/benchunit"
)

var stdHeader = []string{"benchmark", "runs", "total time", "time/run (avg ± σ)", "p75", "p99", "p995"}

var approx = cmpopts.EquateApprox(1e-12, 0)

func TestNormalize(t *testing.T) {
	rows := []Record{{3, []string{"bench_a", "10", "1.0s", "100.0ms ± 1.0ms", "90ms", "99ms", "99.5ms"}}}
	rep, err := Normalize(stdHeader, rows)
	if err != nil {
		t.Fatal(err)
	}
	want := []Row{{
		Benchmark:  "bench_a",
		Runs:       10,
		TotalTime:  1.0,
		TimePerRun: 0.1,
		P75:        0.09,
		P99:        0.099,
		P995:       0.0995,
		Line:       3,
	}}
	if diff := cmp.Diff(want, rep.Rows, approx); diff != "" {
		t.Errorf("rows differ (-want +got):\n%s", diff)
	}
}

func TestNormalizeHeaderOrder(t *testing.T) {
	// Header fields match by name, and unknown fields are ignored.
	header := []string{"p995", "(min … max)", "time/run (avg ± σ)", "benchmark", "p99", "runs", "p75", "total time"}
	rows := []Record{{1, []string{"1us", "(1us … 2us)", "4.488s ± 0.5s", "  perft 5 ", "1m35.334s", "7", "35ns", "2.0"}}}
	rep, err := Normalize(header, rows)
	if err != nil {
		t.Fatal(err)
	}
	want := Row{
		Benchmark:  "perft 5",
		Runs:       7,
		TotalTime:  2.0,
		TimePerRun: 4.488,
		P75:        3.5e-8,
		P99:        95.334,
		P995:       1e-6,
		Line:       1,
	}
	if diff := cmp.Diff(want, rep.Rows[0], approx); diff != "" {
		t.Errorf("row differs (-want +got):\n%s", diff)
	}
}

func TestNormalizeSpreadIgnored(t *testing.T) {
	// The spread after "±" is never parsed, so garbage there is
	// not an error.
	rows := []Record{{1, []string{"a", "1", "1s", "2ms ± ???", "1s", "1s", "1s"}}}
	rep, err := Normalize(stdHeader, rows)
	if err != nil {
		t.Fatal(err)
	}
	if got := rep.Rows[0].TimePerRun; math.Abs(got-0.002) > 1e-15 {
		t.Errorf("want time/run 0.002, got %v", got)
	}
}

func TestNormalizeSchema(t *testing.T) {
	header := []string{"benchmark", "runs", "total time", "p75"}
	rows := []Record{{1, []string{"a", "bad", "bad", "bad"}}}
	_, err := Normalize(header, rows)
	if !errors.Is(err, ErrSchema) {
		t.Fatalf("want ErrSchema, got %v", err)
	}
	// Every missing field is named, and no row was looked at.
	for _, name := range []string{`"time/run (avg ± σ)"`, `"p99"`, `"p995"`} {
		if !strings.Contains(err.Error(), name) {
			t.Errorf("error %q does not name %s", err, name)
		}
	}
	if errors.Is(err, ErrRuns) || errors.Is(err, benchunit.ErrMalformedDuration) {
		t.Errorf("rows were parsed before the header was validated: %v", err)
	}
}

func TestNormalizeErrors(t *testing.T) {
	test := func(fields []string, kind error, field string) {
		t.Helper()
		_, err := Normalize(stdHeader, []Record{{9, fields}})
		if !errors.Is(err, kind) {
			t.Errorf("for %q, want %v, got %v", fields, kind, err)
			return
		}
		var se *SyntaxError
		if !errors.As(err, &se) {
			t.Errorf("for %q, want *SyntaxError, got %T", fields, err)
			return
		}
		if se.Line != 9 || se.Field != field {
			t.Errorf("for %q, want line 9 field %q, got line %d field %q", fields, field, se.Line, se.Field)
		}
	}

	test([]string{"a", "ten", "1s", "1s", "1s", "1s", "1s"}, ErrRuns, "runs")
	test([]string{"a", "-1", "1s", "1s", "1s", "1s", "1s"}, ErrRuns, "runs")
	test([]string{"a", "1.5", "1s", "1s", "1s", "1s", "1s"}, ErrRuns, "runs")
	test([]string{"a", "1", "5xy", "1s", "1s", "1s", "1s"}, benchunit.ErrMalformedDuration, "total time")
	test([]string{"a", "1", "1s", "± 1s", "1s", "1s", "1s"}, benchunit.ErrMalformedDuration, "time/run (avg ± σ)")
	test([]string{"a", "1", "1s", "1s", "abc", "1s", "1s"}, benchunit.ErrMalformedDuration, "p75")
	test([]string{"a", "1", "1s", "1s", "1s", "m5s", "1s"}, benchunit.ErrMalformedDuration, "p99")
	test([]string{"a", "1", "1s", "1s", "1s", "1s", ""}, benchunit.ErrMalformedDuration, "p995")
	test([]string{"a", "1", "1s"}, ErrFieldCount, "")
}

func TestParse(t *testing.T) {
	const text = `benchmark  runs  total time  time/run (avg ± σ)  p75  p99  p995
--------------------------------------------------------------
x          3     3.000s      1.000s ± 0.1s       1s   1s   1s
`
	rep, err := Parse(strings.NewReader(text), "v1.bench")
	if err != nil {
		t.Fatal(err)
	}
	if rep.FileName != "v1.bench" {
		t.Errorf("want file name v1.bench, got %q", rep.FileName)
	}
	if len(rep.Rows) != 1 || rep.Rows[0].Benchmark != "x" || rep.Rows[0].TimePerRun != 1 {
		t.Errorf("unexpected rows %+v", rep.Rows)
	}
}

func TestParseLayoutExample(t *testing.T) {
	// The layout shown in the package documentation.
	const text = `
	benchmark  runs  total time  time/run (avg ± σ)  (min … max)        p75     p99     p995
	-----------------------------------------------------------------------------------------
	perft 5    100   4.488s      44.88ms ± 1.211ms   (42.9ms … 49.1ms)  45.5ms  49.1ms  49.1ms
`
	rep, err := Parse(strings.NewReader(text), "doc.bench")
	if err != nil {
		t.Fatal(err)
	}
	want := []Row{{
		Benchmark:  "perft 5",
		Runs:       100,
		TotalTime:  4.488,
		TimePerRun: 0.04488,
		P75:        0.0455,
		P99:        0.0491,
		P995:       0.0491,
		Line:       4,
	}}
	if diff := cmp.Diff(want, rep.Rows, approx); diff != "" {
		t.Errorf("rows differ (-want +got):\n%s", diff)
	}
}

func TestParseErrorPosition(t *testing.T) {
	const text = "benchmark  runs  total time  time/run (avg ± σ)  p75  p99  p995\n" +
		"---\n" +
		"x  3  3s  1s ± 0s  1s  5xy  1s\n"
	_, err := Parse(strings.NewReader(text), "bad.bench")
	if err == nil {
		t.Fatal("want error, got success")
	}
	const want = `bad.bench:3: field "p99": malformed duration "5xy": unknown unit "xy"`
	if err.Error() != want {
		t.Errorf("want %q, got %q", want, err.Error())
	}
	var se *SyntaxError
	if !errors.As(err, &se) {
		t.Fatalf("want *SyntaxError, got %T", err)
	}
	if file, line := se.Pos(); file != "bad.bench" || line != 3 {
		t.Errorf("want bad.bench:3, got %s:%d", file, line)
	}

	_, err = Parse(strings.NewReader(""), "empty.bench")
	if !errors.Is(err, ErrSchema) || !strings.HasPrefix(err.Error(), "empty.bench: ") {
		t.Errorf("want ErrSchema naming empty.bench, got %v", err)
	}
}

type errReader struct{}

func (errReader) Read([]byte) (int, error) { return 0, errors.New("disk on fire") }

func TestParseReadError(t *testing.T) {
	_, err := Parse(errReader{}, "x.bench")
	if err == nil || err.Error() != "x.bench: disk on fire" {
		t.Errorf("want read error naming file, got %v", err)
	}
}

func TestColumns(t *testing.T) {
	if len(Columns) != int(numColumns) {
		t.Errorf("Columns has %d names, want %d", len(Columns), numColumns)
	}
}
