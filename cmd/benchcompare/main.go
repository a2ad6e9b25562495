// Copyright 2022 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Benchcompare compares benchmark reports across a series of program
// versions.
//
// Usage:
//
//	benchcompare [flags] [dir]
//
// Benchcompare reads every report file under dir (default
// "./benches/"), in lexical path order, as one version each. Every
// version is labeled with its file's base name minus the extension,
// so reports are typically named after the commit they measure:
//
//	benches/001-initial.bench
//	benches/002-move-gen.bench
//	benches/003-bitboards.bench
//
// A report is the plain-text table printed by the benchmark harness:
//
//	benchmark  runs  total time  time/run (avg ± σ)  (min … max)        p75     p99     p995
//	-----------------------------------------------------------------------------------------
//	perft 4    100   4.488s      44.88ms ± 1.21ms    (42.9ms … 49.1ms)  45.5ms  49.1ms  49.1ms
//
// Benchcompare joins the average time per run of each benchmark into
// one table and draws two charts: the time of every benchmark per
// version (-times, default "times.png") and the percent change of
// every benchmark from the preceding version (-changes, default
// "improvements.png"). Existing files are overwritten. An empty path
// skips that chart.
//
// It then prints the table to standard output in the form chosen by
// -format:
//
//	text  aligned columns with a percent change column per version
//	csv   exact times in seconds; missing cells are empty
//	html  an HTML table
//	none  nothing
//
// A benchmark missing from some reports is shown as missing in those
// versions, never as zero.
//
// By default the first malformed report stops benchcompare with an
// error naming the file, line and field. With -skip-invalid, such
// reports are reported on standard error and left out.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"regexp"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/vg"

	"github.com/ViliamVadocz/tak-perft/benchseries"
)

const defaultDir = "./benches/"

// errUsage marks errors in the command line.
var errUsage = errors.New("usage error")

type usageError struct {
	msg string
}

func (e *usageError) Error() string        { return e.msg }
func (e *usageError) Is(target error) bool { return target == errUsage }

func usagef(format string, args ...interface{}) error {
	return &usageError{fmt.Sprintf(format, args...)}
}

func main() {
	log.SetPrefix("benchcompare: ")
	log.SetFlags(0)
	err := benchcompare(os.Stdout, os.Stderr, os.Args[1:])
	switch {
	case err == nil:
	case errors.Is(err, flag.ErrHelp):
	case errors.Is(err, errUsage):
		log.Print(err)
		os.Exit(2)
	default:
		log.Fatal(err)
	}
}

func benchcompare(w, wErr io.Writer, args []string) error {
	flags := flag.NewFlagSet("benchcompare", flag.ContinueOnError)
	flags.SetOutput(wErr)
	flags.Usage = func() {
		fmt.Fprintf(flags.Output(), "usage: benchcompare [flags] [dir]\n")
		fmt.Fprintf(flags.Output(), "dir defaults to %s\n", defaultDir)
		fmt.Fprintf(flags.Output(), "flags:\n")
		flags.PrintDefaults()
	}

	def := benchseries.DefaultChartOptions
	var (
		flagExt         = flags.String("ext", benchseries.DefaultExt, "read report files with `extension`")
		flagTimes       = flags.String("times", "times.png", "write the times chart to `file`; empty to skip")
		flagChanges     = flags.String("changes", "improvements.png", "write the percent change chart to `file`; empty to skip")
		flagFormat      = flags.String("format", "text", "print the table as `format`: text, csv, html, or none")
		flagFilter      = flags.String("filter", "", "only include benchmarks matching `regexp`")
		flagSkipInvalid = flags.Bool("skip-invalid", false, "warn about and skip malformed reports instead of failing")
		flagWidth       = flags.Float64("width", float64(def.Width/vg.Inch), "chart width in `inches`")
		flagHeight      = flags.Float64("height", float64(def.Height/vg.Inch), "chart height in `inches`")
		flagDPI         = flags.Int("dpi", def.DPI, "chart resolution in dots per inch")
	)
	if err := flags.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return err
		}
		// The flag package has already printed the problem.
		return usagef("bad flags")
	}
	if flags.NArg() > 1 {
		flags.Usage()
		return usagef("too many arguments")
	}
	dir := defaultDir
	if flags.NArg() == 1 {
		dir = flags.Arg(0)
	}

	var format func(*benchseries.Table, io.Writer) error
	switch *flagFormat {
	case "text":
		format = (*benchseries.Table).ToText
	case "csv":
		format = (*benchseries.Table).ToCSV
	case "html":
		format = (*benchseries.Table).ToHTML
	case "none":
	default:
		return usagef("unknown -format %q", *flagFormat)
	}
	if *flagWidth <= 0 || *flagHeight <= 0 || *flagDPI <= 0 {
		return usagef("-width, -height and -dpi must be positive")
	}
	opts := benchseries.ChartOptions{
		Width:  vg.Length(*flagWidth) * vg.Inch,
		Height: vg.Length(*flagHeight) * vg.Inch,
		DPI:    *flagDPI,
	}

	warn := log.New(wErr, "benchcompare: ", 0)
	loader := benchseries.Loader{
		Ext:         *flagExt,
		SkipInvalid: *flagSkipInvalid,
		Warn:        warn.Printf,
	}
	if *flagFilter != "" {
		re, err := regexp.Compile(*flagFilter)
		if err != nil {
			return usagef("bad -filter: %v", err)
		}
		loader.Filter = re
	}

	tab, err := loader.Load(dir)
	if err != nil {
		return err
	}

	charts := []struct {
		path string
		mk   func(*benchseries.Table) (*plot.Plot, error)
	}{
		{*flagTimes, benchseries.TimesPlot},
		{*flagChanges, benchseries.ChangesPlot},
	}
	for _, c := range charts {
		if c.path == "" {
			continue
		}
		p, err := c.mk(tab)
		if err != nil {
			return fmt.Errorf("%s: %w", c.path, err)
		}
		if err := benchseries.SavePNG(p, c.path, opts); err != nil {
			return err
		}
	}

	if format != nil {
		return format(tab, w)
	}
	return nil
}
