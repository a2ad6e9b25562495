// Copyright 2022 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package benchseries

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"github.com/ViliamVadocz/tak-perft/benchfmt"
)

// DefaultExt is the file name extension of report files.
const DefaultExt = ".bench"

// ErrEmptyCorpus is returned when a directory yields no usable report
// files.
var ErrEmptyCorpus = errors.New("no benchmark reports found")

// Discover returns the paths of all regular files under dir whose
// names end in ext, sorted by comparing path elements in turn, so
// "a/x.bench" sorts before "a-b.bench".
func Discover(dir, ext string) ([]string, error) {
	var paths []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.Type().IsRegular() && strings.HasSuffix(d.Name(), ext) {
			paths = append(paths, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Slice(paths, func(i, j int) bool {
		return pathLess(paths[i], paths[j])
	})
	return paths, nil
}

// pathLess orders paths by their elements, compared in turn. A path
// that is a prefix of another sorts first.
func pathLess(a, b string) bool {
	ea := strings.Split(filepath.ToSlash(a), "/")
	eb := strings.Split(filepath.ToSlash(b), "/")
	for i := 0; i < len(ea) && i < len(eb); i++ {
		if ea[i] != eb[i] {
			return ea[i] < eb[i]
		}
	}
	return len(ea) < len(eb)
}

// A Loader reads a directory of report files into a Table.
//
// The zero Loader is ready to use.
type Loader struct {
	// Ext is the report file name extension. If empty, DefaultExt
	// is used.
	Ext string

	// SkipInvalid causes files that cannot be read or parsed to be
	// reported through Warn and left out of the table. Otherwise
	// the first such file stops Load.
	SkipInvalid bool

	// Filter, if non-nil, selects the benchmarks to keep by name.
	Filter *regexp.Regexp

	// Warn is called for problems that do not stop loading. If nil,
	// warnings are dropped.
	Warn func(format string, args ...interface{})
}

// Load reads the reports under dir using the default Loader.
func Load(dir string) (*Table, error) {
	var l Loader
	return l.Load(dir)
}

// Load finds the report files under dir and joins their time/run
// averages into a table. Each file becomes one version column, in
// discovery order, labeled with its base name minus the extension.
// Rows are the union of all benchmark names.
func (l *Loader) Load(dir string) (*Table, error) {
	ext := l.Ext
	if ext == "" {
		ext = DefaultExt
	}
	paths, err := Discover(dir, ext)
	if err != nil {
		return nil, err
	}

	var loaded []string
	var reps []*benchfmt.Report
	for _, path := range paths {
		rep, err := readReport(path)
		if err != nil {
			if l.SkipInvalid {
				l.warn("skipping %v", err)
				continue
			}
			return nil, err
		}
		loaded = append(loaded, path)
		reps = append(reps, rep)
	}
	if len(reps) == 0 {
		return nil, fmt.Errorf("%s: %w", dir, ErrEmptyCorpus)
	}

	// Skipped files take no part in labeling.
	labels := versionLabels(loaded, ext)
	t := NewTable()
	for i, rep := range reps {
		t.AddVersion(labels[i])
		l.addReport(t, labels[i], rep)
	}
	return t, nil
}

func (l *Loader) addReport(t *Table, version string, rep *benchfmt.Report) {
	seen := make(map[string]int)
	for _, row := range rep.Rows {
		if l.Filter != nil && !l.Filter.MatchString(row.Benchmark) {
			continue
		}
		if line, ok := seen[row.Benchmark]; ok {
			l.warn("%s:%d: benchmark %q already seen on line %d; using the later row", rep.FileName, row.Line, row.Benchmark, line)
		}
		seen[row.Benchmark] = row.Line
		t.Set(row.Benchmark, version, row.TimePerRun)
	}
}

func (l *Loader) warn(format string, args ...interface{}) {
	if l.Warn != nil {
		l.Warn(format, args...)
	}
}

func readReport(path string) (*benchfmt.Report, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return benchfmt.Parse(f, path)
}

// versionLabels returns the column label of each path: its base name
// with ext removed. Labels shared by several paths get a "#i" suffix
// numbering them in path order.
func versionLabels(paths []string, ext string) []string {
	labels := make([]string, len(paths))
	count := make(map[string]int)
	for i, path := range paths {
		labels[i] = strings.TrimSuffix(filepath.Base(path), ext)
		count[labels[i]]++
	}
	next := make(map[string]int)
	for i, label := range labels {
		if count[label] > 1 {
			labels[i] = fmt.Sprintf("%s#%d", label, next[label])
			next[label]++
		}
	}
	return labels
}
