// Copyright 2022 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package benchseries

import (
	"encoding/csv"
	"io"

	"github.com/ViliamVadocz/tak-perft/benchunit"
)

// ToCSV writes t to w in CSV form. The header row is "benchmark"
// followed by the versions. Values are exact seconds with no unit,
// and missing cells are empty.
func (t *Table) ToCSV(w io.Writer) error {
	cw := csv.NewWriter(w)
	cw.Write(append([]string{"benchmark"}, t.Versions...))
	for _, bench := range t.Benchmarks {
		rec := []string{bench}
		for _, version := range t.Versions {
			s := ""
			if v, ok := t.Get(bench, version); ok {
				s = benchunit.NoOpScaler.Format(v)
			}
			rec = append(rec, s)
		}
		cw.Write(rec)
	}
	cw.Flush()
	return cw.Error()
}
