// Copyright 2022 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package benchunit

import (
	"fmt"
	"math"
	"strconv"
)

// A Scaler represents a scaling factor for a duration in seconds and
// the unit tag it is displayed with.
type Scaler struct {
	Prec   int     // Digits after the decimal point
	Factor float64 // Seconds in one Unit (e.g., 1 ms => 0.001)
	Suffix string  // Unit tag ("s", "ms", "us", "ns")
}

// Format formats a duration of sec seconds according to the given
// scale and appends the unit tag. For example, Scale(0.001047)
// returns "1.047ms".
//
// The output is itself a valid duration token.
func (s Scaler) Format(sec float64) string {
	buf := make([]byte, 0, 20)
	buf = strconv.AppendFloat(buf, sec/s.Factor, 'f', s.Prec, 64)
	buf = append(buf, s.Suffix...)
	return string(buf)
}

// NoOpScaler is a Scaler that formats seconds with the smallest
// number of digits necessary to capture the exact value, and no unit
// tag. This is intended for when the output will be consumed by
// another program, such as when producing CSV format.
var NoOpScaler = Scaler{-1, 1, ""}

type factor struct {
	factor float64
	suffix string
	// Thresholds for 100.0, 10.00, 1.000.
	t100, t10, t1 float64
}

var timeFactors = mkTimeFactors()
var sigfigs, sigfigsBase = mkSigfigs()

func mkTimeFactors() []factor {
	// To ensure that the thresholds for printing values with
	// various factors exactly match how printing itself will
	// round, we construct the thresholds by parsing the printed
	// representation.
	var factors []factor
	exp := 0
	for _, u := range []Unit{Second, Millisecond, Microsecond, Nanosecond} {
		t100, _ := strconv.ParseFloat(fmt.Sprintf("99.995e%d", exp), 64)
		t10, _ := strconv.ParseFloat(fmt.Sprintf("9.9995e%d", exp), 64)
		t1, _ := strconv.ParseFloat(fmt.Sprintf(".99995e%d", exp), 64)
		factors = append(factors, factor{math.Pow(10, float64(exp)), u.String(), t100, t10, t1})
		exp -= 3
	}
	return factors
}

func mkSigfigs() ([]float64, int) {
	var sigfigs []float64
	// Print up to 10 digits after the decimal place.
	for exp := -1; exp > -9; exp-- {
		thresh, _ := strconv.ParseFloat(fmt.Sprintf("9.9995e%d", exp), 64)
		sigfigs = append(sigfigs, thresh)
	}
	// sigfigs[0] is the threshold for 3 digits after the decimal.
	return sigfigs, 3
}

// Scale formats sec seconds using at least three significant digits
// and the largest unit that keeps the value at or above 1. See
// Scaler.Format for details.
func Scale(sec float64) string {
	return CommonScale([]float64{sec}).Format(sec)
}

// CommonScale returns a common Scaler to apply to all durations in
// vals. This scale will show at least three significant digits for
// every value.
func CommonScale(vals []float64) Scaler {
	// The common scale is determined by the non-zero value
	// closest to zero.
	var min float64
	for _, v := range vals {
		v = math.Abs(v)
		if v != 0 && (min == 0 || v < min) {
			min = v
		}
	}
	if min == 0 {
		return Scaler{3, 1, Second.String()}
	}

	for _, factor := range timeFactors {
		switch {
		case min >= factor.t100:
			return Scaler{1, factor.factor, factor.suffix}
		case min >= factor.t10:
			return Scaler{2, factor.factor, factor.suffix}
		case min >= factor.t1:
			return Scaler{3, factor.factor, factor.suffix}
		}
	}

	// The value is less than a nanosecond. Print it in nanoseconds
	// with more precision to achieve the desired sigfigs.
	factor := timeFactors[len(timeFactors)-1]
	val := min / factor.factor
	for i, thresh := range sigfigs {
		if val >= thresh || i == len(sigfigs)-1 {
			return Scaler{i + sigfigsBase, factor.factor, factor.suffix}
		}
	}

	panic("not reachable")
}
