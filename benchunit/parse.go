// Copyright 2022 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package benchunit parses the duration tokens found in benchmark
// reports and formats durations for display.
package benchunit

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// A Unit is the time unit tag of a duration token.
type Unit int

const (
	// Second is the unit of a token with an "s" tag or no tag at all.
	Second Unit = iota
	Millisecond
	Microsecond
	Nanosecond
)

func (u Unit) String() string {
	switch u {
	case Second:
		return "s"
	case Millisecond:
		return "ms"
	case Microsecond:
		return "us"
	case Nanosecond:
		return "ns"
	}
	return fmt.Sprintf("Unit(%d)", int(u))
}

// perSecond returns how many u make up one second.
func (u Unit) perSecond() float64 {
	switch u {
	case Second:
		return 1
	case Millisecond:
		return 1e3
	case Microsecond:
		return 1e6
	case Nanosecond:
		return 1e9
	}
	panic(fmt.Sprintf("bad Unit %v", u))
}

// Factor returns the length of one u in seconds.
func (u Unit) Factor() float64 {
	return 1 / u.perSecond()
}

var unitTags = map[string]Unit{
	"s":  Second,
	"ms": Millisecond,
	"us": Microsecond,
	"µs": Microsecond, // U+00B5 MICRO SIGN
	"μs": Microsecond, // U+03BC GREEK SMALL LETTER MU
	"ns": Nanosecond,
}

// ParseUnit returns the Unit for tag and whether tag is a known unit.
func ParseUnit(tag string) (Unit, bool) {
	u, ok := unitTags[tag]
	return u, ok
}

// A Duration is a parsed duration token of the form
//
//	[<minutes>m]<value>[<unit>]
//
// for example "35ns", "1.047ms", "4.488" or "1m35.334s".
type Duration struct {
	// HasMinutes reports whether the token had a minutes component.
	HasMinutes bool
	// Minutes is the whole number of minutes, if HasMinutes is set.
	Minutes int

	// Value is the numeric value, in units of Unit.
	Value float64
	// Unit is the unit of Value. It is Second if the token had no
	// unit tag.
	Unit Unit
}

// Seconds returns d in seconds.
func (d Duration) Seconds() float64 {
	// Dividing by an exact power of ten keeps integral values such
	// as "35ns" correctly rounded.
	s := d.Value / d.Unit.perSecond()
	if d.HasMinutes {
		s += float64(d.Minutes) * 60
	}
	return s
}

// ErrMalformedDuration is matched (using errors.Is) by every error
// returned for a token that is not a valid duration.
var ErrMalformedDuration = errors.New("malformed duration")

// A DurationError describes a token that could not be parsed as a
// duration.
type DurationError struct {
	Token string
	Msg   string
}

func (e *DurationError) Error() string {
	return fmt.Sprintf("malformed duration %q: %s", e.Token, e.Msg)
}

func (e *DurationError) Is(target error) bool {
	return target == ErrMalformedDuration
}

// ParseDuration parses a duration token and returns its length in
// seconds. Surrounding whitespace is ignored. A token without a unit
// tag is in seconds.
func ParseDuration(token string) (float64, error) {
	d, err := ParseDurationToken(token)
	if err != nil {
		return 0, err
	}
	return d.Seconds(), nil
}

// ParseDurationToken parses a duration token into its components.
// The whole token, after trimming whitespace, must match the grammar
// described at Duration.
func ParseDurationToken(token string) (Duration, error) {
	p := durationParser{s: strings.TrimSpace(token)}
	d, msg := p.parse()
	if msg != "" {
		return Duration{}, &DurationError{token, msg}
	}
	return d, nil
}

type durationParser struct {
	s   string
	pos int // byte offset of the next unconsumed byte
}

func isDigit(c byte) bool {
	return '0' <= c && c <= '9'
}

// digits consumes and returns a run of ASCII digits.
func (p *durationParser) digits() string {
	start := p.pos
	for p.pos < len(p.s) && isDigit(p.s[p.pos]) {
		p.pos++
	}
	return p.s[start:p.pos]
}

func (p *durationParser) peek(off int) byte {
	if p.pos+off < len(p.s) {
		return p.s[p.pos+off]
	}
	return 0
}

// parse returns the parsed duration, or a non-empty message
// describing why the input is malformed.
func (p *durationParser) parse() (d Duration, msg string) {
	if p.s == "" {
		return d, "empty token"
	}

	lead := p.digits()
	if lead == "" {
		return d, "missing numeric value"
	}

	// "<digits>m<digit>" starts a minutes component. Any other "m"
	// here is either the "ms" tag or an unknown unit.
	if p.peek(0) == 'm' && isDigit(p.peek(1)) {
		mins, err := strconv.Atoi(lead)
		if err != nil {
			return d, "minutes out of range"
		}
		d.HasMinutes, d.Minutes = true, mins
		p.pos++
		lead = p.digits()
	}

	num := lead
	if p.peek(0) == '.' {
		p.pos++
		frac := p.digits()
		if frac == "" {
			return d, "missing digits after decimal point"
		}
		num += "." + frac
	}
	val, err := strconv.ParseFloat(num, 64)
	if err != nil {
		return d, "value out of range"
	}
	d.Value = val

	tag := p.s[p.pos:]
	if tag == "" {
		d.Unit = Second
		return d, ""
	}
	u, ok := ParseUnit(tag)
	if !ok {
		return d, fmt.Sprintf("unknown unit %q", tag)
	}
	d.Unit = u
	return d, ""
}
