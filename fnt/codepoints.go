// seehuhn.de/go/ledfont - bitmap fonts for LED matrix displays
// Copyright (C) 2026  Jochen Voss <voss@seehuhn.de>
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

package fnt

import (
	"fmt"
	"iter"
	"slices"
	"strconv"
	"strings"
	"unicode"

	"seehuhn.de/go/ledfont/internal/logging"
)

// MinCodepoint is the smallest codepoint which can be stored in a font.
// Control codes below this value are always removed.
const MinCodepoint = 0x20

// MaxEnumeratedCodepoints bounds the number of codepoints taken from a
// font's character map when all glyphs are requested.
const MaxEnumeratedCodepoints = 0x10000

// Numerals are the characters needed for a clock display.  They are also
// used to tune the font size.
const Numerals = "1234567890:"

// asciiCount is the number of printable ASCII characters, starting at
// MinCodepoint.
const asciiCount = 95

// CodepointSet is a sorted list of distinct codepoints, none of which is
// smaller than MinCodepoint.
type CodepointSet []rune

// An Enumerator lists the codepoints a font has glyphs for, in increasing
// order.
type Enumerator interface {
	Codepoints() iter.Seq[rune]
}

// Selection describes which codepoints to include in a font.
type Selection struct {
	Explicit []rune // individual codepoints, e.g. from ParseCodepointList
	ASCII    bool   // the printable ASCII characters
	All      bool   // every codepoint the font defines
	Numerals bool   // the characters in Numerals
}

// Build returns the union of all selected codepoints.  The enumerator is
// only used if s.All is set, and may be nil otherwise.
func (s *Selection) Build(fontCodes Enumerator) (CodepointSet, error) {
	var cps []rune
	cps = append(cps, s.Explicit...)
	if s.ASCII {
		for cp := rune(MinCodepoint); cp < MinCodepoint+asciiCount; cp++ {
			cps = append(cps, cp)
		}
	}
	if s.Numerals {
		cps = append(cps, []rune(Numerals)...)
	}
	if s.All && fontCodes != nil {
		cps = appendEnumerated(cps, fontCodes.Codepoints())
	}

	cps = slices.DeleteFunc(cps, func(cp rune) bool { return cp < MinCodepoint })
	slices.Sort(cps)
	cps = slices.Compact(cps)
	if len(cps) == 0 {
		return nil, ErrNoGlyphsSelected
	}
	return CodepointSet(cps), nil
}

// appendEnumerated appends codepoints from seq until the sequence ends,
// wraps around to 0, or MaxEnumeratedCodepoints values have been taken.
func appendEnumerated(cps []rune, seq iter.Seq[rune]) []rune {
	n := 0
	for cp := range seq {
		if cp == 0 {
			break
		}
		if n >= MaxEnumeratedCodepoints {
			logging.Logger().Warn("codepoint enumeration truncated",
				"limit", MaxEnumeratedCodepoints)
			break
		}
		cps = append(cps, cp)
		n++
	}
	return cps
}

// ParseCodepointList parses a comma separated list of codepoints.  Each
// element is a decimal, hexadecimal (0x...) or octal (0o...) literal, or a
// range "a-b" of two such literals.
func ParseCodepointList(s string) ([]rune, error) {
	var res []rune
	for _, field := range strings.Split(s, ",") {
		field = strings.TrimSpace(field)
		if field == "" {
			continue
		}

		lo, hi, isRange := strings.Cut(field, "-")
		a, err := parseCodepoint(lo)
		if err != nil {
			return nil, err
		}
		b := a
		if isRange {
			b, err = parseCodepoint(hi)
			if err != nil {
				return nil, err
			}
			if b < a {
				return nil, fmt.Errorf("%q: %w", field, errEmptyRange)
			}
		}
		for cp := a; cp <= b; cp++ {
			res = append(res, cp)
		}
	}
	return res, nil
}

func parseCodepoint(s string) (rune, error) {
	x, err := strconv.ParseUint(strings.TrimSpace(s), 0, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid codepoint %q: %w", s, err)
	}
	if x > 0x10FFFF {
		return 0, fmt.Errorf("invalid codepoint %q: beyond Unicode range", s)
	}
	return rune(x), nil
}

// Check verifies that s is strictly increasing and that no element is
// below MinCodepoint or beyond the Unicode range.
func (s CodepointSet) Check() error {
	for i, cp := range s {
		if cp < MinCodepoint || cp > unicode.MaxRune {
			return fmt.Errorf("codepoint %U: %w", cp, ErrBadCodepointSet)
		}
		if i > 0 && cp <= s[i-1] {
			return fmt.Errorf("codepoint %U after %U: %w", cp, s[i-1], ErrBadCodepointSet)
		}
	}
	return nil
}

// Run returns the longest prefix of s which consists of consecutive
// codepoints.  If the first codepoint does not fit into 16 bits, the run
// is empty.
func (s CodepointSet) Run() ASCIIRun {
	if len(s) == 0 || s[0] > 0xFFFF {
		return ASCIIRun{}
	}
	n := 1
	for n < len(s) && n < 0xFFFF && s[n] == s[0]+rune(n) {
		n++
	}
	return ASCIIRun{Start: uint16(s[0]), N: uint16(n)}
}
