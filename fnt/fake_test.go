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
	"bytes"
	"iter"
	"math"
)

// fakeRasterizer renders boxes instead of glyphs.  At size s, a glyph is
// round(ratio*s/64) pixels high, sits on the baseline, and is half as wide
// as it is high.  The colon is half as wide as the digits.
type fakeRasterizer struct {
	ratio float64
	size  int

	sizes []int // every size set, in order

	// override, if set, replaces the default glyph
	override func(cp rune, size int, radius float64) (*Bitmap, error)
}

func newFake() *fakeRasterizer {
	return &fakeRasterizer{ratio: 0.7}
}

func (f *fakeRasterizer) SetSize(size int) {
	f.size = size
	f.sizes = append(f.sizes, size)
}

func (f *fakeRasterizer) Glyph(cp rune, radius float64) (*Bitmap, error) {
	if f.override != nil {
		if g, err := f.override(cp, f.size, radius); g != nil || err != nil {
			return g, err
		}
	}

	h := int(math.Round(f.ratio * float64(f.size) / 64))
	w := h / 2
	adv := w + 1
	if cp == ':' {
		adv = w / 2
	}
	r := int(math.Ceil(radius))
	return box(w+2*r, h+2*r, -r, h+r, adv, byte(cp)), nil
}

func box(w, h, left, top, adv int, fill byte) *Bitmap {
	return &Bitmap{
		Width:   w,
		Height:  h,
		Left:    left,
		Top:     top,
		Advance: adv,
		Pix:     bytes.Repeat([]byte{fill}, w*h),
	}
}

// fakeEnumerator lists a fixed sequence of codepoints.
type fakeEnumerator []rune

func (e fakeEnumerator) Codepoints() iter.Seq[rune] {
	return func(yield func(rune) bool) {
		for _, cp := range e {
			if !yield(cp) {
				return
			}
		}
	}
}

// endless lists codepoints 0x20, 0x21, ... without ever stopping.
type endless struct{}

func (endless) Codepoints() iter.Seq[rune] {
	return func(yield func(rune) bool) {
		for cp := rune(0x20); ; cp++ {
			if !yield(cp) {
				return
			}
		}
	}
}
