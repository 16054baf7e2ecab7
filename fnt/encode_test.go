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
	"errors"
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestEncodeOffsets(t *testing.T) {
	r := newFake()
	set := CodepointSet("0123456789:")
	g, err := Encode(r, set, EncodeOptions{Size: 640})
	if err != nil {
		t.Fatal(err)
	}
	if r.size != 640 {
		t.Errorf("size %d, want 640", r.size)
	}
	if g.Outline {
		t.Error("outline set without radius")
	}
	if d := cmp.Diff(set, g.Codepoints); d != "" {
		t.Errorf("unexpected codepoints (-want +got):\n%s", d)
	}

	var pos uint32
	for i, m := range g.Metrics {
		if m.StartIndex != pos {
			t.Errorf("glyph %d: start index %d, want %d", i, m.StartIndex, pos)
		}
		bitmap := g.Data[m.StartIndex : m.StartIndex+uint32(m.Width)*uint32(m.Height)]
		if want := bytes.Repeat([]byte{byte(set[i])}, len(bitmap)); !bytes.Equal(bitmap, want) {
			t.Errorf("glyph %d: wrong bitmap", i)
		}
		pos += uint32(m.Width) * uint32(m.Height)
	}
	if int(pos) != len(g.Data) {
		t.Errorf("%d bytes of data, glyphs use %d", len(g.Data), pos)
	}
}

func TestEncodeDropsOversizedGlyphs(t *testing.T) {
	// 'B' is taller than 255 pixels, 'C' has an advance too large for int8
	r := newFake()
	r.override = func(cp rune, size int, radius float64) (*Bitmap, error) {
		switch cp {
		case 'B':
			return box(10, 300, 0, 300, 12, 'B'), nil
		case 'C':
			return box(10, 10, 0, 10, 128, 'C'), nil
		}
		return nil, nil
	}
	g, err := Encode(r, CodepointSet("ABCD"), EncodeOptions{Size: 640})
	if err != nil {
		t.Fatal(err)
	}
	if d := cmp.Diff(CodepointSet("AD"), g.Codepoints); d != "" {
		t.Errorf("unexpected codepoints (-want +got):\n%s", d)
	}
	if len(g.Metrics) != 2 {
		t.Errorf("%d glyph descriptions, want 2", len(g.Metrics))
	}
}

func TestEncodeOutline(t *testing.T) {
	// 'B' only overflows with the outline, and must vanish from both halves
	r := newFake()
	r.override = func(cp rune, size int, radius float64) (*Bitmap, error) {
		if cp == 'B' && radius > 0 {
			return box(256, 10, 0, 10, 12, 'B'), nil
		}
		return nil, nil
	}
	g, err := Encode(r, CodepointSet("ABC"), EncodeOptions{Size: 640, OutlineRadius: 1.5})
	if err != nil {
		t.Fatal(err)
	}
	if !g.Outline {
		t.Error("outline not set")
	}
	if d := cmp.Diff(CodepointSet("AC"), g.Codepoints); d != "" {
		t.Fatalf("unexpected codepoints (-want +got):\n%s", d)
	}
	if len(g.Metrics) != 4 {
		t.Fatalf("%d glyph descriptions, want 4", len(g.Metrics))
	}

	n := len(g.Codepoints)
	for i := range n {
		fill, outline := g.Metrics[i], g.Metrics[i+n]
		if outline.Width != fill.Width+4 || outline.Height != fill.Height+4 {
			t.Errorf("glyph %d: outline %dx%d, fill %dx%d",
				i, outline.Width, outline.Height, fill.Width, fill.Height)
		}
		if g.Data[outline.StartIndex] != byte(g.Codepoints[i]) {
			t.Errorf("glyph %d: outline belongs to wrong codepoint", i)
		}
	}

	// outline bitmaps follow all fill bitmaps
	last := g.Metrics[n-1]
	if g.Metrics[n].StartIndex != last.StartIndex+uint32(last.Width)*uint32(last.Height) {
		t.Error("outline data does not follow fill data")
	}
}

func TestEncodeNothingLeft(t *testing.T) {
	r := newFake()
	r.override = func(cp rune, size int, radius float64) (*Bitmap, error) {
		return box(1, 1, -200, 1, 1, 0), nil
	}
	_, err := Encode(r, CodepointSet("AB"), EncodeOptions{})
	if !errors.Is(err, ErrNoGlyphsEncoded) {
		t.Errorf("got error %v, want %v", err, ErrNoGlyphsEncoded)
	}
}

func TestEncodeRasterizerError(t *testing.T) {
	errMissing := errors.New("missing glyph")
	r := newFake()
	r.override = func(cp rune, size int, radius float64) (*Bitmap, error) {
		if cp == 'B' {
			return nil, errMissing
		}
		return nil, nil
	}
	_, err := Encode(r, CodepointSet("ABC"), EncodeOptions{Size: 640})
	if !errors.Is(err, errMissing) {
		t.Errorf("got error %v, want %v", err, errMissing)
	}
}

func TestEncodeEmptyGlyph(t *testing.T) {
	// a space has no pixels but still advances the cursor
	r := newFake()
	r.override = func(cp rune, size int, radius float64) (*Bitmap, error) {
		if cp == ' ' {
			return &Bitmap{Advance: 5}, nil
		}
		return nil, nil
	}
	g, err := Encode(r, CodepointSet(" A"), EncodeOptions{Size: 640})
	if err != nil {
		t.Fatal(err)
	}
	want := GlyphMetrics{Advance: 5}
	if d := cmp.Diff(want, g.Metrics[0]); d != "" {
		t.Errorf("unexpected metrics for space (-want +got):\n%s", d)
	}
	if g.Metrics[1].StartIndex != 0 {
		t.Errorf("glyph after space starts at %d", g.Metrics[1].StartIndex)
	}
}

func TestEncodeRejectsUnsortedSet(t *testing.T) {
	_, err := Encode(newFake(), CodepointSet("1234567890:"), EncodeOptions{Size: 640})
	if !errors.Is(err, ErrBadCodepointSet) {
		t.Errorf("got error %v, want %v", err, ErrBadCodepointSet)
	}
}

func TestCheckDataSize(t *testing.T) {
	if err := checkDataSize(math.MaxUint32); err != nil {
		t.Errorf("4GiB-1 rejected: %v", err)
	}
	err := checkDataSize(math.MaxUint32 + 1)
	if !errors.Is(err, ErrDataOverflow) {
		t.Errorf("got error %v, want %v", err, ErrDataOverflow)
	}
	if errors.Is(err, ErrGlyphFieldOverflow) {
		t.Error("data overflow reported as a per-glyph error")
	}
}
