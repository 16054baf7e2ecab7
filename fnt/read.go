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
	"encoding/binary"
	"fmt"
	"os"
	"slices"
)

// ReadFile reads and parses the named .fnt file.
func ReadFile(fname string) (*Font, error) {
	data, err := os.ReadFile(fname)
	if err != nil {
		return nil, err
	}
	return Parse(data)
}

// Parse decodes a .fnt file.
func Parse(data []byte) (*Font, error) {
	if len(data) < HeaderSize {
		return nil, fmt.Errorf("%d byte file: %w", len(data), ErrMalformed)
	}
	f := &Font{}
	err := binary.Read(bytes.NewReader(data[:HeaderSize]), binary.LittleEndian, &f.Header)
	if err != nil {
		return nil, err
	}
	if f.Magic != Magic {
		return nil, ErrBadMagic
	}

	h := &f.Header
	mapStart := int(h.MapTableOffset)
	descStart := int64(h.GlyphDescriptionOffset)
	dataStart := int64(h.GlyphDataOffset)
	if mapStart <= HeaderSize || int64(mapStart) > descStart || descStart > dataStart ||
		dataStart > int64(len(data)) {
		return nil, fmt.Errorf("bad section offsets: %w", ErrMalformed)
	}

	if data[mapStart-1] != 0 {
		return nil, fmt.Errorf("family name not terminated: %w", ErrMalformed)
	}
	f.FamilyName = string(data[HeaderSize : mapStart-1])

	mapBytes := data[mapStart:descStart]
	if len(mapBytes)%4 != 0 {
		return nil, fmt.Errorf("map table of %d bytes: %w", len(mapBytes), ErrMalformed)
	}

	nGlyphs := int(h.NGlyphs)
	nFill := nGlyphs
	if h.Flags&FlagOutline != 0 {
		if nGlyphs%2 != 0 {
			return nil, fmt.Errorf("odd number of glyphs in outline font: %w", ErrMalformed)
		}
		nFill /= 2
	}
	if int(h.ASCIIMapN)+len(mapBytes)/4 != nFill {
		return nil, fmt.Errorf("%d+%d codepoints for %d glyphs: %w",
			h.ASCIIMapN, len(mapBytes)/4, nFill, ErrMalformed)
	}

	cps := make(CodepointSet, 0, nFill)
	for i := range int(h.ASCIIMapN) {
		cps = append(cps, rune(h.ASCIIMapStart)+rune(i))
	}
	for i := 0; i < len(mapBytes); i += 4 {
		cps = append(cps, rune(binary.LittleEndian.Uint32(mapBytes[i:])))
	}
	for i := 1; i < len(cps); i++ {
		if cps[i] <= cps[i-1] {
			return nil, fmt.Errorf("codepoints not increasing: %w", ErrMalformed)
		}
	}
	f.Codepoints = cps

	descBytes := data[descStart:dataStart]
	if len(descBytes) != nGlyphs*GlyphDescriptionSize {
		return nil, fmt.Errorf("%d bytes of glyph descriptions for %d glyphs: %w",
			len(descBytes), nGlyphs, ErrMalformed)
	}
	f.Data = data[dataStart:]
	f.Glyphs = make([]GlyphMetrics, nGlyphs)
	for i := range f.Glyphs {
		d := descBytes[i*GlyphDescriptionSize:]
		g := GlyphMetrics{
			Width:      d[0],
			Height:     d[1],
			LSB:        int8(d[2]),
			TSB:        int8(d[3]),
			Advance:    int8(d[4]),
			StartIndex: binary.LittleEndian.Uint32(d[8:]),
		}
		end := int64(g.StartIndex) + int64(g.Width)*int64(g.Height)
		if end > int64(len(f.Data)) {
			return nil, fmt.Errorf("glyph %d: bitmap beyond end of file: %w", i, ErrMalformed)
		}
		f.Glyphs[i] = g
	}

	return f, nil
}

// Lookup returns the glyph index for codepoint cp, using the same search
// as the display firmware: first the ASCII run, then a binary search in
// the map table.  If outline is set, the index of the outline glyph is
// returned.
func (f *Font) Lookup(cp rune, outline bool) (int, bool) {
	var idx int
	start := rune(f.ASCIIMapStart)
	if cp >= start && cp-start < rune(f.ASCIIMapN) {
		idx = int(cp - start)
	} else {
		k, found := slices.BinarySearch(f.mapTable(), cp)
		if !found {
			return -1, false
		}
		idx = int(f.ASCIIMapN) + k
	}

	if outline {
		if !f.HasOutline() {
			return -1, false
		}
		idx += int(f.NGlyphs) / 2
	}
	if idx >= len(f.Glyphs) {
		return -1, false
	}
	return idx, true
}

// HasOutline reports whether the font contains outline glyphs.
func (f *Font) HasOutline() bool {
	return f.Flags&FlagOutline != 0
}

// Bitmap returns the coverage values of glyph i, row by row.
func (f *Font) Bitmap(i int) []byte {
	g := &f.Glyphs[i]
	start := int(g.StartIndex)
	return f.Data[start : start+int(g.Width)*int(g.Height)]
}
