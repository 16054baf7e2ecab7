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

// Package fnt implements the .fnt bitmap font format used by LED matrix
// displays.
//
// A .fnt file consists of, in this order:
//
//   - a 24 byte header,
//   - the NUL-terminated family name,
//   - the codepoint map table,
//   - one 12 byte description per glyph,
//   - the glyph bitmaps, one byte of coverage per pixel.
//
// All integers are little endian.  Glyphs for a contiguous range of
// codepoints at the start of the font (the ASCII run) are found by
// subtracting the first codepoint.  The map table lists the codepoints
// of the remaining glyphs, in increasing order.
//
// If the outline flag is set, the second half of the glyphs are stroked
// versions of the first half, in the same order.
package fnt

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"os"
	"strings"
)

// Magic identifies .fnt files.
const Magic = 0x005A54BE

// FlagOutline marks fonts which contain outline glyphs.
const FlagOutline = 1

const (
	// HeaderSize is the size of the binary encoding of Header.
	HeaderSize = 24

	// GlyphDescriptionSize is the size of one glyph description, including
	// the padding required to align StartIndex.
	GlyphDescriptionSize = 12
)

// Header is the fixed-size start of a .fnt file.
type Header struct {
	Magic                  uint32
	NGlyphs                uint16
	ASCIIMapStart          uint16
	ASCIIMapN              uint16
	MapTableOffset         uint16
	GlyphDescriptionOffset uint32
	GlyphDataOffset        uint32
	Linespace              uint16
	YShift                 int8
	Flags                  uint8
}

// ASCIIRun describes glyphs for consecutive codepoints Start, Start+1, ...,
// Start+N-1, stored at glyph indices 0, ..., N-1.
type ASCIIRun struct {
	Start, N uint16
}

// Meta holds the font-wide values stored in the header.
type Meta struct {
	FamilyName string
	Linespace  int
	YShift     int
}

// Font is a complete .fnt font.
type Font struct {
	Header
	FamilyName string

	// Codepoints lists the codepoint of each fill glyph.
	Codepoints CodepointSet

	Glyphs []GlyphMetrics
	Data   []byte
}

// Assemble builds a font from encoded glyphs and computes all header
// fields.
func Assemble(g *Glyphs, meta Meta) (*Font, error) {
	nFill := len(g.Codepoints)
	nGlyphs := nFill
	if g.Outline {
		nGlyphs *= 2
	}
	if nFill == 0 {
		return nil, ErrNoGlyphsEncoded
	}
	if err := g.Codepoints.Check(); err != nil {
		return nil, err
	}
	if len(g.Metrics) != nGlyphs {
		return nil, fmt.Errorf("%d glyph descriptions for %d glyphs", len(g.Metrics), nGlyphs)
	}

	run := g.Codepoints.Run()
	mapLen := nFill - int(run.N)

	nameLen := len(meta.FamilyName)
	if strings.IndexByte(meta.FamilyName, 0) >= 0 {
		return nil, fmt.Errorf("family name %q contains NUL", meta.FamilyName)
	}
	mapTableOffset := HeaderSize + nameLen + 1
	descOffset := uint64(mapTableOffset) + 4*uint64(mapLen)
	dataOffset := descOffset + GlyphDescriptionSize*uint64(nGlyphs)

	checks := []struct {
		name     string
		val      int64
		min, max int64
	}{
		{"number of glyphs", int64(nGlyphs), 0, math.MaxUint16},
		{"map table offset", int64(mapTableOffset), 0, math.MaxUint16},
		{"glyph data offset", int64(dataOffset), 0, math.MaxUint32},
		{"linespace", int64(meta.Linespace), 0, math.MaxUint16},
		{"yshift", int64(meta.YShift), math.MinInt8, math.MaxInt8},
	}
	for _, c := range checks {
		if c.val < c.min || c.val > c.max {
			return nil, fmt.Errorf("%s %d: %w", c.name, c.val, ErrHeaderOverflow)
		}
	}

	var flags uint8
	if g.Outline {
		flags |= FlagOutline
	}

	f := &Font{
		Header: Header{
			Magic:                  Magic,
			NGlyphs:                uint16(nGlyphs),
			ASCIIMapStart:          run.Start,
			ASCIIMapN:              run.N,
			MapTableOffset:         uint16(mapTableOffset),
			GlyphDescriptionOffset: uint32(descOffset),
			GlyphDataOffset:        uint32(dataOffset),
			Linespace:              uint16(meta.Linespace),
			YShift:                 int8(meta.YShift),
			Flags:                  flags,
		},
		FamilyName: meta.FamilyName,
		Codepoints: g.Codepoints,
		Glyphs:     g.Metrics,
		Data:       g.Data,
	}
	return f, nil
}

// SearchOverrun returns how many entries past the end of the map table
// the display firmware may read.  The firmware searches NGlyphs -
// ASCIIMapN entries, but the map table only covers the fill glyphs, so
// fonts with outlines and a non-empty map table are affected.
func (f *Font) SearchOverrun() int {
	if len(f.mapTable()) == 0 {
		return 0
	}
	return int(f.NGlyphs) - len(f.Codepoints)
}

// mapTable returns the codepoints of the fill glyphs after the ASCII run.
func (f *Font) mapTable() []rune {
	n := min(int(f.ASCIIMapN), len(f.Codepoints))
	return f.Codepoints[n:]
}

// MarshalBinary returns the binary encoding of the font.
// This implements the [encoding.BinaryMarshaler] interface.
func (f *Font) MarshalBinary() ([]byte, error) {
	buf := &bytes.Buffer{}
	buf.Grow(int(f.GlyphDataOffset) + len(f.Data))
	if _, err := f.WriteTo(buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// WriteTo writes the binary encoding of the font to w.
// This implements the [io.WriterTo] interface.
func (f *Font) WriteTo(w io.Writer) (int64, error) {
	cw := &countingWriter{w: w}

	binary.Write(cw, binary.LittleEndian, &f.Header)
	cw.Write([]byte(f.FamilyName))
	cw.Write([]byte{0})

	for _, cp := range f.mapTable() {
		binary.Write(cw, binary.LittleEndian, uint32(cp))
	}

	var desc [GlyphDescriptionSize]byte
	for _, g := range f.Glyphs {
		desc[0] = g.Width
		desc[1] = g.Height
		desc[2] = uint8(g.LSB)
		desc[3] = uint8(g.TSB)
		desc[4] = uint8(g.Advance)
		// bytes 5 to 7 are padding
		binary.LittleEndian.PutUint32(desc[8:], g.StartIndex)
		cw.Write(desc[:])
	}

	cw.Write(f.Data)
	return cw.n, cw.err
}

// countingWriter keeps the first write error, so that the writes in WriteTo
// need not be checked individually.
type countingWriter struct {
	w   io.Writer
	n   int64
	err error
}

func (cw *countingWriter) Write(p []byte) (int, error) {
	if cw.err != nil {
		return 0, cw.err
	}
	n, err := cw.w.Write(p)
	cw.n += int64(n)
	cw.err = err
	return n, err
}

// WriteFile writes the font to the named file.
func WriteFile(fname string, f *Font) (err error) {
	out, err := os.Create(fname)
	if err != nil {
		return err
	}
	defer func() {
		closeErr := out.Close()
		if err == nil {
			err = closeErr
		}
	}()

	_, err = f.WriteTo(out)
	return err
}
