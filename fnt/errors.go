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

import "errors"

var (
	// ErrNoGlyphsSelected is returned by Selection.Build if no codepoint
	// remains after filtering.
	ErrNoGlyphsSelected = errors.New("no glyphs selected")

	// ErrGlyphFieldOverflow indicates that a glyph metric does not fit into
	// its field of the glyph description.  Such glyphs are skipped.
	ErrGlyphFieldOverflow = errors.New("glyph metric out of range")

	// ErrNoGlyphsEncoded is returned by Encode if every glyph was dropped.
	ErrNoGlyphsEncoded = errors.New("no glyphs could be encoded")

	// ErrHeaderOverflow indicates that a header field is out of range.
	ErrHeaderOverflow = errors.New("font header field out of range")

	// ErrDataOverflow is returned by Encode if the glyph bitmaps together
	// exceed the 32 bit start index.
	ErrDataOverflow = errors.New("glyph data too large")

	// ErrBadCodepointSet is returned by Encode and Assemble if the
	// codepoints are not strictly increasing or start below MinCodepoint.
	ErrBadCodepointSet = errors.New("invalid codepoint set")

	// ErrBadMagic is returned by Parse if the data does not start with
	// Magic.
	ErrBadMagic = errors.New("not a .fnt file")

	// ErrMalformed is returned by Parse for inconsistent headers, offsets
	// or tables.
	ErrMalformed = errors.New("malformed .fnt file")

	errEmptyRange = errors.New("empty codepoint range")
)
