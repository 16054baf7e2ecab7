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
	"errors"
	"fmt"
	"math"

	"seehuhn.de/go/ledfont/internal/logging"
)

// GlyphMetrics describes one glyph of a font file.
type GlyphMetrics struct {
	Width, Height uint8
	LSB           int8 // left side bearing
	TSB           int8 // top side bearing, measured upwards from the baseline
	Advance       int8

	// StartIndex is the offset of the glyph's bitmap in the glyph data.
	StartIndex uint32
}

// EncodeOptions controls the glyph encoder.
type EncodeOptions struct {
	// Size is the font size, in 1/64 pixel per em.  If this is zero, the
	// rasterizer keeps its current size.
	Size int

	// OutlineRadius enables the outline glyphs, if positive.
	OutlineRadius float64
}

// Glyphs holds the rendered glyphs of a font.
type Glyphs struct {
	// Codepoints lists the codepoints for which all glyphs could be
	// encoded.
	Codepoints CodepointSet

	// Metrics has one entry per codepoint, in the order of Codepoints.  If
	// Outline is set, this is followed by one entry per codepoint for the
	// outline glyphs, in the same order.
	Metrics []GlyphMetrics

	// Data is the concatenation of all glyph bitmaps, in the order of
	// Metrics.
	Data []byte

	Outline bool
}

// Encode renders all glyphs in set.  Glyphs which do not fit into the
// fields of GlyphMetrics are left out, with a warning.  If the outline is
// enabled, a codepoint is only kept if both its glyphs can be encoded.
func Encode(r Rasterizer, set CodepointSet, opt EncodeOptions) (*Glyphs, error) {
	log := logging.Logger()
	if err := set.Check(); err != nil {
		return nil, err
	}
	if opt.Size > 0 {
		r.SetSize(opt.Size)
	}
	outline := opt.OutlineRadius > 0

	res := &Glyphs{Outline: outline}
	var outlineMetrics []GlyphMetrics
	var outlineData []byte

	for _, cp := range set {
		fill, fillBitmap, err := encodeGlyph(r, cp, 0)
		if errors.Is(err, ErrGlyphFieldOverflow) {
			log.Warn("glyph dropped", "cp", cp, "error", err)
			continue
		} else if err != nil {
			return nil, err
		}

		var stroke GlyphMetrics
		var strokeBitmap []byte
		if outline {
			stroke, strokeBitmap, err = encodeGlyph(r, cp, opt.OutlineRadius)
			if errors.Is(err, ErrGlyphFieldOverflow) {
				log.Warn("glyph dropped", "cp", cp, "outline", true, "error", err)
				continue
			} else if err != nil {
				return nil, err
			}
		}

		fill.StartIndex = uint32(len(res.Data))
		res.Data = append(res.Data, fillBitmap...)
		res.Metrics = append(res.Metrics, fill)
		if outline {
			stroke.StartIndex = uint32(len(outlineData))
			outlineData = append(outlineData, strokeBitmap...)
			outlineMetrics = append(outlineMetrics, stroke)
		}
		res.Codepoints = append(res.Codepoints, cp)

		log.Debug("glyph encoded", "cp", cp,
			"width", fill.Width, "height", fill.Height, "advance", fill.Advance)
	}

	if len(res.Codepoints) == 0 {
		return nil, ErrNoGlyphsEncoded
	}
	if err := checkDataSize(uint64(len(res.Data)) + uint64(len(outlineData))); err != nil {
		return nil, err
	}

	if outline {
		base := uint32(len(res.Data))
		for i := range outlineMetrics {
			outlineMetrics[i].StartIndex += base
		}
		res.Metrics = append(res.Metrics, outlineMetrics...)
		res.Data = append(res.Data, outlineData...)
	}

	log.Info("glyphs encoded",
		"requested", len(set), "kept", len(res.Codepoints), "bytes", len(res.Data))
	return res, nil
}

// checkDataSize verifies that n bytes of glyph data can be addressed by
// GlyphMetrics.StartIndex.
func checkDataSize(n uint64) error {
	if n > math.MaxUint32 {
		return fmt.Errorf("%d bytes of glyph data: %w", n, ErrDataOverflow)
	}
	return nil
}

// encodeGlyph renders one glyph and checks that its metrics fit into the
// glyph description.
func encodeGlyph(r Rasterizer, cp rune, radius float64) (GlyphMetrics, []byte, error) {
	g, err := r.Glyph(cp, radius)
	if err != nil {
		return GlyphMetrics{}, nil, fmt.Errorf("glyph %U: %w", cp, err)
	}
	if g.Width < 0 || g.Height < 0 || len(g.Pix) != g.Width*g.Height {
		return GlyphMetrics{}, nil, fmt.Errorf("glyph %U: invalid %dx%d bitmap with %d bytes",
			cp, g.Width, g.Height, len(g.Pix))
	}

	fields := []struct {
		name     string
		val      int
		min, max int
	}{
		{"width", g.Width, 0, math.MaxUint8},
		{"height", g.Height, 0, math.MaxUint8},
		{"lsb", g.Left, math.MinInt8, math.MaxInt8},
		{"tsb", g.Top, math.MinInt8, math.MaxInt8},
		{"advance", g.Advance, math.MinInt8, math.MaxInt8},
	}
	for _, f := range fields {
		if f.val < f.min || f.val > f.max {
			return GlyphMetrics{}, nil, fmt.Errorf("glyph %U: %s %d: %w",
				cp, f.name, f.val, ErrGlyphFieldOverflow)
		}
	}

	m := GlyphMetrics{
		Width:   uint8(g.Width),
		Height:  uint8(g.Height),
		LSB:     int8(g.Left),
		TSB:     int8(g.Top),
		Advance: int8(g.Advance),
	}
	return m, g.Pix, nil
}
