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
	"math"

	"seehuhn.de/go/ledfont/internal/logging"
)

// Bitmap is a rendered glyph.
type Bitmap struct {
	Width, Height int

	// Left is the distance from the pen position to the leftmost column.
	Left int

	// Top is the distance from the baseline up to the topmost row.
	Top int

	Advance int

	// Pix holds Width*Height coverage values, row by row, top row first.
	Pix []byte
}

// A Rasterizer renders glyphs of one font.
type Rasterizer interface {
	// SetSize selects the font size, in 1/64 pixel per em.
	SetSize(size int)

	// Glyph renders the glyph for codepoint cp at the current size.  If
	// outlineRadius is positive, the glyph is widened by a stroke of that
	// radius (in pixels) around its contours.
	Glyph(cp rune, outlineRadius float64) (*Bitmap, error)
}

// MinSize is the smallest font size Tune will try, in 1/64 pixel.
const MinSize = 64

// TuneConfig controls the search for a font size.
type TuneConfig struct {
	DisplayWidth  int // pixels
	DisplayHeight int // pixels

	// TargetHeight is the desired height, in pixels, of the bounding box
	// of the numerals.
	TargetHeight int

	VerticalIterations   int
	HorizontalIterations int

	// VerticalGain and HorizontalGain give the size change, in 1/64 pixel
	// per em, for each pixel of error.
	VerticalGain   int
	HorizontalGain int
}

// DefaultTuneConfig returns the settings for a 128x32 display.
func DefaultTuneConfig() TuneConfig {
	return TuneConfig{
		DisplayWidth:         128,
		DisplayHeight:        32,
		TargetHeight:         30,
		VerticalIterations:   32,
		HorizontalIterations: 16,
		VerticalGain:         32,
		HorizontalGain:       32,
	}
}

// TuneResult is the outcome of Tune.
type TuneResult struct {
	Size int // 1/64 pixel per em

	// YShift moves the numerals to the vertical centre of the display.
	YShift int

	// BBHeight is the height of the numerals' bounding box at Size.
	BBHeight int

	// Width is the width of the widest time string "00:00" at Size.
	Width int

	VerticalIters   int
	HorizontalIters int
}

// Tune searches for the font size at which the numerals fill
// cfg.TargetHeight pixels, and then shrinks the font if a time string
// "00:00" does not fit on the display.
//
// If the search does not converge within the configured number of
// iterations, the last size tried is returned.
func Tune(r Rasterizer, cfg TuneConfig) (*TuneResult, error) {
	if cfg.TargetHeight <= 0 || cfg.DisplayWidth <= 0 || cfg.DisplayHeight <= 0 ||
		cfg.VerticalIterations <= 0 || cfg.VerticalGain <= 0 || cfg.HorizontalGain <= 0 {
		return nil, fmt.Errorf("invalid tuning configuration %+v", cfg)
	}
	log := logging.Logger()

	res := &TuneResult{}
	size := max(cfg.TargetHeight*64, MinSize)
	var m *probeMetrics
	for {
		var err error
		m, err = probe(r, size)
		if err != nil {
			return nil, err
		}
		res.VerticalIters++

		bbHeight := m.up - m.down
		diff := cfg.TargetHeight - bbHeight
		log.Debug("vertical tuning",
			"size", float64(size)/64, "height", bbHeight, "target", cfg.TargetHeight)
		if diff == 0 || res.VerticalIters >= cfg.VerticalIterations {
			break
		}
		next := max(size+diff*cfg.VerticalGain, MinSize)
		if next == size {
			break
		}
		size = next
	}

	for res.HorizontalIters < cfg.HorizontalIterations {
		margin := cfg.DisplayWidth - m.width()
		if margin > 0 {
			break
		}
		// margin-1 is negative, so the font always shrinks
		next := max(size+(margin-1)*cfg.HorizontalGain, MinSize)
		if next == size {
			break
		}
		size = next

		var err error
		m, err = probe(r, size)
		if err != nil {
			return nil, err
		}
		res.HorizontalIters++
		log.Debug("horizontal tuning",
			"size", float64(size)/64, "width", m.width(), "display", cfg.DisplayWidth)
	}

	res.Size = size
	res.BBHeight = m.up - m.down
	res.YShift = int(math.Round(float64(cfg.DisplayHeight-m.up-m.down) / 2))
	res.Width = m.width()

	log.Info("font size tuned",
		"size", float64(res.Size)/64, "height", res.BBHeight, "width", res.Width,
		"yshift", res.YShift)
	return res, nil
}

// probeMetrics summarizes the numerals at one size.
type probeMetrics struct {
	up, down    int // highest and lowest pixel row, relative to the baseline
	maxDigitAdv int
	colonAdv    int
}

// width is the width of the string "00:00" using the widest digit.
func (m *probeMetrics) width() int {
	return 4*m.maxDigitAdv + m.colonAdv
}

func probe(r Rasterizer, size int) (*probeMetrics, error) {
	r.SetSize(size)

	m := &probeMetrics{}
	first := true
	for _, cp := range Numerals {
		g, err := r.Glyph(cp, 0)
		if err != nil {
			return nil, fmt.Errorf("size %g: %w", float64(size)/64, err)
		}

		up, down := g.Top, g.Top-g.Height
		if first {
			m.up, m.down = up, down
			first = false
		} else {
			m.up = max(m.up, up)
			m.down = min(m.down, down)
		}

		if cp == ':' {
			m.colonAdv = g.Advance
		} else {
			m.maxDigitAdv = max(m.maxDigitAdv, g.Advance)
		}
	}
	return m, nil
}
