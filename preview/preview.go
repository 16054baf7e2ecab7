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

// Package preview draws all glyphs of a .fnt font side by side, the way
// the display would show them.
package preview

import (
	"image"
	"image/color"
	"image/png"
	"os"

	"golang.org/x/image/draw"

	"seehuhn.de/go/ledfont/fnt"
)

// margin is the number of background pixels left and right of the glyphs.
const margin = 4

// Options control the appearance of a preview.
type Options struct {
	// DisplayHeight is the height of the LED panel, in pixels.
	DisplayHeight int

	// Scale enlarges every LED pixel to a Scale x Scale square.
	// Values below 1 are treated as 1.
	Scale int

	Background color.RGBA
	Fill       color.RGBA
	Outline    color.RGBA
}

// DefaultOptions returns the settings used by the fntconv command: a
// 32 pixel panel, white glyphs with red outlines on a dark gray background.
func DefaultOptions() Options {
	return Options{
		DisplayHeight: 32,
		Scale:         1,
		Background:    color.RGBA{0x22, 0x22, 0x22, 0xFF},
		Fill:          color.RGBA{0xFF, 0xFF, 0xFF, 0xFF},
		Outline:       color.RGBA{0xFF, 0x30, 0x10, 0xFF},
	}
}

// placement is the position of a glyph bitmap in the unscaled preview.
type placement struct {
	idx  int
	x, y int
}

// layout positions the fill glyphs of f next to each other.  The y
// coordinate is the top row of the bitmap.
func layout(f *fnt.Font, displayHeight int) ([]placement, int) {
	nFill := len(f.Codepoints)
	res := make([]placement, 0, nFill)
	x := margin
	for i := range nFill {
		g := f.Glyphs[i]
		res = append(res, placement{
			idx: i,
			x:   x + int(g.LSB),
			y:   displayHeight - int(g.TSB) - int(f.YShift),
		})
		x += int(g.Advance)
	}
	return res, x + margin
}

// Render draws every glyph of f in codepoint order.  In fonts with
// outlines, each outline glyph is drawn first, with the fill glyph on top.
func Render(f *fnt.Font, opt Options) *image.RGBA {
	scale := max(opt.Scale, 1)
	pos, width := layout(f, opt.DisplayHeight)

	img := image.NewRGBA(image.Rect(0, 0, width, opt.DisplayHeight))
	draw.Draw(img, img.Bounds(), image.NewUniform(opt.Background), image.Point{}, draw.Src)

	fill := image.NewUniform(opt.Fill)
	outline := image.NewUniform(opt.Outline)
	for _, p := range pos {
		if f.HasOutline() {
			o := p.idx + len(f.Codepoints)
			dx := int(f.Glyphs[o].LSB) - int(f.Glyphs[p.idx].LSB)
			dy := int(f.Glyphs[p.idx].TSB) - int(f.Glyphs[o].TSB)
			paste(img, f, o, p.x+dx, p.y+dy, outline)
		}
		paste(img, f, p.idx, p.x, p.y, fill)
	}

	if scale == 1 {
		return img
	}
	big := image.NewRGBA(image.Rect(0, 0, width*scale, opt.DisplayHeight*scale))
	draw.NearestNeighbor.Scale(big, big.Bounds(), img, img.Bounds(), draw.Src, nil)
	return big
}

// paste draws glyph i of f in color src, with the top left corner of the
// bitmap at (x, y).
func paste(dst *image.RGBA, f *fnt.Font, i, x, y int, src image.Image) {
	g := f.Glyphs[i]
	if g.Width == 0 || g.Height == 0 {
		return
	}
	mask := &image.Alpha{
		Pix:    f.Bitmap(i),
		Stride: int(g.Width),
		Rect:   image.Rect(0, 0, int(g.Width), int(g.Height)),
	}
	r := mask.Rect.Add(image.Pt(x, y))
	draw.DrawMask(dst, r, src, image.Point{}, mask, image.Point{}, draw.Over)
}

// WritePNG renders f and stores the result as a PNG file.
func WritePNG(fname string, f *fnt.Font, opt Options) (err error) {
	out, err := os.Create(fname)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := out.Close(); err == nil {
			err = cerr
		}
	}()
	return png.Encode(out, Render(f, opt))
}
