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

// Package face renders the glyphs of TrueType and OpenType fonts to
// bitmaps.
package face

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"iter"
	"math"
	"os"

	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/geom/vec"
	"seehuhn.de/go/pdf/graphics"
	"seehuhn.de/go/sfnt"
	"seehuhn.de/go/sfnt/glyph"

	"seehuhn.de/go/ledfont/fnt"
	"seehuhn.de/go/ledfont/internal/logging"
	"seehuhn.de/go/ledfont/raster"
)

// ErrMissingGlyph is returned for codepoints which the font does not map
// to a glyph.
var ErrMissingGlyph = errors.New("glyph not in font")

// codeMap is the part of a cmap subtable we use.
type codeMap interface {
	Lookup(r rune) glyph.ID
	CodeRange() (low, high rune)
}

// Face renders glyphs of one font at a selectable size.
//
// A Face is not safe for concurrent use.
type Face struct {
	// Join is the corner style of outline glyphs.
	Join graphics.LineJoinStyle

	// MiterLimit bounds the length of miter joins, relative to the outline
	// width.
	MiterLimit float64

	font  *sfnt.Font
	cmap  codeMap
	size  int
	scale float64 // pixels per font design unit

	r    *raster.Rasterizer
	cmds []path.Command
	pts  []vec.Vec2
}

// Open loads the font file fname.
func Open(fname string) (*Face, error) {
	data, err := os.ReadFile(fname)
	if err != nil {
		return nil, err
	}
	f, err := New(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", fname, err)
	}
	return f, nil
}

// New creates a Face from the contents of a font file.  The initial size
// is 16 pixels per em.
func New(data []byte) (*Face, error) {
	font, err := sfnt.Read(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	if font.Outlines == nil {
		return nil, errors.New("font has no glyph outlines")
	}
	subtable, err := font.CMapTable.GetBest()
	if err != nil {
		return nil, fmt.Errorf("no usable character map: %w", err)
	}

	f := &Face{
		Join:       graphics.LineJoinRound,
		MiterLimit: 4,
		font:       font,
		cmap:       subtable,
		r:          raster.NewRasterizer(rect.Rect{}),
	}
	f.SetSize(16 * 64)

	logging.Logger().Debug("font loaded",
		"family", font.FamilyName, "unitsPerEm", font.UnitsPerEm)
	return f, nil
}

// FamilyName returns the font family name.
func (f *Face) FamilyName() string {
	return f.font.FamilyName
}

// SetSize sets the font size, in 1/64 pixel per em.
func (f *Face) SetSize(size int) {
	f.size = size
	f.scale = float64(size) / 64 / float64(f.font.UnitsPerEm)
}

// Size returns the current font size, in 1/64 pixel per em.
func (f *Face) Size() int {
	return f.size
}

// Linespace returns the distance between consecutive baselines at the
// current size, in pixels.
func (f *Face) Linespace() int {
	h := float64(f.font.Ascent) - float64(f.font.Descent) + float64(f.font.LineGap)
	return int(math.Round(h * f.scale))
}

// Codepoints lists the codepoints the font has glyphs for, in increasing
// order.
func (f *Face) Codepoints() iter.Seq[rune] {
	return func(yield func(rune) bool) {
		low, high := f.cmap.CodeRange()
		for cp := max(low, 1); cp <= high; cp++ {
			if f.cmap.Lookup(cp) == 0 {
				continue
			}
			if !yield(cp) {
				return
			}
		}
	}
}

// Glyph renders the glyph for cp at the current size.  If outlineRadius is
// positive, the glyph is widened by a stroke of this radius, in pixels,
// along its contours.
//
// The bitmap is cropped to the pixels with non-zero coverage.  Glyphs
// without any ink, like the space, give an empty bitmap.
func (f *Face) Glyph(cp rune, outlineRadius float64) (*fnt.Bitmap, error) {
	gid := f.cmap.Lookup(cp)
	if gid == 0 {
		return nil, fmt.Errorf("%U: %w", cp, ErrMissingGlyph)
	}

	g := &fnt.Bitmap{
		Advance: int(math.Round(float64(f.font.GlyphWidth(gid)) * f.scale)),
	}

	if !f.loadOutline(gid) {
		return g, nil
	}

	// device space bounding box of the control points, rounded outwards
	pad := max(outlineRadius, 0)
	if f.Join == graphics.LineJoinMiter {
		pad *= max(f.MiterLimit, 1)
	}
	bbox := f.controlBox()
	x0 := int(math.Floor(bbox.LLx - pad))
	y0 := int(math.Floor(bbox.LLy - pad))
	x1 := int(math.Ceil(bbox.URx + pad))
	y1 := int(math.Ceil(bbox.URy + pad))
	if x1 <= x0 || y1 <= y0 {
		return g, nil
	}

	shift := vec.Vec2{X: float64(x0), Y: float64(y0)}
	for i := range f.pts {
		f.pts[i] = f.pts[i].Sub(shift)
	}

	w, h := x1-x0, y1-y0
	mask := image.NewAlpha(image.Rect(0, 0, w, h))
	f.r.Reset(rect.Rect{URx: float64(w), URy: float64(h)})
	f.r.FillAlpha(mask, f.outline())
	if outlineRadius > 0 {
		f.r.Width = 2 * outlineRadius
		f.r.Join = f.Join
		f.r.MiterLimit = max(f.MiterLimit, 1)
		f.r.StrokeAlpha(mask, f.outline())
	}

	ink := inkBounds(mask)
	if ink.Empty() {
		return g, nil
	}
	g.Width = ink.Dx()
	g.Height = ink.Dy()
	g.Left = x0 + ink.Min.X
	g.Top = -(y0 + ink.Min.Y)
	g.Pix = make([]byte, 0, g.Width*g.Height)
	for y := ink.Min.Y; y < ink.Max.Y; y++ {
		row := mask.PixOffset(ink.Min.X, y)
		g.Pix = append(g.Pix, mask.Pix[row:row+g.Width]...)
	}
	return g, nil
}

// loadOutline converts the outline of glyph gid to device coordinates,
// with the y axis pointing down.  The result is stored in f.cmds and
// f.pts.  The return value reports whether the glyph has any contours.
func (f *Face) loadOutline(gid glyph.ID) bool {
	f.cmds = f.cmds[:0]
	f.pts = f.pts[:0]
	for cmd, pts := range f.font.Outlines.Path(gid) {
		f.cmds = append(f.cmds, cmd)
		for _, p := range pts {
			f.pts = append(f.pts, vec.Vec2{X: p.X * f.scale, Y: -p.Y * f.scale})
		}
	}
	return len(f.pts) > 0
}

func (f *Face) controlBox() rect.Rect {
	b := rect.Rect{LLx: f.pts[0].X, LLy: f.pts[0].Y, URx: f.pts[0].X, URy: f.pts[0].Y}
	for _, p := range f.pts[1:] {
		b.LLx = min(b.LLx, p.X)
		b.LLy = min(b.LLy, p.Y)
		b.URx = max(b.URx, p.X)
		b.URy = max(b.URy, p.Y)
	}
	return b
}

// outline iterates over the glyph outline stored in f.cmds and f.pts.
func (f *Face) outline() path.Path {
	return func(yield func(path.Command, []vec.Vec2) bool) {
		k := 0
		for _, cmd := range f.cmds {
			n := numPoints(cmd)
			if !yield(cmd, f.pts[k:k+n]) {
				return
			}
			k += n
		}
	}
}

func numPoints(cmd path.Command) int {
	switch cmd {
	case path.CmdMoveTo, path.CmdLineTo:
		return 1
	case path.CmdQuadTo:
		return 2
	case path.CmdCubeTo:
		return 3
	default:
		return 0
	}
}

// inkBounds returns the smallest rectangle containing all non-zero pixels
// of m.
func inkBounds(m *image.Alpha) image.Rectangle {
	b := m.Bounds()
	res := image.Rectangle{}
	first := true
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			if m.Pix[m.PixOffset(x, y)] == 0 {
				continue
			}
			if first {
				res = image.Rect(x, y, x+1, y+1)
				first = false
				continue
			}
			res.Min.X = min(res.Min.X, x)
			res.Min.Y = min(res.Min.Y, y)
			res.Max.X = max(res.Max.X, x+1)
			res.Max.Y = max(res.Max.Y, y+1)
		}
	}
	return res
}
