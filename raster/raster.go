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

// Package raster converts glyph contours to anti-aliased coverage values.
//
// All coordinates are device coordinates: one unit is one pixel, and the
// y axis points down.  Glyph contours are always treated as closed, both
// for filling and for stroking.
package raster

import (
	"image"
	"math"
	"slices"

	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/geom/vec"
	"seehuhn.de/go/pdf/graphics"
)

// EmitFunc receives the coverage of one scanline.  The coverage slice
// starts at pixel xMin and is only valid for the duration of the call.
type EmitFunc func(y, xMin int, coverage []float32)

// edge is a line segment in device coordinates.
type edge struct {
	x0, y0 float64
	x1, y1 float64
	dxdy   float64 // (x1-x0)/(y1-y0)
}

// Rasterizer computes the fraction of each pixel covered by a filled or
// stroked glyph outline.  Internal buffers grow as needed and are reused
// across calls.
//
// A Rasterizer is not safe for concurrent use.
type Rasterizer struct {
	// Clip bounds output to this rectangle.  Coordinates must be integers.
	Clip rect.Rect

	// Flatness is the curve approximation tolerance in pixels.
	Flatness float64

	// Width is the stroke width in pixels.
	Width float64

	// Join is the style used for stroke corners.
	Join graphics.LineJoinStyle

	// MiterLimit caps the length of miter joins.  Must be at least 1.
	MiterLimit float64

	cover     []float32
	area      []float32
	edges     []edge
	rowActive []bool
	crossings []float64

	bboxEmpty bool
	bboxXMin  float64
	bboxXMax  float64
	bboxYMin  float64
	bboxYMax  float64

	segs          []strokeSegment
	segsOffsets   []int
	stroke        []vec.Vec2
	strokeOffsets []int
}

// NewRasterizer returns a Rasterizer for the given clip rectangle, using
// round joins for strokes.
func NewRasterizer(clip rect.Rect) *Rasterizer {
	r := &Rasterizer{}
	r.Reset(clip)
	return r
}

// Reset restores the default parameters and sets a new clip rectangle,
// keeping the capacity of the internal buffers.
func (r *Rasterizer) Reset(clip rect.Rect) {
	r.Clip = clip
	r.Flatness = defaultFlatness
	r.Width = 1
	r.Join = graphics.LineJoinRound
	r.MiterLimit = defaultMiterLimit
}

// Fill rasterizes p using the nonzero winding rule.  Subpaths are closed
// implicitly.
func (r *Rasterizer) Fill(p path.Path, emit EmitFunc) {
	r.startEdges()

	var current, start vec.Vec2
	open := false
	for cmd, pts := range p {
		switch cmd {
		case path.CmdMoveTo:
			if open {
				r.addEdge(current, start)
			}
			current = pts[0]
			start = current
			open = true
		case path.CmdLineTo:
			r.addEdge(current, pts[0])
			current = pts[0]
		case path.CmdQuadTo:
			r.flattenQuadratic(current, pts[0], pts[1], r.addEdge)
			current = pts[1]
		case path.CmdCubeTo:
			r.flattenCubic(current, pts[0], pts[1], pts[2], r.addEdge)
			current = pts[2]
		case path.CmdClose:
			r.addEdge(current, start)
			current = start
			open = false
		}
	}
	if open {
		r.addEdge(current, start)
	}

	r.fillEdges(emit)
}

// FillAlpha fills p and merges the result into dst.
func (r *Rasterizer) FillAlpha(dst *image.Alpha, p path.Path) {
	r.Fill(p, Accumulate(dst))
}

// StrokeAlpha strokes p and merges the result into dst.
func (r *Rasterizer) StrokeAlpha(dst *image.Alpha, p path.Path) {
	r.Stroke(p, Accumulate(dst))
}

// Accumulate returns an EmitFunc which writes coverage into dst.  Where
// dst already has a value, the larger of the two is kept, so that several
// paths can be combined into one mask.
func Accumulate(dst *image.Alpha) EmitFunc {
	return func(y, xMin int, coverage []float32) {
		if y < dst.Rect.Min.Y || y >= dst.Rect.Max.Y {
			return
		}
		for i, c := range coverage {
			x := xMin + i
			if x < dst.Rect.Min.X || x >= dst.Rect.Max.X {
				continue
			}
			v := uint8(math.Round(float64(min(max(c, 0), 1)) * 255))
			k := dst.PixOffset(x, y)
			if v > dst.Pix[k] {
				dst.Pix[k] = v
			}
		}
	}
}

// flattenQuadratic approximates a quadratic Bézier curve by line segments.
func (r *Rasterizer) flattenQuadratic(p0, p1, p2 vec.Vec2, emit func(from, to vec.Vec2)) {
	// deviation from the chord: (P0 - 2*P1 + P2) / 4
	dev := p0.Sub(p1.Mul(2)).Add(p2).Mul(0.25).Length()

	n := 1
	if dev > r.Flatness {
		n = int(math.Ceil(math.Sqrt(dev / r.Flatness)))
	}

	prev := p0
	for i := 1; i <= n; i++ {
		t := float64(i) / float64(n)
		s := 1 - t
		pt := p0.Mul(s * s).Add(p1.Mul(2 * s * t)).Add(p2.Mul(t * t))
		emit(prev, pt)
		prev = pt
	}
}

// flattenCubic approximates a cubic Bézier curve by line segments, using
// Wang's formula for the number of segments.
func (r *Rasterizer) flattenCubic(p0, p1, p2, p3 vec.Vec2, emit func(from, to vec.Vec2)) {
	d1 := p0.Sub(p1.Mul(2)).Add(p2).Length()
	d2 := p1.Sub(p2.Mul(2)).Add(p3).Length()

	n := 1
	if m := max(d1, d2); m > 0 {
		if nf := math.Sqrt(3 * m / (4 * r.Flatness)); nf > 1 {
			n = int(math.Ceil(nf))
		}
	}

	prev := p0
	for i := 1; i <= n; i++ {
		t := float64(i) / float64(n)
		s := 1 - t
		pt := p0.Mul(s * s * s).
			Add(p1.Mul(3 * s * s * t)).
			Add(p2.Mul(3 * s * t * t)).
			Add(p3.Mul(t * t * t))
		emit(prev, pt)
		prev = pt
	}
}

func (r *Rasterizer) startEdges() {
	r.edges = r.edges[:0]
	r.bboxEmpty = true
}

// addEdge appends a line segment to the edge list.  Horizontal segments
// do not contribute to coverage and are dropped.
func (r *Rasterizer) addEdge(p0, p1 vec.Vec2) {
	dy := p1.Y - p0.Y
	if dy > -horizontalEdgeThreshold && dy < horizontalEdgeThreshold {
		return
	}
	r.edges = append(r.edges, edge{
		x0: p0.X, y0: p0.Y,
		x1: p1.X, y1: p1.Y,
		dxdy: (p1.X - p0.X) / dy,
	})

	xMin, xMax := min(p0.X, p1.X), max(p0.X, p1.X)
	yMin, yMax := min(p0.Y, p1.Y), max(p0.Y, p1.Y)
	if r.bboxEmpty {
		r.bboxXMin, r.bboxXMax = xMin, xMax
		r.bboxYMin, r.bboxYMax = yMin, yMax
		r.bboxEmpty = false
		return
	}
	r.bboxXMin = min(r.bboxXMin, xMin)
	r.bboxXMax = max(r.bboxXMax, xMax)
	r.bboxYMin = min(r.bboxYMin, yMin)
	r.bboxYMax = max(r.bboxYMax, yMax)
}

// Coverage is accumulated per pixel in two buffers:
//
//	cover: signed vertical extent of the edges crossing the pixel
//	area:  the same, weighted by the uncovered fraction to the pixel's left
//
// Integrating a scanline from left to right, the coverage of pixel i is
// sum(cover[0:i]) + area[i].  Its absolute value, clamped to 1, is the
// nonzero-rule coverage.

// fillEdges rasterizes the collected edge list.
func (r *Rasterizer) fillEdges(emit EmitFunc) {
	if len(r.edges) == 0 {
		return
	}

	xMin := max(int(math.Floor(r.bboxXMin)), int(r.Clip.LLx))
	xMax := min(int(math.Floor(r.bboxXMax))+1, int(r.Clip.URx))
	yMin := max(int(math.Floor(r.bboxYMin)), int(r.Clip.LLy))
	yMax := min(int(math.Floor(r.bboxYMax))+1, int(r.Clip.URy))
	if xMin >= xMax || yMin >= yMax {
		return
	}
	width := xMax - xMin
	height := yMax - yMin

	size := width * height
	r.cover = slices.Grow(r.cover[:0], size)[:size]
	r.area = slices.Grow(r.area[:0], size)[:size]
	clear(r.cover)
	clear(r.area)

	r.rowActive = slices.Grow(r.rowActive[:0], height)[:height]
	clear(r.rowActive)

	for i := range r.edges {
		e := &r.edges[i]
		top := max(int(math.Floor(min(e.y0, e.y1))), yMin)
		bot := min(int(math.Floor(max(e.y0, e.y1)))+1, yMax)
		for y := top; y < bot; y++ {
			row := y - yMin
			lo := row * width
			if r.accumulateEdge(e, y, r.cover[lo:lo+width], r.area[lo:lo+width], xMin, xMax) {
				r.rowActive[row] = true
			}
		}
	}

	for row := range height {
		if !r.rowActive[row] {
			continue
		}
		lo := row * width
		coverage := r.cover[lo : lo+width]
		integrateNonZero(coverage, r.area[lo:lo+width])
		if trimmed, offset := trimZeros(coverage); trimmed != nil {
			emit(yMin+row, xMin+offset, trimmed)
		}
	}
}

// accumulateEdge adds the contribution of e within scanline y to the
// cover and area buffers, which are indexed by x - bboxXMin.  The return
// value reports whether the edge intersects the scanline.
func (r *Rasterizer) accumulateEdge(e *edge, y int, cover, area []float32, bboxXMin, bboxXMax int) bool {
	yTop := max(float64(y), min(e.y0, e.y1))
	yBot := min(float64(y+1), max(e.y0, e.y1))
	if yBot <= yTop {
		return false
	}

	sign := float32(1)
	if e.y1 < e.y0 {
		sign = -1
	}

	xLeft := e.x0 + e.dxdy*(yTop-e.y0)
	xRight := e.x0 + e.dxdy*(yBot-e.y0)
	if xLeft > xRight {
		xLeft, xRight = xRight, xLeft
	}
	pixLeft := int(math.Floor(xLeft))
	pixRight := int(math.Floor(xRight))

	if pixLeft >= bboxXMax {
		return true
	}
	if pixLeft == pixRight || pixRight < bboxXMin {
		r.addSegment(e, yTop, yBot, sign, cover, area, bboxXMin, bboxXMax)
		return true
	}

	// The edge crosses several pixel columns; split it where it crosses
	// integer x values.
	r.crossings = append(r.crossings[:0], yTop, yBot)
	dydx := 1 / e.dxdy
	for x := pixLeft + 1; x <= pixRight; x++ {
		yx := e.y0 + dydx*(float64(x)-e.x0)
		if yx > yTop && yx < yBot {
			r.crossings = append(r.crossings, yx)
		}
	}
	slices.Sort(r.crossings)
	for i := range len(r.crossings) - 1 {
		if r.crossings[i+1] > r.crossings[i] {
			r.addSegment(e, r.crossings[i], r.crossings[i+1], sign, cover, area, bboxXMin, bboxXMax)
		}
	}
	return true
}

// addSegment adds the part of e between y0 and y1, which must lie within
// a single pixel column.
func (r *Rasterizer) addSegment(e *edge, y0, y1 float64, sign float32, cover, area []float32, bboxXMin, bboxXMax int) {
	c := sign * float32(y1-y0)

	xMid := e.x0 + e.dxdy*((y0+y1)/2-e.y0)
	pix := int(math.Floor(xMid))
	switch {
	case pix < bboxXMin:
		cover[0] += c
		area[0] += c
	case pix < bboxXMax:
		k := pix - bboxXMin
		cover[k] += c
		area[k] += c * float32(1-(xMid-float64(pix)))
	}
}

// integrateNonZero turns the accumulated cover and area values of one
// scanline into nonzero-rule coverage, in place.
func integrateNonZero(cover, area []float32) {
	var acc float32
	for i := range cover {
		raw := acc + area[i]
		acc += cover[i]
		if raw < 0 {
			raw = -raw
		}
		cover[i] = min(raw, 1)
	}
}

// trimZeros returns the part of coverage between the first and the last
// non-zero value, together with its offset.
func trimZeros(coverage []float32) ([]float32, int) {
	lo, hi := 0, len(coverage)
	for lo < hi && coverage[lo] == 0 {
		lo++
	}
	if lo == hi {
		return nil, 0
	}
	for coverage[hi-1] == 0 {
		hi--
	}
	return coverage[lo:hi], lo
}

const (
	// defaultFlatness is below the threshold of visual perception.
	defaultFlatness = 0.25

	// defaultMiterLimit matches the PDF/PostScript default.
	defaultMiterLimit = 10.0

	horizontalEdgeThreshold = 1e-10
	zeroLengthThreshold     = 1e-10
	collinearityThreshold   = 1e-6

	// cuspCosineThreshold detects contours doubling back on themselves,
	// cos(179.43°) ≈ -0.9999.
	cuspCosineThreshold = -0.9999
)
