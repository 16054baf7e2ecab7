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

package raster

import (
	"math"

	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/vec"
	"seehuhn.de/go/pdf/graphics"
)

// strokeSegment is a flattened piece of a contour.
type strokeSegment struct {
	A, B vec.Vec2
	T    vec.Vec2 // unit tangent, A→B
	N    vec.Vec2 // unit normal, 90° counter-clockwise from T
}

// Stroke rasterizes a band of total width r.Width centred on the contours
// of p.  Every subpath is treated as closed, so there are no line caps.
// Overlapping parts of the band are painted once.
func (r *Rasterizer) Stroke(p path.Path, emit EmitFunc) {
	r.flattenContours(p)

	r.stroke = r.stroke[:0]
	r.strokeOffsets = r.strokeOffsets[:0]
	for i := range r.segsOffsets {
		start := len(r.stroke)
		r.strokeContour(r.contour(i))
		if len(r.stroke)-start >= 3 {
			r.strokeOffsets = append(r.strokeOffsets, start)
		} else {
			r.stroke = r.stroke[:start]
		}
	}

	r.startEdges()
	for i, start := range r.strokeOffsets {
		end := len(r.stroke)
		if i+1 < len(r.strokeOffsets) {
			end = r.strokeOffsets[i+1]
		}
		poly := r.stroke[start:end]
		for j := 1; j < len(poly); j++ {
			r.addEdge(poly[j-1], poly[j])
		}
		r.addEdge(poly[len(poly)-1], poly[0])
	}
	r.fillEdges(emit)
}

// contour returns the segments of flattened contour i.
func (r *Rasterizer) contour(i int) []strokeSegment {
	end := len(r.segs)
	if i+1 < len(r.segsOffsets) {
		end = r.segsOffsets[i+1]
	}
	return r.segs[r.segsOffsets[i]:end]
}

// flattenContours splits p into closed contours of line segments.  The
// results are stored in r.segs, with r.segsOffsets marking where each
// contour starts.  Contours without any extent are dropped.
func (r *Rasterizer) flattenContours(p path.Path) {
	r.segs = r.segs[:0]
	r.segsOffsets = r.segsOffsets[:0]

	var current, start vec.Vec2
	first := 0
	open := false
	closeContour := func() {
		if !open {
			return
		}
		if current != start {
			r.addStrokeSegment(current, start)
		}
		if len(r.segs) > first {
			r.segsOffsets = append(r.segsOffsets, first)
		}
		first = len(r.segs)
		current = start
		open = false
	}

	for cmd, pts := range p {
		switch cmd {
		case path.CmdMoveTo:
			closeContour()
			current = pts[0]
			start = current
			first = len(r.segs)
			open = true
		case path.CmdLineTo:
			r.addStrokeSegment(current, pts[0])
			current = pts[0]
		case path.CmdQuadTo:
			r.flattenQuadratic(current, pts[0], pts[1], r.addStrokeSegment)
			current = pts[1]
		case path.CmdCubeTo:
			r.flattenCubic(current, pts[0], pts[1], pts[2], r.addStrokeSegment)
			current = pts[2]
		case path.CmdClose:
			closeContour()
		}
	}
	closeContour()
}

// addStrokeSegment appends a segment to r.segs, skipping segments of
// (almost) zero length.
func (r *Rasterizer) addStrokeSegment(a, b vec.Vec2) {
	d := b.Sub(a)
	length := d.Length()
	if length < zeroLengthThreshold {
		return
	}
	t := d.Mul(1 / length)
	r.segs = append(r.segs, strokeSegment{A: a, B: b, T: t, N: vec.Vec2{X: -t.Y, Y: t.X}})
}

// strokeContour appends the outline of the band around one closed contour
// to r.stroke, as a single polygon: the +N side walking forward, followed
// by the -N side walking backward.  Corner k joins segs[k] to
// segs[(k+1)%n].
func (r *Rasterizer) strokeContour(segs []strokeSegment) {
	n := len(segs)
	if n == 0 {
		return
	}
	d := r.Width / 2

	r.stroke = append(r.stroke, segs[0].A.Add(segs[0].N.Mul(d)))
	for k := range n {
		r.addCorner(&segs[k], &segs[(k+1)%n], d, true)
	}
	for k := n - 1; k >= 0; k-- {
		r.addCorner(&segs[k], &segs[(k+1)%n], d, false)
	}
	r.stroke = append(r.stroke, segs[0].A.Sub(segs[0].N.Mul(d)))
}

// addCorner adds the offset points for the corner where prev meets next.
// On the +N side the corner is visited from prev to next, on the -N side
// from next to prev.
func (r *Rasterizer) addCorner(prev, next *strokeSegment, d float64, positive bool) {
	P := next.A
	sinTheta := prev.T.X*next.T.Y - prev.T.Y*next.T.X

	if math.Abs(sinTheta) < collinearityThreshold && prev.T.Dot(next.T) > 0 {
		if positive {
			r.stroke = append(r.stroke, prev.B.Add(prev.N.Mul(d)), next.A.Add(next.N.Mul(d)))
		} else {
			r.stroke = append(r.stroke, next.A.Sub(next.N.Mul(d)), prev.B.Sub(prev.N.Mul(d)))
		}
		return
	}

	// A right turn (sinTheta > 0) has its inner side on +N.
	inner := (sinTheta > 0) == positive
	if inner {
		r.addInnerCorner(P, prev, next, d, positive)
		return
	}
	if positive {
		r.stroke = append(r.stroke, prev.B.Add(prev.N.Mul(d)))
		r.addJoin(P, prev.T, next.T, d, true)
		r.stroke = append(r.stroke, next.A.Add(next.N.Mul(d)))
	} else {
		r.stroke = append(r.stroke, next.A.Sub(next.N.Mul(d)))
		r.addJoin(P, prev.T, next.T, d, false)
		r.stroke = append(r.stroke, prev.B.Sub(prev.N.Mul(d)))
	}
}

// addInnerCorner adds the intersection of the two inner offset lines at
// P.  If the intersection is ill-defined, both offset points are used.
func (r *Rasterizer) addInnerCorner(P vec.Vec2, prev, next *strokeSegment, d float64, positive bool) {
	cosTheta := prev.T.Dot(next.T)
	halfAngle := math.Sqrt((1 + cosTheta) / 2)
	dir := prev.N.Add(next.N)
	if !positive {
		dir = dir.Mul(-1)
	}
	if dirLen := dir.Length(); cosTheta < 1-1e-9 && halfAngle > 1e-9 && dirLen > 1e-9 {
		r.stroke = append(r.stroke, P.Add(dir.Mul(d/(halfAngle*dirLen))))
		return
	}
	if positive {
		r.stroke = append(r.stroke, P.Add(prev.N.Mul(d)), P.Add(next.N.Mul(d)))
	} else {
		r.stroke = append(r.stroke, P.Sub(next.N.Mul(d)), P.Sub(prev.N.Mul(d)))
	}
}

// addJoin adds the join geometry on the outer side of the corner at P,
// where the tangent turns from T1 to T2.
func (r *Rasterizer) addJoin(P, T1, T2 vec.Vec2, d float64, positive bool) {
	cosTheta := T1.Dot(T2)
	sinTheta := T1.X*T2.Y - T1.Y*T2.X

	N1 := vec.Vec2{X: -T1.Y, Y: T1.X}
	N2 := vec.Vec2{X: -T2.Y, Y: T2.X}

	if cosTheta < cuspCosineThreshold {
		// The contour doubles back: go around P on a half circle.
		if positive {
			r.addArc(P, d, N1, -math.Pi)
		} else {
			r.addArc(P, d, N2.Mul(-1), -math.Pi)
		}
		return
	}

	switch r.Join {
	case graphics.LineJoinMiter:
		// The miter length relative to the width is 1/cos(θ/2).
		sinHalf := math.Sqrt((1 + cosTheta) / 2)
		if sinHalf > 0 && 1/sinHalf <= r.MiterLimit+1e-10 {
			bisector := N1.Add(N2)
			if !positive {
				bisector = bisector.Mul(-1)
			}
			if l := bisector.Length(); l > zeroLengthThreshold {
				r.stroke = append(r.stroke, P.Add(bisector.Mul(d/(sinHalf*l))))
			}
		}
		// if the limit is exceeded, fall back to a bevel

	case graphics.LineJoinBevel:
		// the two offset points are connected directly

	default:
		angle := math.Acos(max(-1, min(1, cosTheta)))
		if sinTheta > 0 {
			angle = -angle
		}
		if positive {
			r.addArc(P, d, N1, -angle)
		} else {
			r.addArc(P, d, N2.Mul(-1), angle)
		}
	}
}

// addArc adds the interior points of a circular arc around center,
// starting in direction startDir and sweeping by the given angle
// (positive is counter-clockwise in a y-up system).  The start point is
// not added, the end point is.
func (r *Rasterizer) addArc(center vec.Vec2, radius float64, startDir vec.Vec2, sweep float64) {
	n := 1
	if radius > r.Flatness {
		// sagitta of a chord over angle θ is radius*(1 - cos(θ/2))
		step := 2 * math.Acos(1-r.Flatness/radius)
		if step <= 0 || math.IsNaN(step) {
			step = math.Pi / 4
		}
		n = max(int(math.Ceil(math.Abs(sweep)/step)), 1)
	}

	dt := sweep / float64(n)
	for i := 1; i <= n; i++ {
		sin, cos := math.Sincos(float64(i) * dt)
		dir := vec.Vec2{
			X: startDir.X*cos - startDir.Y*sin,
			Y: startDir.X*sin + startDir.Y*cos,
		}
		r.stroke = append(r.stroke, center.Add(dir.Mul(radius)))
	}
}
