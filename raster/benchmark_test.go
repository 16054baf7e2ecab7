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
	"fmt"
	"image"
	"image/color"
	"testing"

	"golang.org/x/image/vector"

	"seehuhn.de/go/geom/rect"
)

// Glyph sizes on an LED panel are small, so the benchmarks stay in the
// range of a few dozen pixels.
var benchSizes = []int{16, 32, 64}

// BenchmarkFillO fills an "O" shape.
func BenchmarkFillO(b *testing.B) {
	for _, size := range benchSizes {
		b.Run(fmt.Sprintf("%dx%d", size, size), func(b *testing.B) {
			clip := rect.Rect{URx: float64(size), URy: float64(size)}
			r := NewRasterizer(clip)
			dst := image.NewAlpha(image.Rect(0, 0, size, size))

			c := float64(size) / 2
			o := concat(circle(c, c, float64(size)*0.45, false), circle(c, c, float64(size)*0.30, true))

			b.ReportAllocs()
			for b.Loop() {
				clear(dst.Pix)
				r.FillAlpha(dst, o)
			}
		})
	}
}

// BenchmarkStrokeO strokes the same shape, as for outline glyphs.
func BenchmarkStrokeO(b *testing.B) {
	for _, size := range benchSizes {
		b.Run(fmt.Sprintf("%dx%d", size, size), func(b *testing.B) {
			clip := rect.Rect{URx: float64(size), URy: float64(size)}
			r := NewRasterizer(clip)
			r.Width = 2
			dst := image.NewAlpha(image.Rect(0, 0, size, size))

			c := float64(size) / 2
			o := concat(circle(c, c, float64(size)*0.4, false), circle(c, c, float64(size)*0.25, true))

			b.ReportAllocs()
			for b.Loop() {
				clear(dst.Pix)
				r.StrokeAlpha(dst, o)
			}
		})
	}
}

// BenchmarkVectorO fills the "O" shape with x/image/vector, for comparison.
func BenchmarkVectorO(b *testing.B) {
	for _, size := range benchSizes {
		b.Run(fmt.Sprintf("%dx%d", size, size), func(b *testing.B) {
			z := vector.NewRasterizer(size, size)
			dst := image.NewAlpha(image.Rect(0, 0, size, size))
			src := image.NewUniform(color.Alpha{A: 255})

			c := float32(size) / 2
			b.ReportAllocs()
			for b.Loop() {
				z.Reset(size, size)
				vectorCircle(z, c, c, float32(size)*0.45, false)
				vectorCircle(z, c, c, float32(size)*0.30, true)
				z.Draw(dst, dst.Bounds(), src, image.Point{})
			}
		})
	}
}

func vectorCircle(z *vector.Rasterizer, cx, cy, r float32, clockwise bool) {
	const k = 0.5522847498
	kr := k * r
	sy := float32(1)
	if clockwise {
		sy = -1
	}
	z.MoveTo(cx+r, cy)
	z.CubeTo(cx+r, cy+sy*kr, cx+kr, cy+sy*r, cx, cy+sy*r)
	z.CubeTo(cx-kr, cy+sy*r, cx-r, cy+sy*kr, cx-r, cy)
	z.CubeTo(cx-r, cy-sy*kr, cx-kr, cy-sy*r, cx, cy-sy*r)
	z.CubeTo(cx+kr, cy-sy*r, cx+r, cy-sy*kr, cx+r, cy)
	z.ClosePath()
}
