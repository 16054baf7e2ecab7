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

package preview

import (
	"image"
	imgcolor "image/color"
	"io"

	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/pdf"
	"seehuhn.de/go/pdf/document"
	"seehuhn.de/go/pdf/graphics/color"

	"seehuhn.de/go/ledfont/fnt"
)

// ledSize is the side length of one LED, relative to the pixel pitch.
const ledSize = 0.85

// WritePDF stores a vector version of the preview in a single page PDF
// file.  Every LED is drawn as a square, so the specimen can be enlarged
// without blurring.  One pixel corresponds to opt.Scale PDF points.
func WritePDF(fname string, f *fnt.Font, opt Options) error {
	img := unscaled(f, opt)
	page, err := document.CreateSinglePage(fname, pageSize(img, opt.Scale), pdf.V1_7, nil)
	if err != nil {
		return err
	}
	drawLEDs(page, img, opt)
	return page.Close()
}

// EncodePDF is like WritePDF, but writes the PDF file to w.
func EncodePDF(w io.Writer, f *fnt.Font, opt Options) error {
	img := unscaled(f, opt)
	page, err := document.WriteSinglePage(w, pageSize(img, opt.Scale), pdf.V1_7, nil)
	if err != nil {
		return err
	}
	drawLEDs(page, img, opt)
	return page.Close()
}

// unscaled renders f with one image pixel per LED.
func unscaled(f *fnt.Font, opt Options) *image.RGBA {
	opt.Scale = 1
	return Render(f, opt)
}

func pageSize(img *image.RGBA, scale int) *pdf.Rectangle {
	s := float64(max(scale, 1))
	b := img.Bounds()
	return &pdf.Rectangle{
		URx: float64(b.Dx()) * s,
		URy: float64(b.Dy()) * s,
	}
}

// drawLEDs paints the background and then one square for every pixel of
// img which differs from the background color.
func drawLEDs(page *document.Page, img *image.RGBA, opt Options) {
	s := float64(max(opt.Scale, 1))
	b := img.Bounds()
	w, h := float64(b.Dx()), float64(b.Dy())

	page.SetFillColor(rgb(opt.Background))
	page.Rectangle(0, 0, w*s, h*s)
	page.Fill()

	// image rows run top to bottom, PDF coordinates bottom to top
	page.Transform(matrix.Matrix{s, 0, 0, -s, 0, h * s})

	gap := (1 - ledSize) / 2
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			c := img.RGBAAt(x, y)
			if c == opt.Background {
				continue
			}
			page.SetFillColor(rgb(c))
			page.Rectangle(float64(x)+gap, float64(y)+gap, ledSize, ledSize)
			page.Fill()
		}
	}
}

func rgb(c imgcolor.RGBA) color.Color {
	return color.DeviceRGB{float64(c.R) / 255, float64(c.G) / 255, float64(c.B) / 255}
}
