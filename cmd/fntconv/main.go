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

// Command fntconv converts a TrueType or OpenType font into a .fnt bitmap
// font for the LED clock.
//
// The font size is chosen automatically: the numerals are made as tall
// as -font-height, and then the font is shrunk until a time string like
// "00:00" fits on the display.  Next to the .fnt file, a PNG preview of
// all glyphs is written.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"seehuhn.de/go/pdf/graphics"

	"seehuhn.de/go/ledfont/face"
	"seehuhn.de/go/ledfont/fnt"
	"seehuhn.de/go/ledfont/internal/logging"
	"seehuhn.de/go/ledfont/internal/outname"
	"seehuhn.de/go/ledfont/preview"
)

var (
	fontHeight    = flag.Int("font-height", 30, "height of the numerals, in pixels")
	addNumerals   = flag.Bool("add-numerals", false, "add 0-9 and : to the font")
	addASCII      = flag.Bool("add-ascii", false, "add the 95 printable ASCII characters")
	addAll        = flag.Bool("add-all", false, "add all glyphs in the font")
	addRange      = flag.String("add-range", "", "comma separated list of codepoints or ranges, e.g. 0xB0,0x2190-0x2193")
	outline       = flag.Float64("outline", 0, "outline radius in pixels, 0 for no outline glyphs")
	outlineJoin   = flag.String("outline-join", "round", "corner style of outlines: round, miter or bevel")
	displayWidth  = flag.Int("display-width", 128, "display width, in pixels")
	displayHeight = flag.Int("display-height", 32, "display height, in pixels")
	numericName   = flag.Bool("numeric-name", false, "use the next free file name 000.fnt, 001.fnt, ...")
	outDir        = flag.String("out", "fnt", "output directory")
	previewScale  = flag.Int("preview-scale", 1, "size of one LED in the preview, in pixels")
	writePDF      = flag.Bool("pdf", false, "also write a PDF specimen")
	verbose       = flag.Bool("v", false, "show debug messages")
)

func main() {
	flag.CommandLine.Usage = func() {
		out := flag.CommandLine.Output()
		fmt.Fprintf(out, "Usage: %s [options] <font>\n",
			filepath.Base(os.Args[0]))
		fmt.Fprintln(out)
		fmt.Fprintln(out, "The font can be given as a file name, or as the name")
		fmt.Fprintln(out, "of an installed font.")
		fmt.Fprintln(out)
		fmt.Fprintln(out, "Options:")
		flag.PrintDefaults()
	}
	flag.Parse()
	if flag.NArg() != 1 {
		flag.CommandLine.Usage()
		os.Exit(1)
	}

	logging.Setup(os.Stderr, *verbose)

	err := convert(flag.Arg(0))
	if err != nil {
		log.Fatal(err)
	}
}

func convert(fontName string) error {
	logger := logging.Logger()

	join, err := parseJoin(*outlineJoin)
	if err != nil {
		return err
	}
	sel := fnt.Selection{
		ASCII:    *addASCII,
		All:      *addAll,
		Numerals: *addNumerals,
	}
	if *addRange != "" {
		sel.Explicit, err = fnt.ParseCodepointList(*addRange)
		if err != nil {
			return err
		}
	}

	fname, err := face.Find(fontName)
	if err != nil {
		return err
	}
	fc, err := face.Open(fname)
	if err != nil {
		return err
	}
	fc.Join = join
	logger.Info("font", "file", fname, "family", fc.FamilyName())

	set, err := sel.Build(fc)
	if err != nil {
		return err
	}
	logger.Info("codepoints", "n", len(set))

	cfg := fnt.DefaultTuneConfig()
	cfg.DisplayWidth = *displayWidth
	cfg.DisplayHeight = *displayHeight
	cfg.TargetHeight = *fontHeight
	res, err := fnt.Tune(fc, cfg)
	if err != nil {
		return err
	}
	logger.Info("size",
		"size", float64(res.Size)/64,
		"height", res.BBHeight,
		"width", res.Width,
		"yshift", res.YShift)

	glyphs, err := fnt.Encode(fc, set, fnt.EncodeOptions{
		Size:          res.Size,
		OutlineRadius: *outline,
	})
	if err != nil {
		return err
	}
	if dropped := len(set) - len(glyphs.Codepoints); dropped > 0 {
		logger.Warn("glyphs dropped", "n", dropped)
	}

	fc.SetSize(res.Size)
	f, err := fnt.Assemble(glyphs, fnt.Meta{
		FamilyName: fc.FamilyName(),
		Linespace:  fc.Linespace(),
		YShift:     res.YShift,
	})
	if err != nil {
		return err
	}

	if n := f.SearchOverrun(); n > 0 {
		logger.Warn("firmware map search may read past the map table",
			"entries", n)
	}

	err = os.MkdirAll(*outDir, 0o755)
	if err != nil {
		return err
	}
	var out string
	if *numericName {
		out, err = outname.Numbered(*outDir)
		if err != nil {
			return err
		}
	} else {
		out = outname.Named(*outDir, fc.FamilyName())
	}

	err = fnt.WriteFile(out, f)
	if err != nil {
		return err
	}
	logger.Info("wrote", "file", out, "glyphs", f.NGlyphs, "bytes", int(f.GlyphDataOffset)+len(f.Data))

	opt := preview.DefaultOptions()
	opt.DisplayHeight = *displayHeight
	opt.Scale = *previewScale
	pngName := outname.WithExt(out, ".png")
	err = preview.WritePNG(pngName, f, opt)
	if err != nil {
		return err
	}
	logger.Info("wrote", "file", pngName)

	if *writePDF {
		pdfName := outname.WithExt(out, ".pdf")
		err = preview.WritePDF(pdfName, f, opt)
		if err != nil {
			return err
		}
		logger.Info("wrote", "file", pdfName)
	}
	return nil
}

func parseJoin(s string) (graphics.LineJoinStyle, error) {
	switch s {
	case "round":
		return graphics.LineJoinRound, nil
	case "miter":
		return graphics.LineJoinMiter, nil
	case "bevel":
		return graphics.LineJoinBevel, nil
	}
	return 0, fmt.Errorf("unknown outline join %q", s)
}
