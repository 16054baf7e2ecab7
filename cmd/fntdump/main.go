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

// Command fntdump prints the contents of a .fnt bitmap font.
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"

	"seehuhn.de/go/ledfont/fnt"
)

var showBitmaps = flag.Bool("bitmaps", false, "draw the glyph bitmaps")

func main() {
	flag.CommandLine.Usage = func() {
		out := flag.CommandLine.Output()
		fmt.Fprintf(out, "Usage: %s [options] <file.fnt>\n",
			filepath.Base(os.Args[0]))
		fmt.Fprintln(out)
		fmt.Fprintln(out, "Options:")
		flag.PrintDefaults()
	}
	flag.Parse()
	if flag.NArg() != 1 {
		flag.CommandLine.Usage()
		os.Exit(1)
	}

	f, err := fnt.ReadFile(flag.Arg(0))
	if err != nil {
		log.Fatal(err)
	}
	err = dump(os.Stdout, f, *showBitmaps)
	if err != nil {
		log.Fatal(err)
	}
}

// shades maps coverage values to characters, from empty to full.
const shades = " .:-=+*#%@"

func dump(w io.Writer, f *fnt.Font, bitmaps bool) error {
	p := &printer{w: w}

	p.printf("magic:          %#08x\n", f.Magic)
	p.printf("glyphs:         %d\n", f.NGlyphs)
	p.printf("ASCII run:      %#x, %d glyphs\n", f.ASCIIMapStart, f.ASCIIMapN)
	p.printf("map table:      offset %d\n", f.MapTableOffset)
	p.printf("descriptions:   offset %d\n", f.GlyphDescriptionOffset)
	p.printf("glyph data:     offset %d, %d bytes\n", f.GlyphDataOffset, len(f.Data))
	p.printf("linespace:      %d\n", f.Linespace)
	p.printf("yshift:         %d\n", f.YShift)
	p.printf("outline:        %t\n", f.HasOutline())
	p.printf("name:           %q\n", f.FamilyName)

	mapped := f.Codepoints[f.ASCIIMapN:]
	p.printf("\nmap table (%d entries):\n", len(mapped))
	for i, cp := range mapped {
		p.printf("  %5d  %U\n", i+int(f.ASCIIMapN), cp)
	}

	nFill := len(f.Codepoints)
	p.printf("\n  index  codepoint  w   h   lsb  tsb  adv  start\n")
	for i, g := range f.Glyphs {
		cp := f.Codepoints[i%nFill]
		kind := ""
		if i >= nFill {
			kind = " outline"
		}
		p.printf("  %5d  %-9U  %-3d %-3d %4d %4d %4d  %d%s\n",
			i, cp, g.Width, g.Height, g.LSB, g.TSB, g.Advance, g.StartIndex, kind)
		if bitmaps {
			p.bitmap(f, i)
		}
	}
	return p.err
}

// printer remembers the first write error, so that dump can check for
// errors only once at the end.
type printer struct {
	w   io.Writer
	err error
}

func (p *printer) printf(format string, args ...any) {
	if p.err != nil {
		return
	}
	_, p.err = fmt.Fprintf(p.w, format, args...)
}

func (p *printer) bitmap(f *fnt.Font, i int) {
	g := f.Glyphs[i]
	pix := f.Bitmap(i)
	w := int(g.Width)
	for y := range int(g.Height) {
		var line strings.Builder
		for _, v := range pix[y*w : (y+1)*w] {
			line.WriteByte(shades[int(v)*(len(shades)-1)/255])
		}
		p.printf("         |%s|\n", line.String())
	}
}
