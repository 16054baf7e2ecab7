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

package main

import (
	"os"
	"path/filepath"
	"testing"

	"golang.org/x/image/font/gofont/goregular"

	"seehuhn.de/go/pdf/graphics"

	"seehuhn.de/go/ledfont/fnt"
)

func TestParseJoin(t *testing.T) {
	cases := map[string]graphics.LineJoinStyle{
		"round": graphics.LineJoinRound,
		"miter": graphics.LineJoinMiter,
		"bevel": graphics.LineJoinBevel,
	}
	for s, want := range cases {
		got, err := parseJoin(s)
		if err != nil || got != want {
			t.Errorf("parseJoin(%q) = %v, %v", s, got, err)
		}
	}
	if _, err := parseJoin("square"); err == nil {
		t.Error("unknown join accepted")
	}
}

func TestConvert(t *testing.T) {
	dir := t.TempDir()
	fontFile := filepath.Join(dir, "go.ttf")
	if err := os.WriteFile(fontFile, goregular.TTF, 0o644); err != nil {
		t.Fatal(err)
	}

	*outDir = filepath.Join(dir, "out")
	*addNumerals = true
	*outline = 1
	*writePDF = true
	*numericName = true
	t.Cleanup(func() {
		*addNumerals = false
		*outline = 0
		*writePDF = false
		*numericName = false
	})

	if err := convert(fontFile); err != nil {
		t.Fatal(err)
	}

	for _, name := range []string{"000.fnt", "000.png", "000.pdf"} {
		if _, err := os.Stat(filepath.Join(*outDir, name)); err != nil {
			t.Error(err)
		}
	}

	f, err := fnt.ReadFile(filepath.Join(*outDir, "000.fnt"))
	if err != nil {
		t.Fatal(err)
	}
	if f.NGlyphs != 2*uint16(len(fnt.Numerals)) || !f.HasOutline() {
		t.Errorf("%d glyphs, outline %t", f.NGlyphs, f.HasOutline())
	}
	if f.ASCIIMapStart != '0' || f.ASCIIMapN != 11 {
		t.Errorf("ASCII run %#x+%d", f.ASCIIMapStart, f.ASCIIMapN)
	}

	// a second run picks the next numeric name
	if err := convert(fontFile); err != nil {
		t.Fatal(err)
	}
	if _, err := os.Stat(filepath.Join(*outDir, "001.fnt")); err != nil {
		t.Error(err)
	}
}
