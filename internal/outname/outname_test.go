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

package outname

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"
)

func TestSlug(t *testing.T) {
	cases := []struct {
		in, out string
	}{
		{"Go Regular", "go_regular"},
		{"DejaVu Sans Mono", "dejavu_sans_mono"},
		{"Crème Brûlée 2", "creme_brulee_2"},
		{"  Spaced -- out  ", "_spaced_out_"},
		{"Noto Sans 日本語", "noto_sans_"},
		{"", "font"},
		{"***", "font"},
	}
	for _, tc := range cases {
		if got := Slug(tc.in); got != tc.out {
			t.Errorf("Slug(%q) = %q, want %q", tc.in, got, tc.out)
		}
	}
}

func TestNamed(t *testing.T) {
	got := Named("fnt", "Go Mono")
	want := filepath.Join("fnt", "go_mono.fnt")
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
	if png := WithExt(got, ".png"); png != filepath.Join("fnt", "go_mono.png") {
		t.Errorf("preview name %q", png)
	}
}

func TestNumbered(t *testing.T) {
	dir := t.TempDir()
	touch := func(name string) {
		if err := os.WriteFile(filepath.Join(dir, name), nil, 0o644); err != nil {
			t.Fatal(err)
		}
	}

	got, err := Numbered(dir)
	if err != nil {
		t.Fatal(err)
	}
	if want := filepath.Join(dir, "000.fnt"); got != want {
		t.Errorf("got %q, want %q", got, want)
	}

	// gaps are reused, other extensions do not count
	touch("000.fnt")
	touch("001.png")
	touch("002.fnt")
	got, err = Numbered(dir)
	if err != nil {
		t.Fatal(err)
	}
	if want := filepath.Join(dir, "001.fnt"); got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestNumberedFull(t *testing.T) {
	dir := t.TempDir()
	for i := range MaxNumbered {
		fname := filepath.Join(dir, fmt.Sprintf("%03d.fnt", i))
		if err := os.WriteFile(fname, nil, 0o644); err != nil {
			t.Fatal(err)
		}
	}
	if _, err := Numbered(dir); !errors.Is(err, ErrNoFreeName) {
		t.Errorf("got error %v, want %v", err, ErrNoFreeName)
	}
}
