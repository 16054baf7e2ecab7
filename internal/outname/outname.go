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

// Package outname chooses file names for generated fonts.
package outname

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Ext is the file name extension of generated fonts.
const Ext = ".fnt"

// MaxNumbered is the number of available numeric names, 000 to 999.
const MaxNumbered = 1000

// ErrNoFreeName is returned by Numbered when all numeric names are in use.
var ErrNoFreeName = errors.New("all numeric file names are taken")

var nonAlnum = regexp.MustCompile("[^A-Za-z0-9]+")

// Slug turns a font family name into a file name stem: accents are
// removed, letters are lower-cased, and every run of other characters is
// replaced by a single underscore.  For example, "Crème Brûlée 2" becomes
// "creme_brulee_2".
func Slug(name string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	plain, _, err := transform.String(t, name)
	if err != nil {
		plain = name
	}
	slug := nonAlnum.ReplaceAllString(strings.ToLower(plain), "_")
	if strings.Trim(slug, "_") == "" {
		return "font"
	}
	return slug
}

// Named returns the output path for a font with the given family name.
func Named(dir, familyName string) string {
	return filepath.Join(dir, Slug(familyName)+Ext)
}

// Numbered returns the first path dir/000.fnt, dir/001.fnt, ... which
// does not exist yet.
func Numbered(dir string) (string, error) {
	for i := range MaxNumbered {
		fname := filepath.Join(dir, fmt.Sprintf("%03d%s", i, Ext))
		_, err := os.Stat(fname)
		if errors.Is(err, fs.ErrNotExist) {
			return fname, nil
		} else if err != nil {
			return "", err
		}
	}
	return "", fmt.Errorf("%s: %w", dir, ErrNoFreeName)
}

// WithExt replaces the extension of a .fnt path, e.g. to name the
// matching preview image.
func WithExt(fname, ext string) string {
	return strings.TrimSuffix(fname, filepath.Ext(fname)) + ext
}
