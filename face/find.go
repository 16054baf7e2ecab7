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

package face

import (
	"fmt"
	"os"

	"github.com/flopp/go-findfont"

	"seehuhn.de/go/ledfont/internal/logging"
)

// Find locates a font file.  If name is the path of an existing file, it
// is returned unchanged.  Otherwise name is looked up among the fonts
// installed on the system, e.g. "DejaVuSans.ttf" or "DejaVuSans".
func Find(name string) (string, error) {
	if st, err := os.Stat(name); err == nil && !st.IsDir() {
		return name, nil
	}

	fpath, err := findfont.Find(name)
	if err != nil {
		return "", fmt.Errorf("font %q not found: %w", name, err)
	}
	logging.Logger().Debug("system font", "name", name, "path", fpath)
	return fpath, nil
}
