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

// Package logging holds the logger shared by the ledfont packages.
//
// Nothing is logged until a command installs a logger with SetLogger or
// Setup.
package logging

import (
	"log/slog"
	"os"
	"sync/atomic"

	"golang.org/x/term"
)

var logger atomic.Pointer[slog.Logger]

var discard = slog.New(slog.DiscardHandler)

// SetLogger installs sl as the package-level logger.  Passing nil disables
// logging.
//
// SetLogger is safe for concurrent use.
func SetLogger(sl *slog.Logger) {
	if sl == nil {
		sl = discard
	}
	logger.Store(sl)
}

// Logger returns the package-level logger.
func Logger() *slog.Logger {
	if l := logger.Load(); l != nil {
		return l
	}
	return discard
}

// Setup installs a logger writing to f.  Terminals get human-readable
// text, everything else gets one JSON object per line.  With verbose set,
// debug messages are included.
func Setup(f *os.File, verbose bool) *slog.Logger {
	opts := &slog.HandlerOptions{Level: slog.LevelInfo}
	if verbose {
		opts.Level = slog.LevelDebug
	}

	var h slog.Handler
	if term.IsTerminal(int(f.Fd())) {
		h = slog.NewTextHandler(f, opts)
	} else {
		h = slog.NewJSONHandler(f, opts)
	}
	sl := slog.New(h)
	SetLogger(sl)
	return sl
}
