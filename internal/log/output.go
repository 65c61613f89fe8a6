// Copyright (C) 2020  Lukas Dietrich <lukas@lukasdietrich.com>
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

package log

import (
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/afero"
)

// Options control where log events are written and how many of them.
type Options struct {
	// Filename is the file log events are appended to.
	Filename string
	// Level is the minimum level written to the file.
	Level zerolog.Level
	// Verbose additionally echoes events in a readable form to Console.
	Verbose bool
	// Console receives verbose output and the fallback when Filename cannot
	// be opened. It defaults to os.Stderr.
	Console io.Writer
}

// Setup replaces the global Logger according to opts. The returned closer
// releases the log file and must be called before the program exits.
func Setup(fs afero.Fs, opts Options) io.Closer {
	console := opts.Console
	if console == nil {
		console = os.Stderr
	}

	var (
		out    io.Writer = console
		closer io.Closer = nopCloser{}
	)

	f, err := fs.OpenFile(opts.Filename, os.O_WRONLY|os.O_APPEND|os.O_CREATE, 0600)
	if err != nil {
		fmt.Fprintf(console, "Cannot write to %s\n", opts.Filename)
	} else {
		out, closer = f, f

		if opts.Verbose {
			out = zerolog.MultiLevelWriter(f, zerolog.ConsoleWriter{Out: console, NoColor: true})
		}
	}

	Logger = zerolog.New(out).
		Level(opts.Level).
		With().
		Timestamp().
		Logger()

	return closer
}

type nopCloser struct{}

func (nopCloser) Close() error {
	return nil
}
