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

package delivery

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/afero"

	"github.com/lukasdietrich/smailgun/internal/config"
	"github.com/lukasdietrich/smailgun/internal/log"
)

// DeadLetter keeps messages that could not be delivered.
type DeadLetter struct {
	fs       afero.Fs
	filename string
}

// NewDeadLetter creates a dead letter file at the configured location, or
// "dead.letter" in the home directory of the invoking user.
func NewDeadLetter(fs afero.Fs, cfg config.Config) *DeadLetter {
	filename := cfg.DeadLetter

	if filename == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			home = "."
		}

		filename = filepath.Join(home, "dead.letter")
	}

	return &DeadLetter{
		fs:       fs,
		filename: filename,
	}
}

// Filename returns the path of the dead letter file.
func (d *DeadLetter) Filename() string {
	return d.filename
}

// Save appends content to the dead letter file, followed by an empty line.
func (d *DeadLetter) Save(ctx context.Context, content io.Reader) error {
	f, err := d.fs.OpenFile(d.filename, os.O_WRONLY|os.O_APPEND|os.O_CREATE, 0600)
	if err != nil {
		return fmt.Errorf("could not open %s: %w", d.filename, err)
	}

	defer f.Close()

	n, err := io.Copy(f, content)
	if err != nil {
		return fmt.Errorf("could not write %s: %w", d.filename, err)
	}

	if _, err := io.WriteString(f, "\n"); err != nil {
		return fmt.Errorf("could not write %s: %w", d.filename, err)
	}

	log.InfoContext(ctx).
		Str("filename", d.filename).
		Int64("size", n).
		Msg("saved message to dead letter")

	return f.Close()
}
