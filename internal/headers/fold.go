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

package headers

import "strings"

// Fold builds a header line from key and value. Lines longer than 78
// characters are folded at whitespace, so that continuation lines start with
// the whitespace they were broken at.
func Fold(key, value string) Line {
	const (
		// see RFC#2822 2.1.1
		foldLength = 78
	)

	var (
		b strings.Builder

		length = len(key) + 2
		i      = 0
	)

	// room for the key and value plus a few folding line breaks
	b.Grow(len(key) + len(value) + 16)

	b.WriteString(key)
	b.WriteString(": ")

	for i < len(value) {
		if i > 0 {
			b.WriteString("\r\n")
		}

		foldPoint := findFoldPoint(value[i:], foldLength-length)
		b.WriteString(value[i : i+foldPoint])

		i += foldPoint
		length = 0
	}

	return NewLine(b.String())
}

func findFoldPoint(line string, length int) int {
	const (
		space = 32
		tab   = 9
	)

	if len(line) > length {
		var candidate int

		for i, b := range line {
			if b == space || b == tab {
				candidate = i
			}

			if i >= length && candidate > 0 {
				return candidate
			}
		}
	}

	return len(line)
}
