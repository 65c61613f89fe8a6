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

import (
	"io"
	"strings"
)

// Set is an ordered list of header lines. The order is the order they will
// be written in.
type Set struct {
	lines []Line
}

// Append adds a line at the end.
func (s *Set) Append(l Line) {
	s.lines = append(s.lines, l)
}

// Pop removes the most recently appended line and returns it.
func (s *Set) Pop() (Line, bool) {
	if len(s.lines) == 0 {
		return Line{}, false
	}

	last := s.lines[len(s.lines)-1]
	s.lines = s.lines[:len(s.lines)-1]

	return last, true
}

// Len returns the number of lines.
func (s *Set) Len() int {
	return len(s.lines)
}

// Lines returns a copy of all lines in order.
func (s *Set) Lines() []Line {
	return append([]Line(nil), s.lines...)
}

// Count returns the number of lines of the given kind.
func (s *Set) Count(kind Kind) int {
	var n int

	for _, l := range s.lines {
		if l.Kind == kind {
			n++
		}
	}

	return n
}

// First returns the first line of the given kind.
func (s *Set) First(kind Kind) (Line, bool) {
	for _, l := range s.lines {
		if l.Kind == kind {
			return l, true
		}
	}

	return Line{}, false
}

// Remove drops every line of the given kind and returns how many were
// removed.
func (s *Set) Remove(kind Kind) int {
	kept := s.lines[:0]

	for _, l := range s.lines {
		if l.Kind != kind {
			kept = append(kept, l)
		}
	}

	removed := len(s.lines) - len(kept)
	s.lines = kept

	return removed
}

// Contains reports whether a line with the field name exists. Names are
// compared case-insensitively.
func (s *Set) Contains(name string) bool {
	for _, l := range s.lines {
		if strings.EqualFold(l.Name(), name) {
			return true
		}
	}

	return false
}

// WriteTo writes all lines terminated by CRLF followed by the empty line
// that separates the header from the body.
func (s *Set) WriteTo(w io.Writer) (int64, error) {
	var b strings.Builder

	for _, l := range s.lines {
		b.WriteString(l.Raw)
		b.WriteString("\r\n")
	}

	b.WriteString("\r\n")

	n, err := io.WriteString(w, b.String())
	return int64(n), err
}
