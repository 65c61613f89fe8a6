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

// Package headers reads, classifies and stores the header section of a
// message as it arrives on standard input.
package headers

import "strings"

// Kind classifies a header line by its field name.
type Kind int

const (
	// Other is any field not listed below, including lines without a colon.
	Other Kind = iota
	From
	To
	Cc
	Bcc
	Date
)

var kindNames = [...]string{
	Other: "Other",
	From:  "From",
	To:    "To",
	Cc:    "Cc",
	Bcc:   "Bcc",
	Date:  "Date",
}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return "Kind(?)"
	}

	return kindNames[k]
}

// prefixes are compared case-insensitively against the start of a line.
var prefixes = []struct {
	kind   Kind
	prefix string
}{
	{From, "From:"},
	{To, "To:"},
	{Cc, "Cc:"},
	{Bcc, "Bcc:"},
	{Date, "Date:"},
}

// Line is one logical header. Raw has no trailing line break, folds inside
// of it are kept as CRLF followed by whitespace.
type Line struct {
	Raw  string
	Kind Kind
}

// NewLine classifies raw and returns it as a Line.
func NewLine(raw string) Line {
	return Line{Raw: raw, Kind: Classify(raw)}
}

// Classify compares the first characters of raw against the known field
// names.
func Classify(raw string) Kind {
	for _, p := range prefixes {
		if hasPrefixFold(raw, p.prefix) {
			return p.kind
		}
	}

	return Other
}

// Value returns the text after the field name and colon. For lines of kind
// Other it is everything after the first colon, or "" if there is none.
func (l Line) Value() string {
	for _, p := range prefixes {
		if p.kind == l.Kind {
			return l.Raw[len(p.prefix):]
		}
	}

	if colon := strings.IndexByte(l.Raw, ':'); colon >= 0 {
		return l.Raw[colon+1:]
	}

	return ""
}

// Name returns the field name, or "" if the line has no colon.
func (l Line) Name() string {
	colon := strings.IndexByte(l.Raw, ':')
	if colon < 0 {
		return ""
	}

	return strings.TrimSpace(l.Raw[:colon])
}

func hasPrefixFold(s, prefix string) bool {
	return len(s) >= len(prefix) && strings.EqualFold(s[:len(prefix)], prefix)
}
