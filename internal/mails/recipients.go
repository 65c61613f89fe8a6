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

package mails

import "strings"

// RecipientList is an ordered list of recipient addresses. Duplicates are
// kept, empty addresses are never added.
type RecipientList struct {
	addresses []string
}

// Append adds all non-empty addresses in order.
func (l *RecipientList) Append(addresses ...string) {
	for _, a := range addresses {
		if a != "" {
			l.addresses = append(l.addresses, a)
		}
	}
}

// Len returns the number of addresses.
func (l *RecipientList) Len() int {
	return len(l.addresses)
}

// Addresses returns a copy of the list.
func (l *RecipientList) Addresses() []string {
	return append([]string(nil), l.addresses...)
}

// SplitRecipients breaks the value of an address header (To, Cc, Bcc) into
// single addresses. Commas inside of double quotes do not separate
// addresses. Tokens ending in ";" terminate a group ("name: list;") and are
// dropped; groups are not expanded.
func SplitRecipients(value string) []string {
	value = strings.Map(func(r rune) rune {
		switch r {
		case '\t', '\n', '\r':
			return ' '
		}

		return r
	}, value)

	var (
		addresses []string
		inQuotes  bool
		start     int
	)

	emit := func(token string) {
		// trailing whitespace is trimmed too, so "a@x; " counts as a group
		// terminator just like "a@x;".
		token = strings.TrimSpace(token)

		if token == "" || strings.HasSuffix(token, ";") {
			return
		}

		addresses = append(addresses, token)
	}

	for i := 0; i < len(value); i++ {
		switch c := value[i]; {
		case c == '\\' && inQuotes:
			i++

		case c == '"':
			inQuotes = !inQuotes

		case c == ',' && !inQuotes:
			emit(value[start:i])
			start = i + 1
		}
	}

	if start < len(value) {
		emit(value[start:])
	}

	return addresses
}
