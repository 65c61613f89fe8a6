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

// Package submission turns the input of one sendmail invocation into a
// message ready for delivery.
package submission

import (
	"io"

	"github.com/lukasdietrich/smailgun/internal/headers"
)

// Message is the composed message together with its envelope.
type Message struct {
	// Sender is the address the message is sent from.
	Sender string
	// Recipients are the addresses the message is delivered to. They are
	// never written into the message itself.
	Recipients []string

	Header *headers.Set
	Body   io.Reader
}

// WriteTo writes the header followed by the body. The body can only be
// written once.
func (m *Message) WriteTo(w io.Writer) (int64, error) {
	n, err := m.Header.WriteTo(w)
	if err != nil {
		return n, err
	}

	body, err := io.Copy(w, m.Body)
	return n + body, err
}
