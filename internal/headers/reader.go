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
	"bufio"
	"io"
)

// chunkSize is the amount the line buffer grows by whenever it is full.
const chunkSize = 1024

// Reader splits the header section of a message into logical lines. It reads
// byte by byte and only remembers the previous byte. Reading stops at the
// first empty line or at the end of the stream, whatever comes first.
//
// A line break followed by a space or tab is a fold. The line stays in one
// piece, but its bare LF is turned into CRLF.
type Reader struct {
	r    *bufio.Reader
	buf  []byte
	prev byte
	done bool
}

// NewReader returns a Reader consuming r. If r is not a *bufio.Reader it is
// wrapped into one.
func NewReader(r io.Reader) *Reader {
	br, ok := r.(*bufio.Reader)
	if !ok {
		br = bufio.NewReader(r)
	}

	// the start of the stream behaves like the start of a line, so an
	// immediate empty line means there are no headers at all.
	return &Reader{r: br, prev: '\n'}
}

// Next returns the next logical header line. Once the header section is
// complete, it returns io.EOF, and keeps doing so on every further call.
func (r *Reader) Next() (string, error) {
	for !r.done {
		c, err := r.r.ReadByte()
		if err != nil {
			if err != io.EOF {
				return "", err
			}

			r.done = true
			if line := r.flush(); line != "" {
				return line, nil
			}

			break
		}

		if c == '\r' && r.peekLF() {
			// CRLF input is read as LF so that the folds below become CRLF
			// exactly once.
			continue
		}

		if r.prev == '\n' && len(r.buf) > 0 {
			switch c {
			case ' ', '\t':
				r.buf[len(r.buf)-1] = '\r'
				r.append('\n')

			case '\n':
				r.done = true
				r.prev = c

				if line := r.flush(); line != "" {
					return line, nil
				}

				return "", io.EOF

			default:
				line := r.flush()
				r.append(c)
				r.prev = c

				if line != "" {
					return line, nil
				}

				continue
			}
		} else if r.prev == '\n' && c == '\n' {
			r.done = true
			break
		}

		r.append(c)
		r.prev = c
	}

	return "", io.EOF
}

// Body returns the rest of the stream. It must only be used after Next
// returned io.EOF.
func (r *Reader) Body() io.Reader {
	return r.r
}

func (r *Reader) peekLF() bool {
	next, err := r.r.Peek(1)
	return err == nil && next[0] == '\n'
}

// append adds c to the buffer and grows it by chunkSize when full.
func (r *Reader) append(c byte) {
	if len(r.buf) == cap(r.buf) {
		grown := make([]byte, len(r.buf), cap(r.buf)+chunkSize)
		copy(grown, r.buf)
		r.buf = grown
	}

	r.buf = append(r.buf, c)
}

// flush returns the buffered line without its final LF and resets the
// buffer.
func (r *Reader) flush() string {
	line := r.buf
	if n := len(line); n > 0 && line[n-1] == '\n' {
		line = line[:n-1]
	}

	r.buf = r.buf[:0]
	return string(line)
}
