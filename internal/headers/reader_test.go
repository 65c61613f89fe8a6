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
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func readAll(t *testing.T, r *Reader) []string {
	var lines []string

	for {
		line, err := r.Next()
		if err == io.EOF {
			return lines
		}

		require.NoError(t, err)
		lines = append(lines, line)
	}
}

func TestReaderFold(t *testing.T) {
	r := NewReader(strings.NewReader("Subject: a\n\tb\n\n"))

	assert.Equal(t, []string{"Subject: a\r\n\tb"}, readAll(t, r))
}

func TestReaderLines(t *testing.T) {
	for input, expected := range map[string][]string{
		"":                               nil,
		"\n":                             nil,
		"\nTo: a@x\n":                    nil,
		"To: a@x\n\n":                    {"To: a@x"},
		"To: a@x\nBcc: b@x\n\n":          {"To: a@x", "Bcc: b@x"},
		"To: a@x,\n b@x\nSubject: s\n\n": {"To: a@x,\r\n b@x", "Subject: s"},
		"Subject: a\n\tb\n \tc\n\n":      {"Subject: a\r\n\tb\r\n \tc"},
		"To: a@x\r\nSubject: s\r\n\r\n":  {"To: a@x", "Subject: s"},
		"Subject: a\r\n\tb\r\n\r\n":      {"Subject: a\r\n\tb"},
		"no colon here\n\n":              {"no colon here"},
		"Subject: unterminated":          {"Subject: unterminated"},
		"Subject: a\n\tb":                {"Subject: a\r\n\tb"},
		"Subject: s\n":                   {"Subject: s"},
		" leading space\n\n":             {" leading space"},
	} {
		t.Run(input, func(t *testing.T) {
			r := NewReader(strings.NewReader(input))
			assert.Equal(t, expected, readAll(t, r))
		})
	}
}

func TestReaderStaysDone(t *testing.T) {
	r := NewReader(strings.NewReader("To: a@x\n\nbody\n"))

	assert.Equal(t, []string{"To: a@x"}, readAll(t, r))

	_, err := r.Next()
	assert.Equal(t, io.EOF, err)
}

func TestReaderBody(t *testing.T) {
	r := NewReader(strings.NewReader("To: a@x\n\nTo: not a header\n"))

	assert.Equal(t, []string{"To: a@x"}, readAll(t, r))

	body, err := io.ReadAll(r.Body())
	require.NoError(t, err)
	assert.Equal(t, "To: not a header\n", string(body))
}

func TestReaderLongHeader(t *testing.T) {
	value := strings.Repeat("x", 5*chunkSize+17)
	r := NewReader(strings.NewReader("X-Long: " + value + "\n\n"))

	assert.Equal(t, []string{"X-Long: " + value}, readAll(t, r))
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) {
	return 0, errors.New("broken pipe")
}

func TestReaderError(t *testing.T) {
	r := NewReader(failingReader{})

	_, err := r.Next()
	assert.EqualError(t, err, "broken pipe")
}
