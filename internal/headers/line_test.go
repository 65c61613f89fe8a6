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
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassify(t *testing.T) {
	for raw, kind := range map[string]Kind{
		"From: a@x":      From,
		"FROM:a@x":       From,
		"To: a@x":        To,
		"to:":            To,
		"Cc: a@x":        Cc,
		"cC: a@x":        Cc,
		"Bcc: a@x":       Bcc,
		"Date: today":    Date,
		"Subject: s":     Other,
		"From a@x":       Other,
		"Tox: a@x":       Other,
		"To":             Other,
		"":               Other,
		"Reply-To: a@x":  Other,
		"Resent-To: a@x": Other,
	} {
		t.Run(raw, func(t *testing.T) {
			assert.Equal(t, kind, Classify(raw))
		})
	}
}

func TestLineValue(t *testing.T) {
	assert.Equal(t, " a@x", NewLine("To: a@x").Value())
	assert.Equal(t, " s", NewLine("Subject: s").Value())
	assert.Equal(t, "", NewLine("no colon").Value())
	assert.Equal(t, "Subject", NewLine("Subject : s").Name())
	assert.Equal(t, "", NewLine("no colon").Name())
}

func TestSetPop(t *testing.T) {
	var set Set

	_, ok := set.Pop()
	assert.False(t, ok)

	set.Append(NewLine("To: a@x"))
	set.Append(NewLine("Bcc: b@x"))

	last, ok := set.Pop()
	require.True(t, ok)
	assert.Equal(t, Bcc, last.Kind)
	assert.Equal(t, 1, set.Len())
}

func TestSetFirstAndRemove(t *testing.T) {
	var set Set
	set.Append(NewLine("From: a@x"))
	set.Append(NewLine("Subject: hello"))
	set.Append(NewLine("from: b@x"))

	first, ok := set.First(From)
	require.True(t, ok)
	assert.Equal(t, "From: a@x", first.Raw)

	assert.Equal(t, 2, set.Remove(From))
	assert.Equal(t, []Line{NewLine("Subject: hello")}, set.Lines())

	_, ok = set.First(From)
	assert.False(t, ok)
}

func TestSetContains(t *testing.T) {
	var set Set
	set.Append(NewLine("message-id: <1@x>"))

	assert.True(t, set.Contains("Message-ID"))
	assert.False(t, set.Contains("Date"))
}

func TestSetWriteTo(t *testing.T) {
	var set Set
	set.Append(NewLine("To: a@x"))
	set.Append(NewLine("Subject: a\r\n\tb"))

	var buffer bytes.Buffer
	n, err := set.WriteTo(&buffer)
	require.NoError(t, err)

	expected := "To: a@x\r\nSubject: a\r\n\tb\r\n\r\n"
	assert.Equal(t, expected, buffer.String())
	assert.EqualValues(t, len(expected), n)
}

func TestFold(t *testing.T) {
	expected := strings.Join([]string{
		"Received: by very.good.mail.server (smailgun) for",
		" <a-very-important-person@very.good.mail.server>; Sat, 5 Jan 2019 06:33:36",
		" +0000 (UTC)",
	}, "\r\n")

	line := Fold(
		"Received",
		"by very.good.mail.server (smailgun) "+
			"for <a-very-important-person@very.good.mail.server>"+
			"; Sat, 5 Jan 2019 06:33:36 +0000 (UTC)")

	assert.Equal(t, expected, line.Raw)
	assert.Equal(t, Other, line.Kind)
}

func TestFoldShort(t *testing.T) {
	line := Fold("From", "me@example.com")

	assert.Equal(t, "From: me@example.com", line.Raw)
	assert.Equal(t, From, line.Kind)
}
