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
	"bytes"
	"testing"

	"github.com/rs/zerolog"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetupAppendsToFile(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/var/log/smailgun.log", []byte("old\n"), 0600))

	var console bytes.Buffer
	closer := Setup(fs, Options{
		Filename: "/var/log/smailgun.log",
		Level:    zerolog.InfoLevel,
		Console:  &console,
	})

	Debug().Msg("hidden")
	Info().Msg("TestSetupAppendsToFile")
	require.NoError(t, closer.Close())

	content, err := afero.ReadFile(fs, "/var/log/smailgun.log")
	require.NoError(t, err)
	assert.Contains(t, string(content), "old\n")
	assert.Contains(t, string(content), "\"message\":\"TestSetupAppendsToFile\"")
	assert.NotContains(t, string(content), "hidden")
	assert.Empty(t, console.String())
}

func TestSetupVerboseEchoesToConsole(t *testing.T) {
	fs := afero.NewMemMapFs()

	var console bytes.Buffer
	closer := Setup(fs, Options{
		Filename: "/smailgun.log",
		Level:    zerolog.TraceLevel,
		Verbose:  true,
		Console:  &console,
	})

	Trace().Msg("TestSetupVerboseEchoesToConsole")
	require.NoError(t, closer.Close())

	assert.Contains(t, console.String(), "TestSetupVerboseEchoesToConsole")
}

func TestSetupFallsBackToConsole(t *testing.T) {
	fs := afero.NewReadOnlyFs(afero.NewMemMapFs())

	var console bytes.Buffer
	closer := Setup(fs, Options{
		Filename: "/var/log/smailgun.log",
		Level:    zerolog.InfoLevel,
		Console:  &console,
	})

	Info().Msg("TestSetupFallsBackToConsole")
	assert.NoError(t, closer.Close())

	assert.Contains(t, console.String(), "Cannot write to /var/log/smailgun.log\n")
	assert.Contains(t, console.String(), "\"message\":\"TestSetupFallsBackToConsole\"")
}
