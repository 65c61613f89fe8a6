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

package config

import (
	"bytes"
	"context"
	"io/ioutil"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/afero"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/lukasdietrich/smailgun/internal/log"
)

func TestConfigTestSuite(t *testing.T) {
	suite.Run(t, new(ConfigTestSuite))
}

type ConfigTestSuite struct {
	suite.Suite

	fs     afero.Fs
	buffer bytes.Buffer
}

func (s *ConfigTestSuite) SetupTest() {
	viper.Reset()
	setDefaults()

	s.fs = afero.NewMemMapFs()
	s.buffer.Reset()
	log.Logger = zerolog.New(&s.buffer).Level(zerolog.TraceLevel)
}

func (s *ConfigTestSuite) writeConfig(content string) string {
	s.Require().NoError(afero.WriteFile(s.fs, "/etc/smailgun.conf", []byte(content), 0644))
	return "/etc/smailgun.conf"
}

func (s *ConfigTestSuite) TestMissingFile() {
	found, err := Read(s.fs, "/does/not/exist.conf")
	s.Require().NoError(err)
	s.False(found)

	cfg := FromViper()
	s.Equal(ErrMissingCredentials, cfg.Validate())
	s.Equal("https://api.mailgun.net/v3", cfg.Endpoint)
	s.Equal(30*time.Second, cfg.Timeout)
	s.Equal("/var/log/smailgun.log", cfg.LogFilename)
	s.True(cfg.Debug)
	s.False(cfg.FromLineOverride)
}

func (s *ConfigTestSuite) TestReadFile() {
	filename := s.writeConfig(`
# mailgun credentials
api=key-0123456789
domain=mg.example.com

rewriteDomain=example.com
FromLineOverride=YES
root=postmaster
minUserId=1000
debug=no
timeout=5s
`)

	found, err := Read(s.fs, filename)
	s.Require().NoError(err)
	s.True(found)

	cfg := FromViper()
	s.Require().NoError(cfg.Validate())
	s.Equal(Config{
		API:              "key-0123456789",
		Domain:           "mg.example.com",
		RewriteDomain:    "example.com",
		FromLineOverride: true,
		Root:             "postmaster",
		MinUserID:        1000,
		Debug:            false,
		Endpoint:         "https://api.mailgun.net/v3",
		Timeout:          5 * time.Second,
		LogFilename:      "/var/log/smailgun.log",
		DeadLetter:       "",
	}, cfg)
}

func (s *ConfigTestSuite) TestSenderDomain() {
	s.Equal("mg.example.com", Config{Domain: "mg.example.com"}.SenderDomain())
	s.Equal("example.com", Config{Domain: "mg.example.com", RewriteDomain: "example.com"}.SenderDomain())
}

func (s *ConfigTestSuite) TestRewriteDomainWithAddress() {
	filename := s.writeConfig("rewriteDomain=user@example.com\n")

	_, err := Read(s.fs, filename)
	s.Require().NoError(err)
	s.Equal("example.com", FromViper().RewriteDomain)

	Report(context.Background())
	s.Contains(s.buffer.String(), `set rewriteDomain=\"user@example.com\" is invalid`)
	s.Contains(s.buffer.String(), `set rewriteDomain=\"example.com\" used`)
}

func (s *ConfigTestSuite) TestReportUnknownKey() {
	filename := s.writeConfig("api=secret\ncolour=blue\n")

	_, err := Read(s.fs, filename)
	s.Require().NoError(err)

	Report(context.Background())
	s.Contains(s.buffer.String(), `unable to set colour=\"blue\"`)
	s.Contains(s.buffer.String(), `set api=\"<redacted>\"`)
	s.NotContains(s.buffer.String(), "secret")
}

func (s *ConfigTestSuite) TestReadReplacesPreviousFile() {
	filename := s.writeConfig("api=secret\ndomain=mg.example.com\n")

	_, err := Read(s.fs, filename)
	s.Require().NoError(err)
	s.Require().NoError(FromViper().Validate())

	found, err := Read(s.fs, "/does/not/exist.conf")
	s.Require().NoError(err)
	s.False(found)
	s.Equal(ErrMissingCredentials, FromViper().Validate())
}

func (s *ConfigTestSuite) TestTrailingCommentsAndExtraWords() {
	filename := s.writeConfig(
		"api = key-abc\n" +
			"domain=mg.example.com   # sending domain\n" +
			"root =\tpostmaster extra words\n" +
			"this line is ignored\n" +
			"debug=no#quiet\n" +
			"   # only a comment = here\n")

	_, err := Read(s.fs, filename)
	s.Require().NoError(err)

	cfg := FromViper()
	s.Equal("key-abc", cfg.API)
	s.Equal("mg.example.com", cfg.Domain)
	s.Equal("postmaster", cfg.Root)
	s.False(cfg.Debug)
	s.Require().NoError(cfg.Validate())
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"a=b\n", "a=b\n"},
		{"a = b c\n", "a=b\n"},
		{"a=b # c\n", "a=b\n"},
		{"# a=b\n", ""},
		{"no separator\n", ""},
		{"a=\n", "a=\n"},
		{"a==b\r\n", "a=b\n"},
		{"=\n", ""},
	}

	for _, test := range tests {
		t.Run(test.input, func(t *testing.T) {
			r, err := normalize(strings.NewReader(test.input))
			require.NoError(t, err)

			actual, err := ioutil.ReadAll(r)
			require.NoError(t, err)
			assert.Equal(t, test.expected, string(actual))
		})
	}
}
