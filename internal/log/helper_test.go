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
	"encoding/json"
	"strings"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/suite"
)

// logTestSuite points Logger at a buffer for every test.
type logTestSuite struct {
	suite.Suite

	buffer bytes.Buffer
}

func (s *logTestSuite) SetupTest() {
	s.buffer.Reset()
	s.useLevel(zerolog.TraceLevel)
}

func (s *logTestSuite) useLevel(level zerolog.Level) {
	Logger = zerolog.New(&s.buffer).Level(level)
}

// events decodes every line written so far.
func (s *logTestSuite) events() []map[string]interface{} {
	var events []map[string]interface{}

	for _, line := range strings.Split(strings.TrimSpace(s.buffer.String()), "\n") {
		if line == "" {
			continue
		}

		var event map[string]interface{}
		s.Require().NoError(json.Unmarshal([]byte(line), &event))
		events = append(events, event)
	}

	return events
}

func (s *logTestSuite) assertMsg(expected string) {
	s.Equal(expected, s.buffer.String())
}
