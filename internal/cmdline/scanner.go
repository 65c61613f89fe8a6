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

package cmdline

// scanner walks the argument vector with an explicit cursor. Each flag
// letter is looked up in a table and the actions never fall through into
// each other.
type scanner struct {
	opts *Options
	args []string

	// i is the index of the current token, j the index of the current
	// letter inside of it.
	i, j int
}

// step tells the scanner how to continue after an action.
type step int

const (
	// stepNext continues with the next letter of the token.
	stepNext step = iota
	// stepEndToken stops scanning the token and moves on to the next one.
	stepEndToken
	// stepSkipToken stops scanning the token and skips the following one.
	stepSkipToken
)

func (s *scanner) scan() error {
	for s.i < len(s.args) {
		token := s.args[s.i]

		if len(token) == 0 || token[0] != '-' {
			s.opts.Recipients = append(s.opts.Recipients, token)
			s.i++
			continue
		}

		next, err := s.scanToken(token)
		if err != nil {
			return err
		}

		s.i++
		if next == stepSkipToken {
			s.i++
		}
	}

	return nil
}

func (s *scanner) scanToken(token string) (step, error) {
	for s.j = 1; s.j < len(token); s.j++ {
		a, ok := flags[token[s.j]]
		if !ok {
			continue
		}

		if a.kind == kindGroup {
			s.j++
			if s.j >= len(token) {
				return stepEndToken, nil
			}

			if a, ok = a.group[token[s.j]]; !ok {
				continue
			}
		}

		next, err := s.apply(a, token)
		if err != nil || next != stepNext {
			return next, err
		}
	}

	return stepEndToken, nil
}

func (s *scanner) apply(a action, token string) (step, error) {
	switch a.kind {
	case kindToggle:
		a.toggle(s.opts)

	case kindValue:
		value, next := s.value(token)
		a.value(s.opts, value)
		return next, nil

	case kindOptionalValue:
		if s.j+1 == len(token) {
			return stepSkipToken, nil
		}

	case kindSkipLetter:
		s.j++

	case kindEndToken:
		return stepEndToken, nil

	case kindSkipToken:
		return stepSkipToken, nil

	case kindTerminate:
		return stepEndToken, exit("%s", a.message(s.opts))
	}

	return stepNext, nil
}

// value returns the argument of a flag. It is either the rest of the current
// token or, if nothing follows the letter, the whole next token.
func (s *scanner) value(token string) (string, step) {
	if s.j+1 == len(token) && s.i+1 < len(s.args) {
		return s.args[s.i+1], stepSkipToken
	}

	return token[s.j+1:], stepEndToken
}
