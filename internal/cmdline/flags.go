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

import "fmt"

type actionKind int

const (
	// kindIgnore accepts the letter and does nothing.
	kindIgnore actionKind = iota
	// kindToggle sets a boolean and continues with the next letter.
	kindToggle
	// kindValue consumes the rest of the token or the next token.
	kindValue
	// kindOptionalValue consumes the next token only if nothing follows
	// the letter.
	kindOptionalValue
	// kindSkipLetter ignores the letter and the one after it.
	kindSkipLetter
	// kindEndToken ignores the rest of the token.
	kindEndToken
	// kindSkipToken ignores the rest of the token and the next token.
	kindSkipToken
	// kindTerminate ends the invocation with a message.
	kindTerminate
	// kindGroup selects an action by the following letter.
	kindGroup
)

type action struct {
	kind    actionKind
	toggle  func(*Options)
	value   func(*Options, string)
	message func(*Options) string
	group   map[byte]action
}

var (
	ignore     = action{kind: kindIgnore}
	endToken   = action{kind: kindEndToken}
	skipToken  = action{kind: kindSkipToken}
	skipLetter = action{kind: kindSkipLetter}
	optional   = action{kind: kindOptionalValue}
)

func toggle(f func(*Options)) action {
	return action{kind: kindToggle, toggle: f}
}

func value(f func(*Options, string)) action {
	return action{kind: kindValue, value: f}
}

func terminate(f func(*Options) string) action {
	return action{kind: kindTerminate, message: f}
}

func ignored(flag string) action {
	return terminate(func(*Options) string {
		return flag + ": action ignored"
	})
}

func group(actions map[byte]action) action {
	return action{kind: kindGroup, group: actions}
}

var (
	setVerbose = toggle(func(o *Options) { o.Verbose = true })
	setSender  = value(func(o *Options, v string) { o.Sender = v })
)

// flags maps every letter sendmail knows to what we do about it. Letters
// missing from a table are silently accepted.
var flags = map[byte]action{
	'a': group(map[byte]action{
		'u': value(func(o *Options, v string) { o.AuthUser = v }),
	}),

	'b': group(map[byte]action{
		'a': ignored("-ba"), // ARPANET mode
		'd': ignored("-bd"), // run as a daemon
		'i': ignored("-bi"), // initialise aliases
		'm': ignore,         // deliver mail the usual way
		'p': ignored("-bp"), // print the mail queue
		's': ignored("-bs"), // SMTP on stdin
		't': ignored("-bt"), // address test mode
		'v': ignored("-bv"), // verify names only
		'z': ignored("-bz"), // create freeze file
	}),

	'C': value(func(o *Options, v string) { o.ConfigPath = v }),
	'd': toggle(func(o *Options) { o.Debug, o.Verbose = true, true }),
	'E': ignore,
	'F': value(func(o *Options, v string) { o.FullName = v }),
	'f': setSender,
	'r': setSender,
	'h': ignore,
	'm': ignore,
	'M': endToken,
	'N': skipToken,
	'n': ignore,
	'R': optional,

	'o': group(map[byte]action{
		'A': endToken,
		'c': ignore,
		'D': ignored("-oD"),
		'd': ignore,
		'e': skipLetter,
		'F': endToken,
		'f': ignore,
		'g': endToken,
		'H': ignore,
		'i': ignore,
		'L': endToken,
		'm': ignore,
		'o': ignored("-oo"),
		'Q': endToken,
		'r': endToken,
		's': ignore,
		'S': endToken,
		'T': endToken,
		't': endToken,
		'u': endToken,
		'v': setVerbose,
	}),

	'q': terminate(func(o *Options) string {
		return fmt.Sprintf("%s: Mail queue is empty", o.Program)
	}),
	't': toggle(func(o *Options) { o.DeliverFromHeaders = true }),
	'v': setVerbose,
	'V': terminate(func(*Options) string {
		return "smailgun " + Version
	}),
}
