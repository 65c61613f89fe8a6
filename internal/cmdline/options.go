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

// Package cmdline parses sendmail compatible command lines.
package cmdline

import (
	"fmt"
	"path/filepath"
)

// Version is printed by -V. It is usually set at compile-time by main.
var Version = "0.1"

// Options is the result of parsing a command line. It is not modified after
// Parse returns.
type Options struct {
	// Program is the base name the program was invoked as.
	Program string

	// DeliverFromHeaders is set by -t. Recipients are then read from the
	// To, Cc and Bcc headers of the message.
	DeliverFromHeaders bool
	// Verbose is set by -v, -ov and -d.
	Verbose bool
	// Debug is set by -d.
	Debug bool

	// ConfigPath is an alternate configuration file given with -C.
	ConfigPath string
	// Sender overrides the sender address (-f or -r).
	Sender string
	// FullName overrides the full name of the sender (-F).
	FullName string
	// AuthUser is accepted with -au for compatibility and not used otherwise.
	AuthUser string

	// Recipients are all arguments not starting with "-".
	Recipients []string
}

// ExitError ends an invocation early. It is not a failure of the program:
// Code is 0 for legacy actions and usage problems.
type ExitError struct {
	Code    int
	Message string
}

func (e *ExitError) Error() string {
	return e.Message
}

func exit(format string, args ...interface{}) *ExitError {
	return &ExitError{Code: 0, Message: fmt.Sprintf(format, args...)}
}

// Parse scans args (without the program name) the way sendmail does. The
// returned error is always an *ExitError.
func Parse(invokedAs string, args []string) (*Options, error) {
	opts := Options{Program: filepath.Base(invokedAs)}

	switch opts.Program {
	case "mailq":
		return nil, exit("mailq: ignore action")
	case "newaliases":
		return nil, exit("newaliases: ignore action")
	}

	s := scanner{opts: &opts, args: args}
	if err := s.scan(); err != nil {
		return nil, err
	}

	if len(opts.Recipients) == 0 && !opts.DeliverFromHeaders {
		return nil, exit("%s: no recipients supplied - mail will not be sent", opts.Program)
	}

	if len(opts.Recipients) > 0 && opts.DeliverFromHeaders {
		return nil, exit("%s: recipients with -t option not supported", opts.Program)
	}

	return &opts, nil
}
