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
	"context"
	"os"

	"github.com/rs/zerolog"
)

// Logger receives every event. It writes to stderr until Setup points it at
// the log file.
var Logger = zerolog.New(os.Stderr).With().Timestamp().Logger()

// Threshold returns the lowest level written for one invocation. Tracing
// (-d) includes every event, the debug setting of the configuration
// includes debug events, otherwise only info and above are written.
func Threshold(trace, debug bool) zerolog.Level {
	switch {
	case trace:
		return zerolog.TraceLevel
	case debug:
		return zerolog.DebugLevel
	default:
		return zerolog.InfoLevel
	}
}

// Trace starts an event for single header lines and parser steps.
func Trace() *zerolog.Event {
	return Logger.Trace()
}

// TraceContext is Trace with the program, origin and command of ctx.
func TraceContext(ctx context.Context) *zerolog.Event {
	return appendContextFields(ctx, Logger.Trace())
}

// Debug starts an event for details of composing and sending.
func Debug() *zerolog.Event {
	return Logger.Debug()
}

// DebugContext is Debug with the program, origin and command of ctx.
func DebugContext(ctx context.Context) *zerolog.Event {
	return appendContextFields(ctx, Logger.Debug())
}

// Info starts an event for the outcome of an invocation.
func Info() *zerolog.Event {
	return Logger.Info()
}

// InfoContext is Info with the program, origin and command of ctx.
func InfoContext(ctx context.Context) *zerolog.Event {
	return appendContextFields(ctx, Logger.Info())
}

// Warn starts an event for input that was ignored or replaced.
func Warn() *zerolog.Event {
	return Logger.Warn()
}

// WarnContext is Warn with the program, origin and command of ctx.
func WarnContext(ctx context.Context) *zerolog.Event {
	return appendContextFields(ctx, Logger.Warn())
}

// Error starts an event for failed deliveries and invalid settings.
func Error() *zerolog.Event {
	return Logger.Error()
}

// ErrorContext is Error with the program, origin and command of ctx.
func ErrorContext(ctx context.Context) *zerolog.Event {
	return appendContextFields(ctx, Logger.Error())
}
