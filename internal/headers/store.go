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
	"context"
	"io"
	"strings"

	"github.com/lukasdietrich/smailgun/internal/log"
	"github.com/lukasdietrich/smailgun/internal/mails"
)

// Store decides which header lines are kept. When recipients are taken from
// the headers (sendmail -t), it also collects the addresses of To, Cc and Bcc
// and leaves out Bcc lines entirely.
type Store struct {
	deliverFromHeaders bool

	set        Set
	recipients mails.RecipientList

	haveFrom bool
	haveTo   bool
	haveDate bool
}

// NewStore creates an empty store.
func NewStore(deliverFromHeaders bool) *Store {
	return &Store{deliverFromHeaders: deliverFromHeaders}
}

// Add classifies a completed header line and stores it.
func (s *Store) Add(ctx context.Context, raw string) {
	line := NewLine(raw)

	if line.Kind == From && strings.TrimSpace(line.Value()) == "" {
		log.DebugContext(ctx).Msg("ignoring empty from header")
		return
	}

	s.set.Append(line)

	switch line.Kind {
	case From:
		s.haveFrom = true
	case To:
		s.haveTo = true
	case Date:
		s.haveDate = true
	}

	if !s.deliverFromHeaders {
		return
	}

	switch line.Kind {
	case To, Cc:
		s.collect(ctx, line)

	case Bcc:
		s.collect(ctx, line)
		s.set.Pop()

		log.DebugContext(ctx).Msg("removed bcc header")
	}
}

// ReadFrom adds every line produced by r until the header section ends.
func (s *Store) ReadFrom(ctx context.Context, r *Reader) error {
	for {
		raw, err := r.Next()
		if err != nil {
			if err == io.EOF {
				return nil
			}

			return err
		}

		log.TraceContext(ctx).
			Str("header", raw).
			Msg("read header line")

		s.Add(ctx, raw)
	}
}

func (s *Store) collect(ctx context.Context, line Line) {
	addresses := mails.SplitRecipients(line.Value())

	log.DebugContext(ctx).
		Str("kind", line.Kind.String()).
		Strs("recipients", addresses).
		Msg("collected recipients from header")

	s.recipients.Append(addresses...)
}

// Headers returns the stored header lines.
func (s *Store) Headers() *Set {
	return &s.set
}

// Recipients returns the addresses collected from the headers.
func (s *Store) Recipients() []string {
	return s.recipients.Addresses()
}

// HaveFrom reports whether a non-empty From header was stored.
func (s *Store) HaveFrom() bool {
	return s.haveFrom
}

// HaveTo reports whether a To header was stored.
func (s *Store) HaveTo() bool {
	return s.haveTo
}

// HaveDate reports whether a Date header was stored.
func (s *Store) HaveDate() bool {
	return s.haveDate
}
