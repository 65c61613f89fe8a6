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

package main

import (
	"context"
	"io"

	"github.com/lukasdietrich/smailgun/internal/cmdline"
	"github.com/lukasdietrich/smailgun/internal/delivery"
	"github.com/lukasdietrich/smailgun/internal/log"
	"github.com/lukasdietrich/smailgun/internal/submission"
)

type sendCommand struct {
	composer *submission.Composer
	mailman  *delivery.Mailman
}

func (s *sendCommand) run(ctx context.Context, opts *cmdline.Options, input io.Reader) error {
	ctx = log.WithCommand(ctx, "send")

	msg, err := s.composer.Compose(ctx, opts, input)
	if err != nil {
		return err
	}

	return s.mailman.Deliver(ctx, msg)
}
