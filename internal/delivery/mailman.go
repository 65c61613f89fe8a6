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

package delivery

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/lukasdietrich/smailgun/internal/log"
	"github.com/lukasdietrich/smailgun/internal/submission"
)

// Sender delivers a raw message to a list of recipients.
type Sender interface {
	Send(ctx context.Context, recipients []string, content io.Reader) error
}

// Mailman delivers composed messages. Messages that cannot be sent are kept
// in the dead letter file.
type Mailman struct {
	sender     Sender
	deadLetter *DeadLetter
}

// NewMailman creates a new mailman for delivery.
func NewMailman(sender Sender, deadLetter *DeadLetter) *Mailman {
	return &Mailman{
		sender:     sender,
		deadLetter: deadLetter,
	}
}

// Deliver sends msg. If sending fails, the message is saved to the dead
// letter file and the error of sending is returned.
func (m *Mailman) Deliver(ctx context.Context, msg *submission.Message) error {
	ctx = log.WithOrigin(ctx, "mailman")

	var content bytes.Buffer
	if _, err := msg.WriteTo(&content); err != nil {
		return fmt.Errorf("could not read message: %w", err)
	}

	err := m.sender.Send(ctx, msg.Recipients, bytes.NewReader(content.Bytes()))
	if err == nil {
		return nil
	}

	var apiErr *APIError
	temporary := errors.As(err, &apiErr) && apiErr.Temporary()

	log.ErrorContext(ctx).
		Err(err).
		Bool("temporary", temporary).
		Strs("recipients", msg.Recipients).
		Msg("delivery failed")

	if saveErr := m.deadLetter.Save(ctx, bytes.NewReader(content.Bytes())); saveErr != nil {
		log.ErrorContext(ctx).
			Err(saveErr).
			Msg("could not save dead letter")
	}

	return err
}
