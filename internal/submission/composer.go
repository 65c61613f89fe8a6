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

package submission

import (
	"context"
	"fmt"
	"io"
	"net/mail"
	"os"
	"strings"
	"time"

	"github.com/lukasdietrich/smailgun/internal/cmdline"
	"github.com/lukasdietrich/smailgun/internal/config"
	"github.com/lukasdietrich/smailgun/internal/crypto"
	"github.com/lukasdietrich/smailgun/internal/headers"
	"github.com/lukasdietrich/smailgun/internal/log"
	"github.com/lukasdietrich/smailgun/internal/mails"
)

// Composer reads a message, resolves its envelope and adds the headers the
// message is missing.
type Composer struct {
	config    config.Config
	ids       crypto.IDGenerator
	qualifier *mails.Qualifier

	now    func() time.Time
	getenv func(string) string
}

// NewComposer creates a new composer.
func NewComposer(cfg config.Config, ids crypto.IDGenerator) *Composer {
	return &Composer{
		config: cfg,
		ids:    ids,
		qualifier: &mails.Qualifier{
			Domain:    cfg.SenderDomain(),
			Root:      cfg.Root,
			MinUserID: cfg.MinUserID,
			LookupUID: mails.SystemUID,
		},
		now:    time.Now,
		getenv: os.Getenv,
	}
}

// Compose reads the header section of input and returns the message. The
// body is not read and stays attached to input.
func (c *Composer) Compose(ctx context.Context, opts *cmdline.Options, input io.Reader) (*Message, error) {
	ctx = log.WithOrigin(ctx, "submission")

	reader := headers.NewReader(input)
	store := headers.NewStore(opts.DeliverFromHeaders)

	if err := store.ReadFrom(ctx, reader); err != nil {
		return nil, fmt.Errorf("could not read message header: %w", err)
	}

	recipients, err := c.recipients(opts, store)
	if err != nil {
		return nil, err
	}

	sender := c.sender(ctx, opts, store)

	if err := c.complete(ctx, opts, store, sender); err != nil {
		return nil, err
	}

	log.InfoContext(ctx).
		Str("sender", sender).
		Strs("recipients", recipients).
		Int("headers", store.Headers().Len()).
		Msg("composed message")

	return &Message{
		Sender:     sender,
		Recipients: recipients,
		Header:     store.Headers(),
		Body:       reader.Body(),
	}, nil
}

func (c *Composer) recipients(opts *cmdline.Options, store *headers.Store) ([]string, error) {
	var list []string

	if opts.DeliverFromHeaders {
		list = store.Recipients()

		if len(list) == 0 {
			return nil, &cmdline.ExitError{
				Message: fmt.Sprintf("%s: no recipients found in message", opts.Program),
			}
		}
	} else {
		list = append(list, opts.Recipients...)
	}

	for i, recipient := range list {
		list[i] = c.qualifier.Qualify(recipient)
	}

	return list, nil
}

// sender picks the -f address, then the address of the From header if the
// configuration allows it, then the invoking user.
func (c *Composer) sender(ctx context.Context, opts *cmdline.Options, store *headers.Store) string {
	if opts.Sender != "" {
		return c.qualifySender(opts.Sender)
	}

	if c.config.FromLineOverride {
		if line, ok := store.Headers().First(headers.From); ok {
			value := strings.ReplaceAll(line.Value(), "\r\n", "")

			addr, err := mail.ParseAddress(value)
			if err == nil {
				return addr.Address
			}

			log.WarnContext(ctx).
				Str("from", value).
				Err(err).
				Msg("could not parse from header")
		}
	}

	return c.qualifySender(c.user())
}

func (c *Composer) user() string {
	for _, key := range []string{"USER", "LOGNAME"} {
		if name := c.getenv(key); name != "" {
			return name
		}
	}

	return "root"
}

func (c *Composer) qualifySender(sender string) string {
	domain := c.config.SenderDomain()

	if strings.Contains(sender, "@") || domain == "" {
		return sender
	}

	addr, err := mails.NewAddress(sender, domain)
	if err != nil {
		return sender
	}

	return addr.String()
}

// complete adds From, Date and Message-ID if they are missing. Unless the
// From header is allowed to determine the sender, it is replaced.
func (c *Composer) complete(ctx context.Context, opts *cmdline.Options, store *headers.Store, sender string) error {
	set := store.Headers()

	if store.HaveFrom() && !c.config.FromLineOverride {
		n := set.Remove(headers.From)
		log.DebugContext(ctx).Int("count", n).Msg("replacing from header")
	}

	if set.Count(headers.From) == 0 {
		from := mail.Address{Name: opts.FullName, Address: sender}
		set.Append(headers.Fold("From", from.String()))
	}

	if !store.HaveDate() {
		set.Append(headers.Fold("Date", c.now().Format(time.RFC1123Z)))
	}

	if !set.Contains("Message-ID") {
		id, err := c.ids.GenerateID()
		if err != nil {
			return fmt.Errorf("could not generate message id: %w", err)
		}

		set.Append(headers.Fold("Message-ID", fmt.Sprintf("<%s@%s>", id, c.messageIDDomain())))
	}

	return nil
}

func (c *Composer) messageIDDomain() string {
	domain, err := mails.DomainToASCII(c.config.SenderDomain())
	if err != nil || domain == "" {
		return "localhost"
	}

	return domain
}
