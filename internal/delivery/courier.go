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

// Package delivery hands composed messages to the mailgun api.
package delivery

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/ioutil"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/lukasdietrich/smailgun/internal/config"
	"github.com/lukasdietrich/smailgun/internal/log"
	"github.com/lukasdietrich/smailgun/internal/mails"
)

const (
	// maxKeyLength is the longest api key accepted.
	maxKeyLength = 128
	// maxResponseLength limits how much of a response body is kept.
	maxResponseLength = 64 << 10
)

var (
	// ErrKeyTooLong is returned for api keys longer than maxKeyLength bytes.
	ErrKeyTooLong = errors.New("api key too long")
	// ErrNoRecipients is returned when there is nobody to send to.
	ErrNoRecipients = errors.New("no recipients")
)

// APIError is returned for responses with a status code of 400 or above.
type APIError struct {
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	body := strings.TrimSpace(e.Body)
	if body == "" {
		return fmt.Sprintf("mailgun responded with %d", e.StatusCode)
	}

	return fmt.Sprintf("mailgun responded with %d: %s", e.StatusCode, body)
}

// Temporary reports whether sending the same message later may succeed.
func (e *APIError) Temporary() bool {
	return e.StatusCode == http.StatusTooManyRequests || e.StatusCode >= 500
}

// Doer sends http requests. It is satisfied by *http.Client.
type Doer interface {
	Do(*http.Request) (*http.Response, error)
}

// Courier posts raw messages to the "messages.mime" endpoint of a mailgun
// domain.
type Courier struct {
	client   Doer
	endpoint string
	domain   string
	key      string
	timeout  time.Duration
}

// NewCourier creates a new courier for the configured domain.
func NewCourier(cfg config.Config, client Doer) *Courier {
	return &Courier{
		client:   client,
		endpoint: cfg.Endpoint,
		domain:   cfg.Domain,
		key:      cfg.API,
		timeout:  cfg.Timeout,
	}
}

// NewHTTPClient returns the client used by the courier.
func NewHTTPClient() *http.Client {
	return &http.Client{}
}

type sendResponse struct {
	ID      string `json:"id"`
	Message string `json:"message"`
}

// Send delivers content to every recipient. Recipients are only part of the
// request, not of the message, so Bcc recipients stay hidden.
func (c *Courier) Send(ctx context.Context, recipients []string, content io.Reader) error {
	ctx = log.WithOrigin(ctx, "courier")

	if len(c.key) > maxKeyLength {
		return ErrKeyTooLong
	}

	if len(recipients) == 0 {
		return ErrNoRecipients
	}

	target, err := c.target()
	if err != nil {
		return err
	}

	body, contentType, err := encodeForm(recipients, content)
	if err != nil {
		return err
	}

	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, target, body)
	if err != nil {
		return fmt.Errorf("could not create request: %w", err)
	}

	req.Header.Set("Content-Type", contentType)
	req.SetBasicAuth("api", c.key)

	log.DebugContext(ctx).
		Str("url", target).
		Int("recipients", len(recipients)).
		Msg("posting message")

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("could not reach mailgun: %w", err)
	}

	defer resp.Body.Close()

	raw, err := ioutil.ReadAll(io.LimitReader(resp.Body, maxResponseLength))
	if err != nil {
		return fmt.Errorf("could not read response: %w", err)
	}

	if resp.StatusCode >= 400 {
		return &APIError{StatusCode: resp.StatusCode, Body: string(raw)}
	}

	var result sendResponse
	if err := json.Unmarshal(raw, &result); err != nil {
		log.DebugContext(ctx).Err(err).Msg("could not decode response")
	}

	log.InfoContext(ctx).
		Int("status", resp.StatusCode).
		Str("id", result.ID).
		Str("response", result.Message).
		Msg("message accepted")

	return nil
}

// target builds the url "<endpoint>/<domain>/messages.mime".
func (c *Courier) target() (string, error) {
	domain, err := mails.DomainToASCII(c.domain)
	if err != nil {
		return "", fmt.Errorf("invalid domain %q: %w", c.domain, err)
	}

	endpoint, err := url.Parse(strings.TrimRight(c.endpoint, "/"))
	if err != nil {
		return "", fmt.Errorf("invalid endpoint %q: %w", c.endpoint, err)
	}

	return endpoint.String() + "/" + url.PathEscape(domain) + "/messages.mime", nil
}

// encodeForm writes one "to" field per recipient and the message as the
// "message" file.
func encodeForm(recipients []string, content io.Reader) (io.Reader, string, error) {
	var (
		buffer bytes.Buffer
		form   = multipart.NewWriter(&buffer)
	)

	for _, recipient := range recipients {
		if err := form.WriteField("to", recipient); err != nil {
			return nil, "", err
		}
	}

	part, err := form.CreateFormFile("message", "message.mime")
	if err != nil {
		return nil, "", err
	}

	if _, err := io.Copy(part, content); err != nil {
		return nil, "", fmt.Errorf("could not read message: %w", err)
	}

	if err := form.Close(); err != nil {
		return nil, "", err
	}

	return &buffer, form.FormDataContentType(), nil
}
