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

// Package config loads the smailgun configuration file. The file consists of
// "key=value" lines, "#" starts a comment and keys are case-insensitive.
// Every key can also be set from the environment, e.g. SMAILGUN_LOG_FILENAME.
package config

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	"github.com/spf13/afero"
	"github.com/spf13/viper"

	"github.com/lukasdietrich/smailgun/internal/log"
)

// DefaultFilename is read when no file is given with -C.
const DefaultFilename = "/etc/smailgun/smailgun.conf"

var (
	// ErrMissingCredentials is returned by Validate if either the api key or
	// the domain is not configured.
	ErrMissingCredentials = errors.New("api or domain not set")
)

func init() {
	setDefaults()
}

func setDefaults() {
	viper.SetEnvPrefix("SMAILGUN")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	viper.SetDefault("debug", "yes")
	viper.SetDefault("fromLineOverride", "no")
	viper.SetDefault("minUserId", 0)
	viper.SetDefault("endpoint", "https://api.mailgun.net/v3")
	viper.SetDefault("timeout", "30s")
	viper.SetDefault("log.filename", "/var/log/smailgun.log")
	viper.SetDefault("deadLetter", "")
}

var knownKeys = map[string]bool{
	"api":              true,
	"domain":           true,
	"rewritedomain":    true,
	"fromlineoverride": true,
	"root":             true,
	"minuserid":        true,
	"debug":            true,
	"endpoint":         true,
	"timeout":          true,
	"log.filename":     true,
	"deadletter":       true,
}

// Config is the effective configuration of one invocation.
type Config struct {
	// API is the secret key of the mailgun account.
	API string
	// Domain is the sending domain registered with mailgun.
	Domain string
	// RewriteDomain is the domain of composed sender addresses and of
	// recipients given without one.
	RewriteDomain string
	// FromLineOverride allows the From header of a message to determine the
	// sender.
	FromLineOverride bool
	// Root receives mail for system users below MinUserID.
	Root      string
	MinUserID int
	// Debug enables debug logging.
	Debug bool

	Endpoint    string
	Timeout     time.Duration
	LogFilename string
	DeadLetter  string
}

// Read loads filename from fs into viper, replacing whatever was loaded
// before. A missing file is not an error, found is false in that case.
func Read(fs afero.Fs, filename string) (found bool, err error) {
	viper.Reset()
	setDefaults()

	if filename == "" {
		filename = DefaultFilename
	}

	exists, err := afero.Exists(fs, filename)
	if err != nil || !exists {
		return false, err
	}

	f, err := fs.Open(filename)
	if err != nil {
		return true, fmt.Errorf("could not open configuration %q: %w", filename, err)
	}

	defer f.Close()

	cleaned, err := normalize(f)
	if err != nil {
		return true, fmt.Errorf("could not read configuration %q: %w", filename, err)
	}

	viper.SetConfigType("properties")

	if err := viper.ReadConfig(cleaned); err != nil {
		return true, fmt.Errorf("could not load configuration %q: %w", filename, err)
	}

	return true, nil
}

// FromViper builds the Config from what viper has loaded.
func FromViper() Config {
	rewriteDomain, _ := splitRewriteDomain(viper.GetString("rewriteDomain"))

	return Config{
		API:              viper.GetString("api"),
		Domain:           viper.GetString("domain"),
		RewriteDomain:    rewriteDomain,
		FromLineOverride: isYes(viper.GetString("fromLineOverride")),
		Root:             viper.GetString("root"),
		MinUserID:        viper.GetInt("minUserId"),
		Debug:            isYes(viper.GetString("debug")),
		Endpoint:         viper.GetString("endpoint"),
		Timeout:          viper.GetDuration("timeout"),
		LogFilename:      viper.GetString("log.filename"),
		DeadLetter:       viper.GetString("deadLetter"),
	}
}

// Validate checks that delivery is possible at all.
func (c Config) Validate() error {
	if c.API == "" || c.Domain == "" {
		return ErrMissingCredentials
	}

	return nil
}

// SenderDomain is the domain used for composed addresses.
func (c Config) SenderDomain() string {
	if c.RewriteDomain != "" {
		return c.RewriteDomain
	}

	return c.Domain
}

// Report logs every setting the way it was applied. The api key itself is
// never logged.
func Report(ctx context.Context) {
	ctx = log.WithOrigin(ctx, "config")

	keys := viper.AllKeys()
	sort.Strings(keys)

	for _, key := range keys {
		value := viper.GetString(key)

		if !knownKeys[key] {
			log.InfoContext(ctx).Msgf("unable to set %s=%q", key, value)
			continue
		}

		switch key {
		case "api":
			if value != "" {
				value = "<redacted>"
			}

		case "rewritedomain":
			if domain, stripped := splitRewriteDomain(value); stripped {
				log.ErrorContext(ctx).Msgf("set rewriteDomain=%q is invalid", value)
				log.ErrorContext(ctx).Msgf("set rewriteDomain=%q used", domain)
				value = domain
			}
		}

		log.DebugContext(ctx).Msgf("set %s=%q", key, value)
	}
}

// normalize rewrites every setting of r as a plain "key=value" line. A "#"
// starts a comment anywhere on a line, lines without "=" are ignored and
// only the first word after the key is used as the value.
func normalize(r io.Reader) (io.Reader, error) {
	var (
		out     bytes.Buffer
		scanner = bufio.NewScanner(r)
	)

	for scanner.Scan() {
		line := scanner.Text()

		if hash := strings.IndexByte(line, '#'); hash >= 0 {
			line = line[:hash]
		}

		if !strings.Contains(line, "=") {
			continue
		}

		tokens := strings.FieldsFunc(line, func(c rune) bool {
			return c == '=' || c == ' ' || c == '\t' || c == '\r'
		})

		switch len(tokens) {
		case 0:
			continue
		case 1:
			fmt.Fprintf(&out, "%s=\n", tokens[0])
		default:
			fmt.Fprintf(&out, "%s=%s\n", tokens[0], tokens[1])
		}
	}

	return &out, scanner.Err()
}

// splitRewriteDomain accepts a full address in place of a domain and uses
// the part after the last "@".
func splitRewriteDomain(value string) (string, bool) {
	if at := strings.LastIndex(value, "@"); at >= 0 {
		return value[at+1:], true
	}

	return value, false
}

func isYes(value string) bool {
	return strings.EqualFold(strings.TrimSpace(value), "yes")
}
