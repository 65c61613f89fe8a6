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
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/afero"

	"github.com/lukasdietrich/smailgun/internal/cmdline"
	"github.com/lukasdietrich/smailgun/internal/config"
	"github.com/lukasdietrich/smailgun/internal/log"
)

var (
	// Version is set at compile-time.
	Version string
)

func main() {
	if Version != "" {
		cmdline.Version = Version
	}

	os.Exit(execute(afero.NewOsFs(), os.Args, os.Stdin, os.Stderr))
}

// execute runs one invocation and returns the exit code.
func execute(fs afero.Fs, args []string, stdin io.Reader, stderr io.Writer) int {
	opts, err := cmdline.Parse(args[0], args[1:])
	if err != nil {
		return exitCode(stderr, "smailgun", err)
	}

	filename := opts.ConfigPath
	if filename == "" {
		filename = config.DefaultFilename
	}

	found, err := config.Read(fs, filename)
	if err != nil {
		return exitCode(stderr, opts.Program, err)
	}

	cfg := config.FromViper()

	closer := log.Setup(fs, log.Options{
		Filename: cfg.LogFilename,
		Level:    log.Threshold(opts.Debug, cfg.Debug),
		Verbose:  opts.Verbose,
		Console:  stderr,
	})

	defer closer.Close()

	ctx := log.WithProgram(context.Background(), opts.Program)

	if !found {
		log.InfoContext(ctx).Msgf("%s not found", filename)
	}

	config.Report(ctx)

	if err := cfg.Validate(); err != nil {
		log.ErrorContext(ctx).Err(err).Msg("invalid configuration")
		return exitCode(stderr, opts.Program, err)
	}

	cmd, err := newSendCommand(fs, cfg)
	if err != nil {
		log.ErrorContext(ctx).Err(err).Msg("could not initialize the application")
		return exitCode(stderr, opts.Program, err)
	}

	if err := cmd.run(ctx, opts, stdin); err != nil {
		return exitCode(stderr, opts.Program, err)
	}

	return 0
}

// exitCode prints err and maps it to an exit code. An ExitError carries its
// own message and code, everything else is a failure.
func exitCode(stderr io.Writer, program string, err error) int {
	var exitErr *cmdline.ExitError
	if errors.As(err, &exitErr) {
		fmt.Fprintln(stderr, exitErr.Message)
		return exitErr.Code
	}

	fmt.Fprintf(stderr, "%s: %v\n", program, err)
	return 1
}
