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
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/spf13/afero"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/lukasdietrich/smailgun/internal/config"
)

const usageText = `
Usage:
  smailgun-config [OPTIONS]

  Print the effective smailgun configuration.

Version:
  %s

Options:
%s
`

var (
	// Version is set at compile-time.
	Version string
)

func main() {
	os.Exit(execute(afero.NewOsFs(), os.Args, os.Stdout, os.Stderr))
}

func execute(fs afero.Fs, args []string, stdout, stderr io.Writer) int {
	var (
		configFilename string
		showSecrets    bool
	)

	flags := pflag.NewFlagSet("smailgun-config", pflag.ContinueOnError)
	flags.SetOutput(stderr)
	flags.StringVarP(&configFilename, "config", "c", config.DefaultFilename, "Path to a configuration file")
	flags.BoolVar(&showSecrets, "show-secrets", false, "Print the api key instead of hiding it")
	flags.Usage = printUsage(stderr, flags)

	if err := flags.Parse(args[1:]); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return 0
		}

		fmt.Fprintln(stderr, err)
		return 2
	}

	found, err := config.Read(fs, configFilename)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}

	if !found {
		fmt.Fprintf(stderr, "%s not found\n", configFilename)
	}

	printConfig(stdout, showSecrets)

	if err := config.FromViper().Validate(); err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}

	return 0
}

func printUsage(w io.Writer, flags *pflag.FlagSet) func() {
	return func() {
		fmt.Fprintf(w, usageText,
			Version,
			flags.FlagUsages())
	}
}

func printConfig(w io.Writer, showSecrets bool) {
	keys := viper.AllKeys()
	sort.Strings(keys)

	for _, key := range keys {
		value := viper.Get(key)
		if key == "api" && !showSecrets {
			value = "<redacted>"
		}

		v, _ := json.Marshal(value)
		fmt.Fprintf(w, "%s = %s\n", key, v)
	}
}
