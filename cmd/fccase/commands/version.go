// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"fmt"

	"github.com/spf13/pflag"

	"github.com/bureau-foundation/fccase/cmd/fccase/cli"
	"github.com/bureau-foundation/fccase/lib/version"
)

func versionCommand(env *Env) *cli.Command {
	var full bool
	return &cli.Command{
		Name:    "version",
		Summary: "Print version information",
		Flags: func() *pflag.FlagSet {
			flagSet := pflag.NewFlagSet("version", pflag.ContinueOnError)
			flagSet.BoolVar(&full, "full", false, "include the Go version and platform")
			return flagSet
		},
		Args: cli.ExactArgs(),
		Run: func(args []string) error {
			text := version.Info()
			if full {
				text = version.Full()
			}
			fmt.Fprintf(env.Stdout, "fccase %s\n", text)
			return nil
		},
	}
}
