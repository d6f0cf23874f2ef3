// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"fmt"
	"runtime"

	"github.com/spf13/pflag"
	"golang.org/x/sync/errgroup"

	"github.com/bureau-foundation/fccase/cmd/fccase/cli"
	"github.com/bureau-foundation/fccase/lib/fcfile"
)

func fingerprintCommand(env *Env) *cli.Command {
	var short bool
	return &cli.Command{
		Name:    "fingerprint",
		Summary: "Print content fingerprints of case files",
		Description: `Print the BLAKE3 fingerprint of the model in each FILE. The
fingerprint covers the canonical encoding, so it does not change with
compression, indentation, or comments in the file.

Files that fail to load are reported on stderr; the command then exits
with status 1 after printing the rest.`,
		Usage: "fccase fingerprint FILE... [flags]",
		Flags: func() *pflag.FlagSet {
			flagSet := pflag.NewFlagSet("fingerprint", pflag.ContinueOnError)
			flagSet.BoolVar(&short, "short", false, "print the short fc- form")
			return flagSet
		},
		Args: cli.MinimumArgs(1, "files"),
		Run: func(args []string) error {
			hashes := make([]fcfile.Hash, len(args))
			failures := make([]error, len(args))

			var group errgroup.Group
			group.SetLimit(runtime.GOMAXPROCS(0))
			for i, path := range args {
				group.Go(func() error {
					hashes[i], failures[i] = env.Store.Fingerprint(env.Config.ResolvePath(path))
					return nil
				})
			}
			group.Wait()

			failed := 0
			for i, path := range args {
				if failures[i] != nil {
					failed++
					fmt.Fprintf(env.Stderr, "fingerprint: %v\n", failures[i])
					continue
				}
				text := hashes[i].String()
				if short {
					text = hashes[i].Short()
				}
				fmt.Fprintf(env.Stdout, "%s  %s\n", text, path)
			}
			if failed > 0 {
				return &cli.ExitError{Code: 1}
			}
			return nil
		},
	}
}
