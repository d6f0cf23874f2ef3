// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Fccase inspects and rewrites Fidesys case (.fc) files: entity
// summaries, lossless round trips, dense renumbering, and content
// fingerprints.
package main

import (
	"fmt"
	"os"

	"github.com/bureau-foundation/fccase/cmd/fccase/commands"
)

func main() {
	if err := commands.Run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		// Commands that print their own output return an error with
		// the desired exit code. Don't print a redundant "error:" line
		// for those.
		if coder, ok := err.(interface{ ExitCode() int }); ok {
			os.Exit(coder.ExitCode())
		}
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
