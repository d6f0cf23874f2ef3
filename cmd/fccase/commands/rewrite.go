// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"fmt"

	"github.com/spf13/pflag"

	"github.com/bureau-foundation/fccase/cmd/fccase/cli"
	"github.com/bureau-foundation/fccase/lib/compact"
)

func roundtripCommand(env *Env) *cli.Command {
	var output outputFlags
	return &cli.Command{
		Name:    "roundtrip",
		Summary: "Decode a case file and write it back",
		Description: `Decode IN and encode it to OUT. Everything the model does not
interpret is carried through verbatim, so the output differs from the
input only in layout and in canonical array encodings.`,
		Usage: "fccase roundtrip IN OUT [flags]",
		Examples: []cli.Example{
			{Description: "Rewrite with indentation", Command: "fccase roundtrip model.fc pretty.fc --indent"},
			{Description: "Convert to lz4", Command: "fccase roundtrip model.fc model.fc.lz4"},
		},
		Flags: func() *pflag.FlagSet {
			flagSet := pflag.NewFlagSet("roundtrip", pflag.ContinueOnError)
			output.register(flagSet)
			return flagSet
		},
		Args: cli.ExactArgs("IN", "OUT"),
		Run: func(args []string) error {
			options, err := output.options(env.Config)
			if err != nil {
				return err
			}
			m, err := env.read(args[0])
			if err != nil {
				return err
			}
			result, err := env.save(m, args[1], options)
			if err != nil {
				return err
			}
			if result != nil {
				printCompaction(env, result)
			}
			env.Logger.Info("round trip complete", "input", args[0], "output", args[1], "compression", options.Compression.String())
			return nil
		},
	}
}

func compactCommand(env *Env) *cli.Command {
	var output outputFlags
	var asJSON bool
	return &cli.Command{
		Name:    "compact",
		Summary: "Renumber a case file densely and prune unused entities",
		Description: `Decode IN, renumber nodes, elements, blocks, property tables,
materials, loads, and restraints to dense 1..N ranges, drop the nodes,
blocks, and property tables no element reaches, and write OUT.
Dependency tables keyed by element or node id follow the renumbering.

A dangling reference (an element naming a missing node, a block naming
a missing material) aborts the command without writing anything.`,
		Usage: "fccase compact IN OUT [flags]",
		Flags: func() *pflag.FlagSet {
			flagSet := pflag.NewFlagSet("compact", pflag.ContinueOnError)
			output.register(flagSet)
			flagSet.BoolVar(&asJSON, "json", false, "print the drop counts as JSON")
			return flagSet
		},
		Args: cli.ExactArgs("IN", "OUT"),
		Run: func(args []string) error {
			options, err := output.options(env.Config)
			if err != nil {
				return err
			}
			m, err := env.read(args[0])
			if err != nil {
				return err
			}
			result, err := compact.New(env.Logger).Compact(m)
			if err != nil {
				return fmt.Errorf("%s: %w", args[0], err)
			}
			if err := env.Store.Write(env.Config.ResolvePath(args[1]), m, options); err != nil {
				return err
			}
			if asJSON {
				return cli.WriteJSON(env.Stdout, compactionSummary(result))
			}
			printCompaction(env, result)
			return nil
		},
	}
}

type compactionReport struct {
	Nodes                 int  `json:"nodes"`
	Elements              int  `json:"elements"`
	Blocks                int  `json:"blocks"`
	PropertyTables        int  `json:"property_tables"`
	DroppedNodes          int  `json:"dropped_nodes"`
	DroppedBlocks         int  `json:"dropped_blocks"`
	DroppedPropertyTables int  `json:"dropped_property_tables"`
	RemappedColumns       int  `json:"remapped_columns"`
	StaleTargets          int  `json:"stale_targets"`
	Changed               bool `json:"changed"`
}

func compactionSummary(result *compact.Result) compactionReport {
	return compactionReport{
		Nodes:                 result.Nodes.Len(),
		Elements:              result.Elements.Len(),
		Blocks:                result.Blocks.Len(),
		PropertyTables:        result.PropertyTables.Len(),
		DroppedNodes:          result.DroppedNodes,
		DroppedBlocks:         result.DroppedBlocks,
		DroppedPropertyTables: result.DroppedPropertyTables,
		RemappedColumns:       result.RemappedColumns,
		StaleTargets:          result.StaleTargets,
		Changed:               result.Changed(),
	}
}

func printCompaction(env *Env, result *compact.Result) {
	summary := compactionSummary(result)
	if !summary.Changed {
		fmt.Fprintln(env.Stdout, "already compact")
		return
	}
	fmt.Fprintf(env.Stdout, "kept %d nodes, %d elements, %d blocks, %d property tables\n",
		summary.Nodes, summary.Elements, summary.Blocks, summary.PropertyTables)
	fmt.Fprintf(env.Stdout, "dropped %d nodes, %d blocks, %d property tables\n",
		summary.DroppedNodes, summary.DroppedBlocks, summary.DroppedPropertyTables)
	if summary.RemappedColumns > 0 {
		fmt.Fprintf(env.Stdout, "remapped %d dependency columns\n", summary.RemappedColumns)
	}
	if summary.StaleTargets > 0 {
		fmt.Fprintf(env.Stdout, "%d condition and set records still name the old node and element ids\n", summary.StaleTargets)
	}
}
