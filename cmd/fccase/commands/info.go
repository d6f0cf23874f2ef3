// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"fmt"
	"slices"
	"text/tabwriter"

	"github.com/spf13/pflag"

	"github.com/bureau-foundation/fccase/cmd/fccase/cli"
	"github.com/bureau-foundation/fccase/lib/fcfile"
	"github.com/bureau-foundation/fccase/lib/geometry"
	"github.com/bureau-foundation/fccase/lib/model"
)

type infoReport struct {
	Path          string         `json:"path"`
	Fingerprint   string         `json:"fingerprint"`
	Stats         model.Stats    `json:"stats"`
	Bounds        *[2][3]float64 `json:"bounds,omitempty"`
	SurfaceArea   float64        `json:"surface_area"`
	Volume        float64        `json:"volume"`
	SkippedSolids int            `json:"skipped_solids,omitempty"`
}

func infoCommand(env *Env) *cli.Command {
	var asJSON bool
	return &cli.Command{
		Name:    "info",
		Summary: "Summarize a case file",
		Description: `Print the entity counts of a case file, the bounding box of its
nodes, the area of its shell elements, the volume of its linear
solids, and its content fingerprint.`,
		Usage: "fccase info FILE [flags]",
		Flags: func() *pflag.FlagSet {
			flagSet := pflag.NewFlagSet("info", pflag.ContinueOnError)
			flagSet.BoolVar(&asJSON, "json", false, "output as JSON")
			return flagSet
		},
		Args: cli.ExactArgs("FILE"),
		Run: func(args []string) error {
			report, err := buildInfo(env, args[0])
			if err != nil {
				return err
			}
			if asJSON {
				return cli.WriteJSON(env.Stdout, report)
			}
			printInfo(env, report)
			return nil
		},
	}
}

func buildInfo(env *Env, path string) (*infoReport, error) {
	m, err := env.read(path)
	if err != nil {
		return nil, err
	}
	hash, err := fcfile.FingerprintModel(m)
	if err != nil {
		return nil, err
	}
	report := &infoReport{Path: path, Fingerprint: hash.String(), Stats: m.Stats()}
	if box, ok := geometry.Bounds(m.Mesh); ok {
		report.Bounds = &[2][3]float64{
			{box.Min.X, box.Min.Y, box.Min.Z},
			{box.Max.X, box.Max.Y, box.Max.Z},
		}
	}
	if report.SurfaceArea, err = geometry.SurfaceArea(m.Mesh); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if report.Volume, report.SkippedSolids, err = geometry.Volume(m.Mesh); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return report, nil
}

func printInfo(env *Env, report *infoReport) {
	tw := tabwriter.NewWriter(env.Stdout, 2, 0, 2, ' ', 0)
	defer tw.Flush()

	stats := report.Stats
	fmt.Fprintf(tw, "file\t%s\n", report.Path)
	fmt.Fprintf(tw, "fingerprint\t%s\n", report.Fingerprint)
	fmt.Fprintf(tw, "nodes\t%d\n", stats.Nodes)
	fmt.Fprintf(tw, "elements\t%d\n", stats.Elements)
	names := make([]string, 0, len(stats.ElementsByType))
	for name := range stats.ElementsByType {
		names = append(names, name)
	}
	slices.Sort(names)
	for _, name := range names {
		fmt.Fprintf(tw, "  %s\t%d\n", name, stats.ElementsByType[name])
	}
	for _, row := range []struct {
		label string
		count int
	}{
		{"blocks", stats.Blocks},
		{"materials", stats.Materials},
		{"property tables", stats.PropertyTables},
		{"coordinate systems", stats.CoordinateSystems},
		{"loads", stats.Loads},
		{"restraints", stats.Restraints},
		{"initial sets", stats.InitialSets},
		{"constraints", stats.Constraints},
		{"receivers", stats.Receivers},
		{"node sets", stats.NodeSets},
		{"side sets", stats.SideSets},
	} {
		fmt.Fprintf(tw, "%s\t%d\n", row.label, row.count)
	}
	if report.Bounds != nil {
		fmt.Fprintf(tw, "bounds\t%v .. %v\n", report.Bounds[0], report.Bounds[1])
	}
	fmt.Fprintf(tw, "surface area\t%g\n", report.SurfaceArea)
	if report.SkippedSolids > 0 {
		fmt.Fprintf(tw, "volume\t%g (%d quadratic solids not measured)\n", report.Volume, report.SkippedSolids)
	} else {
		fmt.Fprintf(tw, "volume\t%g\n", report.Volume)
	}
}
