// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package commands builds the fccase command tree and runs it against
// a process environment: the loaded configuration, the logger, and the
// output streams.
package commands

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/pflag"

	"github.com/bureau-foundation/fccase/cmd/fccase/cli"
	"github.com/bureau-foundation/fccase/lib/compact"
	"github.com/bureau-foundation/fccase/lib/config"
	"github.com/bureau-foundation/fccase/lib/elemtype"
	"github.com/bureau-foundation/fccase/lib/fcfile"
	"github.com/bureau-foundation/fccase/lib/model"
)

// Env is what every command runs against.
type Env struct {
	Stdout io.Writer
	Stderr io.Writer
	Config *config.Config
	Logger *slog.Logger
	Store  *fcfile.Store
}

// Run parses the global flags, loads the configuration, and executes
// the command tree on the remaining arguments.
func Run(args []string, stdout, stderr io.Writer) error {
	global := pflag.NewFlagSet("fccase", pflag.ContinueOnError)
	global.SetInterspersed(false)
	global.SetOutput(io.Discard)
	configPath := global.String("config", "", "YAML config file (default $"+config.EnvironmentVariable+")")
	verbose := global.BoolP("verbose", "v", false, "log at debug level")
	var rest []string
	switch err := global.Parse(args); {
	case err == pflag.ErrHelp:
		// The tree prints the root help.
		rest = []string{"--help"}
	case err != nil:
		return fmt.Errorf("%w\n\nRun 'fccase --help' for usage.", err)
	default:
		rest = global.Args()
	}

	cfg, err := loadConfig(*configPath)
	if err != nil {
		return err
	}
	level := cfg.LogLevel()
	if *verbose {
		level = slog.LevelDebug
	}
	logger, err := cli.NewLogger(stderr, cfg.Log.Format, level)
	if err != nil {
		return err
	}

	env := &Env{
		Stdout: stdout,
		Stderr: stderr,
		Config: cfg,
		Logger: logger,
		Store:  fcfile.NewStore(elemtype.Default(), logger),
	}
	root := Root(env)
	root.HelpOutput = stderr
	return root.Execute(rest)
}

// loadConfig reads the file at path, or the one FCCASE_CONFIG names
// when path is empty. With neither, the defaults apply.
func loadConfig(path string) (*config.Config, error) {
	if path == "" {
		path = os.Getenv(config.EnvironmentVariable)
	}
	cfg := config.Default()
	if path != "" {
		loaded, err := config.LoadFile(path)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// Root builds the fccase command tree over env.
func Root(env *Env) *cli.Command {
	return &cli.Command{
		Name: "fccase",
		Description: `fccase: inspect and rewrite Fidesys case (.fc) files.

Reads plain, zstd, or lz4 wrapped case files, reports their contents,
renumbers their identifiers densely, and fingerprints them by content.`,
		Usage: "fccase [--config FILE] [--verbose] <command> [flags]",
		Examples: []cli.Example{
			{Description: "Summarize a model", Command: "fccase info bracket.fc"},
			{Description: "Compact into a zstd file", Command: "fccase compact bracket.fc bracket.fc.zst"},
		},
		Subcommands: []*cli.Command{
			infoCommand(env),
			roundtripCommand(env),
			compactCommand(env),
			fingerprintCommand(env),
			versionCommand(env),
		},
	}
}

// outputFlags are the write options shared by commands producing a
// case file. Unset flags fall back to the configuration.
type outputFlags struct {
	compression string
	indent      bool
}

func (o *outputFlags) register(flagSet *pflag.FlagSet) {
	flagSet.StringVar(&o.compression, "compression", "", "output compression: none, zstd or lz4 (default from config or extension)")
	flagSet.BoolVar(&o.indent, "indent", false, "write indented JSON")
}

func (o *outputFlags) options(cfg *config.Config) (fcfile.Options, error) {
	name := o.compression
	if name == "" {
		name = cfg.Output.Compression
	}
	compression, err := fcfile.ParseCompression(name)
	if err != nil {
		return fcfile.Options{}, err
	}
	return fcfile.Options{Compression: compression, Indent: o.indent || cfg.Output.Indent}, nil
}

// read loads a case file argument, resolved against paths.work_dir.
func (env *Env) read(path string) (*model.Model, error) {
	return env.Store.Read(env.Config.ResolvePath(path))
}

// save writes m, compacting it first when output.compact_on_save is
// set. Returns the compaction result, or nil when none ran.
func (env *Env) save(m *model.Model, path string, options fcfile.Options) (*compact.Result, error) {
	var result *compact.Result
	if env.Config.Output.CompactOnSave {
		var err error
		if result, err = compact.New(env.Logger).Compact(m); err != nil {
			return nil, err
		}
	}
	if err := env.Store.Write(env.Config.ResolvePath(path), m, options); err != nil {
		return nil, err
	}
	return result, nil
}
