// Package cli implements the flatgen command line: flag and config file
// parsing, parallel generation of the input files, and watch mode.
package cli

import (
	"io"

	"github.com/spf13/pflag"
)

// ParseArgs parses command line arguments into Config. Values of the
// config file named by --config fill the options not given as flags.
func ParseArgs(args []string, stderr io.Writer) (*Config, error) {
	cfg := &Config{}

	fs := pflag.NewFlagSet("flatgen", pflag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVarP(&cfg.Out, "out", "o", "", "output directory (default \".\")")
	fs.StringVarP(&cfg.ConfigFile, "config", "c", "", "TOML config file")
	fs.StringVar(&cfg.Target, "target", "", "output language (default \"rust\")")
	fs.StringSliceVar(&cfg.Features, "feature", nil, "enable a generator feature (repeatable)")
	fs.BoolVarP(&cfg.Watch, "watch", "w", false, "regenerate when an input changes")
	fs.StringSliceVar(&cfg.Match, "match", nil, "file name patterns watched in watch mode")
	fs.IntVarP(&cfg.Jobs, "jobs", "j", 0, "inputs generated in parallel (default GOMAXPROCS)")
	fs.BoolVarP(&cfg.Verbose, "verbose", "v", false, "log debug messages")
	fs.BoolVar(&cfg.ShowVersion, "version", false, "show version")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if cfg.ShowVersion {
		return cfg, nil
	}
	cfg.Inputs = fs.Args()

	if cfg.ConfigFile != "" {
		fc, err := loadFile(cfg.ConfigFile)
		if err != nil {
			return nil, err
		}
		if err := cfg.merge(fc, fs.Changed); err != nil {
			return nil, err
		}
	}
	cfg.applyDefaults()
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
