package cli

import (
	"fmt"
	"os"
	"runtime"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/syssam/flatgen/compiler/gen"
	"github.com/syssam/flatgen/internal/watcher"
)

// DefaultDebounce is the quiet period of watch mode before regenerating.
const DefaultDebounce = 200 * time.Millisecond

// Config stores the options of a flatgen invocation.
type Config struct {
	Inputs      []string
	Out         string
	ConfigFile  string
	Target      string
	Header      string
	Features    []string
	Watch       bool
	Match       []string
	Debounce    time.Duration
	Jobs        int
	Verbose     bool
	ShowVersion bool
}

// fileConfig is the layout of the TOML configuration file.
type fileConfig struct {
	Generate struct {
		Out      string   `toml:"out"`
		Target   string   `toml:"target"`
		Header   string   `toml:"header"`
		Features []string `toml:"features"`
	} `toml:"generate"`
	Watch struct {
		Debounce string   `toml:"debounce"`
		Match    []string `toml:"match"`
	} `toml:"watch"`
}

// loadFile decodes the TOML file at path.
func loadFile(path string) (*fileConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var fc fileConfig
	md, err := toml.Decode(string(data), &fc)
	if err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return nil, fmt.Errorf("config %s: unknown key %q", path, undecoded[0].String())
	}
	return &fc, nil
}

// merge copies the file values into the fields not set on the command line.
func (c *Config) merge(fc *fileConfig, changed func(string) bool) error {
	if !changed("out") && fc.Generate.Out != "" {
		c.Out = fc.Generate.Out
	}
	if !changed("target") && fc.Generate.Target != "" {
		c.Target = fc.Generate.Target
	}
	if c.Header == "" {
		c.Header = fc.Generate.Header
	}
	if !changed("feature") && len(fc.Generate.Features) > 0 {
		c.Features = fc.Generate.Features
	}
	if !changed("match") && len(fc.Watch.Match) > 0 {
		c.Match = fc.Watch.Match
	}
	if d := strings.TrimSpace(fc.Watch.Debounce); d != "" {
		v, err := time.ParseDuration(d)
		if err != nil {
			return fmt.Errorf("config %s: watch.debounce: %w", c.ConfigFile, err)
		}
		c.Debounce = v
	}
	return nil
}

func (c *Config) applyDefaults() {
	if strings.TrimSpace(c.Out) == "" {
		c.Out = "."
	}
	if strings.TrimSpace(c.Target) == "" {
		c.Target = gen.TargetNames()[0]
	}
	if c.Jobs <= 0 {
		c.Jobs = runtime.GOMAXPROCS(0)
	}
	if len(c.Match) == 0 {
		c.Match = watcher.DefaultPatterns
	}
	if c.Debounce <= 0 {
		c.Debounce = DefaultDebounce
	}
}

func (c *Config) validate() error {
	if len(c.Inputs) == 0 {
		return fmt.Errorf("no input files")
	}
	if _, err := gen.NewTarget(c.Target); err != nil {
		return err
	}
	for _, name := range c.Features {
		if _, err := gen.FeatureByName(name); err != nil {
			return err
		}
	}
	if _, err := watcher.Compile(c.Match); err != nil {
		return fmt.Errorf("--match: %w", err)
	}
	return nil
}

// Options returns the generator options for the config.
func (c *Config) Options() ([]gen.Option, error) {
	opts := []gen.Option{gen.WithTargetName(c.Target)}
	if c.Header != "" {
		opts = append(opts, gen.WithHeader(c.Header))
	}
	for _, name := range c.Features {
		f, err := gen.FeatureByName(name)
		if err != nil {
			return nil, err
		}
		opts = append(opts, gen.WithFeatures(f))
	}
	return opts, nil
}
