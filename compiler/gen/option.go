package gen

import (
	"errors"
	"io"
	"log/slog"
	"slices"
)

// DefaultHeader is the comment placed on top of every generated file.
const DefaultHeader = "automatically generated by the FlatBuffers compiler, do not modify"

// Config is the read-only option snapshot of a generation run.
type Config struct {
	// Header is the comment placed on top of the generated file.
	Header string
	// Target is the output language.
	Target *Target
	// Features enabled for this run.
	Features []Feature
	// Logger receives diagnostics. Defaults to a discarding logger.
	Logger *slog.Logger
}

// Option configures code generation.
type Option func(*Config) error

// WithHeader sets the file header comment.
// Each line of the header is emitted as a line comment.
func WithHeader(header string) Option {
	return func(c *Config) error {
		c.Header = header
		return nil
	}
}

// WithTarget sets the output language.
func WithTarget(t *Target) Option {
	return func(c *Config) error {
		if t == nil {
			return NewConfigError("Target", nil, "target cannot be nil")
		}
		c.Target = t
		return nil
	}
}

// WithTargetName sets the output language by name.
// Supported targets: "rust".
func WithTargetName(name string) Option {
	return func(c *Config) error {
		t, err := NewTarget(name)
		if err != nil {
			return NewConfigError("Target", name, "unsupported target")
		}
		c.Target = t
		return nil
	}
}

// WithFeatures enables specific features.
// Features control optional code generation capabilities.
func WithFeatures(features ...Feature) Option {
	return func(c *Config) error {
		c.Features = append(c.Features, features...)
		return nil
	}
}

// WithLogger sets the logger used for diagnostics and warnings.
func WithLogger(l *slog.Logger) Option {
	return func(c *Config) error {
		if l == nil {
			return NewConfigError("Logger", nil, "logger cannot be nil")
		}
		c.Logger = l
		return nil
	}
}

// Apply applies options to the config.
// It returns the first error encountered.
func (c *Config) Apply(opts ...Option) error {
	for _, opt := range opts {
		if err := opt(c); err != nil {
			return err
		}
	}
	return nil
}

// ApplyAll applies options and collects all errors.
// Returns a joined error if any options failed.
func (c *Config) ApplyAll(opts ...Option) error {
	var errs []error
	for _, opt := range opts {
		if err := opt(c); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// NewConfig creates a new Config with the given options. Unset values
// get their defaults: the rust target, the default header, the features
// marked Default, and a discarding logger.
func NewConfig(opts ...Option) (*Config, error) {
	c := &Config{Header: DefaultHeader}
	if err := c.Apply(opts...); err != nil {
		return nil, err
	}
	if c.Target == nil {
		c.Target = targets[0]
	}
	if c.Logger == nil {
		c.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	for _, f := range AllFeatures {
		if f.Default && !c.FeatureEnabled(f) {
			c.Features = append(c.Features, f)
		}
	}
	return c, nil
}

// MustNewConfig creates a new Config with the given options.
// It panics if any option fails.
func MustNewConfig(opts ...Option) *Config {
	c, err := NewConfig(opts...)
	if err != nil {
		panic(err)
	}
	return c
}

// FeatureEnabled reports whether the feature f is enabled.
func (c *Config) FeatureEnabled(f Feature) bool {
	return slices.ContainsFunc(c.Features, func(e Feature) bool {
		return e.Name == f.Name
	})
}
