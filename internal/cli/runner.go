package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/syssam/flatgen/compiler/gen"
	"github.com/syssam/flatgen/compiler/load"
)

// Runner generates code for IR files. Inputs are independent: each one is
// loaded and generated with its own schema and generator state, in
// parallel up to the configured number of jobs.
type Runner struct {
	cfg *Config
	gen *gen.Generator
	log *slog.Logger

	mu      sync.Mutex
	metrics Metrics
}

// Metrics accumulates the totals of all runs.
type Metrics struct {
	FilesGenerated int
	TotalBytes     int64
	Warnings       int
}

// output is the generated code of one input, written once the whole run
// succeeded.
type output struct {
	input string
	path  string
	res   *gen.Result
}

// NewRunner creates a runner for cfg.
func NewRunner(cfg *Config, log *slog.Logger) (*Runner, error) {
	opts, err := cfg.Options()
	if err != nil {
		return nil, err
	}
	g, err := gen.New(append(opts, gen.WithLogger(log))...)
	if err != nil {
		return nil, err
	}
	return &Runner{cfg: cfg, gen: g, log: log}, nil
}

// Metrics returns a snapshot of the accumulated metrics.
func (r *Runner) Metrics() Metrics {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.metrics
}

// OutputPath returns the path of the file generated for input.
func (r *Runner) OutputPath(input string) string {
	base := strings.TrimSuffix(filepath.Base(input), filepath.Ext(input))
	return filepath.Join(r.cfg.Out, r.gen.Target().FileName(base))
}

// Run generates code for every input. Nothing is written unless all
// inputs succeed.
func (r *Runner) Run(ctx context.Context, inputs []string) error {
	outputs := make([]output, len(inputs))

	eg, ctx := errgroup.WithContext(ctx)
	eg.SetLimit(r.cfg.Jobs)
	for i, input := range inputs {
		i, input := i, input
		eg.Go(func() error {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}
			res, err := r.generate(input)
			if err != nil {
				return err
			}
			outputs[i] = output{input: input, path: r.OutputPath(input), res: res}
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return err
	}

	if err := os.MkdirAll(r.cfg.Out, 0o755); err != nil {
		return err
	}
	for _, o := range outputs {
		if err := os.WriteFile(o.path, []byte(o.res.Code), 0o644); err != nil {
			return err
		}
		r.log.Info("generated", "input", o.input, "output", o.path, "warnings", len(o.res.Warnings))
		r.record(o.res)
	}
	return nil
}

func (r *Runner) generate(input string) (*gen.Result, error) {
	s, err := load.Load(input)
	if err != nil {
		return nil, err
	}
	r.log.Debug("loaded", "input", input, "enums", len(s.Enums), "structs", len(s.Structs))
	res, err := r.gen.Generate(s)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", input, err)
	}
	return res, nil
}

func (r *Runner) record(res *gen.Result) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.metrics.FilesGenerated++
	r.metrics.TotalBytes += int64(len(res.Code))
	r.metrics.Warnings += len(res.Warnings)
}
