package cli

import (
	"context"
	"log/slog"
	"path/filepath"
	"slices"

	"github.com/google/uuid"

	"github.com/syssam/flatgen/internal/watcher"
)

// Watch regenerates inputs when they change, until ctx is done. Each batch
// of changes is logged under its own run id.
func Watch(ctx context.Context, r *Runner, cfg *Config, log *slog.Logger) error {
	inputs := make(map[string]string, len(cfg.Inputs))
	var dirs []string
	for _, in := range cfg.Inputs {
		abs, err := filepath.Abs(in)
		if err != nil {
			return err
		}
		inputs[abs] = in
		if dir := filepath.Dir(abs); !slices.Contains(dirs, dir) {
			dirs = append(dirs, dir)
		}
	}

	w, err := watcher.New(cfg.Debounce, cfg.Match, func(paths []string) {
		changed := changedInputs(inputs, paths)
		if len(changed) == 0 {
			return
		}
		runLog := log.With("run", uuid.New().String())
		runLog.Info("inputs changed", "files", changed)
		if err := r.Run(ctx, changed); err != nil {
			runLog.Error("regeneration failed", "error", err)
		}
	})
	if err != nil {
		return err
	}
	defer w.Close()
	w.SetLogger(log)
	if err := w.Watch(dirs); err != nil {
		return err
	}
	log.Info("watching", "dirs", dirs, "match", cfg.Match)
	<-ctx.Done()
	return nil
}

// changedInputs returns the inputs, as given on the command line, among
// the changed paths.
func changedInputs(inputs map[string]string, paths []string) []string {
	var changed []string
	for _, p := range paths {
		abs, err := filepath.Abs(p)
		if err != nil {
			continue
		}
		if in, ok := inputs[abs]; ok && !slices.Contains(changed, in) {
			changed = append(changed, in)
		}
	}
	return changed
}
