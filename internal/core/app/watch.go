package app

import (
	"context"
	"log/slog"

	"pyuml/internal/core/errors"
	"pyuml/internal/core/watcher"
	"pyuml/internal/shared/observability"
)

// Watch converts once, then regenerates the document whenever a source file
// in inputDir changes. It blocks until ctx is done.
func (a *App) Watch(ctx context.Context, inputDir, outputPath string) error {
	if _, err := a.Convert(ctx, inputDir, outputPath); err != nil {
		return err
	}

	w, err := watcher.NewWatcher(a.Config.Watch.Debounce, a.loader, func(paths []string) {
		a.HandleChanges(ctx, inputDir, outputPath, paths)
	})
	if err != nil {
		return errors.Wrap(err, errors.CodeInternal, "create watcher")
	}
	defer w.Close()

	if err := w.Watch(inputDir); err != nil {
		return errors.WrapPath(err, errors.CodeInputAccess, "watch input directory", inputDir)
	}
	slog.Info("watching for changes", "input", inputDir, "output", outputPath)

	<-ctx.Done()
	return nil
}

// HandleChanges regenerates the document for a batch of changed files,
// waiting on the limiter when regenerations come too fast.
func (a *App) HandleChanges(ctx context.Context, inputDir, outputPath string, paths []string) {
	if !a.limiter.Allow(1) {
		observability.WatchThrottledTotal.Inc()
		slog.Debug("regeneration throttled", "files", len(paths))
		if err := a.limiter.Wait(ctx, 1); err != nil {
			return
		}
	}

	slog.Info("sources changed", "files", len(paths))
	for _, p := range paths {
		slog.Debug("changed", "file", p)
	}
	if _, err := a.Convert(ctx, inputDir, outputPath); err != nil {
		slog.Error("regeneration failed", "error", err)
	}
}
