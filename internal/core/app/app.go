package app

import (
	"context"
	"io"
	"log/slog"
	"path/filepath"
	"sync"
	"time"

	"pyuml/internal/core/config"
	"pyuml/internal/core/errors"
	"pyuml/internal/data/history"
	"pyuml/internal/engine/classifier"
	"pyuml/internal/engine/loader"
	"pyuml/internal/engine/model"
	"pyuml/internal/output"
	"pyuml/internal/shared/observability"
	"pyuml/internal/shared/util"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// Result describes one finished conversion.
type Result struct {
	RunID      string
	InputDir   string
	OutputPath string
	Stats      model.Stats
	Relations  []model.Relation
	Duration   time.Duration
}

type App struct {
	Config  *config.Config
	loader  *loader.Loader
	history *history.Store
	limiter *util.Limiter

	runMu   sync.Mutex
	stateMu sync.RWMutex
	lastRun *Result
	lastErr error
}

func New(cfg *config.Config) (*App, error) {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}

	ld, err := loader.New(loader.Options{
		Suffix:  cfg.Input.Suffix,
		Exclude: cfg.Input.Exclude,
	})
	if err != nil {
		return nil, err
	}

	a := &App{
		Config:  cfg,
		loader:  ld,
		limiter: util.NewLimiter(cfg.Watch.Rate, cfg.Watch.Burst),
	}

	if cfg.History.Enabled {
		store, err := history.Open(cfg.History.Path)
		if err != nil {
			return nil, errors.WrapPath(err, errors.CodeInternal, "open run history", cfg.History.Path)
		}
		a.history = store
		slog.Debug("run history opened", "path", store.Path())
	}

	return a, nil
}

func (a *App) Close() error {
	if a.history == nil {
		return nil
	}
	return a.history.Close()
}

// DefaultOutputPath names the document after the input directory.
func DefaultOutputPath(dir, ext string) string {
	return filepath.Clean(dir) + "." + ext
}

// Convert writes the class diagram for inputDir to outputPath. The input
// directory is listed before the output file is created, so a missing input
// leaves no output behind.
func (a *App) Convert(ctx context.Context, inputDir, outputPath string) (Result, error) {
	a.runMu.Lock()
	defer a.runMu.Unlock()

	start := time.Now()
	runID := uuid.NewString()
	ctx, span := observability.Tracer.Start(ctx, "pyuml.convert", trace.WithAttributes(
		attribute.String("run.id", runID),
		attribute.String("input.dir", inputDir),
		attribute.String("output.path", outputPath),
	))
	defer span.End()

	res, err := a.convert(ctx, runID, inputDir, outputPath)
	if err == nil && a.Config.Output.TSV != "" {
		err = writeTSV(a.Config.Output.TSV, res.Relations)
	}
	res.Duration = time.Since(start)
	a.record(span, res, err)
	if err != nil {
		return res, err
	}

	a.saveRun(res)
	slog.Info("diagram written",
		"run_id", res.RunID,
		"input", res.InputDir,
		"output", res.OutputPath,
		"units", res.Stats.Units,
		"classes", res.Stats.Classes,
		"attributes", res.Stats.Attributes,
		"relations", res.Stats.Relations,
		"duration", res.Duration,
	)
	return res, nil
}

func (a *App) convert(ctx context.Context, runID, inputDir, outputPath string) (Result, error) {
	res := Result{RunID: runID, InputDir: inputDir, OutputPath: outputPath}

	paths, err := a.loader.Discover(inputDir)
	if err != nil {
		return res, err
	}

	f, err := util.CreateWithDirs(outputPath)
	if err != nil {
		err = errors.WrapPath(err, errors.CodeOutputAccess, "create output file", outputPath)
		return res, errors.AddContext(err, errors.CtxOperation, "create_output")
	}

	res.Stats, res.Relations, err = a.render(ctx, paths, f)
	if err != nil {
		_ = f.Close()
		return res, err
	}
	if err := f.Close(); err != nil {
		err = errors.WrapPath(err, errors.CodeOutputAccess, "close output file", outputPath)
		return res, errors.AddContext(err, errors.CtxOperation, "close_output")
	}
	return res, nil
}

// ConvertTo writes the diagram for inputDir to w, as used for stdout output.
// Nothing is recorded in history.
func (a *App) ConvertTo(ctx context.Context, inputDir string, w io.Writer) (Result, error) {
	start := time.Now()
	res := Result{RunID: uuid.NewString(), InputDir: inputDir}

	paths, err := a.loader.Discover(inputDir)
	if err != nil {
		return res, err
	}
	res.Stats, res.Relations, err = a.render(ctx, paths, w)
	res.Duration = time.Since(start)
	return res, err
}

func (a *App) render(ctx context.Context, paths []string, w io.Writer) (model.Stats, []model.Relation, error) {
	var stats model.Stats

	writer := output.NewPlantUMLWriter(w)
	cls := classifier.New(writer)

	for _, path := range paths {
		if err := ctx.Err(); err != nil {
			return stats, writer.Relations(), err
		}

		unit, err := a.loader.ReadUnit(path)
		if err != nil {
			return stats, writer.Relations(), err
		}

		_, span := observability.Tracer.Start(ctx, "pyuml.unit", trace.WithAttributes(
			attribute.String("unit", unit.Namespace),
		))
		unitStats := cls.Classify(unit)
		span.SetAttributes(
			attribute.Int("classes", unitStats.Classes),
			attribute.Int("relations", unitStats.Relations),
		)
		span.End()

		stats.Add(unitStats)
		observability.UnitsProcessedTotal.Inc()

		// Stop early once the destination refuses writes.
		if err := writer.Err(); err != nil {
			return stats, writer.Relations(), writeErr(err, unit.Namespace)
		}
	}

	if err := writer.Finish(); err != nil {
		return stats, writer.Relations(), writeErr(err, "")
	}
	return stats, writer.Relations(), nil
}

func (a *App) record(span trace.Span, res Result, err error) {
	a.stateMu.Lock()
	defer a.stateMu.Unlock()

	observability.ConversionDuration.Observe(res.Duration.Seconds())
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		observability.ConversionsTotal.WithLabelValues("error").Inc()
		a.lastErr = err
		return
	}

	observability.ConversionsTotal.WithLabelValues("success").Inc()
	observability.DeclarationsTotal.WithLabelValues("class").Add(float64(res.Stats.Classes))
	observability.DeclarationsTotal.WithLabelValues("attribute").Add(float64(res.Stats.Attributes))
	for _, r := range res.Relations {
		observability.RelationsTotal.WithLabelValues(r.Kind.String()).Inc()
	}
	observability.LastRunRelations.Set(float64(len(res.Relations)))

	a.lastErr = nil
	last := res
	a.lastRun = &last
}

func (a *App) saveRun(res Result) {
	if a.history == nil {
		return
	}
	run := history.Run{
		ID:         res.RunID,
		Timestamp:  time.Now().UTC(),
		InputDir:   res.InputDir,
		OutputPath: res.OutputPath,
		Units:      res.Stats.Units,
		Classes:    res.Stats.Classes,
		Attributes: res.Stats.Attributes,
		Relations:  res.Stats.Relations,
		Duration:   res.Duration,
	}
	if err := a.history.SaveRun(run); err != nil {
		slog.Warn("failed to record run history", "run_id", res.RunID, "error", err)
	}
}

// RecentRuns returns up to limit recorded runs, newest first.
func (a *App) RecentRuns(limit int) ([]history.Run, error) {
	if a.history == nil {
		return nil, errors.New(errors.CodeValidationError, "run history is disabled")
	}
	runs, err := a.history.RecentRuns(limit)
	if err != nil {
		return nil, errors.Wrap(err, errors.CodeInternal, "load run history")
	}
	return runs, nil
}

func writeErr(err error, unit string) error {
	err = errors.AddContext(errors.Wrap(err, errors.CodeOutputAccess, "write diagram"), errors.CtxOperation, "write_diagram")
	if unit != "" {
		err = errors.AddContext(err, errors.CtxUnit, unit)
	}
	return err
}

func writeTSV(path string, relations []model.Relation) error {
	content, err := output.NewTSVGenerator(relations).Generate()
	if err != nil {
		return errors.Wrap(err, errors.CodeInternal, "generate relation listing")
	}
	if err := util.WriteStringWithDirs(path, content, 0o644); err != nil {
		err = errors.WrapPath(err, errors.CodeOutputAccess, "write relation listing", path)
		return errors.AddContext(err, errors.CtxOperation, "write_tsv")
	}
	return nil
}
