// # cmd/pyuml/main.go
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"pyuml/internal/core/app"
	"pyuml/internal/core/config"
	"pyuml/internal/core/errors"
	"pyuml/internal/shared/observability"
	"pyuml/internal/ui/report"
)

const VERSION = "1.0.0"

const usage = "usage: pyuml py-directory [output-file]"

// stdoutPath as the output file writes the diagram to standard output.
const stdoutPath = "-"

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	flags := flag.NewFlagSet("pyuml", flag.ContinueOnError)
	flags.SetOutput(stderr)
	var (
		configPath = flags.String("config", config.DefaultPath, "Path to config file")
		watch      = flags.Bool("watch", false, "Regenerate the diagram when sources change")
		verbose    = flags.Bool("verbose", false, "Enable verbose logging")
		version    = flags.Bool("version", false, "Print version and exit")
		historyN   = flags.Int("history", 0, "Print the last N recorded runs and exit")
		format     = flags.String("format", report.FormatTable, "History output format: table, tsv or json")
	)
	if err := flags.Parse(args); err != nil {
		return 2
	}

	if *version {
		fmt.Fprintf(stdout, "pyuml v%s\n", VERSION)
		return 0
	}

	// Setup logging
	logLevel := slog.LevelInfo
	if *verbose {
		logLevel = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)

	// Load config; only the implicit default path may be missing.
	cfg, err := config.LoadOrDefault(*configPath, *configPath == config.DefaultPath)
	if err != nil {
		slog.Error("failed to load config", "path", *configPath, "error", err)
		return 1
	}
	config.ApplyEnvOverrides(cfg)
	if errs := config.Validate(cfg); len(errs) > 0 {
		for _, e := range errs {
			slog.Error("invalid config", "error", e)
		}
		return 1
	}

	if *historyN > 0 {
		return printHistory(cfg, *historyN, *format, stdout)
	}

	if flags.NArg() < 1 || flags.NArg() > 2 {
		fmt.Fprintln(stdout, usage)
		return 0
	}
	inputDir := flags.Arg(0)
	outputPath := app.DefaultOutputPath(inputDir, cfg.Output.Extension)
	if flags.NArg() == 2 {
		outputPath = flags.Arg(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := observability.InitTracing(ctx, cfg.Observability.OTLPEndpoint, cfg.Observability.ServiceName)
	if err != nil {
		slog.Error("failed to initialize tracing", "error", err)
		return 1
	}
	defer flushTracing(shutdownTracing)

	converter, err := app.New(cfg)
	if err != nil {
		slog.Error("failed to initialize app", "error", err)
		return 1
	}
	defer converter.Close()

	if addr := cfg.Observability.MetricsAddr; addr != "" {
		srv := observability.NewServer(addr, app.NewHealthService(converter))
		if err := srv.Start(); err != nil {
			slog.Error("failed to start observability server", "addr", addr, "error", err)
			return 1
		}
		defer func() {
			stopCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()
			_ = srv.Stop(stopCtx)
		}()
	}

	if *watch {
		if outputPath == stdoutPath {
			slog.Error("watch mode needs an output file")
			return 1
		}
		if err := converter.Watch(ctx, inputDir, outputPath); err != nil {
			slog.Error("watch failed", "code", errors.CodeOf(err), "error", err)
			return 1
		}
		return 0
	}

	if outputPath == stdoutPath {
		_, err = converter.ConvertTo(ctx, inputDir, stdout)
	} else {
		_, err = converter.Convert(ctx, inputDir, outputPath)
	}
	if err != nil {
		slog.Error("conversion failed", "code", errors.CodeOf(err), "error", err)
		return 1
	}
	return 0
}

func printHistory(cfg *config.Config, limit int, format string, stdout io.Writer) int {
	cfg.History.Enabled = true
	converter, err := app.New(cfg)
	if err != nil {
		slog.Error("failed to open run history", "error", err)
		return 1
	}
	defer converter.Close()

	runs, err := converter.RecentRuns(limit)
	if err != nil {
		slog.Error("failed to load run history", "error", err)
		return 1
	}
	out, err := report.RenderRuns(runs, format)
	if err != nil {
		slog.Error("failed to render run history", "error", err)
		return 1
	}
	if _, err := stdout.Write(out); err != nil {
		slog.Error("failed to print run history", "error", err)
		return 1
	}
	return 0
}

func flushTracing(shutdown func(context.Context) error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := shutdown(ctx); err != nil {
		slog.Warn("failed to flush traces", "error", err)
	}
}
