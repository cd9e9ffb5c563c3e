// Package command provides CLI command definitions for synckit-bench.
package command

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/yndnr/synckit-go/internal/bench/config"
	"github.com/yndnr/synckit-go/internal/bench/workload"
	"github.com/yndnr/synckit-go/internal/diagserver"
	"github.com/yndnr/synckit-go/internal/infra/buildinfo"
	"github.com/yndnr/synckit-go/internal/infra/confloader"
	"github.com/yndnr/synckit-go/internal/infra/shutdown"
	"github.com/yndnr/synckit-go/internal/telemetry/logger"
	"github.com/yndnr/synckit-go/internal/telemetry/metric"
)

// shutdownTimeout bounds hook execution on exit. It must exceed the pop
// timeout, which is how long a canceled consumer can stay blocked.
const shutdownTimeout = 30 * time.Second

// RunCommand returns the run command.
func RunCommand() *cli.Command {
	return &cli.Command{
		Name:   "run",
		Usage:  "Run the producer/consumer workload and print a JSON report",
		Flags:  runFlags(),
		Action: runWorkload,
	}
}

// runFlags returns the run command flags. Environment variables go
// through the SYNCKIT_ config layer, not through the flags.
func runFlags() []cli.Flag {
	return []cli.Flag{
		&cli.IntFlag{
			Name:  "producers",
			Usage: "Number of producer goroutines",
		},
		&cli.IntFlag{
			Name:  "consumers",
			Usage: "Number of consumer goroutines",
		},
		&cli.IntFlag{
			Name:  "jobs",
			Usage: "Jobs each producer pushes",
		},
		&cli.IntFlag{
			Name:  "rate",
			Usage: "Pushes per second per producer (0 = unlimited)",
		},
		&cli.DurationFlag{
			Name:  "pop-timeout",
			Usage: "How long a consumer waits for a job",
		},
		&cli.IntFlag{
			Name:  "key-space",
			Usage: "Number of distinct record keys",
		},
		&cli.BoolFlag{
			Name:  "replace-existing",
			Usage: "Overwrite records on key collision",
		},
		&cli.BoolFlag{
			Name:  "fail-on-collision",
			Usage: "Reject records on key collision",
		},
		&cli.DurationFlag{
			Name:  "duration",
			Usage: "Wall-clock cap for the run (0 = run to completion)",
		},
		&cli.StringFlag{
			Name:  "diag-addr",
			Usage: "Enable the diagnostics server on this address",
		},
	}
}

// runWorkload is the run command action.
func runWorkload(c *cli.Context) error {
	cfg, err := loadConfig(c)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	log, err := initLogger(c, cfg)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}

	// The Go version matters when comparing runs, so record it.
	bi := buildinfo.Get()
	log.Info("starting synckit-bench",
		"version", bi.Version,
		"commit", bi.Commit,
		"go", bi.GoVersion,
		"config", c.String("config"))

	reg := metric.NewRegistry()

	runner := workload.NewRunner(workloadConfig(cfg),
		workload.WithLogger(log),
		workload.WithMetrics(reg))

	stats := metric.NewStatsCollector()
	stats.Track("queue", runner.Queue())
	stats.Track("map", runner.Records())
	reg.MustRegister(stats)

	shutdownHandler := shutdown.NewHandler(shutdownTimeout)

	if cfg.Diag.Enabled {
		if err := startDiagServer(cfg, runner, reg, log, shutdownHandler); err != nil {
			return fmt.Errorf("diagnostics server: %w", err)
		}
	}

	if path := c.String("config"); path != "" {
		if err := watchConfig(c, path, runner, log, shutdownHandler); err != nil {
			return fmt.Errorf("config watcher: %w", err)
		}
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var (
		res    *workload.Result
		runErr error
	)
	done := make(chan struct{})

	// Stop the workload first, then the watcher and the diagnostics
	// server (hooks run in reverse registration order).
	shutdownHandler.OnShutdown(func(ctx context.Context) error {
		cancel()
		select {
		case <-done:
			return nil
		case <-ctx.Done():
			return fmt.Errorf("workload did not stop: %w", ctx.Err())
		}
	})

	go func() {
		defer close(done)
		res, runErr = runner.Run(ctx)
		shutdownHandler.Trigger()
	}()

	if err := shutdownHandler.Wait(); err != nil {
		log.Error("shutdown error", "error", err)
	}
	<-done

	if runErr != nil {
		if !errors.Is(runErr, context.Canceled) {
			return runErr
		}
		log.Warn("workload interrupted, reporting partial results")
	}

	return printReport(os.Stdout, res)
}

// loadConfig builds the effective configuration: defaults, then file,
// then environment, then explicitly set flags.
func loadConfig(c *cli.Context) (*config.BenchConfig, error) {
	cfg := config.Default()

	opts := []confloader.Option{}
	if path := c.String("config"); path != "" {
		opts = append(opts, confloader.WithConfigFile(path))
	}

	loader := confloader.NewLoader(opts...)
	if err := loader.Load(cfg); err != nil {
		return nil, err
	}

	applyFlagOverrides(c, cfg)

	if err := config.Verify(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// applyFlagOverrides applies explicitly set command-line flags on top
// of file and environment values.
func applyFlagOverrides(c *cli.Context, cfg *config.BenchConfig) {
	if c.IsSet("producers") {
		cfg.Workload.Producers = c.Int("producers")
	}
	if c.IsSet("consumers") {
		cfg.Workload.Consumers = c.Int("consumers")
	}
	if c.IsSet("jobs") {
		cfg.Workload.JobsPerProducer = c.Int("jobs")
	}
	if c.IsSet("rate") {
		cfg.Workload.PushRate = c.Int("rate")
	}
	if c.IsSet("pop-timeout") {
		cfg.Workload.PopTimeout = c.Duration("pop-timeout")
	}
	if c.IsSet("key-space") {
		cfg.Workload.KeySpace = c.Int("key-space")
	}
	if c.IsSet("replace-existing") {
		cfg.Workload.ReplaceExisting = c.Bool("replace-existing")
	}
	if c.IsSet("fail-on-collision") {
		cfg.Workload.FailOnCollision = c.Bool("fail-on-collision")
	}
	if c.IsSet("duration") {
		cfg.Workload.Duration = c.Duration("duration")
	}
	if c.IsSet("diag-addr") {
		cfg.Diag.Enabled = true
		cfg.Diag.Addr = c.String("diag-addr")
	}
}

// workloadConfig maps the configuration onto the workload package.
func workloadConfig(cfg *config.BenchConfig) workload.Config {
	return workload.Config{
		Producers:       cfg.Workload.Producers,
		Consumers:       cfg.Workload.Consumers,
		JobsPerProducer: cfg.Workload.JobsPerProducer,
		PushRate:        cfg.Workload.PushRate,
		PopTimeout:      cfg.Workload.PopTimeout,
		KeySpace:        cfg.Workload.KeySpace,
		ReplaceExisting: cfg.Workload.ReplaceExisting,
		FailOnCollision: cfg.Workload.FailOnCollision,
		Duration:        cfg.Workload.Duration,
	}
}

// initLogger initializes the structured logger and installs it as the
// package default. Logs go to stderr so the report owns stdout.
func initLogger(c *cli.Context, cfg *config.BenchConfig) (logger.Logger, error) {
	level := cfg.Log.Level
	if c.Bool("verbose") {
		level = "debug"
	}

	log, err := logger.New(logger.Config{
		Level:  level,
		Format: cfg.Log.Format,
		Output: os.Stderr,
	})
	if err != nil {
		return nil, err
	}

	logger.SetDefault(log)
	return log, nil
}

// startDiagServer starts the diagnostics HTTP server and registers its
// shutdown hook.
func startDiagServer(cfg *config.BenchConfig, runner *workload.Runner, reg *metric.Registry, log logger.Logger, sh *shutdown.Handler) error {
	router := diagserver.NewRouter(&diagserver.RouterConfig{
		Snapshots: map[string]diagserver.SnapshotSource{
			"queue": func() any { return runner.Queue().Snapshot() },
			"map":   func() any { return runner.Records().Snapshot() },
		},
		Metrics: reg.Handler(),
		Logger:  log,
	})

	srv := diagserver.New(cfg.Diag.Addr, router)

	sh.OnShutdown(func(ctx context.Context) error {
		log.Info("shutting down diagnostics server")
		return srv.Shutdown(ctx)
	})

	go func() {
		log.Info("diagnostics server listening", "addr", cfg.Diag.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("diagnostics server error", "error", err)
		}
	}()

	return nil
}

// watchConfig reloads the runtime-adjustable configuration subset (log
// level, collision policies) when the config file changes.
func watchConfig(c *cli.Context, path string, runner *workload.Runner, log logger.Logger, sh *shutdown.Handler) error {
	watcher, err := confloader.NewWatcher()
	if err != nil {
		return err
	}

	watcher.OnChange(func(changed string) {
		// The watcher covers the whole directory.
		if filepath.Base(changed) != filepath.Base(path) {
			return
		}
		reloadConfig(c, runner, log)
	})

	if err := watcher.Watch(path); err != nil {
		return err
	}
	watcher.StartAsync()

	sh.OnShutdown(func(context.Context) error {
		return watcher.Stop()
	})

	return nil
}

// reloadConfig re-reads the configuration and applies the runtime
// adjustable subset. A broken config keeps the current settings.
func reloadConfig(c *cli.Context, runner *workload.Runner, log logger.Logger) {
	cfg, err := loadConfig(c)
	if err != nil {
		log.Warn("config reload failed, keeping current configuration", "error", err)
		return
	}

	// --verbose pins debug for the whole run.
	if !c.Bool("verbose") && cfg.Log.Level != logger.GetLevel() {
		logger.SetLevel(cfg.Log.Level)
	}
	runner.ApplyPolicies(cfg.Workload.ReplaceExisting, cfg.Workload.FailOnCollision)

	log.Info("configuration reloaded",
		"log_level", cfg.Log.Level,
		"replace_existing", cfg.Workload.ReplaceExisting,
		"fail_on_collision", cfg.Workload.FailOnCollision)
}

// printReport writes the final run report as indented JSON.
func printReport(w io.Writer, res *workload.Result) error {
	data, err := json.MarshalIndent(res, "", "  ")
	if err != nil {
		return fmt.Errorf("encode report: %w", err)
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}
