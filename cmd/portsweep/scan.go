package main

import (
	"context"
	"errors"
	"fmt"
	"net/netip"
	"os"
	"os/signal"
	"syscall"

	"github.com/aspnmy/portsweep/internal/app"
	"github.com/aspnmy/portsweep/internal/cli"
	"github.com/aspnmy/portsweep/internal/core"
	"github.com/aspnmy/portsweep/internal/models"
	"github.com/aspnmy/portsweep/internal/output"
	"github.com/aspnmy/portsweep/internal/scanner"
	"github.com/aspnmy/portsweep/pkg/logger"
)

// configEnv names the optional YAML config file
const configEnv = core.EnvPrefix + "CONFIG"

// usageError marks errors caused by the command line or configuration
type usageError struct {
	err error
}

func (e *usageError) Error() string { return e.err.Error() }

func (e *usageError) Unwrap() error { return e.err }

func renderUsageError(program string, err error) {
	output.RenderError(os.Stderr, program, err)
}

func runScan(ctx context.Context, program string, args []string) error {
	parsed, err := cli.Resolve(args)
	if errors.Is(err, cli.ErrHelp) {
		output.RenderUsage(os.Stdout, cli.Usage(program))
		return nil
	}
	if err != nil {
		return &usageError{err: err}
	}

	overrides := map[string]interface{}{
		"scanner.target": parsed.Target.String(),
	}
	if parsed.WorkersSet {
		overrides["scanner.workers"] = parsed.Workers
	}

	cfg, err := core.Load(core.Options{
		File:      os.Getenv(configEnv),
		Overrides: overrides,
		Probers:   scanner.Names(),
	})
	if err != nil {
		if errors.Is(err, core.ErrInvalidConfig) {
			return &usageError{err: err}
		}
		return err
	}

	if err := logger.Init(logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		File:   cfg.Log.File,
	}); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	target, err := netip.ParseAddr(cfg.Scanner.Target)
	if err != nil {
		return &usageError{err: err}
	}

	prober, err := scanner.Get(cfg.Scanner.Prober, cfg.Scanner.Timeout)
	if err != nil {
		return &usageError{err: err}
	}

	reporter, err := output.NewProgressReporter(cfg.Output.Progress, os.Stdout)
	if err != nil {
		return &usageError{err: err}
	}

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	scannerApp := app.NewScannerApp(app.ScannerDeps{
		Prober:    prober,
		Formatter: output.NewConsoleFormatter(os.Stdout),
		Reporter:  reporter,
	})

	_, err = scannerApp.Run(ctx, models.ScanConfig{
		Target:  target,
		Workers: cfg.Scanner.Workers,
		Timeout: cfg.Scanner.Timeout,
	})
	switch {
	case errors.Is(err, scanner.ErrInvalidWorkerCount),
		errors.Is(err, scanner.ErrInvalidTarget),
		errors.Is(err, scanner.ErrInvalidTimeout):
		return &usageError{err: err}
	}
	return err
}
