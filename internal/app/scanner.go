// internal/app/scanner.go
// Application orchestrator: engine, progress and result output

package app

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/aspnmy/portsweep/internal/models"
	"github.com/aspnmy/portsweep/internal/output"
	"github.com/aspnmy/portsweep/internal/scanner"
	"github.com/aspnmy/portsweep/pkg/logger"
)

// ScannerApp runs a single sweep and prints its result
type ScannerApp struct {
	prober    scanner.Prober
	formatter output.Formatter
	reporter  output.ProgressReporter
}

// ScannerDeps holds dependencies for the scanner app
type ScannerDeps struct {
	Prober    scanner.Prober
	Formatter output.Formatter
	Reporter  output.ProgressReporter
}

// NewScannerApp creates a new scanner application
func NewScannerApp(deps ScannerDeps) *ScannerApp {
	reporter := deps.Reporter
	if reporter == nil {
		reporter = output.NopReporter{}
	}
	return &ScannerApp{
		prober:    deps.Prober,
		formatter: deps.Formatter,
		reporter:  reporter,
	}
}

// Run scans cfg.Target and writes the open ports. Nothing is written to
// the formatter when the scan fails.
func (app *ScannerApp) Run(ctx context.Context, cfg models.ScanConfig) (models.Summary, error) {
	summary := models.Summary{
		ScanID:  uuid.NewString(),
		Target:  cfg.Target,
		Workers: cfg.Workers,
	}

	logger.Info("Starting scan",
		logger.String("scan_id", summary.ScanID),
		logger.Stringer("target", cfg.Target),
		logger.Int("workers", cfg.Workers),
		logger.Duration("timeout", cfg.Timeout),
	)

	engine := scanner.NewEngine(app.prober, scanner.WithObserver(app.reporter.Mark))

	start := time.Now()
	ports, err := engine.Scan(ctx, cfg)
	summary.Elapsed = time.Since(start)
	app.reporter.Finish()

	if err != nil {
		logger.Error("Scan failed",
			logger.String("scan_id", summary.ScanID),
			logger.Err(err),
		)
		return summary, fmt.Errorf("scan %s: %w", summary.ScanID, err)
	}

	summary.Open = len(ports)

	if err := app.formatter.Write(ports); err != nil {
		return summary, fmt.Errorf("failed to write results: %w", err)
	}
	if err := app.formatter.Flush(); err != nil {
		return summary, fmt.Errorf("failed to flush results: %w", err)
	}

	logger.Info("Scan complete",
		logger.String("scan_id", summary.ScanID),
		logger.Int("open_ports", summary.Open),
		logger.Duration("duration", summary.Elapsed),
	)

	return summary, nil
}
