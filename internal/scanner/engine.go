// internal/scanner/engine.go
// Stride scan engine: one goroutine per stride, single collector

package scanner

import (
	"context"
	"fmt"
	"net/netip"

	"golang.org/x/sync/errgroup"

	"github.com/aspnmy/portsweep/internal/models"
	"github.com/aspnmy/portsweep/pkg/logger"
)

// Engine sweeps the whole TCP port range of one target
type Engine struct {
	prober Prober
	onOpen func(port uint16)
}

// Option configures an Engine
type Option func(*Engine)

// WithObserver registers fn to be called by the collector for every open
// port, in arrival order. fn runs on the collecting goroutine only.
func WithObserver(fn func(port uint16)) Option {
	return func(e *Engine) {
		e.onOpen = fn
	}
}

// NewEngine creates an engine that checks ports with prober
func NewEngine(prober Prober, opts ...Option) *Engine {
	e := &Engine{prober: prober}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Validate checks cfg before any worker is started
func Validate(cfg models.ScanConfig) error {
	if !cfg.Target.IsValid() {
		return &ScannerError{Message: "invalid configuration", Cause: ErrInvalidTarget}
	}
	if cfg.Workers < 1 || cfg.Workers > models.MaxPort {
		return &ScannerError{
			Message: fmt.Sprintf("invalid configuration (workers=%d)", cfg.Workers),
			Cause:   ErrInvalidWorkerCount,
		}
	}
	if cfg.Timeout < 0 {
		return &ScannerError{Message: "invalid configuration", Cause: ErrInvalidTimeout}
	}
	return nil
}

// Scan starts cfg.Workers goroutines, collects every open port they report
// and returns the set sorted ascending. It returns only after every worker
// has finished. A cancelled ctx stops the workers between attempts and
// yields an error without partial results.
func (e *Engine) Scan(ctx context.Context, cfg models.ScanConfig) (models.OpenPortSet, error) {
	if err := Validate(cfg); err != nil {
		return nil, err
	}

	strides, err := Partition(cfg.Workers)
	if err != nil {
		return nil, err
	}

	open := make(chan uint16, cfg.Workers)

	var g errgroup.Group
	for _, stride := range strides {
		stride := stride
		g.Go(func() error {
			return e.worker(ctx, cfg.Target, stride, open)
		})
	}

	// The channel is closed once the last worker returns; errc is buffered
	// so the closer never blocks on a collector that is still draining.
	errc := make(chan error, 1)
	go func() {
		errc <- g.Wait()
		close(open)
	}()

	var ports models.OpenPortSet
	for port := range open {
		ports = append(ports, port)
		if e.onOpen != nil {
			e.onOpen(port)
		}
	}

	if err := <-errc; err != nil {
		return nil, &ScannerError{Message: "scan interrupted", Cause: err}
	}

	ports.Sort()
	return ports, nil
}

// worker probes every port of its stride and sends the open ones
func (e *Engine) worker(ctx context.Context, target netip.Addr, stride models.Stride, open chan<- uint16) error {
	var (
		err     error
		checked int
		found   int
	)

	stride.Each(func(port uint16) bool {
		if err = ctx.Err(); err != nil {
			return false
		}
		checked++
		if e.prober.Probe(ctx, netip.AddrPortFrom(target, port)) {
			found++
			open <- port
		}
		return true
	})

	logger.Debug("Worker finished",
		logger.Int("worker", stride.Offset),
		logger.Int("checked", checked),
		logger.Int("open", found),
		logger.Bool("cancelled", err != nil),
	)
	return err
}
