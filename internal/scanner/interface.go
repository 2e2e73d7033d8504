// internal/scanner/interface.go
// Prober interface, prober registry and scanner errors

package scanner

import (
	"context"
	"errors"
	"net/netip"
	"sort"
	"time"
)

// Prober decides whether a single TCP port accepts connections.
// Any failure (refused, timeout, unreachable) is reported as false.
type Prober interface {
	Probe(ctx context.Context, addr netip.AddrPort) bool
}

// ProberFunc adapts a plain function to the Prober interface
type ProberFunc func(ctx context.Context, addr netip.AddrPort) bool

// Probe calls f(ctx, addr)
func (f ProberFunc) Probe(ctx context.Context, addr netip.AddrPort) bool {
	return f(ctx, addr)
}

// ProberFactory creates a prober with the given per-attempt timeout
type ProberFactory func(timeout time.Duration) Prober

// Registry holds available probers
var Registry = make(map[string]ProberFactory)

// Register registers a prober
func Register(name string, factory ProberFactory) {
	Registry[name] = factory
}

// Get creates a prober by name
func Get(name string, timeout time.Duration) (Prober, error) {
	factory, ok := Registry[name]
	if !ok {
		return nil, &ScannerError{Message: "prober " + name, Cause: ErrProberNotFound}
	}
	return factory(timeout), nil
}

// Names lists registered prober names in sorted order
func Names() []string {
	names := make([]string, 0, len(Registry))
	for name := range Registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Configuration errors. All of them are fatal and detected before any
// worker is started.
var (
	ErrInvalidWorkerCount = errors.New("worker count must be between 1 and 65535")
	ErrInvalidTarget      = errors.New("target is not a valid IP address")
	ErrInvalidTimeout     = errors.New("timeout must not be negative")
	ErrProberNotFound     = errors.New("prober not found")
)

// ScannerError represents a scanner-specific error
type ScannerError struct {
	Message string
	Cause   error
}

func (e *ScannerError) Error() string {
	if e.Cause != nil {
		return e.Message + ": " + e.Cause.Error()
	}
	return e.Message
}

func (e *ScannerError) Unwrap() error {
	return e.Cause
}
