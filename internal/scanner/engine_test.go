// internal/scanner/engine_test.go
// Unit tests for the stride scan engine using an in-memory prober

package scanner

import (
	"context"
	"errors"
	"net/netip"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aspnmy/portsweep/internal/models"
)

var loopback = netip.MustParseAddr("127.0.0.1")

// fakeProber reports a fixed set of ports as open and counts every attempt
type fakeProber struct {
	open  map[uint16]bool
	calls [models.MaxPort + 1]atomic.Int32
}

func newFakeProber(open ...uint16) *fakeProber {
	p := &fakeProber{open: make(map[uint16]bool)}
	for _, port := range open {
		p.open[port] = true
	}
	return p
}

func (p *fakeProber) Probe(_ context.Context, addr netip.AddrPort) bool {
	p.calls[addr.Port()].Add(1)
	return p.open[addr.Port()]
}

func TestEngine_Scan_Scenarios(t *testing.T) {
	tests := []struct {
		name    string
		workers int
		open    []uint16
		want    models.OpenPortSet
	}{
		{name: "single worker", workers: 1, open: []uint16{443, 80}, want: models.OpenPortSet{80, 443}},
		{name: "four workers", workers: 4, open: []uint16{80, 443}, want: models.OpenPortSet{80, 443}},
		{name: "no open ports", workers: 4, open: nil, want: nil},
		{name: "range edges", workers: 3, open: []uint16{65535, 1}, want: models.OpenPortSet{1, 65535}},
		{name: "one worker per port", workers: 65535, open: []uint16{22, 65534}, want: models.OpenPortSet{22, 65534}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			engine := NewEngine(newFakeProber(tt.open...))
			got, err := engine.Scan(context.Background(), models.ScanConfig{Target: loopback, Workers: tt.workers})
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestEngine_Scan_NoLossAcrossWorkerCounts(t *testing.T) {
	open := []uint16{7, 21, 22, 25, 53, 80, 110, 143, 443, 993, 3306, 5432, 8080, 11434, 65000}
	want := models.OpenPortSet{7, 21, 22, 25, 53, 80, 110, 143, 443, 993, 3306, 5432, 8080, 11434, 65000}

	for _, workers := range []int{1, 2, 4, 9, 64, 500, 4096} {
		prober := newFakeProber(open...)
		got, err := NewEngine(prober).Scan(context.Background(), models.ScanConfig{Target: loopback, Workers: workers})
		require.NoError(t, err, "workers=%d", workers)
		assert.Equal(t, want, got, "workers=%d", workers)

		assert.Zero(t, prober.calls[0].Load(), "port 0 probed")
		for port := 1; port <= models.MaxPort; port++ {
			if n := prober.calls[port].Load(); n != 1 {
				t.Fatalf("workers=%d: port %d probed %d times", workers, port, n)
			}
		}
	}
}

func TestEngine_Scan_InvalidConfig(t *testing.T) {
	tests := []struct {
		name string
		cfg  models.ScanConfig
		want error
	}{
		{name: "zero workers", cfg: models.ScanConfig{Target: loopback, Workers: 0}, want: ErrInvalidWorkerCount},
		{name: "too many workers", cfg: models.ScanConfig{Target: loopback, Workers: 65536}, want: ErrInvalidWorkerCount},
		{name: "missing target", cfg: models.ScanConfig{Workers: 4}, want: ErrInvalidTarget},
		{name: "negative timeout", cfg: models.ScanConfig{Target: loopback, Workers: 4, Timeout: -time.Second}, want: ErrInvalidTimeout},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			prober := newFakeProber(80)
			got, err := NewEngine(prober).Scan(context.Background(), tt.cfg)
			assert.Nil(t, got)
			assert.ErrorIs(t, err, tt.want)

			for port := range prober.calls {
				if prober.calls[port].Load() != 0 {
					t.Fatalf("port %d probed despite invalid configuration", port)
				}
			}
		})
	}
}

func TestEngine_Scan_ObserverSeesEveryOpenPort(t *testing.T) {
	var marks []uint16
	engine := NewEngine(newFakeProber(9000, 80, 443), WithObserver(func(port uint16) {
		marks = append(marks, port)
	}))

	got, err := engine.Scan(context.Background(), models.ScanConfig{Target: loopback, Workers: 8})
	require.NoError(t, err)
	assert.Equal(t, models.OpenPortSet{80, 443, 9000}, got)
	assert.ElementsMatch(t, []uint16{80, 443, 9000}, marks)
}

func TestEngine_Scan_Cancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	var attempts atomic.Int32
	prober := ProberFunc(func(_ context.Context, addr netip.AddrPort) bool {
		if attempts.Add(1) == 100 {
			cancel()
		}
		return addr.Port() == 1
	})

	done := make(chan struct{})
	var (
		got models.OpenPortSet
		err error
	)
	go func() {
		defer close(done)
		got, err = NewEngine(prober).Scan(ctx, models.ScanConfig{Target: loopback, Workers: 4})
	}()

	select {
	case <-done:
	case <-time.After(10 * time.Second):
		t.Fatal("Scan() did not return after cancellation")
	}

	assert.Nil(t, got)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Less(t, attempts.Load(), int32(models.MaxPort))

	var scanErr *ScannerError
	assert.True(t, errors.As(err, &scanErr))
}

func TestGet_Registry(t *testing.T) {
	p, err := Get("tcp", time.Second)
	require.NoError(t, err)
	assert.IsType(t, &TCPProber{}, p)
	assert.Contains(t, Names(), "tcp")

	_, err = Get("syn", time.Second)
	assert.ErrorIs(t, err, ErrProberNotFound)
}
