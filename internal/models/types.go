// internal/models/types.go
// Core data models for portsweep

package models

import (
	"net/netip"
	"slices"
	"time"
)

// MaxPort is the highest TCP port number. Port 0 is never scanned.
const MaxPort = 65535

// ScanConfig is the validated input of a single scan
type ScanConfig struct {
	Target  netip.Addr
	Workers int
	Timeout time.Duration // 0 = no per-attempt deadline
}

// Stride is the slice of the port space owned by one worker:
// Start, Start+Step, Start+2*Step, ... while the port stays <= MaxPort.
type Stride struct {
	Offset int // worker index in [0, workers)
	Start  int
	Step   int
}

// Each calls fn for every port of the stride in ascending order and stops
// early when fn returns false. The bound is checked before advancing so the
// port never wraps past MaxPort.
func (s Stride) Each(fn func(port uint16) bool) {
	if s.Step < 1 || s.Start < 1 || s.Start > MaxPort {
		return
	}
	port := s.Start
	for {
		if !fn(uint16(port)) {
			return
		}
		if port > MaxPort-s.Step {
			return
		}
		port += s.Step
	}
}

// Ports returns the full port sequence of the stride
func (s Stride) Ports() []uint16 {
	var ports []uint16
	s.Each(func(port uint16) bool {
		ports = append(ports, port)
		return true
	})
	return ports
}

// OpenPortSet holds the open ports found by a scan. It is built in arrival
// order and sorted once when collection ends.
type OpenPortSet []uint16

// Sort orders the set ascending in place
func (s OpenPortSet) Sort() {
	slices.Sort(s)
}

// Summary describes a finished scan
type Summary struct {
	ScanID  string        `json:"scan_id"`
	Target  netip.Addr    `json:"target"`
	Workers int           `json:"workers"`
	Open    int           `json:"open"`
	Elapsed time.Duration `json:"elapsed"`
}
