// internal/scanner/tcp.go
// TCP connect prober: full handshake, no payload

package scanner

import (
	"context"
	"net"
	"net/netip"
	"time"
)

// TCPProber checks ports with a plain TCP connect
type TCPProber struct {
	dialer *net.Dialer
}

// NewTCPProber creates a TCP connect prober. A zero timeout leaves the
// attempt bounded only by the OS connect timeout and the context.
func NewTCPProber(timeout time.Duration) *TCPProber {
	return &TCPProber{
		dialer: &net.Dialer{
			Timeout:   timeout,
			KeepAlive: -1, // Disable keep-alive for scanning
		},
	}
}

// Probe reports whether addr completed a TCP handshake
func (p *TCPProber) Probe(ctx context.Context, addr netip.AddrPort) bool {
	conn, err := p.dialer.DialContext(ctx, "tcp", addr.String())
	if err != nil {
		return false
	}
	_ = conn.Close()
	return true
}

func init() {
	Register("tcp", func(timeout time.Duration) Prober {
		return NewTCPProber(timeout)
	})
}
