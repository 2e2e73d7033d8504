// internal/output/interface.go
// Output formatter and progress reporter interfaces

package output

import (
	"errors"
	"os"

	"github.com/mattn/go-isatty"

	"github.com/aspnmy/portsweep/internal/models"
)

// Formatter writes the final result of a scan
type Formatter interface {
	// Write writes the sorted open port set
	Write(ports models.OpenPortSet) error

	// Flush ensures all buffered data is written
	Flush() error
}

// ProgressReporter shows scan progress while ports are being found
type ProgressReporter interface {
	// Mark is called once per open port, from the collecting goroutine
	Mark(port uint16)

	// Finish ends the progress phase
	Finish()
}

// Progress modes
const (
	ProgressOn   = "on"
	ProgressOff  = "off"
	ProgressAuto = "auto"
)

// ErrInvalidProgressMode is returned for an unknown progress mode
var ErrInvalidProgressMode = errors.New("invalid progress mode")

// NewProgressReporter picks a reporter for mode. In auto mode progress is
// shown only when f is a terminal.
func NewProgressReporter(mode string, f *os.File) (ProgressReporter, error) {
	switch mode {
	case ProgressOn:
		return NewDotReporter(f), nil
	case ProgressOff:
		return NopReporter{}, nil
	case ProgressAuto:
		if IsTerminal(f) {
			return NewDotReporter(f), nil
		}
		return NopReporter{}, nil
	}
	return nil, ErrInvalidProgressMode
}

// IsTerminal reports whether f is attached to a terminal
func IsTerminal(f *os.File) bool {
	if f == nil {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// NopReporter discards progress
type NopReporter struct{}

// Mark does nothing
func (NopReporter) Mark(uint16) {}

// Finish does nothing
func (NopReporter) Finish() {}
