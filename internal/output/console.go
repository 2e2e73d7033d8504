// internal/output/console.go
// Console output: progress dots and "<port> is open!" lines

package output

import (
	"bufio"
	"fmt"
	"io"

	"github.com/aspnmy/portsweep/internal/models"
)

// ConsoleFormatter writes one line per open port
type ConsoleFormatter struct {
	buffer *bufio.Writer
}

// NewConsoleFormatter creates a console formatter writing to w
func NewConsoleFormatter(w io.Writer) *ConsoleFormatter {
	return &ConsoleFormatter{buffer: bufio.NewWriter(w)}
}

// Write writes every port in order
func (f *ConsoleFormatter) Write(ports models.OpenPortSet) error {
	for _, port := range ports {
		if _, err := fmt.Fprintf(f.buffer, "%d is open!\n", port); err != nil {
			return err
		}
	}
	return nil
}

// Flush flushes the buffer
func (f *ConsoleFormatter) Flush() error {
	return f.buffer.Flush()
}

// DotReporter prints a dot per open port and a newline when done
type DotReporter struct {
	w io.Writer
}

// NewDotReporter creates a dot reporter writing to w
func NewDotReporter(w io.Writer) *DotReporter {
	return &DotReporter{w: w}
}

// Mark prints a single dot
func (r *DotReporter) Mark(uint16) {
	_, _ = io.WriteString(r.w, ".")
}

// Finish terminates the dot line
func (r *DotReporter) Finish() {
	_, _ = io.WriteString(r.w, "\n")
}
