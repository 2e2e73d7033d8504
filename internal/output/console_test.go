// internal/output/console_test.go
// Unit tests for console output

package output

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/aspnmy/portsweep/internal/models"
)

func TestConsoleFormatter_Write(t *testing.T) {
	tests := []struct {
		name  string
		ports models.OpenPortSet
		want  string
	}{
		{name: "two ports", ports: models.OpenPortSet{80, 443}, want: "80 is open!\n443 is open!\n"},
		{name: "edges", ports: models.OpenPortSet{1, 65535}, want: "1 is open!\n65535 is open!\n"},
		{name: "empty", ports: nil, want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			f := NewConsoleFormatter(&buf)
			if err := f.Write(tt.ports); err != nil {
				t.Fatalf("Write() error = %v", err)
			}
			if err := f.Flush(); err != nil {
				t.Fatalf("Flush() error = %v", err)
			}
			if buf.String() != tt.want {
				t.Errorf("output = %q, want %q", buf.String(), tt.want)
			}
		})
	}
}

func TestDotReporter(t *testing.T) {
	var buf bytes.Buffer
	r := NewDotReporter(&buf)
	r.Mark(80)
	r.Mark(443)
	r.Finish()

	if buf.String() != "..\n" {
		t.Errorf("output = %q, want %q", buf.String(), "..\n")
	}
}

func TestNewProgressReporter(t *testing.T) {
	if _, err := NewProgressReporter("on", nil); err != nil {
		t.Errorf("on: error = %v", err)
	}

	r, err := NewProgressReporter("off", nil)
	if err != nil {
		t.Fatalf("off: error = %v", err)
	}
	if _, ok := r.(NopReporter); !ok {
		t.Errorf("off: got %T, want NopReporter", r)
	}

	r, err = NewProgressReporter("auto", nil)
	if err != nil {
		t.Fatalf("auto: error = %v", err)
	}
	if _, ok := r.(NopReporter); !ok {
		t.Errorf("auto without terminal: got %T, want NopReporter", r)
	}

	if _, err := NewProgressReporter("loud", nil); !errors.Is(err, ErrInvalidProgressMode) {
		t.Errorf("loud: error = %v, want ErrInvalidProgressMode", err)
	}
}

func TestRenderError(t *testing.T) {
	var buf bytes.Buffer
	RenderError(&buf, "portsweep", errors.New("invalid syntax"))

	got := buf.String()
	if !strings.HasPrefix(got, "portsweep ") || !strings.Contains(got, "problem parsing arguments:") || !strings.HasSuffix(got, "invalid syntax\n") {
		t.Errorf("RenderError() = %q", got)
	}
}

func TestRenderUsage(t *testing.T) {
	var buf bytes.Buffer
	RenderUsage(&buf, "Usage: portsweep <ip>\n\n  -h  help\n")

	got := buf.String()
	if !strings.Contains(got, "Usage: portsweep <ip>") || !strings.HasSuffix(got, "  -h  help\n") {
		t.Errorf("RenderUsage() = %q", got)
	}
}
