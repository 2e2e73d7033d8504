// internal/cli/args.go
// Argument resolver for the legacy command line: [-th <workers>] <ip> | -h | -help

package cli

import (
	"errors"
	"net/netip"
	"strconv"
)

// DefaultWorkers is used when -th is not given
const DefaultWorkers = 4

// ErrHelp is returned when usage was requested
var ErrHelp = errors.New("help requested")

// UsageError reports a malformed command line
type UsageError struct {
	Reason string
	Cause  error
}

func (e *UsageError) Error() string {
	return e.Reason
}

func (e *UsageError) Unwrap() error {
	return e.Cause
}

// Arguments is the resolved command line
type Arguments struct {
	Target  netip.Addr
	Workers int
	// WorkersSet is true when -th was given explicitly
	WorkersSet bool
}

// Resolve parses args (without the program name). A worker count of 0 is
// accepted here and rejected by the scan engine.
func Resolve(args []string) (Arguments, error) {
	switch {
	case len(args) < 1:
		return Arguments{}, &UsageError{Reason: "not enough arguments"}
	case len(args) > 3:
		return Arguments{}, &UsageError{Reason: "too many arguments"}
	}

	if addr, err := netip.ParseAddr(args[0]); err == nil {
		if len(args) != 1 {
			return Arguments{}, &UsageError{Reason: "too many arguments"}
		}
		return Arguments{Target: addr, Workers: DefaultWorkers}, nil
	}

	switch args[0] {
	case "-h", "-help":
		if len(args) != 1 {
			return Arguments{}, &UsageError{Reason: "too many arguments"}
		}
		return Arguments{}, ErrHelp

	case "-th":
		if len(args) != 3 {
			return Arguments{}, &UsageError{Reason: "not enough arguments"}
		}
		workers, err := strconv.ParseUint(args[1], 10, 16)
		if err != nil {
			return Arguments{}, &UsageError{Reason: "failed to parse worker count", Cause: err}
		}
		addr, err := netip.ParseAddr(args[2])
		if err != nil {
			return Arguments{}, &UsageError{Reason: "not a valid IP address; must be IPv4 or IPv6", Cause: err}
		}
		return Arguments{Target: addr, Workers: int(workers), WorkersSet: true}, nil
	}

	return Arguments{}, &UsageError{Reason: "invalid syntax"}
}

// Usage returns the help text
func Usage(program string) string {
	return "Usage: " + program + " [-th <workers>] <ip>\n\n" +
		"  -th <workers>  number of concurrent workers (default 4)\n" +
		"  -h, -help      show this message\n\n" +
		"Scans TCP ports 1-65535 of <ip> (IPv4 or IPv6) and prints the open ones.\n"
}
