// cmd/portsweep/main.go
// portsweep - concurrent TCP connect port scanner

package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
)

// Exit codes
const (
	exitOK          = 0
	exitFailure     = 1
	exitUsage       = 2
	exitInterrupted = 130
)

func main() {
	os.Exit(execute(os.Args))
}

func execute(argv []string) int {
	program := filepath.Base(argv[0])

	root := newRootCmd(program)
	root.SetArgs(argv[1:])

	err := root.Execute()
	code := exitCode(err)

	switch {
	case err == nil:
	case code == exitUsage:
		renderUsageError(program, err)
	case code == exitInterrupted:
		fmt.Fprintln(os.Stderr, "scan interrupted")
	default:
		fmt.Fprintf(os.Stderr, "%s: %v\n", program, err)
	}
	return code
}

func newRootCmd(program string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   program + " [-th <workers>] <ip>",
		Short: "Concurrent TCP connect scanner for all 65535 ports of one host",
		Long: `Scans TCP ports 1-65535 of a single IPv4 or IPv6 address.

The port range is split into interleaved strides, one per worker:
worker i checks ports i+1, i+1+N, i+1+2N, ... for N workers.
Open ports are printed in ascending order once every worker is done.

Configuration priority: defaults < $PORTSWEEP_CONFIG (YAML) < PORTSWEEP_* env < command line`,
		Example: `  ` + program + ` 192.168.1.1
  ` + program + ` -th 100 10.0.0.5
  ` + program + ` -th 16 ::1`,
		Args: cobra.ArbitraryArgs,
		// -th is a single-dash long option, which pflag cannot express.
		DisableFlagParsing: true,
		SilenceUsage:       true,
		SilenceErrors:      true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runScan(cmd.Context(), program, args)
		},
	}
	cmd.CompletionOptions.DisableDefaultCmd = true

	cmd.AddCommand(newVersionCmd())
	return cmd
}

func exitCode(err error) int {
	var usageErr *usageError
	switch {
	case err == nil:
		return exitOK
	case errors.As(err, &usageErr):
		return exitUsage
	case errors.Is(err, context.Canceled):
		return exitInterrupted
	}
	return exitFailure
}
