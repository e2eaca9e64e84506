package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"rcc/internal/version"
)

// errReported marks failures whose diagnostics were already printed.
var errReported = errors.New("errors reported")

var rootCmd = &cobra.Command{
	Use:           "rcc",
	Short:         "Compiler front end for a small Rust subset",
	Long:          `rcc resolves, lowers and splits Rust-subset sources into control flow graphs for a riscv32 backend`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := setupTracing(cmd); err != nil {
			return err
		}
		return startProfiling(cmd)
	},
}

func main() {
	err := rootCmd.Execute()
	stopProfiling()
	finishTracing(err)
	if err != nil {
		if !errors.Is(err, errReported) {
			fmt.Fprintf(os.Stderr, "rcc: %v\n", err)
		}
		os.Exit(1)
	}
}

func init() {
	rootCmd.Version = version.Version
	rootCmd.AddCommand(tokenizeCmd, checkCmd, irCmd, cfgCmd, buildCmd, versionCmd)

	rootCmd.PersistentFlags().String("color", "auto", "colorize output (auto|on|off)")
	rootCmd.PersistentFlags().Bool("quiet", false, "suppress non-essential output")
	rootCmd.PersistentFlags().Bool("timings", false, "print phase timings to stderr")
	rootCmd.PersistentFlags().String("trace", "", "trace output file (- for stderr, .ndjson selects NDJSON)")
	rootCmd.PersistentFlags().String("trace-level", "off", "trace level (off|error|phase|detail|debug)")
	rootCmd.PersistentFlags().String("trace-mode", "stream", "trace storage (stream|ring|both)")
	rootCmd.PersistentFlags().String("trace-format", "text", "trace format (text|ndjson)")
	rootCmd.PersistentFlags().Int("trace-ring-size", 1024, "events kept in the trace ring")
	rootCmd.PersistentFlags().String("cpuprofile", "", "write a CPU profile to the file")
	rootCmd.PersistentFlags().String("memprofile", "", "write a heap profile to the file on exit")
	rootCmd.PersistentFlags().String("runtime-trace", "", "write a Go runtime trace to the file")
}

func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd())) //nolint:gosec // fd fits in int
}
