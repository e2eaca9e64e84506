package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"rcc/internal/trace"
)

// setupTracing builds the tracer from the trace flags and attaches it to the
// command context.
func setupTracing(cmd *cobra.Command) error {
	flags := cmd.Root().PersistentFlags()
	output, err := flags.GetString("trace")
	if err != nil {
		return fmt.Errorf("failed to get trace flag: %w", err)
	}
	levelStr, err := flags.GetString("trace-level")
	if err != nil {
		return fmt.Errorf("failed to get trace-level flag: %w", err)
	}
	modeStr, err := flags.GetString("trace-mode")
	if err != nil {
		return fmt.Errorf("failed to get trace-mode flag: %w", err)
	}
	formatStr, err := flags.GetString("trace-format")
	if err != nil {
		return fmt.Errorf("failed to get trace-format flag: %w", err)
	}
	ringSize, err := flags.GetInt("trace-ring-size")
	if err != nil {
		return fmt.Errorf("failed to get trace-ring-size flag: %w", err)
	}

	level, err := trace.ParseLevel(levelStr)
	if err != nil {
		return err
	}
	// --trace without a level means phase boundaries.
	if level == trace.LevelOff && output != "" {
		level = trace.LevelPhase
	}
	mode, err := trace.ParseMode(modeStr)
	if err != nil {
		return err
	}
	format, err := trace.ParseFormat(formatStr)
	if err != nil {
		return err
	}
	tracer, err := trace.New(trace.Config{
		Level:      level,
		Mode:       mode,
		Format:     format,
		OutputPath: output,
		RingSize:   ringSize,
	})
	if err != nil {
		return fmt.Errorf("failed to create tracer: %w", err)
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	ctx = trace.WithTracer(ctx, tracer)
	ctx, driverSpan = trace.BeginCtx(ctx, trace.ScopeDriver, "rcc "+cmd.Name())
	activeTracer = tracer
	cmd.SetContext(ctx)
	return nil
}

var (
	activeTracer trace.Tracer = trace.Nop
	driverSpan   *trace.Span
)

// finishTracing closes the driver span, dumps the ring on failure and
// releases the tracer.
func finishTracing(runErr error) {
	if !activeTracer.Enabled() {
		return
	}
	detail := "ok"
	if runErr != nil {
		detail = "failed"
	}
	driverSpan.End(detail)
	if ring, ok := trace.Ring(activeTracer); ok && runErr != nil {
		fmt.Fprintln(os.Stderr, "trace: last events before the failure:")
		if err := ring.Dump(os.Stderr, trace.FormatText); err != nil {
			fmt.Fprintf(os.Stderr, "trace: dump error: %v\n", err)
		}
	}
	if err := activeTracer.Close(); err != nil {
		fmt.Fprintf(os.Stderr, "trace: close error: %v\n", err)
	}
}
