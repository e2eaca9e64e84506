package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"rcc/internal/buildpipeline"
	"rcc/internal/observ"
)

func printTimings(cmd *cobra.Command, timer *observ.Timer) {
	if timer == nil {
		return
	}
	_ = timer.WriteSummary(cmd.ErrOrStderr(), "timings")
}

// printBuildTimings reports stage time summed over every file, in pipeline
// order.
func printBuildTimings(cmd *cobra.Command, t buildpipeline.Timings, files int) {
	timer := observ.NewTimer()
	for _, stage := range buildpipeline.Stages {
		if t.Has(stage) {
			timer.Add(string(stage), t.Duration(stage))
		}
	}
	_ = timer.WriteSummary(cmd.ErrOrStderr(), fmt.Sprintf("timings (%d files)", files))
}
