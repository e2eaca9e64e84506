package main

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"time"

	"github.com/spf13/cobra"

	"rcc/internal/buildpipeline"
	"rcc/internal/diagfmt"
	"rcc/internal/driver"
	"rcc/internal/ui"
)

const noManifestMessage = "no rcc.toml found\nplease specify the source directory explicitly, e.g.:\n  rcc build path/to/src"

var buildCmd = &cobra.Command{
	Use:   "build [flags] [dir]",
	Short: "Compile every source file of a directory to CFG IR",
	Long: `Build compiles each .rs file under the directory (or [build].src of rcc.toml)
and writes its msgpack CFG IR to the output directory, mirroring the source tree`,
	Args: cobra.MaximumNArgs(1),
	RunE: runBuild,
}

func init() {
	addCompileFlags(buildCmd)
	buildCmd.Flags().String("out", "", "output directory; overrides [build].out")
	buildCmd.Flags().Int("jobs", 0, "files compiled in parallel (0 = GOMAXPROCS); overrides [build].jobs")
	buildCmd.Flags().String("ui", "auto", "progress UI (auto|on|off)")
	buildCmd.Flags().Bool("cache", true, "reuse CFG IR from the disk cache")
	buildCmd.Flags().Bool("clean-cache", false, "empty the disk cache before building")
}

type buildPlan struct {
	srcDir string
	outDir string
	jobs   int
	opts   driver.Options
}

func planBuild(cmd *cobra.Command, args []string) (buildPlan, error) {
	var plan buildPlan
	startDir := "."
	if len(args) == 1 {
		startDir = args[0]
	}
	manifest, found, err := loadProjectManifest(startDir)
	if err != nil {
		return plan, err
	}
	switch {
	case len(args) == 1:
		plan.srcDir = args[0]
	case found:
		plan.srcDir = manifest.srcDir()
	default:
		return plan, errors.New(noManifestMessage)
	}

	plan.outDir = "build"
	if manifest != nil {
		plan.outDir = manifest.outDir()
	}
	if cmd.Flags().Changed("out") {
		plan.outDir, _ = cmd.Flags().GetString("out")
	}

	plan.jobs = runtime.GOMAXPROCS(0)
	if manifest != nil && manifest.Config.Build.Jobs > 0 {
		plan.jobs = manifest.Config.Build.Jobs
	}
	if cmd.Flags().Changed("jobs") {
		jobs, _ := cmd.Flags().GetInt("jobs")
		if jobs < 0 {
			return plan, fmt.Errorf("--jobs must not be negative, got %d", jobs)
		}
		if jobs > 0 {
			plan.jobs = jobs
		}
	}

	plan.opts, err = compileOptions(cmd, manifest)
	if err != nil {
		return plan, err
	}
	// Stage timings come from the progress events; a shared timer would mix files.
	plan.opts.Timer = nil

	useCache, err := cmd.Flags().GetBool("cache")
	if err != nil {
		return plan, fmt.Errorf("failed to get cache flag: %w", err)
	}
	if useCache {
		cache, err := driver.OpenDiskCache("rcc")
		if err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "warning: disk cache disabled: %v\n", err)
		} else {
			plan.opts.Cache = cache
		}
	}
	if clean, _ := cmd.Flags().GetBool("clean-cache"); clean && plan.opts.Cache != nil {
		if err := plan.opts.Cache.DropAll(); err != nil {
			return plan, fmt.Errorf("clean cache: %w", err)
		}
	}
	return plan, nil
}

func runBuild(cmd *cobra.Command, args []string) error {
	uiValue, err := cmd.Flags().GetString("ui")
	if err != nil {
		return fmt.Errorf("failed to get ui flag: %w", err)
	}
	mode, err := readUIMode(uiValue)
	if err != nil {
		return err
	}
	plan, err := planBuild(cmd, args)
	if err != nil {
		return err
	}
	files, err := driver.ListSources(plan.srcDir)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		return fmt.Errorf("no %s files under %s", driver.SourceExt, plan.srcDir)
	}

	display := make(map[string]string, len(files))
	names := make([]string, 0, len(files))
	for _, f := range files {
		name := buildpipeline.DisplayName(f, plan.srcDir)
		display[f] = name
		names = append(names, name)
	}

	rec := &buildpipeline.Recorder{}
	start := time.Now()
	var results []driver.FileResult
	var buildErr error
	work := func(sink buildpipeline.ProgressSink) {
		results, buildErr = driver.CompileDir(cmd.Context(), plan.srcDir, plan.opts, plan.jobs, sink)
		if errors.Is(buildErr, context.Canceled) {
			return
		}
		writeOutputs(plan, results, sink)
	}

	if shouldUseTUI(mode) && !isQuiet(cmd) {
		events := make(chan buildpipeline.Event, 64)
		sink := buildpipeline.Multi(rec, renameSink(display, buildpipeline.ChannelSink{Ch: events}))
		go func() {
			defer close(events)
			work(sink)
		}()
		if err := ui.Run("rcc build", names, events, cmd.OutOrStdout()); err != nil {
			for range events {
			}
			fmt.Fprintf(cmd.ErrOrStderr(), "warning: progress UI failed: %v\n", err)
		}
	} else {
		work(rec)
	}

	if errors.Is(buildErr, context.Canceled) {
		return buildErr
	}
	failed := reportBuild(cmd, results, display)
	if !isQuiet(cmd) {
		cached := 0
		for _, r := range results {
			if r.Err == nil && r.Result != nil && r.Result.Cached {
				cached++
			}
		}
		fmt.Fprintf(cmd.OutOrStdout(), "built %d of %d files (%d cached, %d failed) into %s in %s\n",
			len(results)-failed, len(results), cached, failed, plan.outDir, time.Since(start).Round(time.Millisecond))
	}
	if timings, _ := cmd.Root().PersistentFlags().GetBool("timings"); timings {
		printBuildTimings(cmd, rec.Timings(), len(files))
	}
	if failed > 0 {
		return errReported
	}
	return nil
}

// writeOutputs emits the CFG IR of every compiled file. A write failure is
// stored on the file's result.
func writeOutputs(plan buildPlan, results []driver.FileResult, sink buildpipeline.ProgressSink) {
	for i := range results {
		r := &results[i]
		if r.Err != nil || r.Result == nil {
			continue
		}
		path := driver.OutputPath(plan.srcDir, plan.outDir, r.Path)
		if err := driver.WriteCFG(path, r.Result.CFG, sink, r.Path); err != nil {
			r.Err = fmt.Errorf("%s: %w", r.Path, err)
		}
	}
}

// reportBuild prints the error of every failed file and returns their count.
func reportBuild(cmd *cobra.Command, results []driver.FileResult, display map[string]string) int {
	failed := 0
	opts := diagfmt.PrettyOpts{Color: stderrColor(cmd), Context: 2}
	for _, r := range results {
		if r.Err == nil {
			continue
		}
		failed++
		if r.Result == nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "error: %s: %v\n", display[r.Path], r.Err)
			continue
		}
		if err := diagfmt.Pretty(cmd.ErrOrStderr(), r.Err, r.Result.FileSet, opts); err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "error: %v\n", err)
		}
	}
	return failed
}

// renameSink rewrites event paths to their display names.
func renameSink(names map[string]string, next buildpipeline.ProgressSink) buildpipeline.ProgressSink {
	return buildpipeline.FuncSink(func(evt buildpipeline.Event) {
		if name, ok := names[evt.File]; ok {
			evt.File = name
		}
		next.OnEvent(evt)
	})
}
