package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/spf13/cobra"

	"rcc/internal/codegen"
	"rcc/internal/diagfmt"
	"rcc/internal/driver"
	"rcc/internal/ir"
	"rcc/internal/observ"
	"rcc/internal/source"
)

func addCompileFlags(cmd *cobra.Command) {
	cmd.Flags().String("opt", "", "optimize level (0|1); overrides [build].opt-level")
	cmd.Flags().String("target", "", "target platform (riscv32); overrides [build].target")
}

// compileOptions merges the manifest defaults with the command flags.
func compileOptions(cmd *cobra.Command, manifest *projectManifest) (driver.Options, error) {
	opts := driver.Options{Level: ir.OptZero, Target: codegen.Riscv32}
	optStr, target := "", ""
	if manifest != nil {
		if lvl := manifest.Config.Build.OptLevel; lvl != nil {
			optStr = strconv.Itoa(*lvl)
		}
		target = manifest.Config.Build.Target
	}
	if cmd.Flags().Changed("opt") {
		optStr, _ = cmd.Flags().GetString("opt")
	}
	if cmd.Flags().Changed("target") {
		target, _ = cmd.Flags().GetString("target")
	}
	if optStr != "" {
		level, err := ir.ParseOptimizeLevel(optStr)
		if err != nil {
			return opts, err
		}
		opts.Level = level
	}
	if target != "" {
		t, err := codegen.ParseTarget(target)
		if err != nil {
			return opts, err
		}
		opts.Target = t
	}
	timings, err := cmd.Root().PersistentFlags().GetBool("timings")
	if err != nil {
		return opts, fmt.Errorf("failed to get timings flag: %w", err)
	}
	if timings {
		opts.Timer = observ.NewTimer()
	}
	return opts, nil
}

// fileManifest finds the manifest governing a single source file, if any.
func fileManifest(path string) (*projectManifest, error) {
	manifest, _, err := loadProjectManifest(filepath.Dir(path))
	return manifest, err
}

// compileFileCmd is the shared body of check, ir and cfg.
func compileFileCmd(cmd *cobra.Command, path string, stopAfter func(*driver.Options)) (*driver.Result, error) {
	manifest, err := fileManifest(path)
	if err != nil {
		return nil, err
	}
	opts, err := compileOptions(cmd, manifest)
	if err != nil {
		return nil, err
	}
	if stopAfter != nil {
		stopAfter(&opts)
	}
	res, err := driver.CompileFile(cmd.Context(), path, opts)
	printTimings(cmd, opts.Timer)
	if err != nil {
		var fs *source.FileSet
		if res != nil {
			fs = res.FileSet
		}
		return nil, reportError(cmd, err, fs)
	}
	return res, nil
}

func stderrColor(cmd *cobra.Command) bool {
	value, err := cmd.Root().PersistentFlags().GetString("color")
	if err != nil {
		return false
	}
	on, err := readColorMode(value, os.Stderr)
	return err == nil && on
}

// reportError renders err with its source excerpt and returns errReported.
func reportError(cmd *cobra.Command, err error, fs *source.FileSet) error {
	opts := diagfmt.PrettyOpts{Color: stderrColor(cmd), Context: 2}
	if perr := diagfmt.Pretty(cmd.ErrOrStderr(), err, fs, opts); perr != nil {
		return perr
	}
	return errReported
}

func isQuiet(cmd *cobra.Command) bool {
	quiet, err := cmd.Root().PersistentFlags().GetBool("quiet")
	return err == nil && quiet
}
