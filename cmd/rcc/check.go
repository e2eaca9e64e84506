package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"rcc/internal/buildpipeline"
	"rcc/internal/diagfmt"
	"rcc/internal/driver"
	"rcc/internal/source"
)

var checkCmd = &cobra.Command{
	Use:   "check [flags] file.rs",
	Short: "Parse and resolve a source file",
	Long:  `Check runs the pipeline up to name resolution and type checking and reports the first error`,
	Args:  cobra.ExactArgs(1),
	RunE:  runCheck,
}

func init() {
	checkCmd.Flags().String("format", "pretty", "diagnostic format (pretty|json)")
}

func runCheck(cmd *cobra.Command, args []string) error {
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	if format != "pretty" && format != "json" {
		return fmt.Errorf("unknown format: %s", format)
	}
	if format == "pretty" {
		res, err := compileFileCmd(cmd, args[0], func(o *driver.Options) { o.StopAfter = buildpipeline.StageResolve })
		if err != nil {
			return err
		}
		if !isQuiet(cmd) {
			fmt.Fprintf(cmd.OutOrStdout(), "%s: ok (%d items)\n", args[0], len(res.AST.TopLevel))
		}
		return nil
	}

	manifest, err := fileManifest(args[0])
	if err != nil {
		return err
	}
	opts, err := compileOptions(cmd, manifest)
	if err != nil {
		return err
	}
	opts.StopAfter = buildpipeline.StageResolve
	res, err := driver.CompileFile(cmd.Context(), args[0], opts)
	var (
		fs   *source.FileSet
		errs []error
	)
	if res != nil {
		fs = res.FileSet
	}
	if err != nil {
		errs = append(errs, err)
	}
	if jerr := diagfmt.JSON(cmd.OutOrStdout(), errs, fs, diagfmt.JSONOpts{}); jerr != nil {
		return jerr
	}
	if err != nil {
		return errReported
	}
	return nil
}
