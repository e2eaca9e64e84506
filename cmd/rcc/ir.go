package main

import (
	"github.com/spf13/cobra"

	"rcc/internal/buildpipeline"
	"rcc/internal/driver"
	"rcc/internal/ir"
)

var irCmd = &cobra.Command{
	Use:   "ir [flags] file.rs",
	Short: "Print the linear IR of a source file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		res, err := compileFileCmd(cmd, args[0], func(o *driver.Options) { o.StopAfter = buildpipeline.StageLower })
		if err != nil {
			return err
		}
		return ir.Dump(cmd.OutOrStdout(), res.IR)
	},
}

func init() {
	addCompileFlags(irCmd)
}
