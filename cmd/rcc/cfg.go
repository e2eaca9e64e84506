package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"rcc/internal/cfg"
	"rcc/internal/dataflow"
)

var cfgCmd = &cobra.Command{
	Use:   "cfg [flags] file.rs",
	Short: "Print the control flow graphs of a source file",
	Args:  cobra.ExactArgs(1),
	RunE:  runCFG,
}

func init() {
	addCompileFlags(cfgCmd)
	cfgCmd.Flags().Bool("liveness", false, "append live variable sets per block")
	cfgCmd.Flags().Bool("frames", false, "append stack frame sizes")
}

func runCFG(cmd *cobra.Command, args []string) error {
	liveness, err := cmd.Flags().GetBool("liveness")
	if err != nil {
		return fmt.Errorf("failed to get liveness flag: %w", err)
	}
	frames, err := cmd.Flags().GetBool("frames")
	if err != nil {
		return fmt.Errorf("failed to get frames flag: %w", err)
	}

	res, err := compileFileCmd(cmd, args[0], nil)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	if err := cfg.Dump(out, res.CFG); err != nil {
		return err
	}
	if liveness {
		for _, c := range res.CFG.CFGs {
			lv := dataflow.ComputeLiveness(c)
			if err := dataflow.Dump(out, c, lv); err != nil {
				return err
			}
			fmt.Fprintf(out, "  max pressure: %d\n", lv.MaxPressure())
		}
	}
	if frames {
		for _, f := range res.Frames {
			fmt.Fprintf(out, "frame %s: %d bytes\n", f.Func, f.Size)
		}
	}
	return nil
}
