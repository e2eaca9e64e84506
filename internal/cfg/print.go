package cfg

import (
	"fmt"
	"io"
	"slices"
	"strings"

	"rcc/internal/ir"
)

// Dump writes every CFG of cir with backend branch labels.
func Dump(w io.Writer, cir *CFGIR) error {
	if w == nil || cir == nil {
		return nil
	}
	for i, c := range cir.CFGs {
		if i > 0 {
			if _, err := io.WriteString(w, "\n"); err != nil {
				return err
			}
		}
		if err := DumpCFG(w, c); err != nil {
			return err
		}
	}
	return nil
}

// DumpCFG writes one function: header, locals by index, then the blocks.
func DumpCFG(w io.Writer, c *CFG) error {
	var sb strings.Builder
	sb.WriteString(ir.FuncHeader(c.FuncName, c.FuncScopeID, c.FuncIsGlobal, c.FnArgs))
	if c.IsLeaf {
		sb.WriteString("  leaf\n")
	}
	names := make([]string, 0, len(c.LocalInfos))
	for name := range c.LocalInfos {
		names = append(names, name)
	}
	slices.SortFunc(names, func(a, b string) int {
		return c.LocalInfos[a].Index - c.LocalInfos[b].Index
	})
	sb.WriteString("  locals:")
	for _, name := range names {
		fmt.Fprintf(&sb, " %s#%d:%s", name, c.LocalInfos[name].Index, c.LocalInfos[name].Type)
	}
	sb.WriteString("\n")

	target := func(label uint32) string {
		return ir.BranchName(c.FuncScopeID, int(label))
	}
	for i := range c.Blocks {
		bb := &c.Blocks[i]
		fmt.Fprintf(&sb, "%s:", ir.BranchName(c.FuncScopeID, bb.ID))
		if len(bb.Preds) > 0 {
			fmt.Fprintf(&sb, " ; preds %v", bb.Preds)
		}
		if slices.Contains(c.Unreachable, bb.ID) {
			sb.WriteString(" ; unreachable")
		}
		sb.WriteString("\n")
		for k := range bb.Insts {
			fmt.Fprintf(&sb, "    %s\n", ir.FormatInst(&bb.Insts[k], target))
		}
	}
	_, err := io.WriteString(w, sb.String())
	return err
}
