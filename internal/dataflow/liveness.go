// Package dataflow runs fixpoint analyses over cfg.CFG blocks.
package dataflow

import (
	"fmt"
	"io"
	"slices"
	"strings"

	"rcc/internal/bitvec"
	"rcc/internal/cfg"
	"rcc/internal/ir"
)

// BlockLiveness holds the use/def/in/out sets of one block, indexed by
// cfg.LocalInfo.Index.
type BlockLiveness struct {
	Use *bitvec.BitVector
	Def *bitvec.BitVector
	In  *bitvec.BitVector
	Out *bitvec.BitVector
}

// Liveness is the result of ComputeLiveness for one function.
type Liveness struct {
	Blocks []BlockLiveness
	// Names maps a local index back to its label.
	Names []string
	// Rounds is the number of sweeps until nothing changed.
	Rounds int
}

// ComputeLiveness solves out = union of in(succ), in = use | (out - def)
// for every block of c.
func ComputeLiveness(c *cfg.CFG) *Liveness {
	if c == nil {
		return nil
	}
	n := len(c.LocalInfos)
	lv := &Liveness{
		Blocks: make([]BlockLiveness, len(c.Blocks)),
		Names:  make([]string, n),
	}
	for name, info := range c.LocalInfos {
		lv.Names[info.Index] = name
	}
	for i := range c.Blocks {
		use, def := blockUseDef(c, &c.Blocks[i])
		lv.Blocks[i] = BlockLiveness{Use: use, Def: def, In: bitvec.New(n), Out: bitvec.New(n)}
	}

	changed := true
	for changed {
		changed = false
		lv.Rounds++
		for i := len(c.Blocks) - 1; i >= 0; i-- {
			info := &lv.Blocks[i]
			out := bitvec.New(n)
			for _, succ := range c.SuccOf(i) {
				out.OrAssign(lv.Blocks[succ].In)
			}
			in := out.Clone()
			in.AndNotAssign(info.Def)
			in.OrAssign(info.Use)

			if !out.Equal(info.Out) || !in.Equal(info.In) {
				info.Out = out
				info.In = in
				changed = true
			}
		}
	}
	return lv
}

func blockUseDef(c *cfg.CFG, bb *cfg.BasicBlock) (use, def *bitvec.BitVector) {
	n := len(c.LocalInfos)
	use = bitvec.New(n)
	def = bitvec.New(n)
	addUse := func(label string) {
		info, ok := c.LocalInfos[label]
		if !ok || def.Has(info.Index) {
			return
		}
		use.Set(info.Index, true)
	}

	var buf []ir.Operand
	for i := range bb.Insts {
		inst := &bb.Insts[i]
		buf = inst.Reads(buf[:0])
		for _, op := range buf {
			if op.Kind == ir.OperandPlace {
				addUse(op.Place.Label)
			}
		}
		// Taking an address keeps the local in memory from here on.
		if inst.Kind == ir.InstLoadAddr {
			addUse(inst.Sym)
		}
		if dest, ok := inst.Writes(); ok {
			if info, ok := c.LocalInfos[dest.Label]; ok {
				def.Set(info.Index, true)
			}
		}
	}
	return use, def
}

// LiveIn returns the labels live on entry to block id, sorted by index.
func (lv *Liveness) LiveIn(id int) []string {
	return lv.names(lv.Blocks[id].In)
}

// LiveOut returns the labels live on exit from block id, sorted by index.
func (lv *Liveness) LiveOut(id int) []string {
	return lv.names(lv.Blocks[id].Out)
}

func (lv *Liveness) names(v *bitvec.BitVector) []string {
	idx := v.Indices()
	out := make([]string, 0, len(idx))
	for _, i := range idx {
		out = append(out, lv.Names[i])
	}
	return out
}

// Dump writes the live-in and live-out labels of every block.
func Dump(w io.Writer, c *cfg.CFG, lv *Liveness) error {
	var sb strings.Builder
	fmt.Fprintf(&sb, "liveness %s (%d rounds):\n", c.FuncName, lv.Rounds)
	for i := range lv.Blocks {
		fmt.Fprintf(&sb, "  %s: in [%s] out [%s]\n",
			ir.BranchName(c.FuncScopeID, i),
			strings.Join(lv.LiveIn(i), " "),
			strings.Join(lv.LiveOut(i), " "))
	}
	_, err := io.WriteString(w, sb.String())
	return err
}

// MaxPressure returns the largest live-in set size over all blocks.
func (lv *Liveness) MaxPressure() int {
	counts := make([]int, 0, len(lv.Blocks))
	for i := range lv.Blocks {
		counts = append(counts, lv.Blocks[i].In.Count())
	}
	if len(counts) == 0 {
		return 0
	}
	return slices.Max(counts)
}
