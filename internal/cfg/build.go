package cfg

import (
	"maps"
	"slices"

	"fortio.org/safecast"

	"rcc/internal/diag"
	"rcc/internal/ir"
)

// New splits f into basic blocks. Jumps to the instruction right after them
// are dropped unless they are the only instruction of their block; jump
// labels are rewritten from instruction indices to block ids.
func New(f *ir.Func) (*CFG, error) {
	m := len(f.Insts)
	if m == 0 {
		return nil, diag.Errorf("function %s has no instructions", f.Name).InPhase(diag.PhaseCFG)
	}
	leaders, isLeaf, err := findLeaders(f)
	if err != nil {
		return nil, err
	}

	c := &CFG{
		Blocks:       make([]BasicBlock, 0, len(leaders)),
		LocalInfos:   localInfos(f),
		FuncName:     f.Name,
		FuncScopeID:  f.ScopeID,
		FuncIsGlobal: f.IsGlobal,
		FnArgs:       f.Params,
		IsLeaf:       isLeaf,
	}

	blockOf := make(map[uint32]int, len(leaders))
	start := uint32(1)
	for i, next := range leaders {
		blockOf[start] = i
		chunk := f.Insts[start-1 : next-1]
		bb := BasicBlock{ID: i, Insts: make([]ir.Inst, 0, len(chunk))}
		for k := range chunk {
			inst := chunk[k]
			idx := start + uint32(k) //nolint:gosec // k < m, checked by findLeaders
			if inst.IsJump() && inst.Label == idx+1 {
				continue
			}
			bb.Insts = append(bb.Insts, inst)
		}
		if len(bb.Insts) == 0 {
			bb.Insts = append(bb.Insts, chunk[len(chunk)-1])
		}
		c.Blocks = append(c.Blocks, bb)
		start = next
	}

	for i := range c.Blocks {
		term := c.Blocks[i].Terminator()
		if !term.IsJump() {
			continue
		}
		target, ok := blockOf[term.Label]
		if !ok {
			return nil, diag.Errorf("function %s: jump to (%d) does not start a block", f.Name, term.Label).InPhase(diag.PhaseCFG)
		}
		label, err := safecast.Conv[uint32](target)
		if err != nil {
			return nil, err
		}
		term.Label = label
	}

	for i := range c.Blocks {
		for _, s := range successors(c.Blocks, i) {
			c.Blocks[s].Preds = append(c.Blocks[s].Preds, i)
		}
	}
	for i := 1; i < len(c.Blocks); i++ {
		if len(c.Blocks[i].Preds) == 0 {
			c.Unreachable = append(c.Unreachable, i)
		}
	}
	return c, nil
}

// findLeaders returns the sorted block start indices after the entry,
// ending with the m+1 sentinel, and whether f is a leaf.
func findLeaders(f *ir.Func) ([]uint32, bool, error) {
	m, err := safecast.Conv[uint32](len(f.Insts))
	if err != nil {
		return nil, false, err
	}
	set := make(map[uint32]struct{})
	isLeaf := true
	for i := range f.Insts {
		inst := &f.Insts[i]
		idx := uint32(i) + 1 //nolint:gosec // i < m
		switch {
		case inst.IsJump():
			if inst.Label < 1 || inst.Label > m {
				return nil, false, diag.Errorf("function %s: jump at (%d) targets (%d) outside [1, %d]",
					f.Name, idx, inst.Label, m).InPhase(diag.PhaseCFG)
			}
			if inst.Label != idx+1 {
				set[inst.Label] = struct{}{}
				set[idx+1] = struct{}{}
			}
		case inst.Kind == ir.InstRet:
			set[idx+1] = struct{}{}
		case inst.Kind == ir.InstCall:
			isLeaf = false
		}
	}
	delete(set, 1)
	set[m+1] = struct{}{}
	return slices.Sorted(maps.Keys(set)), isLeaf, nil
}

// localInfos numbers the parameters first, then every written place in the
// order it is first written.
func localInfos(f *ir.Func) map[string]LocalInfo {
	infos := make(map[string]LocalInfo, len(f.Params)+len(f.Insts))
	next := 0
	for _, p := range f.Params {
		infos[ir.LocalVar(p.Name, f.ScopeID)] = LocalInfo{Index: next, Type: p.Type}
		next++
	}
	for i := range f.Insts {
		dest, ok := f.Insts[i].Writes()
		if !ok {
			continue
		}
		if _, seen := infos[dest.Label]; !seen {
			infos[dest.Label] = LocalInfo{Index: next, Type: dest.Type}
			next++
		}
	}
	return infos
}
