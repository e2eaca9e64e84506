package cfg

import "rcc/internal/ir"

// InstIter walks every instruction of a CFG in block order. It is single
// pass; make a new one to walk again.
type InstIter struct {
	blocks []BasicBlock
	block  int
	pos    int
}

// IterInst returns an iterator positioned before the first instruction.
func (c *CFG) IterInst() *InstIter {
	return &InstIter{blocks: c.Blocks}
}

// Next returns the next instruction, or false once the walk is over.
func (it *InstIter) Next() (*ir.Inst, bool) {
	for it.block < len(it.blocks) {
		insts := it.blocks[it.block].Insts
		if it.pos < len(insts) {
			inst := &insts[it.pos]
			it.pos++
			return inst, true
		}
		it.block++
		it.pos = 0
	}
	return nil, false
}
