// Package cfg splits linear IR functions into basic blocks.
package cfg

import (
	"rcc/internal/ir"
)

// LocalInfo gives a local its dense index for register allocation.
type LocalInfo struct {
	Index int
	Type  ir.IRType
}

// BasicBlock is a straight-line run of instructions. Jump labels of its
// terminator are block ids.
type BasicBlock struct {
	ID    int
	Preds []int
	Insts []ir.Inst
}

// Terminator returns the last instruction of the block.
func (bb *BasicBlock) Terminator() *ir.Inst {
	if len(bb.Insts) == 0 {
		return nil
	}
	return &bb.Insts[len(bb.Insts)-1]
}

// CFG is the control flow graph of one function. Block 0 is the entry.
type CFG struct {
	Blocks     []BasicBlock
	LocalInfos map[string]LocalInfo

	FuncName     string
	FuncScopeID  uint64
	FuncIsGlobal bool
	FnArgs       []ir.Param
	// IsLeaf is false when the function calls anything.
	IsLeaf bool
	// Unreachable lists the non-entry blocks without predecessors.
	Unreachable []int
}

// CFGIR is the CFG form of a whole file, handed to a backend.
type CFGIR struct {
	CFGs        []*CFG
	RoLocalStrs map[string]string
}

// BuildIR builds the CFG of every function of lir.
func BuildIR(lir *ir.LinearIR) (*CFGIR, error) {
	out := &CFGIR{
		CFGs:        make([]*CFG, 0, len(lir.Funcs)),
		RoLocalStrs: lir.RoLocalStrs,
	}
	for _, f := range lir.Funcs {
		c, err := New(f)
		if err != nil {
			return nil, err
		}
		out.CFGs = append(out.CFGs, c)
	}
	return out, nil
}

// SuccOf returns the successors of block id in the order branches take them:
// the jump target first, then the fall-through block.
func (c *CFG) SuccOf(id int) []int {
	return successors(c.Blocks, id)
}

// NameOfFnArg returns the local name of the i-th parameter.
func (c *CFG) NameOfFnArg(i int) (string, bool) {
	if i < 0 || i >= len(c.FnArgs) {
		return "", false
	}
	return ir.LocalVar(c.FnArgs[i].Name, c.FuncScopeID), true
}

// NumInsts counts the instructions of all blocks.
func (c *CFG) NumInsts() int {
	n := 0
	for i := range c.Blocks {
		n += len(c.Blocks[i].Insts)
	}
	return n
}

func successors(blocks []BasicBlock, id int) []int {
	term := blocks[id].Terminator()
	last := id == len(blocks)-1
	if term == nil {
		if last {
			return nil
		}
		return []int{id + 1}
	}
	switch {
	case term.Kind == ir.InstRet:
		return nil
	case term.Kind == ir.InstJump:
		return []int{int(term.Label)}
	case term.IsConditional():
		target := int(term.Label)
		if last || target == id+1 {
			return []int{target}
		}
		return []int{target, id + 1}
	case last:
		return nil
	default:
		return []int{id + 1}
	}
}
