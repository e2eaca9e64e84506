package ast

import (
	"rcc/internal/source"
)

// Block is a braced statement list with its own scope. Tail is the trailing
// expression without `;`, NoExprID when absent.
type Block struct {
	Span  source.Span
	Scope ScopeID
	Stmts []StmtID
	Tail  ExprID
}

type Blocks struct {
	Arena *Arena[Block]
}

func NewBlocks(capHint uint) *Blocks {
	if capHint == 0 {
		capHint = 1 << 5
	}
	return &Blocks{Arena: NewArena[Block](capHint)}
}

func (b *Blocks) New(block Block) BlockID {
	return BlockID(b.Arena.Allocate(block))
}

func (b *Blocks) Get(id BlockID) *Block {
	return b.Arena.Get(uint32(id))
}
