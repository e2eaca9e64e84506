package ast

import (
	"rcc/internal/source"
)

type StmtKind uint8

const (
	// StmtEmpty is a lone `;`.
	StmtEmpty StmtKind = iota
	StmtLet
	StmtExpr
	StmtItem
)

type Stmt struct {
	Kind    StmtKind
	Span    source.Span
	Payload PayloadID
}

type StmtLetData struct {
	Name     string
	NameSpan source.Span
	Mut      bool
	Ty       TypeExprID // NoTypeExprID without annotation
	Init     ExprID     // NoExprID without initializer
}

// StmtExprData is an expression statement. HasSemi is false only for
// block-like expressions written without a trailing `;`.
type StmtExprData struct {
	Expr    ExprID
	HasSemi bool
}

type Stmts struct {
	Arena *Arena[Stmt]
	Lets  *Arena[StmtLetData]
	Exprs *Arena[StmtExprData]
}

func NewStmts(capHint uint) *Stmts {
	if capHint == 0 {
		capHint = 1 << 6
	}
	return &Stmts{
		Arena: NewArena[Stmt](capHint),
		Lets:  NewArena[StmtLetData](capHint),
		Exprs: NewArena[StmtExprData](capHint),
	}
}

func (s *Stmts) Get(id StmtID) *Stmt {
	return s.Arena.Get(uint32(id))
}

func (s *Stmts) NewEmpty(span source.Span) StmtID {
	return StmtID(s.Arena.Allocate(Stmt{Kind: StmtEmpty, Span: span}))
}

func (s *Stmts) NewLet(span source.Span, data StmtLetData) StmtID {
	payload := s.Lets.Allocate(data)
	return StmtID(s.Arena.Allocate(Stmt{Kind: StmtLet, Span: span, Payload: PayloadID(payload)}))
}

func (s *Stmts) Let(id StmtID) (*StmtLetData, bool) {
	st := s.Get(id)
	if st == nil || st.Kind != StmtLet {
		return nil, false
	}
	return s.Lets.Get(uint32(st.Payload)), true
}

func (s *Stmts) NewExpr(span source.Span, expr ExprID, hasSemi bool) StmtID {
	payload := s.Exprs.Allocate(StmtExprData{Expr: expr, HasSemi: hasSemi})
	return StmtID(s.Arena.Allocate(Stmt{Kind: StmtExpr, Span: span, Payload: PayloadID(payload)}))
}

func (s *Stmts) Expr(id StmtID) (*StmtExprData, bool) {
	st := s.Get(id)
	if st == nil || st.Kind != StmtExpr {
		return nil, false
	}
	return s.Exprs.Get(uint32(st.Payload)), true
}

// NewItem wraps an item declared inside a block.
func (s *Stmts) NewItem(span source.Span, item ItemID) StmtID {
	return StmtID(s.Arena.Allocate(Stmt{Kind: StmtItem, Span: span, Payload: PayloadID(item)}))
}

func (s *Stmts) Item(id StmtID) (ItemID, bool) {
	st := s.Get(id)
	if st == nil || st.Kind != StmtItem {
		return NoItemID, false
	}
	return ItemID(st.Payload), true
}
