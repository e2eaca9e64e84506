package ast

import (
	"rcc/internal/source"
)

type TypeExprKind uint8

const (
	// TypePath is a named type: a primitive (`i32`, `bool`) or a user struct/enum.
	TypePath TypeExprKind = iota
	TypeNever
	TypeUnit
	TypeRef    // &T, &mut T
	TypeRawPtr // *const T, *mut T
	TypeFn     // fn(A, B) -> R
	TypeTuple
	TypeArray
)

// TypeExpr is a syntactic type annotation.
type TypeExpr struct {
	Kind   TypeExprKind
	Span   source.Span
	Name   string       // TypePath
	Mut    bool         // TypeRef, TypeRawPtr
	Elem   TypeExprID   // TypeRef, TypeRawPtr, TypeArray
	Params []TypeExprID // TypeFn, TypeTuple
	Ret    TypeExprID   // TypeFn; NoTypeExprID means `()`
	Len    ExprID       // TypeArray
}

type TypeExprs struct {
	Arena *Arena[TypeExpr]
}

func NewTypeExprs(capHint uint) *TypeExprs {
	if capHint == 0 {
		capHint = 1 << 5
	}
	return &TypeExprs{Arena: NewArena[TypeExpr](capHint)}
}

func (t *TypeExprs) New(te TypeExpr) TypeExprID {
	return TypeExprID(t.Arena.Allocate(te))
}

func (t *TypeExprs) Get(id TypeExprID) *TypeExpr {
	return t.Arena.Get(uint32(id))
}
