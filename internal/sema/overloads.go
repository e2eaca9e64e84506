package sema

import (
	"rcc/internal/ast"
	"rcc/internal/types"
)

type overloadKey struct {
	op       ast.BinaryOp
	lhs, rhs types.TypeID
}

// OverloadTable lists binary operator forms beyond the primitive rules,
// keyed by operator and operand types.
type OverloadTable struct {
	entries map[overloadKey]types.TypeID
}

func NewOverloadTable() *OverloadTable {
	return &OverloadTable{entries: make(map[overloadKey]types.TypeID)}
}

// Add registers op over (lhs, rhs) producing result.
func (t *OverloadTable) Add(op ast.BinaryOp, lhs, rhs, result types.TypeID) {
	t.entries[overloadKey{op: op, lhs: lhs, rhs: rhs}] = result
}

// Lookup returns the result type of op over (lhs, rhs).
func (t *OverloadTable) Lookup(op ast.BinaryOp, lhs, rhs types.TypeID) (types.TypeID, bool) {
	if t == nil {
		return types.Unknown, false
	}
	res, ok := t.entries[overloadKey{op: op, lhs: lhs, rhs: rhs}]
	return res, ok
}

// Len reports the number of registered forms.
func (t *OverloadTable) Len() int {
	if t == nil {
		return 0
	}
	return len(t.entries)
}
