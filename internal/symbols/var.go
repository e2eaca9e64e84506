package symbols

import (
	"rcc/internal/ast"
	"rcc/internal/types"
)

// VarKind encodes the mutability of a binding; the type never does.
type VarKind uint8

const (
	VarStatic VarKind = iota
	VarConst
	VarLocalMut
	VarLocal
)

func (k VarKind) String() string {
	switch k {
	case VarStatic:
		return "static"
	case VarConst:
		return "const"
	case VarLocalMut:
		return "local mut"
	default:
		return "local"
	}
}

// Mutable reports whether paths naming the binding are mutable places.
func (k VarKind) Mutable() bool {
	return k == VarStatic || k == VarLocalMut
}

// VarInfo is one binding. Type is updated in place when an unconstrained
// literal type narrows, so every path that resolved to the binding sees it.
type VarInfo struct {
	StmtID uint32
	Kind   VarKind
	Type   types.TypeID
	// Scope is the block that owns the binding; it names the IR local.
	Scope ast.ScopeID
}

// FnDef is a hoisted function definition.
type FnDef struct {
	Item  ast.ItemID
	Type  types.TypeID
	Scope ast.ScopeID
}

// TypeDef is a hoisted struct or enum definition.
type TypeDef struct {
	Item ast.ItemID
	Type types.TypeID
}
