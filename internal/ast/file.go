package ast

import (
	"rcc/internal/source"
)

// Builder owns every arena of one parsed file.
type Builder struct {
	Exprs  *Exprs
	Stmts  *Stmts
	Items  *Items
	Blocks *Blocks
	Types  *TypeExprs
}

// NewBuilder sizes the arenas from a hint such as the token count.
func NewBuilder(capHint uint) *Builder {
	return &Builder{
		Exprs:  NewExprs(capHint),
		Stmts:  NewStmts(capHint / 4),
		Items:  NewItems(capHint / 16),
		Blocks: NewBlocks(capHint / 8),
		Types:  NewTypeExprs(capHint / 8),
	}
}

// File is the root of a parsed source file. Items live in scope FileScopeID.
type File struct {
	*Builder
	Path  string
	Span  source.Span
	// TopLevel lists the file-scope items in source order.
	TopLevel []ItemID
	// StructDefs is the struct definition table, indexed by StructItem.Index.
	StructDefs []ItemID
	EnumDefs   []ItemID
	// NumScopes is one past the highest ScopeID handed out.
	NumScopes uint32
}
