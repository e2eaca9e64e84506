package sema

import (
	"rcc/internal/ast"
	"rcc/internal/symbols"
)

// enterBlock links the block's scope under the current one, makes it current
// and hoists the items declared directly in it into statement slot 0. The
// first statement runs with CurStmtID 1.
func (rs *resolver) enterBlock(block *ast.Block) (*symbols.Scope, error) {
	rs.scopes.Link(block.Scope, rs.cur)
	rs.stack = append(rs.stack, rs.cur)
	rs.cur = block.Scope
	scope := rs.scopes.Get(block.Scope)

	var items []ast.ItemID
	for _, stmtID := range block.Stmts {
		if item, ok := rs.file.Stmts.Item(stmtID); ok {
			items = append(items, item)
		}
	}
	if err := rs.hoist(scope, items); err != nil {
		return scope, err
	}
	return scope, nil
}

// exitBlock restores the enclosing scope and rewinds the exited scope's
// counter so a later pass can walk it again.
func (rs *resolver) exitBlock() {
	if n := len(rs.stack); n > 0 {
		if sc := rs.scopes.Get(rs.cur); sc != nil {
			sc.CurStmtID = 0
		}
		rs.cur = rs.stack[n-1]
		rs.stack = rs.stack[:n-1]
	}
}

func (rs *resolver) curScope() *symbols.Scope {
	return rs.scopes.Get(rs.cur)
}
