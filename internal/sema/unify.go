package sema

import (
	"rcc/internal/ast"
	"rcc/internal/symbols"
	"rcc/internal/types"
)

// coerce makes expression id acceptable where want is expected. An
// unconstrained literal type adopts a concrete want of the same family and
// `!` fits anywhere.
func (rs *resolver) coerce(id ast.ExprID, want types.TypeID) bool {
	got := rs.typeOf(id)
	if got == want || got == rs.builtins.Never {
		return true
	}
	if rs.adopts(got, want) {
		rs.retag(id, want)
		return true
	}
	return false
}

// unifyPair makes two sibling expressions agree, narrowing whichever side is
// unconstrained. It returns the common type.
func (rs *resolver) unifyPair(lhs, rhs ast.ExprID) (types.TypeID, bool) {
	lt, rt := rs.typeOf(lhs), rs.typeOf(rhs)
	switch {
	case lt == rt:
		return lt, true
	case rs.adopts(lt, rt):
		rs.retag(lhs, rt)
		return rt, true
	case rs.adopts(rt, lt):
		rs.retag(rhs, lt)
		return lt, true
	default:
		return types.Unknown, false
	}
}

// adopts reports whether the unconstrained from can narrow to the concrete to.
func (rs *resolver) adopts(from, to types.TypeID) bool {
	fl, ok := rs.types.Lit(from)
	if !ok {
		return false
	}
	tl, ok := rs.types.Lit(to)
	return ok && fl.Adopts(tl)
}

// retag rewrites an unconstrained literal type to the concrete to, following
// the expressions whose type came from that literal: groups, negation,
// arithmetic operands, block values, loop breaks and unconstrained bindings.
func (rs *resolver) retag(id ast.ExprID, to types.TypeID) {
	e := rs.expr(id)
	if e == nil || !rs.adopts(e.Type, to) {
		return
	}
	e.Type = to
	exprs := rs.file.Exprs
	switch e.Kind {
	case ast.ExprGroup:
		g, _ := exprs.Group(id)
		rs.retag(g.Inner, to)
	case ast.ExprUnary:
		u, _ := exprs.Unary(id)
		if u.Op == ast.UnNeg || u.Op == ast.UnNot {
			rs.retag(u.Operand, to)
		}
	case ast.ExprBinary:
		b, _ := exprs.Binary(id)
		switch {
		case b.Op.IsShift():
			rs.retag(b.Left, to)
		case b.Op.IsArith() || b.Op.IsBitwise():
			rs.retag(b.Left, to)
			rs.retag(b.Right, to)
		}
	case ast.ExprBlock:
		blk, _ := exprs.Block(id)
		if value := rs.blockValue(blk.Block); value.IsValid() {
			rs.retag(value, to)
		}
	case ast.ExprLoop:
		for _, brk := range rs.loopBreaks[id] {
			rs.retag(brk, to)
		}
	case ast.ExprPath:
		if v, ok := rs.result.Bindings[id]; ok {
			rs.narrowBinding(v, to)
		}
	}
}

func (rs *resolver) addSource(v *symbols.VarInfo, src ast.ExprID) {
	rs.sources[v] = append(rs.sources[v], src)
	rs.initOf[src] = v
}

// narrowBinding fixes an unconstrained binding to the concrete to. The
// expressions it was initialized from narrow with it, and so does every
// earlier read of it together with the operators around that read.
func (rs *resolver) narrowBinding(v *symbols.VarInfo, to types.TypeID) {
	if !rs.adopts(v.Type, to) {
		return
	}
	v.Type = to
	for _, src := range rs.sources[v] {
		rs.retag(src, to)
	}
	for _, use := range rs.uses[v] {
		rs.retagUp(use, to)
	}
}

// retagUp retags id and the chain of unconstrained expressions above it,
// then narrows the binding initialized from the top of that chain. A
// comparison stops the climb but still narrows its other operand.
func (rs *resolver) retagUp(id ast.ExprID, to types.TypeID) {
	top := id
	for {
		p, ok := rs.parents[top]
		if !ok {
			break
		}
		if rs.adopts(rs.typeOf(p), to) {
			top = p
			continue
		}
		if bin, ok := rs.file.Exprs.Binary(p); ok && bin.Op.IsComparison() {
			rs.retag(bin.Left, to)
			rs.retag(bin.Right, to)
		}
		break
	}
	rs.retag(top, to)
	if w, ok := rs.initOf[top]; ok {
		rs.narrowBinding(w, to)
	}
}

// blockValue returns the expression that gives a block its value: the tail,
// or a trailing expression statement written without `;`.
func (rs *resolver) blockValue(id ast.BlockID) ast.ExprID {
	block := rs.file.Blocks.Get(id)
	if block.Tail.IsValid() {
		return block.Tail
	}
	if n := len(block.Stmts); n > 0 {
		if st, ok := rs.file.Stmts.Expr(block.Stmts[n-1]); ok && !st.HasSemi {
			return st.Expr
		}
	}
	return ast.NoExprID
}
