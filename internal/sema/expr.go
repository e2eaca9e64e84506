package sema

import (
	"rcc/internal/ast"
	"rcc/internal/symbols"
	"rcc/internal/types"
)

// visitExpr resolves one expression and leaves its type and category set.
func (rs *resolver) visitExpr(id ast.ExprID) error {
	e := rs.expr(id)
	rs.visited = append(rs.visited, id)
	switch e.Kind {
	case ast.ExprPath:
		return rs.visitPath(id, e)
	case ast.ExprLit:
		rs.visitLiteral(id, e)
		return nil
	case ast.ExprUnary:
		return rs.visitUnary(id, e)
	case ast.ExprBinary:
		return rs.visitBinary(id, e)
	case ast.ExprAssign:
		return rs.visitAssign(id, e)
	case ast.ExprCall:
		return rs.visitCall(id, e)
	case ast.ExprGroup:
		g, _ := rs.file.Exprs.Group(id)
		if err := rs.visitExpr(g.Inner); err != nil {
			return err
		}
		inner := rs.expr(g.Inner)
		e.Type, e.Category = inner.Type, inner.Category
		rs.parents[g.Inner] = id
		return nil
	case ast.ExprBlock:
		blk, _ := rs.file.Exprs.Block(id)
		ty, value, err := rs.resolveBlock(blk.Block)
		if err != nil {
			return err
		}
		if value.IsValid() {
			rs.parents[value] = id
		}
		e.Type, e.Category = ty, ast.CatValue
		return nil
	case ast.ExprWhile:
		return rs.visitWhile(id, e)
	case ast.ExprLoop:
		return rs.visitLoop(id, e)
	case ast.ExprBreak:
		return rs.visitBreak(id, e)
	case ast.ExprContinue:
		return rs.visitContinue(e)
	case ast.ExprReturn:
		return rs.visitReturn(id, e)
	default:
		// if, tuple, array, index, field access, tuple index, range, struct
		return rs.unimplemented(e.Span, e.Kind.String())
	}
}

func (rs *resolver) visitPath(id ast.ExprID, e *ast.Expr) error {
	path, _ := rs.file.Exprs.Path(id)
	name := path.Name()
	if v, ok := rs.scopes.FindVariable(rs.cur, name); ok {
		rs.result.Bindings[id] = v
		rs.uses[v] = append(rs.uses[v], id)
		e.Type = v.Type
		e.Category = ast.CatPlace
		if v.Kind.Mutable() {
			e.Category = ast.CatMutablePlace
		}
		return nil
	}
	if def, ok := rs.scopes.FindFn(rs.cur, name); ok {
		rs.result.Callees[id] = def
		e.Type = def.Type
		e.Category = ast.CatValue
		return nil
	}
	if rs.scopes.FindDefExceptFn(rs.cur, name) != types.Unknown {
		return rs.unimplemented(e.Span, "struct")
	}
	return rs.errorf(e.Span, "identifier `%s` not found", name)
}

func (rs *resolver) visitLiteral(id ast.ExprID, e *ast.Expr) {
	lit, _ := rs.file.Exprs.Literal(id)
	e.Category = ast.CatValue
	switch lit.Kind {
	case ast.LitInt:
		tag := types.I
		if lit.HasSuffix {
			tag = lit.Suffix
		}
		e.Type = rs.types.LitNum(tag)
	case ast.LitFloat:
		tag := types.F
		if lit.HasSuffix {
			tag = lit.Suffix
		}
		e.Type = rs.types.LitNum(tag)
	case ast.LitBool:
		e.Type = rs.builtins.Bool
	case ast.LitChar:
		e.Type = rs.builtins.Char
	case ast.LitStr:
		lit.StrID = uint32(rs.result.StrConstants.Intern(lit.Str))
		e.Type = rs.builtins.RefStr
	case ast.LitUnit:
		e.Type = rs.builtins.Unit
	}
}

// resolveBlock resolves the block's statements and value. It returns the
// block type and the expression that produced it, if any.
func (rs *resolver) resolveBlock(id ast.BlockID) (types.TypeID, ast.ExprID, error) {
	block := rs.file.Blocks.Get(id)
	scope, err := rs.enterBlock(block)
	defer rs.exitBlock()
	if err != nil {
		return types.Unknown, ast.NoExprID, err
	}
	for _, stmtID := range block.Stmts {
		if err := rs.visitStmt(stmtID); err != nil {
			return types.Unknown, ast.NoExprID, err
		}
		scope.NextStmt()
	}
	if block.Tail.IsValid() {
		if err := rs.visitExpr(block.Tail); err != nil {
			return types.Unknown, ast.NoExprID, err
		}
		scope.NextStmt()
	}
	value := rs.blockValue(id)
	if !value.IsValid() {
		return rs.builtins.Unit, ast.NoExprID, nil
	}
	return rs.typeOf(value), value, nil
}

func (rs *resolver) visitStmt(id ast.StmtID) error {
	st := rs.file.Stmts.Get(id)
	switch st.Kind {
	case ast.StmtLet:
		return rs.visitLet(id)
	case ast.StmtExpr:
		data, _ := rs.file.Stmts.Expr(id)
		return rs.visitExpr(data.Expr)
	case ast.StmtItem:
		item, _ := rs.file.Stmts.Item(id)
		return rs.resolveItem(item)
	default:
		return nil
	}
}

func (rs *resolver) visitLet(id ast.StmtID) error {
	let, _ := rs.file.Stmts.Let(id)
	ty := types.Unknown
	if let.Init.IsValid() {
		if err := rs.visitExpr(let.Init); err != nil {
			return err
		}
		ty = rs.typeOf(let.Init)
	}
	if let.Ty.IsValid() {
		anno, err := rs.typeFromAnno(let.Ty)
		if err != nil {
			return err
		}
		if let.Init.IsValid() && !rs.coerce(let.Init, anno) {
			return rs.errorf(rs.expr(let.Init).Span, "invalid type in let stmt: expected `%s`, found %s",
				rs.label(anno), rs.label(ty))
		}
		ty = anno
	}
	kind := symbols.VarLocal
	if let.Mut {
		kind = symbols.VarLocalMut
	}
	v := rs.curScope().AddVariable(let.Name, kind, ty)
	rs.result.LetVars[id] = v
	if let.Init.IsValid() {
		rs.result.Inits[v] = let.Init
		rs.addSource(v, let.Init)
	}
	return nil
}

func (rs *resolver) visitAssign(id ast.ExprID, e *ast.Expr) error {
	as, _ := rs.file.Exprs.Assign(id)
	if err := rs.visitExpr(as.Left); err != nil {
		return err
	}
	lhs := rs.expr(as.Left)
	switch lhs.Category {
	case ast.CatPlace:
		return rs.errorf(lhs.Span, "lhs is not mutable")
	case ast.CatValue:
		return rs.errorf(lhs.Span, "can not assign to lhs")
	}
	if err := rs.visitExpr(as.Right); err != nil {
		return err
	}
	lt, rt := lhs.Type, rs.typeOf(as.Right)
	switch {
	case rt == types.Unknown:
		return rs.errorf(e.Span, "invalid type in assign expr")
	case lt == types.Unknown:
		// `let mut a; a = 32;`
		lhs.Type = rt
		if v, ok := rs.result.Bindings[as.Left]; ok && v.Type == types.Unknown {
			v.Type = rt
			rs.addSource(v, as.Right)
		}
	case lt == rt, rt == rs.builtins.Never:
	case rs.adopts(lt, rt):
		rs.retag(as.Left, rt)
	case rs.adopts(rt, lt):
		rs.retag(as.Right, lt)
	default:
		return rs.errorf(e.Span, "invalid type in assign expr")
	}
	e.Type = rs.builtins.Unit
	e.Category = ast.CatValue
	return nil
}

func (rs *resolver) visitCall(id ast.ExprID, e *ast.Expr) error {
	call, _ := rs.file.Exprs.Call(id)
	if err := rs.visitExpr(call.Callee); err != nil {
		return err
	}
	calleeType := rs.typeOf(call.Callee)
	sig, ok := rs.types.Signature(calleeType)
	if !ok {
		return rs.errorf(rs.expr(call.Callee).Span, "expr is not callable")
	}
	if len(call.Args) != len(sig.Params) {
		return rs.errorf(e.Span, "expected %d arguments, found %d", len(sig.Params), len(call.Args))
	}
	for i, arg := range call.Args {
		if err := rs.visitExpr(arg); err != nil {
			return err
		}
		if !rs.coerce(arg, sig.Params[i]) {
			return rs.errorf(rs.expr(arg).Span, "invalid type: expected %s, found: %s",
				rs.label(sig.Params[i]), rs.label(rs.typeOf(arg)))
		}
	}
	e.Type = sig.Ret
	e.Category = ast.CatValue
	return nil
}
