package ir

import (
	"rcc/internal/ast"
	"rcc/internal/source"
	"rcc/internal/symbols"
)

func (fb *fnBuilder) lowerBlock(id ast.BlockID) (Operand, error) {
	block := fb.file.Blocks.Get(id)
	fb.scopes = append(fb.scopes, block.Scope)
	defer func() { fb.scopes = fb.scopes[:len(fb.scopes)-1] }()

	value := UnitOperand()
	for i, stmtID := range block.Stmts {
		v, err := fb.lowerStmt(stmtID, block.Scope)
		if err != nil {
			return Operand{}, err
		}
		if i == len(block.Stmts)-1 {
			value = v
		}
	}
	if block.Tail.IsValid() {
		return fb.lowerExpr(block.Tail)
	}
	return value, nil
}

// lowerStmt returns the value of a trailing block-like statement and Unit
// for every other statement.
func (fb *fnBuilder) lowerStmt(id ast.StmtID, scope ast.ScopeID) (Operand, error) {
	st := fb.file.Stmts.Get(id)
	switch st.Kind {
	case ast.StmtLet:
		return UnitOperand(), fb.lowerLet(id)
	case ast.StmtExpr:
		data, _ := fb.file.Stmts.Expr(id)
		v, err := fb.lowerExpr(data.Expr)
		if err != nil || data.HasSemi {
			return UnitOperand(), err
		}
		return v, nil
	case ast.StmtItem:
		item, _ := fb.file.Stmts.Item(id)
		if fb.file.Items.Get(item).Kind == ast.ItemFn {
			fb.pending = append(fb.pending, pendingFn{item: item, scope: scope})
		}
	}
	return UnitOperand(), nil
}

func (fb *fnBuilder) lowerLet(id ast.StmtID) error {
	let, _ := fb.file.Stmts.Let(id)
	if !let.Init.IsValid() {
		return nil
	}
	init := fb.expr(let.Init)
	// unit and never bindings hold no value; evaluate for effects only
	if b := fb.types.Builtins(); init.Type == b.Never || init.Type == b.Unit {
		_, err := fb.lowerExpr(let.Init)
		return err
	}
	v := fb.res.LetVars[id]
	dest, err := fb.localPlace(let.Name, v, init.Span)
	if err != nil {
		return err
	}
	return fb.lowerInto(let.Init, dest)
}

func (fb *fnBuilder) localPlace(name string, v *symbols.VarInfo, span source.Span) (Place, error) {
	t, err := fb.irType(v.Type, span)
	if err != nil {
		return Place{}, err
	}
	return Local(LocalVar(name, uint64(v.Scope)), t), nil
}

// lowerInto evaluates id and stores the result in dest, writing binary
// operations straight into dest instead of a temporary. A unit dest is
// never stored.
func (fb *fnBuilder) lowerInto(id ast.ExprID, dest Place) error {
	if dest.Type == Unit {
		_, err := fb.lowerExpr(id)
		return err
	}
	e := fb.expr(id)
	switch e.Kind {
	case ast.ExprGroup:
		g, _ := fb.file.Exprs.Group(id)
		return fb.lowerInto(g.Inner, dest)
	case ast.ExprBinary:
		bin, _ := fb.file.Exprs.Binary(id)
		if !bin.Op.IsLogical() {
			op, l, r, err := fb.binaryOperands(bin)
			if err != nil {
				return err
			}
			if v, ok := fb.fold(op, dest.Type, l, r); ok {
				fb.emit(NewLoadData(dest, v))
				return nil
			}
			fb.emit(NewBinOp(op, dest, l, r))
			return nil
		}
	}
	v, err := fb.lowerExpr(id)
	if err != nil {
		return err
	}
	fb.emit(NewLoadData(dest, v))
	return nil
}

func (fb *fnBuilder) lowerExpr(id ast.ExprID) (Operand, error) {
	e := fb.expr(id)
	switch e.Kind {
	case ast.ExprPath:
		return fb.lowerPath(id, e)
	case ast.ExprLit:
		return fb.lowerLiteral(id, e)
	case ast.ExprUnary:
		return fb.lowerUnary(id, e)
	case ast.ExprBinary:
		return fb.lowerBinary(id, e)
	case ast.ExprAssign:
		return UnitOperand(), fb.lowerAssign(id, e)
	case ast.ExprCall:
		return fb.lowerCall(id, e)
	case ast.ExprGroup:
		g, _ := fb.file.Exprs.Group(id)
		return fb.lowerExpr(g.Inner)
	case ast.ExprBlock:
		blk, _ := fb.file.Exprs.Block(id)
		return fb.lowerBlock(blk.Block)
	case ast.ExprWhile:
		return UnitOperand(), fb.lowerWhile(id)
	case ast.ExprLoop:
		return fb.lowerLoop(id, e)
	case ast.ExprBreak:
		return UnitOperand(), fb.lowerBreak(id)
	case ast.ExprContinue:
		fb.emit(NewJump(fb.loops[len(fb.loops)-1].start))
		return UnitOperand(), nil
	case ast.ExprReturn:
		return UnitOperand(), fb.lowerReturn(id)
	default:
		return Operand{}, fb.unimplemented(e.Span, e.Kind.String())
	}
}

func (fb *fnBuilder) lowerPath(id ast.ExprID, e *ast.Expr) (Operand, error) {
	path, _ := fb.file.Exprs.Path(id)
	v, ok := fb.res.Bindings[id]
	if !ok {
		if _, isFn := fb.res.Callees[id]; isFn {
			return Operand{}, fb.unimplemented(e.Span, "function value")
		}
		return Operand{}, fb.errorf(e.Span, "unbound path `%s` reached lowering", path.Name())
	}
	switch v.Kind {
	case symbols.VarStatic:
		return Operand{}, fb.unimplemented(e.Span, "static")
	case symbols.VarConst:
		init, ok := fb.res.Inits[v]
		if !ok {
			return Operand{}, fb.errorf(e.Span, "constant `%s` has no value", path.Name())
		}
		if fb.inlining[v] {
			return Operand{}, fb.errorf(e.Span, "cycle in constant `%s`", path.Name())
		}
		fb.inlining[v] = true
		defer delete(fb.inlining, v)
		return fb.lowerExpr(init)
	}
	p, err := fb.localPlace(path.Name(), v, e.Span)
	if err != nil || p.Type == Unit {
		return UnitOperand(), err
	}
	return PlaceOperand(p), nil
}

func (fb *fnBuilder) lowerLiteral(id ast.ExprID, e *ast.Expr) (Operand, error) {
	lit, _ := fb.file.Exprs.Literal(id)
	switch lit.Kind {
	case ast.LitInt, ast.LitFloat:
		t, err := fb.irType(e.Type, e.Span)
		if err != nil {
			return Operand{}, err
		}
		if t.IsFloat() {
			if lit.Kind == ast.LitInt {
				return FloatImm(t, float64(lit.Int)), nil
			}
			return FloatImm(t, lit.Float), nil
		}
		return Imm(t, int64(lit.Int)), nil //nolint:gosec // wraps to the literal's width
	case ast.LitBool:
		if lit.Bool {
			return Imm(U8, 1), nil
		}
		return Imm(U8, 0), nil
	case ast.LitChar:
		return Imm(U32, int64(lit.Char)), nil
	case ast.LitStr:
		label, err := fb.strLabel(lit.StrID)
		if err != nil {
			return Operand{}, err
		}
		dest := fb.temp(Addr)
		fb.emit(NewLoadAddr(dest, label))
		return PlaceOperand(dest), nil
	default:
		return UnitOperand(), nil
	}
}

func (fb *fnBuilder) lowerUnary(id ast.ExprID, e *ast.Expr) (Operand, error) {
	un, _ := fb.file.Exprs.Unary(id)
	switch un.Op {
	case ast.UnDeref:
		return Operand{}, fb.unimplemented(e.Span, "deref")
	case ast.UnRef, ast.UnRefMut:
		return fb.lowerBorrow(un.Operand, e)
	}
	x, err := fb.lowerExpr(un.Operand)
	if err != nil {
		return Operand{}, err
	}
	t, err := fb.irType(e.Type, e.Span)
	if err != nil {
		return Operand{}, err
	}
	if un.Op == ast.UnNot && t.IsFloat() {
		return Operand{}, fb.unimplemented(e.Span, "`!` on float")
	}
	var op Op
	var lhs Operand
	switch {
	case un.Op == ast.UnNeg && t.IsFloat():
		op, lhs = OpSub, FloatImm(t, 0)
	case un.Op == ast.UnNeg:
		op, lhs = OpSub, Imm(t, 0)
	case e.Type == fb.types.Builtins().Bool:
		op, lhs = OpXor, Imm(t, 1)
	default:
		op, lhs = OpXor, Imm(t, -1)
	}
	if v, ok := fb.fold(op, t, lhs, x); ok {
		return v, nil
	}
	dest := fb.temp(t)
	fb.emit(NewBinOp(op, dest, lhs, x))
	return PlaceOperand(dest), nil
}

// lowerBorrow takes the address of a local binding.
func (fb *fnBuilder) lowerBorrow(operand ast.ExprID, e *ast.Expr) (Operand, error) {
	inner := operand
	for {
		g, ok := fb.file.Exprs.Group(inner)
		if !ok {
			break
		}
		inner = g.Inner
	}
	v, ok := fb.res.Bindings[inner]
	if !ok || v.Kind == symbols.VarConst || v.Kind == symbols.VarStatic {
		return Operand{}, fb.unimplemented(e.Span, "borrow of non-local")
	}
	path, _ := fb.file.Exprs.Path(inner)
	dest := fb.temp(Addr)
	fb.emit(NewLoadAddr(dest, LocalVar(path.Name(), uint64(v.Scope))))
	return PlaceOperand(dest), nil
}

func (fb *fnBuilder) lowerBinary(id ast.ExprID, e *ast.Expr) (Operand, error) {
	bin, _ := fb.file.Exprs.Binary(id)
	if bin.Op.IsLogical() {
		return fb.lowerLogical(bin)
	}
	t, err := fb.irType(e.Type, e.Span)
	if err != nil {
		return Operand{}, err
	}
	op, l, r, err := fb.binaryOperands(bin)
	if err != nil {
		return Operand{}, err
	}
	if v, ok := fb.fold(op, t, l, r); ok {
		return v, nil
	}
	dest := fb.temp(t)
	fb.emit(NewBinOp(op, dest, l, r))
	return PlaceOperand(dest), nil
}

func (fb *fnBuilder) binaryOperands(bin *ast.ExprBinaryData) (Op, Operand, Operand, error) {
	op, ok := binaryOp(bin.Op)
	if !ok {
		return 0, Operand{}, Operand{}, fb.unimplemented(fb.expr(bin.Left).Span, "operator "+bin.Op.String())
	}
	l, err := fb.lowerExpr(bin.Left)
	if err != nil {
		return 0, Operand{}, Operand{}, err
	}
	r, err := fb.lowerExpr(bin.Right)
	if err != nil {
		return 0, Operand{}, Operand{}, err
	}
	return op, l, r, nil
}

// lowerLogical short-circuits `&&` and `||` into a boolean temporary.
func (fb *fnBuilder) lowerLogical(bin *ast.ExprBinaryData) (Operand, error) {
	l, err := fb.lowerExpr(bin.Left)
	if err != nil {
		return Operand{}, err
	}
	isAnd := bin.Op == ast.BinAnd
	if fb.folding() && l.Kind == OperandInt {
		if (isAnd && l.Int == 0) || (!isAnd && l.Int != 0) {
			return l, nil
		}
		return fb.lowerExpr(bin.Right)
	}
	dest := fb.temp(U8)
	fb.emit(NewLoadData(dest, l))
	var skip int
	if isAnd {
		skip = fb.emit(NewJumpIfNot(l, 0))
	} else {
		skip = fb.emit(NewJumpIf(l, 0))
	}
	if err := fb.lowerInto(bin.Right, dest); err != nil {
		return Operand{}, err
	}
	fb.patch(skip, fb.fn.NextIndex())
	return PlaceOperand(dest), nil
}

func (fb *fnBuilder) lowerAssign(id ast.ExprID, e *ast.Expr) error {
	as, _ := fb.file.Exprs.Assign(id)
	lhs := as.Left
	for {
		g, ok := fb.file.Exprs.Group(lhs)
		if !ok {
			break
		}
		lhs = g.Inner
	}
	path, isPath := fb.file.Exprs.Path(lhs)
	v, bound := fb.res.Bindings[lhs]
	if !isPath || !bound {
		return fb.unimplemented(e.Span, "assignment through deref")
	}
	if v.Kind == symbols.VarStatic {
		return fb.unimplemented(e.Span, "static")
	}
	dest, err := fb.localPlace(path.Name(), v, e.Span)
	if err != nil {
		return err
	}
	return fb.lowerInto(as.Right, dest)
}

func (fb *fnBuilder) lowerCall(id ast.ExprID, e *ast.Expr) (Operand, error) {
	call, _ := fb.file.Exprs.Call(id)
	def, ok := fb.res.Callees[call.Callee]
	if !ok {
		return Operand{}, fb.unimplemented(e.Span, "indirect call")
	}
	item, _ := fb.file.Items.Fn(def.Item)
	args := make([]Operand, 0, len(call.Args))
	for _, arg := range call.Args {
		v, err := fb.lowerExpr(arg)
		if err != nil {
			return Operand{}, err
		}
		args = append(args, v)
	}
	name := fb.fnLabel(item.Name, def.Scope)
	builtins := fb.types.Builtins()
	if e.Type == builtins.Unit || e.Type == builtins.Never {
		fb.emit(NewCall(name, args, nil))
		return UnitOperand(), nil
	}
	t, err := fb.irType(e.Type, e.Span)
	if err != nil {
		return Operand{}, err
	}
	dest := fb.temp(t)
	fb.emit(NewCall(name, args, &dest))
	return PlaceOperand(dest), nil
}

func binaryOp(op ast.BinaryOp) (Op, bool) {
	switch op {
	case ast.BinAdd:
		return OpAdd, true
	case ast.BinSub:
		return OpSub, true
	case ast.BinMul:
		return OpMul, true
	case ast.BinDiv:
		return OpDiv, true
	case ast.BinRem:
		return OpRem, true
	case ast.BinBitAnd:
		return OpAnd, true
	case ast.BinBitOr:
		return OpOr, true
	case ast.BinBitXor:
		return OpXor, true
	case ast.BinShl:
		return OpShl, true
	case ast.BinShr:
		return OpShr, true
	case ast.BinEq:
		return OpEq, true
	case ast.BinNe:
		return OpNe, true
	case ast.BinLt:
		return OpLt, true
	case ast.BinLe:
		return OpLe, true
	case ast.BinGt:
		return OpGt, true
	case ast.BinGe:
		return OpGe, true
	default:
		return 0, false
	}
}
