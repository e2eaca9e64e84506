package sema

import (
	"rcc/internal/ast"
	"rcc/internal/types"
)

type loopKind uint8

const (
	loopNotIn loopKind = iota
	loopWhile
	loopLoop
)

// loopFrame is the loop context of the innerest enclosing loop. For `loop`
// it accumulates the type fixed by the breaks seen so far.
type loopFrame struct {
	kind loopKind
	expr ast.ExprID
	ty   types.TypeID
}

func (rs *resolver) pushLoop(f loopFrame) {
	rs.loops = append(rs.loops, f)
}

func (rs *resolver) popLoop() loopFrame {
	f := rs.loops[len(rs.loops)-1]
	rs.loops = rs.loops[:len(rs.loops)-1]
	return f
}

func (rs *resolver) curLoop() *loopFrame {
	if len(rs.loops) == 0 {
		return nil
	}
	return &rs.loops[len(rs.loops)-1]
}

func (rs *resolver) inLoop() bool {
	f := rs.curLoop()
	return f != nil && f.kind != loopNotIn
}

func (rs *resolver) visitWhile(id ast.ExprID, e *ast.Expr) error {
	w, _ := rs.file.Exprs.While(id)
	if err := rs.visitExpr(w.Cond); err != nil {
		return err
	}
	if cond := rs.typeOf(w.Cond); cond != rs.builtins.Bool {
		return rs.errorf(rs.expr(w.Cond).Span, "invalid type in while condition: expected `bool`, found %s", rs.label(cond))
	}
	rs.pushLoop(loopFrame{kind: loopWhile, expr: id})
	defer rs.popLoop()
	if _, _, err := rs.resolveBlock(w.Body); err != nil {
		return err
	}
	e.Type = rs.builtins.Unit
	e.Category = ast.CatValue
	return nil
}

func (rs *resolver) visitLoop(id ast.ExprID, e *ast.Expr) error {
	l, _ := rs.file.Exprs.Loop(id)
	rs.pushLoop(loopFrame{kind: loopLoop, expr: id})
	_, _, err := rs.resolveBlock(l.Body)
	frame := rs.popLoop()
	if err != nil {
		return err
	}
	e.Type = frame.ty
	if e.Type == types.Unknown {
		// no break: `let a = loop {};`
		e.Type = rs.builtins.Never
	}
	e.Category = ast.CatValue
	return nil
}

func (rs *resolver) visitBreak(id ast.ExprID, e *ast.Expr) error {
	if !rs.inLoop() {
		return rs.errorf(e.Span, "break expr can not be out of loop block")
	}
	e.Type = rs.builtins.Never
	e.Category = ast.CatValue
	jump, _ := rs.file.Exprs.Jump(id)
	frame := rs.curLoop()
	if !jump.Value.IsValid() {
		if frame.kind == loopLoop {
			return rs.breakWith(frame, ast.NoExprID, e)
		}
		return nil
	}
	if frame.kind != loopLoop {
		return rs.errorf(e.Span, "only loop can return values")
	}
	if err := rs.visitExpr(jump.Value); err != nil {
		return err
	}
	return rs.breakWith(rs.curLoop(), jump.Value, e)
}

// breakWith fixes or checks the loop type against one break. A bare break
// stands for `()`.
func (rs *resolver) breakWith(frame *loopFrame, value ast.ExprID, e *ast.Expr) error {
	ty := rs.builtins.Unit
	if value.IsValid() {
		ty = rs.typeOf(value)
	}
	switch {
	case frame.ty == types.Unknown:
		frame.ty = ty
	case frame.ty == ty, ty == rs.builtins.Never:
	case rs.adopts(ty, frame.ty):
		rs.retag(value, frame.ty)
	case rs.adopts(frame.ty, ty):
		frame.ty = ty
		for _, prev := range rs.loopBreaks[frame.expr] {
			rs.retag(prev, ty)
		}
	default:
		return rs.errorf(e.Span, "invalid type for break expr: expected `%s`, found %s",
			rs.label(frame.ty), rs.label(ty))
	}
	if value.IsValid() {
		rs.loopBreaks[frame.expr] = append(rs.loopBreaks[frame.expr], value)
		rs.parents[value] = frame.expr
	}
	return nil
}

func (rs *resolver) visitContinue(e *ast.Expr) error {
	if !rs.inLoop() {
		return rs.errorf(e.Span, "continue expr can not be out of loop block")
	}
	e.Type = rs.builtins.Never
	e.Category = ast.CatValue
	return nil
}

func (rs *resolver) visitReturn(id ast.ExprID, e *ast.Expr) error {
	if len(rs.rets) == 0 {
		return rs.errorf(e.Span, "return expr can not be out of fn body")
	}
	want := rs.rets[len(rs.rets)-1]
	jump, _ := rs.file.Exprs.Jump(id)
	e.Type = rs.builtins.Never
	e.Category = ast.CatValue
	if !jump.Value.IsValid() {
		if want != rs.builtins.Unit {
			return rs.errorf(e.Span, "invalid return type: excepted `%s`, found `%s`",
				rs.label(want), rs.label(rs.builtins.Unit))
		}
		return nil
	}
	if err := rs.visitExpr(jump.Value); err != nil {
		return err
	}
	if !rs.coerce(jump.Value, want) {
		return rs.errorf(e.Span, "invalid return type: excepted `%s`, found `%s`",
			rs.label(want), rs.label(rs.typeOf(jump.Value)))
	}
	return nil
}
