package ir

import (
	"rcc/internal/ast"
)

// lowerWhile emits
//
//	start: <cond>; if !cond goto exit
//	       <body>; goto start
//	exit:
func (fb *fnBuilder) lowerWhile(id ast.ExprID) error {
	w, _ := fb.file.Exprs.While(id)
	frame := &loopFrame{start: fb.fn.NextIndex()}
	exitJump, err := fb.lowerCond(w.Cond)
	if err != nil {
		return err
	}
	fb.loops = append(fb.loops, frame)
	_, err = fb.lowerBlock(w.Body)
	fb.loops = fb.loops[:len(fb.loops)-1]
	if err != nil {
		return err
	}
	fb.emit(NewJump(frame.start))
	exit := fb.fn.NextIndex()
	if exitJump >= 0 {
		fb.patch(exitJump, exit)
	}
	for _, pos := range frame.exits {
		fb.patch(pos, exit)
	}
	return nil
}

// lowerCond emits the jump leaving a while loop when cond is false and
// returns its position, or -1 when the condition folds to true.
// Comparisons fuse into a single JumpIfCond.
func (fb *fnBuilder) lowerCond(cond ast.ExprID) (int, error) {
	for {
		g, ok := fb.file.Exprs.Group(cond)
		if !ok {
			break
		}
		cond = g.Inner
	}
	if bin, ok := fb.file.Exprs.Binary(cond); ok && bin.Op.IsComparison() {
		op, l, r, err := fb.binaryOperands(bin)
		if err != nil {
			return -1, err
		}
		if v, ok := fb.fold(op, U8, l, r); ok {
			return fb.constCond(v), nil
		}
		return fb.emit(NewJumpIfCond(l, op.Negate(), r, 0)), nil
	}
	c, err := fb.lowerExpr(cond)
	if err != nil {
		return -1, err
	}
	if fb.folding() && c.Kind == OperandInt {
		return fb.constCond(c), nil
	}
	return fb.emit(NewJumpIfNot(c, 0)), nil
}

func (fb *fnBuilder) constCond(v Operand) int {
	if v.Int != 0 {
		return -1
	}
	return fb.emit(NewJump(0))
}

// lowerLoop emits the body followed by a back edge. A loop producing a value
// gets a temporary every `break v` stores into.
func (fb *fnBuilder) lowerLoop(id ast.ExprID, e *ast.Expr) (Operand, error) {
	l, _ := fb.file.Exprs.Loop(id)
	frame := &loopFrame{start: fb.fn.NextIndex()}
	builtins := fb.types.Builtins()
	if e.Type != builtins.Unit && e.Type != builtins.Never {
		t, err := fb.irType(e.Type, e.Span)
		if err != nil {
			return Operand{}, err
		}
		frame.dest = fb.temp(t)
		frame.hasDest = true
	}
	fb.loops = append(fb.loops, frame)
	_, err := fb.lowerBlock(l.Body)
	fb.loops = fb.loops[:len(fb.loops)-1]
	if err != nil {
		return Operand{}, err
	}
	fb.emit(NewJump(frame.start))
	exit := fb.fn.NextIndex()
	for _, pos := range frame.exits {
		fb.patch(pos, exit)
	}
	if frame.hasDest {
		return PlaceOperand(frame.dest), nil
	}
	return UnitOperand(), nil
}

func (fb *fnBuilder) lowerBreak(id ast.ExprID) error {
	jump, _ := fb.file.Exprs.Jump(id)
	frame := fb.loops[len(fb.loops)-1]
	if jump.Value.IsValid() {
		if frame.hasDest {
			if err := fb.lowerInto(jump.Value, frame.dest); err != nil {
				return err
			}
		} else if _, err := fb.lowerExpr(jump.Value); err != nil {
			return err
		}
	}
	frame.exits = append(frame.exits, fb.emit(NewJump(0)))
	return nil
}

func (fb *fnBuilder) lowerReturn(id ast.ExprID) error {
	jump, _ := fb.file.Exprs.Jump(id)
	v := UnitOperand()
	if jump.Value.IsValid() {
		var err error
		if v, err = fb.lowerExpr(jump.Value); err != nil {
			return err
		}
	}
	fb.emit(NewRet(v))
	return nil
}
