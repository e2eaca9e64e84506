package ir

// fold evaluates op over two immediates when folding is enabled. t is the
// type of the result. Division by zero and out-of-range shifts are left for
// run time.
func (fb *fnBuilder) fold(op Op, t IRType, l, r Operand) (Operand, bool) {
	if !fb.folding() {
		return Operand{}, false
	}
	return foldBinary(op, t, l, r)
}

func foldBinary(op Op, t IRType, l, r Operand) (Operand, bool) {
	switch {
	case l.Kind == OperandInt && r.Kind == OperandInt:
		return foldInt(op, t, l, r)
	case l.Kind == OperandFloat && r.Kind == OperandFloat:
		return foldFloat(op, t, l.Float, r.Float)
	default:
		return Operand{}, false
	}
}

func foldInt(op Op, t IRType, l, r Operand) (Operand, bool) {
	a, b := l.Int, r.Int
	signed := l.Type.IsSigned()
	ua, ub := uint64(a), uint64(b)
	if !signed {
		ua, ub = mask(l.Type, ua), mask(l.Type, ub)
	}
	switch op {
	case OpAdd:
		return Imm(t, a+b), true
	case OpSub:
		return Imm(t, a-b), true
	case OpMul:
		return Imm(t, a*b), true
	case OpDiv, OpRem:
		if b == 0 {
			return Operand{}, false
		}
		if signed {
			if op == OpDiv {
				return Imm(t, a/b), true
			}
			return Imm(t, a%b), true
		}
		if op == OpDiv {
			return Imm(t, int64(ua/ub)), true //nolint:gosec // truncated by Imm
		}
		return Imm(t, int64(ua%ub)), true //nolint:gosec // truncated by Imm
	case OpAnd:
		return Imm(t, a&b), true
	case OpOr:
		return Imm(t, a|b), true
	case OpXor:
		return Imm(t, a^b), true
	case OpShl, OpShr:
		bits := l.Type.Bits()
		if b < 0 || bits == 0 || uint64(b) >= uint64(bits) {
			return Operand{}, false
		}
		if op == OpShl {
			return Imm(t, a<<uint(b)), true
		}
		if signed {
			return Imm(t, a>>uint(b)), true
		}
		return Imm(t, int64(ua>>uint(b))), true //nolint:gosec // truncated by Imm
	}
	var res bool
	switch op {
	case OpEq:
		res = a == b
	case OpNe:
		res = a != b
	case OpLt:
		res = signed && a < b || !signed && ua < ub
	case OpLe:
		res = signed && a <= b || !signed && ua <= ub
	case OpGt:
		res = signed && a > b || !signed && ua > ub
	case OpGe:
		res = signed && a >= b || !signed && ua >= ub
	default:
		return Operand{}, false
	}
	return boolImm(res), true
}

func foldFloat(op Op, t IRType, a, b float64) (Operand, bool) {
	switch op {
	case OpAdd:
		return FloatImm(t, a+b), true
	case OpSub:
		return FloatImm(t, a-b), true
	case OpMul:
		return FloatImm(t, a*b), true
	case OpDiv:
		return FloatImm(t, a/b), true
	case OpEq:
		return boolImm(a == b), true
	case OpNe:
		return boolImm(a != b), true
	case OpLt:
		return boolImm(a < b), true
	case OpLe:
		return boolImm(a <= b), true
	case OpGt:
		return boolImm(a > b), true
	case OpGe:
		return boolImm(a >= b), true
	default:
		return Operand{}, false
	}
}

func boolImm(v bool) Operand {
	if v {
		return Imm(U8, 1)
	}
	return Imm(U8, 0)
}

func mask(t IRType, v uint64) uint64 {
	bits := t.Bits()
	if bits == 0 || bits == 64 {
		return v
	}
	return v & (1<<bits - 1)
}
