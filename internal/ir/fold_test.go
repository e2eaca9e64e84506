package ir

import "testing"

func TestFoldBinary(t *testing.T) {
	cases := []struct {
		name string
		op   Op
		t    IRType
		l, r Operand
		want Operand
		ok   bool
	}{
		{"wrap i8", OpAdd, I8, Imm(I8, 127), Imm(I8, 1), Imm(I8, -128), true},
		{"wrap u8", OpAdd, U8, Imm(U8, 200), Imm(U8, 100), Imm(U8, 44), true},
		{"div by zero", OpDiv, I32, Imm(I32, 1), Imm(I32, 0), Operand{}, false},
		{"signed div", OpDiv, I32, Imm(I32, -7), Imm(I32, 2), Imm(I32, -3), true},
		{"unsigned div", OpDiv, U32, Imm(U32, -1), Imm(U32, 2), Imm(U32, 2147483647), true},
		{"shift out of range", OpShl, I32, Imm(I32, 1), Imm(I32, 32), Operand{}, false},
		{"arithmetic shr", OpShr, I32, Imm(I32, -8), Imm(I32, 1), Imm(I32, -4), true},
		{"logical shr", OpShr, U8, Imm(U8, 0x80), Imm(U8, 7), Imm(U8, 1), true},
		{"unsigned compare", OpGt, U8, Imm(U32, -1), Imm(U32, 1), Imm(U8, 1), true},
		{"signed compare", OpLt, U8, Imm(I32, -1), Imm(I32, 1), Imm(U8, 1), true},
		{"float", OpMul, F64, FloatImm(F64, 1.5), FloatImm(F64, 2), FloatImm(F64, 3), true},
		{"place", OpAdd, I32, PlaceOperand(Local("a_2", I32)), Imm(I32, 1), Operand{}, false},
	}
	for _, tc := range cases {
		got, ok := foldBinary(tc.op, tc.t, tc.l, tc.r)
		if ok != tc.ok || (ok && got != tc.want) {
			t.Fatalf("%s: got %v (%v), want %v (%v)", tc.name, got, ok, tc.want, tc.ok)
		}
	}
}

func TestImmTruncates(t *testing.T) {
	if got := Imm(U8, 256+5).Int; got != 5 {
		t.Fatalf("u8: %d", got)
	}
	if got := Imm(I16, 0x18000).Int; got != -32768 {
		t.Fatalf("i16: %d", got)
	}
}

func TestOpNegate(t *testing.T) {
	for _, op := range []Op{OpEq, OpNe, OpLt, OpLe, OpGt, OpGe} {
		if op.Negate().Negate() != op {
			t.Fatalf("%s: negate is not an involution", op)
		}
	}
}

func TestNames(t *testing.T) {
	if LocalVar("a", 2) != "a_2" || TempVar(3, 7) != "$3_7" || BranchName(2, 5) != ".L2_5" {
		t.Fatalf("unexpected mangling")
	}
	if !IsTempVar("$0_1") || IsTempVar("a_1") {
		t.Fatalf("IsTempVar")
	}
	if StrLabel(4) != ".LC4" {
		t.Fatalf("StrLabel")
	}
}
