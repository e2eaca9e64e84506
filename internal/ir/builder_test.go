package ir

import (
	"context"
	"errors"
	"reflect"
	"strings"
	"testing"

	"rcc/internal/diag"
	"rcc/internal/parser"
	"rcc/internal/sema"
	"rcc/internal/source"
)

func lowerSrc(t *testing.T, src string, level OptimizeLevel) (*LinearIR, error) {
	t.Helper()
	fs := source.NewFileSet()
	file, err := parser.ParseFile(fs.Get(fs.AddVirtual("test.rs", []byte(src))))
	if err != nil {
		t.Fatalf("parse %q: %v", src, err)
	}
	ctx := context.Background()
	res, err := sema.Resolve(ctx, file, sema.Options{})
	if err != nil {
		t.Fatalf("resolve %q: %v", src, err)
	}
	return Build(ctx, file, res, Options{Level: level})
}

func mustLower(t *testing.T, src string, level OptimizeLevel) *LinearIR {
	t.Helper()
	lir, err := lowerSrc(t, src, level)
	if err != nil {
		t.Fatalf("lower %q: %v", src, err)
	}
	return lir
}

func assertInsts(t *testing.T, f *Func, want []Inst) {
	t.Helper()
	if !reflect.DeepEqual(f.Insts, want) {
		var got, exp strings.Builder
		_ = DumpFunc(&got, f)
		_ = DumpFunc(&exp, &Func{Name: f.Name, ScopeID: f.ScopeID, IsGlobal: f.IsGlobal, Params: f.Params, Insts: want})
		t.Fatalf("instructions differ\ngot:\n%s\nwant:\n%s", got.String(), exp.String())
	}
}

func TestLiteralFoldingAtO1(t *testing.T) {
	lir := mustLower(t, "fn main() { let a = 2 + 3 + 4 * 1; }", OptOne)
	if len(lir.Funcs) != 1 {
		t.Fatalf("expected one function, got %d", len(lir.Funcs))
	}
	f := lir.Funcs[0]
	if f.Name != "main" || f.ScopeID != 2 || !f.IsGlobal {
		t.Fatalf("unexpected function header %s scope=%d global=%v", f.Name, f.ScopeID, f.IsGlobal)
	}
	assertInsts(t, f, []Inst{
		NewLoadData(Local("a_2", I32), Imm(I32, 9)),
		NewRet(UnitOperand()),
	})
}

func TestNoFoldingAtO0(t *testing.T) {
	lir := mustLower(t, "fn main() { let a = 2 + 3 + 4 * 1; }", OptZero)
	assertInsts(t, lir.Funcs[0], []Inst{
		NewBinOp(OpAdd, Local("$0_2", I32), Imm(I32, 2), Imm(I32, 3)),
		NewBinOp(OpMul, Local("$1_2", I32), Imm(I32, 4), Imm(I32, 1)),
		NewBinOp(OpAdd, Local("a_2", I32), PlaceOperand(Local("$0_2", I32)), PlaceOperand(Local("$1_2", I32))),
		NewRet(UnitOperand()),
	})
}

func TestWhileFusesComparison(t *testing.T) {
	lir := mustLower(t, "fn f() { let mut i = 0; while i < 10 { i = i + 1; } }", OptOne)
	i := Local("i_2", I32)
	assertInsts(t, lir.Funcs[0], []Inst{
		NewLoadData(i, Imm(I32, 0)),
		NewJumpIfCond(PlaceOperand(i), OpGe, Imm(I32, 10), 5),
		NewBinOp(OpAdd, i, PlaceOperand(i), Imm(I32, 1)),
		NewJump(2),
		NewRet(UnitOperand()),
	})
}

func TestWhileWithBoolCondition(t *testing.T) {
	lir := mustLower(t, "fn f(c: bool) { while c { continue; } }", OptZero)
	c := PlaceOperand(Local("c_2", U8))
	assertInsts(t, lir.Funcs[0], []Inst{
		NewJumpIfNot(c, 4),
		NewJump(1),
		NewJump(1),
		NewRet(UnitOperand()),
	})
}

func TestLoopBreakValue(t *testing.T) {
	lir := mustLower(t, "fn f() -> i32 { let x = loop { break 7; }; x }", OptOne)
	tmp := Local("$0_2", I32)
	x := Local("x_2", I32)
	assertInsts(t, lir.Funcs[0], []Inst{
		NewLoadData(tmp, Imm(I32, 7)),
		NewJump(4),
		NewJump(1),
		NewLoadData(x, PlaceOperand(tmp)),
		NewRet(PlaceOperand(x)),
	})
}

func TestInfiniteLoopNeedsNoReturn(t *testing.T) {
	lir := mustLower(t, "fn f() { loop {} }", OptOne)
	assertInsts(t, lir.Funcs[0], []Inst{NewJump(1)})
}

func TestShortCircuit(t *testing.T) {
	lir := mustLower(t, "fn f(a: bool, b: bool) -> bool { a && b }", OptZero)
	f := lir.Funcs[0]
	if !reflect.DeepEqual(f.Params, []Param{{Name: "a", Type: U8}, {Name: "b", Type: U8}}) {
		t.Fatalf("params %+v", f.Params)
	}
	tmp := Local("$0_2", U8)
	a := PlaceOperand(Local("a_2", U8))
	assertInsts(t, f, []Inst{
		NewLoadData(tmp, a),
		NewJumpIfNot(a, 4),
		NewLoadData(tmp, PlaceOperand(Local("b_2", U8))),
		NewRet(PlaceOperand(tmp)),
	})

	lir = mustLower(t, "fn f(b: bool) -> bool { false && b }", OptOne)
	assertInsts(t, lir.Funcs[0], []Inst{NewRet(Imm(U8, 0))})
}

func TestCallsAndNestedFunctions(t *testing.T) {
	lir := mustLower(t, `
fn main() { let r = add(1, 2); helper(); fn helper() {} }
fn add(a: i32, b: i32) -> i32 { a + b }
`, OptOne)
	if len(lir.Funcs) != 3 {
		t.Fatalf("expected 3 functions, got %d", len(lir.Funcs))
	}
	main, add, helper := lir.Funcs[0], lir.Funcs[1], lir.Funcs[2]
	tmp := Local("$0_2", I32)
	assertInsts(t, main, []Inst{
		NewCall("add", []Operand{Imm(I32, 1), Imm(I32, 2)}, &tmp),
		NewLoadData(Local("r_2", I32), PlaceOperand(tmp)),
		NewCall("helper_2", []Operand{}, nil),
		NewRet(UnitOperand()),
	})
	if add.Name != "add" || add.ScopeID != 4 || !add.IsGlobal {
		t.Fatalf("add header: %s scope=%d", add.Name, add.ScopeID)
	}
	sum := Local("$0_4", I32)
	assertInsts(t, add, []Inst{
		NewBinOp(OpAdd, sum, PlaceOperand(Local("a_4", I32)), PlaceOperand(Local("b_4", I32))),
		NewRet(PlaceOperand(sum)),
	})
	if helper.Name != "helper_2" || helper.IsGlobal || helper.ScopeID != 3 {
		t.Fatalf("helper header: %s scope=%d global=%v", helper.Name, helper.ScopeID, helper.IsGlobal)
	}
}

func TestStringConstants(t *testing.T) {
	lir := mustLower(t, `fn f() { let s = "hi"; let u = "hi"; }`, OptOne)
	assertInsts(t, lir.Funcs[0], []Inst{
		NewLoadAddr(Local("$0_2", Addr), ".LC1"),
		NewLoadData(Local("s_2", Addr), PlaceOperand(Local("$0_2", Addr))),
		NewLoadAddr(Local("$1_2", Addr), ".LC1"),
		NewLoadData(Local("u_2", Addr), PlaceOperand(Local("$1_2", Addr))),
		NewRet(UnitOperand()),
	})
	if !reflect.DeepEqual(lir.RoLocalStrs, map[string]string{".LC1": "hi"}) {
		t.Fatalf("ro strings %v", lir.RoLocalStrs)
	}
}

func TestConstInlining(t *testing.T) {
	lir := mustLower(t, "const N: i32 = 4; fn f() -> i32 { N * 2 }", OptOne)
	assertInsts(t, lir.Funcs[0], []Inst{NewRet(Imm(I32, 8))})
}

func TestUnaryLowering(t *testing.T) {
	lir := mustLower(t, "fn f(x: i32) -> i32 { -x }", OptZero)
	assertInsts(t, lir.Funcs[0], []Inst{
		NewBinOp(OpSub, Local("$0_2", I32), Imm(I32, 0), PlaceOperand(Local("x_2", I32))),
		NewRet(PlaceOperand(Local("$0_2", I32))),
	})
	lir = mustLower(t, "fn f() -> bool { !true }", OptOne)
	assertInsts(t, lir.Funcs[0], []Inst{NewRet(Imm(U8, 0))})
}

func TestBorrowLocal(t *testing.T) {
	lir := mustLower(t, "fn f() { let a = 1; let p = &a; }", OptOne)
	assertInsts(t, lir.Funcs[0], []Inst{
		NewLoadData(Local("a_2", I32), Imm(I32, 1)),
		NewLoadAddr(Local("$0_2", Addr), "a_2"),
		NewLoadData(Local("p_2", Addr), PlaceOperand(Local("$0_2", Addr))),
		NewRet(UnitOperand()),
	})
}

func TestReturnEndsBody(t *testing.T) {
	lir := mustLower(t, "fn f() -> i32 { return 1; }", OptOne)
	assertInsts(t, lir.Funcs[0], []Inst{NewRet(Imm(I32, 1))})
}

func TestUnimplementedLowering(t *testing.T) {
	cases := map[string]string{
		"fn f(p: &i32) -> i32 { *p }":              "unimplemented: deref",
		"static mut S: i32 = 1; fn f() { S = 2; }": "unimplemented: static",
		"fn g() {} fn f() { let h = g; }":          "unimplemented: function value",
		"fn f() { let a = 1.5; let b = !a; }":      "unimplemented: `!` on float",
	}
	for src, want := range cases {
		_, err := lowerSrc(t, src, OptOne)
		if err == nil || err.Error() != want {
			t.Fatalf("%q: expected %q, got %v", src, want, err)
		}
		if !errors.Is(err, diag.ErrUnimplemented) {
			t.Fatalf("%q: expected ErrUnimplemented", src)
		}
	}
}

func TestUnitBindingsAreNotStored(t *testing.T) {
	lir := mustLower(t, "fn f() { let u = (); let a = loop { break; }; let v = u; }", OptZero)
	for _, inst := range lir.Funcs[0].Insts {
		if inst.HasDest && inst.Dest.Type == Unit {
			t.Fatalf("unit value stored: %+v", inst)
		}
	}
}

func TestLateNarrowingKeepsOperandWidths(t *testing.T) {
	lir := mustLower(t, "fn f() { let a = 1; let b = a + 2; let d = -b; let c: i64 = a; }", OptZero)
	for _, inst := range lir.Funcs[0].Insts {
		if inst.Kind != InstBinOp {
			continue
		}
		if inst.Lhs.Type != I64 || inst.Rhs.Type != I64 || inst.Dest.Type != I64 {
			t.Fatalf("mixed widths in %+v", inst)
		}
	}
	binops := 0
	for _, inst := range lir.Funcs[0].Insts {
		if inst.Kind == InstBinOp {
			binops++
		}
	}
	if binops != 2 {
		t.Fatalf("expected a + 2 and -b as binops, got %d", binops)
	}
}

func TestDump(t *testing.T) {
	lir := mustLower(t, `fn main() { let a = 2 + 3 + 4 * 1; let s = "x"; }`, OptOne)
	var sb strings.Builder
	if err := Dump(&sb, lir); err != nil {
		t.Fatalf("dump: %v", err)
	}
	out := sb.String()
	for _, want := range []string{"fn main() scope=2 global:", "a_2: I32 = I32(9)", "&.LC1", "ret Unit", `.LC1 = "x"`} {
		if !strings.Contains(out, want) {
			t.Fatalf("dump missing %q:\n%s", want, out)
		}
	}
}
