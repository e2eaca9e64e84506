package ast

import (
	"testing"

	"rcc/internal/source"
)

func TestArenaIsOneBased(t *testing.T) {
	a := NewArena[int](0)
	if a.Get(0) != nil {
		t.Fatalf("index 0 must be the nil sentinel")
	}
	id := a.Allocate(42)
	if id != 1 || *a.Get(id) != 42 || a.Len() != 1 {
		t.Fatalf("unexpected arena state id=%d len=%d", id, a.Len())
	}
	if a.Get(2) != nil {
		t.Fatalf("out of range index must be nil")
	}
}

func TestPayloadAccessorsCheckKind(t *testing.T) {
	b := NewBuilder(0)
	lit := b.Exprs.NewLiteral(source.Span{}, ExprLitData{Kind: LitInt, Int: 3})
	bin := b.Exprs.NewBinary(source.Span{}, BinAdd, lit, lit)
	if _, ok := b.Exprs.Binary(lit); ok {
		t.Fatalf("literal must not expose a binary payload")
	}
	data, ok := b.Exprs.Binary(bin)
	if !ok || data.Left != lit || data.Op.String() != "+" {
		t.Fatalf("binary payload mismatch: %+v", data)
	}
	brk := b.Exprs.NewBreak(source.Span{}, lit)
	ret := b.Exprs.NewReturn(source.Span{}, NoExprID)
	if j, ok := b.Exprs.Jump(brk); !ok || j.Value != lit {
		t.Fatalf("break payload mismatch")
	}
	if j, ok := b.Exprs.Jump(ret); !ok || j.Value.IsValid() {
		t.Fatalf("return payload mismatch")
	}
}

func TestOpClasses(t *testing.T) {
	if !BinRem.IsArith() || BinBitAnd.IsArith() || !BinGe.IsComparison() || !BinShr.IsShift() {
		t.Fatalf("binary op classes are off")
	}
	if UnRefMut.String() != "&mut" {
		t.Fatalf("unexpected unary text %q", UnRefMut.String())
	}
	if !ExprWhile.IsBlockLike() || ExprCall.IsBlockLike() {
		t.Fatalf("block-like classification is off")
	}
}

func TestArenaAllStopsEarly(t *testing.T) {
	a := NewArena[string](3)
	for _, s := range []string{"a", "b", "c"} {
		a.Allocate(s)
	}
	var ids []uint32
	for id, v := range a.All() {
		ids = append(ids, id)
		if *v == "b" {
			break
		}
	}
	if len(ids) != 2 || ids[0] != 1 || ids[1] != 2 {
		t.Fatalf("ids = %v", ids)
	}
}
