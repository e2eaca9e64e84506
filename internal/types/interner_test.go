package types

import "testing"

func TestBuiltinsAreDistinct(t *testing.T) {
	in := NewInterner()
	b := in.Builtins()
	if b.Unknown != Unknown {
		t.Fatalf("unknown must be id 0, got %d", b.Unknown)
	}
	seen := map[TypeID]string{}
	for name, id := range map[string]TypeID{
		"never": b.Never, "str": b.Str, "unit": b.Unit, "bool": b.Bool, "char": b.Char, "&str": b.RefStr,
	} {
		if id == Unknown {
			t.Fatalf("%s interned as Unknown", name)
		}
		if prev, dup := seen[id]; dup {
			t.Fatalf("%s and %s share id %d", name, prev, id)
		}
		seen[id] = name
	}
	if elem, ok := in.Elem(b.RefStr); !ok || elem != b.Str {
		t.Fatalf("&str should point at str")
	}
}

func TestInternIsStructural(t *testing.T) {
	in := NewInterner()
	i32 := in.LitNum(I32)
	if in.Intern(MakeLitNum(I32)) != i32 {
		t.Fatalf("LitNum(I32) interned twice")
	}
	p1 := in.Ptr(PtrMutRef, i32)
	p2 := in.Ptr(PtrMutRef, i32)
	if p1 != p2 {
		t.Fatalf("identical pointers got different ids")
	}
	if in.Ptr(PtrRef, i32) == p1 {
		t.Fatalf("pointer kind must participate in identity")
	}
	if in.Intern(Type{Kind: KindUnknown, Payload: 7}) != Unknown {
		t.Fatalf("unknown descriptors collapse to Unknown")
	}
}

func TestFnSignatures(t *testing.T) {
	in := NewInterner()
	b := in.Builtins()
	sig := FnSig{Params: []TypeID{in.LitNum(I32), b.Bool}, Ret: b.Unit}
	f1 := in.Fn(Priv, sig)
	f2 := in.Fn(Priv, FnSig{Params: []TypeID{in.LitNum(I32), b.Bool}, Ret: b.Unit})
	if f1 != f2 {
		t.Fatalf("equal signatures should share a type")
	}
	if in.Fn(Pub, sig) == f1 {
		t.Fatalf("visibility must participate in identity")
	}
	ptr := in.FnPtr(sig)
	if ptr == f1 || !in.IsCallable(ptr) || !in.IsCallable(f1) {
		t.Fatalf("fn pointer should be distinct and callable")
	}
	sig.Params[0] = b.Char
	got, ok := in.Signature(f1)
	if !ok || got.Params[0] != in.LitNum(I32) {
		t.Fatalf("interned signature must not alias the caller's slice")
	}
	if _, ok := in.Signature(b.Bool); ok {
		t.Fatalf("bool has no signature")
	}
}

func TestNominalTypes(t *testing.T) {
	in := NewInterner()
	s := in.Struct(Pub, StructInfo{Name: "Point", Decl: 0})
	if in.Struct(Pub, StructInfo{Name: "Point", Decl: 0}) != s {
		t.Fatalf("same declaration must intern once")
	}
	other := in.Struct(Pub, StructInfo{Name: "Point", Decl: 1})
	if other == s {
		t.Fatalf("distinct declarations are distinct types")
	}
	info, ok := in.StructInfo(s)
	if !ok || info.Name != "Point" {
		t.Fatalf("struct info lost: %+v", info)
	}
	e := in.Enum(EnumInfo{Name: "Color", Decl: 0, Variants: []string{"Red"}})
	if ei, ok := in.EnumInfo(e); !ok || ei.Variants[0] != "Red" || e == s {
		t.Fatalf("enum info lost")
	}
}

func TestLitNumPredicates(t *testing.T) {
	in := NewInterner()
	if !in.IsI(in.LitNum(I)) || !in.IsF(in.LitNum(F)) {
		t.Fatalf("unconstrained tags not recognized")
	}
	if !in.IsInteger(in.LitNum(Usize)) || in.IsInteger(in.LitNum(F32)) {
		t.Fatalf("integer predicate wrong")
	}
	if !I.Adopts(U8) || I.Adopts(F64) || F.Adopts(I32) || I32.Adopts(I64) || I.Adopts(F) {
		t.Fatalf("adoption rules wrong")
	}
	if !I8.IsSigned() || U128.IsSigned() {
		t.Fatalf("signedness wrong")
	}
	if l, ok := LookupLitNum("isize"); !ok || l != Isize {
		t.Fatalf("isize lookup failed")
	}
	if _, ok := LookupLitNum("i1"); ok {
		t.Fatalf("bogus suffix accepted")
	}
}

func TestLabel(t *testing.T) {
	in := NewInterner()
	b := in.Builtins()
	cases := map[TypeID]string{
		in.LitNum(I32):    "LitNum(I32)",
		in.LitNum(I):      "LitNum(I)",
		b.Bool:            "Bool",
		b.RefStr:          "Ptr(Ref, Str)",
		b.Never:           "Never",
		in.Fn(Priv, FnSig{Params: []TypeID{in.LitNum(I32)}, Ret: b.Unit}): "Fn(fn(LitNum(I32)) -> Unit)",
		in.Struct(Priv, StructInfo{Name: "S"}):                              "Struct(S)",
	}
	for id, want := range cases {
		if got := in.Label(id); got != want {
			t.Fatalf("label: expected %q, got %q", want, got)
		}
	}
}
