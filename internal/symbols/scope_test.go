package symbols

import (
	"testing"

	"rcc/internal/ast"
	"rcc/internal/types"
)

func TestVariableVisibilityFollowsStmtOrder(t *testing.T) {
	in := types.NewInterner()
	scopes := NewScopes(3)
	scopes.Link(2, ast.FileScopeID)
	body := scopes.Get(2)

	body.AddVariable("p", VarLocal, in.LitNum(types.I32)) // slot 0
	body.CurStmtID = 1
	if _, ok := scopes.FindVariable(2, "p"); !ok {
		t.Fatalf("parameter must be visible from the first statement")
	}
	a := body.AddVariable("a", VarLocalMut, types.Unknown)
	if _, ok := scopes.FindVariable(2, "a"); ok {
		t.Fatalf("binding visible inside its own statement")
	}
	body.NextStmt()
	got, ok := scopes.FindVariable(2, "a")
	if !ok || got != a {
		t.Fatalf("binding not visible after its statement")
	}
	if a.Scope != 2 || a.StmtID != 1 {
		t.Fatalf("unexpected binding %+v", a)
	}
}

func TestShadowingKeepsHistory(t *testing.T) {
	in := types.NewInterner()
	scopes := NewScopes(4)
	scopes.Link(2, ast.FileScopeID)
	scopes.Link(3, 2)
	outer, inner := scopes.Get(2), scopes.Get(3)

	outer.CurStmtID = 1
	a32 := outer.AddVariable("a", VarLocal, in.LitNum(types.I32))
	outer.NextStmt()
	inner.CurStmtID = 1
	a64 := inner.AddVariable("a", VarLocal, in.LitNum(types.I64))
	inner.NextStmt()

	if v, _ := scopes.FindVariable(3, "a"); v != a64 {
		t.Fatalf("inner lookup should see the inner binding")
	}
	if v, _ := scopes.FindVariable(2, "a"); v != a32 {
		t.Fatalf("outer lookup should see the outer binding")
	}

	again := outer.AddVariable("a", VarLocal, in.Builtins().Bool)
	outer.NextStmt()
	if v, _ := scopes.FindVariable(2, "a"); v != again {
		t.Fatalf("later shadow should win")
	}
	outer.CurStmtID = 2
	if v, _ := scopes.FindVariable(2, "a"); v != a32 {
		t.Fatalf("rewinding the counter should expose the older binding")
	}
}

func TestDefinitionsAreHoisted(t *testing.T) {
	in := types.NewInterner()
	scopes := NewScopes(3)
	scopes.Link(2, ast.FileScopeID)
	fnTy := in.Fn(types.Priv, types.FnSig{Ret: in.Builtins().Unit})
	scopes.File().AddFn("main", FnDef{Item: 1, Type: fnTy})
	st := in.Struct(types.Priv, types.StructInfo{Name: "P"})
	scopes.File().AddTypeDef("P", TypeDef{Item: 2, Type: st})

	def, ok := scopes.FindFn(2, "main")
	if !ok || def.Type != fnTy || def.Scope != ast.FileScopeID {
		t.Fatalf("fn lookup: %+v", def)
	}
	if scopes.FnType(2, "missing") != types.Unknown {
		t.Fatalf("missing fn should be Unknown")
	}
	if scopes.FindDefExceptFn(2, "P") != st {
		t.Fatalf("type def lookup failed")
	}
	if scopes.FindDefExceptFn(2, "main") != types.Unknown {
		t.Fatalf("functions are not type definitions")
	}
}

func TestLinkAndValidate(t *testing.T) {
	scopes := NewScopes(4)
	scopes.Link(2, ast.FileScopeID)
	scopes.Link(3, 2)
	scopes.Link(3, ast.FileScopeID) // parent is fixed once
	if scopes.Get(3).Parent != 2 {
		t.Fatalf("relinking changed the parent")
	}
	if err := scopes.Validate(); err != nil {
		t.Fatalf("validate: %v", err)
	}
	scopes.Get(2).Children = nil
	if err := scopes.Validate(); err == nil {
		t.Fatalf("expected missing child error")
	}
	if scopes.Get(0) != nil || scopes.Get(9) != nil {
		t.Fatalf("invalid ids must return nil")
	}
	if scopes.Len() != 3 {
		t.Fatalf("expected 3 scopes, got %d", scopes.Len())
	}
}
