package sema

import (
	"rcc/internal/ast"
	"rcc/internal/symbols"
	"rcc/internal/types"
)

func (rs *resolver) resolveFile() error {
	if err := rs.hoist(rs.scopes.File(), rs.file.TopLevel); err != nil {
		return err
	}
	for _, id := range rs.file.TopLevel {
		if err := rs.resolveItem(id); err != nil {
			return err
		}
	}
	return nil
}

// hoist records the definitions of items into scope before any body or
// statement of that scope is resolved: types first, then function signatures,
// then consts and statics. All of them occupy statement slot 0.
func (rs *resolver) hoist(scope *symbols.Scope, items []ast.ItemID) error {
	for _, id := range items {
		switch rs.file.Items.Get(id).Kind {
		case ast.ItemStruct:
			st, _ := rs.file.Items.Struct(id)
			vis := types.Priv
			if st.Pub {
				vis = types.Pub
			}
			ty := rs.types.Struct(vis, types.StructInfo{Name: st.Name, Decl: st.Index})
			scope.AddTypeDef(st.Name, symbols.TypeDef{Item: id, Type: ty})
		case ast.ItemEnum:
			en, _ := rs.file.Items.Enum(id)
			ty := rs.types.Enum(types.EnumInfo{Name: en.Name, Decl: en.Index, Variants: en.Variants})
			scope.AddTypeDef(en.Name, symbols.TypeDef{Item: id, Type: ty})
		}
	}

	for _, id := range items {
		fn, ok := rs.file.Items.Fn(id)
		if !ok {
			continue
		}
		sig := types.FnSig{Params: make([]types.TypeID, 0, len(fn.Params))}
		for _, p := range fn.Params {
			ty, err := rs.typeFromAnno(p.Ty)
			if err != nil {
				return err
			}
			sig.Params = append(sig.Params, ty)
		}
		ret, err := rs.typeFromAnno(fn.Ret)
		if err != nil {
			return err
		}
		sig.Ret = ret
		vis := types.Priv
		if fn.Pub {
			vis = types.Pub
		}
		fn.Type = rs.types.Fn(vis, sig)
		scope.AddFn(fn.Name, symbols.FnDef{Item: id, Type: fn.Type})
	}

	type pending struct {
		item ast.ItemID
		v    *symbols.VarInfo
	}
	var values []pending
	for _, id := range items {
		val, ok := rs.file.Items.Value(id)
		if !ok {
			continue
		}
		ty, err := rs.typeFromAnno(val.Ty)
		if err != nil {
			return err
		}
		kind := symbols.VarConst
		if val.Mut {
			kind = symbols.VarStatic
		}
		values = append(values, pending{item: id, v: scope.AddVariable(val.Name, kind, ty)})
	}

	scope.CurStmtID = 1
	for _, p := range values {
		if err := rs.resolveValueItem(p.item, p.v); err != nil {
			return err
		}
	}
	return nil
}

func (rs *resolver) resolveItem(id ast.ItemID) error {
	if rs.file.Items.Get(id).Kind == ast.ItemFn {
		return rs.resolveFn(id)
	}
	// structs, enums, consts and statics are complete after hoisting
	return nil
}

func (rs *resolver) resolveValueItem(id ast.ItemID, v *symbols.VarInfo) error {
	val, _ := rs.file.Items.Value(id)
	what := "const"
	if rs.file.Items.Get(id).Kind == ast.ItemStatic {
		what = "static"
	}
	if err := rs.visitExpr(val.Value); err != nil {
		return err
	}
	if !rs.coerce(val.Value, v.Type) {
		return rs.errorf(rs.expr(val.Value).Span, "invalid type in %s item: expected `%s`, found %s",
			what, rs.label(v.Type), rs.label(rs.typeOf(val.Value)))
	}
	rs.result.Inits[v] = val.Value
	rs.addSource(v, val.Value)
	return nil
}

// resolveFn binds the parameters in the body scope at slot 0 and resolves the
// body with a fresh loop context and the declared return type.
func (rs *resolver) resolveFn(id ast.ItemID) error {
	fn, _ := rs.file.Items.Fn(id)
	sig, _ := rs.types.Signature(fn.Type)
	body := rs.file.Blocks.Get(fn.Body)

	rs.scopes.Link(body.Scope, rs.cur)
	bodyScope := rs.scopes.Get(body.Scope)
	params := make([]*symbols.VarInfo, 0, len(fn.Params))
	for i, p := range fn.Params {
		kind := symbols.VarLocal
		if p.Mut {
			kind = symbols.VarLocalMut
		}
		params = append(params, bodyScope.AddVariable(p.Name, kind, sig.Params[i]))
	}
	rs.result.Params[id] = params

	rs.rets = append(rs.rets, sig.Ret)
	rs.loops = append(rs.loops, loopFrame{kind: loopNotIn})
	outerVisited := rs.visited
	rs.visited = nil
	defer func() {
		rs.rets = rs.rets[:len(rs.rets)-1]
		rs.loops = rs.loops[:len(rs.loops)-1]
		rs.visited = outerVisited
	}()

	_, value, err := rs.resolveBlock(fn.Body)
	if err != nil {
		return err
	}
	if value.IsValid() && !rs.coerce(value, sig.Ret) {
		return rs.errorf(rs.expr(value).Span, "invalid return type: excepted `%s`, found `%s`",
			rs.label(sig.Ret), rs.label(rs.typeOf(value)))
	}
	if err := rs.finalize(); err != nil {
		return err
	}
	rs.emitPoint("resolve fn", fn.Name)
	return nil
}

// finalize propagates narrowed binding types to every path that read the
// binding before it narrowed, then checks no expression stayed Unknown.
func (rs *resolver) finalize() error {
	for _, id := range rs.visited {
		e := rs.expr(id)
		if v, ok := rs.result.Bindings[id]; ok && e.Type != v.Type {
			if rs.types.IsUnconstrained(e.Type) || e.Type == types.Unknown {
				e.Type = v.Type
			}
		}
	}
	for _, id := range rs.visited {
		e := rs.expr(id)
		if e.Type != types.Unknown && e.Category != ast.CatUnknown {
			continue
		}
		if path, ok := rs.file.Exprs.Path(id); ok {
			return rs.errorf(e.Span, "type annotations needed for `%s`", path.Name())
		}
		return rs.errorf(e.Span, "type annotations needed")
	}
	return nil
}
