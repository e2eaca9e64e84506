package sema

import (
	"rcc/internal/ast"
	"rcc/internal/types"
)

// typeFromAnno resolves a type annotation in the current scope. A missing
// annotation (a function without `-> T`) is `()`.
func (rs *resolver) typeFromAnno(id ast.TypeExprID) (types.TypeID, error) {
	if !id.IsValid() {
		return rs.builtins.Unit, nil
	}
	te := rs.file.Types.Get(id)
	switch te.Kind {
	case ast.TypeNever:
		return rs.builtins.Never, nil
	case ast.TypeUnit:
		return rs.builtins.Unit, nil
	case ast.TypePath:
		return rs.namedType(te)
	case ast.TypeRef, ast.TypeRawPtr:
		elem, err := rs.typeFromAnno(te.Elem)
		if err != nil {
			return types.Unknown, err
		}
		kind := types.PtrRef
		switch {
		case te.Kind == ast.TypeRef && te.Mut:
			kind = types.PtrMutRef
		case te.Kind == ast.TypeRawPtr && te.Mut:
			kind = types.PtrRawMut
		case te.Kind == ast.TypeRawPtr:
			kind = types.PtrRawConst
		}
		return rs.types.Ptr(kind, elem), nil
	case ast.TypeFn:
		sig := types.FnSig{Params: make([]types.TypeID, 0, len(te.Params))}
		for _, p := range te.Params {
			ty, err := rs.typeFromAnno(p)
			if err != nil {
				return types.Unknown, err
			}
			sig.Params = append(sig.Params, ty)
		}
		ret, err := rs.typeFromAnno(te.Ret)
		if err != nil {
			return types.Unknown, err
		}
		sig.Ret = ret
		return rs.types.FnPtr(sig), nil
	case ast.TypeTuple:
		return types.Unknown, rs.unimplemented(te.Span, "tuple type")
	case ast.TypeArray:
		return types.Unknown, rs.unimplemented(te.Span, "array type")
	default:
		return types.Unknown, rs.errorf(te.Span, "unsupported type annotation")
	}
}

func (rs *resolver) namedType(te *ast.TypeExpr) (types.TypeID, error) {
	switch te.Name {
	case "bool":
		return rs.builtins.Bool, nil
	case "char":
		return rs.builtins.Char, nil
	case "str":
		return rs.builtins.Str, nil
	}
	if lit, ok := types.LookupLitNum(te.Name); ok {
		return rs.types.LitNum(lit), nil
	}
	if ty := rs.scopes.FindDefExceptFn(rs.cur, te.Name); ty != types.Unknown {
		return ty, nil
	}
	return types.Unknown, rs.errorf(te.Span, "cannot find type `%s` in this scope", te.Name)
}
