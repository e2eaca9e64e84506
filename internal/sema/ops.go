package sema

import (
	"rcc/internal/ast"
	"rcc/internal/types"
)

func (rs *resolver) visitBinary(id ast.ExprID, e *ast.Expr) error {
	bin, _ := rs.file.Exprs.Binary(id)
	if err := rs.visitExpr(bin.Left); err != nil {
		return err
	}
	if err := rs.visitExpr(bin.Right); err != nil {
		return err
	}
	ty := rs.primitiveBinary(bin)
	if ty == types.Unknown {
		res, ok := rs.overloads.Lookup(bin.Op, rs.typeOf(bin.Left), rs.typeOf(bin.Right))
		if !ok {
			return rs.errorf(e.Span, "invalid operand for `%s`", bin.Op)
		}
		ty = res
	}
	e.Type = ty
	e.Category = ast.CatValue
	switch {
	case bin.Op.IsLogical():
	case bin.Op.IsShift():
		rs.parents[bin.Left] = id
	default:
		rs.parents[bin.Left] = id
		rs.parents[bin.Right] = id
	}
	return nil
}

// primitiveBinary applies the built-in operator rules and returns
// types.Unknown when they do not cover the operands.
func (rs *resolver) primitiveBinary(bin *ast.ExprBinaryData) types.TypeID {
	lt, rt := rs.typeOf(bin.Left), rs.typeOf(bin.Right)
	in := rs.types
	switch {
	case bin.Op.IsShift():
		if in.IsInteger(lt) && in.IsInteger(rt) {
			return lt
		}
	case bin.Op.IsArith():
		if in.IsNumber(lt) && in.IsNumber(rt) {
			if ty, ok := rs.unifyPair(bin.Left, bin.Right); ok {
				return ty
			}
		}
	case bin.Op.IsBitwise():
		if lt == rs.builtins.Bool && rt == rs.builtins.Bool {
			return rs.builtins.Bool
		}
		if in.IsInteger(lt) && in.IsInteger(rt) {
			if ty, ok := rs.unifyPair(bin.Left, bin.Right); ok {
				return ty
			}
		}
	case bin.Op.IsLogical():
		if lt == rs.builtins.Bool && rt == rs.builtins.Bool {
			return rs.builtins.Bool
		}
	case bin.Op == ast.BinEq || bin.Op == ast.BinNe:
		if lt == rt && (lt == rs.builtins.Bool || lt == rs.builtins.Char) {
			return rs.builtins.Bool
		}
		if in.IsNumber(lt) && in.IsNumber(rt) {
			if _, ok := rs.unifyPair(bin.Left, bin.Right); ok {
				return rs.builtins.Bool
			}
		}
	case bin.Op.IsComparison():
		if lt == rt && lt == rs.builtins.Char {
			return rs.builtins.Bool
		}
		if in.IsNumber(lt) && in.IsNumber(rt) {
			if _, ok := rs.unifyPair(bin.Left, bin.Right); ok {
				return rs.builtins.Bool
			}
		}
	}
	return types.Unknown
}

func (rs *resolver) visitUnary(id ast.ExprID, e *ast.Expr) error {
	un, _ := rs.file.Exprs.Unary(id)
	if err := rs.visitExpr(un.Operand); err != nil {
		return err
	}
	operand := rs.expr(un.Operand)
	ty := operand.Type
	switch un.Op {
	case ast.UnDeref:
		elem, ok := rs.types.Elem(ty)
		if !ok {
			return rs.errorf(e.Span, "type `%s` can not be dereferenced", rs.label(ty))
		}
		e.Type = elem
		e.Category = operand.Category
	case ast.UnNot:
		if ty != rs.builtins.Bool && !rs.types.IsNumber(ty) {
			return rs.errorf(e.Span, "cannot apply unary operator `!` to type `%s`", rs.label(ty))
		}
		e.Type = ty
		e.Category = ast.CatValue
		rs.parents[un.Operand] = id
	case ast.UnNeg:
		if !rs.types.IsNumber(ty) {
			return rs.errorf(e.Span, "cannot apply unary operator `-` to type `%s`", rs.label(ty))
		}
		e.Type = ty
		e.Category = ast.CatValue
		rs.parents[un.Operand] = id
	case ast.UnRef, ast.UnRefMut:
		if ty == types.Unknown {
			return rs.errorf(e.Span, "cannot borrow a value of unknown type")
		}
		kind := types.PtrRef
		if un.Op == ast.UnRefMut {
			if operand.Category != ast.CatMutablePlace {
				return rs.errorf(e.Span, "cannot borrow immutable expression as mutable")
			}
			kind = types.PtrMutRef
		}
		e.Type = rs.types.Ptr(kind, ty)
		e.Category = ast.CatValue
	}
	return nil
}
