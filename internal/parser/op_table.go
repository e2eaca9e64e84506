package parser

import (
	"rcc/internal/ast"
	"rcc/internal/token"
)

// Binary precedence; higher binds tighter.
const (
	precAssignment     = 1 // =
	precRange          = 2 // .. ..=
	precLogicalOr      = 3 // ||
	precLogicalAnd     = 4 // &&
	precEquality       = 5 // == !=
	precComparison     = 6 // < <= > >=
	precBitwiseOr      = 7 // |
	precBitwiseXor     = 8 // ^
	precBitwiseAnd     = 9 // &
	precShift          = 10
	precAdditive       = 11
	precMultiplicative = 12
)

// binaryPrec returns the precedence of kind and whether it is right-associative.
// -1 means kind is not a binary operator.
func binaryPrec(kind token.Kind) (int, bool) {
	switch kind {
	case token.Assign:
		return precAssignment, true
	case token.DotDot, token.DotDotEq:
		return precRange, false
	case token.OrOr:
		return precLogicalOr, false
	case token.AndAnd:
		return precLogicalAnd, false
	case token.EqEq, token.BangEq:
		return precEquality, false
	case token.Lt, token.LtEq, token.Gt, token.GtEq:
		return precComparison, false
	case token.Pipe:
		return precBitwiseOr, false
	case token.Caret:
		return precBitwiseXor, false
	case token.Amp:
		return precBitwiseAnd, false
	case token.Shl, token.Shr:
		return precShift, false
	case token.Plus, token.Minus:
		return precAdditive, false
	case token.Star, token.Slash, token.Percent:
		return precMultiplicative, false
	default:
		return -1, false
	}
}

var binaryOps = map[token.Kind]ast.BinaryOp{
	token.Plus:    ast.BinAdd,
	token.Minus:   ast.BinSub,
	token.Star:    ast.BinMul,
	token.Slash:   ast.BinDiv,
	token.Percent: ast.BinRem,
	token.Amp:     ast.BinBitAnd,
	token.Pipe:    ast.BinBitOr,
	token.Caret:   ast.BinBitXor,
	token.Shl:     ast.BinShl,
	token.Shr:     ast.BinShr,
	token.AndAnd:  ast.BinAnd,
	token.OrOr:    ast.BinOr,
	token.EqEq:    ast.BinEq,
	token.BangEq:  ast.BinNe,
	token.Lt:      ast.BinLt,
	token.LtEq:    ast.BinLe,
	token.Gt:      ast.BinGt,
	token.GtEq:    ast.BinGe,
}
