package ast

import "fmt"

type BinaryOp uint8

const (
	BinAdd BinaryOp = iota
	BinSub
	BinMul
	BinDiv
	BinRem
	BinBitAnd
	BinBitOr
	BinBitXor
	BinShl
	BinShr
	BinAnd
	BinOr
	BinEq
	BinNe
	BinLt
	BinLe
	BinGt
	BinGe
	numBinaryOps
)

var binaryOpText = [numBinaryOps]string{
	BinAdd:    "+",
	BinSub:    "-",
	BinMul:    "*",
	BinDiv:    "/",
	BinRem:    "%",
	BinBitAnd: "&",
	BinBitOr:  "|",
	BinBitXor: "^",
	BinShl:    "<<",
	BinShr:    ">>",
	BinAnd:    "&&",
	BinOr:     "||",
	BinEq:     "==",
	BinNe:     "!=",
	BinLt:     "<",
	BinLe:     "<=",
	BinGt:     ">",
	BinGe:     ">=",
}

func (op BinaryOp) String() string {
	if op < numBinaryOps {
		return binaryOpText[op]
	}
	return fmt.Sprintf("BinaryOp(%d)", op)
}

// IsArith reports + - * / %.
func (op BinaryOp) IsArith() bool {
	return op <= BinRem
}

// IsBitwise reports & | ^.
func (op BinaryOp) IsBitwise() bool {
	return op == BinBitAnd || op == BinBitOr || op == BinBitXor
}

// IsShift reports << and >>.
func (op BinaryOp) IsShift() bool {
	return op == BinShl || op == BinShr
}

// IsLogical reports && and ||.
func (op BinaryOp) IsLogical() bool {
	return op == BinAnd || op == BinOr
}

// IsComparison reports == != < <= > >=.
func (op BinaryOp) IsComparison() bool {
	return op >= BinEq && op <= BinGe
}

type UnaryOp uint8

const (
	UnDeref UnaryOp = iota
	UnNot
	UnNeg
	UnRef
	UnRefMut
)

func (op UnaryOp) String() string {
	switch op {
	case UnDeref:
		return "*"
	case UnNot:
		return "!"
	case UnNeg:
		return "-"
	case UnRef:
		return "&"
	case UnRefMut:
		return "&mut"
	default:
		return fmt.Sprintf("UnaryOp(%d)", op)
	}
}
