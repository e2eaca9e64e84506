package ast

import (
	"rcc/internal/source"
	"rcc/internal/types"
)

type ExprKind uint8

const (
	ExprPath ExprKind = iota
	ExprLit
	ExprUnary
	ExprBinary
	ExprAssign
	ExprCall
	ExprGroup
	ExprBlock
	ExprWhile
	ExprLoop
	ExprIf
	ExprBreak
	ExprContinue
	ExprReturn
	ExprTuple
	ExprArray
	ExprArrayRepeat
	ExprIndex
	ExprField
	ExprTupleIndex
	ExprRange
	ExprStruct
)

var exprKindNames = [...]string{
	ExprPath:        "path",
	ExprLit:         "literal",
	ExprUnary:       "unary",
	ExprBinary:      "binary",
	ExprAssign:      "assign",
	ExprCall:        "call",
	ExprGroup:       "group",
	ExprBlock:       "block",
	ExprWhile:       "while",
	ExprLoop:        "loop",
	ExprIf:          "if",
	ExprBreak:       "break",
	ExprContinue:    "continue",
	ExprReturn:      "return",
	ExprTuple:       "tuple",
	ExprArray:       "array",
	ExprArrayRepeat: "array",
	ExprIndex:       "index",
	ExprField:       "field access",
	ExprTupleIndex:  "tuple index",
	ExprRange:       "range",
	ExprStruct:      "struct",
}

func (k ExprKind) String() string {
	if int(k) < len(exprKindNames) {
		return exprKindNames[k]
	}
	return "expr"
}

// IsBlockLike reports expressions that end a statement without `;`.
func (k ExprKind) IsBlockLike() bool {
	switch k {
	case ExprBlock, ExprWhile, ExprLoop, ExprIf:
		return true
	default:
		return false
	}
}

// Category is the l-value class of an expression.
type Category uint8

const (
	CatUnknown Category = iota
	CatPlace
	CatMutablePlace
	CatValue
)

func (c Category) String() string {
	switch c {
	case CatPlace:
		return "Place"
	case CatMutablePlace:
		return "MutablePlace"
	case CatValue:
		return "Value"
	default:
		return "Unknown"
	}
}

// Expr is one expression node. Type and Category start Unknown and are
// filled in place by the resolver.
type Expr struct {
	Kind     ExprKind
	Span     source.Span
	Payload  PayloadID
	Type     types.TypeID
	Category Category
}

type ExprPathData struct {
	Segments []string
}

// Name returns the last path segment, the one lookups resolve.
func (p *ExprPathData) Name() string {
	if len(p.Segments) == 0 {
		return ""
	}
	return p.Segments[len(p.Segments)-1]
}

type LitKind uint8

const (
	LitInt LitKind = iota
	LitFloat
	LitBool
	LitChar
	LitStr
	LitUnit
)

// ExprLitData holds a decoded literal. Suffix is meaningful when HasSuffix.
type ExprLitData struct {
	Kind      LitKind
	Int       uint64
	Float     float64
	Bool      bool
	Char      rune
	Str       string
	Suffix    types.LitNum
	HasSuffix bool
	// StrID is the string constant id assigned by the resolver.
	StrID uint32
}

type ExprUnaryData struct {
	Op      UnaryOp
	Operand ExprID
}

type ExprBinaryData struct {
	Op    BinaryOp
	Left  ExprID
	Right ExprID
}

type ExprAssignData struct {
	Left  ExprID
	Right ExprID
}

type ExprCallData struct {
	Callee ExprID
	Args   []ExprID
}

type ExprGroupData struct {
	Inner ExprID
}

type ExprBlockData struct {
	Block BlockID
}

type ExprWhileData struct {
	Cond ExprID
	Body BlockID
}

type ExprLoopData struct {
	Body BlockID
}

type ExprIfData struct {
	Cond ExprID
	Then BlockID
	Else ExprID // block or another if; NoExprID when absent
}

// ExprJumpData backs break and return; Value is NoExprID when omitted.
type ExprJumpData struct {
	Value ExprID
}

// ExprListData backs tuples and arrays.
type ExprListData struct {
	Elems []ExprID
}

type ExprArrayRepeatData struct {
	Value ExprID
	Count ExprID
}

type ExprIndexData struct {
	Target ExprID
	Index  ExprID
}

type ExprFieldData struct {
	Target ExprID
	Name   string
}

type ExprTupleIndexData struct {
	Target ExprID
	Index  uint32
}

type ExprRangeData struct {
	Start     ExprID
	End       ExprID
	Inclusive bool
}

type StructFieldInit struct {
	Name  string
	Value ExprID
	Span  source.Span
}

type ExprStructData struct {
	Path   []string
	Fields []StructFieldInit
}
