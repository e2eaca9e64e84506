package types

import "fmt"

// LitNum tags numeric primitives. I and F are unconstrained: they are the
// default tag of a literal and get narrowed when a typed context forces them.
type LitNum uint8

const (
	I LitNum = iota
	F
	I8
	I16
	I32
	I64
	I128
	Isize
	U8
	U16
	U32
	U64
	U128
	Usize
	F32
	F64

	numLitNums
)

var litNumNames = [numLitNums]string{
	I:     "I",
	F:     "F",
	I8:    "I8",
	I16:   "I16",
	I32:   "I32",
	I64:   "I64",
	I128:  "I128",
	Isize: "Isize",
	U8:    "U8",
	U16:   "U16",
	U32:   "U32",
	U64:   "U64",
	U128:  "U128",
	Usize: "Usize",
	F32:   "F32",
	F64:   "F64",
}

func (l LitNum) String() string {
	if l < numLitNums {
		return litNumNames[l]
	}
	return fmt.Sprintf("LitNum(%d)", l)
}

// IsInteger reports whether the tag is an integer (including the unconstrained I).
func (l LitNum) IsInteger() bool {
	switch l {
	case I, I8, I16, I32, I64, I128, Isize, U8, U16, U32, U64, U128, Usize:
		return true
	default:
		return false
	}
}

// IsFloat reports whether the tag is a float (including the unconstrained F).
func (l LitNum) IsFloat() bool {
	return l == F || l == F32 || l == F64
}

// IsSigned reports whether the integer tag is signed.
func (l LitNum) IsSigned() bool {
	switch l {
	case I, I8, I16, I32, I64, I128, Isize:
		return true
	default:
		return false
	}
}

// Unconstrained reports whether the tag still participates in unification.
func (l LitNum) Unconstrained() bool {
	return l == I || l == F
}

// Adopts reports whether an unconstrained l can be narrowed to the concrete other.
func (l LitNum) Adopts(other LitNum) bool {
	if other.Unconstrained() {
		return false
	}
	switch l {
	case I:
		return other.IsInteger()
	case F:
		return other.IsFloat()
	default:
		return false
	}
}

var litSuffixes = map[string]LitNum{
	"i8":    I8,
	"i16":   I16,
	"i32":   I32,
	"i64":   I64,
	"i128":  I128,
	"isize": Isize,
	"u8":    U8,
	"u16":   U16,
	"u32":   U32,
	"u64":   U64,
	"u128":  U128,
	"usize": Usize,
	"f32":   F32,
	"f64":   F64,
}

// LookupLitNum maps a primitive type name or literal suffix (`i32`, `f64`, ...) to its tag.
func LookupLitNum(name string) (LitNum, bool) {
	l, ok := litSuffixes[name]
	return l, ok
}
