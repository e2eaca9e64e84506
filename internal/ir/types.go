package ir

import "fmt"

// IRType is the width and signedness a machine operation works on.
type IRType uint8

const (
	Unit IRType = iota
	I8
	I16
	I32
	I64
	U8
	U16
	U32
	U64
	F32
	F64
	// Addr is a pointer-sized unsigned value.
	Addr
)

var irTypeNames = [...]string{
	Unit: "Unit",
	I8:   "I8",
	I16:  "I16",
	I32:  "I32",
	I64:  "I64",
	U8:   "U8",
	U16:  "U16",
	U32:  "U32",
	U64:  "U64",
	F32:  "F32",
	F64:  "F64",
	Addr: "Addr",
}

func (t IRType) String() string {
	if int(t) < len(irTypeNames) {
		return irTypeNames[t]
	}
	return fmt.Sprintf("IRType(%d)", t)
}

// Size returns the byte size of t; addrSize is the pointer width of the target.
func (t IRType) Size(addrSize uint32) uint32 {
	switch t {
	case I8, U8:
		return 1
	case I16, U16:
		return 2
	case I32, U32, F32:
		return 4
	case I64, U64, F64:
		return 8
	case Addr:
		return addrSize
	default:
		return 0
	}
}

func (t IRType) IsSigned() bool {
	switch t {
	case I8, I16, I32, I64:
		return true
	default:
		return false
	}
}

func (t IRType) IsFloat() bool {
	return t == F32 || t == F64
}

// Bits returns the integer width of t in bits, 0 for non-integers.
func (t IRType) Bits() uint {
	switch t {
	case I8, U8:
		return 8
	case I16, U16:
		return 16
	case I32, U32:
		return 32
	case I64, U64:
		return 64
	default:
		return 0
	}
}

// OptimizeLevel selects how much work lowering and allocation do.
type OptimizeLevel uint8

const (
	// OptZero emits every operation as written.
	OptZero OptimizeLevel = iota
	// OptOne folds operations over immediates.
	OptOne
)

func (l OptimizeLevel) String() string {
	switch l {
	case OptZero:
		return "Zero"
	case OptOne:
		return "One"
	default:
		return fmt.Sprintf("OptimizeLevel(%d)", l)
	}
}

// ParseOptimizeLevel accepts "0", "1", "zero" and "one".
func ParseOptimizeLevel(s string) (OptimizeLevel, error) {
	switch s {
	case "0", "zero", "Zero":
		return OptZero, nil
	case "1", "one", "One":
		return OptOne, nil
	default:
		return OptZero, fmt.Errorf("invalid optimize level: %q (expected: 0|1)", s)
	}
}
