package ir

import "fmt"

// Place is a named storage location: a local, a temporary or a global label.
type Place struct {
	Label string
	Type  IRType
}

// Local builds a place for label.
func Local(label string, t IRType) Place {
	return Place{Label: label, Type: t}
}

// OperandKind distinguishes operand forms.
type OperandKind uint8

const (
	OperandUnit OperandKind = iota
	OperandInt
	OperandFloat
	OperandPlace
)

// Operand is an instruction input: an immediate or a place.
type Operand struct {
	Kind  OperandKind
	Type  IRType
	Int   int64
	Float float64
	Place Place
}

// UnitOperand is the value of `()`.
func UnitOperand() Operand {
	return Operand{Kind: OperandUnit, Type: Unit}
}

// Imm builds an integer immediate, truncated to the width of t.
func Imm(t IRType, v int64) Operand {
	return Operand{Kind: OperandInt, Type: t, Int: truncate(t, v)}
}

// FloatImm builds a float immediate.
func FloatImm(t IRType, v float64) Operand {
	return Operand{Kind: OperandFloat, Type: t, Float: v}
}

// PlaceOperand reads p.
func PlaceOperand(p Place) Operand {
	return Operand{Kind: OperandPlace, Type: p.Type, Place: p}
}

// IsImm reports whether o is known before run time.
func (o Operand) IsImm() bool {
	return o.Kind == OperandInt || o.Kind == OperandFloat || o.Kind == OperandUnit
}

func (o Operand) String() string {
	switch o.Kind {
	case OperandInt:
		return fmt.Sprintf("%s(%d)", o.Type, o.Int)
	case OperandFloat:
		return fmt.Sprintf("%s(%g)", o.Type, o.Float)
	case OperandPlace:
		return o.Place.Label
	default:
		return "Unit"
	}
}

// truncate wraps v to the integer width of t, sign- or zero-extending back.
func truncate(t IRType, v int64) int64 {
	bits := t.Bits()
	if bits == 0 || bits == 64 {
		return v
	}
	shift := 64 - bits
	if t.IsSigned() {
		return v << shift >> shift
	}
	return int64(uint64(v) << shift >> shift)
}

// Op is a binary machine operation.
type Op uint8

const (
	OpAdd Op = iota
	OpSub
	OpMul
	OpDiv
	OpRem
	OpAnd
	OpOr
	OpXor
	OpShl
	OpShr
	OpEq
	OpNe
	OpLt
	OpLe
	OpGt
	OpGe
)

var opNames = [...]string{
	OpAdd: "+",
	OpSub: "-",
	OpMul: "*",
	OpDiv: "/",
	OpRem: "%",
	OpAnd: "&",
	OpOr:  "|",
	OpXor: "^",
	OpShl: "<<",
	OpShr: ">>",
	OpEq:  "==",
	OpNe:  "!=",
	OpLt:  "<",
	OpLe:  "<=",
	OpGt:  ">",
	OpGe:  ">=",
}

func (op Op) String() string {
	if int(op) < len(opNames) {
		return opNames[op]
	}
	return fmt.Sprintf("Op(%d)", op)
}

func (op Op) IsComparison() bool {
	return op >= OpEq && op <= OpGe
}

// Negate returns the comparison that holds exactly when op does not.
func (op Op) Negate() Op {
	switch op {
	case OpEq:
		return OpNe
	case OpNe:
		return OpEq
	case OpLt:
		return OpGe
	case OpLe:
		return OpGt
	case OpGt:
		return OpLe
	case OpGe:
		return OpLt
	default:
		return op
	}
}

// InstKind enumerates instruction kinds.
type InstKind uint8

const (
	InstBinOp InstKind = iota
	InstLoadData
	InstLoadAddr
	InstCall
	InstRet
	InstJump
	InstJumpIf
	InstJumpIfNot
	InstJumpIfCond
)

var instKindNames = [...]string{
	InstBinOp:      "BinOp",
	InstLoadData:   "LoadData",
	InstLoadAddr:   "LoadAddr",
	InstCall:       "Call",
	InstRet:        "Ret",
	InstJump:       "Jump",
	InstJumpIf:     "JumpIf",
	InstJumpIfNot:  "JumpIfNot",
	InstJumpIfCond: "JumpIfCond",
}

func (k InstKind) String() string {
	if int(k) < len(instKindNames) {
		return instKindNames[k]
	}
	return fmt.Sprintf("InstKind(%d)", k)
}

// Inst is one three-address instruction. Which fields are meaningful
// depends on Kind:
//
//	BinOp       Dest = Lhs Op Rhs
//	LoadData    Dest = Src
//	LoadAddr    Dest = &Sym
//	Call        [Dest =] Sym(Args...), HasDest marks the optional destination
//	Ret         return Src
//	Jump        goto Label
//	JumpIf      if Src goto Label
//	JumpIfNot   if !Src goto Label
//	JumpIfCond  if Lhs Op Rhs goto Label
//
// Label is an instruction index in a linear function and a block id once the
// function is split into a CFG.
type Inst struct {
	Kind    InstKind
	Op      Op
	Dest    Place
	HasDest bool
	Lhs     Operand
	Rhs     Operand
	Src     Operand
	Sym     string
	Args    []Operand
	Label   uint32
}

func NewBinOp(op Op, dest Place, lhs, rhs Operand) Inst {
	return Inst{Kind: InstBinOp, Op: op, Dest: dest, HasDest: true, Lhs: lhs, Rhs: rhs}
}

func NewLoadData(dest Place, src Operand) Inst {
	return Inst{Kind: InstLoadData, Dest: dest, HasDest: true, Src: src}
}

func NewLoadAddr(dest Place, sym string) Inst {
	return Inst{Kind: InstLoadAddr, Dest: dest, HasDest: true, Sym: sym}
}

// NewCall calls fn; dest is nil when the result is discarded.
func NewCall(fn string, args []Operand, dest *Place) Inst {
	inst := Inst{Kind: InstCall, Sym: fn, Args: args}
	if dest != nil {
		inst.Dest = *dest
		inst.HasDest = true
	}
	return inst
}

func NewRet(v Operand) Inst {
	return Inst{Kind: InstRet, Src: v}
}

func NewJump(label uint32) Inst {
	return Inst{Kind: InstJump, Label: label}
}

func NewJumpIf(cond Operand, label uint32) Inst {
	return Inst{Kind: InstJumpIf, Src: cond, Label: label}
}

func NewJumpIfNot(cond Operand, label uint32) Inst {
	return Inst{Kind: InstJumpIfNot, Src: cond, Label: label}
}

func NewJumpIfCond(lhs Operand, op Op, rhs Operand, label uint32) Inst {
	return Inst{Kind: InstJumpIfCond, Op: op, Lhs: lhs, Rhs: rhs, Label: label}
}

// IsJump reports whether inst transfers control to Label.
func (inst *Inst) IsJump() bool {
	switch inst.Kind {
	case InstJump, InstJumpIf, InstJumpIfNot, InstJumpIfCond:
		return true
	default:
		return false
	}
}

// IsConditional reports whether inst may fall through to the next instruction.
func (inst *Inst) IsConditional() bool {
	return inst.IsJump() && inst.Kind != InstJump
}

// Writes returns the place inst assigns, if any.
func (inst *Inst) Writes() (Place, bool) {
	switch inst.Kind {
	case InstBinOp, InstLoadData, InstLoadAddr:
		return inst.Dest, true
	case InstCall:
		return inst.Dest, inst.HasDest
	default:
		return Place{}, false
	}
}

// Reads appends the operands inst reads to buf.
func (inst *Inst) Reads(buf []Operand) []Operand {
	switch inst.Kind {
	case InstBinOp, InstJumpIfCond:
		return append(buf, inst.Lhs, inst.Rhs)
	case InstLoadData, InstRet, InstJumpIf, InstJumpIfNot:
		return append(buf, inst.Src)
	case InstCall:
		return append(buf, inst.Args...)
	default:
		return buf
	}
}
