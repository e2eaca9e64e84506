package types

import "fmt"

// TypeID uniquely identifies a type inside the interner.
type TypeID uint32

// Unknown is the placeholder type carried by nodes that are not resolved yet.
// It must never reach the IR.
const Unknown TypeID = 0

// Kind enumerates the forms of TypeInfo.
type Kind uint8

const (
	KindUnknown Kind = iota
	KindFn
	KindFnPtr
	KindStruct
	KindEnum
	KindPtr
	KindNever
	KindStr
	KindUnit
	KindBool
	KindChar
	KindLitNum
)

func (k Kind) String() string {
	switch k {
	case KindUnknown:
		return "Unknown"
	case KindFn:
		return "Fn"
	case KindFnPtr:
		return "FnPtr"
	case KindStruct:
		return "Struct"
	case KindEnum:
		return "Enum"
	case KindPtr:
		return "Ptr"
	case KindNever:
		return "Never"
	case KindStr:
		return "Str"
	case KindUnit:
		return "Unit"
	case KindBool:
		return "Bool"
	case KindChar:
		return "Char"
	case KindLitNum:
		return "LitNum"
	default:
		return fmt.Sprintf("Kind(%d)", k)
	}
}

// PtrKind captures the aliasing discipline of a pointer-like type.
type PtrKind uint8

const (
	PtrRef PtrKind = iota
	PtrMutRef
	PtrRawConst
	PtrRawMut
)

func (k PtrKind) String() string {
	switch k {
	case PtrRef:
		return "Ref"
	case PtrMutRef:
		return "MutRef"
	case PtrRawConst:
		return "RawConst"
	case PtrRawMut:
		return "RawMut"
	default:
		return fmt.Sprintf("PtrKind(%d)", k)
	}
}

// Visibility of a named item.
type Visibility uint8

const (
	Priv Visibility = iota
	Pub
)

func (v Visibility) String() string {
	if v == Pub {
		return "Pub"
	}
	return "Priv"
}

// Type is a compact descriptor for any TypeInfo form.
type Type struct {
	Kind    Kind
	Elem    TypeID // pointee for KindPtr
	Ptr     PtrKind
	Lit     LitNum
	Vis     Visibility // KindFn, KindStruct
	Payload uint32     // signature slot for Fn/FnPtr, struct or enum slot otherwise
}

// MakePtr describes a pointer of the given kind.
func MakePtr(kind PtrKind, elem TypeID) Type {
	return Type{Kind: KindPtr, Ptr: kind, Elem: elem}
}

// MakeLitNum describes a numeric primitive.
func MakeLitNum(lit LitNum) Type {
	return Type{Kind: KindLitNum, Lit: lit}
}
