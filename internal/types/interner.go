package types

import (
	"fmt"

	"fortio.org/safecast"
)

// Builtins stores TypeIDs for the primitive forms.
type Builtins struct {
	Unknown TypeID
	Never   TypeID
	Str     TypeID
	Unit    TypeID
	Bool    TypeID
	Char    TypeID
	RefStr  TypeID // &str, the type of a string literal
}

// Interner provides stable TypeIDs by hashing structural descriptors, so
// TypeID equality is structural equality.
type Interner struct {
	types    []Type
	index    map[Type]TypeID
	builtins Builtins
	lits     [numLitNums]TypeID

	fns     []FnSig
	fnIndex map[string]uint32

	structs     []StructInfo
	structIndex map[uint32]uint32

	enums     []EnumInfo
	enumIndex map[uint32]uint32
}

// NewInterner constructs an interner seeded with built-in primitives.
func NewInterner() *Interner {
	in := &Interner{
		index:       make(map[Type]TypeID, 64),
		fnIndex:     make(map[string]uint32),
		structIndex: make(map[uint32]uint32),
		enumIndex:   make(map[uint32]uint32),
	}
	in.builtins.Unknown = in.internRaw(Type{Kind: KindUnknown})
	in.builtins.Never = in.Intern(Type{Kind: KindNever})
	in.builtins.Str = in.Intern(Type{Kind: KindStr})
	in.builtins.Unit = in.Intern(Type{Kind: KindUnit})
	in.builtins.Bool = in.Intern(Type{Kind: KindBool})
	in.builtins.Char = in.Intern(Type{Kind: KindChar})
	in.builtins.RefStr = in.Intern(MakePtr(PtrRef, in.builtins.Str))
	for l := LitNum(0); l < numLitNums; l++ {
		in.lits[l] = in.Intern(MakeLitNum(l))
	}
	return in
}

// Builtins returns TypeIDs for primitive types.
func (in *Interner) Builtins() Builtins {
	return in.builtins
}

// Intern ensures the provided descriptor has a stable TypeID.
func (in *Interner) Intern(t Type) TypeID {
	if t.Kind == KindUnknown {
		return Unknown
	}
	if id, ok := in.index[t]; ok {
		return id
	}
	return in.internRaw(t)
}

func (in *Interner) internRaw(t Type) TypeID {
	lenTypes, err := safecast.Conv[uint32](len(in.types))
	if err != nil {
		panic(fmt.Errorf("len(types) overflow: %w", err))
	}
	id := TypeID(lenTypes)
	in.types = append(in.types, t)
	in.index[t] = id
	return id
}

// Lookup returns the descriptor for a TypeID.
func (in *Interner) Lookup(id TypeID) (Type, bool) {
	if int(id) >= len(in.types) {
		return Type{}, false
	}
	return in.types[id], true
}

// MustLookup panics when id is invalid.
func (in *Interner) MustLookup(id TypeID) Type {
	tt, ok := in.Lookup(id)
	if !ok {
		panic("types: invalid TypeID")
	}
	return tt
}

// LitNum returns the TypeID of the numeric primitive.
func (in *Interner) LitNum(l LitNum) TypeID {
	if l >= numLitNums {
		panic(fmt.Sprintf("types: invalid lit num tag %d", l))
	}
	return in.lits[l]
}

// Ptr interns a pointer type.
func (in *Interner) Ptr(kind PtrKind, elem TypeID) TypeID {
	return in.Intern(MakePtr(kind, elem))
}

// Kind returns the kind of id, KindUnknown for invalid ids.
func (in *Interner) Kind(id TypeID) Kind {
	tt, ok := in.Lookup(id)
	if !ok {
		return KindUnknown
	}
	return tt.Kind
}

// Lit returns the numeric tag of id when it is a LitNum.
func (in *Interner) Lit(id TypeID) (LitNum, bool) {
	tt, ok := in.Lookup(id)
	if !ok || tt.Kind != KindLitNum {
		return 0, false
	}
	return tt.Lit, true
}

// IsInteger reports whether id is an integer LitNum (I included).
func (in *Interner) IsInteger(id TypeID) bool {
	l, ok := in.Lit(id)
	return ok && l.IsInteger()
}

// IsFloat reports whether id is a float LitNum (F included).
func (in *Interner) IsFloat(id TypeID) bool {
	l, ok := in.Lit(id)
	return ok && l.IsFloat()
}

// IsNumber reports whether id is any LitNum.
func (in *Interner) IsNumber(id TypeID) bool {
	_, ok := in.Lit(id)
	return ok
}

// IsI reports whether id is the unconstrained integer tag.
func (in *Interner) IsI(id TypeID) bool {
	l, ok := in.Lit(id)
	return ok && l == I
}

// IsF reports whether id is the unconstrained float tag.
func (in *Interner) IsF(id TypeID) bool {
	l, ok := in.Lit(id)
	return ok && l == F
}

// IsUnconstrained reports whether id is LitNum(I) or LitNum(F).
func (in *Interner) IsUnconstrained(id TypeID) bool {
	l, ok := in.Lit(id)
	return ok && l.Unconstrained()
}

// IsCallable reports whether id is a named function or a function pointer.
func (in *Interner) IsCallable(id TypeID) bool {
	k := in.Kind(id)
	return k == KindFn || k == KindFnPtr
}

// Elem returns the pointee of a pointer type.
func (in *Interner) Elem(id TypeID) (TypeID, bool) {
	tt, ok := in.Lookup(id)
	if !ok || tt.Kind != KindPtr {
		return Unknown, false
	}
	return tt.Elem, true
}

// Len reports the number of interned types, the Unknown sentinel included.
func (in *Interner) Len() int { return len(in.types) }
