package ast

import (
	"rcc/internal/source"
	"rcc/internal/types"
)

type ItemKind uint8

const (
	ItemFn ItemKind = iota
	ItemStruct
	ItemEnum
	ItemConst
	ItemStatic
)

type Item struct {
	Kind    ItemKind
	Span    source.Span
	Payload PayloadID
}

type FnParam struct {
	Name string
	Mut  bool
	Ty   TypeExprID
	Span source.Span
}

type FnItem struct {
	Name   string
	Pub    bool
	Params []FnParam
	Ret    TypeExprID // NoTypeExprID means `()`
	Body   BlockID
	// Type is the Fn type assigned during the resolver's pre-pass.
	Type types.TypeID
}

type FieldDecl struct {
	Name string
	Pub  bool
	Ty   TypeExprID
	Span source.Span
}

type StructItem struct {
	Name   string
	Pub    bool
	Fields []FieldDecl
	// Index is the position in File.Structs; struct types refer to it.
	Index uint32
}

type EnumItem struct {
	Name     string
	Pub      bool
	Variants []string
	Index    uint32
}

// ValueItem backs const and static items.
type ValueItem struct {
	Name  string
	Pub   bool
	Mut   bool // static mut
	Ty    TypeExprID
	Value ExprID
}

type Items struct {
	Arena   *Arena[Item]
	Fns     *Arena[FnItem]
	Structs *Arena[StructItem]
	Enums   *Arena[EnumItem]
	Values  *Arena[ValueItem]
}

func NewItems(capHint uint) *Items {
	if capHint == 0 {
		capHint = 1 << 4
	}
	return &Items{
		Arena:   NewArena[Item](capHint),
		Fns:     NewArena[FnItem](capHint),
		Structs: NewArena[StructItem](capHint),
		Enums:   NewArena[EnumItem](capHint),
		Values:  NewArena[ValueItem](capHint),
	}
}

func (i *Items) Get(id ItemID) *Item {
	return i.Arena.Get(uint32(id))
}

func (i *Items) new(kind ItemKind, span source.Span, payload uint32) ItemID {
	return ItemID(i.Arena.Allocate(Item{Kind: kind, Span: span, Payload: PayloadID(payload)}))
}

func (i *Items) NewFn(span source.Span, fn FnItem) ItemID {
	return i.new(ItemFn, span, i.Fns.Allocate(fn))
}

func (i *Items) Fn(id ItemID) (*FnItem, bool) {
	it := i.Get(id)
	if it == nil || it.Kind != ItemFn {
		return nil, false
	}
	return i.Fns.Get(uint32(it.Payload)), true
}

func (i *Items) NewStruct(span source.Span, st StructItem) ItemID {
	return i.new(ItemStruct, span, i.Structs.Allocate(st))
}

func (i *Items) Struct(id ItemID) (*StructItem, bool) {
	it := i.Get(id)
	if it == nil || it.Kind != ItemStruct {
		return nil, false
	}
	return i.Structs.Get(uint32(it.Payload)), true
}

func (i *Items) NewEnum(span source.Span, en EnumItem) ItemID {
	return i.new(ItemEnum, span, i.Enums.Allocate(en))
}

func (i *Items) Enum(id ItemID) (*EnumItem, bool) {
	it := i.Get(id)
	if it == nil || it.Kind != ItemEnum {
		return nil, false
	}
	return i.Enums.Get(uint32(it.Payload)), true
}

func (i *Items) NewConst(span source.Span, v ValueItem) ItemID {
	return i.new(ItemConst, span, i.Values.Allocate(v))
}

func (i *Items) NewStatic(span source.Span, v ValueItem) ItemID {
	return i.new(ItemStatic, span, i.Values.Allocate(v))
}

// Value returns the payload of a const or static item.
func (i *Items) Value(id ItemID) (*ValueItem, bool) {
	it := i.Get(id)
	if it == nil || (it.Kind != ItemConst && it.Kind != ItemStatic) {
		return nil, false
	}
	return i.Values.Get(uint32(it.Payload)), true
}
