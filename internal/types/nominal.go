package types

import (
	"fmt"

	"fortio.org/safecast"
)

// StructInfo names a struct definition. Decl is the index of the defining
// item in the file's struct table; the AST outlives every TypeID pointing at it.
type StructInfo struct {
	Name string
	Decl uint32
}

// EnumInfo names an enum definition. The resolver only records the shell.
type EnumInfo struct {
	Name     string
	Decl     uint32
	Variants []string
}

// Struct interns the nominal type for a struct declaration.
func (in *Interner) Struct(vis Visibility, info StructInfo) TypeID {
	slot, ok := in.structIndex[info.Decl]
	if !ok {
		in.structs = append(in.structs, info)
		v, err := safecast.Conv[uint32](len(in.structs) - 1)
		if err != nil {
			panic(fmt.Errorf("struct slot overflow: %w", err))
		}
		slot = v
		in.structIndex[info.Decl] = slot
	}
	return in.Intern(Type{Kind: KindStruct, Vis: vis, Payload: slot})
}

// StructInfo returns the declaration info of a struct type.
func (in *Interner) StructInfo(id TypeID) (StructInfo, bool) {
	tt, ok := in.Lookup(id)
	if !ok || tt.Kind != KindStruct || int(tt.Payload) >= len(in.structs) {
		return StructInfo{}, false
	}
	return in.structs[tt.Payload], true
}

// Enum interns the type for an enum declaration.
func (in *Interner) Enum(info EnumInfo) TypeID {
	slot, ok := in.enumIndex[info.Decl]
	if !ok {
		info.Variants = append([]string(nil), info.Variants...)
		in.enums = append(in.enums, info)
		v, err := safecast.Conv[uint32](len(in.enums) - 1)
		if err != nil {
			panic(fmt.Errorf("enum slot overflow: %w", err))
		}
		slot = v
		in.enumIndex[info.Decl] = slot
	}
	return in.Intern(Type{Kind: KindEnum, Payload: slot})
}

// EnumInfo returns the declaration info of an enum type.
func (in *Interner) EnumInfo(id TypeID) (EnumInfo, bool) {
	tt, ok := in.Lookup(id)
	if !ok || tt.Kind != KindEnum || int(tt.Payload) >= len(in.enums) {
		return EnumInfo{}, false
	}
	return in.enums[tt.Payload], true
}
