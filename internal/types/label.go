package types

import (
	"fmt"
	"strings"
)

// Label renders id the way diagnostics print types: `LitNum(I32)`, `Bool`,
// `Ptr(Ref, Str)`, `Fn(fn(LitNum(I32)) -> Unit)`.
func (in *Interner) Label(id TypeID) string {
	tt, ok := in.Lookup(id)
	if !ok {
		return fmt.Sprintf("TypeID(%d)", id)
	}
	switch tt.Kind {
	case KindLitNum:
		return "LitNum(" + tt.Lit.String() + ")"
	case KindPtr:
		return fmt.Sprintf("Ptr(%s, %s)", tt.Ptr, in.Label(tt.Elem))
	case KindFn, KindFnPtr:
		return tt.Kind.String() + "(" + in.sigLabel(id) + ")"
	case KindStruct:
		if info, ok := in.StructInfo(id); ok {
			return "Struct(" + info.Name + ")"
		}
	case KindEnum:
		if info, ok := in.EnumInfo(id); ok {
			return "Enum(" + info.Name + ")"
		}
	}
	return tt.Kind.String()
}

func (in *Interner) sigLabel(id TypeID) string {
	sig, ok := in.Signature(id)
	if !ok {
		return "fn(?)"
	}
	params := make([]string, 0, len(sig.Params))
	for _, p := range sig.Params {
		params = append(params, in.Label(p))
	}
	return "fn(" + strings.Join(params, ", ") + ") -> " + in.Label(sig.Ret)
}
