package types

import (
	"fmt"
	"strconv"
	"strings"

	"fortio.org/safecast"
)

// FnSig is the resolved signature of a function or function pointer.
type FnSig struct {
	Params []TypeID
	Ret    TypeID
}

func (sig FnSig) key() string {
	var b strings.Builder
	for _, p := range sig.Params {
		b.WriteString(strconv.FormatUint(uint64(p), 10))
		b.WriteByte(',')
	}
	b.WriteString("->")
	b.WriteString(strconv.FormatUint(uint64(sig.Ret), 10))
	return b.String()
}

func (in *Interner) sigSlot(sig FnSig) uint32 {
	key := sig.key()
	if slot, ok := in.fnIndex[key]; ok {
		return slot
	}
	in.fns = append(in.fns, FnSig{
		Params: append([]TypeID(nil), sig.Params...),
		Ret:    sig.Ret,
	})
	slot, err := safecast.Conv[uint32](len(in.fns) - 1)
	if err != nil {
		panic(fmt.Errorf("fn signature overflow: %w", err))
	}
	in.fnIndex[key] = slot
	return slot
}

// Fn interns the type of a named function.
func (in *Interner) Fn(vis Visibility, sig FnSig) TypeID {
	return in.Intern(Type{Kind: KindFn, Vis: vis, Payload: in.sigSlot(sig)})
}

// FnPtr interns a first-class function pointer type.
func (in *Interner) FnPtr(sig FnSig) TypeID {
	return in.Intern(Type{Kind: KindFnPtr, Payload: in.sigSlot(sig)})
}

// Signature returns the signature behind a Fn or FnPtr type.
func (in *Interner) Signature(id TypeID) (FnSig, bool) {
	tt, ok := in.Lookup(id)
	if !ok || (tt.Kind != KindFn && tt.Kind != KindFnPtr) {
		return FnSig{}, false
	}
	if int(tt.Payload) >= len(in.fns) {
		return FnSig{}, false
	}
	return in.fns[tt.Payload], true
}
