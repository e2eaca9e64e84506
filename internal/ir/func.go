package ir

// Param is a function parameter as the callee sees it.
type Param struct {
	Name string
	Type IRType
}

// Func is the linear instruction sequence of one function. Instruction
// indices are 1-based: Insts[0] is instruction 1.
type Func struct {
	Name string
	// ScopeID is the scope of the function body; parameters are named in it.
	ScopeID  uint64
	IsGlobal bool
	Params   []Param
	Insts    []Inst
}

// NextIndex is the index the next appended instruction will get.
func (f *Func) NextIndex() uint32 {
	return uint32(len(f.Insts)) + 1 //nolint:gosec // bounded by emit
}

// LinearIR is the lowered form of a file.
type LinearIR struct {
	Funcs []*Func
	// RoLocalStrs maps string constant labels to their contents.
	RoLocalStrs map[string]string
}
