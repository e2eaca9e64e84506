package diag

// Phase names the compile phase that produced an error.
type Phase uint8

const (
	PhaseUnknown Phase = iota
	PhaseLex
	PhaseParse
	PhaseResolve
	PhaseLower
	PhaseCFG
	PhaseCodegen
)

func (p Phase) String() string {
	switch p {
	case PhaseLex:
		return "lex"
	case PhaseParse:
		return "parse"
	case PhaseResolve:
		return "resolve"
	case PhaseLower:
		return "lower"
	case PhaseCFG:
		return "cfg"
	case PhaseCodegen:
		return "codegen"
	default:
		return "unknown"
	}
}
