package ir

import (
	"fmt"
	"io"
	"slices"
	"strconv"
	"strings"
)

// Dump writes a human-readable listing of every function in lir.
func Dump(w io.Writer, lir *LinearIR) error {
	if w == nil || lir == nil {
		return nil
	}
	for i, f := range lir.Funcs {
		if i > 0 {
			if _, err := io.WriteString(w, "\n"); err != nil {
				return err
			}
		}
		if err := DumpFunc(w, f); err != nil {
			return err
		}
	}
	return dumpStrings(w, lir.RoLocalStrs)
}

// DumpFunc writes one function with 1-based instruction indices.
func DumpFunc(w io.Writer, f *Func) error {
	var sb strings.Builder
	sb.WriteString(FuncHeader(f.Name, f.ScopeID, f.IsGlobal, f.Params))
	for i := range f.Insts {
		fmt.Fprintf(&sb, "  %3d: %s\n", i+1, FormatInst(&f.Insts[i], indexTarget))
	}
	_, err := io.WriteString(w, sb.String())
	return err
}

// FuncHeader renders `fn name(params) scope=s [global]`.
func FuncHeader(name string, scope uint64, global bool, params []Param) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "fn %s(", name)
	for i, p := range params {
		if i > 0 {
			sb.WriteString(", ")
		}
		fmt.Fprintf(&sb, "%s: %s", LocalVar(p.Name, scope), p.Type)
	}
	fmt.Fprintf(&sb, ") scope=%d", scope)
	if global {
		sb.WriteString(" global")
	}
	sb.WriteString(":\n")
	return sb.String()
}

func indexTarget(label uint32) string {
	return "(" + strconv.FormatUint(uint64(label), 10) + ")"
}

// FormatInst renders inst; target renders jump labels.
func FormatInst(inst *Inst, target func(uint32) string) string {
	switch inst.Kind {
	case InstBinOp:
		return fmt.Sprintf("%s: %s = %s %s %s", inst.Dest.Label, inst.Dest.Type, inst.Lhs, inst.Op, inst.Rhs)
	case InstLoadData:
		return fmt.Sprintf("%s: %s = %s", inst.Dest.Label, inst.Dest.Type, inst.Src)
	case InstLoadAddr:
		return fmt.Sprintf("%s: %s = &%s", inst.Dest.Label, inst.Dest.Type, inst.Sym)
	case InstCall:
		args := make([]string, len(inst.Args))
		for i, a := range inst.Args {
			args[i] = a.String()
		}
		call := fmt.Sprintf("call %s(%s)", inst.Sym, strings.Join(args, ", "))
		if inst.HasDest {
			return fmt.Sprintf("%s: %s = %s", inst.Dest.Label, inst.Dest.Type, call)
		}
		return call
	case InstRet:
		return "ret " + inst.Src.String()
	case InstJump:
		return "goto " + target(inst.Label)
	case InstJumpIf:
		return fmt.Sprintf("if %s goto %s", inst.Src, target(inst.Label))
	case InstJumpIfNot:
		return fmt.Sprintf("if !%s goto %s", inst.Src, target(inst.Label))
	case InstJumpIfCond:
		return fmt.Sprintf("if %s %s %s goto %s", inst.Lhs, inst.Op, inst.Rhs, target(inst.Label))
	default:
		return inst.Kind.String()
	}
}

func dumpStrings(w io.Writer, strs map[string]string) error {
	if len(strs) == 0 {
		return nil
	}
	labels := make([]string, 0, len(strs))
	for label := range strs {
		labels = append(labels, label)
	}
	slices.Sort(labels)
	var sb strings.Builder
	sb.WriteString("\nro strings:\n")
	for _, label := range labels {
		fmt.Fprintf(&sb, "  %s = %q\n", label, strs[label])
	}
	_, err := io.WriteString(w, sb.String())
	return err
}
