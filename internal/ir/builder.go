package ir

import (
	"context"
	"fmt"
	"time"

	"fortio.org/safecast"

	"rcc/internal/ast"
	"rcc/internal/diag"
	"rcc/internal/sema"
	"rcc/internal/source"
	"rcc/internal/symbols"
	"rcc/internal/trace"
	"rcc/internal/types"
)

// Options configure lowering.
type Options struct {
	Level OptimizeLevel
}

// Build lowers every function of a resolved file into linear IR. File-level
// functions come first in source order, nested functions follow in the order
// their enclosing bodies are lowered.
func Build(ctx context.Context, file *ast.File, res *sema.Result, opts Options) (*LinearIR, error) {
	b := &builder{
		file:     file,
		res:      res,
		types:    res.TypeInterner,
		opts:     opts,
		tracer:   trace.FromContext(ctx),
		out:      &LinearIR{RoLocalStrs: make(map[string]string)},
		inlining: make(map[*symbols.VarInfo]bool),
	}
	for _, id := range file.TopLevel {
		if file.Items.Get(id).Kind == ast.ItemFn {
			b.pending = append(b.pending, pendingFn{item: id, scope: ast.FileScopeID})
		}
	}
	for len(b.pending) > 0 {
		next := b.pending[0]
		b.pending = b.pending[1:]
		f, err := b.lowerFn(next)
		if err != nil {
			return nil, err
		}
		b.out.Funcs = append(b.out.Funcs, f)
	}
	return b.out, nil
}

type builder struct {
	file   *ast.File
	res    *sema.Result
	types  *types.Interner
	opts   Options
	tracer trace.Tracer
	out    *LinearIR

	pending []pendingFn
	// inlining guards const initializers against self reference.
	inlining map[*symbols.VarInfo]bool
}

// pendingFn is a function item waiting to be lowered, with the scope that
// defines it.
type pendingFn struct {
	item  ast.ItemID
	scope ast.ScopeID
}

// fnBuilder carries the state of the function being lowered.
type fnBuilder struct {
	*builder
	fn     *Func
	temps  uint64
	scopes []ast.ScopeID
	loops  []*loopFrame
}

type loopFrame struct {
	start uint32
	// exits are the positions of jumps to patch with the loop exit.
	exits   []int
	dest    Place
	hasDest bool
}

func (b *builder) lowerFn(p pendingFn) (*Func, error) {
	item, _ := b.file.Items.Fn(p.item)
	body := b.file.Blocks.Get(item.Body)
	sig, ok := b.types.Signature(item.Type)
	if !ok {
		return nil, b.errorf(b.file.Items.Get(p.item).Span, "function `%s` was not resolved", item.Name)
	}
	f := &Func{
		Name:     b.fnLabel(item.Name, p.scope),
		ScopeID:  uint64(body.Scope),
		IsGlobal: p.scope == ast.FileScopeID,
		Params:   make([]Param, 0, len(item.Params)),
	}
	for i, param := range item.Params {
		t, err := b.irType(sig.Params[i], param.Span)
		if err != nil {
			return nil, err
		}
		f.Params = append(f.Params, Param{Name: param.Name, Type: t})
	}

	fb := &fnBuilder{builder: b, fn: f}
	value, err := fb.lowerBlock(item.Body)
	if err != nil {
		return nil, err
	}
	if fb.needsFinalRet() {
		fb.emit(NewRet(value))
	}
	b.emitPoint("lower fn", f.Name)
	return f, nil
}

// fnLabel is the symbol of a function defined in scope.
func (b *builder) fnLabel(name string, scope ast.ScopeID) string {
	if scope == ast.FileScopeID {
		return name
	}
	return LocalVar(name, uint64(scope))
}

// needsFinalRet reports whether control can reach the end of the body: the
// last instruction falls through, or some jump targets the end.
func (fb *fnBuilder) needsFinalRet() bool {
	n := len(fb.fn.Insts)
	if n == 0 {
		return true
	}
	last := fb.fn.Insts[n-1]
	if last.Kind != InstRet && last.Kind != InstJump {
		return true
	}
	end := fb.fn.NextIndex()
	for i := range fb.fn.Insts {
		if fb.fn.Insts[i].IsJump() && fb.fn.Insts[i].Label == end {
			return true
		}
	}
	return false
}

func (fb *fnBuilder) emit(inst Inst) int {
	fb.fn.Insts = append(fb.fn.Insts, inst)
	return len(fb.fn.Insts) - 1
}

func (fb *fnBuilder) patch(pos int, label uint32) {
	fb.fn.Insts[pos].Label = label
}

// temp allocates a fresh temporary owned by the innermost block.
func (fb *fnBuilder) temp(t IRType) Place {
	scope := uint64(fb.scopes[len(fb.scopes)-1])
	p := Local(TempVar(fb.temps, scope), t)
	fb.temps++
	return p
}

func (b *builder) folding() bool {
	return b.opts.Level >= OptOne
}

func (b *builder) expr(id ast.ExprID) *ast.Expr {
	return b.file.Exprs.Get(id)
}

func (b *builder) errorf(span source.Span, format string, args ...any) error {
	return diag.At(span, fmt.Sprintf(format, args...)).InPhase(diag.PhaseLower)
}

func (b *builder) unimplemented(span source.Span, construct string) error {
	return diag.Unimplemented(span, construct).InPhase(diag.PhaseLower)
}

// irType maps a resolved type to the machine type that holds it.
func (b *builder) irType(id types.TypeID, span source.Span) (IRType, error) {
	tt, ok := b.types.Lookup(id)
	if !ok || tt.Kind == types.KindUnknown {
		return Unit, b.errorf(span, "unresolved type reached lowering")
	}
	switch tt.Kind {
	case types.KindLitNum:
		switch tt.Lit {
		case types.I, types.I32, types.Isize:
			return I32, nil
		case types.I8:
			return I8, nil
		case types.I16:
			return I16, nil
		case types.I64:
			return I64, nil
		case types.U8:
			return U8, nil
		case types.U16:
			return U16, nil
		case types.U32, types.Usize:
			return U32, nil
		case types.U64:
			return U64, nil
		case types.F32:
			return F32, nil
		case types.F, types.F64:
			return F64, nil
		default:
			return Unit, b.unimplemented(span, "128-bit integer")
		}
	case types.KindBool:
		return U8, nil
	case types.KindChar:
		return U32, nil
	case types.KindUnit, types.KindNever:
		return Unit, nil
	case types.KindPtr, types.KindFn, types.KindFnPtr:
		return Addr, nil
	case types.KindStruct, types.KindEnum:
		return Unit, b.unimplemented(span, "struct value")
	default:
		return Unit, b.unimplemented(span, "str value")
	}
}

func (b *builder) emitPoint(name, detail string) {
	if b.tracer == nil || !b.tracer.Enabled() || !b.tracer.Level().ShouldEmit(trace.ScopeNode) {
		return
	}
	b.tracer.Emit(&trace.Event{
		Time:   time.Now(),
		Kind:   trace.KindPoint,
		Scope:  trace.ScopeNode,
		Seq:    trace.NextSeq(),
		Name:   name,
		Detail: detail,
	})
}

// strLabel interns a string literal into the read-only table.
func (b *builder) strLabel(id uint32) (string, error) {
	sid, err := safecast.Conv[source.StringID](id)
	if err != nil {
		return "", err
	}
	label := StrLabel(id)
	if _, ok := b.out.RoLocalStrs[label]; !ok {
		b.out.RoLocalStrs[label] = b.res.StrConstants.MustLookup(sid)
	}
	return label, nil
}
