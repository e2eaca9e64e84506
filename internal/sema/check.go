package sema

import (
	"context"
	"fmt"
	"time"

	"rcc/internal/ast"
	"rcc/internal/diag"
	"rcc/internal/source"
	"rcc/internal/symbols"
	"rcc/internal/trace"
	"rcc/internal/types"
)

// Options configure symbol resolution over a file.
type Options struct {
	// Types is shared with later passes; a fresh interner is made when nil.
	Types *types.Interner
	// Overloads extends the primitive binary operator rules.
	Overloads *OverloadTable
}

// Result stores the artefacts resolution leaves next to the annotated AST.
type Result struct {
	TypeInterner *types.Interner
	Scopes       *symbols.Scopes
	// StrConstants holds every string literal; ExprLitData.StrID indexes it.
	StrConstants *source.Interner
	// Bindings maps each path expression naming a variable to its binding.
	Bindings map[ast.ExprID]*symbols.VarInfo
	// Callees maps each path expression naming a function to its definition.
	Callees map[ast.ExprID]symbols.FnDef
	// LetVars maps let statements to the binding they introduce.
	LetVars map[ast.StmtID]*symbols.VarInfo
	// Params lists the parameter bindings of every function item.
	Params map[ast.ItemID][]*symbols.VarInfo
	// Inits maps let, const and static bindings to their initializer.
	Inits map[*symbols.VarInfo]ast.ExprID
}

// Resolve fills the type and category of every expression in file, binds
// paths to definitions and checks the typing rules. It stops at the first
// error; the AST is left partially annotated in that case.
func Resolve(ctx context.Context, file *ast.File, opts Options) (*Result, error) {
	in := opts.Types
	if in == nil {
		in = types.NewInterner()
	}
	res := &Result{
		TypeInterner: in,
		Scopes:       symbols.NewScopes(file.NumScopes),
		StrConstants: source.NewInterner(),
		Bindings:     make(map[ast.ExprID]*symbols.VarInfo),
		Callees:      make(map[ast.ExprID]symbols.FnDef),
		LetVars:      make(map[ast.StmtID]*symbols.VarInfo),
		Params:       make(map[ast.ItemID][]*symbols.VarInfo),
		Inits:        make(map[*symbols.VarInfo]ast.ExprID),
	}
	overloads := opts.Overloads
	if overloads == nil {
		overloads = NewOverloadTable()
	}
	rs := &resolver{
		file:       file,
		types:      in,
		builtins:   in.Builtins(),
		scopes:     res.Scopes,
		result:     res,
		overloads:  overloads,
		tracer:     trace.FromContext(ctx),
		cur:        ast.FileScopeID,
		loopBreaks: make(map[ast.ExprID][]ast.ExprID),
		sources:    make(map[*symbols.VarInfo][]ast.ExprID),
		initOf:     make(map[ast.ExprID]*symbols.VarInfo),
		uses:       make(map[*symbols.VarInfo][]ast.ExprID),
		parents:    make(map[ast.ExprID]ast.ExprID),
	}
	if err := rs.resolveFile(); err != nil {
		return nil, err
	}
	return res, nil
}

type resolver struct {
	file      *ast.File
	types     *types.Interner
	builtins  types.Builtins
	scopes    *symbols.Scopes
	result    *Result
	overloads *OverloadTable
	tracer    trace.Tracer

	cur   ast.ScopeID
	stack []ast.ScopeID

	loops []loopFrame
	// loopBreaks keeps the valued breaks of every loop so a later narrowing
	// of the loop's type reaches them.
	loopBreaks map[ast.ExprID][]ast.ExprID

	// sources are the expressions a binding took its type from; narrowing
	// the binding narrows them too.
	sources map[*symbols.VarInfo][]ast.ExprID
	initOf  map[ast.ExprID]*symbols.VarInfo
	// uses are the paths reading a binding, and parents link an operand to
	// the expression whose type it determines. Together they carry a late
	// narrowing of a binding back into expressions resolved earlier.
	uses    map[*symbols.VarInfo][]ast.ExprID
	parents map[ast.ExprID]ast.ExprID

	rets []types.TypeID
	// visited collects the expressions of the function being resolved.
	visited []ast.ExprID
}

func (rs *resolver) errorf(span source.Span, format string, args ...any) error {
	return diag.At(span, fmt.Sprintf(format, args...)).InPhase(diag.PhaseResolve)
}

func (rs *resolver) unimplemented(span source.Span, construct string) error {
	return diag.Unimplemented(span, construct).InPhase(diag.PhaseResolve)
}

func (rs *resolver) expr(id ast.ExprID) *ast.Expr {
	return rs.file.Exprs.Get(id)
}

func (rs *resolver) typeOf(id ast.ExprID) types.TypeID {
	if e := rs.expr(id); e != nil {
		return e.Type
	}
	return types.Unknown
}

func (rs *resolver) label(id types.TypeID) string {
	return rs.types.Label(id)
}

func (rs *resolver) emitPoint(name, detail string) {
	if rs.tracer == nil || !rs.tracer.Enabled() || !rs.tracer.Level().ShouldEmit(trace.ScopeNode) {
		return
	}
	rs.tracer.Emit(&trace.Event{
		Time:   time.Now(),
		Kind:   trace.KindPoint,
		Scope:  trace.ScopeNode,
		Seq:    trace.NextSeq(),
		Name:   name,
		Detail: detail,
	})
}
