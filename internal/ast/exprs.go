package ast

import (
	"rcc/internal/source"
)

// Exprs manages allocation of expressions and their per-kind payloads.
type Exprs struct {
	Arena        *Arena[Expr]
	Paths        *Arena[ExprPathData]
	Literals     *Arena[ExprLitData]
	Unaries      *Arena[ExprUnaryData]
	Binaries     *Arena[ExprBinaryData]
	Assigns      *Arena[ExprAssignData]
	Calls        *Arena[ExprCallData]
	Groups       *Arena[ExprGroupData]
	Blocks       *Arena[ExprBlockData]
	Whiles       *Arena[ExprWhileData]
	Loops        *Arena[ExprLoopData]
	Ifs          *Arena[ExprIfData]
	Jumps        *Arena[ExprJumpData]
	Lists        *Arena[ExprListData]
	Repeats      *Arena[ExprArrayRepeatData]
	Indices      *Arena[ExprIndexData]
	Fields       *Arena[ExprFieldData]
	TupleIndices *Arena[ExprTupleIndexData]
	Ranges       *Arena[ExprRangeData]
	Structs      *Arena[ExprStructData]
}

// NewExprs creates expression arenas; capHint 0 picks a default.
func NewExprs(capHint uint) *Exprs {
	if capHint == 0 {
		capHint = 1 << 8
	}
	small := capHint/4 + 1
	return &Exprs{
		Arena:        NewArena[Expr](capHint),
		Paths:        NewArena[ExprPathData](capHint),
		Literals:     NewArena[ExprLitData](capHint),
		Unaries:      NewArena[ExprUnaryData](small),
		Binaries:     NewArena[ExprBinaryData](capHint),
		Assigns:      NewArena[ExprAssignData](small),
		Calls:        NewArena[ExprCallData](small),
		Groups:       NewArena[ExprGroupData](small),
		Blocks:       NewArena[ExprBlockData](small),
		Whiles:       NewArena[ExprWhileData](small),
		Loops:        NewArena[ExprLoopData](small),
		Ifs:          NewArena[ExprIfData](small),
		Jumps:        NewArena[ExprJumpData](small),
		Lists:        NewArena[ExprListData](small),
		Repeats:      NewArena[ExprArrayRepeatData](small),
		Indices:      NewArena[ExprIndexData](small),
		Fields:       NewArena[ExprFieldData](small),
		TupleIndices: NewArena[ExprTupleIndexData](small),
		Ranges:       NewArena[ExprRangeData](small),
		Structs:      NewArena[ExprStructData](small),
	}
}

func (e *Exprs) new(kind ExprKind, span source.Span, payload uint32) ExprID {
	return ExprID(e.Arena.Allocate(Expr{
		Kind:    kind,
		Span:    span,
		Payload: PayloadID(payload),
	}))
}

// Get returns the expression with the given ID.
func (e *Exprs) Get(id ExprID) *Expr {
	return e.Arena.Get(uint32(id))
}

func payloadOf[T any](e *Exprs, id ExprID, arena *Arena[T], kinds ...ExprKind) (*T, bool) {
	expr := e.Get(id)
	if expr == nil {
		return nil, false
	}
	for _, k := range kinds {
		if expr.Kind == k {
			return arena.Get(uint32(expr.Payload)), true
		}
	}
	return nil, false
}

func (e *Exprs) NewPath(span source.Span, segments []string) ExprID {
	return e.new(ExprPath, span, e.Paths.Allocate(ExprPathData{Segments: segments}))
}

func (e *Exprs) Path(id ExprID) (*ExprPathData, bool) {
	return payloadOf(e, id, e.Paths, ExprPath)
}

func (e *Exprs) NewLiteral(span source.Span, lit ExprLitData) ExprID {
	return e.new(ExprLit, span, e.Literals.Allocate(lit))
}

func (e *Exprs) Literal(id ExprID) (*ExprLitData, bool) {
	return payloadOf(e, id, e.Literals, ExprLit)
}

func (e *Exprs) NewUnary(span source.Span, op UnaryOp, operand ExprID) ExprID {
	return e.new(ExprUnary, span, e.Unaries.Allocate(ExprUnaryData{Op: op, Operand: operand}))
}

func (e *Exprs) Unary(id ExprID) (*ExprUnaryData, bool) {
	return payloadOf(e, id, e.Unaries, ExprUnary)
}

func (e *Exprs) NewBinary(span source.Span, op BinaryOp, left, right ExprID) ExprID {
	return e.new(ExprBinary, span, e.Binaries.Allocate(ExprBinaryData{Op: op, Left: left, Right: right}))
}

func (e *Exprs) Binary(id ExprID) (*ExprBinaryData, bool) {
	return payloadOf(e, id, e.Binaries, ExprBinary)
}

func (e *Exprs) NewAssign(span source.Span, left, right ExprID) ExprID {
	return e.new(ExprAssign, span, e.Assigns.Allocate(ExprAssignData{Left: left, Right: right}))
}

func (e *Exprs) Assign(id ExprID) (*ExprAssignData, bool) {
	return payloadOf(e, id, e.Assigns, ExprAssign)
}

func (e *Exprs) NewCall(span source.Span, callee ExprID, args []ExprID) ExprID {
	return e.new(ExprCall, span, e.Calls.Allocate(ExprCallData{Callee: callee, Args: args}))
}

func (e *Exprs) Call(id ExprID) (*ExprCallData, bool) {
	return payloadOf(e, id, e.Calls, ExprCall)
}

func (e *Exprs) NewGroup(span source.Span, inner ExprID) ExprID {
	return e.new(ExprGroup, span, e.Groups.Allocate(ExprGroupData{Inner: inner}))
}

func (e *Exprs) Group(id ExprID) (*ExprGroupData, bool) {
	return payloadOf(e, id, e.Groups, ExprGroup)
}

func (e *Exprs) NewBlock(span source.Span, block BlockID) ExprID {
	return e.new(ExprBlock, span, e.Blocks.Allocate(ExprBlockData{Block: block}))
}

func (e *Exprs) Block(id ExprID) (*ExprBlockData, bool) {
	return payloadOf(e, id, e.Blocks, ExprBlock)
}

func (e *Exprs) NewWhile(span source.Span, cond ExprID, body BlockID) ExprID {
	return e.new(ExprWhile, span, e.Whiles.Allocate(ExprWhileData{Cond: cond, Body: body}))
}

func (e *Exprs) While(id ExprID) (*ExprWhileData, bool) {
	return payloadOf(e, id, e.Whiles, ExprWhile)
}

func (e *Exprs) NewLoop(span source.Span, body BlockID) ExprID {
	return e.new(ExprLoop, span, e.Loops.Allocate(ExprLoopData{Body: body}))
}

func (e *Exprs) Loop(id ExprID) (*ExprLoopData, bool) {
	return payloadOf(e, id, e.Loops, ExprLoop)
}

func (e *Exprs) NewIf(span source.Span, cond ExprID, then BlockID, els ExprID) ExprID {
	return e.new(ExprIf, span, e.Ifs.Allocate(ExprIfData{Cond: cond, Then: then, Else: els}))
}

func (e *Exprs) If(id ExprID) (*ExprIfData, bool) {
	return payloadOf(e, id, e.Ifs, ExprIf)
}

func (e *Exprs) NewBreak(span source.Span, value ExprID) ExprID {
	return e.new(ExprBreak, span, e.Jumps.Allocate(ExprJumpData{Value: value}))
}

func (e *Exprs) NewReturn(span source.Span, value ExprID) ExprID {
	return e.new(ExprReturn, span, e.Jumps.Allocate(ExprJumpData{Value: value}))
}

func (e *Exprs) NewContinue(span source.Span) ExprID {
	return e.new(ExprContinue, span, 0)
}

// Jump returns the payload of a break or return.
func (e *Exprs) Jump(id ExprID) (*ExprJumpData, bool) {
	return payloadOf(e, id, e.Jumps, ExprBreak, ExprReturn)
}

func (e *Exprs) NewTuple(span source.Span, elems []ExprID) ExprID {
	return e.new(ExprTuple, span, e.Lists.Allocate(ExprListData{Elems: elems}))
}

func (e *Exprs) NewArray(span source.Span, elems []ExprID) ExprID {
	return e.new(ExprArray, span, e.Lists.Allocate(ExprListData{Elems: elems}))
}

// List returns the elements of a tuple or array literal.
func (e *Exprs) List(id ExprID) (*ExprListData, bool) {
	return payloadOf(e, id, e.Lists, ExprTuple, ExprArray)
}

func (e *Exprs) NewArrayRepeat(span source.Span, value, count ExprID) ExprID {
	return e.new(ExprArrayRepeat, span, e.Repeats.Allocate(ExprArrayRepeatData{Value: value, Count: count}))
}

func (e *Exprs) ArrayRepeat(id ExprID) (*ExprArrayRepeatData, bool) {
	return payloadOf(e, id, e.Repeats, ExprArrayRepeat)
}

func (e *Exprs) NewIndex(span source.Span, target, index ExprID) ExprID {
	return e.new(ExprIndex, span, e.Indices.Allocate(ExprIndexData{Target: target, Index: index}))
}

func (e *Exprs) Index(id ExprID) (*ExprIndexData, bool) {
	return payloadOf(e, id, e.Indices, ExprIndex)
}

func (e *Exprs) NewField(span source.Span, target ExprID, name string) ExprID {
	return e.new(ExprField, span, e.Fields.Allocate(ExprFieldData{Target: target, Name: name}))
}

func (e *Exprs) Field(id ExprID) (*ExprFieldData, bool) {
	return payloadOf(e, id, e.Fields, ExprField)
}

func (e *Exprs) NewTupleIndex(span source.Span, target ExprID, index uint32) ExprID {
	return e.new(ExprTupleIndex, span, e.TupleIndices.Allocate(ExprTupleIndexData{Target: target, Index: index}))
}

func (e *Exprs) TupleIndex(id ExprID) (*ExprTupleIndexData, bool) {
	return payloadOf(e, id, e.TupleIndices, ExprTupleIndex)
}

func (e *Exprs) NewRange(span source.Span, start, end ExprID, inclusive bool) ExprID {
	return e.new(ExprRange, span, e.Ranges.Allocate(ExprRangeData{Start: start, End: end, Inclusive: inclusive}))
}

func (e *Exprs) Range(id ExprID) (*ExprRangeData, bool) {
	return payloadOf(e, id, e.Ranges, ExprRange)
}

func (e *Exprs) NewStruct(span source.Span, path []string, fields []StructFieldInit) ExprID {
	return e.new(ExprStruct, span, e.Structs.Allocate(ExprStructData{Path: path, Fields: fields}))
}

func (e *Exprs) Struct(id ExprID) (*ExprStructData, bool) {
	return payloadOf(e, id, e.Structs, ExprStruct)
}
