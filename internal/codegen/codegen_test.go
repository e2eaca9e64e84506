package codegen

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"rcc/internal/cfg"
	"rcc/internal/diag"
	"rcc/internal/ir"
)

func leafCFG(locals map[string]cfg.LocalInfo, leaf bool) *cfg.CFG {
	return &cfg.CFG{
		FuncName:    "f",
		FuncScopeID: 2,
		IsLeaf:      leaf,
		LocalInfos:  locals,
		Blocks:      []cfg.BasicBlock{{ID: 0, Insts: []ir.Inst{ir.NewRet(ir.UnitOperand())}}},
	}
}

func TestParseTarget(t *testing.T) {
	for _, s := range []string{"riscv32", "Riscv32", " RISCV32 "} {
		got, err := ParseTarget(s)
		require.NoError(t, err, s)
		require.Equal(t, Riscv32, got)
	}
	_, err := ParseTarget("x86_64")
	require.ErrorContains(t, err, `invalid target: "x86_64"`)
	require.Equal(t, uint32(4), Riscv32.AddrSize())
	require.Equal(t, "riscv32", Riscv32.String())
}

func TestParseOptimizeLevel(t *testing.T) {
	lvl, err := ParseOptimizeLevel("1")
	require.NoError(t, err)
	require.Equal(t, OptOne, lvl)
	lvl, err = ParseOptimizeLevel("zero")
	require.NoError(t, err)
	require.Equal(t, OptZero, lvl)
	_, err = ParseOptimizeLevel("2")
	require.Error(t, err)
}

func TestNewAllocator(t *testing.T) {
	c := leafCFG(map[string]cfg.LocalInfo{}, true)
	a, err := NewAllocator(OptZero, c, 4)
	require.NoError(t, err)
	require.IsType(t, &SimpleAllocator{}, a)

	_, err = NewAllocator(OptOne, c, 4)
	require.Error(t, err)
	require.True(t, errors.Is(err, diag.ErrUnimplemented))
	de, ok := diag.AsError(err)
	require.True(t, ok)
	require.Equal(t, diag.PhaseCodegen, de.Phase)
}

func TestLeafFrame(t *testing.T) {
	c := leafCFG(map[string]cfg.LocalInfo{
		"a_3":  {Index: 0, Type: ir.I32},
		"b_3":  {Index: 1, Type: ir.I32},
		"$0_3": {Index: 2, Type: ir.I32},
	}, true)
	a := NewSimpleAllocator(c, Riscv32.AddrSize())
	require.Equal(t, uint32(4), a.FPOffset(ir.FP, ir.Addr))
	require.Equal(t, uint32(8), a.FPOffset("a_3", ir.I32))
	require.Equal(t, uint32(12), a.FPOffset("b_3", ir.I32))
	require.Equal(t, uint32(16), a.FPOffset("$0_3", ir.I32))
	require.Equal(t, uint32(16), a.FrameSize())
	require.Panics(t, func() { a.FPOffset(ir.RA, ir.Addr) }, "leaf functions do not save ra")
}

func TestNonLeafSavesReturnAddress(t *testing.T) {
	c := leafCFG(map[string]cfg.LocalInfo{
		"$0_2": {Index: 0, Type: ir.I32},
		"r_2":  {Index: 1, Type: ir.I32},
	}, false)
	a := NewSimpleAllocator(c, 4)
	require.Equal(t, uint32(4), a.FPOffset(ir.RA, ir.Addr))
	require.Equal(t, uint32(8), a.FPOffset(ir.FP, ir.Addr))
	require.Equal(t, uint32(12), a.FPOffset("$0_2", ir.I32))
	require.Equal(t, uint32(16), a.FPOffset("r_2", ir.I32))
	require.Equal(t, uint32(16), a.FrameSize())
	require.Equal(t, "frame 16: %ra@-4 %fp@-8 $0_2@-12 r_2@-16", a.String())
}

func TestSlotsAreAligned(t *testing.T) {
	c := leafCFG(map[string]cfg.LocalInfo{
		"x_2": {Index: 0, Type: ir.U8},
		"y_2": {Index: 1, Type: ir.I64},
		"z_2": {Index: 2, Type: ir.U16},
		"u_2": {Index: 3, Type: ir.Unit},
	}, true)
	a := NewSimpleAllocator(c, 4)
	require.Equal(t, uint32(5), a.FPOffset("x_2", ir.U8))
	require.Equal(t, uint32(16), a.FPOffset("y_2", ir.I64))
	require.Equal(t, uint32(18), a.FPOffset("z_2", ir.U16))
	require.Equal(t, uint32(18), a.FPOffset("u_2", ir.Unit))
	require.Equal(t, uint32(32), a.FrameSize())
}

func TestUnknownSlotPanics(t *testing.T) {
	a := NewSimpleAllocator(leafCFG(map[string]cfg.LocalInfo{"a_2": {Index: 0, Type: ir.I32}}, true), 4)
	require.PanicsWithValue(t, `codegen: no stack slot for "nope"`, func() { a.FPOffset("nope", ir.I32) })
	require.Panics(t, func() { a.FPOffset("a_2", ir.I64) })
}

func TestAllocatorFromPipeline(t *testing.T) {
	lir := &ir.LinearIR{Funcs: []*ir.Func{{
		Name: "add", ScopeID: 3, IsGlobal: true,
		Params: []ir.Param{{Name: "a", Type: ir.I32}, {Name: "b", Type: ir.I32}},
		Insts: []ir.Inst{
			ir.NewBinOp(ir.OpAdd, ir.Local("$0_3", ir.I32),
				ir.PlaceOperand(ir.Local("a_3", ir.I32)), ir.PlaceOperand(ir.Local("b_3", ir.I32))),
			ir.NewRet(ir.PlaceOperand(ir.Local("$0_3", ir.I32))),
		},
	}}}
	cir, err := cfg.BuildIR(lir)
	require.NoError(t, err)
	a, err := NewAllocator(OptZero, cir.CFGs[0], Riscv32.AddrSize())
	require.NoError(t, err)
	name, ok := cir.CFGs[0].NameOfFnArg(1)
	require.True(t, ok)
	require.Equal(t, uint32(12), a.FPOffset(name, ir.I32))
	require.Equal(t, uint32(16), a.FrameSize())
}
