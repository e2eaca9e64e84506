package dataflow

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"rcc/internal/cfg"
	"rcc/internal/ir"
	"rcc/internal/parser"
	"rcc/internal/sema"
	"rcc/internal/source"
)

func buildCFGs(t *testing.T, src string) []*cfg.CFG {
	t.Helper()
	fs := source.NewFileSet()
	file, err := parser.ParseFile(fs.Get(fs.AddVirtual("test.rs", []byte(src))))
	require.NoError(t, err)
	ctx := context.Background()
	res, err := sema.Resolve(ctx, file, sema.Options{})
	require.NoError(t, err)
	lir, err := ir.Build(ctx, file, res, ir.Options{Level: ir.OptOne})
	require.NoError(t, err)
	cir, err := cfg.BuildIR(lir)
	require.NoError(t, err)
	return cir.CFGs
}

func TestLoopCarriedVariable(t *testing.T) {
	c := buildCFGs(t, "fn f() { let mut i = 0; while i < 10 { i = i + 1; } }")[0]
	lv := ComputeLiveness(c)
	require.Len(t, lv.Blocks, 4)

	require.Empty(t, lv.LiveIn(0))
	require.Equal(t, []string{"i_2"}, lv.LiveOut(0))
	require.Equal(t, []string{"i_2"}, lv.LiveIn(1))
	require.Equal(t, []string{"i_2"}, lv.LiveOut(1))
	require.Equal(t, []string{"i_2"}, lv.LiveIn(2))
	require.Equal(t, []string{"i_2"}, lv.LiveOut(2))
	require.Empty(t, lv.LiveIn(3))
	require.Empty(t, lv.LiveOut(3))

	require.True(t, lv.Blocks[0].Def.Has(0))
	require.False(t, lv.Blocks[0].Use.Has(0))
	require.True(t, lv.Blocks[2].Use.Has(0), "read before the write in the body")
	require.GreaterOrEqual(t, lv.Rounds, 2)
}

func TestParametersLiveOnEntry(t *testing.T) {
	cfgs := buildCFGs(t, "fn main() { let r = add(1, 2); } fn add(a: i32, b: i32) -> i32 { a + b }")
	lv := ComputeLiveness(cfgs[1])
	require.Equal(t, []string{"a_3", "b_3"}, lv.LiveIn(0))
	require.Empty(t, lv.LiveOut(0))
	require.Equal(t, 2, lv.MaxPressure())

	main := ComputeLiveness(cfgs[0])
	require.Empty(t, main.LiveIn(0), "the call result is defined before it is read")
}

func TestDeadStoreIsNotLive(t *testing.T) {
	x := ir.Local("x_2", ir.I32)
	f := &ir.Func{Name: "f", ScopeID: 2, IsGlobal: true, Insts: []ir.Inst{
		ir.NewLoadData(x, ir.Imm(ir.I32, 1)),
		ir.NewLoadData(x, ir.Imm(ir.I32, 2)),
		ir.NewRet(ir.PlaceOperand(x)),
	}}
	c, err := cfg.New(f)
	require.NoError(t, err)
	lv := ComputeLiveness(c)
	require.Empty(t, lv.LiveIn(0))
	require.True(t, lv.Blocks[0].Def.Has(0))
	require.Equal(t, 0, lv.Blocks[0].Use.Count())
}

func TestBorrowCountsAsUse(t *testing.T) {
	a := ir.Local("a_2", ir.I32)
	p := ir.Local("p_2", ir.Addr)
	f := &ir.Func{Name: "f", ScopeID: 2, Params: []ir.Param{{Name: "a", Type: ir.I32}}, Insts: []ir.Inst{
		ir.NewLoadAddr(p, a.Label),
		ir.NewRet(ir.UnitOperand()),
	}}
	c, err := cfg.New(f)
	require.NoError(t, err)
	lv := ComputeLiveness(c)
	require.Equal(t, []string{"a_2"}, lv.LiveIn(0))
}

func TestDump(t *testing.T) {
	c := buildCFGs(t, "fn f() { let mut i = 0; while i < 10 { i = i + 1; } }")[0]
	lv := ComputeLiveness(c)
	var sb strings.Builder
	require.NoError(t, Dump(&sb, c, lv))
	out := sb.String()
	require.True(t, strings.HasPrefix(out, "liveness f ("))
	require.Contains(t, out, "  .L2_0: in [] out [i_2]\n")
	require.Contains(t, out, "  .L2_1: in [i_2] out [i_2]\n")
	require.Contains(t, out, "  .L2_3: in [] out []\n")
}
