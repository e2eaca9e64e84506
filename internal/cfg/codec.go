package cfg

import (
	"cmp"
	"io"
	"slices"

	"github.com/vmihailenco/msgpack/v5"

	"rcc/internal/ir"
)

// Encode writes cir as msgpack. Equal inputs encode to equal bytes: string
// tables have their keys sorted and locals are written in index order.
func Encode(w io.Writer, cir *CFGIR) error {
	enc := msgpack.NewEncoder(w)
	enc.SetSortMapKeys(true)
	return enc.Encode(cir)
}

// Decode reads a CFGIR written by Encode.
func Decode(r io.Reader) (*CFGIR, error) {
	var cir CFGIR
	if err := msgpack.NewDecoder(r).Decode(&cir); err != nil {
		return nil, err
	}
	return &cir, nil
}

type wireLocal struct {
	Name  string    `msgpack:"name"`
	Index int       `msgpack:"index"`
	Type  ir.IRType `msgpack:"type"`
}

// wireCFG is CFG on the wire, with LocalInfos flattened to an ordered list.
type wireCFG struct {
	Blocks       []BasicBlock `msgpack:"blocks"`
	Locals       []wireLocal  `msgpack:"locals"`
	FuncName     string       `msgpack:"func_name"`
	FuncScopeID  uint64       `msgpack:"func_scope_id"`
	FuncIsGlobal bool         `msgpack:"func_is_global"`
	FnArgs       []ir.Param   `msgpack:"fn_args"`
	IsLeaf       bool         `msgpack:"is_leaf"`
	Unreachable  []int        `msgpack:"unreachable"`
}

var (
	_ msgpack.CustomEncoder = (*CFG)(nil)
	_ msgpack.CustomDecoder = (*CFG)(nil)
)

func (c *CFG) EncodeMsgpack(enc *msgpack.Encoder) error {
	locals := make([]wireLocal, 0, len(c.LocalInfos))
	for name, info := range c.LocalInfos {
		locals = append(locals, wireLocal{Name: name, Index: info.Index, Type: info.Type})
	}
	slices.SortFunc(locals, func(a, b wireLocal) int {
		return cmp.Or(cmp.Compare(a.Index, b.Index), cmp.Compare(a.Name, b.Name))
	})
	return enc.Encode(&wireCFG{
		Blocks:       c.Blocks,
		Locals:       locals,
		FuncName:     c.FuncName,
		FuncScopeID:  c.FuncScopeID,
		FuncIsGlobal: c.FuncIsGlobal,
		FnArgs:       c.FnArgs,
		IsLeaf:       c.IsLeaf,
		Unreachable:  c.Unreachable,
	})
}

func (c *CFG) DecodeMsgpack(dec *msgpack.Decoder) error {
	var w wireCFG
	if err := dec.Decode(&w); err != nil {
		return err
	}
	*c = CFG{
		Blocks:       w.Blocks,
		LocalInfos:   make(map[string]LocalInfo, len(w.Locals)),
		FuncName:     w.FuncName,
		FuncScopeID:  w.FuncScopeID,
		FuncIsGlobal: w.FuncIsGlobal,
		FnArgs:       w.FnArgs,
		IsLeaf:       w.IsLeaf,
		Unreachable:  w.Unreachable,
	}
	for _, l := range w.Locals {
		c.LocalInfos[l.Name] = LocalInfo{Index: l.Index, Type: l.Type}
	}
	return nil
}
