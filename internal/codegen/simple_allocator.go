package codegen

import (
	"fmt"
	"slices"
	"strings"

	"rcc/internal/cfg"
	"rcc/internal/ir"
)

// frameAlign is the stack alignment of the riscv calling convention.
const frameAlign = 16

type slot struct {
	offset uint32
	typ    ir.IRType
}

// SimpleAllocator gives every local its own slot below the frame pointer.
// The return address (non-leaf functions only) and the caller's frame
// pointer are saved first, then locals follow in LocalInfo index order.
type SimpleAllocator struct {
	slots     map[string]slot
	frameSize uint32
}

// NewSimpleAllocator lays out the frame of c.
func NewSimpleAllocator(c *cfg.CFG, addrSize uint32) *SimpleAllocator {
	a := &SimpleAllocator{slots: make(map[string]slot, len(c.LocalInfos)+2)}
	var cursor uint32
	reserve := func(name string, t ir.IRType) {
		size := t.Size(addrSize)
		cursor = alignUp(cursor+size, max(size, 1))
		a.slots[name] = slot{offset: cursor, typ: t}
	}
	if !c.IsLeaf {
		reserve(ir.RA, ir.Addr)
	}
	reserve(ir.FP, ir.Addr)

	names := make([]string, 0, len(c.LocalInfos))
	for name := range c.LocalInfos {
		names = append(names, name)
	}
	slices.SortFunc(names, func(x, y string) int {
		return c.LocalInfos[x].Index - c.LocalInfos[y].Index
	})
	for _, name := range names {
		reserve(name, c.LocalInfos[name].Type)
	}
	a.frameSize = alignUp(cursor, frameAlign)
	return a
}

func (a *SimpleAllocator) FrameSize() uint32 {
	return a.frameSize
}

// FPOffset panics on names the frame has no slot for.
func (a *SimpleAllocator) FPOffset(name string, t ir.IRType) uint32 {
	s, ok := a.slots[name]
	if !ok {
		panic(fmt.Sprintf("codegen: no stack slot for %q", name))
	}
	if s.typ != t {
		panic(fmt.Sprintf("codegen: slot %q holds %s, not %s", name, s.typ, t))
	}
	return s.offset
}

// String lists the slots from the frame pointer down.
func (a *SimpleAllocator) String() string {
	names := make([]string, 0, len(a.slots))
	for name := range a.slots {
		names = append(names, name)
	}
	slices.SortFunc(names, func(x, y string) int {
		if d := int(a.slots[x].offset) - int(a.slots[y].offset); d != 0 {
			return d
		}
		return strings.Compare(x, y)
	})
	var sb strings.Builder
	fmt.Fprintf(&sb, "frame %d:", a.frameSize)
	for _, name := range names {
		fmt.Fprintf(&sb, " %s@-%d", name, a.slots[name].offset)
	}
	return sb.String()
}

func alignUp(v, align uint32) uint32 {
	return (v + align - 1) / align * align
}
