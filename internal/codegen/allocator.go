package codegen

import (
	"fmt"

	"rcc/internal/cfg"
	"rcc/internal/diag"
	"rcc/internal/ir"
)

// Allocator assigns stack slots to the locals of one function.
type Allocator interface {
	// FrameSize is the total stack frame in bytes.
	FrameSize() uint32
	// FPOffset returns the distance below the frame pointer of name's slot.
	FPOffset(name string, t ir.IRType) uint32
}

// NewAllocator picks the allocator for level.
func NewAllocator(level OptimizeLevel, c *cfg.CFG, addrSize uint32) (Allocator, error) {
	switch level {
	case OptZero:
		return NewSimpleAllocator(c, addrSize), nil
	case OptOne:
		return nil, diag.New("unimplemented: register allocation").
			Wrap(diag.ErrUnimplemented).
			InPhase(diag.PhaseCodegen)
	default:
		return nil, fmt.Errorf("unknown optimize level %s", level)
	}
}
