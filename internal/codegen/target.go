// Package codegen holds the contract between the CFG IR and a machine
// backend: target platforms, optimize levels and stack frame allocation.
package codegen

import (
	"fmt"
	"strings"

	"rcc/internal/ir"
)

// TargetPlatform is a machine the backend can emit code for.
type TargetPlatform uint8

const (
	Riscv32 TargetPlatform = iota
)

func (t TargetPlatform) String() string {
	switch t {
	case Riscv32:
		return "riscv32"
	default:
		return fmt.Sprintf("TargetPlatform(%d)", t)
	}
}

// AddrSize is the width of an address in bytes.
func (t TargetPlatform) AddrSize() uint32 {
	switch t {
	case Riscv32:
		return 4
	default:
		panic(fmt.Sprintf("codegen: unknown target %d", t))
	}
}

// ParseTarget accepts a target name, case-insensitively.
func ParseTarget(s string) (TargetPlatform, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "riscv32", "rv32":
		return Riscv32, nil
	default:
		return Riscv32, fmt.Errorf("invalid target: %q (expected: riscv32)", s)
	}
}

// OptimizeLevel is shared with lowering so one flag drives both.
type OptimizeLevel = ir.OptimizeLevel

const (
	OptZero = ir.OptZero
	OptOne  = ir.OptOne
)

// ParseOptimizeLevel accepts "0", "1", "zero" and "one".
func ParseOptimizeLevel(s string) (OptimizeLevel, error) {
	return ir.ParseOptimizeLevel(s)
}
