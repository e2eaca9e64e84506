package cfg

import (
	"errors"
	"fmt"
)

// Validate checks the structural invariants of c: block ids match positions,
// no block is empty, jump labels name blocks, every edge is recorded once in
// the successor's predecessors, and the unreachable list is exactly the
// non-entry blocks without predecessors.
func Validate(c *CFG) error {
	if c == nil {
		return nil
	}
	var errs []error
	n := len(c.Blocks)
	if n == 0 {
		return fmt.Errorf("function %s: no blocks", c.FuncName)
	}
	for i := range c.Blocks {
		bb := &c.Blocks[i]
		if bb.ID != i {
			errs = append(errs, fmt.Errorf("block at %d has id %d", i, bb.ID))
		}
		if len(bb.Insts) == 0 {
			errs = append(errs, fmt.Errorf("block %d is empty", i))
			continue
		}
		for k := range bb.Insts[:len(bb.Insts)-1] {
			if bb.Insts[k].IsJump() {
				errs = append(errs, fmt.Errorf("block %d: jump before the terminator", i))
			}
		}
		if term := bb.Terminator(); term.IsJump() && int(term.Label) >= n {
			errs = append(errs, fmt.Errorf("block %d: jump to missing block %d", i, term.Label))
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("function %s: %w", c.FuncName, errors.Join(errs...))
	}

	for i := range c.Blocks {
		for _, s := range c.SuccOf(i) {
			count := 0
			for _, p := range c.Blocks[s].Preds {
				if p == i {
					count++
				}
			}
			if count != 1 {
				errs = append(errs, fmt.Errorf("edge %d -> %d recorded %d times in predecessors", i, s, count))
			}
		}
	}
	var unreachable []int
	for i := 1; i < n; i++ {
		if len(c.Blocks[i].Preds) == 0 {
			unreachable = append(unreachable, i)
		}
	}
	if fmt.Sprint(unreachable) != fmt.Sprint(c.Unreachable) {
		errs = append(errs, fmt.Errorf("unreachable blocks %v, recorded %v", unreachable, c.Unreachable))
	}
	if len(errs) > 0 {
		return fmt.Errorf("function %s: %w", c.FuncName, errors.Join(errs...))
	}
	return nil
}

// ValidateIR validates every CFG of cir.
func ValidateIR(cir *CFGIR) error {
	var errs []error
	for _, c := range cir.CFGs {
		errs = append(errs, Validate(c))
	}
	return errors.Join(errs...)
}
