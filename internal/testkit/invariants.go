// Package testkit checks structural invariants of parsed files. Tests and
// fuzz harnesses run it after a successful parse.
package testkit

import (
	"fmt"

	"fortio.org/safecast"

	"rcc/internal/ast"
	"rcc/internal/source"
)

// CheckSpanInvariants runs a minimal set of span invariants on a parsed file:
// the file span lies within the content, and every top-level item span is
// non-empty and inside the file span.
func CheckSpanInvariants(f *ast.File, sf *source.File) error {
	if f == nil || sf == nil {
		return fmt.Errorf("nil file")
	}
	lenContent, err := safecast.Conv[uint32](len(sf.Content))
	if err != nil {
		return fmt.Errorf("len content overflow: %w", err)
	}
	if len(f.TopLevel) == 0 {
		return nil
	}
	if f.Span.End <= f.Span.Start {
		return fmt.Errorf("file span is empty: %v", f.Span)
	}
	if f.Span.File != sf.ID {
		return fmt.Errorf("file span points to different file id: got=%d want=%d", f.Span.File, sf.ID)
	}
	if f.Span.End > lenContent {
		return fmt.Errorf("file span end beyond content: %d > %d", f.Span.End, lenContent)
	}

	var union source.Span
	for i, id := range f.TopLevel {
		item := f.Items.Get(id)
		if item == nil {
			return fmt.Errorf("nil item for id=%d", id)
		}
		sp := item.Span
		if sp.End <= sp.Start {
			return fmt.Errorf("empty item span: %v", sp)
		}
		if sp.Start < f.Span.Start || sp.End > f.Span.End {
			return fmt.Errorf("item span %v is outside file span %v", sp, f.Span)
		}
		if i == 0 {
			union = sp
		} else {
			union = union.Cover(sp)
		}
	}
	if union.Start < f.Span.Start || union.End > f.Span.End {
		return fmt.Errorf("file span %v does not cover union of items %v", f.Span, union)
	}
	return nil
}

// CheckScopeNumbering verifies that every block owns a distinct scope in
// (FileScopeID, NumScopes) and that scopes increase in source order.
func CheckScopeNumbering(f *ast.File) error {
	if f == nil {
		return fmt.Errorf("nil file")
	}
	seen := make(map[ast.ScopeID]bool, f.Blocks.Arena.Len())
	var prev ast.ScopeID
	var prevStart uint32
	for i, b := range f.Blocks.Arena.All() {
		if b.Scope <= ast.FileScopeID || uint32(b.Scope) >= f.NumScopes {
			return fmt.Errorf("block %d has scope %d outside (%d, %d)", i, b.Scope, ast.FileScopeID, f.NumScopes)
		}
		if seen[b.Scope] {
			return fmt.Errorf("scope %d is shared by two blocks", b.Scope)
		}
		seen[b.Scope] = true
		if prev != 0 && b.Span.Start > prevStart && b.Scope < prev {
			return fmt.Errorf("block at %d has scope %d below the earlier block's %d", b.Span.Start, b.Scope, prev)
		}
		prev, prevStart = b.Scope, b.Span.Start
	}
	if got := uint32(len(seen)) + uint32(ast.FileScopeID) + 1; got != f.NumScopes {
		return fmt.Errorf("NumScopes = %d, want %d", f.NumScopes, got)
	}
	return nil
}
