package symbols

import (
	"errors"
	"fmt"
	"slices"

	"fortio.org/safecast"

	"rcc/internal/ast"
	"rcc/internal/types"
)

// Scopes stores one file's scope tree, indexed by the ids the parser handed out.
type Scopes struct {
	data []Scope
}

// NewScopes allocates count scopes; index 0 is the reserved sentinel.
func NewScopes(count uint32) *Scopes {
	if count <= uint32(ast.FileScopeID) {
		count = uint32(ast.FileScopeID) + 1
	}
	s := &Scopes{data: make([]Scope, count)}
	for i := range s.data {
		id, err := safecast.Conv[uint32](i)
		if err != nil {
			panic(fmt.Errorf("scopes arena overflow: %w", err))
		}
		s.data[i].ID = ast.ScopeID(id)
	}
	return s
}

// Get returns the scope pointer or nil if id is invalid.
func (s *Scopes) Get(id ast.ScopeID) *Scope {
	if !id.IsValid() || int(id) >= len(s.data) {
		return nil
	}
	return &s.data[id]
}

// File returns the root scope.
func (s *Scopes) File() *Scope {
	return s.Get(ast.FileScopeID)
}

// Len reports the number of scopes excluding the sentinel.
func (s *Scopes) Len() int { return len(s.data) - 1 }

// Link fixes parent as the parent of child. A scope keeps the parent it was
// first linked to.
func (s *Scopes) Link(child, parent ast.ScopeID) {
	c := s.Get(child)
	if c == nil || c.Parent.IsValid() || child == parent {
		return
	}
	c.Parent = parent
	if p := s.Get(parent); p != nil {
		p.Children = append(p.Children, child)
	}
}

// FindVariable searches from for a visible binding, then its ancestors.
func (s *Scopes) FindVariable(from ast.ScopeID, name string) (*VarInfo, bool) {
	for sc := s.Get(from); sc != nil; sc = s.Get(sc.Parent) {
		if v, ok := sc.LookupVariable(name); ok {
			return v, true
		}
	}
	return nil, false
}

// FindFn walks the scope chain for a function definition.
func (s *Scopes) FindFn(from ast.ScopeID, name string) (FnDef, bool) {
	for sc := s.Get(from); sc != nil; sc = s.Get(sc.Parent) {
		if def, ok := sc.Fns[name]; ok {
			return def, true
		}
	}
	return FnDef{}, false
}

// FnType is FindFn reduced to the function's type, types.Unknown when absent.
func (s *Scopes) FnType(from ast.ScopeID, name string) types.TypeID {
	def, ok := s.FindFn(from, name)
	if !ok {
		return types.Unknown
	}
	return def.Type
}

// FindDefExceptFn walks the scope chain for a struct or enum, returning
// types.Unknown when absent.
func (s *Scopes) FindDefExceptFn(from ast.ScopeID, name string) types.TypeID {
	for sc := s.Get(from); sc != nil; sc = s.Get(sc.Parent) {
		if def, ok := sc.TypeDefs[name]; ok {
			return def.Type
		}
	}
	return types.Unknown
}

// Validate checks that the tree is well formed: only the file scope is a
// root, parents precede children and every child is listed by its parent.
func (s *Scopes) Validate() error {
	var errs []error
	for i := 1; i < len(s.data); i++ {
		sc := &s.data[i]
		if sc.ID == ast.FileScopeID {
			if sc.Parent.IsValid() {
				errs = append(errs, fmt.Errorf("file scope has parent %d", sc.Parent))
			}
			continue
		}
		if !sc.Parent.IsValid() {
			// never entered: a block the resolver did not reach
			continue
		}
		if sc.Parent >= sc.ID {
			errs = append(errs, fmt.Errorf("scope %d: parent %d does not precede it", sc.ID, sc.Parent))
			continue
		}
		parent := s.Get(sc.Parent)
		if parent == nil {
			errs = append(errs, fmt.Errorf("scope %d: parent %d out of range", sc.ID, sc.Parent))
			continue
		}
		if !slices.Contains(parent.Children, sc.ID) {
			errs = append(errs, fmt.Errorf("scope %d missing from children of %d", sc.ID, sc.Parent))
		}
	}
	return errors.Join(errs...)
}
