package symbols

import (
	"rcc/internal/ast"
	"rcc/internal/types"
)

// Scope is a node of the scope tree. Vars keeps every binding of a name in
// declaration order so a later walk over the same block sees the binding each
// lookup saw during resolution.
type Scope struct {
	ID       ast.ScopeID
	Parent   ast.ScopeID
	Children []ast.ScopeID
	Vars     map[string][]*VarInfo
	Fns      map[string]FnDef
	TypeDefs map[string]TypeDef
	// CurStmtID orders bindings inside the block: a binding is visible only
	// to lookups made while CurStmtID is strictly greater than its StmtID.
	CurStmtID uint32
}

// AddVariable records name at the current statement id and returns the binding.
func (s *Scope) AddVariable(name string, kind VarKind, t types.TypeID) *VarInfo {
	if s.Vars == nil {
		s.Vars = make(map[string][]*VarInfo)
	}
	v := &VarInfo{StmtID: s.CurStmtID, Kind: kind, Type: t, Scope: s.ID}
	s.Vars[name] = append(s.Vars[name], v)
	return v
}

// AddFn registers a hoisted function, replacing an earlier one of the same name.
func (s *Scope) AddFn(name string, def FnDef) {
	if s.Fns == nil {
		s.Fns = make(map[string]FnDef)
	}
	def.Scope = s.ID
	s.Fns[name] = def
}

// AddTypeDef registers a hoisted struct or enum.
func (s *Scope) AddTypeDef(name string, def TypeDef) {
	if s.TypeDefs == nil {
		s.TypeDefs = make(map[string]TypeDef)
	}
	s.TypeDefs[name] = def
}

// LookupVariable returns the latest binding of name visible at CurStmtID
// without consulting the parent.
func (s *Scope) LookupVariable(name string) (*VarInfo, bool) {
	vars := s.Vars[name]
	for i := len(vars) - 1; i >= 0; i-- {
		if vars[i].StmtID < s.CurStmtID {
			return vars[i], true
		}
	}
	return nil, false
}

// NextStmt advances the statement counter after a statement was visited.
func (s *Scope) NextStmt() {
	s.CurStmtID++
}
