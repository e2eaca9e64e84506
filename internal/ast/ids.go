package ast

type (
	ItemID     uint32
	StmtID     uint32
	ExprID     uint32
	BlockID    uint32
	TypeExprID uint32
	PayloadID  uint32
	// ScopeID numbers lexical scopes in source order. 0 is reserved, the file
	// scope is 1 and every block gets the next id as the parser meets it.
	ScopeID uint32
)

const (
	NoItemID     ItemID     = 0
	NoStmtID     StmtID     = 0
	NoExprID     ExprID     = 0
	NoBlockID    BlockID    = 0
	NoTypeExprID TypeExprID = 0
	NoScopeID    ScopeID    = 0

	FileScopeID ScopeID = 1
)

func (id ItemID) IsValid() bool     { return id != NoItemID }
func (id StmtID) IsValid() bool     { return id != NoStmtID }
func (id ExprID) IsValid() bool     { return id != NoExprID }
func (id BlockID) IsValid() bool    { return id != NoBlockID }
func (id TypeExprID) IsValid() bool { return id != NoTypeExprID }
func (id ScopeID) IsValid() bool    { return id != NoScopeID }
