package source

import (
	"slices"
	"strings"
)

// StringID numbers interned strings. The literal table hands out ids from 1,
// which the IR turns into the `.LC{id}` labels.
type StringID uint32

const NoStringID StringID = 0

// Interner is an append-only string table; slot 0 holds "".
type Interner struct {
	strs []string
	ids  map[string]StringID
}

func NewInterner() *Interner {
	return &Interner{strs: []string{""}, ids: map[string]StringID{"": NoStringID}}
}

// Intern returns the id of s, adding it on first sight.
func (in *Interner) Intern(s string) StringID {
	id, ok := in.ids[s]
	if !ok {
		id = StringID(len(in.strs)) //nolint:gosec // bounded by memory
		s = strings.Clone(s)
		in.strs = append(in.strs, s)
		in.ids[s] = id
	}
	return id
}

func (in *Interner) Lookup(id StringID) (string, bool) {
	if int(id) >= len(in.strs) {
		return "", false
	}
	return in.strs[id], true
}

// MustLookup is Lookup for ids the caller got from this table.
func (in *Interner) MustLookup(id StringID) string {
	s, ok := in.Lookup(id)
	if !ok {
		panic("source: unknown string id")
	}
	return s
}

// Len counts the entries, the reserved empty string included.
func (in *Interner) Len() int { return len(in.strs) }

// Snapshot copies the table in id order.
func (in *Interner) Snapshot() []string { return slices.Clone(in.strs) }
