package token

// keywords maps each reserved word to its kind, built from the kind names.
var keywords = func() map[string]Kind {
	m := make(map[string]Kind, KwAs-KwFn+1)
	for k := KwFn; k <= KwAs; k++ {
		m[kindNames[k]] = k
	}
	return m
}()

// LookupKeyword reports whether ident is a keyword. Matching is
// case-sensitive: "Fn" is an identifier.
func LookupKeyword(ident string) (Kind, bool) {
	k, ok := keywords[ident]
	return k, ok
}
