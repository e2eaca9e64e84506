// Package diag defines the error value shared by every compile phase.
//
// rcc is fail-fast: the lexer, parser, resolver and lowering each stop at
// the first problem in a file. That problem is an *Error carrying a
// human-readable message and, when known, the source span it points to.
// Error() returns the message verbatim; callers match on it in tests.
//
// Rendering (path:line:col prefixes, source excerpt, caret underline) lives
// in internal/diagfmt.
package diag
