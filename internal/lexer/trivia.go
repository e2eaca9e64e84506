package lexer

// skipTrivia drops whitespace, line comments and nested block comments.
func (lx *Lexer) skipTrivia() {
	c := &lx.cursor
	for lx.err == nil && !c.EOF() {
		switch {
		case isSpace(c.Peek()):
			c.Bump()
		case c.EatPrefix("//"):
			for !c.EOF() && c.Peek() != '\n' {
				c.Bump()
			}
		case c.EatPrefix("/*"):
			lx.skipBlockComment(c.Mark() - 2)
		default:
			return
		}
	}
}

func isSpace(b byte) bool { return b == ' ' || b == '\t' || b == '\n' || b == '\r' }

// skipBlockComment runs past the "*/" closing the comment opened at start,
// counting nested openers.
func (lx *Lexer) skipBlockComment(start Mark) {
	c := &lx.cursor
	for depth := 1; depth > 0; {
		switch {
		case c.EOF():
			lx.fail(c.SpanFrom(start), "unterminated block comment")
			return
		case c.EatPrefix("/*"):
			depth++
		case c.EatPrefix("*/"):
			depth--
		default:
			c.Bump()
		}
	}
}
