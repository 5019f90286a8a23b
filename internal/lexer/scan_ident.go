package lexer

import (
	"verusyn/internal/diag"
	"verusyn/internal/token"
)

// scanIdentOrKeyword scans an identifier and classifies reserved words.
// Maximal munch means "assert2" and "_assert" stay identifiers.
func (lx *Lexer) scanIdentOrKeyword() token.Token {
	start := lx.cursor.Mark()
	if !lx.atIdentStart() {
		return lx.scanOperatorOrPunct()
	}
	lx.bumpRune()
	lx.scanIdentTail()

	tok := lx.emit(token.Ident, start)
	if tok.Text == "_" {
		tok.Kind = token.Underscore
		return tok
	}
	if k, ok := token.LookupKeyword(tok.Text); ok {
		tok.Kind = k
	}
	return tok
}

// scanPrefixedLiteral handles literals and raw identifiers that start with
// a letter: b'x', b"..", br".." , r"..", r#".."#, c"..", r#ident.
// It reports false when the text is an ordinary identifier.
func (lx *Lexer) scanPrefixedLiteral() (token.Token, bool) {
	start := lx.cursor.Mark()
	b0 := lx.cursor.Peek()
	b1 := lx.cursor.PeekAt(1)
	b2 := lx.cursor.PeekAt(2)

	switch {
	case b0 == 'b' && b1 == '\'':
		lx.cursor.Bump()
		return lx.scanChar(token.ByteLit, start), true
	case b0 == 'b' && b1 == '"':
		lx.cursor.Bump()
		return lx.scanString(token.ByteStringLit, start), true
	case b0 == 'c' && b1 == '"':
		lx.cursor.Bump()
		return lx.scanString(token.CStringLit, start), true
	case b0 == 'b' && b1 == 'r' && (b2 == '"' || b2 == '#'):
		lx.cursor.Bump()
		lx.cursor.Bump()
		return lx.scanRawString(token.RawByteStrLit, start), true
	case b0 == 'r' && b1 == '"':
		lx.cursor.Bump()
		return lx.scanRawString(token.RawStringLit, start), true
	case b0 == 'r' && b1 == '#':
		// r#ident is a raw identifier, r#"..."# a raw string
		if b2 != '"' && b2 != '#' {
			lx.cursor.Bump()
			lx.cursor.Bump()
			if !lx.atIdentStart() {
				lx.errLex(diag.LexRawStringDelimiter, lx.cursor.SpanFrom(start), "expected '\"' or identifier after r#")
				return lx.emit(token.Invalid, start), true
			}
			lx.bumpRune()
			lx.scanIdentTail()
			return lx.emit(token.Ident, start), true
		}
		lx.cursor.Bump()
		return lx.scanRawString(token.RawStringLit, start), true
	}
	return token.Token{}, false
}
