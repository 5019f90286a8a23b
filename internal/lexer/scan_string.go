package lexer

import (
	"fmt"
	"strings"

	"verusyn/internal/diag"
	"verusyn/internal/token"
)

// scanString scans "..." starting at the opening quote. Escapes are only
// skipped, not validated; newlines are allowed inside the literal.
func (lx *Lexer) scanString(kind token.Kind, start Mark) token.Token {
	lx.cursor.Bump() // opening '"'
	for !lx.cursor.EOF() {
		switch lx.cursor.Bump() {
		case '"':
			return lx.emit(kind, start)
		case '\\':
			lx.cursor.Bump()
		}
	}
	lx.errLex(diag.LexUnterminatedString, lx.cursor.SpanFrom(start), "unterminated string literal")
	return lx.emit(token.Invalid, start)
}

// scanRawString scans the delimiter run and body of r#"..."#. The literal
// ends at a quote followed by exactly as many '#' as were opened; a quote
// followed by fewer or more '#' is content.
func (lx *Lexer) scanRawString(kind token.Kind, start Mark) token.Token {
	open := 0
	for lx.cursor.Eat('#') {
		open++
	}
	if !lx.cursor.Eat('"') {
		lx.errLex(diag.LexRawStringDelimiter, lx.cursor.SpanFrom(start), "expected '\"' after raw string delimiters")
		return lx.emit(token.Invalid, start)
	}
	for !lx.cursor.EOF() {
		if lx.cursor.Bump() != '"' {
			continue
		}
		afterQuote := lx.cursor.Mark()
		closing := 0
		for lx.cursor.Eat('#') {
			closing++
		}
		if closing == open {
			return lx.emit(kind, start)
		}
		// not a terminator: rescan the '#' run as content
		lx.cursor.Reset(afterQuote)
	}
	msg := fmt.Sprintf("unterminated raw string, expected '\"%s'", strings.Repeat("#", open))
	lx.errLex(diag.LexRawStringDelimiter, lx.cursor.SpanFrom(start), msg)
	return lx.emit(token.Invalid, start)
}

// scanCharOrLifetime distinguishes 'a' and '\n' from 'a, '_ and 'static.
func (lx *Lexer) scanCharOrLifetime() token.Token {
	start := lx.cursor.Mark()
	lx.cursor.Bump() // '\''
	if lx.cursor.Peek() == '\\' {
		lx.cursor.Reset(start)
		return lx.scanChar(token.CharLit, start)
	}
	_, sz := lx.peekRune()
	if sz == 0 {
		lx.errLex(diag.LexUnterminatedChar, lx.cursor.SpanFrom(start), "unterminated character literal")
		return lx.emit(token.Invalid, start)
	}
	// one rune followed by a quote is always a char
	if lx.cursor.PeekAt(uint32(sz)) == '\'' {
		lx.cursor.Reset(start)
		return lx.scanChar(token.CharLit, start)
	}
	if lx.atIdentStart() {
		lx.bumpRune()
		lx.scanIdentTail()
		return lx.emit(token.Lifetime, start)
	}
	lx.errLex(diag.LexUnterminatedChar, lx.cursor.SpanFrom(start), "unterminated character literal")
	return lx.emit(token.Invalid, start)
}

// scanChar scans '<char>' from the opening quote. Escaped quotes are honoured;
// escape contents are not validated.
func (lx *Lexer) scanChar(kind token.Kind, start Mark) token.Token {
	lx.cursor.Bump() // '\''
	for !lx.cursor.EOF() {
		switch lx.cursor.Peek() {
		case '\'':
			lx.cursor.Bump()
			return lx.emit(kind, start)
		case '\n':
			lx.errLex(diag.LexUnterminatedChar, lx.cursor.SpanFrom(start), "newline in character literal")
			return lx.emit(token.Invalid, start)
		case '\\':
			lx.cursor.Bump()
			lx.bumpRune()
		default:
			lx.bumpRune()
		}
	}
	lx.errLex(diag.LexUnterminatedChar, lx.cursor.SpanFrom(start), "unterminated character literal")
	return lx.emit(token.Invalid, start)
}
