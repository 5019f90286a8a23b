package lexer

import (
	"fmt"

	"verusyn/internal/diag"
	"verusyn/internal/token"
)

// scanOperatorOrPunct takes the longest operator spelling at the cursor,
// so "<==>" wins over "<==" over "<=" over "<".
func (lx *Lexer) scanOperatorOrPunct() token.Token {
	start := lx.cursor.Mark()
	rest := lx.cursor.Rest()
	if len(rest) > token.MaxPunctLen {
		rest = rest[:token.MaxPunctLen]
	}
	kind, n := token.LongestPunct(string(rest))
	if n == 0 {
		r, sz := lx.peekRune()
		if sz == 0 {
			sz = 1
		}
		for range sz {
			lx.cursor.Bump()
		}
		lx.errLex(diag.LexUnknownChar, lx.cursor.SpanFrom(start), fmt.Sprintf("unknown character %q", r))
		return lx.emit(token.Invalid, start)
	}
	for range n {
		lx.cursor.Bump()
	}
	return lx.emit(kind, start)
}
