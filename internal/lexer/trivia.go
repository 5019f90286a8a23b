package lexer

import (
	"verusyn/internal/diag"
	"verusyn/internal/token"
)

// collectLeadingTrivia gathers whitespace and comments before a token:
//   - runs of ' ', '\t', '\r' become one TriviaSpace
//   - runs of '\n' become one TriviaNewline
//   - // ... is a line comment; /// and //! are doc lines (but //// is not)
//   - /* ... */ nests; /** and /*! are doc blocks
func (lx *Lexer) collectLeadingTrivia() {
	lx.hold = nil
	if lx.cursor.Off == 0 && len(lx.cursor.Rest()) >= 3 && string(lx.cursor.Rest()[:3]) == bom {
		start := lx.cursor.Mark()
		lx.cursor.Off += 3
		lx.pushTrivia(token.TriviaSpace, start)
	}
	for !lx.cursor.EOF() {
		start := lx.cursor.Mark()
		switch b := lx.cursor.Peek(); {
		case b == ' ' || b == '\t' || b == '\r' || b == '\f' || b == '\v':
			for {
				b2 := lx.cursor.Peek()
				if b2 != ' ' && b2 != '\t' && b2 != '\r' && b2 != '\f' && b2 != '\v' {
					break
				}
				lx.cursor.Bump()
			}
			lx.pushTrivia(token.TriviaSpace, start)
		case b == '\n':
			for lx.cursor.Peek() == '\n' {
				lx.cursor.Bump()
			}
			lx.pushTrivia(token.TriviaNewline, start)
		case b == '/' && (lx.cursor.PeekAt(1) == '/' || lx.cursor.PeekAt(1) == '*'):
			lx.scanComment()
		default:
			return
		}
	}
}

const bom = "\xEF\xBB\xBF"

func (lx *Lexer) pushTrivia(kind token.TriviaKind, start Mark) {
	sp := lx.cursor.SpanFrom(start)
	lx.hold = append(lx.hold, token.Trivia{
		Kind: kind,
		Span: sp,
		Text: string(lx.file.Content[sp.Start:sp.End]),
	})
}

func (lx *Lexer) scanComment() {
	start := lx.cursor.Mark()
	lx.cursor.Bump() // '/'
	if lx.cursor.Eat('/') {
		kind := token.TriviaLineComment
		b := lx.cursor.Peek()
		if b == '!' || (b == '/' && lx.cursor.PeekAt(1) != '/') {
			kind = token.TriviaDocLine
		}
		for !lx.cursor.EOF() && lx.cursor.Peek() != '\n' {
			lx.cursor.Bump()
		}
		lx.pushTrivia(kind, start)
		return
	}

	lx.cursor.Bump() // '*'
	kind := token.TriviaBlockComment
	if b := lx.cursor.Peek(); b == '!' || (b == '*' && lx.cursor.PeekAt(1) != '*' && lx.cursor.PeekAt(1) != '/') {
		kind = token.TriviaDocBlock
	}
	depth := 1
	for !lx.cursor.EOF() && depth > 0 {
		if b0, b1, ok := lx.cursor.Peek2(); ok {
			if b0 == '/' && b1 == '*' {
				lx.cursor.Bump()
				lx.cursor.Bump()
				depth++
				continue
			}
			if b0 == '*' && b1 == '/' {
				lx.cursor.Bump()
				lx.cursor.Bump()
				depth--
				continue
			}
		}
		lx.cursor.Bump()
	}
	if depth > 0 {
		lx.errLex(diag.LexUnterminatedBlockComment, lx.cursor.SpanFrom(start), "unterminated block comment")
	}
	lx.pushTrivia(kind, start)
}
