package lexer

import (
	"verusyn/internal/diag"
	"verusyn/internal/source"
	"verusyn/internal/token"
)

type Lexer struct {
	file   *source.File
	cursor Cursor
	opts   Options
	look   *token.Token   // one-token lookahead buffer
	hold   []token.Trivia // leading trivia being collected
	prev   token.Kind     // kind of the last significant token
	err    *diag.Error    // first lexical error
}

// New lexes the whole file.
func New(file *source.File, opts Options) *Lexer {
	return &Lexer{
		file:   file,
		cursor: NewCursor(file),
		opts:   opts,
	}
}

// NewRange lexes the byte range [start, end) of file. Token spans stay in
// file coordinates.
func NewRange(file *source.File, start, end uint32, opts Options) *Lexer {
	return &Lexer{
		file:   file,
		cursor: NewRangeCursor(file, start, end),
		opts:   opts,
	}
}

// Next returns the next significant token with its Leading trivia.
// After EOF it keeps returning EOF.
func (lx *Lexer) Next() token.Token {
	if lx.look != nil {
		tok := *lx.look
		lx.look = nil
		return tok
	}

	lx.collectLeadingTrivia()

	var tok token.Token
	if lx.cursor.EOF() {
		tok = token.Token{Kind: token.EOF, Span: lx.EmptySpan()}
	} else {
		tok = lx.scanToken()
	}
	tok.Leading = lx.hold
	lx.hold = nil
	lx.prev = tok.Kind
	return tok
}

func (lx *Lexer) scanToken() token.Token {
	ch := lx.cursor.Peek()
	switch {
	case ch == 'r' || ch == 'b' || ch == 'c':
		if tok, ok := lx.scanPrefixedLiteral(); ok {
			return tok
		}
		return lx.scanIdentOrKeyword()
	case isIdentStartByte(ch) || ch >= utf8RuneSelf:
		return lx.scanIdentOrKeyword()
	case isDec(ch):
		return lx.scanNumber()
	case ch == '"':
		return lx.scanString(token.StringLit, lx.cursor.Mark())
	case ch == '\'':
		return lx.scanCharOrLifetime()
	default:
		return lx.scanOperatorOrPunct()
	}
}

// Peek returns the next token without consuming it.
func (lx *Lexer) Peek() token.Token {
	if lx.look != nil {
		return *lx.look
	}
	t := lx.Next()
	lx.look = &t
	return t
}

// Err returns the first lexical error, or nil.
func (lx *Lexer) Err() *diag.Error {
	return lx.err
}

// Offset is the byte offset of the next unread byte.
func (lx *Lexer) Offset() uint32 {
	return lx.cursor.Off
}

// EmptySpan is a zero-length span at the cursor.
func (lx *Lexer) EmptySpan() source.Span {
	return source.Span{File: lx.file.ID, Start: lx.cursor.Off, End: lx.cursor.Off}
}

func (lx *Lexer) emit(k token.Kind, start Mark) token.Token {
	sp := lx.cursor.SpanFrom(start)
	return token.Token{Kind: k, Span: sp, Text: string(lx.file.Content[sp.Start:sp.End])}
}

// Tokenize lexes the whole file up to and including EOF.
// It stops at the first lexical error.
func Tokenize(file *source.File, opts Options) ([]token.Token, error) {
	return collect(New(file, opts))
}

// TokenizeRange lexes [start, end) of file up to and including EOF.
func TokenizeRange(file *source.File, start, end uint32, opts Options) ([]token.Token, error) {
	return collect(NewRange(file, start, end, opts))
}

func collect(lx *Lexer) ([]token.Token, error) {
	var toks []token.Token
	for {
		tok := lx.Next()
		if err := lx.Err(); err != nil {
			return toks, err
		}
		toks = append(toks, tok)
		if tok.Kind == token.EOF {
			return toks, nil
		}
	}
}
