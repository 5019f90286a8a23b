package lexer

import (
	"verusyn/internal/diag"
	"verusyn/internal/token"
)

// intSuffixes are the width/kind suffixes accepted on integer literals.
// int and nat are the Verus mathematical integer types.
var intSuffixes = map[string]bool{
	"u8": true, "u16": true, "u32": true, "u64": true, "u128": true, "usize": true,
	"i8": true, "i16": true, "i32": true, "i64": true, "i128": true, "isize": true,
	"int": true, "nat": true,
}

var floatSuffixes = map[string]bool{"f32": true, "f64": true}

// scanNumber supports 0x/0o/0b prefixes, '_' separators, fractions,
// exponents and suffixes. Directly after '.', only a bare decimal integer
// is scanned so that tuple fields like x.0.1 lex as x . 0 . 1.
func (lx *Lexer) scanNumber() token.Token {
	start := lx.cursor.Mark()

	if lx.prev == token.Dot {
		for isDec(lx.cursor.Peek()) {
			lx.cursor.Bump()
		}
		return lx.emit(token.IntLit, start)
	}

	kind := token.IntLit
	radix := byte(10)
	if lx.cursor.Peek() == '0' {
		switch lx.cursor.PeekAt(1) {
		case 'x', 'X':
			radix = 16
		case 'o', 'O':
			radix = 8
		case 'b', 'B':
			radix = 2
		}
	}

	if radix != 10 {
		lx.cursor.Bump()
		lx.cursor.Bump()
		digits := 0
		for {
			b := lx.cursor.Peek()
			if b == '_' {
				lx.cursor.Bump()
				continue
			}
			if !digitOf(b, radix) {
				break
			}
			lx.cursor.Bump()
			digits++
		}
		if digits == 0 {
			lx.errLex(diag.LexBadNumber, lx.cursor.SpanFrom(start), "expected digits after radix prefix")
			return lx.emit(token.Invalid, start)
		}
	} else {
		lx.scanDecDigits()

		// fraction: "1.5", or "1." unless a method, field or range follows
		if lx.cursor.Peek() == '.' {
			next := lx.cursor.PeekAt(1)
			switch {
			case isDec(next):
				lx.cursor.Bump()
				lx.scanDecDigits()
				kind = token.FloatLit
			case next != '.' && !isIdentStartByte(next) && next < utf8RuneSelf:
				lx.cursor.Bump()
				kind = token.FloatLit
			}
		}

		if e := lx.cursor.Peek(); e == 'e' || e == 'E' {
			n := uint32(1)
			if s := lx.cursor.PeekAt(1); s == '+' || s == '-' {
				n = 2
			}
			if isDec(lx.cursor.PeekAt(n)) {
				for range n {
					lx.cursor.Bump()
				}
				lx.scanDecDigits()
				kind = token.FloatLit
			}
		}
	}

	if lx.atIdentStart() {
		suffixStart := lx.cursor.Mark()
		lx.bumpRune()
		lx.scanIdentTail()
		sp := lx.cursor.SpanFrom(suffixStart)
		suffix := string(lx.file.Content[sp.Start:sp.End])
		valid := floatSuffixes[suffix] || (kind == token.IntLit && intSuffixes[suffix])
		if !valid {
			lx.errLex(diag.LexBadNumberSuffix, sp, "invalid suffix '"+suffix+"' for number literal")
			return lx.emit(token.Invalid, start)
		}
		if floatSuffixes[suffix] {
			kind = token.FloatLit
		}
	}
	return lx.emit(kind, start)
}

func (lx *Lexer) scanDecDigits() {
	for isDec(lx.cursor.Peek()) || lx.cursor.Peek() == '_' {
		lx.cursor.Bump()
	}
}

func digitOf(b, radix byte) bool {
	switch radix {
	case 16:
		return isHex(b)
	case 8:
		return isOct(b)
	case 2:
		return isBin(b)
	}
	return isDec(b)
}
