package token

// Kind represents the category of a source token.
type Kind uint8

const (
	// Invalid indicates an erroneous token.
	Invalid Kind = iota
	// EOF marks the end of the lexed range.
	EOF

	// Ident is an identifier, including raw identifiers (r#name).
	Ident
	// Lifetime is 'name, '_ or 'static.
	Lifetime

	// IntLit is an integer literal, possibly with a width suffix.
	IntLit
	// FloatLit is a floating point literal.
	FloatLit
	CharLit       // 'a'
	ByteLit       // b'a'
	StringLit     // "..."
	ByteStringLit // b"..."
	RawStringLit  // r#"..."#
	RawByteStrLit // br#"..."#
	CStringLit    // c"..."

	keywordBeg
	KwAs
	KwAssert
	KwAssume
	KwAsync
	KwAwait
	KwBox
	KwBreak
	KwChoose
	KwConst
	KwContinue
	KwCrate
	KwDyn
	KwElse
	KwEnum
	KwExists
	KwExtern
	KwFalse
	KwFn
	KwFor
	KwForall
	KwIf
	KwImpl
	KwIn
	KwLet
	KwLoop
	KwMatch
	KwMod
	KwMove
	KwMut
	KwPub
	KwRef
	KwReturn
	KwSelfValue // self
	KwSelfType  // Self
	KwStatic
	KwStruct
	KwSuper
	KwTrait
	KwTrue
	KwType
	KwUnsafe
	KwUse
	KwWhere
	KwWhile
	KwYield
	keywordEnd

	punctBeg
	Plus         // +
	Minus        // -
	Star         // *
	Slash        // /
	Percent      // %
	Caret        // ^
	Bang         // !
	Amp          // &
	Pipe         // |
	AndAnd       // &&
	OrOr         // ||
	AndAndAnd    // &&&
	OrOrOr       // |||
	Shl          // <<
	Shr          // >>
	PlusEq       // +=
	MinusEq      // -=
	StarEq       // *=
	SlashEq      // /=
	PercentEq    // %=
	CaretEq      // ^=
	AmpEq        // &=
	PipeEq       // |=
	ShlEq        // <<=
	ShrEq        // >>=
	Eq           // =
	EqEq         // ==
	Ne           // !=
	Gt           // >
	Lt           // <
	Ge           // >=
	Le           // <=
	EqEqEq       // ===
	NeEq         // !==
	ExtEq        // =~=
	ExtDeepEq    // =~~=
	Implies      // ==>
	Explies      // <==
	Iff          // <==>
	At           // @
	Underscore   // _
	Dot          // .
	DotDot       // ..
	DotDotDot    // ...
	DotDotEq     // ..=
	Comma        // ,
	Semi         // ;
	Colon        // :
	PathSep      // ::
	RArrow       // ->
	FatArrow     // =>
	Pound        // #
	Dollar       // $
	Question     // ?
	Tilde        // ~
	LParen       // (
	RParen       // )
	LBrace       // {
	RBrace       // }
	LBracket     // [
	RBracket     // ]
	punctEnd
)

// IsKeyword reports whether k is a reserved keyword.
func (k Kind) IsKeyword() bool { return k > keywordBeg && k < keywordEnd }

// IsPunct reports whether k is punctuation or an operator.
func (k Kind) IsPunct() bool { return k > punctBeg && k < punctEnd }

// IsLiteral reports whether k is a literal (not counting true/false).
func (k Kind) IsLiteral() bool {
	switch k {
	case IntLit, FloatLit, CharLit, ByteLit, StringLit, ByteStringLit, RawStringLit, RawByteStrLit, CStringLit:
		return true
	default:
		return false
	}
}

var kindNames = map[Kind]string{
	Invalid:       "Invalid",
	EOF:           "EOF",
	Ident:         "Ident",
	Lifetime:      "Lifetime",
	IntLit:        "IntLit",
	FloatLit:      "FloatLit",
	CharLit:       "CharLit",
	ByteLit:       "ByteLit",
	StringLit:     "StringLit",
	ByteStringLit: "ByteStringLit",
	RawStringLit:  "RawStringLit",
	RawByteStrLit: "RawByteStrLit",
	CStringLit:    "CStringLit",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	if k.IsKeyword() {
		return "'" + keywordText[k] + "'"
	}
	if k.IsPunct() {
		return "'" + punctText[k] + "'"
	}
	return "Kind(?)"
}

// IsOpenDelim reports whether k is '(', '[' or '{'.
func (k Kind) IsOpenDelim() bool {
	return k == LParen || k == LBracket || k == LBrace
}

// IsCloseDelim reports whether k is ')', ']' or '}'.
func (k Kind) IsCloseDelim() bool {
	return k == RParen || k == RBracket || k == RBrace
}
