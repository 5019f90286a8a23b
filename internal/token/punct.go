package token

var punctText = map[Kind]string{
	Plus: "+", Minus: "-", Star: "*", Slash: "/", Percent: "%", Caret: "^",
	Bang: "!", Amp: "&", Pipe: "|", AndAnd: "&&", OrOr: "||",
	AndAndAnd: "&&&", OrOrOr: "|||", Shl: "<<", Shr: ">>",
	PlusEq: "+=", MinusEq: "-=", StarEq: "*=", SlashEq: "/=", PercentEq: "%=",
	CaretEq: "^=", AmpEq: "&=", PipeEq: "|=", ShlEq: "<<=", ShrEq: ">>=",
	Eq: "=", EqEq: "==", Ne: "!=", Gt: ">", Lt: "<", Ge: ">=", Le: "<=",
	EqEqEq: "===", NeEq: "!==", ExtEq: "=~=", ExtDeepEq: "=~~=",
	Implies: "==>", Explies: "<==", Iff: "<==>",
	At: "@", Underscore: "_", Dot: ".", DotDot: "..", DotDotDot: "...", DotDotEq: "..=",
	Comma: ",", Semi: ";", Colon: ":", PathSep: "::", RArrow: "->", FatArrow: "=>",
	Pound: "#", Dollar: "$", Question: "?", Tilde: "~",
	LParen: "(", RParen: ")", LBrace: "{", RBrace: "}", LBracket: "[", RBracket: "]",
}

var punctByText = func() map[string]Kind {
	out := make(map[string]Kind, len(punctText))
	for k, text := range punctText {
		out[text] = k
	}
	return out
}()

// MaxPunctLen is the length of the longest operator ("<==>", "=~~=").
const MaxPunctLen = 4

// LookupPunct returns the kind whose spelling is exactly text.
func LookupPunct(text string) (Kind, bool) {
	k, ok := punctByText[text]
	return k, ok
}

// LongestPunct returns the longest operator that prefixes text and its length.
func LongestPunct(text string) (Kind, int) {
	n := min(len(text), MaxPunctLen)
	for ; n > 0; n-- {
		if k, ok := punctByText[text[:n]]; ok {
			return k, n
		}
	}
	return Invalid, 0
}

// PunctText returns the spelling of punctuation kind k.
func PunctText(k Kind) string {
	return punctText[k]
}
