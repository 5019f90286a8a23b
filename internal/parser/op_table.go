package parser

import (
	"verusyn/internal/token"
)

// Binary operator precedence. Higher binds tighter. As in Verus, the
// chained &&& and ||| sit below the implication family, not at && and ||.
const (
	precAssignment     = 1  // = += -= *= /= %= ^= &= |= <<= >>=
	precRange          = 2  // .. ..=
	precBigOr          = 3  // |||
	precBigAnd         = 4  // &&&
	precEquiv          = 5  // <==>
	precExplies        = 6  // <==
	precImplies        = 7  // ==>
	precLogicalOr      = 8  // ||
	precLogicalAnd     = 9  // &&
	precComparison     = 10 // == != < <= > >= === !== =~= =~~=
	precBitwiseOr      = 11 // |
	precBitwiseXor     = 12 // ^
	precBitwiseAnd     = 13 // &
	precShift          = 14 // << >>
	precAdditive       = 15 // + -
	precMultiplicative = 16 // * / %
)

// binaryPrec returns the precedence of kind and whether it is
// right-associative. A precedence of -1 means kind is not a binary operator.
func binaryPrec(kind token.Kind) (int, bool) {
	switch kind {
	case token.Eq, token.PlusEq, token.MinusEq, token.StarEq, token.SlashEq, token.PercentEq,
		token.CaretEq, token.AmpEq, token.PipeEq, token.ShlEq, token.ShrEq:
		return precAssignment, true

	case token.DotDot, token.DotDotEq:
		return precRange, false

	case token.OrOrOr:
		return precBigOr, false
	case token.AndAndAnd:
		return precBigAnd, false
	case token.Iff:
		return precEquiv, false
	case token.Explies:
		return precExplies, false
	case token.Implies:
		return precImplies, true

	case token.OrOr:
		return precLogicalOr, false
	case token.AndAnd:
		return precLogicalAnd, false

	case token.EqEq, token.Ne, token.Lt, token.Le, token.Gt, token.Ge,
		token.EqEqEq, token.NeEq, token.ExtEq, token.ExtDeepEq:
		return precComparison, false

	case token.Pipe:
		return precBitwiseOr, false
	case token.Caret:
		return precBitwiseXor, false
	case token.Amp:
		return precBitwiseAnd, false
	case token.Shl, token.Shr:
		return precShift, false
	case token.Plus, token.Minus:
		return precAdditive, false
	case token.Star, token.Slash, token.Percent:
		return precMultiplicative, false

	default:
		return -1, false
	}
}

func isAssignOp(kind token.Kind) bool {
	prec, _ := binaryPrec(kind)
	return prec == precAssignment
}

func isRangeOp(kind token.Kind) bool {
	return kind == token.DotDot || kind == token.DotDotEq
}
