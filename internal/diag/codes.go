package diag

import (
	"fmt"
)

type Code uint16

const (
	UnknownCode Code = 0

	// lexical
	LexInfo                     Code = 1000
	LexUnknownChar              Code = 1001
	LexUnterminatedString       Code = 1002
	LexUnterminatedBlockComment Code = 1003
	LexBadNumber                Code = 1004
	LexBadNumberSuffix          Code = 1005
	LexUnterminatedChar         Code = 1006
	LexRawStringDelimiter       Code = 1007
	LexTokenTooLong             Code = 1008

	// syntax
	SynInfo                   Code = 2000
	SynNoAlternative          Code = 2001
	SynUnexpectedToken        Code = 2002
	SynUnclosedDelimiter      Code = 2003
	SynReservedKeyword        Code = 2004
	SynExpectSemicolon        Code = 2005
	SynExpectExpression       Code = 2006
	SynExpectType             Code = 2007
	SynExpectPattern          Code = 2008
	SynExpectItem             Code = 2009
	SynStructInCondition      Code = 2010
	SynUnterminatedVerusBlock Code = 2011
	SynTooDeep                Code = 2012
	SynTrailingInput          Code = 2013

	// driver
	IOLoadFileError  Code = 4001
	IOCacheError     Code = 4002
	DriverCacheStale Code = 4003
)

var codeDescription = map[Code]string{
	UnknownCode:                 "Unknown error",
	LexInfo:                     "Lexical information",
	LexUnknownChar:              "Unknown character",
	LexUnterminatedString:       "Unterminated string literal",
	LexUnterminatedBlockComment: "Unterminated block comment",
	LexBadNumber:                "Malformed numeric literal",
	LexBadNumberSuffix:          "Invalid numeric suffix",
	LexUnterminatedChar:         "Unterminated character literal",
	LexRawStringDelimiter:       "Raw string delimiter mismatch",
	LexTokenTooLong:             "Token too long",

	SynInfo:                   "Syntax information",
	SynNoAlternative:          "No alternative matched",
	SynUnexpectedToken:        "Unexpected token",
	SynUnclosedDelimiter:      "Unclosed delimiter",
	SynReservedKeyword:        "Reserved keyword used as identifier",
	SynExpectSemicolon:        "Expected ';'",
	SynExpectExpression:       "Expected expression",
	SynExpectType:             "Expected type",
	SynExpectPattern:          "Expected pattern",
	SynExpectItem:             "Expected item",
	SynStructInCondition:      "Struct literal not allowed here",
	SynUnterminatedVerusBlock: "Unterminated verus! block",
	SynTooDeep:                "Nesting too deep",
	SynTrailingInput:          "Unexpected input after last item",

	IOLoadFileError:  "Failed to load file",
	IOCacheError:     "Parse cache unavailable",
	DriverCacheStale: "Stale parse cache entry",
}

// IsLexical reports whether c belongs to the lexical error range.
func (c Code) IsLexical() bool { return c >= 1000 && c < 2000 }

// IsSyntax reports whether c belongs to the syntax error range.
func (c Code) IsSyntax() bool { return c >= 2000 && c < 3000 }

func (c Code) ID() string {
	switch ic := int(c); {
	case ic >= 1000 && ic < 2000:
		return fmt.Sprintf("LEX%04d", ic)
	case ic >= 2000 && ic < 3000:
		return fmt.Sprintf("SYN%04d", ic)
	case ic >= 4000 && ic < 5000:
		return fmt.Sprintf("IO%04d", ic)
	}
	return "E0000"
}

func (c Code) Title() string {
	desc, ok := codeDescription[c]
	if !ok {
		return codeDescription[UnknownCode]
	}
	return desc
}

func (c Code) String() string {
	return fmt.Sprintf("[%s]: %s", c.ID(), c.Title())
}
