package token

var keywords = map[string]Kind{
	"as":       KwAs,
	"assert":   KwAssert,
	"assume":   KwAssume,
	"async":    KwAsync,
	"await":    KwAwait,
	"box":      KwBox,
	"break":    KwBreak,
	"choose":   KwChoose,
	"const":    KwConst,
	"continue": KwContinue,
	"crate":    KwCrate,
	"dyn":      KwDyn,
	"else":     KwElse,
	"enum":     KwEnum,
	"exists":   KwExists,
	"extern":   KwExtern,
	"false":    KwFalse,
	"fn":       KwFn,
	"for":      KwFor,
	"forall":   KwForall,
	"if":       KwIf,
	"impl":     KwImpl,
	"in":       KwIn,
	"let":      KwLet,
	"loop":     KwLoop,
	"match":    KwMatch,
	"mod":      KwMod,
	"move":     KwMove,
	"mut":      KwMut,
	"pub":      KwPub,
	"ref":      KwRef,
	"return":   KwReturn,
	"self":     KwSelfValue,
	"Self":     KwSelfType,
	"static":   KwStatic,
	"struct":   KwStruct,
	"super":    KwSuper,
	"trait":    KwTrait,
	"true":     KwTrue,
	"type":     KwType,
	"unsafe":   KwUnsafe,
	"use":      KwUse,
	"where":    KwWhere,
	"while":    KwWhile,
	"yield":    KwYield,
}

var keywordText = func() map[Kind]string {
	out := make(map[Kind]string, len(keywords))
	for text, k := range keywords {
		out[k] = text
	}
	return out
}()

// LookupKeyword reports the keyword kind of ident. Keywords are case sensitive.
func LookupKeyword(ident string) (Kind, bool) {
	k, ok := keywords[ident]
	return k, ok
}

// KeywordText returns the spelling of keyword k.
func KeywordText(k Kind) string {
	return keywordText[k]
}
