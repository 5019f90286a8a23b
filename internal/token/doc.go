// Package token defines lexical token kinds and trivia for verus blocks.
// Invariants:
//   - Token.Text is the exact source text of Token.Span.
//   - Whitespace and comments never appear in the main token stream; they are
//     kept as Leading trivia of the next significant token.
//   - Multi-character operators are lexed greedily ("maximal munch"). The
//     parser may split a glued operator such as ">>" when closing generics;
//     see Glue/Split helpers in punct.go.
//   - Verus contextual words (requires, ensures, spec, proof, ghost, ...)
//     are identifiers. Only the reserved words in keywords.go are keywords.
package token
