// Package fuzztests holds Go fuzz harnesses for the lexer, the parser
// entry points and the partitioner. They guard against panics, hangs and
// broken structural invariants on arbitrary input.
package fuzztests
