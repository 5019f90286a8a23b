// Package ast holds the concrete syntax tree produced by the parser.
//
// Nodes live in an arena owned by a Tree and are addressed by NodeID.
// A node has a rule Kind, a byte span and an ordered list of children;
// each child is either another node or a token, and may carry a Tag
// naming its role (condition, body, requires clause, ...). Tokens keep
// their leading trivia, so comments stay attached to the tree.
//
// A SourceFile describes how one input file splits into ordinary text
// and verus! blocks.
package ast
