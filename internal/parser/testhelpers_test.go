package parser

import (
	"errors"
	"testing"

	"verusyn/internal/ast"
	"verusyn/internal/diag"
	"verusyn/internal/lexer"
	"verusyn/internal/source"
)

type entry func(*Parser) (ast.NodeID, error)

var (
	entryExpr    entry = (*Parser).ParseExpr
	entryItems   entry = (*Parser).ParseItems
	entryBlock   entry = (*Parser).ParseBlock
	entryType    entry = (*Parser).ParseType
	entryPattern entry = (*Parser).ParsePattern
)

// parseInput lexes src and runs one entry point over it.
func parseInput(t *testing.T, src string, run entry, opts Options) (*ast.Tree, ast.NodeID, error) {
	t.Helper()
	fs := source.NewFileSet()
	file := fs.Get(fs.AddVirtual("test.rs", []byte(src)))
	toks, err := lexer.Tokenize(file, lexer.Options{})
	if err != nil {
		t.Fatalf("lex %q: %v", src, err)
	}
	tree := ast.NewTree(file, 0)
	id, err := run(New(tree, toks, opts))
	return tree, id, err
}

// mustParse fails the test unless src parses.
func mustParse(t *testing.T, src string, run entry) (*ast.Tree, ast.NodeID) {
	t.Helper()
	tree, id, err := parseInput(t, src, run, Options{})
	if err != nil {
		t.Fatalf("parse %q: %v", src, err)
	}
	return tree, id
}

// parseError fails the test unless src is rejected, and returns the error.
func parseError(t *testing.T, src string, run entry) *diag.Error {
	t.Helper()
	tree, id, err := parseInput(t, src, run, Options{})
	if err == nil {
		t.Fatalf("parse %q: expected an error, got %s", src, tree.Sexpr(id))
	}
	var de *diag.Error
	if !errors.As(err, &de) {
		t.Fatalf("parse %q: error %T is not *diag.Error", src, err)
	}
	return de
}

// opText returns the operator token of a binary-like node.
func opText(tree *ast.Tree, id ast.NodeID) string {
	c, ok := tree.Child(id, ast.TagOp)
	if !ok || c.IsNode() {
		return ""
	}
	return c.Tok.Text
}
