package parser

import (
	"testing"

	"verusyn/internal/ast"
	"verusyn/internal/diag"
)

func TestQuantifiers(t *testing.T) {
	tests := []struct {
		input    string
		params   int
		triggers int
	}{
		{"forall|i: int| 0 <= i ==> a[i] > 0", 1, 0},
		{"exists|x: int| x > 0", 1, 0},
		{"choose|x: int| x > 0", 1, 0},
		{"forall|x: int, y: int| x + y == y + x", 2, 0},
		{"forall|i: int| #![trigger a[i]] 0 <= i ==> a[i] > 0", 1, 1},
		{"forall|| true", 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			tree, root := mustParse(t, tt.input, entryExpr)
			if k := tree.Kind(root); k != ast.KindQuantifier {
				t.Fatalf("kind = %v, want Quantifier\n%s", k, tree.Sexpr(root))
			}
			params := tree.ChildNode(root, ast.TagParams)
			if got := len(tree.ChildNodes(params, ast.TagParams)); got != tt.params {
				t.Errorf("params = %d, want %d", got, tt.params)
			}
			if got := len(tree.ChildNodes(root, ast.TagAttr)); got != tt.triggers {
				t.Errorf("triggers = %d, want %d", got, tt.triggers)
			}
			if !tree.ChildNode(root, ast.TagBody).IsValid() {
				t.Error("missing body")
			}
		})
	}
}

func TestQuantifierBodyExtendsRight(t *testing.T) {
	tree, root := mustParse(t, "a && forall|x: int| p(x) ==> q(x)", entryExpr)
	if got := opText(tree, root); got != "&&" {
		t.Fatalf("root op = %q, want &&", got)
	}
	rhs := tree.ChildNode(root, ast.TagRhs)
	if k := tree.Kind(rhs); k != ast.KindQuantifier {
		t.Fatalf("rhs kind = %v, want Quantifier", k)
	}
	if got := opText(tree, tree.ChildNode(rhs, ast.TagBody)); got != "==>" {
		t.Errorf("quantifier body op = %q, want ==>", got)
	}
}

func TestQuantifierBodyNoStruct(t *testing.T) {
	for _, input := range []string{
		"forall|x: int| S { a: x } == y",
		"exists|x: int| S { a: x }.a > 0",
		"a && choose|x: int| S { a: x } == y",
	} {
		t.Run(input, func(t *testing.T) {
			err := parseError(t, input, entryExpr)
			if err.Code != diag.SynStructInCondition {
				t.Fatalf("code = %v, want SynStructInCondition (%v)", err.Code, err)
			}
		})
	}
	tree, root := mustParse(t, "forall|x: int| (S { a: x }) == y", entryExpr)
	if tree.Find(root, ast.KindStructLit) == ast.NoNodeID {
		t.Errorf("no struct literal in %s", tree.Sexpr(root))
	}
}

func TestAssertForms(t *testing.T) {
	tests := []struct {
		name  string
		input string
		kind  ast.Kind
		tags  []ast.Tag
	}{
		{"plain", "{ assert(x > 0); }", ast.KindAssertExpr, []ast.Tag{ast.TagCond}},
		{"by prover", "{ assert(x * x >= 0) by (nonlinear_arith); }", ast.KindAssertExpr, []ast.Tag{ast.TagCond, ast.TagProver}},
		{"by prover with requires", "{ assert(x * y >= 0) by (nonlinear_arith) requires x >= 0, y >= 0 { } }", ast.KindAssertExpr, []ast.Tag{ast.TagCond, ast.TagProver, ast.TagBody}},
		{"by block", "{ assert(x > 0) by { lemma(x); } }", ast.KindAssertExpr, []ast.Tag{ast.TagCond, ast.TagBody}},
		{"forall implies", "{ assert forall|x: int| x > 0 implies x >= 1 by { assert(x >= 1); } }", ast.KindAssertForall, []ast.Tag{ast.TagParams, ast.TagCond, ast.TagThen, ast.TagBody}},
		{"assume", "{ assume(false); }", ast.KindAssumeExpr, []ast.Tag{ast.TagCond}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tree, root := mustParse(t, tt.input, entryBlock)
			id := tree.Find(root, tt.kind)
			if id == ast.NoNodeID {
				t.Fatalf("no %v in %s", tt.kind, tree.Sexpr(root))
			}
			for _, tag := range tt.tags {
				if !tree.ChildNode(id, tag).IsValid() {
					t.Errorf("missing %s child in %s", tag, tree.Sexpr(id))
				}
			}
		})
	}
}

func TestAssertForallRequiresBy(t *testing.T) {
	parseError(t, "{ assert forall|x: int| x > 0; }", entryBlock)
}

func TestLoopClauses(t *testing.T) {
	src := `{
    let mut i = 0;
    while i < n
        invariant
            0 <= i <= n,
        invariant_except_break i >= 0,
        ensures i == n,
        decreases n - i,
    {
        i = i + 1;
    }
}`
	tree, root := mustParse(t, src, entryBlock)
	loop := tree.Find(root, ast.KindWhileExpr)
	if loop == ast.NoNodeID {
		t.Fatalf("no while loop in %s", tree.Sexpr(root))
	}
	if got := len(tree.ChildNodes(loop, ast.TagInvariant)); got != 2 {
		t.Errorf("invariants = %d, want 2", got)
	}
	for _, tag := range []ast.Tag{ast.TagEnsures, ast.TagDecreases, ast.TagBody} {
		if !tree.ChildNode(loop, tag).IsValid() {
			t.Errorf("missing %s", tag)
		}
	}
	if tree.Find(loop, ast.KindAssignStmt) == ast.NoNodeID {
		t.Error("loop body lost its assignment")
	}
}

func TestFnClauseForms(t *testing.T) {
	tests := []struct {
		name  string
		input string
		tag   ast.Tag
	}{
		{"opens invariants any", "fn f() opens_invariants any { }", ast.TagOpensInvariants},
		{"opens invariants none", "fn f() opens_invariants none { }", ast.TagOpensInvariants},
		{"opens invariants list", "fn f() opens_invariants [1, 2] { }", ast.TagOpensInvariants},
		{"no unwind", "fn f() no_unwind { }", ast.TagNoUnwind},
		{"no unwind when", "fn f(x: u8) no_unwind when x > 0 { }", ast.TagNoUnwind},
		{"decreases when via", "proof fn f(n: nat) decreases n when n > 0 via f_proof { }", ast.TagDecreases},
		{"spec checked", "spec(checked) fn f(x: int) -> int recommends x > 0 { x }", ast.TagRecommends},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tree, root := mustParse(t, tt.input, entryItems)
			fn := tree.ChildNodes(root, ast.TagItem)[0]
			if !tree.ChildNode(fn, tt.tag).IsValid() {
				t.Errorf("missing %s in %s", tt.tag, tree.Sexpr(fn))
			}
		})
	}
}

func TestProofBlockAndGhostLet(t *testing.T) {
	src := `{
    let ghost g = 1;
    let tracked t = T::new();
    proof {
        assert(g == 1);
    }
}`
	tree, root := mustParse(t, src, entryBlock)
	lets := 0
	tree.Walk(root, func(id ast.NodeID, _ int) bool {
		if tree.Kind(id) == ast.KindLetStmt {
			lets++
			if tree.Kind(tree.ChildNode(id, ast.TagMode)) != ast.KindDataMode {
				t.Errorf("let without data mode: %s", tree.Sexpr(id))
			}
		}
		return true
	})
	if lets != 2 {
		t.Errorf("lets = %d, want 2", lets)
	}
	if tree.Find(root, ast.KindProofBlock) == ast.NoNodeID {
		t.Error("no proof block")
	}
}

func TestBlockLikeStatements(t *testing.T) {
	// `if .. {}` as a statement does not continue into a call on `(a, b)`.
	tree, root := mustParse(t, "{ if c { } (a, b) }", entryBlock)
	if tree.Find(root, ast.KindCallExpr) != ast.NoNodeID {
		t.Errorf("block-like statement was called: %s", tree.Sexpr(root))
	}
	if k := tree.Kind(tree.ChildNode(root, ast.TagTail)); k != ast.KindTupleExpr {
		t.Errorf("tail kind = %v, want TupleExpr", k)
	}

	// A method call after a block-like expression still applies.
	tree, root = mustParse(t, "{ match x { _ => v }.len() }", entryBlock)
	if k := tree.Kind(tree.ChildNode(root, ast.TagTail)); k != ast.KindMethodCall {
		t.Errorf("tail kind = %v, want MethodCall", k)
	}

	err := parseError(t, "{ let x = 1 let y = 2; }", entryBlock)
	if err.Code != diag.SynExpectSemicolon {
		t.Errorf("code = %v, want SynExpectSemicolon", err.Code)
	}
}

func TestUnclosedDelimiter(t *testing.T) {
	err := parseError(t, "fn f() { let x = (1, 2;", entryItems)
	if err.Code != diag.SynUnclosedDelimiter && err.Code != diag.SynNoAlternative {
		t.Errorf("code = %v", err.Code)
	}
	err = parseError(t, "fn f() {", entryItems)
	if err.Code != diag.SynUnclosedDelimiter {
		t.Errorf("code = %v, want SynUnclosedDelimiter", err.Code)
	}
	if len(err.Notes) == 0 {
		t.Error("expected a note at the opening brace")
	}
}
