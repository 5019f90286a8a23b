package fuzztests

import (
	"io/fs"
	"os"
	"path/filepath"
	"testing"
)

const maxSeedBytes = 64 << 10

var builtinSeeds = []string{
	"",
	"verus! {}",
	"verus! { fn f() {} }",
	"use vstd::prelude::*;\nverus! {\nspec fn one() -> int { 1 }\n} // verus!\n",
	"verus! { proof fn l(n: nat) requires n > 0 ensures n >= 1 decreases n { assert(n >= 1); } }",
	"verus! { spec fn p(s: Seq<int>) -> bool { forall|i: int| #![trigger s[i]] 0 <= i < s.len() ==> s[i] > 0 } }",
	"verus! { fn f() { while i < n invariant i <= n, decreases n - i, { i = i + 1; } } }",
	"verus! { fn f() { let x = (1, 2; } }",
	"verus! { fn f() {",
	"verus! { let s = \"unterminated; }",
	"verus! { fn f(m: Map<K, Seq<Seq<u8>>>) {} }",
	"fn ordinary() { let v = verus!(x); }",
}

// addCorpusSeeds adds the built-in seeds and every .rs file under the
// repository testdata directory.
func addCorpusSeeds(f *testing.F) {
	for _, s := range builtinSeeds {
		f.Add([]byte(s))
	}
	root := filepath.Join("..", "..", "testdata")
	if _, err := os.Stat(root); err != nil {
		return
	}
	_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil || d.IsDir() || filepath.Ext(path) != ".rs" {
			return nil
		}
		// #nosec G304 -- path comes from repository testdata walk
		src, err := os.ReadFile(path)
		if err != nil {
			return nil
		}
		f.Add(clampSeed(src))
		return nil
	})
}

func clampSeed(src []byte) []byte {
	if len(src) <= maxSeedBytes {
		return append([]byte(nil), src...)
	}
	return append([]byte(nil), src[:maxSeedBytes]...)
}
