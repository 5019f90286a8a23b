package driver

import (
	"context"
	"errors"
	"fmt"

	"verusyn/internal/diag"
	"verusyn/internal/lexer"
	"verusyn/internal/source"
	"verusyn/internal/token"
	"verusyn/internal/trace"
)

type TokenizeResult struct {
	FileSet *source.FileSet
	File    *source.File
	// Tokens ends with EOF unless Err is set.
	Tokens []token.Token
	// Range is the lexed region of File.
	Range source.Span
	Bag   *diag.Bag
	Err   *diag.Error
}

// Tokenize lexes path. With block < 0 the whole file is lexed; otherwise
// only the block-th verus block (0-based), which requires the file to
// split cleanly.
func Tokenize(ctx context.Context, path string, block int, opts Options) (*TokenizeResult, error) {
	fs := source.NewFileSet()
	id, err := fs.Load(path)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}
	file := fs.Get(id)
	bag := diag.NewBag(opts.maxDiagnostics())
	res := &TokenizeResult{
		FileSet: fs,
		File:    file,
		Bag:     bag,
		Range:   source.Span{File: file.ID, End: file.Size()},
	}

	if block >= 0 {
		parsed := ParseFile(ctx, fs, file, opts)
		if parsed.Err != nil {
			bag.Merge(parsed.Bag)
			res.Err = parsed.Err
			return res, nil
		}
		blocks := parsed.Source.Blocks()
		if block >= len(blocks) {
			return nil, fmt.Errorf("%s: block %d requested, file has %d verus blocks", path, block, len(blocks))
		}
		res.Range = blocks[block].Range
	}

	span := trace.Begin(trace.FromContext(ctx), trace.ScopePhase, "lex", trace.ParentSpan(ctx))
	defer opts.Timer.Track("lex")()
	toks, err := lexer.TokenizeRange(file, res.Range.Start, res.Range.End, lexer.Options{Reporter: diag.BagReporter{Bag: bag}})
	res.Tokens = toks
	if err != nil {
		var de *diag.Error
		if errors.As(err, &de) {
			res.Err = de
		}
	}
	span.WithExtra("tokens", fmt.Sprint(len(toks))).End(status(res.Err))
	return res, nil
}
