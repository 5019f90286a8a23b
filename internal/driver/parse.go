package driver

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"verusyn/internal/ast"
	"verusyn/internal/diag"
	"verusyn/internal/partition"
	"verusyn/internal/source"
	"verusyn/internal/trace"
)

type ParseResult struct {
	FileSet *source.FileSet
	File    *source.File
	// Source holds the segments split so far; on failure it stops at the
	// block that failed.
	Source *ast.SourceFile
	Bag    *diag.Bag
	// Err is the lexical or syntax error that stopped the file, if any.
	Err *diag.Error
}

// OK reports whether every verus block parsed.
func (r *ParseResult) OK() bool { return r.Err == nil }

// Parse loads path and splits it into parsed verus blocks. The error is
// only for I/O; parse failures land in ParseResult.Err and Bag.
func Parse(ctx context.Context, path string, opts Options) (*ParseResult, error) {
	fs := source.NewFileSet()
	id, err := fs.Load(path)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}
	return ParseFile(ctx, fs, fs.Get(id), opts), nil
}

// ParseFile partitions and parses a file already in fs.
func ParseFile(ctx context.Context, fs *source.FileSet, file *source.File, opts Options) *ParseResult {
	tracer := trace.FromContext(ctx)
	fileSpan := trace.Begin(tracer, trace.ScopeFile, "file:"+file.Path, trace.ParentSpan(ctx))

	bag := diag.NewBag(opts.maxDiagnostics())
	res := &ParseResult{FileSet: fs, File: file, Bag: bag}

	phase := trace.Begin(tracer, trace.ScopePhase, "partition", fileSpan.ID())
	sf, err := partition.Split(file, partition.Options{
		Parser:   opts.parserOptions(),
		Reporter: diag.BagReporter{Bag: bag},
		Timer:    opts.Timer,
	})
	res.Source = sf
	if err != nil {
		var de *diag.Error
		if !errors.As(err, &de) {
			de = diag.NewError(diag.Diagnostic{Severity: diag.SevError, Code: diag.UnknownCode, Message: err.Error()})
		}
		res.Err = de
	}

	blocks := sf.Blocks()
	phase.WithExtra("blocks", strconv.Itoa(len(blocks)))
	opts.Timer.Add("partition", phase.End(status(res.Err)))

	for i, seg := range blocks {
		trace.Point(tracer, trace.ScopeBlock, "block",
			fmt.Sprintf("#%d %s items=%d", i, seg.Range, len(seg.Items)), fileSpan.ID())
	}
	fileSpan.End(status(res.Err))
	return res
}

func status(err *diag.Error) string {
	if err == nil {
		return "ok"
	}
	return err.Code.ID()
}

// Counts returns the number of verus blocks and root items parsed.
func (r *ParseResult) Counts() (blocks, items int) {
	if r.Source == nil {
		return 0, 0
	}
	for _, seg := range r.Source.Blocks() {
		blocks++
		items += len(seg.Items)
	}
	return blocks, items
}
