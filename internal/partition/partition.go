// Package partition splits a source file into ordinary text and verus!
// blocks, parsing each block with the item grammar.
//
// The scan works on raw bytes. It does not know about strings or
// comments in the surrounding code, so `verus!{` inside a string literal
// of ordinary code still opens a block.
package partition

import (
	"bytes"

	"fortio.org/safecast"

	"verusyn/internal/ast"
	"verusyn/internal/diag"
	"verusyn/internal/lexer"
	"verusyn/internal/observ"
	"verusyn/internal/parser"
	"verusyn/internal/source"
	"verusyn/internal/token"
)

var (
	macroName    = []byte("verus!")
	closeComment = []byte("// verus!")
)

type Options struct {
	Parser parser.Options
	// Reporter receives lexical and syntax diagnostics; may be nil.
	// It overrides Parser.Reporter when set.
	Reporter diag.Reporter
	// Timer, when set, accumulates "lex" and "parse" time per block.
	Timer *observ.Timer
}

// Split partitions file. Ordinary text is never an error; the first
// lexical or syntax error inside a verus block aborts the split and is
// returned as a *diag.Error.
func Split(file *source.File, opts Options) (*ast.SourceFile, error) {
	if opts.Reporter != nil {
		opts.Parser.Reporter = opts.Reporter
	}
	sf := &ast.SourceFile{
		File: file,
		Tree: ast.NewTree(file, uint(len(file.Content)/4)),
	}
	content := file.Content
	pos := 0
	for {
		start, open := findBlock(content, pos)
		if start < 0 {
			break
		}
		if start > pos {
			sf.Segments = append(sf.Segments, ordinary(file, pos, start))
		}
		seg, end, err := parseBlock(sf.Tree, file, start, open, opts)
		if err != nil {
			return sf, err
		}
		sf.Segments = append(sf.Segments, seg)
		pos = end
	}
	if pos < len(content) {
		sf.Segments = append(sf.Segments, ordinary(file, pos, len(content)))
	}
	return sf, nil
}

// findBlock returns the offset of the next `verus!` at or after from that
// is followed by optional whitespace and `{`, and the offset of that
// brace. It returns -1 when there is none.
func findBlock(content []byte, from int) (start, open int) {
	for from < len(content) {
		i := bytes.Index(content[from:], macroName)
		if i < 0 {
			return -1, -1
		}
		start = from + i
		j := start + len(macroName)
		for j < len(content) && isSpace(content[j]) {
			j++
		}
		if j < len(content) && content[j] == '{' {
			return start, j
		}
		from = start + 1
	}
	return -1, -1
}

func isSpace(b byte) bool {
	return b == ' ' || b == '\t' || b == '\n' || b == '\r' || b == '\f' || b == '\v'
}

func ordinary(file *source.File, start, end int) ast.Segment {
	return ast.Segment{
		Kind:  ast.OrdinaryCode,
		Range: span(file, start, end),
		Text:  string(file.Content[start:end]),
	}
}

// parseBlock lexes from `verus` up to the `}` that balances the opening
// brace and parses the result. It returns the segment and the offset
// just past it.
func parseBlock(tree *ast.Tree, file *source.File, start, open int, opts Options) (ast.Segment, int, error) {
	stop := opts.Timer.Track("lex")
	toks, closeEnd, err := blockTokens(file, start, open, opts.Parser.Reporter)
	stop()
	if err != nil {
		return ast.Segment{}, 0, err
	}
	stop = opts.Timer.Track("parse")
	id, err := parser.New(tree, toks, opts.Parser).ParseVerusMacro()
	stop()
	if err != nil {
		return ast.Segment{}, 0, err
	}
	end := absorbCloseComment(file.Content, closeEnd)
	return ast.Segment{
		Kind:  ast.VerusBlock,
		Range: span(file, start, end),
		Block: id,
		Items: tree.ChildNodes(id, ast.TagItem),
	}, end, nil
}

// blockTokens collects the tokens of one block, closing them with a
// synthetic EOF right after the balancing brace.
func blockTokens(file *source.File, start, open int, rep diag.Reporter) ([]token.Token, int, error) {
	lx := lexer.NewRange(file, offset(start), offset(len(file.Content)), lexer.Options{Reporter: rep})
	var (
		toks  []token.Token
		depth int
	)
	for {
		tok := lx.Next()
		if err := lx.Err(); err != nil {
			return nil, 0, err
		}
		if tok.Kind == token.EOF {
			return nil, 0, unterminated(file, start, open, tok.Span, rep)
		}
		toks = append(toks, tok)
		switch tok.Kind {
		case token.LBrace:
			depth++
		case token.RBrace:
			depth--
			if depth == 0 {
				eof := token.Token{Kind: token.EOF, Span: source.Span{File: file.ID, Start: tok.Span.End, End: tok.Span.End}}
				return append(toks, eof), int(tok.Span.End), nil
			}
		}
	}
}

func unterminated(file *source.File, start, open int, at source.Span, rep diag.Reporter) error {
	d := diag.Diagnostic{
		Severity: diag.SevError,
		Code:     diag.SynUnterminatedVerusBlock,
		Message:  "verus! block is never closed",
		Primary:  span(file, start, start+len(macroName)),
		Rules:    []string{"verus_block"},
		Notes: []diag.Note{
			{Span: span(file, open, open+1), Msg: "opening brace"},
			{Span: at, Msg: "end of file reached"},
		},
	}
	diag.ReportDiagnostic(rep, d)
	return diag.NewError(d)
}

// absorbCloseComment extends end over a `// verus!` comment that follows
// the closing brace on the same line, up to the end of that line.
func absorbCloseComment(content []byte, end int) int {
	i := end
	for i < len(content) && (content[i] == ' ' || content[i] == '\t') {
		i++
	}
	if !bytes.HasPrefix(content[i:], closeComment) {
		return end
	}
	i += len(closeComment)
	for i < len(content) && content[i] != '\n' && content[i] != '\r' {
		i++
	}
	return i
}

func span(file *source.File, start, end int) source.Span {
	return source.Span{File: file.ID, Start: offset(start), End: offset(end)}
}

// offset converts a content index; FileSet.Add already rejects files
// that do not fit in uint32.
func offset(i int) uint32 {
	off, err := safecast.Conv[uint32](i)
	if err != nil {
		panic(err)
	}
	return off
}
