package driver

import (
	"context"
	"fmt"
	"runtime"

	"golang.org/x/sync/errgroup"

	"verusyn/internal/ast"
	"verusyn/internal/diag"
	"verusyn/internal/project"
	"verusyn/internal/source"
	"verusyn/internal/trace"
)

// CheckResult is the outcome of one file in a directory check.
type CheckResult struct {
	Path   string
	FileID source.FileID
	Bag    *diag.Bag
	// Source is nil when the result came from the cache or the file
	// failed to load.
	Source *ast.SourceFile
	Blocks int
	Items  int
	Cached bool
	Failed bool
}

// CheckDir parses every selected file under root in parallel. Files are
// loaded up front so the FileSet is read-only while workers run. The
// returned error is a walk failure or cancellation; per-file problems
// are in each result's Bag.
func CheckDir(ctx context.Context, root string, opts Options) (*source.FileSet, []CheckResult, error) {
	if opts.Events != nil {
		defer close(opts.Events)
	}
	tracer := trace.FromContext(ctx)
	span := trace.Begin(tracer, trace.ScopeDriver, "check", trace.ParentSpan(ctx))
	ctx = trace.WithParent(ctx, span.ID())

	files, err := ListFiles(root, opts.Include, opts.Exclude)
	if err != nil {
		span.End("walk failed")
		return nil, nil, fmt.Errorf("list %s: %w", root, err)
	}
	for _, path := range files {
		emit(opts.Events, Event{File: path, Stage: StageQueued})
	}

	fileSet := source.NewFileSet()
	ids := make([]source.FileID, len(files))
	loadErrs := make([]error, len(files))
	stopLoad := opts.Timer.Track("load")
	for i, path := range files {
		ids[i], loadErrs[i] = fileSet.Load(path)
	}
	stopLoad()

	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}
	results := make([]CheckResult, len(files))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(1, min(jobs, len(files))))
	for i, path := range files {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			if loadErrs[i] != nil {
				results[i] = loadFailure(path, loadErrs[i], opts)
				emit(opts.Events, Event{File: path, Stage: StageLoad, Status: StatusError})
				return nil
			}
			results[i] = checkFile(gctx, fileSet, fileSet.Get(ids[i]), opts)
			return nil
		})
	}
	err = g.Wait()

	failed := 0
	for _, r := range results {
		if r.Failed {
			failed++
		}
	}
	span.WithExtra("files", fmt.Sprint(len(files))).WithExtra("failed", fmt.Sprint(failed))
	span.End("")
	return fileSet, results, err
}

func loadFailure(path string, err error, opts Options) CheckResult {
	bag := diag.NewBag(opts.maxDiagnostics())
	bag.Add(diag.Diagnostic{
		Severity: diag.SevError,
		Code:     diag.IOLoadFileError,
		Message:  "failed to load file: " + err.Error(),
	})
	return CheckResult{Path: path, Bag: bag, Failed: true}
}

func checkFile(ctx context.Context, fs *source.FileSet, file *source.File, opts Options) CheckResult {
	key := opts.cacheKey(file)
	if opts.Cache != nil {
		payload, ok, err := opts.Cache.Get(key)
		switch {
		case err != nil:
			bag := diag.NewBag(opts.maxDiagnostics())
			bag.Add(diag.Diagnostic{
				Severity: diag.SevWarning,
				Code:     diag.DriverCacheStale,
				Message:  "ignoring unreadable cache entry: " + err.Error(),
				Primary:  source.Span{File: file.ID},
			})
			res := parseAndStore(ctx, fs, file, opts, key)
			res.Bag.Merge(bag)
			return res
		case ok:
			bag := diag.NewBag(opts.maxDiagnostics())
			payload.restore(file.ID, bag)
			emit(opts.Events, Event{File: file.Path, Stage: StageParse, Status: StatusCached})
			return CheckResult{
				Path:   file.Path,
				FileID: file.ID,
				Bag:    bag,
				Blocks: payload.Blocks,
				Items:  payload.Items,
				Cached: true,
				Failed: bag.HasErrors(),
			}
		}
	}
	return parseAndStore(ctx, fs, file, opts, key)
}

func parseAndStore(ctx context.Context, fs *source.FileSet, file *source.File, opts Options, key project.Digest) CheckResult {
	emit(opts.Events, Event{File: file.Path, Stage: StagePartition, Status: StatusWorking})
	res := ParseFile(ctx, fs, file, opts)
	blocks, items := res.Counts()
	out := CheckResult{
		Path:   file.Path,
		FileID: file.ID,
		Bag:    res.Bag,
		Source: res.Source,
		Blocks: blocks,
		Items:  items,
		Failed: !res.OK(),
	}
	st := StatusDone
	if out.Failed {
		st = StatusError
	}
	emit(opts.Events, Event{File: file.Path, Stage: StageParse, Status: st})

	if opts.Cache != nil {
		if err := opts.Cache.Put(key, toPayload(file.Path, blocks, items, res.Bag)); err != nil {
			out.Bag.Add(diag.Diagnostic{
				Severity: diag.SevWarning,
				Code:     diag.IOCacheError,
				Message:  "cannot write cache entry: " + err.Error(),
				Primary:  source.Span{File: file.ID},
			})
		}
	}
	return out
}

// Totals sums blocks and items over results and counts failed files.
func Totals(results []CheckResult) (blocks, items, failed int) {
	for _, r := range results {
		blocks += r.Blocks
		items += r.Items
		if r.Failed {
			failed++
		}
	}
	return blocks, items, failed
}
