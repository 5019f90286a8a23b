package driver

import (
	"verusyn/internal/observ"
	"verusyn/internal/parser"
	"verusyn/internal/project"
)

// Options configures one driver run.
type Options struct {
	MaxDiagnostics int
	MaxDepth       int
	NoMemo         bool
	// Jobs bounds parallel file parses; <= 0 means GOMAXPROCS.
	Jobs int
	// Include and Exclude are slash-separated globs relative to the
	// checked directory. `**` matches any number of path segments.
	Include []string
	Exclude []string
	// Cache, when set, short-circuits unchanged files.
	Cache *DiskCache
	// Timer, when set, accumulates partition/lex/parse durations.
	Timer *observ.Timer
	// Events, when set, receives progress events. CheckDir closes it.
	Events chan<- Event
}

// FromManifest turns a project manifest into driver options.
func FromManifest(m project.Manifest) Options {
	return Options{
		MaxDiagnostics: m.Parse.MaxDiagnostics,
		MaxDepth:       m.Parse.MaxDepth,
		NoMemo:         !m.Parse.Memoize,
		Jobs:           m.Check.Jobs,
		Include:        m.Check.Include,
		Exclude:        m.Check.Exclude,
	}
}

func (o Options) maxDiagnostics() int {
	if o.MaxDiagnostics <= 0 {
		return project.DefaultMaxDiagnostics
	}
	return o.MaxDiagnostics
}

func (o Options) parserOptions() parser.Options {
	return parser.Options{MaxDepth: o.MaxDepth, NoMemo: o.NoMemo}
}
