package diagfmt

// PathMode specifies how file paths are displayed.
type PathMode uint8

const (
	// PathModeAuto keeps short or relative paths and shortens long absolute ones.
	PathModeAuto PathMode = iota
	PathModeAbsolute
	PathModeRelative // relative to BaseDir, or the working directory
	PathModeBasename
)

// ParsePathMode accepts auto, absolute, relative and basename.
func ParsePathMode(s string) (PathMode, bool) {
	switch s {
	case "", "auto":
		return PathModeAuto, true
	case "absolute":
		return PathModeAbsolute, true
	case "relative":
		return PathModeRelative, true
	case "basename":
		return PathModeBasename, true
	}
	return PathModeAuto, false
}

// PrettyOpts configures pretty-printing of diagnostics.
type PrettyOpts struct {
	Color     bool
	Context   int // source lines shown before the primary line
	PathMode  PathMode
	BaseDir   string
	ShowNotes bool
	ShowRules bool // print the grammar rule stack
}

// JSONOpts configures JSON output of diagnostics.
type JSONOpts struct {
	IncludePositions bool
	PathMode         PathMode
	BaseDir          string
	Max              int // truncates output only; 0 is unlimited
	IncludeNotes     bool
	IncludeRules     bool
}

// TreeOpts configures syntax tree dumps.
type TreeOpts struct {
	// Tokens includes token leaves; without it only nodes are shown.
	Tokens bool
	// Trivia includes leading comments of tokens.
	Trivia bool
	// Positions adds line:col to spans.
	Positions bool
}
