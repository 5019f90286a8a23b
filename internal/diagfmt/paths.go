package diagfmt

import (
	"os"
	"path/filepath"

	"verusyn/internal/source"
)

func displayPath(f *source.File, mode PathMode, baseDir string) string {
	switch mode {
	case PathModeAbsolute:
		if f.Flags&source.FileVirtual != 0 {
			return f.Path
		}
		if abs, err := filepath.Abs(f.Path); err == nil {
			return filepath.ToSlash(abs)
		}
	case PathModeRelative:
		if baseDir == "" {
			if wd, err := os.Getwd(); err == nil {
				baseDir = wd
			}
		}
		abs, err := filepath.Abs(f.Path)
		if err != nil {
			return f.Path
		}
		if rel, err := filepath.Rel(baseDir, abs); err == nil {
			return filepath.ToSlash(rel)
		}
	case PathModeBasename:
		return source.BaseName(f.Path)
	case PathModeAuto:
		if len(f.Path) >= 40 && filepath.IsAbs(f.Path) {
			return source.BaseName(f.Path)
		}
	}
	return f.Path
}
