package driver

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// ListFiles returns the files under root selected by include and
// exclude, sorted. A root that is a file is returned as is. Patterns use
// doublestar syntax against slash-separated paths relative to root.
func ListFiles(root string, include, exclude []string) ([]string, error) {
	if len(include) == 0 {
		include = []string{"**/*.rs"}
	}
	for _, pattern := range slices.Concat(include, exclude) {
		if !doublestar.ValidatePattern(pattern) {
			return nil, fmt.Errorf("invalid glob %q", pattern)
		}
	}
	info, err := os.Stat(root)
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		return []string{root}, nil
	}
	var files []string
	err = filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(root, p)
		if err != nil {
			return err
		}
		rel = filepath.ToSlash(rel)
		if d.IsDir() {
			if rel != "." && (strings.HasPrefix(d.Name(), ".") || matchAny(exclude, rel)) {
				return filepath.SkipDir
			}
			return nil
		}
		if matchAny(include, rel) && !matchAny(exclude, rel) {
			files = append(files, p)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	slices.Sort(files)
	return files, nil
}

func matchAny(patterns []string, name string) bool {
	return slices.ContainsFunc(patterns, func(p string) bool {
		return MatchGlob(p, name)
	})
}

// MatchGlob matches a slash-separated name against pattern. A `**`
// segment matches zero or more segments; a malformed pattern matches
// nothing.
func MatchGlob(pattern, name string) bool {
	ok, err := doublestar.Match(pattern, name)
	return err == nil && ok
}
