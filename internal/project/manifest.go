package project

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

// Manifest is a decoded verusyn.toml.
//
//	[parse]
//	max_depth = 256
//	memoize = true
//	max_diagnostics = 100
//
//	[cache]
//	enabled = true
//	dir = ".verusyn-cache"
//
//	[check]
//	include = ["src/**/*.rs"]
//	exclude = ["target/**"]
//	jobs = 0
type Manifest struct {
	Path  string      `toml:"-"`
	Root  string      `toml:"-"`
	Parse ParseConfig `toml:"parse"`
	Cache CacheConfig `toml:"cache"`
	Check CheckConfig `toml:"check"`
}

type ParseConfig struct {
	MaxDepth       int  `toml:"max_depth"`
	Memoize        bool `toml:"memoize"`
	MaxDiagnostics int  `toml:"max_diagnostics"`
}

type CacheConfig struct {
	Enabled bool   `toml:"enabled"`
	Dir     string `toml:"dir"`
}

type CheckConfig struct {
	Include []string `toml:"include"`
	Exclude []string `toml:"exclude"`
	Jobs    int      `toml:"jobs"`
}

const (
	DefaultMaxDepth       = 256
	DefaultMaxDiagnostics = 100
	DefaultCacheDir       = ".verusyn-cache"
)

// Default is the configuration used without a manifest.
func Default() Manifest {
	return Manifest{
		Parse: ParseConfig{
			MaxDepth:       DefaultMaxDepth,
			Memoize:        true,
			MaxDiagnostics: DefaultMaxDiagnostics,
		},
		Cache: CacheConfig{Dir: DefaultCacheDir},
		Check: CheckConfig{Include: []string{"**/*.rs"}, Exclude: []string{"target/**"}},
	}
}

// Load decodes path over Default. Keys the file leaves out keep their
// default values; unknown keys are an error.
func Load(path string) (Manifest, error) {
	m := Default()
	meta, err := toml.DecodeFile(path, &m)
	if err != nil {
		return Manifest{}, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return Manifest{}, fmt.Errorf("%s: unknown keys: %s", path, strings.Join(keys, ", "))
	}
	if m.Parse.MaxDepth < 0 {
		return Manifest{}, fmt.Errorf("%s: [parse].max_depth must not be negative", path)
	}
	if m.Check.Jobs < 0 {
		return Manifest{}, fmt.Errorf("%s: [check].jobs must not be negative", path)
	}
	m.Path = path
	m.Root = filepath.Dir(path)
	if !filepath.IsAbs(m.Cache.Dir) {
		m.Cache.Dir = filepath.Join(m.Root, m.Cache.Dir)
	}
	return m, nil
}

// Discover finds and loads the manifest governing start. Without one it
// returns Default and ok=false.
func Discover(start string) (m Manifest, ok bool, err error) {
	path, ok, err := FindManifest(start)
	if err != nil {
		return Manifest{}, false, err
	}
	if !ok {
		return Default(), false, nil
	}
	m, err = Load(path)
	if err != nil {
		return Manifest{}, true, err
	}
	return m, true, nil
}
