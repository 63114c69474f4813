package flatten

import (
	"sort"
	"strings"
)

// Stock configuration the tool ships with when no settings file exists.
var (
	DefaultIncludeExts = []string{".py", ".xml"}
	DefaultSkipDirs    = []string{"tests", "static", "__pycache__", "i18n"}
)

// Config controls which files a Flattener picks up.
//
// IncludeExts holds file suffixes, dot included (".py"), compared
// case-sensitively against file names. SkipDirs holds bare directory names
// (not paths) pruned before descent; matching is exact name equality against
// each path segment, never substring or pattern match.
type Config struct {
	IncludeExts []string
	SkipDirs    []string
}

// DefaultConfig returns a copy of the stock configuration.
func DefaultConfig() Config {
	return Config{
		IncludeExts: append([]string(nil), DefaultIncludeExts...),
		SkipDirs:    append([]string(nil), DefaultSkipDirs...),
	}
}

// Normalize applies set semantics to both lists: empty entries are dropped,
// duplicates collapse, and the result is sorted so equal sets compare equal
// regardless of input order. The receiver is not modified.
func (c Config) Normalize() Config {
	return Config{
		IncludeExts: normalizeSet(c.IncludeExts),
		SkipDirs:    normalizeSet(c.SkipDirs),
	}
}

func normalizeSet(values []string) []string {
	seen := make(map[string]bool, len(values))
	out := make([]string, 0, len(values))
	for _, v := range values {
		v = strings.TrimSpace(v)
		if v == "" || seen[v] {
			continue
		}
		seen[v] = true
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}

// matchesFile reports whether a file name ends with one of the include
// extensions.
func (c Config) matchesFile(name string) bool {
	for _, ext := range c.IncludeExts {
		if strings.HasSuffix(name, ext) {
			return true
		}
	}
	return false
}

// skipsDir reports whether a bare directory name is in the skip set.
func (c Config) skipsDir(name string) bool {
	for _, d := range c.SkipDirs {
		if name == d {
			return true
		}
	}
	return false
}
