// Package filters provides FilterFunc predicates usable as the
// consumer-supplied filter passed to watcher.Open, following the same
// path-suffix and path-component style as the teacher's TemplFilter,
// GoFilter, NoVendorFilter, and NoGitFilter, generalized to glob patterns
// via doublestar and to a configurable ignore-dir set following
// watchgod's BaseFilter/DefaultFilter split between ignored directory
// components and ignored entity-name patterns.
package filters

import (
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/conneroisu/watchfiles-go/internal/watcher"
)

// DefaultIgnoreDirs is the set of directory-name path components that a
// DefaultFilter excludes regardless of depth, ported from watchgod's
// default_ignore_dirs.
var DefaultIgnoreDirs = []string{
	"__pycache__", ".git", ".hg", ".svn", ".tox", ".venv", "venv",
	"site-packages", ".idea", "node_modules", "vendor",
}

// DefaultIgnorePatterns is the set of doublestar glob patterns matched
// against an entity's base name, ported from watchgod's
// default_ignore_entity_patterns (the original's regexes are restated as
// globs: "*.pyc", "*.sw?", editor swap/backup files, "~" backups, macOS
// metadata, and Go's own *_test.go convention generalized from the
// teacher's NoTestFilter).
var DefaultIgnorePatterns = []string{
	"*.pyc", "*.pyo", "*.pyd",
	"*.sw?",
	"*~",
	".#*",
	".DS_Store",
	"flycheck_*",
	"*_test.go",
}

// BaseFilter excludes any path with an ignored directory component, then
// applies glob patterns against the final path segment.
type BaseFilter struct {
	ignoreDirs map[string]bool
	patterns   []string
}

// NewBaseFilter builds a BaseFilter from explicit ignore-dir and
// ignore-pattern lists.
func NewBaseFilter(ignoreDirs, ignorePatterns []string) *BaseFilter {
	dirs := make(map[string]bool, len(ignoreDirs))
	for _, d := range ignoreDirs {
		dirs[d] = true
	}
	return &BaseFilter{ignoreDirs: dirs, patterns: append([]string(nil), ignorePatterns...)}
}

// NewDefaultFilter builds a BaseFilter from DefaultIgnoreDirs and
// DefaultIgnorePatterns.
func NewDefaultFilter() *BaseFilter {
	return NewBaseFilter(DefaultIgnoreDirs, DefaultIgnorePatterns)
}

// Allow implements watcher.FilterFunc. kind is unused by BaseFilter;
// decisions are purely path-based, matching the teacher's filters.
func (f *BaseFilter) Allow(_ watcher.ChangeKind, path string) bool {
	cleaned := filepath.ToSlash(strings.TrimPrefix(filepath.ToSlash(path), "/"))
	for _, part := range strings.Split(cleaned, "/") {
		if f.ignoreDirs[part] {
			return false
		}
	}

	base := filepath.Base(path)
	for _, pattern := range f.patterns {
		if ok, _ := doublestar.Match(pattern, base); ok {
			return false
		}
	}
	return true
}

// FilterFunc adapts f to a watcher.FilterFunc value.
func (f *BaseFilter) FilterFunc() watcher.FilterFunc {
	return f.Allow
}

// ExtensionFilter wraps a BaseFilter to additionally require the path end
// with one of a set of extensions, mirroring watchgod's PythonFilter
// layered over DefaultFilter and the teacher's narrower TemplFilter/
// GoFilter single-extension predicates generalized to a list.
type ExtensionFilter struct {
	base       *BaseFilter
	extensions []string
}

// NewExtensionFilter builds an ExtensionFilter requiring one of
// extensions (each including its leading dot, e.g. ".go") layered over a
// DefaultFilter.
func NewExtensionFilter(extensions ...string) *ExtensionFilter {
	return &ExtensionFilter{base: NewDefaultFilter(), extensions: extensions}
}

// Allow implements watcher.FilterFunc.
func (f *ExtensionFilter) Allow(kind watcher.ChangeKind, path string) bool {
	if !f.base.Allow(kind, path) {
		return false
	}
	if len(f.extensions) == 0 {
		return true
	}
	ext := filepath.Ext(path)
	for _, want := range f.extensions {
		if ext == want {
			return true
		}
	}
	return false
}

// FilterFunc adapts f to a watcher.FilterFunc value.
func (f *ExtensionFilter) FilterFunc() watcher.FilterFunc {
	return f.Allow
}

// GoFilter allows only non-test, non-vendored, non-git .go files, the
// composition of the teacher's GoFilter, NoTestFilter, NoVendorFilter,
// and NoGitFilter into a single predicate.
func GoFilter() watcher.FilterFunc {
	return NewExtensionFilter(".go").FilterFunc()
}
