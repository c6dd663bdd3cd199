package site

import (
	"errors"
	"io/fs"
	"path"
	"path/filepath"

	"github.com/bmatcuk/doublestar/v4"
)

// Filter decides which public-directory files are served and exported.
type Filter struct {
	include []string
	exclude []string
}

// NewFilter returns a filter over slash-separated relative paths. An empty
// include list admits everything.
func NewFilter(include, exclude []string) *Filter {
	return &Filter{include: include, exclude: exclude}
}

// Match reports whether rel is included and not excluded.
func (f *Filter) Match(rel string) bool {
	rel = filepath.ToSlash(rel)
	if len(f.include) > 0 && !matchesAny(rel, f.include) {
		return false
	}
	return !matchesAny(rel, f.exclude)
}

// Files returns the matching regular files under root, relative to root.
// A missing root yields no files.
func (f *Filter) Files(root string) ([]string, error) {
	var out []string
	err := filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			if p == root && errors.Is(err, fs.ErrNotExist) {
				return fs.SkipAll
			}
			return err
		}
		if d.IsDir() || !d.Type().IsRegular() {
			return nil
		}
		rel, err := filepath.Rel(root, p)
		if err != nil {
			return err
		}
		if f.Match(rel) {
			out = append(out, filepath.ToSlash(rel))
		}
		return nil
	})
	return out, err
}

// matchesAny tries each pattern against the full path and the base name.
func matchesAny(rel string, patterns []string) bool {
	base := path.Base(rel)
	for _, pattern := range patterns {
		pattern = filepath.ToSlash(pattern)
		if ok, err := doublestar.Match(pattern, rel); err == nil && ok {
			return true
		}
		if ok, err := doublestar.Match(pattern, base); err == nil && ok {
			return true
		}
	}
	return false
}
