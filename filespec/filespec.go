// Package filespec parses the file specs and tag lists of task definitions.
//
// A file spec is a ';' separated list of tag names (#Name), paths and
// wildcard patterns relative to a base directory. A tag list is a ';'
// separated list of tag names only.
package filespec

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/factorysh/solsta/task"
	zg "github.com/mattn/go-zglob"
)

const (
	separator = ";"
	tagPrefix = "#"
)

func split(spec string) []string {
	tokens := make([]string, 0)
	for _, token := range strings.Split(spec, separator) {
		token = strings.TrimSpace(token)
		if token != "" {
			tokens = append(tokens, token)
		}
	}
	return tokens
}

// IsTagName tells if a token references a tag
func IsTagName(token string) bool {
	return len(token) > len(tagPrefix) && strings.HasPrefix(token, tagPrefix)
}

// FindTagNamesFromFilespec returns the tags referenced by a file spec
func FindTagNamesFromFilespec(spec string) []string {
	tags := make([]string, 0)
	for _, token := range split(spec) {
		if IsTagName(token) {
			tags = append(tags, token)
		}
	}
	return tags
}

// FindTagNamesFromList returns the tags of a tag list, ignoring anything else
func FindTagNamesFromList(list string) []string {
	return FindTagNamesFromFilespec(list)
}

// ValidateTagList checks that every entry of a tag list is a tag name
func ValidateTagList(list string) []error {
	errs := make([]error, 0)
	for _, token := range split(list) {
		if !IsTagName(token) {
			errs = append(errs, fmt.Errorf("Tag name %q must start with %s", token, tagPrefix))
		}
	}
	return errs
}

// IsPattern tells if a token has wildcards
func IsPattern(token string) bool {
	return strings.ContainsAny(token, "*?[") || strings.Contains(token, "...")
}

// Resolve expands a file spec into files. Tags are read from tags, patterns
// and paths are relative to base.
func Resolve(base, spec string, tags task.TagMap) (task.FileSet, error) {
	files := task.NewFileSet()
	for _, token := range split(spec) {
		if IsTagName(token) {
			fs, ok := tags[token]
			if !ok {
				return nil, fmt.Errorf("Unknown tag %s in %q", token, spec)
			}
			files.Union(fs)
			continue
		}
		if !IsPattern(token) {
			files.Add(task.NewFileReference(base, token))
			continue
		}
		matches, err := glob(base, token)
		if err != nil {
			return nil, err
		}
		for _, m := range matches {
			files.Add(m)
		}
	}
	return files, nil
}

func glob(base, pattern string) ([]task.FileReference, error) {
	// "..." is the recursive wildcard of the definitions
	pattern = strings.Replace(pattern, "...", "**/*", -1)
	if !filepath.IsAbs(pattern) {
		pattern = filepath.Join(base, pattern)
	}
	matches, err := zg.Glob(pattern)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	files := make([]task.FileReference, 0, len(matches))
	for _, m := range matches {
		info, err := os.Stat(m)
		if err != nil || info.IsDir() {
			continue
		}
		files = append(files, task.NewFileReference(base, m))
	}
	return files, nil
}
