package orchestrator

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	gitignore "github.com/sabhiram/go-gitignore"
)

// ResolveFiles expands glob patterns into a sorted, deduplicated list of
// absolute file paths. Directories match recursively. Exclude patterns use
// gitignore syntax and always win over includes. Zero surviving files is
// ErrNoFilesFound.
func ResolveFiles(patterns, exclude []string) ([]string, error) {
	if len(patterns) == 0 {
		return nil, ErrNoFilesFound
	}

	matcher := gitignore.CompileIgnoreLines(exclude...)

	seen := make(map[string]struct{})

	for _, pattern := range patterns {
		matches, err := expandPattern(pattern)
		if err != nil {
			return nil, err
		}

		for _, match := range matches {
			abs, err := filepath.Abs(match)
			if err != nil {
				return nil, fmt.Errorf("absolute path for %s: %w", match, err)
			}

			if matcher.MatchesPath(match) || matcher.MatchesPath(abs) {
				continue
			}

			seen[abs] = struct{}{}
		}
	}

	if len(seen) == 0 {
		return nil, ErrNoFilesFound
	}

	files := make([]string, 0, len(seen))
	for path := range seen {
		files = append(files, path)
	}

	sort.Strings(files)

	return files, nil
}

// expandPattern resolves one pattern to regular files. A `**` segment is
// handled by walking from the pattern's fixed prefix; plain globs go through
// filepath.Glob; a bare directory matches its whole subtree.
func expandPattern(pattern string) ([]string, error) {
	if strings.Contains(pattern, "**") {
		return expandRecursive(pattern)
	}

	matches, err := filepath.Glob(pattern)
	if err != nil {
		return nil, fmt.Errorf("glob %s: %w", pattern, err)
	}

	var files []string

	for _, match := range matches {
		info, err := os.Stat(match)
		if err != nil {
			continue
		}

		if info.IsDir() {
			sub, err := walkFiles(match, nil)
			if err != nil {
				return nil, err
			}

			files = append(files, sub...)

			continue
		}

		files = append(files, match)
	}

	return files, nil
}

// expandRecursive handles `prefix/**/suffix` patterns: walk the prefix and
// match each file's path relative to it against the remainder, segment by
// segment. The suffix may span directories and contain further `**`.
func expandRecursive(pattern string) ([]string, error) {
	idx := strings.Index(pattern, "**")

	root := strings.TrimSuffix(strings.TrimSuffix(pattern[:idx], "/"), string(filepath.Separator))
	if root == "" {
		root = "."
	}

	suffix := strings.TrimPrefix(pattern[idx+2:], string(filepath.Separator))
	suffix = strings.TrimPrefix(suffix, "/")

	segments := []string{"**"}
	if suffix != "" {
		segments = append(segments, strings.Split(filepath.ToSlash(suffix), "/")...)
	}

	return walkFiles(root, segments)
}

// walkFiles collects regular files under root whose root-relative path
// matches the pattern segments (nil matches everything).
func walkFiles(root string, segments []string) ([]string, error) {
	var files []string

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if d.IsDir() {
			// Hidden directories are never analysis targets.
			if name := d.Name(); name != "." && strings.HasPrefix(name, ".") {
				return filepath.SkipDir
			}

			return nil
		}

		if segments != nil {
			rel, relErr := filepath.Rel(root, path)
			if relErr != nil {
				return relErr
			}

			if !matchSegments(segments, strings.Split(filepath.ToSlash(rel), "/")) {
				return nil
			}
		}

		files = append(files, path)

		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk %s: %w", root, err)
	}

	return files, nil
}

// matchSegments reports whether the path segments satisfy the pattern
// segments. A `**` pattern segment matches zero or more path segments; every
// other segment matches one path segment via filepath.Match.
func matchSegments(pattern, path []string) bool {
	if len(pattern) == 0 {
		return len(path) == 0
	}

	if pattern[0] == "**" {
		for skip := 0; skip <= len(path); skip++ {
			if matchSegments(pattern[1:], path[skip:]) {
				return true
			}
		}

		return false
	}

	if len(path) == 0 {
		return false
	}

	ok, err := filepath.Match(pattern[0], path[0])
	if err != nil || !ok {
		return false
	}

	return matchSegments(pattern[1:], path[1:])
}
