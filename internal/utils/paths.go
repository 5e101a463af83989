// Package utils holds small path helpers shared by the commands.
package utils

import (
	"fmt"
	"path/filepath"
	"strings"
)

// ResolvePaths resolves a list of paths relative to a base directory.
// Absolute paths are returned unchanged, relative paths are resolved
// relative to the base directory.
func ResolvePaths(paths []string, baseDir string) []string {
	if len(paths) == 0 {
		return nil
	}

	resolved := make([]string, 0, len(paths))
	for _, path := range paths {
		resolved = append(resolved, ResolvePath(path, baseDir))
	}
	return resolved
}

// ResolvePath is ResolvePaths for a single path. An empty baseDir leaves
// relative paths as they are.
func ResolvePath(path, baseDir string) string {
	if filepath.IsAbs(path) || baseDir == "" {
		return path
	}
	return filepath.Join(baseDir, path)
}

// ExpandGlobs resolves each argument against baseDir and expands glob
// patterns such as "transcripts/*.yaml". Plain paths pass through even if
// they do not exist, so the caller reports them per file; a pattern that
// matches nothing is an error. Duplicates are dropped, first one wins.
func ExpandGlobs(args []string, baseDir string) ([]string, error) {
	seen := make(map[string]bool, len(args))
	var out []string
	add := func(p string) {
		if !seen[p] {
			seen[p] = true
			out = append(out, p)
		}
	}

	for _, arg := range ResolvePaths(args, baseDir) {
		if !strings.ContainsAny(arg, "*?[") {
			add(arg)
			continue
		}
		matches, err := filepath.Glob(arg)
		if err != nil {
			return nil, fmt.Errorf("bad pattern %q: %w", arg, err)
		}
		if len(matches) == 0 {
			return nil, fmt.Errorf("no files match %q", arg)
		}
		for _, m := range matches {
			add(m)
		}
	}
	return out, nil
}
