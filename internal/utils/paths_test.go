package utils

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolvePaths(t *testing.T) {
	tests := []struct {
		name     string
		paths    []string
		baseDir  string
		expected []string
	}{
		{
			name:     "empty list",
			paths:    []string{},
			baseDir:  "/base",
			expected: nil,
		},
		{
			name:     "absolute paths unchanged",
			paths:    []string{"/abs/path1", "/abs/path2"},
			baseDir:  "/base",
			expected: []string{"/abs/path1", "/abs/path2"},
		},
		{
			name:     "mixed paths",
			paths:    []string{"/abs", "rel", "../parent"},
			baseDir:  "/base/sub",
			expected: []string{"/abs", "/base/sub/rel", "/base/parent"},
		},
		{
			name:     "no base dir",
			paths:    []string{"rel/a.yaml"},
			baseDir:  "",
			expected: []string{"rel/a.yaml"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := ResolvePaths(tt.paths, tt.baseDir)
			if tt.expected == nil {
				assert.Nil(t, result)
				return
			}
			for i := range tt.expected {
				tt.expected[i] = filepath.Clean(filepath.FromSlash(tt.expected[i]))
				result[i] = filepath.Clean(result[i])
			}
			assert.Equal(t, tt.expected, result)
		})
	}
}

func TestExpandGlobs(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"s1.yaml", "s2.yaml", "notes.txt"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("x"), 0o644))
	}

	got, err := ExpandGlobs([]string{"*.yaml", "s1.yaml", "missing.csv"}, dir)
	require.NoError(t, err)
	assert.Equal(t, []string{
		filepath.Join(dir, "s1.yaml"),
		filepath.Join(dir, "s2.yaml"),
		filepath.Join(dir, "missing.csv"),
	}, got)

	_, err = ExpandGlobs([]string{"*.json"}, dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no files match")

	_, err = ExpandGlobs([]string{"[.yaml"}, dir)
	require.Error(t, err)
}
