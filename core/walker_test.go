package core

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsSkippedEntry(t *testing.T) {
	tests := []struct {
		name     string
		entry    string
		expected bool
	}{
		{"hidden file", ".env", true},
		{"hidden dir", ".git", true},
		{"node modules", "node_modules", true},
		{"rust target", "target", true},
		{"python cache", "__pycache__", true},
		{"go vendor", "vendor", true},
		{"dist output", "dist", true},
		{"build output", "build", true},
		{"regular file", "main.go", false},
		{"regular dir", "src", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, IsSkippedEntry(tt.entry))
		})
	}
}

// newTestWorkspace lays out a small source tree under a temp dir and returns
// its root. Helper for walker and orchestration tests.
func newTestWorkspace(t *testing.T) string {
	t.Helper()
	root := t.TempDir()

	files := map[string]string{
		"main.go":                 "package main\n\nfunc main() {}\n",
		"pkg/util.go":             "package pkg\n\nfunc Util() {}\n",
		"pkg/parser.go":           "package pkg\n\nfunc Parse() {}\n",
		"web/app.ts":              "export function app() {}\n",
		"README.md":               "# readme\n",
		".hidden.go":              "package hidden\n",
		".git/config.go":          "package config\n",
		"node_modules/dep/idx.js": "module.exports = {}\n",
		"vendor/lib/lib.go":       "package lib\n",
	}
	for rel, content := range files {
		p := filepath.Join(root, filepath.FromSlash(rel))
		require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o755))
		require.NoError(t, os.WriteFile(p, []byte(content), 0o644))
	}
	return root
}

func TestListSourceFiles(t *testing.T) {
	root := newTestWorkspace(t)

	files, err := ListSourceFiles(root, nil, "")
	require.NoError(t, err)

	// Lexical enumeration order, non-source and skipped entries dropped
	assert.Equal(t, []string{"main.go", "pkg/parser.go", "pkg/util.go", "web/app.ts"}, files)
}

func TestListSourceFiles_PathFilter(t *testing.T) {
	root := newTestWorkspace(t)

	files, err := ListSourceFiles(root, nil, "pkg/")
	require.NoError(t, err)
	assert.Equal(t, []string{"pkg/parser.go", "pkg/util.go"}, files)
}

func TestListSourceFiles_Excludes(t *testing.T) {
	root := newTestWorkspace(t)

	files, err := ListSourceFiles(root, []string{"pkg/"}, "")
	require.NoError(t, err)
	assert.Equal(t, []string{"main.go", "web/app.ts"}, files)
}

func TestListSourceFiles_MissingRoot(t *testing.T) {
	_, err := ListSourceFiles(filepath.Join(t.TempDir(), "missing"), nil, "")
	assert.Error(t, err)
}
