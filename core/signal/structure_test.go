package signal

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/debtengine/debtengine/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractImports(t *testing.T) {
	tests := []struct {
		name     string
		source   string
		lang     schema.Language
		expected []string
	}{
		{
			name:     "python from import",
			source:   "from os import path\n",
			lang:     schema.LangPython,
			expected: []string{"os"},
		},
		{
			name:     "python plain import",
			source:   "import sys\n",
			lang:     schema.LangPython,
			expected: []string{"sys"},
		},
		{
			name:     "python multi import keeps first",
			source:   "import json, re\n",
			lang:     schema.LangPython,
			expected: []string{"json"},
		},
		{
			name:     "go import block",
			source:   "package main\n\nimport (\n\t\"fmt\"\n\t\"github.com/pkg/errors\"\n)\n",
			lang:     schema.LangGo,
			expected: []string{"fmt", "github.com/pkg/errors"},
		},
		{
			name:     "go single import",
			source:   "import \"os\"\n",
			lang:     schema.LangGo,
			expected: []string{"os"},
		},
		{
			name:     "rust use",
			source:   "use crate::scoring::engine;\n",
			lang:     schema.LangRust,
			expected: []string{"crate::scoring::engine"},
		},
		{
			name:     "rust pub use",
			source:   "pub use config::Settings;\n",
			lang:     schema.LangRust,
			expected: []string{"config::Settings"},
		},
		{
			name:     "rust grouped use keeps module path",
			source:   "use std::collections::{HashMap, HashSet};\n",
			lang:     schema.LangRust,
			expected: []string{"std::collections"},
		},
		{
			name:     "typescript import from",
			source:   "import { read } from './fs-utils';\n",
			lang:     schema.LangTypeScript,
			expected: []string{"./fs-utils"},
		},
		{
			name:     "javascript require",
			source:   "const _ = require(\"lodash\");\n",
			lang:     schema.LangJavaScript,
			expected: []string{"lodash"},
		},
		{
			name:     "typescript double quoted",
			source:   "import x from \"y\";\n",
			lang:     schema.LangTypeScript,
			expected: []string{"y"},
		},
		{
			name:     "java imports carry no quotes",
			source:   "import java.util.List;\n",
			lang:     schema.LangJava,
			expected: nil,
		},
		{
			name:     "non-import lines ignored",
			source:   "x = compute()\ny = x + 1\n",
			lang:     schema.LangPython,
			expected: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ExtractImports(tt.source, tt.lang))
		})
	}
}

func TestBuildImportGraph(t *testing.T) {
	root := t.TempDir()
	files := map[string]string{
		"alpha.py": "import beta\nimport gamma\n",
		"beta.py":  "import gamma\n",
		"gamma.py": "",
	}
	relPaths := make([]string, 0, len(files))
	for rel, content := range files {
		require.NoError(t, os.WriteFile(filepath.Join(root, rel), []byte(content), 0o644))
		relPaths = append(relPaths, rel)
	}

	g := BuildImportGraph(root, relPaths)

	assert.Equal(t, 2, g.OutDegree["alpha.py"])
	assert.Equal(t, 1, g.OutDegree["beta.py"])
	assert.Equal(t, 0, g.OutDegree["gamma.py"])
	assert.Equal(t, 0, g.InDegree["alpha.py"])
	assert.Equal(t, 1, g.InDegree["beta.py"])
	assert.Equal(t, 2, g.InDegree["gamma.py"])
	assert.Equal(t, 2, g.MaxDegree)

	// Every file carries degree 2 out of a max of 2, so they all land on 50.
	assert.InDelta(t, 50.0, CouplingScore(g, "alpha.py"), 1e-9)
	assert.InDelta(t, 50.0, CouplingScore(g, "gamma.py"), 1e-9)
}

func TestBuildImportGraphResolvesSubdirectories(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "lib"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "app.py"), []byte("import helpers\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(root, "lib", "helpers.py"), []byte(""), 0o644))

	g := BuildImportGraph(root, []string{"app.py", "lib/helpers.py"})

	assert.Equal(t, 1, g.OutDegree["app.py"])
	assert.Equal(t, 1, g.InDegree["lib/helpers.py"])
	assert.Equal(t, 1, g.MaxDegree)
}

func TestBuildImportGraphSelfImport(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "solo.py"), []byte("import solo\n"), 0o644))

	g := BuildImportGraph(root, []string{"solo.py"})

	// A file never bumps its own in-degree.
	assert.Equal(t, 0, g.InDegree["solo.py"])
	assert.Equal(t, 1, g.OutDegree["solo.py"])
}

func TestBuildImportGraphSkipsUnreadableFiles(t *testing.T) {
	g := BuildImportGraph(t.TempDir(), []string{"ghost.py"})

	_, hasOut := g.OutDegree["ghost.py"]
	assert.False(t, hasOut)
	assert.Equal(t, 0, g.MaxDegree)
	assert.Zero(t, CouplingScore(g, "ghost.py"))
}

func TestCouplingScore(t *testing.T) {
	t.Run("nil graph", func(t *testing.T) {
		assert.Zero(t, CouplingScore(nil, "a.py"))
	})

	t.Run("empty graph", func(t *testing.T) {
		g := &ImportGraph{InDegree: map[string]int{}, OutDegree: map[string]int{}}
		assert.Zero(t, CouplingScore(g, "a.py"))
	})

	t.Run("unknown file in populated graph", func(t *testing.T) {
		g := &ImportGraph{
			InDegree:  map[string]int{"hub.py": 5},
			OutDegree: map[string]int{"hub.py": 5},
			MaxDegree: 10,
		}
		assert.Zero(t, CouplingScore(g, "other.py"))
	})

	t.Run("hub saturates at half of the double max", func(t *testing.T) {
		g := &ImportGraph{
			InDegree:  map[string]int{"hub.py": 5},
			OutDegree: map[string]int{"hub.py": 5},
			MaxDegree: 10,
		}
		assert.InDelta(t, 50.0, CouplingScore(g, "hub.py"), 1e-9)
	})
}
