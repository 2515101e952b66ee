package signal

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/debtengine/debtengine/schema"
)

// ImportGraph holds workspace-wide import degrees. Edges are resolved by
// matching imported module basenames against file name stems, so it is a
// heuristic graph, not a compiler-grade one.
type ImportGraph struct {
	InDegree  map[string]int
	OutDegree map[string]int
	MaxDegree int
}

// BuildImportGraph reads every workspace file once and resolves its imports
// against the other files' stems. Files are visited in sorted order so that
// ambiguous stems resolve deterministically.
func BuildImportGraph(root string, relPaths []string) *ImportGraph {
	g := &ImportGraph{
		InDegree:  make(map[string]int),
		OutDegree: make(map[string]int),
	}

	sorted := make([]string, len(relPaths))
	copy(sorted, relPaths)
	sort.Strings(sorted)

	stemIndex := make(map[string][]string)
	for _, rel := range sorted {
		s := Stem(rel)
		stemIndex[s] = append(stemIndex[s], rel)
	}

	for _, rel := range sorted {
		content, err := os.ReadFile(filepath.Join(root, filepath.FromSlash(rel)))
		if err != nil {
			continue
		}
		imports := ExtractImports(string(content), DetectLanguage(rel))
		g.OutDegree[rel] = len(imports)

		// Each import bumps the in-degree of the first other file whose stem
		// matches the imported basename.
		for _, imp := range imports {
			base := Stem(imp)
			for _, other := range stemIndex[base] {
				if other != rel {
					g.InDegree[other]++
					break
				}
			}
		}
	}

	seen := make(map[string]struct{}, len(g.OutDegree)+len(g.InDegree))
	for k := range g.OutDegree {
		seen[k] = struct{}{}
	}
	for k := range g.InDegree {
		seen[k] = struct{}{}
	}
	for k := range seen {
		if d := g.InDegree[k] + g.OutDegree[k]; d > g.MaxDegree {
			g.MaxDegree = d
		}
	}

	return g
}

// CouplingScore scores how central a file is in the import graph.
func CouplingScore(g *ImportGraph, relPath string) float64 {
	if g == nil || g.MaxDegree == 0 {
		return 0.0
	}
	degree := g.InDegree[relPath] + g.OutDegree[relPath]
	score := float64(degree) / (2.0 * float64(g.MaxDegree)) * 100.0
	return min(score, 100.0)
}

// ExtractImports returns the module/path strings referenced by a source file.
func ExtractImports(source string, lang schema.Language) []string {
	var imports []string
	for _, line := range splitLines(source) {
		trimmed := strings.TrimSpace(line)
		switch lang {
		case schema.LangPython:
			if module, ok := extractPythonImport(trimmed); ok {
				imports = append(imports, module)
			}
		case schema.LangRust:
			if strings.HasPrefix(trimmed, "use ") || strings.HasPrefix(trimmed, "pub use ") {
				// e.g. `use crate::foo::bar;` → `crate::foo::bar`
				path := strings.TrimPrefix(trimmed, "pub ")
				path = strings.TrimPrefix(path, "use ")
				path = strings.TrimSuffix(path, ";")
				path, _, _ = strings.Cut(path, "::{")
				path = strings.TrimSpace(path)
				if path != "" {
					imports = append(imports, path)
				}
			}
		case schema.LangGo:
			if strings.HasPrefix(trimmed, "import ") || strings.HasPrefix(trimmed, `"`) {
				if p, ok := extractQuoted(trimmed); ok {
					imports = append(imports, p)
				}
			}
		default:
			// JS/TS/Java: import ... from '...' or require('...')
			if strings.HasPrefix(trimmed, "import ") || strings.Contains(trimmed, "require(") {
				if p, ok := extractQuoted(trimmed); ok {
					imports = append(imports, p)
				}
			}
		}
	}
	return imports
}

// extractQuoted returns the last quoted substring on the line,
// preferring single quotes over double quotes.
func extractQuoted(line string) (string, bool) {
	if end := strings.LastIndex(line, "'"); end >= 0 {
		if start := strings.LastIndex(line[:end], "'"); start >= 0 {
			return line[start+1 : end], true
		}
	}
	if end := strings.LastIndex(line, `"`); end >= 0 {
		if start := strings.LastIndex(line[:end], `"`); start >= 0 {
			return line[start+1 : end], true
		}
	}
	return "", false
}

func extractPythonImport(line string) (string, bool) {
	if strings.HasPrefix(line, "from ") {
		parts := strings.Fields(line)
		if len(parts) >= 2 {
			return parts[1], true
		}
	}
	if module, ok := strings.CutPrefix(line, "import "); ok {
		module, _, _ = strings.Cut(module, ",")
		return strings.TrimSpace(module), true
	}
	return "", false
}
