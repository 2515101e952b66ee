package signal

import (
	"strconv"
	"strings"

	"github.com/debtengine/debtengine/schema"
)

// Smell detection thresholds.
const (
	godFunctionBodyLines = 60
	deepNestingLevel     = 4
	longParamCount       = 5
)

// allowedNumbers are numeric literals that never count as magic.
var allowedNumbers = map[float64]struct{}{0: {}, 1: {}, -1: {}, 2: {}, 100: {}}

// DetectSmells runs line-by-line smell heuristics over a file's source.
// It intentionally trades AST fidelity for speed; the counters feed a density
// score, not a linter report.
func DetectSmells(source string, lang schema.Language, loc int) FileSmells {
	lines := splitLines(source)
	smells := FileSmells{LOC: loc}

	// Track function bodies for god function detection
	currentFuncLines := 0
	inFunction := false
	braceDepth := 0
	funcStartDepth := 0

	for i, line := range lines {
		trimmed := strings.TrimSpace(line)

		// TODO/FIXME/HACK/XXX comments
		if isComment(trimmed, lang) {
			upper := strings.ToUpper(trimmed)
			if strings.Contains(upper, "TODO") || strings.Contains(upper, "FIXME") ||
				strings.Contains(upper, "HACK") || strings.Contains(upper, "XXX") {
				smells.TodoFixme++
			}
		}

		opens := strings.Count(line, "{")
		closes := strings.Count(line, "}")

		// Detect function start (simplified)
		if isSmellFunctionDecl(trimmed, lang) && !inFunction {
			inFunction = true
			funcStartDepth = braceDepth
			currentFuncLines = 0
		}

		braceDepth += opens - closes

		if inFunction {
			currentFuncLines++

			if braceDepth <= funcStartDepth && closes > 0 {
				// Function ended
				if currentFuncLines > godFunctionBodyLines {
					smells.GodFunction++
				}
				inFunction = false
				currentFuncLines = 0
			}
		}

		// Deep nesting: count indent level of the raw line. Python uses the
		// dedicated indentation pass below instead.
		if lang != schema.LangPython && trimmed != "" {
			if nestingLevel(line) > deepNestingLevel {
				smells.DeepNesting++
			}
		}

		// Long parameter list
		if isSmellFunctionDecl(trimmed, lang) {
			if countParameters(trimmed) > longParamCount {
				smells.LongParamList++
			}
		}

		// Magic numbers (outside const/let/var declarations)
		if !strings.HasPrefix(trimmed, "const ") && !strings.HasPrefix(trimmed, "let ") &&
			!strings.HasPrefix(trimmed, "var ") && !isComment(trimmed, lang) {
			smells.MagicNumber += countMagicNumbers(trimmed)
		}

		// Empty catch/except block
		if strings.Contains(trimmed, "catch") || strings.Contains(trimmed, "except") {
			if i+1 < len(lines) {
				next := strings.TrimSpace(lines[i+1])
				if next == "}" || next == "pass" || next == "" {
					smells.EmptyCatch++
				}
			}
		}
	}

	// For Python, indentation is the only block marker.
	if lang == schema.LangPython {
		for _, line := range lines {
			if strings.TrimSpace(line) == "" {
				continue
			}
			spaces := len(line) - len(strings.TrimLeft(line, " \t"))
			if spaces/4 > deepNestingLevel {
				smells.DeepNesting++
			}
		}
	}

	smells.Total = smells.GodFunction + smells.DeepNesting + smells.LongParamList +
		smells.MagicNumber + smells.EmptyCatch + smells.TodoFixme

	return smells
}

// SmellScore converts smell counters into a density score. A file with one
// smell per 50 lines saturates at 100.
func SmellScore(smells FileSmells, loc int) float64 {
	if loc == 0 {
		return 0.0
	}
	return min(float64(smells.Total)/float64(loc)*5000.0, 100.0)
}

func isComment(line string, lang schema.Language) bool {
	if lang == schema.LangPython {
		return strings.HasPrefix(line, "#")
	}
	return strings.HasPrefix(line, "//") || strings.HasPrefix(line, "*") || strings.HasPrefix(line, "/*")
}

func isSmellFunctionDecl(line string, lang schema.Language) bool {
	switch lang {
	case schema.LangTypeScript, schema.LangJavaScript:
		return strings.Contains(line, "function ") || strings.Contains(line, "=> {") || strings.Contains(line, "async ") ||
			(strings.Contains(line, "(") && strings.Contains(line, ")") && strings.Contains(line, "{") &&
				!strings.HasPrefix(line, "if") && !strings.HasPrefix(line, "for") &&
				!strings.HasPrefix(line, "while") && !strings.HasPrefix(line, "switch"))
	case schema.LangPython:
		return strings.HasPrefix(line, "def ") || strings.HasPrefix(line, "async def ")
	case schema.LangGo:
		return strings.HasPrefix(line, "func ")
	case schema.LangRust:
		return strings.HasPrefix(line, "fn ") || strings.HasPrefix(line, "pub fn ") ||
			strings.HasPrefix(line, "pub(crate) fn ") || strings.HasPrefix(line, "async fn ")
	case schema.LangJava:
		return (strings.Contains(line, "public ") || strings.Contains(line, "private ") ||
			strings.Contains(line, "protected ") || strings.Contains(line, "static ")) &&
			strings.Contains(line, "(") && strings.Contains(line, "{")
	default:
		return false
	}
}

// nestingLevel approximates the indentation level of a raw line,
// assuming 2 or 4 spaces per level.
func nestingLevel(line string) int {
	indent := len(line) - len(strings.TrimLeft(line, " \t"))
	if indent >= 4 {
		return indent / 4
	}
	return indent / 2
}

func countParameters(line string) int {
	start := strings.Index(line, "(")
	if start < 0 {
		return 0
	}
	end := strings.LastIndex(line, ")")
	if end <= start {
		return 0
	}
	params := line[start+1 : end]
	if strings.TrimSpace(params) == "" {
		return 0
	}
	return strings.Count(params, ",") + 1
}

func countMagicNumbers(line string) int {
	count := 0
	words := strings.FieldsFunc(line, func(r rune) bool {
		return (r < '0' || r > '9') && r != '.' && r != '-'
	})
	for _, word := range words {
		num, err := strconv.ParseFloat(word, 64)
		if err != nil {
			continue
		}
		if _, ok := allowedNumbers[num]; !ok {
			count++
		}
	}
	return count
}
