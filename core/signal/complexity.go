package signal

import (
	"strings"

	"github.com/debtengine/debtengine/schema"
)

// complexitySaturation is the average complexity at which the score hits 100.
const complexitySaturation = 20.0

// AnalyzeComplexity estimates per-function cyclomatic complexity with
// line-based heuristics: base 1 per function, plus 1 per branching keyword
// occurrence. Block boundaries come from brace depth; Python functions run
// until end of file.
func AnalyzeComplexity(source string, lang schema.Language) FileComplexity {
	var functions []FunctionComplexity
	currentFuncName := ""
	currentComplexity := 1 // Base complexity
	inFunction := false
	braceDepth := 0
	funcStartDepth := 0

	keywords := branchingKeywords(lang)

	for _, line := range splitLines(source) {
		trimmed := strings.TrimSpace(line)

		// Detect function start
		if isComplexityFunctionDecl(trimmed, lang) && !inFunction {
			currentFuncName = extractFunctionName(trimmed, lang)
			currentComplexity = 1
			inFunction = true
			funcStartDepth = braceDepth
		}

		opens := strings.Count(line, "{")
		closes := strings.Count(line, "}")
		braceDepth += opens - closes

		if inFunction {
			// Count branching nodes
			for _, keyword := range keywords {
				if strings.Contains(trimmed, keyword) {
					currentComplexity++
				}
			}

			// Ternary operators
			if strings.Contains(trimmed, " ? ") && strings.Contains(trimmed, " : ") {
				currentComplexity++
			}

			// Function ended. Python has no brace boundary, so its functions
			// accrue until end of file.
			if lang != schema.LangPython && braceDepth <= funcStartDepth && closes > 0 {
				functions = append(functions, FunctionComplexity{
					Name:       currentFuncName,
					Complexity: currentComplexity,
				})
				inFunction = false
			}
		}
	}

	// If still in a function at EOF (e.g., Python), record it
	if inFunction && currentFuncName != "" {
		functions = append(functions, FunctionComplexity{
			Name:       currentFuncName,
			Complexity: currentComplexity,
		})
	}

	average := 0.0
	if len(functions) > 0 {
		sum := 0.0
		for _, f := range functions {
			sum += float64(f.Complexity)
		}
		average = sum / float64(len(functions))
	}

	return FileComplexity{Functions: functions, Average: average}
}

// ComplexityScore converts average function complexity into a raw score.
func ComplexityScore(average float64) float64 {
	return min(average/complexitySaturation*100.0, 100.0)
}

func branchingKeywords(lang schema.Language) []string {
	switch lang {
	case schema.LangPython:
		return []string{"if ", "elif ", "for ", "while ", "except ", "and ", "or "}
	case schema.LangGo, schema.LangRust:
		return []string{"if ", "else if ", "for ", "while ", "match ", "case ", "|| ", "&& "}
	default:
		return []string{"if ", "else if ", "for ", "while ", "switch ", "case ", "catch ", "|| ", "&& ", "? "}
	}
}

func isComplexityFunctionDecl(line string, lang schema.Language) bool {
	switch lang {
	case schema.LangTypeScript, schema.LangJavaScript:
		return strings.Contains(line, "function ") ||
			(strings.Contains(line, "(") && strings.Contains(line, ")") && strings.Contains(line, "{") &&
				!strings.HasPrefix(line, "if") && !strings.HasPrefix(line, "for") && !strings.HasPrefix(line, "while"))
	case schema.LangPython:
		return strings.HasPrefix(line, "def ") || strings.HasPrefix(line, "async def ")
	case schema.LangGo:
		return strings.HasPrefix(line, "func ")
	case schema.LangRust:
		return strings.HasPrefix(line, "fn ") || strings.HasPrefix(line, "pub fn ") ||
			strings.HasPrefix(line, "pub(crate) fn ")
	case schema.LangJava:
		return (strings.Contains(line, "public ") || strings.Contains(line, "private ") ||
			strings.Contains(line, "protected ")) &&
			strings.Contains(line, "(") && strings.Contains(line, "{")
	default:
		return false
	}
}

func extractFunctionName(line string, lang schema.Language) string {
	switch lang {
	case schema.LangPython:
		name := strings.TrimPrefix(strings.TrimPrefix(line, "async def "), "def ")
		name, _, _ = strings.Cut(name, "(")
		return nameOrUnknown(strings.TrimSpace(name))
	case schema.LangGo:
		name := strings.TrimPrefix(line, "func ")
		name, _, _ = strings.Cut(name, "(")
		return nameOrUnknown(strings.TrimSpace(name))
	case schema.LangRust:
		name := strings.ReplaceAll(line, "pub fn ", "")
		name = strings.ReplaceAll(name, "pub(crate) fn ", "")
		name = strings.ReplaceAll(name, "fn ", "")
		name, _, _ = strings.Cut(name, "(")
		return nameOrUnknown(strings.TrimSpace(name))
	default:
		// TS/JS/Java: last word before the opening paren
		beforeParen, _, _ := strings.Cut(line, "(")
		words := strings.Fields(beforeParen)
		if len(words) == 0 {
			return "unknown"
		}
		return words[len(words)-1]
	}
}

func nameOrUnknown(name string) string {
	if name == "" {
		return "unknown"
	}
	return name
}
