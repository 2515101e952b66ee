package signal

import (
	"path/filepath"
	"strings"

	"github.com/debtengine/debtengine/schema"
)

// DetectLanguage maps a file extension to its language tag.
func DetectLanguage(path string) schema.Language {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".ts", ".tsx":
		return schema.LangTypeScript
	case ".js", ".jsx":
		return schema.LangJavaScript
	case ".py":
		return schema.LangPython
	case ".go":
		return schema.LangGo
	case ".rs":
		return schema.LangRust
	case ".java":
		return schema.LangJava
	default:
		return schema.LangUnknown
	}
}

// IsSourceFile reports whether the path carries one of the analyzable extensions.
func IsSourceFile(path string) bool {
	return DetectLanguage(path) != schema.LangUnknown
}

// CountLines counts source lines the way a line iterator would: a trailing
// newline does not produce an extra empty line.
func CountLines(source string) int {
	if source == "" {
		return 0
	}
	n := strings.Count(source, "\n")
	if !strings.HasSuffix(source, "\n") {
		n++
	}
	return n
}

// Stem returns the file name without its extension.
func Stem(path string) string {
	if path == "" {
		return ""
	}
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// splitLines splits source into lines the way a line iterator would:
// no phantom empty line after a trailing newline, and CRLF tolerated.
func splitLines(source string) []string {
	if source == "" {
		return nil
	}
	lines := strings.Split(source, "\n")
	if n := len(lines); lines[n-1] == "" {
		lines = lines[:n-1]
	}
	for i, line := range lines {
		lines[i] = strings.TrimSuffix(line, "\r")
	}
	return lines
}
