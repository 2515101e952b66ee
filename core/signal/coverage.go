package signal

import (
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"
)

// Coverage gap scores. Without line-level coverage data the signal is coarse:
// evidence of testing lowers the gap, absence raises it.
const (
	coverageModerateGap = 30.0
	coverageHighGap     = 80.0
)

// lcovRelPath is the coverage report location checked under the workspace root.
const lcovRelPath = "coverage/lcov.info"

// CoverageReport is the workspace's structured coverage data, if any.
type CoverageReport struct {
	content string
}

// LoadCoverageReport reads the LCOV report under the workspace root.
// It returns nil when no report exists.
func LoadCoverageReport(root string) *CoverageReport {
	data, err := os.ReadFile(filepath.Join(root, filepath.FromSlash(lcovRelPath)))
	if err != nil {
		return nil
	}
	return &CoverageReport{content: string(data)}
}

// Mentions reports whether the file appears anywhere in the coverage data.
func (r *CoverageReport) Mentions(relPath string) bool {
	return r != nil && strings.Contains(r.content, relPath)
}

// CoverageGapScore scores the absence of test evidence for a file. A coverage
// report takes precedence; otherwise co-located test files are searched by
// naming convention.
func CoverageGapScore(report *CoverageReport, root, relPath string) float64 {
	if report != nil {
		if report.Mentions(relPath) {
			return coverageModerateGap
		}
		return coverageHighGap
	}

	if hasTestFile(root, relPath) {
		return coverageModerateGap
	}
	return coverageHighGap
}

// hasTestFile probes the standard test file naming conventions for a source file.
func hasTestFile(root, relPath string) bool {
	s := Stem(relPath)
	ext := strings.TrimPrefix(path.Ext(relPath), ".")
	parent := path.Dir(relPath)

	candidates := []string{
		path.Join(parent, fmt.Sprintf("%s.test.%s", s, ext)),
		path.Join(parent, fmt.Sprintf("%s.spec.%s", s, ext)),
		path.Join(parent, fmt.Sprintf("test_%s.%s", s, ext)),
		path.Join(parent, fmt.Sprintf("%s_test.%s", s, ext)),
		path.Join("tests", fmt.Sprintf("test_%s.%s", s, ext)),
		path.Join("test", fmt.Sprintf("%s_test.%s", s, ext)),
		path.Join(parent, "__tests__", fmt.Sprintf("%s.test.%s", s, ext)),
	}

	for _, candidate := range candidates {
		if _, err := os.Stat(filepath.Join(root, filepath.FromSlash(candidate))); err == nil {
			return true
		}
	}
	return false
}
