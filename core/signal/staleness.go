package signal

import (
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/debtengine/debtengine/schema"
)

// ADR review age bounds in days.
const (
	adrFreshDays = 30
	adrStaleDays = 180
)

// reviewDateKeys are the accepted frontmatter keys for the last review date.
var reviewDateKeys = []string{"last_reviewed_at:", "reviewed:", "last-reviewed:"}

// StalenessScore scores how overdue a file's architecture decision record is.
// ADRs are matched by file stem, first in the workspace archive and then
// co-located with the file. Files without an ADR are only penalized when
// their smell score already marks them as complex.
func StalenessScore(root, relPath string, smellScore float64, now time.Time) float64 {
	adrPath, found := FindADR(root, relPath)
	if !found {
		// No ADR found: penalty only for complex files
		if smellScore > 30.0 {
			return 50.0
		}
		return 0.0
	}

	if content, err := os.ReadFile(adrPath); err == nil {
		if days, ok := parseReviewDate(string(content), now); ok {
			switch {
			case days < adrFreshDays:
				return 0.0
			case days > adrStaleDays:
				return 100.0
			default:
				span := float64(adrStaleDays - adrFreshDays)
				return min(float64(days-adrFreshDays)/span*100.0, 100.0)
			}
		}
	}

	// ADR exists but carries no review date
	return 50.0
}

// FindADR returns the path of the decision record covering a file, if any.
// The workspace archive takes precedence over a co-located record.
func FindADR(root, relPath string) (string, bool) {
	fileStem := Stem(relPath)
	archive := filepath.Join(root, schema.WorkspaceDirName, schema.ADRDirName)

	candidates := []string{
		filepath.Join(archive, fileStem+".adr.md"),
		filepath.Join(archive, fileStem+".md"),
		filepath.Join(root, filepath.FromSlash(path.Dir(relPath)), fileStem+".adr.md"),
	}

	for _, adrPath := range candidates {
		if _, err := os.Stat(adrPath); err == nil {
			return adrPath, true
		}
	}
	return "", false
}

// parseReviewDate scans for a review date line and returns the days elapsed.
func parseReviewDate(content string, now time.Time) (int, bool) {
	for _, line := range splitLines(content) {
		trimmed := strings.ToLower(strings.TrimSpace(line))
		matched := false
		for _, key := range reviewDateKeys {
			if strings.HasPrefix(trimmed, key) {
				matched = true
				break
			}
		}
		if !matched {
			continue
		}

		_, value, ok := strings.Cut(strings.TrimSpace(line), ":")
		if !ok {
			continue
		}
		date, err := time.Parse("2006-01-02", strings.TrimSpace(value))
		if err != nil {
			continue
		}
		return int(now.Sub(date).Hours() / 24), true
	}
	return 0, false
}
