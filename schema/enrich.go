package schema

import "sort"

// GetPlainLabel returns the severity label for a composite score.
func GetPlainLabel(score float64) string {
	switch {
	case score >= 80:
		return "Critical"
	case score >= 60:
		return "High"
	case score >= 40:
		return "Moderate"
	default:
		return "Low"
	}
}

// EnrichedFileScore adds presentation data to a FileScore.
type EnrichedFileScore struct {
	Rank  int    `json:"rank"`
	Label string `json:"label"`
	FileScore
}

// EnrichFiles ranks files by composite score descending and attaches rank
// and label. A positive limit truncates the ranked list. The input slice is
// left untouched; scan results keep enumeration order.
func EnrichFiles(files []FileScore, limit int) []EnrichedFileScore {
	ranked := make([]FileScore, len(files))
	copy(ranked, files)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].CompositeScore > ranked[j].CompositeScore
	})
	if limit > 0 && limit < len(ranked) {
		ranked = ranked[:limit]
	}

	output := make([]EnrichedFileScore, len(ranked))
	for i, f := range ranked {
		output[i] = EnrichedFileScore{
			Rank:      i + 1,
			Label:     GetPlainLabel(f.CompositeScore),
			FileScore: f,
		}
	}
	return output
}
