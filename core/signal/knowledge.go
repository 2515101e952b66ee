package signal

// TopAuthor returns the author owning the most attributed lines and that
// author's share of the total. Ties resolve to the lexicographically
// smallest name so callers get a stable answer.
func TopAuthor(authorLines map[string]int) (string, float64) {
	total := 0
	topName := ""
	topLines := 0
	for name, n := range authorLines {
		total += n
		if n > topLines || (n == topLines && (topName == "" || name < topName)) {
			topName = name
			topLines = n
		}
	}
	if total == 0 {
		return "", 0.0
	}
	return topName, float64(topLines) / float64(total)
}

// KnowledgeScore scores how concentrated a file's authorship is. The signal
// only triggers once the top author owns more than half the attributed lines;
// a sole author scores 100.
func KnowledgeScore(authorLines map[string]int) float64 {
	total := 0
	maxLines := 0
	for _, n := range authorLines {
		total += n
		if n > maxLines {
			maxLines = n
		}
	}
	if total == 0 {
		return 0.0
	}

	concentration := float64(maxLines) / float64(total)
	if concentration <= 0.5 {
		return 0.0
	}
	return min((concentration-0.5)/0.5*100.0, 100.0)
}
