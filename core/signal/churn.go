package signal

// ChurnScore scores how often a file changes relative to the history window.
// A file touched at least once per day saturates at 100.
func ChurnScore(changeCounts map[string]int, relPath string, historyDays int) float64 {
	if historyDays < 1 {
		historyDays = 1
	}
	count := float64(changeCounts[relPath])
	dailyRate := count / float64(historyDays)
	return min(dailyRate*100.0, 100.0)
}
