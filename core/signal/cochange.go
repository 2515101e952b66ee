package signal

import (
	"sort"

	"github.com/debtengine/debtengine/schema"
)

// ChangeCouplingScore scores how tightly a file's history is entangled with
// its peers. For every pair the file appears in, the coupling ratio is
// co-changes over the less-changed member's total, clamped to 1.0. The score
// averages the strongest peer ratios.
func ChangeCouplingScore(table schema.CoChangeTable, relPath string) float64 {
	var ratios []float64

	for _, pair := range table.Pairs {
		if pair.FileA != relPath && pair.FileB != relPath {
			continue
		}
		ratios = append(ratios, PairRatio(table, pair))
	}

	if len(ratios) == 0 {
		return 0.0
	}

	sort.Sort(sort.Reverse(sort.Float64Slice(ratios)))
	n := min(len(ratios), schema.TopPeerCount)
	sum := 0.0
	for _, r := range ratios[:n] {
		sum += r
	}
	avg := sum / float64(n)

	return min(avg*100.0, 100.0)
}

// PairRatio computes co-changes over the less-changed member's total change
// count, clamped to 1.0. Missing change counts default to 1.
func PairRatio(table schema.CoChangeTable, pair schema.CoChangePair) float64 {
	changesA := table.FileChangeCounts[pair.FileA]
	if changesA == 0 {
		changesA = 1
	}
	changesB := table.FileChangeCounts[pair.FileB]
	if changesB == 0 {
		changesB = 1
	}
	minChanges := max(min(changesA, changesB), 1)
	return min(float64(pair.Count)/float64(minChanges), 1.0)
}
