package signal

import (
	"bufio"
	"bytes"
	"sort"
	"strings"

	"github.com/debtengine/debtengine/schema"
)

// ParseActivityLog turns raw `git log --name-only` output into per-file change
// counts and the canonical co-change pair table. Commit headers are marked by
// a leading "--"; every other non-blank line is a changed file path.
func ParseActivityLog(out []byte) schema.CoChangeTable {
	table := schema.CoChangeTable{FileChangeCounts: make(map[string]int)}
	pairCounts := make(map[[2]string]int)

	var commitFiles []string
	flush := func() {
		for _, f := range commitFiles {
			table.FileChangeCounts[f]++
		}
		for i := range commitFiles {
			for j := i + 1; j < len(commitFiles); j++ {
				a, b := commitFiles[i], commitFiles[j]
				if b < a {
					a, b = b, a
				}
				pairCounts[[2]string{a, b}]++
			}
		}
		commitFiles = commitFiles[:0]
	}

	scanner := bufio.NewScanner(bytes.NewReader(out))
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	for scanner.Scan() {
		line := scanner.Text()
		if strings.HasPrefix(line, "--") {
			flush()
			continue
		}
		if strings.TrimSpace(line) == "" {
			continue
		}
		commitFiles = append(commitFiles, line)
	}
	flush()

	table.Pairs = make([]schema.CoChangePair, 0, len(pairCounts))
	for pair, count := range pairCounts {
		table.Pairs = append(table.Pairs, schema.CoChangePair{
			FileA: pair[0],
			FileB: pair[1],
			Count: count,
		})
	}
	sort.Slice(table.Pairs, func(i, j int) bool {
		if table.Pairs[i].FileA != table.Pairs[j].FileA {
			return table.Pairs[i].FileA < table.Pairs[j].FileA
		}
		return table.Pairs[i].FileB < table.Pairs[j].FileB
	})

	return table
}
