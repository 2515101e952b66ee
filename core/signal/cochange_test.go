package signal

import (
	"testing"

	"github.com/debtengine/debtengine/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChangeCouplingScoreTopPeers(t *testing.T) {
	counts := map[string]int{
		"hub.go": 10, "p1.go": 10, "p2.go": 10,
		"p3.go": 10, "p4.go": 10, "p5.go": 10, "p6.go": 10,
	}
	table := schema.CoChangeTable{
		FileChangeCounts: counts,
		Pairs: []schema.CoChangePair{
			{FileA: "hub.go", FileB: "p1.go", Count: 10}, // ratio 1.0
			{FileA: "hub.go", FileB: "p2.go", Count: 12}, // clamps to 1.0
			{FileA: "p3.go", FileB: "hub.go", Count: 8},  // 0.8, order does not matter
			{FileA: "hub.go", FileB: "p4.go", Count: 6},  // 0.6
			{FileA: "hub.go", FileB: "p5.go", Count: 4},  // 0.4
			{FileA: "hub.go", FileB: "p6.go", Count: 2},  // 0.2, outside the top five
		},
	}

	// Top five ratios average (1.0+1.0+0.8+0.6+0.4)/5 = 0.76.
	assert.InDelta(t, 76.0, ChangeCouplingScore(table, "hub.go"), 1e-9)
}

func TestChangeCouplingScoreDenominator(t *testing.T) {
	// The less-changed member of the pair sets the denominator.
	table := schema.CoChangeTable{
		FileChangeCounts: map[string]int{"a.go": 10, "b.go": 5},
		Pairs: []schema.CoChangePair{
			{FileA: "a.go", FileB: "b.go", Count: 4},
		},
	}
	assert.InDelta(t, 80.0, ChangeCouplingScore(table, "a.go"), 1e-9)
	assert.InDelta(t, 80.0, ChangeCouplingScore(table, "b.go"), 1e-9)
}

func TestChangeCouplingScoreMissingCountsDefaultToOne(t *testing.T) {
	table := schema.CoChangeTable{
		FileChangeCounts: map[string]int{},
		Pairs: []schema.CoChangePair{
			{FileA: "x.go", FileB: "y.go", Count: 3},
		},
	}
	assert.InDelta(t, 100.0, ChangeCouplingScore(table, "x.go"), 1e-9)
}

func TestChangeCouplingScoreFewPeers(t *testing.T) {
	table := schema.CoChangeTable{
		FileChangeCounts: map[string]int{"hub.go": 20, "a.go": 10, "b.go": 10},
		Pairs: []schema.CoChangePair{
			{FileA: "hub.go", FileB: "a.go", Count: 10}, // ratio 1.0
			{FileA: "hub.go", FileB: "b.go", Count: 5},  // ratio 0.5
		},
	}
	assert.InDelta(t, 75.0, ChangeCouplingScore(table, "hub.go"), 1e-9)
}

func TestChangeCouplingScoreNoPeers(t *testing.T) {
	table := schema.CoChangeTable{
		FileChangeCounts: map[string]int{"a.go": 3, "b.go": 3},
		Pairs: []schema.CoChangePair{
			{FileA: "a.go", FileB: "b.go", Count: 2},
		},
	}
	assert.Zero(t, ChangeCouplingScore(table, "lonely.go"))
	assert.Zero(t, ChangeCouplingScore(schema.CoChangeTable{}, "a.go"))
}

func TestParseActivityLog(t *testing.T) {
	raw := "--abc123|Alice|2026-01-02T10:00:00+00:00\n" +
		"src/a.go\n" +
		"src/b.go\n" +
		"\n" +
		"--def456|Bob|2026-01-03T10:00:00+00:00\n" +
		"src/a.go\n" +
		"src/b.go\n" +
		"src/c.go\n"

	table := ParseActivityLog([]byte(raw))

	assert.Equal(t, 2, table.FileChangeCounts["src/a.go"])
	assert.Equal(t, 2, table.FileChangeCounts["src/b.go"])
	assert.Equal(t, 1, table.FileChangeCounts["src/c.go"])

	require.Len(t, table.Pairs, 3)
	// Pairs come out canonical (FileA < FileB) and sorted.
	assert.Equal(t, schema.CoChangePair{FileA: "src/a.go", FileB: "src/b.go", Count: 2}, table.Pairs[0])
	assert.Equal(t, schema.CoChangePair{FileA: "src/a.go", FileB: "src/c.go", Count: 1}, table.Pairs[1])
	assert.Equal(t, schema.CoChangePair{FileA: "src/b.go", FileB: "src/c.go", Count: 1}, table.Pairs[2])
}

func TestParseActivityLogEmpty(t *testing.T) {
	table := ParseActivityLog(nil)
	assert.Empty(t, table.Pairs)
	assert.Empty(t, table.FileChangeCounts)
}

func TestParseActivityLogSingleFileCommits(t *testing.T) {
	raw := "--aaa|Dev|2026-01-01T00:00:00+00:00\n" +
		"main.go\n" +
		"--bbb|Dev|2026-01-02T00:00:00+00:00\n" +
		"main.go\n"

	table := ParseActivityLog([]byte(raw))
	assert.Equal(t, 2, table.FileChangeCounts["main.go"])
	assert.Empty(t, table.Pairs, "single-file commits produce no pairs")
}
