package core

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/debtengine/debtengine/core/signal"
	"github.com/debtengine/debtengine/internal/contract"
	"github.com/debtengine/debtengine/schema"
)

// scoreFile reads one file and runs the eight analyzers against the shared
// workspace context. It fails only when the file itself cannot be read;
// missing workspace facts degrade the affected signals to zero instead.
func scoreFile(cfg *contract.Config, inputs *AnalysisInputs, relPath string) (*schema.FileScore, error) {
	absPath := filepath.Join(cfg.WorkspaceRoot, filepath.FromSlash(relPath))
	info, err := os.Stat(absPath)
	if err != nil {
		return nil, err
	}
	content, err := os.ReadFile(absPath)
	if err != nil {
		return nil, err
	}

	source := string(content)
	lang := signal.DetectLanguage(relPath)
	loc := signal.CountLines(source)

	components := schema.EmptyComponents()
	setSlot := func(key schema.SignalKey, raw float64, details ...string) {
		weight := inputs.Weights.Get(key)
		components.SetSlot(key, schema.ComponentScore{
			RawScore:     raw,
			Weight:       weight,
			Contribution: raw * weight,
			Details:      details,
		})
	}

	setSlot(schema.SignalChurnRate,
		signal.ChurnScore(inputs.ChangeCounts, relPath, inputs.HistoryDays),
		fmt.Sprintf("%d commits in %d days", inputs.ChangeCounts[relPath], inputs.HistoryDays))

	smells := signal.DetectSmells(source, lang, loc)
	smellRaw := signal.SmellScore(smells, loc)
	setSlot(schema.SignalCodeSmellDensity, smellRaw, smellEvidence(smells)...)

	setSlot(schema.SignalCouplingIndex,
		signal.CouplingScore(inputs.Imports, relPath),
		fmt.Sprintf("imports out=%d in=%d, workspace max degree %d",
			inputs.Imports.OutDegree[relPath], inputs.Imports.InDegree[relPath], inputs.Imports.MaxDegree))

	setSlot(schema.SignalChangeCoupling,
		signal.ChangeCouplingScore(inputs.CoChange, relPath),
		fmt.Sprintf("%d co-change peers in window", peerCount(inputs.CoChange, relPath)))

	coverageRaw := signal.CoverageGapScore(inputs.Coverage, cfg.WorkspaceRoot, relPath)
	setSlot(schema.SignalTestCoverageGap, coverageRaw,
		coverageEvidence(inputs.Coverage, coverageRaw, relPath))

	setSlot(schema.SignalKnowledgeConcentration,
		signal.KnowledgeScore(inputs.Blame[relPath]),
		knowledgeEvidence(inputs.Blame[relPath]))

	complexity := signal.AnalyzeComplexity(source, lang)
	setSlot(schema.SignalCyclomaticComplexity,
		signal.ComplexityScore(complexity.Average),
		fmt.Sprintf("avg complexity %.1f across %d functions", complexity.Average, len(complexity.Functions)))

	setSlot(schema.SignalDecisionStaleness,
		signal.StalenessScore(cfg.WorkspaceRoot, relPath, smellRaw, time.Now()),
		stalenessEvidence(cfg.WorkspaceRoot, relPath))

	return &schema.FileScore{
		FileFingerprint: schema.FileFingerprint{
			Path:         absPath,
			RelativePath: relPath,
			Language:     lang,
			LOC:          loc,
			LastModified: info.ModTime().Unix(),
		},
		CompositeScore: components.Total(),
		Components:     components,
		Supervision:    schema.SupervisionNone,
	}, nil
}

// smellEvidence renders the smell summary plus one line per non-zero counter.
func smellEvidence(smells signal.FileSmells) []string {
	details := []string{fmt.Sprintf("%d smells in %d LOC", smells.Total, smells.LOC)}
	counters := []struct {
		name  string
		count int
	}{
		{"god functions", smells.GodFunction},
		{"deeply nested blocks", smells.DeepNesting},
		{"long parameter lists", smells.LongParamList},
		{"magic numbers", smells.MagicNumber},
		{"empty catch blocks", smells.EmptyCatch},
		{"todo markers", smells.TodoFixme},
	}
	for _, c := range counters {
		if c.count > 0 {
			details = append(details, fmt.Sprintf("%s: %d", c.name, c.count))
		}
	}
	return details
}

func coverageEvidence(report *signal.CoverageReport, raw float64, relPath string) string {
	switch {
	case report.Mentions(relPath):
		return "mentioned in coverage report"
	case raw < 50.0:
		return "test file found by naming convention"
	default:
		return "no coverage report or test file"
	}
}

func knowledgeEvidence(authorLines map[string]int) string {
	author, share := signal.TopAuthor(authorLines)
	if author == "" {
		return "no authorship data"
	}
	return fmt.Sprintf("top author %s owns %.0f%% of lines", author, share*100)
}

func stalenessEvidence(root, relPath string) string {
	if adrPath, ok := signal.FindADR(root, relPath); ok {
		return fmt.Sprintf("decision record %s", contract.ToRelPath(root, adrPath))
	}
	return "no decision record found"
}

// peerCount counts the co-change pairs a file appears in.
func peerCount(table schema.CoChangeTable, relPath string) int {
	n := 0
	for _, pair := range table.Pairs {
		if pair.FileA == relPath || pair.FileB == relPath {
			n++
		}
	}
	return n
}
