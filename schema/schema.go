// Package schema has configs, models and shared constants for all parts of debtengine.
package schema

// FileFingerprint identifies a scored file on disk. It is recomputed on
// every rescore; relative path and language are always derived from the
// absolute path, never cached independently of it.
type FileFingerprint struct {
	Path         string   `json:"path"`          // Absolute path to the file
	RelativePath string   `json:"relative_path"` // Path relative to the workspace root
	Language     Language `json:"language"`      // Language tag derived from the extension
	LOC          int      `json:"loc"`           // Number of source lines
	LastModified int64    `json:"last_modified"` // On-disk mtime, seconds since epoch
}

// ComponentScore is one analyzer's verdict for a file. Immutable once
// produced; a rescore replaces the whole struct.
type ComponentScore struct {
	RawScore     float64  `json:"raw_score"`    // Normalized raw signal in [0,100]
	Weight       float64  `json:"weight"`       // Configured weight in [0,1]
	Contribution float64  `json:"contribution"` // RawScore * Weight
	Details      []string `json:"details"`      // Free-text evidence, e.g. "42 smells in 800 LOC"
}

// ScoreComponents holds exactly eight ComponentScore slots, one per signal.
// The shape is fixed: a file missing a signal still carries a zero slot.
type ScoreComponents struct {
	ChurnRate              ComponentScore `json:"churn_rate"`
	CodeSmellDensity       ComponentScore `json:"code_smell_density"`
	CouplingIndex          ComponentScore `json:"coupling_index"`
	ChangeCoupling         ComponentScore `json:"change_coupling"`
	TestCoverageGap        ComponentScore `json:"test_coverage_gap"`
	KnowledgeConcentration ComponentScore `json:"knowledge_concentration"`
	CyclomaticComplexity   ComponentScore `json:"cyclomatic_complexity"`
	DecisionStaleness      ComponentScore `json:"decision_staleness"`
}

// Slot returns the component stored under the given signal key.
func (c *ScoreComponents) Slot(key SignalKey) ComponentScore {
	switch key {
	case SignalChurnRate:
		return c.ChurnRate
	case SignalCodeSmellDensity:
		return c.CodeSmellDensity
	case SignalCouplingIndex:
		return c.CouplingIndex
	case SignalChangeCoupling:
		return c.ChangeCoupling
	case SignalTestCoverageGap:
		return c.TestCoverageGap
	case SignalKnowledgeConcentration:
		return c.KnowledgeConcentration
	case SignalCyclomaticComplexity:
		return c.CyclomaticComplexity
	case SignalDecisionStaleness:
		return c.DecisionStaleness
	default:
		return ComponentScore{}
	}
}

// SetSlot stores a component under the given signal key.
func (c *ScoreComponents) SetSlot(key SignalKey, cs ComponentScore) {
	switch key {
	case SignalChurnRate:
		c.ChurnRate = cs
	case SignalCodeSmellDensity:
		c.CodeSmellDensity = cs
	case SignalCouplingIndex:
		c.CouplingIndex = cs
	case SignalChangeCoupling:
		c.ChangeCoupling = cs
	case SignalTestCoverageGap:
		c.TestCoverageGap = cs
	case SignalKnowledgeConcentration:
		c.KnowledgeConcentration = cs
	case SignalCyclomaticComplexity:
		c.CyclomaticComplexity = cs
	case SignalDecisionStaleness:
		c.DecisionStaleness = cs
	}
}

// Total sums the eight stored contributions. The composite score is always
// this sum, never recomputed from raw scores at read time.
func (c *ScoreComponents) Total() float64 {
	return c.ChurnRate.Contribution +
		c.CodeSmellDensity.Contribution +
		c.CouplingIndex.Contribution +
		c.ChangeCoupling.Contribution +
		c.TestCoverageGap.Contribution +
		c.KnowledgeConcentration.Contribution +
		c.CyclomaticComplexity.Contribution +
		c.DecisionStaleness.Contribution
}

// EmptyComponents returns an all-zero ScoreComponents. Malformed persisted
// breakdown blobs degrade to this shape instead of failing the load.
func EmptyComponents() ScoreComponents {
	return ScoreComponents{}
}

// FileScore aggregates the fingerprint, the eight components and the
// composite score for one file. It is created on first scoring and replaced
// wholesale on every rescore.
type FileScore struct {
	FileFingerprint
	CompositeScore float64           `json:"composite_score"`
	Components     ScoreComponents   `json:"components"`
	Supervision    SupervisionStatus `json:"supervision_status"`
}

// ComponentDetail is one named row of a score breakdown.
type ComponentDetail struct {
	Name         SignalKey `json:"name"`
	RawScore     float64   `json:"raw_score"`
	Weight       float64   `json:"weight"`
	Contribution float64   `json:"contribution"`
	Details      []string  `json:"details"`
}

// FileBreakdown is the per-file explainability view: the composite score and
// the eight named components in canonical signal order.
type FileBreakdown struct {
	Path           string            `json:"path"`
	CompositeScore float64           `json:"composite_score"`
	Components     []ComponentDetail `json:"components"`
}

// Breakdown flattens a FileScore into its breakdown view.
func (f *FileScore) Breakdown() FileBreakdown {
	components := make([]ComponentDetail, 0, len(SignalOrder))
	for _, key := range SignalOrder {
		cs := f.Components.Slot(key)
		components = append(components, ComponentDetail{
			Name:         key,
			RawScore:     cs.RawScore,
			Weight:       cs.Weight,
			Contribution: cs.Contribution,
			Details:      cs.Details,
		})
	}
	return FileBreakdown{
		Path:           f.RelativePath,
		CompositeScore: f.CompositeScore,
		Components:     components,
	}
}

// AnalysisResult is the workspace-level rollup of a scan.
type AnalysisResult struct {
	WorkspaceScore float64     `json:"workspace_score"` // Mean composite score across files
	FileCount      int         `json:"file_count"`
	HighDebtCount  int         `json:"high_debt_count"` // Files above the high-debt threshold
	Files          []FileScore `json:"files"`
	DurationMS     int64       `json:"duration_ms"`
}

// Progress is emitted before each file is scored during a workspace scan.
// Delivery is one-way; a slow or absent consumer never blocks the scan.
type Progress struct {
	Current     int    `json:"current"`
	Total       int    `json:"total"`
	CurrentFile string `json:"current_file"`
}

// HeatmapNode is one node of the directory rollup tree. Leaves carry a score
// and line count; internal nodes carry children only. The two are mutually
// exclusive, and the root never has a score.
type HeatmapNode struct {
	Name     string         `json:"name"`
	Path     string         `json:"path"`
	Score    *float64       `json:"score,omitempty"`
	LOC      *int           `json:"loc,omitempty"`
	Children []*HeatmapNode `json:"children,omitempty"`
}

// IsDir reports whether the node is an aggregation point rather than a file leaf.
func (n *HeatmapNode) IsDir() bool {
	return n.Children != nil
}

// CouplingPair is one change-coupling edge between two files.
type CouplingPair struct {
	FileA         string  `json:"file_a"`
	FileB         string  `json:"file_b"`
	CouplingRatio float64 `json:"coupling_ratio"`
	CoChangeCount int     `json:"co_change_count"`
	HasImportLink bool    `json:"has_import_link"`
}

// CoChangeTable holds the co-change facts extracted from history: every
// observed file pair with its co-change count, plus per-file total change
// counts used as ratio denominators.
type CoChangeTable struct {
	Pairs            []CoChangePair `json:"pairs"`
	FileChangeCounts map[string]int `json:"file_change_counts"`
}

// CoChangePair is one (file, file, count) triple from the co-change table.
type CoChangePair struct {
	FileA string `json:"file_a"`
	FileB string `json:"file_b"`
	Count int    `json:"count"`
}
