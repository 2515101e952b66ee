package schema

// Custom string types for type safety.
type (
	// SignalKey names one of the eight debt signals.
	SignalKey string

	// Language is the language tag derived from a file extension.
	Language string

	// SupervisionStatus is the reviewer tri-state on a scored file.
	SupervisionStatus string

	// OutputMode represents the format of the output.
	OutputMode string

	// DatabaseBackend represents the database backend for the durable store.
	DatabaseBackend string
)

// The eight signal keys, in canonical order.
const (
	SignalChurnRate              SignalKey = "churn_rate"
	SignalCodeSmellDensity       SignalKey = "code_smell_density"
	SignalCouplingIndex          SignalKey = "coupling_index"
	SignalChangeCoupling         SignalKey = "change_coupling"
	SignalTestCoverageGap        SignalKey = "test_coverage_gap"
	SignalKnowledgeConcentration SignalKey = "knowledge_concentration"
	SignalCyclomaticComplexity   SignalKey = "cyclomatic_complexity"
	SignalDecisionStaleness      SignalKey = "decision_staleness"
)

// SignalOrder fixes the canonical iteration order for breakdowns and output.
var SignalOrder = []SignalKey{
	SignalChurnRate,
	SignalCodeSmellDensity,
	SignalCouplingIndex,
	SignalChangeCoupling,
	SignalTestCoverageGap,
	SignalKnowledgeConcentration,
	SignalCyclomaticComplexity,
	SignalDecisionStaleness,
}

// Language tags. An unrecognized extension maps to LangUnknown, which selects
// the most conservative detector behavior.
const (
	LangTypeScript Language = "typescript"
	LangJavaScript Language = "javascript"
	LangPython     Language = "python"
	LangGo         Language = "go"
	LangRust       Language = "rust"
	LangJava       Language = "java"
	LangUnknown    Language = "unknown"
)

// Supervision states a reviewer can assign to a scored file.
const (
	SupervisionNone       SupervisionStatus = "none"
	SupervisionAcceptable SupervisionStatus = "acceptable"
	SupervisionRegressed  SupervisionStatus = "regressed"
)

// All output modes supported.
const (
	TextOut OutputMode = "text" // default
	CSVOut  OutputMode = "csv"
	JSONOut OutputMode = "json"
)

// All database backends supported by the durable store.
const (
	SQLiteBackend     DatabaseBackend = "sqlite" // default
	MySQLBackend      DatabaseBackend = "mysql"
	PostgreSQLBackend DatabaseBackend = "postgresql"
	NoneBackend       DatabaseBackend = "none"
)

// ValidOutputModes lists all valid output modes.
var ValidOutputModes = map[OutputMode]struct{}{
	TextOut: {},
	CSVOut:  {},
	JSONOut: {},
}

// ValidDatabaseBackends lists all valid store backends.
var ValidDatabaseBackends = map[DatabaseBackend]struct{}{
	SQLiteBackend:     {},
	MySQLBackend:      {},
	PostgreSQLBackend: {},
	NoneBackend:       {},
}

// ValidSupervisionStatuses lists all valid supervision states.
var ValidSupervisionStatuses = map[SupervisionStatus]struct{}{
	SupervisionNone:       {},
	SupervisionAcceptable: {},
	SupervisionRegressed:  {},
}

// Scoring thresholds and bounds.
const (
	// HighDebtThreshold is the default composite score above which a file
	// counts as high-debt.
	HighDebtThreshold = 65.0

	// CriticalThreshold is the default composite score above which a file is
	// labeled critical.
	CriticalThreshold = 80.0

	// History window bounds in days. Configured values are clamped into
	// [MinHistoryDays, MaxHistoryDays].
	MinHistoryDays     = 7
	MaxHistoryDays     = 365
	DefaultHistoryDays = 90
)

// Change-coupling query defaults.
const (
	// MinCoChangeCount filters out pairs seen together fewer than this many times.
	MinCoChangeCount = 2

	// DefaultCouplingRatio is the default minimum coupling ratio.
	DefaultCouplingRatio = 0.05

	// MaxCouplingResults caps the number of pairs returned by a couplings query.
	MaxCouplingResults = 200

	// TopPeerCount is how many of the strongest peers feed the change-coupling signal.
	TopPeerCount = 5
)

// Workspace layout under the scanned root.
const (
	// WorkspaceDirName is the per-workspace data directory.
	WorkspaceDirName = ".debtengine"

	// SettingsFileName is the workspace settings file inside WorkspaceDirName.
	SettingsFileName = "settings.json"

	// StoreFileName is the default SQLite store file inside WorkspaceDirName.
	StoreFileName = "debt.db"

	// ADRDirName is the ADR archive directory inside WorkspaceDirName.
	ADRDirName = "adrs"
)

// Watchlist and snapshot housekeeping.
const (
	// MaxWatchlistPins caps the number of pinned files.
	MaxWatchlistPins = 5

	// DefaultSnapshotRetention is how many debt snapshots are kept per workspace.
	DefaultSnapshotRetention = 52
)
