package schema

// SettingsSchemaVersion is the current version of the workspace settings file.
// Version 1 migrated percentage weights to fractions; version 2 introduced
// the snapshot keys.
const SettingsSchemaVersion = 2

// WorkspaceSettings is the persisted shape of .debtengine/settings.json.
// Field names stay camelCase on disk for compatibility with existing
// workspaces.
type WorkspaceSettings struct {
	SchemaVersion     int     `json:"schema_version"`
	GitHistoryDays    int     `json:"gitHistoryDays"`
	Weights           Weights `json:"weights"`
	WarningThreshold  float64 `json:"warningThreshold"`
	CriticalThreshold float64 `json:"criticalThreshold"`
	SnapshotSchedule  string  `json:"snapshotSchedule"`
	SnapshotRetention int     `json:"snapshotRetention"`
}

// DefaultWorkspaceSettings returns the stock settings written on first open.
func DefaultWorkspaceSettings() *WorkspaceSettings {
	return &WorkspaceSettings{
		SchemaVersion:     SettingsSchemaVersion,
		GitHistoryDays:    DefaultHistoryDays,
		Weights:           DefaultWeights(),
		WarningThreshold:  HighDebtThreshold,
		CriticalThreshold: CriticalThreshold,
		SnapshotSchedule:  "weekly",
		SnapshotRetention: DefaultSnapshotRetention,
	}
}

// Sanitize clamps every field into its valid range and normalizes the weight
// map. Malformed values never escape this boundary.
func (s *WorkspaceSettings) Sanitize() {
	s.GitHistoryDays = clampInt(s.GitHistoryDays, MinHistoryDays, MaxHistoryDays, DefaultHistoryDays)
	s.WarningThreshold = clampFloat(s.WarningThreshold, 30, 90, HighDebtThreshold)
	s.CriticalThreshold = clampFloat(s.CriticalThreshold, 50, 100, CriticalThreshold)
	s.SnapshotRetention = clampInt(s.SnapshotRetention, 10, 260, DefaultSnapshotRetention)

	switch s.SnapshotSchedule {
	case "weekly", "biweekly", "manual":
	default:
		s.SnapshotSchedule = "weekly"
	}

	if s.Weights == nil {
		s.Weights = DefaultWeights()
	} else {
		s.Weights.migratePercentages()
		s.Weights = s.Weights.Normalized()
	}
	s.SchemaVersion = SettingsSchemaVersion
}

// migratePercentages rescales weight maps saved by schema version 0, which
// stored percentages instead of fractions.
func (w Weights) migratePercentages() {
	percentageLike := false
	for _, v := range w {
		if v > 1.0 {
			percentageLike = true
			break
		}
	}
	if !percentageLike {
		return
	}
	for key, v := range w {
		w[key] = v / 100.0
	}
}

// AnalysisSettings is the effective, already-sanitized subset the scoring
// engine consumes: the history window and the normalized weight map.
type AnalysisSettings struct {
	HistoryDays int
	Weights     Weights
}

// Analysis extracts the effective analysis settings.
func (s *WorkspaceSettings) Analysis() AnalysisSettings {
	return AnalysisSettings{
		HistoryDays: s.GitHistoryDays,
		Weights:     s.Weights,
	}
}

func clampInt(v, lo, hi, def int) int {
	if v == 0 {
		return def
	}
	return min(max(v, lo), hi)
}

func clampFloat(v, lo, hi, def float64) float64 {
	if v == 0 {
		return def
	}
	return min(max(v, lo), hi)
}
