package schema

// Register item enums. Values are checked at the store boundary.
type (
	// RegisterSeverity is the urgency of a tracked debt item.
	RegisterSeverity string

	// RegisterType categorizes a tracked debt item.
	RegisterType string

	// RegisterStatus is the lifecycle state of a tracked debt item.
	RegisterStatus string
)

// All register severities.
const (
	SeverityLow      RegisterSeverity = "low"
	SeverityMedium   RegisterSeverity = "medium"
	SeverityHigh     RegisterSeverity = "high"
	SeverityCritical RegisterSeverity = "critical"
)

// All register item types.
const (
	DebtDesign        RegisterType = "design"
	DebtCode          RegisterType = "code"
	DebtTest          RegisterType = "test"
	DebtDependency    RegisterType = "dependency"
	DebtDocumentation RegisterType = "documentation"
	DebtSecurity      RegisterType = "security"
	DebtPerformance   RegisterType = "performance"
)

// All register statuses.
const (
	StatusOpen       RegisterStatus = "open"
	StatusInProgress RegisterStatus = "in_progress"
	StatusResolved   RegisterStatus = "resolved"
	StatusDeferred   RegisterStatus = "deferred"
	StatusAccepted   RegisterStatus = "accepted"
)

// ValidRegisterSeverities lists all valid register severities.
var ValidRegisterSeverities = map[RegisterSeverity]struct{}{
	SeverityLow:      {},
	SeverityMedium:   {},
	SeverityHigh:     {},
	SeverityCritical: {},
}

// ValidRegisterTypes lists all valid register item types.
var ValidRegisterTypes = map[RegisterType]struct{}{
	DebtDesign:        {},
	DebtCode:          {},
	DebtTest:          {},
	DebtDependency:    {},
	DebtDocumentation: {},
	DebtSecurity:      {},
	DebtPerformance:   {},
}

// ValidRegisterStatuses lists all valid register statuses.
var ValidRegisterStatuses = map[RegisterStatus]struct{}{
	StatusOpen:       {},
	StatusInProgress: {},
	StatusResolved:   {},
	StatusDeferred:   {},
	StatusAccepted:   {},
}

// DebtSnapshot is one row of the append-only workspace history log, written
// after every full scan and queried in timestamp order.
type DebtSnapshot struct {
	ID             int64   `json:"id"`
	Timestamp      int64   `json:"timestamp"` // Seconds since epoch
	CompositeScore float64 `json:"composite_score"`
	FileCount      int     `json:"file_count"`
	HighDebtCount  int     `json:"high_debt_count"`
}

// RegisterItem is a manually tracked debt item.
type RegisterItem struct {
	ID        string           `json:"id"`
	CreatedAt int64            `json:"created_at"`
	UpdatedAt int64            `json:"updated_at"`
	Title     string           `json:"title"`
	Note      string           `json:"note"`
	FilePath  string           `json:"file_path,omitempty"`
	Severity  RegisterSeverity `json:"severity"`
	Type      RegisterType     `json:"item_type"`
	Status    RegisterStatus   `json:"status"`
}

// DebtBudget caps the mean composite score for files under a path prefix.
type DebtBudget struct {
	ID        string  `json:"id"`
	Pattern   string  `json:"pattern"` // Relative path prefix the budget applies to
	Label     string  `json:"label"`
	MaxScore  float64 `json:"max_score"`
	CreatedAt int64   `json:"created_at"`
}

// WatchPin is one pinned file on the watchlist.
type WatchPin struct {
	FilePath string `json:"file_path"`
	PinnedAt int64  `json:"pinned_at"`
}

// WatchlistEntry joins a pin with the file's current stored score, when any.
type WatchlistEntry struct {
	RelativePath string   `json:"relative_path"`
	PinnedAt     int64    `json:"pinned_at"`
	Score        *float64 `json:"score,omitempty"`
}

// WorkspaceMeta describes the currently open workspace.
type WorkspaceMeta struct {
	Root           string `json:"root"`
	Branch         string `json:"branch"`
	FileCount      int    `json:"file_count"`
	LastAnalysisAt int64  `json:"last_analysis_at"` // Zero when never scanned
}

// StoreStatus reports durable-store health for the status command.
type StoreStatus struct {
	Backend       string           `json:"backend"`
	Connected     bool             `json:"connected"`
	FileCount     int64            `json:"file_count"`
	SnapshotCount int64            `json:"snapshot_count"`
	TableSizes    map[string]int64 `json:"table_sizes"`
}
