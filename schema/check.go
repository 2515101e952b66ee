package schema

// CheckResult holds the outcome of a policy check over the stored scores.
type CheckResult struct {
	Passed         bool             `json:"passed"`
	FileCount      int              `json:"file_count"`
	WorkspaceScore float64          `json:"workspace_score"`
	HighDebtCount  int              `json:"high_debt_count"`
	Violations     []CheckViolation `json:"violations"`
}

// CheckViolation is one breached gate: a workspace-wide limit or a debt
// budget over a path pattern.
type CheckViolation struct {
	Gate     string  `json:"gate"`    // max-mean, max-high-debt or budget
	Subject  string  `json:"subject"` // workspace, or the budget pattern
	Observed float64 `json:"observed"`
	Limit    float64 `json:"limit"`
}

// BudgetUsage pairs a debt budget with the current mean composite score of
// the files it covers.
type BudgetUsage struct {
	Budget    DebtBudget `json:"budget"`
	MeanScore float64    `json:"mean_score"`
	FileCount int        `json:"file_count"`
}
