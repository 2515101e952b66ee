package core

import (
	"context"
	"fmt"
	"path"
	"strings"
	"time"

	"github.com/debtengine/debtengine/internal/contract"
	"github.com/debtengine/debtengine/schema"
)

// CheckOptions carries the gate limits for a policy check. A zero MaxMean
// disables the workspace mean gate and a negative MaxHighDebt disables the
// high-debt count gate. Budgets from the store are always enforced.
type CheckOptions struct {
	MaxMean     float64
	MaxHighDebt int
}

// GetCheckResults evaluates the stored scores against the workspace gates
// and every persisted debt budget.
func (e *Engine) GetCheckResults(_ context.Context, cfg *contract.Config, opts CheckOptions) (*schema.CheckResult, time.Duration, error) {
	start := time.Now()

	view, err := e.ensureView(cfg)
	if err != nil {
		return nil, 0, err
	}

	result := &schema.CheckResult{
		Passed:         true,
		FileCount:      view.FileCount,
		WorkspaceScore: view.WorkspaceScore,
		HighDebtCount:  view.HighDebtCount,
	}

	if opts.MaxMean > 0 && view.WorkspaceScore > opts.MaxMean {
		result.Violations = append(result.Violations, schema.CheckViolation{
			Gate:     "max-mean",
			Subject:  "workspace",
			Observed: view.WorkspaceScore,
			Limit:    opts.MaxMean,
		})
	}
	if opts.MaxHighDebt >= 0 && view.HighDebtCount > opts.MaxHighDebt {
		result.Violations = append(result.Violations, schema.CheckViolation{
			Gate:     "max-high-debt",
			Subject:  "workspace",
			Observed: float64(view.HighDebtCount),
			Limit:    float64(opts.MaxHighDebt),
		})
	}

	budgets, err := e.mgr.GetScoreStore().ListBudgets()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to load debt budgets: %w", err)
	}
	for _, budget := range budgets {
		usage := budgetUsage(budget, view.Files)
		if usage.FileCount > 0 && usage.MeanScore > budget.MaxScore {
			result.Violations = append(result.Violations, schema.CheckViolation{
				Gate:     "budget",
				Subject:  budget.Pattern,
				Observed: usage.MeanScore,
				Limit:    budget.MaxScore,
			})
		}
	}

	result.Passed = len(result.Violations) == 0
	return result, time.Since(start), nil
}

// ExecuteCheck evaluates the gates and prints a concise report for CI/CD.
// A failed check returns an error so the command exits non-zero.
func (e *Engine) ExecuteCheck(ctx context.Context, cfg *contract.Config, opts CheckOptions) error {
	start := time.Now()

	result, _, err := e.GetCheckResults(ctx, cfg, opts)
	if err != nil {
		return err
	}

	printCheckResult(result, opts, time.Since(start))

	if !result.Passed {
		return fmt.Errorf("%d violation(s) found", len(result.Violations))
	}
	return nil
}

// budgetUsage computes the mean composite score across the files a budget
// pattern covers.
func budgetUsage(budget *schema.DebtBudget, files []schema.FileScore) schema.BudgetUsage {
	var sum float64
	count := 0
	for i := range files {
		if budgetMatches(budget.Pattern, files[i].RelativePath) {
			sum += files[i].CompositeScore
			count++
		}
	}
	usage := schema.BudgetUsage{Budget: *budget, FileCount: count}
	if count > 0 {
		usage.MeanScore = sum / float64(count)
	}
	return usage
}

// budgetMatches reports whether a relative path falls under a budget pattern:
// an exact path, a directory prefix, or a glob.
func budgetMatches(pattern, relPath string) bool {
	pattern = strings.TrimSpace(pattern)
	if pattern == "" {
		return false
	}

	if strings.ContainsAny(pattern, "*?[") {
		if ok, err := path.Match(pattern, relPath); err == nil && ok {
			return true
		}
		ok, err := path.Match(pattern, path.Base(relPath))
		return err == nil && ok
	}

	prefix := strings.TrimSuffix(pattern, "/") + "/"
	return relPath == pattern || strings.HasPrefix(relPath, prefix)
}

// printCheckResult prints the check result in a concise format suitable for CI/CD.
func printCheckResult(result *schema.CheckResult, opts CheckOptions, duration time.Duration) {
	printCheckHeader(result, opts, duration)

	if result.Passed {
		printCheckSuccess(result)
	} else {
		printCheckFailure(result)
	}
}

// printCheckHeader prints the common header information for check results.
func printCheckHeader(result *schema.CheckResult, opts CheckOptions, duration time.Duration) {
	fmt.Println("Debt Check Results:")

	maxMean := "off"
	if opts.MaxMean > 0 {
		maxMean = fmt.Sprintf("%.1f", opts.MaxMean)
	}
	maxHighDebt := "off"
	if opts.MaxHighDebt >= 0 {
		maxHighDebt = fmt.Sprintf("%d", opts.MaxHighDebt)
	}

	// Define labels and values for dynamic padding
	labels := []string{"Max mean:", "Max high-debt:"}
	values := []any{maxMean, maxHighDebt}

	// Find the longest label for consistent padding
	maxLabelLen := 0
	for _, label := range labels {
		if len(label) > maxLabelLen {
			maxLabelLen = len(label)
		}
	}

	for i, label := range labels {
		fmt.Printf("  %-*s %v\n", maxLabelLen+1, label, values[i])
	}
	fmt.Println()

	fmt.Printf("Checked %d files in %v\n\n", result.FileCount, duration)
}

// printCheckSuccess prints the success case output.
func printCheckSuccess(result *schema.CheckResult) {
	fmt.Printf("All gates passed\n\n")
	fmt.Println("Scores observed:")
	fmt.Printf("  workspace mean: %.1f\n", result.WorkspaceScore)
	fmt.Printf("  high-debt files: %d\n", result.HighDebtCount)
}

// printCheckFailure prints the failure case output.
func printCheckFailure(result *schema.CheckResult) {
	fmt.Printf("Check failed: %d violation(s) across %d files\n\n", len(result.Violations), result.FileCount)

	for _, v := range result.Violations {
		fmt.Printf("  - %s %s (observed: %.1f > limit: %.1f)\n", v.Gate, v.Subject, v.Observed, v.Limit)
	}
	fmt.Println()
}
