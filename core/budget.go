package core

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/debtengine/debtengine/internal/contract"
	"github.com/debtengine/debtengine/internal/outwriter"
	"github.com/debtengine/debtengine/schema"
)

// ExecuteBudgetSet creates or replaces the debt budget for a path pattern.
// It serves as the main entry point for 'budget set'.
func (e *Engine) ExecuteBudgetSet(_ context.Context, _ *contract.Config, pattern, label string, maxScore float64) error {
	pattern = strings.TrimSpace(pattern)
	if pattern == "" {
		return errors.New("a budget needs a path pattern")
	}
	if maxScore <= 0 || maxScore > 100 {
		return fmt.Errorf("max score must be between 0 and 100 (received %.1f)", maxScore)
	}
	if label == "" {
		label = pattern
	}

	store := e.mgr.GetScoreStore()

	// Set semantics: one budget per pattern.
	existing, err := store.ListBudgets()
	if err != nil {
		return fmt.Errorf("failed to list debt budgets: %w", err)
	}
	for _, b := range existing {
		if b.Pattern == pattern {
			if err := store.DeleteBudget(b.ID); err != nil {
				return fmt.Errorf("failed to replace budget for %s: %w", pattern, err)
			}
		}
	}

	budget := &schema.DebtBudget{
		ID:        uuid.NewString(),
		Pattern:   pattern,
		Label:     label,
		MaxScore:  maxScore,
		CreatedAt: time.Now().Unix(),
	}
	if err := store.AddBudget(budget); err != nil {
		return fmt.Errorf("failed to set budget: %w", err)
	}

	fmt.Printf("Budget %s caps %s at %.1f\n", budget.ID, pattern, maxScore)
	return nil
}

// GetBudgetResults pairs every budget with the mean score of the files it
// covers. Before the first scan there are no scores, so usages report zero
// files rather than failing.
func (e *Engine) GetBudgetResults(_ context.Context, cfg *contract.Config) ([]schema.BudgetUsage, time.Duration, error) {
	start := time.Now()

	budgets, err := e.mgr.GetScoreStore().ListBudgets()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list debt budgets: %w", err)
	}

	var files []schema.FileScore
	if view, err := e.ensureView(cfg); err == nil {
		files = view.Files
	}

	usages := make([]schema.BudgetUsage, 0, len(budgets))
	for _, budget := range budgets {
		usages = append(usages, budgetUsage(budget, files))
	}
	return usages, time.Since(start), nil
}

// ExecuteBudgetList prints every budget with its current usage.
// It serves as the main entry point for 'budget list'.
func (e *Engine) ExecuteBudgetList(ctx context.Context, cfg *contract.Config) error {
	usages, duration, err := e.GetBudgetResults(ctx, cfg)
	if err != nil {
		return err
	}
	return outwriter.PrintBudgetResults(usages, cfg, duration)
}

// ExecuteBudgetRemove deletes a budget by id.
// It serves as the main entry point for 'budget rm'.
func (e *Engine) ExecuteBudgetRemove(_ context.Context, _ *contract.Config, id string) error {
	err := e.mgr.GetScoreStore().DeleteBudget(id)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("no budget with id %s", id)
	}
	if err != nil {
		return fmt.Errorf("failed to delete budget: %w", err)
	}

	fmt.Printf("Deleted budget %s\n", id)
	return nil
}
