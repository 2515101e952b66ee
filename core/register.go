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

// RegisterAddOptions carries the fields of a new debt register item.
// Severity defaults to medium and type to code when left empty.
type RegisterAddOptions struct {
	Title    string
	Note     string
	FilePath string
	Severity string
	Type     string
}

// ExecuteRegisterAdd records a new debt item in the register.
// It serves as the main entry point for 'register add'.
func (e *Engine) ExecuteRegisterAdd(_ context.Context, cfg *contract.Config, opts RegisterAddOptions) error {
	title := strings.TrimSpace(opts.Title)
	if title == "" {
		return errors.New("a debt item needs a title")
	}

	severity := schema.SeverityMedium
	if opts.Severity != "" {
		severity = schema.RegisterSeverity(strings.ToLower(opts.Severity))
		if _, ok := schema.ValidRegisterSeverities[severity]; !ok {
			return fmt.Errorf("invalid severity '%s'. must be low, medium, high, critical", opts.Severity)
		}
	}
	itemType := schema.DebtCode
	if opts.Type != "" {
		itemType = schema.RegisterType(strings.ToLower(opts.Type))
		if _, ok := schema.ValidRegisterTypes[itemType]; !ok {
			return fmt.Errorf("invalid item type '%s'", opts.Type)
		}
	}

	relPath := ""
	if opts.FilePath != "" {
		_, rel, err := resolveWorkspacePath(cfg.WorkspaceRoot, opts.FilePath)
		if err != nil {
			return err
		}
		relPath = rel
	}

	now := time.Now().Unix()
	item := &schema.RegisterItem{
		ID:        uuid.NewString(),
		CreatedAt: now,
		UpdatedAt: now,
		Title:     title,
		Note:      opts.Note,
		FilePath:  relPath,
		Severity:  severity,
		Type:      itemType,
		Status:    schema.StatusOpen,
	}
	if err := e.mgr.GetScoreStore().AddRegisterItem(item); err != nil {
		return fmt.Errorf("failed to add debt item: %w", err)
	}

	fmt.Printf("Added debt item %s\n", item.ID)
	return nil
}

// ExecuteRegisterList prints the register, optionally filtered by status.
// It serves as the main entry point for 'register list'.
func (e *Engine) ExecuteRegisterList(_ context.Context, cfg *contract.Config, statusArg string) error {
	start := time.Now()

	status := schema.RegisterStatus(strings.ToLower(strings.TrimSpace(statusArg)))
	if status != "" {
		if _, ok := schema.ValidRegisterStatuses[status]; !ok {
			return fmt.Errorf("invalid status '%s'. must be open, in_progress, resolved, deferred, accepted", statusArg)
		}
	}

	items, err := e.mgr.GetScoreStore().ListRegisterItems(status)
	if err != nil {
		return fmt.Errorf("failed to list debt items: %w", err)
	}
	return outwriter.PrintRegisterResults(items, cfg, time.Since(start))
}

// ExecuteRegisterResolve marks a debt item as resolved.
// It serves as the main entry point for 'register resolve'.
func (e *Engine) ExecuteRegisterResolve(_ context.Context, _ *contract.Config, id string) error {
	store := e.mgr.GetScoreStore()

	item, err := store.GetRegisterItem(id)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("no debt item with id %s", id)
	}
	if err != nil {
		return fmt.Errorf("failed to load debt item: %w", err)
	}

	item.Status = schema.StatusResolved
	item.UpdatedAt = time.Now().Unix()
	if err := store.UpdateRegisterItem(item); err != nil {
		return fmt.Errorf("failed to update debt item: %w", err)
	}

	fmt.Printf("Resolved debt item %s\n", item.ID)
	return nil
}

// ExecuteRegisterRemove deletes a debt item outright. Resolving is usually
// the better move since it keeps the history.
// It serves as the main entry point for 'register rm'.
func (e *Engine) ExecuteRegisterRemove(_ context.Context, _ *contract.Config, id string) error {
	err := e.mgr.GetScoreStore().DeleteRegisterItem(id)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("no debt item with id %s", id)
	}
	if err != nil {
		return fmt.Errorf("failed to delete debt item: %w", err)
	}

	fmt.Printf("Deleted debt item %s\n", id)
	return nil
}
