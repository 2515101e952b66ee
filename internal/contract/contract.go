// Package contract provides interfaces and shared utilities for internal architecture.
package contract

import (
	"context"
	"time"

	"github.com/debtengine/debtengine/schema"
)

// GitClient defines the necessary operations for Git history analysis.
// This allows the core scoring logic to be tested without needing a real git executable.
type GitClient interface {
	// --- Generic / Low-Level ---

	// Run executes a git command and returns its stdout.
	// Its use should be minimized in favor of the explicit methods below.
	Run(ctx context.Context, repoPath string, args ...string) ([]byte, error)

	// --- Repository State ---

	// IsRepository reports whether the given path sits inside a Git work tree.
	IsRepository(ctx context.Context, path string) bool

	// RepoRoot returns the absolute path to the root of the Git repository
	// containing the given context path.
	RepoRoot(ctx context.Context, contextPath string) (string, error)

	// CurrentBranch returns the name of the checked-out branch.
	CurrentBranch(ctx context.Context, repoPath string) (string, error)

	// --- History ---

	// ActivityLog returns the raw commit log output (commit headers plus changed
	// file names) for commits made after the given time. Callers parse it into
	// per-file change counts and co-change pairs.
	ActivityLog(ctx context.Context, repoPath string, since time.Time) ([]byte, error)

	// AuthorLineCounts returns the number of surviving lines attributed to each
	// author of the file at HEAD, keyed by author name.
	AuthorLineCounts(ctx context.Context, repoPath string, path string) (map[string]int, error)
}

// ScoreStore defines the interface for durable score and workspace record storage.
// This allows mocking the store for testing.
type ScoreStore interface {
	// --- File Scores ---

	// UpsertScore inserts or replaces the durable row for a single file.
	UpsertScore(score *schema.FileScore, mtime int64) error

	// UpsertScores inserts or replaces many rows inside one transaction.
	UpsertScores(scores []*schema.FileScore, mtimes map[string]int64) error

	// GetScore returns the durable row for a file, or sql.ErrNoRows if absent.
	GetScore(path string) (*schema.FileScore, error)

	// GetAllScores returns every durable file row, ordered by composite score descending.
	GetAllScores() ([]*schema.FileScore, error)

	// GetMtime returns the cached modification time for a file, or sql.ErrNoRows if absent.
	GetMtime(path string) (int64, error)

	// UpdateSupervision records a review decision against an existing row.
	UpdateSupervision(path string, status schema.SupervisionStatus, note string, scoreAtReview float64) error

	// --- Snapshots ---

	AddSnapshot(snap *schema.DebtSnapshot) error

	// ListSnapshots returns snapshots newest first. A limit of zero or less
	// returns the whole log.
	ListSnapshots(limit int) ([]*schema.DebtSnapshot, error)

	// PruneSnapshots deletes the oldest snapshots beyond the retention count.
	PruneSnapshots(retain int) error

	// --- Debt Register ---

	AddRegisterItem(item *schema.RegisterItem) error
	UpdateRegisterItem(item *schema.RegisterItem) error
	GetRegisterItem(id string) (*schema.RegisterItem, error)

	// ListRegisterItems returns items with the given status, newest first.
	// An empty status returns every item.
	ListRegisterItems(status schema.RegisterStatus) ([]*schema.RegisterItem, error)
	DeleteRegisterItem(id string) error

	// --- Budgets ---

	AddBudget(budget *schema.DebtBudget) error
	ListBudgets() ([]*schema.DebtBudget, error)
	DeleteBudget(id string) error

	// --- Watchlist ---

	PinFile(path string, pinnedAt time.Time) error
	UnpinFile(path string) error
	ListPins() ([]*schema.WatchPin, error)

	// --- Couplings ---

	// ReplaceCouplings swaps the persisted co-change pair table wholesale.
	ReplaceCouplings(pairs []*schema.CouplingPair) error
	ListCouplings(limit int) ([]*schema.CouplingPair, error)

	// --- Lifecycle ---

	GetStatus() (schema.StoreStatus, error)

	// Clear wipes every table. Used by 'store clear'.
	Clear() error
	Close() error
}

// StoreManager defines the interface for managing the configured score store.
// This allows the storage layer to be mocked for testing.
type StoreManager interface {
	GetScoreStore() ScoreStore
}
