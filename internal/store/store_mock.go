package store

import (
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/debtengine/debtengine/internal/contract"
	"github.com/debtengine/debtengine/schema"
)

// MockStoreManager is a mock implementation of StoreManager for testing.
type MockStoreManager struct {
	mock.Mock
}

var _ contract.StoreManager = &MockStoreManager{} // Compile-time check

// GetScoreStore implements the StoreManager interface.
func (m *MockStoreManager) GetScoreStore() contract.ScoreStore {
	ret := m.Called()
	scores, _ := ret.Get(0).(contract.ScoreStore)
	return scores
}

// MockScoreStore is a mock implementation of ScoreStore for testing.
type MockScoreStore struct {
	mock.Mock
}

var _ contract.ScoreStore = &MockScoreStore{} // Compile-time check

// UpsertScore implements the ScoreStore interface.
func (m *MockScoreStore) UpsertScore(score *schema.FileScore, mtime int64) error {
	args := m.Called(score, mtime)
	return args.Error(0)
}

// UpsertScores implements the ScoreStore interface.
func (m *MockScoreStore) UpsertScores(scores []*schema.FileScore, mtimes map[string]int64) error {
	args := m.Called(scores, mtimes)
	return args.Error(0)
}

// GetScore implements the ScoreStore interface.
func (m *MockScoreStore) GetScore(path string) (*schema.FileScore, error) {
	args := m.Called(path)
	score, _ := args.Get(0).(*schema.FileScore)
	return score, args.Error(1)
}

// GetAllScores implements the ScoreStore interface.
func (m *MockScoreStore) GetAllScores() ([]*schema.FileScore, error) {
	args := m.Called()
	scores, _ := args.Get(0).([]*schema.FileScore)
	return scores, args.Error(1)
}

// GetMtime implements the ScoreStore interface.
func (m *MockScoreStore) GetMtime(path string) (int64, error) {
	args := m.Called(path)
	return args.Get(0).(int64), args.Error(1)
}

// UpdateSupervision implements the ScoreStore interface.
func (m *MockScoreStore) UpdateSupervision(path string, status schema.SupervisionStatus, note string, scoreAtReview float64) error {
	args := m.Called(path, status, note, scoreAtReview)
	return args.Error(0)
}

// AddSnapshot implements the ScoreStore interface.
func (m *MockScoreStore) AddSnapshot(snap *schema.DebtSnapshot) error {
	args := m.Called(snap)
	return args.Error(0)
}

// ListSnapshots implements the ScoreStore interface.
func (m *MockScoreStore) ListSnapshots(limit int) ([]*schema.DebtSnapshot, error) {
	args := m.Called(limit)
	snaps, _ := args.Get(0).([]*schema.DebtSnapshot)
	return snaps, args.Error(1)
}

// PruneSnapshots implements the ScoreStore interface.
func (m *MockScoreStore) PruneSnapshots(retain int) error {
	args := m.Called(retain)
	return args.Error(0)
}

// AddRegisterItem implements the ScoreStore interface.
func (m *MockScoreStore) AddRegisterItem(item *schema.RegisterItem) error {
	args := m.Called(item)
	return args.Error(0)
}

// UpdateRegisterItem implements the ScoreStore interface.
func (m *MockScoreStore) UpdateRegisterItem(item *schema.RegisterItem) error {
	args := m.Called(item)
	return args.Error(0)
}

// GetRegisterItem implements the ScoreStore interface.
func (m *MockScoreStore) GetRegisterItem(id string) (*schema.RegisterItem, error) {
	args := m.Called(id)
	item, _ := args.Get(0).(*schema.RegisterItem)
	return item, args.Error(1)
}

// ListRegisterItems implements the ScoreStore interface.
func (m *MockScoreStore) ListRegisterItems(status schema.RegisterStatus) ([]*schema.RegisterItem, error) {
	args := m.Called(status)
	items, _ := args.Get(0).([]*schema.RegisterItem)
	return items, args.Error(1)
}

// DeleteRegisterItem implements the ScoreStore interface.
func (m *MockScoreStore) DeleteRegisterItem(id string) error {
	args := m.Called(id)
	return args.Error(0)
}

// AddBudget implements the ScoreStore interface.
func (m *MockScoreStore) AddBudget(budget *schema.DebtBudget) error {
	args := m.Called(budget)
	return args.Error(0)
}

// ListBudgets implements the ScoreStore interface.
func (m *MockScoreStore) ListBudgets() ([]*schema.DebtBudget, error) {
	args := m.Called()
	budgets, _ := args.Get(0).([]*schema.DebtBudget)
	return budgets, args.Error(1)
}

// DeleteBudget implements the ScoreStore interface.
func (m *MockScoreStore) DeleteBudget(id string) error {
	args := m.Called(id)
	return args.Error(0)
}

// PinFile implements the ScoreStore interface.
func (m *MockScoreStore) PinFile(path string, pinnedAt time.Time) error {
	args := m.Called(path, pinnedAt)
	return args.Error(0)
}

// UnpinFile implements the ScoreStore interface.
func (m *MockScoreStore) UnpinFile(path string) error {
	args := m.Called(path)
	return args.Error(0)
}

// ListPins implements the ScoreStore interface.
func (m *MockScoreStore) ListPins() ([]*schema.WatchPin, error) {
	args := m.Called()
	pins, _ := args.Get(0).([]*schema.WatchPin)
	return pins, args.Error(1)
}

// ReplaceCouplings implements the ScoreStore interface.
func (m *MockScoreStore) ReplaceCouplings(pairs []*schema.CouplingPair) error {
	args := m.Called(pairs)
	return args.Error(0)
}

// ListCouplings implements the ScoreStore interface.
func (m *MockScoreStore) ListCouplings(limit int) ([]*schema.CouplingPair, error) {
	args := m.Called(limit)
	pairs, _ := args.Get(0).([]*schema.CouplingPair)
	return pairs, args.Error(1)
}

// GetStatus implements the ScoreStore interface.
func (m *MockScoreStore) GetStatus() (schema.StoreStatus, error) {
	args := m.Called()
	status, _ := args.Get(0).(schema.StoreStatus)
	return status, args.Error(1)
}

// Clear implements the ScoreStore interface.
func (m *MockScoreStore) Clear() error {
	args := m.Called()
	return args.Error(0)
}

// Close implements the ScoreStore interface.
func (m *MockScoreStore) Close() error {
	args := m.Called()
	return args.Error(0)
}
