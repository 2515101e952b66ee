package contract

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"
)

// MockGitClient is a testify mock for the GitClient type.
type MockGitClient struct {
	mock.Mock
}

var _ GitClient = &MockGitClient{} // Compile-time check

// Run implements the GitClient interface.
func (m *MockGitClient) Run(ctx context.Context, repoPath string, args ...string) ([]byte, error) {
	var mockArgs []any
	mockArgs = append(mockArgs, ctx, repoPath)
	for _, arg := range args {
		mockArgs = append(mockArgs, arg)
	}
	ret := m.Called(mockArgs...)
	output, _ := ret.Get(0).([]byte)
	return output, ret.Error(1)
}

// IsRepository implements the GitClient interface.
func (m *MockGitClient) IsRepository(ctx context.Context, path string) bool {
	ret := m.Called(ctx, path)
	return ret.Bool(0)
}

// RepoRoot implements the GitClient interface.
func (m *MockGitClient) RepoRoot(ctx context.Context, contextPath string) (string, error) {
	ret := m.Called(ctx, contextPath)
	root, _ := ret.Get(0).(string)
	return root, ret.Error(1)
}

// CurrentBranch implements the GitClient interface.
func (m *MockGitClient) CurrentBranch(ctx context.Context, repoPath string) (string, error) {
	ret := m.Called(ctx, repoPath)
	branch, _ := ret.Get(0).(string)
	return branch, ret.Error(1)
}

// ActivityLog implements the GitClient interface.
func (m *MockGitClient) ActivityLog(ctx context.Context, repoPath string, since time.Time) ([]byte, error) {
	ret := m.Called(ctx, repoPath, since)
	output, _ := ret.Get(0).([]byte)
	return output, ret.Error(1)
}

// AuthorLineCounts implements the GitClient interface.
func (m *MockGitClient) AuthorLineCounts(ctx context.Context, repoPath string, path string) (map[string]int, error) {
	ret := m.Called(ctx, repoPath, path)
	counts, _ := ret.Get(0).(map[string]int)
	return counts, ret.Error(1)
}
