package contract

import (
	"context"
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// skipIfGitNotAvailable skips the test if git binary is not found in PATH
func skipIfGitNotAvailable(t *testing.T) {
	t.Helper()
	if _, err := exec.LookPath("git"); err != nil {
		t.Skipf("git binary not found in PATH: %v", err)
	}
}

// initScratchRepo creates a throwaway repository with one commit touching
// main.py, authored by "Dev Author". Returns the repository root.
func initScratchRepo(t *testing.T) string {
	t.Helper()
	skipIfGitNotAvailable(t)

	dir := t.TempDir()
	client := NewLocalGitClient()
	ctx := context.Background()

	steps := [][]string{
		{"init"},
		{"config", "user.email", "dev@example.com"},
		{"config", "user.name", "Dev Author"},
	}
	for _, args := range steps {
		_, err := client.Run(ctx, dir, args...)
		require.NoError(t, err, "git %v should succeed", args)
	}

	content := "import os\n\nprint(os.getcwd())\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "main.py"), []byte(content), 0o644))

	_, err := client.Run(ctx, dir, "add", ".")
	require.NoError(t, err)
	_, err = client.Run(ctx, dir, "-c", "commit.gpgsign=false", "commit", "-m", "add main")
	require.NoError(t, err)

	return dir
}

// TestMockGitClient_Run ensures the mock correctly records and returns
// expected values when its Run method is called.
func TestMockGitClient_Run(t *testing.T) {
	mockClient := new(MockGitClient)

	const expectedRepoPath = "/path/to/repo"
	expectedArgs := []string{"log", "-1", "--oneline"}
	expectedOutput := []byte("a1b2c3d commit message")
	expectedError := errors.New("mocked git error")

	// The Run implementation flattens (repoPath string, args ...string) into a
	// single []any for m.Called(), so the .On() setup must match that shape.
	var calledArgs []any
	ctx := context.Background()
	calledArgs = append(calledArgs, ctx, expectedRepoPath)
	for _, arg := range expectedArgs {
		calledArgs = append(calledArgs, arg)
	}

	mockClient.
		On("Run", calledArgs...).
		Return(expectedOutput, expectedError).
		Once()

	actualOutput, actualError := mockClient.Run(ctx, expectedRepoPath, expectedArgs...)

	assert.Equal(t, expectedOutput, actualOutput, "Run should return the programmed output")
	assert.Equal(t, expectedError, actualError, "Run should return the programmed error")
	mockClient.AssertExpectations(t)
}

// TestNewLocalGitClient tests the constructor for LocalGitClient.
func TestNewLocalGitClient(t *testing.T) {
	client := NewLocalGitClient()
	assert.NotNil(t, client, "NewLocalGitClient should return a non-nil client")
	assert.IsType(t, &LocalGitClient{}, client)
}

// TestLocalGitClient_Run tests the Run method with failure scenarios.
func TestLocalGitClient_Run(t *testing.T) {
	skipIfGitNotAvailable(t)

	client := NewLocalGitClient()
	ctx := context.Background()
	repoRoot := initScratchRepo(t)

	tests := []struct {
		name        string
		repoPath    string
		args        []string
		expectError bool
	}{
		{
			name:        "status in valid repo",
			repoPath:    repoRoot,
			args:        []string{"status"},
			expectError: false,
		},
		{
			name:        "invalid repo path",
			repoPath:    "/nonexistent/path",
			args:        []string{"status"},
			expectError: true,
		},
		{
			name:        "invalid git command",
			repoPath:    repoRoot,
			args:        []string{"invalid-command"},
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := client.Run(ctx, tt.repoPath, tt.args...)
			if tt.expectError {
				assert.Error(t, err, "Run should return an error for %s", tt.name)
			} else {
				assert.NoError(t, err, "Run should not return an error for %s", tt.name)
			}
		})
	}
}

// TestLocalGitClient_IsRepository tests work tree detection.
func TestLocalGitClient_IsRepository(t *testing.T) {
	skipIfGitNotAvailable(t)

	client := NewLocalGitClient()
	ctx := context.Background()

	repoRoot := initScratchRepo(t)
	assert.True(t, client.IsRepository(ctx, repoRoot), "scratch repo should be detected")
	assert.False(t, client.IsRepository(ctx, t.TempDir()), "plain directory should not be detected")
}

// TestLocalGitClient_RepoRoot tests repository root resolution.
func TestLocalGitClient_RepoRoot(t *testing.T) {
	skipIfGitNotAvailable(t)

	client := NewLocalGitClient()
	ctx := context.Background()
	repoRoot := initScratchRepo(t)

	root, err := client.RepoRoot(ctx, repoRoot)
	require.NoError(t, err, "RepoRoot should not return an error inside a repo")

	// Resolve symlinks on both sides; macOS tempdirs live under /var -> /private/var.
	wantRoot, err := filepath.EvalSymlinks(repoRoot)
	require.NoError(t, err)
	gotRoot, err := filepath.EvalSymlinks(root)
	require.NoError(t, err)
	assert.Equal(t, wantRoot, gotRoot)

	// Subdirectories resolve to the same root.
	subDir := filepath.Join(repoRoot, "sub")
	require.NoError(t, os.MkdirAll(subDir, 0o755))
	root2, err := client.RepoRoot(ctx, subDir)
	require.NoError(t, err)
	assert.Equal(t, root, root2)

	_, err = client.RepoRoot(ctx, t.TempDir())
	assert.Error(t, err, "RepoRoot should return an error outside a repo")
}

// TestLocalGitClient_CurrentBranch tests branch name resolution.
func TestLocalGitClient_CurrentBranch(t *testing.T) {
	skipIfGitNotAvailable(t)

	client := NewLocalGitClient()
	ctx := context.Background()
	repoRoot := initScratchRepo(t)

	branch, err := client.CurrentBranch(ctx, repoRoot)
	require.NoError(t, err)
	assert.NotEmpty(t, branch, "CurrentBranch should return the checked-out branch")
}

// TestLocalGitClient_ActivityLog tests the commit log output shape.
func TestLocalGitClient_ActivityLog(t *testing.T) {
	skipIfGitNotAvailable(t)

	client := NewLocalGitClient()
	ctx := context.Background()
	repoRoot := initScratchRepo(t)

	out, err := client.ActivityLog(ctx, repoRoot, time.Time{})
	require.NoError(t, err, "ActivityLog should not return an error with zero since")

	log := string(out)
	assert.Contains(t, log, "main.py", "log should list the changed file")
	assert.Contains(t, log, "Dev Author", "log should carry the commit author")
	assert.True(t, strings.HasPrefix(log, "--"), "commit headers should be marked with a leading --")

	// A since bound in the future filters everything out.
	out, err = client.ActivityLog(ctx, repoRoot, time.Now().Add(24*time.Hour))
	require.NoError(t, err)
	assert.NotContains(t, string(out), "main.py")
}

// TestLocalGitClient_AuthorLineCounts tests blame-based line attribution.
func TestLocalGitClient_AuthorLineCounts(t *testing.T) {
	skipIfGitNotAvailable(t)

	client := NewLocalGitClient()
	ctx := context.Background()
	repoRoot := initScratchRepo(t)

	counts, err := client.AuthorLineCounts(ctx, repoRoot, "main.py")
	require.NoError(t, err)
	assert.Equal(t, map[string]int{"Dev Author": 3}, counts)

	_, err = client.AuthorLineCounts(ctx, repoRoot, "missing.py")
	assert.Error(t, err, "blame on a missing file should return an error")
}
