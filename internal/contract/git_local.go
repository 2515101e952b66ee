package contract

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"time"
)

// LocalGitClient implements the GitClient interface by executing the
// local 'git' binary installed on the machine.
type LocalGitClient struct{}

var _ GitClient = &LocalGitClient{} // Compile-time check

// NewLocalGitClient creates a new instance of the local Git client.
func NewLocalGitClient() *LocalGitClient {
	return &LocalGitClient{}
}

// Run executes a git command and returns its stdout output.
func (c *LocalGitClient) Run(ctx context.Context, repoPath string, args ...string) ([]byte, error) {
	fullArgs := append([]string{"-C", repoPath}, args...)
	cmd := exec.CommandContext(ctx, "git", fullArgs...)
	out, err := cmd.Output()
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		stderr := strings.TrimSpace(string(exitErr.Stderr))
		return nil, fmt.Errorf("git command failed in %q: %s. If this is not a Git repository, verify the path or run 'git init'", repoPath, stderr)
	} else if err != nil {
		return nil, fmt.Errorf("git command failed: %w. Ensure Git is installed and available on your PATH", err)
	}
	return out, nil
}

// IsRepository implements the GitClient interface.
func (c *LocalGitClient) IsRepository(ctx context.Context, path string) bool {
	out, err := c.Run(ctx, path, "rev-parse", "--is-inside-work-tree")
	return err == nil && strings.TrimSpace(string(out)) == "true"
}

// RepoRoot implements the GitClient interface.
func (c *LocalGitClient) RepoRoot(ctx context.Context, contextPath string) (string, error) {
	out, err := c.Run(ctx, contextPath, "rev-parse", "--show-toplevel")
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(out)), nil
}

// CurrentBranch implements the GitClient interface.
func (c *LocalGitClient) CurrentBranch(ctx context.Context, repoPath string) (string, error) {
	out, err := c.Run(ctx, repoPath, "rev-parse", "--abbrev-ref", "HEAD")
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(out)), nil
}

// ActivityLog implements the GitClient interface.
func (c *LocalGitClient) ActivityLog(ctx context.Context, repoPath string, since time.Time) ([]byte, error) {
	args := []string{
		"log",
		"--name-only",
		"--no-merges",
		"--pretty=format:--%H|%an|%ad",
		"--date=iso-strict",
	}
	if !since.IsZero() {
		args = append(args, fmt.Sprintf("--since=%s", since.Format(DateTimeFormat)))
	}
	return c.Run(ctx, repoPath, args...)
}

// AuthorLineCounts implements the GitClient interface.
func (c *LocalGitClient) AuthorLineCounts(ctx context.Context, repoPath string, path string) (map[string]int, error) {
	out, err := c.Run(ctx, repoPath, "blame", "--line-porcelain", "HEAD", "--", path)
	if err != nil {
		return nil, err
	}

	counts := make(map[string]int)
	scanner := bufio.NewScanner(strings.NewReader(string(out)))
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := scanner.Text()
		if author, ok := strings.CutPrefix(line, "author "); ok {
			counts[author]++
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("parsing blame output for %q: %w", path, err)
	}
	return counts, nil
}
