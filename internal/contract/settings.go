package contract

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/debtengine/debtengine/schema"
)

// WorkspaceDir returns the per-workspace data directory.
func WorkspaceDir(root string) string {
	return filepath.Join(root, schema.WorkspaceDirName)
}

// SettingsPath returns the workspace settings file path.
func SettingsPath(root string) string {
	return filepath.Join(root, schema.WorkspaceDirName, schema.SettingsFileName)
}

// DefaultStorePath returns the default SQLite store file path for a workspace.
func DefaultStorePath(root string) string {
	return filepath.Join(root, schema.WorkspaceDirName, schema.StoreFileName)
}

// ADRDir returns the ADR archive directory for a workspace.
func ADRDir(root string) string {
	return filepath.Join(root, schema.WorkspaceDirName, schema.ADRDirName)
}

// LoadSettings reads the workspace settings document and sanitizes it.
// A missing or malformed file yields defaults rather than an error, so a
// half-written settings file never blocks analysis.
func LoadSettings(root string) (*schema.WorkspaceSettings, error) {
	raw, err := os.ReadFile(SettingsPath(root))
	if errors.Is(err, fs.ErrNotExist) {
		return schema.DefaultWorkspaceSettings(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading workspace settings: %w", err)
	}

	var settings schema.WorkspaceSettings
	if err := json.Unmarshal(raw, &settings); err != nil {
		LogWarn("workspace settings are malformed, using defaults", err)
		return schema.DefaultWorkspaceSettings(), nil
	}
	settings.Sanitize()
	return &settings, nil
}

// SaveSettings sanitizes and writes the workspace settings document,
// creating the workspace directory if needed.
func SaveSettings(root string, settings *schema.WorkspaceSettings) error {
	if err := os.MkdirAll(WorkspaceDir(root), 0o755); err != nil {
		return fmt.Errorf("creating workspace directory: %w", err)
	}
	settings.Sanitize()
	data, err := json.MarshalIndent(settings, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding workspace settings: %w", err)
	}
	if err := os.WriteFile(SettingsPath(root), data, 0o644); err != nil {
		return fmt.Errorf("writing workspace settings: %w", err)
	}
	return nil
}

// EnsureWorkspace bootstraps the .debtengine layout under the given root:
// the data directory, the ADR archive directory, and a default settings file
// when none exists. It returns the effective settings.
func EnsureWorkspace(root string) (*schema.WorkspaceSettings, error) {
	if err := os.MkdirAll(ADRDir(root), 0o755); err != nil {
		return nil, fmt.Errorf("creating workspace layout: %w", err)
	}

	if _, err := os.Stat(SettingsPath(root)); errors.Is(err, fs.ErrNotExist) {
		settings := schema.DefaultWorkspaceSettings()
		if err := SaveSettings(root, settings); err != nil {
			return nil, err
		}
		return settings, nil
	}

	return LoadSettings(root)
}
