package contract

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/debtengine/debtengine/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadSettingsMissing(t *testing.T) {
	settings, err := LoadSettings(t.TempDir())
	require.NoError(t, err)
	require.NotNil(t, settings)

	assert.Equal(t, schema.DefaultHistoryDays, settings.GitHistoryDays)
	assert.Equal(t, schema.HighDebtThreshold, settings.WarningThreshold)
	assert.Equal(t, "weekly", settings.SnapshotSchedule)
}

func TestLoadSettingsMalformed(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(WorkspaceDir(root), 0o755))
	require.NoError(t, os.WriteFile(SettingsPath(root), []byte("{not valid json"), 0o644))

	// Malformed settings degrade to defaults instead of blocking analysis.
	settings, err := LoadSettings(root)
	require.NoError(t, err)
	assert.Equal(t, schema.DefaultHistoryDays, settings.GitHistoryDays)
}

func TestSaveLoadSettingsRoundTrip(t *testing.T) {
	root := t.TempDir()

	saved := schema.DefaultWorkspaceSettings()
	saved.GitHistoryDays = 120
	saved.WarningThreshold = 55
	saved.CriticalThreshold = 85
	saved.SnapshotSchedule = "biweekly"
	require.NoError(t, SaveSettings(root, saved))

	loaded, err := LoadSettings(root)
	require.NoError(t, err)
	assert.Equal(t, 120, loaded.GitHistoryDays)
	assert.Equal(t, 55.0, loaded.WarningThreshold)
	assert.Equal(t, 85.0, loaded.CriticalThreshold)
	assert.Equal(t, "biweekly", loaded.SnapshotSchedule)
	assert.Equal(t, schema.SettingsSchemaVersion, loaded.SchemaVersion)
}

func TestSaveSettingsSanitizes(t *testing.T) {
	root := t.TempDir()

	saved := schema.DefaultWorkspaceSettings()
	saved.GitHistoryDays = 9999
	saved.SnapshotSchedule = "hourly"
	require.NoError(t, SaveSettings(root, saved))

	loaded, err := LoadSettings(root)
	require.NoError(t, err)
	assert.Equal(t, schema.MaxHistoryDays, loaded.GitHistoryDays)
	assert.Equal(t, "weekly", loaded.SnapshotSchedule)
}

func TestEnsureWorkspace(t *testing.T) {
	root := t.TempDir()

	settings, err := EnsureWorkspace(root)
	require.NoError(t, err)
	require.NotNil(t, settings)

	// The layout exists on disk after bootstrap.
	info, err := os.Stat(ADRDir(root))
	require.NoError(t, err)
	assert.True(t, info.IsDir())
	_, err = os.Stat(SettingsPath(root))
	assert.NoError(t, err)

	// A second call loads the existing file rather than rewriting defaults.
	settings.GitHistoryDays = 45
	require.NoError(t, SaveSettings(root, settings))

	again, err := EnsureWorkspace(root)
	require.NoError(t, err)
	assert.Equal(t, 45, again.GitHistoryDays)
}

func TestWorkspacePathHelpers(t *testing.T) {
	root := filepath.Join("some", "root")

	assert.Equal(t, filepath.Join(root, ".debtengine"), WorkspaceDir(root))
	assert.Equal(t, filepath.Join(root, ".debtengine", "settings.json"), SettingsPath(root))
	assert.Equal(t, filepath.Join(root, ".debtengine", "debt.db"), DefaultStorePath(root))
	assert.Equal(t, filepath.Join(root, ".debtengine", "adrs"), ADRDir(root))
}
