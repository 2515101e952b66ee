package contract

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/debtengine/debtengine/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// validRawInput returns a raw input that passes every validation step, rooted
// at the given workspace path. Tests mutate single fields from here.
func validRawInput(workspacePath string) *ConfigRawInput {
	return &ConfigRawInput{
		WorkspacePathStr: workspacePath,
		Limit:            DefaultResultLimit,
		Workers:          4,
		Precision:        1,
		Output:           "text",
		StoreBackend:     string(schema.SQLiteBackend),
		Color:            "no",
		MinRatio:         schema.DefaultCouplingRatio,
	}
}

func TestProcessAndValidate(t *testing.T) {
	tests := []struct {
		name        string
		mutate      func(*ConfigRawInput)
		expectError bool
		errContains string
		setupMock   func(*MockGitClient, string) // Receives the expected workspace root
		verify      func(*testing.T, *Config, string)
	}{
		{
			name:   "valid minimal config",
			mutate: func(*ConfigRawInput) {},
			setupMock: func(m *MockGitClient, root string) {
				m.On("RepoRoot", context.Background(), root).Return(root, nil)
			},
			verify: func(t *testing.T, cfg *Config, root string) {
				assert.Equal(t, root, cfg.WorkspaceRoot)
				assert.Equal(t, DefaultResultLimit, cfg.ResultLimit)
				assert.Equal(t, 4, cfg.Workers)
				assert.Equal(t, schema.TextOut, cfg.Output)
				assert.Equal(t, schema.SQLiteBackend, cfg.StoreBackend)
				assert.Equal(t, schema.DefaultHistoryDays, cfg.HistoryDays)
				assert.False(t, cfg.Since.IsZero())
				assert.Equal(t, schema.HighDebtThreshold, cfg.WarningThreshold)
				assert.Equal(t, schema.CriticalThreshold, cfg.CriticalThreshold)
				require.NotNil(t, cfg.Settings)
				assert.Contains(t, cfg.Excludes, "go.sum")

				var sum float64
				for _, v := range cfg.Weights {
					sum += v
				}
				assert.InDelta(t, 1.0, sum, 1e-9, "weights should be normalized")
			},
		},
		{
			name:   "git root matches workspace root",
			mutate: func(*ConfigRawInput) {},
			setupMock: func(m *MockGitClient, root string) {
				m.On("RepoRoot", context.Background(), root).Return(root, nil)
			},
			verify: func(t *testing.T, cfg *Config, _ string) {
				assert.True(t, cfg.GitActive)
			},
		},
		{
			name:   "git root above workspace root disables history",
			mutate: func(*ConfigRawInput) {},
			setupMock: func(m *MockGitClient, root string) {
				m.On("RepoRoot", context.Background(), root).Return(filepath.Dir(root), nil)
			},
			verify: func(t *testing.T, cfg *Config, _ string) {
				assert.False(t, cfg.GitActive)
			},
		},
		{
			name:   "not a git repository disables history",
			mutate: func(*ConfigRawInput) {},
			setupMock: func(m *MockGitClient, root string) {
				m.On("RepoRoot", context.Background(), root).Return("", assert.AnError)
			},
			verify: func(t *testing.T, cfg *Config, _ string) {
				assert.False(t, cfg.GitActive)
			},
		},
		{
			name:        "invalid color value",
			mutate:      func(in *ConfigRawInput) { in.Color = "maybe" },
			expectError: true,
			errContains: "invalid --color value",
		},
		{
			name:        "invalid limit (zero)",
			mutate:      func(in *ConfigRawInput) { in.Limit = 0 },
			expectError: true,
			errContains: "limit must be greater than 0",
		},
		{
			name:        "invalid limit (negative)",
			mutate:      func(in *ConfigRawInput) { in.Limit = -1 },
			expectError: true,
		},
		{
			name:        "invalid limit (too large)",
			mutate:      func(in *ConfigRawInput) { in.Limit = MaxResultLimit + 1 },
			expectError: true,
		},
		{
			name:        "invalid workers (zero)",
			mutate:      func(in *ConfigRawInput) { in.Workers = 0 },
			expectError: true,
			errContains: "workers must be greater than 0",
		},
		{
			name:        "invalid precision (zero)",
			mutate:      func(in *ConfigRawInput) { in.Precision = 0 },
			expectError: true,
			errContains: "precision must be 1 or 2",
		},
		{
			name:        "invalid precision (too high)",
			mutate:      func(in *ConfigRawInput) { in.Precision = 3 },
			expectError: true,
		},
		{
			name:        "invalid output format",
			mutate:      func(in *ConfigRawInput) { in.Output = "xml" },
			expectError: true,
			errContains: "invalid output format",
		},
		{
			name:        "invalid store backend",
			mutate:      func(in *ConfigRawInput) { in.StoreBackend = "redis" },
			expectError: true,
			errContains: "invalid store backend",
		},
		{
			name:        "mysql backend without connection string",
			mutate:      func(in *ConfigRawInput) { in.StoreBackend = string(schema.MySQLBackend) },
			expectError: true,
			errContains: "store-db-connect is required",
		},
		{
			name: "mysql backend with malformed connection string",
			mutate: func(in *ConfigRawInput) {
				in.StoreBackend = string(schema.MySQLBackend)
				in.StoreDBConnect = "user:pass@localhost/debt"
			},
			expectError: true,
			errContains: "@tcp(",
		},
		{
			name: "mysql backend with connection string",
			mutate: func(in *ConfigRawInput) {
				in.StoreBackend = string(schema.MySQLBackend)
				in.StoreDBConnect = "user:pass@tcp(localhost:3306)/debtengine"
			},
			setupMock: func(m *MockGitClient, root string) {
				m.On("RepoRoot", context.Background(), root).Return(root, nil)
			},
			verify: func(t *testing.T, cfg *Config, _ string) {
				assert.Equal(t, schema.MySQLBackend, cfg.StoreBackend)
			},
		},
		{
			name:        "postgresql backend without connection string",
			mutate:      func(in *ConfigRawInput) { in.StoreBackend = string(schema.PostgreSQLBackend) },
			expectError: true,
		},
		{
			name: "postgresql backend missing dbname",
			mutate: func(in *ConfigRawInput) {
				in.StoreBackend = string(schema.PostgreSQLBackend)
				in.StoreDBConnect = "host=localhost user=debt"
			},
			expectError: true,
			errContains: "dbname=",
		},
		{
			name: "postgresql backend with connection string",
			mutate: func(in *ConfigRawInput) {
				in.StoreBackend = string(schema.PostgreSQLBackend)
				in.StoreDBConnect = "host=localhost port=5432 dbname=debtengine"
			},
			setupMock: func(m *MockGitClient, root string) {
				m.On("RepoRoot", context.Background(), root).Return(root, nil)
			},
			verify: func(t *testing.T, cfg *Config, _ string) {
				assert.Equal(t, schema.PostgreSQLBackend, cfg.StoreBackend)
			},
		},
		{
			name:   "none backend",
			mutate: func(in *ConfigRawInput) { in.StoreBackend = string(schema.NoneBackend) },
			setupMock: func(m *MockGitClient, root string) {
				m.On("RepoRoot", context.Background(), root).Return(root, nil)
			},
			verify: func(t *testing.T, cfg *Config, _ string) {
				assert.Equal(t, schema.NoneBackend, cfg.StoreBackend)
			},
		},
		{
			name:        "invalid min-ratio (negative)",
			mutate:      func(in *ConfigRawInput) { in.MinRatio = -0.1 },
			expectError: true,
			errContains: "min-ratio",
		},
		{
			name:        "invalid min-ratio (above one)",
			mutate:      func(in *ConfigRawInput) { in.MinRatio = 1.5 },
			expectError: true,
		},
		{
			name:   "custom min-ratio",
			mutate: func(in *ConfigRawInput) { in.MinRatio = 0.25 },
			setupMock: func(m *MockGitClient, root string) {
				m.On("RepoRoot", context.Background(), root).Return(root, nil)
			},
			verify: func(t *testing.T, cfg *Config, _ string) {
				assert.InDelta(t, 0.25, cfg.MinCouplingRatio, 1e-9)
			},
		},
		{
			name:        "history window below minimum",
			mutate:      func(in *ConfigRawInput) { in.HistoryDays = schema.MinHistoryDays - 2 },
			expectError: true,
			errContains: "history-days",
		},
		{
			name:        "history window above maximum",
			mutate:      func(in *ConfigRawInput) { in.HistoryDays = schema.MaxHistoryDays + 35 },
			expectError: true,
		},
		{
			name:   "history window from flag",
			mutate: func(in *ConfigRawInput) { in.HistoryDays = 30 },
			setupMock: func(m *MockGitClient, root string) {
				m.On("RepoRoot", context.Background(), root).Return(root, nil)
			},
			verify: func(t *testing.T, cfg *Config, _ string) {
				assert.Equal(t, 30, cfg.HistoryDays)
			},
		},
		{
			name:        "unknown weight key",
			mutate:      func(in *ConfigRawInput) { in.Weights = map[string]float64{"entropy": 0.5} },
			expectError: true,
			errContains: "unknown weight key",
		},
		{
			name:        "negative weight",
			mutate:      func(in *ConfigRawInput) { in.Weights = map[string]float64{"churn_rate": -0.2} },
			expectError: true,
			errContains: "cannot be negative",
		},
		{
			name:   "weight override is normalized",
			mutate: func(in *ConfigRawInput) { in.Weights = map[string]float64{"churn_rate": 0.9} },
			setupMock: func(m *MockGitClient, root string) {
				m.On("RepoRoot", context.Background(), root).Return(root, nil)
			},
			verify: func(t *testing.T, cfg *Config, _ string) {
				var sum float64
				for _, v := range cfg.Weights {
					sum += v
				}
				assert.InDelta(t, 1.0, sum, 1e-9)
				assert.Greater(t, cfg.Weights[schema.SignalChurnRate], 0.22)
			},
		},
		{
			name: "warning threshold above critical",
			mutate: func(in *ConfigRawInput) {
				in.WarningThreshold = 85
				in.CriticalThreshold = 70
			},
			expectError: true,
			errContains: "must be below",
		},
		{
			name:        "warning threshold out of range",
			mutate:      func(in *ConfigRawInput) { in.WarningThreshold = 150 },
			expectError: true,
		},
		{
			name: "custom thresholds",
			mutate: func(in *ConfigRawInput) {
				in.WarningThreshold = 50
				in.CriticalThreshold = 90
			},
			setupMock: func(m *MockGitClient, root string) {
				m.On("RepoRoot", context.Background(), root).Return(root, nil)
			},
			verify: func(t *testing.T, cfg *Config, _ string) {
				assert.Equal(t, 50.0, cfg.WarningThreshold)
				assert.Equal(t, 90.0, cfg.CriticalThreshold)
			},
		},
		{
			name:   "user excludes are appended to defaults",
			mutate: func(in *ConfigRawInput) { in.Exclude = "generated/, fixtures " },
			setupMock: func(m *MockGitClient, root string) {
				m.On("RepoRoot", context.Background(), root).Return(root, nil)
			},
			verify: func(t *testing.T, cfg *Config, _ string) {
				assert.Contains(t, cfg.Excludes, "generated/")
				assert.Contains(t, cfg.Excludes, "fixtures")
				assert.Contains(t, cfg.Excludes, "dist/")
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			workspaceRoot := t.TempDir()
			input := validRawInput(workspaceRoot)
			tt.mutate(input)

			mockClient := new(MockGitClient)
			if tt.setupMock != nil {
				tt.setupMock(mockClient, workspaceRoot)
			}

			cfg := &Config{}
			err := ProcessAndValidate(context.Background(), cfg, mockClient, input)

			if tt.expectError {
				require.Error(t, err)
				if tt.errContains != "" {
					assert.Contains(t, err.Error(), tt.errContains)
				}
			} else {
				require.NoError(t, err)
				if tt.verify != nil {
					tt.verify(t, cfg, workspaceRoot)
				}
			}

			mockClient.AssertExpectations(t)
		})
	}
}

func TestProcessAndValidateWorkspaceFile(t *testing.T) {
	// A file path resolves to its parent directory.
	workspaceRoot := t.TempDir()
	filePath := filepath.Join(workspaceRoot, "main.go")
	require.NoError(t, os.WriteFile(filePath, []byte("package main\n"), 0o644))

	mockClient := new(MockGitClient)
	mockClient.On("RepoRoot", context.Background(), workspaceRoot).Return(workspaceRoot, nil)

	cfg := &Config{}
	err := ProcessAndValidate(context.Background(), cfg, mockClient, validRawInput(filePath))
	require.NoError(t, err)
	assert.Equal(t, workspaceRoot, cfg.WorkspaceRoot)
	mockClient.AssertExpectations(t)
}

func TestProcessAndValidateBootstrapsWorkspace(t *testing.T) {
	// A pristine root gets its .debtengine layout created by the pipeline,
	// so the store can open underneath it afterwards.
	workspaceRoot := t.TempDir()

	mockClient := new(MockGitClient)
	mockClient.On("RepoRoot", context.Background(), workspaceRoot).Return(workspaceRoot, nil)

	cfg := &Config{}
	err := ProcessAndValidate(context.Background(), cfg, mockClient, validRawInput(workspaceRoot))
	require.NoError(t, err)

	assert.DirExists(t, WorkspaceDir(workspaceRoot))
	assert.DirExists(t, ADRDir(workspaceRoot))
	assert.FileExists(t, SettingsPath(workspaceRoot))
	require.NotNil(t, cfg.Settings)
	assert.Equal(t, schema.DefaultHistoryDays, cfg.Settings.GitHistoryDays)
}

func TestProcessAndValidateMissingWorkspace(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "does-not-exist")

	cfg := &Config{}
	err := ProcessAndValidate(context.Background(), cfg, new(MockGitClient), validRawInput(missing))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not accessible")
}

func TestConfigClone(t *testing.T) {
	original := &Config{
		WorkspaceRoot: "/w",
		Excludes:      []string{"vendor/"},
		Weights:       schema.Weights{schema.SignalChurnRate: 0.5},
		Settings:      schema.DefaultWorkspaceSettings(),
	}

	clone := original.Clone()
	clone.Excludes[0] = "dist/"
	clone.Weights[schema.SignalChurnRate] = 0.1
	clone.Settings.GitHistoryDays = 7

	assert.Equal(t, "vendor/", original.Excludes[0])
	assert.Equal(t, 0.5, original.Weights[schema.SignalChurnRate])
	assert.Equal(t, schema.DefaultHistoryDays, original.Settings.GitHistoryDays)
}

func TestValidateDatabaseConnectionString(t *testing.T) {
	tests := []struct {
		name        string
		backend     schema.DatabaseBackend
		connStr     string
		expectError bool
	}{
		{"sqlite needs nothing", schema.SQLiteBackend, "", false},
		{"none needs nothing", schema.NoneBackend, "", false},
		{"mysql valid", schema.MySQLBackend, "user:pass@tcp(db:3306)/debt", false},
		{"mysql empty", schema.MySQLBackend, "", true},
		{"mysql missing tcp", schema.MySQLBackend, "user:pass@db/debt", true},
		{"mysql missing database", schema.MySQLBackend, "user:pass@tcp(db:3306)", true},
		{"postgresql valid", schema.PostgreSQLBackend, "host=db dbname=debt", false},
		{"postgresql empty", schema.PostgreSQLBackend, "", true},
		{"postgresql missing host", schema.PostgreSQLBackend, "dbname=debt", true},
		{"postgresql missing dbname", schema.PostgreSQLBackend, "host=db", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateDatabaseConnectionString(tt.backend, tt.connStr)
			if tt.expectError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestProcessProfilingConfig(t *testing.T) {
	t.Run("empty prefix leaves profiling off", func(t *testing.T) {
		profile := &ProfileConfig{}
		require.NoError(t, ProcessProfilingConfig(profile, ""))
		assert.False(t, profile.Enabled)
	})

	t.Run("prefix enables profiling", func(t *testing.T) {
		profile := &ProfileConfig{}
		require.NoError(t, ProcessProfilingConfig(profile, "perf"))
		assert.True(t, profile.Enabled)
		assert.Equal(t, "perf", profile.Prefix)
	})
}
