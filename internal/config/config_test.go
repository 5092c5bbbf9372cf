package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var configEnvVars = []string{
	"WINDSURF_SERVICE_KEY",
	"WINDSURF_BASE_URL",
	"WINDSURF_OUTPUT",
	"WINDSURF_FORMAT",
	"WINDSURF_GROUP_NAME",
	"WINDSURF_START_TIMESTAMP",
	"WINDSURF_END_TIMESTAMP",
	"WINDSURF_LOG_LEVEL",
	"WINDSURF_IDE_TYPES",
	"WINDSURF_BATCH_SIZE",
	"WINDSURF_HTTP_TIMEOUT",
}

// isolate clears the config variables and moves the working and home
// directories to an empty temp dir so no real .env is picked up.
func isolate(t *testing.T) string {
	t.Helper()
	for _, key := range configEnvVars {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}
	tmpDir := t.TempDir()
	t.Setenv("HOME", tmpDir)
	oldWd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(tmpDir))
	t.Cleanup(func() { _ = os.Chdir(oldWd) })
	return tmpDir
}

func validConfig() *Config {
	return &Config{
		ServiceKey: "key",
		BaseURL:    DefaultBaseURL,
		OutputPath: DefaultOutputPath,
		Format:     DefaultFormat,
		BatchSize:  DefaultBatchSize,
	}
}

func TestLoad_Defaults(t *testing.T) {
	isolate(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Empty(t, cfg.ServiceKey)
	assert.Equal(t, DefaultBaseURL, cfg.BaseURL)
	assert.Equal(t, DefaultOutputPath, cfg.OutputPath)
	assert.Equal(t, FormatCSV, cfg.Format)
	assert.Equal(t, DefaultBatchSize, cfg.BatchSize)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Zero(t, cfg.HTTPTimeout)
	assert.Empty(t, cfg.EnvFile)
}

func TestLoad_FromEnvironment(t *testing.T) {
	isolate(t)
	t.Setenv("WINDSURF_SERVICE_KEY", "env-key")
	t.Setenv("WINDSURF_IDE_TYPES", "editor,jetbrains")
	t.Setenv("WINDSURF_BATCH_SIZE", "25")
	t.Setenv("WINDSURF_HTTP_TIMEOUT", "45s")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "env-key", cfg.ServiceKey)
	assert.Equal(t, []string{"editor", "jetbrains"}, cfg.IDETypes)
	assert.Equal(t, 25, cfg.BatchSize)
	assert.Equal(t, 45*time.Second, cfg.HTTPTimeout)
}

func TestLoad_WithEnvFile(t *testing.T) {
	tmpDir := isolate(t)
	content := "# comment\nexport WINDSURF_SERVICE_KEY=\"file-key\"\nWINDSURF_GROUP_NAME='platform'\n"
	envPath := filepath.Join(tmpDir, ".env")
	require.NoError(t, os.WriteFile(envPath, []byte(content), 0o600))

	cfg, err := Load()
	require.NoError(t, err)
	t.Cleanup(func() {
		os.Unsetenv("WINDSURF_SERVICE_KEY")
		os.Unsetenv("WINDSURF_GROUP_NAME")
	})

	assert.Equal(t, "file-key", cfg.ServiceKey)
	assert.Equal(t, "platform", cfg.GroupName)
	assert.Equal(t, envPath, cfg.EnvFile)
}

func TestLoad_EnvironmentWinsOverFile(t *testing.T) {
	tmpDir := isolate(t)
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, ".env"),
		[]byte("WINDSURF_SERVICE_KEY=file-key\n"), 0o600))
	t.Setenv("WINDSURF_SERVICE_KEY", "env-key")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "env-key", cfg.ServiceKey)
}

func TestLoad_InvalidEnvValue(t *testing.T) {
	isolate(t)
	t.Setenv("WINDSURF_BATCH_SIZE", "ten")

	_, err := Load()
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr error
	}{
		{"Valid", func(c *Config) {}, nil},
		{"MissingKey", func(c *Config) { c.ServiceKey = "  " }, ErrMissingServiceKey},
		{"BadBaseURL", func(c *Config) { c.BaseURL = "server.codeium.com" }, ErrInvalidConfig},
		{"EmptyOutput", func(c *Config) { c.OutputPath = "" }, ErrInvalidConfig},
		{"UnknownFormat", func(c *Config) { c.Format = "json" }, ErrInvalidConfig},
		{"UpperFormat", func(c *Config) { c.Format = "XLSX" }, nil},
		{"GoodTimestamps", func(c *Config) {
			c.StartTimestamp = "2024-01-01T00:00:00Z"
			c.EndTimestamp = "2024-12-31T23:59:59+02:00"
		}, nil},
		{"BadStart", func(c *Config) { c.StartTimestamp = "2024-01-01" }, ErrInvalidConfig},
		{"BadEnd", func(c *Config) { c.EndTimestamp = "yesterday" }, ErrInvalidConfig},
		{"GoodIDE", func(c *Config) { c.IDETypes = []string{"editor", "jetbrains"} }, nil},
		{"BadIDE", func(c *Config) { c.IDETypes = []string{"vim"} }, ErrInvalidConfig},
		{"ZeroBatch", func(c *Config) { c.BatchSize = 0 }, ErrInvalidConfig},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)

			err := cfg.Validate()
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestValidate_Normalizes(t *testing.T) {
	cfg := validConfig()
	cfg.ServiceKey = " key \n"
	cfg.BaseURL = "http://localhost:8080/api/v1/"
	cfg.Format = "XLSX"

	require.NoError(t, cfg.Validate())
	assert.Equal(t, "key", cfg.ServiceKey)
	assert.Equal(t, "http://localhost:8080/api/v1", cfg.BaseURL)
	assert.Equal(t, FormatXLSX, cfg.Format)
}

func TestGetEnvPaths(t *testing.T) {
	paths := getEnvPaths()
	if len(paths) == 0 {
		t.Fatal("getEnvPaths() returned empty list")
	}

	cwd, _ := os.Getwd()
	assert.Contains(t, paths, filepath.Join(cwd, ".env"))
}

func TestMissingServiceKeyHint(t *testing.T) {
	hint := MissingServiceKeyHint()
	assert.Contains(t, hint, "WINDSURF_SERVICE_KEY")
	assert.Contains(t, hint, "--service-key")
}
