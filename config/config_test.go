package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequiredEnv(t *testing.T) {
	t.Setenv("YOUTRACK_URL", "https://youtrack.example.com")
	t.Setenv("YOUTRACK_TOKEN", "perm:secret")
}

func TestLoad_Defaults(t *testing.T) {
	viper.Reset()
	setRequiredEnv(t)

	cfg, err := Load()

	require.NoError(t, err)
	assert.Equal(t, "https://youtrack.example.com", cfg.URL)
	assert.Equal(t, "perm:secret", cfg.Token)
	assert.Equal(t, 100, cfg.BatchSize)
	assert.Equal(t, DefaultFields, cfg.Fields)
	assert.Equal(t, "./output", cfg.OutputDir)
	assert.Equal(t, 3, cfg.MaxRetries)
	assert.Equal(t, time.Second, cfg.RetryDelay)
	assert.Equal(t, "summary", cfg.FieldMapping.Title)
	assert.Equal(t, "idReadable", cfg.FieldMapping.Identifier)
}

func TestLoad_EnvOverrides(t *testing.T) {
	viper.Reset()
	setRequiredEnv(t)
	t.Setenv("YOUTRACK_PROJECT_KEY", "DEMO")
	t.Setenv("YOUTRACK_BATCH_SIZE", "25")
	t.Setenv("LINEAR_DEFAULT_STATE", "Backlog")
	t.Setenv("OUTPUT_DIR", "/tmp/export")
	t.Setenv("MAX_RETRIES", "5")
	t.Setenv("RETRY_DELAY", "0.5")

	cfg, err := Load()

	require.NoError(t, err)
	assert.Equal(t, "DEMO", cfg.ProjectKey)
	assert.Equal(t, 25, cfg.BatchSize)
	assert.Equal(t, "Backlog", cfg.DefaultState)
	assert.Equal(t, "/tmp/export", cfg.OutputDir)
	assert.Equal(t, 5, cfg.MaxRetries)
	assert.Equal(t, 500*time.Millisecond, cfg.RetryDelay)
}

func TestLoad_StripsTrailingSlash(t *testing.T) {
	viper.Reset()
	t.Setenv("YOUTRACK_URL", "https://youtrack.example.com/")
	t.Setenv("YOUTRACK_TOKEN", "perm:secret")

	cfg, err := Load()

	require.NoError(t, err)
	assert.Equal(t, "https://youtrack.example.com", cfg.URL)
}

func TestLoad_MissingURL(t *testing.T) {
	viper.Reset()
	t.Setenv("YOUTRACK_URL", "")
	t.Setenv("YOUTRACK_TOKEN", "perm:secret")

	_, err := Load()

	require.Error(t, err)
	assert.Contains(t, err.Error(), "YOUTRACK_URL")
}

func TestLoad_MissingToken(t *testing.T) {
	viper.Reset()
	t.Setenv("YOUTRACK_URL", "https://youtrack.example.com")
	t.Setenv("YOUTRACK_TOKEN", "")

	_, err := Load()

	require.Error(t, err)
	assert.Contains(t, err.Error(), "YOUTRACK_TOKEN")
}

func TestLoad_RejectsNonHTTPURL(t *testing.T) {
	viper.Reset()
	t.Setenv("YOUTRACK_URL", "ftp://youtrack.example.com")
	t.Setenv("YOUTRACK_TOKEN", "perm:secret")

	_, err := Load()

	assert.Error(t, err)
}

func TestLoad_RejectsZeroBatchSize(t *testing.T) {
	viper.Reset()
	setRequiredEnv(t)
	t.Setenv("YOUTRACK_BATCH_SIZE", "0")

	_, err := Load()

	require.Error(t, err)
	assert.Contains(t, err.Error(), "YOUTRACK_BATCH_SIZE")
}

func TestLoad_RejectsZeroRetries(t *testing.T) {
	viper.Reset()
	setRequiredEnv(t)
	t.Setenv("MAX_RETRIES", "0")

	_, err := Load()

	assert.Error(t, err)
}

func TestLoad_ConfigFileMappings(t *testing.T) {
	viper.Reset()
	setRequiredEnv(t)

	configPath := filepath.Join(t.TempDir(), "config.yaml")
	content := `stateMapping:
  In Progress: started
  Done: completed
priorityMapping:
  Critical: "1"
fieldMapping:
  title: name
`
	require.NoError(t, os.WriteFile(configPath, []byte(content), 0644))

	viper.SetConfigFile(configPath)
	require.NoError(t, viper.ReadInConfig())

	cfg, err := Load()

	require.NoError(t, err)
	// viper lowercases config keys, so mappings are matched case-insensitively
	assert.Equal(t, "started", cfg.StateMapping["in progress"])
	assert.Equal(t, "completed", cfg.StateMapping["done"])
	assert.Equal(t, "1", cfg.PriorityMapping["critical"])
	// partial fieldMapping overrides merge over the defaults
	assert.Equal(t, "name", cfg.FieldMapping.Title)
	assert.Equal(t, "description", cfg.FieldMapping.Description)
	assert.Equal(t, "idReadable", cfg.FieldMapping.Identifier)
}
