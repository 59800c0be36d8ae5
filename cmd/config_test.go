package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"printflow/internal/adapters/out/postgres"
	"printflow/internal/jobs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var configKeys = []string{
	"HTTP_PORT", "DB_DRIVER", "DB_HOST", "DB_PORT", "DB_USER", "DB_PASSWORD", "DB_NAME",
	"DB_SSLMODE", "DB_PATH", "LOG_LEVEL", "LOG_FORMAT", "OVERDUE_REPORT_SCHEDULE",
}

// clearEnv blanks every config key for the duration of the test.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range configKeys {
		t.Setenv(key, "")
	}
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadConfig_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "missing.env"), "")

	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
	assert.Equal(t, jobs.DefaultOverdueSchedule, cfg.OverdueReportSchedule)
}

func TestLoadConfig_EnvironmentOverridesDefaults(t *testing.T) {
	clearEnv(t)
	t.Setenv("HTTP_PORT", "9000")
	t.Setenv("DB_NAME", "printflow")
	t.Setenv("LOG_FORMAT", " json ")

	cfg, err := LoadConfig("", "")

	require.NoError(t, err)
	assert.Equal(t, "9000", cfg.HTTPPort)
	assert.Equal(t, "printflow", cfg.Database().Name)
	assert.Equal(t, "json", cfg.Logging().Format)
	assert.Equal(t, "localhost", cfg.DBHost)
}

func TestLoadConfig_EnvFile(t *testing.T) {
	clearEnv(t)
	os.Unsetenv("DB_USER")
	os.Unsetenv("LOG_LEVEL")
	envFile := writeFile(t, ".env", "DB_USER=maker\nLOG_LEVEL=debug\n")

	cfg, err := LoadConfig(envFile, "")

	require.NoError(t, err)
	assert.Equal(t, "maker", cfg.DBUser)
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestLoadConfig_TOMLOverlayWins(t *testing.T) {
	clearEnv(t)
	t.Setenv("HTTP_PORT", "9000")
	configFile := writeFile(t, "printflow.toml", `
HTTP_PORT = "7000"
DB_DRIVER = "sqlite"
DB_PATH = "/var/lib/printflow/printflow.db"
OVERDUE_REPORT_SCHEDULE = "0 * * * *"
`)

	cfg, err := LoadConfig("", configFile)

	require.NoError(t, err)
	assert.Equal(t, "7000", cfg.HTTPPort)
	assert.Equal(t, "0 * * * *", cfg.OverdueReportSchedule)

	db := cfg.Database()
	assert.Equal(t, postgres.DriverSQLite, db.Driver)
	assert.Equal(t, "/var/lib/printflow/printflow.db", db.Path)
}

func TestLoadConfig_Errors(t *testing.T) {
	t.Run("missing config file", func(t *testing.T) {
		clearEnv(t)

		_, err := LoadConfig("", filepath.Join(t.TempDir(), "nope.toml"))

		require.Error(t, err)
	})

	t.Run("malformed config file", func(t *testing.T) {
		clearEnv(t)

		_, err := LoadConfig("", writeFile(t, "bad.toml", "HTTP_PORT = "))

		require.ErrorContains(t, err, "parse config")
	})

	t.Run("unsupported driver", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("DB_DRIVER", "mysql")

		_, err := LoadConfig("", "")

		require.ErrorContains(t, err, "DB_DRIVER")
	})

	t.Run("unsupported log level", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("LOG_LEVEL", "loud")

		_, err := LoadConfig("", "")

		require.ErrorContains(t, err, "log level")
	})
}
