package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"printflow/internal/adapters/out/postgres"
	"printflow/internal/jobs"
	"printflow/internal/pkg/logging"

	"github.com/joho/godotenv"
	"github.com/pelletier/go-toml/v2"
)

// DefaultEnvFile is read when present; a missing file is not an error.
const DefaultEnvFile = ".env"

type Config struct {
	HTTPPort   string `toml:"HTTP_PORT"`
	DBDriver   string `toml:"DB_DRIVER"`
	DBHost     string `toml:"DB_HOST"`
	DBPort     string `toml:"DB_PORT"`
	DBUser     string `toml:"DB_USER"`
	DBPassword string `toml:"DB_PASSWORD"`
	DBName     string `toml:"DB_NAME"`
	DBSslMode  string `toml:"DB_SSLMODE"`
	DBPath     string `toml:"DB_PATH"`
	LogLevel   string `toml:"LOG_LEVEL"`
	LogFormat  string `toml:"LOG_FORMAT"`

	OverdueReportSchedule string `toml:"OVERDUE_REPORT_SCHEDULE"`
}

// DefaultConfig is the configuration before the environment and config file apply.
func DefaultConfig() Config {
	return Config{
		HTTPPort:              "8080",
		DBDriver:              postgres.DriverPostgres,
		DBHost:                "localhost",
		DBPort:                "5432",
		DBSslMode:             "disable",
		DBPath:                "printflow.db",
		LogLevel:              "info",
		OverdueReportSchedule: jobs.DefaultOverdueSchedule,
	}
}

// LoadConfig builds the configuration in three layers: defaults, environment
// variables (with envFile loaded into the environment first) and the TOML file
// at configFile. Empty paths skip their layer.
func LoadConfig(envFile, configFile string) (Config, error) {
	cfg := DefaultConfig()

	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("load %s: %w", envFile, err)
		}
	}
	cfg.applyEnv(os.LookupEnv)

	if configFile != "" {
		data, err := os.ReadFile(configFile)
		if err != nil {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
		if err := toml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse config %s: %w", configFile, err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) applyEnv(lookup func(string) (string, bool)) {
	fields := map[string]*string{
		"HTTP_PORT":               &c.HTTPPort,
		"DB_DRIVER":               &c.DBDriver,
		"DB_HOST":                 &c.DBHost,
		"DB_PORT":                 &c.DBPort,
		"DB_USER":                 &c.DBUser,
		"DB_PASSWORD":             &c.DBPassword,
		"DB_NAME":                 &c.DBName,
		"DB_SSLMODE":              &c.DBSslMode,
		"DB_PATH":                 &c.DBPath,
		"LOG_LEVEL":               &c.LogLevel,
		"LOG_FORMAT":              &c.LogFormat,
		"OVERDUE_REPORT_SCHEDULE": &c.OverdueReportSchedule,
	}
	for key, field := range fields {
		if value, ok := lookup(key); ok && strings.TrimSpace(value) != "" {
			*field = strings.TrimSpace(value)
		}
	}
}

// Validate checks the values that would otherwise fail late, at connect or
// schedule time.
func (c Config) Validate() error {
	var errList []error
	switch strings.ToLower(c.DBDriver) {
	case postgres.DriverPostgres:
	case postgres.DriverSQLite:
		if strings.TrimSpace(c.DBPath) == "" {
			errList = append(errList, errors.New("DB_PATH is required for the sqlite driver"))
		}
	default:
		errList = append(errList, fmt.Errorf("DB_DRIVER: unsupported value %q", c.DBDriver))
	}
	if strings.TrimSpace(c.HTTPPort) == "" {
		errList = append(errList, errors.New("HTTP_PORT is required"))
	}
	if _, err := logging.ParseLevel(c.LogLevel); err != nil {
		errList = append(errList, err)
	}
	return errors.Join(errList...)
}

// Database returns the store settings.
func (c Config) Database() postgres.DatabaseConfig {
	return postgres.DatabaseConfig{
		Driver:   strings.ToLower(c.DBDriver),
		Host:     c.DBHost,
		Port:     c.DBPort,
		User:     c.DBUser,
		Password: c.DBPassword,
		Name:     c.DBName,
		SSLMode:  c.DBSslMode,
		Path:     c.DBPath,
	}
}

// Logging returns the logger settings.
func (c Config) Logging() logging.Options {
	return logging.Options{Level: c.LogLevel, Format: c.LogFormat}
}
