package postgres

import (
	"fmt"
	"net/url"
	"strings"

	"printflow/internal/adapters/out/postgres/catalogrepo"
	"printflow/internal/adapters/out/postgres/itemrepo"
	"printflow/internal/adapters/out/postgres/orderrepo"

	"github.com/glebarez/sqlite"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// DatabaseConfig selects and addresses the store backend.
type DatabaseConfig struct {
	Driver   string
	Host     string
	Port     string
	User     string
	Password string
	Name     string
	SSLMode  string

	// Path is the SQLite database file.
	Path string

	// LogSQL turns on gorm statement logging.
	LogSQL bool
}

// DSN renders the PostgreSQL connection string.
func (c DatabaseConfig) DSN() string {
	sslMode := c.SSLMode
	if sslMode == "" {
		sslMode = "disable"
	}
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.Name, sslMode,
	)
}

// SQLiteDSN renders the SQLite file URI with foreign keys and a busy timeout.
func SQLiteDSN(path string) string {
	params := url.Values{}
	params.Add("_pragma", "foreign_keys(1)")
	params.Add("_pragma", "busy_timeout(5000)")
	params.Add("_pragma", "journal_mode(WAL)")
	return "file:" + path + "?" + params.Encode()
}

// Open connects to the configured backend. The returned handle is injected into
// the unit of work factory and query handlers; there is no package-level handle.
func Open(cfg DatabaseConfig) (*gorm.DB, error) {
	gormCfg := &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	}
	if cfg.LogSQL {
		gormCfg.Logger = logger.Default.LogMode(logger.Info)
	}

	var dialector gorm.Dialector
	switch strings.ToLower(cfg.Driver) {
	case "", DriverPostgres:
		dialector = gormpostgres.Open(cfg.DSN())
	case DriverSQLite:
		if cfg.Path == "" {
			return nil, fmt.Errorf("sqlite driver requires a database path")
		}
		dialector = sqlite.Open(SQLiteDSN(cfg.Path))
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Driver)
	}

	db, err := gorm.Open(dialector, gormCfg)
	if err != nil {
		return nil, fmt.Errorf("open %s database: %w", cfg.Driver, err)
	}

	if dialector.Name() == DriverSQLite {
		// SQLite allows a single writer at a time.
		sqlDB, err := db.DB()
		if err != nil {
			return nil, err
		}
		sqlDB.SetMaxOpenConns(1)
	}

	return db, nil
}

// Models lists every persisted DTO in dependency order.
func Models() []any {
	return []any{
		&catalogrepo.ColorDTO{},
		&catalogrepo.PartDTO{},
		&catalogrepo.TemplateDTO{},
		&catalogrepo.TemplatePartDTO{},
		&orderrepo.OrderDTO{},
		&orderrepo.ProductDTO{},
		&itemrepo.ItemDTO{},
		&itemrepo.ItemColorDTO{},
		&itemrepo.ItemPartDTO{},
		&itemrepo.StatusHistoryDTO{},
	}
}

// Migrate creates or updates the schema, including unique indexes and foreign keys.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(Models()...); err != nil {
		return fmt.Errorf("migrate schema: %w", err)
	}
	return nil
}
