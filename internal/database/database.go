// Package database opens the connection used by the sql tester.
package database

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"strings"

	"github.com/go-sql-driver/mysql"
	"github.com/joho/godotenv"
	_ "modernc.org/sqlite"

	"platina/internal/config"
)

// Supported driver names
const (
	DriverMySQL  = "mysql"
	DriverSQLite = "sqlite"
)

// Manager opens databases described by the config
type Manager struct {
	config *config.Config
}

// NewManager creates a new Manager
func NewManager(cfg *config.Config) *Manager {
	return &Manager{config: cfg}
}

// Open loads the project .env, resolves the DSN and returns a pinged handle.
func (m *Manager) Open(ctx context.Context) (*sql.DB, error) {
	// .env might not exist, environment variables are used as they are
	_ = godotenv.Load(m.config.GetEnvPath())

	driver := m.config.SQL.Driver
	if err := ValidateDriver(driver); err != nil {
		return nil, err
	}
	dsn, err := m.dsn(driver)
	if err != nil {
		return nil, err
	}

	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if driver == DriverSQLite {
		// every connection to :memory: is its own database
		db.SetMaxOpenConns(1)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	return db, nil
}

// ValidateDriver reports whether driver is one the sql tester can use
func ValidateDriver(driver string) error {
	switch driver {
	case DriverMySQL, DriverSQLite:
		return nil
	}
	return fmt.Errorf("unsupported sql driver %q (use %s or %s)", driver, DriverMySQL, DriverSQLite)
}

// dsn prefers an explicit DSN from the config or PLATINA_SQL_DSN. Otherwise
// mysql is reached through the DB_* variables and sqlite runs in memory.
func (m *Manager) dsn(driver string) (string, error) {
	if m.config.SQL.DSN != "" || os.Getenv(config.SQLDSNEnv) != "" {
		return m.config.GetSQLDSN(), nil
	}
	if driver == DriverSQLite {
		return config.DefaultSQLDSN, nil
	}

	cfg := mysql.NewConfig()
	cfg.User = getenv("DB_USERNAME", "root")
	cfg.Passwd = os.Getenv("DB_PASSWORD")
	cfg.Net = "tcp"
	cfg.Addr = getenv("DB_HOST", "127.0.0.1") + ":" + getenv("DB_PORT", "3306")
	cfg.DBName = os.Getenv("DB_DATABASE")
	if cfg.DBName != "" && !isValidDatabaseName(cfg.DBName) {
		return "", fmt.Errorf("invalid database name: %s", cfg.DBName)
	}
	return cfg.FormatDSN(), nil
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// isValidDatabaseName validates database name (basic check)
func isValidDatabaseName(name string) bool {
	if len(name) == 0 || len(name) > 64 {
		return false
	}
	invalidChars := []string{"'", "\"", ";", "--", "/*", "*/", "`"}
	for _, char := range invalidChars {
		if strings.Contains(name, char) {
			return false
		}
	}
	return true
}
