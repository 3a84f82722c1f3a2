package database

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"platina/internal/config"
)

func TestValidateDriver(t *testing.T) {
	assert.NoError(t, ValidateDriver("mysql"))
	assert.NoError(t, ValidateDriver("sqlite"))
	assert.Error(t, ValidateDriver("postgres"))
	assert.Error(t, ValidateDriver(""))
}

func TestManager_OpenSQLite(t *testing.T) {
	t.Setenv(config.SQLDSNEnv, "")
	cfg := config.New()
	cfg.ProjectPath = t.TempDir()

	db, err := NewManager(cfg).Open(context.Background())
	require.NoError(t, err)
	defer db.Close()

	var n int
	require.NoError(t, db.QueryRow("SELECT 1 + 1").Scan(&n))
	assert.Equal(t, 2, n)
}

func TestManager_DSN(t *testing.T) {
	t.Setenv(config.SQLDSNEnv, "")
	t.Setenv("DB_HOST", "db.local")
	t.Setenv("DB_PORT", "3307")
	t.Setenv("DB_USERNAME", "tester")
	t.Setenv("DB_PASSWORD", "secret")
	t.Setenv("DB_DATABASE", "golden")

	cfg := config.New()
	m := NewManager(cfg)

	dsn, err := m.dsn(DriverMySQL)
	require.NoError(t, err)
	assert.Equal(t, "tester:secret@tcp(db.local:3307)/golden", dsn)

	dsn, err = m.dsn(DriverSQLite)
	require.NoError(t, err)
	assert.Equal(t, config.DefaultSQLDSN, dsn)

	t.Setenv("DB_DATABASE", "x;DROP")
	_, err = m.dsn(DriverMySQL)
	assert.Error(t, err)

	cfg.SQL.DSN = "file:explicit.db"
	dsn, err = m.dsn(DriverMySQL)
	require.NoError(t, err)
	assert.Equal(t, "file:explicit.db", dsn)
}

func TestIsValidDatabaseName(t *testing.T) {
	assert.True(t, isValidDatabaseName("golden_tests"))
	assert.False(t, isValidDatabaseName(""))
	assert.False(t, isValidDatabaseName("a'b"))
	assert.False(t, isValidDatabaseName("name`"))
}
