// Package testers holds the testers shipped with the CLI, so golden files
// can be run without writing Go code.
package testers

import (
	"context"
	"database/sql"
	"fmt"

	"go.uber.org/zap"

	"platina/internal/config"
	"platina/internal/database"
	"platina/internal/execution"
)

// Tester names accepted in config and on the command line
const (
	NameExec = "exec"
	NameSQL  = "sql"
)

// Factory returns the tester to run against the golden file at path
type Factory func(path string) execution.Tester

// New resolves the tester called name. The sql tester runs on db, which may
// be nil for any other tester.
func New(name string, cfg *config.Config, db *sql.DB, logger *zap.Logger) (Factory, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	switch name {
	case NameExec:
		env, err := cfg.LoadEnv()
		if err != nil {
			return nil, err
		}
		exec := NewExec(cfg.Exec, env, logger)
		return func(path string) execution.Tester { return exec.ForFile(path) }, nil
	case NameSQL:
		if db == nil {
			return nil, fmt.Errorf("sql tester needs a database")
		}
		tester := NewSQL(db, cfg.Exec.TimeoutSec, logger)
		return func(string) execution.Tester { return tester }, nil
	}
	return nil, fmt.Errorf("unknown tester %q (use %s or %s)", name, NameExec, NameSQL)
}

// NeedsDatabase reports whether the tester called name runs on a database
func NeedsDatabase(name string) bool {
	return name == NameSQL
}

// OpenDatabase opens the database of cfg when the configured tester needs one.
func OpenDatabase(ctx context.Context, cfg *config.Config) (*sql.DB, error) {
	if !NeedsDatabase(cfg.Tester) {
		return nil, nil
	}
	return database.NewManager(cfg).Open(ctx)
}
