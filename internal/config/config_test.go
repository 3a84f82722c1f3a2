package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestConfig_GetGoldenPath(t *testing.T) {
	tests := []struct {
		name     string
		config   *Config
		expected string
	}{
		{
			name: "default path",
			config: &Config{
				ProjectPath: ".",
				GoldenPath:  ".",
				Flags:       Flags{},
			},
			expected: ".",
		},
		{
			name: "with golden path flag",
			config: &Config{
				ProjectPath: "/project",
				GoldenPath:  ".",
				Flags: Flags{
					GoldenPath: "testdata",
				},
			},
			expected: "/project/testdata",
		},
		{
			name: "absolute golden path flag",
			config: &Config{
				ProjectPath: "/project",
				GoldenPath:  ".",
				Flags: Flags{
					GoldenPath: "/absolute/path",
				},
			},
			expected: "/absolute/path",
		},
		{
			name: "golden dir from config file",
			config: &Config{
				ProjectPath: "/project",
				GoldenPath:  "golden",
			},
			expected: "/project/golden",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := tt.config.GetGoldenPath()
			if result != tt.expected {
				t.Errorf("expected %s, got %s", tt.expected, result)
			}
		})
	}
}

func TestConfig_GetSQLDSN(t *testing.T) {
	t.Run("default dsn", func(t *testing.T) {
		t.Setenv(SQLDSNEnv, "")
		cfg := New()
		if dsn := cfg.GetSQLDSN(); dsn != DefaultSQLDSN {
			t.Errorf("expected %s, got %s", DefaultSQLDSN, dsn)
		}
	})

	t.Run("environment dsn", func(t *testing.T) {
		t.Setenv(SQLDSNEnv, "file:env.db")
		cfg := New()
		if dsn := cfg.GetSQLDSN(); dsn != "file:env.db" {
			t.Errorf("expected file:env.db, got %s", dsn)
		}
	})

	t.Run("config dsn wins", func(t *testing.T) {
		t.Setenv(SQLDSNEnv, "file:env.db")
		cfg := New()
		cfg.SQL.DSN = "file:config.db"
		if dsn := cfg.GetSQLDSN(); dsn != "file:config.db" {
			t.Errorf("expected file:config.db, got %s", dsn)
		}
	})
}

func TestNew(t *testing.T) {
	cfg := New()

	if cfg.ProjectPath != DefaultProjectPath {
		t.Errorf("expected ProjectPath %s, got %s", DefaultProjectPath, cfg.ProjectPath)
	}

	if cfg.Extension != DefaultExtension {
		t.Errorf("expected Extension %s, got %s", DefaultExtension, cfg.Extension)
	}

	if cfg.Tester != DefaultTester {
		t.Errorf("expected Tester %s, got %s", DefaultTester, cfg.Tester)
	}

	if len(cfg.PathsToIgnore) != len(DefaultPathsToIgnore) {
		t.Errorf("expected %d paths to ignore, got %d", len(DefaultPathsToIgnore), len(cfg.PathsToIgnore))
	}
}

func TestLoad_ConfigFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "custom.yaml")
	content := `golden_dir: testdata
extension: txt
ignore:
  - build
tester: sql
exec:
  shell: bash
  timeout_sec: 5
sql:
  driver: mysql
  dsn: "root@tcp(127.0.0.1:3306)/test"
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := Load(Flags{ConfigFile: path})
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.GoldenPath != "testdata" {
		t.Errorf("expected golden dir testdata, got %s", cfg.GoldenPath)
	}
	if cfg.Extension != ".txt" {
		t.Errorf("expected extension .txt, got %s", cfg.Extension)
	}
	if cfg.PathsToIgnore[len(cfg.PathsToIgnore)-1] != "build" {
		t.Errorf("expected build to be ignored, got %v", cfg.PathsToIgnore)
	}
	if cfg.Tester != "sql" {
		t.Errorf("expected tester sql, got %s", cfg.Tester)
	}
	if cfg.Exec.Shell != "bash" || cfg.Exec.TimeoutSec != 5 {
		t.Errorf("unexpected exec config %+v", cfg.Exec)
	}
	if cfg.SQL.Driver != "mysql" || cfg.GetSQLDSN() != "root@tcp(127.0.0.1:3306)/test" {
		t.Errorf("unexpected sql config %+v", cfg.SQL)
	}
}

func TestLoad_FlagOverridesFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "platina.yaml")
	if err := os.WriteFile(path, []byte("tester: sql\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := Load(Flags{ConfigFile: path, Tester: "exec"})
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Tester != "exec" {
		t.Errorf("expected flag to win, got %s", cfg.Tester)
	}
}

func TestLoad_InvalidFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "platina.yaml")
	if err := os.WriteFile(path, []byte("tester: [unclosed\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	if _, err := Load(Flags{ConfigFile: path}); err == nil {
		t.Error("expected error for invalid YAML")
	}
	if _, err := Load(Flags{ConfigFile: filepath.Join(dir, "missing.yaml")}); err == nil {
		t.Error("expected error for missing config file")
	}
}

func TestConfig_LoadEnv(t *testing.T) {
	cfg := New()
	cfg.ProjectPath = t.TempDir()

	env, err := cfg.LoadEnv()
	if err != nil {
		t.Fatalf("LoadEnv without .env failed: %v", err)
	}
	if len(env) != 0 {
		t.Errorf("expected no values, got %v", env)
	}

	content := "GREETING=hello\n# comment\nTARGET=\"world\"\n"
	if err := os.WriteFile(filepath.Join(cfg.ProjectPath, ".env"), []byte(content), 0o644); err != nil {
		t.Fatalf("write .env: %v", err)
	}
	env, err = cfg.LoadEnv()
	if err != nil {
		t.Fatalf("LoadEnv failed: %v", err)
	}
	if env["GREETING"] != "hello" || env["TARGET"] != "world" {
		t.Errorf("unexpected env %v", env)
	}
}
