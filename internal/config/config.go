package config

import (
	"os"
	"path/filepath"
)

// Config holds all configuration for the application
type Config struct {
	// Project settings
	ProjectPath string
	GoldenPath  string
	Extension   string

	// Output settings
	OutputJSONFile string
	OutputJSONDir  string

	// Paths to ignore when scanning
	PathsToIgnore []string

	// Tester settings
	Tester string
	Exec   ExecConfig
	SQL    SQLConfig

	// Command flags
	Flags Flags
}

// ExecConfig configures the exec tester
type ExecConfig struct {
	Shell      string
	TimeoutSec int
}

// SQLConfig configures the sql tester
type SQLConfig struct {
	Driver string
	DSN    string
}

// Flags holds command-line flags
type Flags struct {
	Update     bool
	GoldenPath string
	NameFilter string
	Tester     string
	FailFast   bool
	Watch      bool
	OpenViewer bool
	Cases      bool
	CaseFilter string
	Verbose    bool
	ConfigFile string
}

// New creates a new Config with defaults
func New() *Config {
	cfg := &Config{
		ProjectPath:    DefaultProjectPath,
		GoldenPath:     DefaultGoldenPath,
		Extension:      DefaultExtension,
		OutputJSONFile: DefaultOutputJSONFile,
		OutputJSONDir:  DefaultOutputJSONDir,
		Tester:         DefaultTester,
		Exec:           ExecConfig{Shell: DefaultShell, TimeoutSec: DefaultExecTimeoutSec},
		SQL:            SQLConfig{Driver: DefaultSQLDriver},
	}
	// Copy default paths to ignore
	cfg.PathsToIgnore = make([]string, len(DefaultPathsToIgnore))
	copy(cfg.PathsToIgnore, DefaultPathsToIgnore)
	return cfg
}

// Load creates a config, applies the project file if there is one and then the flags
func Load(flags Flags) (*Config, error) {
	cfg := New()
	if err := cfg.Apply(flags); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Apply reads the project file named by flags (or the default one when
// present) and then applies flag overrides.
func (c *Config) Apply(flags Flags) error {
	c.Flags = flags

	path := flags.ConfigFile
	if path == "" {
		path = filepath.Join(c.ProjectPath, DefaultConfigFile)
		if _, err := os.Stat(path); err != nil {
			path = ""
		}
	}
	if path != "" {
		if err := c.LoadFile(path); err != nil {
			return err
		}
	}

	// Apply flag overrides
	if flags.Tester != "" {
		c.Tester = flags.Tester
	}
	return nil
}

// GetGoldenPath returns the directory scanned for golden files, using the flag if provided
func (c *Config) GetGoldenPath() string {
	if c.Flags.GoldenPath != "" {
		// If GoldenPath is provided, make it relative to the project path if it's not absolute
		if filepath.IsAbs(c.Flags.GoldenPath) {
			return c.Flags.GoldenPath
		}
		return filepath.Join(c.ProjectPath, c.Flags.GoldenPath)
	}

	if filepath.IsAbs(c.GoldenPath) {
		return c.GoldenPath
	}
	return filepath.Join(c.ProjectPath, c.GoldenPath)
}

// GetOutputPath returns the full path to the results JSON file.
// Resolves to an absolute path so run and mismatches always use the same file regardless of cwd.
func (c *Config) GetOutputPath() string {
	p := filepath.Join(c.ProjectPath, c.OutputJSONDir, c.OutputJSONFile)
	if abs, err := filepath.Abs(p); err == nil {
		return abs
	}
	return p
}

// GetEnvPath returns the path of the project .env file
func (c *Config) GetEnvPath() string {
	return filepath.Join(c.ProjectPath, ".env")
}

// GetSQLDSN returns the sql tester DSN: config first, then the environment, then the default
func (c *Config) GetSQLDSN() string {
	if c.SQL.DSN != "" {
		return c.SQL.DSN
	}
	if dsn := os.Getenv(SQLDSNEnv); dsn != "" {
		return dsn
	}
	return DefaultSQLDSN
}
