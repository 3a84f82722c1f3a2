package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// fileConfig is the layout of platina.yaml. Zero values leave defaults untouched.
type fileConfig struct {
	GoldenDir string   `yaml:"golden_dir"`
	Extension string   `yaml:"extension"`
	Ignore    []string `yaml:"ignore"`
	Tester    string   `yaml:"tester"`
	Exec      struct {
		Shell      string `yaml:"shell"`
		TimeoutSec int    `yaml:"timeout_sec"`
	} `yaml:"exec"`
	SQL struct {
		Driver string `yaml:"driver"`
		DSN    string `yaml:"dsn"`
	} `yaml:"sql"`
}

// LoadFile applies the YAML project file at path onto c.
func (c *Config) LoadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config %s: %w", path, err)
	}
	var fc fileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return fmt.Errorf("failed to parse config %s: %w", path, err)
	}

	if fc.GoldenDir != "" {
		c.GoldenPath = fc.GoldenDir
	}
	if fc.Extension != "" {
		c.Extension = fc.Extension
		if c.Extension[0] != '.' {
			c.Extension = "." + c.Extension
		}
	}
	if len(fc.Ignore) > 0 {
		c.PathsToIgnore = append(c.PathsToIgnore, fc.Ignore...)
	}
	if fc.Tester != "" {
		c.Tester = fc.Tester
	}
	if fc.Exec.Shell != "" {
		c.Exec.Shell = fc.Exec.Shell
	}
	if fc.Exec.TimeoutSec > 0 {
		c.Exec.TimeoutSec = fc.Exec.TimeoutSec
	}
	if fc.SQL.Driver != "" {
		c.SQL.Driver = fc.SQL.Driver
	}
	if fc.SQL.DSN != "" {
		c.SQL.DSN = fc.SQL.DSN
	}
	return nil
}

// LoadEnv reads the project .env file. A missing file yields no values.
func (c *Config) LoadEnv() (map[string]string, error) {
	path := c.GetEnvPath()
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		return map[string]string{}, nil
	}
	env, err := godotenv.Read(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return env, nil
}
