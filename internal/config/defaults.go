package config

const (
	// DefaultProjectPath is the default project path
	DefaultProjectPath = "."
	// DefaultGoldenPath is the default directory scanned for golden files
	DefaultGoldenPath = "."
	// DefaultExtension is the default golden file extension
	DefaultExtension = ".golden"
	// DefaultConfigFile is the project configuration file name
	DefaultConfigFile = "platina.yaml"
	// DefaultOutputJSONFile is the default output JSON file name
	DefaultOutputJSONFile = "results.json"
	// DefaultOutputJSONDir is the default output directory
	DefaultOutputJSONDir = ".platina"
	// DefaultTester is the built-in tester used by the CLI
	DefaultTester = "exec"
	// DefaultShell runs the command parameter of the exec tester
	DefaultShell = "sh"
	// DefaultExecTimeoutSec bounds a single exec case
	DefaultExecTimeoutSec = 60
	// DefaultSQLDriver is the database/sql driver of the sql tester
	DefaultSQLDriver = "sqlite"
	// DefaultSQLDSN is used when neither config nor environment name a DSN
	DefaultSQLDSN = ":memory:"
	// SQLDSNEnv names the environment variable holding the sql tester DSN
	SQLDSNEnv = "PLATINA_SQL_DSN"
)

// DefaultPathsToIgnore are the default directories to ignore when scanning for golden files
var DefaultPathsToIgnore = []string{
	"vendor",
	"node_modules",
}
