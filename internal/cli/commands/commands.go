package commands

import (
	"errors"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"platina/internal/cli"
	"platina/internal/config"
	"platina/internal/discovery"
	"platina/internal/logging"
	"platina/internal/parser"
	"platina/internal/storage"
	"platina/internal/ui"
)

// ErrRunFailed is returned when at least one golden file mismatched or
// could not be run. The details have already been printed.
var ErrRunFailed = errors.New("golden run failed")

// Commands holds all CLI commands
type Commands struct {
	Run        *RunCommand
	List       *ListCommand
	Mismatches *MismatchesCommand
	Fmt        *FmtCommand

	formatter *ui.Formatter
	logger    *zap.Logger
}

// NewCommands creates all commands with dependencies
func NewCommands(cfg *config.Config) *Commands {
	// Initialize dependencies
	filter := discovery.NewFilter()
	lister := discovery.NewLister()
	jsonStorage := storage.NewJSONStorage(cfg)
	goldenStorage := storage.NewGoldenFile(parser.NewGoldenParser())
	formatter := ui.NewFormatter(cfg, lister)
	viewer := ui.NewMismatchViewer(jsonStorage)

	c := &Commands{formatter: formatter, logger: zap.NewNop()}
	c.Run = NewRunCommand(cfg, filter, jsonStorage, formatter, viewer, c)
	c.List = NewListCommand(cfg, filter, formatter, jsonStorage)
	c.Mismatches = NewMismatchesCommand(jsonStorage, viewer)
	c.Fmt = NewFmtCommand(cfg, filter, goldenStorage, formatter)
	return c
}

// Logger returns the logger built from the command line flags
func (c *Commands) Logger() *zap.Logger {
	return c.logger
}

// newScanner builds a scanner from the config as loaded for this command
func newScanner(cfg *config.Config) *discovery.Scanner {
	return discovery.NewScanner(cfg.Extension, cfg.PathsToIgnore)
}

// Register registers all commands with cobra
func (c *Commands) Register(rootCmd *cobra.Command, flags *cli.Flags, cfg *config.Config) {
	rootCmd.PersistentFlags().BoolVarP(&flags.Verbose, "verbose", "v", false, "Log debug output to stderr")
	rootCmd.PersistentFlags().StringVar(&flags.ConfigFile, "config", "", "Path to the project config file (default ./platina.yaml when present)")

	// Update config with flags after parsing
	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		if err := cfg.Apply(flags.ToConfigFlags()); err != nil {
			return err
		}
		logger, err := logging.New(flags.Verbose)
		if err != nil {
			return err
		}
		c.logger = logger
		return nil
	}
	rootCmd.PersistentPostRun = func(cmd *cobra.Command, args []string) {
		_ = c.logger.Sync()
	}

	// Run command
	runCmd := &cobra.Command{
		Use:   "run [files...]",
		Short: "Run golden files",
		Long:  "Discover golden files (or use the given files and directories) and run every case through the configured tester",
		RunE:  c.Run.Execute,
	}
	runCmd.Flags().BoolVarP(&flags.Update, "update", "u", false, "Rewrite golden files with the computed values")
	runCmd.Flags().StringVarP(&flags.GoldenPath, "golden-path", "g", "", "Path to the folder where golden file discovery should start")
	runCmd.Flags().StringVarP(&flags.NameFilter, "filter", "f", "", "Filter golden files by name pattern (supports wildcards, e.g., '*sql*')")
	runCmd.Flags().StringVarP(&flags.Tester, "tester", "t", "", "Tester to run cases with (exec or sql)")
	runCmd.Flags().BoolVar(&flags.FailFast, "fail-fast", false, "Stop after the first failing golden file")
	runCmd.Flags().BoolVarP(&flags.Watch, "watch", "w", false, "Re-run golden files when they change")
	runCmd.Flags().BoolVar(&flags.OpenViewer, "open", false, "Open the mismatches viewer when the run finishes with mismatches")
	rootCmd.AddCommand(runCmd)

	// List command
	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List discovered golden files",
		Long:  "Scan and list golden files without running them",
		RunE:  c.List.Execute,
	}
	listCmd.Flags().StringVarP(&flags.GoldenPath, "golden-path", "g", "", "Path to the folder where golden file discovery should start")
	listCmd.Flags().StringVarP(&flags.NameFilter, "filter", "f", "", "Filter golden files by name pattern (supports wildcards, e.g., '*sql*')")
	listCmd.Flags().BoolVarP(&flags.Cases, "cases", "c", false, "List the cases of each golden file")
	listCmd.Flags().StringVar(&flags.CaseFilter, "case", "", "Filter listed cases by name pattern")
	rootCmd.AddCommand(listCmd)

	// Mismatches command
	mismatchesCmd := &cobra.Command{
		Use:   "mismatches",
		Short: "View mismatches interactively",
		Long:  "Display the mismatches of the last run in an interactive viewer",
		RunE:  c.Mismatches.Execute,
	}
	rootCmd.AddCommand(mismatchesCmd)

	// Fmt command
	fmtCmd := &cobra.Command{
		Use:   "fmt [files...]",
		Short: "Rewrite golden files in canonical form",
		Long:  "Parse golden files and write them back in canonical form without running any tester",
		RunE:  c.Fmt.Execute,
	}
	fmtCmd.Flags().StringVarP(&flags.GoldenPath, "golden-path", "g", "", "Path to the folder where golden file discovery should start")
	fmtCmd.Flags().StringVarP(&flags.NameFilter, "filter", "f", "", "Filter golden files by name pattern (supports wildcards, e.g., '*sql*')")
	rootCmd.AddCommand(fmtCmd)
}
