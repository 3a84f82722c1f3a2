package commands

import (
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"platina/internal/config"
	"platina/internal/discovery"
	"platina/internal/storage"
	"platina/internal/ui"
)

// ListCommand handles the list command
type ListCommand struct {
	config    *config.Config
	filter    *discovery.Filter
	formatter *ui.Formatter
	storage   storage.Storage
}

// NewListCommand creates a new ListCommand
func NewListCommand(
	cfg *config.Config,
	filter *discovery.Filter,
	formatter *ui.Formatter,
	st storage.Storage,
) *ListCommand {
	return &ListCommand{
		config:    cfg,
		filter:    filter,
		formatter: formatter,
		storage:   st,
	}
}

// Execute runs the command
func (lc *ListCommand) Execute(cmd *cobra.Command, args []string) error {
	files, err := newScanner(lc.config).Scan(lc.config.GetGoldenPath())
	if err != nil {
		return err
	}

	files = lc.filter.FilterByName(files, lc.config.Flags.NameFilter)
	if len(files) == 0 {
		color.Yellow("No golden files found")
		return nil
	}

	lc.formatter.PrintFileList(files, lc.config.Flags.Cases, lc.config.Flags.CaseFilter, lc.failedPaths())
	return nil
}

// failedPaths returns the files that mismatched or errored in the last run.
// Without a stored run nothing is marked.
func (lc *ListCommand) failedPaths() map[string]struct{} {
	output, err := lc.storage.Load()
	if err != nil {
		return nil
	}
	failed := make(map[string]struct{})
	for _, f := range output.Files {
		if f.Mismatches > 0 || f.Error != "" {
			failed[f.Path] = struct{}{}
		}
	}
	return failed
}
