package commands

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"platina/internal/config"
	"platina/internal/discovery"
	"platina/internal/domain"
	"platina/internal/storage"
	"platina/internal/ui"
)

// FmtCommand handles the fmt command
type FmtCommand struct {
	config    *config.Config
	filter    *discovery.Filter
	golden    *storage.GoldenFile
	formatter *ui.Formatter
}

// NewFmtCommand creates a new FmtCommand
func NewFmtCommand(cfg *config.Config, filter *discovery.Filter, golden *storage.GoldenFile, formatter *ui.Formatter) *FmtCommand {
	return &FmtCommand{config: cfg, filter: filter, golden: golden, formatter: formatter}
}

// Execute runs the command
func (fc *FmtCommand) Execute(cmd *cobra.Command, args []string) error {
	files, err := newScanner(fc.config).Resolve(fc.config.GetGoldenPath(), args)
	if err != nil {
		return err
	}
	files = fc.filter.FilterByName(files, fc.config.Flags.NameFilter)

	var formatted, failed int
	for _, file := range files {
		changed, err := fc.format(file)
		switch {
		case err != nil:
			failed++
			fc.formatter.PrintFileResult(&domain.FileResult{Path: file.Path, Error: err})
		case changed:
			formatted++
			color.Yellow("formatted %s", file.FilePath)
		}
	}

	color.Green("%d of %d golden file(s) reformatted", formatted, len(files))
	if failed > 0 {
		return fmt.Errorf("%d golden file(s) could not be parsed", failed)
	}
	return nil
}

// format rewrites file canonically and reports whether its bytes changed.
// A file that does not parse is left untouched.
func (fc *FmtCommand) format(file domain.GoldenFile) (bool, error) {
	cases, before, err := fc.golden.Load(file.Path)
	if err != nil {
		return false, err
	}
	after, err := fc.golden.Save(file.Path, cases)
	if err != nil {
		return false, err
	}
	return before != after, nil
}
