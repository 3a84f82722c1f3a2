package commands

import (
	"github.com/spf13/cobra"

	"platina/internal/storage"
	"platina/internal/ui"
)

// MismatchesCommand handles the mismatches command
type MismatchesCommand struct {
	storage storage.Storage
	viewer  ui.Viewer
}

// NewMismatchesCommand creates a new MismatchesCommand
func NewMismatchesCommand(st storage.Storage, viewer ui.Viewer) *MismatchesCommand {
	return &MismatchesCommand{storage: st, viewer: viewer}
}

// Execute runs the command
func (mc *MismatchesCommand) Execute(cmd *cobra.Command, args []string) error {
	results, err := mc.storage.Load()
	if err != nil {
		return err
	}
	return mc.viewer.View(results)
}
