package commands

import (
	"errors"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"caselist/internal/storage"
	"caselist/internal/ui"
)

// FailuresCommand handles the failures command
type FailuresCommand struct {
	storage storage.Storage
	viewer  ui.Viewer
}

// NewFailuresCommand creates a new FailuresCommand
func NewFailuresCommand(st storage.Storage, viewer ui.Viewer) *FailuresCommand {
	return &FailuresCommand{
		storage: st,
		viewer:  viewer,
	}
}

// Execute runs the command
func (fc *FailuresCommand) Execute(cmd *cobra.Command, args []string) error {
	results, err := fc.storage.Load()
	if errors.Is(err, storage.ErrNoResults) {
		color.Yellow("No stored run, use the run command first")
		return nil
	}
	if err != nil {
		return err
	}

	return fc.viewer.View(results)
}
