package commands

import (
	"github.com/spf13/cobra"

	"caselist/internal/ui"
)

// BrowseCommand opens the interactive tree of the selection
type BrowseCommand struct {
	selection *Selection
	browser   ui.Browser
}

// NewBrowseCommand creates a new BrowseCommand
func NewBrowseCommand(selection *Selection, browser ui.Browser) *BrowseCommand {
	return &BrowseCommand{selection: selection, browser: browser}
}

// Execute runs the command
func (bc *BrowseCommand) Execute(cmd *cobra.Command, args []string) error {
	cases, _, err := bc.selection.Select(cmdContext(cmd))
	if err != nil {
		return err
	}
	return bc.browser.Browse(cases)
}
