package commands

import (
	"github.com/spf13/cobra"

	"caselist/internal/config"
	"caselist/internal/ui"
)

// ListCommand handles the list command
type ListCommand struct {
	config    *config.Config
	selection *Selection
	formatter *ui.Formatter
}

// NewListCommand creates a new ListCommand
func NewListCommand(cfg *config.Config, selection *Selection, formatter *ui.Formatter) *ListCommand {
	return &ListCommand{
		config:    cfg,
		selection: selection,
		formatter: formatter,
	}
}

// Execute runs the command
func (lc *ListCommand) Execute(cmd *cobra.Command, args []string) error {
	cases, _, err := lc.selection.Select(cmdContext(cmd))
	if err != nil {
		return err
	}
	return lc.formatter.PrintSelection(cases, lc.config.Flags.Output)
}
