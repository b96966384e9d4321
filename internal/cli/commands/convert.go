package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"caselist/internal/caselist"
	"caselist/internal/config"
)

// Case-list syntaxes accepted by --to
const (
	SyntaxTrie = "trie"
	SyntaxFlat = "flat"
)

// ConvertCommand re-emits a case-list file in the other syntax
type ConvertCommand struct {
	config *config.Config
	to     *string
}

// NewConvertCommand creates a new ConvertCommand. to points at the --to flag.
func NewConvertCommand(cfg *config.Config, to *string) *ConvertCommand {
	return &ConvertCommand{config: cfg, to: to}
}

// Execute runs the command
func (cc *ConvertCommand) Execute(cmd *cobra.Command, args []string) error {
	tree, err := ParseFile(args[0], cc.config.Flags.CheckDuplicates)
	if err != nil {
		return fmt.Errorf("%s: %w", args[0], err)
	}

	switch *cc.to {
	case SyntaxTrie:
		fmt.Fprintln(cmd.OutOrStdout(), caselist.FormatTrie(tree))
	case SyntaxFlat:
		fmt.Fprint(cmd.OutOrStdout(), caselist.FormatFlat(tree))
	default:
		return fmt.Errorf("unknown case list syntax %q, want %s or %s", *cc.to, SyntaxTrie, SyntaxFlat)
	}
	return nil
}
