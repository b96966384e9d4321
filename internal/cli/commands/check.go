package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"caselist/internal/caselist"
	"caselist/internal/config"
	"caselist/internal/ui"
	"caselist/internal/watch"
)

// CheckCommand validates case-list files
type CheckCommand struct {
	config    *config.Config
	formatter *ui.Formatter
	watch     *bool
}

// NewCheckCommand creates a new CheckCommand. watch points at the --watch flag.
func NewCheckCommand(cfg *config.Config, formatter *ui.Formatter, watchFlag *bool) *CheckCommand {
	return &CheckCommand{
		config:    cfg,
		formatter: formatter,
		watch:     watchFlag,
	}
}

// Execute runs the command
func (cc *CheckCommand) Execute(cmd *cobra.Command, args []string) error {
	if cc.watch == nil || !*cc.watch {
		for _, file := range args {
			if err := cc.checkFile(file); err != nil {
				return err
			}
		}
		return nil
	}

	for _, file := range args {
		_ = cc.checkFile(file)
	}

	w, err := watch.New(args)
	if err != nil {
		return err
	}
	ctx, stop := signal.NotifyContext(cmdContext(cmd), os.Interrupt)
	defer stop()

	color.Cyan("Watching %d file(s), Ctrl+C to stop", len(args))
	return w.Run(ctx, func(file string) {
		_ = cc.checkFile(file)
	})
}

// ParseFile reads and parses one case-list file
func ParseFile(file string, checkDuplicates bool) (*caselist.Tree, error) {
	data, err := os.ReadFile(file)
	if err != nil {
		return nil, fmt.Errorf("read case list: %w", err)
	}
	var opts []caselist.ParseOption
	if checkDuplicates {
		opts = append(opts, caselist.WithDuplicateCheck())
	}
	return caselist.Parse(string(data), opts...)
}

func (cc *CheckCommand) checkFile(file string) error {
	tree, err := ParseFile(file, cc.config.Flags.CheckDuplicates)
	if err != nil {
		cc.formatter.PrintCheckError(file, err)
		return fmt.Errorf("%s: %w", file, err)
	}
	cc.formatter.PrintCheck(file, tree)
	return nil
}

func cmdContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
