package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"caselist/internal/caselist"
	"caselist/internal/config"
	"caselist/internal/discovery"
	"caselist/internal/domain"
	"caselist/internal/ui"
)

// ShardsCommand prints how many cases each --fraction i,N would keep
type ShardsCommand struct {
	config    *config.Config
	selection *Selection
	formatter *ui.Formatter
	count     *int
}

// NewShardsCommand creates a new ShardsCommand. count points at the -n flag.
func NewShardsCommand(cfg *config.Config, selection *Selection, formatter *ui.Formatter, count *int) *ShardsCommand {
	return &ShardsCommand{
		config:    cfg,
		selection: selection,
		formatter: formatter,
		count:     count,
	}
}

// Execute runs the command
func (sc *ShardsCommand) Execute(cmd *cobra.Command, args []string) error {
	n := *sc.count
	if n <= 0 {
		return fmt.Errorf("%w: shard count must be positive, got %d", caselist.ErrInvalidFraction, n)
	}

	filter, err := sc.selection.Filter()
	if err != nil {
		return err
	}
	root, err := sc.selection.Hierarchy(cmdContext(cmd))
	if err != nil {
		return err
	}

	sc.formatter.PrintShards(ShardCounts(root, filter, n))
	return nil
}

// ShardCounts returns the number of cases kept by each fraction i,n of filter
func ShardCounts(root *domain.TestNode, filter *caselist.Filter, n int) []int {
	counts := make([]int, n)
	for i := range counts {
		counts[i] = len(discovery.Walk(root, filter.WithFraction(&caselist.Fraction{Index: i, Count: n})))
	}
	return counts
}
