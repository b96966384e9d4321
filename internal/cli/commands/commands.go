package commands

import (
	"io"

	"github.com/spf13/cobra"

	"caselist/internal/cli"
	"caselist/internal/config"
	"caselist/internal/execution"
	"caselist/internal/parser"
	"caselist/internal/storage"
	"caselist/internal/ui"
)

// Commands holds all CLI commands
type Commands struct {
	List     *ListCommand
	Check    *CheckCommand
	Convert  *ConvertCommand
	Shards   *ShardsCommand
	Browse   *BrowseCommand
	Run      *RunCommand
	Failures *FailuresCommand
}

// NewCommands creates all commands with dependencies. Output goes to out, or
// stdout when nil; stdin case lists are read from in, or stdin when nil.
func NewCommands(cfg *config.Config, flags *cli.Flags, in io.Reader, out io.Writer) *Commands {
	// Initialize dependencies
	selection := NewSelection(cfg, in)
	formatter := ui.NewFormatter(out)
	runner := execution.NewRunner(cfg)
	scheduler := execution.NewRoundRobinScheduler()
	deqpParser := parser.NewDEQPParser()
	executor := execution.NewWorkerPool(cfg, runner, deqpParser)
	st := storage.NewConfigured(cfg)
	failureViewer := ui.NewFailureViewer(st)

	return &Commands{
		List:     NewListCommand(cfg, selection, formatter),
		Check:    NewCheckCommand(cfg, formatter, &flags.Watch),
		Convert:  NewConvertCommand(cfg, &flags.To),
		Shards:   NewShardsCommand(cfg, selection, formatter, &flags.Shards),
		Browse:   NewBrowseCommand(selection, ui.NewTreeBrowser()),
		Run:      NewRunCommand(cfg, selection, scheduler, executor, st, formatter, failureViewer),
		Failures: NewFailuresCommand(st, failureViewer),
	}
}

// applyFlags returns a PreRunE that copies the parsed flags into the config
func applyFlags(flags *cli.Flags, cfg *config.Config) func(cmd *cobra.Command, args []string) error {
	return func(cmd *cobra.Command, args []string) error {
		flags.CaseListSet = cmd.Flags().Changed("caselist")
		cfg.ApplyFlags(flags.ToConfigFlags())
		return nil
	}
}

func addSelectionFlags(cmd *cobra.Command, flags *cli.Flags) {
	f := cmd.Flags()
	f.StringVar(&flags.Hierarchy, "hierarchy", "", "Test hierarchy file or directory (default from config)")
	f.StringArrayVar(&flags.Cases, "case", nil, "Case path pattern, '*' matches within one segment (repeatable)")
	f.StringVar(&flags.CaseList, "caselist", "", "Inline case list in trie or flat syntax")
	f.StringVar(&flags.CaseListFile, "caselist-file", "", "Read the case list from a file")
	f.StringVar(&flags.CaseListResource, "caselist-resource", "", "Read the case list from a resource under --archive-dir")
	f.StringVar(&flags.ArchiveDir, "archive-dir", "", "Root directory for --caselist-resource")
	f.BoolVar(&flags.StdinCaseList, "stdin-caselist", false, "Read the case list from stdin")
	f.StringVar(&flags.Fraction, "fraction", "", "Keep only shard i of n, as 'i,n'")
	f.StringVar(&flags.FractionMandatoryFile, "fraction-mandatory-caselist-file", "", "Case patterns kept in every fraction, one per line")
	f.StringVar(&flags.RunnerType, "runner-type", "", "Keep only cases supported by this runner (none, amber)")
	f.BoolVar(&flags.CheckDuplicates, "check-duplicates", false, "Reject case lists that name a case twice")
}

// Register registers all commands with cobra
func (c *Commands) Register(rootCmd *cobra.Command, flags *cli.Flags, cfg *config.Config) {
	preRun := applyFlags(flags, cfg)

	// List command
	listCmd := &cobra.Command{
		Use:     "list",
		Short:   "List the selected test cases",
		Long:    "Load the test hierarchy, apply the selection and print the selected cases",
		Args:    cobra.NoArgs,
		RunE:    c.List.Execute,
		PreRunE: preRun,
	}
	addSelectionFlags(listCmd, flags)
	listCmd.Flags().StringVarP(&flags.Output, "output", "o", ui.FormatText, "Output format: text, tree, json or yaml")
	rootCmd.AddCommand(listCmd)

	// Check command
	checkCmd := &cobra.Command{
		Use:     "check <file>...",
		Short:   "Validate case-list files",
		Long:    "Parse case-list files and report the first syntax error",
		Args:    cobra.MinimumNArgs(1),
		RunE:    c.Check.Execute,
		PreRunE: preRun,
	}
	checkCmd.Flags().BoolVarP(&flags.Watch, "watch", "w", false, "Re-validate the files whenever they change")
	checkCmd.Flags().BoolVar(&flags.CheckDuplicates, "check-duplicates", false, "Reject case lists that name a case twice")
	rootCmd.AddCommand(checkCmd)

	// Convert command
	convertCmd := &cobra.Command{
		Use:     "convert <file>",
		Short:   "Convert a case list between trie and flat syntax",
		Args:    cobra.ExactArgs(1),
		RunE:    c.Convert.Execute,
		PreRunE: preRun,
	}
	convertCmd.Flags().StringVar(&flags.To, "to", SyntaxTrie, "Target syntax: trie or flat")
	convertCmd.Flags().BoolVar(&flags.CheckDuplicates, "check-duplicates", false, "Reject case lists that name a case twice")
	rootCmd.AddCommand(convertCmd)

	// Shards command
	shardsCmd := &cobra.Command{
		Use:     "shards",
		Short:   "Show the case count of every fraction",
		Long:    "Show how many selected cases each --fraction i,N keeps for i in 0..N-1",
		Args:    cobra.NoArgs,
		RunE:    c.Shards.Execute,
		PreRunE: preRun,
	}
	addSelectionFlags(shardsCmd, flags)
	shardsCmd.Flags().IntVarP(&flags.Shards, "shards", "n", 2, "Number of shards")
	rootCmd.AddCommand(shardsCmd)

	// Browse command
	browseCmd := &cobra.Command{
		Use:     "browse",
		Short:   "Browse the selection interactively",
		Args:    cobra.NoArgs,
		RunE:    c.Browse.Execute,
		PreRunE: preRun,
	}
	addSelectionFlags(browseCmd, flags)
	rootCmd.AddCommand(browseCmd)

	// Run command
	runCmd := &cobra.Command{
		Use:     "run",
		Short:   "Run the selected cases in parallel",
		Long:    "Split the selection into batches and run each batch through the test binary on parallel workers",
		Args:    cobra.NoArgs,
		RunE:    c.Run.Execute,
		PreRunE: preRun,
	}
	addSelectionFlags(runCmd, flags)
	runCmd.Flags().IntVarP(&flags.Processors, "processors", "p", 0, "Number of parallel workers (default from config)")
	runCmd.Flags().IntVar(&flags.BatchSize, "batch-size", 0, "Cases per test binary invocation (default from config)")
	runCmd.Flags().StringVar(&flags.Binary, "binary", "", "Test binary (default from config)")
	runCmd.Flags().BoolVar(&flags.FailFast, "fail-fast", false, "Stop after the first batch with a failing case")
	runCmd.Flags().BoolVar(&flags.OpenFailures, "open-failures", false, "Open the failures viewer when the run has failing cases")
	rootCmd.AddCommand(runCmd)

	// Failures command
	failuresCmd := &cobra.Command{
		Use:   "failures",
		Short: "View failing cases of the last run interactively",
		Args:  cobra.NoArgs,
		RunE:  c.Failures.Execute,
	}
	rootCmd.AddCommand(failuresCmd)
}
