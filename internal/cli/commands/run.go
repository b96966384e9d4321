package commands

import (
	"fmt"
	"os"
	"os/signal"

	"github.com/fatih/color"
	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"caselist/internal/config"
	"caselist/internal/domain"
	"caselist/internal/execution"
	"caselist/internal/logging"
	"caselist/internal/storage"
	"caselist/internal/ui"
)

// RunCommand handles the run command
type RunCommand struct {
	config    *config.Config
	selection *Selection
	scheduler execution.Scheduler
	executor  execution.Executor
	storage   storage.Storage
	formatter *ui.Formatter
	viewer    ui.Viewer
}

// NewRunCommand creates a new RunCommand
func NewRunCommand(
	cfg *config.Config,
	selection *Selection,
	scheduler execution.Scheduler,
	executor execution.Executor,
	st storage.Storage,
	formatter *ui.Formatter,
	viewer ui.Viewer,
) *RunCommand {
	return &RunCommand{
		config:    cfg,
		selection: selection,
		scheduler: scheduler,
		executor:  executor,
		storage:   st,
		formatter: formatter,
		viewer:    viewer,
	}
}

// Execute runs the command
func (rc *RunCommand) Execute(cmd *cobra.Command, args []string) error {
	cases, filter, err := rc.selection.Select(cmdContext(cmd))
	if err != nil {
		return err
	}
	if len(cases) == 0 {
		color.Yellow("No cases to execute")
		return nil
	}

	paths := make([]string, len(cases))
	for i, c := range cases {
		paths[i] = c.Path
	}
	batches := execution.Batches(rc.scheduler, paths, rc.config.BatchSize)
	logging.Info("starting run", "cases", len(paths), "batches", len(batches), "workers", rc.config.Processors)

	rc.executor.SetProgress(ui.NewProgressBar(len(paths)))

	ctx, stop := signal.NotifyContext(cmdContext(cmd), os.Interrupt)
	defer stop()
	results, duration, runErr := rc.executor.Execute(ctx, batches, rc.config.Flags.FailFast)

	fraction := ""
	if f := filter.Fraction(); f != nil {
		fraction = f.String()
	}
	output := domain.NewRunOutput(uuid.NewString(), results, len(batches), duration, rc.config.Processors, fraction)
	if runErr != nil {
		logging.Warn("run interrupted, saving partial results", "cases", len(results), "of", len(paths))
	}

	// Save results, partial ones included
	if err := rc.storage.Save(output); err != nil {
		return fmt.Errorf("failed to save run results: %w", err)
	}
	if runErr != nil {
		return fmt.Errorf("run interrupted: %w", runErr)
	}

	if err := rc.formatter.PrintRunStats(output); err != nil {
		return err
	}

	if output.Meta.FailedCases == 0 {
		return nil
	}
	if rc.config.Flags.OpenFailures && rc.viewer != nil {
		if err := rc.viewer.View(output); err != nil {
			return err
		}
	}
	return fmt.Errorf("%d of %d case(s) did not pass", output.Meta.FailedCases, output.Meta.TotalCases)
}
