package commands

import (
	"context"
	"fmt"
	"io"
	"os"

	"caselist/internal/caselist"
	"caselist/internal/config"
	"caselist/internal/discovery"
	"caselist/internal/domain"
	"caselist/internal/logging"
)

// Selection loads the hierarchy and filters it with the selection flags
type Selection struct {
	config *config.Config
	stdin  io.Reader
}

// NewSelection creates a new Selection reading stdin case lists from stdin
func NewSelection(cfg *config.Config, stdin io.Reader) *Selection {
	if stdin == nil {
		stdin = os.Stdin
	}
	return &Selection{config: cfg, stdin: stdin}
}

// Options converts the selection flags into filter options
func (s *Selection) Options() (caselist.Options, error) {
	flags := s.config.Flags
	opts := caselist.Options{
		Cases:                 flags.Cases,
		CaseListFile:          flags.CaseListFile,
		CaseListResource:      flags.CaseListResource,
		StdinCaseList:         flags.StdinCaseList,
		FractionMandatoryFile: flags.FractionMandatoryFile,
	}
	if flags.CaseListSet {
		caseList := flags.CaseList
		opts.CaseList = &caseList
	}
	if flags.CaseListResource != "" {
		opts.Archive = os.DirFS(s.config.GetArchiveDir())
	}
	if flags.StdinCaseList {
		opts.Stdin = s.stdin
	}
	if flags.Fraction != "" {
		fraction, err := caselist.ParseFraction(flags.Fraction)
		if err != nil {
			return opts, err
		}
		opts.Fraction = fraction
	}

	runnerType, err := caselist.ParseRunnerType(flags.RunnerType)
	if err != nil {
		return opts, err
	}
	opts.RunnerType = runnerType

	if flags.CheckDuplicates {
		opts.ParseOptions = append(opts.ParseOptions, caselist.WithDuplicateCheck())
	}
	return opts, nil
}

// Filter builds the filter. Any malformed source is an error.
func (s *Selection) Filter() (*caselist.Filter, error) {
	opts, err := s.Options()
	if err != nil {
		return nil, err
	}
	filter, err := caselist.NewFilter(opts)
	if err != nil {
		return nil, fmt.Errorf("invalid selection: %w", err)
	}
	return filter, nil
}

// Hierarchy loads the full test hierarchy
func (s *Selection) Hierarchy(ctx context.Context) (*domain.TestNode, error) {
	scanner := discovery.NewScanner(s.config.PathsToIgnore)
	loader := discovery.NewLoader(scanner, s.config.Processors)
	return loader.Load(ctx, s.config.GetHierarchyPath())
}

// Select returns the selected cases in hierarchy order together with the
// filter that picked them
func (s *Selection) Select(ctx context.Context) ([]domain.TestCase, *caselist.Filter, error) {
	filter, err := s.Filter()
	if err != nil {
		return nil, nil, err
	}
	if paths := filter.CasePaths(); paths != nil {
		logging.Debug("selecting by case patterns", "patterns", paths.Patterns())
	}
	root, err := s.Hierarchy(ctx)
	if err != nil {
		return nil, nil, err
	}
	return discovery.Walk(root, filter), filter, nil
}
