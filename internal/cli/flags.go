package cli

import "caselist/internal/config"

// Flags holds command-line flags
type Flags struct {
	// Root
	ConfigFile  string
	ProjectPath string
	Verbose     bool

	// Selection
	Hierarchy             string
	Cases                 []string
	CaseList              string
	CaseListSet           bool
	CaseListFile          string
	CaseListResource      string
	ArchiveDir            string
	StdinCaseList         bool
	Fraction              string
	FractionMandatoryFile string
	RunnerType            string
	CheckDuplicates       bool

	// Execution
	Processors   int
	BatchSize    int
	Binary       string
	FailFast     bool
	OpenFailures bool

	// Output
	Output string
	Shards int
	To     string
	Watch  bool
}

// ToConfigFlags converts CLI flags to config flags
func (f *Flags) ToConfigFlags() config.Flags {
	return config.Flags{
		Hierarchy:             f.Hierarchy,
		Cases:                 f.Cases,
		CaseList:              f.CaseList,
		CaseListSet:           f.CaseListSet,
		CaseListFile:          f.CaseListFile,
		CaseListResource:      f.CaseListResource,
		ArchiveDir:            f.ArchiveDir,
		StdinCaseList:         f.StdinCaseList,
		Fraction:              f.Fraction,
		FractionMandatoryFile: f.FractionMandatoryFile,
		RunnerType:            f.RunnerType,
		CheckDuplicates:       f.CheckDuplicates,
		Processors:            f.Processors,
		BatchSize:             f.BatchSize,
		Binary:                f.Binary,
		FailFast:              f.FailFast,
		OpenFailures:          f.OpenFailures,
		Output:                f.Output,
		Verbose:               f.Verbose,
	}
}
