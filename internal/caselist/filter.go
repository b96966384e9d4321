package caselist

import (
	"fmt"
	"io"
	"io/fs"
	"os"
)

// Options describes where a Filter takes its selection from. At most one of
// Cases, CaseList, CaseListFile, CaseListResource and StdinCaseList may be
// set. With none of them set every group and case passes the name checks.
type Options struct {
	// Cases are wildcard case patterns, one per element.
	Cases []string
	// CaseList is inline case-list text. Nil when not given.
	CaseList *string
	// CaseListFile is read from the local file system.
	CaseListFile string
	// CaseListResource is read from Archive.
	CaseListResource string
	Archive          fs.FS
	// StdinCaseList reads the case list from Stdin, or os.Stdin when Stdin
	// is nil.
	StdinCaseList bool
	Stdin         io.Reader

	// Fraction keeps only the cases of one shard. Nil keeps all.
	Fraction *Fraction
	// FractionMandatoryFile lists case patterns that are always kept.
	FractionMandatoryFile string
	RunnerType            RunnerType

	ParseOptions []ParseOption
}

func (o Options) sourceCount() int {
	n := 0
	for _, set := range []bool{
		len(o.Cases) > 0,
		o.CaseList != nil,
		o.CaseListFile != "",
		o.CaseListResource != "",
		o.StdinCaseList,
	} {
		if set {
			n++
		}
	}
	return n
}

// Filter answers whether a test group or case belongs to the selection. It
// is read-only after NewFilter returns.
type Filter struct {
	tree       *Tree
	paths      *CasePaths
	mandatory  *CasePaths
	fraction   *Fraction
	runnerType RunnerType
}

// NewFilter reads and parses the configured source. Malformed input is an
// error wrapping ErrInvalidCaseList; no partial filter is returned.
func NewFilter(opts Options) (*Filter, error) {
	if opts.sourceCount() > 1 {
		return nil, ErrConflictingSources
	}
	if opts.Fraction != nil {
		if err := opts.Fraction.Validate(); err != nil {
			return nil, err
		}
	}

	f := &Filter{fraction: opts.Fraction, runnerType: opts.RunnerType}

	var err error
	switch {
	case len(opts.Cases) > 0:
		f.paths, err = NewCasePaths(opts.Cases)
	case opts.CaseList != nil:
		f.tree, err = Parse(*opts.CaseList, opts.ParseOptions...)
		if err != nil {
			err = fmt.Errorf("case list: %w", err)
		}
	case opts.CaseListFile != "":
		f.tree, err = parseFile(opts.CaseListFile, opts.ParseOptions)
	case opts.CaseListResource != "":
		f.tree, err = parseResource(opts.Archive, opts.CaseListResource, opts.ParseOptions)
	case opts.StdinCaseList:
		in := opts.Stdin
		if in == nil {
			in = os.Stdin
		}
		f.tree, err = parseReader(in, opts.ParseOptions)
	}
	if err != nil {
		return nil, err
	}

	if opts.FractionMandatoryFile != "" {
		if f.mandatory, err = readMandatory(opts.FractionMandatoryFile); err != nil {
			return nil, err
		}
	}

	return f, nil
}

func parseFile(path string, opts []ParseOption) (*Tree, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read case list file: %w", err)
	}
	tree, err := Parse(string(data), opts...)
	if err != nil {
		return nil, fmt.Errorf("case list file %s: %w", path, err)
	}
	return tree, nil
}

func parseResource(archive fs.FS, name string, opts []ParseOption) (*Tree, error) {
	if archive == nil {
		return nil, ErrNoArchive
	}
	data, err := fs.ReadFile(archive, name)
	if err != nil {
		return nil, fmt.Errorf("read case list resource: %w", err)
	}
	tree, err := Parse(string(data), opts...)
	if err != nil {
		return nil, fmt.Errorf("case list resource %s: %w", name, err)
	}
	return tree, nil
}

func parseReader(r io.Reader, opts []ParseOption) (*Tree, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read case list from stdin: %w", err)
	}
	tree, err := Parse(string(data), opts...)
	if err != nil {
		return nil, fmt.Errorf("stdin case list: %w", err)
	}
	return tree, nil
}

func readMandatory(path string) (*CasePaths, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open fraction mandatory case list: %w", err)
	}
	defer file.Close()

	paths, err := ReadCasePaths(file)
	if err != nil {
		return nil, fmt.Errorf("fraction mandatory case list %s: %w", path, err)
	}
	return paths, nil
}

// WithFraction returns a copy of f that keeps only the given shard. The
// parsed sources are shared, not copied.
func (f *Filter) WithFraction(fraction *Fraction) *Filter {
	dup := *f
	dup.fraction = fraction
	return &dup
}

// CheckTestGroupName reports whether the group at path should be descended
// into: it is selected, lies on the way to a selected case, or no path
// filter is active.
func (f *Filter) CheckTestGroupName(path string) bool {
	var ok bool
	switch {
	case f.paths != nil:
		ok = f.paths.Matches(path, true)
	case f.tree != nil:
		ok = path == "" || f.tree.IsGroup(path)
	default:
		return true
	}

	if !ok && f.mandatory != nil {
		ok = f.mandatory.Matches(path, true)
	}
	return ok
}

// CheckTestCaseName reports whether the case at path is selected.
func (f *Filter) CheckTestCaseName(path string) bool {
	var ok bool
	switch {
	case f.paths != nil:
		ok = f.paths.Matches(path, false)
	case f.tree != nil:
		ok = f.tree.IsCase(path)
	default:
		return true
	}

	if !ok && f.mandatory != nil {
		ok = f.mandatory.Matches(path, false)
	}
	return ok
}

// CheckCaseFraction reports whether the case with ordering index falls into
// the configured fraction. Mandatory cases always do.
func (f *Filter) CheckCaseFraction(index int, path string) bool {
	if f.fraction == nil || f.fraction.Contains(index) {
		return true
	}
	return f.mandatory != nil && f.mandatory.Matches(path, false)
}

// CheckRunnerType reports whether a case of type t satisfies every runner
// bit the filter requires.
func (f *Filter) CheckRunnerType(t RunnerType) bool {
	return f.runnerType&t == f.runnerType
}

// Tree returns the parsed case tree, or nil when the selection came from
// case patterns or was not given.
func (f *Filter) Tree() *Tree {
	return f.tree
}

// CasePaths returns the case pattern set, or nil.
func (f *Filter) CasePaths() *CasePaths {
	return f.paths
}

// Fraction returns the active fraction, or nil.
func (f *Filter) Fraction() *Fraction {
	return f.fraction
}
