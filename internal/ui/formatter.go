package ui

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/fatih/color"
	"gopkg.in/yaml.v3"

	"caselist/internal/caselist"
	"caselist/internal/domain"
)

// Output formats accepted by PrintSelection
const (
	FormatText = "text"
	FormatTree = "tree"
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// Formatter formats and displays output
type Formatter struct {
	out io.Writer
}

// NewFormatter creates a new Formatter writing to out, or stdout when out is nil
func NewFormatter(out io.Writer) *Formatter {
	if out == nil {
		out = os.Stdout
	}
	return &Formatter{out: out}
}

type selectionDocument struct {
	Count int      `json:"count" yaml:"count"`
	Cases []string `json:"cases" yaml:"cases"`
}

// PrintSelection prints the selected cases in the given format
func (f *Formatter) PrintSelection(cases []domain.TestCase, format string) error {
	paths := make([]string, len(cases))
	for i, c := range cases {
		paths[i] = c.Path
	}

	switch format {
	case "", FormatText:
		for _, p := range paths {
			fmt.Fprintln(f.out, p)
		}
		return nil
	case FormatTree:
		if len(paths) == 0 {
			color.New(color.FgYellow).Fprintln(f.out, "No cases selected")
			return nil
		}
		tree, err := caselist.FromPaths(paths)
		if err != nil {
			return err
		}
		color.New(color.FgGreen).Fprintf(f.out, "Selected %d case(s):\n", len(paths))
		f.writeTree(tree.Root(), "", "", func(string) string { return "" })
		return nil
	case FormatJSON:
		data, err := json.MarshalIndent(selectionDocument{Count: len(paths), Cases: paths}, "", "  ")
		if err != nil {
			return fmt.Errorf("marshal selection: %w", err)
		}
		fmt.Fprintln(f.out, string(data))
		return nil
	case FormatYAML:
		enc := yaml.NewEncoder(f.out)
		enc.SetIndent(2)
		if err := enc.Encode(selectionDocument{Count: len(paths), Cases: paths}); err != nil {
			return fmt.Errorf("marshal selection: %w", err)
		}
		return enc.Close()
	default:
		return fmt.Errorf("unknown output format %q", format)
	}
}

// writeTree prints the children of n with box-drawing connectors. label adds
// a suffix to case lines.
func (f *Formatter) writeTree(n *caselist.Node, path, prefix string, label func(path string) string) {
	children := n.Children()
	for i, child := range children {
		connector, next := "├── ", "│   "
		if i == len(children)-1 {
			connector, next = "└── ", "    "
		}
		childPath := caselist.JoinPath(path, child.Name())

		if child.IsGroup() {
			fmt.Fprintf(f.out, "%s%s%s\n", prefix, connector, color.CyanString(child.Name()))
			f.writeTree(child, childPath, prefix+next, label)
			continue
		}
		fmt.Fprintf(f.out, "%s%s%s%s\n", prefix, connector, color.YellowString(child.Name()), label(childPath))
	}
}

// PrintCheck reports a case-list file that parsed
func (f *Formatter) PrintCheck(file string, tree *caselist.Tree) {
	color.New(color.FgGreen).Fprintf(f.out, "✓ %s: %d case(s)\n", file, tree.Len())
}

// PrintCheckError reports a case-list file that failed to parse
func (f *Formatter) PrintCheckError(file string, err error) {
	color.New(color.FgRed).Fprintf(f.out, "✗ %s: %v\n", file, err)
}

// PrintShards prints the number of cases each fraction of the selection keeps
func (f *Formatter) PrintShards(counts []int) {
	total := 0
	for _, c := range counts {
		total += c
	}

	color.New(color.FgCyan).Fprintf(f.out, "Shards for %d case(s):\n", total)
	fmt.Fprintln(f.out, "┌────────────┬─────────────┐")
	fmt.Fprintf(f.out, "│ %-10s │ %-11s │\n", "Fraction", "Cases")
	fmt.Fprintln(f.out, "├────────────┼─────────────┤")
	for i, c := range counts {
		fmt.Fprintf(f.out, "│ %-10s │ %-11d │\n", fmt.Sprintf("%d,%d", i, len(counts)), c)
	}
	fmt.Fprintln(f.out, "└────────────┴─────────────┘")
}

type statRow struct {
	label string
	value string
	attr  color.Attribute
}

// PrintRunStats prints the statistics of a stored run followed by a tree of
// the cases that did not pass
func (f *Formatter) PrintRunStats(output *domain.RunOutput) error {
	meta := output.Meta

	// Print header
	fmt.Fprint(f.out, "\n")
	cyan := color.New(color.FgCyan)
	cyan.Fprintln(f.out, "╔═══════════════════════════════════════════════════════════════╗")
	cyan.Fprintln(f.out, "║                    Case Execution Statistics                  ║")
	cyan.Fprintln(f.out, "╚═══════════════════════════════════════════════════════════════╝")

	rows := []statRow{
		{"Run ID", meta.RunID, color.FgWhite},
		{"Total Cases", fmt.Sprint(meta.TotalCases), color.FgWhite},
		{"Passed Cases", fmt.Sprint(meta.PassedCases), color.FgGreen},
		{"Failed Cases", fmt.Sprint(meta.FailedCases), color.FgRed},
		{"Batches", fmt.Sprint(meta.Batches), color.FgWhite},
		{"Duration", fmt.Sprintf("%.2fs", meta.DurationSeconds), color.FgWhite},
		{"Workers", fmt.Sprint(meta.Workers), color.FgWhite},
		{"Timestamp", meta.Timestamp, color.FgWhite},
	}
	if meta.Fraction != "" {
		rows = append(rows, statRow{"Fraction", meta.Fraction, color.FgWhite})
	}

	fmt.Fprintln(f.out, "┌─────────────────────────────────┬──────────────────────────────────────┐")
	for i, row := range rows {
		if i > 0 {
			fmt.Fprintln(f.out, "├─────────────────────────────────┼──────────────────────────────────────┤")
		}
		fmt.Fprintf(f.out, "│ %-31s │ ", row.label)
		color.New(row.attr).Fprintf(f.out, "%-36s", row.value)
		fmt.Fprintln(f.out, " │")
	}
	fmt.Fprintln(f.out, "└─────────────────────────────────┴──────────────────────────────────────┘")

	statuses := make([]string, 0, len(meta.Statuses))
	for s := range meta.Statuses {
		statuses = append(statuses, string(s))
	}
	sort.Strings(statuses)
	for _, s := range statuses {
		fmt.Fprintf(f.out, "  %-22s %d\n", s, meta.Statuses[domain.Status(s)])
	}

	// Print summary line
	fmt.Fprintln(f.out)
	if meta.FailedCases == 0 {
		color.New(color.FgGreen).Fprintln(f.out, "✓ All cases passed!")
		return nil
	}
	color.New(color.FgRed).Fprintf(f.out, "✗ %d case(s) did not pass\n\n", meta.FailedCases)
	return f.printFailedTree(output.Details)
}

func (f *Formatter) printFailedTree(failures []domain.CaseResult) error {
	if len(failures) == 0 {
		return nil
	}

	status := make(map[string]domain.Status, len(failures))
	paths := make([]string, 0, len(failures))
	for _, r := range failures {
		status[r.Path] = r.Status
		paths = append(paths, r.Path)
	}
	sort.Strings(paths)

	tree, err := caselist.FromPaths(paths)
	if err != nil {
		return err
	}
	f.writeTree(tree.Root(), "", "", func(path string) string {
		return " " + color.RedString("[%s]", status[path])
	})
	return nil
}
