package domain

import "caselist/internal/caselist"

// NodeKind tells groups and cases apart in a test hierarchy
type NodeKind int

const (
	// GroupNode holds further groups or cases
	GroupNode NodeKind = iota
	// CaseNode is a runnable test case
	CaseNode
)

// TestNode is one node of a test hierarchy. Children should be added with
// AddChild or Merge so the name index stays current.
type TestNode struct {
	Name     string
	Kind     NodeKind
	Runner   caselist.RunnerType
	Children []*TestNode

	index map[string]*TestNode
}

// NewGroup creates an empty group node
func NewGroup(name string) *TestNode {
	return &TestNode{Name: name, Kind: GroupNode}
}

// NewCase creates a case node
func NewCase(name string, runner caselist.RunnerType) *TestNode {
	return &TestNode{Name: name, Kind: CaseNode, Runner: runner}
}

// Child returns the direct child called name, or nil
func (n *TestNode) Child(name string) *TestNode {
	if len(n.index) != len(n.Children) {
		n.reindex()
	}
	return n.index[name]
}

func (n *TestNode) reindex() {
	n.index = make(map[string]*TestNode, len(n.Children))
	for _, c := range n.Children {
		if _, ok := n.index[c.Name]; !ok {
			n.index[c.Name] = c
		}
	}
}

// AddChild appends c without checking for an existing child of the same name
func (n *TestNode) AddChild(c *TestNode) {
	if len(n.index) != len(n.Children) {
		n.reindex()
	}
	n.Children = append(n.Children, c)
	if _, ok := n.index[c.Name]; !ok {
		n.index[c.Name] = c
	}
}

// promote turns a case into a group. It is the only kind transition.
func (n *TestNode) promote(runner caselist.RunnerType) {
	n.Kind = GroupNode
	n.Runner = runner
}

// Merge adds the children of src to n. Groups with the same name are merged
// recursively. A group arriving under the name of an existing case turns that
// case into a group; a case arriving under the name of an existing node is
// already covered and dropped.
func (n *TestNode) Merge(src *TestNode) {
	for _, c := range src.Children {
		existing := n.Child(c.Name)
		switch {
		case existing == nil:
			n.AddChild(c)
		case c.Kind == GroupNode:
			if existing.Kind == CaseNode {
				existing.promote(c.Runner)
			}
			existing.Merge(c)
		}
	}
}

// CountCases returns the number of cases below n
func (n *TestNode) CountCases() int {
	if n.Kind == CaseNode {
		return 1
	}
	total := 0
	for _, c := range n.Children {
		total += c.CountCases()
	}
	return total
}

// TestCase is a selected case with its full dotted path
type TestCase struct {
	Path   string              `json:"path" yaml:"path"`
	Runner caselist.RunnerType `json:"-" yaml:"-"`
}

// Batch is a group of cases handed to one test binary invocation
type Batch struct {
	ID    int
	Cases []string
}
