package discovery

import (
	"caselist/internal/caselist"
	"caselist/internal/domain"
)

// Selector decides which parts of a hierarchy are kept. *caselist.Filter
// implements it.
type Selector interface {
	CheckTestGroupName(path string) bool
	CheckTestCaseName(path string) bool
	CheckCaseFraction(index int, path string) bool
	CheckRunnerType(t caselist.RunnerType) bool
}

// Walk visits the hierarchy depth first and returns the selected cases in
// hierarchy order. Groups failing CheckTestGroupName are not descended into.
// The fraction index counts the cases that pass the name and runner checks.
func Walk(root *domain.TestNode, sel Selector) []domain.TestCase {
	w := &walker{sel: sel}
	for _, c := range root.Children {
		w.visit(c, "")
	}
	return w.selected
}

type walker struct {
	sel      Selector
	index    int
	selected []domain.TestCase
}

func (w *walker) visit(n *domain.TestNode, parent string) {
	path := caselist.JoinPath(parent, n.Name)

	if n.Kind == domain.GroupNode {
		if !w.sel.CheckTestGroupName(path) {
			return
		}
		for _, c := range n.Children {
			w.visit(c, path)
		}
		return
	}

	if !w.sel.CheckTestCaseName(path) || !w.sel.CheckRunnerType(n.Runner) {
		return
	}
	index := w.index
	w.index++
	if !w.sel.CheckCaseFraction(index, path) {
		return
	}
	w.selected = append(w.selected, domain.TestCase{Path: path, Runner: n.Runner})
}
