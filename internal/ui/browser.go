package ui

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"caselist/internal/caselist"
	"caselist/internal/domain"
)

// TreeBrowser shows a selection as a collapsible tree
type TreeBrowser struct{}

// NewTreeBrowser creates a new TreeBrowser
func NewTreeBrowser() *TreeBrowser {
	return &TreeBrowser{}
}

// BuildTree converts the selected cases into tview tree nodes. Groups start
// collapsed below the given depth.
func BuildTree(cases []domain.TestCase, expandDepth int) (*tview.TreeNode, error) {
	paths := make([]string, len(cases))
	for i, c := range cases {
		paths[i] = c.Path
	}
	tree, err := caselist.FromPaths(paths)
	if err != nil {
		return nil, err
	}

	root := tview.NewTreeNode(fmt.Sprintf("selection (%d cases)", tree.Len())).
		SetColor(tcell.ColorGreen)
	addTreeNodes(root, tree.Root(), "", 0, expandDepth)
	return root, nil
}

func addTreeNodes(parent *tview.TreeNode, n *caselist.Node, path string, depth, expandDepth int) {
	for _, child := range n.Children() {
		childPath := caselist.JoinPath(path, child.Name())
		node := tview.NewTreeNode(child.Name()).SetReference(childPath)
		if child.IsGroup() {
			node.SetColor(tcell.ColorDarkCyan).
				SetExpanded(depth < expandDepth)
			addTreeNodes(node, child, childPath, depth+1, expandDepth)
		} else {
			node.SetColor(tcell.ColorYellow)
		}
		parent.AddChild(node)
	}
}

// Browse opens the interactive tree. Enter toggles a group, Ctrl+C exits.
func (b *TreeBrowser) Browse(cases []domain.TestCase) error {
	if len(cases) == 0 {
		color.Yellow("No cases selected")
		return nil
	}

	root, err := BuildTree(cases, 1)
	if err != nil {
		return err
	}

	app := tview.NewApplication()
	footer := tview.NewTextView().SetDynamicColors(true)

	view := tview.NewTreeView().
		SetRoot(root).
		SetCurrentNode(root)
	view.SetSelectedFunc(func(node *tview.TreeNode) {
		if len(node.GetChildren()) > 0 {
			node.SetExpanded(!node.IsExpanded())
		}
	})
	view.SetChangedFunc(func(node *tview.TreeNode) {
		if path, ok := node.GetReference().(string); ok {
			footer.SetText("[cyan]" + path + "[white]")
			return
		}
		footer.SetText("")
	})
	view.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		if event.Key() == tcell.KeyCtrlC || (event.Key() == tcell.KeyRune && event.Rune() == 'q') {
			app.Stop()
			return nil
		}
		return event
	})

	layout := tview.NewFlex().
		SetDirection(tview.FlexRow).
		AddItem(view, 0, 1, true).
		AddItem(footer, 1, 0, false)

	if err := app.SetRoot(layout, true).SetFocus(view).Run(); err != nil {
		return fmt.Errorf("failed to run TUI: %w", err)
	}
	return nil
}
