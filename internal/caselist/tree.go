package caselist

// nodeState is the variant a Node is in. The only legal transition is
// leafNode -> groupNode, made by promote.
type nodeState uint8

const (
	leafNode nodeState = iota
	groupNode
)

// Node is one path segment of a case tree. A leaf is a runnable case, a
// group holds further nodes.
type Node struct {
	name     string
	state    nodeState
	children []*Node
	index    map[string]*Node
}

func newLeaf(name string) *Node {
	return &Node{name: name}
}

func newGroup(name string) *Node {
	n := newLeaf(name)
	n.promote()
	return n
}

// promote turns a leaf into a group. It is a no-op on groups; there is no
// way back.
func (n *Node) promote() {
	if n.state == groupNode {
		return
	}
	n.state = groupNode
	n.index = make(map[string]*Node)
}

// addChild attaches a new leaf called name, promoting n if needed.
func (n *Node) addChild(name string) *Node {
	n.promote()
	child := newLeaf(name)
	n.children = append(n.children, child)
	n.index[name] = child
	return child
}

// Name returns the segment name. The root's name is empty.
func (n *Node) Name() string {
	return n.name
}

// IsGroup reports whether n has children.
func (n *Node) IsGroup() bool {
	return n.state == groupNode
}

// IsLeaf reports whether n is a concrete case.
func (n *Node) IsLeaf() bool {
	return n.state == leafNode
}

// Children returns the child nodes in the order they first appeared.
func (n *Node) Children() []*Node {
	return append([]*Node(nil), n.children...)
}

// Child returns the child called name, or nil.
func (n *Node) Child(name string) *Node {
	return n.index[name]
}

// Tree is a parsed case list. It is never modified after parsing, so it can
// be shared freely.
type Tree struct {
	root  *Node
	cases int
}

func newTree(root *Node) *Tree {
	t := &Tree{root: root}
	t.Walk(func(_ string, n *Node) bool {
		if n.IsLeaf() {
			t.cases++
		}
		return true
	})
	return t
}

// Root returns the unnamed root group.
func (t *Tree) Root() *Node {
	return t.root
}

// Find returns the node at the dotted path, or nil. The empty path is the
// root.
func (t *Tree) Find(path string) *Node {
	node := t.root
	for _, seg := range splitPath(path) {
		node = node.Child(seg)
		if node == nil {
			return nil
		}
	}
	return node
}

// IsGroup reports whether path names a group of the tree.
func (t *Tree) IsGroup(path string) bool {
	n := t.Find(path)
	return n != nil && n.IsGroup()
}

// IsCase reports whether path names a case of the tree.
func (t *Tree) IsCase(path string) bool {
	n := t.Find(path)
	return n != nil && n.IsLeaf()
}

// Len returns the number of cases in the tree.
func (t *Tree) Len() int {
	return t.cases
}

// Cases returns the full path of every case, depth first in input order.
func (t *Tree) Cases() []string {
	cases := make([]string, 0, t.cases)
	t.Walk(func(path string, n *Node) bool {
		if n.IsLeaf() {
			cases = append(cases, path)
		}
		return true
	})
	return cases
}

// Walk calls fn for every node below the root, depth first, with the node's
// full path. Returning false from fn skips the node's children.
func (t *Tree) Walk(fn func(path string, n *Node) bool) {
	walkNode(t.root, "", fn)
}

func walkNode(n *Node, path string, fn func(string, *Node) bool) {
	for _, child := range n.children {
		childPath := JoinPath(path, child.name)
		if fn(childPath, child) {
			walkNode(child, childPath, fn)
		}
	}
}
