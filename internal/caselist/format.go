package caselist

import (
	"strings"
)

// FormatTrie writes t in trie syntax without a trailing newline. The result
// parses back into an identical tree.
func FormatTrie(t *Tree) string {
	var b strings.Builder
	writeTrieGroup(&b, t.root)
	return b.String()
}

func writeTrieGroup(b *strings.Builder, n *Node) {
	b.WriteByte('{')
	for i, child := range n.children {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(child.name)
		if child.IsGroup() {
			writeTrieGroup(b, child)
		}
	}
	b.WriteByte('}')
}

// FormatFlat writes every case of t on its own LF-terminated line.
func FormatFlat(t *Tree) string {
	var b strings.Builder
	for _, c := range t.Cases() {
		b.WriteString(c)
		b.WriteByte('\n')
	}
	return b.String()
}

// FromPaths builds a tree from full case paths, as if they were the lines of
// a flat case list.
func FromPaths(paths []string, opts ...ParseOption) (*Tree, error) {
	return ParseFlat(strings.Join(paths, "\n"), opts...)
}
