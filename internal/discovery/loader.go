package discovery

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"caselist/internal/caselist"
	"caselist/internal/domain"
	"caselist/internal/logging"

	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"
)

// Loader reads test hierarchies from case-list text files and YAML manifests
type Loader struct {
	scanner *Scanner
	workers int
}

// NewLoader creates a new Loader reading up to workers files at once
func NewLoader(scanner *Scanner, workers int) *Loader {
	if workers <= 0 {
		workers = 1
	}
	return &Loader{scanner: scanner, workers: workers}
}

// Load reads the hierarchy at path, a file or a directory of files, and
// merges everything into one unnamed root group
func (l *Loader) Load(ctx context.Context, path string) (*domain.TestNode, error) {
	files, err := l.scanner.Scan(path)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no hierarchy files found in %s", path)
	}

	roots := make([]*domain.TestNode, len(files))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(l.workers)
	for i, file := range files {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			root, err := l.LoadFile(file)
			if err != nil {
				return err
			}
			roots[i] = root
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	// Merge in scan order so the hierarchy order is stable
	merged := domain.NewGroup("")
	for _, root := range roots {
		merged.Merge(root)
	}
	logging.Debug("loaded hierarchy", "files", len(files), "cases", merged.CountCases())
	return merged, nil
}

// LoadFile reads a single hierarchy file
func (l *Loader) LoadFile(file string) (*domain.TestNode, error) {
	data, err := os.ReadFile(file)
	if err != nil {
		return nil, fmt.Errorf("error reading file %s: %w", file, err)
	}

	switch strings.ToLower(filepath.Ext(file)) {
	case ".yaml", ".yml":
		root, err := ParseManifest(data)
		if err != nil {
			return nil, fmt.Errorf("hierarchy manifest %s: %w", file, err)
		}
		return root, nil
	default:
		tree, err := caselist.Parse(string(data))
		if err != nil {
			return nil, fmt.Errorf("hierarchy %s: %w", file, err)
		}
		return FromTree(tree), nil
	}
}

// FromTree converts a parsed case list into a hierarchy with no runner types
func FromTree(tree *caselist.Tree) *domain.TestNode {
	return convertNode(tree.Root())
}

func convertNode(n *caselist.Node) *domain.TestNode {
	if n.IsLeaf() {
		return domain.NewCase(n.Name(), caselist.RunnerNone)
	}
	group := domain.NewGroup(n.Name())
	for _, c := range n.Children() {
		group.AddChild(convertNode(c))
	}
	return group
}

// manifestNode is one entry of a YAML hierarchy manifest. Entries without
// children are cases. A runner set on a group applies to everything below
// it unless overridden.
type manifestNode struct {
	Name     string         `yaml:"name"`
	Runner   string         `yaml:"runner,omitempty"`
	Children []manifestNode `yaml:"children,omitempty"`
}

type manifest struct {
	Nodes []manifestNode `yaml:"hierarchy"`
}

// ParseManifest decodes a YAML hierarchy manifest
func ParseManifest(data []byte) (*domain.TestNode, error) {
	var m manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("decode manifest: %w", err)
	}
	if len(m.Nodes) == 0 {
		return nil, fmt.Errorf("manifest has no hierarchy entries")
	}

	root := domain.NewGroup("")
	for _, n := range m.Nodes {
		child, err := buildManifestNode(n, caselist.RunnerNone, "")
		if err != nil {
			return nil, err
		}
		root.Merge(&domain.TestNode{Children: []*domain.TestNode{child}})
	}
	return root, nil
}

func buildManifestNode(n manifestNode, inherited caselist.RunnerType, parent string) (*domain.TestNode, error) {
	path := caselist.JoinPath(parent, n.Name)
	if !caselist.ValidName(n.Name) {
		return nil, fmt.Errorf("invalid node name %q at %s", n.Name, path)
	}

	runner := inherited
	if n.Runner != "" {
		var err error
		if runner, err = caselist.ParseRunnerType(n.Runner); err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
	}

	if len(n.Children) == 0 {
		return domain.NewCase(n.Name, runner), nil
	}

	group := domain.NewGroup(n.Name)
	group.Runner = runner
	for _, c := range n.Children {
		child, err := buildManifestNode(c, runner, path)
		if err != nil {
			return nil, err
		}
		group.Merge(&domain.TestNode{Children: []*domain.TestNode{child}})
	}
	return group, nil
}
