package discovery

import (
	"testing"

	"caselist/internal/caselist"
	"caselist/internal/domain"

	"github.com/google/go-cmp/cmp"
)

func testHierarchy(t *testing.T) *domain.TestNode {
	t.Helper()
	root, err := ParseManifest([]byte(amberManifest))
	if err != nil {
		t.Fatalf("failed to parse manifest: %v", err)
	}
	tree, err := caselist.Parse("dEQP-VK.memory.alloc\ndEQP-VK.memory.free\ndEQP-VK.info.version\n")
	if err != nil {
		t.Fatalf("failed to parse case list: %v", err)
	}
	root.Merge(FromTree(tree))
	return root
}

type countingSelector struct {
	*caselist.Filter
	groupChecks []string
}

func (s *countingSelector) CheckTestGroupName(path string) bool {
	s.groupChecks = append(s.groupChecks, path)
	return s.Filter.CheckTestGroupName(path)
}

func TestWalk(t *testing.T) {
	root := testHierarchy(t)
	caseList := "{dEQP-VK{api{smoke{triangle}},memory{free}}}"

	tests := []struct {
		name     string
		opts     caselist.Options
		expected []string
	}{
		{
			name: "no filter",
			opts: caselist.Options{},
			expected: []string{
				"dEQP-VK.api.smoke.triangle",
				"dEQP-VK.api.smoke.triangle_amber",
				"dEQP-VK.spirv_assembly.opnop",
				"dEQP-VK.spirv_assembly.opline",
				"dEQP-VK.memory.alloc",
				"dEQP-VK.memory.free",
				"dEQP-VK.info.version",
			},
		},
		{
			name:     "case list",
			opts:     caselist.Options{CaseList: &caseList},
			expected: []string{"dEQP-VK.api.smoke.triangle", "dEQP-VK.memory.free"},
		},
		{
			name:     "case patterns",
			opts:     caselist.Options{Cases: []string{"dEQP-VK.*.smoke.*", "dEQP-VK.info.*"}},
			expected: []string{"dEQP-VK.api.smoke.triangle", "dEQP-VK.api.smoke.triangle_amber", "dEQP-VK.info.version"},
		},
		{
			name: "amber runner",
			opts: caselist.Options{RunnerType: caselist.RunnerAmber},
			expected: []string{
				"dEQP-VK.api.smoke.triangle_amber",
				"dEQP-VK.spirv_assembly.opnop",
				"dEQP-VK.spirv_assembly.opline",
			},
		},
		{
			name:     "fraction",
			opts:     caselist.Options{Fraction: &caselist.Fraction{Index: 1, Count: 3}},
			expected: []string{"dEQP-VK.api.smoke.triangle_amber", "dEQP-VK.memory.alloc"},
		},
		{
			name:     "matches nothing",
			opts:     caselist.Options{Cases: []string{"dEQP-GLES2.*"}},
			expected: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			filter, err := caselist.NewFilter(tt.opts)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			var got []string
			for _, c := range Walk(root, filter) {
				got = append(got, c.Path)
			}
			if diff := cmp.Diff(tt.expected, got); diff != "" {
				t.Errorf("selection mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestWalk_PrunesGroups(t *testing.T) {
	root := testHierarchy(t)
	filter, err := caselist.NewFilter(caselist.Options{Cases: []string{"dEQP-VK.memory.alloc"}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	sel := &countingSelector{Filter: filter}
	Walk(root, sel)

	for _, path := range sel.groupChecks {
		if path == "dEQP-VK.api.smoke" {
			t.Error("expected dEQP-VK.api to be pruned before visiting its children")
		}
	}
}

func TestWalk_FractionShardsCoverSelection(t *testing.T) {
	root := testHierarchy(t)
	base, err := caselist.NewFilter(caselist.Options{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	all := Walk(root, base)
	seen := make(map[string]int)
	for i := 0; i < 3; i++ {
		for _, c := range Walk(root, base.WithFraction(&caselist.Fraction{Index: i, Count: 3})) {
			seen[c.Path]++
		}
	}

	if len(seen) != len(all) {
		t.Errorf("expected shards to cover %d cases, got %d", len(all), len(seen))
	}
	for path, n := range seen {
		if n != 1 {
			t.Errorf("%s selected by %d shards", path, n)
		}
	}
}
