package ui

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/fatih/color"

	"caselist/internal/domain"
)

func testCases(paths ...string) []domain.TestCase {
	cases := make([]domain.TestCase, len(paths))
	for i, p := range paths {
		cases[i] = domain.TestCase{Path: p}
	}
	return cases
}

func TestFormatter_PrintSelection(t *testing.T) {
	color.NoColor = true
	cases := testCases("dEQP-VK.api.smoke.triangle", "dEQP-VK.api.smoke.create_sampler", "dEQP-VK.memory.alloc")

	tests := []struct {
		name   string
		format string
		want   string
	}{
		{
			name:   "text",
			format: FormatText,
			want:   "dEQP-VK.api.smoke.triangle\ndEQP-VK.api.smoke.create_sampler\ndEQP-VK.memory.alloc\n",
		},
		{
			name:   "tree",
			format: FormatTree,
			want: "Selected 3 case(s):\n" +
				"└── dEQP-VK\n" +
				"    ├── api\n" +
				"    │   └── smoke\n" +
				"    │       ├── triangle\n" +
				"    │       └── create_sampler\n" +
				"    └── memory\n" +
				"        └── alloc\n",
		},
		{
			name:   "json",
			format: FormatJSON,
			want: "{\n  \"count\": 3,\n  \"cases\": [\n" +
				"    \"dEQP-VK.api.smoke.triangle\",\n" +
				"    \"dEQP-VK.api.smoke.create_sampler\",\n" +
				"    \"dEQP-VK.memory.alloc\"\n  ]\n}\n",
		},
		{
			name:   "yaml",
			format: FormatYAML,
			want: "count: 3\ncases:\n" +
				"  - dEQP-VK.api.smoke.triangle\n" +
				"  - dEQP-VK.api.smoke.create_sampler\n" +
				"  - dEQP-VK.memory.alloc\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			if err := NewFormatter(&buf).PrintSelection(cases, tt.format); err != nil {
				t.Fatalf("PrintSelection() error = %v", err)
			}
			if got := buf.String(); got != tt.want {
				t.Errorf("PrintSelection() =\n%s\nwant\n%s", got, tt.want)
			}
		})
	}

	if err := NewFormatter(&bytes.Buffer{}).PrintSelection(cases, "xml"); err == nil {
		t.Error("PrintSelection() with unknown format returned nil error")
	}
}

func TestFormatter_PrintShards(t *testing.T) {
	color.NoColor = true
	var buf bytes.Buffer
	NewFormatter(&buf).PrintShards([]int{3, 2, 2})

	out := buf.String()
	for _, want := range []string{"Shards for 7 case(s):", "│ 0,3        │ 3 ", "│ 2,3        │ 2 "} {
		if !strings.Contains(out, want) {
			t.Errorf("PrintShards() output missing %q:\n%s", want, out)
		}
	}
}

func TestFormatter_PrintRunStats(t *testing.T) {
	color.NoColor = true
	results := []domain.CaseResult{
		{Path: "dEQP-VK.api.smoke.triangle", Status: domain.StatusPass},
		{Path: "dEQP-VK.api.smoke.create_sampler", Status: domain.StatusFail},
		{Path: "dEQP-VK.memory.alloc", Status: domain.StatusCrash},
	}
	output := domain.NewRunOutput("run-1", results, 1, time.Second, 2, "0,1")

	var buf bytes.Buffer
	if err := NewFormatter(&buf).PrintRunStats(output); err != nil {
		t.Fatalf("PrintRunStats() error = %v", err)
	}

	out := buf.String()
	for _, want := range []string{
		"run-1",
		"2 case(s) did not pass",
		"create_sampler [Fail]",
		"alloc [Crash]",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("PrintRunStats() output missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "triangle") {
		t.Errorf("PrintRunStats() lists a passing case:\n%s", out)
	}
}
