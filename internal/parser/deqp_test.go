package parser

import (
	"errors"
	"testing"

	"caselist/internal/domain"

	"github.com/google/go-cmp/cmp"
)

const sampleOutput = `dEQP Core git-1a2b3c (0x1a2b3c) starting..
  target implementation = 'Default'

Test case 'dEQP-VK.api.smoke.create_sampler'..
  Pass (Creating sampler succeeded)

Test case 'dEQP-VK.api.smoke.triangle'..
  Fail (Image comparison failed)

Test case 'dEQP-VK.api.smoke.asm_triangle'..
  NotSupported (VK_KHR_spirv_1_4 not supported)

Test case 'dEQP-VK.memory.alloc'..
`

func TestDEQPParser_ParseBatch(t *testing.T) {
	parser := NewDEQPParser()
	batch := domain.Batch{
		ID: 3,
		Cases: []string{
			"dEQP-VK.api.smoke.create_sampler",
			"dEQP-VK.api.smoke.triangle",
			"dEQP-VK.api.smoke.asm_triangle",
			"dEQP-VK.memory.alloc",
			"dEQP-VK.memory.free",
		},
	}

	results := parser.ParseBatch(domain.BatchResult{Batch: batch, Output: sampleOutput, Error: errors.New("signal: segmentation fault")})

	expected := []domain.CaseResult{
		{Path: "dEQP-VK.api.smoke.create_sampler", Status: domain.StatusPass, Details: "Creating sampler succeeded", Batch: 3},
		{Path: "dEQP-VK.api.smoke.triangle", Status: domain.StatusFail, Details: "Image comparison failed", Batch: 3},
		{Path: "dEQP-VK.api.smoke.asm_triangle", Status: domain.StatusNotSupported, Details: "VK_KHR_spirv_1_4 not supported", Batch: 3},
		{Path: "dEQP-VK.memory.alloc", Status: domain.StatusCrash, Details: "no status reported", Batch: 3},
		{Path: "dEQP-VK.memory.free", Status: domain.StatusMissing, Details: "signal: segmentation fault", Batch: 3},
	}
	if diff := cmp.Diff(expected, results); diff != "" {
		t.Errorf("results mismatch (-want +got):\n%s", diff)
	}
}

func TestDEQPParser_ParseBatchStatuses(t *testing.T) {
	parser := NewDEQPParser()

	tests := []struct {
		name     string
		output   string
		cases    []string
		expected []domain.Status
	}{
		{
			name:     "all passed with CRLF",
			output:   "Test case 'a.b'..\r\n  Pass (ok)\r\nTest case 'a.c'..\r\n  QualityWarning (slow)\r\n",
			cases:    []string{"a.b", "a.c"},
			expected: []domain.Status{domain.StatusPass, domain.StatusQualityWarning},
		},
		{
			name:     "status without details",
			output:   "Test case 'a.b'..\n  Fail\n",
			cases:    []string{"a.b"},
			expected: []domain.Status{domain.StatusFail},
		},
		{
			name:     "no output",
			output:   "",
			cases:    []string{"a.b", "a.c"},
			expected: []domain.Status{domain.StatusMissing, domain.StatusMissing},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got []domain.Status
			for _, r := range parser.ParseBatch(domain.BatchResult{Batch: domain.Batch{Cases: tt.cases}, Output: tt.output}) {
				got = append(got, r.Status)
			}
			if diff := cmp.Diff(tt.expected, got); diff != "" {
				t.Errorf("statuses mismatch (-want +got):\n%s", diff)
			}
		})
	}
}
