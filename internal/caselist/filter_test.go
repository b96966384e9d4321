package caselist

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"testing/fstest"
)

func strPtr(s string) *string {
	return &s
}

func TestNewFilter_Sources(t *testing.T) {
	const list = "{dEQP-VK{api{smoke{triangle}},memory{alloc}}}"

	dir := t.TempDir()
	listFile := filepath.Join(dir, "caselist.txt")
	if err := os.WriteFile(listFile, []byte(list+"\n"), 0644); err != nil {
		t.Fatalf("failed to write case list: %v", err)
	}
	archive := fstest.MapFS{
		"vulkan/mustpass/smoke.txt": &fstest.MapFile{Data: []byte("dEQP-VK.api.smoke.triangle\ndEQP-VK.memory.alloc\n")},
	}

	tests := []struct {
		name string
		opts Options
	}{
		{"inline", Options{CaseList: strPtr(list)}},
		{"file", Options{CaseListFile: listFile}},
		{"resource", Options{CaseListResource: "vulkan/mustpass/smoke.txt", Archive: archive}},
		{"stdin", Options{StdinCaseList: true, Stdin: strings.NewReader(list)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			filter, err := NewFilter(tt.opts)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			for _, group := range []string{"", "dEQP-VK", "dEQP-VK.api", "dEQP-VK.api.smoke", "dEQP-VK.memory"} {
				if !filter.CheckTestGroupName(group) {
					t.Errorf("expected group %q to be traversed", group)
				}
			}
			for _, group := range []string{"dEQP-VK.pipeline", "dEQP-GLES2"} {
				if filter.CheckTestGroupName(group) {
					t.Errorf("expected group %q to be pruned", group)
				}
			}
			if !filter.CheckTestCaseName("dEQP-VK.api.smoke.triangle") {
				t.Error("expected triangle to be selected")
			}
			if filter.CheckTestCaseName("dEQP-VK.api.smoke.create_sampler") {
				t.Error("expected create_sampler not to be selected")
			}
			if filter.Tree() == nil {
				t.Error("expected a case tree")
			}
		})
	}
}

func TestNewFilter_Errors(t *testing.T) {
	tests := []struct {
		name    string
		opts    Options
		wantErr error
	}{
		{
			name:    "malformed inline",
			opts:    Options{CaseList: strPtr("{a,}")},
			wantErr: ErrInvalidCaseList,
		},
		{
			name:    "empty inline",
			opts:    Options{CaseList: strPtr("")},
			wantErr: ErrInvalidCaseList,
		},
		{
			name:    "malformed stdin",
			opts:    Options{StdinCaseList: true, Stdin: strings.NewReader("a..b\n")},
			wantErr: ErrInvalidCaseList,
		},
		{
			name:    "malformed resource",
			opts:    Options{CaseListResource: "bad.txt", Archive: fstest.MapFS{"bad.txt": &fstest.MapFile{Data: []byte("{a}x")}}},
			wantErr: ErrInvalidCaseList,
		},
		{
			name:    "missing resource",
			opts:    Options{CaseListResource: "missing.txt", Archive: fstest.MapFS{}},
			wantErr: fs.ErrNotExist,
		},
		{
			name:    "resource without archive",
			opts:    Options{CaseListResource: "missing.txt"},
			wantErr: ErrNoArchive,
		},
		{
			name:    "missing file",
			opts:    Options{CaseListFile: "/non/existent/caselist.txt"},
			wantErr: fs.ErrNotExist,
		},
		{
			name:    "empty pattern",
			opts:    Options{Cases: []string{""}},
			wantErr: ErrInvalidCaseList,
		},
		{
			name:    "conflicting sources",
			opts:    Options{Cases: []string{"a.*"}, CaseList: strPtr("{a}")},
			wantErr: ErrConflictingSources,
		},
		{
			name:    "invalid fraction",
			opts:    Options{Fraction: &Fraction{Index: 2, Count: 2}},
			wantErr: ErrInvalidFraction,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			filter, err := NewFilter(tt.opts)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("expected error %v, got %v", tt.wantErr, err)
			}
			if filter != nil {
				t.Error("expected no filter on error")
			}
		})
	}
}

func TestFilter_NoSource(t *testing.T) {
	filter, err := NewFilter(Options{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !filter.CheckTestGroupName("anything.at.all") || !filter.CheckTestCaseName("anything.at.all") {
		t.Error("expected everything to pass without a path filter")
	}
	if !filter.CheckCaseFraction(7, "x") {
		t.Error("expected every case to pass without a fraction")
	}
}

func TestFilter_NoMatchesIsNotAnError(t *testing.T) {
	filter, err := NewFilter(Options{Cases: []string{"dEQP-NONE.*"}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if filter.CheckTestGroupName("dEQP-VK") || filter.CheckTestCaseName("dEQP-VK.info.version") {
		t.Error("expected nothing to match")
	}
}

func TestFilter_CasePatterns(t *testing.T) {
	filter, err := NewFilter(Options{Cases: []string{"dEQP-VK.api.*.triangle*", "dEQP-VK.info.version", "dEQP-VK.api.*.triangle*"}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if filter.Tree() != nil {
		t.Error("expected no case list tree for pattern selection")
	}
	patterns := filter.CasePaths().Patterns()
	if len(patterns) != 2 || patterns[0] != "dEQP-VK.api.*.triangle*" || patterns[1] != "dEQP-VK.info.version" {
		t.Errorf("expected duplicates collapsed in input order, got %v", patterns)
	}

	groups := map[string]bool{
		"":                    true,
		"dEQP-VK":             true,
		"dEQP-VK.api":         true,
		"dEQP-VK.api.smoke":   true,
		"dEQP-VK.info":        true,
		"dEQP-VK.memory":      false,
		"dEQP-VK.api.smoke.x": false,
	}
	for path, want := range groups {
		if got := filter.CheckTestGroupName(path); got != want {
			t.Errorf("CheckTestGroupName(%q) = %v, want %v", path, got, want)
		}
	}

	cases := map[string]bool{
		"dEQP-VK.api.smoke.triangle":       true,
		"dEQP-VK.api.smoke.triangle_amber": true,
		"dEQP-VK.api.smoke.quad":           false,
		"dEQP-VK.info.version":             true,
		"dEQP-VK.info.version2":            false,
	}
	for path, want := range cases {
		if got := filter.CheckTestCaseName(path); got != want {
			t.Errorf("CheckTestCaseName(%q) = %v, want %v", path, got, want)
		}
	}
}

func TestFilter_Fraction(t *testing.T) {
	dir := t.TempDir()
	mandatoryFile := filepath.Join(dir, "mandatory.txt")
	if err := os.WriteFile(mandatoryFile, []byte("dEQP-VK.info.*\r\n\r\ndEQP-VK.api.smoke.triangle\r\n"), 0644); err != nil {
		t.Fatalf("failed to write mandatory list: %v", err)
	}

	filter, err := NewFilter(Options{
		Fraction:              &Fraction{Index: 1, Count: 3},
		FractionMandatoryFile: mandatoryFile,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for i := 0; i < 9; i++ {
		want := i%3 == 1
		if got := filter.CheckCaseFraction(i, "dEQP-VK.memory.alloc"); got != want {
			t.Errorf("CheckCaseFraction(%d) = %v, want %v", i, got, want)
		}
	}
	for i := 0; i < 3; i++ {
		if !filter.CheckCaseFraction(i, "dEQP-VK.info.version") {
			t.Errorf("expected mandatory case to pass fraction at index %d", i)
		}
		if !filter.CheckCaseFraction(i, "dEQP-VK.api.smoke.triangle") {
			t.Errorf("expected mandatory case to pass fraction at index %d", i)
		}
	}

	t.Run("shards are disjoint and complete", func(t *testing.T) {
		seen := make(map[int]int)
		for shard := 0; shard < 3; shard++ {
			f := filter.WithFraction(&Fraction{Index: shard, Count: 3})
			for i := 0; i < 30; i++ {
				if f.CheckCaseFraction(i, "dEQP-VK.memory.alloc") {
					seen[i]++
				}
			}
		}
		for i := 0; i < 30; i++ {
			if seen[i] != 1 {
				t.Errorf("index %d selected by %d shards, want 1", i, seen[i])
			}
		}
	})
}

func TestFilter_MandatoryExtendsPathFilter(t *testing.T) {
	dir := t.TempDir()
	mandatoryFile := filepath.Join(dir, "mandatory.txt")
	if err := os.WriteFile(mandatoryFile, []byte("dEQP-VK.info.version\n"), 0644); err != nil {
		t.Fatalf("failed to write mandatory list: %v", err)
	}

	filter, err := NewFilter(Options{CaseList: strPtr("dEQP-VK.api.smoke.triangle"), FractionMandatoryFile: mandatoryFile})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !filter.CheckTestGroupName("dEQP-VK.info") {
		t.Error("expected mandatory group to be traversed")
	}
	if !filter.CheckTestCaseName("dEQP-VK.info.version") {
		t.Error("expected mandatory case to be selected")
	}
}

func TestFilter_RunnerType(t *testing.T) {
	tests := []struct {
		name       string
		configured RunnerType
		caseType   RunnerType
		expected   bool
	}{
		{"none accepts none", RunnerNone, RunnerNone, true},
		{"none accepts amber", RunnerNone, RunnerAmber, true},
		{"amber rejects none", RunnerAmber, RunnerNone, false},
		{"amber accepts amber", RunnerAmber, RunnerAmber, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			filter, err := NewFilter(Options{RunnerType: tt.configured})
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got := filter.CheckRunnerType(tt.caseType); got != tt.expected {
				t.Errorf("CheckRunnerType(%s) = %v, want %v", tt.caseType, got, tt.expected)
			}
		})
	}
}

func TestParseFraction(t *testing.T) {
	tests := []struct {
		input   string
		want    Fraction
		wantErr bool
	}{
		{"0,1", Fraction{0, 1}, false},
		{"3,4", Fraction{3, 4}, false},
		{" 1 , 2 ", Fraction{1, 2}, false},
		{"4,4", Fraction{}, true},
		{"-1,4", Fraction{}, true},
		{"0,0", Fraction{}, true},
		{"1", Fraction{}, true},
		{"1,2,3", Fraction{}, true},
		{"a,b", Fraction{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseFraction(tt.input)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidFraction) {
					t.Errorf("expected ErrInvalidFraction, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if *got != tt.want {
				t.Errorf("expected %v, got %v", tt.want, *got)
			}
		})
	}
}

func TestParseRunnerType(t *testing.T) {
	for input, want := range map[string]RunnerType{"": RunnerNone, "none": RunnerNone, "Amber": RunnerAmber} {
		got, err := ParseRunnerType(input)
		if err != nil {
			t.Fatalf("unexpected error for %q: %v", input, err)
		}
		if got != want {
			t.Errorf("ParseRunnerType(%q) = %s, want %s", input, got, want)
		}
	}
	if _, err := ParseRunnerType("spirv"); !errors.Is(err, ErrInvalidRunnerType) {
		t.Errorf("expected ErrInvalidRunnerType, got %v", err)
	}
}
