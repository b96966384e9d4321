package commands

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"sort"
	"testing"
	"time"

	"github.com/fatih/color"
	"github.com/google/go-cmp/cmp"
	"github.com/spf13/cobra"

	"caselist/internal/config"
	"caselist/internal/domain"
	"caselist/internal/execution"
	"caselist/internal/ui"
)

// stubExecutor reports every case it is given with status, stopping after
// limit cases when limit is positive
type stubExecutor struct {
	status   domain.Status
	limit    int
	err      error
	progress bool
	cases    []string
}

var _ execution.Executor = (*stubExecutor)(nil)

func (e *stubExecutor) SetProgress(progress *ui.ProgressBar) {
	e.progress = progress != nil
}

func (e *stubExecutor) Execute(ctx context.Context, batches []domain.Batch, failFast bool) ([]domain.CaseResult, time.Duration, error) {
	var results []domain.CaseResult
	for _, b := range batches {
		for _, c := range b.Cases {
			e.cases = append(e.cases, c)
			if e.limit > 0 && len(results) == e.limit {
				continue
			}
			results = append(results, domain.CaseResult{Path: c, Status: e.status, Batch: b.ID})
		}
	}
	return results, time.Second, e.err
}

type memStorage struct {
	saved []*domain.RunOutput
}

func (s *memStorage) Save(output *domain.RunOutput) error {
	s.saved = append(s.saved, output)
	return nil
}

func (s *memStorage) Load() (*domain.RunOutput, error) {
	if len(s.saved) == 0 {
		return nil, errors.New("nothing saved")
	}
	return s.saved[len(s.saved)-1], nil
}

func newRunCommand(t *testing.T, executor execution.Executor, st *memStorage) *RunCommand {
	t.Helper()
	color.NoColor = true

	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "mustpass.txt"), []byte(hierarchy), 0644); err != nil {
		t.Fatal(err)
	}

	cfg := config.New()
	cfg.ProjectPath = dir
	cfg.HierarchyPath = "mustpass.txt"
	cfg.BatchSize = 2
	cfg.Flags.Cases = []string{"dEQP-VK.api.*.*"}

	return NewRunCommand(cfg, NewSelection(cfg, nil), execution.NewRoundRobinScheduler(), executor, st, ui.NewFormatter(&bytes.Buffer{}), nil)
}

func TestRunCommand_Execute(t *testing.T) {
	executor := &stubExecutor{status: domain.StatusPass}
	st := &memStorage{}

	if err := newRunCommand(t, executor, st).Execute(&cobra.Command{}, nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !executor.progress {
		t.Error("expected a progress bar to be set")
	}
	sort.Strings(executor.cases)
	expected := []string{
		"dEQP-VK.api.info.version",
		"dEQP-VK.api.smoke.create_sampler",
		"dEQP-VK.api.smoke.triangle",
	}
	if diff := cmp.Diff(expected, executor.cases); diff != "" {
		t.Errorf("executed cases mismatch (-want +got):\n%s", diff)
	}

	if len(st.saved) != 1 {
		t.Fatalf("expected 1 saved run, got %d", len(st.saved))
	}
	meta := st.saved[0].Meta
	if meta.TotalCases != 3 || meta.PassedCases != 3 || meta.Batches != 2 {
		t.Errorf("unexpected run meta: %+v", meta)
	}
}

func TestRunCommand_ExecuteFailures(t *testing.T) {
	executor := &stubExecutor{status: domain.StatusFail}
	st := &memStorage{}

	err := newRunCommand(t, executor, st).Execute(&cobra.Command{}, nil)
	if err == nil {
		t.Fatal("expected an error for failed cases")
	}
	if len(st.saved) != 1 || st.saved[0].Meta.FailedCases != 3 {
		t.Errorf("expected the failed run to be saved, got %+v", st.saved)
	}
}

func TestRunCommand_ExecuteInterrupted(t *testing.T) {
	executor := &stubExecutor{status: domain.StatusPass, limit: 1, err: context.Canceled}
	st := &memStorage{}

	err := newRunCommand(t, executor, st).Execute(&cobra.Command{}, nil)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}

	if len(st.saved) != 1 {
		t.Fatalf("expected partial results to be saved, got %d runs", len(st.saved))
	}
	if total := st.saved[0].Meta.TotalCases; total != 1 {
		t.Errorf("expected 1 partial result, got %d", total)
	}
}
