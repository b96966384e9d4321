package execution

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"caselist/internal/config"
	"caselist/internal/domain"
)

const fakeBinary = `#!/bin/sh
for a in "$@"; do
  case "$a" in
    --deqp-caselist-file=*) cat "${a#--deqp-caselist-file=}" ;;
    *) printf ' %s' "$a" ;;
  esac
done
echo
echo "worker=$CASELIST_WORKER_ID"
`

func TestRunner_Run(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("needs a POSIX shell")
	}

	dir := t.TempDir()
	binary := filepath.Join(dir, "deqp-fake")
	if err := os.WriteFile(binary, []byte(fakeBinary), 0755); err != nil {
		t.Fatal(err)
	}

	cfg := config.New()
	cfg.ProjectPath = dir
	cfg.Binary = binary
	cfg.BinaryArgs = []string{"--deqp-log-images=disable"}

	batch := domain.Batch{ID: 7, Cases: []string{"dEQP-VK.api.smoke.triangle", "dEQP-VK.api.smoke.create_sampler"}}
	result := NewRunner(cfg).Run(context.Background(), batch, 2)

	if result.Error != nil {
		t.Fatalf("Run() error = %v, output:\n%s", result.Error, result.Output)
	}
	if result.WorkerID != 2 || result.Batch.ID != 7 {
		t.Errorf("Run() = worker %d batch %d, want worker 2 batch 7", result.WorkerID, result.Batch.ID)
	}
	for _, want := range []string{
		"{dEQP-VK{api{smoke{triangle,create_sampler}}}}",
		" --deqp-log-images=disable",
		"worker=2",
	} {
		if !strings.Contains(result.Output, want) {
			t.Errorf("output missing %q:\n%s", want, result.Output)
		}
	}

	if _, err := os.Stat(filepath.Join(cfg.GetBatchDir(), "batch-0007.txt")); !os.IsNotExist(err) {
		t.Errorf("batch case list was not removed: %v", err)
	}
}

func TestRunner_RunInvalidCase(t *testing.T) {
	cfg := config.New()
	cfg.ProjectPath = t.TempDir()

	result := NewRunner(cfg).Run(context.Background(), domain.Batch{ID: 1, Cases: []string{"bad..path"}}, 1)
	if result.Error == nil {
		t.Error("Run() with an invalid case path returned nil error")
	}
}
