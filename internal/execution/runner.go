package execution

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"time"

	"caselist/internal/caselist"
	"caselist/internal/config"
	"caselist/internal/domain"
	"caselist/internal/logging"
)

// CaseListFileFlag is the test binary option that names the case-list file
const CaseListFileFlag = "--deqp-caselist-file="

// Runner executes the test binary for a single batch
type Runner struct {
	config *config.Config
}

// NewRunner creates a new Runner
func NewRunner(cfg *config.Config) *Runner {
	return &Runner{config: cfg}
}

// Run writes the batch as a trie case list and runs the test binary on it
func (r *Runner) Run(ctx context.Context, batch domain.Batch, workerID int) domain.BatchResult {
	start := time.Now()
	result := domain.BatchResult{Batch: batch, WorkerID: workerID}

	file, err := r.writeCaseList(batch)
	if err != nil {
		result.Error = err
		return result
	}
	defer os.Remove(file)

	args := append([]string{CaseListFileFlag + file}, r.config.BinaryArgs...)
	cmd := exec.CommandContext(ctx, r.config.Binary, args...)

	// Set environment variables
	cmd.Env = os.Environ()
	cmd.Env = append(cmd.Env, fmt.Sprintf("CASELIST_WORKER_ID=%d", workerID))

	// Set working directory
	cmd.Dir = r.config.ProjectPath

	logging.Debug("running batch", "batch", batch.ID, "worker", workerID, "cases", len(batch.Cases))
	output, err := cmd.CombinedOutput()

	result.Output = string(output)
	result.Error = err
	result.Duration = time.Since(start)
	return result
}

func (r *Runner) writeCaseList(batch domain.Batch) (string, error) {
	tree, err := caselist.FromPaths(batch.Cases)
	if err != nil {
		return "", fmt.Errorf("batch %d: %w", batch.ID, err)
	}

	dir := r.config.GetBatchDir()
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("create batch dir: %w", err)
	}

	file := filepath.Join(dir, fmt.Sprintf("batch-%04d.txt", batch.ID))
	if abs, err := filepath.Abs(file); err == nil {
		file = abs
	}
	if err := os.WriteFile(file, []byte(caselist.FormatTrie(tree)), 0644); err != nil {
		return "", fmt.Errorf("write batch case list: %w", err)
	}
	return file, nil
}
