package execution

import (
	"context"
	"sort"
	"sync"
	"time"

	"caselist/internal/config"
	"caselist/internal/domain"
	"caselist/internal/logging"
	"caselist/internal/parser"
	"caselist/internal/ui"
)

var (
	_ Executor    = (*WorkerPool)(nil)
	_ BatchRunner = (*Runner)(nil)
)

// WorkerPool manages a pool of workers for parallel batch execution
type WorkerPool struct {
	config   *config.Config
	runner   BatchRunner
	parser   parser.Parser
	progress *ui.ProgressBar
}

// NewWorkerPool creates a new WorkerPool
func NewWorkerPool(cfg *config.Config, runner BatchRunner, p parser.Parser) *WorkerPool {
	return &WorkerPool{
		config: cfg,
		runner: runner,
		parser: p,
	}
}

// SetProgress sets the progress bar for the worker pool
func (wp *WorkerPool) SetProgress(progress *ui.ProgressBar) {
	wp.progress = progress
}

// Execute runs batches on the configured number of workers. With failFast the
// pool stops handing out batches after the first batch with a failing case,
// kills batches still running and drops their results.
func (wp *WorkerPool) Execute(ctx context.Context, batches []domain.Batch, failFast bool) ([]domain.CaseResult, time.Duration, error) {
	if len(batches) == 0 {
		return nil, 0, nil
	}

	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	queue := make(chan domain.Batch)
	go func() {
		defer close(queue)
		for _, b := range batches {
			select {
			case <-runCtx.Done():
				return
			case queue <- b:
			}
		}
	}()

	var (
		mu          sync.Mutex
		all         []domain.CaseResult
		passed      int
		failed      int
		seenFailure bool
	)
	startTime := time.Now()
	workerCount := wp.config.Processors
	if workerCount <= 0 {
		workerCount = 1
	}

	var wg sync.WaitGroup
	for i := 1; i <= workerCount; i++ {
		wg.Add(1)
		go func(workerID int) {
			defer wg.Done()
			for batch := range queue {
				if runCtx.Err() != nil {
					continue
				}
				result := wp.runner.Run(runCtx, batch, workerID)
				cases := wp.parser.ParseBatch(result)

				mu.Lock()
				if seenFailure {
					mu.Unlock()
					continue
				}
				batchFailed := false
				for _, c := range cases {
					if c.Status.Passed() {
						passed++
					} else {
						failed++
						batchFailed = true
					}
				}
				all = append(all, cases...)
				if wp.progress != nil {
					wp.progress.Update(passed, failed)
				}
				if failFast && batchFailed {
					logging.Debug("stopping after failed batch", "batch", batch.ID)
					seenFailure = true
					cancel()
				}
				mu.Unlock()
			}
		}(i)
	}
	wg.Wait()

	if wp.progress != nil {
		wp.progress.Finish()
	}
	sort.SliceStable(all, func(i, j int) bool { return all[i].Batch < all[j].Batch })

	if err := ctx.Err(); err != nil {
		return all, time.Since(startTime), err
	}
	return all, time.Since(startTime), nil
}
