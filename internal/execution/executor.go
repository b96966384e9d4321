package execution

import (
	"context"
	"time"

	"caselist/internal/domain"
	"caselist/internal/ui"
)

// Executor runs batches of cases and returns per-case results
type Executor interface {
	SetProgress(progress *ui.ProgressBar)
	Execute(ctx context.Context, batches []domain.Batch, failFast bool) ([]domain.CaseResult, time.Duration, error)
}

// BatchRunner runs a single batch on behalf of a worker
type BatchRunner interface {
	Run(ctx context.Context, batch domain.Batch, workerID int) domain.BatchResult
}
