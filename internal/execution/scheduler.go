package execution

import "caselist/internal/domain"

// Scheduler distributes cases across batches
type Scheduler interface {
	Schedule(cases []string, batchCount int) [][]string
}

// RoundRobinScheduler distributes cases evenly across batches
type RoundRobinScheduler struct{}

// NewRoundRobinScheduler creates a new RoundRobinScheduler
func NewRoundRobinScheduler() *RoundRobinScheduler {
	return &RoundRobinScheduler{}
}

// Schedule distributes cases evenly across batches using round-robin
func (s *RoundRobinScheduler) Schedule(cases []string, batchCount int) [][]string {
	if batchCount <= 0 {
		batchCount = 1
	}

	distribution := make([][]string, batchCount)
	for i := range distribution {
		distribution[i] = make([]string, 0)
	}

	for i, c := range cases {
		distribution[i%batchCount] = append(distribution[i%batchCount], c)
	}

	return distribution
}

// Batches splits cases into batches of at most batchSize cases. A
// non-positive batchSize puts everything in one batch.
func Batches(s Scheduler, cases []string, batchSize int) []domain.Batch {
	if len(cases) == 0 {
		return nil
	}
	count := 1
	if batchSize > 0 {
		count = (len(cases) + batchSize - 1) / batchSize
	}

	batches := make([]domain.Batch, 0, count)
	for i, group := range s.Schedule(cases, count) {
		if len(group) == 0 {
			continue
		}
		batches = append(batches, domain.Batch{ID: i + 1, Cases: group})
	}
	return batches
}
