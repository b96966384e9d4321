package domain

import (
	"time"
)

// Status is the outcome a test binary reports for a case
type Status string

const (
	StatusPass                 Status = "Pass"
	StatusFail                 Status = "Fail"
	StatusQualityWarning       Status = "QualityWarning"
	StatusCompatibilityWarning Status = "CompatibilityWarning"
	StatusNotSupported         Status = "NotSupported"
	StatusResourceError        Status = "ResourceError"
	StatusInternalError        Status = "InternalError"
	StatusCrash                Status = "Crash"
	StatusTimeout              Status = "Timeout"
	StatusWaiver               Status = "Waiver"
	// StatusMissing marks a case the binary never started, usually because
	// an earlier case in the same batch took the process down.
	StatusMissing Status = "Missing"
)

// Passed reports whether s does not count as a failure
func (s Status) Passed() bool {
	switch s {
	case StatusPass, StatusNotSupported, StatusQualityWarning, StatusCompatibilityWarning, StatusWaiver:
		return true
	default:
		return false
	}
}

// BatchResult is the raw result of running one batch
type BatchResult struct {
	Batch    Batch
	WorkerID int
	Output   string        // Combined stdout and stderr of the test binary
	Error    error         // Error if the process failed
	Duration time.Duration // Time taken to execute
}

// CaseResult is the outcome of a single case
type CaseResult struct {
	Path     string `json:"path"`
	Status   Status `json:"status"`
	Details  string `json:"details,omitempty"`
	Batch    int    `json:"batch"`
	Resolved bool   `json:"resolved,omitempty"` // Track if the case is marked as resolved
}

// RunMeta contains metadata about a run
type RunMeta struct {
	RunID           string         `json:"run_id"`
	TotalCases      int            `json:"total_cases"`
	PassedCases     int            `json:"passed_cases"`
	FailedCases     int            `json:"failed_cases"`
	Statuses        map[Status]int `json:"statuses"`
	Batches         int            `json:"batches"`
	Fraction        string         `json:"fraction,omitempty"`
	Duration        string         `json:"duration"`
	DurationSeconds float64        `json:"duration_seconds"`
	Workers         int            `json:"workers"`
	Timestamp       string         `json:"timestamp"`
}

// RunOutput is the complete stored result of a run. Details holds only the
// cases that did not pass.
type RunOutput struct {
	Meta    RunMeta      `json:"meta"`
	Details []CaseResult `json:"details"`
}

// NewRunOutput summarizes case results into a RunOutput
func NewRunOutput(runID string, results []CaseResult, batches int, duration time.Duration, workers int, fraction string) *RunOutput {
	meta := RunMeta{
		RunID:           runID,
		TotalCases:      len(results),
		Statuses:        make(map[Status]int),
		Batches:         batches,
		Fraction:        fraction,
		Duration:        duration.String(),
		DurationSeconds: duration.Seconds(),
		Workers:         workers,
		Timestamp:       time.Now().Format(time.RFC3339),
	}

	details := make([]CaseResult, 0)
	for _, r := range results {
		meta.Statuses[r.Status]++
		if r.Status.Passed() {
			meta.PassedCases++
			continue
		}
		meta.FailedCases++
		details = append(details, r)
	}

	return &RunOutput{Meta: meta, Details: details}
}
