package parser

import (
	"regexp"
	"strings"

	"caselist/internal/domain"
)

var (
	caseStartPattern = regexp.MustCompile(`^Test case '([^']+)'\.\.\s*$`)
	statusPattern    = regexp.MustCompile(`^\s+(Pass|Fail|QualityWarning|CompatibilityWarning|NotSupported|ResourceError|InternalError|Crash|Timeout|Waiver)\s*(?:\((.*)\))?\s*$`)
)

// DEQPParser parses the stdout of a dEQP test binary
type DEQPParser struct{}

// NewDEQPParser creates a new DEQPParser
func NewDEQPParser() *DEQPParser {
	return &DEQPParser{}
}

// ParseBatch returns one result per case of the batch, in batch order.
// A case that started but never reported a status crashed the binary; cases
// that never started are reported as missing.
func (p *DEQPParser) ParseBatch(result domain.BatchResult) []domain.CaseResult {
	reported := make(map[string]domain.CaseResult)
	current := ""

	for _, line := range strings.Split(result.Output, "\n") {
		line = strings.TrimRight(line, "\r")

		if m := caseStartPattern.FindStringSubmatch(line); m != nil {
			p.closeCase(reported, current, result.Batch.ID)
			current = m[1]
			continue
		}

		if current == "" {
			continue
		}
		if m := statusPattern.FindStringSubmatch(line); m != nil {
			reported[current] = domain.CaseResult{
				Path:    current,
				Status:  domain.Status(m[1]),
				Details: m[2],
				Batch:   result.Batch.ID,
			}
			current = ""
		}
	}
	p.closeCase(reported, current, result.Batch.ID)

	results := make([]domain.CaseResult, 0, len(result.Batch.Cases))
	for _, path := range result.Batch.Cases {
		r, ok := reported[path]
		if !ok {
			r = domain.CaseResult{Path: path, Status: domain.StatusMissing, Batch: result.Batch.ID}
			if result.Error != nil {
				r.Details = result.Error.Error()
			}
		}
		results = append(results, r)
	}
	return results
}

// closeCase records a crash for a case that started without a status line
func (p *DEQPParser) closeCase(reported map[string]domain.CaseResult, path string, batch int) {
	if path == "" {
		return
	}
	if _, ok := reported[path]; ok {
		return
	}
	reported[path] = domain.CaseResult{
		Path:    path,
		Status:  domain.StatusCrash,
		Details: "no status reported",
		Batch:   batch,
	}
}
