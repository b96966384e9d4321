package parser

import "caselist/internal/domain"

// Parser turns the output of a batch into per-case results
type Parser interface {
	ParseBatch(result domain.BatchResult) []domain.CaseResult
}
