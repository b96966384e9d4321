package ui

import "caselist/internal/domain"

// Viewer displays run results in an interactive TUI
type Viewer interface {
	View(results *domain.RunOutput) error
}

// Browser displays a selection in an interactive TUI
type Browser interface {
	Browse(cases []domain.TestCase) error
}
