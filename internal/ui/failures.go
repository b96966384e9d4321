package ui

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"caselist/internal/domain"
	"caselist/internal/logging"
	"caselist/internal/storage"
)

// FailureViewer displays non-passing cases of a run in an interactive TUI
type FailureViewer struct {
	storage storage.Storage
}

// NewFailureViewer creates a new FailureViewer
func NewFailureViewer(st storage.Storage) *FailureViewer {
	return &FailureViewer{storage: st}
}

// ToggleResolved flips the resolved mark of the failure at index and stores the run
func (fv *FailureViewer) ToggleResolved(results *domain.RunOutput, index int) error {
	if index < 0 || index >= len(results.Details) {
		return fmt.Errorf("failure index %d out of range", index)
	}
	results.Details[index].Resolved = !results.Details[index].Resolved
	return fv.storage.Save(results)
}

// View displays failures in an interactive TUI
func (fv *FailureViewer) View(results *domain.RunOutput) error {
	if len(results.Details) == 0 {
		color.Green("✓ No failing cases found!")
		return nil
	}

	app := tview.NewApplication()

	list := tview.NewList().
		ShowSecondaryText(false).
		SetHighlightFullLine(true)

	itemText := func(index int) string {
		failure := results.Details[index]
		if failure.Resolved {
			return fmt.Sprintf("[gray]✓ [yellow]%d.[gray] %s[white]", index+1, failure.Path)
		}
		return fmt.Sprintf("[yellow]%d.[white] %s [red](%s)[white]", index+1, failure.Path, failure.Status)
	}
	for i := range results.Details {
		list.AddItem(itemText(i), "", 0, nil)
	}

	list.SetMainTextColor(tview.Styles.PrimaryTextColor).
		SetSelectedTextColor(tcell.ColorWhite).
		SetSelectedBackgroundColor(tcell.ColorDarkCyan)

	statsView := tview.NewTextView().
		SetDynamicColors(true).
		SetWrap(false)

	detailsView := tview.NewTextView().
		SetDynamicColors(true).
		SetWrap(true).
		SetWordWrap(true)

	rightSide := tview.NewFlex().
		SetDirection(tview.FlexRow).
		AddItem(statsView, 3, 0, false).
		AddItem(detailsView, 0, 1, false)

	flex := tview.NewFlex().
		SetDirection(tview.FlexColumn).
		AddItem(list, 0, 1, true).
		AddItem(rightSide, 0, 2, false)

	headerView := tview.NewTextView().
		SetTextAlign(tview.AlignCenter).
		SetDynamicColors(true)

	updateHeader := func() {
		headerView.SetText(fmt.Sprintf(
			" Run %s: %d failing, %d unresolved | ↑↓ navigate, [yellow]R[white] toggle resolved, → details, ← back, Ctrl+C exit ",
			results.Meta.RunID, len(results.Details), countUnresolved(results.Details),
		))
	}

	updateDetails := func() {
		index := list.GetCurrentItem()
		if index < 0 || index >= len(results.Details) {
			return
		}
		failure := results.Details[index]
		statsView.SetText(fmt.Sprintf("[cyan]case:[white] [yellow]%s[white]\n[cyan]batch:[white] %d", failure.Path, failure.Batch))
		detailsView.SetText(formatFailureDetails(failure))
	}

	list.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		switch event.Key() {
		case tcell.KeyEnter, tcell.KeyRight:
			app.SetFocus(detailsView)
			return nil
		case tcell.KeyCtrlC:
			app.Stop()
			return nil
		case tcell.KeyRune:
			if event.Rune() == 'r' || event.Rune() == 'R' {
				index := list.GetCurrentItem()
				if err := fv.ToggleResolved(results, index); err != nil {
					logging.Error("failed to store resolved state", "err", err)
				}
				list.SetItemText(index, itemText(index), "")
				updateHeader()
				updateDetails()
				return nil
			}
		}
		return event
	})

	detailsView.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		switch event.Key() {
		case tcell.KeyLeft, tcell.KeyEsc:
			app.SetFocus(list)
			return nil
		case tcell.KeyCtrlC:
			app.Stop()
			return nil
		}
		return event
	})

	list.SetChangedFunc(func(int, string, string, rune) {
		updateDetails()
	})

	updateHeader()
	updateDetails()

	mainLayout := tview.NewFlex().
		SetDirection(tview.FlexRow).
		AddItem(headerView, 1, 0, false).
		AddItem(tview.NewBox(), 1, 0, false).
		AddItem(flex, 0, 1, true)

	if err := app.SetRoot(mainLayout, true).SetFocus(list).Run(); err != nil {
		return fmt.Errorf("failed to run TUI: %w", err)
	}
	return nil
}

func countUnresolved(failures []domain.CaseResult) int {
	count := 0
	for _, f := range failures {
		if !f.Resolved {
			count++
		}
	}
	return count
}

// formatFailureDetails formats a failing case using tview color tags
func formatFailureDetails(failure domain.CaseResult) string {
	var b strings.Builder
	fmt.Fprintf(&b, "[red]✗ %s[white]\n\n", failure.Path)
	fmt.Fprintf(&b, "[yellow]Status:[white] %s\n", failure.Status)
	if failure.Resolved {
		b.WriteString("[gray](marked resolved)[white]\n")
	}
	if failure.Details != "" {
		fmt.Fprintf(&b, "\n[yellow]Details:[white]\n%s\n", tview.Escape(failure.Details))
	}
	return b.String()
}
