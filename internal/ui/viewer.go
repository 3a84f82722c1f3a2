package ui

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"platina/internal/domain"
	"platina/internal/storage"
)

// Viewer displays stored run results in an interactive TUI
type Viewer interface {
	View(results *domain.RunOutput) error
}

// MismatchViewer browses the mismatches of the last run. Marking a mismatch
// resolved is written back to storage right away.
type MismatchViewer struct {
	storage storage.Storage
}

// NewMismatchViewer creates a new MismatchViewer
func NewMismatchViewer(st storage.Storage) *MismatchViewer {
	return &MismatchViewer{storage: st}
}

// View displays the mismatches of results until the user quits
func (mv *MismatchViewer) View(results *domain.RunOutput) error {
	if len(results.Details) == 0 {
		color.Green("✓ No mismatches found!")
		return nil
	}

	app := tview.NewApplication()

	list := tview.NewList().
		ShowSecondaryText(false).
		SetHighlightFullLine(true)
	for i := range results.Details {
		list.AddItem(listItemText(results.Details[i], i), "", 0, nil)
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

	detailsContainer := tview.NewFlex().
		SetDirection(tview.FlexColumn).
		AddItem(detailsView, 0, 1, false).
		AddItem(tview.NewBox(), 2, 0, false)

	rightSide := tview.NewFlex().
		SetDirection(tview.FlexRow).
		AddItem(statsView, 3, 0, false).
		AddItem(detailsContainer, 0, 1, false)

	flex := tview.NewFlex().
		SetDirection(tview.FlexColumn).
		AddItem(list, 0, 1, true).
		AddItem(rightSide, 0, 2, false)

	headerView := tview.NewTextView().
		SetTextAlign(tview.AlignCenter).
		SetDynamicColors(true)

	updateHeader := func() {
		headerView.SetText(fmt.Sprintf(" Mismatches (%d total, %d unresolved) | Use ↑↓ to navigate, [yellow]R[white] to mark resolved, → to view details, ← to go back, Ctrl+C to exit ",
			len(results.Details), countUnresolved(results.Details)))
	}

	updateDetails := func() {
		index := list.GetCurrentItem()
		if index < 0 || index >= len(results.Details) {
			return
		}
		statsView.SetText(formatMismatchStats(results.Details[index]))
		detailsView.SetText(formatMismatchDetails(results.Details[index], results.Meta.Mode))
		detailsView.ScrollToBeginning()
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
				if index >= 0 && index < len(results.Details) {
					results.Details[index].Resolved = !results.Details[index].Resolved
					list.SetItemText(index, listItemText(results.Details[index], index), "")
					updateHeader()
					// the viewer stays usable when the file cannot be written
					_ = mv.storage.SaveOutput(results)
				}
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

func countUnresolved(details []domain.Mismatch) int {
	count := 0
	for _, m := range details {
		if !m.Resolved {
			count++
		}
	}
	return count
}

// listItemText formats a list entry using tview color tags
func listItemText(m domain.Mismatch, index int) string {
	label := tview.Escape(m.Case + " › " + m.Param)
	if m.Resolved {
		return fmt.Sprintf("[gray]✓ [yellow]%d.[gray] %s[white]", index+1, label)
	}
	return fmt.Sprintf("[yellow]%d.[white] %s", index+1, label)
}

// formatMismatchStats formats the header line above the details
func formatMismatchStats(m domain.Mismatch) string {
	return fmt.Sprintf("[cyan]file:[white] [yellow]%s[white]\n[cyan]case:[white] [yellow]%s[white]  [cyan]param:[white] [yellow]%s[white]\n",
		tview.Escape(m.File), tview.Escape(m.Case), tview.Escape(m.Param))
}

// formatMismatchDetails shows both values with line numbers, marking the
// lines that differ.
func formatMismatchDetails(m domain.Mismatch, mode string) string {
	var b strings.Builder

	if m.Updated {
		fmt.Fprintf(&b, "[green]✓ File rewritten with the actual value (%s run)[white]\n\n", mode)
	} else {
		fmt.Fprintf(&b, "[red]✗ Golden file still holds the expected value (%s run)[white]\n\n", mode)
	}

	expected := strings.Split(m.Expected, "\n")
	actual := strings.Split(m.Actual, "\n")

	b.WriteString("[yellow]Expected:[white]\n")
	writeNumbered(&b, expected, actual, "red")
	b.WriteString("\n[yellow]Actual:[white]\n")
	writeNumbered(&b, actual, expected, "green")
	return b.String()
}

func writeNumbered(b *strings.Builder, lines, other []string, highlight string) {
	for i, line := range lines {
		differs := i >= len(other) || other[i] != line
		if differs {
			fmt.Fprintf(b, "[%s]%4d │ %s[white]\n", highlight, i+1, tview.Escape(line))
		} else {
			fmt.Fprintf(b, "[gray]%4d │[white] %s\n", i+1, tview.Escape(line))
		}
	}
}
