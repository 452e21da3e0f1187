package ui

import (
	"fmt"
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"playdeck/internal/ui/coverart"
)

const progressBarWidth = 40

// createLayout builds the widget tree: header, now-playing panel with cover,
// progress line, and the track table.
func (a *App) createLayout() {
	a.headerView = tview.NewTextView().SetDynamicColors(true)

	a.coverView = tview.NewTextView()
	a.detailView = tview.NewTextView().SetDynamicColors(true)

	nowPlayingFlex := tview.NewFlex().
		AddItem(a.coverView, 32, 0, false).
		AddItem(a.detailView, 0, 1, false)

	a.progress = tview.NewTextView().SetDynamicColors(true)

	a.trackTable = tview.NewTable().
		SetSelectable(true, false).
		SetFixed(1, 0)
	a.trackTable.SetBorder(true)

	a.previewView = tview.NewTextView()

	tableFlex := tview.NewFlex().
		AddItem(a.trackTable, 0, 1, true).
		AddItem(a.previewView, 14, 0, false)

	a.rootFlex = tview.NewFlex().SetDirection(tview.FlexRow).
		AddItem(a.headerView, 1, 0, false).
		AddItem(nowPlayingFlex, 16, 0, false).
		AddItem(a.progress, 1, 0, false).
		AddItem(tableFlex, 0, 1, true)
}

// setupInputHandlers wires keyboard input to controller operations.
func (a *App) setupInputHandlers() {
	a.trackTable.SetSelectedFunc(func(row, column int) {
		if row > 0 {
			a.controller.Select(row - 1)
		}
	})

	a.trackTable.SetSelectionChangedFunc(func(row, column int) {
		a.renderPreview(row - 1)
	})

	a.tviewApp.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		if event.Key() == tcell.KeyRune {
			switch event.Rune() {
			case ' ':
				a.controller.Toggle()
				return nil
			case 'n', 'N':
				a.controller.Next()
				return nil
			case 'p', 'P':
				a.controller.Previous()
				return nil
			case 'q', 'Q':
				a.quit()
				return nil
			}
		}

		switch event.Key() {
		case tcell.KeyEsc, tcell.KeyCtrlC:
			a.quit()
			return nil
		case tcell.KeyRight:
			a.seekBy(SeekStrideSec)
			return nil
		case tcell.KeyLeft:
			a.seekBy(-SeekStrideSec)
			return nil
		}
		return event
	})
}

func (a *App) seekBy(delta float64) {
	s := a.controller.Snapshot()
	a.controller.Seek(s.Position + delta)
}

// renderTrackTable repaints the track list.
func (a *App) renderTrackTable(vm ViewModel) {
	a.trackTable.Clear()

	headers := []string{"", "Title", "Artist", "Length"}
	for col, h := range headers {
		a.trackTable.SetCell(0, col, tview.NewTableCell("[::b]"+h).
			SetSelectable(false).
			SetExpansion(expansionFor(col)))
	}

	for _, row := range vm.Rows {
		color := tcell.ColorWhite
		if row.Active {
			color = tcell.ColorGreen
		}

		a.trackTable.SetCell(row.Index+1, 0, tview.NewTableCell(rowIndicator(row)).SetTextColor(color))
		a.trackTable.SetCell(row.Index+1, 1, tview.NewTableCell(tview.Escape(row.Title)).
			SetTextColor(color).SetExpansion(2))
		a.trackTable.SetCell(row.Index+1, 2, tview.NewTableCell(tview.Escape(row.Artist)).
			SetTextColor(color).SetExpansion(1))
		a.trackTable.SetCell(row.Index+1, 3, tview.NewTableCell(row.DurationLabel).SetTextColor(color))
	}
}

// renderPreview shows the highlighted row's cover as a small thumbnail
// next to the track table.
func (a *App) renderPreview(i int) {
	tracks := a.controller.Tracks()
	if !tracks.Contains(i) {
		a.previewView.SetText("")
		return
	}

	path := tracks.At(i).CoverPath
	if path != a.previewPath || a.previewASCII == "" {
		a.previewPath = path
		a.previewASCII = a.converter.Render(path, coverart.SizeSmall)
	}
	a.previewView.SetText(a.previewASCII)
}

func expansionFor(col int) int {
	switch col {
	case 1:
		return 2
	case 2:
		return 1
	default:
		return 0
	}
}

// rowIndicator returns the active/playing marker for a track row.
func rowIndicator(row Row) string {
	switch {
	case row.Playing:
		return "▶"
	case row.Active:
		return "›"
	default:
		return " "
	}
}

// formatNowPlaying renders the current-track detail panel.
func formatNowPlaying(vm ViewModel) string {
	var b strings.Builder
	b.WriteString("\n[::b]" + tview.Escape(vm.Now.Title) + "[-:-:-]\n")
	b.WriteString(tview.Escape(vm.Now.Artist) + "\n\n")
	b.WriteString("[yellow]" + tview.Escape(vm.Previous+" | "+vm.Next) + "[-]\n\n")
	if vm.Playing {
		b.WriteString("[green]" + vm.ToggleLabel + "[-]\n")
	} else {
		b.WriteString(vm.ToggleLabel + "\n")
	}
	return b.String()
}

// formatProgressLine renders the seek bar with its fill percentage and the
// time display pair.
func formatProgressLine(vm ViewModel, width int) string {
	if width < 10 {
		width = 10
	}

	filled := int(vm.FillPercent / 100 * float64(width))
	if filled > width {
		filled = width
	}
	if filled < 0 {
		filled = 0
	}

	bar := strings.Repeat("▓", filled) + strings.Repeat("░", width-filled)
	return fmt.Sprintf("%s %s / %s", bar, vm.TimeCurrent, vm.TimeTotal)
}
