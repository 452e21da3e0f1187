package ui

import (
	"github.com/rivo/tview"

	"playdeck/internal/app/player"
	"playdeck/internal/domain/track"
	"playdeck/internal/ui/coverart"
)

// Controller is the subset of player operations the TUI drives.
type Controller interface {
	Select(i int)
	Toggle()
	Next()
	Previous()
	Seek(seconds float64)
	Snapshot() player.State
	Tracks() track.Tracklist
}

// SeekStrideSec is how far the arrow keys move the playback position.
const SeekStrideSec = 5.0

// App represents the terminal UI. It owns no playback state: every redraw
// re-derives all visuals from a controller snapshot.
type App struct {
	tviewApp   *tview.Application
	controller Controller
	labels     Labels
	events     <-chan player.Event
	converter  *coverart.Converter

	rootFlex    *tview.Flex
	headerView  *tview.TextView
	coverView   *tview.TextView
	detailView  *tview.TextView
	progress    *tview.TextView
	trackTable  *tview.Table
	previewView *tview.TextView

	coverPath  string // source of the cached ASCII cover
	coverASCII string

	previewPath  string // source of the cached row thumbnail
	previewASCII string

	onQuit func()
}

// NewApp creates the terminal UI over the given controller. Events must be
// a subscription that delivers every player state change.
func NewApp(ctrl Controller, labels Labels, events <-chan player.Event) *App {
	return &App{
		tviewApp:   tview.NewApplication(),
		controller: ctrl,
		labels:     labels,
		events:     events,
		converter:  coverart.NewConverter(),
	}
}

// OnQuit sets a callback invoked when the user quits the UI.
func (a *App) OnQuit(fn func()) {
	a.onQuit = fn
}

// Run builds the layout and blocks until the UI stops.
// With an empty tracklist nothing is rendered and the UI exits immediately.
func (a *App) Run() error {
	vm := a.buildViewModel()
	if !vm.HasTracks {
		return nil
	}

	a.createLayout()
	a.setupInputHandlers()
	a.render(vm)
	a.renderPreview(a.controller.Snapshot().Index)

	go a.handlePlayerEvents()

	return a.tviewApp.SetRoot(a.rootFlex, true).Run()
}

// Stop stops the application.
func (a *App) Stop() {
	if a.tviewApp != nil {
		a.tviewApp.Stop()
	}
}

func (a *App) buildViewModel() ViewModel {
	return Build(a.labels, a.controller.Tracks(), a.controller.Snapshot())
}

// handlePlayerEvents redraws on every controller event.
func (a *App) handlePlayerEvents() {
	for range a.events {
		vm := a.buildViewModel()
		a.tviewApp.QueueUpdateDraw(func() {
			a.render(vm)
		})
	}
}

// render repaints every widget from the view model.
func (a *App) render(vm ViewModel) {
	a.headerView.SetText("[::b]" + tview.Escape(vm.Heading))
	a.detailView.SetText(formatNowPlaying(vm))
	a.progress.SetText(formatProgressLine(vm, progressBarWidth))
	a.renderCover(vm)
	a.renderTrackTable(vm)
}

// renderCover swaps the cached ASCII cover when the track changes.
func (a *App) renderCover(vm ViewModel) {
	if vm.Now.CoverPath != a.coverPath || a.coverASCII == "" {
		a.coverPath = vm.Now.CoverPath
		a.coverASCII = a.converter.Render(vm.Now.CoverPath, coverart.SizeLarge)
	}
	a.coverView.SetText(a.coverASCII)
}

func (a *App) quit() {
	a.tviewApp.Stop()
	if a.onQuit != nil {
		a.onQuit()
	}
}
