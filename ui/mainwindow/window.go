// Package mainwindow provides the main application window.
package mainwindow

import (
	"fmt"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/widget"

	"sketchpad/internal/app"
	"sketchpad/internal/export"
	"sketchpad/internal/object"
	"sketchpad/internal/tool"
	"sketchpad/internal/version"
	"sketchpad/ui/canvas"
	"sketchpad/ui/panels"
	"sketchpad/ui/prefs"
)

// MainWindow is the primary application window.
type MainWindow struct {
	fyne.Window
	app   fyne.App
	state *app.State
	tools *tool.Manager
	prefs *prefs.Prefs

	board     *canvas.Board
	palette   *panels.ToolPalette
	options   *panels.OptionsPanel
	statusBar *widget.Label
}

// New creates a new main window.
func New(fyneApp fyne.App, state *app.State, tools *tool.Manager, p *prefs.Prefs) *MainWindow {
	win := fyneApp.NewWindow("Sketchpad " + version.String())

	mw := &MainWindow{
		Window: win,
		app:    fyneApp,
		state:  state,
		tools:  tools,
		prefs:  p,
	}

	mw.setupUI()
	mw.setupMenus()
	mw.setupEventHandlers()

	win.Resize(fyne.NewSize(1200, 800))
	return mw
}

func (mw *MainWindow) setupUI() {
	mw.board = canvas.NewBoard(mw.state, mw.tools)
	mw.board.OnEditText(mw.onEditText)
	mw.board.OnZoom(func(zoom float64) {
		mw.prefs.SetFloat(prefs.KeyZoom, zoom)
		mw.setStatus(fmt.Sprintf("Zoom %.0f%%", zoom*100))
	})
	if zoom := mw.prefs.Float(prefs.KeyZoom, 1); zoom != 1 {
		mw.board.SetZoom(zoom)
	}

	mw.palette = panels.NewToolPalette(mw.state, mw.tools, mw.prefs)
	mw.options = panels.NewOptionsPanel(mw.state, mw.prefs)
	mw.statusBar = widget.NewLabel("Ready")

	side := container.NewAppTabs(
		container.NewTabItem("Tools", mw.palette.Container()),
		container.NewTabItem("Style", mw.options.Container()),
	)

	split := container.NewHSplit(side, mw.board)
	split.SetOffset(0.2)

	content := container.NewBorder(
		nil,
		container.NewPadded(mw.statusBar),
		nil,
		nil,
		split,
	)
	mw.SetContent(content)
}

func (mw *MainWindow) setupMenus() {
	fileMenu := fyne.NewMenu("File",
		fyne.NewMenuItem("New", mw.onNew),
		fyne.NewMenuItem("Open...", mw.onOpen),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Save", mw.onSave),
		fyne.NewMenuItem("Save As...", mw.onSaveAs),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Export PDF...", mw.onExportPDF),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Quit", func() { mw.app.Quit() }),
	)

	editMenu := fyne.NewMenu("Edit",
		fyne.NewMenuItem("Undo", mw.onUndo),
		fyne.NewMenuItem("Redo", mw.onRedo),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Delete Selected", mw.onDeleteSelected),
		fyne.NewMenuItem("Clear All", mw.onClearAll),
	)

	viewMenu := fyne.NewMenu("View",
		fyne.NewMenuItem("Zoom In", mw.board.ZoomIn),
		fyne.NewMenuItem("Zoom Out", mw.board.ZoomOut),
		fyne.NewMenuItem("Actual Size", func() { mw.board.SetZoom(1) }),
	)

	mw.SetMainMenu(fyne.NewMainMenu(fileMenu, editMenu, viewMenu))
}

func (mw *MainWindow) setupEventHandlers() {
	mw.state.On(app.EventModified, func(data interface{}) {
		if modified, ok := data.(bool); ok && modified {
			mw.setStatus("Modified")
		}
	})
	mw.state.On(app.EventProjectSaved, func(data interface{}) {
		mw.setStatus(fmt.Sprintf("Saved %v", data))
	})
	mw.state.On(app.EventProjectLoaded, func(data interface{}) {
		mw.setStatus(fmt.Sprintf("Opened %v", data))
	})
	mw.state.On(app.EventToolChanged, func(data interface{}) {
		mw.setStatus(fmt.Sprintf("Tool: %v", data))
	})
}

func (mw *MainWindow) setStatus(text string) {
	mw.statusBar.SetText(text)
}

func (mw *MainWindow) onNew() {
	mw.state.Clear()
	mw.state.Checkpoint()
	mw.setStatus("New drawing")
}

func (mw *MainWindow) onOpen() {
	dialog.ShowFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil || reader == nil {
			return
		}
		path := reader.URI().Path()
		reader.Close()
		if err := mw.state.LoadProject(path); err != nil {
			dialog.ShowError(err, mw.Window)
			return
		}
		mw.prefs.SetString(prefs.KeyLastProject, path)
		mw.board.Refresh()
	}, mw.Window)
}

func (mw *MainWindow) onSave() {
	if mw.state.ProjectPath == "" {
		mw.onSaveAs()
		return
	}
	if err := mw.state.SaveProject(mw.state.ProjectPath); err != nil {
		dialog.ShowError(err, mw.Window)
	}
}

func (mw *MainWindow) onSaveAs() {
	dialog.ShowFileSave(func(writer fyne.URIWriteCloser, err error) {
		if err != nil || writer == nil {
			return
		}
		path := writer.URI().Path()
		writer.Close()
		if err := mw.state.SaveProject(path); err != nil {
			dialog.ShowError(err, mw.Window)
			return
		}
		mw.prefs.SetString(prefs.KeyLastProject, path)
	}, mw.Window)
}

func (mw *MainWindow) onExportPDF() {
	fileSave := dialog.NewFileSave(func(writer fyne.URIWriteCloser, err error) {
		if err != nil || writer == nil {
			return
		}
		path := writer.URI().Path()
		writer.Close()
		if err := export.PDF(path, mw.state.Objects()); err != nil {
			dialog.ShowError(err, mw.Window)
			return
		}
		mw.setStatus("Exported " + path)
	}, mw.Window)
	fileSave.SetFilter(storage.NewExtensionFileFilter([]string{".pdf"}))
	fileSave.Show()
}

func (mw *MainWindow) onUndo() {
	if mw.state.Undo() {
		mw.board.Refresh()
	}
}

func (mw *MainWindow) onRedo() {
	if mw.state.Redo() {
		mw.board.Refresh()
	}
}

func (mw *MainWindow) onDeleteSelected() {
	removed := false
	for _, id := range mw.state.SelectedIDs() {
		if mw.state.RemoveObject(id) {
			removed = true
		}
	}
	if removed {
		mw.state.Checkpoint()
		mw.board.Refresh()
	}
}

func (mw *MainWindow) onClearAll() {
	dialog.ShowConfirm("Clear All", "Remove every object from the drawing?", func(ok bool) {
		if !ok {
			return
		}
		mw.state.Clear()
		mw.state.Checkpoint()
		mw.board.Refresh()
	}, mw.Window)
}

// onEditText opens an entry dialog for a freshly placed text object.
func (mw *MainWindow) onEditText(obj *object.Object) {
	entry := widget.NewEntry()
	entry.SetText(obj.Text)
	dialog.ShowForm("Edit Text", "OK", "Cancel",
		[]*widget.FormItem{widget.NewFormItem("Text", entry)},
		func(ok bool) {
			applyTextEdit(mw.state, mw.tools, mw.board.Surface(), obj, entry.Text, ok)
			mw.board.Refresh()
		}, mw.Window)
}

// applyTextEdit commits the text dialog result. Cancelling, or confirming an
// empty string, removes the freshly placed object so no invisible text is
// left behind; otherwise the text is stored and the bounds remeasured.
func applyTextEdit(state *app.State, tools *tool.Manager, surface tool.Surface, obj *object.Object, text string, ok bool) {
	if ok {
		obj.Text = text
		obj.Bounds = tools.ObjectBounds(obj, surface)
	}
	if obj.Text == "" {
		state.RemoveObject(obj.ID)
	}
	state.Checkpoint()
}
