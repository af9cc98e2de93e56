// Package mainwindow provides the main application window.
package mainwindow

import (
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"data-digitizer/internal/app"
	ddimage "data-digitizer/internal/image"
	"data-digitizer/internal/project"
	"data-digitizer/internal/testplot"
	"data-digitizer/internal/version"
	"data-digitizer/ui/canvas"
	"data-digitizer/ui/panels"
	"data-digitizer/ui/prefs"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/widget"
)

const appTitle = "Data Digitizer"

const howToUse = `Open a plot image (Ctrl+O).

Hold A and click to add a point; Ctrl+A adds one under the mouse.
Click a point to select it, Ctrl+click to add it to the selection.
Arrow keys move the selection by one pixel, Ctrl+arrows by a larger step.

Set the axis limits from the selected or last point:
  Ctrl+G  X min      Ctrl+H  X max
  Ctrl+J  Y min      Ctrl+K  Y max
  Ctrl+L  all four from the last four points

Type the axis values in the side panel, then measure (Ctrl+M)
and save the data (Ctrl+S).

Ctrl+Z undo last point, Ctrl+D delete selected,
Ctrl+Shift+D delete all data, Ctrl+N delete limits,
Ctrl+W clear all, Ctrl+Q quit.`

// MainWindow is the primary application window.
type MainWindow struct {
	fyne.Window
	app       fyne.App
	session   *app.Session
	prefs     *prefs.Prefs
	canvas    *canvas.ImageCanvas
	axisPanel *panels.AxisPanel
	statusBar *widget.Label
	zoomLabel *widget.Label

	// Menu items that need state tracking
	fitToWindowItem *fyne.MenuItem
}

// New creates a new main window.
func New(fyneApp fyne.App, session *app.Session, p *prefs.Prefs) *MainWindow {
	win := fyneApp.NewWindow(appTitle)

	mw := &MainWindow{
		Window:  win,
		app:     fyneApp,
		session: session,
		prefs:   p,
	}

	mw.setupUI()
	mw.setupMenus()
	mw.setupShortcuts()
	mw.setupEventHandlers()

	return mw
}

// setupUI creates the main UI layout.
func (mw *MainWindow) setupUI() {
	mw.canvas = canvas.NewImageCanvas()
	mw.canvas.OnClick(func(c canvas.Click) {
		mw.dispatch(clickCommand(c))
	})

	mw.zoomLabel = widget.NewLabel(zoomText(1))
	mw.canvas.OnZoom(func(z float64) {
		mw.zoomLabel.SetText(zoomText(z))
	})

	mw.axisPanel = panels.NewAxisPanel(mw.session, mw.showError)
	mw.statusBar = widget.NewLabel("Open an image to start")

	canvasArea := container.NewBorder(
		mw.createToolbar(),    // top
		nil,                   // bottom
		nil,                   // left
		nil,                   // right
		mw.canvas.Container(), // center
	)

	split := container.NewHSplit(
		mw.axisPanel.Container(),
		canvasArea,
	)
	split.SetOffset(0.22)

	content := container.NewBorder(
		nil,                               // top
		container.NewPadded(mw.statusBar), // bottom
		nil,                               // left
		nil,                               // right
		split,                             // center
	)

	mw.SetContent(content)
}

// createToolbar creates the toolbar with zoom controls.
func (mw *MainWindow) createToolbar() fyne.CanvasObject {
	return container.NewHBox(
		widget.NewLabel("Zoom:"),
		widget.NewButton("-", mw.onZoomOut),
		widget.NewButton("+", mw.onZoomIn),
		widget.NewButton("Fit", mw.onToggleFitToWindow),
		widget.NewButton("1:1", mw.onActualSize),
		mw.zoomLabel,
	)
}

func zoomText(z float64) string {
	return fmt.Sprintf("%.0f%%", z*100)
}

// setupMenus creates the application menus.
func (mw *MainWindow) setupMenus() {
	fileMenu := fyne.NewMenu("File",
		fyne.NewMenuItem("Open Image...", mw.onOpenImage),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Open Session...", mw.onOpenSession),
		fyne.NewMenuItem("Save Session...", mw.onSaveSession),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Save Data...", mw.onSaveData),
		fyne.NewMenuItem("Export XLSX...", mw.onExportXLSX),
		fyne.NewMenuItem("Export Annotated Image...", mw.onExportAnnotated),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Clear All", func() { mw.dispatch(app.CmdClearAll{}) }),
		fyne.NewMenuItem("Quit", func() { mw.app.Quit() }),
	)

	dataMenu := fyne.NewMenu("Data",
		fyne.NewMenuItem("Add Point Under Mouse", mw.onAddAtMouse),
		fyne.NewMenuItem("Undo Last Point", func() { mw.dispatch(app.CmdUndoLastPoint{}) }),
		fyne.NewMenuItem("Delete Selected", func() { mw.dispatch(app.CmdDeleteSelected{}) }),
		fyne.NewMenuItem("Delete All Data", func() { mw.dispatch(app.CmdDeleteAllData{}) }),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Set X Min", func() { mw.dispatch(app.CmdSetXMin{}) }),
		fyne.NewMenuItem("Set X Max", func() { mw.dispatch(app.CmdSetXMax{}) }),
		fyne.NewMenuItem("Set Y Min", func() { mw.dispatch(app.CmdSetYMin{}) }),
		fyne.NewMenuItem("Set Y Max", func() { mw.dispatch(app.CmdSetYMax{}) }),
		fyne.NewMenuItem("Set All Limits", func() { mw.dispatch(app.CmdSetAllLimits{}) }),
		fyne.NewMenuItem("Delete Limits", func() { mw.dispatch(app.CmdDeleteAllLimits{}) }),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Measure", func() { mw.dispatch(app.CmdMeasure{}) }),
		fyne.NewMenuItem("Inject Test Point", func() { mw.dispatch(app.CmdInjectTestPoint{}) }),
	)

	mw.fitToWindowItem = fyne.NewMenuItem("Fit to Window", mw.onToggleFitToWindow)
	mw.fitToWindowItem.Checked = mw.prefs.Bool(prefs.KeyAutoFit, true)
	viewMenu := fyne.NewMenu("View",
		fyne.NewMenuItem("Zoom In", mw.onZoomIn),
		fyne.NewMenuItem("Zoom Out", mw.onZoomOut),
		mw.fitToWindowItem,
		fyne.NewMenuItem("Actual Size", mw.onActualSize),
	)

	var testItems []*fyne.MenuItem
	for _, k := range testplot.Kinds {
		testItems = append(testItems, fyne.NewMenuItem("Test "+k.String(), func() { mw.onTestPlot(k) }))
	}
	testsMenu := fyne.NewMenu("Tests", testItems...)

	helpMenu := fyne.NewMenu("Help",
		fyne.NewMenuItem("How to Use", func() {
			dialog.ShowInformation("How to Use", howToUse, mw.Window)
		}),
		fyne.NewMenuItem("About", mw.onAbout),
	)

	mw.SetMainMenu(fyne.NewMainMenu(fileMenu, dataMenu, viewMenu, testsMenu, helpMenu))
}

// setupShortcuts binds the keyboard.
func (mw *MainWindow) setupShortcuts() {
	ctrl := fyne.KeyModifierShortcutDefault
	bind := func(key fyne.KeyName, mod fyne.KeyModifier, fn func()) {
		mw.Canvas().AddShortcut(&desktop.CustomShortcut{KeyName: key, Modifier: mod}, func(fyne.Shortcut) { fn() })
	}
	run := func(cmd app.Command) func() {
		return func() { mw.dispatch(cmd) }
	}

	bind(fyne.KeyO, ctrl, mw.onOpenImage)
	bind(fyne.KeyA, ctrl, mw.onAddAtMouse)
	bind(fyne.KeyZ, ctrl, run(app.CmdUndoLastPoint{}))
	bind(fyne.KeyD, ctrl, run(app.CmdDeleteSelected{}))
	bind(fyne.KeyD, ctrl|fyne.KeyModifierShift, run(app.CmdDeleteAllData{}))
	bind(fyne.KeyG, ctrl, run(app.CmdSetXMin{}))
	bind(fyne.KeyH, ctrl, run(app.CmdSetXMax{}))
	bind(fyne.KeyJ, ctrl, run(app.CmdSetYMin{}))
	bind(fyne.KeyK, ctrl, run(app.CmdSetYMax{}))
	bind(fyne.KeyL, ctrl, run(app.CmdSetAllLimits{}))
	bind(fyne.KeyN, ctrl, run(app.CmdDeleteAllLimits{}))
	bind(fyne.KeyM, ctrl, run(app.CmdMeasure{}))
	bind(fyne.KeyS, ctrl, mw.onSaveData)
	bind(fyne.KeyW, ctrl, run(app.CmdClearAll{}))
	bind(fyne.KeyQ, ctrl, func() { mw.app.Quit() })

	bind(fyne.KeyUp, ctrl, run(app.CmdShiftUp{Coarse: true}))
	bind(fyne.KeyDown, ctrl, run(app.CmdShiftDown{Coarse: true}))
	bind(fyne.KeyLeft, ctrl, run(app.CmdShiftLeft{Coarse: true}))
	bind(fyne.KeyRight, ctrl, run(app.CmdShiftRight{Coarse: true}))

	mw.Canvas().SetOnTypedKey(func(ev *fyne.KeyEvent) {
		if cmd := arrowCommand(ev.Name); cmd != nil {
			mw.dispatch(cmd)
		}
	})

	if dc, ok := mw.Canvas().(desktop.Canvas); ok {
		dc.SetOnKeyDown(func(ev *fyne.KeyEvent) {
			if ev.Name == fyne.KeyA {
				mw.canvas.SetAddHeld(true)
			}
		})
		dc.SetOnKeyUp(func(ev *fyne.KeyEvent) {
			if ev.Name == fyne.KeyA {
				mw.canvas.SetAddHeld(false)
			}
		})
	}
}

// clickCommand maps a click on the image to a command: add while the add
// key is held, otherwise select (additive with Ctrl).
func clickCommand(c canvas.Click) app.Command {
	if c.AddHeld {
		return app.CmdAddPoint{Row: c.Row, Col: c.Col}
	}
	return app.CmdSelect{Row: c.Row, Col: c.Col, Additive: c.Ctrl}
}

// arrowCommand maps a plain arrow key to a one-pixel shift, or nil.
func arrowCommand(key fyne.KeyName) app.Command {
	switch key {
	case fyne.KeyUp:
		return app.CmdShiftUp{}
	case fyne.KeyDown:
		return app.CmdShiftDown{}
	case fyne.KeyLeft:
		return app.CmdShiftLeft{}
	case fyne.KeyRight:
		return app.CmdShiftRight{}
	default:
		return nil
	}
}

// setupEventHandlers registers for session events.
func (mw *MainWindow) setupEventHandlers() {
	mw.session.On(app.EventImageLoaded, func(data interface{}) {
		if layer, ok := data.(*ddimage.Layer); ok {
			mw.SetTitle(appTitle + " - " + filepath.Base(layer.Path))
			mw.updateStatus(fmt.Sprintf("Loaded %s (%d x %d)", layer.Path, layer.Cols(), layer.Rows()))
		}
		mw.syncAll()
	})

	mw.session.On(app.EventSessionLoaded, func(data interface{}) {
		if path, ok := data.(string); ok {
			mw.SetTitle(appTitle + " - " + filepath.Base(path))
			mw.updateStatus("Session loaded: " + path)
		}
		mw.syncAll()
	})

	mw.session.On(app.EventCleared, func(interface{}) {
		mw.SetTitle(appTitle)
		mw.updateStatus("Cleared")
		mw.syncAll()
	})

	mw.session.On(app.EventPointsChanged, func(interface{}) { mw.syncPoints() })
	mw.session.On(app.EventSelectionChanged, func(interface{}) { mw.syncPoints() })
	mw.session.On(app.EventScaleChanged, func(interface{}) { mw.syncPoints() })

	mw.session.On(app.EventMeasured, func(interface{}) {
		mw.syncPoints()
		mw.updateStatus("Measured: " + mw.session.Summary().String())
	})

	mw.session.On(app.EventDataSaved, func(data interface{}) {
		mw.syncPoints()
		mw.updateStatus(fmt.Sprintf("Saved %v", data))
	})

	mw.session.On(app.EventSessionSaved, func(data interface{}) {
		mw.updateStatus(fmt.Sprintf("Session saved: %v", data))
	})
}

func (mw *MainWindow) syncAll() {
	mw.canvas.SetLayer(mw.session.Image())
	mw.canvas.SetAutoFit(mw.fitToWindowItem.Checked)
	mw.axisPanel.Sync()
	mw.syncPoints()
}

func (mw *MainWindow) syncPoints() {
	mw.canvas.SetPoints(mw.session.Points(), mw.session.MarkerFraction)
	mw.axisPanel.SyncResults()
}

// dispatch runs a command and reports its failure.
func (mw *MainWindow) dispatch(cmd app.Command) {
	if err := mw.session.Dispatch(cmd); err != nil {
		mw.showError(err)
	}
}

// showError reports a failed command as an information or a warning.
func (mw *MainWindow) showError(err error) {
	log.Printf("%v", err)
	msg := err.Error()
	var cerr *app.CommandError
	if errors.As(err, &cerr) {
		msg = cerr.Err.Error()
	}
	switch app.Severity(err) {
	case app.Info:
		dialog.ShowInformation("Info", msg, mw.Window)
	default:
		dialog.ShowError(errors.New(msg), mw.Window)
	}
	mw.updateStatus(msg)
}

// updateStatus updates the status bar text.
func (mw *MainWindow) updateStatus(text string) {
	mw.statusBar.SetText(text)
}

// getLastDir returns the last used directory as a ListableURI, or nil.
func (mw *MainWindow) getLastDir() fyne.ListableURI {
	path := mw.session.LastFolder
	if path == "" {
		return nil
	}
	listable, err := storage.ListerForURI(storage.NewFileURI(path))
	if err != nil {
		return nil
	}
	return listable
}

// fileFilter accepts files whose extension, dot included, is one of exts.
func fileFilter(exts []string) storage.FileFilter {
	return storage.NewExtensionFileFilter(exts)
}

func (mw *MainWindow) openFile(exts []string, fn func(path string)) {
	fd := dialog.NewFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil || reader == nil {
			return
		}
		reader.Close()
		fn(reader.URI().Path())
	}, mw.Window)
	fd.SetFilter(fileFilter(exts))
	if loc := mw.getLastDir(); loc != nil {
		fd.SetLocation(loc)
	}
	fd.Show()
}

func (mw *MainWindow) saveFile(name, ext string, fn func(path string)) {
	fd := dialog.NewFileSave(func(writer fyne.URIWriteCloser, err error) {
		if err != nil || writer == nil {
			return
		}
		writer.Close()
		path := writer.URI().Path()
		if !strings.EqualFold(filepath.Ext(path), ext) {
			os.Remove(path)
			path += ext
		}
		fn(path)
	}, mw.Window)
	fd.SetFileName(name + ext)
	if loc := mw.getLastDir(); loc != nil {
		fd.SetLocation(loc)
	}
	fd.Show()
}

// Menu action handlers

func (mw *MainWindow) onOpenImage() {
	mw.openFile(ddimage.SupportedFormats(), func(path string) {
		mw.dispatch(app.CmdOpenImage{Path: path})
	})
}

func (mw *MainWindow) onAddAtMouse() {
	row, col, ok := mw.canvas.HoverPixel()
	if !ok {
		return
	}
	mw.dispatch(app.CmdAddPoint{Row: row, Col: col})
}

func (mw *MainWindow) onOpenSession() {
	mw.openFile([]string{project.Extension}, func(path string) {
		if err := mw.session.LoadSession(path); err != nil {
			mw.showError(err)
		}
	})
}

func (mw *MainWindow) onSaveSession() {
	mw.saveFile("session", project.Extension, func(path string) {
		if err := mw.session.SaveSession(path); err != nil {
			mw.showError(err)
		}
	})
}

func (mw *MainWindow) onSaveData() {
	mw.saveFile("data", ".txt", func(path string) {
		mw.dispatch(app.CmdSave{Path: path})
	})
}

func (mw *MainWindow) onExportXLSX() {
	mw.saveFile("data", ".xlsx", func(path string) {
		if err := mw.session.ExportXLSX(path); err != nil {
			mw.showError(err)
			return
		}
		mw.syncPoints()
		mw.updateStatus("Exported " + path)
	})
}

func (mw *MainWindow) onExportAnnotated() {
	mw.saveFile("annotated", ".png", func(path string) {
		if err := mw.session.ExportAnnotated(path); err != nil {
			mw.showError(err)
			return
		}
		mw.updateStatus("Exported " + path)
	})
}

// onTestPlot renders a synthetic plot into the cache directory and opens it.
func (mw *MainWindow) onTestPlot(k testplot.Kind) {
	dir, err := os.UserCacheDir()
	if err != nil {
		dir = os.TempDir()
	}
	dir = filepath.Join(dir, "data-digitizer")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		mw.showError(err)
		return
	}
	path := filepath.Join(dir, "test-"+k.String()+".png")
	spec, err := testplot.Generate(k, path)
	if err != nil {
		mw.showError(err)
		return
	}
	mw.dispatch(app.CmdOpenImage{Path: path})
	mw.updateStatus(fmt.Sprintf("Test plot %s: x in [%g, %g], y in [%g, %g]",
		k, spec.XMin, spec.XMax, spec.YMin, spec.YMax))
}

func (mw *MainWindow) onZoomIn() {
	mw.disableFitToWindow()
	mw.canvas.ZoomIn()
}

func (mw *MainWindow) onZoomOut() {
	mw.disableFitToWindow()
	mw.canvas.ZoomOut()
}

func (mw *MainWindow) onToggleFitToWindow() {
	enabled := !mw.canvas.AutoFit()
	mw.canvas.SetAutoFit(enabled)
	mw.fitToWindowItem.Checked = enabled
}

func (mw *MainWindow) onActualSize() {
	mw.disableFitToWindow()
	mw.canvas.SetZoom(1.0)
}

func (mw *MainWindow) disableFitToWindow() {
	if mw.canvas.AutoFit() {
		mw.canvas.SetAutoFit(false)
		mw.fitToWindowItem.Checked = false
	}
}

func (mw *MainWindow) onAbout() {
	dialog.ShowInformation("About "+appTitle,
		fmt.Sprintf("%s v%s\n\n"+
			"Extract numeric data from images of plots.\n\n"+
			"Built: %s\n"+
			"Commit: %s",
			appTitle, version.Version, version.BuildTime, version.GitCommit),
		mw.Window)
}

// SavePreferences writes the session settings back to the preferences file.
func (mw *MainWindow) SavePreferences() {
	mw.prefs.SetString(prefs.KeyImageFolder, mw.session.LastFolder)
	mw.prefs.SetFloat(prefs.KeyHitFraction, mw.session.HitFraction)
	mw.prefs.SetFloat(prefs.KeyShiftFraction, mw.session.ShiftFraction)
	mw.prefs.SetFloat(prefs.KeyMarkerFraction, mw.session.MarkerFraction)
	mw.prefs.SetBool(prefs.KeyAutoFit, mw.fitToWindowItem.Checked)
	if err := mw.prefs.Save(); err != nil {
		log.Printf("Failed to save preferences: %v", err)
	}
}
