// Package panels provides UI panels for the application.
package panels

import (
	"fmt"

	"data-digitizer/internal/app"
	"data-digitizer/internal/axis"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
)

// AxisPanel edits the axis bounds, log scales and test values of a session
// and shows what the last measure produced.
type AxisPanel struct {
	session   *app.Session
	container *fyne.Container

	xMinEntry, xMaxEntry *widget.Entry
	yMinEntry, yMaxEntry *widget.Entry
	logXCheck, logYCheck *widget.Check
	testXEntry           *widget.Entry
	testYEntry           *widget.Entry

	countLabel *widget.Label
	xUnitLabel *widget.Label
	yUnitLabel *widget.Label

	// syncing suppresses widget callbacks while Sync writes to them.
	syncing bool

	onError func(error)
}

// NewAxisPanel creates the panel. Failed commands are passed to onError.
func NewAxisPanel(session *app.Session, onError func(error)) *AxisPanel {
	ap := &AxisPanel{
		session: session,
		onError: onError,
	}

	ap.xMinEntry = ap.boundEntry()
	ap.xMaxEntry = ap.boundEntry()
	ap.yMinEntry = ap.boundEntry()
	ap.yMaxEntry = ap.boundEntry()

	ap.logXCheck = widget.NewCheck("Log scale", func(bool) {
		ap.run(app.CmdToggleLogX{})
	})
	ap.logYCheck = widget.NewCheck("Log scale", func(bool) {
		ap.run(app.CmdToggleLogY{})
	})

	ap.testXEntry = ap.testEntry()
	ap.testYEntry = ap.testEntry()
	injectBtn := widget.NewButton("Inject Test Point", func() {
		ap.run(app.CmdInjectTestPoint{})
	})
	measureBtn := widget.NewButton("Measure", func() {
		ap.run(app.CmdMeasure{})
	})

	ap.countLabel = widget.NewLabel("")
	ap.xUnitLabel = widget.NewLabel("")
	ap.yUnitLabel = widget.NewLabel("")

	ap.container = container.NewVBox(
		widget.NewCard("X Axis", "", container.NewVBox(
			widget.NewForm(
				widget.NewFormItem("Min", ap.xMinEntry),
				widget.NewFormItem("Max", ap.xMaxEntry),
			),
			ap.logXCheck,
			ap.xUnitLabel,
		)),
		widget.NewCard("Y Axis", "", container.NewVBox(
			widget.NewForm(
				widget.NewFormItem("Min", ap.yMinEntry),
				widget.NewFormItem("Max", ap.yMaxEntry),
			),
			ap.logYCheck,
			ap.yUnitLabel,
		)),
		widget.NewCard("Test", "", container.NewVBox(
			widget.NewForm(
				widget.NewFormItem("X", ap.testXEntry),
				widget.NewFormItem("Y", ap.testYEntry),
			),
			injectBtn,
		)),
		measureBtn,
		ap.countLabel,
	)

	ap.Sync()
	return ap
}

func (ap *AxisPanel) boundEntry() *widget.Entry {
	e := widget.NewEntry()
	e.OnChanged = func(string) {
		if !ap.syncing {
			ap.session.SetBoundsText(ap.xMinEntry.Text, ap.xMaxEntry.Text, ap.yMinEntry.Text, ap.yMaxEntry.Text)
		}
	}
	e.OnSubmitted = func(string) { ap.run(app.CmdMeasure{}) }
	return e
}

func (ap *AxisPanel) testEntry() *widget.Entry {
	e := widget.NewEntry()
	e.OnChanged = func(string) {
		if !ap.syncing {
			ap.session.SetTestText(ap.testXEntry.Text, ap.testYEntry.Text)
		}
	}
	e.OnSubmitted = func(string) { ap.run(app.CmdInjectTestPoint{}) }
	return e
}

// run dispatches cmd unless the panel is being synced.
func (ap *AxisPanel) run(cmd app.Command) {
	if ap.syncing {
		return
	}
	if err := ap.session.Dispatch(cmd); err != nil {
		if ap.onError != nil {
			ap.onError(err)
		}
		// a refused toggle must untick its box
		ap.Sync()
	}
}

// Container returns the panel container.
func (ap *AxisPanel) Container() fyne.CanvasObject {
	return container.NewVScroll(ap.container)
}

// Sync copies the session state into the widgets.
func (ap *AxisPanel) Sync() {
	ap.syncing = true
	defer func() { ap.syncing = false }()

	xMin, xMax, yMin, yMax := ap.session.BoundsText()
	ap.xMinEntry.SetText(xMin)
	ap.xMaxEntry.SetText(xMax)
	ap.yMinEntry.SetText(yMin)
	ap.yMaxEntry.SetText(yMax)

	xs, ys := ap.session.Scales()
	ap.logXCheck.SetChecked(xs == axis.Log)
	ap.logYCheck.SetChecked(ys == axis.Log)

	tx, ty := ap.session.TestText()
	ap.testXEntry.SetText(tx)
	ap.testYEntry.SetText(ty)

	ap.SyncResults()
}

// SyncResults refreshes the point count and units-per-pixel labels.
func (ap *AxisPanel) SyncResults() {
	xUnit, yUnit := ap.session.Units()
	if xUnit == "" {
		xUnit = "not measured"
	}
	if yUnit == "" {
		yUnit = "not measured"
	}
	ap.xUnitLabel.SetText("X: " + xUnit)
	ap.yUnitLabel.SetText("Y: " + yUnit)
	ap.countLabel.SetText(fmt.Sprintf("%d data points", ap.session.DataCount()))
}
