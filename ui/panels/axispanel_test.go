package panels

import (
	"testing"

	"data-digitizer/internal/app"
	"data-digitizer/internal/axis"

	"fyne.io/fyne/v2/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEntriesFeedSession(t *testing.T) {
	test.NewApp()
	s := app.NewSession()
	ap := NewAxisPanel(s, nil)

	assert.Equal(t, "0", ap.xMinEntry.Text)
	assert.Equal(t, "1", ap.testXEntry.Text)

	ap.xMaxEntry.SetText("10")
	ap.yMaxEntry.SetText("100")
	ap.testYEntry.SetText("50")

	_, xMax, _, yMax := s.BoundsText()
	assert.Equal(t, "10", xMax)
	assert.Equal(t, "100", yMax)
	_, ty := s.TestText()
	assert.Equal(t, "50", ty)
}

func TestLogCheckTogglesScale(t *testing.T) {
	test.NewApp()
	s := app.NewSession()
	var errs []error
	ap := NewAxisPanel(s, func(err error) { errs = append(errs, err) })

	// zero lower bound refuses the log scale
	test.Tap(ap.logXCheck)
	require.Len(t, errs, 1)
	assert.ErrorIs(t, errs[0], axis.ErrInvalidRange)
	assert.False(t, ap.logXCheck.Checked)

	ap.xMinEntry.SetText("1")
	ap.xMaxEntry.SetText("100")
	test.Tap(ap.logXCheck)
	assert.Len(t, errs, 1)
	xs, _ := s.Scales()
	assert.Equal(t, axis.Log, xs)
	assert.True(t, ap.logXCheck.Checked)
}

func TestMeasureErrorIsReported(t *testing.T) {
	test.NewApp()
	s := app.NewSession()
	var got error
	ap := NewAxisPanel(s, func(err error) { got = err })

	ap.run(app.CmdMeasure{})
	require.Error(t, got)
	assert.Contains(t, ap.xUnitLabel.Text, "not measured")
	assert.Equal(t, "0 data points", ap.countLabel.Text)
}
