package mainwindow

import (
	"testing"

	"data-digitizer/internal/app"
	ddimage "data-digitizer/internal/image"
	"data-digitizer/internal/project"
	"data-digitizer/ui/canvas"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/storage"
	"github.com/stretchr/testify/assert"
)

func TestClickCommand(t *testing.T) {
	assert.Equal(t, app.CmdAddPoint{Row: 3, Col: 4},
		clickCommand(canvas.Click{Row: 3, Col: 4, AddHeld: true, Ctrl: true}))
	assert.Equal(t, app.CmdSelect{Row: 3, Col: 4},
		clickCommand(canvas.Click{Row: 3, Col: 4}))
	assert.Equal(t, app.CmdSelect{Row: 3, Col: 4, Additive: true},
		clickCommand(canvas.Click{Row: 3, Col: 4, Ctrl: true}))
}

func TestArrowCommand(t *testing.T) {
	assert.Equal(t, app.CmdShiftUp{}, arrowCommand(fyne.KeyUp))
	assert.Equal(t, app.CmdShiftDown{}, arrowCommand(fyne.KeyDown))
	assert.Equal(t, app.CmdShiftLeft{}, arrowCommand(fyne.KeyLeft))
	assert.Equal(t, app.CmdShiftRight{}, arrowCommand(fyne.KeyRight))
	assert.Nil(t, arrowCommand(fyne.KeyA))
}

func TestZoomText(t *testing.T) {
	assert.Equal(t, "100%", zoomText(1))
	assert.Equal(t, "125%", zoomText(1.25))
}

func TestFileFilters(t *testing.T) {
	images := fileFilter(ddimage.SupportedFormats())
	for _, name := range []string{"plot.png", "scan.JPG", "fig.tiff", "old.bmp"} {
		assert.True(t, images.Matches(storage.NewFileURI("/tmp/"+name)), name)
	}
	assert.False(t, images.Matches(storage.NewFileURI("/tmp/data.txt")))

	sessions := fileFilter([]string{project.Extension})
	assert.True(t, sessions.Matches(storage.NewFileURI("/tmp/run"+project.Extension)))
	assert.False(t, sessions.Matches(storage.NewFileURI("/tmp/plot.png")))
}
