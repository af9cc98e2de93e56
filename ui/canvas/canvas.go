// Package canvas provides the plot canvas with zoom, point markers, and
// click handling.
package canvas

import (
	"image"
	"math"

	ddimage "data-digitizer/internal/image"
	"data-digitizer/internal/points"
	"data-digitizer/pkg/geometry"

	"fyne.io/fyne/v2"
	fynecanvas "fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/widget"
)

const (
	minZoom  = 0.1
	maxZoom  = 10.0
	zoomStep = 1.25
)

// Click describes a left click on the image.
type Click struct {
	Row, Col int
	// Ctrl is true when the control key was held.
	Ctrl bool
	// AddHeld is true when the add-point key was held.
	AddHeld bool
}

// ImageCanvas displays the plot image with its point markers.
type ImageCanvas struct {
	widget.BaseWidget

	layer   *ddimage.Layer
	markers *image.NRGBA
	labels  []Label

	// Display state
	raster *fynecanvas.Raster
	zoom   float64

	scroll  *viewport
	content *clickableContent
	imgSize fyne.Size

	autoFit  bool
	lastView fyne.Size

	addHeld bool

	// Last pixel under the mouse
	hoverRow, hoverCol int
	hovering           bool

	onZoom  func(zoom float64)
	onClick func(Click)
}

// viewport scrolls the image content and turns the mouse wheel into zoom.
type viewport struct {
	widget.BaseWidget
	scroll *container.Scroll
	owner  *ImageCanvas
}

func newViewport(content fyne.CanvasObject, owner *ImageCanvas) *viewport {
	vp := &viewport{scroll: container.NewScroll(content), owner: owner}
	vp.scroll.Direction = container.ScrollBoth
	vp.ExtendBaseWidget(vp)
	return vp
}

func (vp *viewport) Scrolled(ev *fyne.ScrollEvent) {
	vp.owner.wheel(ev.Scrolled.DY)
}

func (vp *viewport) CreateRenderer() fyne.WidgetRenderer {
	return widget.NewSimpleRenderer(vp.scroll)
}

func (vp *viewport) Size() fyne.Size {
	return vp.scroll.Size()
}

func (vp *viewport) Refresh() {
	vp.scroll.Refresh()
	vp.BaseWidget.Refresh()
}

func (vp *viewport) Resize(size fyne.Size) {
	vp.scroll.Resize(size)
	vp.BaseWidget.Resize(size)
}

// clickableContent wraps the raster to receive mouse buttons with their
// modifiers.
type clickableContent struct {
	widget.BaseWidget
	canvas *ImageCanvas
	raster *fynecanvas.Raster
}

var (
	_ desktop.Mouseable = (*clickableContent)(nil)
	_ desktop.Hoverable = (*clickableContent)(nil)
)

func newClickableContent(ic *ImageCanvas, raster *fynecanvas.Raster) *clickableContent {
	cc := &clickableContent{
		canvas: ic,
		raster: raster,
	}
	cc.ExtendBaseWidget(cc)
	return cc
}

func (cc *clickableContent) CreateRenderer() fyne.WidgetRenderer {
	return widget.NewSimpleRenderer(cc.raster)
}

func (cc *clickableContent) MinSize() fyne.Size {
	return cc.raster.MinSize()
}

func (cc *clickableContent) Scrolled(ev *fyne.ScrollEvent) {
	cc.canvas.wheel(ev.Scrolled.DY)
}

// MouseDown handles left clicks.
func (cc *clickableContent) MouseDown(ev *desktop.MouseEvent) {
	if ev.Button != desktop.MouseButtonPrimary || cc.canvas.onClick == nil {
		return
	}

	// Fyne can deliver presses from outside the content bounds
	if size := cc.Size(); ev.Position.X < 0 || ev.Position.Y < 0 ||
		ev.Position.X > size.Width || ev.Position.Y > size.Height {
		return
	}

	row, col, ok := cc.canvas.CanvasToPixel(float64(ev.Position.X), float64(ev.Position.Y))
	if !ok {
		return
	}
	cc.canvas.onClick(Click{
		Row:     row,
		Col:     col,
		Ctrl:    ev.Modifier&(fyne.KeyModifierControl|fyne.KeyModifierShortcutDefault) != 0,
		AddHeld: cc.canvas.addHeld,
	})
}

func (cc *clickableContent) MouseUp(*desktop.MouseEvent) {}

func (cc *clickableContent) MouseIn(ev *desktop.MouseEvent) {
	cc.MouseMoved(ev)
}

func (cc *clickableContent) MouseMoved(ev *desktop.MouseEvent) {
	ic := cc.canvas
	ic.hoverRow, ic.hoverCol, ic.hovering = ic.CanvasToPixel(float64(ev.Position.X), float64(ev.Position.Y))
}

func (cc *clickableContent) MouseOut() {
	cc.canvas.hovering = false
}

// NewImageCanvas returns an empty canvas at zoom 1.
func NewImageCanvas() *ImageCanvas {
	ic := &ImageCanvas{
		zoom:    1.0,
		imgSize: fyne.NewSize(400, 300),
	}

	ic.raster = fynecanvas.NewRaster(ic.draw)
	ic.raster.ScaleMode = fynecanvas.ImageScalePixels
	ic.raster.SetMinSize(ic.imgSize)

	ic.content = newClickableContent(ic, ic.raster)
	ic.scroll = newViewport(ic.content, ic)

	ic.ExtendBaseWidget(ic)
	return ic
}

// Container returns the scrollable view to place in a layout.
func (ic *ImageCanvas) Container() fyne.CanvasObject {
	return ic.scroll
}

// SetLayer sets the image to display; nil shows an empty canvas.
func (ic *ImageCanvas) SetLayer(layer *ddimage.Layer) {
	ic.layer = layer
	ic.markers = nil
	ic.labels = nil
	ic.updateContentSize()
}

// SetPoints redraws the point markers. fraction sizes the marker arms
// relative to the image.
func (ic *ImageCanvas) SetPoints(pts []points.Point, fraction float64) {
	if ic.layer == nil {
		ic.markers = nil
		ic.labels = nil
	} else {
		ic.markers = ddimage.RenderMarkers(ic.layer.Rows(), ic.layer.Cols(), pts, fraction)
		ic.labels = LimitLabels(pts, ic.layer.Rows(), ic.layer.Cols(), fraction)
	}
	ic.Refresh()
}

// SetAddHeld records whether the add-point key is down.
func (ic *ImageCanvas) SetAddHeld(held bool) {
	ic.addHeld = held
}

// HoverPixel returns the image pixel under the mouse.
func (ic *ImageCanvas) HoverPixel() (row, col int, ok bool) {
	return ic.hoverRow, ic.hoverCol, ic.hovering
}

// SetZoom sets the display scale, clamped to [minZoom, maxZoom].
func (ic *ImageCanvas) SetZoom(zoom float64) {
	ic.zoom = math.Max(minZoom, math.Min(maxZoom, zoom))
	ic.updateContentSize()
	if ic.onZoom != nil {
		ic.onZoom(ic.zoom)
	}
}

// Zoom returns the display scale.
func (ic *ImageCanvas) Zoom() float64 {
	return ic.zoom
}

func (ic *ImageCanvas) ZoomIn() { ic.SetZoom(ic.zoom * zoomStep) }
func (ic *ImageCanvas) ZoomOut() { ic.SetZoom(ic.zoom / zoomStep) }

func (ic *ImageCanvas) wheel(dy float32) {
	switch {
	case dy > 0:
		ic.ZoomIn()
	case dy < 0:
		ic.ZoomOut()
	}
}

// Fit scales the image to the visible area with a small margin.
func (ic *ImageCanvas) Fit() {
	if ic.layer == nil {
		return
	}
	view := ic.scroll.Size()
	if view.Width <= 0 || view.Height <= 0 {
		return
	}
	byCols := float64(view.Width) / float64(ic.layer.Cols())
	byRows := float64(view.Height) / float64(ic.layer.Rows())
	ic.SetZoom(math.Min(byCols, byRows) * 0.95)
}

// SetAutoFit makes the canvas refit on every resize of its view.
func (ic *ImageCanvas) SetAutoFit(on bool) {
	ic.autoFit = on
	if on {
		ic.Fit()
	}
}

func (ic *ImageCanvas) AutoFit() bool {
	return ic.autoFit
}

func (ic *ImageCanvas) viewResized(size fyne.Size) {
	if !ic.autoFit || size.Width <= 0 || size.Height <= 0 || size == ic.lastView {
		return
	}
	ic.lastView = size
	ic.Fit()
}

// OnZoom registers a callback run after every zoom change.
func (ic *ImageCanvas) OnZoom(callback func(zoom float64)) {
	ic.onZoom = callback
}

// OnClick sets a callback for left clicks on the image.
func (ic *ImageCanvas) OnClick(callback func(Click)) {
	ic.onClick = callback
}

// Refresh redraws the image and markers.
func (ic *ImageCanvas) Refresh() {
	ic.raster.Refresh()
}

// CanvasToPixel converts canvas coordinates to an image pixel. It reports
// false outside the image.
func (ic *ImageCanvas) CanvasToPixel(x, y float64) (row, col int, ok bool) {
	if ic.layer == nil {
		return 0, 0, false
	}
	px := geometry.NewPixel(int(math.Floor(y/ic.zoom)), int(math.Floor(x/ic.zoom)))
	if !px.In(ic.layer.Rows(), ic.layer.Cols()) {
		return 0, 0, false
	}
	return px.Row, px.Col, true
}

func (ic *ImageCanvas) updateContentSize() {
	ic.imgSize = fyne.NewSize(400, 300)
	if ic.layer != nil {
		ic.imgSize = fyne.NewSize(
			float32(float64(ic.layer.Cols())*ic.zoom),
			float32(float64(ic.layer.Rows())*ic.zoom))
	}

	ic.raster.SetMinSize(ic.imgSize)
	ic.raster.Resize(ic.imgSize)
	if ic.content != nil {
		ic.content.Resize(ic.imgSize)
		ic.content.Refresh()
	}
	ic.raster.Refresh()
	if ic.scroll != nil {
		ic.scroll.Refresh()
	}
}

// draw renders the visible raster: opaque black, then the image with its
// markers, then the limit labels.
func (ic *ImageCanvas) draw(w, h int) image.Image {
	output := image.NewRGBA(image.Rect(0, 0, w, h))
	for i := 3; i < len(output.Pix); i += 4 {
		output.Pix[i] = 0xff
	}
	if ic.layer == nil || ic.layer.Image == nil || !ic.layer.Visible {
		return output
	}

	ic.compositeLayer(output, w, h)
	for _, l := range ic.labels {
		x, y := ic.PixelToCanvas(l.Row, l.Col)
		ic.drawLabel(output, l.Text, int(x), int(y), l.Color)
	}
	return output
}

// PixelToCanvas converts an image pixel to canvas coordinates.
func (ic *ImageCanvas) PixelToCanvas(row, col int) (x, y float64) {
	return float64(col) * ic.zoom, float64(row) * ic.zoom
}

func (ic *ImageCanvas) CreateRenderer() fyne.WidgetRenderer {
	return &canvasRenderer{ic: ic}
}

type canvasRenderer struct {
	ic *ImageCanvas
}

func (r *canvasRenderer) Layout(size fyne.Size) {
	r.ic.scroll.Resize(size)
	r.ic.viewResized(size)
}

func (r *canvasRenderer) MinSize() fyne.Size { return fyne.NewSize(100, 100) }
func (r *canvasRenderer) Refresh() { r.ic.raster.Refresh() }
func (r *canvasRenderer) Objects() []fyne.CanvasObject { return []fyne.CanvasObject{r.ic.scroll} }
func (r *canvasRenderer) Destroy() {}
