// Package app holds the digitizing session: the point store, the loaded
// image, the user's axis settings, and the commands that act on them.
package app

import (
	"fmt"
	"log"
	"math"
	"path/filepath"
	"strconv"
	"strings"
	"sync"

	"data-digitizer/internal/axis"
	"data-digitizer/internal/calibrate"
	"data-digitizer/internal/export"
	"data-digitizer/internal/image"
	"data-digitizer/internal/points"
	"data-digitizer/internal/project"
)

// Default fractions of the image size.
const (
	DefaultHitFraction    = points.DefaultHitFraction
	DefaultShiftFraction  = 0.05
	DefaultMarkerFraction = image.DefaultMarkerFraction
)

// EventType identifies different session events.
type EventType int

const (
	EventImageLoaded EventType = iota
	EventPointsChanged
	EventSelectionChanged
	EventMeasured
	EventScaleChanged
	EventSessionLoaded
	EventSessionSaved
	EventDataSaved
	EventCleared
)

// EventListener is called when an event occurs.
type EventListener func(data interface{})

// Session is the single active digitizing document.
type Session struct {
	mu sync.RWMutex

	store *points.Store
	layer *image.Layer

	// Axis bounds and test values as typed by the user; parsed on use.
	xMinText, xMaxText string
	yMinText, yMaxText string
	testXText          string
	testYText          string

	xScale, yScale axis.Scale

	// Units-per-pixel labels of the last successful measure.
	xUnit, yUnit string

	// Fractions of the image size used for hit tests, coarse shifts and
	// marker arms.
	HitFraction    float64
	ShiftFraction  float64
	MarkerFraction float64

	// LastFolder is the directory of the last opened or saved file.
	LastFolder string

	// SessionPath is the .ddproj file the session was loaded from or saved to.
	SessionPath string
	Modified    bool

	listeners map[EventType][]EventListener
}

// NewSession creates an empty session with default settings.
func NewSession() *Session {
	s := &Session{
		store:          points.NewStore(),
		HitFraction:    DefaultHitFraction,
		ShiftFraction:  DefaultShiftFraction,
		MarkerFraction: DefaultMarkerFraction,
		listeners:      make(map[EventType][]EventListener),
	}
	s.reset()
	return s
}

// reset restores the document defaults. Callers hold mu.
func (s *Session) reset() {
	s.store.Clear()
	s.layer = nil
	s.xMinText, s.xMaxText = "0", "1"
	s.yMinText, s.yMaxText = "0", "1"
	s.testXText, s.testYText = "1", "1"
	s.xScale, s.yScale = axis.Linear, axis.Linear
	s.xUnit, s.yUnit = "", ""
	s.SessionPath = ""
	s.Modified = false
}

// On registers an event listener for the specified event type.
func (s *Session) On(event EventType, listener EventListener) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners[event] = append(s.listeners[event], listener)
}

// Emit triggers all listeners for the specified event type.
func (s *Session) Emit(event EventType, data interface{}) {
	s.mu.RLock()
	listeners := s.listeners[event]
	s.mu.RUnlock()

	for _, listener := range listeners {
		listener(data)
	}
}

// Points returns a copy of the stored points.
func (s *Session) Points() []points.Point {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.store.Points()
}

// DataCount returns the number of Data points.
func (s *Session) DataCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.store.CountData()
}

// Image returns the loaded image layer, or nil.
func (s *Session) Image() *image.Layer {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.layer
}

// Dims returns the loaded image size, or zeros without an image.
func (s *Session) Dims() (rows, cols int) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.dims()
}

func (s *Session) dims() (rows, cols int) {
	if s.layer == nil {
		return 0, 0
	}
	return s.layer.Rows(), s.layer.Cols()
}

// BoundsText returns the axis bounds as typed.
func (s *Session) BoundsText() (xMin, xMax, yMin, yMax string) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.xMinText, s.xMaxText, s.yMinText, s.yMaxText
}

// SetBoundsText stores the axis bounds as typed. They are parsed when a
// command needs them.
func (s *Session) SetBoundsText(xMin, xMax, yMin, yMax string) {
	s.mu.Lock()
	s.xMinText, s.xMaxText = xMin, xMax
	s.yMinText, s.yMaxText = yMin, yMax
	s.mu.Unlock()
}

// TestText returns the test values as typed.
func (s *Session) TestText() (x, y string) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.testXText, s.testYText
}

// SetTestText stores the test values as typed.
func (s *Session) SetTestText(x, y string) {
	s.mu.Lock()
	s.testXText, s.testYText = x, y
	s.mu.Unlock()
}

// Scales returns the X and Y axis scales.
func (s *Session) Scales() (x, y axis.Scale) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.xScale, s.yScale
}

// Units returns the units-per-pixel labels of the last measure.
func (s *Session) Units() (x, y string) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.xUnit, s.yUnit
}

// Tolerance returns the hit-test radius for the loaded image.
func (s *Session) Tolerance() float64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rows, cols := s.dims()
	return points.Tolerance(rows, cols, s.HitFraction)
}

// shiftDistance returns the step of a shift along dir. Callers hold mu.
func (s *Session) shiftDistance(dir points.Direction, coarse bool) int {
	if !coarse {
		return 1
	}
	rows, cols := s.dims()
	dim := rows
	if dir == points.Left || dir == points.Right {
		dim = cols
	}
	return max(1, int(float64(dim)*s.ShiftFraction))
}

func parseValue(name, text string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(text), 64)
	if err != nil {
		return 0, fmt.Errorf("%s %q: %w", name, text, ErrNonNumericInput)
	}
	return v, nil
}

// bounds parses the typed axis bounds. Callers hold mu.
func (s *Session) bounds() (x, y calibrate.Bounds, err error) {
	fields := []struct {
		name string
		text string
		dst  *float64
	}{
		{"X min", s.xMinText, &x.Min},
		{"X max", s.xMaxText, &x.Max},
		{"Y min", s.yMinText, &y.Min},
		{"Y max", s.yMaxText, &y.Max},
	}
	for _, f := range fields {
		if *f.dst, err = parseValue(f.name, f.text); err != nil {
			return calibrate.Bounds{}, calibrate.Bounds{}, err
		}
	}
	return x, y, nil
}

// axes builds the current calibration. Callers hold mu.
func (s *Session) axes() (calibrate.Axes, error) {
	if !s.store.HasAllLimits() {
		return calibrate.Axes{}, calibrate.ErrMissingLimits
	}
	xb, yb, err := s.bounds()
	if err != nil {
		return calibrate.Axes{}, err
	}
	return calibrate.BuildAxes(s.store, xb, yb, s.xScale, s.yScale)
}

// measure recomputes every point's values. Callers hold mu.
func (s *Session) measure() error {
	axes, err := s.axes()
	if err != nil {
		return err
	}
	calibrate.Measure(s.store, axes)
	s.xUnit = fmt.Sprintf("%.4g %s", axes.X.BackwardScale(), axes.X.Unit())
	s.yUnit = fmt.Sprintf("%.4g %s", axes.Y.BackwardScale(), axes.Y.Unit())
	return nil
}

// project returns the pixel position of the typed test values. Callers
// hold mu.
func (s *Session) project() (row, col int, err error) {
	axes, err := s.axes()
	if err != nil {
		return 0, 0, err
	}
	tx, err := parseValue("test X", s.testXText)
	if err != nil {
		return 0, 0, err
	}
	ty, err := parseValue("test Y", s.testYText)
	if err != nil {
		return 0, 0, err
	}
	r, c := calibrate.ProjectTestPoint(axes, tx, ty)
	if !finite(r) || !finite(c) {
		return 0, 0, fmt.Errorf("(%g, %g): %w", tx, ty, ErrUndefinedProjection)
	}
	return int(math.Round(r)), int(math.Round(c)), nil
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// toggleScale flips one axis between linear and log. Callers hold mu.
func (s *Session) toggleScale(isX bool) error {
	scale, name := &s.yScale, "Y axis"
	if isX {
		scale, name = &s.xScale, "X axis"
	}
	next := axis.Log
	if *scale == axis.Log {
		next = axis.Linear
	}

	if next == axis.Log {
		minText, maxText := s.yMinText, s.yMaxText
		if isX {
			minText, maxText = s.xMinText, s.xMaxText
		}
		lo, err := parseValue(name+" min", minText)
		if err != nil {
			return err
		}
		hi, err := parseValue(name+" max", maxText)
		if err != nil {
			return err
		}
		if lo <= 0 || hi <= 0 {
			return fmt.Errorf("%s: %w", name, axis.ErrInvalidRange)
		}
	}

	*scale = next
	if s.store.HasAllLimits() {
		// the other axis may not measure yet; the toggle still stands
		if err := s.measure(); err != nil {
			log.Printf("%s is %s, not measured: %v", name, next, err)
			s.xUnit, s.yUnit = "", ""
		}
	}
	return nil
}

// openImage replaces the document with a fresh one showing path. Callers
// hold mu.
func (s *Session) openImage(path string) error {
	s.reset()
	layer, err := image.Load(path)
	if err != nil {
		return err
	}
	s.layer = layer
	s.LastFolder = filepath.Dir(path)
	return nil
}

// saveData measures and writes the Data points as text. Callers hold mu.
func (s *Session) saveData(path string) error {
	if err := s.measure(); err != nil {
		return err
	}
	if err := export.SaveText(path, s.store.Points()); err != nil {
		return err
	}
	s.LastFolder = filepath.Dir(path)
	return nil
}

// ExportXLSX measures and writes the Data points to a spreadsheet.
func (s *Session) ExportXLSX(path string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.measure(); err != nil {
		return &CommandError{Command: "export xlsx", Err: err}
	}
	if err := export.SaveXLSX(path, s.store.Points()); err != nil {
		return &CommandError{Command: "export xlsx", Err: err}
	}
	s.LastFolder = filepath.Dir(path)
	return nil
}

// ExportAnnotated writes the image with all markers drawn on it as PNG.
func (s *Session) ExportAnnotated(path string) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.layer == nil {
		return &CommandError{Command: "export image", Err: ErrNoImage}
	}
	if err := image.SaveAnnotated(path, s.layer, s.store.Points(), s.MarkerFraction); err != nil {
		return &CommandError{Command: "export image", Err: err}
	}
	return nil
}

// Summary describes the measured Data points.
func (s *Session) Summary() export.Summary {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return export.Summarize(s.store.Points())
}

// LoadSession replaces the document with a saved session.
func (s *Session) LoadSession(path string) error {
	f, err := project.Load(path)
	if err != nil {
		return err
	}

	var layer *image.Layer
	if imgPath := f.GetImagePath(path); imgPath != "" {
		if layer, err = image.Load(imgPath); err != nil {
			return err
		}
	}
	store := f.Store()

	s.mu.Lock()
	s.reset()
	s.layer = layer
	s.store = store
	s.xMinText, s.xMaxText = formatValue(f.XBounds.Min), formatValue(f.XBounds.Max)
	s.yMinText, s.yMaxText = formatValue(f.YBounds.Min), formatValue(f.YBounds.Max)
	s.testXText, s.testYText = formatValue(f.TestX), formatValue(f.TestY)
	s.xScale, s.yScale = f.XScale, f.YScale
	if s.store.HasAllLimits() {
		if err := s.measure(); err != nil {
			log.Printf("Session %s does not measure: %v", path, err)
		}
	}
	s.SessionPath = path
	s.LastFolder = filepath.Dir(path)
	s.mu.Unlock()

	log.Printf("Loaded session %s", path)
	s.Emit(EventSessionLoaded, path)
	return nil
}

// SaveSession writes the document to a session file.
func (s *Session) SaveSession(path string) error {
	s.mu.Lock()
	xb, yb, err := s.bounds()
	if err != nil {
		s.mu.Unlock()
		return err
	}
	tx, err := parseValue("test X", s.testXText)
	if err != nil {
		s.mu.Unlock()
		return err
	}
	ty, err := parseValue("test Y", s.testYText)
	if err != nil {
		s.mu.Unlock()
		return err
	}

	f := project.New()
	f.XBounds, f.YBounds = xb, yb
	f.XScale, f.YScale = s.xScale, s.yScale
	f.TestX, f.TestY = tx, ty
	f.Points = s.store.Points()
	if s.layer != nil {
		f.SetImage(path, s.layer.Path)
		f.Rows, f.Cols = s.dims()
	}
	s.mu.Unlock()

	if err := f.Save(path); err != nil {
		return err
	}

	s.mu.Lock()
	s.SessionPath = path
	s.Modified = false
	s.LastFolder = filepath.Dir(path)
	s.mu.Unlock()

	s.Emit(EventSessionSaved, path)
	return nil
}

func formatValue(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
