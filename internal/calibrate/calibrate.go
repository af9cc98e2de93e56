// Package calibrate derives value-space coordinates from the four limit
// points of a point store.
//
// Pixel rows calibrate the Y axis and pixel columns calibrate the X axis:
// XMin/XMax contribute their Col, YMin/YMax their Row.
package calibrate

import (
	"errors"
	"fmt"

	"data-digitizer/internal/axis"
	"data-digitizer/internal/points"
)

// ErrMissingLimits is returned when the store does not hold exactly one
// point of each limit kind.
var ErrMissingLimits = errors.New("X limits and Y limits must be set")

// Bounds are the user-entered values of an axis' two limit points.
type Bounds struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// Axes is the pair of transforms of one calibration.
type Axes struct {
	X *axis.Transform
	Y *axis.Transform
}

// BuildAxes builds the X and Y transforms from the limit points of store.
func BuildAxes(store *points.Store, xb, yb Bounds, xs, ys axis.Scale) (Axes, error) {
	if !store.HasAllLimits() {
		return Axes{}, ErrMissingLimits
	}

	xMin, _ := store.Limit(points.XMin)
	xMax, _ := store.Limit(points.XMax)
	yMin, _ := store.Limit(points.YMin)
	yMax, _ := store.Limit(points.YMax)

	xt, err := axis.New(xb.Min, xb.Max, float64(xMin.Col), float64(xMax.Col), xs)
	if err != nil {
		return Axes{}, fmt.Errorf("X axis: %w", err)
	}
	yt, err := axis.New(yb.Min, yb.Max, float64(yMin.Row), float64(yMax.Row), ys)
	if err != nil {
		return Axes{}, fmt.Errorf("Y axis: %w", err)
	}
	return Axes{X: xt, Y: yt}, nil
}

// Measure writes calibrated values onto every point of store, limits
// included. Pixel positions are not validated.
func Measure(store *points.Store, axes Axes) {
	for i := 0; i < store.Len(); i++ {
		p := store.At(i)
		store.SetValues(i, axes.X.Backward(float64(p.Col)), axes.Y.Backward(float64(p.Row)))
	}
}

// ProjectTestPoint maps a value-space point back to pixel space. It is the
// inverse of Measure.
func ProjectTestPoint(axes Axes, testX, testY float64) (row, col float64) {
	return axes.Y.Forward(testY), axes.X.Forward(testX)
}
