// Package axis converts between one value axis and one pixel axis.
package axis

import (
	"errors"
	"fmt"
	"math"
	"strings"
)

// Scale selects how values are laid out along a pixel axis.
type Scale int

const (
	Linear Scale = iota
	Log
)

var (
	// ErrInvalidScale is returned for a Scale that is neither Linear nor Log.
	ErrInvalidScale = errors.New("scale must be either linear or log")

	// ErrInvalidRange is returned when log bounds are not strictly positive.
	ErrInvalidRange = errors.New("limits must be greater than 0 in log scales")
)

func (s Scale) String() string {
	switch s {
	case Linear:
		return "linear"
	case Log:
		return "log"
	default:
		return fmt.Sprintf("Scale(%d)", int(s))
	}
}

// ParseScale parses "linear" or "log" (case-insensitive).
func ParseScale(s string) (Scale, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "linear", "lin", "":
		return Linear, nil
	case "log", "log10":
		return Log, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrInvalidScale, s)
}

// MarshalText implements encoding.TextMarshaler.
func (s Scale) MarshalText() ([]byte, error) {
	if s != Linear && s != Log {
		return nil, ErrInvalidScale
	}
	return []byte(s.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *Scale) UnmarshalText(text []byte) error {
	v, err := ParseScale(string(text))
	if err != nil {
		return err
	}
	*s = v
	return nil
}

// Transform is an affine map between (possibly log10'd) value space and
// pixel space. It is immutable once built.
//
// Degenerate spans are not guarded: equal pixel or value bounds make the
// mapping produce NaN or Inf.
type Transform struct {
	scale Scale

	valueMin, valueMax float64
	pixelMin, pixelMax float64

	// bounds in the space the affine map operates on
	x1Min, x1Max float64
	dx1, dx2     float64
}

// New builds a Transform mapping [valueMin, valueMax] onto [pixelMin, pixelMax].
func New(valueMin, valueMax, pixelMin, pixelMax float64, scale Scale) (*Transform, error) {
	if scale != Linear && scale != Log {
		return nil, fmt.Errorf("%w: %v", ErrInvalidScale, scale)
	}

	t := &Transform{
		scale:    scale,
		valueMin: valueMin,
		valueMax: valueMax,
		pixelMin: pixelMin,
		pixelMax: pixelMax,
		x1Min:    valueMin,
		x1Max:    valueMax,
	}

	if scale == Log {
		if valueMin <= 0 || valueMax <= 0 {
			return nil, fmt.Errorf("%w: [%g, %g]", ErrInvalidRange, valueMin, valueMax)
		}
		t.x1Min = math.Log10(valueMin)
		t.x1Max = math.Log10(valueMax)
	}

	t.dx1 = t.x1Max - t.x1Min
	t.dx2 = pixelMax - pixelMin
	return t, nil
}

// Scale returns the scale the transform was built with.
func (t *Transform) Scale() Scale {
	return t.scale
}

// ValueRange returns the calibration values.
func (t *Transform) ValueRange() (min, max float64) {
	return t.valueMin, t.valueMax
}

// PixelRange returns the pixel coordinates of the calibration values.
func (t *Transform) PixelRange() (min, max float64) {
	return t.pixelMin, t.pixelMax
}

func (t *Transform) prepare(v float64) float64 {
	if t.scale == Log {
		return math.Log10(v)
	}
	return v
}

// Forward converts a value into a pixel coordinate.
func (t *Transform) Forward(v float64) float64 {
	return (t.prepare(v)-t.x1Min)*t.dx2/t.dx1 + t.pixelMin
}

// Backward converts a pixel coordinate into a value.
func (t *Transform) Backward(p float64) float64 {
	v := (p-t.pixelMin)*t.dx1/t.dx2 + t.x1Min
	if t.scale == Log {
		return math.Pow(10, v)
	}
	return v
}

// ForwardScale is pixels per unit of (possibly logged) value.
func (t *Transform) ForwardScale() float64 {
	return t.dx2 / t.dx1
}

// BackwardScale is units of (possibly logged) value per pixel.
func (t *Transform) BackwardScale() float64 {
	return t.dx1 / t.dx2
}

// Unit labels BackwardScale for display.
func (t *Transform) Unit() string {
	if t.scale == Log {
		return "unit/pixel (log scale)"
	}
	return "unit/pixel"
}
