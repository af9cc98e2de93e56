// Package colorutil provides shared color utilities for the digitizer.
package colorutil

import (
	"image/color"
)

// Marker colors. Data points are red, X limits blue, Y limits green.
var (
	Transparent = color.NRGBA{}
	Red         = color.NRGBA{R: 255, A: 255}
	Green       = color.NRGBA{G: 255, A: 255}
	Blue        = color.NRGBA{B: 255, A: 255}
)
