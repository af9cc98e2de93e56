// Package geometry provides basic geometric types used throughout the application.
package geometry

import (
	"math"
)

// Pixel is an integer raster position in image-array order: Row is the
// vertical index, Col the horizontal one.
//
// Row runs along the Y value axis and Col along the X value axis.
type Pixel struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

// NewPixel creates a new Pixel.
func NewPixel(row, col int) Pixel {
	return Pixel{Row: row, Col: col}
}

// Distance returns the Euclidean distance to another pixel.
func (p Pixel) Distance(other Pixel) float64 {
	dr := float64(p.Row - other.Row)
	dc := float64(p.Col - other.Col)
	return math.Sqrt(dr*dr + dc*dc)
}

// Offset returns the pixel moved by (dRow, dCol) without wrapping.
func (p Pixel) Offset(dRow, dCol int) Pixel {
	return Pixel{Row: p.Row + dRow, Col: p.Col + dCol}
}

// Wrap folds the pixel onto a rows x cols torus.
// A zero dimension leaves that coordinate unchanged.
func (p Pixel) Wrap(rows, cols int) Pixel {
	return Pixel{Row: Mod(p.Row, rows), Col: Mod(p.Col, cols)}
}

// In reports whether the pixel lies inside a rows x cols image.
func (p Pixel) In(rows, cols int) bool {
	return p.Row >= 0 && p.Row < rows && p.Col >= 0 && p.Col < cols
}

// Mod returns a modulo n in [0, n). It returns a unchanged when n <= 0.
func Mod(a, n int) int {
	if n <= 0 {
		return a
	}
	m := a % n
	if m < 0 {
		m += n
	}
	return m
}
