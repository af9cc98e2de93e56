package points

import (
	"math"

	"data-digitizer/pkg/geometry"
)

// DefaultHitFraction is the share of each image dimension used to build the
// hit-test tolerance.
const DefaultHitFraction = 0.01

// Locate returns the index of the point nearest to (row, col) when it lies
// within tolerance. Equal distances resolve to the earliest point.
func Locate(pts []Point, row, col int, tolerance float64) (int, bool) {
	if len(pts) == 0 {
		return -1, false
	}

	cursor := geometry.NewPixel(row, col)
	best := -1
	bestDist := math.Inf(1)
	for i, p := range pts {
		d := cursor.Distance(p.Pixel())
		if d < bestDist {
			best, bestDist = i, d
		}
	}

	if best < 0 || bestDist > tolerance {
		return -1, false
	}
	return best, true
}

// Tolerance derives a hit radius from the image dimensions: the diagonal of
// a box spanning fraction of the rows and fraction of the columns.
func Tolerance(rows, cols int, fraction float64) float64 {
	if fraction <= 0 {
		fraction = DefaultHitFraction
	}
	dr := float64(int(float64(rows) * fraction))
	dc := float64(int(float64(cols) * fraction))
	return math.Sqrt(dr*dr + dc*dc)
}
