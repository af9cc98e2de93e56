package image

import (
	"image"
	"image/color"

	"data-digitizer/internal/points"
	"data-digitizer/pkg/colorutil"
)

// DefaultMarkerFraction is the marker arm length as a share of each image
// dimension.
const DefaultMarkerFraction = 0.01

// MarkerColor returns the overlay color of a point kind.
func MarkerColor(k points.Kind) color.NRGBA {
	switch {
	case k.IsXLimit():
		return colorutil.Blue
	case k.IsLimit():
		return colorutil.Green
	default:
		return colorutil.Red
	}
}

// RenderMarkers draws a cross for every point onto a transparent
// rows x cols image. Selected points get arms twice as long.
func RenderMarkers(rows, cols int, pts []points.Point, fraction float64) *image.NRGBA {
	out := image.NewNRGBA(image.Rect(0, 0, cols, rows))
	if fraction <= 0 {
		fraction = DefaultMarkerFraction
	}
	armRows := int(float64(rows) * fraction)
	armCols := int(float64(cols) * fraction)

	for _, p := range pts {
		dr, dc := armRows, armCols
		if p.Selected {
			dr, dc = 2*dr, 2*dc
		}
		col := MarkerColor(p.Kind)

		// vertical arm
		if p.Col >= 0 && p.Col < cols {
			for r := max(p.Row-dr, 0); r <= min(p.Row+dr, rows-1); r++ {
				out.SetNRGBA(p.Col, r, col)
			}
		}
		// horizontal arm
		if p.Row >= 0 && p.Row < rows {
			for c := max(p.Col-dc, 0); c <= min(p.Col+dc, cols-1); c++ {
				out.SetNRGBA(c, p.Row, col)
			}
		}
	}
	return out
}
