package canvas

import (
	"image/color"
	"strings"

	ddimage "data-digitizer/internal/image"
	"data-digitizer/internal/points"
)

// Label is text drawn next to a point, anchored at an image pixel.
type Label struct {
	Text     string
	Row, Col int
	Color    color.NRGBA
}

// LimitLabels names the limit points ("XMIN", "YMAX", ...). Each label sits
// just past the end of its marker's arms.
func LimitLabels(pts []points.Point, rows, cols int, fraction float64) []Label {
	dr := int(float64(rows)*fraction) + 2
	dc := int(float64(cols)*fraction) + 2

	var out []Label
	for _, p := range pts {
		if !p.Kind.IsLimit() {
			continue
		}
		out = append(out, Label{
			Text:  strings.ToUpper(p.Kind.String()),
			Row:   p.Row + dr,
			Col:   p.Col + dc,
			Color: ddimage.MarkerColor(p.Kind),
		})
	}
	return out
}
