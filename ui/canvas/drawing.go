package canvas

import (
	"image"
	"image/color"
)

// digitPatterns contains 3x5 pixel patterns for digits 0-9.
// Each digit is represented as 5 rows of 3 bits.
var digitPatterns = [10][5]uint8{
	{0b111, 0b101, 0b101, 0b101, 0b111}, // 0
	{0b010, 0b110, 0b010, 0b010, 0b111}, // 1
	{0b111, 0b001, 0b111, 0b100, 0b111}, // 2
	{0b111, 0b001, 0b111, 0b001, 0b111}, // 3
	{0b101, 0b101, 0b111, 0b001, 0b001}, // 4
	{0b111, 0b100, 0b111, 0b001, 0b111}, // 5
	{0b111, 0b100, 0b111, 0b101, 0b111}, // 6
	{0b111, 0b001, 0b001, 0b001, 0b001}, // 7
	{0b111, 0b101, 0b111, 0b101, 0b111}, // 8
	{0b111, 0b101, 0b111, 0b001, 0b111}, // 9
}

// letterPatterns covers the letters used by limit labels.
var letterPatterns = map[rune][5]uint8{
	'A': {0b010, 0b101, 0b111, 0b101, 0b101},
	'I': {0b111, 0b010, 0b010, 0b010, 0b111},
	'M': {0b101, 0b111, 0b101, 0b101, 0b101},
	'N': {0b101, 0b111, 0b111, 0b101, 0b101},
	'X': {0b101, 0b101, 0b010, 0b101, 0b101},
	'Y': {0b101, 0b101, 0b010, 0b010, 0b010},
	' ': {0b000, 0b000, 0b000, 0b000, 0b000},
}

// getCharPattern returns the 3x5 pixel pattern for a character.
// Returns a zero pattern for unsupported characters.
func getCharPattern(ch rune) [5]uint8 {
	if ch >= '0' && ch <= '9' {
		return digitPatterns[ch-'0']
	}
	if ch >= 'a' && ch <= 'z' {
		ch = ch - 'a' + 'A'
	}
	if pattern, ok := letterPatterns[ch]; ok {
		return pattern
	}
	return [5]uint8{}
}

// compositeLayer draws the image and its markers onto the output at the
// current zoom. Markers replace image pixels where they are opaque.
func (ic *ImageCanvas) compositeLayer(output *image.RGBA, w, h int) {
	src := ic.layer.Image
	srcBounds := src.Bounds()
	opacity := ic.layer.Opacity

	for y := 0; y < h; y++ {
		row := int(float64(y) / ic.zoom)
		if row >= srcBounds.Dy() {
			break
		}
		for x := 0; x < w; x++ {
			col := int(float64(x) / ic.zoom)
			if col >= srcBounds.Dx() {
				break
			}

			if ic.markers != nil {
				if m := ic.markers.NRGBAAt(col, row); m.A != 0 {
					output.Set(x, y, m)
					continue
				}
			}

			srcColor := src.At(col+srcBounds.Min.X, row+srcBounds.Min.Y)
			sr, sg, sb, sa := srcColor.RGBA()
			effectiveAlpha := float64(sa) / 0xffff * opacity

			if effectiveAlpha >= 0.999 {
				output.Set(x, y, srcColor)
			} else if effectiveAlpha > 0.001 {
				// blend with the black background
				output.Set(x, y, color.RGBA{
					R: uint8(float64(sr>>8) * effectiveAlpha),
					G: uint8(float64(sg>>8) * effectiveAlpha),
					B: uint8(float64(sb>>8) * effectiveAlpha),
					A: 255,
				})
			}
		}
	}
}

// drawLabel draws text with its top-left corner at (x, y), scaled with zoom.
func (ic *ImageCanvas) drawLabel(output *image.RGBA, label string, x, y int, col color.Color) {
	scale := int(ic.zoom * 2)
	if scale < 1 {
		scale = 1
	}
	if scale > 6 {
		scale = 6
	}

	charWidth := 3 * scale
	spacing := scale
	bounds := output.Bounds()

	for i, ch := range []rune(label) {
		pattern := getCharPattern(ch)
		charX := x + i*(charWidth+spacing)

		for row := 0; row < 5; row++ {
			for c := 0; c < 3; c++ {
				if (pattern[row] & (1 << (2 - c))) == 0 {
					continue
				}
				// scaled pixel block
				for dy := 0; dy < scale; dy++ {
					for dx := 0; dx < scale; dx++ {
						px := charX + c*scale + dx
						py := y + row*scale + dy
						if px >= bounds.Min.X && px < bounds.Max.X &&
							py >= bounds.Min.Y && py < bounds.Max.Y {
							output.Set(px, py, col)
						}
					}
				}
			}
		}
	}
}
