package image

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"log"
	"os"

	"data-digitizer/internal/points"
)

// Annotate flattens the markers of pts onto a copy of the layer image.
func Annotate(layer *Layer, pts []points.Point, fraction float64) *image.RGBA {
	rows, cols := layer.Rows(), layer.Cols()
	result := image.NewRGBA(image.Rect(0, 0, cols, rows))

	// Opaque background for transparent plots
	draw.Draw(result, result.Bounds(), &image.Uniform{color.White}, image.Point{}, draw.Src)
	draw.Draw(result, result.Bounds(), layer.Image, layer.Image.Bounds().Min, draw.Over)

	markers := RenderMarkers(rows, cols, pts, fraction)
	draw.Draw(result, result.Bounds(), markers, image.Point{}, draw.Over)
	return result
}

// SaveAnnotated writes the annotated layer to path as PNG.
func SaveAnnotated(path string, layer *Layer, pts []points.Point, fraction float64) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := png.Encode(f, Annotate(layer, pts, fraction)); err != nil {
		f.Close()
		return fmt.Errorf("failed to encode %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return err
	}
	log.Printf("Saved annotated image %s", path)
	return nil
}
