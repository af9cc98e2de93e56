// Package image provides plot image loading and the marker overlay drawn
// on top of it.
package image

import (
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
)

// ErrInvalidImage is returned for images without two usable dimensions.
var ErrInvalidImage = errors.New("not a valid image")

// Layer is a loaded plot image.
type Layer struct {
	Path    string      // Source file path
	Format  string      // Decoder name (png, jpeg, tiff, ...)
	Image   image.Image // Decoded image data
	Visible bool
	Opacity float64 // 0.0 - 1.0
}

// NewLayer creates a new Layer with default settings.
func NewLayer() *Layer {
	return &Layer{
		Visible: true,
		Opacity: 1.0,
	}
}

// Load loads an image from the specified path and returns a Layer.
func Load(path string) (*Layer, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open image: %w", err)
	}
	defer file.Close()

	layer, err := Decode(file)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	layer.Path = path
	log.Printf("Loaded %s image %s (%d rows x %d cols)", layer.Format, path, layer.Rows(), layer.Cols())
	return layer, nil
}

// Decode reads an image from r.
func Decode(r io.Reader) (*Layer, error) {
	img, format, err := image.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidImage, err)
	}

	b := img.Bounds()
	if b.Dx() < 1 || b.Dy() < 1 {
		return nil, fmt.Errorf("%w (%dx%d)", ErrInvalidImage, b.Dx(), b.Dy())
	}

	layer := NewLayer()
	layer.Format = format
	layer.Image = img
	return layer, nil
}

// Rows returns the image height in pixels.
func (l *Layer) Rows() int {
	if l == nil || l.Image == nil {
		return 0
	}
	return l.Image.Bounds().Dy()
}

// Cols returns the image width in pixels.
func (l *Layer) Cols() int {
	if l == nil || l.Image == nil {
		return 0
	}
	return l.Image.Bounds().Dx()
}

// SupportedFormats returns the list of supported image extensions.
func SupportedFormats() []string {
	return []string{".png", ".jpg", ".jpeg", ".gif", ".tif", ".tiff", ".bmp"}
}

// IsSupportedFormat checks if the given path has a supported image format.
func IsSupportedFormat(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, format := range SupportedFormats() {
		if ext == format {
			return true
		}
	}
	return false
}
