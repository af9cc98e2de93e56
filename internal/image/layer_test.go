package image

import (
	"bytes"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"data-digitizer/internal/points"
	"data-digitizer/pkg/colorutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/bmp"
)

func writePNG(t *testing.T, rows, cols int) string {
	t.Helper()
	img := image.NewGray(image.Rect(0, 0, cols, rows))
	img.Pix[0] = 200
	path := filepath.Join(t.TempDir(), "plot.png")
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()
	require.NoError(t, png.Encode(f, img))
	return path
}

func TestLoadPNG(t *testing.T) {
	path := writePNG(t, 30, 40)
	layer, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "png", layer.Format)
	assert.Equal(t, 30, layer.Rows())
	assert.Equal(t, 40, layer.Cols())
	assert.Equal(t, path, layer.Path)

	r, _, _, _ := layer.Image.At(0, 0).RGBA()
	assert.Equal(t, uint32(200)*0x101, r)
}

func TestDecodeBMP(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, bmp.Encode(&buf, image.NewRGBA(image.Rect(0, 0, 8, 4))))

	layer, err := Decode(&buf)
	require.NoError(t, err)
	assert.Equal(t, "bmp", layer.Format)
	assert.Equal(t, 4, layer.Rows())
	assert.Equal(t, 8, layer.Cols())
}

func TestDecodeGarbage(t *testing.T) {
	_, err := Decode(bytes.NewReader([]byte("not an image")))
	assert.ErrorIs(t, err, ErrInvalidImage)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.png"))
	assert.Error(t, err)
}

func TestIsSupportedFormat(t *testing.T) {
	assert.True(t, IsSupportedFormat("scan.TIF"))
	assert.True(t, IsSupportedFormat("/tmp/plot.png"))
	assert.False(t, IsSupportedFormat("data.txt"))
}

func TestRenderMarkers(t *testing.T) {
	pts := []points.Point{
		{Kind: points.Data, Row: 50, Col: 50},
		{Kind: points.XMin, Row: 10, Col: 0},
		{Kind: points.YMax, Row: 90, Col: 10, Selected: true},
	}
	out := RenderMarkers(100, 100, pts, 0.05)

	assert.Equal(t, colorutil.Red, out.NRGBAAt(50, 45))
	assert.Equal(t, colorutil.Red, out.NRGBAAt(55, 50))
	assert.Equal(t, colorutil.Transparent, out.NRGBAAt(56, 50))

	assert.Equal(t, colorutil.Blue, out.NRGBAAt(0, 10))
	assert.Equal(t, colorutil.Blue, out.NRGBAAt(5, 10))

	// selected: arms doubled
	assert.Equal(t, colorutil.Green, out.NRGBAAt(20, 90))
	assert.Equal(t, colorutil.Green, out.NRGBAAt(10, 80))
	assert.Equal(t, colorutil.Transparent, out.NRGBAAt(21, 90))
}

func TestAnnotate(t *testing.T) {
	layer := NewLayer()
	layer.Image = image.NewGray(image.Rect(0, 0, 20, 10))
	pts := []points.Point{{Kind: points.YMin, Row: 5, Col: 10}}

	out := Annotate(layer, pts, 0.1)
	assert.Equal(t, 20, out.Bounds().Dx())
	assert.Equal(t, 10, out.Bounds().Dy())
	r, g, b, _ := out.At(10, 5).RGBA()
	assert.Equal(t, [3]uint32{0, 0xffff, 0}, [3]uint32{r, g, b})
	r, g, b, _ = out.At(0, 0).RGBA()
	assert.Equal(t, [3]uint32{0, 0, 0}, [3]uint32{r, g, b})

	path := filepath.Join(t.TempDir(), "annotated.png")
	require.NoError(t, SaveAnnotated(path, layer, pts, 0.1))
	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 10, loaded.Rows())
}
