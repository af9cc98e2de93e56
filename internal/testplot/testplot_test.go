package testplot

import (
	"path/filepath"
	"testing"

	"data-digitizer/internal/axis"
	pimage "data-digitizer/internal/image"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseKind(t *testing.T) {
	for _, k := range Kinds {
		got, err := ParseKind(k.String())
		require.NoError(t, err)
		assert.Equal(t, k, got)
	}
	_, err := ParseKind("semilog")
	assert.Error(t, err)
}

func TestNewSpecFollowsScales(t *testing.T) {
	s := NewSpec(LogLog, 4)
	require.Len(t, s.Points, 4)
	assert.InDelta(t, 1.0, s.Points[0].X, 1e-12)
	assert.InDelta(t, 10.0, s.Points[1].X, 1e-9)
	assert.InDelta(t, 1000.0, s.Points[3].X, 1e-9)
	assert.InDelta(t, 0.1, s.Points[0].Y, 1e-12)
	assert.InDelta(t, 1000.0, s.Points[3].Y, 1e-9)

	s = NewSpec(Linear, 3)
	assert.InDelta(t, 5.0, s.Points[1].X, 1e-12)
	assert.InDelta(t, 50.0, s.Points[1].Y, 1e-12)

	x, y := YLog.Scales()
	assert.Equal(t, axis.Linear, x)
	assert.Equal(t, axis.Log, y)
}

func TestGenerateWritesLoadableImage(t *testing.T) {
	for _, k := range Kinds {
		t.Run(k.String(), func(t *testing.T) {
			path := filepath.Join(t.TempDir(), k.String()+".png")
			_, err := Generate(k, path)
			require.NoError(t, err)

			layer, err := pimage.Load(path)
			require.NoError(t, err)
			assert.Greater(t, layer.Rows(), 0)
			assert.Greater(t, layer.Cols(), layer.Rows())
		})
	}
}
