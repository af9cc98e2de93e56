package project

import (
	"os"
	"path/filepath"
	"testing"

	"data-digitizer/internal/axis"
	"data-digitizer/internal/calibrate"
	"data-digitizer/internal/points"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSaveLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "session"+Extension)

	f := New()
	f.SetImage(path, filepath.Join(dir, "img", "plot.png"))
	f.Rows, f.Cols = 100, 100
	f.XBounds = calibrate.Bounds{Min: 1, Max: 1000}
	f.XScale = axis.Log
	f.Points = []points.Point{
		{Kind: points.XMin, Row: 10, Col: 0},
		{Kind: points.Data, Row: 45, Col: 45, Selected: true},
	}
	require.NoError(t, f.Save(path))

	got, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join("img", "plot.png"), got.ImagePath)
	assert.Equal(t, filepath.Join(dir, "img", "plot.png"), got.GetImagePath(path))
	assert.Equal(t, axis.Log, got.XScale)
	assert.Equal(t, axis.Linear, got.YScale)
	require.Len(t, got.Points, 2)
	assert.Equal(t, points.XMin, got.Points[0].Kind)
	assert.True(t, got.Points[1].Selected)

	s := got.Store()
	assert.Equal(t, 2, s.Len())
	assert.Equal(t, 1, s.SelectedCount())
}

func TestLoadRejectsFutureVersion(t *testing.T) {
	path := filepath.Join(t.TempDir(), "future"+Extension)
	require.NoError(t, os.WriteFile(path, []byte(`{"version": 99}`), 0644))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestLoadRejectsBadKind(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad"+Extension)
	require.NoError(t, os.WriteFile(path, []byte(`{"version":1,"points":[{"kind":"zmax"}]}`), 0644))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestAxesRequireLimits(t *testing.T) {
	f := New()
	f.Points = []points.Point{{Kind: points.Data}}
	_, err := f.Axes(f.Store())
	assert.ErrorIs(t, err, calibrate.ErrMissingLimits)
}
