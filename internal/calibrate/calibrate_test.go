package calibrate

import (
	"math"
	"testing"

	"data-digitizer/internal/axis"
	"data-digitizer/internal/points"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// calibratedStore lays out the limits of a 100x100 image: X limits on row 10
// at columns 0 and 90, Y limits on column 10 at rows 0 and 90.
func calibratedStore(t *testing.T) *points.Store {
	t.Helper()
	s := points.NewStore()
	s.AddData(10, 0)
	require.NoError(t, s.PromoteToLimit(points.XMin))
	s.AddData(10, 90)
	require.NoError(t, s.PromoteToLimit(points.XMax))
	s.AddData(0, 10)
	require.NoError(t, s.PromoteToLimit(points.YMin))
	s.AddData(90, 10)
	require.NoError(t, s.PromoteToLimit(points.YMax))
	return s
}

func TestEndToEndLinear(t *testing.T) {
	s := calibratedStore(t)
	s.AddData(45, 45)

	axes, err := BuildAxes(s, Bounds{0, 10}, Bounds{0, 100}, axis.Linear, axis.Linear)
	require.NoError(t, err)
	Measure(s, axes)

	p := s.At(s.Len() - 1)
	assert.InDelta(t, 5.0, p.X, 1e-9)
	assert.InDelta(t, 50.0, p.Y, 1e-9)

	xMax, _ := s.Limit(points.XMax)
	assert.InDelta(t, 10.0, xMax.X, 1e-9)
	yMax, _ := s.Limit(points.YMax)
	assert.InDelta(t, 100.0, yMax.Y, 1e-9)
}

func TestAxesUseColumnForXAndRowForY(t *testing.T) {
	s := calibratedStore(t)
	axes, err := BuildAxes(s, Bounds{0, 10}, Bounds{0, 100}, axis.Linear, axis.Linear)
	require.NoError(t, err)

	pMin, pMax := axes.X.PixelRange()
	assert.Equal(t, 0.0, pMin)
	assert.Equal(t, 90.0, pMax)

	pMin, pMax = axes.Y.PixelRange()
	assert.Equal(t, 0.0, pMin)
	assert.Equal(t, 90.0, pMax)
}

func TestLogLog(t *testing.T) {
	s := calibratedStore(t)
	s.AddData(60, 30)

	axes, err := BuildAxes(s, Bounds{1, 1000}, Bounds{0.1, 100}, axis.Log, axis.Log)
	require.NoError(t, err)
	Measure(s, axes)

	p := s.At(s.Len() - 1)
	assert.InDelta(t, 10.0, p.X, 1e-9)
	assert.InDelta(t, 10.0, p.Y, 1e-9)
}

func TestMissingLimits(t *testing.T) {
	s := points.NewStore()
	s.AddData(1, 1)
	require.NoError(t, s.PromoteToLimit(points.XMin))

	_, err := BuildAxes(s, Bounds{0, 1}, Bounds{0, 1}, axis.Linear, axis.Linear)
	assert.ErrorIs(t, err, ErrMissingLimits)
}

func TestBuildAxesPropagatesRangeError(t *testing.T) {
	s := calibratedStore(t)
	_, err := BuildAxes(s, Bounds{0, 10}, Bounds{0, 100}, axis.Linear, axis.Log)
	assert.ErrorIs(t, err, axis.ErrInvalidRange)
}

func TestProjectTestPointInvertsMeasure(t *testing.T) {
	s := calibratedStore(t)
	axes, err := BuildAxes(s, Bounds{1, 1000}, Bounds{0, 100}, axis.Log, axis.Linear)
	require.NoError(t, err)

	row, col := ProjectTestPoint(axes, 100, 25)
	assert.InDelta(t, 22.5, row, 1e-9)
	assert.InDelta(t, 60.0, col, 1e-9)

	s.AddData(int(math.Round(row)), int(math.Round(col)))
	Measure(s, axes)
	p := s.At(s.Len() - 1)
	assert.InDelta(t, 100.0, p.X, 1e-9)
	assert.InDelta(t, 23.0*100.0/90.0, p.Y, 1e-9)
}

func TestDegenerateLimitsYieldNaN(t *testing.T) {
	s := points.NewStore()
	for _, k := range points.LimitKinds {
		s.AddData(5, 5)
		require.NoError(t, s.PromoteToLimit(k))
	}
	s.AddData(5, 5)

	axes, err := BuildAxes(s, Bounds{0, 1}, Bounds{0, 1}, axis.Linear, axis.Linear)
	require.NoError(t, err)
	Measure(s, axes)

	p := s.At(s.Len() - 1)
	assert.True(t, math.IsNaN(p.X))
	assert.True(t, math.IsNaN(p.Y))
}
