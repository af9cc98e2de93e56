package points

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func kinds(s *Store) []Kind {
	out := make([]Kind, 0, s.Len())
	for _, p := range s.Points() {
		out = append(out, p.Kind)
	}
	return out
}

func countKind(s *Store, k Kind) int {
	n := 0
	for _, p := range s.Points() {
		if p.Kind == k {
			n++
		}
	}
	return n
}

func TestAddAndRemoveLastData(t *testing.T) {
	s := NewStore()
	s.AddData(1, 1)
	s.AddData(2, 2)
	s.AddData(3, 3)
	require.NoError(t, s.PromoteToLimit(XMin)) // (3,3) becomes XMin

	s.RemoveLastData()
	require.Equal(t, 2, s.Len())
	assert.Equal(t, []Kind{Data, XMin}, kinds(s))
	assert.Equal(t, 3, s.At(1).Row)

	s.RemoveLastData()
	s.RemoveLastData()
	assert.Equal(t, []Kind{XMin}, kinds(s))
}

func TestPromoteKeepsLimitsUnique(t *testing.T) {
	s := NewStore()
	s.AddData(10, 10)
	require.NoError(t, s.PromoteToLimit(XMin))
	s.AddData(20, 20)
	require.NoError(t, s.PromoteToLimit(XMin))

	assert.Equal(t, 1, countKind(s, XMin))
	assert.Equal(t, Data, s.At(0).Kind)
	assert.Equal(t, XMin, s.At(1).Kind)
}

func TestPromotePrefersMostRecentSelection(t *testing.T) {
	s := NewStore()
	s.AddData(0, 0)
	s.AddData(0, 50)
	s.AddData(0, 99)

	s.SelectNearest(0, 99, 1, false)
	s.SelectNearest(0, 0, 1, true)
	require.Equal(t, 2, s.SelectedCount())

	require.NoError(t, s.PromoteToLimit(YMax))
	assert.Equal(t, YMax, s.At(0).Kind)
	assert.False(t, s.At(0).Selected)
	assert.True(t, s.At(2).Selected)
	assert.Equal(t, Data, s.At(2).Kind)
}

func TestPromoteEmptyStore(t *testing.T) {
	s := NewStore()
	assert.ErrorIs(t, s.PromoteToLimit(XMax), ErrInsufficientPoints)
	assert.Equal(t, 0, s.Len())
}

func TestPromoteWithoutDataOrSelectionIsNoop(t *testing.T) {
	s := NewStore()
	s.AddData(5, 5)
	require.NoError(t, s.PromoteToLimit(XMin))
	require.NoError(t, s.PromoteToLimit(YMin))
	assert.Equal(t, []Kind{XMin}, kinds(s))
}

func TestPromoteLastFour(t *testing.T) {
	s := NewStore()
	s.AddData(10, 0)
	s.AddData(10, 90)
	s.AddData(0, 10)
	assert.ErrorIs(t, s.PromoteLastFour(), ErrInsufficientPoints)
	assert.Equal(t, []Kind{Data, Data, Data}, kinds(s))

	s.AddData(90, 10)
	require.NoError(t, s.PromoteLastFour())
	assert.Equal(t, []Kind{XMin, XMax, YMin, YMax}, kinds(s))
	assert.True(t, s.HasAllLimits())
}

func TestRemoveVariants(t *testing.T) {
	s := NewStore()
	for i := 0; i < 6; i++ {
		s.AddData(i*10, i*10)
	}
	require.NoError(t, s.PromoteLastFour())
	assert.Equal(t, 2, s.CountData())

	s.RemoveAllData()
	assert.Equal(t, 4, s.Len())
	assert.True(t, s.HasAllLimits())

	s.RemoveLimit(XMax)
	assert.False(t, s.HasAllLimits())
	_, ok := s.Limit(XMax)
	assert.False(t, ok)

	s.AddData(1, 1)
	s.RemoveAllLimits()
	assert.Equal(t, []Kind{Data}, kinds(s))

	s.Clear()
	assert.Equal(t, 0, s.Len())
}

func TestRemoveSelectedIncludesLimits(t *testing.T) {
	s := NewStore()
	s.AddData(0, 0)
	require.NoError(t, s.PromoteToLimit(XMin))
	s.AddData(50, 50)
	s.AddData(99, 99)

	s.SelectNearest(0, 0, 2, false)
	s.SelectNearest(99, 99, 2, true)
	s.RemoveSelected()

	require.Equal(t, 1, s.Len())
	assert.Equal(t, 50, s.At(0).Row)
}

func TestShiftWrapsAround(t *testing.T) {
	s := NewStore()
	s.AddData(0, 99)
	s.SelectNearest(0, 99, 1, false)

	s.ShiftSelected(Right, 1, 100, 100)
	assert.Equal(t, 0, s.At(0).Col)

	s.ShiftSelected(Up, 1, 100, 100)
	assert.Equal(t, 99, s.At(0).Row)

	s.ShiftSelected(Left, 3, 100, 100)
	assert.Equal(t, 97, s.At(0).Col)

	s.ShiftSelected(Down, 0, 100, 100)
	assert.Equal(t, 0, s.At(0).Row)
}

func TestShiftOnlyMovesSelected(t *testing.T) {
	s := NewStore()
	s.AddData(10, 10)
	s.AddData(20, 20)
	s.SelectNearest(20, 20, 1, false)

	s.ShiftSelected(Down, 5, 100, 100)
	assert.Equal(t, 10, s.At(0).Row)
	assert.Equal(t, 25, s.At(1).Row)
}

func TestSelectNearestToggleAndMiss(t *testing.T) {
	s := NewStore()
	s.AddData(10, 10)
	s.AddData(40, 40)

	assert.Equal(t, 0, s.SelectNearest(11, 11, 2, false))
	assert.True(t, s.At(0).Selected)

	// non-additive selection replaces
	assert.Equal(t, 1, s.SelectNearest(40, 41, 2, false))
	assert.False(t, s.At(0).Selected)
	assert.True(t, s.At(1).Selected)

	// additive click on a selected point toggles it off
	assert.Equal(t, 1, s.SelectNearest(40, 40, 2, true))
	assert.False(t, s.At(1).Selected)

	s.SelectNearest(10, 10, 2, true)
	assert.Equal(t, -1, s.SelectNearest(70, 70, 2, true))
	assert.Equal(t, 0, s.SelectedCount())
}

func TestAppendDisplacesLimit(t *testing.T) {
	s := NewStore()
	s.Append(Point{Kind: YMin, Row: 1, Col: 1})
	s.Append(Point{Kind: YMin, Row: 2, Col: 2, Selected: true})
	assert.Equal(t, []Kind{Data, YMin}, kinds(s))
	assert.Equal(t, 1, s.SelectedCount())
}

func TestKindText(t *testing.T) {
	var k Kind
	require.NoError(t, k.UnmarshalText([]byte("YMAX")))
	assert.Equal(t, YMax, k)
	assert.True(t, k.IsLimit())
	assert.False(t, k.IsXLimit())

	_, err := Kind(42).MarshalText()
	assert.Error(t, err)
}
