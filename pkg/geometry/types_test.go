package geometry

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMod(t *testing.T) {
	assert.Equal(t, 0, Mod(100, 100))
	assert.Equal(t, 99, Mod(-1, 100))
	assert.Equal(t, 3, Mod(-97, 100))
	assert.Equal(t, -4, Mod(-4, 0))
}

func TestPixelWrap(t *testing.T) {
	assert.Equal(t, NewPixel(0, 0), NewPixel(100, 50).Wrap(100, 50))
	assert.Equal(t, NewPixel(99, 49), NewPixel(-1, -1).Wrap(100, 50))
	assert.True(t, NewPixel(99, 49).In(100, 50))
	assert.False(t, NewPixel(100, 0).In(100, 50))
}

func TestPixelDistance(t *testing.T) {
	assert.InDelta(t, 5.0, NewPixel(0, 0).Distance(NewPixel(3, 4)), 1e-12)
}
