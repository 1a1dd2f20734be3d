package geometry

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRectOutlineParameterization(t *testing.T) {
	o, err := NewRectOutline(NewRect(0, 0, 10, 6))
	require.NoError(t, err)

	assert.InDelta(t, 32.0, o.Perimeter(), 1e-9)

	// Origin is the top-left corner, walking clockwise.
	assert.InDelta(t, 0.0, o.ParamOf(NewPoint2D(0, 0)), 1e-9)
	assert.InDelta(t, 5.0, o.ParamOf(NewPoint2D(5, 0)), 1e-9)
	assert.InDelta(t, 10.0, o.ParamOf(NewPoint2D(10, 0)), 1e-9)
	assert.InDelta(t, 13.0, o.ParamOf(NewPoint2D(10, 3)), 1e-9)
	assert.InDelta(t, 16.0, o.ParamOf(NewPoint2D(10, 6)), 1e-9)
	assert.InDelta(t, 21.0, o.ParamOf(NewPoint2D(5, 6)), 1e-9)
	assert.InDelta(t, 26.0, o.ParamOf(NewPoint2D(0, 6)), 1e-9)
	assert.InDelta(t, 29.0, o.ParamOf(NewPoint2D(0, 3)), 1e-9)
}

func TestPolygonOutlineParameterization(t *testing.T) {
	square := []Point2D{{0, 0}, {10, 0}, {10, 10}, {0, 10}}
	o, err := NewPolygonOutline(square)
	require.NoError(t, err)

	assert.InDelta(t, 40.0, o.Perimeter(), 1e-9)
	assert.InDelta(t, 5.0, o.ParamOf(NewPoint2D(5, 0)), 1e-9)
	assert.InDelta(t, 15.0, o.ParamOf(NewPoint2D(10, 5)), 1e-9)
	assert.InDelta(t, 25.0, o.ParamOf(NewPoint2D(5, 10)), 1e-9)
	assert.InDelta(t, 35.0, o.ParamOf(NewPoint2D(0, 5)), 1e-9)
}

func TestPolygonOutlineOffBoundaryProjection(t *testing.T) {
	square := []Point2D{{0, 0}, {10, 0}, {10, 10}, {0, 10}}
	o, err := NewPolygonOutline(square)
	require.NoError(t, err)

	// A point just off the top edge projects onto it.
	assert.InDelta(t, 3.0, o.ParamOf(NewPoint2D(3, 0.4)), 1e-9)
	// A point just off the left edge projects onto it.
	assert.InDelta(t, 33.0, o.ParamOf(NewPoint2D(-0.2, 7)), 1e-9)
}

func TestOutlineParamStable(t *testing.T) {
	o, err := NewPolygonOutline([]Point2D{{0, 0}, {7, 1}, {9, 8}, {2, 11}})
	require.NoError(t, err)

	p := NewPoint2D(8, 4.5)
	first := o.ParamOf(p)
	second := o.ParamOf(p)
	assert.Equal(t, first, second, "perimeter-T must be bit-identical across calls")
}

func TestOutlineDegenerateInput(t *testing.T) {
	_, err := NewPolygonOutline([]Point2D{{0, 0}, {1, 0}})
	assert.Error(t, err)

	// Duplicate vertices collapse; only two effective vertices remain.
	_, err = NewPolygonOutline([]Point2D{{0, 0}, {0, 0}, {1, 0}, {1, 0}})
	assert.Error(t, err)

	// A trailing closing vertex is tolerated.
	o, err := NewPolygonOutline([]Point2D{{0, 0}, {4, 0}, {4, 4}, {0, 4}, {0, 0}})
	require.NoError(t, err)
	assert.InDelta(t, 16.0, o.Perimeter(), 1e-9)
	assert.Len(t, o.Vertices(), 4)
}
