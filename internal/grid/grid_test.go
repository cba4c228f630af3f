package grid

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/seat-layout-editor/internal/model"
)

func TestCellAtDefaultViewport(t *testing.T) {
	v := NewViewport()

	c, ok := v.CellAt(20, 20)
	require.True(t, ok)
	assert.Equal(t, Cell{Row: 0, Column: 0}, c)

	c, ok = v.CellAt(20+40*3+5, 20+40*2+39)
	require.True(t, ok)
	assert.Equal(t, Cell{Row: 2, Column: 3}, c)
}

func TestCellAtOutsideGrid(t *testing.T) {
	v := NewViewport()
	_, ok := v.CellAt(10, 100)
	assert.False(t, ok)
	_, ok = v.CellAt(100, 19)
	assert.False(t, ok)
}

func TestCellAtBeyondLastIndex(t *testing.T) {
	v := NewViewport()
	edge := 20 + 40*float64(model.MaxGridIndex) + 1
	c, ok := v.CellAt(edge, edge)
	require.True(t, ok)
	assert.Equal(t, Cell{Row: model.MaxGridIndex, Column: model.MaxGridIndex}, c)

	_, ok = v.CellAt(edge+40, 20)
	assert.False(t, ok)
	_, ok = v.CellAt(20, 1e300)
	assert.False(t, ok)
	_, ok = v.CellAt(math.Inf(1), 20)
	assert.False(t, ok)

	assert.True(t, Cell{Row: model.MaxGridIndex, Column: 0}.Valid())
	assert.False(t, Cell{Row: model.MaxGridIndex + 1, Column: 0}.Valid())
	assert.False(t, Cell{Row: 0, Column: math.MaxInt}.Valid())
}

func TestCellAtWithZoomPanScroll(t *testing.T) {
	v := NewViewport()
	v.OriginX, v.OriginY = 100, 50
	v.ScrollX = 30
	v.Zoom = 2
	v.PanX = 40

	// ((px-100+30)/2 - 20 + 40) / 40 = 1  =>  px = 150
	c, ok := v.CellAt(150, 50+2*20)
	require.True(t, ok)
	assert.Equal(t, Cell{Row: 0, Column: 1}, c)
}

func TestCellOriginInverse(t *testing.T) {
	v := NewViewport()
	v.OriginX, v.OriginY = 12, 7
	v.ScrollX, v.ScrollY = 5, 9
	v.PanX, v.PanY = -15, 33
	v.SetZoom(1.5)

	for _, want := range []Cell{{0, 0}, {3, 7}, {10, 2}} {
		x, y := v.CellOrigin(want)
		got, ok := v.CellAt(x+1, y+1)
		require.True(t, ok)
		assert.Equal(t, want, got)
	}
}

func TestZoomClamp(t *testing.T) {
	v := NewViewport()
	for i := 0; i < 50; i++ {
		v.ZoomIn()
	}
	assert.Equal(t, DefaultMaxZoom, v.Zoom)
	for i := 0; i < 50; i++ {
		v.ZoomOut()
	}
	assert.Equal(t, DefaultMinZoom, v.Zoom)
	assert.Equal(t, 0.5, ClampZoom(0.1, 0.5, 2))
	assert.Equal(t, 2.0, ClampZoom(9, 0.5, 2))
	assert.Equal(t, 1.2, ClampZoom(1.2, 0.5, 2))
}

func TestNormalize(t *testing.T) {
	a, b := Normalize(Cell{Row: 3, Column: 1}, Cell{Row: 1, Column: 4})
	assert.Equal(t, Cell{Row: 1, Column: 1}, a)
	assert.Equal(t, Cell{Row: 3, Column: 4}, b)
}

func TestCanvasSize(t *testing.T) {
	w, h := NewViewport().CanvasSize(2, 3)
	assert.Equal(t, 3*40.0+40, w)
	assert.Equal(t, 2*40.0+40, h)
}
