// Package grid maps viewport pixels to discrete seat cells and back.  All
// functions are pure; the Viewport value carries the pan, zoom and scroll
// state owned by an editing session.
package grid

import (
	"math"

	"github.com/iliyamo/seat-layout-editor/internal/model"
)

const (
	DefaultCellSize = 40.0
	DefaultPadding  = 20.0
	DefaultMinZoom  = 0.5
	DefaultMaxZoom  = 2.0
	DefaultZoomStep = 0.1
)

// Cell is a (row, column) position on the seat grid.
type Cell struct {
	Row    int `json:"row"`
	Column int `json:"column"`
}

// Valid reports whether the cell lies on the grid (both axes within
// [0, model.MaxGridIndex]).
func (c Cell) Valid() bool { return model.OnGrid(c.Row, c.Column) }

// Offset returns the row/column delta that moves c onto to.
func (c Cell) Offset(to Cell) (rows, columns int) {
	return to.Row - c.Row, to.Column - c.Column
}

// Normalize orders two corners so that the first is the top-left and the
// second the bottom-right of the closed rectangle they span.
func Normalize(a, b Cell) (Cell, Cell) {
	return Cell{Row: min(a.Row, b.Row), Column: min(a.Column, b.Column)},
		Cell{Row: max(a.Row, b.Row), Column: max(a.Column, b.Column)}
}

// Viewport describes how the grid is currently displayed.
//
// Fields:
//
//	OriginX/OriginY – position of the drawing surface inside the viewport.
//	ScrollX/ScrollY – scroll offset of the surface container.
//	PanX/PanY       – pan offset in grid pixels (unconstrained).
//	Zoom            – scale factor, clamped to [MinZoom, MaxZoom].
//	CellSize        – edge length of one cell in grid pixels.
//	Padding         – margin around the grid in grid pixels.
type Viewport struct {
	OriginX  float64 `json:"origin_x"`
	OriginY  float64 `json:"origin_y"`
	ScrollX  float64 `json:"scroll_x"`
	ScrollY  float64 `json:"scroll_y"`
	PanX     float64 `json:"pan_x"`
	PanY     float64 `json:"pan_y"`
	Zoom     float64 `json:"zoom"`
	CellSize float64 `json:"cell_size"`
	Padding  float64 `json:"padding"`
	MinZoom  float64 `json:"min_zoom"`
	MaxZoom  float64 `json:"max_zoom"`
	ZoomStep float64 `json:"zoom_step"`
}

// NewViewport returns a viewport at zoom 1 with the default geometry.
func NewViewport() Viewport {
	return Viewport{
		Zoom:     1,
		CellSize: DefaultCellSize,
		Padding:  DefaultPadding,
		MinZoom:  DefaultMinZoom,
		MaxZoom:  DefaultMaxZoom,
		ZoomStep: DefaultZoomStep,
	}
}

func (v Viewport) zoom() float64 {
	if v.Zoom <= 0 {
		return 1
	}
	return v.Zoom
}

func (v Viewport) cellSize() float64 {
	if v.CellSize <= 0 {
		return DefaultCellSize
	}
	return v.CellSize
}

// CellAt converts a pointer position in viewport pixels to the grid cell
// beneath it.  The boolean is false when the pointer is outside the grid
// (negative row or column, or beyond model.MaxGridIndex); callers must then
// suppress the action.
func (v Viewport) CellAt(px, py float64) (Cell, bool) {
	z, size := v.zoom(), v.cellSize()
	col := math.Floor(((px-v.OriginX+v.ScrollX)/z - v.Padding + v.PanX) / size)
	row := math.Floor(((py-v.OriginY+v.ScrollY)/z - v.Padding + v.PanY) / size)
	// float to int is undefined out of range
	if !inRange(row) || !inRange(col) {
		return Cell{Row: -1, Column: -1}, false
	}
	c := Cell{Row: int(row), Column: int(col)}
	return c, c.Valid()
}

func inRange(f float64) bool { return f >= 0 && f <= model.MaxGridIndex }

// CellOrigin is the inverse of CellAt: the viewport pixel position of the
// top-left corner of c.
func (v Viewport) CellOrigin(c Cell) (x, y float64) {
	z, size := v.zoom(), v.cellSize()
	x = (float64(c.Column)*size-v.PanX+v.Padding)*z + v.OriginX - v.ScrollX
	y = (float64(c.Row)*size-v.PanY+v.Padding)*z + v.OriginY - v.ScrollY
	return x, y
}

// CanvasSize returns the unscaled pixel size needed to draw a grid of the
// given dimensions, padding included on both sides.
func (v Viewport) CanvasSize(rows, columns int) (width, height float64) {
	size := v.cellSize()
	return float64(columns)*size + 2*v.Padding, float64(rows)*size + 2*v.Padding
}

// ClampZoom limits z to [lo, hi].
func ClampZoom(z, lo, hi float64) float64 {
	if lo <= 0 {
		lo = DefaultMinZoom
	}
	if hi < lo {
		hi = lo
	}
	return math.Max(lo, math.Min(hi, z))
}

// SetZoom sets the zoom factor, clamped to the viewport's range.
func (v *Viewport) SetZoom(z float64) {
	v.Zoom = ClampZoom(z, v.MinZoom, v.MaxZoom)
}

// ZoomIn increases the zoom by one step.
func (v *Viewport) ZoomIn() { v.SetZoom(v.zoom() + v.step()) }

// ZoomOut decreases the zoom by one step.
func (v *Viewport) ZoomOut() { v.SetZoom(v.zoom() - v.step()) }

func (v Viewport) step() float64 {
	if v.ZoomStep <= 0 {
		return DefaultZoomStep
	}
	return v.ZoomStep
}

// Pan shifts the pan offset.
func (v *Viewport) Pan(dx, dy float64) {
	v.PanX += dx
	v.PanY += dy
}
