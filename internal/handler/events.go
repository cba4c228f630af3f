package handler

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/seat-layout-editor/internal/editor"
	"github.com/iliyamo/seat-layout-editor/internal/grid"
	"github.com/iliyamo/seat-layout-editor/internal/model"
)

// Pointer handles POST /v1/sessions/:id/pointer.  Coordinates are viewport
// pixels; kind is down, move, up or context.
func (h *EditorHandler) Pointer(c echo.Context) error {
	s, ok := h.lookup(c)
	if !ok {
		return errorJSON(c, http.StatusNotFound, "session not found")
	}
	var body struct {
		Kind     string  `json:"kind"`
		X        float64 `json:"x"`
		Y        float64 `json:"y"`
		Additive bool    `json:"additive"`
	}
	if err := c.Bind(&body); err != nil {
		return errorJSON(c, http.StatusBadRequest, "invalid request body")
	}
	var handled bool
	switch strings.ToLower(body.Kind) {
	case "down":
		handled = s.PointerDown(body.X, body.Y, body.Additive)
	case "move":
		handled = s.PointerMove(body.X, body.Y)
	case "up":
		handled = s.PointerUp(body.X, body.Y) > 0
	case "context":
		handled = s.OpenContextMenu(body.X, body.Y)
	default:
		return errorJSON(c, http.StatusBadRequest, "kind must be one of down, move, up, context")
	}
	return h.respond(c, s, handled)
}

// Keys handles POST /v1/sessions/:id/keys.
func (h *EditorHandler) Keys(c echo.Context) error {
	s, ok := h.lookup(c)
	if !ok {
		return errorJSON(c, http.StatusNotFound, "session not found")
	}
	var k editor.Key
	if err := c.Bind(&k); err != nil || k.Key == "" {
		return errorJSON(c, http.StatusBadRequest, "key is required")
	}
	return h.respond(c, s, s.HandleKey(c.Request().Context(), k))
}

// PickUp handles POST /v1/sessions/:id/drag.  Either a full payload is
// given (palette drags) or just seat_id to drag an existing seat along with
// the selection it belongs to.
func (h *EditorHandler) PickUp(c echo.Context) error {
	s, ok := h.lookup(c)
	if !ok {
		return errorJSON(c, http.StatusNotFound, "session not found")
	}
	var body struct {
		editor.Payload
		SeatID string `json:"seat_id"`
	}
	if err := c.Bind(&body); err != nil {
		return errorJSON(c, http.StatusBadRequest, "invalid request body")
	}
	var handled bool
	if body.SeatID != "" {
		handled = s.PickUpSeat(body.SeatID)
	} else {
		handled = s.PickUp(body.Payload)
	}
	return c.JSON(http.StatusOK, eventResponse{Handled: handled, Session: s.Snapshot()})
}

// GetDrag handles GET /v1/sessions/:id/drag and returns the payload of the
// active drag, or 404 when nothing is being dragged.
func (h *EditorHandler) GetDrag(c echo.Context) error {
	s, ok := h.lookup(c)
	if !ok {
		return errorJSON(c, http.StatusNotFound, "session not found")
	}
	p, dragging := s.Dragging()
	if !dragging {
		return errorJSON(c, http.StatusNotFound, "no active drag")
	}
	return c.JSON(http.StatusOK, p)
}

// CancelDrag handles DELETE /v1/sessions/:id/drag.
func (h *EditorHandler) CancelDrag(c echo.Context) error {
	s, ok := h.lookup(c)
	if !ok {
		return errorJSON(c, http.StatusNotFound, "session not found")
	}
	s.CancelDrag()
	return c.NoContent(http.StatusNoContent)
}

// Drop handles POST /v1/sessions/:id/drop with either a target cell
// (row, column) or viewport pixels (x, y).
func (h *EditorHandler) Drop(c echo.Context) error {
	s, ok := h.lookup(c)
	if !ok {
		return errorJSON(c, http.StatusNotFound, "session not found")
	}
	var body struct {
		Row    *int     `json:"row"`
		Column *int     `json:"column"`
		X      *float64 `json:"x"`
		Y      *float64 `json:"y"`
	}
	if err := c.Bind(&body); err != nil {
		return errorJSON(c, http.StatusBadRequest, "invalid request body")
	}
	switch {
	case body.Row != nil && body.Column != nil:
		return h.respond(c, s, s.Drop(grid.Cell{Row: *body.Row, Column: *body.Column}))
	case body.X != nil && body.Y != nil:
		return h.respond(c, s, s.DropAt(*body.X, *body.Y))
	}
	return errorJSON(c, http.StatusBadRequest, "row and column or x and y are required")
}

// ContextMenu handles POST /v1/sessions/:id/context-menu, applying the
// chosen action to the seat the menu was opened on.
func (h *EditorHandler) ContextMenu(c echo.Context) error {
	s, ok := h.lookup(c)
	if !ok {
		return errorJSON(c, http.StatusNotFound, "session not found")
	}
	var body struct {
		Action   string `json:"action"`
		SeatType string `json:"seat_type"`
	}
	if err := c.Bind(&body); err != nil {
		return errorJSON(c, http.StatusBadRequest, "invalid request body")
	}
	action := editor.ContextAction(strings.ToLower(body.Action))
	var t model.SeatType
	switch action {
	case editor.ActionRetype:
		var ok bool
		if t, ok = model.ParseSeatType(body.SeatType); !ok {
			return errorJSON(c, http.StatusBadRequest, "invalid seat_type")
		}
	case editor.ActionDelete, editor.ActionClose:
	default:
		return errorJSON(c, http.StatusBadRequest, "action must be one of retype, delete, close")
	}
	return h.respond(c, s, s.ApplyContextAction(action, t))
}

// SetViewport handles PUT /v1/sessions/:id/viewport, where the rendering
// surface reports its origin, scroll offset and zoom.
func (h *EditorHandler) SetViewport(c echo.Context) error {
	s, ok := h.lookup(c)
	if !ok {
		return errorJSON(c, http.StatusNotFound, "session not found")
	}
	var v grid.Viewport
	if err := c.Bind(&v); err != nil {
		return errorJSON(c, http.StatusBadRequest, "invalid request body")
	}
	s.SetViewport(v)
	return c.JSON(http.StatusOK, s.Viewport())
}

// Pan handles POST /v1/sessions/:id/pan.
func (h *EditorHandler) Pan(c echo.Context) error {
	s, ok := h.lookup(c)
	if !ok {
		return errorJSON(c, http.StatusNotFound, "session not found")
	}
	var body struct {
		DX float64 `json:"dx"`
		DY float64 `json:"dy"`
	}
	if err := c.Bind(&body); err != nil {
		return errorJSON(c, http.StatusBadRequest, "invalid request body")
	}
	s.Pan(body.DX, body.DY)
	return c.JSON(http.StatusOK, s.Viewport())
}

// Zoom handles POST /v1/sessions/:id/zoom with direction in or out.
func (h *EditorHandler) Zoom(c echo.Context) error {
	s, ok := h.lookup(c)
	if !ok {
		return errorJSON(c, http.StatusNotFound, "session not found")
	}
	var body struct {
		Direction string `json:"direction"`
	}
	if err := c.Bind(&body); err != nil {
		return errorJSON(c, http.StatusBadRequest, "invalid request body")
	}
	switch strings.ToLower(body.Direction) {
	case "in":
		s.ZoomIn()
	case "out":
		s.ZoomOut()
	default:
		return errorJSON(c, http.StatusBadRequest, "direction must be in or out")
	}
	return c.JSON(http.StatusOK, s.Viewport())
}
