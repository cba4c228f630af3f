package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/seat-layout-editor/internal/model"
)

// Direct seat edits.  Rejected edits (occupied cell, negative coordinate,
// unknown seat) are not errors: the response reports handled=false and the
// layout is unchanged.

// AddSeat handles POST /v1/sessions/:id/seats.
func (h *EditorHandler) AddSeat(c echo.Context) error {
	s, ok := h.lookup(c)
	if !ok {
		return errorJSON(c, http.StatusNotFound, "session not found")
	}
	var body struct {
		SeatType string `json:"seat_type"`
		Row      int    `json:"row"`
		Column   int    `json:"column"`
	}
	if err := c.Bind(&body); err != nil {
		return errorJSON(c, http.StatusBadRequest, "invalid request body")
	}
	t, valid := model.ParseSeatType(body.SeatType)
	if !valid {
		return errorJSON(c, http.StatusBadRequest, "invalid seat_type")
	}
	return h.respond(c, s, s.AddSeat(t, body.Row, body.Column))
}

// UpdateSeat handles PATCH /v1/sessions/:id/seats/:seat_id.
func (h *EditorHandler) UpdateSeat(c echo.Context) error {
	s, ok := h.lookup(c)
	if !ok {
		return errorJSON(c, http.StatusNotFound, "session not found")
	}
	var body struct {
		SeatType string `json:"seat_type"`
	}
	if err := c.Bind(&body); err != nil {
		return errorJSON(c, http.StatusBadRequest, "invalid request body")
	}
	t, valid := model.ParseSeatType(body.SeatType)
	if !valid {
		return errorJSON(c, http.StatusBadRequest, "invalid seat_type")
	}
	return h.respond(c, s, s.UpdateSeatType(c.Param("seat_id"), t))
}

// DeleteSeat handles DELETE /v1/sessions/:id/seats/:seat_id.
func (h *EditorHandler) DeleteSeat(c echo.Context) error {
	s, ok := h.lookup(c)
	if !ok {
		return errorJSON(c, http.StatusNotFound, "session not found")
	}
	return h.respond(c, s, s.RemoveSeat(c.Param("seat_id")))
}

// MoveSeats handles POST /v1/sessions/:id/move.  The batch moves as a unit
// or not at all.
func (h *EditorHandler) MoveSeats(c echo.Context) error {
	s, ok := h.lookup(c)
	if !ok {
		return errorJSON(c, http.StatusNotFound, "session not found")
	}
	var body struct {
		SeatIDs      []string `json:"seat_ids"`
		RowOffset    int      `json:"row_offset"`
		ColumnOffset int      `json:"column_offset"`
	}
	if err := c.Bind(&body); err != nil {
		return errorJSON(c, http.StatusBadRequest, "invalid request body")
	}
	return h.respond(c, s, s.MoveSeats(body.SeatIDs, body.RowOffset, body.ColumnOffset))
}

// Select handles POST /v1/sessions/:id/select.  With clear or all set the
// seat id is ignored.
func (h *EditorHandler) Select(c echo.Context) error {
	s, ok := h.lookup(c)
	if !ok {
		return errorJSON(c, http.StatusNotFound, "session not found")
	}
	var body struct {
		SeatID   string `json:"seat_id"`
		Additive bool   `json:"additive"`
		All      bool   `json:"all"`
		Clear    bool   `json:"clear"`
	}
	if err := c.Bind(&body); err != nil {
		return errorJSON(c, http.StatusBadRequest, "invalid request body")
	}
	switch {
	case body.Clear:
		s.ClearSelection()
		return h.respond(c, s, true)
	case body.All:
		s.SelectAll()
		return h.respond(c, s, true)
	}
	return h.respond(c, s, s.Select(body.SeatID, body.Additive))
}

// SelectRegion handles POST /v1/sessions/:id/select-region.
func (h *EditorHandler) SelectRegion(c echo.Context) error {
	s, ok := h.lookup(c)
	if !ok {
		return errorJSON(c, http.StatusNotFound, "session not found")
	}
	var body struct {
		StartRow    int `json:"start_row"`
		StartColumn int `json:"start_column"`
		EndRow      int `json:"end_row"`
		EndColumn   int `json:"end_column"`
	}
	if err := c.Bind(&body); err != nil {
		return errorJSON(c, http.StatusBadRequest, "invalid request body")
	}
	n := s.SelectRegion(body.StartRow, body.StartColumn, body.EndRow, body.EndColumn)
	return h.respond(c, s, n > 0)
}
