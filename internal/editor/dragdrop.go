package editor

import (
	"github.com/iliyamo/seat-layout-editor/internal/grid"
	"github.com/iliyamo/seat-layout-editor/internal/model"
)

// PayloadKind tells what a drag carries.
type PayloadKind string

const (
	PayloadNewSeat  PayloadKind = "new-seat"
	PayloadMoveSeat PayloadKind = "move-seat"
)

// Payload is the pick-up message of a drag.  NewSeat drags carry a tier
// from the palette; move drags carry the seats being moved and the cell
// the drag started from.
type Payload struct {
	Kind     PayloadKind    `json:"kind"`
	SeatType model.SeatType `json:"seat_type,omitempty"`
	SeatIDs  []string       `json:"seat_ids,omitempty"`
	Origin   grid.Cell      `json:"origin"`
}

func (p Payload) valid() bool {
	switch p.Kind {
	case PayloadNewSeat:
		return p.SeatType.Valid()
	case PayloadMoveSeat:
		return len(p.SeatIDs) > 0 && p.Origin.Valid()
	}
	return false
}

// PickUp starts a drag with the given payload, replacing any active one.
// Malformed payloads are refused.
func (s *Session) PickUp(p Payload) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.hasLayout() || !p.valid() {
		return false
	}
	p.SeatIDs = append([]string(nil), p.SeatIDs...)
	s.drag = &p
	s.region = nil
	return true
}

// PickUpSeat starts a move drag from an existing seat.  When the seat is
// part of the selection the whole selection travels with it.
func (s *Session) PickUpSeat(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	seat, ok := s.store.Seat(id)
	if !ok {
		return false
	}
	ids := []string{id}
	if s.selection.Has(id) {
		ids = s.selection.IDs()
	}
	s.drag = &Payload{
		Kind:    PayloadMoveSeat,
		SeatIDs: ids,
		Origin:  grid.Cell{Row: seat.Row, Column: seat.Column},
	}
	s.region = nil
	return true
}

// Dragging returns the active drag payload.
func (s *Session) Dragging() (Payload, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.drag == nil {
		return Payload{}, false
	}
	return *s.drag, true
}

// CancelDrag drops the active drag without touching the layout.
func (s *Session) CancelDrag() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.drag = nil
}

// Drop resolves the active drag onto target.  The drag ends either way;
// the layout only changes when the placement or move is valid.
func (s *Session) Drop(target grid.Cell) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.drop(target, target.Valid())
}

// DropAt resolves the active drag onto the cell under viewport pixels
// (x, y).  Dropping outside the grid cancels the drag.
func (s *Session) DropAt(x, y float64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	cell, ok := s.cellAt(x, y)
	return s.drop(cell, ok)
}

func (s *Session) drop(target grid.Cell, onGrid bool) bool {
	p := s.drag
	s.drag = nil
	if p == nil || !onGrid {
		return false
	}
	switch p.Kind {
	case PayloadNewSeat:
		return s.addSeat(p.SeatType, target.Row, target.Column)
	case PayloadMoveSeat:
		live := make([]string, 0, len(p.SeatIDs))
		for _, id := range p.SeatIDs {
			if _, ok := s.store.Seat(id); ok {
				live = append(live, id)
			}
		}
		dr, dc := p.Origin.Offset(target)
		return s.moveSeats(live, dr, dc)
	}
	return false
}
