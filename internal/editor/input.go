package editor

import (
	"context"
	"strings"

	"github.com/iliyamo/seat-layout-editor/internal/grid"
	"github.com/iliyamo/seat-layout-editor/internal/model"
)

// Key is a keyboard event forwarded by the rendering surface.  Meta is
// treated like Ctrl so the same shortcuts work on macOS.
type Key struct {
	Key   string `json:"key"`
	Ctrl  bool   `json:"ctrl"`
	Shift bool   `json:"shift"`
	Meta  bool   `json:"meta"`
}

// digit shortcuts, 1 to 4
var digitTiers = map[string]model.SeatType{
	"1": model.SeatRegular,
	"2": model.SeatPremium,
	"3": model.SeatVIP,
	"4": model.SeatUnavailable,
}

var arrows = map[string][2]int{
	"ArrowUp":    {-1, 0},
	"ArrowDown":  {1, 0},
	"ArrowLeft":  {0, -1},
	"ArrowRight": {0, 1},
}

// HandleKey applies a keyboard shortcut and reports whether it was
// handled.  While a modal is open only Escape (and ? for the help panel)
// get through.
func (s *Session) HandleKey(ctx context.Context, k Key) bool {
	ctrl := k.Ctrl || k.Meta
	if ctrl && strings.EqualFold(k.Key, "s") {
		if s.ModalOpen() != ModalNone {
			return false
		}
		_, err := s.Save(ctx)
		return err == nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.handleKey(k.Key, ctrl, k.Shift)
}

func (s *Session) handleKey(name string, ctrl, shift bool) bool {
	if s.modal != ModalNone {
		if name == "Escape" || (name == "?" && s.modal == ModalHelp) {
			s.closeModal()
			return true
		}
		return false
	}

	if ctrl {
		switch strings.ToLower(name) {
		case "z":
			if shift {
				return s.redo()
			}
			return s.undo()
		case "y":
			return s.redo()
		case "a":
			s.selectAll()
			return true
		case "=", "+":
			s.view.ZoomIn()
			return true
		case "-", "_":
			s.view.ZoomOut()
			return true
		}
		return false
	}

	switch name {
	case "Delete", "Backspace":
		return s.bulkDelete(s.selection.IDs())
	case "?":
		s.modal = ModalHelp
		return true
	case "Escape":
		if s.drag != nil || s.region != nil {
			s.drag, s.region = nil, nil
			return true
		}
		s.selection.Clear()
		return true
	}
	if d, ok := arrows[name]; ok {
		return s.moveSeats(s.selection.IDs(), d[0], d[1])
	}
	if t, ok := digitTiers[name]; ok {
		return s.bulkRetype(s.selection.IDs(), t)
	}
	return false
}

// ModalOpen returns the open modal, if any.
func (s *Session) ModalOpen() Modal {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.modal
}

func (s *Session) closeModal() {
	s.modal = ModalNone
	s.menuSeat = ""
}

func (s *Session) cellAt(x, y float64) (grid.Cell, bool) {
	if !s.hasLayout() {
		return grid.Cell{}, false
	}
	return s.view.CellAt(x, y)
}

// PointerDown handles a primary-button press at viewport pixels (x, y).
// On a seat it selects the seat; on an empty cell it starts a rectangular
// selection.  Presses outside the grid do nothing.
func (s *Session) PointerDown(x, y float64, additive bool) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	switch s.modal {
	case ModalContextMenu:
		s.closeModal()
		return true
	case ModalHelp:
		return false
	}
	cell, ok := s.cellAt(x, y)
	if !ok {
		return false
	}
	if seat, taken := s.store.Layout().SeatAt(cell.Row, cell.Column); taken {
		s.selection.Select(seat.ID, additive)
		s.region = nil
		s.touch()
		return true
	}
	s.region = &Region{Start: cell, End: cell}
	return true
}

// PointerMove extends an active rectangular selection.
func (s *Session) PointerMove(x, y float64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.region == nil {
		return false
	}
	cell, ok := s.cellAt(x, y)
	if !ok {
		return false
	}
	s.region.End = cell
	return true
}

// PointerUp commits an active rectangular selection and returns how many
// seats were added to the selection.
func (s *Session) PointerUp(x, y float64) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.region == nil {
		return 0
	}
	r := *s.region
	s.region = nil
	if cell, ok := s.cellAt(x, y); ok {
		r.End = cell
	}
	before := s.selection.Len()
	s.selection.BulkSelectRegion(s.store.Layout().Seats, r.Start.Row, r.Start.Column, r.End.Row, r.End.Column)
	s.touch()
	return s.selection.Len() - before
}

// OpenContextMenu opens the per-seat menu for the seat under (x, y).
func (s *Session) OpenContextMenu(x, y float64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.modal == ModalHelp {
		return false
	}
	cell, ok := s.cellAt(x, y)
	if !ok {
		return false
	}
	seat, taken := s.store.Layout().SeatAt(cell.Row, cell.Column)
	if !taken {
		return false
	}
	s.modal = ModalContextMenu
	s.menuSeat = seat.ID
	return true
}

// ContextAction is a choice offered by the seat context menu.
type ContextAction string

const (
	ActionRetype ContextAction = "retype"
	ActionDelete ContextAction = "delete"
	ActionClose  ContextAction = "close"
)

// ApplyContextAction runs a menu choice against the seat the menu was
// opened on and closes the menu.  A seat that disappeared in the meantime
// makes the action a no-op.
func (s *Session) ApplyContextAction(action ContextAction, t model.SeatType) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.modal != ModalContextMenu {
		return false
	}
	id := s.menuSeat
	s.closeModal()
	if _, ok := s.store.Seat(id); !ok {
		return false
	}
	switch action {
	case ActionRetype:
		return s.bulkRetype([]string{id}, t)
	case ActionDelete:
		return s.bulkDelete([]string{id})
	}
	return action == ActionClose
}
