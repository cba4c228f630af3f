// Package layout holds the current TheaterLayout of an editing session and
// applies every structural mutation to it.  Mutations that would violate
// an invariant (negative coordinates, two seats on one cell) are rejected
// silently: the method reports false and the layout is left untouched.
package layout

import (
	"github.com/google/uuid"

	"github.com/iliyamo/seat-layout-editor/internal/model"
)

// Store owns one mutable layout.  It is not safe for concurrent use; the
// editing session serializes access.
type Store struct {
	current model.TheaterLayout
	newID   func() string
}

// NewStore returns an empty store that mints ids with uuid.
func NewStore() *Store {
	return &Store{newID: uuid.NewString}
}

// NewStoreWithIDs is like NewStore but uses the given id generator.
func NewStoreWithIDs(newID func() string) *Store {
	if newID == nil {
		newID = uuid.NewString
	}
	return &Store{newID: newID}
}

// Layout returns a copy of the current layout.
func (s *Store) Layout() model.TheaterLayout { return s.current.Clone() }

// Replace swaps in a layout wholesale (undo/redo, opening a saved layout).
func (s *Store) Replace(l model.TheaterLayout) { s.current = l.Clone() }

// CreateEmpty starts a layout with no seats.
func (s *Store) CreateEmpty(name string, prices model.SeatPrice) model.TheaterLayout {
	s.current = model.TheaterLayout{
		ID:     s.newID(),
		Name:   name,
		Prices: prices,
		Seats:  []model.Seat{},
	}
	return s.Layout()
}

// CreateFromTemplate seeds a layout from a template.  Every template cell
// becomes a seat with a fresh id; the grid size is taken from the template.
func (s *Store) CreateFromTemplate(name string, prices model.SeatPrice, tpl model.TheaterTemplate) model.TheaterLayout {
	seats := make([]model.Seat, 0, len(tpl.Seats))
	for _, ts := range tpl.Seats {
		seats = append(seats, model.NewSeat(s.newID(), ts.Type, ts.Row, ts.Column))
	}
	s.current = model.TheaterLayout{
		ID:          s.newID(),
		Name:        name,
		Prices:      prices,
		Seats:       seats,
		RowCount:    tpl.Rows,
		ColumnCount: tpl.Columns,
	}
	return s.Layout()
}

// CanPlace reports whether a new seat may go on (row, column).
func (s *Store) CanPlace(row, column int) bool {
	if !model.OnGrid(row, column) {
		return false
	}
	_, taken := s.current.SeatAt(row, column)
	return !taken
}

// Seat returns the seat with the given id.
func (s *Store) Seat(id string) (model.Seat, bool) { return s.current.SeatByID(id) }

// AddSeat places a new seat.  The bounding box only grows.
func (s *Store) AddSeat(t model.SeatType, row, column int) (model.TheaterLayout, bool) {
	if !t.Valid() || !s.CanPlace(row, column) {
		return s.Layout(), false
	}
	s.current.Seats = append(s.current.Seats, model.NewSeat(s.newID(), t, row, column))
	s.current.RowCount = max(s.current.RowCount, row+1)
	s.current.ColumnCount = max(s.current.ColumnCount, column+1)
	return s.Layout(), true
}

// RemoveSeat deletes a seat and shrinks the bounding box to the remaining
// seats.
func (s *Store) RemoveSeat(id string) (model.TheaterLayout, bool) {
	return s.BulkDelete([]string{id})
}

// UpdateSeatType retypes and relabels a single seat in place.
func (s *Store) UpdateSeatType(id string, t model.SeatType) (model.TheaterLayout, bool) {
	return s.BulkRetype([]string{id}, t)
}

// BulkRetype retypes every listed seat.  Unknown ids are skipped; the call
// reports true if at least one seat changed.
func (s *Store) BulkRetype(ids []string, t model.SeatType) (model.TheaterLayout, bool) {
	if !t.Valid() {
		return s.Layout(), false
	}
	want := idSet(ids)
	changed := false
	for i, seat := range s.current.Seats {
		if !want[seat.ID] || seat.Type == t {
			continue
		}
		s.current.Seats[i] = model.NewSeat(seat.ID, t, seat.Row, seat.Column)
		changed = true
	}
	return s.Layout(), changed
}

// BulkDelete removes every listed seat and recomputes the bounding box
// once at the end.
func (s *Store) BulkDelete(ids []string) (model.TheaterLayout, bool) {
	drop := idSet(ids)
	kept := make([]model.Seat, 0, len(s.current.Seats))
	for _, seat := range s.current.Seats {
		if !drop[seat.ID] {
			kept = append(kept, seat)
		}
	}
	if len(kept) == len(s.current.Seats) {
		return s.Layout(), false
	}
	s.current.Seats = kept
	s.current.RowCount, s.current.ColumnCount = model.Bounds(kept)
	return s.Layout(), true
}

// MoveSeats shifts a batch of seats by the given offset.  The batch is
// moved atomically: if any destination is off the grid or occupied by a
// seat outside the batch, nothing moves.  Unknown ids are ignored.
func (s *Store) MoveSeats(ids []string, rowOffset, columnOffset int) (model.TheaterLayout, bool) {
	moving := idSet(ids)
	type cell struct{ r, c int }
	external := make(map[cell]bool, len(s.current.Seats))
	batch := 0
	for _, seat := range s.current.Seats {
		if moving[seat.ID] {
			batch++
			continue
		}
		external[cell{seat.Row, seat.Column}] = true
	}
	if batch == 0 || (rowOffset == 0 && columnOffset == 0) {
		return s.Layout(), false
	}

	next := make([]model.Seat, len(s.current.Seats))
	for i, seat := range s.current.Seats {
		if !moving[seat.ID] {
			next[i] = seat
			continue
		}
		r, c := seat.Row+rowOffset, seat.Column+columnOffset
		if !model.OnGrid(r, c) || external[cell{r, c}] {
			return s.Layout(), false
		}
		next[i] = model.NewSeat(seat.ID, seat.Type, r, c)
	}
	s.current.Seats = next
	s.current.RowCount, s.current.ColumnCount = model.Bounds(next)
	return s.Layout(), true
}

func idSet(ids []string) map[string]bool {
	m := make(map[string]bool, len(ids))
	for _, id := range ids {
		m[id] = true
	}
	return m
}
