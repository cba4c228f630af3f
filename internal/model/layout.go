package model

// SeatPrice holds the per-tier price of a layout.  Unavailable seats have
// no price of their own and are charged as Regular.
type SeatPrice struct {
	Regular float64 `json:"regular"`
	Premium float64 `json:"premium"`
	VIP     float64 `json:"vip"`
}

// For returns the effective price of a tier.
func (p SeatPrice) For(t SeatType) float64 {
	switch t {
	case SeatPremium:
		return p.Premium
	case SeatVIP:
		return p.VIP
	default:
		return p.Regular
	}
}

// MaxGridIndex is the largest row or column index a seat may occupy.
const MaxGridIndex = 999

// OnGrid reports whether (row, column) is a cell seats may occupy.
func OnGrid(row, column int) bool {
	return row >= 0 && column >= 0 && row <= MaxGridIndex && column <= MaxGridIndex
}

// TheaterLayout is the editable seating arrangement of one screen.
// RowCount and ColumnCount are derived from Seats by the layout store and
// are never set independently.
//
// Fields:
//
//	ID          – identifier handed to the persistence service.
//	Name        – operator supplied layout name.
//	Prices      – per-tier prices.
//	Seats       – placed seats; order carries no meaning.
//	RowCount    – max(seat.row)+1, 0 when empty.
//	ColumnCount – max(seat.column)+1, 0 when empty.
type TheaterLayout struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Prices      SeatPrice `json:"prices"`
	Seats       []Seat    `json:"seats"`
	RowCount    int       `json:"row_count"`
	ColumnCount int       `json:"column_count"`
}

// Clone returns a deep copy so snapshots never share the seat slice.
func (l TheaterLayout) Clone() TheaterLayout {
	out := l
	out.Seats = make([]Seat, len(l.Seats))
	copy(out.Seats, l.Seats)
	return out
}

// SeatAt returns the seat occupying (row, column), if any.
func (l TheaterLayout) SeatAt(row, column int) (Seat, bool) {
	for _, s := range l.Seats {
		if s.Row == row && s.Column == column {
			return s, true
		}
	}
	return Seat{}, false
}

// SeatByID looks a seat up by identifier.
func (l TheaterLayout) SeatByID(id string) (Seat, bool) {
	for _, s := range l.Seats {
		if s.ID == id {
			return s, true
		}
	}
	return Seat{}, false
}

// Bounds returns the tight bounding box of seats: max(row)+1 and
// max(column)+1, or 0, 0 for no seats.
func Bounds(seats []Seat) (rows, columns int) {
	for _, s := range seats {
		if s.Row+1 > rows {
			rows = s.Row + 1
		}
		if s.Column+1 > columns {
			columns = s.Column + 1
		}
	}
	return rows, columns
}
