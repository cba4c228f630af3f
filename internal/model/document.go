package model

import "strings"

// LayoutDocument is the flat record handed to the persistence service on
// save.  It is a frozen copy of a layout plus derived pricing.
type LayoutDocument struct {
	ID           string         `json:"id"`
	Name         string         `json:"name"`
	RegularPrice float64        `json:"regular_price"`
	PremiumPrice float64        `json:"premium_price"`
	VIPPrice     float64        `json:"vip_price"`
	Capacity     int            `json:"capacity"`
	Seats        []DocumentSeat `json:"seats"`
	RowCount     int            `json:"row_count"`
	ColumnCount  int            `json:"column_count"`
}

// DocumentSeat is a seat as persisted.  Type is the capitalized tier name
// and Price the effective price after the unavailable->regular rule.
type DocumentSeat struct {
	ID     string  `json:"id"`
	Number string  `json:"number"`
	Type   string  `json:"type"`
	Price  float64 `json:"price"`
	Row    int     `json:"row"`
	Column int     `json:"column"`
}

// NewLayoutDocument serializes a layout.  Capacity counts every seat that
// is not unavailable.
func NewLayoutDocument(l TheaterLayout) LayoutDocument {
	doc := LayoutDocument{
		ID:           l.ID,
		Name:         l.Name,
		RegularPrice: l.Prices.Regular,
		PremiumPrice: l.Prices.Premium,
		VIPPrice:     l.Prices.VIP,
		Seats:        make([]DocumentSeat, 0, len(l.Seats)),
		RowCount:     l.RowCount,
		ColumnCount:  l.ColumnCount,
	}
	for _, s := range l.Seats {
		if s.Type != SeatUnavailable {
			doc.Capacity++
		}
		doc.Seats = append(doc.Seats, DocumentSeat{
			ID:     s.ID,
			Number: s.Number,
			Type:   s.Type.Title(),
			Price:  l.Prices.For(s.Type),
			Row:    s.Row,
			Column: s.Column,
		})
	}
	return doc
}

// LayoutFromDocument turns a persisted document back into an editable
// layout.  Seats with an unknown tier fall back to regular, and numbers
// are recomputed rather than trusted.
func LayoutFromDocument(doc LayoutDocument) TheaterLayout {
	l := TheaterLayout{
		ID:   doc.ID,
		Name: doc.Name,
		Prices: SeatPrice{
			Regular: doc.RegularPrice,
			Premium: doc.PremiumPrice,
			VIP:     doc.VIPPrice,
		},
		Seats: make([]Seat, 0, len(doc.Seats)),
	}
	for _, ds := range doc.Seats {
		t, ok := ParseSeatType(strings.ToLower(ds.Type))
		if !ok {
			t = SeatRegular
		}
		l.Seats = append(l.Seats, NewSeat(ds.ID, t, ds.Row, ds.Column))
	}
	l.RowCount, l.ColumnCount = Bounds(l.Seats)
	return l
}
