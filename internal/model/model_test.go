package model

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSeatNumber(t *testing.T) {
	assert.Equal(t, "A1", SeatNumber(0, 0, SeatRegular))
	assert.Equal(t, "C5", SeatNumber(2, 4, SeatVIP))
	assert.Equal(t, "AA1", SeatNumber(26, 0, SeatPremium))
	assert.Equal(t, "U0", SeatNumber(0, 0, SeatUnavailable))
	assert.Equal(t, "U304", SeatNumber(3, 4, SeatUnavailable))
}

func TestRowLabel(t *testing.T) {
	assert.Equal(t, "A", RowLabel(0))
	assert.Equal(t, "Z", RowLabel(25))
	assert.Equal(t, "AA", RowLabel(26))
	assert.Equal(t, "AZ", RowLabel(51))
	assert.Equal(t, "BA", RowLabel(52))
	assert.Equal(t, "ALL", RowLabel(MaxGridIndex))
	assert.Equal(t, "", RowLabel(-1))
}

func TestOnGrid(t *testing.T) {
	assert.True(t, OnGrid(0, 0))
	assert.True(t, OnGrid(MaxGridIndex, MaxGridIndex))
	assert.False(t, OnGrid(-1, 0))
	assert.False(t, OnGrid(0, MaxGridIndex+1))
	assert.False(t, OnGrid(math.MaxInt, 0))
}

func TestParseSeatType(t *testing.T) {
	st, ok := ParseSeatType("  VIP ")
	assert.True(t, ok)
	assert.Equal(t, SeatVIP, st)

	_, ok = ParseSeatType("balcony")
	assert.False(t, ok)
	assert.Equal(t, "Unavailable", SeatUnavailable.Title())
}

func TestSeatPriceFor(t *testing.T) {
	p := SeatPrice{Regular: 100, Premium: 200, VIP: 300}
	assert.Equal(t, 100.0, p.For(SeatRegular))
	assert.Equal(t, 200.0, p.For(SeatPremium))
	assert.Equal(t, 300.0, p.For(SeatVIP))
	assert.Equal(t, 100.0, p.For(SeatUnavailable))
}

func TestBoundsEmpty(t *testing.T) {
	r, c := Bounds(nil)
	assert.Zero(t, r)
	assert.Zero(t, c)

	r, c = Bounds([]Seat{NewSeat("a", SeatRegular, 2, 0), NewSeat("b", SeatRegular, 0, 5)})
	assert.Equal(t, 3, r)
	assert.Equal(t, 6, c)
}

func TestCloneDoesNotShareSeats(t *testing.T) {
	l := TheaterLayout{Seats: []Seat{NewSeat("a", SeatRegular, 0, 0)}}
	c := l.Clone()
	c.Seats[0].Row = 9
	assert.Equal(t, 0, l.Seats[0].Row)
}

func TestLayoutDocument(t *testing.T) {
	l := TheaterLayout{
		ID:     "layout-1",
		Name:   "Main hall",
		Prices: SeatPrice{Regular: 10, Premium: 20, VIP: 30},
		Seats: []Seat{
			NewSeat("a", SeatVIP, 0, 0),
			NewSeat("b", SeatUnavailable, 0, 1),
			NewSeat("c", SeatPremium, 1, 1),
		},
		RowCount:    2,
		ColumnCount: 2,
	}
	doc := NewLayoutDocument(l)
	assert.Equal(t, 2, doc.Capacity)
	require.Len(t, doc.Seats, 3)
	assert.Equal(t, "Vip", doc.Seats[0].Type)
	assert.Equal(t, 30.0, doc.Seats[0].Price)
	assert.Equal(t, "Unavailable", doc.Seats[1].Type)
	assert.Equal(t, 10.0, doc.Seats[1].Price)
	assert.Equal(t, "U1", doc.Seats[1].Number)

	back := LayoutFromDocument(doc)
	assert.Equal(t, l, back)
}
