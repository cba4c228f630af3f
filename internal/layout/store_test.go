package layout

import (
	"fmt"
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/seat-layout-editor/internal/model"
)

var testPrices = model.SeatPrice{Regular: 100, Premium: 200, VIP: 300}

func seqIDs() func() string {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("id-%d", n)
	}
}

func newTestStore() *Store {
	s := NewStoreWithIDs(seqIDs())
	s.CreateEmpty("Test", testPrices)
	return s
}

func assertInvariants(t *testing.T, l model.TheaterLayout) {
	t.Helper()
	seen := map[[2]int]string{}
	for _, s := range l.Seats {
		key := [2]int{s.Row, s.Column}
		if other, dup := seen[key]; dup {
			t.Fatalf("seats %s and %s share cell %v", other, s.ID, key)
		}
		seen[key] = s.ID
		require.GreaterOrEqual(t, s.Row, 0)
		require.GreaterOrEqual(t, s.Column, 0)
		require.Equal(t, model.SeatNumber(s.Row, s.Column, s.Type), s.Number)
	}
	rows, cols := model.Bounds(l.Seats)
	require.Equal(t, rows, l.RowCount)
	require.Equal(t, cols, l.ColumnCount)
}

func TestCreateEmpty(t *testing.T) {
	s := NewStoreWithIDs(seqIDs())
	l := s.CreateEmpty("Hall 1", testPrices)
	assert.Equal(t, "Hall 1", l.Name)
	assert.Empty(t, l.Seats)
	assert.Zero(t, l.RowCount)
	assert.Zero(t, l.ColumnCount)
	assert.NotEmpty(t, l.ID)
}

func TestCreateFromTemplate(t *testing.T) {
	s := NewStoreWithIDs(seqIDs())
	tpl := model.TheaterTemplate{Rows: 2, Columns: 3, Seats: []model.TemplateSeat{
		{Type: model.SeatVIP, Row: 0, Column: 0},
		{Type: model.SeatRegular, Row: 1, Column: 2},
	}}
	l := s.CreateFromTemplate("T", testPrices, tpl)
	require.Len(t, l.Seats, 2)
	assert.Equal(t, 2, l.RowCount)
	assert.Equal(t, 3, l.ColumnCount)
	assert.Equal(t, "A1", l.Seats[0].Number)
	assert.Equal(t, "B3", l.Seats[1].Number)
	assert.NotEqual(t, l.Seats[0].ID, l.Seats[1].ID)
}

func TestAddSeatTwiceOnSameCell(t *testing.T) {
	s := newTestStore()
	_, ok := s.AddSeat(model.SeatVIP, 0, 0)
	require.True(t, ok)
	l, ok := s.AddSeat(model.SeatVIP, 0, 0)
	assert.False(t, ok)
	assert.Len(t, l.Seats, 1)
}

func TestAddSeatRejectsNegativeAndUnknownType(t *testing.T) {
	s := newTestStore()
	_, ok := s.AddSeat(model.SeatRegular, -1, 0)
	assert.False(t, ok)
	_, ok = s.AddSeat(model.SeatRegular, 0, -3)
	assert.False(t, ok)
	_, ok = s.AddSeat(model.SeatType("box"), 0, 0)
	assert.False(t, ok)
	assert.False(t, s.CanPlace(-1, 2))
	assert.True(t, s.CanPlace(4, 4))
}

func TestCoordinatesBeyondGridRejected(t *testing.T) {
	s := newTestStore()
	for _, c := range [][2]int{
		{math.MaxInt, 0},
		{0, math.MaxInt},
		{math.MaxInt / 50, 3},
		{model.MaxGridIndex + 1, 0},
	} {
		assert.False(t, s.CanPlace(c[0], c[1]), "%v", c)
		_, ok := s.AddSeat(model.SeatUnavailable, c[0], c[1])
		assert.False(t, ok, "%v", c)
	}
	assert.Empty(t, s.Layout().Seats)

	l, ok := s.AddSeat(model.SeatUnavailable, model.MaxGridIndex, model.MaxGridIndex)
	require.True(t, ok)
	assert.Equal(t, model.MaxGridIndex+1, l.RowCount)
	assert.Equal(t, model.MaxGridIndex+1, l.ColumnCount)
	assert.Equal(t, "U100899", l.Seats[0].Number)
	assertInvariants(t, l)
}

func TestMoveSeatsBeyondGridRejected(t *testing.T) {
	s := newTestStore()
	l, _ := s.AddSeat(model.SeatRegular, 2, 2)
	id := l.Seats[0].ID
	before := s.Layout()

	for _, off := range [][2]int{
		{math.MaxInt, 0},
		{0, math.MaxInt - 1},
		{model.MaxGridIndex - 1, 0},
		{math.MinInt, 0},
	} {
		after, ok := s.MoveSeats([]string{id}, off[0], off[1])
		assert.False(t, ok, "%v", off)
		assert.Equal(t, before, after)
	}

	l, ok := s.MoveSeats([]string{id}, model.MaxGridIndex-2, 0)
	require.True(t, ok)
	assert.Equal(t, model.MaxGridIndex+1, l.RowCount)
	assertInvariants(t, l)
}

func TestAddSeatGrowsBounds(t *testing.T) {
	s := newTestStore()
	s.AddSeat(model.SeatRegular, 3, 1)
	l, _ := s.AddSeat(model.SeatRegular, 0, 6)
	assert.Equal(t, 4, l.RowCount)
	assert.Equal(t, 7, l.ColumnCount)
}

func TestRemoveLastSeatShrinksToZero(t *testing.T) {
	s := newTestStore()
	l, _ := s.AddSeat(model.SeatRegular, 0, 0)
	l, ok := s.RemoveSeat(l.Seats[0].ID)
	require.True(t, ok)
	assert.Empty(t, l.Seats)
	assert.Zero(t, l.RowCount)
	assert.Zero(t, l.ColumnCount)
}

func TestRemoveSeatShrinksBounds(t *testing.T) {
	s := newTestStore()
	s.AddSeat(model.SeatRegular, 0, 0)
	l, _ := s.AddSeat(model.SeatRegular, 5, 5)
	far := l.Seats[1].ID
	l, ok := s.RemoveSeat(far)
	require.True(t, ok)
	assert.Equal(t, 1, l.RowCount)
	assert.Equal(t, 1, l.ColumnCount)

	_, ok = s.RemoveSeat("missing")
	assert.False(t, ok)
}

func TestUpdateSeatType(t *testing.T) {
	s := newTestStore()
	l, _ := s.AddSeat(model.SeatRegular, 1, 2)
	id := l.Seats[0].ID

	l, ok := s.UpdateSeatType(id, model.SeatUnavailable)
	require.True(t, ok)
	assert.Equal(t, "U102", l.Seats[0].Number)
	assert.Equal(t, 1, l.Seats[0].Row)
	assert.Equal(t, 2, l.RowCount)
	assert.Equal(t, 3, l.ColumnCount)

	_, ok = s.UpdateSeatType(id, model.SeatUnavailable)
	assert.False(t, ok)
	_, ok = s.UpdateSeatType("missing", model.SeatVIP)
	assert.False(t, ok)
}

func TestMoveSeatsAtomic(t *testing.T) {
	s := newTestStore()
	s.AddSeat(model.SeatRegular, 0, 0)
	s.AddSeat(model.SeatRegular, 0, 1)
	l, _ := s.AddSeat(model.SeatRegular, 1, 2)
	a, b := l.Seats[0].ID, l.Seats[1].ID

	// b would land on the external seat at (1,2)
	before := s.Layout()
	after, ok := s.MoveSeats([]string{a, b}, 1, 1)
	assert.False(t, ok)
	assert.Equal(t, before, after)

	// negative destination for a
	_, ok = s.MoveSeats([]string{a, b}, 0, -1)
	assert.False(t, ok)
	assert.Equal(t, before, s.Layout())
}

func TestMoveSeatsWithinBatchOverlap(t *testing.T) {
	s := newTestStore()
	s.AddSeat(model.SeatRegular, 0, 0)
	s.AddSeat(model.SeatRegular, 0, 1)
	l, _ := s.AddSeat(model.SeatRegular, 0, 2)
	ids := []string{l.Seats[0].ID, l.Seats[1].ID, l.Seats[2].ID}

	// Every seat lands on a cell currently held by another batch member.
	l, ok := s.MoveSeats(ids, 0, 1)
	require.True(t, ok)
	assertInvariants(t, l)
	assert.Equal(t, 4, l.ColumnCount)
	assert.Equal(t, "A2", l.Seats[0].Number)
	assert.Equal(t, "A4", l.Seats[2].Number)
}

func TestMoveSeatsShrinksBounds(t *testing.T) {
	s := newTestStore()
	s.AddSeat(model.SeatRegular, 0, 0)
	l, _ := s.AddSeat(model.SeatVIP, 4, 4)
	l, ok := s.MoveSeats([]string{l.Seats[1].ID}, -3, -2)
	require.True(t, ok)
	assert.Equal(t, 2, l.RowCount)
	assert.Equal(t, 3, l.ColumnCount)
	assert.Equal(t, "B3", l.Seats[1].Number)
}

func TestMoveSeatsIgnoresUnknownIDs(t *testing.T) {
	s := newTestStore()
	l, _ := s.AddSeat(model.SeatRegular, 0, 0)
	_, ok := s.MoveSeats([]string{"ghost"}, 1, 0)
	assert.False(t, ok)
	l, ok = s.MoveSeats([]string{"ghost", l.Seats[0].ID}, 1, 0)
	require.True(t, ok)
	assert.Equal(t, 1, l.Seats[0].Row)
}

func TestBulkRetypeAndDelete(t *testing.T) {
	s := newTestStore()
	s.AddSeat(model.SeatRegular, 0, 0)
	s.AddSeat(model.SeatRegular, 0, 1)
	l, _ := s.AddSeat(model.SeatRegular, 2, 3)
	ids := []string{l.Seats[0].ID, l.Seats[2].ID, "ghost"}

	l, ok := s.BulkRetype(ids, model.SeatPremium)
	require.True(t, ok)
	assert.Equal(t, model.SeatPremium, l.Seats[0].Type)
	assert.Equal(t, model.SeatRegular, l.Seats[1].Type)
	assert.Equal(t, model.SeatPremium, l.Seats[2].Type)

	l, ok = s.BulkDelete(ids)
	require.True(t, ok)
	require.Len(t, l.Seats, 1)
	assert.Equal(t, 1, l.RowCount)
	assert.Equal(t, 2, l.ColumnCount)
}

func TestLayoutReturnsCopy(t *testing.T) {
	s := newTestStore()
	l, _ := s.AddSeat(model.SeatRegular, 0, 0)
	l.Seats[0].Row = 42
	assert.Equal(t, 0, s.Layout().Seats[0].Row)
}

func TestRandomMutationsKeepInvariants(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	s := newTestStore()
	for i := 0; i < 2000; i++ {
		l := s.Layout()
		switch rng.Intn(4) {
		case 0, 1:
			s.AddSeat(model.SeatTypes[rng.Intn(len(model.SeatTypes))], rng.Intn(8)-1, rng.Intn(8)-1)
		case 2:
			if len(l.Seats) > 0 {
				s.RemoveSeat(l.Seats[rng.Intn(len(l.Seats))].ID)
			}
		case 3:
			var ids []string
			for _, seat := range l.Seats {
				if rng.Intn(3) == 0 {
					ids = append(ids, seat.ID)
				}
			}
			s.MoveSeats(ids, rng.Intn(5)-2, rng.Intn(5)-2)
		}
		assertInvariants(t, s.Layout())
	}
}
