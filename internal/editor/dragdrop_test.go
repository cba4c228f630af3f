package editor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/seat-layout-editor/internal/grid"
	"github.com/iliyamo/seat-layout-editor/internal/model"
)

func TestDropNewSeatFromPalette(t *testing.T) {
	s := newTestSession(t, Options{})
	require.True(t, s.PickUp(Payload{Kind: PayloadNewSeat, SeatType: model.SeatPremium}))
	_, dragging := s.Dragging()
	assert.True(t, dragging)

	x, y := px(2, 3)
	require.True(t, s.DropAt(x, y))
	seat, ok := mustLayout(t, s).SeatAt(2, 3)
	require.True(t, ok)
	assert.Equal(t, model.SeatPremium, seat.Type)
	_, dragging = s.Dragging()
	assert.False(t, dragging)
}

func TestDropOutsideGridIsNoop(t *testing.T) {
	s := newTestSession(t, Options{})
	require.True(t, s.PickUp(Payload{Kind: PayloadNewSeat, SeatType: model.SeatVIP}))
	assert.False(t, s.DropAt(1, 1))
	assert.Empty(t, mustLayout(t, s).Seats)
	assert.Equal(t, 1, s.Snapshot().HistoryLength)
	_, dragging := s.Dragging()
	assert.False(t, dragging)
}

func TestDropOnOccupiedCellIsNoop(t *testing.T) {
	s := newTestSession(t, Options{})
	s.AddSeat(model.SeatRegular, 0, 0)
	require.True(t, s.PickUp(Payload{Kind: PayloadNewSeat, SeatType: model.SeatVIP}))
	assert.False(t, s.Drop(grid.Cell{Row: 0, Column: 0}))
	seat, _ := mustLayout(t, s).SeatAt(0, 0)
	assert.Equal(t, model.SeatRegular, seat.Type)
}

func TestMalformedPayloadRefused(t *testing.T) {
	s := newTestSession(t, Options{})
	assert.False(t, s.PickUp(Payload{Kind: PayloadNewSeat, SeatType: "balcony"}))
	assert.False(t, s.PickUp(Payload{Kind: PayloadMoveSeat}))
	assert.False(t, s.PickUp(Payload{Kind: "teleport"}))
	assert.False(t, s.Drop(grid.Cell{}))
}

func TestDragSelectionMovesAsGroup(t *testing.T) {
	s := newTestSession(t, Options{})
	s.AddSeat(model.SeatRegular, 0, 0)
	s.AddSeat(model.SeatRegular, 0, 1)
	a, b := seatIDAt(t, s, 0, 0), seatIDAt(t, s, 0, 1)
	s.Select(a, false)
	s.Select(b, true)

	require.True(t, s.PickUpSeat(a))
	p, _ := s.Dragging()
	assert.ElementsMatch(t, []string{a, b}, p.SeatIDs)

	require.True(t, s.Drop(grid.Cell{Row: 2, Column: 0}))
	l := mustLayout(t, s)
	sa, _ := l.SeatByID(a)
	sb, _ := l.SeatByID(b)
	assert.Equal(t, grid.Cell{Row: 2, Column: 0}, grid.Cell{Row: sa.Row, Column: sa.Column})
	assert.Equal(t, grid.Cell{Row: 2, Column: 1}, grid.Cell{Row: sb.Row, Column: sb.Column})
	assert.Equal(t, 3, l.RowCount)
}

func TestDragUnselectedSeatMovesAlone(t *testing.T) {
	s := newTestSession(t, Options{})
	s.AddSeat(model.SeatRegular, 0, 0)
	s.AddSeat(model.SeatRegular, 0, 1)
	a, b := seatIDAt(t, s, 0, 0), seatIDAt(t, s, 0, 1)
	s.Select(b, false)

	require.True(t, s.PickUpSeat(a))
	require.True(t, s.Drop(grid.Cell{Row: 1, Column: 0}))
	sb, _ := mustLayout(t, s).SeatByID(b)
	assert.Equal(t, 0, sb.Row)
}

func TestDropWithStaleSeatIDs(t *testing.T) {
	s := newTestSession(t, Options{})
	s.AddSeat(model.SeatRegular, 0, 0)
	a := seatIDAt(t, s, 0, 0)
	require.True(t, s.PickUp(Payload{Kind: PayloadMoveSeat, SeatIDs: []string{a, "gone"}, Origin: grid.Cell{}}))
	require.True(t, s.Drop(grid.Cell{Row: 1, Column: 1}))
	seat, _ := mustLayout(t, s).SeatByID(a)
	assert.Equal(t, 1, seat.Row)
	assert.Equal(t, 1, seat.Column)

	require.True(t, s.PickUp(Payload{Kind: PayloadMoveSeat, SeatIDs: []string{"gone"}, Origin: grid.Cell{}}))
	assert.False(t, s.Drop(grid.Cell{Row: 3, Column: 3}))
}

func TestUndoCancelsDrag(t *testing.T) {
	s := newTestSession(t, Options{})
	s.AddSeat(model.SeatRegular, 0, 0)
	require.True(t, s.PickUpSeat(seatIDAt(t, s, 0, 0)))
	s.Undo()
	_, dragging := s.Dragging()
	assert.False(t, dragging)
}

func TestCancelDrag(t *testing.T) {
	s := newTestSession(t, Options{})
	require.True(t, s.PickUp(Payload{Kind: PayloadNewSeat, SeatType: model.SeatRegular}))
	s.CancelDrag()
	assert.False(t, s.Drop(grid.Cell{Row: 0, Column: 0}))
	assert.Empty(t, mustLayout(t, s).Seats)
}
