package cache

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/seat-layout-editor/internal/model"
)

func sampleLayout() model.TheaterLayout {
	return model.TheaterLayout{
		ID:          "L1",
		Name:        "Main",
		Prices:      model.SeatPrice{Regular: 10, Premium: 15, VIP: 25},
		Seats:       []model.Seat{model.NewSeat("s1", model.SeatVIP, 1, 2)},
		RowCount:    2,
		ColumnCount: 3,
	}
}

func TestPutDraft(t *testing.T) {
	db, mock := redismock.NewClientMock()
	store := NewDraftStore(db, time.Hour)
	l := sampleLayout()
	payload, err := json.Marshal(l)
	require.NoError(t, err)

	mock.ExpectSet("draft:sess-1", payload, time.Hour).SetVal("OK")
	require.NoError(t, store.Put(context.Background(), "sess-1", l))

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("there were unfulfilled expectations: %s", err)
	}
}

func TestPutDraftRedisError(t *testing.T) {
	db, mock := redismock.NewClientMock()
	store := NewDraftStore(db, 0)
	payload, _ := json.Marshal(sampleLayout())

	mock.ExpectSet("draft:sess-1", payload, DefaultDraftTTL).SetErr(errors.New("READONLY"))
	err := store.Put(context.Background(), "sess-1", sampleLayout())
	assert.ErrorContains(t, err, "READONLY")
}

func TestGetDraft(t *testing.T) {
	db, mock := redismock.NewClientMock()
	store := NewDraftStore(db, time.Hour)
	payload, _ := json.Marshal(sampleLayout())

	mock.ExpectGet("draft:sess-1").SetVal(string(payload))
	got, err := store.Get(context.Background(), "sess-1")
	require.NoError(t, err)
	assert.Equal(t, sampleLayout(), got)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetDraftRecomputesDerivedFields(t *testing.T) {
	db, mock := redismock.NewClientMock()
	store := NewDraftStore(db, time.Hour)

	mock.ExpectGet("draft:x").SetVal(`{"id":"L1","name":"Main","seats":[{"id":"s1","type":"unavailable","row":0,"column":4,"number":"A5"}],"row_count":9,"column_count":9}`)
	got, err := store.Get(context.Background(), "x")
	require.NoError(t, err)
	assert.Equal(t, "U4", got.Seats[0].Number)
	assert.Equal(t, 1, got.RowCount)
	assert.Equal(t, 5, got.ColumnCount)
}

func TestGetMissingDraft(t *testing.T) {
	db, mock := redismock.NewClientMock()
	store := NewDraftStore(db, time.Hour)

	mock.ExpectGet("draft:gone").RedisNil()
	_, err := store.Get(context.Background(), "gone")
	assert.ErrorIs(t, err, ErrDraftNotFound)
}

func TestGetCorruptDraft(t *testing.T) {
	db, mock := redismock.NewClientMock()
	store := NewDraftStore(db, time.Hour)

	mock.ExpectGet("draft:bad").SetVal("{not json")
	_, err := store.Get(context.Background(), "bad")
	assert.ErrorContains(t, err, "decode draft bad")
}

func TestDeleteDraft(t *testing.T) {
	db, mock := redismock.NewClientMock()
	store := NewDraftStore(db, time.Hour)

	mock.ExpectDel("draft:sess-1").SetVal(1)
	require.NoError(t, store.Delete(context.Background(), "sess-1"))
	assert.NoError(t, mock.ExpectationsWereMet())
}
