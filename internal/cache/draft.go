// Package cache keeps autosaved drafts of in-progress layouts in Redis so
// an operator can pick up a session after a restart or a closed tab.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/iliyamo/seat-layout-editor/internal/model"
)

// ErrDraftNotFound is returned when no draft exists for an id, including
// drafts that have expired.
var ErrDraftNotFound = errors.New("draft not found")

// DefaultDraftTTL applies when the store is built with a non-positive TTL.
const DefaultDraftTTL = 24 * time.Hour

// DraftStore reads and writes drafts under "<prefix>:<id>".
type DraftStore struct {
	rdb    redis.Cmdable
	ttl    time.Duration
	prefix string
}

// NewDraftStore returns a store writing drafts that live for ttl.
func NewDraftStore(rdb redis.Cmdable, ttl time.Duration) *DraftStore {
	if ttl <= 0 {
		ttl = DefaultDraftTTL
	}
	return &DraftStore{rdb: rdb, ttl: ttl, prefix: "draft"}
}

func (s *DraftStore) key(id string) string { return s.prefix + ":" + id }

// Put stores the layout as the draft for id, replacing any previous one
// and restarting its TTL.
func (s *DraftStore) Put(ctx context.Context, id string, l model.TheaterLayout) error {
	payload, err := json.Marshal(l)
	if err != nil {
		return fmt.Errorf("encode draft: %w", err)
	}
	if err := s.rdb.Set(ctx, s.key(id), payload, s.ttl).Err(); err != nil {
		return fmt.Errorf("store draft %s: %w", id, err)
	}
	return nil
}

// Get returns the draft for id.
func (s *DraftStore) Get(ctx context.Context, id string) (model.TheaterLayout, error) {
	bs, err := s.rdb.Get(ctx, s.key(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return model.TheaterLayout{}, ErrDraftNotFound
		}
		return model.TheaterLayout{}, fmt.Errorf("load draft %s: %w", id, err)
	}
	var l model.TheaterLayout
	if err := json.Unmarshal(bs, &l); err != nil {
		return model.TheaterLayout{}, fmt.Errorf("decode draft %s: %w", id, err)
	}
	// numbers and bounds are derived; never trust them from storage
	for i := range l.Seats {
		l.Seats[i] = model.NewSeat(l.Seats[i].ID, l.Seats[i].Type, l.Seats[i].Row, l.Seats[i].Column)
	}
	l.RowCount, l.ColumnCount = model.Bounds(l.Seats)
	return l, nil
}

// Delete drops the draft for id.  Deleting a missing draft is not an error.
func (s *DraftStore) Delete(ctx context.Context, id string) error {
	return s.rdb.Del(ctx, s.key(id)).Err()
}
