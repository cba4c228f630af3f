package editor

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistryLifecycle(t *testing.T) {
	r := NewRegistry(Options{HistoryLimit: 5})
	s := r.Create()
	assert.Equal(t, 1, r.Len())

	got, err := r.Get(s.ID())
	require.NoError(t, err)
	assert.Same(t, s, got)

	require.NoError(t, r.Delete(s.ID()))
	_, err = r.Get(s.ID())
	assert.ErrorIs(t, err, ErrSessionNotFound)
	assert.ErrorIs(t, r.Delete(s.ID()), ErrSessionNotFound)
}

func TestRegistrySessionsAreIndependent(t *testing.T) {
	r := NewRegistry(Options{})
	a, b := r.Create(), r.Create()
	assert.NotEqual(t, a.ID(), b.ID())
	a.CreateEmpty("A", testPrices)
	b.CreateEmpty("B", testPrices)
	a.AddSeat("regular", 0, 0)
	assert.Empty(t, mustLayout(t, b).Seats)
}

func TestRegistryExpire(t *testing.T) {
	r := NewRegistry(Options{})
	old := r.Create()
	fresh := r.Create()
	old.mu.Lock()
	old.updatedAt = time.Now().UTC().Add(-2 * time.Hour)
	old.mu.Unlock()

	assert.Equal(t, 1, r.Expire(time.Hour))
	_, err := r.Get(old.ID())
	assert.ErrorIs(t, err, ErrSessionNotFound)
	_, err = r.Get(fresh.ID())
	assert.NoError(t, err)
}

func TestRunJanitorStopsWithContext(t *testing.T) {
	r := NewRegistry(Options{})
	s := r.Create()
	s.mu.Lock()
	s.updatedAt = time.Now().UTC().Add(-time.Hour)
	s.mu.Unlock()

	ctx, cancel := context.WithCancel(context.Background())
	stopped := make(chan struct{})
	go func() {
		r.RunJanitor(ctx, 5*time.Millisecond, time.Minute)
		close(stopped)
	}()

	assert.Eventually(t, func() bool { return r.Len() == 0 }, time.Second, 5*time.Millisecond)
	cancel()
	select {
	case <-stopped:
	case <-time.After(time.Second):
		t.Fatal("janitor did not stop")
	}
}
