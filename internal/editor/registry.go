package editor

import (
	"context"
	"errors"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"
)

// ErrSessionNotFound is returned for unknown session ids.
var ErrSessionNotFound = errors.New("editor: session not found")

// Registry holds the live sessions of the process, one per operator tab.
// Sessions are independent; each one serializes its own events.
type Registry struct {
	mu       sync.RWMutex
	sessions map[string]*Session
	opts     Options
}

// NewRegistry returns an empty registry whose sessions are built with opts.
func NewRegistry(opts Options) *Registry {
	return &Registry{sessions: map[string]*Session{}, opts: opts}
}

// Create registers a new, empty session.
func (r *Registry) Create() *Session {
	s := NewSession(uuid.NewString(), r.opts)
	r.mu.Lock()
	r.sessions[s.ID()] = s
	r.mu.Unlock()
	return s
}

// Get returns the session with the given id.
func (r *Registry) Get(id string) (*Session, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.sessions[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	return s, nil
}

// Delete ends a session.  Any save still in flight completes on its own.
func (r *Registry) Delete(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.sessions[id]; !ok {
		return ErrSessionNotFound
	}
	delete(r.sessions, id)
	return nil
}

// Len returns the number of live sessions.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}

// Expire drops sessions idle for longer than ttl and returns how many
// were removed.
func (r *Registry) Expire(ttl time.Duration) int {
	cutoff := time.Now().UTC().Add(-ttl)
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for id, s := range r.sessions {
		if s.UpdatedAt().Before(cutoff) {
			delete(r.sessions, id)
			n++
		}
	}
	return n
}

// RunJanitor expires idle sessions every interval until ctx is done.
func (r *Registry) RunJanitor(ctx context.Context, every, ttl time.Duration) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()

	log.Printf("editor: session janitor started (every=%s ttl=%s)", every, ttl)
	for {
		select {
		case <-ctx.Done():
			log.Println("editor: session janitor stopped")
			return
		case <-ticker.C:
			if n := r.Expire(ttl); n > 0 {
				log.Printf("editor: expired %d idle sessions", n)
			}
		}
	}
}
