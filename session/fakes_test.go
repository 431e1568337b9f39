package session

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/cppla/prepmeter/models"
	"github.com/cppla/prepmeter/store"
)

var errBoom = errors.New("boom")

type memStore struct {
	mu      sync.Mutex
	docs    map[uint]models.UserState
	writes  int
	creates int
	readErr error
	// failWrites makes the next n writes fail.
	failWrites int
}

func newMemStore() *memStore {
	return &memStore{docs: map[uint]models.UserState{}}
}

func (m *memStore) Read(_ context.Context, userID uint) (models.UserState, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.readErr != nil {
		return models.UserState{}, m.readErr
	}
	s, ok := m.docs[userID]
	if !ok {
		return models.UserState{}, store.ErrNotFound
	}
	return s.Clone(), nil
}

func (m *memStore) Write(_ context.Context, userID uint, state models.UserState) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.writes++
	if m.failWrites > 0 {
		m.failWrites--
		return errBoom
	}
	m.docs[userID] = state.Clone()
	return nil
}

func (m *memStore) Create(_ context.Context, id models.Identity, now time.Time) (models.UserState, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.creates++
	s := models.NewUserState(id, now)
	m.docs[id.UserID] = s.Clone()
	return s, nil
}

func (m *memStore) doc(userID uint) (models.UserState, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.docs[userID]
	return s, ok
}

func (m *memStore) writeCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.writes
}

type recordingSink struct {
	mu   sync.Mutex
	docs []models.UserState
}

func (r *recordingSink) Enqueue(_ uint, state models.UserState) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.docs = append(r.docs, state)
}

func (r *recordingSink) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.docs)
}

type clock struct {
	mu sync.Mutex
	t  time.Time
}

func (c *clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *clock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.t = c.t.Add(d)
}
