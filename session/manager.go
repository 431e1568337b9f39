package session

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/cppla/prepmeter/models"
	"github.com/cppla/prepmeter/store"
)

// Store is the document store behind sessions.
type Store interface {
	Read(ctx context.Context, userID uint) (models.UserState, error)
	Write(ctx context.Context, userID uint, state models.UserState) error
	Create(ctx context.Context, id models.Identity, now time.Time) (models.UserState, error)
}

// Option configures a Manager.
type Option func(*Manager)

// WithLocation sets the calendar used for day boundaries.
func WithLocation(loc *time.Location) Option {
	return func(m *Manager) {
		if loc != nil {
			m.loc = loc
		}
	}
}

// WithClock overrides the time source.
func WithClock(now func() time.Time) Option {
	return func(m *Manager) {
		if now != nil {
			m.clockFn = now
		}
	}
}

// WithEngine overrides the update engine.
func WithEngine(e Engine) Option {
	return func(m *Manager) { m.engine = e }
}

// Manager keeps one live session per logged-in user.
type Manager struct {
	store   Store
	sink    Sink
	engine  Engine
	logger  *zap.Logger
	loc     *time.Location
	clockFn func() time.Time

	mu       sync.Mutex
	sessions map[uint]*Session
}

// NewManager wires sessions to a store and a background sink. sink may be nil, in which case
// updates are kept in memory only.
func NewManager(st Store, sink Sink, logger *zap.Logger, opts ...Option) *Manager {
	if logger == nil {
		logger = zap.NewNop()
	}
	m := &Manager{
		store:    st,
		sink:     sink,
		engine:   DefaultEngine,
		logger:   logger,
		loc:      time.Local,
		clockFn:  time.Now,
		sessions: make(map[uint]*Session),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

func (m *Manager) now() time.Time {
	return m.clockFn().In(m.loc)
}

// latestSource lets Login prefer a document still waiting in the write queue over a stale read.
type latestSource interface {
	Latest(userID uint) (models.UserState, bool)
}

// Login resolves the user's session: reuse a live one, else load the document or create it for
// a new account. The daily bootstrap runs before returning. A load failure drops any session
// for the user and is returned.
func (m *Manager) Login(ctx context.Context, id models.Identity) (*Session, error) {
	m.mu.Lock()
	s, ok := m.sessions[id.UserID]
	m.mu.Unlock()

	if !ok {
		state, err := m.load(ctx, id)
		if err != nil {
			m.Logout(id.UserID)
			return nil, err
		}
		s = newSession(id.UserID, state, m)

		m.mu.Lock()
		if existing, raced := m.sessions[id.UserID]; raced {
			s = existing
		} else {
			m.sessions[id.UserID] = s
		}
		m.mu.Unlock()
	}

	if _, err := s.Bootstrap(ctx); err != nil {
		return nil, err
	}
	return s, nil
}

func (m *Manager) load(ctx context.Context, id models.Identity) (models.UserState, error) {
	if src, ok := m.sink.(latestSource); ok {
		if state, queued := src.Latest(id.UserID); queued {
			return state.Clone(), nil
		}
	}

	state, err := m.store.Read(ctx, id.UserID)
	if err == nil {
		return state, nil
	}
	if !errors.Is(err, store.ErrNotFound) {
		m.logger.Error("load user state failed", zap.Uint("user_id", id.UserID), zap.Error(err))
		return models.UserState{}, fmt.Errorf("load state: %w", err)
	}

	state, err = m.store.Create(ctx, id, m.now())
	if err != nil {
		m.logger.Error("create user state failed", zap.Uint("user_id", id.UserID), zap.Error(err))
		return models.UserState{}, fmt.Errorf("create state: %w", err)
	}
	m.logger.Info("created user state", zap.Uint("user_id", id.UserID))
	return state, nil
}

// Get returns the live session of userID.
func (m *Manager) Get(userID uint) (*Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[userID]
	if !ok {
		return nil, ErrNoSession
	}
	return s, nil
}

// Logout closes and forgets the user's session. Queued writes still complete.
func (m *Manager) Logout(userID uint) {
	m.mu.Lock()
	s, ok := m.sessions[userID]
	delete(m.sessions, userID)
	m.mu.Unlock()
	if ok {
		s.Close()
	}
}

// Active is the number of live sessions.
func (m *Manager) Active() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sessions)
}
