package session

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/cppla/prepmeter/gamification"
	"github.com/cppla/prepmeter/models"
)

var (
	// ErrSessionClosed is returned for updates after logout.
	ErrSessionClosed = errors.New("session closed")
	// ErrNoSession means the user has no live session.
	ErrNoSession = errors.New("no active session")
)

// Sink accepts documents for background persistence.
type Sink interface {
	Enqueue(userID uint, state models.UserState)
}

// Session owns one user's in-memory state. Every read-modify-write goes through its mutex, so
// two updates never interleave. The held state is replaced wholesale and never mutated in place.
type Session struct {
	userID uint
	engine Engine
	writer Writer
	sink   Sink
	clock  func() time.Time
	logger *zap.Logger

	mu            sync.Mutex
	state         models.UserState
	notifications []models.Achievement
	bootstrapDay  string
	closed        bool
}

func newSession(userID uint, state models.UserState, m *Manager) *Session {
	return &Session{
		userID: userID,
		engine: m.engine,
		writer: m.store,
		sink:   m.sink,
		clock:  m.now,
		logger: m.logger,
		state:  state,
	}
}

// UserID is the owner of the session.
func (s *Session) UserID() uint { return s.userID }

// Now is the session clock in the manager's location. Actions built for Apply should use it.
func (s *Session) Now() time.Time { return s.clock() }

// Today is the current calendar day as "YYYY-MM-DD".
func (s *Session) Today() string { return s.clock().Format(gamification.DateLayout) }

// State returns a copy of the current state.
func (s *Session) State() models.UserState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Clone()
}

// Apply runs one update pass and makes its result authoritative. The new document is handed to
// the sink without waiting for storage. Unlocked achievements are also queued as notifications.
func (s *Session) Apply(update Updater, event *models.Event) (models.UserState, []models.Achievement, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return models.UserState{}, nil, ErrSessionClosed
	}

	candidate, unlocked, err := s.engine.Apply(&s.state, update, event, s.clock())
	if err != nil {
		return models.UserState{}, nil, err
	}
	s.state = candidate
	s.notifications = append(s.notifications, unlocked...)
	if s.sink != nil {
		s.sink.Enqueue(s.userID, candidate)
	}
	return candidate.Clone(), unlocked, nil
}

// Bootstrap runs the daily login update at most once per calendar day. When it changes the
// document the result is written synchronously; a failed write is logged and handed to the sink
// for retry. It reports whether the state changed.
func (s *Session) Bootstrap(ctx context.Context) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return false, ErrSessionClosed
	}

	now := s.clock()
	today := now.Format(gamification.DateLayout)
	if s.bootstrapDay == today {
		return false, nil
	}
	s.bootstrapDay = today

	candidate := s.state.Clone()
	gamification.Bootstrap(&candidate, now)
	if models.SameDocument(s.state, candidate) {
		return false, nil
	}
	s.state = candidate

	if s.writer != nil {
		if err := s.writer.Write(ctx, s.userID, candidate); err != nil {
			s.logger.Error("bootstrap write failed",
				zap.Uint("user_id", s.userID),
				zap.Error(err))
			if s.sink != nil {
				s.sink.Enqueue(s.userID, candidate)
			}
		}
	}
	return true, nil
}

// Notifications lists unlocked achievements that have not been dismissed, oldest first.
func (s *Session) Notifications() []models.Achievement {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.Achievement, len(s.notifications))
	copy(out, s.notifications)
	return out
}

// Dismiss removes one notification. The achievement itself stays unlocked.
func (s *Session) Dismiss(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, a := range s.notifications {
		if a.ID == id {
			s.notifications = append(s.notifications[:i], s.notifications[i+1:]...)
			return true
		}
	}
	return false
}

// Close rejects further updates.
func (s *Session) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	s.notifications = nil
}

// Closed reports whether the session was closed.
func (s *Session) Closed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closed
}
