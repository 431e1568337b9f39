package session

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cppla/prepmeter/models"
)

func newManager(st *memStore, sink Sink, c *clock) *Manager {
	return NewManager(st, sink, nil, WithClock(c.Now), WithLocation(time.UTC))
}

func TestLogin_NewAccount(t *testing.T) {
	st := newMemStore()
	sink := &recordingSink{}
	c := &clock{t: t0}
	m := newManager(st, sink, c)

	s, err := m.Login(context.Background(), models.Identity{UserID: 9, DisplayName: "Kabir"})
	require.NoError(t, err)

	state := s.State()
	assert.Equal(t, 1, state.StudyStreak)
	require.NotNil(t, state.LastLogin)
	assert.Equal(t, "2026-03-15", state.DailyQuote.Date)
	assert.Equal(t, 1, st.creates)

	stored, ok := st.doc(9)
	require.True(t, ok)
	assert.True(t, models.SameDocument(state, stored), "bootstrap result is written before login returns")
	assert.Equal(t, 0, sink.count())
}

func TestLogin_ExistingYesterday(t *testing.T) {
	st := newMemStore()
	prev := models.NewUserState(models.Identity{UserID: 2}, t0)
	yesterday := t0.AddDate(0, 0, -1)
	prev.LastLogin = &yesterday
	prev.StudyStreak = 4
	st.docs[2] = prev

	m := newManager(st, nil, &clock{t: t0})
	s, err := m.Login(context.Background(), models.Identity{UserID: 2})
	require.NoError(t, err)

	assert.Equal(t, 5, s.State().StudyStreak)
	assert.Equal(t, 0, st.creates)
	assert.Equal(t, 1, st.writeCount())
}

func TestLogin_UnchangedSkipsWrite(t *testing.T) {
	st := newMemStore()
	m := newManager(st, nil, &clock{t: t0})
	ctx := context.Background()

	_, err := m.Login(ctx, models.Identity{UserID: 3})
	require.NoError(t, err)
	writes := st.writeCount()

	m.Logout(3)
	_, err = m.Login(ctx, models.Identity{UserID: 3})
	require.NoError(t, err)
	assert.Equal(t, writes, st.writeCount())
}

func TestLogin_ReusesSessionAndBootstrapsOncePerDay(t *testing.T) {
	st := newMemStore()
	c := &clock{t: t0}
	m := newManager(st, nil, c)
	ctx := context.Background()

	s1, err := m.Login(ctx, models.Identity{UserID: 4})
	require.NoError(t, err)
	s2, err := m.Login(ctx, models.Identity{UserID: 4})
	require.NoError(t, err)
	assert.Same(t, s1, s2)
	assert.Equal(t, 1, s1.State().StudyStreak)

	c.Advance(24 * time.Hour)
	_, err = m.Login(ctx, models.Identity{UserID: 4})
	require.NoError(t, err)
	assert.Equal(t, 2, s1.State().StudyStreak)
	assert.Equal(t, 1, m.Active())
}

func TestLogin_LoadFailureClearsSession(t *testing.T) {
	st := newMemStore()
	m := newManager(st, nil, &clock{t: t0})
	ctx := context.Background()

	s, err := m.Login(ctx, models.Identity{UserID: 5})
	require.NoError(t, err)
	m.Logout(5)
	assert.True(t, s.Closed())

	st.readErr = errBoom
	_, err = m.Login(ctx, models.Identity{UserID: 5})
	assert.ErrorIs(t, err, errBoom)

	_, err = m.Get(5)
	assert.ErrorIs(t, err, ErrNoSession)
}

func TestLogin_BootstrapWriteFailureFallsBackToSink(t *testing.T) {
	st := newMemStore()
	prev := models.NewUserState(models.Identity{UserID: 6}, t0)
	st.docs[6] = prev
	st.failWrites = 1
	sink := &recordingSink{}

	m := newManager(st, sink, &clock{t: t0})
	s, err := m.Login(context.Background(), models.Identity{UserID: 6})
	require.NoError(t, err)
	assert.Equal(t, 1, s.State().StudyStreak)
	assert.Equal(t, 1, sink.count())
}

func TestLogin_PrefersQueuedDocument(t *testing.T) {
	st := newMemStore()
	stale := models.NewUserState(models.Identity{UserID: 8}, t0)
	st.docs[8] = stale

	q := NewWriteQueue(st, nil, QueueOptions{})
	fresh := stale.Clone()
	fresh.Notes = "unsaved"
	q.Enqueue(8, fresh)

	m := newManager(st, q, &clock{t: t0})
	s, err := m.Login(context.Background(), models.Identity{UserID: 8})
	require.NoError(t, err)
	assert.Equal(t, "unsaved", s.State().Notes)
}

func TestSession_ApplyEnqueuesAndNotifies(t *testing.T) {
	st := newMemStore()
	sink := &recordingSink{}
	m := newManager(st, sink, &clock{t: t0})
	s, err := m.Login(context.Background(), models.Identity{UserID: 1})
	require.NoError(t, err)

	next, unlocked, err := s.Apply(func(st *models.UserState) error {
		st.StudyStreak = 7
		return nil
	}, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"streak-3", "streak-7"}, achievementIDs(unlocked))
	assert.Equal(t, 7, next.StudyStreak)
	assert.Equal(t, 1, sink.count())

	assert.Equal(t, []string{"streak-3", "streak-7"}, achievementIDs(s.Notifications()))
	assert.True(t, s.Dismiss("streak-3"))
	assert.False(t, s.Dismiss("streak-3"))
	assert.Equal(t, []string{"streak-7"}, achievementIDs(s.Notifications()))
	dismissedState := s.State()
	assert.True(t, dismissedState.HasAchievement("streak-3"), "dismissal keeps the achievement")

	// the returned state is a copy
	next.Notes = "local"
	assert.Equal(t, "", s.State().Notes)
}

func TestSession_ApplyAfterLogout(t *testing.T) {
	st := newMemStore()
	m := newManager(st, nil, &clock{t: t0})
	s, err := m.Login(context.Background(), models.Identity{UserID: 1})
	require.NoError(t, err)

	m.Logout(1)
	_, _, err = s.Apply(nil, nil)
	assert.ErrorIs(t, err, ErrSessionClosed)
	_, err = s.Bootstrap(context.Background())
	assert.ErrorIs(t, err, ErrSessionClosed)
}

func TestSession_SerializesUpdates(t *testing.T) {
	st := newMemStore()
	m := newManager(st, nil, &clock{t: t0})
	s, err := m.Login(context.Background(), models.Identity{UserID: 1})
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _, err := s.Apply(func(st *models.UserState) error {
				st.PersonalBestStudyHours++
				return nil
			}, nil)
			assert.NoError(t, err)
		}()
	}
	wg.Wait()
	assert.Equal(t, 50.0, s.State().PersonalBestStudyHours)
}
