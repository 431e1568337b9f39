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

func fastOpts() QueueOptions {
	return QueueOptions{
		MaxTries:       3,
		InitialBackoff: time.Millisecond,
		MaxBackoff:     5 * time.Millisecond,
		WriteTimeout:   time.Second,
	}
}

func flush(t *testing.T, q *WriteQueue) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	require.NoError(t, q.Flush(ctx))
}

func TestWriteQueue_WritesLatest(t *testing.T) {
	st := newMemStore()
	q := NewWriteQueue(st, nil, fastOpts())

	for i := 1; i <= 3; i++ {
		s := baseState()
		s.StudyStreak = i
		q.Enqueue(1, s)
	}
	assert.True(t, q.Pending(1))
	assert.Equal(t, 1, q.Len(), "enqueues for one user coalesce")

	q.Start()
	flush(t, q)

	doc, ok := st.doc(1)
	require.True(t, ok)
	assert.Equal(t, 3, doc.StudyStreak)
	assert.False(t, q.Pending(1))
	assert.Equal(t, int64(1), q.Written())
	require.NoError(t, q.Close(context.Background()))
}

func TestWriteQueue_RetriesThenSucceeds(t *testing.T) {
	st := newMemStore()
	st.failWrites = 2
	q := NewWriteQueue(st, nil, fastOpts())
	q.Start()
	defer q.Close(context.Background())

	q.Enqueue(1, baseState())
	flush(t, q)

	_, ok := st.doc(1)
	assert.True(t, ok)
	assert.Equal(t, 3, st.writeCount())
	assert.Equal(t, int64(0), q.Failures())
}

func TestWriteQueue_DropsAfterMaxTries(t *testing.T) {
	st := newMemStore()
	st.failWrites = 10
	q := NewWriteQueue(st, nil, fastOpts())
	q.Start()
	defer q.Close(context.Background())

	q.Enqueue(1, baseState())
	flush(t, q)

	_, ok := st.doc(1)
	assert.False(t, ok)
	assert.Equal(t, 3, st.writeCount())
	assert.Equal(t, int64(1), q.Failures())
	assert.False(t, q.Pending(1))
}

type orderedWriter struct {
	mu    sync.Mutex
	users []uint
}

func (w *orderedWriter) Write(_ context.Context, userID uint, _ models.UserState) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.users = append(w.users, userID)
	return nil
}

func TestWriteQueue_IssueOrder(t *testing.T) {
	w := &orderedWriter{}
	q := NewWriteQueue(w, nil, fastOpts())
	q.Enqueue(3, baseState())
	q.Enqueue(1, baseState())
	q.Enqueue(3, baseState())
	q.Enqueue(2, baseState())

	q.Start()
	flush(t, q)
	require.NoError(t, q.Close(context.Background()))
	assert.Equal(t, []uint{3, 1, 2}, w.users)
}

func TestWriteQueue_CloseDropsLateEnqueue(t *testing.T) {
	st := newMemStore()
	q := NewWriteQueue(st, nil, fastOpts())
	q.Start()
	require.NoError(t, q.Close(context.Background()))

	q.Enqueue(1, baseState())
	assert.Equal(t, int64(1), q.Failures())
	assert.False(t, q.Pending(1))
}

func TestWriteQueue_FlushHonoursContext(t *testing.T) {
	q := NewWriteQueue(newMemStore(), nil, fastOpts())
	q.Enqueue(1, baseState())

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	assert.ErrorIs(t, q.Flush(ctx), context.DeadlineExceeded)
}
