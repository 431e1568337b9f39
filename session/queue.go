package session

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"github.com/cenkalti/backoff/v5"
	"go.uber.org/zap"

	"github.com/cppla/prepmeter/models"
)

// ErrQueueClosed is returned by Flush after Close.
var ErrQueueClosed = errors.New("write queue closed")

// Writer persists a whole document.
type Writer interface {
	Write(ctx context.Context, userID uint, state models.UserState) error
}

// QueueOptions tunes retries of the write queue.
type QueueOptions struct {
	MaxTries       uint
	InitialBackoff time.Duration
	MaxBackoff     time.Duration
	WriteTimeout   time.Duration
}

func (o QueueOptions) withDefaults() QueueOptions {
	if o.MaxTries == 0 {
		o.MaxTries = 5
	}
	if o.InitialBackoff <= 0 {
		o.InitialBackoff = 200 * time.Millisecond
	}
	if o.MaxBackoff <= 0 {
		o.MaxBackoff = 5 * time.Second
	}
	if o.WriteTimeout <= 0 {
		o.WriteTimeout = 5 * time.Second
	}
	return o
}

type pendingWrite struct {
	userID uint
	state  models.UserState
}

// WriteQueue persists documents in the background so updates never wait on storage.
//
// Each user has at most one queued document: a newer enqueue replaces the older one but keeps
// its place in line. A single worker drains the line in order, retrying each write with
// exponential backoff. A write that exhausts its tries is logged and counted; the in-memory
// state is not rolled back.
type WriteQueue struct {
	w      Writer
	logger *zap.Logger
	opts   QueueOptions

	mu       sync.Mutex
	pending  map[uint]models.UserState
	order    []uint
	inflight *pendingWrite
	idle     chan struct{}
	closed   bool

	wake   chan struct{}
	ctx    context.Context
	cancel context.CancelFunc
	done   chan struct{}
	start  sync.Once

	written  atomic.Int64
	failures atomic.Int64
}

// NewWriteQueue builds a queue over w. Call Start before enqueueing.
func NewWriteQueue(w Writer, logger *zap.Logger, opts QueueOptions) *WriteQueue {
	if logger == nil {
		logger = zap.NewNop()
	}
	ctx, cancel := context.WithCancel(context.Background())
	idle := make(chan struct{})
	close(idle)
	return &WriteQueue{
		w:       w,
		logger:  logger,
		opts:    opts.withDefaults(),
		pending: make(map[uint]models.UserState),
		idle:    idle,
		wake:    make(chan struct{}, 1),
		ctx:     ctx,
		cancel:  cancel,
		done:    make(chan struct{}),
	}
}

// Start launches the worker. Calling it more than once has no effect.
func (q *WriteQueue) Start() {
	q.start.Do(func() { go q.run() })
}

// Enqueue schedules state as userID's next document. It never blocks on storage.
func (q *WriteQueue) Enqueue(userID uint, state models.UserState) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.closed {
		q.failures.Add(1)
		q.logger.Error("write queue closed, dropping document", zap.Uint("user_id", userID))
		return
	}
	if q.isIdleLocked() {
		q.idle = make(chan struct{})
	}
	if _, queued := q.pending[userID]; !queued {
		q.order = append(q.order, userID)
	}
	q.pending[userID] = state
	select {
	case q.wake <- struct{}{}:
	default:
	}
}

// Pending reports whether a document for userID is queued or being written.
func (q *WriteQueue) Pending(userID uint) bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	if _, ok := q.pending[userID]; ok {
		return true
	}
	return q.inflight != nil && q.inflight.userID == userID
}

// Latest returns the newest document for userID that has not been confirmed written.
func (q *WriteQueue) Latest(userID uint) (models.UserState, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if s, ok := q.pending[userID]; ok {
		return s, true
	}
	if q.inflight != nil && q.inflight.userID == userID {
		return q.inflight.state, true
	}
	return models.UserState{}, false
}

// Failures counts documents dropped after exhausting retries.
func (q *WriteQueue) Failures() int64 { return q.failures.Load() }

// Written counts documents persisted successfully.
func (q *WriteQueue) Written() int64 { return q.written.Load() }

// Flush waits until every queued document has been written or dropped.
func (q *WriteQueue) Flush(ctx context.Context) error {
	q.mu.Lock()
	idle := q.idle
	q.mu.Unlock()
	select {
	case <-idle:
		return nil
	case <-q.done:
		if q.Len() > 0 {
			return ErrQueueClosed
		}
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Len is the number of queued documents, excluding one in flight.
func (q *WriteQueue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.order)
}

// Close drains the queue within ctx, then stops the worker. Documents still queued when ctx
// expires are dropped.
func (q *WriteQueue) Close(ctx context.Context) error {
	err := q.Flush(ctx)
	q.mu.Lock()
	q.closed = true
	q.mu.Unlock()
	q.cancel()
	q.Start()
	<-q.done
	return err
}

func (q *WriteQueue) isIdleLocked() bool {
	return len(q.order) == 0 && q.inflight == nil
}

func (q *WriteQueue) run() {
	defer close(q.done)
	for {
		next, ok := q.next()
		if !ok {
			select {
			case <-q.wake:
				continue
			case <-q.ctx.Done():
				return
			}
		}
		q.persist(next)

		q.mu.Lock()
		q.inflight = nil
		if q.isIdleLocked() {
			close(q.idle)
		}
		q.mu.Unlock()
	}
}

func (q *WriteQueue) next() (pendingWrite, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if len(q.order) == 0 {
		return pendingWrite{}, false
	}
	id := q.order[0]
	q.order = q.order[1:]
	pw := pendingWrite{userID: id, state: q.pending[id]}
	delete(q.pending, id)
	q.inflight = &pw
	return pw, true
}

func (q *WriteQueue) persist(pw pendingWrite) {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = q.opts.InitialBackoff
	b.MaxInterval = q.opts.MaxBackoff

	attempts := 0
	op := func() (struct{}, error) {
		attempts++
		ctx, cancel := context.WithTimeout(q.ctx, q.opts.WriteTimeout)
		defer cancel()
		return struct{}{}, q.w.Write(ctx, pw.userID, pw.state)
	}
	notify := func(err error, wait time.Duration) {
		q.logger.Warn("state write failed, retrying",
			zap.Uint("user_id", pw.userID),
			zap.Int("attempt", attempts),
			zap.Duration("retry_in", wait),
			zap.Error(err))
	}

	_, err := backoff.Retry(q.ctx, op,
		backoff.WithBackOff(b),
		backoff.WithMaxTries(q.opts.MaxTries),
		backoff.WithNotify(notify))
	if err != nil {
		q.failures.Add(1)
		q.logger.Error("state write dropped",
			zap.Uint("user_id", pw.userID),
			zap.Int("attempts", attempts),
			zap.Error(err))
		return
	}
	q.written.Add(1)
}
