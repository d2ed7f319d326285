// Package audit records write operations. Records are queued in memory and
// delivered to sinks by a background worker so request handling never waits
// on the audit store.
package audit

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/vietanh2810/shared-experiences-api/internal/domain"
)

const sinkTimeout = 5 * time.Second

type Sink interface {
	Append(ctx context.Context, rec domain.AuditRecord) error
}

// SinkFunc adapts a plain function to Sink.
type SinkFunc func(ctx context.Context, rec domain.AuditRecord) error

func (f SinkFunc) Append(ctx context.Context, rec domain.AuditRecord) error {
	return f(ctx, rec)
}

type Queue struct {
	ch    chan domain.AuditRecord
	sinks []Sink

	mu     sync.RWMutex
	closed bool
	done   chan struct{}

	dropped atomic.Int64
}

func NewQueue(size int, sinks ...Sink) *Queue {
	if size < 1 {
		size = 1
	}

	return &Queue{
		ch:    make(chan domain.AuditRecord, size),
		sinks: sinks,
		done:  make(chan struct{}),
	}
}

// Start launches the delivery worker. Call it once.
func (q *Queue) Start() {
	go q.run()
}

// Enqueue hands a record to the worker without blocking. It returns false
// when the record was dropped because the queue is full or closed.
func (q *Queue) Enqueue(rec domain.AuditRecord) bool {
	if rec.ID == "" {
		rec.ID = uuid.NewString()
	}
	if rec.Timestamp.IsZero() {
		rec.Timestamp = time.Now().UTC()
	}

	q.mu.RLock()
	defer q.mu.RUnlock()

	if q.closed {
		q.dropped.Add(1)
		return false
	}

	select {
	case q.ch <- rec:
		return true
	default:
		n := q.dropped.Add(1)
		zap.L().Warn("audit queue full, record dropped",
			zap.String("description", rec.Description),
			zap.Int64("dropped_total", n),
		)
		return false
	}
}

func (q *Queue) Dropped() int64 {
	return q.dropped.Load()
}

// Close stops accepting records and waits for queued ones to be delivered
// or for ctx to end.
func (q *Queue) Close(ctx context.Context) error {
	q.mu.Lock()
	if !q.closed {
		q.closed = true
		close(q.ch)
	}
	q.mu.Unlock()

	select {
	case <-q.done:
		return nil
	case <-ctx.Done():
		return fmt.Errorf("audit queue drain -> %w", ctx.Err())
	}
}

func (q *Queue) run() {
	defer close(q.done)

	for rec := range q.ch {
		for _, sink := range q.sinks {
			q.deliver(sink, rec)
		}
	}
}

func (q *Queue) deliver(sink Sink, rec domain.AuditRecord) {
	defer func() {
		if r := recover(); r != nil {
			zap.L().Error("audit sink panicked", zap.Any("panic", r), zap.String("record_id", rec.ID))
		}
	}()

	ctx, cancel := context.WithTimeout(context.Background(), sinkTimeout)
	defer cancel()

	if err := sink.Append(ctx, rec); err != nil {
		zap.L().Error("audit sink failed", zap.Error(err), zap.String("record_id", rec.ID))
	}
}
