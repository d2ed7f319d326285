package audit

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vietanh2810/shared-experiences-api/internal/domain"
)

type recordingSink struct {
	mu   sync.Mutex
	recs []domain.AuditRecord
}

func (s *recordingSink) Append(_ context.Context, rec domain.AuditRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.recs = append(s.recs, rec)
	return nil
}

func (s *recordingSink) all() []domain.AuditRecord {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]domain.AuditRecord(nil), s.recs...)
}

func TestQueue_DeliversToEverySink(t *testing.T) {
	a, b := &recordingSink{}, &recordingSink{}
	q := NewQueue(8, a, b)
	q.Start()

	require.True(t, q.Enqueue(domain.AuditRecord{Method: "POST", Description: "Creating new provider"}))
	require.True(t, q.Enqueue(domain.AuditRecord{Method: "DELETE", Description: "Deleting provider"}))

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	require.NoError(t, q.Close(ctx))

	for _, sink := range []*recordingSink{a, b} {
		recs := sink.all()
		require.Len(t, recs, 2)
		assert.Equal(t, "Creating new provider", recs[0].Description)
		assert.NotEmpty(t, recs[0].ID)
		assert.False(t, recs[0].Timestamp.IsZero())
	}
}

func TestQueue_FailingSinkDoesNotStopOthers(t *testing.T) {
	good := &recordingSink{}
	failing := SinkFunc(func(context.Context, domain.AuditRecord) error { return errors.New("store down") })
	panicking := SinkFunc(func(context.Context, domain.AuditRecord) error { panic("boom") })

	q := NewQueue(4, failing, panicking, good)
	q.Start()
	q.Enqueue(domain.AuditRecord{Description: "User login"})

	require.NoError(t, q.Close(context.Background()))
	assert.Len(t, good.all(), 1)
}

func TestQueue_DropsWhenFull(t *testing.T) {
	release := make(chan struct{})
	blocking := SinkFunc(func(context.Context, domain.AuditRecord) error {
		<-release
		return nil
	})

	q := NewQueue(1, blocking)
	q.Start()

	// The first record is taken by the worker, the second fills the buffer.
	require.True(t, q.Enqueue(domain.AuditRecord{}))
	require.Eventually(t, func() bool { return len(q.ch) == 0 }, time.Second, 5*time.Millisecond)
	require.True(t, q.Enqueue(domain.AuditRecord{}))

	assert.False(t, q.Enqueue(domain.AuditRecord{}))
	assert.Equal(t, int64(1), q.Dropped())

	close(release)
	require.NoError(t, q.Close(context.Background()))
}

func TestQueue_EnqueueAfterClose(t *testing.T) {
	q := NewQueue(1)
	q.Start()
	require.NoError(t, q.Close(context.Background()))

	assert.False(t, q.Enqueue(domain.AuditRecord{}))
	assert.Equal(t, int64(1), q.Dropped())
}

func TestQueue_CloseTimesOut(t *testing.T) {
	release := make(chan struct{})
	defer close(release)
	q := NewQueue(1, SinkFunc(func(context.Context, domain.AuditRecord) error {
		<-release
		return nil
	}))
	q.Start()
	q.Enqueue(domain.AuditRecord{})

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	assert.ErrorIs(t, q.Close(ctx), context.DeadlineExceeded)
}
