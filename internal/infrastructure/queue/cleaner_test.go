package queue

import (
	"context"
	"errors"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/JHanslik/restaurants-back/internal/core/ports"
)

type memQueue struct {
	mu    sync.Mutex
	tasks []ports.CleanupTask
}

func (q *memQueue) Enqueue(_ context.Context, task ports.CleanupTask) error {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.tasks = append(q.tasks, task)
	return nil
}

func (q *memQueue) Dequeue(ctx context.Context) (*ports.CleanupTask, error) {
	q.mu.Lock()
	if len(q.tasks) > 0 {
		task := q.tasks[0]
		q.tasks = q.tasks[1:]
		q.mu.Unlock()
		return &task, nil
	}
	q.mu.Unlock()

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-time.After(5 * time.Millisecond):
		return nil, nil
	}
}

func (q *memQueue) len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.tasks)
}

type memMedia struct {
	mu        sync.Mutex
	destroyed []string
	attempts  int
	failures  map[string]int // public id -> remaining failures
}

func (m *memMedia) Upload(context.Context, string, io.Reader) (*ports.MediaAsset, error) {
	return nil, errors.New("not used")
}

func (m *memMedia) Destroy(_ context.Context, publicID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.attempts++
	if left, ok := m.failures[publicID]; ok && left > 0 {
		m.failures[publicID] = left - 1
		return errors.New("delegate unavailable")
	}
	m.destroyed = append(m.destroyed, publicID)
	return nil
}

func (m *memMedia) destroyedCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.destroyed)
}

func (m *memMedia) attemptCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.attempts
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal("condition not reached in time")
}

func TestCleaner_DestroysQueuedAssets(t *testing.T) {
	q := &memQueue{}
	m := &memMedia{}
	_ = q.Enqueue(context.Background(), ports.CleanupTask{PublicID: "restaurants/a"})
	_ = q.Enqueue(context.Background(), ports.CleanupTask{PublicID: "restaurants/b"})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	c := NewCleaner(q, m, 2, zerolog.Nop())
	c.Start(ctx)

	waitFor(t, func() bool { return m.destroyedCount() == 2 })

	cancel()
	c.Wait()
}

func TestCleaner_RetriesFailedDestroy(t *testing.T) {
	q := &memQueue{}
	m := &memMedia{failures: map[string]int{"restaurants/flaky": 2}}
	_ = q.Enqueue(context.Background(), ports.CleanupTask{PublicID: "restaurants/flaky"})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	c := NewCleaner(q, m, 1, zerolog.Nop())
	c.Start(ctx)

	// Two failures then success: the task must survive re-enqueueing.
	waitFor(t, func() bool { return m.destroyedCount() == 1 })

	cancel()
	c.Wait()
}

func TestCleaner_DropsAfterMaxAttempts(t *testing.T) {
	q := &memQueue{}
	m := &memMedia{failures: map[string]int{"restaurants/doomed": 1000}}
	_ = q.Enqueue(context.Background(), ports.CleanupTask{PublicID: "restaurants/doomed"})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	c := NewCleaner(q, m, 1, zerolog.Nop())
	c.Start(ctx)

	// The task is retried a bounded number of times, then dropped.
	waitFor(t, func() bool { return m.attemptCount() == 5 })
	time.Sleep(50 * time.Millisecond)
	if got := m.attemptCount(); got != 5 {
		t.Errorf("expected the delegate to stop being called after the drop, got %d attempts", got)
	}
	if q.len() != 0 {
		t.Errorf("doomed task still queued after drop: %d", q.len())
	}
	if m.destroyedCount() != 0 {
		t.Errorf("no asset must be reported destroyed, got %d", m.destroyedCount())
	}

	cancel()
	c.Wait()
}

func TestCleaner_StopsOnContextCancel(t *testing.T) {
	q := &memQueue{}
	m := &memMedia{}

	ctx, cancel := context.WithCancel(context.Background())

	c := NewCleaner(q, m, 2, zerolog.Nop())
	c.Start(ctx)
	cancel()

	done := make(chan struct{})
	go func() {
		c.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("workers did not stop after cancel")
	}
}
