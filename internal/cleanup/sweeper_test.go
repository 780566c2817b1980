package cleanup

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

type stubStore struct {
	mu      sync.Mutex
	calls   int
	deleted int64
	err     error
}

func (s *stubStore) DeleteOlderThan(ctx context.Context, days int) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	return s.deleted, s.err
}

func (s *stubStore) callCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls
}

func TestRunOnceDeletes(t *testing.T) {
	store := &stubStore{deleted: 7}
	s := NewSweeper(store, 90, zerolog.Nop())

	s.RunOnce(context.Background())
	if store.callCount() != 1 {
		t.Fatalf("calls = %d, want 1", store.callCount())
	}
}

func TestRunOnceSwallowsErrors(t *testing.T) {
	store := &stubStore{err: errors.New("database is down")}
	s := NewSweeper(store, 90, zerolog.Nop())

	// Must not panic or propagate; the next tick is the retry.
	s.RunOnce(context.Background())
	s.RunOnce(context.Background())
	if store.callCount() != 2 {
		t.Fatalf("calls = %d, want 2", store.callCount())
	}
}

func TestStartRunsImmediatelyAndStopsOnCancel(t *testing.T) {
	store := &stubStore{}
	s := &Sweeper{
		store:         store,
		retentionDays: 90,
		interval:      5 * time.Millisecond,
		logger:        zerolog.Nop(),
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		s.Start(ctx)
		close(done)
	}()

	deadline := time.After(2 * time.Second)
	for store.callCount() < 3 {
		select {
		case <-deadline:
			t.Fatalf("only %d sweeps before deadline", store.callCount())
		case <-time.After(time.Millisecond):
		}
	}

	cancel()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("sweeper did not stop after cancellation")
	}
}
