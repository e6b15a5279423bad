package plan

import (
	"sync"
	"time"
)

const defaultSubscriberCapacity = 32

// ChangeKind enumerates the mutations a store publishes.
type ChangeKind string

const (
	ChangeAdded   ChangeKind = "added"
	ChangeToggled ChangeKind = "toggled"
	ChangeDeleted ChangeKind = "deleted"
)

// Change describes one applied mutation. Plan holds the record after the
// mutation, or the removed record for ChangeDeleted. Plans is the full
// catalogue snapshot taken right after the mutation.
type Change struct {
	Seq   uint64
	Kind  ChangeKind
	Plan  Plan
	Plans []Plan
	At    time.Time
}

// Logger records diagnostic lines. logbook.Logbook satisfies it.
type Logger interface {
	Printf(format string, args ...any)
}

// Subscription is a live feed of store changes.
type Subscription struct {
	Changes <-chan Change
	cancel  func()
}

// Close unregisters the subscription and closes Changes.
func (s Subscription) Close() {
	if s.cancel != nil {
		s.cancel()
	}
}

type subscriber struct {
	ch     chan Change
	logger Logger
	mu     sync.Mutex
	closed bool
}

func newSubscriber(capacity int, logger Logger) *subscriber {
	if capacity <= 0 {
		capacity = defaultSubscriberCapacity
	}
	return &subscriber{
		ch:     make(chan Change, capacity),
		logger: logger,
	}
}

// deliver never blocks: on a full buffer the oldest pending change is
// discarded so the newest snapshot always gets through.
func (s *subscriber) deliver(change Change) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	for {
		select {
		case s.ch <- change:
			return
		default:
		}
		select {
		case dropped := <-s.ch:
			if s.logger != nil {
				s.logger.Printf("plan: dropped %s change #%d (subscriber full)", dropped.Kind, dropped.Seq)
			}
		default:
		}
	}
}

func (s *subscriber) close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.closed = true
	close(s.ch)
}
