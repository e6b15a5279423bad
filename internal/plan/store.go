package plan

import (
	"fmt"
	"strings"
	"sync"
	"time"
)

// StoreOption customizes Store construction.
type StoreOption func(*Store)

// WithSeed preloads the catalogue. Seeds keep their ids; zero ids are
// assigned in order after the highest explicit one.
func WithSeed(plans []Plan) StoreOption {
	return func(s *Store) {
		s.seed = append(s.seed[:0:0], plans...)
	}
}

// WithLogger injects a logger for dropped-change diagnostics.
func WithLogger(logger Logger) StoreOption {
	return func(s *Store) {
		s.logger = logger
	}
}

// WithSubscriberCapacity overrides the buffered channel size per subscriber.
func WithSubscriberCapacity(capacity int) StoreOption {
	return func(s *Store) {
		if capacity > 0 {
			s.capacity = capacity
		}
	}
}

// WithClock overrides the time source used to stamp changes.
func WithClock(now func() time.Time) StoreOption {
	return func(s *Store) {
		if now != nil {
			s.now = now
		}
	}
}

// Store owns the ordered plan catalogue. Reads return copies; only Add,
// Toggle and Delete change state.
type Store struct {
	mu       sync.RWMutex
	plans    []Plan
	lastID   int64
	seq      uint64
	seed     []Plan
	subs     map[*subscriber]struct{}
	capacity int
	logger   Logger
	now      func() time.Time
}

// NewStore builds a store, loading any seed supplied through WithSeed.
func NewStore(opts ...StoreOption) (*Store, error) {
	s := &Store{
		subs:     map[*subscriber]struct{}{},
		capacity: defaultSubscriberCapacity,
		now:      time.Now,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	if err := s.load(s.seed); err != nil {
		return nil, err
	}
	s.seed = nil
	return s, nil
}

func (s *Store) load(seed []Plan) error {
	seen := map[int64]struct{}{}
	for i, p := range seed {
		if p.ID < 0 {
			return fmt.Errorf("plan: seed[%d]: id must be >= 0", i)
		}
		if p.ID == 0 {
			continue
		}
		if _, dup := seen[p.ID]; dup {
			return fmt.Errorf("plan: seed[%d]: duplicate id %d", i, p.ID)
		}
		seen[p.ID] = struct{}{}
		if p.ID > s.lastID {
			s.lastID = p.ID
		}
	}
	plans := make([]Plan, 0, len(seed))
	for i, p := range seed {
		if err := p.check(); err != nil {
			return fmt.Errorf("plan: seed[%d]: %w", i, err)
		}
		p.Name = strings.TrimSpace(p.Name)
		p.Type, _ = ParseType(string(p.Type))
		if p.ID == 0 {
			s.lastID++
			p.ID = s.lastID
		}
		plans = append(plans, p)
	}
	s.plans = plans
	return nil
}

// Plans returns a copy of the catalogue in insertion order.
func (s *Store) Plans() []Plan {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshotLocked()
}

// Len reports how many plans are stored.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.plans)
}

// Get looks a plan up by id.
func (s *Store) Get(id int64) (Plan, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if idx := s.indexLocked(id); idx >= 0 {
		return s.plans[idx], true
	}
	return Plan{}, false
}

// Add validates the draft and appends the resulting plan with a fresh id.
// On a validation error the catalogue is left untouched.
func (s *Store) Add(d Draft) (Plan, []Plan, error) {
	p, err := d.Validate()
	if err != nil {
		return Plan{}, s.Plans(), err
	}
	s.mu.Lock()
	s.lastID++
	p.ID = s.lastID
	s.plans = append(s.plans, p)
	change := s.recordLocked(ChangeAdded, p)
	s.mu.Unlock()
	s.publish(change)
	return p, change.Plans, nil
}

// Toggle flips the active flag of the plan with the given id. An unknown id
// is a no-op and reports false.
func (s *Store) Toggle(id int64) ([]Plan, bool) {
	s.mu.Lock()
	idx := s.indexLocked(id)
	if idx < 0 {
		snapshot := s.snapshotLocked()
		s.mu.Unlock()
		return snapshot, false
	}
	s.plans[idx].Active = !s.plans[idx].Active
	change := s.recordLocked(ChangeToggled, s.plans[idx])
	s.mu.Unlock()
	s.publish(change)
	return change.Plans, true
}

// Delete removes the plan with the given id. Confirmation is the caller's
// job; an unknown id is a no-op and reports false.
func (s *Store) Delete(id int64) ([]Plan, bool) {
	s.mu.Lock()
	idx := s.indexLocked(id)
	if idx < 0 {
		snapshot := s.snapshotLocked()
		s.mu.Unlock()
		return snapshot, false
	}
	removed := s.plans[idx]
	s.plans = append(s.plans[:idx], s.plans[idx+1:]...)
	change := s.recordLocked(ChangeDeleted, removed)
	s.mu.Unlock()
	s.publish(change)
	return change.Plans, true
}

// Subscribe registers for change notifications. Only mutations applied after
// the call are delivered.
func (s *Store) Subscribe() Subscription {
	sub := newSubscriber(s.capacity, s.logger)
	s.mu.Lock()
	s.subs[sub] = struct{}{}
	s.mu.Unlock()
	return Subscription{
		Changes: sub.ch,
		cancel: func() {
			s.mu.Lock()
			delete(s.subs, sub)
			s.mu.Unlock()
			sub.close()
		},
	}
}

func (s *Store) recordLocked(kind ChangeKind, p Plan) Change {
	s.seq++
	return Change{
		Seq:   s.seq,
		Kind:  kind,
		Plan:  p,
		Plans: s.snapshotLocked(),
		At:    s.now(),
	}
}

func (s *Store) publish(change Change) {
	s.mu.RLock()
	subs := make([]*subscriber, 0, len(s.subs))
	for sub := range s.subs {
		subs = append(subs, sub)
	}
	s.mu.RUnlock()
	for _, sub := range subs {
		// each subscriber gets its own copy of the snapshot
		c := change
		c.Plans = append([]Plan(nil), change.Plans...)
		sub.deliver(c)
	}
}

func (s *Store) indexLocked(id int64) int {
	for i := range s.plans {
		if s.plans[i].ID == id {
			return i
		}
	}
	return -1
}

func (s *Store) snapshotLocked() []Plan {
	out := make([]Plan, len(s.plans))
	copy(out, s.plans)
	return out
}
