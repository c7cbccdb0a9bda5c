// Package sessions provides the short-lived, memory-resident state container
// that carries protocol state between login round trips.
//
// There is no background timer: expired records are swept and the capacity
// bound is enforced when Collect is called, which the services do at the start
// of every protocol-entry operation. Cleanup therefore follows traffic.
// Get never returns a record older than the TTL, even before a sweep.
package sessions

import (
	"sort"
	"sync"
	"time"
)

const (
	// DefaultTTL is the lifetime of SRP and MFA sessions.
	DefaultTTL = 300 * time.Second
	// DefaultCapacity bounds the number of live records per store.
	DefaultCapacity = 5000
)

// Clock returns the current time. Tests inject a controllable one.
type Clock func() time.Time

type entry[T any] struct {
	value     T
	createdAt time.Time
	seq       uint64
}

// Store is a concurrency-safe id → record map with TTL expiry and
// oldest-first capacity eviction.
type Store[T any] struct {
	mu       sync.Mutex
	items    map[string]*entry[T]
	ttl      time.Duration
	capacity int
	now      Clock
	seq      uint64
}

// Option customises a Store.
type Option func(*storeOptions)

type storeOptions struct {
	ttl      time.Duration
	capacity int
	clock    Clock
}

func WithTTL(d time.Duration) Option { return func(o *storeOptions) { o.ttl = d } }

func WithCapacity(n int) Option { return func(o *storeOptions) { o.capacity = n } }

func WithClock(c Clock) Option { return func(o *storeOptions) { o.clock = c } }

func New[T any](opts ...Option) *Store[T] {
	o := storeOptions{ttl: DefaultTTL, capacity: DefaultCapacity, clock: time.Now}
	for _, fn := range opts {
		fn(&o)
	}
	return &Store[T]{
		items:    make(map[string]*entry[T]),
		ttl:      o.ttl,
		capacity: o.capacity,
		now:      o.clock,
	}
}

// Insert stores value under id, stamped with the current time. An existing
// record with the same id is replaced.
func (s *Store[T]) Insert(id string, value T) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.seq++
	s.items[id] = &entry[T]{value: value, createdAt: s.now(), seq: s.seq}
}

// Get returns the record for id if it exists and has not outlived the TTL.
func (s *Store[T]) Get(id string) (T, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var zero T
	e, ok := s.items[id]
	if !ok {
		return zero, false
	}
	if s.expired(e, s.now()) {
		delete(s.items, id)
		return zero, false
	}
	return e.value, true
}

// Remove deletes id. Missing ids are ignored.
func (s *Store[T]) Remove(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.items, id)
}

// RemoveIf deletes every record matching pred and returns how many went.
func (s *Store[T]) RemoveIf(pred func(T) bool) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := 0
	for id, e := range s.items {
		if pred(e.value) {
			delete(s.items, id)
			n++
		}
	}
	return n
}

// Len returns the number of records currently held, expired or not.
func (s *Store[T]) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.items)
}

// Sweep removes every record whose age at now exceeds the TTL.
func (s *Store[T]) Sweep(now time.Time) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sweepLocked(now)
}

// EnforceCapacity evicts the oldest records until at most max remain.
// Remaining TTL does not matter.
func (s *Store[T]) EnforceCapacity(max int) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.enforceLocked(max)
}

// Collect sweeps expired records and then enforces the configured capacity,
// as one critical section.
func (s *Store[T]) Collect() (expired, evicted int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	expired = s.sweepLocked(s.now())
	evicted = s.enforceLocked(s.capacity)
	return expired, evicted
}

func (s *Store[T]) expired(e *entry[T], now time.Time) bool {
	return now.Sub(e.createdAt) > s.ttl
}

func (s *Store[T]) sweepLocked(now time.Time) int {
	n := 0
	for id, e := range s.items {
		if s.expired(e, now) {
			delete(s.items, id)
			n++
		}
	}
	return n
}

func (s *Store[T]) enforceLocked(max int) int {
	over := len(s.items) - max
	if over <= 0 || max < 0 {
		return 0
	}

	type aged struct {
		id        string
		createdAt time.Time
		seq       uint64
	}
	all := make([]aged, 0, len(s.items))
	for id, e := range s.items {
		all = append(all, aged{id: id, createdAt: e.createdAt, seq: e.seq})
	}
	sort.Slice(all, func(i, j int) bool {
		if !all[i].createdAt.Equal(all[j].createdAt) {
			return all[i].createdAt.Before(all[j].createdAt)
		}
		return all[i].seq < all[j].seq
	})

	for _, a := range all[:over] {
		delete(s.items, a.id)
	}
	return over
}
