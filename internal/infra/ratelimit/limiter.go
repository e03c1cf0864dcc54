package ratelimit

import (
	"log"
	"sync"
	"time"
)

// Result of one admit decision. Remaining is exposed to callers so the
// endpoint can surface the quota left in the window.
type Result struct {
	Allowed   bool
	Remaining int
	ResetAt   time.Time
}

type record struct {
	count   int
	resetAt time.Time
}

// Store holds the identifier -> window counters. The in-memory store below
// suits a single instance; a multi-instance deployment swaps in an external
// atomic counter store behind the same interface.
type Store interface {
	// Admit applies the fixed-window decision for one identifier at the
	// given instant: replace an absent/expired record with count=1, or
	// increment while under limit, or reject without mutation.
	Admit(identifier string, now time.Time, limit int, window time.Duration) (Result, error)
	// Sweep evicts records whose window ended before now.
	Sweep(now time.Time)
}

// MemoryStore is process-local and lost on restart, so the limiter is
// best-effort, not a hard guarantee.
type MemoryStore struct {
	mu      sync.Mutex
	records map[string]*record
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{records: make(map[string]*record)}
}

func (s *MemoryStore) Admit(identifier string, now time.Time, limit int, window time.Duration) (Result, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, exists := s.records[identifier]

	// Expired windows are replaced, never merged.
	if !exists || !now.Before(rec.resetAt) {
		rec = &record{count: 1, resetAt: now.Add(window)}
		s.records[identifier] = rec
		return Result{Allowed: true, Remaining: limit - 1, ResetAt: rec.resetAt}, nil
	}

	if rec.count >= limit {
		return Result{Allowed: false, Remaining: 0, ResetAt: rec.resetAt}, nil
	}

	rec.count++
	return Result{Allowed: true, Remaining: limit - rec.count, ResetAt: rec.resetAt}, nil
}

func (s *MemoryStore) Sweep(now time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for id, rec := range s.records {
		if !now.Before(rec.resetAt) {
			delete(s.records, id)
		}
	}
}

const (
	DefaultLimit         = 5
	DefaultWindow        = time.Hour
	DefaultSweepInterval = time.Minute
)

// Limiter bounds accepted submissions per client identifier with a fixed
// window. FailOpen controls what happens when the store errors: the default
// is fail-closed (reject) to protect downstream resources.
type Limiter struct {
	store    Store
	limit    int
	window   time.Duration
	failOpen bool
	stop     chan struct{}
}

func NewLimiter(store Store, limit int, window time.Duration) *Limiter {
	if store == nil {
		store = NewMemoryStore()
	}
	if limit <= 0 {
		limit = DefaultLimit
	}
	if window <= 0 {
		window = DefaultWindow
	}
	return &Limiter{
		store:  store,
		limit:  limit,
		window: window,
		stop:   make(chan struct{}),
	}
}

func (l *Limiter) SetFailOpen(open bool) {
	l.failOpen = open
}

// Admit decides for one identifier at an explicit instant.
func (l *Limiter) Admit(identifier string, now time.Time) Result {
	res, err := l.store.Admit(identifier, now, l.limit, l.window)
	if err != nil {
		log.Printf("rate limiter store error for %s: %v", identifier, err)
		if l.failOpen {
			return Result{Allowed: true, Remaining: 0, ResetAt: now.Add(l.window)}
		}
		return Result{Allowed: false, Remaining: 0, ResetAt: now.Add(l.window)}
	}
	return res
}

func (l *Limiter) Allow(identifier string) Result {
	return l.Admit(identifier, time.Now())
}

// StartSweeper evicts expired records in the background to bound memory.
// Housekeeping only; never part of the admit path.
func (l *Limiter) StartSweeper(interval time.Duration) {
	if interval <= 0 {
		interval = DefaultSweepInterval
	}
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-l.stop:
				return
			case <-ticker.C:
				l.store.Sweep(time.Now())
			}
		}
	}()
}

func (l *Limiter) Stop() {
	close(l.stop)
}
