package tests

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/royaisolutions/agency-api/internal/infra/ratelimit"
)

func TestFixedWindowAdmitsUpToLimit(t *testing.T) {
	limiter := ratelimit.NewLimiter(ratelimit.NewMemoryStore(), 5, time.Hour)
	base := time.Now()

	expectedRemaining := []int{4, 3, 2, 1, 0}
	for i, want := range expectedRemaining {
		res := limiter.Admit("203.0.113.7", base)
		assert.True(t, res.Allowed, "admit %d should pass", i+1)
		assert.Equal(t, want, res.Remaining)
	}

	// Sixth inside the same window is rejected without mutation.
	res := limiter.Admit("203.0.113.7", base.Add(time.Second))
	assert.False(t, res.Allowed)
	assert.Equal(t, 0, res.Remaining)

	// A fresh window starts once resetAt has passed.
	res = limiter.Admit("203.0.113.7", base.Add(time.Hour+time.Second))
	assert.True(t, res.Allowed)
	assert.Equal(t, 4, res.Remaining)
}

func TestFixedWindowIsolatesIdentifiers(t *testing.T) {
	limiter := ratelimit.NewLimiter(ratelimit.NewMemoryStore(), 1, time.Hour)
	base := time.Now()

	assert.True(t, limiter.Admit("1.1.1.1", base).Allowed)
	assert.False(t, limiter.Admit("1.1.1.1", base).Allowed)
	assert.True(t, limiter.Admit("2.2.2.2", base).Allowed)
}

// TestConcurrentAdmitsLastSlot: with exactly one slot left, concurrent
// requests get exactly one admission.
func TestConcurrentAdmitsLastSlot(t *testing.T) {
	limiter := ratelimit.NewLimiter(ratelimit.NewMemoryStore(), 5, time.Hour)
	base := time.Now()

	for i := 0; i < 4; i++ {
		assert.True(t, limiter.Admit("10.0.0.1", base).Allowed)
	}

	const contenders = 16
	var wg sync.WaitGroup
	results := make([]bool, contenders)

	for i := 0; i < contenders; i++ {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()
			results[idx] = limiter.Admit("10.0.0.1", base).Allowed
		}(i)
	}
	wg.Wait()

	admitted := 0
	for _, ok := range results {
		if ok {
			admitted++
		}
	}
	assert.Equal(t, 1, admitted)
}

func TestExpiredWindowIsReplacedNotMerged(t *testing.T) {
	store := ratelimit.NewMemoryStore()
	base := time.Now()

	for i := 0; i < 3; i++ {
		res, err := store.Admit("ip", base, 5, time.Hour)
		assert.NoError(t, err)
		assert.True(t, res.Allowed)
	}

	// After expiry the counter starts over at 1; the old count is gone.
	res, err := store.Admit("ip", base.Add(2*time.Hour), 5, time.Hour)
	assert.NoError(t, err)
	assert.True(t, res.Allowed)
	assert.Equal(t, 4, res.Remaining)
	assert.Equal(t, base.Add(3*time.Hour), res.ResetAt)
}

func TestSweepEvictsExpiredRecords(t *testing.T) {
	store := ratelimit.NewMemoryStore()
	base := time.Now()

	_, err := store.Admit("old", base, 5, time.Hour)
	assert.NoError(t, err)
	_, err = store.Admit("fresh", base.Add(90*time.Minute), 5, time.Hour)
	assert.NoError(t, err)

	store.Sweep(base.Add(2 * time.Hour))

	// "fresh" still counts against its live window after the sweep.
	res, err := store.Admit("fresh", base.Add(100*time.Minute), 5, time.Hour)
	assert.NoError(t, err)
	assert.Equal(t, 3, res.Remaining)
}

// brokenStore simulates an unavailable external counter store.
type brokenStore struct{}

func (brokenStore) Admit(string, time.Time, int, time.Duration) (ratelimit.Result, error) {
	return ratelimit.Result{}, errors.New("store unavailable")
}

func (brokenStore) Sweep(time.Time) {}

func TestLimiterFailurePolicy(t *testing.T) {
	t.Run("Fail Closed By Default", func(t *testing.T) {
		limiter := ratelimit.NewLimiter(brokenStore{}, 5, time.Hour)
		assert.False(t, limiter.Admit("ip", time.Now()).Allowed)
	})

	t.Run("Fail Open When Configured", func(t *testing.T) {
		limiter := ratelimit.NewLimiter(brokenStore{}, 5, time.Hour)
		limiter.SetFailOpen(true)
		assert.True(t, limiter.Admit("ip", time.Now()).Allowed)
	})
}
