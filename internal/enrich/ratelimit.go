package enrich

import (
	"context"
	"errors"
	"sync"

	"golang.org/x/time/rate"
)

// ErrBudgetExhausted signals the per-session request budget is spent.
// Callers treat it like any other source failure: skip the source.
var ErrBudgetExhausted = errors.New("enrich: public API request budget exhausted")

// Budget combines a token bucket that spaces requests out with a hard
// per-session request cap, shared across every source.
type Budget struct {
	limiter *rate.Limiter

	mu   sync.Mutex
	used int
	max  int
}

// NewBudget allows perSecond sustained requests up to max total requests.
// max <= 0 means unlimited.
func NewBudget(perSecond float64, max int) *Budget {
	return &Budget{
		limiter: rate.NewLimiter(rate.Limit(perSecond), 1),
		max:     max,
	}
}

// Acquire blocks until a request slot is available or the context is done.
func (b *Budget) Acquire(ctx context.Context) error {
	b.mu.Lock()
	if b.max > 0 && b.used >= b.max {
		b.mu.Unlock()
		return ErrBudgetExhausted
	}
	b.used++
	b.mu.Unlock()

	return b.limiter.Wait(ctx)
}

// Used returns how many requests this session has made.
func (b *Budget) Used() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.used
}

// Remaining returns the requests left in the budget, or -1 when unlimited.
func (b *Budget) Remaining() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.max <= 0 {
		return -1
	}
	return b.max - b.used
}

// Reset clears the usage counter.
func (b *Budget) Reset() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.used = 0
}
