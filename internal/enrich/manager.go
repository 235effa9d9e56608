package enrich

import (
	"context"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

// Manager fans a query out across every configured source. Each source call
// is independently timeout-bounded; a failing source contributes an empty
// lookup instead of an error so partial results always come back.
type Manager struct {
	sources  []Source
	cache    Cache
	budget   *Budget
	timeout  time.Duration
	cacheTTL time.Duration
	logger   *logrus.Entry
}

// NewManager wires sources, an optional cache, and the shared budget.
func NewManager(sources []Source, cache Cache, budget *Budget, timeout, cacheTTL time.Duration, logger *logrus.Entry) *Manager {
	return &Manager{
		sources:  sources,
		cache:    cache,
		budget:   budget,
		timeout:  timeout,
		cacheTTL: cacheTTL,
		logger:   logger,
	}
}

// UsageStats reports the request budget state.
type UsageStats struct {
	RequestsUsed      int `json:"requests_used"`
	RequestsRemaining int `json:"requests_remaining"` // -1 when unlimited
}

// Usage returns the current budget counters.
func (m *Manager) Usage() UsageStats {
	return UsageStats{
		RequestsUsed:      m.budget.Used(),
		RequestsRemaining: m.budget.Remaining(),
	}
}

// Lookup queries every source concurrently and returns one lookup per
// source, in source order. Cached lookups younger than the TTL are served
// without touching the network.
func (m *Manager) Lookup(ctx context.Context, query string, limit int) []Lookup {
	lookups := make([]Lookup, len(m.sources))

	var wg sync.WaitGroup
	for i, src := range m.sources {
		wg.Add(1)
		go func(i int, src Source) {
			defer wg.Done()
			lookups[i] = m.lookupOne(ctx, src, query, limit)
		}(i, src)
	}
	wg.Wait()

	return lookups
}

func (m *Manager) lookupOne(ctx context.Context, src Source, query string, limit int) Lookup {
	lookup := Lookup{Source: src.Name(), Query: query}

	if m.cache != nil {
		if cached, err := m.cache.Get(lookup.Key()); err == nil && cached != nil {
			if time.Since(cached.FetchedAt) < m.cacheTTL {
				return *cached
			}
		}
	}

	callCtx, cancel := context.WithTimeout(ctx, m.timeout)
	defer cancel()

	results, err := src.Search(callCtx, query, limit)
	if err != nil {
		// Best effort: an unreachable source just returns no data
		m.logger.WithError(err).WithField("source", src.Name()).Warn("Enrichment source failed")
		return lookup
	}

	lookup.Results = results
	lookup.FetchedAt = time.Now()

	if m.cache != nil {
		if err := m.cache.Save(&lookup); err != nil {
			m.logger.WithError(err).WithField("source", src.Name()).Warn("Failed to cache lookup")
		}
	}
	return lookup
}
