package engine

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/project-explorer/backend/internal/config"
	"github.com/project-explorer/backend/internal/enrich"
	"github.com/project-explorer/backend/internal/match"
	"github.com/project-explorer/backend/internal/project"
)

// ErrCorpusNotLoaded is returned when a query arrives before any dataset has
// been loaded. Callers need to distinguish this from a query that simply
// found nothing.
var ErrCorpusNotLoaded = errors.New("engine: no project corpus loaded")

// Engine orchestrates the similarity service: it owns the active matcher,
// swaps it atomically on dataset reloads, and composes best-effort
// enrichment around the ranking path.
type Engine struct {
	Config     *config.Config
	Logger     *logrus.Entry
	Enrichment *enrich.Manager

	// matcher is replaced wholesale on reload; in-flight queries keep the
	// corpus they started with
	matcher atomic.Pointer[match.Matcher]

	// Stats
	mu            sync.Mutex
	queriesServed int64
	startTime     time.Time
}

// Stats is a snapshot of engine counters.
type Stats struct {
	TotalProjects int
	QueriesServed int64
	StartTime     time.Time
}

// NewEngine creates an engine with no corpus loaded. Enrichment may be nil
// when disabled.
func NewEngine(cfg *config.Config, logger *logrus.Entry, enrichment *enrich.Manager) *Engine {
	return &Engine{
		Config:     cfg,
		Logger:     logger,
		Enrichment: enrichment,
		startTime:  time.Now(),
	}
}

// matcherConfig maps service configuration onto the vector-space knobs.
func (e *Engine) matcherConfig() match.Config {
	mc := e.Config.Matcher
	return match.Config{
		MaxFeatures:     mc.MaxFeatures,
		NGramMin:        mc.NGramMin,
		NGramMax:        mc.NGramMax,
		MinDocFreq:      mc.MinDocFreq,
		MaxDocFreqRatio: mc.MaxDocFreqRatio,
		MinScore:        mc.MinScore,
	}
}

// Reload builds a matcher over the new records and swaps it in atomically.
// The replacement is fully constructed before the swap, so queries never see
// a half-built corpus; on failure the previous corpus keeps serving.
func (e *Engine) Reload(records []project.Record) error {
	matcher, err := match.NewMatcher(records, e.matcherConfig(), e.Logger)
	if err != nil {
		return err
	}
	e.matcher.Store(matcher)
	e.Logger.WithField("projects", matcher.Len()).Info("Corpus loaded")
	return nil
}

// FindSimilar runs the similarity pipeline against the active corpus.
func (e *Engine) FindSimilar(idea string, topK int) ([]match.Match, error) {
	matcher := e.matcher.Load()
	if matcher == nil {
		return nil, ErrCorpusNotLoaded
	}
	if topK < 1 {
		topK = e.Config.Matcher.DefaultTopK
	}

	e.mu.Lock()
	e.queriesServed++
	e.mu.Unlock()

	return matcher.FindSimilar(idea, topK), nil
}

// Ecosystem runs the public-registry lookups for a query. Returns nil when
// enrichment is disabled; individual source failures surface as empty
// per-source lookups, never as an error.
func (e *Engine) Ecosystem(ctx context.Context, query string, limit int) []enrich.Lookup {
	if e.Enrichment == nil {
		return nil
	}
	return e.Enrichment.Lookup(ctx, query, limit)
}

// TotalProjects returns the size of the active corpus, 0 when none loaded.
func (e *Engine) TotalProjects() int {
	matcher := e.matcher.Load()
	if matcher == nil {
		return 0
	}
	return matcher.Len()
}

// Loaded reports whether a corpus is being served.
func (e *Engine) Loaded() bool {
	return e.matcher.Load() != nil
}

// Snapshot returns the current engine counters.
func (e *Engine) Snapshot() Stats {
	e.mu.Lock()
	defer e.mu.Unlock()
	return Stats{
		TotalProjects: e.TotalProjects(),
		QueriesServed: e.queriesServed,
		StartTime:     e.startTime,
	}
}
