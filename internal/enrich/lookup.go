// Package enrich provides best-effort lookups against free public
// registries (GitHub, NPM, PyPI). Results only ever enrich similarity
// matches; every failure degrades to "no data from this source" and is
// never fatal to the ranking path.
package enrich

import (
	"context"
	"time"
)

// Source names.
const (
	SourceGitHub = "github"
	SourceNPM    = "npm"
	SourcePyPI   = "pypi"
)

// Result is one package or repository returned by a source.
type Result struct {
	Name        string  `json:"name"`
	Description string  `json:"description,omitempty"`
	URL         string  `json:"url,omitempty"`
	Version     string  `json:"version,omitempty"`
	Stars       int     `json:"stars,omitempty"`
	Score       float64 `json:"score,omitempty"`
	Source      string  `json:"source"`
}

// Lookup is the cached outcome of querying one source.
type Lookup struct {
	Source    string    `json:"source"`
	Query     string    `json:"query"`
	Results   []Result  `json:"results"`
	FetchedAt time.Time `json:"fetched_at"`
}

// Key identifies a lookup in the cache.
func (l *Lookup) Key() string {
	return l.Source + "_" + l.Query
}

// Source is a public registry the manager can query.
type Source interface {
	Name() string
	Search(ctx context.Context, query string, limit int) ([]Result, error)
}

// Cache stores lookups between sessions so repeated queries do not burn the
// public-API request budget.
type Cache interface {
	Save(lookup *Lookup) error
	Get(key string) (*Lookup, error)
}
