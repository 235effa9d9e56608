package match

import (
	"fmt"
	"math"

	"github.com/sirupsen/logrus"

	"github.com/project-explorer/backend/internal/project"
)

// DefaultTopK is the result cap used when a caller asks for zero or fewer
// results.
const DefaultTopK = 5

// Match is one ranked, annotated result. Created fresh per query, never
// persisted.
type Match struct {
	Project       project.Record `json:"project"`
	Score         float64        `json:"score"`            // raw cosine, [0,1]
	ScorePercent  float64        `json:"similarity_score"` // 0-100 display scale, 2 decimals
	GitHubURL     string         `json:"github_url,omitempty"`
	MatchReason   string         `json:"match_reason"`
	Technology    []Tag          `json:"technology_tags,omitempty"`
	BusinessModel []Tag          `json:"business_model_tags,omitempty"`
	Complexity    string         `json:"integration_complexity"`
}

// Matcher bundles a corpus and its fitted index behind the single public
// query entry point. It is immutable after construction and safe for
// concurrent FindSimilar calls; replacing a dataset means building a new
// Matcher and swapping it in whole.
type Matcher struct {
	corpus *Corpus
	index  *FittedIndex
	config Config
	logger *logrus.Entry
}

// NewMatcher builds the corpus and fits the vector space once. Fails with
// ErrEmptyCorpus when records is empty.
func NewMatcher(records []project.Record, cfg Config, logger *logrus.Entry) (*Matcher, error) {
	corpus := BuildCorpus(records)
	index, err := Fit(corpus, cfg)
	if err != nil {
		return nil, fmt.Errorf("building matcher: %w", err)
	}
	return &Matcher{
		corpus: corpus,
		index:  index,
		config: cfg,
		logger: logger,
	}, nil
}

// Len returns the number of indexed projects.
func (m *Matcher) Len() int {
	return m.corpus.Len()
}

// FindSimilar ranks the corpus against an idea and annotates the top hits.
// An empty idea returns an empty list, not an error. Unexpected failures
// inside vectorization are recovered, logged, and reported as an empty
// result so one bad query cannot crash a long-lived service.
func (m *Matcher) FindSimilar(idea string, topK int) (matches []Match) {
	if topK < 1 {
		topK = DefaultTopK
	}

	defer func() {
		if r := recover(); r != nil {
			verr := &VectorizationError{Stage: "query", Cause: fmt.Errorf("%v", r)}
			if m.logger != nil {
				m.logger.WithError(verr).Error("Recovered from query failure")
			}
			matches = []Match{}
		}
	}()

	hits := Rank(m.index, idea, topK, m.config.MinScore)
	matches = make([]Match, 0, len(hits))
	for _, hit := range hits {
		matches = append(matches, m.annotate(hit, idea))
	}
	return matches
}

// annotate fills the derived fields for one hit.
func (m *Matcher) annotate(hit Hit, idea string) Match {
	rec := m.corpus.Record(hit.Index)
	combined := rec.CombinedText()

	githubURL := rec.GitHubURL
	if githubURL == "" {
		scanText := rec.Description
		if scanText == "" {
			scanText = rec.Title
		}
		githubURL = ExtractGitHubURL(scanText)
	}

	return Match{
		Project:       rec,
		Score:         hit.Score,
		ScorePercent:  math.Round(hit.Score*10000) / 100,
		GitHubURL:     githubURL,
		MatchReason:   MatchReason(idea, combined),
		Technology:    TechnologyTags(combined),
		BusinessModel: BusinessModelTags(combined),
		Complexity:    Complexity(hit.Score),
	}
}
