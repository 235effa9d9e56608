package enrich

import (
	"context"
	"fmt"

	gh "github.com/google/go-github/v68/github"
)

// GitHubSource searches public repositories, sorted by stars. Unauthenticated
// access is enough for the search volumes the budget allows.
type GitHubSource struct {
	client *gh.Client
	budget *Budget
}

// NewGitHubSource builds a source backed by the public GitHub API.
func NewGitHubSource(budget *Budget) *GitHubSource {
	return &GitHubSource{
		client: gh.NewClient(nil),
		budget: budget,
	}
}

func (s *GitHubSource) Name() string {
	return SourceGitHub
}

// Search returns up to limit repositories matching the query.
func (s *GitHubSource) Search(ctx context.Context, query string, limit int) ([]Result, error) {
	if err := s.budget.Acquire(ctx); err != nil {
		return nil, err
	}
	if limit < 1 || limit > 30 {
		limit = 30
	}

	res, _, err := s.client.Search.Repositories(ctx, query, &gh.SearchOptions{
		Sort:        "stars",
		Order:       "desc",
		ListOptions: gh.ListOptions{PerPage: limit},
	})
	if err != nil {
		return nil, fmt.Errorf("enrich: github search: %w", err)
	}

	results := make([]Result, 0, len(res.Repositories))
	for _, repo := range res.Repositories {
		results = append(results, Result{
			Name:        repo.GetFullName(),
			Description: repo.GetDescription(),
			URL:         repo.GetHTMLURL(),
			Stars:       repo.GetStargazersCount(),
			Source:      SourceGitHub,
		})
	}
	return results, nil
}
