package enrich

import (
	"context"
	"net/url"
	"strconv"
)

// npmSearchURL is the public registry search endpoint; no auth required.
const npmSearchURL = "https://registry.npmjs.org/-/v1/search"

// NPMSource searches the NPM registry.
type NPMSource struct {
	client  *Client
	budget  *Budget
	baseURL string
}

// NewNPMSource builds a source backed by the public NPM registry.
func NewNPMSource(client *Client, budget *Budget) *NPMSource {
	return &NPMSource{client: client, budget: budget, baseURL: npmSearchURL}
}

func (s *NPMSource) Name() string {
	return SourceNPM
}

// npmSearchResponse mirrors the registry's search payload.
type npmSearchResponse struct {
	Objects []struct {
		Package struct {
			Name        string `json:"name"`
			Version     string `json:"version"`
			Description string `json:"description"`
			Links       struct {
				NPM string `json:"npm"`
			} `json:"links"`
		} `json:"package"`
		Score struct {
			Final float64 `json:"final"`
		} `json:"score"`
	} `json:"objects"`
	Total int `json:"total"`
}

// Search returns up to limit packages matching the query.
func (s *NPMSource) Search(ctx context.Context, query string, limit int) ([]Result, error) {
	if err := s.budget.Acquire(ctx); err != nil {
		return nil, err
	}
	if limit < 1 || limit > 20 {
		limit = 20
	}

	params := url.Values{}
	params.Set("text", query)
	params.Set("size", strconv.Itoa(limit))

	var resp npmSearchResponse
	if err := s.client.GetJSON(ctx, s.baseURL, params, &resp); err != nil {
		return nil, err
	}

	results := make([]Result, 0, len(resp.Objects))
	for _, obj := range resp.Objects {
		results = append(results, Result{
			Name:        obj.Package.Name,
			Description: obj.Package.Description,
			URL:         obj.Package.Links.NPM,
			Version:     obj.Package.Version,
			Score:       obj.Score.Final,
			Source:      SourceNPM,
		})
	}
	return results, nil
}
