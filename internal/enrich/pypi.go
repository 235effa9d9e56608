package enrich

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"

	"github.com/temoto/robotstxt"
	"golang.org/x/net/html"
)

// pypiBaseURL hosts both robots.txt and the search pages.
const pypiBaseURL = "https://pypi.org"

// PyPISource searches PyPI. The index has no public JSON search API, so this
// scrapes the search result page, checking robots.txt before each query.
type PyPISource struct {
	client    *Client
	budget    *Budget
	baseURL   string
	userAgent string

	mu     sync.Mutex
	robots *robotstxt.RobotsData
}

// NewPyPISource builds a source backed by the PyPI search pages.
func NewPyPISource(client *Client, budget *Budget, userAgent string) *PyPISource {
	if userAgent == "" {
		userAgent = DefaultUserAgent
	}
	return &PyPISource{
		client:    client,
		budget:    budget,
		baseURL:   pypiBaseURL,
		userAgent: userAgent,
	}
}

func (s *PyPISource) Name() string {
	return SourcePyPI
}

// Search scrapes up to limit packages from the search result page.
func (s *PyPISource) Search(ctx context.Context, query string, limit int) ([]Result, error) {
	if err := s.budget.Acquire(ctx); err != nil {
		return nil, err
	}
	if limit < 1 || limit > 20 {
		limit = 20
	}

	allowed, err := s.allowed(ctx, "/search/")
	if err == nil && !allowed {
		return nil, fmt.Errorf("enrich: pypi robots.txt disallows /search/ for %s", s.userAgent)
	}

	params := url.Values{}
	params.Set("q", query)

	resp, err := s.client.Get(ctx, s.baseURL+"/search/", params)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("enrich: pypi search returned status %d", resp.StatusCode)
	}
	return s.parseResults(resp.Body, limit)
}

// allowed lazily fetches robots.txt once and tests the path against the
// group for our user agent. An unreachable robots.txt allows the request.
func (s *PyPISource) allowed(ctx context.Context, path string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.robots == nil {
		resp, err := s.client.Get(ctx, s.baseURL+"/robots.txt", nil)
		if err != nil {
			return true, err
		}
		defer resp.Body.Close()

		data, err := robotstxt.FromResponse(resp)
		if err != nil {
			return true, err
		}
		s.robots = data
	}
	return s.robots.FindGroup(s.userAgent).Test(path), nil
}

// parseResults walks the search result markup with the standard tokenizer.
// Each hit is an anchor with class "package-snippet" containing name,
// version, and description spans.
func (s *PyPISource) parseResults(body io.Reader, limit int) ([]Result, error) {
	tokenizer := html.NewTokenizer(body)

	var results []Result
	var current *Result
	section := ""

	for {
		switch tokenizer.Next() {
		case html.ErrorToken:
			if tokenizer.Err() == io.EOF {
				if current != nil && current.Name != "" && len(results) < limit {
					results = append(results, *current)
				}
				return results, nil
			}
			return results, tokenizer.Err()

		case html.StartTagToken:
			token := tokenizer.Token()
			class := attrValue(token, "class")
			switch {
			case token.Data == "a" && strings.Contains(class, "package-snippet"):
				if current != nil && current.Name != "" && len(results) < limit {
					results = append(results, *current)
				}
				if len(results) >= limit {
					return results, nil
				}
				current = &Result{
					Source: SourcePyPI,
					URL:    s.baseURL + attrValue(token, "href"),
				}
			case strings.Contains(class, "package-snippet__name"):
				section = "name"
			case strings.Contains(class, "package-snippet__version"):
				section = "version"
			case strings.Contains(class, "package-snippet__description"):
				section = "description"
			}

		case html.EndTagToken:
			section = ""

		case html.TextToken:
			if current == nil || section == "" {
				continue
			}
			text := strings.TrimSpace(tokenizer.Token().Data)
			if text == "" {
				continue
			}
			switch section {
			case "name":
				current.Name += text
			case "version":
				current.Version += text
			case "description":
				if current.Description != "" {
					current.Description += " "
				}
				current.Description += text
			}
		}
	}
}

// attrValue returns the value of the named attribute, or "".
func attrValue(token html.Token, name string) string {
	for _, attr := range token.Attr {
		if attr.Key == name {
			return attr.Val
		}
	}
	return ""
}
