package match_test

import (
	"strings"
	"testing"

	"github.com/project-explorer/backend/internal/match"
	"github.com/project-explorer/backend/internal/project"
)

func supportCorpus() []project.Record {
	return []project.Record{
		{ID: 0, Title: "SupportBot", Description: "AI chatbot for customer support using GPT models"},
		{ID: 1, Title: "ChainTrack", Description: "Blockchain-based supply chain tracker"},
		{ID: 2, Title: "TriageDesk", Description: "Customer support ticketing system with AI triage"},
	}
}

func newMatcher(t *testing.T, records []project.Record) *match.Matcher {
	t.Helper()
	m, err := match.NewMatcher(records, match.DefaultConfig(), nil)
	if err != nil {
		t.Fatal(err)
	}
	return m
}

func TestNewMatcherEmptyRecords(t *testing.T) {
	_, err := match.NewMatcher(nil, match.DefaultConfig(), nil)
	if err == nil {
		t.Fatal("Expected error for empty record set")
	}
}

func TestFindSimilarScenario(t *testing.T) {
	m := newMatcher(t, supportCorpus())

	matches := m.FindSimilar("I want an AI assistant for handling customer service tickets.", 5)
	if len(matches) < 2 {
		t.Fatalf("Expected at least 2 matches, got %d", len(matches))
	}

	// The two customer-support projects outrank the blockchain tracker
	topTwo := map[int]bool{matches[0].Project.ID: true, matches[1].Project.ID: true}
	if !topTwo[0] || !topTwo[2] {
		t.Errorf("Expected projects 0 and 2 on top, got %v", topTwo)
	}
	for _, mt := range matches {
		if mt.Project.ID == 1 {
			t.Error("Blockchain tracker should not qualify for this query")
		}
	}

	if !strings.Contains(matches[0].MatchReason, "customer") {
		t.Errorf("Expected 'customer' in match reason, got %q", matches[0].MatchReason)
	}
}

func TestFindSimilarDeterministic(t *testing.T) {
	m := newMatcher(t, supportCorpus())

	query := "AI customer support ticket triage"
	first := m.FindSimilar(query, 3)
	for i := 0; i < 5; i++ {
		again := m.FindSimilar(query, 3)
		if len(again) != len(first) {
			t.Fatalf("Result count changed between calls: %d vs %d", len(first), len(again))
		}
		for j := range again {
			if again[j].Project.ID != first[j].Project.ID || again[j].Score != first[j].Score {
				t.Fatalf("Result %d changed between identical calls", j)
			}
		}
	}
}

func TestFindSimilarScoreBounds(t *testing.T) {
	m := newMatcher(t, supportCorpus())

	matches := m.FindSimilar("customer support system", 5)
	prev := 2.0
	for _, mt := range matches {
		if mt.Score < 0 || mt.Score > 1 {
			t.Errorf("Raw score out of [0,1]: %f", mt.Score)
		}
		if mt.ScorePercent < 0 || mt.ScorePercent > 100 {
			t.Errorf("Percent score out of [0,100]: %f", mt.ScorePercent)
		}
		if mt.Score > prev {
			t.Error("Scores not monotonically non-increasing")
		}
		prev = mt.Score
	}
}

func TestFindSimilarSelfSimilarity(t *testing.T) {
	records := supportCorpus()
	m := newMatcher(t, records)

	matches := m.FindSimilar(records[2].Description, 3)
	if len(matches) == 0 {
		t.Fatal("Expected matches for a document's own text")
	}
	if matches[0].Project.ID != 2 {
		t.Errorf("Expected project 2 to rank itself on top, got %d", matches[0].Project.ID)
	}
}

func TestFindSimilarSingleDocumentSelfQuery(t *testing.T) {
	m := newMatcher(t, []project.Record{
		{ID: 0, Title: "Solo", Description: "distributed graph database engine"},
	})

	// Querying with the document's full text (title included) reproduces
	// its vector exactly
	matches := m.FindSimilar("Solo distributed graph database engine", 1)
	if len(matches) != 1 {
		t.Fatalf("Expected exactly 1 match, got %d", len(matches))
	}
	if matches[0].Score < 0.99 {
		t.Errorf("Expected near-perfect self similarity, got %f", matches[0].Score)
	}
}

func TestFindSimilarEmptyQuery(t *testing.T) {
	m := newMatcher(t, supportCorpus())

	matches := m.FindSimilar("", 5)
	if matches == nil {
		t.Fatal("Expected a list, got nil")
	}
	if len(matches) != 0 {
		t.Errorf("Expected no matches for empty query, got %d", len(matches))
	}
}

func TestFindSimilarTopKCap(t *testing.T) {
	m := newMatcher(t, supportCorpus())

	matches := m.FindSimilar("customer support", 1)
	if len(matches) > 1 {
		t.Errorf("Expected at most 1 match, got %d", len(matches))
	}
}

func TestFindSimilarDerivesGitHubURL(t *testing.T) {
	m := newMatcher(t, []project.Record{
		{ID: 0, Title: "Widget", Description: "Check it out: https://github.com/acme/widget for widget automation tooling"},
		{ID: 1, Title: "Gizmo", Description: "gizmo automation tooling with no repository link"},
	})

	matches := m.FindSimilar("widget automation tooling", 2)
	if len(matches) == 0 {
		t.Fatal("Expected matches")
	}
	for _, mt := range matches {
		switch mt.Project.ID {
		case 0:
			if mt.GitHubURL != "https://github.com/acme/widget" {
				t.Errorf("Expected extracted GitHub URL, got %q", mt.GitHubURL)
			}
		case 1:
			if mt.GitHubURL != "" {
				t.Errorf("Expected no GitHub URL, got %q", mt.GitHubURL)
			}
		}
	}
}
