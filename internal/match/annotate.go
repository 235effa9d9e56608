package match

import (
	"fmt"
	"regexp"
	"strings"
)

// GitHub URL forms, tried in order: full URL, bare domain, @owner/repo
// mention.
var githubPatterns = []*regexp.Regexp{
	regexp.MustCompile(`https?://github\.com/[A-Za-z0-9-]+/[A-Za-z0-9._-]+`),
	regexp.MustCompile(`github\.com/[A-Za-z0-9-]+/[A-Za-z0-9._-]+`),
	regexp.MustCompile(`@([A-Za-z0-9-]+/[A-Za-z0-9._-]+)`),
}

// ExtractGitHubURL scans free text for a GitHub repository reference and
// returns it normalized to an https:// URL, or "" when nothing matches.
// Safe on empty and malformed input.
func ExtractGitHubURL(text string) string {
	if text == "" {
		return ""
	}
	for i, pattern := range githubPatterns {
		m := pattern.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		switch i {
		case 0:
			return m[0]
		case 1:
			return "https://" + m[0]
		default:
			return "https://github.com/" + m[1]
		}
	}
	return ""
}

// minReasonTokenLength filters common short words out of the overlap shown
// to users.
const minReasonTokenLength = 4

// maxReasonTokens caps how many shared tokens the reason lists.
const maxReasonTokens = 3

// genericReason is reported when the query and project share no long tokens.
const genericReason = "Semantic similarity in project context"

// MatchReason reports up to three tokens shared between the query and the
// project's combined text, in query order, as a best-effort explainability
// aid. It makes no precision claim; with no overlap it falls back to a
// generic message.
func MatchReason(query, projectText string) string {
	projectTokens := make(map[string]bool)
	for _, t := range strings.Fields(Normalize(projectText)) {
		projectTokens[t] = true
	}

	var shared []string
	seen := make(map[string]bool)
	for _, t := range strings.Fields(Normalize(query)) {
		if len(t) < minReasonTokenLength || seen[t] || !projectTokens[t] {
			continue
		}
		seen[t] = true
		shared = append(shared, t)
		if len(shared) == maxReasonTokens {
			break
		}
	}

	if len(shared) == 0 {
		return genericReason
	}
	return fmt.Sprintf("Shared concepts: %s", strings.Join(shared, ", "))
}

// keywordTable is an ordered category -> keyword dictionary. Order is fixed
// so tag output is deterministic.
type keywordTable []struct {
	Category string
	Keywords []string
}

// technologyTable detects coarse technology-stack categories from project
// text. This is a plain keyword heuristic with no statistical validity;
// Tag.Method labels it as such in user-facing output.
var technologyTable = keywordTable{
	{"Frontend", []string{"react", "vue", "angular", "html", "css", "javascript", "typescript", "frontend", "browser", "svelte"}},
	{"Backend", []string{"python", "node", "java", "golang", "rust", "backend", "api", "server", "database", "postgresql", "mysql", "mongodb", "redis"}},
	{"AI/ML", []string{"machine learning", "artificial intelligence", "tensorflow", "pytorch", "neural", "deep learning", "nlp", "computer vision", "llm", "gpt"}},
	{"Mobile", []string{"ios", "android", "mobile", "react native", "flutter", "swift", "kotlin"}},
	{"Cloud", []string{"aws", "azure", "gcp", "cloud", "docker", "kubernetes", "microservices", "serverless", "lambda"}},
	{"Data", []string{"analytics", "visualization", "etl", "pipeline", "warehouse", "sql", "big data", "hadoop", "spark"}},
	{"Blockchain", []string{"blockchain", "crypto", "web3", "ethereum", "smart contract", "defi", "nft", "bitcoin"}},
	{"IoT", []string{"iot", "sensor", "hardware", "embedded", "arduino", "raspberry pi"}},
}

// businessModelTable detects revenue-model hints the same way.
var businessModelTable = keywordTable{
	{"subscription", []string{"saas", "subscription", "monthly", "annual", "recurring", "membership"}},
	{"freemium", []string{"freemium", "free tier", "premium", "upgrade"}},
	{"marketplace", []string{"marketplace", "commission", "transaction", "platform", "exchange"}},
	{"b2b", []string{"enterprise", "business", "corporate", "b2b"}},
	{"advertising", []string{"ads", "advertising", "sponsored", "monetization"}},
	{"consulting", []string{"consulting", "services", "agency", "implementation"}},
	{"licensing", []string{"license", "sdk", "integration", "partnership"}},
}

// tagConfidenceWeight converts a keyword-match count into a 0-100
// confidence: min(count*weight, 100).
const tagConfidenceWeight = 15

// tagMethod labels every tag as the keyword heuristic it is.
const tagMethod = "keyword heuristic"

// Tag is one detected category with the keywords that triggered it.
type Tag struct {
	Category   string   `json:"category"`
	Keywords   []string `json:"keywords_found"`
	Confidence int      `json:"confidence"`
	Method     string   `json:"method"`
}

// detectTags matches normalized text against a keyword table. A category is
// detected when at least one keyword is present.
func detectTags(table keywordTable, text string) []Tag {
	normalized := " " + Normalize(text) + " "
	var tags []Tag
	for _, entry := range table {
		var found []string
		for _, kw := range entry.Keywords {
			if strings.Contains(normalized, " "+kw+" ") {
				found = append(found, kw)
			}
		}
		if len(found) == 0 {
			continue
		}
		confidence := len(found) * tagConfidenceWeight
		if confidence > 100 {
			confidence = 100
		}
		tags = append(tags, Tag{
			Category:   entry.Category,
			Keywords:   found,
			Confidence: confidence,
			Method:     tagMethod,
		})
	}
	return tags
}

// TechnologyTags runs the technology dictionary over text.
func TechnologyTags(text string) []Tag {
	return detectTags(technologyTable, text)
}

// BusinessModelTags runs the revenue-model dictionary over text.
func BusinessModelTags(text string) []Tag {
	return detectTags(businessModelTable, text)
}

// Complexity buckets a raw cosine score into an integration-complexity
// label: high overlap means low integration effort.
func Complexity(score float64) string {
	switch {
	case score > 0.7:
		return "low"
	case score > 0.4:
		return "medium"
	default:
		return "high"
	}
}
