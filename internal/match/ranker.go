package match

import "sort"

// Hit is one ranked candidate: a corpus index and its raw cosine score.
type Hit struct {
	Index int
	Score float64
}

// Rank scores every corpus document against the query text and returns at
// most topK hits with score strictly above minScore, sorted descending.
// Ties keep corpus order (stable sort). An empty or punctuation-only query
// produces a zero vector and therefore zero hits; it is not an error.
func Rank(idx *FittedIndex, queryText string, topK int, minScore float64) []Hit {
	if topK < 1 {
		topK = 1
	}

	queryVec := idx.Transform(queryText)
	hits := make([]Hit, 0, topK)
	for i := range idx.docVectors {
		score := Dot(queryVec, idx.docVectors[i])
		if score > minScore {
			hits = append(hits, Hit{Index: i, Score: score})
		}
	}

	sort.SliceStable(hits, func(a, b int) bool {
		return hits[a].Score > hits[b].Score
	})

	if len(hits) > topK {
		hits = hits[:topK]
	}
	return hits
}
