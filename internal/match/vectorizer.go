package match

import (
	"errors"
	"math"
	"sort"
	"strings"
)

// Config controls vocabulary construction and ranking thresholds.
type Config struct {
	MaxFeatures     int     // vocabulary size cap
	NGramMin        int     // smallest n-gram length
	NGramMax        int     // largest n-gram length
	MinDocFreq      int     // drop terms appearing in fewer documents
	MaxDocFreqRatio float64 // drop terms appearing in more than this share of documents
	MinScore        float64 // ranker noise floor on the raw [0,1] cosine scale
}

// DefaultConfig mirrors the vectorizer settings the matcher ships with:
// unigrams+bigrams, 1000 features, df cutoffs 1 and 0.95, 0.01 noise floor.
func DefaultConfig() Config {
	return Config{
		MaxFeatures:     1000,
		NGramMin:        1,
		NGramMax:        2,
		MinDocFreq:      1,
		MaxDocFreqRatio: 0.95,
		MinScore:        0.01,
	}
}

// SparseVector is an L2-normalized TF-IDF vector. Indices are strictly
// increasing vocabulary columns; Weights holds the matching values. Keeping
// both slices sorted makes dot products a deterministic two-pointer merge.
type SparseVector struct {
	Indices []int
	Weights []float64
}

// IsZero reports whether the vector has no non-zero components.
func (v SparseVector) IsZero() bool {
	return len(v.Indices) == 0
}

// Dot computes the dot product of two sparse vectors. Both sides are
// pre-normalized, so this is the cosine similarity, bounded in [0,1] for
// non-negative term weights.
func Dot(a, b SparseVector) float64 {
	var sum float64
	i, j := 0, 0
	for i < len(a.Indices) && j < len(b.Indices) {
		switch {
		case a.Indices[i] < b.Indices[j]:
			i++
		case a.Indices[i] > b.Indices[j]:
			j++
		default:
			sum += a.Weights[i] * b.Weights[j]
			i++
			j++
		}
	}
	return sum
}

// FittedIndex is the vector space learned from one corpus: the vocabulary,
// per-term IDF weights, and one normalized vector per document. Read-only
// after Fit, safe for concurrent Transform calls.
type FittedIndex struct {
	config     Config
	vocabulary map[string]int
	idf        []float64
	docVectors []SparseVector
}

// Fit learns a TF-IDF vector space over the corpus. Fitting is
// deterministic for a fixed corpus and config: vocabulary columns are
// assigned in lexicographic term order and the feature cap picks the
// highest corpus-wide term counts with lexicographic tie-break.
//
// IDF uses the smoothed formula idf = ln((1+N)/(1+df)) + 1 and every vector
// is L2-normalized, so similarity reduces to a dot product.
func Fit(corpus *Corpus, cfg Config) (*FittedIndex, error) {
	n := corpus.Len()
	if n == 0 {
		return nil, ErrEmptyCorpus
	}

	docTerms := make([]map[string]int, n)
	docFreq := make(map[string]int)
	termCount := make(map[string]int)

	for d, doc := range corpus.Documents {
		tf := make(map[string]int)
		for _, term := range ngrams(tokenizeDoc(doc), cfg.NGramMin, cfg.NGramMax) {
			tf[term]++
			termCount[term]++
		}
		for term := range tf {
			docFreq[term]++
		}
		docTerms[d] = tf
	}

	// Document-frequency cutoffs. The upper cutoff is clamped to one
	// document so a single-document corpus keeps its vocabulary.
	maxDF := cfg.MaxDocFreqRatio * float64(n)
	if maxDF < 1 {
		maxDF = 1
	}
	candidates := make([]string, 0, len(docFreq))
	for term, df := range docFreq {
		if df < cfg.MinDocFreq {
			continue
		}
		if cfg.MaxDocFreqRatio > 0 && float64(df) > maxDF {
			continue
		}
		candidates = append(candidates, term)
	}
	if len(candidates) == 0 {
		return nil, &VectorizationError{Stage: "fit", Cause: errors.New("no terms survive document-frequency pruning")}
	}

	// Cap the vocabulary by corpus-wide term count, ties lexicographic
	if cfg.MaxFeatures > 0 && len(candidates) > cfg.MaxFeatures {
		sort.Slice(candidates, func(i, j int) bool {
			if termCount[candidates[i]] != termCount[candidates[j]] {
				return termCount[candidates[i]] > termCount[candidates[j]]
			}
			return candidates[i] < candidates[j]
		})
		candidates = candidates[:cfg.MaxFeatures]
	}
	sort.Strings(candidates)

	idx := &FittedIndex{
		config:     cfg,
		vocabulary: make(map[string]int, len(candidates)),
		idf:        make([]float64, len(candidates)),
	}
	for col, term := range candidates {
		idx.vocabulary[term] = col
		idx.idf[col] = math.Log(float64(1+n)/float64(1+docFreq[term])) + 1
	}

	idx.docVectors = make([]SparseVector, n)
	for d, tf := range docTerms {
		idx.docVectors[d] = idx.vectorize(tf)
	}
	return idx, nil
}

// Transform projects one free-text string into the fitted vocabulary space.
// Out-of-vocabulary terms contribute zero weight; an empty or
// punctuation-only query yields the zero vector, never an error.
func (idx *FittedIndex) Transform(text string) SparseVector {
	tf := make(map[string]int)
	for _, term := range ngrams(Tokenize(text), idx.config.NGramMin, idx.config.NGramMax) {
		tf[term]++
	}
	return idx.vectorize(tf)
}

// DocVector returns the precomputed vector for a corpus index.
func (idx *FittedIndex) DocVector(i int) SparseVector {
	return idx.docVectors[i]
}

// VocabularySize returns the number of learned terms.
func (idx *FittedIndex) VocabularySize() int {
	return len(idx.vocabulary)
}

// vectorize turns raw term counts into an L2-normalized sparse TF-IDF
// vector over the learned vocabulary.
func (idx *FittedIndex) vectorize(tf map[string]int) SparseVector {
	cols := make([]int, 0, len(tf))
	weights := make(map[int]float64, len(tf))
	for term, count := range tf {
		col, ok := idx.vocabulary[term]
		if !ok {
			continue
		}
		cols = append(cols, col)
		weights[col] = float64(count) * idx.idf[col]
	}
	if len(cols) == 0 {
		return SparseVector{}
	}
	sort.Ints(cols)

	var norm float64
	for _, col := range cols {
		norm += weights[col] * weights[col]
	}
	norm = math.Sqrt(norm)

	v := SparseVector{
		Indices: cols,
		Weights: make([]float64, len(cols)),
	}
	for i, col := range cols {
		v.Weights[i] = weights[col] / norm
	}
	return v
}

// ngrams expands a token sequence into all contiguous n-grams for n in
// [min, max]. Multi-word terms are joined with a single space.
func ngrams(tokens []string, min, max int) []string {
	if min < 1 {
		min = 1
	}
	if max < min {
		max = min
	}
	var out []string
	for n := min; n <= max; n++ {
		for i := 0; i+n <= len(tokens); i++ {
			if n == 1 {
				out = append(out, tokens[i])
				continue
			}
			out = append(out, strings.Join(tokens[i:i+n], " "))
		}
	}
	return out
}
