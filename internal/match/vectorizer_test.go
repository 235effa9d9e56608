package match_test

import (
	"math"
	"reflect"
	"testing"

	"github.com/project-explorer/backend/internal/match"
	"github.com/project-explorer/backend/internal/project"
)

func corpusFrom(texts ...string) *match.Corpus {
	records := make([]project.Record, len(texts))
	for i, txt := range texts {
		records[i] = project.Record{ID: i, Title: "Row", Description: txt}
	}
	return match.BuildCorpus(records)
}

func TestFitEmptyCorpus(t *testing.T) {
	_, err := match.Fit(corpusFrom(), match.DefaultConfig())
	if err == nil {
		t.Fatal("Expected error fitting empty corpus")
	}
	if err != match.ErrEmptyCorpus {
		t.Errorf("Expected ErrEmptyCorpus, got %v", err)
	}
}

func TestFitVocabulary(t *testing.T) {
	corpus := corpusFrom(
		"apple banana",
		"apple orange",
	)

	idx, err := match.Fit(corpus, match.DefaultConfig())
	if err != nil {
		t.Fatal(err)
	}

	// Unigrams: apple, banana, orange, row (title appears in every doc and
	// is pruned by the max-df cutoff). Bigrams: "row apple" style pairs.
	if idx.VocabularySize() == 0 {
		t.Fatal("Expected a non-empty vocabulary")
	}

	// A fitted document vector must be L2-normalized
	vec := idx.DocVector(0)
	var norm float64
	for _, w := range vec.Weights {
		norm += w * w
	}
	if math.Abs(norm-1.0) > 1e-9 {
		t.Errorf("Expected unit norm, got %f", math.Sqrt(norm))
	}
}

func TestTransformOutOfVocabulary(t *testing.T) {
	corpus := corpusFrom("apple banana", "apple orange")
	idx, err := match.Fit(corpus, match.DefaultConfig())
	if err != nil {
		t.Fatal(err)
	}

	vec := idx.Transform("zeppelin quartz")
	if !vec.IsZero() {
		t.Errorf("Expected zero vector for out-of-vocabulary query, got %v", vec)
	}
}

func TestTransformEmptyQuery(t *testing.T) {
	corpus := corpusFrom("apple banana")
	idx, err := match.Fit(corpus, match.DefaultConfig())
	if err != nil {
		t.Fatal(err)
	}

	if vec := idx.Transform(""); !vec.IsZero() {
		t.Errorf("Expected zero vector for empty query")
	}
	if vec := idx.Transform("!!! ???"); !vec.IsZero() {
		t.Errorf("Expected zero vector for punctuation-only query")
	}
}

func TestFitDeterministic(t *testing.T) {
	texts := []string{
		"machine learning platform with neural networks",
		"blockchain ledger with smart contracts",
		"mobile application with flutter widgets",
	}

	idxA, err := match.Fit(corpusFrom(texts...), match.DefaultConfig())
	if err != nil {
		t.Fatal(err)
	}
	idxB, err := match.Fit(corpusFrom(texts...), match.DefaultConfig())
	if err != nil {
		t.Fatal(err)
	}

	query := "neural network learning platform"
	if !reflect.DeepEqual(idxA.Transform(query), idxB.Transform(query)) {
		t.Error("Expected identical query vectors from two fits of the same corpus")
	}
	for i := range texts {
		if !reflect.DeepEqual(idxA.DocVector(i), idxB.DocVector(i)) {
			t.Errorf("Document vector %d differs between fits", i)
		}
	}
}

func TestDot(t *testing.T) {
	a := match.SparseVector{Indices: []int{0, 2}, Weights: []float64{0.6, 0.8}}
	b := match.SparseVector{Indices: []int{1, 2}, Weights: []float64{0.6, 0.8}}

	// Only index 2 overlaps: 0.8 * 0.8
	got := match.Dot(a, b)
	if math.Abs(got-0.64) > 1e-9 {
		t.Errorf("Expected dot product 0.64, got %f", got)
	}

	if match.Dot(a, match.SparseVector{}) != 0 {
		t.Error("Expected zero dot product against empty vector")
	}
}

func TestMaxFeaturesCap(t *testing.T) {
	cfg := match.DefaultConfig()
	cfg.MaxFeatures = 2
	cfg.NGramMax = 1
	cfg.MaxDocFreqRatio = 1.0

	corpus := corpusFrom(
		"apple apple banana cherry",
		"apple banana durian",
	)
	idx, err := match.Fit(corpus, cfg)
	if err != nil {
		t.Fatal(err)
	}
	if idx.VocabularySize() != 2 {
		t.Errorf("Expected vocabulary capped at 2, got %d", idx.VocabularySize())
	}

	// The cap keeps the highest corpus-wide counts: apple and banana both
	// survive, rarer terms do not.
	if vec := idx.Transform("cherry durian"); !vec.IsZero() {
		t.Error("Expected capped-out terms to contribute zero weight")
	}
	if vec := idx.Transform("apple banana"); vec.IsZero() {
		t.Error("Expected kept terms to produce a non-zero vector")
	}
}
