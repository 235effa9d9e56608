package match

import (
	"strings"

	"github.com/project-explorer/backend/internal/project"
)

// Corpus is the ordered collection of project records together with one
// normalized document string per record. Built once per dataset load and
// immutable afterwards; a new upload replaces the whole corpus.
type Corpus struct {
	Records   []project.Record
	Documents []string
}

// BuildCorpus produces one document per record, preserving record order so
// similarity scores stay index-aligned with the records.
//
// Document policy: all free-text fields are concatenated (title,
// description, detailed description, AI summary, category, subcategory).
// A record with no usable text at all falls back to its title.
func BuildCorpus(records []project.Record) *Corpus {
	c := &Corpus{
		Records:   records,
		Documents: make([]string, len(records)),
	}
	for i := range records {
		doc := Normalize(records[i].CombinedText())
		if doc == "" {
			doc = Normalize(records[i].Title)
		}
		c.Documents[i] = doc
	}
	return c
}

// Len returns the number of documents in the corpus.
func (c *Corpus) Len() int {
	return len(c.Documents)
}

// Record returns the record at a corpus index.
func (c *Corpus) Record(i int) project.Record {
	return c.Records[i]
}

// tokenizeDoc splits an already-normalized document into filtered tokens.
func tokenizeDoc(doc string) []string {
	fields := strings.Fields(doc)
	tokens := make([]string, 0, len(fields))
	for _, f := range fields {
		if len(f) < minTokenLength || stopwords[f] {
			continue
		}
		tokens = append(tokens, f)
	}
	return tokens
}
