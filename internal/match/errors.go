package match

import (
	"errors"
	"fmt"
)

// ErrEmptyCorpus is returned when fitting a vector space over zero
// documents. It is fatal for that dataset load and distinct from the
// "query found no results" condition.
var ErrEmptyCorpus = errors.New("match: cannot fit vector space on an empty corpus")

// VectorizationError wraps an unexpected failure inside fit or transform.
// It is recovered at the query boundary so a single bad query never takes
// down a service holding a shared index.
type VectorizationError struct {
	Stage string
	Cause error
}

func (e *VectorizationError) Error() string {
	return fmt.Sprintf("match: vectorization failed during %s: %v", e.Stage, e.Cause)
}

func (e *VectorizationError) Unwrap() error {
	return e.Cause
}
