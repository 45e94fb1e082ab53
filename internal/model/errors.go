package model

import "github.com/rotisserie/eris"

// Error taxonomy for the intelligence engine. Query-time errors
// (ErrNotFound, ErrUnresolved, ErrInvalidInput) are returned to callers as
// values and are recoverable. ErrData is only produced at catalog load time
// and is fatal to startup: the engine never serves queries against a
// partially validated catalog.
var (
	// ErrNotFound means an exact zone name was given but is absent from the catalog.
	ErrNotFound = eris.New("zone not found")

	// ErrUnresolved means free-text input could not be matched with sufficient
	// confidence. Distinct from "zero results": the query itself could not be
	// understood.
	ErrUnresolved = eris.New("location unresolved")

	// ErrInvalidInput covers malformed numeric input: non-positive price,
	// non-positive corridor width, and similar.
	ErrInvalidInput = eris.New("invalid input")

	// ErrData means the catalog load encountered an incomplete or
	// out-of-range record.
	ErrData = eris.New("invalid zone record")
)

// UnresolvedError carries the ranked candidate list alongside ErrUnresolved
// so the presentation layer can render "did you mean" suggestions.
type UnresolvedError struct {
	Query      string
	Candidates []Candidate
}

// Candidate is a scored resolver suggestion.
type Candidate struct {
	Zone       *Zone   `json:"-"`
	Name       string  `json:"name"`
	MatchedVia string  `json:"matched_via"` // the canonical or alias name that matched
	Similarity float64 `json:"similarity"`
}

func (e *UnresolvedError) Error() string {
	return "location unresolved: " + e.Query
}

// Unwrap makes eris.Is(err, ErrUnresolved) match.
func (e *UnresolvedError) Unwrap() error { return ErrUnresolved }
