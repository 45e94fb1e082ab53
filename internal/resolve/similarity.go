package resolve

import "github.com/agext/levenshtein"

// The blended similarity combines token overlap (catches reordered or
// partial multi-word names, "phase 1 lekki") with edit-distance ratio
// (catches misspellings, "Ikoye"). A single-token typo has zero token
// overlap, so the blend is floored at the raw edit ratio: the overlap term
// can only raise a score, never sink one.
const (
	tokenWeight = 0.5
	editWeight  = 0.5
)

// similarity scores two normalized strings in [0,1]. Identical strings
// score exactly 1 so the canonical round-trip law holds.
func similarity(a, b string) float64 {
	if a == b {
		return 1
	}
	if a == "" || b == "" {
		return 0
	}
	edit := levenshtein.Similarity(a, b, nil)
	blended := tokenWeight*tokenOverlap(a, b) + editWeight*edit
	if edit > blended {
		return edit
	}
	return blended
}

// tokenOverlap is the overlap coefficient of the two word sets:
// |intersection| / min(|a|, |b|). The min denominator makes a sub-area
// query like "victoria" score fully against "victoria island".
func tokenOverlap(a, b string) float64 {
	ta, tb := tokens(a), tokens(b)
	if len(ta) == 0 || len(tb) == 0 {
		return 0
	}
	var inter int
	for tok := range ta {
		if tb[tok] {
			inter++
		}
	}
	smaller := len(ta)
	if len(tb) < smaller {
		smaller = len(tb)
	}
	return float64(inter) / float64(smaller)
}
