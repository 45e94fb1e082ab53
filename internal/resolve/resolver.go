// Package resolve maps free-text location input to catalog zones. Exact
// matches go through a precomputed normalized-name index; everything else
// falls back to similarity ranking over canonical and alias names.
package resolve

import (
	"sort"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/naija-prop/intel-cli/internal/catalog"
	"github.com/naija-prop/intel-cli/internal/model"
)

const (
	// SimilarityFloor is the minimum blended similarity for a fuzzy match to
	// count as resolved.
	SimilarityFloor = 0.55

	// suggestionFloor is the lower bar for candidates attached to an
	// Unresolved error ("did you mean" material, not matches).
	suggestionFloor = 0.35

	// maxCandidates caps the ranked candidate list.
	maxCandidates = 5
)

// indexEntry points a normalized name at a zone and remembers which of the
// zone's names produced it.
type indexEntry struct {
	zoneIdx    int
	matchedVia string
}

// Resolver resolves free text against one catalog snapshot. It is a pure
// function over the snapshot: safe for concurrent use, no side effects.
type Resolver struct {
	snap  *catalog.Snapshot
	exact map[string]indexEntry
	names []nameRef
}

// nameRef is one searchable name (canonical or alias) in catalog order.
type nameRef struct {
	zoneIdx    int
	display    string
	normalized string
}

// New builds a resolver index over the snapshot. When two zones share a
// normalized name (an alias colliding with another zone), the earlier
// catalog entry wins, keeping resolution deterministic.
func New(snap *catalog.Snapshot) *Resolver {
	r := &Resolver{
		snap:  snap,
		exact: make(map[string]indexEntry),
	}
	for i, z := range snap.All() {
		r.addName(i, z.Name)
		for _, alias := range z.Aliases {
			r.addName(i, alias)
		}
	}
	return r
}

func (r *Resolver) addName(zoneIdx int, display string) {
	normalized := Normalize(display)
	if normalized == "" {
		return
	}
	r.names = append(r.names, nameRef{zoneIdx: zoneIdx, display: display, normalized: normalized})
	if _, taken := r.exact[normalized]; !taken {
		r.exact[normalized] = indexEntry{zoneIdx: zoneIdx, matchedVia: display}
	}
}

// Resolve returns the best-matching zone for the input text, or an
// UnresolvedError (matching model.ErrUnresolved) carrying ranked
// suggestions when nothing clears the similarity floor.
func (r *Resolver) Resolve(text string) (*model.Zone, error) {
	candidates, err := r.Candidates(text)
	if err != nil {
		return nil, err
	}
	return candidates[0].Zone, nil
}

// Candidates returns the ranked candidate list for the input text. The
// first entry is the best match. Ranking is similarity descending with
// catalog insertion order as the deterministic tie-break.
func (r *Resolver) Candidates(text string) ([]model.Candidate, error) {
	normalized := Normalize(text)
	if normalized == "" {
		return nil, eris.Wrap(model.ErrInvalidInput, "resolve: empty location text")
	}

	// Exact index hit: canonical or alias, O(1).
	if entry, ok := r.exact[normalized]; ok {
		zones := r.snap.All()
		return []model.Candidate{{
			Zone:       &zones[entry.zoneIdx],
			Name:       zones[entry.zoneIdx].Name,
			MatchedVia: entry.matchedVia,
			Similarity: 1,
		}}, nil
	}

	ranked := r.rank(normalized)

	var resolved []model.Candidate
	for _, c := range ranked {
		if c.Similarity >= SimilarityFloor {
			resolved = append(resolved, c)
		}
	}
	if len(resolved) > 0 {
		zap.L().Debug("resolve: fuzzy match",
			zap.String("input", text),
			zap.String("zone", resolved[0].Name),
			zap.Float64("similarity", resolved[0].Similarity),
		)
		return resolved, nil
	}

	var suggestions []model.Candidate
	for _, c := range ranked {
		if c.Similarity >= suggestionFloor {
			suggestions = append(suggestions, c)
		}
	}
	return nil, &model.UnresolvedError{Query: text, Candidates: suggestions}
}

// rank scores every zone by its best name similarity and returns the top
// candidates in descending order.
func (r *Resolver) rank(normalized string) []model.Candidate {
	zones := r.snap.All()

	best := make(map[int]model.Candidate)
	for _, ref := range r.names {
		sim := similarity(normalized, ref.normalized)
		if cur, ok := best[ref.zoneIdx]; ok && cur.Similarity >= sim {
			continue
		}
		best[ref.zoneIdx] = model.Candidate{
			Zone:       &zones[ref.zoneIdx],
			Name:       zones[ref.zoneIdx].Name,
			MatchedVia: ref.display,
			Similarity: sim,
		}
	}

	idxs := make([]int, 0, len(best))
	for i := range best {
		idxs = append(idxs, i)
	}
	sort.Slice(idxs, func(a, b int) bool {
		ca, cb := best[idxs[a]], best[idxs[b]]
		if ca.Similarity != cb.Similarity {
			return ca.Similarity > cb.Similarity
		}
		return idxs[a] < idxs[b]
	})

	ranked := make([]model.Candidate, 0, maxCandidates)
	for _, i := range idxs {
		ranked = append(ranked, best[i])
		if len(ranked) == maxCandidates {
			break
		}
	}
	return ranked
}
