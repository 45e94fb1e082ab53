// Package query is the read-side facade over the catalog: it resolves
// location references, delegates to the scoring and corridor engines, and
// parses free-text prompts into structured queries.
package query

import (
	"sort"
	"strconv"
	"strings"
	"sync"

	"github.com/rotisserie/eris"

	"github.com/naija-prop/intel-cli/internal/catalog"
	"github.com/naija-prop/intel-cli/internal/geo"
	"github.com/naija-prop/intel-cli/internal/model"
	"github.com/naija-prop/intel-cli/internal/resolve"
	"github.com/naija-prop/intel-cli/internal/score"
)

// nearestZoneMaxKM bounds coordinate lookups. A coordinate further than this
// from every catalog zone is outside coverage, not "near" anything.
const nearestZoneMaxKM = 25.0

// Facade serves all read-side operations. It caches a resolver per published
// snapshot, rebuilding lazily after a catalog reload.
type Facade struct {
	handle *catalog.Handle

	mu       sync.Mutex
	snap     *catalog.Snapshot
	resolver *resolve.Resolver
}

// New builds a facade over the catalog handle.
func New(handle *catalog.Handle) *Facade {
	return &Facade{handle: handle}
}

// view returns the current snapshot and a resolver indexed over it.
func (f *Facade) view() (*catalog.Snapshot, *resolve.Resolver) {
	snap := f.handle.Snapshot()
	f.mu.Lock()
	defer f.mu.Unlock()
	if snap != f.snap {
		f.snap = snap
		f.resolver = resolve.New(snap)
	}
	return f.snap, f.resolver
}

// ResolveRef resolves a zone reference: a canonical name, an alias, free
// text, or a "lat,lng" coordinate (matched to the nearest covered zone).
func (f *Facade) ResolveRef(ref string) (*model.Zone, error) {
	snap, resolver := f.view()
	if coord, ok := parseCoordinate(ref); ok {
		return nearestZone(snap, coord)
	}
	return resolver.Resolve(ref)
}

// Candidates returns the ranked resolution candidates for free text.
func (f *Facade) Candidates(text string) ([]model.Candidate, error) {
	_, resolver := f.view()
	return resolver.Candidates(text)
}

// Evaluate resolves ref and scores it at the given asking price.
func (f *Facade) Evaluate(ref string, price float64, opts score.Options) (*model.ScoreResult, error) {
	zone, err := f.ResolveRef(ref)
	if err != nil {
		return nil, err
	}
	return score.Evaluate(zone, price, opts)
}

// Profile resolves ref and scores it by risk profile alone, for callers
// with no asking price in hand.
func (f *Facade) Profile(ref string) (*model.ScoreResult, error) {
	zone, err := f.ResolveRef(ref)
	if err != nil {
		return nil, err
	}
	return score.Composite(zone, score.Habitability), nil
}

// SearchCorridor resolves both endpoints and runs the corridor search.
// Unresolved endpoints propagate unchanged, candidates intact.
func (f *Facade) SearchCorridor(q model.CorridorQuery) (*model.CorridorResult, error) {
	snap, _ := f.view()
	origin, err := f.ResolveRef(q.Origin)
	if err != nil {
		return nil, err
	}
	destination, err := f.ResolveRef(q.Destination)
	if err != nil {
		return nil, err
	}
	return geo.Search(snap, origin, destination, q)
}

// CorridorBuffer returns the corridor outline between two resolved endpoints
// as a GeoJSON polygon for map overlays.
func (f *Facade) CorridorBuffer(originRef, destinationRef string, halfWidthKM float64) ([]byte, error) {
	origin, err := f.ResolveRef(originRef)
	if err != nil {
		return nil, err
	}
	destination, err := f.ResolveRef(destinationRef)
	if err != nil {
		return nil, err
	}
	return geo.BufferGeoJSON(origin.Coordinate, destination.Coordinate, halfWidthKM)
}

// RouteOption is one candidate corridor in a route comparison.
type RouteOption struct {
	Destination *model.Zone           `json:"destination"`
	Result      *model.CorridorResult `json:"result"`
}

// CompareRoutes runs the corridor search from one origin to each candidate
// destination and ranks the routes: most qualifying zones first, ties broken
// by the best match's composite score, then by shorter route.
func (f *Facade) CompareRoutes(originRef string, destinationRefs []string, q model.CorridorQuery) ([]RouteOption, error) {
	if len(destinationRefs) == 0 {
		return nil, eris.Wrap(model.ErrInvalidInput, "compare: at least one destination required")
	}

	options := make([]RouteOption, 0, len(destinationRefs))
	for _, ref := range destinationRefs {
		rq := q
		rq.Origin = originRef
		rq.Destination = ref
		result, err := f.SearchCorridor(rq)
		if err != nil {
			return nil, eris.Wrapf(err, "compare: route to %q", ref)
		}
		options = append(options, RouteOption{Destination: result.Destination, Result: result})
	}

	sortRouteOptions(options)
	return options, nil
}

func sortRouteOptions(options []RouteOption) {
	sort.SliceStable(options, func(a, b int) bool {
		ra, rb := options[a].Result, options[b].Result
		if len(ra.Matches) != len(rb.Matches) {
			return len(ra.Matches) > len(rb.Matches)
		}
		as, bs := topScore(ra), topScore(rb)
		if as != bs {
			return as > bs
		}
		return ra.RouteKM < rb.RouteKM
	})
}

func topScore(r *model.CorridorResult) float64 {
	if len(r.Matches) == 0 {
		return 0
	}
	return r.Matches[0].Score.CompositeScore
}

// parseCoordinate reads a "lat,lng" pair in degrees.
func parseCoordinate(ref string) (model.Coordinate, bool) {
	parts := strings.Split(ref, ",")
	if len(parts) != 2 {
		return model.Coordinate{}, false
	}
	lat, err := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	if err != nil {
		return model.Coordinate{}, false
	}
	lng, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err != nil {
		return model.Coordinate{}, false
	}
	if lat < -90 || lat > 90 || lng < -180 || lng > 180 {
		return model.Coordinate{}, false
	}
	return model.Coordinate{Lat: lat, Lng: lng}, true
}

// nearestZone returns the catalog zone closest to the coordinate, within the
// coverage bound.
func nearestZone(snap *catalog.Snapshot, c model.Coordinate) (*model.Zone, error) {
	zones := snap.All()
	bestIdx, bestKM := -1, 0.0
	for i := range zones {
		km := geo.HaversineKM(c.Lat, c.Lng, zones[i].Coordinate.Lat, zones[i].Coordinate.Lng)
		if bestIdx < 0 || km < bestKM {
			bestIdx, bestKM = i, km
		}
	}
	if bestIdx < 0 || bestKM > nearestZoneMaxKM {
		return nil, eris.Wrapf(model.ErrNotFound, "no covered zone within %.0f km of %.4f,%.4f", nearestZoneMaxKM, c.Lat, c.Lng)
	}
	return &zones[bestIdx], nil
}
