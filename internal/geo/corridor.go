package geo

import (
	"runtime"
	"sort"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/naija-prop/intel-cli/internal/catalog"
	"github.com/naija-prop/intel-cli/internal/model"
	"github.com/naija-prop/intel-cli/internal/score"
)

// EndpointToleranceKM extends the segment at both ends when testing
// along-track membership, so a zone sitting just past an endpoint still
// counts as "along the way".
const EndpointToleranceKM = 2.0

// Search finds the catalog zones lying within the corridor between two
// resolved zones and returns them ranked. Ranking is corridor composite
// score descending, with cross-track distance ascending then price per sqm
// ascending as tie-breaks.
func Search(snap *catalog.Snapshot, origin, destination *model.Zone, q model.CorridorQuery) (*model.CorridorResult, error) {
	if q.HalfWidthKM <= 0 {
		return nil, eris.Wrapf(model.ErrInvalidInput, "corridor half-width must be positive, got %.2f", q.HalfWidthKM)
	}
	if q.BudgetNGN < 0 {
		return nil, eris.Wrapf(model.ErrInvalidInput, "budget must not be negative, got %.0f", q.BudgetNGN)
	}

	result := &model.CorridorResult{
		Origin:        origin,
		Destination:   destination,
		HalfWidthKM:   q.HalfWidthKM,
		ZonesSearched: snap.Len(),
	}

	// Degenerate corridor: both endpoints resolve to the same zone. Return
	// that zone alone rather than an empty corridor.
	if origin.Name == destination.Name {
		match, err := scoreMatch(origin, 0, 0, q)
		if err != nil {
			return nil, err
		}
		if match != nil {
			result.Matches = []model.CorridorMatch{*match}
		}
		return result, nil
	}

	o, d := origin.Coordinate, destination.Coordinate
	segLen := HaversineKM(o.Lat, o.Lng, d.Lat, d.Lng)
	result.RouteKM = segLen

	zones := snap.All()
	matches := make([]*model.CorridorMatch, len(zones))

	g := new(errgroup.Group)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i := range zones {
		g.Go(func() error {
			z := &zones[i]
			cross, along := TrackDistances(o.Lat, o.Lng, d.Lat, d.Lng, z.Coordinate.Lat, z.Coordinate.Lng)
			if cross > q.HalfWidthKM {
				return nil
			}
			if along < -EndpointToleranceKM || along > segLen+EndpointToleranceKM {
				return nil
			}
			m, err := scoreMatch(z, cross, along, q)
			if err != nil {
				return err
			}
			matches[i] = m
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	for _, m := range matches {
		if m != nil {
			result.Matches = append(result.Matches, *m)
		}
	}
	rankMatches(result.Matches)

	zap.L().Debug("corridor: search complete",
		zap.String("origin", origin.Name),
		zap.String("destination", destination.Name),
		zap.Float64("route_km", segLen),
		zap.Int("matches", len(result.Matches)),
	)
	return result, nil
}

// scoreMatch scores a qualifying zone under the corridor strategy and
// applies the budget/bedroom filters. Returns nil when the zone is filtered
// out.
func scoreMatch(z *model.Zone, crossKM, alongKM float64, q model.CorridorQuery) (*model.CorridorMatch, error) {
	area := score.UnitAreaForBedrooms(q.Bedrooms)
	estimated := z.Market.PricePerSqm * area

	if q.BudgetNGN > 0 && estimated > q.BudgetNGN {
		return nil, nil
	}

	var (
		sr  *model.ScoreResult
		err error
	)
	if estimated > 0 {
		sr, err = score.Evaluate(z, estimated, score.Options{
			Strategy: score.Corridor,
			Bedrooms: q.Bedrooms,
			Budget:   q.BudgetNGN,
		})
		if err != nil {
			return nil, err
		}
	} else {
		// Zones without market data still rank by risk profile.
		sr = score.Composite(z, score.Corridor)
	}

	return &model.CorridorMatch{
		Zone:         z,
		Score:        sr,
		CrossTrackKM: crossKM,
		AlongTrackKM: alongKM,
	}, nil
}

// rankMatches sorts by composite score descending, then cross-track
// ascending, then price per sqm ascending.
func rankMatches(matches []model.CorridorMatch) {
	sort.SliceStable(matches, func(a, b int) bool {
		ma, mb := matches[a], matches[b]
		if ma.Score.CompositeScore != mb.Score.CompositeScore {
			return ma.Score.CompositeScore > mb.Score.CompositeScore
		}
		if ma.CrossTrackKM != mb.CrossTrackKM {
			return ma.CrossTrackKM < mb.CrossTrackKM
		}
		return ma.Zone.Market.PricePerSqm < mb.Zone.Market.PricePerSqm
	})
}
