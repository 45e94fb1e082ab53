// Package score computes composite locality scores, verdicts, ROI
// projections, and budget fit for (zone, price) pairs.
package score

import (
	"github.com/rotisserie/eris"

	"github.com/naija-prop/intel-cli/internal/model"
)

// Strategy is a named, fixed weighting over the three risk factors. The
// weights are system constants, selected by call site rather than toggled
// by a flag, so each formula stays auditable in isolation.
type Strategy struct {
	Name        string
	FloodWeight float64 // applied to inverted flood risk (100 - score)
	SecWeight   float64
	InfraWeight float64
}

// Habitability weights flood exposure as the dominant factor: flooding is a
// catastrophic, irreversible loss, so general risk evaluation leads with it.
var Habitability = Strategy{
	Name:        "habitability",
	FloodWeight: 0.40,
	SecWeight:   0.30,
	InfraWeight: 0.30,
}

// Corridor weights day-to-day livability (security, infrastructure) as
// co-equal to flood avoidance, the trade-off a commuter actually makes.
var Corridor = Strategy{
	Name:        "corridor",
	FloodWeight: 0.30,
	SecWeight:   0.35,
	InfraWeight: 0.35,
}

// ByName looks up a strategy by its name. Empty input selects Habitability,
// the general-purpose default.
func ByName(name string) (Strategy, error) {
	switch name {
	case "", Habitability.Name:
		return Habitability, nil
	case Corridor.Name:
		return Corridor, nil
	default:
		return Strategy{}, eris.Wrapf(model.ErrInvalidInput, "unknown strategy %q", name)
	}
}

// Composite computes the weighted score for a zone, clamped to [0,100].
func (st Strategy) Composite(z *model.Zone) float64 {
	floodSafety := 100 - z.FloodRisk.Score
	s := floodSafety*st.FloodWeight +
		z.Security.Score*st.SecWeight +
		z.Infrastructure.Score*st.InfraWeight
	return clamp(s, 0, 100)
}

// Breakdown reports each factor's contribution under this strategy.
func (st Strategy) Breakdown(z *model.Zone) []model.FactorBreakdown {
	floodSafety := 100 - z.FloodRisk.Score
	return []model.FactorBreakdown{
		{Factor: "flood_safety", RawScore: floodSafety, Weight: st.FloodWeight, Weighted: floodSafety * st.FloodWeight},
		{Factor: "security", RawScore: z.Security.Score, Weight: st.SecWeight, Weighted: z.Security.Score * st.SecWeight},
		{Factor: "infrastructure", RawScore: z.Infrastructure.Score, Weight: st.InfraWeight, Weighted: z.Infrastructure.Score * st.InfraWeight},
	}
}

// VerdictFor maps a composite score to its qualitative band. The bands are
// exhaustive and non-overlapping over [0,100].
func VerdictFor(composite float64) model.Verdict {
	switch {
	case composite >= 85:
		return model.VerdictExcellent
	case composite >= 70:
		return model.VerdictGood
	case composite >= 50:
		return model.VerdictModerate
	default:
		return model.VerdictHighRisk
	}
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
