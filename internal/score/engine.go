package score

import (
	"math"

	"github.com/rotisserie/eris"

	"github.com/naija-prop/intel-cli/internal/model"
)

// DefaultUnitAreaSqm is the assumed unit size when the caller gives
// neither an area override nor a bedroom count (a typical 3-bedroom).
const DefaultUnitAreaSqm = 120

// bedroomAreaSqm maps bedroom counts to typical unit sizes.
var bedroomAreaSqm = map[int]float64{
	2: 80,
	3: 120,
	4: 160,
	5: 200,
}

// UnitAreaForBedrooms returns the assumed unit area for a bedroom count,
// falling back to the default for counts outside the table.
func UnitAreaForBedrooms(bedrooms int) float64 {
	if area, ok := bedroomAreaSqm[bedrooms]; ok {
		return area
	}
	return DefaultUnitAreaSqm
}

// Options adjusts a single evaluation. The zero value means: habitability
// strategy, default unit area, no budget, no ROI horizon.
type Options struct {
	Strategy     Strategy
	UnitAreaSqm  float64 // overrides the bedroom table when > 0
	Bedrooms     int
	Budget       float64              // 0 means no budget check
	BudgetAs     model.BudgetInterpretation // how to read Budget; defaults to total price
	HoldingYears int                  // 0 skips the ROI projection
}

// Evaluate scores a (zone, price) pair. Price must be positive: the ROI
// division and price-fairness comparison are undefined at zero, so a
// non-positive price is an InvalidInput error rather than a crash or a
// silent infinity.
func Evaluate(z *model.Zone, price float64, opts Options) (*model.ScoreResult, error) {
	if price <= 0 {
		return nil, eris.Wrapf(model.ErrInvalidInput, "price must be positive, got %.0f", price)
	}
	if opts.Strategy.Name == "" {
		opts.Strategy = Habitability
	}

	composite := opts.Strategy.Composite(z)
	result := &model.ScoreResult{
		ZoneName:       z.Name,
		CompositeScore: round1(composite),
		Verdict:        VerdictFor(composite),
		Strategy:       opts.Strategy.Name,
		Breakdown:      opts.Strategy.Breakdown(z),
		Price:          analyzePrice(z, price),
		Budget:         budgetFit(z, opts),
	}

	if opts.HoldingYears > 0 {
		roi, err := ProjectROI(z, price, opts.HoldingYears)
		if err != nil {
			return nil, err
		}
		result.ROI = roi
	}

	return result, nil
}

// Composite builds a ScoreResult carrying only the composite score,
// verdict, and factor breakdown, for callers that have no price to
// evaluate (zones missing market data still rank by risk profile).
func Composite(z *model.Zone, st Strategy) *model.ScoreResult {
	c := st.Composite(z)
	return &model.ScoreResult{
		ZoneName:       z.Name,
		CompositeScore: round1(c),
		Verdict:        VerdictFor(c),
		Strategy:       st.Name,
		Breakdown:      st.Breakdown(z),
		Price:          model.PriceAnalysis{Status: model.PriceUnknown},
	}
}

// ProjectROI computes the investment projection over a holding period.
// Hidden costs are deducted once; generator fuel recurs over the full
// holding period, not just the first year.
func ProjectROI(z *model.Zone, price float64, years int) (*model.ROIProjection, error) {
	if price <= 0 {
		return nil, eris.Wrapf(model.ErrInvalidInput, "roi: price must be positive, got %.0f", price)
	}
	if years <= 0 {
		return nil, eris.Wrapf(model.ErrInvalidInput, "roi: holding period must be positive, got %d", years)
	}

	rental := price * z.Market.RentalYield * float64(years)
	gain := price * z.Market.AppreciationRate * float64(years)
	oneTime := z.OneTimeHiddenCosts()
	recurring := z.AnnualHiddenCosts() * float64(years)

	net := rental + gain - oneTime - recurring
	roiPct := net / price * 100

	return &model.ROIProjection{
		HoldingYears:      years,
		RentalIncome:      rental,
		CapitalGain:       gain,
		OneTimeCosts:      oneTime,
		RecurringCosts:    recurring,
		NetReturn:         net,
		ROIPercent:        round1(roiPct),
		AnnualizedPercent: round1(roiPct / float64(years)),
	}, nil
}

// budgetFit estimates the total price for the assumed unit size and checks
// it against the budget under the caller's stated interpretation. The
// interpretation is always reported so a per-sqm ceiling is never confused
// with a total-price ceiling.
func budgetFit(z *model.Zone, opts Options) model.BudgetFit {
	area := opts.UnitAreaSqm
	if area <= 0 {
		area = UnitAreaForBedrooms(opts.Bedrooms)
	}
	estimated := z.Market.PricePerSqm * area

	fit := model.BudgetFit{
		Interpretation: model.BudgetNotGiven,
		EstimatedTotal: estimated,
		UnitAreaSqm:    area,
	}
	if opts.Budget <= 0 {
		return fit
	}

	fit.Budget = opts.Budget
	fit.Interpretation = opts.BudgetAs
	if fit.Interpretation == model.BudgetNotGiven || fit.Interpretation == "" {
		fit.Interpretation = model.BudgetAsTotal
	}

	switch fit.Interpretation {
	case model.BudgetPerSqm:
		fit.WithinBudget = z.Market.PricePerSqm <= opts.Budget
	default:
		fit.WithinBudget = estimated <= opts.Budget
	}
	return fit
}

// analyzePrice classifies the offered price against the zone's typical
// range. Zones without range data report an unknown status rather than a
// guessed verdict.
func analyzePrice(z *model.Zone, price float64) model.PriceAnalysis {
	pa := model.PriceAnalysis{
		Status:       model.PriceUnknown,
		OfferedPrice: price,
		RangeLow:     z.Market.PriceRangeLow,
		RangeHigh:    z.Market.PriceRangeHigh,
	}
	if z.Market.PriceRangeLow <= 0 || z.Market.PriceRangeHigh <= z.Market.PriceRangeLow {
		return pa
	}

	median := (z.Market.PriceRangeLow + z.Market.PriceRangeHigh) / 2
	pa.MarketMedian = median

	switch {
	case price < z.Market.PriceRangeLow*0.9:
		pa.Status = model.PriceUnderpriced
	case price <= median:
		pa.Status = model.PriceFair
	case price <= z.Market.PriceRangeHigh:
		pa.Status = model.PriceElevated
	default:
		pa.Status = model.PriceOverpriced
	}
	return pa
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
