package model

// Verdict is the qualitative band for a composite score. Bands are a total
// order over [0,100]: every score maps to exactly one verdict.
type Verdict string

const (
	VerdictExcellent Verdict = "excellent"
	VerdictGood      Verdict = "good"
	VerdictModerate  Verdict = "moderate — proceed with caution"
	VerdictHighRisk  Verdict = "high risk"
)

// FactorBreakdown reports each weighted factor's contribution to the
// composite score.
type FactorBreakdown struct {
	Factor   string  `json:"factor"`
	RawScore float64 `json:"raw_score"` // after flood inversion, before weighting
	Weight   float64 `json:"weight"`
	Weighted float64 `json:"weighted"`
}

// BudgetInterpretation labels which reading of the supplied budget the
// engine used, so a caller passing a total price is never silently compared
// against a per-sqm ceiling or vice versa.
type BudgetInterpretation string

const (
	BudgetAsTotal  BudgetInterpretation = "total_price"
	BudgetPerSqm   BudgetInterpretation = "per_sqm"
	BudgetNotGiven BudgetInterpretation = "none"
)

// BudgetFit reports the budget check alongside, not instead of, the raw
// price comparison.
type BudgetFit struct {
	WithinBudget   bool                 `json:"within_budget"`
	Interpretation BudgetInterpretation `json:"interpretation"`
	Budget         float64              `json:"budget,omitempty"`
	EstimatedTotal float64              `json:"estimated_total"`
	UnitAreaSqm    float64              `json:"unit_area_sqm"`
}

// PriceStatus classifies an offered price against the zone's typical range.
type PriceStatus string

const (
	PriceUnderpriced PriceStatus = "underpriced"
	PriceFair        PriceStatus = "fair"
	PriceElevated    PriceStatus = "elevated"
	PriceOverpriced  PriceStatus = "overpriced"
	PriceUnknown     PriceStatus = "unknown"
)

// PriceAnalysis compares the offered price with the zone's market range.
type PriceAnalysis struct {
	Status       PriceStatus `json:"status"`
	OfferedPrice float64     `json:"offered_price"`
	MarketMedian float64     `json:"market_median,omitempty"`
	RangeLow     float64     `json:"range_low,omitempty"`
	RangeHigh    float64     `json:"range_high,omitempty"`
}

// ROIProjection is the investment projection for a holding horizon.
// Hidden one-time costs are deducted once; generator fuel recurs over the
// full holding period.
type ROIProjection struct {
	HoldingYears      int     `json:"holding_years"`
	RentalIncome      float64 `json:"rental_income"`
	CapitalGain       float64 `json:"capital_gain"`
	OneTimeCosts      float64 `json:"one_time_costs"`
	RecurringCosts    float64 `json:"recurring_costs"`
	NetReturn         float64 `json:"net_return"`
	ROIPercent        float64 `json:"roi_percent"`
	AnnualizedPercent float64 `json:"annualized_percent"`
}

// ScoreResult is the ephemeral outcome of evaluating a (zone, price) pair.
// It is owned by the caller that requested it and is never cached against
// the Zone.
type ScoreResult struct {
	ZoneName       string            `json:"zone_name"`
	CompositeScore float64           `json:"composite_score"`
	Verdict        Verdict           `json:"verdict"`
	Strategy       string            `json:"strategy"`
	Breakdown      []FactorBreakdown `json:"breakdown"`
	Price          PriceAnalysis     `json:"price_analysis"`
	Budget         BudgetFit         `json:"budget_fit"`
	ROI            *ROIProjection    `json:"roi,omitempty"`
}

// CorridorQuery is an ephemeral corridor-search request. Origin and
// Destination are free text (zone name, alias, or "lat,lng").
type CorridorQuery struct {
	Origin      string  `json:"origin"`
	Destination string  `json:"destination"`
	HalfWidthKM float64 `json:"half_width_km"`
	BudgetNGN   float64 `json:"budget_ngn,omitempty"` // 0 means no ceiling
	Bedrooms    int     `json:"bedrooms,omitempty"`   // 0 means default unit
}

// CorridorMatch is one qualifying zone with its score and route geometry.
type CorridorMatch struct {
	Zone         *Zone        `json:"zone"`
	Score        *ScoreResult `json:"score"`
	CrossTrackKM float64      `json:"cross_track_km"`
	AlongTrackKM float64      `json:"along_track_km"`
}

// CorridorResult is the ordered outcome of a corridor search: matches ranked
// by composite score descending, ties broken by ascending cross-track
// distance, then ascending price per sqm.
type CorridorResult struct {
	Origin        *Zone           `json:"origin"`
	Destination   *Zone           `json:"destination"`
	RouteKM       float64         `json:"route_km"`
	HalfWidthKM   float64         `json:"half_width_km"`
	Matches       []CorridorMatch `json:"matches"`
	ZonesSearched int             `json:"zones_searched"`
}
