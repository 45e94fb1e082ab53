// Package model defines the zone data model, derived result values, and the
// error taxonomy shared by the catalog, resolver, scorer, and corridor
// packages.
package model

import (
	"strings"

	"github.com/rotisserie/eris"
)

// Coordinate is a WGS84 point in floating-point degrees.
type Coordinate struct {
	Lat float64 `json:"lat" yaml:"lat"`
	Lng float64 `json:"lng" yaml:"lng"`
}

// FloodRisk describes a zone's flood exposure.
type FloodRisk struct {
	Score           float64  `json:"score" yaml:"score"` // 0-100, higher is worse
	Level           string   `json:"level" yaml:"level"`
	AffectedStreets []string `json:"affected_streets,omitempty" yaml:"affected_streets,omitempty"`
	DrainageQuality string   `json:"drainage_quality,omitempty" yaml:"drainage_quality,omitempty"`
	LastMajorFlood  string   `json:"last_major_flood,omitempty" yaml:"last_major_flood,omitempty"`
}

// Security describes a zone's security profile.
type Security struct {
	Score             float64 `json:"score" yaml:"score"` // 0-100, higher is safer
	Level             string  `json:"level" yaml:"level"`
	PoliceStations    int     `json:"police_stations" yaml:"police_stations"`
	IncidentsLastYear int     `json:"incidents_last_year" yaml:"incidents_last_year"`
}

// Infrastructure describes road, power, water, and connectivity quality.
type Infrastructure struct {
	Score            float64 `json:"score" yaml:"score"` // 0-100, higher is better
	RoadQuality      float64 `json:"road_quality" yaml:"road_quality"`
	PowerHoursPerDay float64 `json:"power_hours_per_day" yaml:"power_hours_per_day"`
	BoreholeWater    bool    `json:"borehole_water" yaml:"borehole_water"`
	FiberInternet    bool    `json:"fiber_internet" yaml:"fiber_internet"`
}

// Market holds per-zone market intelligence.
type Market struct {
	PricePerSqm      float64 `json:"price_per_sqm" yaml:"price_per_sqm"` // Naira
	PriceRangeLow    float64 `json:"price_range_low,omitempty" yaml:"price_range_low,omitempty"`
	PriceRangeHigh   float64 `json:"price_range_high,omitempty" yaml:"price_range_high,omitempty"`
	AppreciationRate float64 `json:"appreciation_rate" yaml:"appreciation_rate"` // annual, fractional
	RentalYield      float64 `json:"rental_yield" yaml:"rental_yield"`           // annual, fractional
	DaysOnMarket     int     `json:"days_on_market" yaml:"days_on_market"`
}

// HiddenCosts holds the customary and recurring costs buyers rarely budget
// for. CommunityFee, LandSurvey, and FloodInsurance are deducted once;
// GeneratorFuelMonthly recurs over the full holding period.
type HiddenCosts struct {
	CommunityFee         float64 `json:"community_fee" yaml:"community_fee"` // "omo onile" customary fee
	LandSurvey           float64 `json:"land_survey" yaml:"land_survey"`
	FloodInsurance       float64 `json:"flood_insurance" yaml:"flood_insurance"`
	GeneratorFuelMonthly float64 `json:"generator_fuel_monthly" yaml:"generator_fuel_monthly"`
}

// Zone is the central entity: a named locality with scored risk and market
// attributes. The canonical Name is immutable once created; Aliases may grow
// but the canonical name is always resolvable. Zones are loaded once at
// startup and are read-only for the lifetime of a catalog snapshot.
type Zone struct {
	Name           string         `json:"name" yaml:"name"`
	Aliases        []string       `json:"aliases,omitempty" yaml:"aliases,omitempty"`
	State          string         `json:"state" yaml:"state"`
	LGA            string         `json:"lga" yaml:"lga"` // local government area
	Coordinate     Coordinate     `json:"coordinates" yaml:"coordinates"`
	FloodRisk      FloodRisk      `json:"flood_risk" yaml:"flood_risk"`
	Security       Security       `json:"security" yaml:"security"`
	Infrastructure Infrastructure `json:"infrastructure" yaml:"infrastructure"`
	Market         Market         `json:"market" yaml:"market"`
	HiddenCosts    HiddenCosts    `json:"hidden_costs" yaml:"hidden_costs"`
	Notes          string         `json:"notes,omitempty" yaml:"notes,omitempty"`
}

// OneTimeHiddenCosts returns the sum of the non-recurring cost components.
func (z *Zone) OneTimeHiddenCosts() float64 {
	return z.HiddenCosts.CommunityFee + z.HiddenCosts.LandSurvey + z.HiddenCosts.FloodInsurance
}

// AnnualHiddenCosts returns the recurring yearly cost, generator fuel over
// twelve months.
func (z *Zone) AnnualHiddenCosts() float64 {
	return z.HiddenCosts.GeneratorFuelMonthly * 12
}

// Validate rejects incomplete or out-of-range records. A record that fails
// validation is never inserted into the catalog, and the error names the
// offending zone so load failures are actionable.
func (z *Zone) Validate() error {
	var problems []string

	if strings.TrimSpace(z.Name) == "" {
		problems = append(problems, "canonical name is required")
	}
	if z.Coordinate.Lat < -90 || z.Coordinate.Lat > 90 {
		problems = append(problems, "latitude out of range")
	}
	if z.Coordinate.Lng < -180 || z.Coordinate.Lng > 180 {
		problems = append(problems, "longitude out of range")
	}

	scores := []struct {
		name  string
		value float64
	}{
		{"flood_risk.score", z.FloodRisk.Score},
		{"security.score", z.Security.Score},
		{"infrastructure.score", z.Infrastructure.Score},
	}
	for _, s := range scores {
		if s.value < 0 || s.value > 100 {
			problems = append(problems, s.name+" must be within [0,100]")
		}
	}

	if z.Market.PricePerSqm < 0 {
		problems = append(problems, "market.price_per_sqm must be >= 0")
	}
	if z.Market.RentalYield < 0 {
		problems = append(problems, "market.rental_yield must be >= 0")
	}

	if len(problems) > 0 {
		return eris.Wrapf(ErrData, "zone %q: %s", z.Name, strings.Join(problems, "; "))
	}
	return nil
}
