// Package export writes evaluation and corridor results to XLSX workbooks
// for sharing outside the CLI.
package export

import (
	"github.com/rotisserie/eris"
	"github.com/tealeg/xlsx/v2"

	"github.com/naija-prop/intel-cli/internal/model"
)

// WriteCorridor saves a corridor search result as a two-sheet workbook:
// a route summary and the ranked matches.
func WriteCorridor(result *model.CorridorResult, path string) error {
	f := xlsx.NewFile()

	summary, err := f.AddSheet("Route")
	if err != nil {
		return eris.Wrap(err, "xlsx: add route sheet")
	}
	addKV(summary, "Origin", result.Origin.Name)
	addKV(summary, "Destination", result.Destination.Name)
	addKVFloat(summary, "Route km", result.RouteKM)
	addKVFloat(summary, "Half-width km", result.HalfWidthKM)
	addKVInt(summary, "Zones searched", result.ZonesSearched)
	addKVInt(summary, "Matches", len(result.Matches))

	matches, err := f.AddSheet("Matches")
	if err != nil {
		return eris.Wrap(err, "xlsx: add matches sheet")
	}
	header := matches.AddRow()
	for _, h := range []string{
		"Rank", "Zone", "State", "LGA", "Score", "Verdict",
		"Cross-track km", "Along-track km", "Price/sqm", "Est. total",
	} {
		header.AddCell().SetString(h)
	}
	for i, m := range result.Matches {
		row := matches.AddRow()
		row.AddCell().SetInt(i + 1)
		row.AddCell().SetString(m.Zone.Name)
		row.AddCell().SetString(m.Zone.State)
		row.AddCell().SetString(m.Zone.LGA)
		row.AddCell().SetFloat(m.Score.CompositeScore)
		row.AddCell().SetString(string(m.Score.Verdict))
		row.AddCell().SetFloat(m.CrossTrackKM)
		row.AddCell().SetFloat(m.AlongTrackKM)
		row.AddCell().SetFloat(m.Zone.Market.PricePerSqm)
		row.AddCell().SetFloat(m.Score.Budget.EstimatedTotal)
	}

	if err := f.Save(path); err != nil {
		return eris.Wrapf(err, "xlsx: save %s", path)
	}
	return nil
}

// WriteEvaluation saves a single zone evaluation: composite, factor
// breakdown, price analysis, and the ROI projection when present.
func WriteEvaluation(result *model.ScoreResult, path string) error {
	f := xlsx.NewFile()

	sheet, err := f.AddSheet("Evaluation")
	if err != nil {
		return eris.Wrap(err, "xlsx: add evaluation sheet")
	}
	addKV(sheet, "Zone", result.ZoneName)
	addKV(sheet, "Strategy", result.Strategy)
	addKVFloat(sheet, "Composite score", result.CompositeScore)
	addKV(sheet, "Verdict", string(result.Verdict))
	addKV(sheet, "Price status", string(result.Price.Status))
	addKVFloat(sheet, "Offered price", result.Price.OfferedPrice)

	sheet.AddRow()
	header := sheet.AddRow()
	for _, h := range []string{"Factor", "Raw score", "Weight", "Weighted"} {
		header.AddCell().SetString(h)
	}
	for _, b := range result.Breakdown {
		row := sheet.AddRow()
		row.AddCell().SetString(b.Factor)
		row.AddCell().SetFloat(b.RawScore)
		row.AddCell().SetFloat(b.Weight)
		row.AddCell().SetFloat(b.Weighted)
	}

	if result.ROI != nil {
		roi, err := f.AddSheet("ROI")
		if err != nil {
			return eris.Wrap(err, "xlsx: add roi sheet")
		}
		addKVInt(roi, "Holding years", result.ROI.HoldingYears)
		addKVFloat(roi, "Rental income", result.ROI.RentalIncome)
		addKVFloat(roi, "Capital gain", result.ROI.CapitalGain)
		addKVFloat(roi, "One-time costs", result.ROI.OneTimeCosts)
		addKVFloat(roi, "Recurring costs", result.ROI.RecurringCosts)
		addKVFloat(roi, "Net return", result.ROI.NetReturn)
		addKVFloat(roi, "ROI %", result.ROI.ROIPercent)
		addKVFloat(roi, "Annualized %", result.ROI.AnnualizedPercent)
	}

	if err := f.Save(path); err != nil {
		return eris.Wrapf(err, "xlsx: save %s", path)
	}
	return nil
}

func addKV(sheet *xlsx.Sheet, key, value string) {
	row := sheet.AddRow()
	row.AddCell().SetString(key)
	row.AddCell().SetString(value)
}

func addKVFloat(sheet *xlsx.Sheet, key string, value float64) {
	row := sheet.AddRow()
	row.AddCell().SetString(key)
	row.AddCell().SetFloat(value)
}

func addKVInt(sheet *xlsx.Sheet, key string, value int) {
	row := sheet.AddRow()
	row.AddCell().SetString(key)
	row.AddCell().SetInt(value)
}
