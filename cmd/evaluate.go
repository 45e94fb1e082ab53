package main

import (
	"fmt"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/naija-prop/intel-cli/internal/export"
	"github.com/naija-prop/intel-cli/internal/model"
	"github.com/naija-prop/intel-cli/internal/score"
)

var evaluateCmd = &cobra.Command{
	Use:   "evaluate <location>",
	Short: "Score a location and price against zone intelligence",
	Long: `Resolve a location reference (zone name, alias, fuzzy spelling, or
"lat,lng") and evaluate an asking price against the zone's flood risk,
security, infrastructure, and market data.

Examples:
  # Score an asking price in Lekki over a 5-year hold
  evaluate "Lekki Phase 1" --price 250000000 --years 5

  # Check a 3-bedroom against a total budget
  evaluate Ajah --price 80000000 --bedrooms 3 --budget 100000000

  # Zone profile only, no price
  evaluate "Victoria Island"

  # Export the report to a spreadsheet
  evaluate Ikoyi --price 400000000 --xlsx report.xlsx`,
	Args: cobra.ExactArgs(1),
	RunE: runEvaluate,
}

func init() {
	f := evaluateCmd.Flags()
	f.Float64("price", 0, "asking price in naira (0 = profile only)")
	f.String("strategy", "", "scoring strategy: habitability (default) or corridor")
	f.Float64("budget", 0, "budget ceiling in naira")
	f.String("budget-as", "", "budget interpretation: total_price or per_sqm")
	f.Int("bedrooms", 0, "bedroom count for unit area estimate")
	f.Float64("area", 0, "unit area in sqm (overrides --bedrooms)")
	f.Int("years", 0, "holding horizon in years for ROI projection")
	f.String("xlsx", "", "write the report to this .xlsx file")

	rootCmd.AddCommand(evaluateCmd)
}

func runEvaluate(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := cfg.Validate("query"); err != nil {
		return err
	}

	facade, _, closer, err := openFacade(ctx)
	if err != nil {
		return err
	}
	defer closer()

	price, _ := cmd.Flags().GetFloat64("price")
	strategyName, _ := cmd.Flags().GetString("strategy")
	budget, _ := cmd.Flags().GetFloat64("budget")
	budgetAs, _ := cmd.Flags().GetString("budget-as")
	bedrooms, _ := cmd.Flags().GetInt("bedrooms")
	area, _ := cmd.Flags().GetFloat64("area")
	years, _ := cmd.Flags().GetInt("years")
	xlsxPath, _ := cmd.Flags().GetString("xlsx")

	strategy, err := score.ByName(strategyName)
	if err != nil {
		return err
	}

	var result *model.ScoreResult
	if price > 0 {
		result, err = facade.Evaluate(args[0], price, score.Options{
			Strategy:     strategy,
			UnitAreaSqm:  area,
			Bedrooms:     bedrooms,
			Budget:       budget,
			BudgetAs:     model.BudgetInterpretation(budgetAs),
			HoldingYears: years,
		})
	} else {
		result, err = facade.Profile(args[0])
	}
	if err != nil {
		return err
	}

	printScoreResult(result)

	if xlsxPath != "" {
		if err := export.WriteEvaluation(result, xlsxPath); err != nil {
			return err
		}
		fmt.Printf("\nReport written to %s\n", xlsxPath)
	}
	return nil
}

func printScoreResult(r *model.ScoreResult) {
	fmt.Printf("Zone:     %s\n", r.ZoneName)
	fmt.Printf("Strategy: %s\n", r.Strategy)
	fmt.Printf("Score:    %.1f / 100\n", r.CompositeScore)
	fmt.Printf("Verdict:  %s\n", r.Verdict)

	fmt.Println("\nBreakdown:")
	for _, f := range r.Breakdown {
		fmt.Printf("  %-16s %6.1f × %.2f = %6.2f\n", f.Factor, f.RawScore, f.Weight, f.Weighted)
	}

	if r.Price.Status != "" && r.Price.Status != model.PriceUnknown {
		fmt.Printf("\nPrice:    ₦%s (%s", formatNaira(r.Price.OfferedPrice), r.Price.Status)
		if r.Price.MarketMedian > 0 {
			fmt.Printf(", market median ₦%s", formatNaira(r.Price.MarketMedian))
		}
		fmt.Println(")")
	}

	if r.Budget.Interpretation != "" && r.Budget.Interpretation != model.BudgetNotGiven {
		within := "over budget"
		if r.Budget.WithinBudget {
			within = "within budget"
		}
		fmt.Printf("Budget:   ₦%s as %s, est. total ₦%s (%s)\n",
			formatNaira(r.Budget.Budget), r.Budget.Interpretation,
			formatNaira(r.Budget.EstimatedTotal), within)
	}

	if r.ROI != nil {
		fmt.Printf("\nROI over %d years:\n", r.ROI.HoldingYears)
		fmt.Printf("  Rental income:   ₦%s\n", formatNaira(r.ROI.RentalIncome))
		fmt.Printf("  Capital gain:    ₦%s\n", formatNaira(r.ROI.CapitalGain))
		fmt.Printf("  One-time costs:  ₦%s\n", formatNaira(r.ROI.OneTimeCosts))
		fmt.Printf("  Recurring costs: ₦%s\n", formatNaira(r.ROI.RecurringCosts))
		fmt.Printf("  Net return:      ₦%s (%.1f%%, %.1f%%/yr)\n",
			formatNaira(r.ROI.NetReturn), r.ROI.ROIPercent, r.ROI.AnnualizedPercent)
	}
}

// formatNaira renders an amount with thousands separators and no decimals.
func formatNaira(amount float64) string {
	neg := amount < 0
	if neg {
		amount = -amount
	}
	s := fmt.Sprintf("%.0f", amount)
	var b strings.Builder
	for i, c := range s {
		if i > 0 && (len(s)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(c)
	}
	if neg {
		return "-" + b.String()
	}
	return b.String()
}
