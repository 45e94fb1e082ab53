package main

import (
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/naija-prop/intel-cli/internal/export"
	"github.com/naija-prop/intel-cli/internal/model"
)

var corridorCmd = &cobra.Command{
	Use:   "corridor <origin> <destination>",
	Short: "Search zones along a commute corridor",
	Long: `Find zones within a rectangular band around the great-circle route
between two locations, ranked by corridor score. Endpoints accept zone
names, aliases, fuzzy spellings, or "lat,lng" coordinates.

Examples:
  # All zones within 5 km of the Ajah to Victoria Island route
  corridor Ajah "Victoria Island" --width 5

  # Constrain by budget and unit size
  corridor Ajah VI --width 5 --budget 60000000 --bedrooms 3

  # Export matches to a spreadsheet and the band to GeoJSON
  corridor Ajah VI --width 5 --xlsx corridor.xlsx --geojson corridor.geojson`,
	Args: cobra.ExactArgs(2),
	RunE: runCorridor,
}

func init() {
	f := corridorCmd.Flags()
	f.Float64("width", 0, "corridor half-width in km (default from config)")
	f.Float64("budget", 0, "budget ceiling in naira")
	f.Int("bedrooms", 0, "bedroom count for unit cost estimate")
	f.String("xlsx", "", "write matches to this .xlsx file")
	f.String("geojson", "", "write the corridor polygon to this .geojson file")

	rootCmd.AddCommand(corridorCmd)
}

func runCorridor(cmd *cobra.Command, args []string) error {
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

	width, _ := cmd.Flags().GetFloat64("width")
	if width == 0 {
		width = cfg.Search.HalfWidthKM
	}
	budget, _ := cmd.Flags().GetFloat64("budget")
	bedrooms, _ := cmd.Flags().GetInt("bedrooms")
	xlsxPath, _ := cmd.Flags().GetString("xlsx")
	geojsonPath, _ := cmd.Flags().GetString("geojson")

	result, err := facade.SearchCorridor(model.CorridorQuery{
		Origin:      args[0],
		Destination: args[1],
		HalfWidthKM: width,
		BudgetNGN:   budget,
		Bedrooms:    bedrooms,
	})
	if err != nil {
		return err
	}

	printCorridorResult(result)

	if xlsxPath != "" {
		if err := export.WriteCorridor(result, xlsxPath); err != nil {
			return err
		}
		fmt.Printf("\nMatches written to %s\n", xlsxPath)
	}
	if geojsonPath != "" {
		raw, err := facade.CorridorBuffer(args[0], args[1], width)
		if err != nil {
			return err
		}
		if err := os.WriteFile(geojsonPath, raw, 0o644); err != nil {
			return err
		}
		zap.L().Info("corridor polygon written", zap.String("path", geojsonPath))
	}
	return nil
}

func printCorridorResult(r *model.CorridorResult) {
	fmt.Printf("Route:  %s → %s (%.1f km, ±%.1f km band)\n",
		r.Origin.Name, r.Destination.Name, r.RouteKM, r.HalfWidthKM)
	fmt.Printf("Zones:  %d searched, %d matched\n", r.ZonesSearched, len(r.Matches))

	if len(r.Matches) == 0 {
		fmt.Println("\nNo zones matched. Try a wider band or a higher budget.")
		return
	}

	fmt.Printf("\n%-4s %-24s %7s %-12s %9s %9s %12s\n",
		"#", "Zone", "Score", "Verdict", "Cross km", "Along km", "₦/sqm")
	fmt.Println(strings.Repeat("-", 84))
	for i, m := range r.Matches {
		verdict := string(m.Score.Verdict)
		if idx := strings.IndexByte(verdict, ' '); idx > 0 {
			verdict = verdict[:idx]
		}
		fmt.Printf("%-4d %-24s %7.1f %-12s %9.2f %9.2f %12s\n",
			i+1, m.Zone.Name, m.Score.CompositeScore, verdict,
			m.CrossTrackKM, m.AlongTrackKM, formatNaira(m.Zone.Market.PricePerSqm))
	}
}
