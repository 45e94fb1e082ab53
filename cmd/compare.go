package main

import (
	"fmt"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/naija-prop/intel-cli/internal/model"
	"github.com/naija-prop/intel-cli/internal/query"
)

var compareCmd = &cobra.Command{
	Use:   "compare <origin>",
	Short: "Compare commute corridors to several destinations",
	Long: `Run a corridor search from one origin to each destination and rank
the routes by how many zones qualify, then by the best match's score.

Examples:
  compare Ajah --to "Victoria Island,Ikeja"
  compare Surulere --to VI,Yaba --width 4 --budget 60000000`,
	Args: cobra.ExactArgs(1),
	RunE: runCompare,
}

func init() {
	f := compareCmd.Flags()
	f.String("to", "", "comma-separated destination references (required)")
	f.Float64("width", 0, "corridor half-width in km (default from config)")
	f.Float64("budget", 0, "budget ceiling in naira")
	f.Int("bedrooms", 0, "bedroom count for unit cost estimate")
	_ = compareCmd.MarkFlagRequired("to")

	rootCmd.AddCommand(compareCmd)
}

func runCompare(cmd *cobra.Command, args []string) error {
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

	to, _ := cmd.Flags().GetString("to")
	width, _ := cmd.Flags().GetFloat64("width")
	if width == 0 {
		width = cfg.Search.HalfWidthKM
	}
	budget, _ := cmd.Flags().GetFloat64("budget")
	bedrooms, _ := cmd.Flags().GetInt("bedrooms")

	options, err := facade.CompareRoutes(args[0], splitAndTrim(to), model.CorridorQuery{
		HalfWidthKM: width,
		BudgetNGN:   budget,
		Bedrooms:    bedrooms,
	})
	if err != nil {
		return err
	}

	printRouteOptions(options)
	return nil
}

func printRouteOptions(options []query.RouteOption) {
	fmt.Printf("%-4s %-24s %8s %8s %-24s %7s\n",
		"#", "Destination", "Route km", "Matches", "Best zone", "Score")
	fmt.Println(strings.Repeat("-", 80))
	for i, opt := range options {
		best, score := "-", 0.0
		if len(opt.Result.Matches) > 0 {
			best = opt.Result.Matches[0].Zone.Name
			score = opt.Result.Matches[0].Score.CompositeScore
		}
		fmt.Printf("%-4d %-24s %8.1f %8d %-24s %7.1f\n",
			i+1, opt.Destination.Name, opt.Result.RouteKM, len(opt.Result.Matches), best, score)
	}
}

func splitAndTrim(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
