package main

import (
	"fmt"
	"os/signal"
	"strings"
	"syscall"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/naija-prop/intel-cli/internal/model"
	"github.com/naija-prop/intel-cli/internal/query"
	"github.com/naija-prop/intel-cli/internal/score"
)

var askCmd = &cobra.Command{
	Use:   "ask <question>",
	Short: "Answer a free-text property question",
	Long: `Parse a plain question for locations, routes, budgets, and bedroom
counts, then run the matching search: route questions run a corridor
search, location questions an evaluation.

Examples:
  ask "3 bedroom from Ajah to Victoria Island under ₦80m"
  ask "is it safe in Lekki?"
  ask "2br flat in Surulere, ₦30m budget"`,
	Args: cobra.MinimumNArgs(1),
	RunE: runAsk,
}

func init() {
	rootCmd.AddCommand(askCmd)
}

func runAsk(cmd *cobra.Command, args []string) error {
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

	text := strings.Join(args, " ")
	parsed := query.ParseQuery(text)

	switch {
	case parsed.IsRoute():
		result, err := facade.SearchCorridor(model.CorridorQuery{
			Origin:      parsed.Origin,
			Destination: parsed.Destination,
			HalfWidthKM: cfg.Search.HalfWidthKM,
			BudgetNGN:   parsed.AmountNGN,
			Bedrooms:    parsed.Bedrooms,
		})
		if err != nil {
			return err
		}
		printCorridorResult(result)

	case parsed.Location != "" && parsed.AmountNGN > 0:
		result, err := facade.Evaluate(parsed.Location, parsed.AmountNGN, score.Options{Bedrooms: parsed.Bedrooms})
		if err != nil {
			return err
		}
		printScoreResult(result)

	case parsed.Location != "":
		result, err := facade.Profile(parsed.Location)
		if err != nil {
			return err
		}
		printScoreResult(result)

	default:
		return eris.Wrapf(model.ErrInvalidInput, "ask: no location found in %q", text)
	}

	fmt.Println()
	return nil
}
