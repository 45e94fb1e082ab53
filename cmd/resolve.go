package main

import (
	"errors"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/naija-prop/intel-cli/internal/model"
)

var resolveCmd = &cobra.Command{
	Use:   "resolve <query>",
	Short: "Resolve a location reference to a catalog zone",
	Long: `Resolve free text to a zone: canonical names and aliases match
exactly, misspellings match by similarity, and "lat,lng" snaps to the
nearest covered zone. Unresolvable input prints ranked suggestions.

Examples:
  resolve lekki
  resolve "Victoria Islnd"
  resolve "6.4478,3.4723"`,
	Args: cobra.ExactArgs(1),
	RunE: runResolve,
}

func init() {
	rootCmd.AddCommand(resolveCmd)
}

func runResolve(cmd *cobra.Command, args []string) error {
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

	candidates, err := facade.Candidates(args[0])
	if err != nil {
		var unresolved *model.UnresolvedError
		if errors.As(err, &unresolved) {
			fmt.Printf("No match for %q.", unresolved.Query)
			if len(unresolved.Candidates) > 0 {
				fmt.Println(" Did you mean:")
				for _, c := range unresolved.Candidates {
					fmt.Printf("  %-24s %.2f\n", c.Name, c.Similarity)
				}
			} else {
				fmt.Println()
			}
			return nil
		}
		return err
	}

	for i, c := range candidates {
		marker := " "
		if i == 0 {
			marker = "*"
		}
		fmt.Printf("%s %-24s %.2f\n", marker, c.Name, c.Similarity)
	}
	return nil
}
