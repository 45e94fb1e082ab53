package main

import (
	"context"
	"fmt"
	"os/signal"
	"strings"
	"syscall"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/naija-prop/intel-cli/internal/catalog"
	"github.com/naija-prop/intel-cli/internal/db"
	"github.com/naija-prop/intel-cli/internal/fetcher"
	"github.com/naija-prop/intel-cli/internal/model"
)

var zonesCmd = &cobra.Command{
	Use:   "zones",
	Short: "Inspect and import the zone catalog",
}

var zonesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List catalog zones",
	RunE:  runZonesList,
}

var zonesValidateCmd = &cobra.Command{
	Use:   "validate <dataset>",
	Short: "Validate a dataset file without importing it",
	Args:  cobra.ExactArgs(1),
	RunE:  runZonesValidate,
}

var zonesImportCmd = &cobra.Command{
	Use:   "import <dataset|url>",
	Short: "Import a dataset into the configured database",
	Long: `Load a JSON or YAML dataset and write it into the configured sqlite
or postgres catalog. A http(s) or ftp URL is downloaded first (ZIP
archives are extracted); a shapefile can backfill missing coordinates.

Examples:
  zones import zones.json
  zones import https://data.example.ng/zones.zip
  zones import zones.yaml --shapefile lagos_zones.shp`,
	Args: cobra.ExactArgs(1),
	RunE: runZonesImport,
}

func init() {
	zonesImportCmd.Flags().String("shapefile", "", "shapefile to backfill missing coordinates (overrides config)")

	zonesCmd.AddCommand(zonesListCmd, zonesValidateCmd, zonesImportCmd)
	rootCmd.AddCommand(zonesCmd)
}

func runZonesList(cmd *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := cfg.Validate("query"); err != nil {
		return err
	}

	_, handle, closer, err := openFacade(ctx)
	if err != nil {
		return err
	}
	defer closer()

	zones := handle.Snapshot().All()
	fmt.Printf("%-24s %-12s %-16s %6s %6s %6s %12s\n",
		"Zone", "State", "LGA", "Flood", "Sec", "Infra", "₦/sqm")
	fmt.Println(strings.Repeat("-", 92))
	for _, z := range zones {
		fmt.Printf("%-24s %-12s %-16s %6.0f %6.0f %6.0f %12s\n",
			z.Name, z.State, z.LGA,
			z.FloodRisk.Score, z.Security.Score, z.Infrastructure.Score,
			formatNaira(z.Market.PricePerSqm))
	}
	fmt.Printf("\n%d zones\n", len(zones))
	return nil
}

func runZonesValidate(cmd *cobra.Command, args []string) error {
	zones, err := catalog.NewFileSource(args[0]).Load(cmd.Context())
	if err != nil {
		return err
	}

	var bad int
	for i := range zones {
		if err := zones[i].Validate(); err != nil {
			bad++
			fmt.Printf("INVALID %s\n", err)
		}
	}
	if bad > 0 {
		return eris.Errorf("zones: %d of %d records invalid", bad, len(zones))
	}
	fmt.Printf("%d zones, all valid\n", len(zones))
	return nil
}

func runZonesImport(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := cfg.Validate("import"); err != nil {
		return err
	}

	log := zap.L().With(zap.String("command", "zones import"))

	path := args[0]
	if strings.Contains(path, "://") {
		local, err := fetcher.FetchDataset(ctx, path, cfg.Import.TempDir)
		if err != nil {
			return err
		}
		path = local
	}

	zones, err := catalog.NewFileSource(path).Load(ctx)
	if err != nil {
		return err
	}

	shapefile, _ := cmd.Flags().GetString("shapefile")
	if shapefile == "" {
		shapefile = cfg.Import.ShapefilePath
	}
	if shapefile != "" {
		missing, err := catalog.BackfillCoordinates(zones, shapefile)
		if err != nil {
			return err
		}
		if len(missing) > 0 {
			log.Warn("zones still lack coordinates after shapefile backfill",
				zap.String("shapefile", shapefile),
				zap.Strings("zones", missing),
			)
		}
	}

	for i := range zones {
		if err := zones[i].Validate(); err != nil {
			return err
		}
	}

	if err := importZones(ctx, zones); err != nil {
		return err
	}
	fmt.Printf("Imported %d zones into %s catalog\n", len(zones), cfg.Catalog.Driver)
	return nil
}

// importer is satisfied by the sqlite and postgres catalog backends.
type importer interface {
	Migrate(ctx context.Context) error
	Import(ctx context.Context, zones []model.Zone) error
}

func importZones(ctx context.Context, zones []model.Zone) error {
	var target importer

	switch cfg.Catalog.Driver {
	case "sqlite":
		source, err := catalog.NewSQLite(cfg.Catalog.Path)
		if err != nil {
			return err
		}
		defer source.Close() //nolint:errcheck
		target = source

	case "postgres":
		pool, err := db.Connect(ctx, cfg.Catalog.DatabaseURL)
		if err != nil {
			return err
		}
		defer pool.Close()
		target = catalog.NewPostgres(pool)

	default:
		return eris.Errorf("zones: catalog driver %q cannot be imported into (use sqlite or postgres)", cfg.Catalog.Driver)
	}

	if err := target.Migrate(ctx); err != nil {
		return err
	}
	return target.Import(ctx, zones)
}
