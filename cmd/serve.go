package main

import (
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/naija-prop/intel-cli/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the HTTP intelligence API",
	Long: `Start the HTTP API on the configured address. Endpoints cover zone
listing, location resolution, evaluation, corridor search, route
comparison, free-text questions, and catalog reload.`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := cfg.Validate("serve"); err != nil {
		return err
	}

	facade, handle, closer, err := openFacade(ctx)
	if err != nil {
		return err
	}
	defer closer()

	zap.L().Info("starting server",
		zap.String("addr", cfg.Server.Addr),
		zap.Int("zones", handle.Snapshot().Len()),
	)

	srv := server.New(facade, handle, server.Options{
		Addr:           cfg.Server.Addr,
		AllowedOrigins: cfg.Server.AllowedOrigins,
		RatePerClient:  cfg.Server.RatePerClient,
		Burst:          cfg.Server.Burst,
	})
	return srv.Run(ctx)
}
