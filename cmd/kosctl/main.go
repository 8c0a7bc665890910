// kosctl is the operator CLI: schema migration and the monthly billing run,
// suitable for cron.
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/kosman/kosman-api/internal/application/usecase"
	"github.com/kosman/kosman-api/internal/infrastructure/postgres"
	"github.com/kosman/kosman-api/pkg/clock"
	"github.com/kosman/kosman-api/pkg/config"
	"github.com/kosman/kosman-api/pkg/logger"
)

func main() {
	root := &cobra.Command{
		Use:           "kosctl",
		Short:         "Boarding house operations CLI",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(migrateCmd(), generateBillsCmd())

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the database schema",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
			defer cancel()

			cfg, log, err := setup()
			if err != nil {
				return err
			}
			pool, err := postgres.NewPool(ctx, cfg.DB)
			if err != nil {
				return fmt.Errorf("connect: %w", err)
			}
			defer pool.Close()

			if err := postgres.EnsureSchema(ctx, pool); err != nil {
				return fmt.Errorf("ensure schema: %w", err)
			}
			log.Info().Msg("schema up to date")
			return nil
		},
	}
}

func generateBillsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "generate-bills",
		Short: "Create the current month's rent bill for every active rental",
		Long: "Creates the current-period rent bill for every active rental, " +
			"skipping rentals already billed for this period. Safe to re-run.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, cancel := context.WithTimeout(cmd.Context(), 2*time.Minute)
			defer cancel()

			cfg, log, err := setup()
			if err != nil {
				return err
			}
			pool, err := postgres.NewPool(ctx, cfg.DB)
			if err != nil {
				return fmt.Errorf("connect: %w", err)
			}
			defer pool.Close()

			clk := clock.System{}
			billingUC := usecase.NewBillingUseCase(
				postgres.NewTxRunner(pool),
				postgres.NewBillRepository(pool),
				postgres.NewRentalRepository(pool),
				postgres.NewRoomRepository(pool),
				postgres.NewTenantRepository(pool),
				nil, // proof uploads are an API concern
				clk,
			)

			out, err := billingUC.GenerateMonthlyRentBills(ctx)
			if err != nil {
				return fmt.Errorf("generate bills: %w", err)
			}
			log.Info().
				Int("month", out.Month).
				Int("year", out.Year).
				Int("created", out.Created).
				Int("already_billed", out.AlreadyBilled).
				Msg("billing run finished")
			return nil
		},
	}
}

func setup() (*config.Config, *logger.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("load configuration: %w", err)
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: "info"})
	return cfg, log, nil
}
