// Command rescore re-applies the sentiment scorer to every stored review and
// refreshes per-item aggregates. Run it after changing the word lists.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/spf13/cobra"

	"github.com/Krish1013/milletFoodDeliveryApp/internal/cache"
	"github.com/Krish1013/milletFoodDeliveryApp/internal/config"
	"github.com/Krish1013/milletFoodDeliveryApp/internal/db"
	"github.com/Krish1013/milletFoodDeliveryApp/internal/food"
	"github.com/Krish1013/milletFoodDeliveryApp/internal/logging"
	"github.com/Krish1013/milletFoodDeliveryApp/internal/review"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var timeout time.Duration

	cmd := &cobra.Command{
		Use:          "rescore",
		Short:        "Recompute stored review sentiment and item aggregates",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			ctx, cancel := context.WithTimeout(ctx, timeout)
			defer cancel()

			report, err := rescore(ctx)
			if err != nil {
				return err
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(report)
		},
	}

	cmd.Flags().DurationVar(&timeout, "timeout", 10*time.Minute, "give up after this long")
	return cmd
}

func rescore(ctx context.Context) (*review.RescoreReport, error) {
	cfg, err := config.LoadTool()
	if err != nil {
		return nil, err
	}
	logging.InitLogger(cfg.LogLevel, cfg.LogFormat)

	pool, err := db.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		return nil, err
	}
	defer pool.Close()

	var summaries review.SummaryStore
	if cfg.RedisURL != "" {
		rdb, err := cache.NewClient(ctx, cfg.RedisURL)
		if err != nil {
			return nil, fmt.Errorf("redis: %w", err)
		}
		defer rdb.Close()
		summaries = cache.NewSummaryCache(rdb, cfg.SummaryCacheTTL)
	}

	clock := clockwork.NewRealClock()
	foods := food.NewService(food.NewPostgresRepository(pool), clock)
	svc := review.NewService(review.NewPostgresRepository(pool), foods, nil, summaries, clock)

	return svc.Rescore(ctx)
}
