package main

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/spf13/cobra"

	"github.com/aevon-lab/barad-dur/internal/aggregation"
	coreagg "github.com/aevon-lab/barad-dur/internal/core/aggregation"
	"github.com/aevon-lab/barad-dur/internal/core/storage"
)

const scopeAll = "all"

func newAggregateCommand(configPath *string) *cobra.Command {
	var (
		day   string
		scope string
	)

	cmd := &cobra.Command{
		Use:   "aggregate",
		Short: "Recompute the rollups of one day and exit",
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := coreagg.ParseDay(day)
			if err != nil {
				return fmt.Errorf("invalid --day %q: %w", day, err)
			}
			scopes, err := parseScopes(scope)
			if err != nil {
				return err
			}

			cfg, err := loadConfig(*configPath)
			if err != nil {
				return err
			}
			// A memory store starts empty, so there is nothing to backfill.
			if cfg.Database.Type != "postgres" {
				return fmt.Errorf("aggregate needs database.type postgres, got %q", cfg.Database.Type)
			}
			st, err := openStores(cfg.Database)
			if err != nil {
				return err
			}
			defer func() {
				if err := st.close(); err != nil {
					slog.Error("Failed to close storage", "error", err)
				}
			}()

			return runAggregate(cmd.Context(), aggregation.NewAggregator(st.reports, st.rollups, nil), d, scopes)
		},
	}
	cmd.Flags().StringVar(&day, "day", "", "day to aggregate, YYYY-MM-DD (UTC)")
	cmd.Flags().StringVar(&scope, "scope", scopeAll, "rollup to recompute: global, context or all")
	_ = cmd.MarkFlagRequired("day")

	return cmd
}

func parseScopes(s string) ([]storage.Scope, error) {
	if s == scopeAll {
		return []storage.Scope{storage.ScopeGlobal, storage.ScopeContext}, nil
	}
	scope, err := storage.ParseScope(s)
	if err != nil {
		return nil, err
	}
	return []storage.Scope{scope}, nil
}

func runAggregate(ctx context.Context, agg *aggregation.Aggregator, day time.Time, scopes []storage.Scope) error {
	for _, scope := range scopes {
		if err := agg.Run(ctx, scope, day); err != nil {
			return err
		}
		slog.Info("[Aggregate] Day recomputed", "scope", scope, "day", coreagg.FormatDay(day))
	}
	return nil
}
