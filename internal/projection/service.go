package projection

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	v1 "github.com/aevon-lab/barad-dur/internal/api/v1"
	"github.com/aevon-lab/barad-dur/internal/core/aggregation"
	"github.com/aevon-lab/barad-dur/internal/core/storage"
)

// Recomputer reruns one aggregation pass for a day. *aggregation.Aggregator
// satisfies it.
type Recomputer interface {
	RunGlobal(ctx context.Context, day time.Time) error
	RunByContext(ctx context.Context, day time.Time) error
}

// Service implements the rollup read path. Reads never compute anything unless the
// caller asks for a recompute; a day that was never aggregated is storage.ErrNotFound.
type Service struct {
	rollups    storage.RollupStore
	recomputer Recomputer
}

func NewService(rollups storage.RollupStore, recomputer Recomputer) *Service {
	if rollups == nil {
		panic("projection: rollup store must not be nil")
	}
	if recomputer == nil {
		panic("projection: recomputer must not be nil")
	}
	return &Service{
		rollups:    rollups,
		recomputer: recomputer,
	}
}

// GetAggregatedStats returns the global rollup of day. With recompute the global
// pass for day runs first, synchronously.
func (s *Service) GetAggregatedStats(ctx context.Context, day time.Time, recompute bool) (*v1.AggregatedStats, error) {
	if recompute {
		slog.Info("[Projection] Recomputing on read", "scope", storage.ScopeGlobal, "day", aggregation.FormatDay(day))
		if err := s.recomputer.RunGlobal(ctx, day); err != nil {
			return nil, fmt.Errorf("recompute: %w", err)
		}
	}
	return s.rollups.GetAggregatedStats(ctx, day)
}

// GetAggregatedStatsByContext returns the rollup of (day, serverContext). With
// recompute the per-context pass for day runs first.
func (s *Service) GetAggregatedStatsByContext(
	ctx context.Context,
	day time.Time,
	serverContext string,
	recompute bool,
) (*v1.AggregatedStatsByContext, error) {
	if recompute {
		slog.Info("[Projection] Recomputing on read", "scope", storage.ScopeContext, "day", aggregation.FormatDay(day))
		if err := s.recomputer.RunByContext(ctx, day); err != nil {
			return nil, fmt.Errorf("recompute: %w", err)
		}
	}
	return s.rollups.GetAggregatedStatsByContext(ctx, day, serverContext)
}
