package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/aevon-lab/barad-dur/internal/aggregation"
	corecfg "github.com/aevon-lab/barad-dur/internal/core/config"
	"github.com/aevon-lab/barad-dur/internal/core/storage"
	"github.com/aevon-lab/barad-dur/internal/ingestion"
	"github.com/aevon-lab/barad-dur/internal/metrics"
	"github.com/aevon-lab/barad-dur/internal/projection"
	"github.com/aevon-lab/barad-dur/internal/server"
	"github.com/aevon-lab/barad-dur/internal/supervisor"
)

func runServe(ctx context.Context, configPath string) error {
	cfg, err := loadConfig(configPath)
	if err != nil {
		return err
	}
	slog.Info("Loaded config",
		"addr", cfg.Server.Addr(),
		"database", cfg.Database.Type,
		"queue_capacity", cfg.Ingest.QueueCapacity,
		"aggregation_enabled", cfg.Aggregation.Enabled)

	// 1. Storage
	st, err := openStores(cfg.Database)
	if err != nil {
		return err
	}
	defer func() {
		if err := st.close(); err != nil {
			slog.Error("Failed to close storage", "error", err)
		}
	}()

	// 2. Metrics
	m, metricsHandler, err := newMetrics(cfg.Metrics)
	if err != nil {
		return err
	}

	sup, ctx := supervisor.New(ctx)

	// 3. Ingestion: push endpoint -> queue -> writer
	queue := ingestion.NewQueue(cfg.Ingest.QueueCapacity)
	if err := m.RegisterQueueDepth(queue.Len); err != nil {
		return fmt.Errorf("register queue depth gauge: %w", err)
	}
	writer := ingestion.NewWriter(queue, st.reports, m, cfg.Ingest.DrainTimeout)
	ingestionSvc := ingestion.NewService(queue, cfg.Server.MaxBodySizeMB, m, func(err error) {
		if ctx.Err() != nil {
			// The writer closed the queue as part of shutdown.
			slog.Warn("Report rejected during shutdown", "error", err)
			return
		}
		sup.Fail("ingest", err)
	})

	// 4. Aggregation and read path
	aggregator := aggregation.NewAggregator(st.reports, st.rollups, m)
	projectionSvc := projection.NewService(st.rollups, aggregator)

	// 5. HTTP server
	srv := server.New(cfg.Server.Addr(), st.reports, metricsHandler, cfg.Server.Mode)
	ingestionSvc.RegisterRoutes(srv.Engine)
	projectionSvc.RegisterRoutes(srv.Engine)

	// 6. Start components
	sup.Go("report writer", writer.Run)
	sup.Go("http server", srv.Run)

	if cfg.Aggregation.Enabled {
		if err := startSchedulers(sup, aggregator, cfg.Aggregation); err != nil {
			sup.Fail("aggregator", err)
		}
	} else {
		slog.Info("Aggregation scheduler disabled by config")
	}

	err = sup.Wait()
	if err != nil {
		return err
	}
	slog.Info("Shutdown complete")
	return nil
}

func startSchedulers(sup *supervisor.Supervisor, aggregator *aggregation.Aggregator, cfg corecfg.AggregationConfig) error {
	for scope, spec := range map[storage.Scope]string{
		storage.ScopeGlobal:  cfg.GlobalSchedule,
		storage.ScopeContext: cfg.ContextSchedule,
	} {
		scheduler, err := aggregation.NewScheduler(aggregator, scope, spec)
		if err != nil {
			return err
		}
		sup.Go(fmt.Sprintf("aggregator (%s)", scope), scheduler.Start)
	}
	return nil
}

// newMetrics returns a nil *metrics.Metrics and handler when metrics are disabled.
func newMetrics(cfg corecfg.MetricsConfig) (*metrics.Metrics, http.Handler, error) {
	if !cfg.Enabled {
		return nil, nil, nil
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	m, err := metrics.NewMetrics(reg)
	if err != nil {
		return nil, nil, fmt.Errorf("register metrics: %w", err)
	}
	return m, promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg}), nil
}
