package main

import (
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	corecfg "github.com/aevon-lab/barad-dur/internal/core/config"
	"github.com/aevon-lab/barad-dur/internal/core/storage"
	"github.com/aevon-lab/barad-dur/internal/core/storage/memory"
	"github.com/aevon-lab/barad-dur/internal/core/storage/postgres"
	"github.com/aevon-lab/barad-dur/internal/migrations"
)

// stores bundles the two storage ports behind one backend.
type stores struct {
	reports storage.ReportStore
	rollups storage.RollupStore
	close   func() error
}

func openStores(cfg corecfg.DatabaseConfig) (*stores, error) {
	switch cfg.Type {
	case "memory":
		slog.Warn("[Storage] Using in-memory store, data is lost on exit")
		s := memory.New()
		return &stores{reports: s, rollups: s, close: func() error { return nil }}, nil

	case "postgres":
		db, err := postgres.Open(cfg.DSN, cfg.MaxOpenConns, cfg.MaxIdleConns)
		if err != nil {
			return nil, fmt.Errorf("open database: %w", err)
		}

		if err := migrations.Run(db, cfg.AutoMigrate); err != nil {
			return nil, errors.Join(fmt.Errorf("run migrations: %w", err), db.Close())
		}

		reports, err := postgres.NewReportAdapter(db)
		if err != nil {
			return nil, errors.Join(err, db.Close())
		}

		return &stores{
			reports: reports,
			rollups: postgres.NewRollupAdapter(db),
			close:   closeAll(reports, db),
		}, nil

	default:
		return nil, fmt.Errorf("unsupported database.type %q", cfg.Type)
	}
}

func closeAll(reports *postgres.ReportAdapter, db *sql.DB) func() error {
	return func() error {
		return errors.Join(reports.Close(), db.Close())
	}
}

func runMigrate(configPath string) error {
	cfg, err := loadConfig(configPath)
	if err != nil {
		return err
	}
	if cfg.Database.Type != "postgres" {
		return fmt.Errorf("migrate needs database.type postgres, got %q", cfg.Database.Type)
	}

	db, err := postgres.Open(cfg.Database.DSN, cfg.Database.MaxOpenConns, cfg.Database.MaxIdleConns)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer db.Close()

	return migrations.Run(db, true)
}
