package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	v1 "github.com/aevon-lab/barad-dur/internal/api/v1"
	"github.com/aevon-lab/barad-dur/internal/core/storage"
)

// ReportAdapter implements storage.ReportStore for PostgreSQL.
type ReportAdapter struct {
	db             *sql.DB
	stmtSaveReport *sql.Stmt
	stmtGetReport  *sql.Stmt
}

// NewReportAdapter prepares the report statements on a shared pool.
// The schema must already exist: run migrations first.
func NewReportAdapter(db *sql.DB) (*ReportAdapter, error) {
	if err := validateSchema(db); err != nil {
		return nil, fmt.Errorf("schema validation failed - did you run migrations?: %w", err)
	}

	stmtSave, err := db.Prepare(querySaveReport)
	if err != nil {
		return nil, fmt.Errorf("failed to prepare saveReport statement: %w", err)
	}

	stmtGet, err := db.Prepare(queryGetReport)
	if err != nil {
		stmtSave.Close()
		return nil, fmt.Errorf("failed to prepare getReport statement: %w", err)
	}

	slog.Info("[Postgres] Report adapter initialized with prepared statements")

	return &ReportAdapter{
		db:             db,
		stmtSaveReport: stmtSave,
		stmtGetReport:  stmtGet,
	}, nil
}

// validateSchema checks that the reports table exists.
func validateSchema(db *sql.DB) error {
	var exists bool
	if err := db.QueryRow(queryReportsTableExists).Scan(&exists); err != nil {
		return fmt.Errorf("failed to check schema: %w", err)
	}
	if !exists {
		return fmt.Errorf("reports table does not exist")
	}
	return nil
}

// SaveReport inserts exactly one row and populates report.ID.
// There is no deduplication at write time: every accepted submission is kept.
func (a *ReportAdapter) SaveReport(ctx context.Context, report *v1.Report) (int64, error) {
	var id int64
	if err := a.stmtSaveReport.QueryRowContext(ctx, reportArgs(report)...).Scan(&id); err != nil {
		return 0, fmt.Errorf("failed to save report: %w", err)
	}
	report.ID = id

	slog.Debug("[Postgres] Saved report",
		"id", id,
		"homeserver", stringOrEmpty(report.Homeserver))
	return id, nil
}

// GetReport returns storage.ErrNotFound when no report has the id.
func (a *ReportAdapter) GetReport(ctx context.Context, id int64) (*v1.Report, error) {
	report, err := scanReport(a.stmtGetReport.QueryRowContext(ctx, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, storage.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return report, nil
}

func (a *ReportAdapter) EarliestReportDay(ctx context.Context, scope storage.Scope) (time.Time, bool, error) {
	query := queryEarliestReportDay
	if scope == storage.ScopeContext {
		query = queryEarliestContextReportDay
	}

	var day sql.NullString
	if err := a.db.QueryRowContext(ctx, query).Scan(&day); err != nil {
		return time.Time{}, false, fmt.Errorf("failed to read earliest report day: %w", err)
	}
	return scanDay(day)
}

func (a *ReportAdapter) Ping(ctx context.Context) error {
	return a.db.PingContext(ctx)
}

// Close releases the prepared statements. The pool itself belongs to the caller of Open.
func (a *ReportAdapter) Close() error {
	var firstErr error

	if err := a.stmtSaveReport.Close(); err != nil && firstErr == nil {
		firstErr = fmt.Errorf("failed to close saveReport statement: %w", err)
	}

	if err := a.stmtGetReport.Close(); err != nil && firstErr == nil {
		firstErr = fmt.Errorf("failed to close getReport statement: %w", err)
	}

	if firstErr != nil {
		return firstErr
	}

	slog.Info("[Postgres] Report adapter closed")
	return nil
}

func stringOrEmpty(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
