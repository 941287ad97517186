package ingestion

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	v1 "github.com/aevon-lab/barad-dur/internal/api/v1"
	coreerr "github.com/aevon-lab/barad-dur/internal/core/errors"
	"github.com/aevon-lab/barad-dur/internal/core/storage"
	"github.com/aevon-lab/barad-dur/internal/metrics"
)

const (
	writerComponent     = "report writer"
	defaultDrainTimeout = 10 * time.Second
)

// Writer is the single consumer of the ingest queue. Every dequeued report is
// written with exactly one SaveReport call. A failed write is not retried: the
// writer stops with a FatalError and the process is expected to exit.
type Writer struct {
	queue        *Queue
	store        storage.ReportStore
	metrics      *metrics.Metrics
	drainTimeout time.Duration
}

func NewWriter(queue *Queue, store storage.ReportStore, m *metrics.Metrics, drainTimeout time.Duration) *Writer {
	if queue == nil {
		panic("ingestion: queue must not be nil")
	}
	if store == nil {
		panic("ingestion: store must not be nil")
	}
	if drainTimeout <= 0 {
		drainTimeout = defaultDrainTimeout
	}
	return &Writer{
		queue:        queue,
		store:        store,
		metrics:      m,
		drainTimeout: drainTimeout,
	}
}

// Run consumes the queue until ctx is cancelled or a write fails. On cancellation
// the queue is closed and the reports already in it are written before Run returns
// nil. The queue is closed on every exit path.
func (w *Writer) Run(ctx context.Context) error {
	defer w.queue.Close()

	slog.Info("[Writer] Started", "queue_capacity", w.queue.Cap())

	for {
		report, err := w.queue.Get(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return w.drain()
			}
			return coreerr.Fatal(writerComponent, err)
		}

		// An in-flight write finishes even if shutdown starts meanwhile.
		if err := w.write(context.WithoutCancel(ctx), report); err != nil {
			return coreerr.Fatal(writerComponent, err)
		}
	}
}

func (w *Writer) write(ctx context.Context, report *v1.Report) error {
	id, err := w.store.SaveReport(ctx, report)
	if err != nil {
		slog.Error("[Writer] Failed to persist report",
			"homeserver", stringOrEmpty(report.Homeserver),
			"error", err)
		return fmt.Errorf("persist report: %w", err)
	}
	w.metrics.ReportPersisted()

	slog.Debug("[Writer] Persisted report", "id", id)
	return nil
}

func (w *Writer) drain() error {
	w.queue.Close()

	ctx, cancel := context.WithTimeout(context.Background(), w.drainTimeout)
	defer cancel()

	drained := 0
	for {
		report, ok := w.queue.TryGet()
		if !ok {
			slog.Info("[Writer] Stopped", "drained", drained)
			return nil
		}
		if err := w.write(ctx, report); err != nil {
			if errors.Is(err, context.DeadlineExceeded) {
				slog.Warn("[Writer] Drain timed out",
					"drained", drained,
					"dropped", w.queue.Len()+1)
				return nil
			}
			return coreerr.Fatal(writerComponent, err)
		}
		drained++
	}
}

func stringOrEmpty(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
