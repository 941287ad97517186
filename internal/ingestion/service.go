package ingestion

import (
	"github.com/gin-gonic/gin"

	"github.com/aevon-lab/barad-dur/internal/metrics"
)

// Service is the report push endpoint. It stamps each accepted report with the
// receipt envelope and hands it to the queue; persistence happens in the Writer.
type Service struct {
	queue            *Queue
	metrics          *metrics.Metrics
	maxBodySizeBytes int
	onFatal          func(error)
}

// NewService wires the push endpoint to queue. onFatal receives the FatalError raised
// when the queue has been closed underneath a producer; it may be nil.
func NewService(queue *Queue, maxBodySizeMB int, m *metrics.Metrics, onFatal func(error)) *Service {
	if queue == nil {
		panic("ingestion: queue must not be nil")
	}
	if maxBodySizeMB <= 0 {
		maxBodySizeMB = 1 // default to 1MB
	}
	if onFatal == nil {
		onFatal = func(error) {}
	}
	return &Service{
		queue:            queue,
		metrics:          m,
		maxBodySizeBytes: maxBodySizeMB * 1024 * 1024,
		onFatal:          onFatal,
	}
}

// RegisterRoutes registers the ingestion service routes.
func (s *Service) RegisterRoutes(r gin.IRouter) {
	r.PUT("/report-usage-stats/push", s.PushHandler)
}
