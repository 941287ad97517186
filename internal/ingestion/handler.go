package ingestion

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	v1 "github.com/aevon-lab/barad-dur/internal/api/v1"
	httperr "github.com/aevon-lab/barad-dur/internal/core/errors"
)

const (
	msgReadBodyFailed = "Failed to read request body"
	msgInvalidJSON    = "Invalid JSON body"
	msgQueueClosed    = "Report writer has stopped"
	msgAbandoned      = "Request abandoned while waiting for queue capacity"
)

// ingestionError carries the structured HTTP error shape from a helper back to the orchestrator.
// Helpers return this instead of writing to gin.Context directly, keeping them decoupled from HTTP.
type ingestionError struct {
	statusCode int
	errorType  string
	message    string
	details    interface{}
}

func (e *ingestionError) Error() string {
	return e.message
}

// PushHandler handles PUT /report-usage-stats/push.
func (s *Service) PushHandler(c *gin.Context) {
	report, payloadSize, err := s.parseReport(c)
	if err != nil {
		writeError(c, err)
		return
	}

	stampEnvelope(c, report)

	slog.Debug("Received report",
		"homeserver", stringOrEmpty(report.Homeserver),
		"server_context", stringOrEmpty(report.ServerContext),
		"payload_size", payloadSize)

	if err := s.enqueue(c.Request.Context(), report); err != nil {
		writeError(c, err)
		return
	}

	s.metrics.ReportReceived()
	c.JSON(http.StatusOK, gin.H{})
}

// parseReport reads the raw request body and binds it into a Report.
// Returns the parsed report and the raw payload size (used for structured logging upstream).
func (s *Service) parseReport(c *gin.Context) (*v1.Report, int, *ingestionError) {
	maxBytes := int64(s.maxBodySizeBytes)
	limitedBody := io.LimitReader(c.Request.Body, maxBytes+1) // +1 to detect oversized requests

	bodyBytes, err := io.ReadAll(limitedBody)
	if err != nil {
		slog.Error("Failed to read request body", "error", err)
		return nil, 0, &ingestionError{
			statusCode: http.StatusInternalServerError,
			errorType:  httperr.HttpInternalError,
			message:    msgReadBodyFailed,
		}
	}

	if int64(len(bodyBytes)) > maxBytes {
		slog.Warn("Request body exceeds maximum size", "size", len(bodyBytes), "max", maxBytes)
		return nil, len(bodyBytes), &ingestionError{
			statusCode: http.StatusRequestEntityTooLarge,
			errorType:  httperr.HttpPayloadLargeError,
			message:    "Request body exceeds maximum allowed size",
			details: map[string]interface{}{
				"max_size_mb": maxBytes / (1024 * 1024),
			},
		}
	}

	c.Request.Body = io.NopCloser(bytes.NewReader(bodyBytes))

	var report v1.Report
	if err := c.ShouldBindJSON(&report); err != nil {
		slog.Warn("Invalid JSON body received", "error", err, "payload_size", len(bodyBytes))
		return nil, len(bodyBytes), &ingestionError{
			statusCode: http.StatusBadRequest,
			errorType:  httperr.HttpInvalidJsonError,
			message:    msgInvalidJSON,
		}
	}

	return &report, len(bodyBytes), nil
}

// stampEnvelope sets the receipt attributes. Whatever the client sent for them is
// overwritten.
func stampEnvelope(c *gin.Context, report *v1.Report) {
	now := time.Now().UTC().Truncate(time.Microsecond)
	report.ID = 0
	report.LocalTimestamp = &now
	report.RemoteAddr = optional(c.Request.RemoteAddr)
	report.ForwardedFor = optional(c.GetHeader("X-Forwarded-For"))
	report.UserAgent = optional(c.GetHeader("User-Agent"))
}

// enqueue blocks while the queue is full. A closed queue means the writer is gone,
// which the supervisor must hear about.
func (s *Service) enqueue(ctx context.Context, report *v1.Report) *ingestionError {
	err := s.queue.Put(ctx, report)
	switch {
	case err == nil:
		return nil
	case errors.Is(err, ErrQueueClosed):
		slog.Error("Ingest queue closed, rejecting report", "error", err)
		s.onFatal(httperr.Fatal("ingest queue", err))
		return &ingestionError{
			statusCode: http.StatusInternalServerError,
			errorType:  httperr.HttpInternalError,
			message:    msgQueueClosed,
		}
	default:
		slog.Warn("Report abandoned while queue was full", "error", err, "queue_len", s.queue.Len())
		return &ingestionError{
			statusCode: http.StatusServiceUnavailable,
			errorType:  httperr.HttpUnavailableError,
			message:    msgAbandoned,
		}
	}
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// writeError serializes an ingestionError as the JSON HTTP response.
func writeError(c *gin.Context, err *ingestionError) {
	c.JSON(err.statusCode, httperr.ErrorResponse{
		ErrorType: err.errorType,
		Message:   err.message,
		Details:   err.details,
	})
}
