package projection

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/aevon-lab/barad-dur/internal/core/aggregation"
	httperr "github.com/aevon-lab/barad-dur/internal/core/errors"
	"github.com/aevon-lab/barad-dur/internal/core/storage"
)

// RegisterRoutes registers all projection API routes on the given router.
func (s *Service) RegisterRoutes(r gin.IRouter) {
	r.GET("/aggregated-stats/:day", s.HandleGetAggregatedStats)
	r.GET("/aggregated-stats/:day/:context", s.HandleGetAggregatedStatsByContext)
}

type readQuery struct {
	Recompute bool `form:"recompute"`
}

// HandleGetAggregatedStats handles GET /aggregated-stats/:day
// Query parameters: recompute
func (s *Service) HandleGetAggregatedStats(c *gin.Context) {
	day, query, ok := bindRead(c)
	if !ok {
		return
	}

	stats, err := s.GetAggregatedStats(c.Request.Context(), day, query.Recompute)
	if err != nil {
		writeReadError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}

// HandleGetAggregatedStatsByContext handles GET /aggregated-stats/:day/:context
// Query parameters: recompute
func (s *Service) HandleGetAggregatedStatsByContext(c *gin.Context) {
	day, query, ok := bindRead(c)
	if !ok {
		return
	}

	stats, err := s.GetAggregatedStatsByContext(c.Request.Context(), day, c.Param("context"), query.Recompute)
	if err != nil {
		writeReadError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}

func bindRead(c *gin.Context) (time.Time, readQuery, bool) {
	var query readQuery

	day, err := aggregation.ParseDay(c.Param("day"))
	if err != nil {
		c.JSON(http.StatusBadRequest, httperr.ErrorResponse{
			ErrorType: httperr.HttpInvalidDayError,
			Message:   "Invalid day, expected YYYY-MM-DD",
			Details:   err.Error(),
		})
		return time.Time{}, query, false
	}

	if err := c.ShouldBindQuery(&query); err != nil {
		c.JSON(http.StatusBadRequest, httperr.ErrorResponse{
			ErrorType: httperr.HttpInvalidJsonError,
			Message:   "Invalid query parameters",
			Details:   err.Error(),
		})
		return time.Time{}, query, false
	}

	return day, query, true
}

func writeReadError(c *gin.Context, err error) {
	if errors.Is(err, storage.ErrNotFound) {
		c.JSON(http.StatusNotFound, httperr.ErrorResponse{
			ErrorType: httperr.HttpNotFoundError,
			Message:   "No aggregated stats for this day",
		})
		return
	}

	slog.Error("[Projection] Read failed", "path", c.Request.URL.Path, "error", err)
	c.JSON(http.StatusInternalServerError, httperr.ErrorResponse{
		ErrorType: httperr.HttpInternalError,
		Message:   "Failed to read aggregated stats",
		Details:   err.Error(),
	})
}
