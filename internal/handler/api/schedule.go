package api

import (
	"errors"
	"net/http"
	"strconv"

	"petcare-hub/internal/handler/httperr"
	"petcare-hub/internal/pkg/config"
	"petcare-hub/internal/usecase/queries"

	"github.com/gin-gonic/gin"
)

// ScheduleHandler serves the merged three-service calendar.
type ScheduleHandler struct {
	loader      *queries.RangeLoader
	includePast bool
}

func NewScheduleHandler(loader *queries.RangeLoader, cfg config.ScheduleConfig) *ScheduleHandler {
	return &ScheduleHandler{
		loader:      loader,
		includePast: cfg.IncludePast,
	}
}

// @Summary Calendar events
// @Description Merged events of all services over a date range
// @Tags schedule
// @Produce json
// @Param from query string true "First day as YYYY-MM-DD"
// @Param to query string false "Last day as YYYY-MM-DD, defaults to from"
// @Param include_past query bool false "Keep days before today"
// @Success 200 {object} queries.RangeResult
// @Failure 400 {object} httperr.Response
// @Router /schedule/events [get]
func (h *ScheduleHandler) RangeEvents(c *gin.Context) {
	from := c.Query("from")
	if from == "" {
		httperr.AbortWithError(c, http.StatusBadRequest, queries.ErrInvalidRange, "Query parameter 'from' is required", nil)
		return
	}
	to := c.DefaultQuery("to", from)

	includePast := h.includePast
	if raw := c.Query("include_past"); raw != "" {
		parsed, err := strconv.ParseBool(raw)
		if err != nil {
			httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid include_past value", nil)
			return
		}
		includePast = parsed
	}

	result, err := h.loader.Load(c.Request.Context(), from, to, includePast)
	if err != nil {
		if errors.Is(err, queries.ErrInvalidRange) {
			httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid date range", nil)
			return
		}
		respondError(c, err)
		return
	}

	if result.Events == nil {
		result.Events = []*queries.EventView{}
	}
	c.JSON(http.StatusOK, result)
}
