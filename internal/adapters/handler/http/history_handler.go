package http

import (
	"fmt"
	"net/http"
	"time"

	"github.com/comitanigiacomo/activat-sync-engine/internal/adapters/export"
	"github.com/comitanigiacomo/activat-sync-engine/internal/core/domain"
	"github.com/comitanigiacomo/activat-sync-engine/internal/core/services"
	"github.com/gin-gonic/gin"
)

type HistoryHandler struct {
	svc *services.HistoryService
}

func NewHistoryHandler(svc *services.HistoryService) *HistoryHandler {
	return &HistoryHandler{svc: svc}
}

func (h *HistoryHandler) RegisterRoutes(router *gin.RouterGroup) {
	sessions := router.Group("/sessions")
	{
		sessions.GET("", h.List)
		sessions.GET("/summary", h.Summary)
		sessions.GET("/chart", h.Chart)
		sessions.GET("/export", h.Export)
	}
}

type sessionListResponse struct {
	Period   domain.Period     `json:"period"`
	Count    int               `json:"count"`
	Sessions []*domain.Session `json:"sessions"`
}

// periodParam reads ?period=, defaulting to the week view.
func periodParam(c *gin.Context) (domain.Period, error) {
	return domain.ParsePeriod(c.DefaultQuery("period", string(domain.PeriodWeek)))
}

// List godoc
// @Summary      Sessions in a period
// @Tags         history
// @Produce      json
// @Param        period  query     string  false  "day, week or month"  default(week)
// @Success      200     {object}  sessionListResponse
// @Failure      400     {object}  errorResponse
// @Router       /sessions [get]
func (h *HistoryHandler) List(c *gin.Context) {
	period, err := periodParam(c)
	if err != nil {
		handleError(c, err)
		return
	}

	sessions, err := h.svc.List(c.Request.Context(), period)
	if err != nil {
		handleError(c, err)
		return
	}
	if sessions == nil {
		sessions = []*domain.Session{}
	}

	c.JSON(http.StatusOK, sessionListResponse{
		Period:   period,
		Count:    len(sessions),
		Sessions: sessions,
	})
}

// Summary godoc
// @Summary      Totals for a period
// @Tags         history
// @Produce      json
// @Param        period  query     string  false  "day, week or month"  default(week)
// @Success      200     {object}  domain.PeriodSummary
// @Failure      400     {object}  errorResponse
// @Router       /sessions/summary [get]
func (h *HistoryHandler) Summary(c *gin.Context) {
	period, err := periodParam(c)
	if err != nil {
		handleError(c, err)
		return
	}

	summary, err := h.svc.Summary(c.Request.Context(), period)
	if err != nil {
		handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, summary)
}

// Chart godoc
// @Summary      Chart points for a period
// @Tags         history
// @Produce      json
// @Param        period  query     string  false  "day, week or month"  default(week)
// @Success      200     {array}   domain.ChartPoint
// @Failure      400     {object}  errorResponse
// @Router       /sessions/chart [get]
func (h *HistoryHandler) Chart(c *gin.Context) {
	period, err := periodParam(c)
	if err != nil {
		handleError(c, err)
		return
	}

	points, err := h.svc.Chart(c.Request.Context(), period)
	if err != nil {
		handleError(c, err)
		return
	}
	if points == nil {
		points = []domain.ChartPoint{}
	}
	c.JSON(http.StatusOK, points)
}

// Export godoc
// @Summary      Download sessions as Parquet
// @Description  Without a period every stored session is exported.
// @Tags         history
// @Produce      application/vnd.apache.parquet
// @Param        period  query  string  false  "day, week or month"
// @Success      200
// @Failure      400     {object}  errorResponse
// @Router       /sessions/export [get]
func (h *HistoryHandler) Export(c *gin.Context) {
	var (
		sessions []*domain.Session
		err      error
		label    = "all"
	)

	if raw := c.Query("period"); raw != "" {
		period, perr := domain.ParsePeriod(raw)
		if perr != nil {
			handleError(c, perr)
			return
		}
		label = string(period)
		sessions, err = h.svc.List(c.Request.Context(), period)
	} else {
		sessions, err = h.svc.All(c.Request.Context())
	}
	if err != nil {
		handleError(c, err)
		return
	}

	data, err := export.MarshalSessionsParquet(sessions)
	if err != nil {
		handleError(c, err)
		return
	}

	filename := fmt.Sprintf("sessions-%s-%s.parquet", label, time.Now().Format("20060102"))
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, export.ParquetContentType, data)
}
