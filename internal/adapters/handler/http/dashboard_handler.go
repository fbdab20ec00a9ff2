package http

import (
	"net/http"

	"github.com/comitanigiacomo/activat-sync-engine/internal/core/services"
	"github.com/comitanigiacomo/activat-sync-engine/internal/observability"
	"github.com/gin-gonic/gin"
)

type DashboardHandler struct {
	svc *services.ActivityService
}

func NewDashboardHandler(svc *services.ActivityService) *DashboardHandler {
	return &DashboardHandler{svc: svc}
}

func (h *DashboardHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/dashboard", h.Get)
	router.GET("/dashboard/stream", h.Stream)
}

// Get godoc
// @Summary      Today's dashboard
// @Description  Profile, settings, today's totals with the live session folded in, and the last stored session.
// @Tags         dashboard
// @Produce      json
// @Success      200  {object}  domain.Dashboard
// @Router       /dashboard [get]
func (h *DashboardHandler) Get(c *gin.Context) {
	d, err := h.svc.Dashboard(c.Request.Context())
	if err != nil {
		handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, d)
}

// Stream godoc
// @Summary      Dashboard updates as server-sent events
// @Description  Emits a "dashboard" event with the full dashboard on every change, starting with the current one.
// @Tags         dashboard
// @Produce      text/event-stream
// @Success      200
// @Router       /dashboard/stream [get]
func (h *DashboardHandler) Stream(c *gin.Context) {
	ctx := c.Request.Context()

	// Make sure there is something to replay to the new subscriber.
	if _, err := h.svc.Dashboard(ctx); err != nil {
		handleError(c, err)
		return
	}

	updates, unsubscribe := h.svc.Subscribe()
	defer unsubscribe()

	observability.StreamSubscribed()
	defer observability.StreamUnsubscribed()

	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Status(http.StatusOK)
	c.Writer.Flush()

	for {
		select {
		case <-ctx.Done():
			return
		case d, ok := <-updates:
			if !ok {
				return
			}
			c.SSEvent("dashboard", d)
			c.Writer.Flush()
		}
	}
}
