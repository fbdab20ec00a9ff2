package http

import (
	"net/http"
	"time"

	"github.com/comitanigiacomo/activat-sync-engine/internal/core/tracker"
	"github.com/gin-gonic/gin"
)

type ReadingPusher interface {
	Push(r tracker.Reading) error
}

type SensorHandler struct {
	sensor ReadingPusher
}

func NewSensorHandler(sensor ReadingPusher) *SensorHandler {
	return &SensorHandler{sensor: sensor}
}

func (h *SensorHandler) RegisterRoutes(router *gin.RouterGroup, limits ...gin.HandlerFunc) {
	router.Group("/sensor", limits...).POST("/readings", h.PushReading)
}

type readingRequest struct {
	CumulativeSteps *float64   `json:"cumulative_steps" binding:"required" example:"52000"`
	Timestamp       *time.Time `json:"timestamp"`
}

// PushReading godoc
// @Summary      Deliver a step counter reading
// @Description  The counter is cumulative since device boot. Readings arriving while no session is active are dropped.
// @Tags         sensor
// @Accept       json
// @Param        reading  body  readingRequest  true  "Reading"
// @Success      202
// @Failure      400  {object}  errorResponse
// @Router       /sensor/readings [post]
func (h *SensorHandler) PushReading(c *gin.Context) {
	var req readingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid request body", Message: err.Error()})
		return
	}

	reading := tracker.Reading{Cumulative: *req.CumulativeSteps, Timestamp: time.Now()}
	if req.Timestamp != nil {
		reading.Timestamp = *req.Timestamp
	}

	if err := h.sensor.Push(reading); err != nil {
		handleError(c, err)
		return
	}
	c.Status(http.StatusAccepted)
}
