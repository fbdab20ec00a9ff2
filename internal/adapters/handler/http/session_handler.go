package http

import (
	"net/http"

	"github.com/comitanigiacomo/activat-sync-engine/internal/core/services"
	"github.com/gin-gonic/gin"
)

type SessionHandler struct {
	svc *services.ActivityService
}

func NewSessionHandler(svc *services.ActivityService) *SessionHandler {
	return &SessionHandler{svc: svc}
}

// RegisterRoutes mounts the session routes. limits apply to the commands
// only; reading the live session is not counted against them.
func (h *SessionHandler) RegisterRoutes(router *gin.RouterGroup, limits ...gin.HandlerFunc) {
	session := router.Group("/session")
	session.GET("", h.Get)

	commands := session.Group("", limits...)
	{
		commands.POST("/start", h.Start)
		commands.POST("/pause", h.Pause)
		commands.POST("/resume", h.Resume)
		commands.POST("/stop", h.Stop)
	}
}

// Get godoc
// @Summary      Current session state
// @Tags         session
// @Produce      json
// @Success      200  {object}  domain.LiveSession
// @Router       /session [get]
func (h *SessionHandler) Get(c *gin.Context) {
	c.JSON(http.StatusOK, h.svc.LiveSession())
}

// Start godoc
// @Summary      Start a walking session
// @Tags         session
// @Produce      json
// @Success      200  {object}  domain.LiveSession
// @Failure      409  {object}  errorResponse
// @Router       /session/start [post]
func (h *SessionHandler) Start(c *gin.Context) {
	live, err := h.svc.StartSession(c.Request.Context())
	if err != nil {
		handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, live)
}

// Pause godoc
// @Summary      Pause the running session
// @Tags         session
// @Produce      json
// @Success      200  {object}  domain.LiveSession
// @Failure      409  {object}  errorResponse
// @Router       /session/pause [post]
func (h *SessionHandler) Pause(c *gin.Context) {
	live, err := h.svc.PauseSession()
	if err != nil {
		handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, live)
}

// Resume godoc
// @Summary      Resume a paused session
// @Tags         session
// @Produce      json
// @Success      200  {object}  domain.LiveSession
// @Failure      409  {object}  errorResponse
// @Router       /session/resume [post]
func (h *SessionHandler) Resume(c *gin.Context) {
	live, err := h.svc.ResumeSession()
	if err != nil {
		handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, live)
}

// Stop godoc
// @Summary      Stop and store the session
// @Description  On a storage failure the session keeps running and the call can be retried.
// @Tags         session
// @Produce      json
// @Success      201  {object}  domain.Session
// @Failure      409  {object}  errorResponse
// @Failure      500  {object}  errorResponse
// @Router       /session/stop [post]
func (h *SessionHandler) Stop(c *gin.Context) {
	session, err := h.svc.StopSession(c.Request.Context())
	if err != nil {
		handleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, session)
}
