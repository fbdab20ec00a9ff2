package http

import (
	"errors"
	"log"
	"net/http"

	"github.com/comitanigiacomo/activat-sync-engine/internal/adapters/sensor"
	"github.com/comitanigiacomo/activat-sync-engine/internal/core/domain"
	"github.com/gin-gonic/gin"
)

type errorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

func handleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrInvalidTransition):
		c.JSON(http.StatusConflict, errorResponse{Error: "invalid session transition", Message: err.Error()})

	case errors.Is(err, domain.ErrNoActiveSession):
		c.JSON(http.StatusConflict, errorResponse{Error: "no active session"})

	case errors.Is(err, domain.ErrInvalidPeriod),
		errors.Is(err, domain.ErrInvalidActivityLevel),
		errors.Is(err, domain.ErrInvalidHealthObjective),
		errors.Is(err, sensor.ErrInvalidReading):
		c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})

	case errors.Is(err, domain.ErrInvalidCredentials), errors.Is(err, domain.ErrUnauthorized):
		c.JSON(http.StatusUnauthorized, errorResponse{Error: "invalid credentials"})

	case errors.Is(err, domain.ErrPairingDisabled):
		c.JSON(http.StatusNotFound, errorResponse{Error: "device pairing is not enabled"})

	case errors.Is(err, domain.ErrSessionStoreFailed):
		log.Printf("[ERROR] Request %s %s failed: %v", c.Request.Method, c.Request.URL.Path, err)
		c.JSON(http.StatusInternalServerError, errorResponse{
			Error:   "session could not be saved",
			Message: "the session is still running, stop it again to retry",
		})

	default:
		log.Printf("[ERROR] Request %s %s failed: %v", c.Request.Method, c.Request.URL.Path, err)
		c.JSON(http.StatusInternalServerError, errorResponse{Error: "internal server error"})
	}
}
