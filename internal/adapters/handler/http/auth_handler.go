package http

import (
	"net/http"

	"github.com/comitanigiacomo/activat-sync-engine/internal/core/services"
	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	service *services.AuthService
}

func NewAuthHandler(service *services.AuthService) *AuthHandler {
	return &AuthHandler{
		service: service,
	}
}

type pairRequest struct {
	Pin string `json:"pin" binding:"required" example:"4821"`
}

type tokenResponse struct {
	Token     string `json:"token"`
	TokenType string `json:"token_type"`
}

// Pair godoc
// @Summary      Pair a device
// @Description  Exchanges the configured device pin for a bearer token.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      pairRequest  true  "Device pin"
// @Success      200   {object}  tokenResponse
// @Failure      401   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /auth/token [post]
func (h *AuthHandler) Pair(c *gin.Context) {
	var req pairRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}

	token, err := h.service.Pair(c.Request.Context(), req.Pin)
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, tokenResponse{
		Token:     token,
		TokenType: "Bearer",
	})
}

// RegisterRoutes mounts pairing; limits guard the PIN against guessing.
func (h *AuthHandler) RegisterRoutes(router *gin.RouterGroup, limits ...gin.HandlerFunc) {
	authGroup := router.Group("/auth", limits...)
	{
		authGroup.POST("/token", h.Pair)
	}
}
