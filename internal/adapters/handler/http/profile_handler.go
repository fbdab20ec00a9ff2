package http

import (
	"bytes"
	"encoding/json"
	"net/http"

	"github.com/comitanigiacomo/activat-sync-engine/internal/core/domain"
	"github.com/comitanigiacomo/activat-sync-engine/internal/core/services"
	"github.com/gin-gonic/gin"
)

type ProfileHandler struct {
	activity *services.ActivityService
	profiles *services.ProfileService
}

func NewProfileHandler(activity *services.ActivityService, profiles *services.ProfileService) *ProfileHandler {
	return &ProfileHandler{
		activity: activity,
		profiles: profiles,
	}
}

func (h *ProfileHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/profile", h.GetProfile)
	router.PUT("/profile", h.UpdateProfile)
	router.GET("/health-settings", h.GetHealthSettings)
	router.PUT("/health-settings", h.UpdateHealthSettings)
	router.GET("/health", h.GetHealthReport)
}

// formValue accepts a JSON string or number and keeps its text. Fields are
// parsed leniently downstream, so anything else is kept verbatim and later
// replaced by the field default.
type formValue string

func (v *formValue) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch {
	case bytes.Equal(data, []byte("null")):
		*v = ""
	case len(data) > 0 && data[0] == '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*v = formValue(s)
	default:
		*v = formValue(data)
	}
	return nil
}

type updateProfileRequest struct {
	Age           formValue `json:"age" swaggertype:"string" example:"34"`
	HeightCm      formValue `json:"height_cm" swaggertype:"string" example:"172"`
	WeightKg      formValue `json:"weight_kg" swaggertype:"string" example:"68.5"`
	DailyStepGoal formValue `json:"daily_step_goal" swaggertype:"string" example:"8000"`
}

type updateHealthSettingsRequest struct {
	ActivityLevel   string `json:"activity_level" example:"moderate"`
	HealthObjective string `json:"health_objective" example:"maintain_weight"`
}

// GetProfile godoc
// @Summary      Stored user profile
// @Tags         profile
// @Produce      json
// @Success      200  {object}  domain.UserProfile
// @Router       /profile [get]
func (h *ProfileHandler) GetProfile(c *gin.Context) {
	profile, err := h.profiles.GetProfile(c.Request.Context())
	if err != nil {
		handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, profile)
}

// UpdateProfile godoc
// @Summary      Replace the user profile
// @Description  Values may be strings or numbers. Unusable numbers become 0, an unusable goal keeps the current goal.
// @Tags         profile
// @Accept       json
// @Produce      json
// @Param        profile  body      updateProfileRequest  true  "Profile form"
// @Success      200      {object}  domain.UserProfile
// @Failure      400      {object}  errorResponse
// @Router       /profile [put]
func (h *ProfileHandler) UpdateProfile(c *gin.Context) {
	var req updateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid request body", Message: err.Error()})
		return
	}

	profile, err := h.activity.UpdateProfile(c.Request.Context(), domain.ProfileInput{
		Age:    string(req.Age),
		Height: string(req.HeightCm),
		Weight: string(req.WeightKg),
		Goal:   string(req.DailyStepGoal),
	})
	if err != nil {
		handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, profile)
}

// GetHealthSettings godoc
// @Summary      Activity level and health objective
// @Tags         profile
// @Produce      json
// @Success      200  {object}  domain.HealthSettings
// @Router       /health-settings [get]
func (h *ProfileHandler) GetHealthSettings(c *gin.Context) {
	settings, err := h.profiles.GetHealthSettings(c.Request.Context())
	if err != nil {
		handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, settings)
}

// UpdateHealthSettings godoc
// @Summary      Change health settings
// @Description  Omitted fields keep their stored value.
// @Tags         profile
// @Accept       json
// @Produce      json
// @Param        settings  body      updateHealthSettingsRequest  true  "Settings"
// @Success      200       {object}  domain.HealthSettings
// @Failure      400       {object}  errorResponse
// @Router       /health-settings [put]
func (h *ProfileHandler) UpdateHealthSettings(c *gin.Context) {
	var req updateHealthSettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid request body", Message: err.Error()})
		return
	}

	settings, err := h.activity.UpdateHealthSettings(c.Request.Context(), services.UpdateHealthSettingsInput{
		ActivityLevel:   req.ActivityLevel,
		HealthObjective: req.HealthObjective,
	})
	if err != nil {
		handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, settings)
}

// GetHealthReport godoc
// @Summary      BMI and energy estimates
// @Tags         profile
// @Produce      json
// @Success      200  {object}  domain.HealthReport
// @Router       /health [get]
func (h *ProfileHandler) GetHealthReport(c *gin.Context) {
	report, err := h.profiles.GetHealthReport(c.Request.Context())
	if err != nil {
		handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, report)
}
