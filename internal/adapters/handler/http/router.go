package http

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/comitanigiacomo/activat-sync-engine/docs"
	"github.com/comitanigiacomo/activat-sync-engine/internal/adapters/handler/http/middleware"
)

// HealthProbe is implemented by every key-value substrate.
type HealthProbe interface {
	Ping(ctx context.Context) error
}

type RouterDependencies struct {
	AuthHandler      *AuthHandler
	SessionHandler   *SessionHandler
	DashboardHandler *DashboardHandler
	HistoryHandler   *HistoryHandler
	ProfileHandler   *ProfileHandler
	// SensorHandler is nil when readings are not accepted over the API.
	SensorHandler *SensorHandler
	// Tokens is nil when device pairing is disabled; the API is then open.
	Tokens middleware.TokenValidator
	Store  HealthProbe
	// Redis backs the rate limiter; nil disables every budget.
	Redis      *redis.Client
	RateLimits RateLimits
	StartTime  time.Time
}

// RateLimits are per-minute request budgets per client. Zero disables one.
type RateLimits struct {
	// API covers reads and profile edits.
	API int
	// Commands covers session start, pause, resume and stop.
	Commands int
	// Sensor covers pushed readings, which arrive far more often.
	Sensor int
	// Pairing covers PIN attempts.
	Pairing int
}

func NewRouter(deps RouterDependencies) *gin.Engine {
	router := gin.Default()

	router.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, GET, OPTIONS, PUT")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, Authorization")
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}
		c.Next()
	})
	router.Use(middleware.MetricsMiddleware())

	router.GET("/health", func(c *gin.Context) {
		storeStatus := "connected"
		if deps.Store == nil || deps.Store.Ping(c.Request.Context()) != nil {
			storeStatus = "unreachable"
		}

		body := gin.H{
			"status": "ok",
			"store":  storeStatus,
			"uptime": time.Since(deps.StartTime).String(),
		}
		statusCode := http.StatusOK
		if storeStatus == "unreachable" {
			statusCode = http.StatusServiceUnavailable
		}

		if deps.Redis != nil {
			redisStatus := "connected"
			if deps.Redis.Ping(c.Request.Context()).Err() != nil {
				redisStatus = "unreachable"
				statusCode = http.StatusServiceUnavailable
			}
			body["redis"] = redisStatus
		}

		c.JSON(statusCode, body)
	})
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	limiter := middleware.NewRateLimiter(deps.Redis)
	limits := deps.RateLimits

	apiV1 := router.Group("/api/v1")

	deps.AuthHandler.RegisterRoutes(apiV1, limiter.Limit(middleware.PerMinute("pairing", limits.Pairing)))

	protected := apiV1.Group("")
	if deps.Tokens != nil {
		protected.Use(middleware.AuthMiddleware(deps.Tokens))
	}

	// Sensor pushes only count against their own budget.
	if deps.SensorHandler != nil {
		deps.SensorHandler.RegisterRoutes(protected, limiter.Limit(middleware.PerMinute("sensor", limits.Sensor)))
	}

	api := protected.Group("", limiter.Limit(middleware.PerMinute("api", limits.API)))
	{
		deps.SessionHandler.RegisterRoutes(api, limiter.Limit(middleware.PerMinute("commands", limits.Commands)))
		deps.DashboardHandler.RegisterRoutes(api)
		deps.HistoryHandler.RegisterRoutes(api)
		deps.ProfileHandler.RegisterRoutes(api)
	}

	return router
}
