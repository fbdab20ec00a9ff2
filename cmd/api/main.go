package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	adapterHTTP "github.com/comitanigiacomo/activat-sync-engine/internal/adapters/handler/http"
	"github.com/comitanigiacomo/activat-sync-engine/internal/adapters/sensor"
	"github.com/comitanigiacomo/activat-sync-engine/internal/bootstrap"
	"github.com/comitanigiacomo/activat-sync-engine/internal/config"
	"github.com/comitanigiacomo/activat-sync-engine/internal/core/domain"
	"github.com/comitanigiacomo/activat-sync-engine/internal/core/services"
	"github.com/comitanigiacomo/activat-sync-engine/internal/core/tracker"
)

// @title           ActivaT Sync Engine API
// @version         1.0
// @description     Walking session tracker: live step counting, daily goal progress and session history.
// @BasePath        /api/v1
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
func main() {
	startTime := time.Now()

	config.LoadDotEnv()
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Critical: invalid configuration: %v", err)
	}

	loc, err := cfg.Location()
	if err != nil {
		log.Fatalf("Critical: %v", err)
	}
	time.Local = loc

	log.Printf("Opening %s store...", cfg.StoreDriver)

	ctx := context.Background()
	store, err := bootstrap.OpenStore(ctx, cfg)
	if err != nil {
		log.Fatalf("Critical: Failed to open store: %v", err)
	}
	defer store.Close()

	log.Println("Store ready.")

	var (
		stepSensor    tracker.Sensor = sensor.UnavailableSensor{}
		sensorHandler *adapterHTTP.SensorHandler
	)
	if cfg.SensorMode == config.SensorPush {
		push := sensor.NewPushSensor()
		stepSensor = push
		sensorHandler = adapterHTTP.NewSensorHandler(push)
	} else {
		log.Println("Step sensor disabled, sessions record time only.")
	}

	controller := services.NewSessionController(store.Sessions, stepSensor)
	profileService := services.NewProfileService(store.Sessions)
	historyService := services.NewHistoryService(store.Sessions)
	activityService := services.NewActivityService(controller, services.NewDailyService(store.Sessions), profileService, historyService)
	defer activityService.Close()

	if _, err := activityService.Refresh(ctx); err != nil {
		log.Fatalf("Critical: Failed to load dashboard: %v", err)
	}

	tokenService := services.NewTokenService(cfg.JWTSecret, cfg.JWTIssuer, cfg.JWTTTL)

	var credential *domain.DeviceCredential
	if cfg.DevicePin != "" {
		credential, err = domain.NewDeviceCredential(cfg.DevicePin)
		if err != nil {
			log.Fatalf("Critical: invalid DEVICE_PIN: %v", err)
		}
		log.Println("Device pairing enabled, API requires a bearer token.")
	}

	deps := adapterHTTP.RouterDependencies{
		AuthHandler:      adapterHTTP.NewAuthHandler(services.NewAuthService(credential, tokenService)),
		SessionHandler:   adapterHTTP.NewSessionHandler(activityService),
		DashboardHandler: adapterHTTP.NewDashboardHandler(activityService),
		HistoryHandler:   adapterHTTP.NewHistoryHandler(historyService),
		ProfileHandler:   adapterHTTP.NewProfileHandler(activityService, profileService),
		SensorHandler:    sensorHandler,
		Store:            store.KV,
		Redis:            store.Redis,
		RateLimits: adapterHTTP.RateLimits{
			API:      cfg.RateLimit,
			Commands: cfg.RateLimitCommands,
			Sensor:   cfg.RateLimitSensor,
			Pairing:  cfg.RateLimitPairing,
		},
		StartTime: startTime,
	}
	if credential != nil {
		deps.Tokens = tokenService
	}

	router := adapterHTTP.NewRouter(deps)

	srv := &http.Server{
		Addr:        ":" + cfg.Port,
		Handler:     router,
		ReadTimeout: 10 * time.Second,
		// No write timeout: the dashboard stream stays open.
		IdleTimeout: 120 * time.Second,
	}

	go func() {
		log.Printf("ActivaT Sync Engine running on http://localhost:%s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Critical server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Stop signal received. Shutting down...")

	// Ends open dashboard streams so Shutdown does not wait on them. A
	// running session is discarded.
	activityService.Close()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("Forced shutdown error: %v", err)
	}

	log.Println("Server stopped gracefully.")
}
