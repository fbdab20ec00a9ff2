package main

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	adapterHTTP "github.com/comitanigiacomo/activat-sync-engine/internal/adapters/handler/http"
	"github.com/comitanigiacomo/activat-sync-engine/internal/adapters/sensor"
	"github.com/comitanigiacomo/activat-sync-engine/internal/bootstrap"
	"github.com/comitanigiacomo/activat-sync-engine/internal/config"
	"github.com/comitanigiacomo/activat-sync-engine/internal/core/domain"
	"github.com/comitanigiacomo/activat-sync-engine/internal/core/services"
)

type app struct {
	router   *gin.Engine
	store    *bootstrap.Store
	activity *services.ActivityService
}

// startApp wires the server the way main does, on a SQLite file.
func startApp(t *testing.T, cfg config.Config) *app {
	t.Helper()

	store, err := bootstrap.OpenStore(context.Background(), cfg)
	require.NoError(t, err)

	push := sensor.NewPushSensor()
	controller := services.NewSessionController(store.Sessions, push)
	profiles := services.NewProfileService(store.Sessions)
	history := services.NewHistoryService(store.Sessions)
	activity := services.NewActivityService(controller, services.NewDailyService(store.Sessions), profiles, history)

	router := adapterHTTP.NewRouter(adapterHTTP.RouterDependencies{
		AuthHandler:      adapterHTTP.NewAuthHandler(services.NewAuthService(nil, services.NewTokenService("e2e", "e2e", time.Hour))),
		SessionHandler:   adapterHTTP.NewSessionHandler(activity),
		DashboardHandler: adapterHTTP.NewDashboardHandler(activity),
		HistoryHandler:   adapterHTTP.NewHistoryHandler(history),
		ProfileHandler:   adapterHTTP.NewProfileHandler(activity, profiles),
		SensorHandler:    adapterHTTP.NewSensorHandler(push),
		Store:            store.KV,
		StartTime:        time.Now(),
	})

	return &app{router: router, store: store, activity: activity}
}

func (a *app) stop(t *testing.T) {
	a.activity.Close()
	require.NoError(t, a.store.Close())
}

func (a *app) call(t *testing.T, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, bytes.NewBufferString(body))
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, req)
	return w
}

func TestEndToEnd_WalkingDay(t *testing.T) {
	gin.SetMode(gin.TestMode)

	cfg := config.Config{
		StoreDriver:     config.StoreSQLite,
		SQLitePath:      filepath.Join(t.TempDir(), "e2e.db"),
		KVTable:         config.Load().KVTable,
		DefaultStepGoal: 6000,
		SensorMode:      config.SensorPush,
	}

	first := startApp(t, cfg)

	t.Run("1. Set up the profile", func(t *testing.T) {
		w := first.call(t, http.MethodPut, "/api/v1/profile", `{"age": "41", "height_cm": 175, "weight_kg": "72", "daily_step_goal": "5000"}`)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	})

	t.Run("2. Walk twice", func(t *testing.T) {
		for _, walk := range [][2]string{{"20000", "21500"}, {"30000", "31000"}} {
			require.Equal(t, http.StatusOK, first.call(t, http.MethodPost, "/api/v1/session/start", "").Code)
			require.Equal(t, http.StatusAccepted, first.call(t, http.MethodPost, "/api/v1/sensor/readings", `{"cumulative_steps": `+walk[0]+`}`).Code)
			require.Equal(t, http.StatusAccepted, first.call(t, http.MethodPost, "/api/v1/sensor/readings", `{"cumulative_steps": `+walk[1]+`}`).Code)
			require.Equal(t, http.StatusCreated, first.call(t, http.MethodPost, "/api/v1/session/stop", "").Code)
		}
	})

	t.Run("3. Dashboard shows the day", func(t *testing.T) {
		w := first.call(t, http.MethodGet, "/api/v1/dashboard", "")
		require.Equal(t, http.StatusOK, w.Code)

		var d domain.Dashboard
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &d))
		assert.Equal(t, 2500, d.TotalStepsToday)
		assert.Equal(t, 2, d.Today.SessionsCompleted)
		assert.Equal(t, 2500, d.RemainingSteps)
		assert.InDelta(t, 0.5, d.GoalPercentage, 1e-9)
	})

	first.stop(t)

	second := startApp(t, cfg)
	defer second.stop(t)

	t.Run("4. Everything survives a restart", func(t *testing.T) {
		w := second.call(t, http.MethodGet, "/api/v1/dashboard", "")
		require.Equal(t, http.StatusOK, w.Code)

		var d domain.Dashboard
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &d))
		assert.Equal(t, 5000, d.Profile.DailyStepGoal)
		assert.Equal(t, 2500, d.Today.AccumulatedSteps)
		require.NotNil(t, d.LastSession)
		assert.Equal(t, 1000, d.LastSession.StepCount)

		w = second.call(t, http.MethodGet, "/api/v1/sessions/summary?period=day", "")
		require.Equal(t, http.StatusOK, w.Code)

		var summary domain.PeriodSummary
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &summary))
		assert.Equal(t, 2, summary.Sessions)
		assert.Equal(t, 2500, summary.TotalSteps)
	})
}
