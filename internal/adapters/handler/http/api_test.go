package http_test

import (
	"bytes"
	"encoding/json"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"

	adapterHTTP "github.com/comitanigiacomo/activat-sync-engine/internal/adapters/handler/http"
	"github.com/comitanigiacomo/activat-sync-engine/internal/adapters/repository"
	"github.com/comitanigiacomo/activat-sync-engine/internal/adapters/sensor"
	"github.com/comitanigiacomo/activat-sync-engine/internal/core/domain"
	"github.com/comitanigiacomo/activat-sync-engine/internal/core/services"
)

type testAPI struct {
	router   *gin.Engine
	sensor   *sensor.PushSensor
	activity *services.ActivityService
	tokens   *services.TokenService
}

type apiOptions struct {
	pin    string
	redis  *redis.Client
	limits adapterHTTP.RateLimits
}

// newTestAPI wires the whole API on an in-memory store and a push sensor.
// Elapsed ticks are effectively disabled so responses are deterministic.
func newTestAPI(t *testing.T, opts apiOptions) *testAPI {
	t.Helper()
	gin.SetMode(gin.TestMode)

	discard := log.New(io.Discard, "", 0)
	kv := repository.NewInMemoryKV()
	store := repository.NewKVSessionStore(kv, repository.WithStoreLogger(discard))
	push := sensor.NewPushSensor()

	controller := services.NewSessionController(store, push,
		services.WithTickIntervals(time.Hour, time.Hour),
		services.WithControllerLogger(discard),
	)
	profiles := services.NewProfileService(store)
	history := services.NewHistoryService(store)
	activity := services.NewActivityService(controller, services.NewDailyService(store), profiles, history)
	t.Cleanup(activity.Close)

	tokens := services.NewTokenService("test-secret", "activat-test", time.Hour)

	var credential *domain.DeviceCredential
	if opts.pin != "" {
		var err error
		credential, err = domain.NewDeviceCredential(opts.pin)
		require.NoError(t, err)
	}

	deps := adapterHTTP.RouterDependencies{
		AuthHandler:      adapterHTTP.NewAuthHandler(services.NewAuthService(credential, tokens)),
		SessionHandler:   adapterHTTP.NewSessionHandler(activity),
		DashboardHandler: adapterHTTP.NewDashboardHandler(activity),
		HistoryHandler:   adapterHTTP.NewHistoryHandler(history),
		ProfileHandler:   adapterHTTP.NewProfileHandler(activity, profiles),
		SensorHandler:    adapterHTTP.NewSensorHandler(push),
		Store:            kv,
		Redis:            opts.redis,
		RateLimits:       opts.limits,
		StartTime:        time.Now(),
	}
	if credential != nil {
		deps.Tokens = tokens
	}

	return &testAPI{
		router:   adapterHTTP.NewRouter(deps),
		sensor:   push,
		activity: activity,
		tokens:   tokens,
	}
}

func (a *testAPI) do(t *testing.T, method, path string, body any, headers ...string) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		reader = bytes.NewBufferString(b)
	default:
		data, err := json.Marshal(b)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	}

	req := httptest.NewRequest(method, path, reader)
	if reader != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}

	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	return out
}

func pushReading(t *testing.T, a *testAPI, cumulative float64) {
	t.Helper()
	w := a.do(t, http.MethodPost, "/api/v1/sensor/readings", map[string]any{"cumulative_steps": cumulative})
	require.Equal(t, http.StatusAccepted, w.Code, w.Body.String())
}
