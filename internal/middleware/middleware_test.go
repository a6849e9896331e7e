package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"playpal-backend-go/internal/config"
)

func TestRequestLogger(t *testing.T) {
	gin.SetMode(gin.TestMode)
	core, logs := observer.New(zapcore.DebugLevel)

	router := gin.New()
	router.Use(RequestLogger(zap.New(core)))
	router.GET("/ok", func(c *gin.Context) {
		c.Set(OutcomeKey, "notified")
		c.Status(http.StatusOK)
	})
	router.GET("/bad", func(c *gin.Context) { c.Status(http.StatusBadRequest) })
	router.GET("/boom", func(c *gin.Context) { c.Status(http.StatusInternalServerError) })

	for _, path := range []string{"/ok?x=1", "/bad", "/boom"} {
		router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, path, nil))
	}

	entries := logs.All()
	require.Len(t, entries, 3)
	assert.Equal(t, zapcore.InfoLevel, entries[0].Level)
	assert.Equal(t, "notified", entries[0].ContextMap()["outcome"])
	assert.Equal(t, "x=1", entries[0].ContextMap()["query"])
	assert.Equal(t, zapcore.WarnLevel, entries[1].Level)
	assert.Equal(t, zapcore.ErrorLevel, entries[2].Level)
}

func TestRecoveryMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("Panic becomes a JSON 500", func(t *testing.T) {
		core, logs := observer.New(zapcore.ErrorLevel)
		router := gin.New()
		router.Use(RecoveryMiddleware(zap.New(core)))
		router.GET("/matches/:id", func(c *gin.Context) { panic("kaboom") })

		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/matches/m1", nil))

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		var body map[string]string
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Equal(t, map[string]string{
			"error":   "Internal Server Error",
			"details": "GET /matches/:id failed unexpectedly",
		}, body)

		entries := logs.FilterMessage("Panic recovered").All()
		require.Len(t, entries, 1)
		fields := entries[0].ContextMap()
		assert.Equal(t, "/matches/:id", fields["route"])
		assert.Equal(t, "/matches/m1", fields["path"])
		assert.Equal(t, http.MethodGet, fields["method"])
		assert.Equal(t, OutcomePanic, fields["outcome"])
		assert.Equal(t, "kaboom", fields["panic"])
		assert.NotEmpty(t, fields["stacktrace"])
	})

	t.Run("Request log records the panic outcome", func(t *testing.T) {
		core, logs := observer.New(zapcore.DebugLevel)
		logger := zap.New(core)
		router := gin.New()
		router.Use(RequestLogger(logger), RecoveryMiddleware(logger))
		router.POST("/triggers/match-status", func(c *gin.Context) { panic("nil snapshot") })

		router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodPost, "/triggers/match-status", nil))

		entries := logs.FilterMessage("Incoming Request").All()
		require.Len(t, entries, 1)
		assert.Equal(t, zapcore.ErrorLevel, entries[0].Level)
		assert.Equal(t, OutcomePanic, entries[0].ContextMap()["outcome"])
		assert.Equal(t, int64(http.StatusInternalServerError), entries[0].ContextMap()["status_code"])
	})

	t.Run("Response already started", func(t *testing.T) {
		core, _ := observer.New(zapcore.ErrorLevel)
		router := gin.New()
		router.Use(RecoveryMiddleware(zap.New(core)))
		router.GET("/partial", func(c *gin.Context) {
			c.String(http.StatusAccepted, "partial")
			panic("late")
		})

		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/partial", nil))

		assert.Equal(t, http.StatusAccepted, w.Code)
		assert.Equal(t, "partial", w.Body.String())
	})

	assert.Panics(t, func() { RecoveryMiddleware(nil) })
}

func TestCORSMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)

	router := gin.New()
	router.Use(CORSMiddleware(&config.Config{ClientURL: "https://admin.playpal.app, https://staging.playpal.app"}))
	router.GET("/verifyTestUser", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodGet, "/verifyTestUser", nil)
	req.Header.Set("Origin", "https://staging.playpal.app")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, "https://staging.playpal.app", w.Header().Get("Access-Control-Allow-Origin"))

	req = httptest.NewRequest(http.MethodGet, "/verifyTestUser", nil)
	req.Header.Set("Origin", "https://evil.example")
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusForbidden, w.Code)

	assert.Panics(t, func() { CORSMiddleware(&config.Config{}) })
}
