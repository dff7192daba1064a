package bootstrap

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skytrip/flightcrm/api"
	"github.com/skytrip/flightcrm/config"
	"github.com/skytrip/flightcrm/internal/auth"
	"github.com/skytrip/flightcrm/internal/logger"
)

// Mounting the full route table must not trip gin's radix-tree conflict
// checks, which panic at registration time rather than at request time.
func TestNewRouter_registersAllRoutes(t *testing.T) {
	gin.SetMode(gin.TestMode)

	cfg := &config.Config{}
	tokens := auth.NewTokenManager("test-secret", 30*time.Minute)
	handlers := Handlers{
		Admin:        api.NewAdminHandler(nil),
		Packages:     api.NewPackageHandler(nil),
		Applications: api.NewApplicationHandler(nil),
		Messages:     api.NewMessageHandler(nil),
	}

	var router *gin.Engine
	require.NotPanics(t, func() {
		router = NewRouter(cfg, logger.NewLogger(), nil, tokens, handlers)
	})

	mounted := make(map[string]bool)
	for _, route := range router.Routes() {
		mounted[route.Method+" "+route.Path] = true
	}

	expected := []string{
		"GET /healthz",
		"GET /metrics",
		"POST /admin/register",
		"POST /admin/login",
		"GET /flight/package/list",
		"GET /flight/package/list/:id",
		"GET /flight/packages/search",
		"GET /flight/packages/count",
		"POST /flight/package",
		"PUT /flight/package/update/:id",
		"PATCH /flight/package/update/:id",
		"DELETE /flight/package/:id",
		"GET /flight/package/archive",
		"GET /flight/package/archive/:id",
		"PATCH /flight/package/archive/:id",
		"POST /flight/booking-application",
		"GET /flight/booking-applications",
		"GET /flight/booking-applications/count",
		"GET /flight/booking-application/list/:id",
		"PUT /flight/booking-application/update/:id",
		"DELETE /flight/booking-application/:id",
		"GET /flight/booking-application/archive",
		"GET /flight/booking-application/archive/:id",
		"PATCH /flight/booking-application/archive/:id",
		"POST /flight/contact-message",
		"GET /flight/contact-messages",
		"GET /flight/contact-messages/count",
		"GET /flight/contact-message/check/:id",
		"PUT /flight/contact-message/update/:id",
		"DELETE /flight/contact-message/:id",
		"GET /flight/contact-message/archive",
		"GET /flight/contact-message/archive/:id",
		"PATCH /flight/contact-message/archive/:id",
	}
	for _, route := range expected {
		assert.True(t, mounted[route], route)
	}
}

func TestNewRouter_adminRoutesRequireToken(t *testing.T) {
	gin.SetMode(gin.TestMode)

	cfg := &config.Config{}
	tokens := auth.NewTokenManager("test-secret", 30*time.Minute)
	router := NewRouter(cfg, logger.NewLogger(), nil, tokens, Handlers{
		Admin:        api.NewAdminHandler(nil),
		Packages:     api.NewPackageHandler(nil),
		Applications: api.NewApplicationHandler(nil),
		Messages:     api.NewMessageHandler(nil),
	})

	for _, target := range []struct {
		method string
		path   string
	}{
		{"DELETE", "/flight/package/1"},
		{"PATCH", "/flight/package/update/1"},
		{"PATCH", "/flight/package/archive/1"},
		{"GET", "/flight/booking-applications"},
		{"DELETE", "/flight/contact-message/1"},
	} {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(target.method, target.path, nil))
		assert.Equal(t, http.StatusUnauthorized, w.Code, target.method+" "+target.path)
	}
}

func TestNewRouter_healthz(t *testing.T) {
	gin.SetMode(gin.TestMode)

	cfg := &config.Config{}
	tokens := auth.NewTokenManager("test-secret", 30*time.Minute)
	router := NewRouter(cfg, logger.NewLogger(), nil, tokens, Handlers{
		Admin:        api.NewAdminHandler(nil),
		Packages:     api.NewPackageHandler(nil),
		Applications: api.NewApplicationHandler(nil),
		Messages:     api.NewMessageHandler(nil),
	})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest("GET", "/healthz", nil))
	assert.Equal(t, http.StatusOK, w.Code)
}
