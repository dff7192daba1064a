package api

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/skytrip/flightcrm/internal/auth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAdminAuth_missingHeader(t *testing.T) {
	tokens := auth.NewTokenManager("test-secret", 30*time.Minute)

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest("GET", "/flight/booking-applications", nil)

	AdminAuth(tokens)(c)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.True(t, c.IsAborted())
}

func TestAdminAuth_malformedHeader(t *testing.T) {
	tokens := auth.NewTokenManager("test-secret", 30*time.Minute)

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest("GET", "/flight/booking-applications", nil)
	c.Request.Header.Set("Authorization", "Basic dXNlcjpwYXNz")

	AdminAuth(tokens)(c)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.True(t, c.IsAborted())
}

func TestAdminAuth_invalidToken(t *testing.T) {
	tokens := auth.NewTokenManager("test-secret", 30*time.Minute)

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest("GET", "/flight/booking-applications", nil)
	c.Request.Header.Set("Authorization", "Bearer not-a-jwt")

	AdminAuth(tokens)(c)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.True(t, c.IsAborted())
}

func TestAdminAuth_wrongSecret(t *testing.T) {
	signer := auth.NewTokenManager("other-secret", 30*time.Minute)
	tokens := auth.NewTokenManager("test-secret", 30*time.Minute)

	signed, err := signer.Sign("admin")
	require.NoError(t, err)

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest("GET", "/flight/booking-applications", nil)
	c.Request.Header.Set("Authorization", "Bearer "+signed)

	AdminAuth(tokens)(c)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.True(t, c.IsAborted())
}

func TestAdminAuth_validToken(t *testing.T) {
	tokens := auth.NewTokenManager("test-secret", 30*time.Minute)

	signed, err := tokens.Sign("admin")
	require.NoError(t, err)

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest("GET", "/flight/booking-applications", nil)
	c.Request.Header.Set("Authorization", "Bearer "+signed)

	AdminAuth(tokens)(c)

	assert.False(t, c.IsAborted())
	username, ok := c.Get(ContextAdminUsername)
	require.True(t, ok)
	assert.Equal(t, "admin", username)
}
