package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/skytrip/flightcrm/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// MockAuthService is a mock implementation of auth.AuthUseCase
type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) Register(ctx context.Context, username, password string) (*domain.TokenPair, error) {
	args := m.Called(ctx, username, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TokenPair), args.Error(1)
}

func (m *MockAuthService) Login(ctx context.Context, username, password string) (*domain.TokenPair, error) {
	args := m.Called(ctx, username, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TokenPair), args.Error(1)
}

func TestAdminHandler_register(t *testing.T) {
	mockService := &MockAuthService{}
	handler := NewAdminHandler(mockService)

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest("POST", "/admin/register", strings.NewReader(`{"username":"admin","password":"supersecret"}`))
	c.Request.Header.Set("Content-Type", "application/json")

	pair := &domain.TokenPair{AccessToken: "header.payload.sig", RefreshToken: "refresh-uuid", TokenType: "bearer"}
	mockService.On("Register", c.Request.Context(), "admin", "supersecret").Return(pair, nil)

	handler.register(c)

	assert.Equal(t, http.StatusCreated, w.Code)

	var body map[string]string
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "header.payload.sig", body["access_token"])
	assert.Equal(t, "bearer", body["token_type"])

	mockService.AssertExpectations(t)
}

func TestAdminHandler_register_duplicateUsername(t *testing.T) {
	mockService := &MockAuthService{}
	handler := NewAdminHandler(mockService)

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest("POST", "/admin/register", strings.NewReader(`{"username":"admin","password":"supersecret"}`))
	c.Request.Header.Set("Content-Type", "application/json")

	mockService.On("Register", c.Request.Context(), "admin", "supersecret").Return(nil, domain.ErrDuplicateUsername)

	handler.register(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAdminHandler_login(t *testing.T) {
	mockService := &MockAuthService{}
	handler := NewAdminHandler(mockService)

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest("POST", "/admin/login", strings.NewReader(`{"username":"admin","password":"supersecret"}`))
	c.Request.Header.Set("Content-Type", "application/json")

	pair := &domain.TokenPair{AccessToken: "header.payload.sig", RefreshToken: "refresh-uuid", TokenType: "bearer"}
	mockService.On("Login", c.Request.Context(), "admin", "supersecret").Return(pair, nil)

	handler.login(c)

	assert.Equal(t, http.StatusOK, w.Code)

	var body map[string]string
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "refresh-uuid", body["refresh_token"])

	mockService.AssertExpectations(t)
}

func TestAdminHandler_login_invalidCredentials(t *testing.T) {
	mockService := &MockAuthService{}
	handler := NewAdminHandler(mockService)

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest("POST", "/admin/login", strings.NewReader(`{"username":"admin","password":"wrong-password"}`))
	c.Request.Header.Set("Content-Type", "application/json")

	mockService.On("Login", c.Request.Context(), "admin", "wrong-password").Return(nil, domain.ErrInvalidCredentials)

	handler.login(c)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAdminHandler_login_badJSON(t *testing.T) {
	mockService := &MockAuthService{}
	handler := NewAdminHandler(mockService)

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest("POST", "/admin/login", strings.NewReader(`{not json`))
	c.Request.Header.Set("Content-Type", "application/json")

	handler.login(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	mockService.AssertNotCalled(t, "Login", mock.Anything, mock.Anything, mock.Anything)
}
