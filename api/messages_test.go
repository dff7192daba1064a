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
	"github.com/skytrip/flightcrm/internal/service/messages"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// MockMessageUseCase is a mock implementation of messages.MessageUseCase
type MockMessageUseCase struct {
	mock.Mock
}

func (m *MockMessageUseCase) Create(ctx context.Context, input messages.MessageInput) (*domain.ContactMessage, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ContactMessage), args.Error(1)
}

func (m *MockMessageUseCase) Get(ctx context.Context, id int64) (*domain.ContactMessage, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ContactMessage), args.Error(1)
}

func (m *MockMessageUseCase) List(ctx context.Context) ([]domain.ContactMessage, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.ContactMessage), args.Error(1)
}

func (m *MockMessageUseCase) Update(ctx context.Context, id int64, input messages.MessageInput) (*domain.ContactMessage, error) {
	args := m.Called(ctx, id, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ContactMessage), args.Error(1)
}

func (m *MockMessageUseCase) Archive(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockMessageUseCase) Restore(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockMessageUseCase) ListArchived(ctx context.Context) ([]domain.ContactMessage, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.ContactMessage), args.Error(1)
}

func (m *MockMessageUseCase) GetArchived(ctx context.Context, id int64) (*domain.ContactMessage, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ContactMessage), args.Error(1)
}

func (m *MockMessageUseCase) Counts(ctx context.Context) (domain.Counts, error) {
	args := m.Called(ctx)
	return args.Get(0).(domain.Counts), args.Error(1)
}

func TestMessageHandler_create(t *testing.T) {
	mockService := &MockMessageUseCase{}
	handler := NewMessageHandler(mockService)

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	payload := `{"full_name":"John Smith","email":"john@example.com","message":"Do you fly to Tokyo?"}`
	c.Request = httptest.NewRequest("POST", "/flight/contact-message", strings.NewReader(payload))
	c.Request.Header.Set("Content-Type", "application/json")

	created := &domain.ContactMessage{ID: 5, FullName: "John Smith", Email: "john@example.com", Message: "Do you fly to Tokyo?"}
	mockService.On("Create", c.Request.Context(), messages.MessageInput{
		FullName: "John Smith",
		Email:    "john@example.com",
		Message:  "Do you fly to Tokyo?",
	}).Return(created, nil)

	handler.create(c)

	assert.Equal(t, http.StatusCreated, w.Code)

	var body map[string]interface{}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, float64(5), body["id"])
	assert.Equal(t, "John Smith", body["full_name"])

	mockService.AssertExpectations(t)
}

func TestMessageHandler_create_validationError(t *testing.T) {
	mockService := &MockMessageUseCase{}
	handler := NewMessageHandler(mockService)

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	payload := `{"full_name":"John Smith"}`
	c.Request = httptest.NewRequest("POST", "/flight/contact-message", strings.NewReader(payload))
	c.Request.Header.Set("Content-Type", "application/json")

	verr := domain.NewValidationError()
	verr.Add("email", "email is required")
	verr.Add("message", "message is required")
	mockService.On("Create", c.Request.Context(), mock.Anything).Return(nil, verr)

	handler.create(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)

	var body map[string]map[string]string
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Contains(t, body["errors"], "email")
	assert.Contains(t, body["errors"], "message")
}

func TestMessageHandler_list(t *testing.T) {
	mockService := &MockMessageUseCase{}
	handler := NewMessageHandler(mockService)

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest("GET", "/flight/contact-messages", nil)

	msgs := []domain.ContactMessage{
		{ID: 1, FullName: "John Smith", Email: "john@example.com", Message: "Hi"},
		{ID: 2, FullName: "Jane Doe", Email: "jane@example.com", Message: "Hello"},
	}
	mockService.On("List", c.Request.Context()).Return(msgs, nil)

	handler.list(c)

	assert.Equal(t, http.StatusOK, w.Code)

	var body []map[string]interface{}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Len(t, body, 2)
}

func TestMessageHandler_archive_notFound(t *testing.T) {
	mockService := &MockMessageUseCase{}
	handler := NewMessageHandler(mockService)

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Params = gin.Params{{Key: "id", Value: "404"}}
	c.Request = httptest.NewRequest("DELETE", "/flight/contact-message/404", nil)

	mockService.On("Archive", c.Request.Context(), int64(404)).Return(domain.ErrNotFound)

	handler.archive(c)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestMessageHandler_getArchived(t *testing.T) {
	mockService := &MockMessageUseCase{}
	handler := NewMessageHandler(mockService)

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Params = gin.Params{{Key: "id", Value: "2"}}
	c.Request = httptest.NewRequest("GET", "/flight/contact-message/archive/2", nil)

	archived := &domain.ContactMessage{ID: 2, FullName: "Jane Doe", Email: "jane@example.com", Message: "Hello", IsHidden: true}
	mockService.On("GetArchived", c.Request.Context(), int64(2)).Return(archived, nil)

	handler.getArchived(c)

	assert.Equal(t, http.StatusOK, w.Code)

	var body map[string]interface{}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, true, body["is_hidden"])
}
