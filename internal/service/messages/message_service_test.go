package messages

import (
	"context"
	"testing"
	"time"

	"github.com/skytrip/flightcrm/internal/domain"
	"github.com/skytrip/flightcrm/internal/kafka"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type MockMessageRepository struct {
	mock.Mock
}

func (m *MockMessageRepository) Create(ctx context.Context, msg *domain.ContactMessage) error {
	args := m.Called(ctx, msg)
	return args.Error(0)
}

func (m *MockMessageRepository) GetByID(ctx context.Context, id int64) (*domain.ContactMessage, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ContactMessage), args.Error(1)
}

func (m *MockMessageRepository) ListActive(ctx context.Context) ([]domain.ContactMessage, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.ContactMessage), args.Error(1)
}

func (m *MockMessageRepository) ListHidden(ctx context.Context) ([]domain.ContactMessage, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.ContactMessage), args.Error(1)
}

func (m *MockMessageRepository) Update(ctx context.Context, msg *domain.ContactMessage) error {
	args := m.Called(ctx, msg)
	return args.Error(0)
}

func (m *MockMessageRepository) SetHidden(ctx context.Context, id int64, hidden bool) error {
	args := m.Called(ctx, id, hidden)
	return args.Error(0)
}

func (m *MockMessageRepository) Counts(ctx context.Context, recentSince time.Time) (domain.Counts, error) {
	args := m.Called(ctx, recentSince)
	return args.Get(0).(domain.Counts), args.Error(1)
}

type MockProducer struct {
	mock.Mock
}

func (m *MockProducer) Publish(ctx context.Context, topic, key string, value interface{}) error {
	args := m.Called(ctx, topic, key, value)
	return args.Error(0)
}

func TestMessageService_Create(t *testing.T) {
	repo := &MockMessageRepository{}
	producer := &MockProducer{}
	service := NewMessageService(repo, nil, WithProducer(producer, "events"))

	repo.On("Create", mock.Anything, mock.MatchedBy(func(msg *domain.ContactMessage) bool {
		return msg.FullName == "Jane Doe" && msg.Message == "Do you fly to Lisbon?"
	})).Return(nil)
	producer.On("Publish", mock.Anything, "events", "contact_message", mock.MatchedBy(func(v interface{}) bool {
		event, ok := v.(kafka.DomainEvent)
		return ok && event.Type == kafka.EventContactMessageSent
	})).Return(nil)

	msg, err := service.Create(context.Background(), MessageInput{
		FullName: "Jane Doe",
		Email:    "jane@example.com",
		Message:  "Do you fly to Lisbon?",
	})
	assert.NoError(t, err)
	assert.Equal(t, "Jane Doe", msg.FullName)

	repo.AssertExpectations(t)
	producer.AssertExpectations(t)
}

func TestMessageService_Create_validation(t *testing.T) {
	repo := &MockMessageRepository{}
	service := NewMessageService(repo, nil)

	_, err := service.Create(context.Background(), MessageInput{Email: "bad"})

	var verr *domain.ValidationError
	assert.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "full_name")
	assert.Contains(t, verr.Fields, "email")
	assert.Contains(t, verr.Fields, "message")

	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestMessageService_Update_archived(t *testing.T) {
	repo := &MockMessageRepository{}
	service := NewMessageService(repo, nil)

	// The repository refuses updates on archived rows.
	repo.On("Update", mock.Anything, mock.Anything).Return(domain.ErrNotFound)

	_, err := service.Update(context.Background(), 1, MessageInput{
		FullName: "Jane Doe",
		Email:    "jane@example.com",
		Message:  "updated",
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestMessageService_Counts(t *testing.T) {
	repo := &MockMessageRepository{}
	service := NewMessageService(repo, nil)

	repo.On("Counts", mock.Anything, mock.Anything).Return(domain.Counts{TotalActive: 3, Recent: 1, Archived: 2}, nil)

	counts, err := service.Counts(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, int64(2), counts.Archived)
}
