package messages

import (
	"context"
	"strings"
	"time"

	"github.com/skytrip/flightcrm/internal/domain"
	"github.com/skytrip/flightcrm/internal/kafka"
	"github.com/skytrip/flightcrm/internal/logger"
	"github.com/skytrip/flightcrm/internal/repository"
	"github.com/skytrip/flightcrm/internal/service/archive"
)

const recentWindow = 7 * 24 * time.Hour

type MessageUseCase interface {
	Create(ctx context.Context, input MessageInput) (*domain.ContactMessage, error)
	Get(ctx context.Context, id int64) (*domain.ContactMessage, error)
	List(ctx context.Context) ([]domain.ContactMessage, error)
	Update(ctx context.Context, id int64, input MessageInput) (*domain.ContactMessage, error)
	Archive(ctx context.Context, id int64) error
	Restore(ctx context.Context, id int64) error
	ListArchived(ctx context.Context) ([]domain.ContactMessage, error)
	GetArchived(ctx context.Context, id int64) (*domain.ContactMessage, error)
	Counts(ctx context.Context) (domain.Counts, error)
}

type Producer interface {
	Publish(ctx context.Context, topic, key string, value interface{}) error
}

type MessageInput struct {
	FullName string
	Email    string
	Message  string
}

type MessageService struct {
	repo        repository.MessageRepository
	archive     *archive.Service[domain.ContactMessage]
	producer    Producer
	eventsTopic string
	log         logger.Logger
}

type MessageServiceOption func(*MessageService)

func WithProducer(producer Producer, topic string) MessageServiceOption {
	return func(s *MessageService) {
		s.producer = producer
		s.eventsTopic = topic
	}
}

func NewMessageService(repo repository.MessageRepository, log logger.Logger, opts ...MessageServiceOption) *MessageService {
	service := &MessageService{
		repo:    repo,
		archive: archive.NewService[domain.ContactMessage](repo),
		log:     log,
	}
	for _, opt := range opts {
		opt(service)
	}
	return service
}

func validateInput(input MessageInput) error {
	verr := domain.NewValidationError()
	if strings.TrimSpace(input.FullName) == "" {
		verr.Add("full_name", "full name is required")
	}
	if strings.TrimSpace(input.Email) == "" || !strings.Contains(input.Email, "@") {
		verr.Add("email", "a valid email is required")
	}
	if strings.TrimSpace(input.Message) == "" {
		verr.Add("message", "message is required")
	}
	if !verr.Empty() {
		return verr
	}
	return nil
}

func (s *MessageService) Create(ctx context.Context, input MessageInput) (*domain.ContactMessage, error) {
	if err := validateInput(input); err != nil {
		return nil, err
	}

	msg := &domain.ContactMessage{
		FullName: input.FullName,
		Email:    input.Email,
		Message:  input.Message,
	}
	if err := s.repo.Create(ctx, msg); err != nil {
		return nil, err
	}

	s.publish(ctx, kafka.EventContactMessageSent, msg.ID, msg.Email)
	return msg, nil
}

func (s *MessageService) Get(ctx context.Context, id int64) (*domain.ContactMessage, error) {
	msg, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if msg.IsHidden {
		return nil, domain.ErrNotFound
	}
	return msg, nil
}

func (s *MessageService) List(ctx context.Context) ([]domain.ContactMessage, error) {
	return s.repo.ListActive(ctx)
}

func (s *MessageService) Update(ctx context.Context, id int64, input MessageInput) (*domain.ContactMessage, error) {
	if err := validateInput(input); err != nil {
		return nil, err
	}

	msg := &domain.ContactMessage{
		ID:       id,
		FullName: input.FullName,
		Email:    input.Email,
		Message:  input.Message,
	}
	if err := s.repo.Update(ctx, msg); err != nil {
		return nil, err
	}
	return msg, nil
}

func (s *MessageService) Archive(ctx context.Context, id int64) error {
	return s.archive.Archive(ctx, id)
}

func (s *MessageService) Restore(ctx context.Context, id int64) error {
	return s.archive.Restore(ctx, id)
}

func (s *MessageService) ListArchived(ctx context.Context) ([]domain.ContactMessage, error) {
	return s.archive.ListArchived(ctx)
}

func (s *MessageService) GetArchived(ctx context.Context, id int64) (*domain.ContactMessage, error) {
	return s.archive.GetArchived(ctx, id)
}

func (s *MessageService) Counts(ctx context.Context) (domain.Counts, error) {
	return s.repo.Counts(ctx, time.Now().Add(-recentWindow))
}

func (s *MessageService) publish(ctx context.Context, eventType string, id int64, email string) {
	if s.producer == nil || s.eventsTopic == "" {
		return
	}
	event := kafka.DomainEvent{
		Type:       eventType,
		Entity:     "contact_message",
		EntityID:   id,
		Email:      email,
		OccurredAt: time.Now(),
	}
	if err := s.producer.Publish(ctx, s.eventsTopic, event.Entity, event); err != nil && s.log != nil {
		s.log.Warn("failed to publish event", "type", eventType, "id", id, "error", err)
	}
}

var _ MessageUseCase = (*MessageService)(nil)
