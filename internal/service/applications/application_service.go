package applications

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

type ApplicationUseCase interface {
	Create(ctx context.Context, input ApplicationInput) (*domain.BookingApplication, error)
	Get(ctx context.Context, id int64) (*domain.BookingApplication, error)
	List(ctx context.Context) ([]domain.BookingApplication, error)
	Update(ctx context.Context, id int64, input ApplicationInput) (*domain.BookingApplication, error)
	Archive(ctx context.Context, id int64) error
	Restore(ctx context.Context, id int64) error
	ListArchived(ctx context.Context) ([]domain.BookingApplication, error)
	GetArchived(ctx context.Context, id int64) (*domain.BookingApplication, error)
	Counts(ctx context.Context) (domain.Counts, error)
}

type Producer interface {
	Publish(ctx context.Context, topic, key string, value interface{}) error
}

type ApplicationInput struct {
	PackageID          int64
	FullName           string
	Email              string
	NumberOfPassengers int
	PhoneNumber        string
	DateOfBirth        time.Time
	Gender             string
	Nationality        string
}

type ApplicationService struct {
	repo        repository.ApplicationRepository
	packages    repository.PackageRepository
	archive     *archive.Service[domain.BookingApplication]
	producer    Producer
	eventsTopic string
	log         logger.Logger
}

type ApplicationServiceOption func(*ApplicationService)

func WithProducer(producer Producer, topic string) ApplicationServiceOption {
	return func(s *ApplicationService) {
		s.producer = producer
		s.eventsTopic = topic
	}
}

func NewApplicationService(repo repository.ApplicationRepository, packages repository.PackageRepository, log logger.Logger, opts ...ApplicationServiceOption) *ApplicationService {
	service := &ApplicationService{
		repo:     repo,
		packages: packages,
		archive:  archive.NewService[domain.BookingApplication](repo),
		log:      log,
	}
	for _, opt := range opts {
		opt(service)
	}
	return service
}

func validateInput(input ApplicationInput) *domain.ValidationError {
	verr := domain.NewValidationError()
	if input.PackageID <= 0 {
		verr.Add("package", "package is required")
	}
	if strings.TrimSpace(input.FullName) == "" {
		verr.Add("full_name", "full name is required")
	}
	if strings.TrimSpace(input.Email) == "" || !strings.Contains(input.Email, "@") {
		verr.Add("email", "a valid email is required")
	}
	if input.NumberOfPassengers <= 0 {
		verr.Add("number_of_passengers", "number of passengers must be positive")
	}
	if strings.TrimSpace(input.PhoneNumber) == "" {
		verr.Add("phone_number", "phone number is required")
	}
	if input.DateOfBirth.IsZero() {
		verr.Add("date_of_birth", "date of birth is required")
	}
	if !domain.Gender(input.Gender).Valid() {
		verr.Add("gender", "gender must be m or f")
	}
	if strings.TrimSpace(input.Nationality) == "" {
		verr.Add("nationality", "nationality is required")
	}
	return verr
}

// Create is the public submission path. The referenced package must exist
// and be active.
func (s *ApplicationService) Create(ctx context.Context, input ApplicationInput) (*domain.BookingApplication, error) {
	verr := validateInput(input)
	if !verr.Empty() {
		return nil, verr
	}

	if _, err := s.packages.GetActive(ctx, input.PackageID); err != nil {
		if err == domain.ErrNotFound {
			verr.Add("package", "referenced package does not exist or is no longer available")
			return nil, verr
		}
		return nil, err
	}

	app := &domain.BookingApplication{
		PackageID:          input.PackageID,
		FullName:           input.FullName,
		Email:              input.Email,
		NumberOfPassengers: input.NumberOfPassengers,
		PhoneNumber:        input.PhoneNumber,
		DateOfBirth:        input.DateOfBirth,
		Gender:             domain.Gender(input.Gender),
		Nationality:        input.Nationality,
	}
	if err := s.repo.Create(ctx, app); err != nil {
		return nil, err
	}

	s.publish(ctx, kafka.EventApplicationSubmitted, app.ID, app.Email)
	return app, nil
}

func (s *ApplicationService) Get(ctx context.Context, id int64) (*domain.BookingApplication, error) {
	app, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if app.IsHidden {
		return nil, domain.ErrNotFound
	}
	return app, nil
}

func (s *ApplicationService) List(ctx context.Context) ([]domain.BookingApplication, error) {
	return s.repo.ListActive(ctx)
}

// Update rewrites the full record. The referenced package is re-checked so a
// booking cannot be repointed at a missing or archived package.
func (s *ApplicationService) Update(ctx context.Context, id int64, input ApplicationInput) (*domain.BookingApplication, error) {
	verr := validateInput(input)
	if !verr.Empty() {
		return nil, verr
	}

	if _, err := s.packages.GetActive(ctx, input.PackageID); err != nil {
		if err == domain.ErrNotFound {
			verr.Add("package", "referenced package does not exist or is no longer available")
			return nil, verr
		}
		return nil, err
	}

	app := &domain.BookingApplication{
		ID:                 id,
		PackageID:          input.PackageID,
		FullName:           input.FullName,
		Email:              input.Email,
		NumberOfPassengers: input.NumberOfPassengers,
		PhoneNumber:        input.PhoneNumber,
		DateOfBirth:        input.DateOfBirth,
		Gender:             domain.Gender(input.Gender),
		Nationality:        input.Nationality,
	}
	if err := s.repo.Update(ctx, app); err != nil {
		return nil, err
	}
	return app, nil
}

func (s *ApplicationService) Archive(ctx context.Context, id int64) error {
	return s.archive.Archive(ctx, id)
}

func (s *ApplicationService) Restore(ctx context.Context, id int64) error {
	return s.archive.Restore(ctx, id)
}

func (s *ApplicationService) ListArchived(ctx context.Context) ([]domain.BookingApplication, error) {
	return s.archive.ListArchived(ctx)
}

func (s *ApplicationService) GetArchived(ctx context.Context, id int64) (*domain.BookingApplication, error) {
	return s.archive.GetArchived(ctx, id)
}

func (s *ApplicationService) Counts(ctx context.Context) (domain.Counts, error) {
	return s.repo.Counts(ctx, time.Now().Add(-recentWindow))
}

// publish is best effort; a broker failure never fails the request.
func (s *ApplicationService) publish(ctx context.Context, eventType string, id int64, email string) {
	if s.producer == nil || s.eventsTopic == "" {
		return
	}
	event := kafka.DomainEvent{
		Type:       eventType,
		Entity:     "booking_application",
		EntityID:   id,
		Email:      email,
		OccurredAt: time.Now(),
	}
	if err := s.producer.Publish(ctx, s.eventsTopic, event.Entity, event); err != nil && s.log != nil {
		s.log.Warn("failed to publish event", "type", eventType, "id", id, "error", err)
	}
}

var _ ApplicationUseCase = (*ApplicationService)(nil)
