package packages

import (
	"context"
	"strings"
	"time"

	"github.com/skytrip/flightcrm/internal/domain"
	"github.com/skytrip/flightcrm/internal/logger"
	"github.com/skytrip/flightcrm/internal/repository"
	"github.com/skytrip/flightcrm/internal/service/archive"
)

const recentWindow = 7 * 24 * time.Hour

type PackageUseCase interface {
	Create(ctx context.Context, input PackageInput) (*domain.FlightPackage, error)
	Get(ctx context.Context, id int64) (*domain.FlightPackage, error)
	List(ctx context.Context) ([]domain.FlightPackage, error)
	Update(ctx context.Context, id int64, input PackageInput) (*domain.FlightPackage, error)
	Archive(ctx context.Context, id int64) error
	Restore(ctx context.Context, id int64) error
	ListArchived(ctx context.Context) ([]domain.FlightPackage, error)
	GetArchived(ctx context.Context, id int64) (*domain.FlightPackage, error)
	Search(ctx context.Context, criteria domain.PackageSearch) ([]domain.FlightPackage, error)
	Counts(ctx context.Context) (domain.Counts, error)
}

// Cache holds the public listing between mutations.
type Cache interface {
	GetActivePackages(ctx context.Context) ([]domain.FlightPackage, error)
	SetActivePackages(ctx context.Context, packages []domain.FlightPackage) error
	InvalidatePackages(ctx context.Context) error
}

type PackageInput struct {
	Name          string
	Destination   string
	Origin        string
	Price         float64
	Airline       string
	FlightMode    string
	FlightClass   string
	DepartureDate time.Time
	ReturnDate    *time.Time
}

type PackageService struct {
	repo    repository.PackageRepository
	cache   Cache
	archive *archive.Service[domain.FlightPackage]
	log     logger.Logger
}

func NewPackageService(repo repository.PackageRepository, cache Cache, log logger.Logger) *PackageService {
	return &PackageService{
		repo:    repo,
		cache:   cache,
		archive: archive.NewService[domain.FlightPackage](repo),
		log:     log,
	}
}

func validateInput(input PackageInput) error {
	verr := domain.NewValidationError()
	if strings.TrimSpace(input.Name) == "" {
		verr.Add("name", "name is required")
	}
	if strings.TrimSpace(input.Destination) == "" {
		verr.Add("destination", "destination is required")
	}
	if strings.TrimSpace(input.Origin) == "" {
		verr.Add("origin", "origin is required")
	}
	if strings.TrimSpace(input.Airline) == "" {
		verr.Add("airline", "airline is required")
	}
	if input.Price < 0 {
		verr.Add("price", "price must not be negative")
	}
	if !domain.FlightMode(input.FlightMode).Valid() {
		verr.Add("flight_mode", "flight_mode must be one of one_way, round_trip, multi_city")
	}
	if !domain.FlightClass(input.FlightClass).Valid() {
		verr.Add("flight_class", "flight_class must be one of economy, economy_plus, business, first_class")
	}
	if input.DepartureDate.IsZero() {
		verr.Add("departure_date", "departure_date is required")
	}
	if input.ReturnDate != nil && input.ReturnDate.Before(input.DepartureDate) {
		verr.Add("return_date", "return date cannot be earlier than departure date")
	}
	if !verr.Empty() {
		return verr
	}
	return nil
}

func (s *PackageService) Create(ctx context.Context, input PackageInput) (*domain.FlightPackage, error) {
	if err := validateInput(input); err != nil {
		return nil, err
	}

	pkg := &domain.FlightPackage{
		Name:          input.Name,
		Destination:   input.Destination,
		Origin:        input.Origin,
		Price:         input.Price,
		Airline:       input.Airline,
		FlightMode:    domain.FlightMode(input.FlightMode),
		FlightClass:   domain.FlightClass(input.FlightClass),
		DepartureDate: input.DepartureDate,
		ReturnDate:    input.ReturnDate,
	}
	if err := s.repo.Create(ctx, pkg); err != nil {
		return nil, err
	}
	s.invalidate(ctx)
	return pkg, nil
}

// Get is the public retrieval path, restricted to active packages.
func (s *PackageService) Get(ctx context.Context, id int64) (*domain.FlightPackage, error) {
	return s.repo.GetActive(ctx, id)
}

func (s *PackageService) List(ctx context.Context) ([]domain.FlightPackage, error) {
	if s.cache != nil {
		if cached, err := s.cache.GetActivePackages(ctx); err == nil && cached != nil {
			return cached, nil
		}
	}

	packages, err := s.repo.ListActive(ctx)
	if err != nil {
		return nil, err
	}
	if s.cache != nil {
		_ = s.cache.SetActivePackages(ctx, packages)
	}
	return packages, nil
}

func (s *PackageService) Update(ctx context.Context, id int64, input PackageInput) (*domain.FlightPackage, error) {
	if err := validateInput(input); err != nil {
		return nil, err
	}

	pkg := &domain.FlightPackage{
		ID:            id,
		Name:          input.Name,
		Destination:   input.Destination,
		Origin:        input.Origin,
		Price:         input.Price,
		Airline:       input.Airline,
		FlightMode:    domain.FlightMode(input.FlightMode),
		FlightClass:   domain.FlightClass(input.FlightClass),
		DepartureDate: input.DepartureDate,
		ReturnDate:    input.ReturnDate,
	}
	if err := s.repo.Update(ctx, pkg); err != nil {
		return nil, err
	}
	s.invalidate(ctx)
	return pkg, nil
}

func (s *PackageService) Archive(ctx context.Context, id int64) error {
	if err := s.archive.Archive(ctx, id); err != nil {
		return err
	}
	s.invalidate(ctx)
	return nil
}

func (s *PackageService) Restore(ctx context.Context, id int64) error {
	if err := s.archive.Restore(ctx, id); err != nil {
		return err
	}
	s.invalidate(ctx)
	return nil
}

func (s *PackageService) ListArchived(ctx context.Context) ([]domain.FlightPackage, error) {
	return s.archive.ListArchived(ctx)
}

func (s *PackageService) GetArchived(ctx context.Context, id int64) (*domain.FlightPackage, error) {
	return s.archive.GetArchived(ctx, id)
}

func (s *PackageService) Search(ctx context.Context, criteria domain.PackageSearch) ([]domain.FlightPackage, error) {
	if criteria.Empty() {
		verr := domain.NewValidationError()
		verr.Add("query", "at least one search criterion is required")
		return nil, verr
	}
	return s.repo.Search(ctx, criteria)
}

func (s *PackageService) Counts(ctx context.Context) (domain.Counts, error) {
	return s.repo.Counts(ctx, time.Now().Add(-recentWindow))
}

func (s *PackageService) invalidate(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.InvalidatePackages(ctx); err != nil && s.log != nil {
		s.log.Warn("failed to invalidate package cache", "error", err)
	}
}

var _ PackageUseCase = (*PackageService)(nil)
