package archive

import (
	"context"

	"github.com/skytrip/flightcrm/internal/domain"
)

// Store is the capability an entity repository must expose for archiving.
type Store[T domain.Archivable] interface {
	GetByID(ctx context.Context, id int64) (*T, error)
	ListHidden(ctx context.Context) ([]T, error)
	SetHidden(ctx context.Context, id int64, hidden bool) error
}

// Service implements soft delete and restore over any archivable entity.
// The state machine is two states: active and archived. Archiving an
// archived record or restoring an active one reports not found.
type Service[T domain.Archivable] struct {
	store Store[T]
}

func NewService[T domain.Archivable](store Store[T]) *Service[T] {
	return &Service[T]{store: store}
}

func (s *Service[T]) Archive(ctx context.Context, id int64) error {
	current, err := s.store.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if (*current).Archived() {
		return domain.ErrNotFound
	}
	return s.store.SetHidden(ctx, id, true)
}

func (s *Service[T]) Restore(ctx context.Context, id int64) error {
	current, err := s.store.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if !(*current).Archived() {
		return domain.ErrNotFound
	}
	return s.store.SetHidden(ctx, id, false)
}

func (s *Service[T]) ListArchived(ctx context.Context) ([]T, error) {
	return s.store.ListHidden(ctx)
}

func (s *Service[T]) GetArchived(ctx context.Context, id int64) (*T, error) {
	current, err := s.store.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !(*current).Archived() {
		return nil, domain.ErrNotFound
	}
	return current, nil
}
