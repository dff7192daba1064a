package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/skytrip/flightcrm/internal/domain"
)

type AdminRepository interface {
	Create(ctx context.Context, admin *domain.AdminUser) error
	GetByUsername(ctx context.Context, username string) (*domain.AdminUser, error)
}

type PGAdminRepository struct {
	db *pgxpool.Pool
}

func NewAdminRepository(db *pgxpool.Pool) AdminRepository {
	return &PGAdminRepository{db: db}
}

func (r *PGAdminRepository) Create(ctx context.Context, admin *domain.AdminUser) error {
	err := r.db.QueryRow(ctx, `INSERT INTO admin_users (username, hashed_password) VALUES ($1, $2) RETURNING id`,
		admin.Username, admin.HashedPassword).Scan(&admin.ID)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return domain.ErrDuplicateUsername
		}
		return err
	}
	return nil
}

func (r *PGAdminRepository) GetByUsername(ctx context.Context, username string) (*domain.AdminUser, error) {
	row := r.db.QueryRow(ctx, `SELECT id, username, hashed_password FROM admin_users WHERE username=$1`, username)
	var a domain.AdminUser
	if err := row.Scan(&a.ID, &a.Username, &a.HashedPassword); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &a, nil
}

var _ AdminRepository = (*PGAdminRepository)(nil)
