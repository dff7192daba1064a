package repository

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/skytrip/flightcrm/internal/domain"
)

type ApplicationRepository interface {
	Create(ctx context.Context, app *domain.BookingApplication) error
	GetByID(ctx context.Context, id int64) (*domain.BookingApplication, error)
	ListActive(ctx context.Context) ([]domain.BookingApplication, error)
	ListHidden(ctx context.Context) ([]domain.BookingApplication, error)
	Update(ctx context.Context, app *domain.BookingApplication) error
	SetHidden(ctx context.Context, id int64, hidden bool) error
	Counts(ctx context.Context, recentSince time.Time) (domain.Counts, error)
}

const applicationColumns = `id, package_id, full_name, email, number_of_passengers, phone_number, date_of_birth, gender, nationality, date_booked, is_hidden`

type PGApplicationRepository struct {
	db *pgxpool.Pool
}

func NewApplicationRepository(db *pgxpool.Pool) ApplicationRepository {
	return &PGApplicationRepository{db: db}
}

func scanApplication(row pgx.Row) (*domain.BookingApplication, error) {
	var a domain.BookingApplication
	if err := row.Scan(&a.ID, &a.PackageID, &a.FullName, &a.Email, &a.NumberOfPassengers, &a.PhoneNumber, &a.DateOfBirth, &a.Gender, &a.Nationality, &a.DateBooked, &a.IsHidden); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &a, nil
}

func collectApplications(rows pgx.Rows) ([]domain.BookingApplication, error) {
	defer rows.Close()
	apps := make([]domain.BookingApplication, 0)
	for rows.Next() {
		var a domain.BookingApplication
		if err := rows.Scan(&a.ID, &a.PackageID, &a.FullName, &a.Email, &a.NumberOfPassengers, &a.PhoneNumber, &a.DateOfBirth, &a.Gender, &a.Nationality, &a.DateBooked, &a.IsHidden); err != nil {
			return nil, err
		}
		apps = append(apps, a)
	}
	return apps, rows.Err()
}

func (r *PGApplicationRepository) Create(ctx context.Context, app *domain.BookingApplication) error {
	return r.db.QueryRow(ctx, `INSERT INTO booking_applications (package_id, full_name, email, number_of_passengers, phone_number, date_of_birth, gender, nationality)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, date_booked, is_hidden`,
		app.PackageID, app.FullName, app.Email, app.NumberOfPassengers, app.PhoneNumber, app.DateOfBirth, app.Gender, app.Nationality).
		Scan(&app.ID, &app.DateBooked, &app.IsHidden)
}

func (r *PGApplicationRepository) GetByID(ctx context.Context, id int64) (*domain.BookingApplication, error) {
	row := r.db.QueryRow(ctx, `SELECT `+applicationColumns+` FROM booking_applications WHERE id=$1`, id)
	return scanApplication(row)
}

func (r *PGApplicationRepository) ListActive(ctx context.Context) ([]domain.BookingApplication, error) {
	rows, err := r.db.Query(ctx, `SELECT `+applicationColumns+` FROM booking_applications WHERE is_hidden=FALSE ORDER BY id`)
	if err != nil {
		return nil, err
	}
	return collectApplications(rows)
}

func (r *PGApplicationRepository) ListHidden(ctx context.Context) ([]domain.BookingApplication, error) {
	rows, err := r.db.Query(ctx, `SELECT `+applicationColumns+` FROM booking_applications WHERE is_hidden=TRUE ORDER BY id`)
	if err != nil {
		return nil, err
	}
	return collectApplications(rows)
}

func (r *PGApplicationRepository) Update(ctx context.Context, app *domain.BookingApplication) error {
	row := r.db.QueryRow(ctx, `UPDATE booking_applications
		SET package_id=$1, full_name=$2, email=$3, number_of_passengers=$4, phone_number=$5, date_of_birth=$6, gender=$7, nationality=$8
		WHERE id=$9 AND is_hidden=FALSE
		RETURNING date_booked`,
		app.PackageID, app.FullName, app.Email, app.NumberOfPassengers, app.PhoneNumber, app.DateOfBirth, app.Gender, app.Nationality, app.ID)
	if err := row.Scan(&app.DateBooked); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.ErrNotFound
		}
		return err
	}
	return nil
}

func (r *PGApplicationRepository) SetHidden(ctx context.Context, id int64, hidden bool) error {
	res, err := r.db.Exec(ctx, `UPDATE booking_applications SET is_hidden=$1 WHERE id=$2 AND is_hidden=$3`, hidden, id, !hidden)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *PGApplicationRepository) Counts(ctx context.Context, recentSince time.Time) (domain.Counts, error) {
	var c domain.Counts
	err := r.db.QueryRow(ctx, `SELECT
		COUNT(*) FILTER (WHERE NOT is_hidden),
		COUNT(*) FILTER (WHERE NOT is_hidden AND date_booked >= $1),
		COUNT(*) FILTER (WHERE is_hidden)
		FROM booking_applications`, recentSince).
		Scan(&c.TotalActive, &c.Recent, &c.Archived)
	return c, err
}

var _ ApplicationRepository = (*PGApplicationRepository)(nil)
