package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/skytrip/flightcrm/internal/domain"
)

type PackageRepository interface {
	Create(ctx context.Context, pkg *domain.FlightPackage) error
	GetByID(ctx context.Context, id int64) (*domain.FlightPackage, error)
	GetActive(ctx context.Context, id int64) (*domain.FlightPackage, error)
	ListActive(ctx context.Context) ([]domain.FlightPackage, error)
	ListHidden(ctx context.Context) ([]domain.FlightPackage, error)
	Update(ctx context.Context, pkg *domain.FlightPackage) error
	SetHidden(ctx context.Context, id int64, hidden bool) error
	Search(ctx context.Context, criteria domain.PackageSearch) ([]domain.FlightPackage, error)
	Counts(ctx context.Context, recentSince time.Time) (domain.Counts, error)
}

const packageColumns = `id, name, destination, origin, price, airline, flight_mode, flight_class, departure_date, return_date, date_created, date_updated, is_hidden`

type PGPackageRepository struct {
	db *pgxpool.Pool
}

func NewPackageRepository(db *pgxpool.Pool) PackageRepository {
	return &PGPackageRepository{db: db}
}

func scanPackage(row pgx.Row) (*domain.FlightPackage, error) {
	var p domain.FlightPackage
	if err := row.Scan(&p.ID, &p.Name, &p.Destination, &p.Origin, &p.Price, &p.Airline, &p.FlightMode, &p.FlightClass, &p.DepartureDate, &p.ReturnDate, &p.DateCreated, &p.DateUpdated, &p.IsHidden); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &p, nil
}

func collectPackages(rows pgx.Rows) ([]domain.FlightPackage, error) {
	defer rows.Close()
	packages := make([]domain.FlightPackage, 0)
	for rows.Next() {
		var p domain.FlightPackage
		if err := rows.Scan(&p.ID, &p.Name, &p.Destination, &p.Origin, &p.Price, &p.Airline, &p.FlightMode, &p.FlightClass, &p.DepartureDate, &p.ReturnDate, &p.DateCreated, &p.DateUpdated, &p.IsHidden); err != nil {
			return nil, err
		}
		packages = append(packages, p)
	}
	return packages, rows.Err()
}

func (r *PGPackageRepository) Create(ctx context.Context, pkg *domain.FlightPackage) error {
	return r.db.QueryRow(ctx, `INSERT INTO flight_packages (name, destination, origin, price, airline, flight_mode, flight_class, departure_date, return_date)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id, date_created, date_updated, is_hidden`,
		pkg.Name, pkg.Destination, pkg.Origin, pkg.Price, pkg.Airline, pkg.FlightMode, pkg.FlightClass, pkg.DepartureDate, pkg.ReturnDate).
		Scan(&pkg.ID, &pkg.DateCreated, &pkg.DateUpdated, &pkg.IsHidden)
}

func (r *PGPackageRepository) GetByID(ctx context.Context, id int64) (*domain.FlightPackage, error) {
	row := r.db.QueryRow(ctx, `SELECT `+packageColumns+` FROM flight_packages WHERE id=$1`, id)
	return scanPackage(row)
}

func (r *PGPackageRepository) GetActive(ctx context.Context, id int64) (*domain.FlightPackage, error) {
	row := r.db.QueryRow(ctx, `SELECT `+packageColumns+` FROM flight_packages WHERE id=$1 AND is_hidden=FALSE`, id)
	return scanPackage(row)
}

func (r *PGPackageRepository) ListActive(ctx context.Context) ([]domain.FlightPackage, error) {
	rows, err := r.db.Query(ctx, `SELECT `+packageColumns+` FROM flight_packages WHERE is_hidden=FALSE ORDER BY id`)
	if err != nil {
		return nil, err
	}
	return collectPackages(rows)
}

func (r *PGPackageRepository) ListHidden(ctx context.Context) ([]domain.FlightPackage, error) {
	rows, err := r.db.Query(ctx, `SELECT `+packageColumns+` FROM flight_packages WHERE is_hidden=TRUE ORDER BY id`)
	if err != nil {
		return nil, err
	}
	return collectPackages(rows)
}

// Update replaces the mutable fields of an active package. Archived packages
// are not updatable; the caller sees ErrNotFound.
func (r *PGPackageRepository) Update(ctx context.Context, pkg *domain.FlightPackage) error {
	row := r.db.QueryRow(ctx, `UPDATE flight_packages
		SET name=$1, destination=$2, origin=$3, price=$4, airline=$5, flight_mode=$6, flight_class=$7, departure_date=$8, return_date=$9, date_updated=now()
		WHERE id=$10 AND is_hidden=FALSE
		RETURNING date_created, date_updated`,
		pkg.Name, pkg.Destination, pkg.Origin, pkg.Price, pkg.Airline, pkg.FlightMode, pkg.FlightClass, pkg.DepartureDate, pkg.ReturnDate, pkg.ID)
	if err := row.Scan(&pkg.DateCreated, &pkg.DateUpdated); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.ErrNotFound
		}
		return err
	}
	return nil
}

func (r *PGPackageRepository) SetHidden(ctx context.Context, id int64, hidden bool) error {
	res, err := r.db.Exec(ctx, `UPDATE flight_packages SET is_hidden=$1, date_updated=now() WHERE id=$2 AND is_hidden=$3`, hidden, id, !hidden)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// escapeLike neutralizes LIKE metacharacters so criteria match as literal
// substrings. Backslash is the default LIKE escape character in Postgres.
var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}

func (r *PGPackageRepository) Search(ctx context.Context, criteria domain.PackageSearch) ([]domain.FlightPackage, error) {
	conditions := []string{"is_hidden=FALSE"}
	args := []any{}

	add := func(cond string, arg any) {
		args = append(args, arg)
		conditions = append(conditions, fmt.Sprintf(cond, len(args)))
	}

	if criteria.Destination != "" {
		add(`destination ILIKE '%%' || $%d || '%%'`, escapeLike(criteria.Destination))
	}
	if criteria.Origin != "" {
		add(`origin ILIKE '%%' || $%d || '%%'`, escapeLike(criteria.Origin))
	}
	if criteria.Airline != "" {
		add(`airline ILIKE '%%' || $%d || '%%'`, escapeLike(criteria.Airline))
	}
	if criteria.FlightMode != "" {
		add(`flight_mode ILIKE '%%' || $%d || '%%'`, escapeLike(criteria.FlightMode))
	}
	if criteria.FlightClass != "" {
		add(`flight_class ILIKE '%%' || $%d || '%%'`, escapeLike(criteria.FlightClass))
	}
	if criteria.DepartureDate != nil {
		add(`departure_date = $%d`, *criteria.DepartureDate)
	}
	if criteria.ReturnDate != nil {
		add(`return_date = $%d`, *criteria.ReturnDate)
	}

	query := `SELECT ` + packageColumns + ` FROM flight_packages WHERE ` + strings.Join(conditions, " AND ") + ` ORDER BY id`
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	return collectPackages(rows)
}

func (r *PGPackageRepository) Counts(ctx context.Context, recentSince time.Time) (domain.Counts, error) {
	var c domain.Counts
	err := r.db.QueryRow(ctx, `SELECT
		COUNT(*) FILTER (WHERE NOT is_hidden),
		COUNT(*) FILTER (WHERE NOT is_hidden AND date_created >= $1),
		COUNT(*) FILTER (WHERE is_hidden)
		FROM flight_packages`, recentSince).
		Scan(&c.TotalActive, &c.Recent, &c.Archived)
	return c, err
}

var _ PackageRepository = (*PGPackageRepository)(nil)
