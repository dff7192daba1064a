package repository

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/skytrip/flightcrm/internal/domain"
)

type MessageRepository interface {
	Create(ctx context.Context, msg *domain.ContactMessage) error
	GetByID(ctx context.Context, id int64) (*domain.ContactMessage, error)
	ListActive(ctx context.Context) ([]domain.ContactMessage, error)
	ListHidden(ctx context.Context) ([]domain.ContactMessage, error)
	Update(ctx context.Context, msg *domain.ContactMessage) error
	SetHidden(ctx context.Context, id int64, hidden bool) error
	Counts(ctx context.Context, recentSince time.Time) (domain.Counts, error)
}

const messageColumns = `id, full_name, email, message, date_sent, is_hidden`

type PGMessageRepository struct {
	db *pgxpool.Pool
}

func NewMessageRepository(db *pgxpool.Pool) MessageRepository {
	return &PGMessageRepository{db: db}
}

func scanMessage(row pgx.Row) (*domain.ContactMessage, error) {
	var m domain.ContactMessage
	if err := row.Scan(&m.ID, &m.FullName, &m.Email, &m.Message, &m.DateSent, &m.IsHidden); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &m, nil
}

func collectMessages(rows pgx.Rows) ([]domain.ContactMessage, error) {
	defer rows.Close()
	messages := make([]domain.ContactMessage, 0)
	for rows.Next() {
		var m domain.ContactMessage
		if err := rows.Scan(&m.ID, &m.FullName, &m.Email, &m.Message, &m.DateSent, &m.IsHidden); err != nil {
			return nil, err
		}
		messages = append(messages, m)
	}
	return messages, rows.Err()
}

func (r *PGMessageRepository) Create(ctx context.Context, msg *domain.ContactMessage) error {
	return r.db.QueryRow(ctx, `INSERT INTO contact_messages (full_name, email, message)
		VALUES ($1, $2, $3)
		RETURNING id, date_sent, is_hidden`,
		msg.FullName, msg.Email, msg.Message).
		Scan(&msg.ID, &msg.DateSent, &msg.IsHidden)
}

func (r *PGMessageRepository) GetByID(ctx context.Context, id int64) (*domain.ContactMessage, error) {
	row := r.db.QueryRow(ctx, `SELECT `+messageColumns+` FROM contact_messages WHERE id=$1`, id)
	return scanMessage(row)
}

func (r *PGMessageRepository) ListActive(ctx context.Context) ([]domain.ContactMessage, error) {
	rows, err := r.db.Query(ctx, `SELECT `+messageColumns+` FROM contact_messages WHERE is_hidden=FALSE ORDER BY id`)
	if err != nil {
		return nil, err
	}
	return collectMessages(rows)
}

func (r *PGMessageRepository) ListHidden(ctx context.Context) ([]domain.ContactMessage, error) {
	rows, err := r.db.Query(ctx, `SELECT `+messageColumns+` FROM contact_messages WHERE is_hidden=TRUE ORDER BY id`)
	if err != nil {
		return nil, err
	}
	return collectMessages(rows)
}

func (r *PGMessageRepository) Update(ctx context.Context, msg *domain.ContactMessage) error {
	row := r.db.QueryRow(ctx, `UPDATE contact_messages
		SET full_name=$1, email=$2, message=$3
		WHERE id=$4 AND is_hidden=FALSE
		RETURNING date_sent`,
		msg.FullName, msg.Email, msg.Message, msg.ID)
	if err := row.Scan(&msg.DateSent); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.ErrNotFound
		}
		return err
	}
	return nil
}

func (r *PGMessageRepository) SetHidden(ctx context.Context, id int64, hidden bool) error {
	res, err := r.db.Exec(ctx, `UPDATE contact_messages SET is_hidden=$1 WHERE id=$2 AND is_hidden=$3`, hidden, id, !hidden)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *PGMessageRepository) Counts(ctx context.Context, recentSince time.Time) (domain.Counts, error) {
	var c domain.Counts
	err := r.db.QueryRow(ctx, `SELECT
		COUNT(*) FILTER (WHERE NOT is_hidden),
		COUNT(*) FILTER (WHERE NOT is_hidden AND date_sent >= $1),
		COUNT(*) FILTER (WHERE is_hidden)
		FROM contact_messages`, recentSince).
		Scan(&c.TotalActive, &c.Recent, &c.Archived)
	return c, err
}

var _ MessageRepository = (*PGMessageRepository)(nil)
