package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/showxpress/movie-ticket-booking/internal/domain"
)

type PostgresAdminRepository struct {
	db *pgxpool.Pool
}

func NewPostgresAdminRepository(db *pgxpool.Pool) *PostgresAdminRepository {
	return &PostgresAdminRepository{
		db: db,
	}
}

func (p *PostgresAdminRepository) Create(ctx context.Context, admin *domain.Admin) error {
	query := `
		INSERT INTO admins (name, email, password_hash)
		VALUES ($1, $2, $3)
		RETURNING id, created_at
	`

	err := p.db.QueryRow(
		ctx,
		query,
		admin.Name,
		admin.Email,
		admin.Password.Hash,
	).Scan(&admin.ID, &admin.CreatedAt)

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
		return domain.ErrAdminAlreadyExists
	}

	return err
}

func (p *PostgresAdminRepository) GetByEmail(ctx context.Context, email string) (*domain.Admin, error) {
	return p.getOne(ctx, `WHERE email = $1`, email)
}

func (p *PostgresAdminRepository) GetById(ctx context.Context, id int64) (*domain.Admin, error) {
	return p.getOne(ctx, `WHERE id = $1`, id)
}

func (p *PostgresAdminRepository) getOne(ctx context.Context, where string, arg any) (*domain.Admin, error) {
	query := `SELECT id, name, email, password_hash, created_at FROM admins ` + where

	var admin domain.Admin

	err := p.db.QueryRow(ctx, query, arg).Scan(
		&admin.ID,
		&admin.Name,
		&admin.Email,
		&admin.Password.Hash,
		&admin.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrRecordNotFound
		}

		return nil, err
	}

	return &admin, nil
}
