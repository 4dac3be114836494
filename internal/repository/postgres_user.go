package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/showxpress/movie-ticket-booking/internal/domain"
)

type PostgresUserRepository struct {
	db *pgxpool.Pool
}

func NewPostgresUserRepository(db *pgxpool.Pool) *PostgresUserRepository {
	return &PostgresUserRepository{
		db: db,
	}
}

// Upsert creates the profile cache row for the external user id or
// refreshes it with the latest profile fields from the identity provider.
func (p *PostgresUserRepository) Upsert(ctx context.Context, user *domain.User) error {
	query := `
		INSERT INTO users (external_id, name, email, image)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (external_id) DO UPDATE
		SET name = EXCLUDED.name, email = EXCLUDED.email, image = EXCLUDED.image, updated_at = now()
		RETURNING id, role, created_at, updated_at
	`

	return p.db.QueryRow(
		ctx,
		query,
		user.ExternalID,
		user.Name,
		user.Email,
		user.Image,
	).Scan(&user.ID, &user.Role, &user.CreatedAt, &user.UpdatedAt)
}

func (p *PostgresUserRepository) GetByExternalId(ctx context.Context, externalID string) (*domain.User, error) {
	query := `
		SELECT id, external_id, name, email, image, role, created_at, updated_at
		FROM users
		WHERE external_id = $1
	`

	var user domain.User

	err := p.db.QueryRow(ctx, query, externalID).Scan(
		&user.ID,
		&user.ExternalID,
		&user.Name,
		&user.Email,
		&user.Image,
		&user.Role,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrRecordNotFound
		}

		return nil, err
	}

	return &user, nil
}

func (p *PostgresUserRepository) GetAll(ctx context.Context) ([]*domain.User, error) {
	query := `
		SELECT id, external_id, name, email, image, role, created_at, updated_at
		FROM users
		ORDER BY created_at DESC
	`

	rows, err := p.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	users := make([]*domain.User, 0)

	for rows.Next() {
		var user domain.User

		err = rows.Scan(
			&user.ID,
			&user.ExternalID,
			&user.Name,
			&user.Email,
			&user.Image,
			&user.Role,
			&user.CreatedAt,
			&user.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}

		users = append(users, &user)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return users, nil
}
