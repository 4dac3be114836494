package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/showxpress/movie-ticket-booking/internal/domain"
)

type PostgresMovieRepository struct {
	db *pgxpool.Pool
}

func NewPostgresMovieRepository(db *pgxpool.Pool) *PostgresMovieRepository {
	return &PostgresMovieRepository{
		db: db,
	}
}

func (p *PostgresMovieRepository) Create(ctx context.Context, movie *domain.Movie) error {
	query := `
		INSERT INTO movies (
			tmdb_id, title, overview, backdrop_path, poster_path, release_date,
			runtime, vote_average, vote_count, genres, original_language, tagline, cast_members
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		RETURNING id, created_at
	`

	return p.db.QueryRow(
		ctx,
		query,
		movie.TMDBID,
		movie.Title,
		movie.Overview,
		movie.BackdropPath,
		movie.PosterPath,
		movie.ReleaseDate,
		movie.Runtime,
		movie.VoteAverage,
		movie.VoteCount,
		movie.Genres,
		movie.Language,
		movie.Tagline,
		movie.CastMembers,
	).Scan(&movie.ID, &movie.CreatedAt)
}

func (p *PostgresMovieRepository) GetById(ctx context.Context, id uuid.UUID) (*domain.Movie, error) {
	return p.getOne(ctx, `WHERE id = $1`, id)
}

func (p *PostgresMovieRepository) GetByTmdbId(ctx context.Context, tmdbID string) (*domain.Movie, error) {
	return p.getOne(ctx, `WHERE tmdb_id = $1`, tmdbID)
}

func (p *PostgresMovieRepository) getOne(ctx context.Context, where string, arg any) (*domain.Movie, error) {
	query := `
		SELECT id, tmdb_id, title, overview, backdrop_path, poster_path, release_date,
			runtime, vote_average, vote_count, genres, original_language, tagline, cast_members, created_at
		FROM movies ` + where

	var movie domain.Movie

	err := p.db.QueryRow(ctx, query, arg).Scan(
		&movie.ID,
		&movie.TMDBID,
		&movie.Title,
		&movie.Overview,
		&movie.BackdropPath,
		&movie.PosterPath,
		&movie.ReleaseDate,
		&movie.Runtime,
		&movie.VoteAverage,
		&movie.VoteCount,
		&movie.Genres,
		&movie.Language,
		&movie.Tagline,
		&movie.CastMembers,
		&movie.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrRecordNotFound
		}

		return nil, err
	}

	return &movie, nil
}
