package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/showxpress/movie-ticket-booking/internal/domain"
)

type PostgresShowRepository struct {
	db *pgxpool.Pool
}

func NewPostgresShowRepository(db *pgxpool.Pool) *PostgresShowRepository {
	return &PostgresShowRepository{
		db: db,
	}
}

const showWithMovieQuery = `
	SELECT
		s.id,
		s.movie_id,
		s.price,
		s.show_date,
		s.show_time,
		s.theater,
		s.total_seats,
		s.occupied_seats,
		s.created_at,
		s.updated_at,
		m.tmdb_id,
		m.title,
		m.overview,
		m.backdrop_path,
		m.poster_path,
		m.release_date,
		m.runtime,
		m.vote_average,
		m.vote_count,
		m.genres
	FROM shows s
	JOIN movies m ON s.movie_id = m.id
`

func (p *PostgresShowRepository) Create(ctx context.Context, show *domain.Show) error {
	query := `
		INSERT INTO shows (movie_id, price, show_date, show_time, theater, total_seats, occupied_seats)
		VALUES ($1, $2, $3, $4, $5, $6, '{}')
		RETURNING id, created_at, updated_at
	`

	return p.db.QueryRow(
		ctx,
		query,
		show.MovieID,
		show.Price,
		show.ShowDate,
		show.ShowTime,
		show.Theater,
		show.TotalSeats,
	).Scan(&show.ID, &show.CreatedAt, &show.UpdatedAt)
}

func (p *PostgresShowRepository) GetById(ctx context.Context, id uuid.UUID) (*domain.Show, error) {
	row := p.db.QueryRow(ctx, showWithMovieQuery+` WHERE s.id = $1`, id)

	show, err := scanShow(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrRecordNotFound
		}

		return nil, err
	}

	return show, nil
}

func (p *PostgresShowRepository) GetAll(ctx context.Context) ([]*domain.Show, error) {
	return p.queryShows(ctx, showWithMovieQuery+` ORDER BY s.show_date, s.show_time`)
}

func (p *PostgresShowRepository) GetAllByMovieId(ctx context.Context, movieID uuid.UUID) ([]*domain.Show, error) {
	return p.queryShows(
		ctx,
		showWithMovieQuery+` WHERE s.movie_id = $1 ORDER BY s.show_date, s.show_time`,
		movieID,
	)
}

func (p *PostgresShowRepository) queryShows(ctx context.Context, query string, args ...any) ([]*domain.Show, error) {
	rows, err := p.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	shows := make([]*domain.Show, 0)

	for rows.Next() {
		show, err := scanShow(rows)
		if err != nil {
			return nil, err
		}

		shows = append(shows, show)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return shows, nil
}

func scanShow(row pgx.Row) (*domain.Show, error) {
	var show domain.Show
	var movie domain.Movie

	err := row.Scan(
		&show.ID,
		&show.MovieID,
		&show.Price,
		&show.ShowDate,
		&show.ShowTime,
		&show.Theater,
		&show.TotalSeats,
		&show.OccupiedSeats,
		&show.CreatedAt,
		&show.UpdatedAt,
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
	)
	if err != nil {
		return nil, err
	}

	movie.ID = show.MovieID
	show.Movie = &movie

	return &show, nil
}

func (p *PostgresShowRepository) Update(ctx context.Context, id uuid.UUID, upd domain.ShowUpdate) (*domain.Show, error) {
	query := `
		UPDATE shows
		SET price      = COALESCE($2, price),
		    show_date  = COALESCE($3, show_date),
		    show_time  = COALESCE($4, show_time),
		    theater    = COALESCE($5, theater),
		    updated_at = now()
		WHERE id = $1
	`

	tag, err := p.db.Exec(ctx, query, id, upd.Price, upd.ShowDate, upd.ShowTime, upd.Theater)
	if err != nil {
		return nil, err
	}

	if tag.RowsAffected() == 0 {
		return nil, domain.ErrRecordNotFound
	}

	return p.GetById(ctx, id)
}

// Delete refuses to remove a show that still has confirmed bookings, so
// sold seats can never dangle without their show.
func (p *PostgresShowRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return runInTx(ctx, p.db, func(tx pgx.Tx) error {
		var confirmed int

		query := `SELECT count(*) FROM bookings WHERE show_id = $1 AND status = 'confirmed'`

		err := tx.QueryRow(ctx, query, id).Scan(&confirmed)
		if err != nil {
			return err
		}

		if confirmed > 0 {
			return domain.ErrShowHasBookings
		}

		tag, err := tx.Exec(ctx, `DELETE FROM shows WHERE id = $1`, id)
		if err != nil {
			return err
		}

		if tag.RowsAffected() == 0 {
			return domain.ErrRecordNotFound
		}

		return nil
	})
}

func (p *PostgresShowRepository) ReserveSeats(ctx context.Context, showID uuid.UUID, labels []string) error {
	return reserveSeats(ctx, p.db, showID, labels)
}

func (p *PostgresShowRepository) ReleaseSeats(ctx context.Context, showID uuid.UUID, labels []string) error {
	return releaseSeats(ctx, p.db, showID, labels)
}

// reserveSeats appends the labels to the show's occupied set with a single
// conditional UPDATE: the write only happens when none of the labels is
// present, so the conflict check and the mutation are one atomic statement
// and two racing overlapping reservations cannot both commit.
func reserveSeats(ctx context.Context, q querier, showID uuid.UUID, labels []string) error {
	query := `
		UPDATE shows
		SET occupied_seats = occupied_seats || $2, updated_at = now()
		WHERE id = $1 AND NOT (occupied_seats && $2)
	`

	tag, err := q.Exec(ctx, query, showID, labels)
	if err != nil {
		return err
	}

	if tag.RowsAffected() == 1 {
		return nil
	}

	// Nothing was written: the show is gone or some labels are taken.
	// Re-read the occupied set to report which.
	var occupied []string

	err = q.QueryRow(ctx, `SELECT occupied_seats FROM shows WHERE id = $1`, showID).Scan(&occupied)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.ErrRecordNotFound
		}

		return err
	}

	conflicts := intersect(labels, occupied)
	if len(conflicts) == 0 {
		// The blocking seats were released between the UPDATE and the
		// re-read; the whole operation is safe to retry.
		return domain.ErrEditConflict
	}

	return &domain.SeatConflictError{Seats: conflicts}
}

// releaseSeats drops the labels from the show's occupied set. Labels that
// are not present are ignored, so the operation is idempotent.
func releaseSeats(ctx context.Context, q querier, showID uuid.UUID, labels []string) error {
	query := `
		UPDATE shows
		SET occupied_seats = (
			SELECT COALESCE(array_agg(seat), '{}')
			FROM unnest(occupied_seats) AS seat
			WHERE seat != ALL($2)
		),
		updated_at = now()
		WHERE id = $1
	`

	tag, err := q.Exec(ctx, query, showID, labels)
	if err != nil {
		return err
	}

	if tag.RowsAffected() == 0 {
		return domain.ErrRecordNotFound
	}

	return nil
}

func intersect(requested, occupied []string) []string {
	taken := make(map[string]bool, len(occupied))
	for _, label := range occupied {
		taken[label] = true
	}

	var conflicts []string
	for _, label := range requested {
		if taken[label] {
			conflicts = append(conflicts, label)
		}
	}

	return conflicts
}
