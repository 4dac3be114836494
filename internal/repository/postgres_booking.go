package repository

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
	"github.com/showxpress/movie-ticket-booking/internal/domain"
)

type PostgresBookingRepository struct {
	db *pgxpool.Pool
}

func NewPostgresBookingRepository(db *pgxpool.Pool) *PostgresBookingRepository {
	return &PostgresBookingRepository{
		db: db,
	}
}

// Create reserves the booking's seats and inserts the booking row in one
// transaction. A conflict or a missing show rolls everything back, so a
// persisted booking always has its seats in the show's occupied set.
func (p *PostgresBookingRepository) Create(ctx context.Context, booking *domain.Booking) error {
	return runInTx(ctx, p.db, func(tx pgx.Tx) error {
		err := reserveSeats(ctx, tx, booking.ShowID, booking.SeatLabels())
		if err != nil {
			return err
		}

		seats, err := json.Marshal(booking.Seats)
		if err != nil {
			return err
		}

		query := `
			INSERT INTO bookings (id, user_id, show_id, movie_id, seats, total_amount, status, payment_ref, payment_status)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
			RETURNING created_at, updated_at
		`

		return tx.QueryRow(
			ctx,
			query,
			booking.ID,
			booking.UserID,
			booking.ShowID,
			booking.MovieID,
			seats,
			booking.TotalAmount,
			booking.Status,
			booking.PaymentRef,
			booking.PaymentStatus,
		).Scan(&booking.CreatedAt, &booking.UpdatedAt)
	})
}

// CancelById flips a confirmed booking to cancelled and releases its seats
// in the same transaction. The status flip is a conditional UPDATE, so a
// second cancellation observes zero affected rows and reports
// ErrAlreadyCancelled without touching the occupied set.
func (p *PostgresBookingRepository) CancelById(ctx context.Context, id uuid.UUID) (*domain.Booking, error) {
	var booking *domain.Booking

	err := runInTx(ctx, p.db, func(tx pgx.Tx) error {
		query := `
			UPDATE bookings
			SET status = 'cancelled', updated_at = now()
			WHERE id = $1 AND status = 'confirmed'
			RETURNING id, user_id, show_id, movie_id, seats, total_amount, status, payment_ref, payment_status, created_at, updated_at
		`

		b, err := scanBookingRow(tx.QueryRow(ctx, query, id))
		if err != nil {
			if !errors.Is(err, pgx.ErrNoRows) {
				return err
			}

			// No confirmed booking was updated: either the booking does
			// not exist or it was cancelled before.
			var status domain.BookingStatus

			err = tx.QueryRow(ctx, `SELECT status FROM bookings WHERE id = $1`, id).Scan(&status)
			if errors.Is(err, pgx.ErrNoRows) {
				return domain.ErrRecordNotFound
			}
			if err != nil {
				return err
			}

			return domain.ErrAlreadyCancelled
		}

		err = releaseSeats(ctx, tx, b.ShowID, b.SeatLabels())
		if err != nil && !errors.Is(err, domain.ErrRecordNotFound) {
			// A deleted show has no seats left to free.
			return err
		}

		booking = b

		return nil
	})
	if err != nil {
		return nil, err
	}

	return booking, nil
}

func (p *PostgresBookingRepository) GetById(ctx context.Context, id uuid.UUID) (*domain.Booking, error) {
	query := `
		SELECT id, user_id, show_id, movie_id, seats, total_amount, status, payment_ref, payment_status, created_at, updated_at
		FROM bookings
		WHERE id = $1
	`

	booking, err := scanBookingRow(p.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrRecordNotFound
		}

		return nil, err
	}

	return booking, nil
}

func scanBookingRow(row pgx.Row) (*domain.Booking, error) {
	var booking domain.Booking
	var seats []byte

	err := row.Scan(
		&booking.ID,
		&booking.UserID,
		&booking.ShowID,
		&booking.MovieID,
		&seats,
		&booking.TotalAmount,
		&booking.Status,
		&booking.PaymentRef,
		&booking.PaymentStatus,
		&booking.CreatedAt,
		&booking.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	err = json.Unmarshal(seats, &booking.Seats)
	if err != nil {
		return nil, err
	}

	return &booking, nil
}

const bookingListQuery = `
	SELECT
		b.id,
		b.user_id,
		b.show_id,
		b.movie_id,
		b.seats,
		b.total_amount,
		b.status,
		b.payment_ref,
		b.payment_status,
		b.created_at,
		b.updated_at,
		s.price,
		s.show_date,
		s.show_time,
		s.theater,
		m.title,
		m.poster_path,
		m.backdrop_path,
		m.runtime
	FROM bookings b
	LEFT JOIN shows s ON b.show_id = s.id
	LEFT JOIN movies m ON b.movie_id = m.id
`

func (p *PostgresBookingRepository) GetAllByUserId(ctx context.Context, userID string) ([]*domain.Booking, error) {
	query := bookingListQuery + ` WHERE b.user_id = $1 ORDER BY b.created_at DESC`

	rows, err := p.db.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectBookings(rows, false)
}

// GetAll is the administrative listing: newest first, with user display
// info joined best-effort by the user's external id. Bookings without a
// matching user record keep a nil UserInfo.
func (p *PostgresBookingRepository) GetAll(ctx context.Context) ([]*domain.Booking, error) {
	query := `
		SELECT
			b.id,
			b.user_id,
			b.show_id,
			b.movie_id,
			b.seats,
			b.total_amount,
			b.status,
			b.payment_ref,
			b.payment_status,
			b.created_at,
			b.updated_at,
			s.price,
			s.show_date,
			s.show_time,
			s.theater,
			m.title,
			m.poster_path,
			m.backdrop_path,
			m.runtime,
			u.name,
			u.email,
			u.image
		FROM bookings b
		LEFT JOIN shows s ON b.show_id = s.id
		LEFT JOIN movies m ON b.movie_id = m.id
		LEFT JOIN users u ON b.user_id = u.external_id
		ORDER BY b.created_at DESC
	`

	rows, err := p.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectBookings(rows, true)
}

func collectBookings(rows pgx.Rows, withUserInfo bool) ([]*domain.Booking, error) {
	bookings := make([]*domain.Booking, 0)

	for rows.Next() {
		var booking domain.Booking
		var seats []byte

		var showPrice *decimal.Decimal
		var showDate, showTime *time.Time
		var theater *string

		var title, posterPath, backdropPath *string
		var runtime *int

		var userName, userEmail, userImage *string

		dest := []any{
			&booking.ID,
			&booking.UserID,
			&booking.ShowID,
			&booking.MovieID,
			&seats,
			&booking.TotalAmount,
			&booking.Status,
			&booking.PaymentRef,
			&booking.PaymentStatus,
			&booking.CreatedAt,
			&booking.UpdatedAt,
			&showPrice,
			&showDate,
			&showTime,
			&theater,
			&title,
			&posterPath,
			&backdropPath,
			&runtime,
		}

		if withUserInfo {
			dest = append(dest, &userName, &userEmail, &userImage)
		}

		err := rows.Scan(dest...)
		if err != nil {
			return nil, err
		}

		err = json.Unmarshal(seats, &booking.Seats)
		if err != nil {
			return nil, err
		}

		if showDate != nil {
			booking.Show = &domain.Show{
				ID:       booking.ShowID,
				MovieID:  booking.MovieID,
				Price:    *showPrice,
				ShowDate: *showDate,
				ShowTime: *showTime,
				Theater:  *theater,
			}
		}

		if title != nil {
			booking.Movie = &domain.Movie{
				ID:           booking.MovieID,
				Title:        *title,
				PosterPath:   *posterPath,
				BackdropPath: *backdropPath,
				Runtime:      *runtime,
			}
		}

		if withUserInfo && userName != nil {
			booking.UserInfo = &domain.UserInfo{
				Name:  *userName,
				Email: *userEmail,
				Image: *userImage,
			}
		}

		bookings = append(bookings, &booking)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return bookings, nil
}
