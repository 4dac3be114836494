package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const DefaultTheater = "PVR Cinemas"

// Show is one scheduled screening of a movie. OccupiedSeats is the set of
// seat labels already sold; it is mutated only through ReserveSeats and
// ReleaseSeats so the conflict check and the write stay a single step.
type Show struct {
	ID            uuid.UUID
	MovieID       uuid.UUID
	Price         decimal.Decimal
	ShowDate      time.Time
	ShowTime      time.Time
	Theater       string
	TotalSeats    int
	OccupiedSeats []string
	CreatedAt     time.Time
	UpdatedAt     time.Time

	// Movie is populated on reads for display purposes, never written through.
	Movie *Movie
}

func (s *Show) Layout() SeatLayout {
	return NewSeatLayout(s.TotalSeats)
}

// ShowUpdate holds the mutable show attributes; nil fields are left untouched.
type ShowUpdate struct {
	Price    *decimal.Decimal
	ShowDate *time.Time
	ShowTime *time.Time
	Theater  *string
}

type ShowRepository interface {
	Create(ctx context.Context, show *Show) error
	GetById(ctx context.Context, id uuid.UUID) (*Show, error)
	GetAll(ctx context.Context) ([]*Show, error)
	GetAllByMovieId(ctx context.Context, movieID uuid.UUID) ([]*Show, error)
	Update(ctx context.Context, id uuid.UUID, upd ShowUpdate) (*Show, error)

	// Delete removes a show. It fails with ErrShowHasBookings while any
	// confirmed booking still references the show.
	Delete(ctx context.Context, id uuid.UUID) error

	// ReserveSeats adds the given labels to the show's occupied set only if
	// none of them is already present. On overlap it fails with a
	// SeatConflictError naming the labels that are already taken; two
	// concurrent overlapping reservations can never both succeed.
	ReserveSeats(ctx context.Context, showID uuid.UUID, labels []string) error

	// ReleaseSeats removes the given labels from the occupied set. Labels
	// that are not present are ignored.
	ReleaseSeats(ctx context.Context, showID uuid.UUID, labels []string) error
}
