package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type BookingStatus string

const (
	BookingStatusConfirmed BookingStatus = "confirmed"
	BookingStatusCancelled BookingStatus = "cancelled"
)

type PaymentStatus string

const (
	PaymentStatusPending PaymentStatus = "pending"
	PaymentStatusPaid    PaymentStatus = "paid"
	PaymentStatusFailed  PaymentStatus = "failed"
)

// Booking is one customer's reservation of seats on a show. The only status
// transition is confirmed -> cancelled; bookings are never deleted.
type Booking struct {
	ID            uuid.UUID
	UserID        string
	ShowID        uuid.UUID
	MovieID       uuid.UUID
	Seats         []Seat
	TotalAmount   decimal.Decimal
	Status        BookingStatus
	PaymentRef    *string
	PaymentStatus PaymentStatus
	CreatedAt     time.Time
	UpdatedAt     time.Time

	// Show and Movie are populated on reads for display purposes.
	Show  *Show
	Movie *Movie

	// UserInfo is the best-effort join against the user cache on admin
	// listings; nil when no user record matches UserID.
	UserInfo *UserInfo
}

type UserInfo struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Image string `json:"image"`
}

// SeatLabels returns the labels of all seats on the booking, in selection order.
func (b *Booking) SeatLabels() []string {
	labels := make([]string, len(b.Seats))
	for i, seat := range b.Seats {
		labels[i] = seat.Label()
	}

	return labels
}

type BookingRepository interface {
	// Create persists the booking and reserves its seats on the show as one
	// atomic unit: either both happen or neither does. Fails with a
	// SeatConflictError when any seat is already occupied, or with
	// ErrRecordNotFound when the show does not exist.
	Create(ctx context.Context, booking *Booking) error

	GetById(ctx context.Context, id uuid.UUID) (*Booking, error)

	// CancelById flips the booking to cancelled and releases its seats on
	// the show in the same transaction. Fails with ErrAlreadyCancelled when
	// the booking was cancelled before, leaving the occupied set untouched.
	CancelById(ctx context.Context, id uuid.UUID) (*Booking, error)

	GetAllByUserId(ctx context.Context, userID string) ([]*Booking, error)
	GetAll(ctx context.Context) ([]*Booking, error)
}
