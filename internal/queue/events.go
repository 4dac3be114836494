package queue

import (
	"time"

	"github.com/google/uuid"
)

const (
	BookingConfirmedQueue = "booking.confirmed"
	BookingCancelledQueue = "booking.cancelled"
)

// BookingEvent is the payload published on booking lifecycle changes.
// Consumers only need identifiers and the sold seats; they look up the rest.
type BookingEvent struct {
	BookingID   uuid.UUID `json:"booking_id"`
	UserID      string    `json:"user_id"`
	ShowID      uuid.UUID `json:"show_id"`
	MovieID     uuid.UUID `json:"movie_id"`
	Seats       []string  `json:"seats"`
	TotalAmount string    `json:"total_amount"`
	OccurredAt  time.Time `json:"occurred_at"`
}
