package domain

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrRecordNotFound      = errors.New("record not found")
	ErrEditConflict        = errors.New("edit conflict")
	ErrAlreadyCancelled    = errors.New("booking is already cancelled")
	ErrShowHasBookings     = errors.New("show still has confirmed bookings")
	ErrInvalidSeats        = errors.New("invalid seat selection")
	ErrAdminAlreadyExists  = errors.New("admin already exists with this email")
	ErrInvalidCredentials  = errors.New("invalid email or password")
	ErrPaymentNotCompleted = errors.New("payment has not been completed")
	ErrPaymentAmountTooLow = errors.New("paid amount does not cover the booking total")
)

// SeatConflictError carries the exact labels that are already part of a
// show's occupied set, so the caller can re-render seat availability.
type SeatConflictError struct {
	Seats []string
}

func (e *SeatConflictError) Error() string {
	return fmt.Sprintf("seats already booked: %s", strings.Join(e.Seats, ", "))
}
