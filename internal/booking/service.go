// Package booking owns the booking lifecycle: creation with seat-conflict
// detection, cancellation with seat release, and the booking listings.
package booking

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/showxpress/movie-ticket-booking/internal/domain"
	"github.com/showxpress/movie-ticket-booking/internal/mailer"
	"github.com/showxpress/movie-ticket-booking/internal/queue"
)

type CreateBookingRequest struct {
	UserID     string
	ShowID     uuid.UUID
	Seats      []domain.Seat
	PaymentRef *string
}

type Service struct {
	logger   *slog.Logger
	shows    domain.ShowRepository
	bookings domain.BookingRepository
	users    domain.UserRepository
	payments domain.PaymentProvider
	events   queue.Publisher
	mailer   mailer.Mailer
}

func NewService(
	logger *slog.Logger,
	shows domain.ShowRepository,
	bookings domain.BookingRepository,
	users domain.UserRepository,
	payments domain.PaymentProvider,
	events queue.Publisher,
	mailer mailer.Mailer) *Service {

	return &Service{
		logger:   logger,
		shows:    shows,
		bookings: bookings,
		users:    users,
		payments: payments,
		events:   events,
		mailer:   mailer,
	}
}

// CreateBooking validates the seat selection against the show's layout,
// computes the total from the individual seat prices and persists the
// booking together with the seat reservation. The total is always derived
// server-side; a caller-supplied total is never read. A payment reference
// is only honored after the provider confirms the charge covers the total.
func (s *Service) CreateBooking(ctx context.Context, req CreateBookingRequest) (*domain.Booking, error) {
	if len(req.Seats) == 0 {
		return nil, fmt.Errorf("%w: at least one seat must be selected", domain.ErrInvalidSeats)
	}

	show, err := s.shows.GetById(ctx, req.ShowID)
	if err != nil {
		return nil, err
	}

	layout := show.Layout()
	seen := make(map[string]bool, len(req.Seats))
	total := decimal.Zero

	for _, seat := range req.Seats {
		label := seat.Label()

		if !layout.Contains(seat.Row, seat.Number) {
			return nil, fmt.Errorf("%w: seat %s is outside the seating layout", domain.ErrInvalidSeats, label)
		}

		if seat.Price.IsNegative() {
			return nil, fmt.Errorf("%w: seat %s has a negative price", domain.ErrInvalidSeats, label)
		}

		if seen[label] {
			return nil, fmt.Errorf("%w: seat %s is selected twice", domain.ErrInvalidSeats, label)
		}
		seen[label] = true

		total = total.Add(seat.Price)
	}

	paymentStatus := domain.PaymentStatusPending
	paymentRef := req.PaymentRef

	if paymentRef != nil && *paymentRef != "" {
		err = s.payments.VerifyPayment(ctx, *paymentRef, total)
		if err != nil {
			return nil, err
		}

		paymentStatus = domain.PaymentStatusPaid
	} else {
		paymentRef = nil
	}

	booking := &domain.Booking{
		ID:            uuid.New(),
		UserID:        req.UserID,
		ShowID:        show.ID,
		MovieID:       show.MovieID,
		Seats:         req.Seats,
		TotalAmount:   total,
		Status:        domain.BookingStatusConfirmed,
		PaymentRef:    paymentRef,
		PaymentStatus: paymentStatus,
	}

	err = s.bookings.Create(ctx, booking)
	if err != nil {
		return nil, err
	}

	show.OccupiedSeats = append(show.OccupiedSeats, booking.SeatLabels()...)
	booking.Show = show
	booking.Movie = show.Movie

	s.publishEvent(ctx, queue.BookingConfirmedQueue, booking)
	s.sendConfirmation(ctx, booking, show)

	return booking, nil
}

// CancelBooking flips the booking to cancelled and frees its seats.
// Payment is not refunded here; that is an external billing concern.
func (s *Service) CancelBooking(ctx context.Context, bookingID uuid.UUID) (*domain.Booking, error) {
	booking, err := s.bookings.CancelById(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	s.publishEvent(ctx, queue.BookingCancelledQueue, booking)

	return booking, nil
}

func (s *Service) ListForUser(ctx context.Context, userID string) ([]*domain.Booking, error) {
	return s.bookings.GetAllByUserId(ctx, userID)
}

func (s *Service) ListAll(ctx context.Context) ([]*domain.Booking, error) {
	return s.bookings.GetAll(ctx)
}

func (s *Service) publishEvent(ctx context.Context, queueName string, booking *domain.Booking) {
	event := queue.BookingEvent{
		BookingID:   booking.ID,
		UserID:      booking.UserID,
		ShowID:      booking.ShowID,
		MovieID:     booking.MovieID,
		Seats:       booking.SeatLabels(),
		TotalAmount: booking.TotalAmount.String(),
		OccurredAt:  time.Now().UTC(),
	}

	err := s.events.Publish(ctx, queueName, event)
	if err != nil {
		s.logger.Warn("failed to publish booking event", "queue", queueName, "booking_id", booking.ID, "error", err)
	}
}

func (s *Service) sendConfirmation(ctx context.Context, booking *domain.Booking, show *domain.Show) {
	user, err := s.users.GetByExternalId(ctx, booking.UserID)
	if err != nil {
		s.logger.Warn("skipping confirmation email, no user record", "user_id", booking.UserID, "error", err)
		return
	}

	movieTitle := ""
	if show.Movie != nil {
		movieTitle = show.Movie.Title
	}

	data := map[string]any{
		"Name":        user.Name,
		"MovieTitle":  movieTitle,
		"Theater":     show.Theater,
		"ShowDate":    show.ShowTime.Format("Jan 2, 2006 15:04"),
		"Seats":       booking.SeatLabels(),
		"TotalAmount": booking.TotalAmount.String(),
		"BookingID":   booking.ID.String(),
	}

	err = s.mailer.Send(user.Email, "booking_confirmation.tmpl", data)
	if err != nil {
		s.logger.Warn("failed to send confirmation email", "booking_id", booking.ID, "error", err)
	}
}
