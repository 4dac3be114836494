package app

import (
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/showxpress/movie-ticket-booking/internal/booking"
	"github.com/showxpress/movie-ticket-booking/internal/domain"
)

type SeatInput struct {
	Row    string          `json:"row" validate:"required,seat_row"`
	Number int             `json:"number" validate:"required,gte=1"`
	Price  decimal.Decimal `json:"price"`
}

type CreateBookingRequest struct {
	UserID     string      `json:"user_id" validate:"required"`
	ShowID     uuid.UUID   `json:"show_id" validate:"required"`
	Seats      []SeatInput `json:"seats" validate:"required,min=1,dive"`
	PaymentRef *string     `json:"payment_ref"`
}

type BookingResponse struct {
	ID            uuid.UUID        `json:"id"`
	UserID        string           `json:"user_id"`
	ShowID        uuid.UUID        `json:"show_id"`
	MovieID       uuid.UUID        `json:"movie_id"`
	Seats         []domain.Seat    `json:"seats"`
	TotalAmount   decimal.Decimal  `json:"total_amount"`
	Status        string           `json:"status"`
	PaymentRef    *string          `json:"payment_ref,omitempty"`
	PaymentStatus string           `json:"payment_status"`
	CreatedAt     time.Time        `json:"created_at"`
	Show          *ShowResponse    `json:"show,omitempty"`
	Movie         *MovieResponse   `json:"movie,omitempty"`
	User          *domain.UserInfo `json:"user,omitempty"`
}

type BookingsResponse struct {
	Bookings []BookingResponse `json:"bookings"`
}

func (app *Application) createBookingHandler(w http.ResponseWriter, r *http.Request) {
	var req CreateBookingRequest

	err := app.readJSON(w, r, &req)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	err = app.validator.Struct(req)
	if err != nil {
		app.failedValidationResponse(w, r, err)
		return
	}

	seats := make([]domain.Seat, 0, len(req.Seats))
	for _, seat := range req.Seats {
		seats = append(seats, domain.Seat{Row: seat.Row, Number: seat.Number, Price: seat.Price})
	}

	created, err := app.bookings.CreateBooking(r.Context(), booking.CreateBookingRequest{
		UserID:     req.UserID,
		ShowID:     req.ShowID,
		Seats:      seats,
		PaymentRef: req.PaymentRef,
	})
	if err != nil {
		var conflict *domain.SeatConflictError

		switch {
		case errors.Is(err, domain.ErrRecordNotFound):
			app.notFoundResponse(w, r)
		case errors.Is(err, domain.ErrInvalidSeats):
			app.errorResponse(w, r, http.StatusUnprocessableEntity, err.Error())
		case errors.As(err, &conflict):
			app.conflictResponse(w, r, conflict.Error())
		case errors.Is(err, domain.ErrEditConflict):
			app.editConflictResponse(w, r)
		case errors.Is(err, domain.ErrPaymentNotCompleted), errors.Is(err, domain.ErrPaymentAmountTooLow):
			app.badRequestResponse(w, r, err)
		default:
			app.serverErrorResponse(w, r, err)
		}

		return
	}

	err = app.writeJSON(w, http.StatusCreated, toBookingResponse(created), nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *Application) cancelBookingHandler(w http.ResponseWriter, r *http.Request) {
	bookingID, err := app.readUUIDParam(r, "bookingId")
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	cancelled, err := app.bookings.CancelBooking(r.Context(), bookingID)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrRecordNotFound):
			app.notFoundResponse(w, r)
		case errors.Is(err, domain.ErrAlreadyCancelled):
			app.badRequestResponse(w, r, err)
		default:
			app.serverErrorResponse(w, r, err)
		}

		return
	}

	err = app.writeJSON(w, http.StatusOK, toBookingResponse(cancelled), nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *Application) userBookingsHandler(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userId")

	bookings, err := app.bookings.ListForUser(r.Context(), userID)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	err = app.writeJSON(w, http.StatusOK, toBookingsResponse(bookings), nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *Application) listBookingsHandler(w http.ResponseWriter, r *http.Request) {
	bookings, err := app.bookings.ListAll(r.Context())
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	err = app.writeJSON(w, http.StatusOK, toBookingsResponse(bookings), nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func toBookingResponse(b *domain.Booking) BookingResponse {
	resp := BookingResponse{
		ID:            b.ID,
		UserID:        b.UserID,
		ShowID:        b.ShowID,
		MovieID:       b.MovieID,
		Seats:         b.Seats,
		TotalAmount:   b.TotalAmount,
		Status:        string(b.Status),
		PaymentRef:    b.PaymentRef,
		PaymentStatus: string(b.PaymentStatus),
		CreatedAt:     b.CreatedAt,
		User:          b.UserInfo,
	}

	if b.Show != nil {
		show := toShowResponse(b.Show)
		resp.Show = &show
	}

	if b.Movie != nil {
		movie := toMovieResponse(b.Movie)
		resp.Movie = &movie
	}

	return resp
}

func toBookingsResponse(bookings []*domain.Booking) BookingsResponse {
	resp := BookingsResponse{Bookings: make([]BookingResponse, 0, len(bookings))}
	for _, b := range bookings {
		resp.Bookings = append(resp.Bookings, toBookingResponse(b))
	}

	return resp
}
