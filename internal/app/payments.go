package app

import (
	"errors"
	"net/http"

	"github.com/shopspring/decimal"
	"github.com/showxpress/movie-ticket-booking/internal/domain"
)

type CreatePaymentIntentRequest struct {
	Amount decimal.Decimal `json:"amount"`
	ShowID string          `json:"show_id"`
	UserID string          `json:"user_id"`
}

type PaymentIntentResponse struct {
	ID           string `json:"id"`
	ClientSecret string `json:"client_secret"`
}

type VerifyPaymentRequest struct {
	PaymentRef string          `json:"payment_ref" validate:"required"`
	Amount     decimal.Decimal `json:"amount"`
}

func (app *Application) createPaymentIntentHandler(w http.ResponseWriter, r *http.Request) {
	var req CreatePaymentIntentRequest

	err := app.readJSON(w, r, &req)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	if !req.Amount.IsPositive() {
		app.errorResponse(w, r, http.StatusUnprocessableEntity, "amount must be greater than zero")
		return
	}

	metadata := map[string]string{}
	if req.ShowID != "" {
		metadata["show_id"] = req.ShowID
	}
	if req.UserID != "" {
		metadata["user_id"] = req.UserID
	}

	intent, err := app.payments.CreatePaymentIntent(r.Context(), req.Amount, metadata)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	resp := PaymentIntentResponse{
		ID:           intent.ID,
		ClientSecret: intent.ClientSecret,
	}

	err = app.writeJSON(w, http.StatusCreated, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *Application) verifyPaymentHandler(w http.ResponseWriter, r *http.Request) {
	var req VerifyPaymentRequest

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

	err = app.payments.VerifyPayment(r.Context(), req.PaymentRef, req.Amount)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrPaymentNotCompleted), errors.Is(err, domain.ErrPaymentAmountTooLow):
			app.badRequestResponse(w, r, err)
		default:
			app.serverErrorResponse(w, r, err)
		}

		return
	}

	err = app.writeJSON(w, http.StatusOK, map[string]bool{"verified": true}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}
