package app

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/showxpress/movie-ticket-booking/internal/domain"
)

type RegisterAdminRequest struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,password"`
}

type LoginAdminRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type AdminResponse struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

type AdminTokenResponse struct {
	Token string        `json:"token"`
	Admin AdminResponse `json:"admin"`
}

func (app *Application) registerAdminHandler(w http.ResponseWriter, r *http.Request) {
	var req RegisterAdminRequest

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

	admin := &domain.Admin{
		Name:  req.Name,
		Email: req.Email,
	}

	err = admin.Password.Set(req.Password)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	err = app.adminRepo.Create(r.Context(), admin)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrAdminAlreadyExists):
			app.conflictResponse(w, r, "An admin with this email address already exists")
		default:
			app.serverErrorResponse(w, r, err)
		}

		return
	}

	token, err := app.issueAdminToken(admin)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	resp := AdminTokenResponse{Token: token, Admin: toAdminResponse(admin)}

	err = app.writeJSON(w, http.StatusCreated, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *Application) loginAdminHandler(w http.ResponseWriter, r *http.Request) {
	var req LoginAdminRequest

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

	admin, err := app.adminRepo.GetByEmail(r.Context(), req.Email)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrRecordNotFound):
			app.invalidCredentialsResponse(w, r)
		default:
			app.serverErrorResponse(w, r, err)
		}

		return
	}

	matches, err := admin.Password.Matches(req.Password)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}
	if !matches {
		app.invalidCredentialsResponse(w, r)
		return
	}

	token, err := app.issueAdminToken(admin)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	resp := AdminTokenResponse{Token: token, Admin: toAdminResponse(admin)}

	err = app.writeJSON(w, http.StatusOK, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *Application) adminProfileHandler(w http.ResponseWriter, r *http.Request) {
	admin := app.adminFromContext(r)

	err := app.writeJSON(w, http.StatusOK, toAdminResponse(admin), nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *Application) issueAdminToken(admin *domain.Admin) (string, error) {
	now := time.Now()

	claims := jwt.RegisteredClaims{
		Subject:   strconv.FormatInt(admin.ID, 10),
		Issuer:    "movie-ticket-booking-api",
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(app.config.Admin.TokenTTL)),
	}

	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(app.config.Admin.JWTSecret))
}

func toAdminResponse(admin *domain.Admin) AdminResponse {
	return AdminResponse{
		ID:    admin.ID,
		Name:  admin.Name,
		Email: admin.Email,
	}
}
