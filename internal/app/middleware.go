package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/showxpress/movie-ticket-booking/internal/domain"
)

type contextKey string

const adminContextKey = contextKey("admin")

func (app *Application) recoverPanic(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if err := recover(); err != nil {
				w.Header().Set("Connection", "close")

				app.serverErrorResponse(w, r, fmt.Errorf("%s", err))
			}
		}()

		next.ServeHTTP(w, r)
	})
}

// requireAdmin authenticates the request with a bearer token issued by the
// admin login endpoint and loads the admin record into the request context.
func (app *Application) requireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")

		token, ok := strings.CutPrefix(authHeader, "Bearer ")
		if !ok || token == "" {
			app.unauthorizedResponse(w, r)
			return
		}

		adminID, err := app.parseAdminToken(token)
		if err != nil {
			app.unauthorizedResponse(w, r)
			return
		}

		admin, err := app.adminRepo.GetById(r.Context(), adminID)
		if err != nil {
			switch {
			case errors.Is(err, domain.ErrRecordNotFound):
				app.unauthorizedResponse(w, r)
			default:
				app.serverErrorResponse(w, r, err)
			}

			return
		}

		ctx := context.WithValue(r.Context(), adminContextKey, admin)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (app *Application) parseAdminToken(token string) (int64, error) {
	claims := &jwt.RegisteredClaims{}

	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}

		return []byte(app.config.Admin.JWTSecret), nil
	})
	if err != nil {
		return 0, err
	}
	if !parsed.Valid {
		return 0, errors.New("invalid token")
	}

	return strconv.ParseInt(claims.Subject, 10, 64)
}

func (app *Application) adminFromContext(r *http.Request) *domain.Admin {
	admin, ok := r.Context().Value(adminContextKey).(*domain.Admin)
	if !ok {
		panic("missing admin in request context")
	}

	return admin
}
