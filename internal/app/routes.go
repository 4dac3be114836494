package app

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/riandyrn/otelchi"
)

func (app *Application) Routes() http.Handler {
	r := chi.NewRouter()

	r.NotFound(app.notFoundResponse)

	r.Use(middleware.Logger)
	r.Use(middleware.RequestID)
	r.Use(otelchi.Middleware("movie-ticket-booking-api", otelchi.WithChiRoutes(r)))
	r.Use(app.recoverPanic)

	r.Get("/health", app.healthcheckHandler)

	r.Route("/api/user", func(r chi.Router) {
		r.Post("/create", app.upsertUserHandler)
		r.Get("/{externalId}", app.getUserHandler)
	})

	r.Route("/api/show", func(r chi.Router) {
		r.Get("/now-playing", app.nowPlayingMoviesHandler)
		r.Get("/popular", app.popularMoviesHandler)
		r.Get("/movie/{movieId}", app.movieDetailsHandler)
		r.Get("/movie/{movieId}/shows", app.showsByMovieHandler)

		r.Get("/all", app.listShowsHandler)
		r.Get("/{showId}", app.getShowHandler)

		r.Group(func(r chi.Router) {
			r.Use(app.requireAdmin)

			r.Post("/add-show", app.addShowHandler)
			r.Put("/{showId}", app.updateShowHandler)
			r.Delete("/{showId}", app.deleteShowHandler)
		})
	})

	r.Route("/api/booking", func(r chi.Router) {
		r.Post("/create", app.createBookingHandler)
		r.Put("/cancel/{bookingId}", app.cancelBookingHandler)
		r.Get("/user/{userId}", app.userBookingsHandler)

		r.Group(func(r chi.Router) {
			r.Use(app.requireAdmin)

			r.Get("/all", app.listBookingsHandler)
			r.Get("/users", app.listUsersHandler)
		})
	})

	r.Route("/api/payment", func(r chi.Router) {
		r.Post("/create-payment-intent", app.createPaymentIntentHandler)
		r.Post("/verify-payment", app.verifyPaymentHandler)
	})

	r.Route("/api/admin", func(r chi.Router) {
		r.Post("/register", app.registerAdminHandler)
		r.Post("/login", app.loginAdminHandler)
		r.With(app.requireAdmin).Get("/profile", app.adminProfileHandler)
	})

	return r
}
