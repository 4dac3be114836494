package app

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/showxpress/movie-ticket-booking/internal/domain"
)

type MoviesResponse struct {
	Movies []domain.MovieMetadata `json:"movies"`
}

func (app *Application) nowPlayingMoviesHandler(w http.ResponseWriter, r *http.Request) {
	movies, err := app.metadata.NowPlaying(r.Context())
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	err = app.writeJSON(w, http.StatusOK, MoviesResponse{Movies: movies}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *Application) popularMoviesHandler(w http.ResponseWriter, r *http.Request) {
	movies, err := app.metadata.Popular(r.Context())
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	err = app.writeJSON(w, http.StatusOK, MoviesResponse{Movies: movies}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *Application) movieDetailsHandler(w http.ResponseWriter, r *http.Request) {
	movieID := chi.URLParam(r, "movieId")

	movie, err := app.metadata.MovieDetails(r.Context(), movieID)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrRecordNotFound):
			app.notFoundResponse(w, r)
		default:
			app.serverErrorResponse(w, r, err)
		}

		return
	}

	err = app.writeJSON(w, http.StatusOK, movie, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}
