package app

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/showxpress/movie-ticket-booking/internal/domain"
)

type ShowInput struct {
	Date  string   `json:"date" validate:"required,datetime=2006-01-02"`
	Times []string `json:"times" validate:"required,min=1,dive,datetime=15:04"`
}

type AddShowRequest struct {
	MovieID    string          `json:"movie_id" validate:"required"`
	Price      decimal.Decimal `json:"price"`
	Theater    string          `json:"theater"`
	TotalSeats int             `json:"total_seats" validate:"omitempty,gt=0"`
	Shows      []ShowInput     `json:"shows" validate:"required,min=1,dive"`
}

type UpdateShowRequest struct {
	Price    *decimal.Decimal `json:"price"`
	ShowDate *string          `json:"show_date" validate:"omitempty,datetime=2006-01-02"`
	ShowTime *string          `json:"show_time" validate:"omitempty,datetime=15:04"`
	Theater  *string          `json:"theater"`
}

type MovieResponse struct {
	ID           uuid.UUID `json:"id"`
	TMDBID       string    `json:"tmdb_id"`
	Title        string    `json:"title"`
	Overview     string    `json:"overview,omitempty"`
	BackdropPath string    `json:"backdrop_path,omitempty"`
	PosterPath   string    `json:"poster_path,omitempty"`
	ReleaseDate  string    `json:"release_date,omitempty"`
	Runtime      int       `json:"runtime,omitempty"`
	VoteAverage  float64   `json:"vote_average,omitempty"`
	VoteCount    int       `json:"vote_count,omitempty"`
	Genres       []string  `json:"genres,omitempty"`
	Language     string    `json:"language,omitempty"`
	Tagline      string    `json:"tagline,omitempty"`
	CastMembers  []string  `json:"cast_members,omitempty"`
}

type ShowResponse struct {
	ID            uuid.UUID       `json:"id"`
	MovieID       uuid.UUID       `json:"movie_id"`
	Price         decimal.Decimal `json:"price"`
	ShowDate      string          `json:"show_date"`
	ShowTime      time.Time       `json:"show_time"`
	Theater       string          `json:"theater"`
	TotalSeats    int             `json:"total_seats"`
	OccupiedSeats []string        `json:"occupied_seats"`
	Movie         *MovieResponse  `json:"movie,omitempty"`
}

type ShowsResponse struct {
	Shows []ShowResponse `json:"shows"`
}

// addShowHandler schedules screenings for a movie. The movie is looked up in
// the local movie table by its TMDB id and fetched from TMDB on first use.
// One show row is created per date and time combination.
func (app *Application) addShowHandler(w http.ResponseWriter, r *http.Request) {
	var req AddShowRequest

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

	if !req.Price.IsPositive() {
		app.errorResponse(w, r, http.StatusUnprocessableEntity, "price must be greater than zero")
		return
	}

	movie, err := app.ensureMovie(r, req.MovieID)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrRecordNotFound):
			app.notFoundResponse(w, r)
		default:
			app.serverErrorResponse(w, r, err)
		}

		return
	}

	theater := req.Theater
	if theater == "" {
		theater = domain.DefaultTheater
	}

	totalSeats := req.TotalSeats
	if totalSeats == 0 {
		totalSeats = domain.DefaultTotalSeats
	}

	var created []ShowResponse

	for _, input := range req.Shows {
		showDate, err := time.Parse("2006-01-02", input.Date)
		if err != nil {
			app.badRequestResponse(w, r, fmt.Errorf("invalid show date %q", input.Date))
			return
		}

		for _, timeOfDay := range input.Times {
			clock, err := time.Parse("15:04", timeOfDay)
			if err != nil {
				app.badRequestResponse(w, r, fmt.Errorf("invalid show time %q", timeOfDay))
				return
			}

			show := &domain.Show{
				ID:       uuid.New(),
				MovieID:  movie.ID,
				Price:    req.Price,
				ShowDate: showDate,
				ShowTime: time.Date(
					showDate.Year(), showDate.Month(), showDate.Day(),
					clock.Hour(), clock.Minute(), 0, 0, time.UTC,
				),
				Theater:    theater,
				TotalSeats: totalSeats,
			}

			err = app.showRepo.Create(r.Context(), show)
			if err != nil {
				app.serverErrorResponse(w, r, err)
				return
			}

			show.Movie = movie
			created = append(created, toShowResponse(show))
		}
	}

	err = app.writeJSON(w, http.StatusCreated, ShowsResponse{Shows: created}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

// ensureMovie returns the local movie record for a TMDB id, creating it from
// the metadata provider when the movie has never been scheduled before.
func (app *Application) ensureMovie(r *http.Request, tmdbID string) (*domain.Movie, error) {
	movie, err := app.movieRepo.GetByTmdbId(r.Context(), tmdbID)
	if err == nil {
		return movie, nil
	}
	if !errors.Is(err, domain.ErrRecordNotFound) {
		return nil, err
	}

	metadata, err := app.metadata.MovieDetails(r.Context(), tmdbID)
	if err != nil {
		return nil, err
	}

	genres := make([]string, 0, len(metadata.Genres))
	for _, genre := range metadata.Genres {
		genres = append(genres, genre.Name)
	}

	castMembers := make([]string, 0, len(metadata.Cast))
	for _, credit := range metadata.Cast {
		castMembers = append(castMembers, credit.Name)
	}

	movie = &domain.Movie{
		ID:           uuid.New(),
		TMDBID:       tmdbID,
		Title:        metadata.Title,
		Overview:     metadata.Overview,
		BackdropPath: metadata.BackdropPath,
		PosterPath:   metadata.PosterPath,
		ReleaseDate:  metadata.ReleaseDate,
		Runtime:      metadata.Runtime,
		VoteAverage:  metadata.VoteAverage,
		VoteCount:    metadata.VoteCount,
		Genres:       genres,
		Language:     metadata.Language,
		Tagline:      metadata.Tagline,
		CastMembers:  castMembers,
	}

	err = app.movieRepo.Create(r.Context(), movie)
	if err != nil {
		return nil, err
	}

	return movie, nil
}

func (app *Application) listShowsHandler(w http.ResponseWriter, r *http.Request) {
	shows, err := app.showRepo.GetAll(r.Context())
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	err = app.writeJSON(w, http.StatusOK, toShowsResponse(shows), nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *Application) showsByMovieHandler(w http.ResponseWriter, r *http.Request) {
	movieID, err := app.readUUIDParam(r, "movieId")
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	shows, err := app.showRepo.GetAllByMovieId(r.Context(), movieID)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	err = app.writeJSON(w, http.StatusOK, toShowsResponse(shows), nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *Application) getShowHandler(w http.ResponseWriter, r *http.Request) {
	showID, err := app.readUUIDParam(r, "showId")
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	show, err := app.showRepo.GetById(r.Context(), showID)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrRecordNotFound):
			app.notFoundResponse(w, r)
		default:
			app.serverErrorResponse(w, r, err)
		}

		return
	}

	err = app.writeJSON(w, http.StatusOK, toShowResponse(show), nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *Application) updateShowHandler(w http.ResponseWriter, r *http.Request) {
	showID, err := app.readUUIDParam(r, "showId")
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	var req UpdateShowRequest

	err = app.readJSON(w, r, &req)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	err = app.validator.Struct(req)
	if err != nil {
		app.failedValidationResponse(w, r, err)
		return
	}

	if req.Price != nil && !req.Price.IsPositive() {
		app.errorResponse(w, r, http.StatusUnprocessableEntity, "price must be greater than zero")
		return
	}

	update := domain.ShowUpdate{
		Price:   req.Price,
		Theater: req.Theater,
	}

	if req.ShowDate != nil {
		showDate, err := time.Parse("2006-01-02", *req.ShowDate)
		if err != nil {
			app.badRequestResponse(w, r, fmt.Errorf("invalid show date %q", *req.ShowDate))
			return
		}

		update.ShowDate = &showDate
	}

	if req.ShowTime != nil {
		clock, err := time.Parse("15:04", *req.ShowTime)
		if err != nil {
			app.badRequestResponse(w, r, fmt.Errorf("invalid show time %q", *req.ShowTime))
			return
		}

		base := time.Now().UTC()
		if update.ShowDate != nil {
			base = *update.ShowDate
		}

		showTime := time.Date(base.Year(), base.Month(), base.Day(), clock.Hour(), clock.Minute(), 0, 0, time.UTC)
		update.ShowTime = &showTime
	}

	show, err := app.showRepo.Update(r.Context(), showID, update)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrRecordNotFound):
			app.notFoundResponse(w, r)
		default:
			app.serverErrorResponse(w, r, err)
		}

		return
	}

	err = app.writeJSON(w, http.StatusOK, toShowResponse(show), nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *Application) deleteShowHandler(w http.ResponseWriter, r *http.Request) {
	showID, err := app.readUUIDParam(r, "showId")
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	err = app.showRepo.Delete(r.Context(), showID)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrRecordNotFound):
			app.notFoundResponse(w, r)
		case errors.Is(err, domain.ErrShowHasBookings):
			app.conflictResponse(w, r, "Show still has confirmed bookings and cannot be deleted")
		default:
			app.serverErrorResponse(w, r, err)
		}

		return
	}

	err = app.writeJSON(w, http.StatusOK, map[string]string{"message": "show deleted"}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func toShowResponse(show *domain.Show) ShowResponse {
	resp := ShowResponse{
		ID:            show.ID,
		MovieID:       show.MovieID,
		Price:         show.Price,
		ShowDate:      show.ShowDate.Format("2006-01-02"),
		ShowTime:      show.ShowTime,
		Theater:       show.Theater,
		TotalSeats:    show.TotalSeats,
		OccupiedSeats: show.OccupiedSeats,
	}

	if show.Movie != nil {
		movie := toMovieResponse(show.Movie)
		resp.Movie = &movie
	}

	return resp
}

func toShowsResponse(shows []*domain.Show) ShowsResponse {
	resp := ShowsResponse{Shows: make([]ShowResponse, 0, len(shows))}
	for _, show := range shows {
		resp.Shows = append(resp.Shows, toShowResponse(show))
	}

	return resp
}

func toMovieResponse(movie *domain.Movie) MovieResponse {
	return MovieResponse{
		ID:           movie.ID,
		TMDBID:       movie.TMDBID,
		Title:        movie.Title,
		Overview:     movie.Overview,
		BackdropPath: movie.BackdropPath,
		PosterPath:   movie.PosterPath,
		ReleaseDate:  movie.ReleaseDate,
		Runtime:      movie.Runtime,
		VoteAverage:  movie.VoteAverage,
		VoteCount:    movie.VoteCount,
		Genres:       movie.Genres,
		Language:     movie.Language,
		Tagline:      movie.Tagline,
		CastMembers:  movie.CastMembers,
	}
}
