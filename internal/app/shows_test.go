package app

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/showxpress/movie-ticket-booking/internal/domain"
	"github.com/showxpress/movie-ticket-booking/internal/mocks"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type ShowsTestSuite struct {
	suite.Suite
	app       *Application
	showRepo  *mocks.MockShowRepo
	movieRepo *mocks.MockMovieRepo
	adminRepo *mocks.MockAdminRepo
	metadata  *mocks.MockMetadataProvider
}

func TestShowsSuite(t *testing.T) {
	suite.Run(t, new(ShowsTestSuite))
}

func (s *ShowsTestSuite) SetupTest() {
	s.showRepo = &mocks.MockShowRepo{}
	s.movieRepo = &mocks.MockMovieRepo{}
	s.metadata = new(mocks.MockMetadataProvider)
	s.adminRepo = &mocks.MockAdminRepo{
		GetByIdFunc: func(ctx context.Context, id int64) (*domain.Admin, error) {
			return &domain.Admin{ID: id, Name: "Root", Email: "root@example.com"}, nil
		},
	}

	s.app = newTestApplication(func(a *Application) {
		a.showRepo = s.showRepo
		a.movieRepo = s.movieRepo
		a.adminRepo = s.adminRepo
		a.metadata = s.metadata
	})
}

func (s *ShowsTestSuite) adminToken() string {
	token, err := s.app.issueAdminToken(&domain.Admin{ID: 1})
	s.Require().NoError(err)

	return token
}

func (s *ShowsTestSuite) TestAddShowHandlerRequiresAuth() {
	w, r := executeRequest(s.T(), http.MethodPost, "/api/show/add-show", AddShowRequest{})
	s.app.Routes().ServeHTTP(w, r)

	s.Equal(http.StatusUnauthorized, w.Code)
}

func (s *ShowsTestSuite) TestAddShowHandlerCreatesShowPerTime() {
	movie := &domain.Movie{ID: uuid.New(), TMDBID: "603", Title: "The Matrix"}
	s.movieRepo.GetByTmdbIdFunc = func(ctx context.Context, tmdbID string) (*domain.Movie, error) {
		return movie, nil
	}

	var created []*domain.Show
	s.showRepo.CreateFunc = func(ctx context.Context, show *domain.Show) error {
		created = append(created, show)
		return nil
	}

	body := AddShowRequest{
		MovieID: "603",
		Price:   decimal.NewFromInt(200),
		Shows: []ShowInput{
			{Date: "2026-09-10", Times: []string{"18:00", "21:30"}},
		},
	}

	w, r := executeRequest(s.T(), http.MethodPost, "/api/show/add-show", body)
	r.Header.Set("Authorization", "Bearer "+s.adminToken())
	s.app.Routes().ServeHTTP(w, r)

	s.Equal(http.StatusCreated, w.Code)
	s.Require().Len(created, 2)

	for _, show := range created {
		s.Equal(movie.ID, show.MovieID)
		s.Equal(domain.DefaultTheater, show.Theater)
		s.Equal(domain.DefaultTotalSeats, show.TotalSeats)
		s.True(show.Price.Equal(decimal.NewFromInt(200)))
	}

	s.Equal(18, created[0].ShowTime.Hour())
	s.Equal(21, created[1].ShowTime.Hour())
	s.Equal(30, created[1].ShowTime.Minute())

	var resp ShowsResponse
	s.Require().NoError(json.NewDecoder(w.Body).Decode(&resp))
	s.Len(resp.Shows, 2)
}

func (s *ShowsTestSuite) TestAddShowHandlerFetchesUnknownMovie() {
	s.movieRepo.GetByTmdbIdFunc = func(ctx context.Context, tmdbID string) (*domain.Movie, error) {
		return nil, domain.ErrRecordNotFound
	}

	s.metadata.On("MovieDetails", mock.Anything, "603").Return(&domain.MovieMetadata{
		ID:       603,
		Title:    "The Matrix",
		Overview: "A hacker learns the truth",
		Genres:   []domain.Genre{{ID: 28, Name: "Action"}, {ID: 878, Name: "Science Fiction"}},
		Cast:     []domain.Credit{{Name: "Keanu Reeves", Character: "Neo"}},
	}, nil)

	var storedMovie *domain.Movie
	s.movieRepo.CreateFunc = func(ctx context.Context, movie *domain.Movie) error {
		storedMovie = movie
		return nil
	}

	s.showRepo.CreateFunc = func(ctx context.Context, show *domain.Show) error {
		return nil
	}

	body := AddShowRequest{
		MovieID: "603",
		Price:   decimal.NewFromInt(150),
		Shows:   []ShowInput{{Date: "2026-09-10", Times: []string{"18:00"}}},
	}

	w, r := executeRequest(s.T(), http.MethodPost, "/api/show/add-show", body)
	r.Header.Set("Authorization", "Bearer "+s.adminToken())
	s.app.Routes().ServeHTTP(w, r)

	s.Equal(http.StatusCreated, w.Code)
	s.Require().NotNil(storedMovie)
	s.Equal("603", storedMovie.TMDBID)
	s.Equal([]string{"Action", "Science Fiction"}, storedMovie.Genres)
	s.Equal([]string{"Keanu Reeves"}, storedMovie.CastMembers)
}

func (s *ShowsTestSuite) TestAddShowHandlerValidation() {
	tests := []struct {
		name string
		body AddShowRequest
	}{
		{
			name: "no shows",
			body: AddShowRequest{MovieID: "603", Price: decimal.NewFromInt(200)},
		},
		{
			name: "bad date format",
			body: AddShowRequest{
				MovieID: "603",
				Price:   decimal.NewFromInt(200),
				Shows:   []ShowInput{{Date: "10-09-2026", Times: []string{"18:00"}}},
			},
		},
		{
			name: "zero price",
			body: AddShowRequest{
				MovieID: "603",
				Shows:   []ShowInput{{Date: "2026-09-10", Times: []string{"18:00"}}},
			},
		},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			w, r := executeRequest(s.T(), http.MethodPost, "/api/show/add-show", tt.body)
			r.Header.Set("Authorization", "Bearer "+s.adminToken())
			s.app.Routes().ServeHTTP(w, r)

			s.Equal(http.StatusUnprocessableEntity, w.Code)
		})
	}
}

func (s *ShowsTestSuite) TestGetShowHandler() {
	showID := uuid.New()

	tests := []struct {
		name       string
		url        string
		getFunc    func(ctx context.Context, id uuid.UUID) (*domain.Show, error)
		wantStatus int
	}{
		{
			name:       "invalid show id",
			url:        "/api/show/not-a-uuid",
			wantStatus: http.StatusBadRequest,
		},
		{
			name: "show not found",
			url:  "/api/show/" + showID.String(),
			getFunc: func(ctx context.Context, id uuid.UUID) (*domain.Show, error) {
				return nil, domain.ErrRecordNotFound
			},
			wantStatus: http.StatusNotFound,
		},
		{
			name: "successful retrieval",
			url:  "/api/show/" + showID.String(),
			getFunc: func(ctx context.Context, id uuid.UUID) (*domain.Show, error) {
				return &domain.Show{
					ID:            id,
					Price:         decimal.NewFromInt(200),
					Theater:       domain.DefaultTheater,
					TotalSeats:    domain.DefaultTotalSeats,
					OccupiedSeats: []string{"A1", "A2"},
				}, nil
			},
			wantStatus: http.StatusOK,
		},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			s.showRepo.GetByIdFunc = tt.getFunc

			w, r := executeRequest(s.T(), http.MethodGet, tt.url, nil)
			s.app.Routes().ServeHTTP(w, r)

			s.Equal(tt.wantStatus, w.Code)

			if tt.wantStatus == http.StatusOK {
				var resp ShowResponse
				s.Require().NoError(json.NewDecoder(w.Body).Decode(&resp))
				s.Equal([]string{"A1", "A2"}, resp.OccupiedSeats)
			}
		})
	}
}

func (s *ShowsTestSuite) TestUpdateShowHandler() {
	showID := uuid.New()

	s.showRepo.UpdateFunc = func(ctx context.Context, id uuid.UUID, update domain.ShowUpdate) (*domain.Show, error) {
		s.Require().NotNil(update.Price)
		return &domain.Show{ID: id, Price: *update.Price, Theater: domain.DefaultTheater}, nil
	}

	body := UpdateShowRequest{Price: ptr(decimal.NewFromInt(250))}

	w, r := executeRequest(s.T(), http.MethodPut, "/api/show/"+showID.String(), body)
	r.Header.Set("Authorization", "Bearer "+s.adminToken())
	s.app.Routes().ServeHTTP(w, r)

	s.Equal(http.StatusOK, w.Code)

	var resp ShowResponse
	s.Require().NoError(json.NewDecoder(w.Body).Decode(&resp))
	s.True(resp.Price.Equal(decimal.NewFromInt(250)))
}

func (s *ShowsTestSuite) TestDeleteShowHandler() {
	showID := uuid.New()

	tests := []struct {
		name       string
		deleteFunc func(ctx context.Context, id uuid.UUID) error
		wantStatus int
	}{
		{
			name: "show has confirmed bookings",
			deleteFunc: func(ctx context.Context, id uuid.UUID) error {
				return domain.ErrShowHasBookings
			},
			wantStatus: http.StatusConflict,
		},
		{
			name: "show not found",
			deleteFunc: func(ctx context.Context, id uuid.UUID) error {
				return domain.ErrRecordNotFound
			},
			wantStatus: http.StatusNotFound,
		},
		{
			name: "successful deletion",
			deleteFunc: func(ctx context.Context, id uuid.UUID) error {
				return nil
			},
			wantStatus: http.StatusOK,
		},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			s.showRepo.DeleteFunc = tt.deleteFunc

			w, r := executeRequest(s.T(), http.MethodDelete, "/api/show/"+showID.String(), nil)
			r.Header.Set("Authorization", "Bearer "+s.adminToken())
			s.app.Routes().ServeHTTP(w, r)

			s.Equal(tt.wantStatus, w.Code)
		})
	}
}
