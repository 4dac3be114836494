package app

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/showxpress/movie-ticket-booking/internal/domain"
	"github.com/showxpress/movie-ticket-booking/internal/mocks"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type MoviesTestSuite struct {
	suite.Suite
	app      *Application
	metadata *mocks.MockMetadataProvider
}

func TestMoviesSuite(t *testing.T) {
	suite.Run(t, new(MoviesTestSuite))
}

func (s *MoviesTestSuite) SetupTest() {
	s.metadata = new(mocks.MockMetadataProvider)
	s.app = newTestApplication(func(a *Application) {
		a.metadata = s.metadata
	})
}

func (s *MoviesTestSuite) TestNowPlayingMoviesHandler() {
	movies := []domain.MovieMetadata{
		{ID: 603, Title: "The Matrix", VoteAverage: 8.2},
		{ID: 27205, Title: "Inception", VoteAverage: 8.4},
	}

	s.metadata.On("NowPlaying", mock.Anything).Return(movies, nil)

	w, r := executeRequest(s.T(), http.MethodGet, "/api/show/now-playing", nil)
	s.app.Routes().ServeHTTP(w, r)

	s.Equal(http.StatusOK, w.Code)

	var resp MoviesResponse
	s.Require().NoError(json.NewDecoder(w.Body).Decode(&resp))

	if diff := cmp.Diff(movies, resp.Movies); diff != "" {
		s.T().Errorf("movies mismatch (-want +got):\n%s", diff)
	}
}

func (s *MoviesTestSuite) TestPopularMoviesHandlerProviderError() {
	s.metadata.On("Popular", mock.Anything).Return(nil, fmt.Errorf("tmdb unavailable"))

	w, r := executeRequest(s.T(), http.MethodGet, "/api/show/popular", nil)
	s.app.Routes().ServeHTTP(w, r)

	s.Equal(http.StatusInternalServerError, w.Code)
}

func (s *MoviesTestSuite) TestMovieDetailsHandler() {
	tests := []struct {
		name       string
		setupMock  func()
		wantStatus int
	}{
		{
			name: "movie not found",
			setupMock: func() {
				s.metadata.On("MovieDetails", mock.Anything, "603").Return(nil, domain.ErrRecordNotFound)
			},
			wantStatus: http.StatusNotFound,
		},
		{
			name: "successful retrieval",
			setupMock: func() {
				s.metadata.On("MovieDetails", mock.Anything, "603").Return(&domain.MovieMetadata{
					ID:    603,
					Title: "The Matrix",
					Cast:  []domain.Credit{{Name: "Keanu Reeves", Character: "Neo"}},
				}, nil)
			},
			wantStatus: http.StatusOK,
		},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			s.SetupTest()
			tt.setupMock()

			w, r := executeRequest(s.T(), http.MethodGet, "/api/show/movie/603", nil)
			s.app.Routes().ServeHTTP(w, r)

			s.Equal(tt.wantStatus, w.Code)

			if tt.wantStatus == http.StatusOK {
				var resp domain.MovieMetadata
				s.Require().NoError(json.NewDecoder(w.Body).Decode(&resp))
				s.Equal("The Matrix", resp.Title)
				s.Len(resp.Cast, 1)
			}
		})
	}
}
