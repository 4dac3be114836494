package integration_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"time"

	"github.com/google/uuid"
	"github.com/showxpress/movie-ticket-booking/internal/app"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
)

const (
	dbName         = "movie_ticket_booking"
	dbUser         = "test_user"
	dbPassword     = "test_password"
	dbImageName    = "postgres:17-alpine"
	cacheImageName = "redis:7"
)

type BaseSuite struct {
	suite.Suite
	app            *TestApp
	dbContainer    *PostgresContainer
	cacheContainer *RedisContainer
	server         *httptest.Server
}

func (s *BaseSuite) SetupSuite() {
	ctx := context.Background()

	postgresContainer, err := getDbContainer(ctx)
	if err != nil {
		log.Printf("failed to start container: %s", err)
		return
	}

	redisContainer, err := getCacheContainer(ctx)
	if err != nil {
		log.Printf("failed to start container: %s", err)
		return
	}

	s.dbContainer = postgresContainer
	s.cacheContainer = redisContainer

	cfg := app.Config{
		Port: 3000,
		Env:  "test",
		DB: app.DBConfig{
			DSN:          postgresContainer.ConnectionString,
			MaxOpenConns: 25,
			MaxIdleTime:  2 * time.Minute,
		},
		Redis: app.RedisConfig{
			URL:          redisContainer.ConnectionString,
			MaxOpenConns: 10,
			MaxIdleConns: 10,
			MaxIdleTime:  2 * time.Minute,
		},
		Admin: app.AdminConfig{
			JWTSecret: "integration-test-secret",
			TokenTTL:  time.Hour,
		},
	}

	testApp, err := newTestApp(cfg)
	if err != nil {
		log.Printf("cannot initialize app: %s", err)
		return
	}

	s.app = testApp
	s.server = httptest.NewServer(testApp.App.Routes())
}

func (s *BaseSuite) TearDownSuite() {
	if s.server != nil {
		s.server.Close()
	}
	if s.dbContainer != nil {
		if err := testcontainers.TerminateContainer(s.dbContainer.Container.Container); err != nil {
			log.Printf("failed to terminate container: %s", err)
		}
	}
	if s.cacheContainer != nil {
		if err := testcontainers.TerminateContainer(s.cacheContainer.Container); err != nil {
			log.Printf("failed to terminate container: %s", err)
		}
	}
}

func (s *BaseSuite) SetupTest() {
	if s.app == nil {
		s.T().Skip("containers unavailable")
	}

	ctx := context.Background()

	_, err := s.app.DB.Exec(ctx, `TRUNCATE bookings, shows, movies, users, admins`)
	s.Require().NoError(err)
}

// doJSON sends a JSON request to the test server and decodes the response
// body into dst when dst is non-nil. It returns the response status code.
func (s *BaseSuite) doJSON(method, path string, body any, headers map[string]string, dst any) int {
	s.T().Helper()

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		s.Require().NoError(err)
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequest(method, s.server.URL+path, reader)
	s.Require().NoError(err)
	req.Header.Set("Content-Type", "application/json")

	for key, value := range headers {
		req.Header.Set(key, value)
	}

	res, err := s.server.Client().Do(req)
	s.Require().NoError(err)
	defer res.Body.Close()

	if dst != nil && res.StatusCode < 300 {
		s.Require().NoError(json.NewDecoder(res.Body).Decode(dst))
	}

	return res.StatusCode
}

// seedShow inserts a movie and one show for it directly, bypassing the API,
// and returns the show id.
func (s *BaseSuite) seedShow(totalSeats int) uuid.UUID {
	s.T().Helper()

	ctx := context.Background()

	var movieID uuid.UUID
	err := s.app.DB.QueryRow(ctx, `
		INSERT INTO movies (tmdb_id, title) VALUES ($1, $2) RETURNING id
	`, uuid.NewString(), "The Matrix").Scan(&movieID)
	s.Require().NoError(err)

	var showID uuid.UUID
	err = s.app.DB.QueryRow(ctx, `
		INSERT INTO shows (movie_id, price, show_date, show_time, total_seats)
		VALUES ($1, 200, '2026-09-10', '2026-09-10 18:00:00+00', $2)
		RETURNING id
	`, movieID, totalSeats).Scan(&showID)
	s.Require().NoError(err)

	return showID
}

// seedUser inserts a user profile so booking confirmations have a recipient.
func (s *BaseSuite) seedUser(externalID string) {
	s.T().Helper()

	_, err := s.app.DB.Exec(context.Background(), `
		INSERT INTO users (external_id, name, email) VALUES ($1, 'Alice', 'alice@example.com')
	`, externalID)
	s.Require().NoError(err)
}

func (s *BaseSuite) occupiedSeats(showID uuid.UUID) []string {
	s.T().Helper()

	var occupied []string
	err := s.app.DB.QueryRow(context.Background(),
		`SELECT occupied_seats FROM shows WHERE id = $1`, showID).Scan(&occupied)
	s.Require().NoError(err)

	return occupied
}

func (s *BaseSuite) adminToken() string {
	s.T().Helper()

	var resp struct {
		Token string `json:"token"`
	}

	status := s.doJSON(http.MethodPost, "/api/admin/register", map[string]string{
		"name":     "Root",
		"email":    "root-" + uuid.NewString() + "@example.com",
		"password": "Sup3rSecret!",
	}, nil, &resp)
	s.Require().Equal(http.StatusCreated, status)

	return resp.Token
}
