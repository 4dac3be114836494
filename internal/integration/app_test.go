package integration_test

import (
	"io"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/showxpress/movie-ticket-booking/internal/app"
	"github.com/showxpress/movie-ticket-booking/internal/booking"
	"github.com/showxpress/movie-ticket-booking/internal/mailer"
	"github.com/showxpress/movie-ticket-booking/internal/mocks"
	"github.com/showxpress/movie-ticket-booking/internal/payment"
	"github.com/showxpress/movie-ticket-booking/internal/queue"
	"github.com/showxpress/movie-ticket-booking/internal/repository"
	appvalidator "github.com/showxpress/movie-ticket-booking/internal/validator"
)

type TestApp struct {
	App       *app.Application
	DB        *pgxpool.Pool
	Mailer    *mailer.MockMailer
	Publisher *mocks.MockPublisher
}

func newTestApp(cfg app.Config) (*TestApp, error) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	validator := appvalidator.NewValidator()
	mockMailer := mailer.NewMockMailer()
	publisher := &mocks.MockPublisher{}

	db, err := app.NewDatabasePool(cfg)
	if err != nil {
		return nil, err
	}

	redisClient, err := app.NewRedisClient(cfg)
	if err != nil {
		db.Close()
		return nil, err
	}

	userRepo := repository.NewPostgresUserRepository(db)
	movieRepo := repository.NewPostgresMovieRepository(db)
	showRepo := repository.NewPostgresShowRepository(db)
	adminRepo := repository.NewPostgresAdminRepository(db)
	bookingRepo := repository.NewPostgresBookingRepository(db)

	paymentProvider := payment.NewMockPaymentProvider()

	var events queue.Publisher = publisher

	bookingService := booking.NewService(
		logger,
		showRepo,
		bookingRepo,
		userRepo,
		paymentProvider,
		events,
		mockMailer,
	)

	application := app.NewApp(
		cfg,
		logger,
		db,
		redisClient,
		validator,
		userRepo,
		movieRepo,
		showRepo,
		adminRepo,
		bookingService,
		new(mocks.MockMetadataProvider),
		paymentProvider,
	)

	return &TestApp{
		App:       application,
		DB:        db,
		Mailer:    mockMailer,
		Publisher: publisher,
	}, nil
}
