package app

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/exaring/otelpgx"
	"github.com/go-playground/validator/v10"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/extra/redisotel/v9"
	"github.com/redis/go-redis/v9"
	"github.com/showxpress/movie-ticket-booking/internal/booking"
	"github.com/showxpress/movie-ticket-booking/internal/domain"
	"github.com/showxpress/movie-ticket-booking/internal/mailer"
	"github.com/showxpress/movie-ticket-booking/internal/payment"
	"github.com/showxpress/movie-ticket-booking/internal/queue"
	"github.com/showxpress/movie-ticket-booking/internal/repository"
	"github.com/showxpress/movie-ticket-booking/internal/tmdb"
	appvalidator "github.com/showxpress/movie-ticket-booking/internal/validator"
	"github.com/showxpress/movie-ticket-booking/internal/vcs"
	"github.com/stripe/stripe-go/v82"
	"go.opentelemetry.io/contrib/bridges/otelslog"
)

var (
	version = vcs.Version()
)

type Application struct {
	config    Config
	logger    *slog.Logger
	db        *pgxpool.Pool
	redis     redis.UniversalClient
	validator *validator.Validate

	userRepo  domain.UserRepository
	movieRepo domain.MovieRepository
	showRepo  domain.ShowRepository
	adminRepo domain.AdminRepository

	bookings *booking.Service
	metadata domain.MetadataProvider
	payments domain.PaymentProvider
}

type Config struct {
	Port             int
	Env              string
	OtelCollectorUrl string

	DB     DBConfig
	Redis  RedisConfig
	SMTP   SMTPConfig
	Stripe StripeConfig
	TMDB   TMDBConfig
	AMQP   AMQPConfig
	Admin  AdminConfig
}

type DBConfig struct {
	DSN          string
	MaxOpenConns int
	MaxIdleTime  time.Duration
}

type RedisConfig struct {
	URL          string
	MaxOpenConns int
	MaxIdleConns int
	MaxIdleTime  time.Duration
}

type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	Sender   string
}

type StripeConfig struct {
	SecretKey string
}

type TMDBConfig struct {
	APIKey  string
	BaseURL string
}

type AMQPConfig struct {
	URL string
}

type AdminConfig struct {
	JWTSecret string
	TokenTTL  time.Duration
}

func NewApp(
	cfg Config,
	logger *slog.Logger,
	db *pgxpool.Pool,
	redisClient redis.UniversalClient,
	validator *validator.Validate,
	userRepo domain.UserRepository,
	movieRepo domain.MovieRepository,
	showRepo domain.ShowRepository,
	adminRepo domain.AdminRepository,
	bookings *booking.Service,
	metadata domain.MetadataProvider,
	payments domain.PaymentProvider) *Application {

	return &Application{
		config:    cfg,
		logger:    logger,
		db:        db,
		redis:     redisClient,
		validator: validator,
		userRepo:  userRepo,
		movieRepo: movieRepo,
		showRepo:  showRepo,
		adminRepo: adminRepo,
		bookings:  bookings,
		metadata:  metadata,
		payments:  payments,
	}
}

func Run() error {
	var cfg Config

	flag.IntVar(&cfg.Port, "port", 3000, "server port")
	flag.StringVar(&cfg.Env, "env", "dev", "Environment (dev|staging|prod)")
	flag.StringVar(&cfg.OtelCollectorUrl, "otel-collector-url", "", "OpenTelemetry collector URL")

	flag.StringVar(&cfg.DB.DSN, "db-dsn", "", "PostgreSQL DSN")
	flag.IntVar(&cfg.DB.MaxOpenConns, "db-max-open-conns", 25, "PostgreSQL max open connections")
	flag.DurationVar(&cfg.DB.MaxIdleTime, "db-max-idle-time", 15*time.Minute, "PostgreSQL max idle time for connections")

	flag.StringVar(&cfg.Redis.URL, "redis-url", "", "Redis URL")
	flag.IntVar(&cfg.Redis.MaxOpenConns, "redis-max-open-conns", 25, "Redis max open connections")
	flag.IntVar(&cfg.Redis.MaxIdleConns, "redis-max-idle-conns", 10, "Redis max idle connections")
	flag.DurationVar(&cfg.Redis.MaxIdleTime, "redis-max-idle-time", 2*time.Minute, "Redis max idle time for connections")

	flag.StringVar(&cfg.SMTP.Host, "smtp-host", "sandbox.smtp.mailtrap.io", "SMTP host")
	flag.IntVar(&cfg.SMTP.Port, "smtp-port", 2525, "SMTP port")
	flag.StringVar(&cfg.SMTP.Username, "smtp-username", "", "SMTP username")
	flag.StringVar(&cfg.SMTP.Password, "smtp-password", "", "SMTP password")
	flag.StringVar(&cfg.SMTP.Sender, "smtp-sender", "ShowXpress <no-reply@showxpress.dev>", "SMTP sender")

	flag.StringVar(&cfg.Stripe.SecretKey, "stripe-key", "", "Stripe secret key")

	flag.StringVar(&cfg.TMDB.APIKey, "tmdb-key", "", "TMDB API read access token")
	flag.StringVar(&cfg.TMDB.BaseURL, "tmdb-url", tmdb.DefaultBaseURL, "TMDB API base URL")

	flag.StringVar(&cfg.AMQP.URL, "amqp-url", "", "RabbitMQ URL (empty disables event publishing)")

	flag.StringVar(&cfg.Admin.JWTSecret, "admin-jwt-secret", "", "Signing secret for admin tokens")
	flag.DurationVar(&cfg.Admin.TokenTTL, "admin-token-ttl", 7*24*time.Hour, "Admin token lifetime")

	displayVersion := flag.Bool("version", false, "Display version and exit")

	flag.Parse()

	if *displayVersion {
		fmt.Printf("Version:\t%s\n", version)
		os.Exit(0)
	}

	stripe.Key = cfg.Stripe.SecretKey

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	shutdownTelemetry, err := initTelemetry(cfg, logger)
	if err != nil {
		return err
	}
	defer shutdownTelemetry(context.Background())

	if cfg.OtelCollectorUrl != "" {
		logger = slog.New(NewMultiHandler(
			logger.Handler(),
			otelslog.NewHandler("movie-ticket-booking-api"),
		))
	}

	validator := appvalidator.NewValidator()

	db, err := NewDatabasePool(cfg)
	if err != nil {
		return err
	}
	defer db.Close()

	redisClient, err := NewRedisClient(cfg)
	if err != nil {
		return err
	}
	defer redisClient.Close()

	userRepo := repository.NewPostgresUserRepository(db)
	movieRepo := repository.NewPostgresMovieRepository(db)
	showRepo := repository.NewPostgresShowRepository(db)
	adminRepo := repository.NewPostgresAdminRepository(db)
	bookingRepo := repository.NewPostgresBookingRepository(db)

	var events queue.Publisher = queue.NopPublisher{}
	if cfg.AMQP.URL != "" {
		publisher, err := queue.NewAMQPPublisher(cfg.AMQP.URL)
		if err != nil {
			return err
		}
		defer publisher.Close()

		events = publisher
	}

	smtpMailer := mailer.NewSMTPMailer(cfg.SMTP.Host, cfg.SMTP.Port, cfg.SMTP.Username, cfg.SMTP.Password, cfg.SMTP.Sender)
	stripeProvider := payment.NewStripePaymentProvider()
	metadata := tmdb.NewCachedProvider(tmdb.NewClient(cfg.TMDB.BaseURL, cfg.TMDB.APIKey), redisClient, logger)

	bookingService := booking.NewService(logger, showRepo, bookingRepo, userRepo, stripeProvider, events, smtpMailer)

	app := NewApp(
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
		metadata,
		stripeProvider,
	)

	return app.run()
}

func NewDatabasePool(cfg Config) (*pgxpool.Pool, error) {
	config, err := pgxpool.ParseConfig(cfg.DB.DSN)
	if err != nil {
		return nil, err
	}

	config.MaxConnIdleTime = cfg.DB.MaxIdleTime
	config.MaxConns = int32(cfg.DB.MaxOpenConns)
	config.ConnConfig.Tracer = otelpgx.NewTracer()

	db, err := pgxpool.NewWithConfig(context.Background(), config)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	err = db.Ping(ctx)
	if err != nil {
		db.Close()
		return nil, err
	}

	return db, nil
}

func NewRedisClient(cfg Config) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:            cfg.Redis.URL,
		MaxIdleConns:    cfg.Redis.MaxIdleConns,
		MaxActiveConns:  cfg.Redis.MaxOpenConns,
		ConnMaxIdleTime: cfg.Redis.MaxIdleTime,
	})

	if err := redisotel.InstrumentTracing(rdb); err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	err := rdb.Ping(ctx).Err()
	if err != nil {
		return nil, err
	}

	return rdb, nil
}

func (app *Application) run() error {
	srv := &http.Server{
		Addr:         fmt.Sprintf("0.0.0.0:%d", app.config.Port),
		Handler:      app.Routes(),
		IdleTimeout:  time.Minute,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		ErrorLog:     slog.NewLogLogger(app.logger.Handler(), slog.LevelDebug),
	}

	shutdownError := make(chan error)

	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		s := <-quit

		app.logger.Info("shutting down server", "signal", s.String())

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		err := srv.Shutdown(ctx)
		if err != nil {
			shutdownError <- err
		}

		shutdownError <- nil
	}()

	app.logger.Info("starting server", "addr", srv.Addr, "env", app.config.Env)

	err := srv.ListenAndServe()
	if !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	err = <-shutdownError
	if err != nil {
		return err
	}

	app.logger.Info("stopped server", "addr", srv.Addr)

	return nil
}
