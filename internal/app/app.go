package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/exaring/otelpgx"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-playground/validator/v10"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/metinatakli/movie-booking-service/internal/booking"
	"github.com/metinatakli/movie-booking-service/internal/domain"
	"github.com/metinatakli/movie-booking-service/internal/events"
	"github.com/metinatakli/movie-booking-service/internal/repository"
	appvalidator "github.com/metinatakli/movie-booking-service/internal/validator"
	"github.com/metinatakli/movie-booking-service/internal/vcs"
	"github.com/redis/go-redis/extra/redisotel/v9"
	"github.com/redis/go-redis/v9"
	"github.com/riandyrn/otelchi"
	"go.opentelemetry.io/contrib/bridges/otelslog"
)

const serviceName = "movie-booking-api"

var (
	version = vcs.Version()
)

type Application struct {
	config    Config
	logger    *slog.Logger
	validator *validator.Validate

	movieRepo domain.MovieRepository
	bookings  BookingService
	publisher domain.BookingEventPublisher
}

// BookingService is the part of booking.Service the HTTP layer depends on.
type BookingService interface {
	CreateBooking(ctx context.Context, input booking.CreateBookingInput) (*domain.Booking, error)
	SeatAvailability(ctx context.Context, input booking.SeatAvailabilityInput) ([]domain.SeatStatus, error)
	Wait()
}

func Run(args []string) error {
	cfg, displayVersion, err := LoadConfig(args)
	if err != nil {
		return err
	}

	if displayVersion {
		fmt.Printf("Version:\t%s\n", version)
		return nil
	}

	textHandler := slog.NewTextHandler(os.Stdout, nil)
	logger := slog.New(textHandler)

	shutdownTelemetry, err := initTelemetry(cfg, logger)
	if err != nil {
		return err
	}
	defer shutdownTelemetry(context.Background())

	if cfg.OtelCollectorUrl != "" {
		logger = slog.New(newTeeHandler(textHandler, otelslog.NewHandler(serviceName)))
	}

	validator := appvalidator.NewValidator()

	db, err := NewDatabasePool(cfg.DB)
	if err != nil {
		return err
	}
	defer db.Close()

	userRepo := repository.NewPostgresUserRepository(db)
	movieRepo := repository.NewPostgresMovieRepository(db)
	bookingRepo := repository.NewPostgresBookingRepository(db)

	var opts []booking.Option

	if cfg.Redis.URL != "" {
		redisClient, err := NewRedisClient(cfg.Redis)
		if err != nil {
			return err
		}
		defer redisClient.Close()

		opts = append(opts, booking.WithAvailabilityCache(booking.NewRedisAvailabilityCache(redisClient, cfg.Redis.CacheTTL)))
	} else {
		logger.Info("redis URL not set, seat availability cache disabled")
	}

	publisher, err := events.NewPublisher(cfg.Events)
	if err != nil {
		return err
	}

	if publisher != nil {
		opts = append(opts, booking.WithEventPublisher(publisher))
	}

	app := NewApp(cfg, logger, validator, movieRepo,
		booking.NewService(bookingRepo, userRepo, movieRepo, validator, logger, opts...),
		publisher)

	return app.run()
}

func NewApp(
	cfg Config,
	logger *slog.Logger,
	validator *validator.Validate,
	movieRepo domain.MovieRepository,
	bookings BookingService,
	publisher domain.BookingEventPublisher) *Application {

	return &Application{
		config:    cfg,
		logger:    logger,
		validator: validator,
		movieRepo: movieRepo,
		bookings:  bookings,
		publisher: publisher,
	}
}

func NewRedisClient(cfg RedisConfig) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:            cfg.URL,
		MaxIdleConns:    cfg.MaxIdleConns,
		MaxActiveConns:  cfg.MaxOpenConns,
		ConnMaxIdleTime: cfg.MaxIdleTime,
	})

	err := errors.Join(redisotel.InstrumentTracing(rdb), redisotel.InstrumentMetrics(rdb))
	if err != nil {
		rdb.Close()
		return nil, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	err = rdb.Ping(ctx).Err()
	if err != nil {
		rdb.Close()
		return nil, err
	}

	return rdb, nil
}

func NewDatabasePool(cfg DBConfig) (*pgxpool.Pool, error) {
	config, err := pgxpool.ParseConfig(cfg.DSN)
	if err != nil {
		return nil, err
	}

	config.MaxConnIdleTime = cfg.MaxIdleTime
	config.MaxConns = int32(cfg.MaxOpenConns)
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
			return
		}

		app.logger.Info("waiting for background tasks", "addr", srv.Addr)

		// in-flight booking events must be flushed before the broker connection goes away
		app.bookings.Wait()

		if app.publisher != nil {
			err = app.publisher.Close()
		}

		shutdownError <- err
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

func (app *Application) Routes() http.Handler {
	r := chi.NewRouter()

	r.NotFound(app.notFoundResponse)
	r.MethodNotAllowed(app.methodNotAllowedResponse)

	r.Use(middleware.RequestID)
	r.Use(otelchi.Middleware(serviceName, otelchi.WithChiRoutes(r)))
	r.Use(app.requestLogger)
	r.Use(middleware.Logger)
	r.Use(app.recoverPanic)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: app.config.Cors.TrustedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type", "X-Request-Id"},
		MaxAge:         300,
	}))

	r.Get("/healthcheck", app.GetHealth)
	r.Get("/movies", app.GetMovies)

	r.Group(app.bookingRoutes)

	// legacy mount point kept for existing clients
	r.Route("/user", app.bookingRoutes)

	return r
}

func (app *Application) bookingRoutes(r chi.Router) {
	r.Post("/bookings", app.CreateBookingHandler)
	r.Get("/bookings/seats", app.GetSeatAvailabilityHandler)
}
