package integration_test

import (
	"log/slog"
	"os"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/metinatakli/movie-booking-service/internal/app"
	"github.com/metinatakli/movie-booking-service/internal/booking"
	"github.com/metinatakli/movie-booking-service/internal/mocks"
	"github.com/metinatakli/movie-booking-service/internal/repository"
	appvalidator "github.com/metinatakli/movie-booking-service/internal/validator"
	"github.com/redis/go-redis/v9"
)

type TestApp struct {
	App       *app.Application
	DB        *pgxpool.Pool
	Redis     *redis.Client
	Bookings  *booking.Service
	Publisher *mocks.MockEventPublisher
}

func newTestApp(cfg app.Config) (*TestApp, error) {
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	validator := appvalidator.NewValidator()
	publisher := &mocks.MockEventPublisher{}

	db, err := app.NewDatabasePool(cfg.DB)
	if err != nil {
		return nil, err
	}

	redisClient, err := app.NewRedisClient(cfg.Redis)
	if err != nil {
		db.Close()
		return nil, err
	}

	userRepo := repository.NewPostgresUserRepository(db)
	movieRepo := repository.NewPostgresMovieRepository(db)
	bookingRepo := repository.NewPostgresBookingRepository(db)

	bookings := booking.NewService(bookingRepo, userRepo, movieRepo, validator, logger,
		booking.WithAvailabilityCache(booking.NewRedisAvailabilityCache(redisClient, cfg.Redis.CacheTTL)),
		booking.WithEventPublisher(publisher))

	application := app.NewApp(
		cfg,
		logger,
		validator,
		movieRepo,
		bookings,
		publisher,
	)

	return &TestApp{
		App:       application,
		DB:        db,
		Redis:     redisClient,
		Bookings:  bookings,
		Publisher: publisher,
	}, nil
}
