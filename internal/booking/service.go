package booking

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/metinatakli/movie-booking-service/internal/domain"
	"github.com/shopspring/decimal"
)

const publishTimeout = 5 * time.Second

type CreateBookingInput struct {
	UserID   string `validate:"required"`
	MovieID  string `validate:"required"`
	ShowTime string `validate:"required"`
	Date     string `validate:"required"`
	Seats    []int
	// nil means the price was not sent at all, zero is a valid price.
	TotalPrice *decimal.Decimal
}

type SeatAvailabilityInput struct {
	MovieID string `validate:"required"`
	Date    string `validate:"required"`
	Time    string `validate:"required"`
}

type Service struct {
	bookings  domain.BookingRepository
	users     domain.UserRepository
	movies    domain.MovieRepository
	validator *validator.Validate
	logger    *slog.Logger

	cache     AvailabilityCache
	publisher domain.BookingEventPublisher

	wg sync.WaitGroup
}

type Option func(*Service)

func WithAvailabilityCache(cache AvailabilityCache) Option {
	return func(s *Service) {
		s.cache = cache
	}
}

func WithEventPublisher(publisher domain.BookingEventPublisher) Option {
	return func(s *Service) {
		s.publisher = publisher
	}
}

func NewService(
	bookings domain.BookingRepository,
	users domain.UserRepository,
	movies domain.MovieRepository,
	validator *validator.Validate,
	logger *slog.Logger,
	opts ...Option) *Service {

	s := &Service{
		bookings:  bookings,
		users:     users,
		movies:    movies,
		validator: validator,
		logger:    logger,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// CreateBooking checks the request, makes sure the referenced user and movie exist and persists
// a new booking. Seats are not checked against other bookings of the same showing.
func (s *Service) CreateBooking(ctx context.Context, input CreateBookingInput) (*domain.Booking, error) {
	seats, err := s.validateCreateInput(input)
	if err != nil {
		return nil, err
	}

	_, err = s.users.GetById(ctx, input.UserID)
	if err != nil {
		if errors.Is(err, domain.ErrRecordNotFound) {
			return nil, notFoundError(MsgUserNotFound)
		}

		return nil, serverError(err)
	}

	_, err = s.movies.GetById(ctx, input.MovieID)
	if err != nil {
		if errors.Is(err, domain.ErrRecordNotFound) {
			return nil, notFoundError(MsgMovieNotFound)
		}

		return nil, serverError(err)
	}

	booking := &domain.Booking{
		ID:         uuid.NewString(),
		UserID:     input.UserID,
		MovieID:    input.MovieID,
		ShowDate:   input.Date,
		ShowTime:   input.ShowTime,
		Seats:      seats,
		TotalPrice: *input.TotalPrice,
	}

	err = s.bookings.Create(ctx, booking)
	if err != nil {
		if errors.Is(err, domain.ErrRecordNotFound) {
			return nil, notFoundError(MsgReferenceNotFound)
		}

		return nil, serverError(err)
	}

	s.logger.Info("booking created",
		"booking_id", booking.ID,
		"movie_id", booking.MovieID,
		"show_date", booking.ShowDate,
		"show_time", booking.ShowTime,
		"seat_count", len(booking.Seats))

	s.invalidateAvailability(ctx, booking.Showing())
	s.publishBookingConfirmed(ctx, *booking)

	return booking, nil
}

// validateCreateInput reports missing fields first, then seats outside of the hall, then a
// negative price. It returns the normalized seat set.
func (s *Service) validateCreateInput(input CreateBookingInput) (domain.SeatSet, error) {
	err := s.validator.Struct(input)

	var validationErrs validator.ValidationErrors
	if err != nil && !errors.As(err, &validationErrs) {
		return nil, serverError(err)
	}

	if input.TotalPrice == nil || hasTag(validationErrs, "required") {
		return nil, validationError(MsgMissingFields)
	}

	seats, err := domain.NewSeatSet(input.Seats...)
	if err != nil {
		return nil, validationError(MsgInvalidSeat)
	}

	if input.TotalPrice.IsNegative() {
		return nil, validationError(MsgNegativePrice)
	}

	return seats, nil
}

func hasTag(errs validator.ValidationErrors, tag string) bool {
	for _, fe := range errs {
		if fe.Tag() == tag {
			return true
		}
	}

	return false
}

// SeatAvailability returns the status of every seat of the hall for the given showing.
func (s *Service) SeatAvailability(ctx context.Context, input SeatAvailabilityInput) ([]domain.SeatStatus, error) {
	err := s.validator.Struct(input)
	if err != nil {
		var validationErrs validator.ValidationErrors
		if errors.As(err, &validationErrs) {
			return nil, validationError(MsgMissingFields)
		}

		return nil, serverError(err)
	}

	showing := domain.Showing{
		MovieID: input.MovieID,
		Date:    input.Date,
		Time:    input.Time,
	}

	booked, err := s.bookedSeats(ctx, showing)
	if err != nil {
		return nil, serverError(err)
	}

	return domain.SeatMap(booked), nil
}

func (s *Service) bookedSeats(ctx context.Context, showing domain.Showing) (domain.SeatSet, error) {
	cached := s.cache != nil
	var generation int64

	if cached {
		var err error

		generation, err = s.cache.Generation(ctx, showing)
		if err != nil {
			s.logger.Warn("failed to read seat availability generation", "showing", showing.String(), "error", err)
			cached = false
		}
	}

	if cached {
		seats, found, err := s.cache.BookedSeats(ctx, showing, generation)
		if err != nil {
			s.logger.Warn("failed to read seat availability from cache", "showing", showing.String(), "error", err)
		} else if found {
			return seats, nil
		}
	}

	// the generation is read before the store so a booking committed meanwhile invalidates this fill
	bookings, err := s.bookings.GetByShowing(ctx, showing)
	if err != nil {
		return nil, err
	}

	booked := domain.BookedSeats(bookings)

	if cached {
		err = s.cache.StoreBookedSeats(ctx, showing, generation, booked)
		if err != nil {
			s.logger.Warn("failed to store seat availability in cache", "showing", showing.String(), "error", err)
		}
	}

	return booked, nil
}

func (s *Service) invalidateAvailability(ctx context.Context, showing domain.Showing) {
	if s.cache == nil {
		return
	}

	err := s.cache.Invalidate(ctx, showing)
	if err != nil {
		s.logger.Error("failed to invalidate seat availability cache", "showing", showing.String(), "error", err)
	}
}

func (s *Service) publishBookingConfirmed(ctx context.Context, booking domain.Booking) {
	if s.publisher == nil {
		return
	}

	event := domain.NewBookingConfirmedEvent(booking)
	logger := s.logger.With("booking_id", booking.ID)

	s.wg.Add(1)

	// the request context is canceled as soon as the response is written
	go func(ctx context.Context) {
		defer s.wg.Done()

		defer func() {
			if err := recover(); err != nil {
				logger.Error("panic occurred while publishing booking event", "panic", err)
			}
		}()

		ctx, cancel := context.WithTimeout(ctx, publishTimeout)
		defer cancel()

		err := s.publisher.PublishBookingConfirmed(ctx, event)
		if err != nil {
			logger.Error("failed to publish booking confirmed event", "error", err)
			return
		}

		logger.Info("booking confirmed event published")
	}(context.WithoutCancel(ctx))
}

// Wait blocks until all background event publishing has finished.
func (s *Service) Wait() {
	s.wg.Wait()
}
