package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/metinatakli/movie-booking-service/internal/domain"
	"github.com/shopspring/decimal"
)

type PostgresBookingRepository struct {
	db *pgxpool.Pool
}

func NewPostgresBookingRepository(db *pgxpool.Pool) *PostgresBookingRepository {
	return &PostgresBookingRepository{
		db: db,
	}
}

func (p *PostgresBookingRepository) Create(ctx context.Context, booking *domain.Booking) error {
	query := `
		INSERT INTO bookings (id, user_id, movie_id, show_date, show_time, seats, total_price)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING created_at, total_price
	`

	seats := []int(booking.Seats)
	if seats == nil {
		seats = []int{}
	}

	var totalPrice pgtype.Numeric

	err := p.db.QueryRow(
		ctx,
		query,
		booking.ID,
		booking.UserID,
		booking.MovieID,
		booking.ShowDate,
		booking.ShowTime,
		seats,
		booking.TotalPrice,
	).Scan(&booking.CreatedAt, &totalPrice)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.ForeignKeyViolation {
			return domain.ErrRecordNotFound
		}

		return err
	}

	booking.TotalPrice = toDecimal(totalPrice)

	return nil
}

func (p *PostgresBookingRepository) GetByShowing(ctx context.Context, showing domain.Showing) ([]domain.Booking, error) {
	query := `
		SELECT id, user_id, movie_id, show_date, show_time, seats, total_price, created_at
		FROM bookings
		WHERE movie_id = $1 AND show_date = $2 AND show_time = $3
		ORDER BY created_at
	`

	rows, err := p.db.Query(ctx, query, showing.MovieID, showing.Date, showing.Time)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	bookings := make([]domain.Booking, 0)

	for rows.Next() {
		var (
			booking    domain.Booking
			seats      []int
			totalPrice pgtype.Numeric
		)

		err = rows.Scan(
			&booking.ID,
			&booking.UserID,
			&booking.MovieID,
			&booking.ShowDate,
			&booking.ShowTime,
			&seats,
			&totalPrice,
			&booking.CreatedAt,
		)
		if err != nil {
			return nil, err
		}

		booking.Seats = domain.SeatSet(seats)
		booking.TotalPrice = toDecimal(totalPrice)

		bookings = append(bookings, booking)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return bookings, nil
}

func toDecimal(numeric pgtype.Numeric) decimal.Decimal {
	if !numeric.Valid || numeric.Int == nil {
		return decimal.Zero
	}

	return decimal.NewFromBigInt(numeric.Int, numeric.Exp)
}
