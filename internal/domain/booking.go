package domain

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

type Booking struct {
	ID         string
	UserID     string
	MovieID    string
	ShowDate   string
	ShowTime   string
	Seats      SeatSet
	TotalPrice decimal.Decimal
	CreatedAt  time.Time
}

func (b Booking) Showing() Showing {
	return Showing{
		MovieID: b.MovieID,
		Date:    b.ShowDate,
		Time:    b.ShowTime,
	}
}

// Showing identifies a single screening of a movie. Bookings are matched on the exact triple.
type Showing struct {
	MovieID string
	Date    string
	Time    string
}

func (s Showing) String() string {
	return fmt.Sprintf("%s:%s:%s", s.MovieID, s.Date, s.Time)
}

type BookingRepository interface {
	Create(ctx context.Context, booking *Booking) error
	GetByShowing(ctx context.Context, showing Showing) ([]Booking, error)
}
