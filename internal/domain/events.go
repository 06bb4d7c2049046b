package domain

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

type BookingConfirmedEvent struct {
	BookingID   string          `json:"bookingId"`
	UserID      string          `json:"userId"`
	MovieID     string          `json:"movieId"`
	ShowDate    string          `json:"showDate"`
	ShowTime    string          `json:"showTime"`
	Seats       []int           `json:"seats"`
	TotalPrice  decimal.Decimal `json:"totalPrice"`
	ConfirmedAt time.Time       `json:"confirmedAt"`
}

func NewBookingConfirmedEvent(b Booking) BookingConfirmedEvent {
	seats := make([]int, len(b.Seats))
	copy(seats, b.Seats)

	return BookingConfirmedEvent{
		BookingID:   b.ID,
		UserID:      b.UserID,
		MovieID:     b.MovieID,
		ShowDate:    b.ShowDate,
		ShowTime:    b.ShowTime,
		Seats:       seats,
		TotalPrice:  b.TotalPrice,
		ConfirmedAt: b.CreatedAt,
	}
}

type BookingEventPublisher interface {
	PublishBookingConfirmed(ctx context.Context, event BookingConfirmedEvent) error
	Close() error
}
