package app

import (
	"errors"
	"net/http"
	"time"

	"github.com/metinatakli/movie-booking-service/internal/booking"
	"github.com/metinatakli/movie-booking-service/internal/domain"
	"github.com/shopspring/decimal"
)

const MsgBookingConfirmed = "Booking confirmed successfully."

type CreateBookingRequest struct {
	UserId     string           `json:"userId"`
	MovieId    string           `json:"movieId"`
	ShowTime   string           `json:"showTime"`
	Date       string           `json:"date"`
	Seats      []int            `json:"seats"`
	TotalPrice *decimal.Decimal `json:"totalPrice"`
}

type BookingResponse struct {
	Id         string          `json:"id"`
	UserId     string          `json:"userId"`
	MovieId    string          `json:"movieId"`
	ShowDate   string          `json:"showDate"`
	ShowTime   string          `json:"showTime"`
	Seats      []int           `json:"seats"`
	TotalPrice decimal.Decimal `json:"totalPrice"`
	CreatedAt  time.Time       `json:"createdAt"`
}

type CreateBookingResponse struct {
	Success   bool            `json:"success"`
	Message   string          `json:"message"`
	Booking   BookingResponse `json:"booking"`
	BookingId string          `json:"bookingId"`
}

type SeatAvailabilityResponse struct {
	Seats []domain.SeatStatus `json:"seats"`
}

func (app *Application) CreateBookingHandler(w http.ResponseWriter, r *http.Request) {
	var input CreateBookingRequest

	// an empty body is reported as missing fields by the booking service
	err := app.readJSON(w, r, &input)
	if err != nil && !errors.Is(err, errEmptyBody) {
		app.badRequestResponse(w, r, err)
		return
	}

	created, err := app.bookings.CreateBooking(r.Context(), booking.CreateBookingInput{
		UserID:     input.UserId,
		MovieID:    input.MovieId,
		ShowTime:   input.ShowTime,
		Date:       input.Date,
		Seats:      input.Seats,
		TotalPrice: input.TotalPrice,
	})
	if err != nil {
		app.bookingErrorResponse(w, r, err)
		return
	}

	resp := CreateBookingResponse{
		Success:   true,
		Message:   MsgBookingConfirmed,
		Booking:   toBookingResponse(created),
		BookingId: created.ID,
	}

	err = app.writeJSON(w, http.StatusCreated, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *Application) GetSeatAvailabilityHandler(w http.ResponseWriter, r *http.Request) {
	qs := r.URL.Query()

	seats, err := app.bookings.SeatAvailability(r.Context(), booking.SeatAvailabilityInput{
		MovieID: qs.Get("movieId"),
		Date:    qs.Get("date"),
		Time:    qs.Get("time"),
	})
	if err != nil {
		app.bookingErrorResponse(w, r, err)
		return
	}

	err = app.writeJSON(w, http.StatusOK, SeatAvailabilityResponse{Seats: seats}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func toBookingResponse(b *domain.Booking) BookingResponse {
	seats := []int(b.Seats)
	if seats == nil {
		seats = []int{}
	}

	return BookingResponse{
		Id:         b.ID,
		UserId:     b.UserID,
		MovieId:    b.MovieID,
		ShowDate:   b.ShowDate,
		ShowTime:   b.ShowTime,
		Seats:      seats,
		TotalPrice: b.TotalPrice,
		CreatedAt:  b.CreatedAt,
	}
}
