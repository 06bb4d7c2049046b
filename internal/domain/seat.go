package domain

import (
	"fmt"
	"slices"
)

// HallSize is the number of seats of the single hall layout. Seats are indexed from 0 to HallSize-1.
const HallSize = 30

type SeatStatus string

const (
	SeatBooked    SeatStatus = "booked"
	SeatAvailable SeatStatus = "available"
)

// SeatSet is a sorted set of seat indices without duplicates.
type SeatSet []int

// NewSeatSet builds a SeatSet out of arbitrary seat numbers, collapsing duplicates.
// It fails when a seat is outside of the hall.
func NewSeatSet(seats ...int) (SeatSet, error) {
	set := make(SeatSet, 0, len(seats))

	for _, seat := range seats {
		if seat < 0 || seat >= HallSize {
			return nil, fmt.Errorf("%w: %d", ErrInvalidSeat, seat)
		}

		set = append(set, seat)
	}

	slices.Sort(set)

	return slices.Compact(set), nil
}

func (s SeatSet) Contains(seat int) bool {
	_, found := slices.BinarySearch(s, seat)
	return found
}

// Union returns a new set holding the seats of both sets.
func (s SeatSet) Union(other SeatSet) SeatSet {
	union := make(SeatSet, 0, len(s)+len(other))
	union = append(union, s...)
	union = append(union, other...)

	slices.Sort(union)

	return slices.Compact(union)
}

// BookedSeats collapses the seats of all given bookings into a single set.
func BookedSeats(bookings []Booking) SeatSet {
	booked := make(map[int]bool)

	for _, b := range bookings {
		for _, seat := range b.Seats {
			booked[seat] = true
		}
	}

	set := make(SeatSet, 0, len(booked))
	for seat := range booked {
		set = append(set, seat)
	}

	slices.Sort(set)

	return set
}

// SeatMap returns the status of every seat of the hall, ordered by seat index.
func SeatMap(booked SeatSet) []SeatStatus {
	statuses := make([]SeatStatus, HallSize)

	for i := range statuses {
		if booked.Contains(i) {
			statuses[i] = SeatBooked
		} else {
			statuses[i] = SeatAvailable
		}
	}

	return statuses
}
