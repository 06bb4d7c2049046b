package domain

import "errors"

var (
	ErrRecordNotFound = errors.New("record not found")
	ErrInvalidSeat    = errors.New("seat number is outside of the hall")
)
