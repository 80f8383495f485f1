package domain

import "errors"

var (
	ErrInvalidDate          = errors.New("invalid date")
	ErrInvalidClock         = errors.New("invalid time of day")
	ErrInvalidRange         = errors.New("trip end date is before start date")
	ErrTripTooLong          = errors.New("trip is too long")
	ErrInvalidTrip          = errors.New("invalid trip")
	ErrTripNotFound         = errors.New("trip not found")
	ErrActivityNotFound     = errors.New("activity not found")
	ErrInvalidPin           = errors.New("invalid manual pin")
	ErrClosedOnDay          = errors.New("activity is closed on that day")
	ErrOutsideOpeningHours  = errors.New("time is outside opening hours")
	ErrUnknownActivityOrder = errors.New("activity order must list every activity exactly once")
)
