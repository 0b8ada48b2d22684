package entity

import "errors"

var (
	ErrInvalidDate    = errors.New("not a valid calendar date")
	ErrInvalidIATA    = errors.New("IATA code must be exactly 3 letters")
	ErrUnknownBackend = errors.New("unknown storage backend")
)
