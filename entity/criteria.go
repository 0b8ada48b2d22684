package entity

import (
	"fmt"
	"strings"
	"time"
)

// Criteria is the closed set of search inputs the data access layer accepts.
// Presentation maps a menu/route selection to one of these shapes; nothing
// else crosses the boundary.
type Criteria interface {
	criteria()
	// Summary is a short human-readable form used for history entries and logs.
	Summary() string
}

type FlightIDCriteria struct {
	ID int64 `json:"id" validate:"gt=0"`
}

func (FlightIDCriteria) criteria() {}

func (c FlightIDCriteria) Summary() string {
	return fmt.Sprintf("flight id %d", c.ID)
}

// DateCriteria must form a real calendar date; Date() is the authoritative
// check and runs before any storage access.
type DateCriteria struct {
	Day   int `json:"day" validate:"min=1,max=31"`
	Month int `json:"month" validate:"min=1,max=12"`
	Year  int `json:"year" validate:"min=1,max=9999"`
}

func (DateCriteria) criteria() {}

func (c DateCriteria) Summary() string {
	return fmt.Sprintf("date %02d/%02d/%04d", c.Day, c.Month, c.Year)
}

// Date validates the triple by letting time.Date normalize it: 31/02 rolls
// over into March, so any component changing means the input was not a real
// calendar date.
func (c DateCriteria) Date() (time.Time, error) {
	t := time.Date(c.Year, time.Month(c.Month), c.Day, 0, 0, 0, 0, time.UTC)
	if t.Year() != c.Year || t.Month() != time.Month(c.Month) || t.Day() != c.Day {
		return time.Time{}, ErrInvalidDate
	}
	return t, nil
}

// AirlineCriteria matches airline display names case-insensitively on a
// substring.
type AirlineCriteria struct {
	Name string `json:"name" validate:"required"`
}

func (AirlineCriteria) criteria() {}

func (c AirlineCriteria) Summary() string {
	return fmt.Sprintf("airline %q", c.Name)
}

// AirportCriteria matches origin airport IATA codes case-insensitively on a
// substring. The console only submits full 3-letter codes, but the contract
// accepts any alphabetic fragment.
type AirportCriteria struct {
	Code string `json:"code" validate:"required,alpha,max=3"`
}

func (AirportCriteria) criteria() {}

func (c AirportCriteria) Summary() string {
	return fmt.Sprintf("airport %q", strings.ToUpper(c.Code))
}
