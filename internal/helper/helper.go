package helper

import (
	"context"
	"strconv"
	"strings"

	errwrap "github.com/pkg/errors"
)

// CheckDeadline fails fast when the caller's context is already cancelled or
// past its deadline, so repositories never issue doomed queries.
func CheckDeadline(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return nil
}

// ParseDate splits a DD/MM/YYYY string into its components. It only checks
// the shape; whether the triple is a real calendar date is decided by the
// criteria validation.
func ParseDate(s string) (day, month, year int, err error) {
	parts := strings.Split(strings.TrimSpace(s), "/")
	if len(parts) != 3 {
		return 0, 0, 0, errwrap.Errorf("date %q is not in DD/MM/YYYY form", s)
	}

	day, err = strconv.Atoi(parts[0])
	if err == nil {
		month, err = strconv.Atoi(parts[1])
	}
	if err == nil {
		year, err = strconv.Atoi(parts[2])
	}
	if err != nil {
		return 0, 0, 0, errwrap.Errorf("date %q is not in DD/MM/YYYY form", s)
	}
	return day, month, year, nil
}

// ValidIATA reports whether code is exactly three ASCII letters.
func ValidIATA(code string) bool {
	if len(code) != 3 {
		return false
	}
	for _, r := range code {
		if !('a' <= r && r <= 'z') && !('A' <= r && r <= 'Z') {
			return false
		}
	}
	return true
}
