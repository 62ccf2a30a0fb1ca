package application

import (
	"fmt"
	"time"

	bookingDomain "github.com/rentloop/service-booking/internal/domain/booking"
	"github.com/rentloop/service-booking/internal/platform/domain"
)

const dateOnly = "2006-01-02"

// ParseDate accepts an RFC3339 timestamp or a plain YYYY-MM-DD date (UTC midnight).
func ParseDate(field, raw string) (time.Time, error) {
	if raw == "" {
		return time.Time{}, domain.NewValidationError(fmt.Sprintf("%s is required", field))
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t.UTC(), nil
	}
	if t, err := time.ParseInLocation(dateOnly, raw, time.UTC); err == nil {
		return t, nil
	}
	return time.Time{}, domain.NewValidationError(fmt.Sprintf("%s must be RFC3339 or YYYY-MM-DD", field))
}

// ParsePeriod parses both bounds and builds a half-open DateRange.
func ParsePeriod(start, end string) (bookingDomain.DateRange, error) {
	s, err := ParseDate("start_date", start)
	if err != nil {
		return bookingDomain.DateRange{}, err
	}
	e, err := ParseDate("end_date", end)
	if err != nil {
		return bookingDomain.DateRange{}, err
	}
	return bookingDomain.NewDateRange(s, e)
}
