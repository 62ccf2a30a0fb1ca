package booking

import (
	"time"

	"github.com/rentloop/service-booking/internal/platform/domain"
)

const day = 24 * time.Hour

// DateRange is a half-open rental period [Start, End).
type DateRange struct {
	Start time.Time `json:"start_date"`
	End   time.Time `json:"end_date"`
}

// NewDateRange validates and normalizes a range to UTC. Start must be strictly before End.
func NewDateRange(start, end time.Time) (DateRange, error) {
	if start.IsZero() || end.IsZero() {
		return DateRange{}, domain.NewValidationError("start and end dates are required")
	}
	if !start.Before(end) {
		return DateRange{}, domain.NewValidationError("start date must be before end date")
	}
	return DateRange{Start: start.UTC(), End: end.UTC()}, nil
}

// Overlaps reports whether the two half-open ranges share any instant.
// Ranges that only touch at a boundary do not overlap.
func (r DateRange) Overlaps(other DateRange) bool {
	return r.Start.Before(other.End) && r.End.After(other.Start)
}

// Days returns the rental length in whole days, rounding partial days up.
func (r DateRange) Days() int {
	d := r.End.Sub(r.Start)
	days := int(d / day)
	if d%day != 0 {
		days++
	}
	return days
}
