package booking

import (
	"fmt"

	"github.com/rentloop/service-booking/internal/platform/domain"
)

// FindConflicts returns the bookings in existing that block period.
// Non-blocking bookings are ignored even when they overlap.
func FindConflicts(period DateRange, existing []*Booking) []*Booking {
	var conflicts []*Booking
	for _, bk := range existing {
		if bk.Status().IsBlocking() && period.Overlaps(bk.Period()) {
			conflicts = append(conflicts, bk)
		}
	}
	return conflicts
}

// IsAvailable reports whether period is free of blocking bookings.
func IsAvailable(period DateRange, existing []*Booking) bool {
	return len(FindConflicts(period, existing)) == 0
}

// NoConflictWith builds the AvailabilityCheck that guards a write of period.
func NoConflictWith(period DateRange) AvailabilityCheck {
	return func(blocking []*Booking) error {
		conflicts := FindConflicts(period, blocking)
		if len(conflicts) == 0 {
			return nil
		}
		return domain.NewConflictError(fmt.Sprintf(
			"product is already booked from %s to %s",
			conflicts[0].StartDate().Format("2006-01-02"),
			conflicts[0].EndDate().Format("2006-01-02"),
		))
	}
}
