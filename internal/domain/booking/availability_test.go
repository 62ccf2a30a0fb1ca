package booking

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rentloop/service-booking/internal/platform/domain"
)

func TestIsAvailable(t *testing.T) {
	request := mustRange(t, "2024-06-03", "2024-06-06")

	tests := []struct {
		name     string
		existing []*Booking
		want     bool
	}{
		{"no bookings", nil, true},
		{"overlapping approved", []*Booking{bookingIn(t, StatusApproved, "2024-06-01", "2024-06-04")}, false},
		{"overlapping active", []*Booking{bookingIn(t, StatusActive, "2024-06-05", "2024-06-10")}, false},
		{"overlapping pending", []*Booking{bookingIn(t, StatusPending, "2024-06-01", "2024-06-10")}, true},
		{"overlapping completed", []*Booking{bookingIn(t, StatusCompleted, "2024-06-01", "2024-06-10")}, true},
		{"overlapping cancelled", []*Booking{bookingIn(t, StatusCancelled, "2024-06-01", "2024-06-10")}, true},
		{"back to back", []*Booking{
			bookingIn(t, StatusApproved, "2024-06-01", "2024-06-03"),
			bookingIn(t, StatusActive, "2024-06-06", "2024-06-09"),
		}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsAvailable(request, tt.existing))
		})
	}
}

func TestNoConflictWith(t *testing.T) {
	check := NoConflictWith(mustRange(t, "2024-06-05", "2024-06-08"))

	require.NoError(t, check([]*Booking{bookingIn(t, StatusApproved, "2024-06-01", "2024-06-05")}))

	err := check([]*Booking{bookingIn(t, StatusApproved, "2024-06-07", "2024-06-09")})
	assert.ErrorIs(t, err, domain.ErrConflict)
	assert.Contains(t, err.Error(), "2024-06-07")
}
