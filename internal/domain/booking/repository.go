package booking

import (
	"context"
	"fmt"

	"github.com/google/uuid"
)

// UserRole selects which side of a booking a listing is for.
type UserRole string

const (
	RoleRenter UserRole = "renter"
	RoleOwner  UserRole = "owner"
)

// ParseUserRole validates a listing role.
func ParseUserRole(s string) (UserRole, error) {
	switch r := UserRole(s); r {
	case RoleRenter, RoleOwner:
		return r, nil
	}
	return "", fmt.Errorf("invalid role: %s", s)
}

// AvailabilityCheck inspects the product's blocking bookings inside the store's
// per-product critical section. A non-nil error aborts the write.
type AvailabilityCheck func(blocking []*Booking) error

// BookingRepository defines the persistence contract for booking aggregates.
type BookingRepository interface {
	// FindByID retrieves a booking by its unique identifier.
	FindByID(ctx context.Context, id uuid.UUID) (*Booking, error)

	// FindByProduct retrieves a product's bookings whose status is in statuses.
	FindByProduct(ctx context.Context, productID uuid.UUID, statuses []BookingStatus) ([]*Booking, error)

	// FindByUser retrieves a user's bookings as renter or owner, newest first.
	FindByUser(ctx context.Context, userID uuid.UUID, role UserRole) ([]*Booking, error)

	// Save runs check against the product's blocking bookings and inserts the
	// booking in the same serialized transaction. It returns the stored record.
	Save(ctx context.Context, booking *Booking, check AvailabilityCheck) (*Booking, error)

	// UpdateStatus persists a status transition with optimistic locking. A
	// non-nil check runs against the product's other blocking bookings first.
	UpdateStatus(ctx context.Context, booking *Booking, check AvailabilityCheck) (*Booking, error)

	// ListAll retrieves all bookings with pagination (admin).
	ListAll(ctx context.Context, page, limit int) ([]*Booking, int64, error)

	// CountByStatus returns booking counts grouped by status (admin).
	CountByStatus(ctx context.Context) (map[string]int64, error)
}

// EventPublisher announces booking changes to other services. Delivery
// failures are the publisher's concern and never fail the caller.
type EventPublisher interface {
	BookingCreated(ctx context.Context, booking *Booking)
	BookingStatusChanged(ctx context.Context, booking *Booking, previous BookingStatus)
}
