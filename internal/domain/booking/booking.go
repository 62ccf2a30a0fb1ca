package booking

import (
	"time"

	"github.com/google/uuid"

	"github.com/rentloop/service-booking/internal/platform/domain"
)

// Booking is the aggregate root for the booking domain.
type Booking struct {
	id        uuid.UUID
	productID uuid.UUID
	ownerID   uuid.UUID
	renterID  uuid.UUID
	period    DateRange

	totalDays        int
	totalAmountCents int64
	currency         string

	status        BookingStatus
	paymentStatus PaymentStatus

	version   int64
	createdAt time.Time
	updatedAt time.Time
}

// NewBooking creates a new Booking aggregate with status=pending.
// Timestamps stay zero until the store assigns them.
func NewBooking(
	productID uuid.UUID,
	ownerID uuid.UUID,
	renterID uuid.UUID,
	period DateRange,
	quote Quote,
	currency string,
) (*Booking, error) {
	if productID == uuid.Nil {
		return nil, domain.NewValidationError("product ID is required")
	}
	if ownerID == uuid.Nil {
		return nil, domain.NewValidationError("owner ID is required")
	}
	if renterID == uuid.Nil {
		return nil, domain.NewValidationError("renter ID is required")
	}
	if renterID == ownerID {
		return nil, domain.NewValidationError("owners cannot rent their own product")
	}
	if !period.Start.Before(period.End) {
		return nil, domain.NewValidationError("start date must be before end date")
	}
	if quote.TotalDays < 1 || quote.TotalAmountCents <= 0 {
		return nil, domain.NewValidationError("booking total must be positive")
	}

	return &Booking{
		id:               uuid.New(),
		productID:        productID,
		ownerID:          ownerID,
		renterID:         renterID,
		period:           period,
		totalDays:        quote.TotalDays,
		totalAmountCents: quote.TotalAmountCents,
		currency:         currency,
		status:           StatusPending,
		paymentStatus:    PaymentPending,
		version:          1,
	}, nil
}

// ReconstructBooking rebuilds a Booking from persistence data (no validation).
func ReconstructBooking(
	id uuid.UUID,
	productID uuid.UUID,
	ownerID uuid.UUID,
	renterID uuid.UUID,
	period DateRange,
	totalDays int,
	totalAmountCents int64,
	currency string,
	status BookingStatus,
	paymentStatus PaymentStatus,
	version int64,
	createdAt time.Time,
	updatedAt time.Time,
) *Booking {
	return &Booking{
		id:               id,
		productID:        productID,
		ownerID:          ownerID,
		renterID:         renterID,
		period:           period,
		totalDays:        totalDays,
		totalAmountCents: totalAmountCents,
		currency:         currency,
		status:           status,
		paymentStatus:    paymentStatus,
		version:          version,
		createdAt:        createdAt,
		updatedAt:        updatedAt,
	}
}

// --- Getters ---

// ID returns the booking's unique identifier.
func (b *Booking) ID() uuid.UUID { return b.id }

// ProductID returns the rented product.
func (b *Booking) ProductID() uuid.UUID { return b.productID }

// OwnerID returns the product owner at the time of booking.
func (b *Booking) OwnerID() uuid.UUID { return b.ownerID }

// RenterID returns the renting user.
func (b *Booking) RenterID() uuid.UUID { return b.renterID }

// Period returns the half-open rental period.
func (b *Booking) Period() DateRange { return b.period }

// StartDate returns the first instant of the rental.
func (b *Booking) StartDate() time.Time { return b.period.Start }

// EndDate returns the instant the rental ends (exclusive).
func (b *Booking) EndDate() time.Time { return b.period.End }

// TotalDays returns the billed number of days.
func (b *Booking) TotalDays() int { return b.totalDays }

// TotalAmountCents returns the price fixed at creation.
func (b *Booking) TotalAmountCents() int64 { return b.totalAmountCents }

// Currency returns the currency code.
func (b *Booking) Currency() string { return b.currency }

// Status returns the current booking status.
func (b *Booking) Status() BookingStatus { return b.status }

// PaymentStatus returns the settlement flag.
func (b *Booking) PaymentStatus() PaymentStatus { return b.paymentStatus }

// Version returns the entity version for optimistic locking.
func (b *Booking) Version() int64 { return b.version }

// CreatedAt returns the creation timestamp.
func (b *Booking) CreatedAt() time.Time { return b.createdAt }

// UpdatedAt returns the last-updated timestamp.
func (b *Booking) UpdatedAt() time.Time { return b.updatedAt }

// IsParticipant reports whether userID is the renter or the owner.
func (b *Booking) IsParticipant(userID uuid.UUID) bool {
	return b.renterID == userID || b.ownerID == userID
}

// CanRequest reports whether userID may move the booking to target. The owner
// drives the rental through approval, hand-over and return; either party may cancel.
func (b *Booking) CanRequest(userID uuid.UUID, target BookingStatus) bool {
	if target == StatusCancelled {
		return b.IsParticipant(userID)
	}
	return b.ownerID == userID
}

// --- Behavior ---

// TransitionTo moves the booking to target if the state machine allows it and bumps the version.
func (b *Booking) TransitionTo(target BookingStatus) error {
	if !target.IsUpdateTarget() {
		return domain.NewValidationError("status must be one of approved, active, completed, cancelled")
	}
	if !b.status.CanTransitionTo(target) {
		return domain.NewInvalidStateError(string(b.status), string(target))
	}
	b.status = target
	b.version++
	return nil
}
