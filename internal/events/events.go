// Package events carries booking events to Kafka and reacts to catalog events.
package events

import (
	"time"

	"github.com/google/uuid"
)

// Source identifies this service in published CloudEvents.
const Source = "service-rental-booking"

// Topics.
const (
	TopicBookingEvents = "rental.booking.events"
	TopicProductEvents = "catalog.product.events"
)

// Event types.
const (
	BookingCreated       = "rental.booking.created"
	BookingStatusChanged = "rental.booking.status_changed"

	ProductUpdated = "catalog.product.updated"
	ProductDeleted = "catalog.product.deleted"
)

// BookingCreatedEvent is published after a booking is stored.
type BookingCreatedEvent struct {
	BookingID        uuid.UUID `json:"booking_id"`
	ProductID        uuid.UUID `json:"product_id"`
	OwnerID          uuid.UUID `json:"owner_id"`
	RenterID         uuid.UUID `json:"renter_id"`
	StartDate        time.Time `json:"start_date"`
	EndDate          time.Time `json:"end_date"`
	TotalDays        int       `json:"total_days"`
	TotalAmountCents int64     `json:"total_amount_cents"`
	Currency         string    `json:"currency"`
	Status           string    `json:"status"`
	OccurredAt       time.Time `json:"occurred_at"`
}

// BookingStatusChangedEvent is published after a status transition is stored.
type BookingStatusChangedEvent struct {
	BookingID      uuid.UUID `json:"booking_id"`
	ProductID      uuid.UUID `json:"product_id"`
	OwnerID        uuid.UUID `json:"owner_id"`
	RenterID       uuid.UUID `json:"renter_id"`
	PreviousStatus string    `json:"previous_status"`
	Status         string    `json:"status"`
	Version        int64     `json:"version"`
	OccurredAt     time.Time `json:"occurred_at"`
}

// ProductChangedEvent is the part of a catalog product event this service reads.
type ProductChangedEvent struct {
	ProductID uuid.UUID `json:"product_id"`
}
