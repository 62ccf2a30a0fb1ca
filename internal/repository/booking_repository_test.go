package repository

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	bookingDomain "github.com/rentloop/service-booking/internal/domain/booking"
)

func storedModel() *BookingModel {
	now := time.Now()
	return &BookingModel{
		ID:               uuid.New(),
		ProductID:        uuid.New(),
		OwnerID:          uuid.New(),
		RenterID:         uuid.New(),
		StartDate:        time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
		EndDate:          time.Date(2024, 6, 3, 0, 0, 0, 0, time.UTC),
		TotalDays:        2,
		TotalAmountCents: 20000,
		Currency:         "USD",
		Status:           "approved",
		PaymentStatus:    "paid",
		Version:          3,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
}

func TestToDomainBooking(t *testing.T) {
	bk, err := toDomainBooking(storedModel())
	require.NoError(t, err)
	assert.Equal(t, bookingDomain.StatusApproved, bk.Status())
	assert.Equal(t, bookingDomain.PaymentPaid, bk.PaymentStatus())
	assert.Equal(t, int64(3), bk.Version())
}

func TestToDomainBooking_RejectsUnknownStatuses(t *testing.T) {
	t.Run("booking status", func(t *testing.T) {
		m := storedModel()
		m.Status = "shipped"
		_, err := toDomainBooking(m)
		assert.ErrorContains(t, err, "invalid booking status")
	})

	t.Run("payment status", func(t *testing.T) {
		m := storedModel()
		m.PaymentStatus = "escrowed"
		_, err := toDomainBooking(m)
		assert.ErrorContains(t, err, "invalid payment status")
	})
}
