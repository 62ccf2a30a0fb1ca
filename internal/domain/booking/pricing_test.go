package booking

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rentloop/service-booking/internal/platform/domain"
)

func TestDailyRatePricingStrategy_Calculate(t *testing.T) {
	s := NewDailyRatePricingStrategy()

	quote, err := s.Calculate(PricingParams{
		Period:          mustRange(t, "2024-06-01", "2024-06-03"),
		DailyPriceCents: 10000,
		MinRentalDays:   1,
	})
	require.NoError(t, err)
	assert.Equal(t, 2, quote.TotalDays)
	assert.Equal(t, int64(20000), quote.TotalAmountCents)
}

func TestDailyRatePricingStrategy_MinimumDays(t *testing.T) {
	s := NewDailyRatePricingStrategy()

	_, err := s.Calculate(PricingParams{
		Period:          mustRange(t, "2024-06-01", "2024-06-03"),
		DailyPriceCents: 10000,
		MinRentalDays:   3,
	})
	assert.ErrorIs(t, err, domain.ErrValidation)

	quote, err := s.Calculate(PricingParams{
		Period:          mustRange(t, "2024-06-01", "2024-06-04"),
		DailyPriceCents: 10000,
		MinRentalDays:   3,
	})
	require.NoError(t, err)
	assert.Equal(t, 3, quote.TotalDays)
}

func TestDailyRatePricingStrategy_Rejects(t *testing.T) {
	s := NewDailyRatePricingStrategy()

	_, err := s.Calculate(PricingParams{Period: mustRange(t, "2024-06-01", "2024-06-03"), DailyPriceCents: 0})
	assert.Error(t, err)

	_, err = s.Calculate(PricingParams{Period: mustRange(t, "2024-06-01", "2024-06-03"), DailyPriceCents: math.MaxInt64})
	assert.ErrorIs(t, err, domain.ErrValidation)
}
