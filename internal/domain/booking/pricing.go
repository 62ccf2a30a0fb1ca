package booking

import (
	"fmt"
	"math"

	"github.com/rentloop/service-booking/internal/platform/domain"
)

// PricingStrategy defines the interface for calculating booking prices.
type PricingStrategy interface {
	// Calculate returns the rental length and total price for the given parameters.
	Calculate(params PricingParams) (Quote, error)
}

// PricingParams holds the inputs for price calculation.
type PricingParams struct {
	Period          DateRange
	DailyPriceCents int64
	MinRentalDays   int
}

// Quote is the result of a price calculation. It is fixed at booking creation.
type Quote struct {
	TotalDays        int
	TotalAmountCents int64
}

// DailyRatePricingStrategy charges the product's daily rate for every started day.
type DailyRatePricingStrategy struct{}

// NewDailyRatePricingStrategy creates a new DailyRatePricingStrategy.
func NewDailyRatePricingStrategy() *DailyRatePricingStrategy {
	return &DailyRatePricingStrategy{}
}

// Calculate computes ceil(period / 24h) days times the daily price.
func (s *DailyRatePricingStrategy) Calculate(params PricingParams) (Quote, error) {
	if params.DailyPriceCents <= 0 {
		return Quote{}, fmt.Errorf("daily price must be positive, got %d", params.DailyPriceCents)
	}

	days := params.Period.Days()
	if days < 1 {
		return Quote{}, domain.NewValidationError("rental period must be at least one day")
	}

	minDays := params.MinRentalDays
	if minDays < 1 {
		minDays = 1
	}
	if days < minDays {
		return Quote{}, domain.NewValidationError(
			fmt.Sprintf("rental period of %d days is shorter than the minimum of %d days", days, minDays))
	}

	if params.DailyPriceCents > math.MaxInt64/int64(days) {
		return Quote{}, domain.NewValidationError("rental total exceeds the supported amount")
	}

	return Quote{
		TotalDays:        days,
		TotalAmountCents: int64(days) * params.DailyPriceCents,
	}, nil
}
