package product

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// DefaultCurrency applies when the catalog record carries none.
const DefaultCurrency = "USD"

// Product is the catalog's rentable item as seen by the booking engine. It is read-only here.
type Product struct {
	ID              uuid.UUID `json:"id"`
	OwnerID         uuid.UUID `json:"owner_id"`
	Title           string    `json:"title"`
	DailyPriceCents int64     `json:"daily_price_cents"`
	MinRentalDays   int       `json:"min_rental_days"`
	Currency        string    `json:"currency"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// MinDays returns the minimum rental length, treating unset values as one day.
func (p *Product) MinDays() int {
	if p.MinRentalDays < 1 {
		return 1
	}
	return p.MinRentalDays
}

// IsOwnedBy reports whether userID owns the product.
func (p *Product) IsOwnedBy(userID uuid.UUID) bool {
	return p.OwnerID == userID
}

// Repository looks up products. Implementations return a NotFound AppError for unknown ids.
type Repository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Product, error)
}
