package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/rentloop/service-booking/internal/domain/product"
	"github.com/rentloop/service-booking/internal/platform/domain"
)

// ProductModel is the GORM model for the catalog-owned products table.
type ProductModel struct {
	ID              uuid.UUID `gorm:"type:uuid;primaryKey"`
	OwnerID         uuid.UUID `gorm:"type:uuid;not null;index"`
	Title           string    `gorm:"size:200;not null;default:''"`
	DailyPriceCents int64     `gorm:"not null"`
	MinRentalDays   int       `gorm:"not null;default:1"`
	Currency        string    `gorm:"not null;size:3;default:'USD'"`
	UpdatedAt       time.Time `gorm:"type:timestamptz;not null;default:now()"`
}

// TableName returns the table name for the GORM model.
func (ProductModel) TableName() string {
	return "products"
}

// GormProductRepository reads products from the shared products table.
type GormProductRepository struct {
	db      *gorm.DB
	timeout time.Duration
}

// NewGormProductRepository creates a new GormProductRepository.
func NewGormProductRepository(db *gorm.DB, timeout time.Duration) *GormProductRepository {
	if timeout <= 0 {
		timeout = defaultStoreTimeout
	}
	return &GormProductRepository{db: db, timeout: timeout}
}

// FindByID retrieves a product by its unique identifier.
func (r *GormProductRepository) FindByID(ctx context.Context, id uuid.UUID) (*product.Product, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	var model ProductModel
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NewNotFoundError("product", id.String())
		}
		return nil, mapError("find product", err)
	}
	return toDomainProduct(&model), nil
}

func toDomainProduct(m *ProductModel) *product.Product {
	return &product.Product{
		ID:              m.ID,
		OwnerID:         m.OwnerID,
		Title:           m.Title,
		DailyPriceCents: m.DailyPriceCents,
		MinRentalDays:   m.MinRentalDays,
		Currency:        m.Currency,
		UpdatedAt:       m.UpdatedAt.UTC(),
	}
}
