package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	bookingDomain "github.com/rentloop/service-booking/internal/domain/booking"
	"github.com/rentloop/service-booking/internal/platform/domain"
)

const defaultStoreTimeout = 5 * time.Second

// BookingModel is the GORM model for the bookings table. Timestamps come from
// the database clock.
type BookingModel struct {
	ID               uuid.UUID `gorm:"type:uuid;primaryKey"`
	ProductID        uuid.UUID `gorm:"type:uuid;not null;index:idx_bookings_product_status,priority:1"`
	OwnerID          uuid.UUID `gorm:"type:uuid;not null;index"`
	RenterID         uuid.UUID `gorm:"type:uuid;not null;index"`
	StartDate        time.Time `gorm:"type:timestamptz;not null"`
	EndDate          time.Time `gorm:"type:timestamptz;not null"`
	TotalDays        int       `gorm:"not null"`
	TotalAmountCents int64     `gorm:"not null"`
	Currency         string    `gorm:"not null;size:3;default:'USD'"`
	Status           string    `gorm:"not null;size:20;index:idx_bookings_product_status,priority:2"`
	PaymentStatus    string    `gorm:"not null;size:20;default:'pending'"`
	Version          int64     `gorm:"not null;default:1"`
	CreatedAt        time.Time `gorm:"type:timestamptz;not null;default:now();autoCreateTime:false"`
	UpdatedAt        time.Time `gorm:"type:timestamptz;not null;default:now();autoUpdateTime:false"`
}

// TableName returns the table name for the GORM model.
func (BookingModel) TableName() string {
	return "bookings"
}

// GormBookingRepository is the GORM-based implementation of BookingRepository.
type GormBookingRepository struct {
	db      *gorm.DB
	timeout time.Duration
}

// NewGormBookingRepository creates a new GormBookingRepository. Every call is
// bounded by timeout.
func NewGormBookingRepository(db *gorm.DB, timeout time.Duration) *GormBookingRepository {
	if timeout <= 0 {
		timeout = defaultStoreTimeout
	}
	return &GormBookingRepository{db: db, timeout: timeout}
}

func (r *GormBookingRepository) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, r.timeout)
}

// FindByID retrieves a booking by its unique identifier.
func (r *GormBookingRepository) FindByID(ctx context.Context, id uuid.UUID) (*bookingDomain.Booking, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	var model BookingModel
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NewNotFoundError("booking", id.String())
		}
		return nil, mapError("find booking", err)
	}
	return toDomainBooking(&model)
}

// FindByProduct retrieves a product's bookings whose status is in statuses.
// An empty statuses slice returns every booking of the product.
func (r *GormBookingRepository) FindByProduct(ctx context.Context, productID uuid.UUID, statuses []bookingDomain.BookingStatus) ([]*bookingDomain.Booking, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	q := r.db.WithContext(ctx).Where("product_id = ?", productID)
	if len(statuses) > 0 {
		q = q.Where("status IN ?", statusStrings(statuses))
	}

	var models []BookingModel
	if err := q.Order("start_date ASC").Find(&models).Error; err != nil {
		return nil, mapError("find product bookings", err)
	}
	return toDomainBookings(models)
}

// FindByUser retrieves a user's bookings as renter or owner, newest first.
func (r *GormBookingRepository) FindByUser(ctx context.Context, userID uuid.UUID, role bookingDomain.UserRole) ([]*bookingDomain.Booking, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	column := "renter_id"
	if role == bookingDomain.RoleOwner {
		column = "owner_id"
	}

	var models []BookingModel
	if err := r.db.WithContext(ctx).
		Where(column+" = ?", userID).
		Order("created_at DESC, id DESC").
		Find(&models).Error; err != nil {
		return nil, mapError("find user bookings", err)
	}
	return toDomainBookings(models)
}

// Save inserts a new booking. The product's blocking bookings are read and
// checked under a transaction-scoped advisory lock on the product, so
// concurrent writers for one product serialize while others run in parallel.
func (r *GormBookingRepository) Save(ctx context.Context, bk *bookingDomain.Booking, check bookingDomain.AvailabilityCheck) (*bookingDomain.Booking, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	model := toBookingModel(bk)
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := guardProduct(tx, bk.ProductID(), bk.ID(), check); err != nil {
			return err
		}
		return tx.Clauses(clause.Returning{}).Create(model).Error
	})
	if err != nil {
		return nil, mapError("save booking", err)
	}
	return toDomainBooking(model)
}

// UpdateStatus persists a status transition with optimistic locking. The
// stored version must be one behind the aggregate's.
func (r *GormBookingRepository) UpdateStatus(ctx context.Context, bk *bookingDomain.Booking, check bookingDomain.AvailabilityCheck) (*bookingDomain.Booking, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	model := BookingModel{ID: bk.ID()}
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if check != nil {
			if err := guardProduct(tx, bk.ProductID(), bk.ID(), check); err != nil {
				return err
			}
		}

		result := tx.Model(&model).
			Clauses(clause.Returning{}).
			Where("version = ?", bk.Version()-1).
			Updates(map[string]interface{}{
				"status":     string(bk.Status()),
				"version":    bk.Version(),
				"updated_at": gorm.Expr("now()"),
			})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return domain.NewConflictError("booking was modified by another transaction")
		}
		return nil
	})
	if err != nil {
		return nil, mapError("update booking status", err)
	}
	return toDomainBooking(&model)
}

// ListAll retrieves all bookings with pagination (admin).
func (r *GormBookingRepository) ListAll(ctx context.Context, page, limit int) ([]*bookingDomain.Booking, int64, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	var total int64
	if err := r.db.WithContext(ctx).Model(&BookingModel{}).Count(&total).Error; err != nil {
		return nil, 0, mapError("count bookings", err)
	}

	var models []BookingModel
	offset := (page - 1) * limit
	if err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&models).Error; err != nil {
		return nil, 0, mapError("list bookings", err)
	}

	bookings, err := toDomainBookings(models)
	if err != nil {
		return nil, 0, err
	}
	return bookings, total, nil
}

// CountByStatus returns booking counts grouped by status (admin).
func (r *GormBookingRepository) CountByStatus(ctx context.Context) (map[string]int64, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	type statusCount struct {
		Status string
		Count  int64
	}
	var results []statusCount
	if err := r.db.WithContext(ctx).Model(&BookingModel{}).
		Select("status, count(*) as count").
		Group("status").
		Find(&results).Error; err != nil {
		return nil, mapError("count by status", err)
	}

	counts := make(map[string]int64)
	for _, sc := range results {
		counts[sc.Status] = sc.Count
	}
	return counts, nil
}

// guardProduct takes the product's advisory lock and runs check against its
// blocking bookings other than self. The lock is released at commit or rollback.
func guardProduct(tx *gorm.DB, productID, self uuid.UUID, check bookingDomain.AvailabilityCheck) error {
	if err := tx.Exec("SELECT pg_advisory_xact_lock(hashtextextended(?, 0))", productID.String()).Error; err != nil {
		return err
	}
	if check == nil {
		return nil
	}

	var models []BookingModel
	if err := tx.
		Where("product_id = ? AND status IN ? AND id <> ?", productID, statusStrings(bookingDomain.BlockingStatuses), self).
		Find(&models).Error; err != nil {
		return err
	}

	blocking, err := toDomainBookings(models)
	if err != nil {
		return err
	}
	return check(blocking)
}

// --- Conversion Helpers ---

func statusStrings(statuses []bookingDomain.BookingStatus) []string {
	out := make([]string, len(statuses))
	for i, s := range statuses {
		out[i] = string(s)
	}
	return out
}

func toBookingModel(bk *bookingDomain.Booking) *BookingModel {
	return &BookingModel{
		ID:               bk.ID(),
		ProductID:        bk.ProductID(),
		OwnerID:          bk.OwnerID(),
		RenterID:         bk.RenterID(),
		StartDate:        bk.StartDate(),
		EndDate:          bk.EndDate(),
		TotalDays:        bk.TotalDays(),
		TotalAmountCents: bk.TotalAmountCents(),
		Currency:         bk.Currency(),
		Status:           string(bk.Status()),
		PaymentStatus:    string(bk.PaymentStatus()),
		Version:          bk.Version(),
		CreatedAt:        bk.CreatedAt(),
		UpdatedAt:        bk.UpdatedAt(),
	}
}

func toDomainBooking(m *BookingModel) (*bookingDomain.Booking, error) {
	status, err := bookingDomain.ParseBookingStatus(m.Status)
	if err != nil {
		return nil, err
	}
	paymentStatus, err := bookingDomain.ParsePaymentStatus(m.PaymentStatus)
	if err != nil {
		return nil, err
	}

	period := bookingDomain.DateRange{Start: m.StartDate.UTC(), End: m.EndDate.UTC()}

	return bookingDomain.ReconstructBooking(
		m.ID,
		m.ProductID,
		m.OwnerID,
		m.RenterID,
		period,
		m.TotalDays,
		m.TotalAmountCents,
		m.Currency,
		status,
		paymentStatus,
		m.Version,
		m.CreatedAt.UTC(),
		m.UpdatedAt.UTC(),
	), nil
}

func toDomainBookings(models []BookingModel) ([]*bookingDomain.Booking, error) {
	bookings := make([]*bookingDomain.Booking, len(models))
	for i := range models {
		bk, err := toDomainBooking(&models[i])
		if err != nil {
			return nil, err
		}
		bookings[i] = bk
	}
	return bookings, nil
}
