package application

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	bookingDomain "github.com/rentloop/service-booking/internal/domain/booking"
	"github.com/rentloop/service-booking/internal/domain/product"
	"github.com/rentloop/service-booking/internal/platform/domain"
)

// CreateBookingRequest holds the data needed to create a new booking.
type CreateBookingRequest struct {
	ProductID string `json:"product_id" binding:"required"`
	StartDate string `json:"start_date" binding:"required"`
	EndDate   string `json:"end_date" binding:"required"`
}

// UpdateStatusRequest carries the target status of a booking.
type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// BookingDTO is the response representation of a booking.
type BookingDTO struct {
	ID               uuid.UUID `json:"id"`
	ProductID        uuid.UUID `json:"product_id"`
	OwnerID          uuid.UUID `json:"owner_id"`
	RenterID         uuid.UUID `json:"renter_id"`
	StartDate        time.Time `json:"start_date"`
	EndDate          time.Time `json:"end_date"`
	TotalDays        int       `json:"total_days"`
	TotalAmountCents int64     `json:"total_amount_cents"`
	Currency         string    `json:"currency"`
	Status           string    `json:"status"`
	PaymentStatus    string    `json:"payment_status"`
	Version          int64     `json:"version"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// AvailabilityDTO answers whether a product is free for a period.
type AvailabilityDTO struct {
	ProductID uuid.UUID `json:"product_id"`
	StartDate time.Time `json:"start_date"`
	EndDate   time.Time `json:"end_date"`
	Available bool      `json:"available"`
}

// BookingService is the application service orchestrating booking use cases.
type BookingService struct {
	repo      bookingDomain.BookingRepository
	products  product.Repository
	pricing   bookingDomain.PricingStrategy
	publisher bookingDomain.EventPublisher
	logger    *zap.Logger
}

// NewBookingService creates a new BookingService.
func NewBookingService(
	repo bookingDomain.BookingRepository,
	products product.Repository,
	pricing bookingDomain.PricingStrategy,
	publisher bookingDomain.EventPublisher,
	logger *zap.Logger,
) *BookingService {
	return &BookingService{
		repo:      repo,
		products:  products,
		pricing:   pricing,
		publisher: publisher,
		logger:    logger,
	}
}

// CreateBooking reserves a product for the renter. The conflict check and the
// insert run in one store transaction serialized per product.
func (s *BookingService) CreateBooking(ctx context.Context, renterID uuid.UUID, req CreateBookingRequest) (*BookingDTO, error) {
	productID, err := parseID("product_id", req.ProductID)
	if err != nil {
		return nil, err
	}
	period, err := ParsePeriod(req.StartDate, req.EndDate)
	if err != nil {
		return nil, err
	}

	prod, err := s.products.FindByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if prod.IsOwnedBy(renterID) {
		return nil, domain.NewValidationError("owners cannot rent their own product")
	}

	quote, err := s.pricing.Calculate(bookingDomain.PricingParams{
		Period:          period,
		DailyPriceCents: prod.DailyPriceCents,
		MinRentalDays:   prod.MinDays(),
	})
	if err != nil {
		if domain.KindOf(err) != "" {
			return nil, err
		}
		return nil, domain.NewValidationError(fmt.Sprintf("pricing error: %v", err))
	}

	currency := prod.Currency
	if currency == "" {
		currency = product.DefaultCurrency
	}

	bk, err := bookingDomain.NewBooking(prod.ID, prod.OwnerID, renterID, period, quote, currency)
	if err != nil {
		return nil, err
	}

	saved, err := s.repo.Save(ctx, bk, bookingDomain.NoConflictWith(period))
	if err != nil {
		return nil, err
	}

	s.logger.Info("booking created",
		zap.String("booking_id", saved.ID().String()),
		zap.String("product_id", saved.ProductID().String()),
		zap.String("renter_id", saved.RenterID().String()),
		zap.Int64("total_amount_cents", saved.TotalAmountCents()),
	)
	s.publisher.BookingCreated(ctx, saved)

	result := toBookingDTO(saved)
	return &result, nil
}

// CheckAvailability reports whether no approved or active booking of the
// product overlaps [start, end).
func (s *BookingService) CheckAvailability(ctx context.Context, productID uuid.UUID, start, end string) (*AvailabilityDTO, error) {
	period, err := ParsePeriod(start, end)
	if err != nil {
		return nil, err
	}
	if _, err := s.products.FindByID(ctx, productID); err != nil {
		return nil, err
	}

	blocking, err := s.repo.FindByProduct(ctx, productID, bookingDomain.BlockingStatuses)
	if err != nil {
		return nil, err
	}

	return &AvailabilityDTO{
		ProductID: productID,
		StartDate: period.Start,
		EndDate:   period.End,
		Available: bookingDomain.IsAvailable(period, blocking),
	}, nil
}

// ListBookings returns the user's bookings as renter or owner, newest first.
// An empty role lists the user's rentals.
func (s *BookingService) ListBookings(ctx context.Context, userID uuid.UUID, role string) ([]BookingDTO, error) {
	if role == "" {
		role = string(bookingDomain.RoleRenter)
	}
	userRole, err := bookingDomain.ParseUserRole(role)
	if err != nil {
		return nil, domain.NewValidationError("role must be renter or owner")
	}

	bookings, err := s.repo.FindByUser(ctx, userID, userRole)
	if err != nil {
		return nil, err
	}
	return toBookingDTOs(bookings), nil
}

// Actor is the authenticated caller of a booking operation.
type Actor struct {
	UserID uuid.UUID
	Admin  bool
}

// UpdateStatus moves a booking to status on behalf of actor. Approving a
// pending booking re-runs the conflict check against the product's other
// blocking bookings. Bookings the actor takes no part in are reported as not found.
func (s *BookingService) UpdateStatus(ctx context.Context, bookingID uuid.UUID, actor Actor, status string) (*BookingDTO, error) {
	target := bookingDomain.BookingStatus(status)
	if !target.IsUpdateTarget() {
		return nil, domain.NewValidationError("status must be one of approved, active, completed, cancelled")
	}

	bk, err := s.findVisible(ctx, bookingID, actor)
	if err != nil {
		return nil, err
	}
	if !actor.Admin && !bk.CanRequest(actor.UserID, target) {
		return nil, domain.NewForbiddenError("only the product owner can move a booking to " + status)
	}

	previous := bk.Status()
	if err := bk.TransitionTo(target); err != nil {
		return nil, err
	}

	var check bookingDomain.AvailabilityCheck
	if target.IsBlocking() && !previous.IsBlocking() {
		check = bookingDomain.NoConflictWith(bk.Period())
	}

	updated, err := s.repo.UpdateStatus(ctx, bk, check)
	if err != nil {
		return nil, err
	}

	s.logger.Info("booking status changed",
		zap.String("booking_id", updated.ID().String()),
		zap.String("from", string(previous)),
		zap.String("to", string(updated.Status())),
	)
	s.publisher.BookingStatusChanged(ctx, updated, previous)

	result := toBookingDTO(updated)
	return &result, nil
}

// GetBooking retrieves a single booking visible to actor.
func (s *BookingService) GetBooking(ctx context.Context, bookingID uuid.UUID, actor Actor) (*BookingDTO, error) {
	bk, err := s.findVisible(ctx, bookingID, actor)
	if err != nil {
		return nil, err
	}
	result := toBookingDTO(bk)
	return &result, nil
}

// findVisible loads a booking and hides it from callers who are neither a
// participant nor an admin, so ids of other users' bookings cannot be enumerated.
func (s *BookingService) findVisible(ctx context.Context, bookingID uuid.UUID, actor Actor) (*bookingDomain.Booking, error) {
	bk, err := s.repo.FindByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if !actor.Admin && !bk.IsParticipant(actor.UserID) {
		return nil, domain.NewNotFoundError("booking", bookingID.String())
	}
	return bk, nil
}

// --- Admin methods ---

// BookingStatsDTO holds booking statistics for the admin dashboard.
type BookingStatsDTO struct {
	TotalBookings int64            `json:"total_bookings"`
	ByStatus      map[string]int64 `json:"by_status"`
}

// ListAllBookings returns a paginated list of all bookings (admin).
func (s *BookingService) ListAllBookings(ctx context.Context, page, limit int) ([]BookingDTO, int64, error) {
	bookings, total, err := s.repo.ListAll(ctx, page, limit)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list bookings: %w", err)
	}
	return toBookingDTOs(bookings), total, nil
}

// GetBookingStats returns aggregate booking statistics (admin). Every status
// is present in ByStatus, zero when no booking has it.
func (s *BookingService) GetBookingStats(ctx context.Context) (*BookingStatsDTO, error) {
	counts, err := s.repo.CountByStatus(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get booking stats: %w", err)
	}

	byStatus := make(map[string]int64, len(bookingDomain.AllStatuses))
	for _, st := range bookingDomain.AllStatuses {
		byStatus[string(st)] = 0
	}

	var total int64
	for status, c := range counts {
		byStatus[status] += c
		total += c
	}

	return &BookingStatsDTO{
		TotalBookings: total,
		ByStatus:      byStatus,
	}, nil
}

// --- Helpers ---

func toBookingDTO(bk *bookingDomain.Booking) BookingDTO {
	return BookingDTO{
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

func toBookingDTOs(bookings []*bookingDomain.Booking) []BookingDTO {
	dtos := make([]BookingDTO, len(bookings))
	for i, bk := range bookings {
		dtos[i] = toBookingDTO(bk)
	}
	return dtos
}

func parseID(field, raw string) (uuid.UUID, error) {
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, domain.NewValidationError(fmt.Sprintf("invalid %s", field))
	}
	return id, nil
}
