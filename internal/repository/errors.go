package repository

import (
	"errors"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/rentloop/service-booking/internal/platform/domain"
)

// mapError turns driver failures into domain errors. Domain errors raised
// inside a transaction pass through untouched.
func mapError(op string, err error) error {
	if err == nil {
		return nil
	}

	var appErr *domain.AppError
	if errors.As(err, &appErr) {
		return err
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgerrcode.ExclusionViolation:
			return domain.NewConflictError("product is already booked for an overlapping period")
		case pgerrcode.CheckViolation:
			return domain.NewValidationError("booking violates a table constraint: " + pgErr.ConstraintName)
		}
	}

	return domain.NewStoreUnavailableError(op, err)
}
