package repository

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"

	"github.com/rentloop/service-booking/internal/platform/domain"
)

func TestMapError(t *testing.T) {
	assert.NoError(t, mapError("op", nil))

	exclusion := fmt.Errorf("insert: %w", &pgconn.PgError{Code: pgerrcode.ExclusionViolation, ConstraintName: "excl_bookings_blocking_overlap"})
	assert.ErrorIs(t, mapError("save booking", exclusion), domain.ErrConflict)

	check := &pgconn.PgError{Code: pgerrcode.CheckViolation, ConstraintName: "chk_bookings_range"}
	assert.ErrorIs(t, mapError("save booking", check), domain.ErrValidation)

	conflict := domain.NewConflictError("already booked")
	assert.Same(t, conflict, errors.Unwrap(fmt.Errorf("wrap: %w", mapError("save booking", conflict))))

	for _, cause := range []error{
		context.DeadlineExceeded,
		errors.New("dial tcp: connection refused"),
		&pgconn.PgError{Code: pgerrcode.AdminShutdown},
	} {
		err := mapError("save booking", cause)
		assert.ErrorIs(t, err, domain.ErrStoreUnavailable)
		assert.NotErrorIs(t, err, domain.ErrConflict)
		assert.ErrorIs(t, err, cause)
	}
}
