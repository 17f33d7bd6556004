package repository

import (
	"context"
	"errors"

	"wild-oasis-api/internal/domain/booking"
	"wild-oasis-api/internal/infra"
	"wild-oasis-api/internal/infra/db"
	"wild-oasis-api/internal/pkg/pgconv"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
)

const (
	pgErrCodeUniqueViolation    = "23505"
	pgErrCodeExclusionViolation = "23P01"
)

type BookingRepository struct {
	db db.DBTX
}

func NewBookingRepository(pool db.DBTX) *BookingRepository {
	return &BookingRepository{db: pool}
}

const createBookingSQL = `
INSERT INTO bookings (
	id, cabin_id, guest_id, start_date, end_date,
	num_nights, cabin_price, num_guests, observations,
	payment_intent_id, status
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
RETURNING id`

func (r *BookingRepository) Create(ctx context.Context, tx db.DBTX, b *booking.Booking) (uuid.UUID, error) {
	var id uuid.UUID
	err := tx.QueryRow(ctx, createBookingSQL,
		b.ID(),
		b.CabinID(),
		b.GuestID(),
		b.Stay().Start(),
		b.Stay().End(),
		b.NumNights(),
		b.CabinPrice(),
		b.NumGuests(),
		pgconv.TextPtr(b.Observations().String()),
		b.PaymentIntentID(),
		b.Status().String(),
	).Scan(&id)
	if err != nil {
		return uuid.Nil, infra.WrapRepoErr("failed to create booking", err, writeErrorKind(err))
	}

	return id, nil
}

// writeErrorKind maps constraint violations onto repository error kinds. An
// exclusion violation means the stay overlaps an existing booking for the
// same cabin.
func writeErrorKind(err error) infra.RepositoryErrorKind {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return infra.KindDBFailure
	}

	switch pgErr.Code {
	case pgErrCodeExclusionViolation:
		return infra.KindConflict
	case pgErrCodeUniqueViolation:
		return infra.KindDuplicateKey
	default:
		return infra.KindDBFailure
	}
}
